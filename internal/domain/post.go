package domain

import "time"

type Post struct {
	ID            int32     `json:"id"`
	Title         string    `json:"title"`
	Content       string    `json:"content"`
	AuthorID      int32     `json:"author_id"`
	AuthorName    string    `json:"author_name,omitempty"`
	OrgID         int32     `json:"org_id"`
	CommunityID   *int32    `json:"community_id,omitempty"`
	CommunityName string    `json:"community_name,omitempty"`
	Deleted       bool      `json:"-"`
	CreatedOn     time.Time `json:"created_on"`
	UpdatedOn     time.Time `json:"updated_on"`
	Tags          []Tag     `json:"tags,omitempty"`
}

// FeedPost is a post annotated with the provenance record explaining why it
// appears in the requester's feed.
type FeedPost struct {
	Post
	Provenance Provenance `json:"provenance"`
}

// FeedPage is one page of an aggregated feed or search result.
type FeedPage struct {
	Posts       []FeedPost `json:"posts"`
	TotalCount  int32      `json:"total_count"`
	HasNextPage bool       `json:"has_next_page"`
	NextOffset  int32      `json:"next_offset"`
}

// PostWithComments is the single-post detail view: the post plus its fully
// nested comment tree.
type PostWithComments struct {
	Post
	Comments []*Comment `json:"comments"`
}
