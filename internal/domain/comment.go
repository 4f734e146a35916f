package domain

import "time"

// Comment is one node of a post's discussion thread. ParentID is
// self-referential and enables arbitrary-depth nesting; Replies is populated
// only by the comment tree builder, never persisted.
type Comment struct {
	ID         int32      `json:"id"`
	PostID     int32      `json:"post_id"`
	AuthorID   int32      `json:"author_id"`
	AuthorName string     `json:"author_name,omitempty"`
	ParentID   *int32     `json:"parent_id,omitempty"`
	Content    string     `json:"content"`
	Deleted    bool       `json:"-"`
	CreatedOn  time.Time  `json:"created_on"`
	UpdatedOn  time.Time  `json:"updated_on"`
	Replies    []*Comment `json:"replies"`
}
