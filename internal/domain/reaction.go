package domain

import "time"

type ReactionKind string

const (
	ReactionLike  ReactionKind = "like"
	ReactionHeart ReactionKind = "heart"
)

// Reaction, SavedPost and HelpfulVote are toggled join rows: unique per
// (user, target) and action type, never accumulated.
type Reaction struct {
	UserID    int32        `json:"user_id"`
	PostID    int32        `json:"post_id"`
	Kind      ReactionKind `json:"kind"`
	CreatedOn time.Time    `json:"created_on"`
}

type SavedPost struct {
	UserID    int32     `json:"user_id"`
	PostID    int32     `json:"post_id"`
	CreatedOn time.Time `json:"created_on"`
}

type HelpfulVote struct {
	UserID    int32     `json:"user_id"`
	CommentID int32     `json:"comment_id"`
	CreatedOn time.Time `json:"created_on"`
}
