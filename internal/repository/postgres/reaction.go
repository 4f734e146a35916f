package postgres

import (
	"context"
	"database/sql"
	"time"

	"communityhub-backend/internal/domain"
	"communityhub-backend/internal/repository"
)

type reactionRepository struct {
	db *sql.DB
}

func NewReactionRepository(db *sql.DB) repository.ReactionRepository {
	return &reactionRepository{db: db}
}

// SavePost and UnsavePost are idempotent toggles: saving an already-saved
// post or unsaving an unsaved one is a no-op, so the caller may retry freely.
func (r *reactionRepository) SavePost(ctx context.Context, userID, postID int32) error {
	query := `INSERT INTO saved_posts (user_id, post_id, created_on) VALUES ($1, $2, $3)
	          ON CONFLICT (user_id, post_id) DO NOTHING`
	_, err := r.db.ExecContext(ctx, query, userID, postID, time.Now())
	return err
}

func (r *reactionRepository) UnsavePost(ctx context.Context, userID, postID int32) error {
	query := `DELETE FROM saved_posts WHERE user_id = $1 AND post_id = $2`
	_, err := r.db.ExecContext(ctx, query, userID, postID)
	return err
}

func (r *reactionRepository) ToggleReaction(ctx context.Context, userID, postID int32, kind domain.ReactionKind) (bool, error) {
	del := `DELETE FROM reactions WHERE user_id = $1 AND post_id = $2 AND kind = $3`
	res, err := r.db.ExecContext(ctx, del, userID, postID, kind)
	if err != nil {
		return false, err
	}
	if affected, err := res.RowsAffected(); err != nil {
		return false, err
	} else if affected > 0 {
		return false, nil
	}

	ins := `INSERT INTO reactions (user_id, post_id, kind, created_on) VALUES ($1, $2, $3, $4)`
	if _, err := r.db.ExecContext(ctx, ins, userID, postID, kind, time.Now()); err != nil {
		return false, err
	}
	return true, nil
}

func (r *reactionRepository) ToggleHelpfulVote(ctx context.Context, userID, commentID int32) (bool, error) {
	del := `DELETE FROM helpful_votes WHERE user_id = $1 AND comment_id = $2`
	res, err := r.db.ExecContext(ctx, del, userID, commentID)
	if err != nil {
		return false, err
	}
	if affected, err := res.RowsAffected(); err != nil {
		return false, err
	} else if affected > 0 {
		return false, nil
	}

	ins := `INSERT INTO helpful_votes (user_id, comment_id, created_on) VALUES ($1, $2, $3)`
	if _, err := r.db.ExecContext(ctx, ins, userID, commentID, time.Now()); err != nil {
		return false, err
	}
	return true, nil
}
