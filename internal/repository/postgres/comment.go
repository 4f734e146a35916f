package postgres

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"communityhub-backend/internal/domain"
	"communityhub-backend/internal/repository"
)

type commentRepository struct {
	db *sql.DB
}

func NewCommentRepository(db *sql.DB) repository.CommentRepository {
	return &commentRepository{db: db}
}

func (r *commentRepository) Create(ctx context.Context, c *domain.Comment) error {
	now := time.Now()
	query := `INSERT INTO comments (post_id, author_id, parent_id, content, deleted, created_on, updated_on)
	          VALUES ($1, $2, $3, $4, FALSE, $5, $5) RETURNING id`
	if err := r.db.QueryRowContext(ctx, query,
		c.PostID, c.AuthorID, c.ParentID, c.Content, now).Scan(&c.ID); err != nil {
		return err
	}
	c.CreatedOn = now
	c.UpdatedOn = now
	return nil
}

func (r *commentRepository) GetByID(ctx context.Context, id int32) (*domain.Comment, error) {
	c := &domain.Comment{}
	query := `SELECT cm.id, cm.post_id, cm.author_id, u.name, cm.parent_id, cm.content, cm.created_on, cm.updated_on
	          FROM comments cm JOIN users u ON u.id = cm.author_id
	          WHERE cm.id = $1 AND cm.deleted = FALSE`
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&c.ID, &c.PostID, &c.AuthorID, &c.AuthorName, &c.ParentID, &c.Content, &c.CreatedOn, &c.UpdatedOn)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return c, nil
}

func (r *commentRepository) Update(ctx context.Context, c *domain.Comment) error {
	query := `UPDATE comments SET content = $1, updated_on = $2 WHERE id = $3 AND deleted = FALSE`
	_, err := r.db.ExecContext(ctx, query, c.Content, time.Now(), c.ID)
	return err
}

func (r *commentRepository) SoftDelete(ctx context.Context, id int32) error {
	query := `UPDATE comments SET deleted = TRUE, updated_on = $1 WHERE id = $2`
	_, err := r.db.ExecContext(ctx, query, time.Now(), id)
	return err
}

func (r *commentRepository) ListByPost(ctx context.Context, postID int32) ([]domain.Comment, error) {
	query := `SELECT cm.id, cm.post_id, cm.author_id, u.name, cm.parent_id, cm.content, cm.created_on, cm.updated_on
	          FROM comments cm JOIN users u ON u.id = cm.author_id
	          WHERE cm.post_id = $1 AND cm.deleted = FALSE
	          ORDER BY cm.created_on DESC, cm.id DESC`
	rows, err := r.db.QueryContext(ctx, query, postID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var comments []domain.Comment
	for rows.Next() {
		var c domain.Comment
		if err := rows.Scan(&c.ID, &c.PostID, &c.AuthorID, &c.AuthorName, &c.ParentID, &c.Content, &c.CreatedOn, &c.UpdatedOn); err != nil {
			return nil, err
		}
		comments = append(comments, c)
	}
	return comments, rows.Err()
}

func (r *commentRepository) PurgeDeletedBefore(ctx context.Context, days int) (int64, error) {
	query := `DELETE FROM comments WHERE deleted = TRUE AND updated_on < NOW() - make_interval(days => $1)`
	res, err := r.db.ExecContext(ctx, query, days)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}
