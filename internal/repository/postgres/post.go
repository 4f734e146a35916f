package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"communityhub-backend/internal/domain"
	"communityhub-backend/internal/repository"

	"github.com/lib/pq"
)

type postRepository struct {
	db *sql.DB
}

func NewPostRepository(db *sql.DB) repository.PostRepository {
	return &postRepository{db: db}
}

const postColumns = `p.id, p.title, p.content, p.author_id, u.name, p.org_id, p.community_id,
	COALESCE(c.name, ''), p.created_on, p.updated_on`

const postJoins = `FROM posts p
	JOIN users u ON u.id = p.author_id
	LEFT JOIN communities c ON c.id = p.community_id`

func scanPost(scanner interface{ Scan(...any) error }, p *domain.Post) error {
	return scanner.Scan(
		&p.ID, &p.Title, &p.Content, &p.AuthorID, &p.AuthorName,
		&p.OrgID, &p.CommunityID, &p.CommunityName, &p.CreatedOn, &p.UpdatedOn)
}

func (r *postRepository) CreateWithTags(ctx context.Context, post *domain.Post, tagIDs []int32) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	now := time.Now()
	query := `INSERT INTO posts (title, content, author_id, org_id, community_id, deleted, created_on, updated_on)
	          VALUES ($1, $2, $3, $4, $5, FALSE, $6, $6) RETURNING id`
	if err := tx.QueryRowContext(ctx, query,
		post.Title, post.Content, post.AuthorID, post.OrgID, post.CommunityID, now,
	).Scan(&post.ID); err != nil {
		return err
	}
	post.CreatedOn = now
	post.UpdatedOn = now

	for _, tagID := range tagIDs {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO post_tags (post_id, tag_id) VALUES ($1, $2)`, post.ID, tagID); err != nil {
			return err
		}
	}

	return tx.Commit()
}

func (r *postRepository) GetByID(ctx context.Context, id int32) (*domain.Post, error) {
	p := &domain.Post{}
	query := `SELECT ` + postColumns + ` ` + postJoins + ` WHERE p.id = $1 AND p.deleted = FALSE`
	err := scanPost(r.db.QueryRowContext(ctx, query, id), p)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return p, nil
}

func (r *postRepository) UpdateWithTags(ctx context.Context, post *domain.Post, tagIDs []int32) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	query := `UPDATE posts SET title = $1, content = $2, updated_on = $3 WHERE id = $4 AND deleted = FALSE`
	if _, err := tx.ExecContext(ctx, query, post.Title, post.Content, time.Now(), post.ID); err != nil {
		return err
	}

	// Tag associations are replaced wholesale.
	if _, err := tx.ExecContext(ctx, `DELETE FROM post_tags WHERE post_id = $1`, post.ID); err != nil {
		return err
	}
	for _, tagID := range tagIDs {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO post_tags (post_id, tag_id) VALUES ($1, $2)`, post.ID, tagID); err != nil {
			return err
		}
	}

	return tx.Commit()
}

func (r *postRepository) SoftDelete(ctx context.Context, id int32) error {
	query := `UPDATE posts SET deleted = TRUE, updated_on = $1 WHERE id = $2`
	_, err := r.db.ExecContext(ctx, query, time.Now(), id)
	return err
}

func (r *postRepository) ListOrgWide(ctx context.Context, orgID int32) ([]domain.Post, error) {
	query := `SELECT ` + postColumns + ` ` + postJoins + `
	          WHERE p.community_id IS NULL AND p.org_id = $1 AND p.deleted = FALSE
	          ORDER BY p.created_on DESC, p.id DESC`
	return r.list(ctx, query, orgID)
}

func (r *postRepository) ListByCommunities(ctx context.Context, communityIDs []int32) ([]domain.Post, error) {
	if len(communityIDs) == 0 {
		return nil, nil
	}
	query := `SELECT ` + postColumns + ` ` + postJoins + `
	          WHERE p.community_id = ANY($1) AND p.deleted = FALSE
	          ORDER BY p.created_on DESC, p.id DESC`
	return r.list(ctx, query, pq.Array(communityIDs))
}

// Search evaluates the same access predicate the feed uses (org-wide match OR
// accessible community) directly in SQL, combined with a case-insensitive
// substring match on title or content.
func (r *postRepository) Search(ctx context.Context, orgID int32, communityIDs []int32, term string, since *time.Time, oldestFirst bool, limit, offset int32) ([]domain.Post, int32, error) {
	pattern := "%" + term + "%"
	where := `WHERE p.deleted = FALSE
	          AND ((p.community_id IS NULL AND p.org_id = $1) OR p.community_id = ANY($2))
	          AND (p.title ILIKE $3 OR p.content ILIKE $3)
	          AND ($4::timestamptz IS NULL OR p.created_on >= $4)`

	var total int32
	countQuery := `SELECT COUNT(*) FROM posts p ` + where
	if err := r.db.QueryRowContext(ctx, countQuery, orgID, pq.Array(communityIDs), pattern, since).Scan(&total); err != nil {
		return nil, 0, err
	}

	dir := "DESC"
	if oldestFirst {
		dir = "ASC"
	}
	query := fmt.Sprintf(`SELECT `+postColumns+` `+postJoins+` `+where+`
	          ORDER BY p.created_on %s, p.id %s
	          LIMIT $5 OFFSET $6`, dir, dir)
	posts, err := r.list(ctx, query, orgID, pq.Array(communityIDs), pattern, since, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	return posts, total, nil
}

func (r *postRepository) list(ctx context.Context, query string, args ...any) ([]domain.Post, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var posts []domain.Post
	for rows.Next() {
		var p domain.Post
		if err := scanPost(rows, &p); err != nil {
			return nil, err
		}
		posts = append(posts, p)
	}
	return posts, rows.Err()
}

func (r *postRepository) CountByOrg(ctx context.Context, orgID int32) (int32, error) {
	var count int32
	query := `SELECT COUNT(*) FROM posts WHERE org_id = $1 AND deleted = FALSE`
	err := r.db.QueryRowContext(ctx, query, orgID).Scan(&count)
	return count, err
}

func (r *postRepository) CountAll(ctx context.Context) (int32, error) {
	var count int32
	err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM posts WHERE deleted = FALSE`).Scan(&count)
	return count, err
}

func (r *postRepository) PurgeDeletedBefore(ctx context.Context, days int) (int64, error) {
	query := `DELETE FROM posts WHERE deleted = TRUE AND updated_on < NOW() - make_interval(days => $1)`
	res, err := r.db.ExecContext(ctx, query, days)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}
