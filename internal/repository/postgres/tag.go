package postgres

import (
	"context"
	"database/sql"

	"communityhub-backend/internal/domain"
	"communityhub-backend/internal/repository"

	"github.com/lib/pq"
)

type tagRepository struct {
	db *sql.DB
}

func NewTagRepository(db *sql.DB) repository.TagRepository {
	return &tagRepository{db: db}
}

func (r *tagRepository) ListByIDs(ctx context.Context, ids []int32) ([]domain.Tag, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	query := `SELECT id, name, community_id FROM tags WHERE id = ANY($1)`
	return r.list(ctx, query, pq.Array(ids))
}

func (r *tagRepository) ListByCommunity(ctx context.Context, communityID int32) ([]domain.Tag, error) {
	query := `SELECT id, name, community_id FROM tags WHERE community_id = $1 ORDER BY name`
	return r.list(ctx, query, communityID)
}

func (r *tagRepository) ListByPost(ctx context.Context, postID int32) ([]domain.Tag, error) {
	query := `SELECT t.id, t.name, t.community_id FROM tags t
	          JOIN post_tags pt ON pt.tag_id = t.id WHERE pt.post_id = $1 ORDER BY t.name`
	return r.list(ctx, query, postID)
}

func (r *tagRepository) list(ctx context.Context, query string, args ...any) ([]domain.Tag, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var tags []domain.Tag
	for rows.Next() {
		var t domain.Tag
		if err := rows.Scan(&t.ID, &t.Name, &t.CommunityID); err != nil {
			return nil, err
		}
		tags = append(tags, t)
	}
	return tags, rows.Err()
}
