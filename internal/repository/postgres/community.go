package postgres

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"communityhub-backend/internal/domain"
	"communityhub-backend/internal/repository"
)

type communityRepository struct {
	db *sql.DB
}

func NewCommunityRepository(db *sql.DB) repository.CommunityRepository {
	return &communityRepository{db: db}
}

const communityColumns = `id, slug, name, description, type, rules, avatar_url, banner_url, admin_only_posts, org_id, created_on`

func (r *communityRepository) Create(ctx context.Context, c *domain.Community, creatorID int32, allowedOrgID *int32) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	now := time.Now()
	query := `INSERT INTO communities (slug, name, description, type, rules, avatar_url, banner_url, admin_only_posts, org_id, created_on)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10) RETURNING id`
	if err := tx.QueryRowContext(ctx, query,
		c.Slug, c.Name, c.Description, c.Type, c.Rules, c.AvatarURL, c.BannerURL, c.AdminOnlyPosts, c.OrgID, now,
	).Scan(&c.ID); err != nil {
		return err
	}

	// Creator joins as a full admin member.
	memberQuery := `INSERT INTO community_members (user_id, community_id, membership_type, role, status, joined_on)
	                VALUES ($1, $2, $3, $4, $5, $6)`
	if _, err := tx.ExecContext(ctx, memberQuery,
		creatorID, c.ID, domain.MembershipTypeMember, domain.MembershipRoleAdmin, domain.MembershipStatusActive, now,
	); err != nil {
		return err
	}

	if allowedOrgID != nil {
		allowQuery := `INSERT INTO community_allowed_orgs (community_id, org_id, permission) VALUES ($1, $2, $3)`
		if _, err := tx.ExecContext(ctx, allowQuery, c.ID, *allowedOrgID, "view"); err != nil {
			return err
		}
	}

	return tx.Commit()
}

func (r *communityRepository) GetByID(ctx context.Context, id int32) (*domain.Community, error) {
	return r.getOne(ctx, `SELECT `+communityColumns+` FROM communities WHERE id = $1`, id)
}

func (r *communityRepository) GetBySlug(ctx context.Context, slug string) (*domain.Community, error) {
	return r.getOne(ctx, `SELECT `+communityColumns+` FROM communities WHERE slug = $1`, slug)
}

func (r *communityRepository) getOne(ctx context.Context, query string, arg any) (*domain.Community, error) {
	c := &domain.Community{}
	err := r.db.QueryRowContext(ctx, query, arg).Scan(
		&c.ID, &c.Slug, &c.Name, &c.Description, &c.Type, &c.Rules,
		&c.AvatarURL, &c.BannerURL, &c.AdminOnlyPosts, &c.OrgID, &c.CreatedOn,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return c, nil
}

func (r *communityRepository) Update(ctx context.Context, c *domain.Community) error {
	query := `UPDATE communities SET name = $1, description = $2, type = $3, rules = $4,
	          avatar_url = $5, banner_url = $6, admin_only_posts = $7 WHERE id = $8`
	_, err := r.db.ExecContext(ctx, query,
		c.Name, c.Description, c.Type, c.Rules, c.AvatarURL, c.BannerURL, c.AdminOnlyPosts, c.ID)
	return err
}

func (r *communityRepository) CountAll(ctx context.Context) (int32, error) {
	var count int32
	err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM communities`).Scan(&count)
	return count, err
}

func (r *communityRepository) CountByOrg(ctx context.Context, orgID int32) (int32, error) {
	var count int32
	err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM communities WHERE org_id = $1`, orgID).Scan(&count)
	return count, err
}
