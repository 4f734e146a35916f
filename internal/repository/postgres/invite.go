package postgres

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"communityhub-backend/internal/domain"
	"communityhub-backend/internal/repository"
)

type inviteRepository struct {
	db *sql.DB
}

func NewInviteRepository(db *sql.DB) repository.InviteRepository {
	return &inviteRepository{db: db}
}

func (r *inviteRepository) Create(ctx context.Context, inv *domain.Invite) error {
	query := `INSERT INTO community_invites (code, community_id, role, email, created_by, expires_on, created_on)
	          VALUES ($1, $2, $3, $4, $5, $6, $7) RETURNING id`
	return r.db.QueryRowContext(ctx, query,
		inv.Code, inv.CommunityID, inv.Role, inv.Email, inv.CreatedBy, inv.ExpiresOn, time.Now()).Scan(&inv.ID)
}

func (r *inviteRepository) GetByCode(ctx context.Context, code string) (*domain.Invite, error) {
	inv := &domain.Invite{}
	query := `SELECT id, code, community_id, role, email, created_by, expires_on, used_on, used_by, created_on
	          FROM community_invites WHERE code = $1`
	err := r.db.QueryRowContext(ctx, query, code).Scan(
		&inv.ID, &inv.Code, &inv.CommunityID, &inv.Role, &inv.Email,
		&inv.CreatedBy, &inv.ExpiresOn, &inv.UsedOn, &inv.UsedBy, &inv.CreatedOn)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return inv, nil
}

// MarkUsed is conditional on the invite being unused so that two concurrent
// redemptions cannot both succeed.
func (r *inviteRepository) MarkUsed(ctx context.Context, code string, userID int32) (bool, error) {
	query := `UPDATE community_invites SET used_on = $1, used_by = $2 WHERE code = $3 AND used_on IS NULL`
	res, err := r.db.ExecContext(ctx, query, time.Now(), userID, code)
	if err != nil {
		return false, err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return affected == 1, nil
}

func (r *inviteRepository) DeleteExpiredUnused(ctx context.Context) (int64, error) {
	query := `DELETE FROM community_invites WHERE used_on IS NULL AND expires_on < $1`
	res, err := r.db.ExecContext(ctx, query, time.Now())
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}
