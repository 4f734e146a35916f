package postgres

import (
	"context"
	"database/sql"
	"errors"

	"communityhub-backend/internal/domain"
	"communityhub-backend/internal/repository"
)

type membershipRepository struct {
	db *sql.DB
}

func NewMembershipRepository(db *sql.DB) repository.MembershipRepository {
	return &membershipRepository{db: db}
}

func (r *membershipRepository) Get(ctx context.Context, userID, communityID int32) (*domain.Membership, error) {
	m := &domain.Membership{}
	query := `SELECT user_id, community_id, membership_type, role, status, joined_on
	          FROM community_members WHERE user_id = $1 AND community_id = $2`
	err := r.db.QueryRowContext(ctx, query, userID, communityID).Scan(
		&m.UserID, &m.CommunityID, &m.Type, &m.Role, &m.Status, &m.JoinedOn)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return m, nil
}

func (r *membershipRepository) ListActiveByUser(ctx context.Context, userID int32) ([]domain.Membership, error) {
	query := `SELECT user_id, community_id, membership_type, role, status, joined_on
	          FROM community_members WHERE user_id = $1 AND status = $2`
	rows, err := r.db.QueryContext(ctx, query, userID, domain.MembershipStatusActive)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var memberships []domain.Membership
	for rows.Next() {
		var m domain.Membership
		if err := rows.Scan(&m.UserID, &m.CommunityID, &m.Type, &m.Role, &m.Status, &m.JoinedOn); err != nil {
			return nil, err
		}
		memberships = append(memberships, m)
	}
	return memberships, rows.Err()
}

func (r *membershipRepository) Create(ctx context.Context, m *domain.Membership) error {
	query := `INSERT INTO community_members (user_id, community_id, membership_type, role, status, joined_on)
	          VALUES ($1, $2, $3, $4, $5, $6)`
	_, err := r.db.ExecContext(ctx, query, m.UserID, m.CommunityID, m.Type, m.Role, m.Status, m.JoinedOn)
	return err
}

func (r *membershipRepository) Update(ctx context.Context, m *domain.Membership) error {
	query := `UPDATE community_members SET membership_type = $1, role = $2, status = $3
	          WHERE user_id = $4 AND community_id = $5`
	_, err := r.db.ExecContext(ctx, query, m.Type, m.Role, m.Status, m.UserID, m.CommunityID)
	return err
}
