package service

import (
	"context"
	"fmt"

	"communityhub-backend/internal/domain"
	"communityhub-backend/internal/repository"
)

type membershipService struct {
	userRepo       repository.UserRepository
	membershipRepo repository.MembershipRepository
}

func NewMembershipService(userRepo repository.UserRepository, membershipRepo repository.MembershipRepository) MembershipService {
	return &membershipService{
		userRepo:       userRepo,
		membershipRepo: membershipRepo,
	}
}

func (s *membershipService) ResolveScope(ctx context.Context, userID int32) (*domain.AccessScope, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve user: %w", err)
	}
	if user.OrgID == nil {
		return nil, domain.ErrUnauthorized
	}

	memberships, err := s.membershipRepo.ListActiveByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list memberships: %w", err)
	}

	return &domain.AccessScope{
		UserID:      userID,
		OrgID:       *user.OrgID,
		Memberships: memberships,
	}, nil
}
