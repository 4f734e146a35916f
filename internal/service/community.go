package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"communityhub-backend/internal/domain"
	"communityhub-backend/internal/logger"
	"communityhub-backend/internal/repository"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

var (
	ErrDuplicateSlug        = errors.New("a community with this slug already exists")
	ErrInvalidCommunityType = errors.New("community type must be public or private")
	ErrInviteExpired        = errors.New("invitation has expired")
	ErrInviteUsed           = errors.New("invitation has already been used")
	ErrTargetNotMember      = errors.New("target user is not a member of this community")
	ErrTargetNotModerator   = errors.New("target user is not a moderator of this community")
	ErrRegistrationRequired = errors.New("registration details are required for new users")
)

const defaultInviteExpiryDays = 7

type communityService struct {
	membershipSvc  MembershipService
	communityRepo  repository.CommunityRepository
	membershipRepo repository.MembershipRepository
	inviteRepo     repository.InviteRepository
	userRepo       repository.UserRepository
	postRepo       repository.PostRepository
	emailSvc       EmailService
	inviteBaseURL  string
}

func NewCommunityService(
	membershipSvc MembershipService,
	communityRepo repository.CommunityRepository,
	membershipRepo repository.MembershipRepository,
	inviteRepo repository.InviteRepository,
	userRepo repository.UserRepository,
	postRepo repository.PostRepository,
	emailSvc EmailService,
	inviteBaseURL string,
) CommunityService {
	return &communityService{
		membershipSvc:  membershipSvc,
		communityRepo:  communityRepo,
		membershipRepo: membershipRepo,
		inviteRepo:     inviteRepo,
		userRepo:       userRepo,
		postRepo:       postRepo,
		emailSvc:       emailSvc,
		inviteBaseURL:  inviteBaseURL,
	}
}

// Create enforces slug uniqueness before any row is written. The community,
// the creator's admin membership and the optional allowed-org grant are
// inserted in one transaction by the repository.
func (s *communityService) Create(ctx context.Context, creatorID int32, c *domain.Community, allowedOrgID *int32) (*domain.Community, error) {
	if c.Type != domain.CommunityTypePublic && c.Type != domain.CommunityTypePrivate {
		return nil, ErrInvalidCommunityType
	}

	existing, err := s.communityRepo.GetBySlug(ctx, c.Slug)
	if err != nil && !errors.Is(err, domain.ErrNotFound) {
		return nil, fmt.Errorf("failed to check slug: %w", err)
	}
	if existing != nil {
		return nil, ErrDuplicateSlug
	}

	if err := s.communityRepo.Create(ctx, c, creatorID, allowedOrgID); err != nil {
		return nil, fmt.Errorf("failed to create community: %w", err)
	}
	return c, nil
}

func (s *communityService) Update(ctx context.Context, userID, communityID int32, upd CommunityUpdate) (*domain.Community, error) {
	community, err := s.communityRepo.GetByID(ctx, communityID)
	if err != nil {
		return nil, err
	}
	if err := s.requireRole(ctx, userID, communityID, domain.MembershipRoleAdmin, domain.MembershipRoleModerator); err != nil {
		return nil, err
	}

	if upd.Name != nil {
		community.Name = *upd.Name
	}
	if upd.Description != nil {
		community.Description = *upd.Description
	}
	if upd.Type != nil {
		if *upd.Type != domain.CommunityTypePublic && *upd.Type != domain.CommunityTypePrivate {
			return nil, ErrInvalidCommunityType
		}
		community.Type = *upd.Type
	}
	if upd.Rules != nil {
		community.Rules = *upd.Rules
	}
	if upd.AvatarURL != nil {
		community.AvatarURL = *upd.AvatarURL
	}
	if upd.BannerURL != nil {
		community.BannerURL = *upd.BannerURL
	}
	if upd.AdminOnlyPosts != nil {
		community.AdminOnlyPosts = *upd.AdminOnlyPosts
	}

	if err := s.communityRepo.Update(ctx, community); err != nil {
		return nil, fmt.Errorf("failed to update community: %w", err)
	}
	return community, nil
}

func (s *communityService) AssignModerator(ctx context.Context, actorID, communityID, targetID int32) (*domain.Membership, error) {
	if err := s.requireRole(ctx, actorID, communityID, domain.MembershipRoleAdmin); err != nil {
		return nil, err
	}

	target, err := s.membershipRepo.Get(ctx, targetID, communityID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, ErrTargetNotMember
		}
		return nil, err
	}
	if target.Type != domain.MembershipTypeMember || target.Role != domain.MembershipRoleMember {
		return nil, ErrTargetNotMember
	}

	target.Role = domain.MembershipRoleModerator
	if err := s.membershipRepo.Update(ctx, target); err != nil {
		return nil, fmt.Errorf("failed to assign moderator: %w", err)
	}
	return target, nil
}

func (s *communityService) RemoveModerator(ctx context.Context, actorID, communityID, targetID int32) (*domain.Membership, error) {
	if err := s.requireRole(ctx, actorID, communityID, domain.MembershipRoleAdmin); err != nil {
		return nil, err
	}

	target, err := s.membershipRepo.Get(ctx, targetID, communityID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, ErrTargetNotModerator
		}
		return nil, err
	}
	if target.Role != domain.MembershipRoleModerator {
		return nil, ErrTargetNotModerator
	}

	target.Role = domain.MembershipRoleMember
	if err := s.membershipRepo.Update(ctx, target); err != nil {
		return nil, fmt.Errorf("failed to remove moderator: %w", err)
	}
	return target, nil
}

func (s *communityService) CreateInviteLink(ctx context.Context, actorID, communityID int32, role domain.MembershipRole, expiresInDays int) (*domain.Invite, string, error) {
	if _, err := s.communityRepo.GetByID(ctx, communityID); err != nil {
		return nil, "", err
	}
	if err := s.requireRole(ctx, actorID, communityID, domain.MembershipRoleAdmin, domain.MembershipRoleModerator); err != nil {
		return nil, "", err
	}

	if expiresInDays <= 0 {
		expiresInDays = defaultInviteExpiryDays
	}
	if role == "" {
		role = domain.MembershipRoleMember
	}

	inv := &domain.Invite{
		Code:        uuid.NewString(),
		CommunityID: communityID,
		Role:        role,
		CreatedBy:   actorID,
		ExpiresOn:   time.Now().AddDate(0, 0, expiresInDays),
	}
	if err := s.inviteRepo.Create(ctx, inv); err != nil {
		return nil, "", fmt.Errorf("failed to create invite: %w", err)
	}
	return inv, s.inviteBaseURL + "/invite/" + inv.Code, nil
}

func (s *communityService) GetInviteInfo(ctx context.Context, code string) (*InviteInfo, error) {
	inv, err := s.validInvite(ctx, code)
	if err != nil {
		return nil, err
	}
	community, err := s.communityRepo.GetByID(ctx, inv.CommunityID)
	if err != nil {
		return nil, err
	}
	return &InviteInfo{
		Email:         inv.Email,
		Role:          inv.Role,
		CommunityName: community.Name,
		OrgID:         community.OrgID,
	}, nil
}

func (s *communityService) JoinViaInvite(ctx context.Context, userID *int32, code string, reg *Registration) (*domain.Membership, *domain.Community, error) {
	inv, err := s.validInvite(ctx, code)
	if err != nil {
		return nil, nil, err
	}
	community, err := s.communityRepo.GetByID(ctx, inv.CommunityID)
	if err != nil {
		return nil, nil, err
	}

	var uid int32
	if userID != nil {
		uid = *userID
	} else {
		if reg == nil || reg.Email == "" || reg.Password == "" {
			return nil, nil, ErrRegistrationRequired
		}
		user, err := s.registerUser(ctx, reg, community.OrgID)
		if err != nil {
			return nil, nil, err
		}
		uid = user.ID
	}

	// The conditional update is the single-use gate: only one redemption
	// can flip used_on from NULL.
	used, err := s.inviteRepo.MarkUsed(ctx, code, uid)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to mark invite used: %w", err)
	}
	if !used {
		return nil, nil, ErrInviteUsed
	}

	membership, err := s.membershipRepo.Get(ctx, uid, inv.CommunityID)
	switch {
	case err == nil:
		// Follower upgrades to member in place; an existing member keeps
		// their row untouched, making redemption idempotent in effect.
		if membership.Type == domain.MembershipTypeFollower {
			membership.Type = domain.MembershipTypeMember
			membership.Role = inv.Role
			membership.Status = domain.MembershipStatusActive
			if err := s.membershipRepo.Update(ctx, membership); err != nil {
				return nil, nil, fmt.Errorf("failed to upgrade membership: %w", err)
			}
		}
	case errors.Is(err, domain.ErrNotFound):
		membership = &domain.Membership{
			UserID:      uid,
			CommunityID: inv.CommunityID,
			Type:        domain.MembershipTypeMember,
			Role:        inv.Role,
			Status:      domain.MembershipStatusActive,
			JoinedOn:    time.Now(),
		}
		if err := s.membershipRepo.Create(ctx, membership); err != nil {
			return nil, nil, fmt.Errorf("failed to create membership: %w", err)
		}
	default:
		return nil, nil, err
	}

	return membership, community, nil
}

func (s *communityService) InviteUsersByEmail(ctx context.Context, actorID, communityID int32, emails []string, role domain.MembershipRole, senderName string) ([]EmailInviteOutcome, int32, error) {
	community, err := s.communityRepo.GetByID(ctx, communityID)
	if err != nil {
		return nil, 0, err
	}
	if err := s.requireRole(ctx, actorID, communityID, domain.MembershipRoleAdmin, domain.MembershipRoleModerator); err != nil {
		return nil, 0, err
	}
	if role == "" {
		role = domain.MembershipRoleMember
	}
	if senderName == "" {
		if actor, err := s.userRepo.GetByID(ctx, actorID); err == nil {
			senderName = actor.Name
		}
	}

	outcomes := make([]EmailInviteOutcome, 0, len(emails))
	var sent int32
	for _, email := range emails {
		addr := email
		inv := &domain.Invite{
			Code:        uuid.NewString(),
			CommunityID: communityID,
			Role:        role,
			Email:       &addr,
			CreatedBy:   actorID,
			ExpiresOn:   time.Now().AddDate(0, 0, defaultInviteExpiryDays),
		}
		if err := s.inviteRepo.Create(ctx, inv); err != nil {
			outcomes = append(outcomes, EmailInviteOutcome{Email: email, Error: "failed to create invite"})
			logger.Error("Failed to create email invite", "community_id", communityID, "error", err)
			continue
		}

		link := s.inviteBaseURL + "/invite/" + inv.Code
		if err := s.emailSvc.SendCommunityInvitation(ctx, email, community.Name, senderName, link); err != nil {
			outcomes = append(outcomes, EmailInviteOutcome{Email: email, Error: "failed to send email"})
			logger.Error("Failed to send invitation email", "community_id", communityID, "error", err)
			continue
		}

		outcomes = append(outcomes, EmailInviteOutcome{Email: email, Success: true})
		sent++
	}
	return outcomes, sent, nil
}

func (s *communityService) GetStats(ctx context.Context, userID int32) (*domain.Stats, error) {
	scope, err := s.membershipSvc.ResolveScope(ctx, userID)
	if err != nil {
		return nil, err
	}

	stats := &domain.Stats{}
	if stats.TotalUsers, err = s.userRepo.CountAll(ctx); err != nil {
		return nil, fmt.Errorf("failed to count users: %w", err)
	}
	if stats.TotalPosts, err = s.postRepo.CountAll(ctx); err != nil {
		return nil, fmt.Errorf("failed to count posts: %w", err)
	}
	if stats.TotalCommunities, err = s.communityRepo.CountAll(ctx); err != nil {
		return nil, fmt.Errorf("failed to count communities: %w", err)
	}
	if stats.OrgCommunityCount, err = s.communityRepo.CountByOrg(ctx, scope.OrgID); err != nil {
		return nil, fmt.Errorf("failed to count org communities: %w", err)
	}
	return stats, nil
}

// validInvite loads the invite and rejects used or expired codes.
func (s *communityService) validInvite(ctx context.Context, code string) (*domain.Invite, error) {
	inv, err := s.inviteRepo.GetByCode(ctx, code)
	if err != nil {
		return nil, err
	}
	if inv.UsedOn != nil {
		return nil, ErrInviteUsed
	}
	if inv.ExpiresOn.Before(time.Now()) {
		return nil, ErrInviteExpired
	}
	return inv, nil
}

func (s *communityService) registerUser(ctx context.Context, reg *Registration, orgID *int32) (*domain.User, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(reg.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	user := &domain.User{
		Name:         reg.Name,
		Email:        reg.Email,
		Role:         domain.UserRoleUser,
		OrgID:        orgID,
		PasswordHash: string(hash),
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, fmt.Errorf("failed to register user: %w", err)
	}
	return user, nil
}

func (s *communityService) requireRole(ctx context.Context, userID, communityID int32, roles ...domain.MembershipRole) error {
	m, err := s.membershipRepo.Get(ctx, userID, communityID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.ErrForbidden
		}
		return err
	}
	if m.Status != domain.MembershipStatusActive {
		return domain.ErrForbidden
	}
	for _, role := range roles {
		if m.Role == role {
			return nil
		}
	}
	return domain.ErrForbidden
}
