package service_test

import (
	"context"
	"time"

	"communityhub-backend/internal/domain"

	"github.com/stretchr/testify/mock"
)

type MockUserRepo struct{ mock.Mock }

func (m *MockUserRepo) Create(ctx context.Context, user *domain.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepo) GetByID(ctx context.Context, id int32) (*domain.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserRepo) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserRepo) Update(ctx context.Context, user *domain.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepo) CountAll(ctx context.Context) (int32, error) {
	args := m.Called(ctx)
	return args.Get(0).(int32), args.Error(1)
}

type MockOrganizationRepo struct{ mock.Mock }

func (m *MockOrganizationRepo) Create(ctx context.Context, org *domain.Organization) error {
	args := m.Called(ctx, org)
	return args.Error(0)
}

func (m *MockOrganizationRepo) GetByID(ctx context.Context, id int32) (*domain.Organization, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Organization), args.Error(1)
}

type MockCommunityRepo struct{ mock.Mock }

func (m *MockCommunityRepo) Create(ctx context.Context, c *domain.Community, creatorID int32, allowedOrgID *int32) error {
	args := m.Called(ctx, c, creatorID, allowedOrgID)
	return args.Error(0)
}

func (m *MockCommunityRepo) GetByID(ctx context.Context, id int32) (*domain.Community, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Community), args.Error(1)
}

func (m *MockCommunityRepo) GetBySlug(ctx context.Context, slug string) (*domain.Community, error) {
	args := m.Called(ctx, slug)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Community), args.Error(1)
}

func (m *MockCommunityRepo) Update(ctx context.Context, c *domain.Community) error {
	args := m.Called(ctx, c)
	return args.Error(0)
}

func (m *MockCommunityRepo) CountAll(ctx context.Context) (int32, error) {
	args := m.Called(ctx)
	return args.Get(0).(int32), args.Error(1)
}

func (m *MockCommunityRepo) CountByOrg(ctx context.Context, orgID int32) (int32, error) {
	args := m.Called(ctx, orgID)
	return args.Get(0).(int32), args.Error(1)
}

type MockMembershipRepo struct{ mock.Mock }

func (m *MockMembershipRepo) Get(ctx context.Context, userID, communityID int32) (*domain.Membership, error) {
	args := m.Called(ctx, userID, communityID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Membership), args.Error(1)
}

func (m *MockMembershipRepo) ListActiveByUser(ctx context.Context, userID int32) ([]domain.Membership, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Membership), args.Error(1)
}

func (m *MockMembershipRepo) Create(ctx context.Context, membership *domain.Membership) error {
	args := m.Called(ctx, membership)
	return args.Error(0)
}

func (m *MockMembershipRepo) Update(ctx context.Context, membership *domain.Membership) error {
	args := m.Called(ctx, membership)
	return args.Error(0)
}

type MockInviteRepo struct{ mock.Mock }

func (m *MockInviteRepo) Create(ctx context.Context, inv *domain.Invite) error {
	args := m.Called(ctx, inv)
	return args.Error(0)
}

func (m *MockInviteRepo) GetByCode(ctx context.Context, code string) (*domain.Invite, error) {
	args := m.Called(ctx, code)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Invite), args.Error(1)
}

func (m *MockInviteRepo) MarkUsed(ctx context.Context, code string, userID int32) (bool, error) {
	args := m.Called(ctx, code, userID)
	return args.Bool(0), args.Error(1)
}

func (m *MockInviteRepo) DeleteExpiredUnused(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

type MockPostRepo struct{ mock.Mock }

func (m *MockPostRepo) CreateWithTags(ctx context.Context, post *domain.Post, tagIDs []int32) error {
	args := m.Called(ctx, post, tagIDs)
	return args.Error(0)
}

func (m *MockPostRepo) GetByID(ctx context.Context, id int32) (*domain.Post, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Post), args.Error(1)
}

func (m *MockPostRepo) UpdateWithTags(ctx context.Context, post *domain.Post, tagIDs []int32) error {
	args := m.Called(ctx, post, tagIDs)
	return args.Error(0)
}

func (m *MockPostRepo) SoftDelete(ctx context.Context, id int32) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockPostRepo) ListOrgWide(ctx context.Context, orgID int32) ([]domain.Post, error) {
	args := m.Called(ctx, orgID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Post), args.Error(1)
}

func (m *MockPostRepo) ListByCommunities(ctx context.Context, communityIDs []int32) ([]domain.Post, error) {
	args := m.Called(ctx, communityIDs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Post), args.Error(1)
}

func (m *MockPostRepo) Search(ctx context.Context, orgID int32, communityIDs []int32, term string, since *time.Time, oldestFirst bool, limit, offset int32) ([]domain.Post, int32, error) {
	args := m.Called(ctx, orgID, communityIDs, term, since, oldestFirst, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Get(1).(int32), args.Error(2)
	}
	return args.Get(0).([]domain.Post), args.Get(1).(int32), args.Error(2)
}

func (m *MockPostRepo) CountByOrg(ctx context.Context, orgID int32) (int32, error) {
	args := m.Called(ctx, orgID)
	return args.Get(0).(int32), args.Error(1)
}

func (m *MockPostRepo) CountAll(ctx context.Context) (int32, error) {
	args := m.Called(ctx)
	return args.Get(0).(int32), args.Error(1)
}

func (m *MockPostRepo) PurgeDeletedBefore(ctx context.Context, days int) (int64, error) {
	args := m.Called(ctx, days)
	return args.Get(0).(int64), args.Error(1)
}

type MockCommentRepo struct{ mock.Mock }

func (m *MockCommentRepo) Create(ctx context.Context, c *domain.Comment) error {
	args := m.Called(ctx, c)
	return args.Error(0)
}

func (m *MockCommentRepo) GetByID(ctx context.Context, id int32) (*domain.Comment, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Comment), args.Error(1)
}

func (m *MockCommentRepo) Update(ctx context.Context, c *domain.Comment) error {
	args := m.Called(ctx, c)
	return args.Error(0)
}

func (m *MockCommentRepo) SoftDelete(ctx context.Context, id int32) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockCommentRepo) ListByPost(ctx context.Context, postID int32) ([]domain.Comment, error) {
	args := m.Called(ctx, postID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Comment), args.Error(1)
}

func (m *MockCommentRepo) PurgeDeletedBefore(ctx context.Context, days int) (int64, error) {
	args := m.Called(ctx, days)
	return args.Get(0).(int64), args.Error(1)
}

type MockTagRepo struct{ mock.Mock }

func (m *MockTagRepo) ListByIDs(ctx context.Context, ids []int32) ([]domain.Tag, error) {
	args := m.Called(ctx, ids)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Tag), args.Error(1)
}

func (m *MockTagRepo) ListByCommunity(ctx context.Context, communityID int32) ([]domain.Tag, error) {
	args := m.Called(ctx, communityID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Tag), args.Error(1)
}

func (m *MockTagRepo) ListByPost(ctx context.Context, postID int32) ([]domain.Tag, error) {
	args := m.Called(ctx, postID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Tag), args.Error(1)
}

type MockReactionRepo struct{ mock.Mock }

func (m *MockReactionRepo) SavePost(ctx context.Context, userID, postID int32) error {
	args := m.Called(ctx, userID, postID)
	return args.Error(0)
}

func (m *MockReactionRepo) UnsavePost(ctx context.Context, userID, postID int32) error {
	args := m.Called(ctx, userID, postID)
	return args.Error(0)
}

func (m *MockReactionRepo) ToggleReaction(ctx context.Context, userID, postID int32, kind domain.ReactionKind) (bool, error) {
	args := m.Called(ctx, userID, postID, kind)
	return args.Bool(0), args.Error(1)
}

func (m *MockReactionRepo) ToggleHelpfulVote(ctx context.Context, userID, commentID int32) (bool, error) {
	args := m.Called(ctx, userID, commentID)
	return args.Bool(0), args.Error(1)
}

type MockEmailService struct{ mock.Mock }

func (m *MockEmailService) SendCommunityInvitation(ctx context.Context, email, communityName, senderName, inviteLink string) error {
	args := m.Called(ctx, email, communityName, senderName, inviteLink)
	return args.Error(0)
}
