package service_test

import (
	"context"
	"testing"
	"time"

	"communityhub-backend/internal/domain"
	"communityhub-backend/internal/service"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type postFixture struct {
	userRepo       *MockUserRepo
	membershipRepo *MockMembershipRepo
	postRepo       *MockPostRepo
	communityRepo  *MockCommunityRepo
	commentRepo    *MockCommentRepo
	tagRepo        *MockTagRepo
	reactionRepo   *MockReactionRepo
	svc            service.PostService
}

func newPostFixture() *postFixture {
	f := &postFixture{
		userRepo:       new(MockUserRepo),
		membershipRepo: new(MockMembershipRepo),
		postRepo:       new(MockPostRepo),
		communityRepo:  new(MockCommunityRepo),
		commentRepo:    new(MockCommentRepo),
		tagRepo:        new(MockTagRepo),
		reactionRepo:   new(MockReactionRepo),
	}
	membershipSvc := service.NewMembershipService(f.userRepo, f.membershipRepo)
	f.svc = service.NewPostService(membershipSvc, f.postRepo, f.communityRepo, f.membershipRepo, f.commentRepo, f.tagRepo, f.reactionRepo)
	return f
}

func (f *postFixture) withUser(userID, orgID int32, memberships []domain.Membership) {
	f.userRepo.On("GetByID", mock.Anything, userID).Return(&domain.User{ID: userID, OrgID: int32Ptr(orgID)}, nil)
	f.membershipRepo.On("ListActiveByUser", mock.Anything, userID).Return(memberships, nil)
}

func TestCreatePost_RequiresMembership(t *testing.T) {
	f := newPostFixture()
	ctx := context.Background()

	f.withUser(1, 10, []domain.Membership{
		{UserID: 1, CommunityID: 20, Type: domain.MembershipTypeFollower, Status: domain.MembershipStatusActive},
	})
	f.communityRepo.On("GetByID", mock.Anything, int32(20)).Return(&domain.Community{ID: 20, Type: domain.CommunityTypePublic}, nil)

	// A follower cannot post; only full members can.
	_, err := f.svc.CreatePost(ctx, 1, "title", "content", int32Ptr(20), nil)
	assert.ErrorIs(t, err, service.ErrNotAMember)
	f.postRepo.AssertNotCalled(t, "CreateWithTags", mock.Anything, mock.Anything, mock.Anything)
}

func TestCreatePost_AdminOnlyCommunity(t *testing.T) {
	f := newPostFixture()
	ctx := context.Background()

	f.withUser(1, 10, []domain.Membership{
		{UserID: 1, CommunityID: 20, Type: domain.MembershipTypeMember, Role: domain.MembershipRoleMember, Status: domain.MembershipStatusActive},
	})
	f.communityRepo.On("GetByID", mock.Anything, int32(20)).Return(&domain.Community{ID: 20, Type: domain.CommunityTypePublic, AdminOnlyPosts: true}, nil)

	_, err := f.svc.CreatePost(ctx, 1, "title", "content", int32Ptr(20), nil)
	assert.ErrorIs(t, err, service.ErrAdminOnlyPosting)
}

func TestCreatePost_ModeratorMayPostInAdminOnlyCommunity(t *testing.T) {
	f := newPostFixture()
	ctx := context.Background()

	f.withUser(1, 10, []domain.Membership{
		{UserID: 1, CommunityID: 20, Type: domain.MembershipTypeMember, Role: domain.MembershipRoleModerator, Status: domain.MembershipStatusActive},
	})
	f.communityRepo.On("GetByID", mock.Anything, int32(20)).Return(&domain.Community{ID: 20, Type: domain.CommunityTypePublic, AdminOnlyPosts: true}, nil)
	f.postRepo.On("CreateWithTags", mock.Anything, mock.AnythingOfType("*domain.Post"), []int32(nil)).Return(nil)
	f.tagRepo.On("ListByIDs", mock.Anything, []int32(nil)).Return([]domain.Tag{}, nil)

	post, err := f.svc.CreatePost(ctx, 1, "title", "content", int32Ptr(20), nil)
	require.NoError(t, err)
	assert.Equal(t, int32(10), post.OrgID)
	assert.Equal(t, int32(20), *post.CommunityID)
}

func TestCreatePost_RejectsForeignTagBeforeInsert(t *testing.T) {
	f := newPostFixture()
	ctx := context.Background()

	f.withUser(1, 10, []domain.Membership{
		{UserID: 1, CommunityID: 20, Type: domain.MembershipTypeMember, Role: domain.MembershipRoleMember, Status: domain.MembershipStatusActive},
	})
	f.communityRepo.On("GetByID", mock.Anything, int32(20)).Return(&domain.Community{ID: 20, Type: domain.CommunityTypePublic}, nil)
	// Tag 999 belongs to community 21.
	f.tagRepo.On("ListByIDs", mock.Anything, []int32{999}).Return([]domain.Tag{{ID: 999, CommunityID: 21}}, nil)

	_, err := f.svc.CreatePost(ctx, 1, "title", "content", int32Ptr(20), []int32{999})
	assert.ErrorIs(t, err, service.ErrTagNotInCommunity)
	f.postRepo.AssertNotCalled(t, "CreateWithTags", mock.Anything, mock.Anything, mock.Anything)
}

func TestCreatePost_UnknownTagID(t *testing.T) {
	f := newPostFixture()
	ctx := context.Background()

	f.withUser(1, 10, []domain.Membership{
		{UserID: 1, CommunityID: 20, Type: domain.MembershipTypeMember, Role: domain.MembershipRoleMember, Status: domain.MembershipStatusActive},
	})
	f.communityRepo.On("GetByID", mock.Anything, int32(20)).Return(&domain.Community{ID: 20, Type: domain.CommunityTypePublic}, nil)
	f.tagRepo.On("ListByIDs", mock.Anything, []int32{1, 999}).Return([]domain.Tag{{ID: 1, CommunityID: 20}}, nil)

	_, err := f.svc.CreatePost(ctx, 1, "title", "content", int32Ptr(20), []int32{1, 999})
	assert.ErrorIs(t, err, service.ErrTagNotInCommunity)
}

func TestCreatePost_OrgWidePostCannotCarryTags(t *testing.T) {
	f := newPostFixture()
	ctx := context.Background()

	f.withUser(1, 10, []domain.Membership{})

	_, err := f.svc.CreatePost(ctx, 1, "title", "content", nil, []int32{1})
	assert.ErrorIs(t, err, service.ErrTagNotInCommunity)
}

func TestGetPost_PrivateCommunityNonMember(t *testing.T) {
	f := newPostFixture()
	ctx := context.Background()

	f.withUser(1, 10, []domain.Membership{})
	f.postRepo.On("GetByID", mock.Anything, int32(7)).Return(&domain.Post{ID: 7, OrgID: 10, CommunityID: int32Ptr(21)}, nil)
	f.communityRepo.On("GetByID", mock.Anything, int32(21)).Return(&domain.Community{ID: 21, Type: domain.CommunityTypePrivate}, nil)

	_, err := f.svc.GetPost(ctx, 1, 7)
	assert.ErrorIs(t, err, domain.ErrForbidden)
	f.commentRepo.AssertNotCalled(t, "ListByPost", mock.Anything, mock.Anything)
}

func TestGetPost_PublicCommunityNonMember(t *testing.T) {
	f := newPostFixture()
	ctx := context.Background()
	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	f.withUser(1, 10, []domain.Membership{})
	f.postRepo.On("GetByID", mock.Anything, int32(7)).Return(&domain.Post{ID: 7, OrgID: 11, CommunityID: int32Ptr(20)}, nil)
	f.communityRepo.On("GetByID", mock.Anything, int32(20)).Return(&domain.Community{ID: 20, Type: domain.CommunityTypePublic}, nil)
	f.tagRepo.On("ListByPost", mock.Anything, int32(7)).Return([]domain.Tag{}, nil)
	f.commentRepo.On("ListByPost", mock.Anything, int32(7)).Return([]domain.Comment{
		{ID: 1, PostID: 7, CreatedOn: base},
		{ID: 2, PostID: 7, ParentID: int32Ptr(1), CreatedOn: base.Add(time.Minute)},
	}, nil)

	got, err := f.svc.GetPost(ctx, 1, 7)
	require.NoError(t, err)
	require.Len(t, got.Comments, 1)
	assert.Equal(t, int32(1), got.Comments[0].ID)
	require.Len(t, got.Comments[0].Replies, 1)
	assert.Equal(t, int32(2), got.Comments[0].Replies[0].ID)
}

func TestEditPost_AuthorOnly(t *testing.T) {
	f := newPostFixture()
	ctx := context.Background()

	f.postRepo.On("GetByID", mock.Anything, int32(7)).Return(&domain.Post{ID: 7, AuthorID: 2, OrgID: 10}, nil)

	_, err := f.svc.EditPost(ctx, 1, 7, "new title", "new content", nil)
	assert.ErrorIs(t, err, domain.ErrForbidden)
	f.postRepo.AssertNotCalled(t, "UpdateWithTags", mock.Anything, mock.Anything, mock.Anything)
}

func TestDeletePost_SoftDeletes(t *testing.T) {
	f := newPostFixture()
	ctx := context.Background()

	f.postRepo.On("GetByID", mock.Anything, int32(7)).Return(&domain.Post{ID: 7, AuthorID: 1, OrgID: 10}, nil)
	f.postRepo.On("SoftDelete", mock.Anything, int32(7)).Return(nil)

	post, err := f.svc.DeletePost(ctx, 1, 7)
	require.NoError(t, err)
	assert.True(t, post.Deleted)
	f.postRepo.AssertExpectations(t)
}

func TestSavePost_UnknownPost(t *testing.T) {
	f := newPostFixture()
	ctx := context.Background()

	f.postRepo.On("GetByID", mock.Anything, int32(404)).Return(nil, domain.ErrNotFound)

	err := f.svc.SavePost(ctx, 1, 404)
	assert.ErrorIs(t, err, domain.ErrNotFound)
	f.reactionRepo.AssertNotCalled(t, "SavePost", mock.Anything, mock.Anything, mock.Anything)
}

func TestToggleReaction(t *testing.T) {
	f := newPostFixture()
	ctx := context.Background()

	f.postRepo.On("GetByID", mock.Anything, int32(7)).Return(&domain.Post{ID: 7, OrgID: 10}, nil)
	f.reactionRepo.On("ToggleReaction", mock.Anything, int32(1), int32(7), domain.ReactionLike).Return(true, nil)

	added, err := f.svc.ToggleReaction(ctx, 1, 7, domain.ReactionLike)
	require.NoError(t, err)
	assert.True(t, added)
}
