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

func TestBuildCommentTree_NestsRepliesUnderParents(t *testing.T) {
	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	flat := []domain.Comment{
		{ID: 1, PostID: 7, Content: "root one", CreatedOn: base},
		{ID: 2, PostID: 7, ParentID: int32Ptr(1), Content: "reply", CreatedOn: base.Add(time.Minute)},
		{ID: 3, PostID: 7, ParentID: int32Ptr(2), Content: "nested reply", CreatedOn: base.Add(2 * time.Minute)},
		{ID: 4, PostID: 7, Content: "root two", CreatedOn: base.Add(3 * time.Minute)},
	}

	roots := service.BuildCommentTree(flat)

	require.Len(t, roots, 2)
	// Roots come newest first.
	assert.Equal(t, int32(4), roots[0].ID)
	assert.Equal(t, int32(1), roots[1].ID)

	require.Len(t, roots[1].Replies, 1)
	assert.Equal(t, int32(2), roots[1].Replies[0].ID)
	require.Len(t, roots[1].Replies[0].Replies, 1)
	assert.Equal(t, int32(3), roots[1].Replies[0].Replies[0].ID)

	// Every input comment appears in the tree exactly once.
	seen := map[int32]int{}
	var walk func(nodes []*domain.Comment)
	walk = func(nodes []*domain.Comment) {
		for _, n := range nodes {
			seen[n.ID]++
			walk(n.Replies)
		}
	}
	walk(roots)
	assert.Len(t, seen, len(flat))
	for id, count := range seen {
		assert.Equalf(t, 1, count, "comment %d appeared %d times", id, count)
	}
}

func TestBuildCommentTree_OrphanBecomesRoot(t *testing.T) {
	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	flat := []domain.Comment{
		{ID: 1, PostID: 7, Content: "root", CreatedOn: base.Add(time.Minute)},
		// Parent 99 is not in the snapshot.
		{ID: 2, PostID: 7, ParentID: int32Ptr(99), Content: "orphan", CreatedOn: base},
	}

	roots := service.BuildCommentTree(flat)

	require.Len(t, roots, 2)
	assert.Equal(t, int32(1), roots[0].ID)
	assert.Equal(t, int32(2), roots[1].ID)
	assert.Empty(t, roots[1].Replies)
}

func TestBuildCommentTree_Empty(t *testing.T) {
	assert.Empty(t, service.BuildCommentTree(nil))
	assert.Empty(t, service.BuildCommentTree([]domain.Comment{}))
}

func TestBuildCommentTree_RootTieBrokenByID(t *testing.T) {
	ts := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	flat := []domain.Comment{
		{ID: 1, PostID: 7, CreatedOn: ts},
		{ID: 3, PostID: 7, CreatedOn: ts},
		{ID: 2, PostID: 7, CreatedOn: ts},
	}

	roots := service.BuildCommentTree(flat)

	require.Len(t, roots, 3)
	assert.Equal(t, int32(3), roots[0].ID)
	assert.Equal(t, int32(2), roots[1].ID)
	assert.Equal(t, int32(1), roots[2].ID)
}

type commentFixture struct {
	userRepo       *MockUserRepo
	membershipRepo *MockMembershipRepo
	commentRepo    *MockCommentRepo
	postRepo       *MockPostRepo
	communityRepo  *MockCommunityRepo
	reactionRepo   *MockReactionRepo
	svc            service.CommentService
}

func newCommentFixture() *commentFixture {
	f := &commentFixture{
		userRepo:       new(MockUserRepo),
		membershipRepo: new(MockMembershipRepo),
		commentRepo:    new(MockCommentRepo),
		postRepo:       new(MockPostRepo),
		communityRepo:  new(MockCommunityRepo),
		reactionRepo:   new(MockReactionRepo),
	}
	membershipSvc := service.NewMembershipService(f.userRepo, f.membershipRepo)
	f.svc = service.NewCommentService(membershipSvc, f.commentRepo, f.postRepo, f.communityRepo, f.reactionRepo)
	return f
}

func TestCreateComment_ParentFromDifferentPost(t *testing.T) {
	f := newCommentFixture()
	ctx := context.Background()

	f.userRepo.On("GetByID", mock.Anything, int32(1)).Return(&domain.User{ID: 1, OrgID: int32Ptr(10)}, nil)
	f.membershipRepo.On("ListActiveByUser", mock.Anything, int32(1)).Return([]domain.Membership{}, nil)
	f.postRepo.On("GetByID", mock.Anything, int32(7)).Return(&domain.Post{ID: 7, OrgID: 10}, nil)
	f.commentRepo.On("GetByID", mock.Anything, int32(3)).Return(&domain.Comment{ID: 3, PostID: 8}, nil)

	_, err := f.svc.CreateComment(ctx, 1, 7, "hi", int32Ptr(3))
	assert.ErrorIs(t, err, service.ErrCommentWrongPost)
	f.commentRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestCreateComment_ForbiddenOnInvisiblePost(t *testing.T) {
	f := newCommentFixture()
	ctx := context.Background()

	f.userRepo.On("GetByID", mock.Anything, int32(1)).Return(&domain.User{ID: 1, OrgID: int32Ptr(10)}, nil)
	f.membershipRepo.On("ListActiveByUser", mock.Anything, int32(1)).Return([]domain.Membership{}, nil)
	f.postRepo.On("GetByID", mock.Anything, int32(7)).Return(&domain.Post{ID: 7, OrgID: 11, CommunityID: int32Ptr(21)}, nil)
	f.communityRepo.On("GetByID", mock.Anything, int32(21)).Return(&domain.Community{ID: 21, Type: domain.CommunityTypePrivate}, nil)

	_, err := f.svc.CreateComment(ctx, 1, 7, "hi", nil)
	assert.ErrorIs(t, err, domain.ErrForbidden)
}

func TestUpdateComment_AuthorOnly(t *testing.T) {
	f := newCommentFixture()
	ctx := context.Background()

	f.commentRepo.On("GetByID", mock.Anything, int32(3)).Return(&domain.Comment{ID: 3, PostID: 7, AuthorID: 2}, nil)

	_, err := f.svc.UpdateComment(ctx, 1, 3, "edited")
	assert.ErrorIs(t, err, domain.ErrForbidden)
	f.commentRepo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
}

func TestDeleteComment_SoftDeletes(t *testing.T) {
	f := newCommentFixture()
	ctx := context.Background()

	f.commentRepo.On("GetByID", mock.Anything, int32(3)).Return(&domain.Comment{ID: 3, PostID: 7, AuthorID: 1}, nil)
	f.commentRepo.On("SoftDelete", mock.Anything, int32(3)).Return(nil)

	comment, err := f.svc.DeleteComment(ctx, 1, 3)
	require.NoError(t, err)
	assert.True(t, comment.Deleted)
	f.commentRepo.AssertExpectations(t)
}

func TestToggleHelpfulVote(t *testing.T) {
	f := newCommentFixture()
	ctx := context.Background()

	f.commentRepo.On("GetByID", mock.Anything, int32(3)).Return(&domain.Comment{ID: 3, PostID: 7}, nil)
	f.reactionRepo.On("ToggleHelpfulVote", mock.Anything, int32(1), int32(3)).Return(true, nil).Once()
	f.reactionRepo.On("ToggleHelpfulVote", mock.Anything, int32(1), int32(3)).Return(false, nil).Once()

	voted, err := f.svc.ToggleHelpfulVote(ctx, 1, 3)
	require.NoError(t, err)
	assert.True(t, voted)

	voted, err = f.svc.ToggleHelpfulVote(ctx, 1, 3)
	require.NoError(t, err)
	assert.False(t, voted)
}
