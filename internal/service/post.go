package service

import (
	"context"
	"errors"
	"fmt"

	"communityhub-backend/internal/domain"
	"communityhub-backend/internal/repository"
)

var (
	ErrNotAMember        = errors.New("you must be a member of this community to post")
	ErrAdminOnlyPosting  = errors.New("only community admins and moderators may post here")
	ErrTagNotInCommunity = errors.New("tag does not belong to this community")
)

type postService struct {
	membershipSvc  MembershipService
	postRepo       repository.PostRepository
	communityRepo  repository.CommunityRepository
	membershipRepo repository.MembershipRepository
	commentRepo    repository.CommentRepository
	tagRepo        repository.TagRepository
	reactionRepo   repository.ReactionRepository
}

func NewPostService(
	membershipSvc MembershipService,
	postRepo repository.PostRepository,
	communityRepo repository.CommunityRepository,
	membershipRepo repository.MembershipRepository,
	commentRepo repository.CommentRepository,
	tagRepo repository.TagRepository,
	reactionRepo repository.ReactionRepository,
) PostService {
	return &postService{
		membershipSvc:  membershipSvc,
		postRepo:       postRepo,
		communityRepo:  communityRepo,
		membershipRepo: membershipRepo,
		commentRepo:    commentRepo,
		tagRepo:        tagRepo,
		reactionRepo:   reactionRepo,
	}
}

// CreatePost validates membership, the community's admin-only rule and tag
// ownership before any write; the post row and its tag links are inserted in
// one transaction so a failure leaves no partial state.
func (s *postService) CreatePost(ctx context.Context, authorID int32, title, content string, communityID *int32, tagIDs []int32) (*domain.Post, error) {
	scope, err := s.membershipSvc.ResolveScope(ctx, authorID)
	if err != nil {
		return nil, err
	}

	if communityID != nil {
		community, err := s.communityRepo.GetByID(ctx, *communityID)
		if err != nil {
			return nil, err
		}
		m := scope.MembershipFor(*communityID)
		if m == nil || m.Type != domain.MembershipTypeMember {
			return nil, ErrNotAMember
		}
		if community.AdminOnlyPosts && m.Role == domain.MembershipRoleMember {
			return nil, ErrAdminOnlyPosting
		}
	}

	if err := s.validateTags(ctx, communityID, tagIDs); err != nil {
		return nil, err
	}

	post := &domain.Post{
		Title:       title,
		Content:     content,
		AuthorID:    authorID,
		OrgID:       scope.OrgID,
		CommunityID: communityID,
	}
	if err := s.postRepo.CreateWithTags(ctx, post, tagIDs); err != nil {
		return nil, fmt.Errorf("failed to create post: %w", err)
	}

	if tags, err := s.tagRepo.ListByIDs(ctx, tagIDs); err == nil {
		post.Tags = tags
	}
	return post, nil
}

// GetPost enforces the visibility filter and returns the post together with
// its fully nested comment tree.
func (s *postService) GetPost(ctx context.Context, userID, postID int32) (*domain.PostWithComments, error) {
	scope, err := s.membershipSvc.ResolveScope(ctx, userID)
	if err != nil {
		return nil, err
	}

	post, err := s.postRepo.GetByID(ctx, postID)
	if err != nil {
		return nil, err
	}
	var community *domain.Community
	if post.CommunityID != nil {
		if community, err = s.communityRepo.GetByID(ctx, *post.CommunityID); err != nil {
			return nil, err
		}
	}
	if !CanViewPost(post, community, scope) {
		return nil, domain.ErrForbidden
	}

	if tags, err := s.tagRepo.ListByPost(ctx, postID); err == nil {
		post.Tags = tags
	}

	comments, err := s.commentRepo.ListByPost(ctx, postID)
	if err != nil {
		return nil, fmt.Errorf("failed to list comments: %w", err)
	}

	return &domain.PostWithComments{
		Post:     *post,
		Comments: BuildCommentTree(comments),
	}, nil
}

// EditPost is author-only and replaces tag associations wholesale.
func (s *postService) EditPost(ctx context.Context, userID, postID int32, title, content string, tagIDs []int32) (*domain.Post, error) {
	post, err := s.postRepo.GetByID(ctx, postID)
	if err != nil {
		return nil, err
	}
	if post.AuthorID != userID {
		return nil, domain.ErrForbidden
	}

	if err := s.validateTags(ctx, post.CommunityID, tagIDs); err != nil {
		return nil, err
	}

	post.Title = title
	post.Content = content
	if err := s.postRepo.UpdateWithTags(ctx, post, tagIDs); err != nil {
		return nil, fmt.Errorf("failed to update post: %w", err)
	}

	if tags, err := s.tagRepo.ListByIDs(ctx, tagIDs); err == nil {
		post.Tags = tags
	}
	return post, nil
}

func (s *postService) DeletePost(ctx context.Context, userID, postID int32) (*domain.Post, error) {
	post, err := s.postRepo.GetByID(ctx, postID)
	if err != nil {
		return nil, err
	}
	if post.AuthorID != userID {
		return nil, domain.ErrForbidden
	}

	if err := s.postRepo.SoftDelete(ctx, postID); err != nil {
		return nil, fmt.Errorf("failed to delete post: %w", err)
	}
	post.Deleted = true
	return post, nil
}

func (s *postService) SavePost(ctx context.Context, userID, postID int32) error {
	if _, err := s.postRepo.GetByID(ctx, postID); err != nil {
		return err
	}
	return s.reactionRepo.SavePost(ctx, userID, postID)
}

func (s *postService) UnsavePost(ctx context.Context, userID, postID int32) error {
	return s.reactionRepo.UnsavePost(ctx, userID, postID)
}

func (s *postService) ToggleReaction(ctx context.Context, userID, postID int32, kind domain.ReactionKind) (bool, error) {
	if _, err := s.postRepo.GetByID(ctx, postID); err != nil {
		return false, err
	}
	return s.reactionRepo.ToggleReaction(ctx, userID, postID, kind)
}

// validateTags rejects tag ids that do not exist or that belong to a
// community other than the post's. Org-wide posts cannot carry tags since
// every tag is community-owned.
func (s *postService) validateTags(ctx context.Context, communityID *int32, tagIDs []int32) error {
	if len(tagIDs) == 0 {
		return nil
	}
	if communityID == nil {
		return ErrTagNotInCommunity
	}
	tags, err := s.tagRepo.ListByIDs(ctx, tagIDs)
	if err != nil {
		return fmt.Errorf("failed to load tags: %w", err)
	}
	if len(tags) != len(tagIDs) {
		return ErrTagNotInCommunity
	}
	for _, t := range tags {
		if t.CommunityID != *communityID {
			return ErrTagNotInCommunity
		}
	}
	return nil
}
