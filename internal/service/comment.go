package service

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"communityhub-backend/internal/domain"
	"communityhub-backend/internal/repository"
)

var ErrCommentWrongPost = errors.New("parent comment belongs to a different post")

// BuildCommentTree reconstructs the nested reply structure from a flat
// comment snapshot. First pass indexes every comment by id with an empty
// reply list; second pass attaches each comment to its parent, or to the
// root list when the parent id is null or missing from the snapshot (an
// orphan degrades to a root rather than failing the request). Every input
// comment ends up in the result exactly once. Roots are ordered newest
// first with ties broken by id descending; reply lists keep the order the
// comments arrived in.
func BuildCommentTree(flat []domain.Comment) []*domain.Comment {
	nodes := make(map[int32]*domain.Comment, len(flat))
	ordered := make([]*domain.Comment, 0, len(flat))
	for i := range flat {
		c := flat[i]
		c.Replies = []*domain.Comment{}
		nodes[c.ID] = &c
		ordered = append(ordered, nodes[c.ID])
	}

	roots := make([]*domain.Comment, 0, len(flat))
	for _, c := range ordered {
		if c.ParentID != nil {
			if parent, ok := nodes[*c.ParentID]; ok {
				parent.Replies = append(parent.Replies, c)
				continue
			}
		}
		roots = append(roots, c)
	}

	sort.Slice(roots, func(i, j int) bool {
		if !roots[i].CreatedOn.Equal(roots[j].CreatedOn) {
			return roots[i].CreatedOn.After(roots[j].CreatedOn)
		}
		return roots[i].ID > roots[j].ID
	})
	return roots
}

type commentService struct {
	membershipSvc MembershipService
	commentRepo   repository.CommentRepository
	postRepo      repository.PostRepository
	communityRepo repository.CommunityRepository
	reactionRepo  repository.ReactionRepository
}

func NewCommentService(
	membershipSvc MembershipService,
	commentRepo repository.CommentRepository,
	postRepo repository.PostRepository,
	communityRepo repository.CommunityRepository,
	reactionRepo repository.ReactionRepository,
) CommentService {
	return &commentService{
		membershipSvc: membershipSvc,
		commentRepo:   commentRepo,
		postRepo:      postRepo,
		communityRepo: communityRepo,
		reactionRepo:  reactionRepo,
	}
}

func (s *commentService) CreateComment(ctx context.Context, userID, postID int32, content string, parentID *int32) (*domain.Comment, error) {
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

	// A reply's parent must belong to the same post.
	if parentID != nil {
		parent, err := s.commentRepo.GetByID(ctx, *parentID)
		if err != nil {
			return nil, err
		}
		if parent.PostID != postID {
			return nil, ErrCommentWrongPost
		}
	}

	comment := &domain.Comment{
		PostID:   postID,
		AuthorID: userID,
		ParentID: parentID,
		Content:  content,
	}
	if err := s.commentRepo.Create(ctx, comment); err != nil {
		return nil, fmt.Errorf("failed to create comment: %w", err)
	}
	return comment, nil
}

func (s *commentService) UpdateComment(ctx context.Context, userID, commentID int32, content string) (*domain.Comment, error) {
	comment, err := s.commentRepo.GetByID(ctx, commentID)
	if err != nil {
		return nil, err
	}
	if comment.AuthorID != userID {
		return nil, domain.ErrForbidden
	}

	comment.Content = content
	if err := s.commentRepo.Update(ctx, comment); err != nil {
		return nil, fmt.Errorf("failed to update comment: %w", err)
	}
	return comment, nil
}

func (s *commentService) DeleteComment(ctx context.Context, userID, commentID int32) (*domain.Comment, error) {
	comment, err := s.commentRepo.GetByID(ctx, commentID)
	if err != nil {
		return nil, err
	}
	if comment.AuthorID != userID {
		return nil, domain.ErrForbidden
	}

	if err := s.commentRepo.SoftDelete(ctx, commentID); err != nil {
		return nil, fmt.Errorf("failed to delete comment: %w", err)
	}
	comment.Deleted = true
	return comment, nil
}

func (s *commentService) ToggleHelpfulVote(ctx context.Context, userID, commentID int32) (bool, error) {
	if _, err := s.commentRepo.GetByID(ctx, commentID); err != nil {
		return false, err
	}
	return s.reactionRepo.ToggleHelpfulVote(ctx, userID, commentID)
}
