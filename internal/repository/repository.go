package repository

import (
	"context"
	"time"

	"communityhub-backend/internal/domain"
)

type UserRepository interface {
	Create(ctx context.Context, user *domain.User) error
	GetByID(ctx context.Context, id int32) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	Update(ctx context.Context, user *domain.User) error
	CountAll(ctx context.Context) (int32, error)
}

type OrganizationRepository interface {
	Create(ctx context.Context, org *domain.Organization) error
	GetByID(ctx context.Context, id int32) (*domain.Organization, error)
}

type CommunityRepository interface {
	// Create inserts the community, enrolls the creator as an admin member
	// and optionally records an allowed-org grant, all in one transaction.
	Create(ctx context.Context, c *domain.Community, creatorID int32, allowedOrgID *int32) error
	GetByID(ctx context.Context, id int32) (*domain.Community, error)
	GetBySlug(ctx context.Context, slug string) (*domain.Community, error)
	Update(ctx context.Context, c *domain.Community) error
	CountAll(ctx context.Context) (int32, error)
	CountByOrg(ctx context.Context, orgID int32) (int32, error)
}

type MembershipRepository interface {
	Get(ctx context.Context, userID, communityID int32) (*domain.Membership, error)
	ListActiveByUser(ctx context.Context, userID int32) ([]domain.Membership, error)
	Create(ctx context.Context, m *domain.Membership) error
	// Update rewrites type, role and status of the existing (user, community)
	// row; used for follower→member upgrades and role transitions.
	Update(ctx context.Context, m *domain.Membership) error
}

type InviteRepository interface {
	Create(ctx context.Context, inv *domain.Invite) error
	GetByCode(ctx context.Context, code string) (*domain.Invite, error)
	// MarkUsed stamps the invite used by the given user, but only when it is
	// still unused; returns false when another redemption won the race.
	MarkUsed(ctx context.Context, code string, userID int32) (bool, error)
	DeleteExpiredUnused(ctx context.Context) (int64, error)
}

type PostRepository interface {
	// CreateWithTags inserts the post and its tag links in one transaction;
	// a failure on any tag link leaves no post row behind.
	CreateWithTags(ctx context.Context, post *domain.Post, tagIDs []int32) error
	GetByID(ctx context.Context, id int32) (*domain.Post, error)
	// UpdateWithTags rewrites title/content and replaces the post's tag
	// associations wholesale, in one transaction.
	UpdateWithTags(ctx context.Context, post *domain.Post, tagIDs []int32) error
	SoftDelete(ctx context.Context, id int32) error
	// ListOrgWide returns non-deleted posts with no community in the given
	// org, newest first.
	ListOrgWide(ctx context.Context, orgID int32) ([]domain.Post, error)
	// ListByCommunities returns non-deleted posts belonging to any of the
	// given communities, newest first.
	ListByCommunities(ctx context.Context, communityIDs []int32) ([]domain.Post, error)
	// Search applies the feed access predicate (org-wide match OR community
	// membership) combined with a case-insensitive substring match on title
	// or content, paginated in SQL. Returns the page and the total count.
	Search(ctx context.Context, orgID int32, communityIDs []int32, term string, since *time.Time, oldestFirst bool, limit, offset int32) ([]domain.Post, int32, error)
	CountByOrg(ctx context.Context, orgID int32) (int32, error)
	CountAll(ctx context.Context) (int32, error)
	PurgeDeletedBefore(ctx context.Context, days int) (int64, error)
}

type CommentRepository interface {
	Create(ctx context.Context, c *domain.Comment) error
	GetByID(ctx context.Context, id int32) (*domain.Comment, error)
	Update(ctx context.Context, c *domain.Comment) error
	SoftDelete(ctx context.Context, id int32) error
	// ListByPost returns the post's non-deleted comments flat, newest first.
	ListByPost(ctx context.Context, postID int32) ([]domain.Comment, error)
	PurgeDeletedBefore(ctx context.Context, days int) (int64, error)
}

type TagRepository interface {
	ListByIDs(ctx context.Context, ids []int32) ([]domain.Tag, error)
	ListByCommunity(ctx context.Context, communityID int32) ([]domain.Tag, error)
	ListByPost(ctx context.Context, postID int32) ([]domain.Tag, error)
}

type ReactionRepository interface {
	SavePost(ctx context.Context, userID, postID int32) error
	UnsavePost(ctx context.Context, userID, postID int32) error
	// ToggleReaction adds the reaction if absent and removes it if present;
	// returns true when the reaction exists after the call.
	ToggleReaction(ctx context.Context, userID, postID int32, kind domain.ReactionKind) (bool, error)
	ToggleHelpfulVote(ctx context.Context, userID, commentID int32) (bool, error)
}
