package service

import (
	"context"

	"communityhub-backend/internal/domain"
)

// PageOptions carries the shared pagination and filtering knobs of the feed
// and search procedures.
type PageOptions struct {
	Limit      int32
	Offset     int32
	Sort       string // "newest" (default) or "oldest"
	DateFilter string // "", "today", "week" or "month"
}

type MembershipService interface {
	// ResolveScope returns the caller's access scope: their org plus all
	// active community memberships. Fails closed with ErrUnauthorized when
	// the user has no organization.
	ResolveScope(ctx context.Context, userID int32) (*domain.AccessScope, error)
}

type FeedService interface {
	// GetAllRelevantPosts is the "for me" feed: org-wide posts plus posts
	// from every accessible community.
	GetAllRelevantPosts(ctx context.Context, userID int32, opts PageOptions) (*domain.FeedPage, error)
	// GetMyCommunityPosts is the "from my communities" feed: posts from
	// communities where the caller is a full member.
	GetMyCommunityPosts(ctx context.Context, userID int32, opts PageOptions) (*domain.FeedPage, error)
	// SearchRelevantPosts applies the feed access predicate plus a
	// case-insensitive substring match, evaluated at the storage level.
	SearchRelevantPosts(ctx context.Context, userID int32, term string, opts PageOptions) (*domain.FeedPage, error)
}

type PostService interface {
	CreatePost(ctx context.Context, authorID int32, title, content string, communityID *int32, tagIDs []int32) (*domain.Post, error)
	GetPost(ctx context.Context, userID, postID int32) (*domain.PostWithComments, error)
	EditPost(ctx context.Context, userID, postID int32, title, content string, tagIDs []int32) (*domain.Post, error)
	DeletePost(ctx context.Context, userID, postID int32) (*domain.Post, error)
	SavePost(ctx context.Context, userID, postID int32) error
	UnsavePost(ctx context.Context, userID, postID int32) error
	ToggleReaction(ctx context.Context, userID, postID int32, kind domain.ReactionKind) (bool, error)
}

type CommentService interface {
	CreateComment(ctx context.Context, userID, postID int32, content string, parentID *int32) (*domain.Comment, error)
	UpdateComment(ctx context.Context, userID, commentID int32, content string) (*domain.Comment, error)
	DeleteComment(ctx context.Context, userID, commentID int32) (*domain.Comment, error)
	ToggleHelpfulVote(ctx context.Context, userID, commentID int32) (bool, error)
}

// Registration is the optional new-user payload accepted by JoinViaInvite.
type Registration struct {
	Name     string
	Email    string
	Password string
}

// InviteInfo is the public view of an invite returned before redemption.
type InviteInfo struct {
	Email         *string               `json:"email,omitempty"`
	Role          domain.MembershipRole `json:"role"`
	CommunityName string                `json:"community_name"`
	OrgID         *int32                `json:"org_id,omitempty"`
}

// EmailInviteOutcome is the per-recipient result of a bulk email invite.
type EmailInviteOutcome struct {
	Email   string `json:"email"`
	Success bool   `json:"success"`
	Error   string `json:"error,omitempty"`
}

type CommunityUpdate struct {
	Name           *string
	Description    *string
	Type           *domain.CommunityType
	Rules          *string
	AvatarURL      *string
	BannerURL      *string
	AdminOnlyPosts *bool
}

type CommunityService interface {
	Create(ctx context.Context, creatorID int32, c *domain.Community, allowedOrgID *int32) (*domain.Community, error)
	Update(ctx context.Context, userID, communityID int32, upd CommunityUpdate) (*domain.Community, error)
	AssignModerator(ctx context.Context, actorID, communityID, targetID int32) (*domain.Membership, error)
	RemoveModerator(ctx context.Context, actorID, communityID, targetID int32) (*domain.Membership, error)
	CreateInviteLink(ctx context.Context, actorID, communityID int32, role domain.MembershipRole, expiresInDays int) (*domain.Invite, string, error)
	GetInviteInfo(ctx context.Context, code string) (*InviteInfo, error)
	// JoinViaInvite redeems the code for userID, or registers a new account
	// when userID is nil and a registration is supplied. Followers upgrade
	// to members in place; the invite is marked used exactly once.
	JoinViaInvite(ctx context.Context, userID *int32, code string, reg *Registration) (*domain.Membership, *domain.Community, error)
	InviteUsersByEmail(ctx context.Context, actorID, communityID int32, emails []string, role domain.MembershipRole, senderName string) ([]EmailInviteOutcome, int32, error)
	GetStats(ctx context.Context, userID int32) (*domain.Stats, error)
}

type EmailService interface {
	SendCommunityInvitation(ctx context.Context, email, communityName, senderName, inviteLink string) error
}
