package service

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"communityhub-backend/internal/domain"
	"communityhub-backend/internal/repository"
)

var ErrSearchTermTooShort = errors.New("search term must be at least 2 characters")

const (
	defaultPageSize = 20
	maxPageSize     = 100
)

type feedService struct {
	membershipSvc MembershipService
	postRepo      repository.PostRepository
	orgRepo       repository.OrganizationRepository
}

func NewFeedService(membershipSvc MembershipService, postRepo repository.PostRepository, orgRepo repository.OrganizationRepository) FeedService {
	return &feedService{
		membershipSvc: membershipSvc,
		postRepo:      postRepo,
		orgRepo:       orgRepo,
	}
}

func (s *feedService) GetAllRelevantPosts(ctx context.Context, userID int32, opts PageOptions) (*domain.FeedPage, error) {
	scope, err := s.membershipSvc.ResolveScope(ctx, userID)
	if err != nil {
		return nil, err
	}
	return s.aggregate(ctx, scope, scope.CommunityIDs(), true, opts)
}

func (s *feedService) GetMyCommunityPosts(ctx context.Context, userID int32, opts PageOptions) (*domain.FeedPage, error) {
	scope, err := s.membershipSvc.ResolveScope(ctx, userID)
	if err != nil {
		return nil, err
	}
	return s.aggregate(ctx, scope, scope.MemberCommunityIDs(), false, opts)
}

// aggregate fetches the org-wide and community sets independently, annotates
// each post with its provenance, merges them newest-first and slices the
// requested page in memory. Ties on creation time are broken by id
// descending so order is deterministic for a given data snapshot.
func (s *feedService) aggregate(ctx context.Context, scope *domain.AccessScope, communityIDs []int32, includeOrg bool, opts PageOptions) (*domain.FeedPage, error) {
	opts = normalize(opts)

	var feed []domain.FeedPost

	if includeOrg {
		org, err := s.orgRepo.GetByID(ctx, scope.OrgID)
		if err != nil {
			return nil, fmt.Errorf("failed to load org: %w", err)
		}
		orgPosts, err := s.postRepo.ListOrgWide(ctx, scope.OrgID)
		if err != nil {
			return nil, fmt.Errorf("failed to list org posts: %w", err)
		}
		for _, p := range orgPosts {
			feed = append(feed, domain.FeedPost{
				Post:       p,
				Provenance: domain.Provenance{Kind: domain.ProvenanceOrgWide, Name: org.Name},
			})
		}
	}

	communityPosts, err := s.postRepo.ListByCommunities(ctx, communityIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to list community posts: %w", err)
	}
	for _, p := range communityPosts {
		feed = append(feed, domain.FeedPost{Post: p, Provenance: s.provenanceFor(scope, &p)})
	}

	if since := sinceFor(opts.DateFilter, time.Now()); since != nil {
		filtered := feed[:0]
		for _, fp := range feed {
			if !fp.CreatedOn.Before(*since) {
				filtered = append(filtered, fp)
			}
		}
		feed = filtered
	}

	sortFeed(feed, opts.Sort == "oldest")

	return paginate(feed, opts.Limit, opts.Offset), nil
}

func (s *feedService) SearchRelevantPosts(ctx context.Context, userID int32, term string, opts PageOptions) (*domain.FeedPage, error) {
	term = strings.TrimSpace(term)
	if len(term) < 2 {
		return nil, ErrSearchTermTooShort
	}

	scope, err := s.membershipSvc.ResolveScope(ctx, userID)
	if err != nil {
		return nil, err
	}
	opts = normalize(opts)

	since := sinceFor(opts.DateFilter, time.Now())
	posts, total, err := s.postRepo.Search(ctx, scope.OrgID, scope.CommunityIDs(), term, since, opts.Sort == "oldest", opts.Limit, opts.Offset)
	if err != nil {
		return nil, fmt.Errorf("failed to search posts: %w", err)
	}

	var orgName string
	if org, err := s.orgRepo.GetByID(ctx, scope.OrgID); err == nil {
		orgName = org.Name
	}

	feed := make([]domain.FeedPost, 0, len(posts))
	for _, p := range posts {
		prov := s.provenanceFor(scope, &p)
		if prov.Kind == domain.ProvenanceOrgWide {
			prov.Name = orgName
		}
		feed = append(feed, domain.FeedPost{Post: p, Provenance: prov})
	}

	return &domain.FeedPage{
		Posts:       feed,
		TotalCount:  total,
		HasNextPage: opts.Offset+opts.Limit < total,
		NextOffset:  opts.Offset + opts.Limit,
	}, nil
}

func (s *feedService) provenanceFor(scope *domain.AccessScope, p *domain.Post) domain.Provenance {
	if p.CommunityID == nil {
		return domain.Provenance{Kind: domain.ProvenanceOrgWide}
	}
	kind := domain.ProvenanceCommunityMember
	if m := scope.MembershipFor(*p.CommunityID); m != nil && m.Type == domain.MembershipTypeFollower {
		kind = domain.ProvenanceCommunityFollower
	}
	return domain.Provenance{Kind: kind, Name: p.CommunityName}
}

func normalize(opts PageOptions) PageOptions {
	if opts.Limit <= 0 {
		opts.Limit = defaultPageSize
	}
	if opts.Limit > maxPageSize {
		opts.Limit = maxPageSize
	}
	if opts.Offset < 0 {
		opts.Offset = 0
	}
	return opts
}

func sortFeed(feed []domain.FeedPost, oldestFirst bool) {
	sort.Slice(feed, func(i, j int) bool {
		a, b := feed[i], feed[j]
		if !a.CreatedOn.Equal(b.CreatedOn) {
			if oldestFirst {
				return a.CreatedOn.Before(b.CreatedOn)
			}
			return a.CreatedOn.After(b.CreatedOn)
		}
		if oldestFirst {
			return a.ID < b.ID
		}
		return a.ID > b.ID
	})
}

func paginate(feed []domain.FeedPost, limit, offset int32) *domain.FeedPage {
	total := int32(len(feed))
	start := offset
	if start > total {
		start = total
	}
	end := start + limit
	if end > total {
		end = total
	}
	return &domain.FeedPage{
		Posts:       feed[start:end],
		TotalCount:  total,
		HasNextPage: offset+limit < total,
		NextOffset:  offset + limit,
	}
}

func sinceFor(filter string, now time.Time) *time.Time {
	var since time.Time
	switch filter {
	case "today":
		since = now.AddDate(0, 0, -1)
	case "week":
		since = now.AddDate(0, 0, -7)
	case "month":
		since = now.AddDate(0, -1, 0)
	default:
		return nil
	}
	return &since
}
