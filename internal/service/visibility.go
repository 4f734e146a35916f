package service

import "communityhub-backend/internal/domain"

// CanViewPost is the single-post visibility predicate. The bulk feed and
// search queries encode the same rules as a SQL predicate; the two paths
// must agree on outcome for identical inputs.
//
//   - Post without a community: visible only within the author's org.
//   - Public community: visible to any authenticated platform user.
//   - Private community: visible only with an active membership, member or
//     follower alike.
func CanViewPost(post *domain.Post, community *domain.Community, scope *domain.AccessScope) bool {
	if post.CommunityID == nil {
		return post.OrgID == scope.OrgID
	}
	if community != nil && community.Type == domain.CommunityTypePublic {
		return true
	}
	m := scope.MembershipFor(*post.CommunityID)
	return m != nil && m.Status == domain.MembershipStatusActive
}
