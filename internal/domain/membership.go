package domain

import "time"

type MembershipType string

const (
	MembershipTypeMember   MembershipType = "member"
	MembershipTypeFollower MembershipType = "follower"
)

type MembershipRole string

const (
	MembershipRoleAdmin     MembershipRole = "admin"
	MembershipRoleModerator MembershipRole = "moderator"
	MembershipRoleMember    MembershipRole = "member"
)

type MembershipStatus string

const (
	MembershipStatusActive  MembershipStatus = "active"
	MembershipStatusBlocked MembershipStatus = "blocked"
)

// Membership links a user to a community. At most one row exists per
// (user, community); a follower upgrades to member in place.
type Membership struct {
	UserID      int32            `json:"user_id"`
	CommunityID int32            `json:"community_id"`
	Type        MembershipType   `json:"membership_type"`
	Role        MembershipRole   `json:"role"`
	Status      MembershipStatus `json:"status"`
	JoinedOn    time.Time        `json:"joined_on"`
}

// AccessScope is the per-request access context computed once by the
// membership resolver and passed explicitly into every core operation.
type AccessScope struct {
	UserID      int32
	OrgID       int32
	Memberships []Membership
}

// CommunityIDs returns the ids of all communities the scope grants access
// to, regardless of membership type.
func (s *AccessScope) CommunityIDs() []int32 {
	ids := make([]int32, 0, len(s.Memberships))
	for _, m := range s.Memberships {
		ids = append(ids, m.CommunityID)
	}
	return ids
}

// MemberCommunityIDs returns only communities where the user is a full
// member, the input set for the "from my communities" feed variant.
func (s *AccessScope) MemberCommunityIDs() []int32 {
	var ids []int32
	for _, m := range s.Memberships {
		if m.Type == MembershipTypeMember {
			ids = append(ids, m.CommunityID)
		}
	}
	return ids
}

// MembershipFor returns the scope's membership in the given community, or
// nil when the user has none.
func (s *AccessScope) MembershipFor(communityID int32) *Membership {
	for i := range s.Memberships {
		if s.Memberships[i].CommunityID == communityID {
			return &s.Memberships[i]
		}
	}
	return nil
}
