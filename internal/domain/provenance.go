package domain

import "fmt"

type ProvenanceKind string

const (
	ProvenanceOrgWide           ProvenanceKind = "org"
	ProvenanceCommunityMember   ProvenanceKind = "community_member"
	ProvenanceCommunityFollower ProvenanceKind = "community_follower"
)

// Provenance records why a post appears in a user's feed. The kind is the
// machine-readable tag; Reason renders the human-readable phrasing at the
// presentation boundary.
type Provenance struct {
	Kind ProvenanceKind `json:"type"`
	Name string         `json:"name,omitempty"` // org or community name
}

func (p Provenance) Reason() string {
	switch p.Kind {
	case ProvenanceCommunityMember:
		return fmt.Sprintf("Because you are a member of %s", p.Name)
	case ProvenanceCommunityFollower:
		return fmt.Sprintf("Because you are following %s", p.Name)
	default:
		return fmt.Sprintf("Because you are part of %s", p.Name)
	}
}
