package domain

import "time"

// Invite is a one-time community invitation code. It is usable exactly once
// and only before its expiry.
type Invite struct {
	ID          int32          `json:"id"`
	Code        string         `json:"code"`
	CommunityID int32          `json:"community_id"`
	Role        MembershipRole `json:"role"`
	Email       *string        `json:"email,omitempty"`
	CreatedBy   int32          `json:"created_by"`
	ExpiresOn   time.Time      `json:"expires_on"`
	UsedOn      *time.Time     `json:"used_on,omitempty"`
	UsedBy      *int32         `json:"used_by,omitempty"`
	CreatedOn   time.Time      `json:"created_on"`
}
