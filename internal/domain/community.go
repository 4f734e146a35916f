package domain

type CommunityType string

const (
	CommunityTypePublic  CommunityType = "public"
	CommunityTypePrivate CommunityType = "private"
)

type Community struct {
	ID             int32         `json:"id"`
	Slug           string        `json:"slug"`
	Name           string        `json:"name"`
	Description    string        `json:"description"`
	Type           CommunityType `json:"type"`
	Rules          string        `json:"rules"`
	AvatarURL      string        `json:"avatar_url"`
	BannerURL      string        `json:"banner_url"`
	AdminOnlyPosts bool          `json:"admin_only_posts"`
	OrgID          *int32        `json:"org_id,omitempty"`
	CreatedOn      string        `json:"created_on"`
}

// CommunityAllowedOrg grants an organization visibility into a community
// beyond the community's owning org.
type CommunityAllowedOrg struct {
	CommunityID int32  `json:"community_id"`
	OrgID       int32  `json:"org_id"`
	Permission  string `json:"permission"`
}

// Stats is the platform-wide counters snapshot returned by getStats.
type Stats struct {
	TotalUsers        int32 `json:"total_users"`
	TotalPosts        int32 `json:"total_posts"`
	TotalCommunities  int32 `json:"total_communities"`
	OrgCommunityCount int32 `json:"org_community_count"`
}
