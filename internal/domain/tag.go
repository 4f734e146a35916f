package domain

type Tag struct {
	ID          int32  `json:"id"`
	Name        string `json:"name"`
	CommunityID int32  `json:"community_id"`
}
