package domain

type Organization struct {
	ID        int32  `json:"id"`
	Name      string `json:"name"`
	CreatedOn string `json:"created_on"`
}
