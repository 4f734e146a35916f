package domain

type UserRole string

const (
	UserRoleAdmin UserRole = "admin"
	UserRoleUser  UserRole = "user"
)

type User struct {
	ID           int32    `json:"id"`
	Name         string   `json:"name"`
	Email        string   `json:"email"`
	Role         UserRole `json:"role"`
	OrgID        *int32   `json:"org_id,omitempty"`
	PasswordHash string   `json:"-"`
	CreatedOn    string   `json:"created_on"`
}
