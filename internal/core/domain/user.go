package domain

import "time"

// UserRole is the persisted privilege level of a user.
type UserRole string

const (
	RoleMember UserRole = "member"
	RoleHost   UserRole = "host"
	RoleAdmin  UserRole = "admin"
)

// User models a persisted member of the club. Users are created lazily on
// the first authenticated request for an email we have never seen.
type User struct {
	ID            string    `json:"id"`
	Name          string    `json:"name"`
	Email         string    `json:"email"`
	Phone         string    `json:"phone,omitempty"`
	Branch        string    `json:"branch,omitempty"`
	Year          string    `json:"year,omitempty"`
	Role          UserRole  `json:"role"`
	ProfilePicURL string    `json:"profile_pic_url,omitempty"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}
