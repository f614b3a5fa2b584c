package domain

import "time"

const (
	RoleMember = "Member"
	RoleAdmin  = "Admin"
)

// User models a registered forum account. Exactly one role is authoritative
// per user; it is assigned at registration and embedded in issued tokens.
type User struct {
	ID           string    `json:"userId"`
	Username     string    `json:"username"`
	PasswordHash string    `json:"-"`
	Role         string    `json:"role"`
	CreatedAt    time.Time `json:"createdAt"`
}
