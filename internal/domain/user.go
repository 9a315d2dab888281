package domain

import "time"

// Role enumerates membership tiers, ordered from lowest to highest.
type Role string

const (
	RoleUser  Role = "USER"
	RoleVIP   Role = "VIP"
	RoleMod   Role = "MOD"
	RoleAdmin Role = "ADMIN"
)

// Rank maps a role onto its position in the hierarchy. Unknown or empty
// roles count as USER, so the function is total.
func (r Role) Rank() int {
	switch r {
	case RoleAdmin:
		return 4
	case RoleMod:
		return 3
	case RoleVIP:
		return 2
	default:
		return 1
	}
}

// AtLeast reports whether the role meets the given minimum rank.
func (r Role) AtLeast(min Role) bool {
	return r.Rank() >= min.Rank()
}

// IsModerator reports whether the role carries moderation privileges.
func (r Role) IsModerator() bool {
	return r.AtLeast(RoleMod)
}

// ValidRole reports whether s is one of the four defined roles.
func ValidRole(s string) bool {
	switch Role(s) {
	case RoleUser, RoleVIP, RoleMod, RoleAdmin:
		return true
	}
	return false
}

// User is the domain model for platform members.
type User struct {
	ID           string
	Username     string
	PasswordHash string
	DisplayName  string
	Role         Role
	Avatar       *string
	Level        int
	IsOnline     bool
	CreatedAt    time.Time
}
