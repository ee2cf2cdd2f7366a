package domain

import "time"

// Role is the access level of a user in the directory.
type Role string

const (
	RoleUser  Role = "USER"
	RoleStaff Role = "STAFF"
	RoleAdmin Role = "ADMIN"
)

// User is the read-only directory view the lifecycle engine consumes.
type User struct {
	ID        string
	FullName  string
	Role      Role
	CreatedAt time.Time
}

// DisplayName returns the name used in notification messages.
func (u *User) DisplayName() string {
	if u == nil || u.FullName == "" {
		return "Staff"
	}
	return u.FullName
}
