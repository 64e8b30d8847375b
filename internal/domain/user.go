package domain

import "time"

// Role represents a user's role in the system
type Role string

const (
	RoleAdmin   Role = "admin"
	RoleStudent Role = "student"
	RoleParent  Role = "parent"
)

// IsValid returns true for a known role
func (r Role) IsValid() bool {
	return r == RoleAdmin || r == RoleStudent || r == RoleParent
}

// Profile represents a user profile
type Profile struct {
	ID            int64
	FullName      string
	Email         string
	Role          Role
	StudentNumber *string
	YearLevel     *int
	StudentID     *int64 // для роли parent - привязанный студент

	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsAdmin returns true for admin profiles
func (p *Profile) IsAdmin() bool {
	return p.Role == RoleAdmin
}

// HasLinkedStudent returns true if a parent profile is linked to a student
func (p *Profile) HasLinkedStudent() bool {
	return p.Role == RoleParent && p.StudentID != nil
}
