package model

const (
	// RoleStudent is the default role of a registered user.
	RoleStudent = "student"
	// RoleStaff is the role of hostel/campus staff members.
	RoleStaff = "staff"
	// RoleAdmin is the role of portal administrators.
	RoleAdmin = "admin"
)

// A User represents a database record.
type User struct {
	Base `msgpack:",inline" storm:"inline"`

	Name     string `json:"name"  msgpack:"name"`
	Email    string `json:"email" msgpack:"email"    storm:"unique"`
	Password string `json:"-"     msgpack:"password"`
	Role     string `json:"role"  msgpack:"role"     storm:"index"`

	// Used to revoke sessions issued before the last password change.
	PasswordUpdatedAt int64 `json:"-" msgpack:"password_updated_at"`
}

// NewUser returns a new user with default params.
func NewUser() *User {
	return &User{
		Role: RoleStudent,
	}
}

// IsStaff returns true when the user can act as an adjudicator
// (staff or admin).
func (u *User) IsStaff() bool {
	return u.Role == RoleStaff || u.Role == RoleAdmin
}

// ValidRole returns true if the given role is a known one.
func ValidRole(role string) bool {
	switch role {
	case RoleStudent, RoleStaff, RoleAdmin:
		return true
	}
	return false
}
