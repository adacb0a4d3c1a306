package domain

import "encoding/json"

// Role classifies an authenticated actor. The set is closed: anything the
// backend sends outside of it parses to RoleUnknown so contract drift is
// visible instead of passing as a real role.
type Role string

const (
	RoleAdmin    Role = "Admin"
	RoleCustomer Role = "Customer"
	RoleMechanic Role = "Mechanic"
	RoleUnknown  Role = "Unknown"
)

// ParseRole normalizes a backend role string into the closed Role set.
func ParseRole(s string) Role {
	switch s {
	case string(RoleAdmin):
		return RoleAdmin
	case string(RoleCustomer):
		return RoleCustomer
	case string(RoleMechanic):
		return RoleMechanic
	default:
		return RoleUnknown
	}
}

// Valid reports whether the role is one of the three known roles.
func (r Role) Valid() bool {
	return r == RoleAdmin || r == RoleCustomer || r == RoleMechanic
}

// UnmarshalJSON normalizes roles at the HTTP boundary.
func (r *Role) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return err
	}
	*r = ParseRole(s)
	return nil
}

// UserAccount is the backend's view of a platform user. It is a page-scoped
// read model: fetched on render, never mutated locally.
type UserAccount struct {
	ID       int    `json:"id"`
	Username string `json:"username"`
	Name     string `json:"name"`
	Phone    string `json:"phone"`
	Role     Role   `json:"role"`
}
