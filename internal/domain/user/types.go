package user

// Role is resolved once per request by the identity layer and passed into
// the core as a plain value; transition code records it, never re-derives it.
type Role string

const (
	RoleCustomer    Role = "customer"
	RoleStockkeeper Role = "stockkeeper"
	RoleSupervisor  Role = "supervisor"
	RoleAdmin       Role = "admin"
)

func (r Role) String() string {
	return string(r)
}

func (r Role) IsValid() bool {
	switch r {
	case RoleCustomer, RoleStockkeeper, RoleSupervisor, RoleAdmin:
		return true
	default:
		return false
	}
}

// IsStaff reports whether the role belongs to store personnel.
func (r Role) IsStaff() bool {
	switch r {
	case RoleStockkeeper, RoleSupervisor, RoleAdmin:
		return true
	default:
		return false
	}
}

func NewRole(s string) (Role, error) {
	role := Role(s)
	if !role.IsValid() {
		return "", ErrInvalidRole
	}
	return role, nil
}
