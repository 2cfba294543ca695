package entity

// Role represents the type of role an identity can have in the system.
type Role string

const (
	// RoleCustomer is a shopper of the mobile app.
	RoleCustomer Role = "customer"
	// RoleSeller is a pharmacy operator of the seller dashboard.
	RoleSeller Role = "seller"
	// RoleAdmin is a platform administrator.
	RoleAdmin Role = "admin"
)

// String returns the string representation of the Role.
func (r Role) String() string {
	return string(r)
}

// IsValid checks if the Role is a valid value.
func (r Role) IsValid() bool {
	switch r {
	case RoleCustomer, RoleSeller, RoleAdmin:
		return true
	default:
		return false
	}
}
