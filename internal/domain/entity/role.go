// Package entity contains the core business objects of the project.
package entity

// Role represents the type of role an account can have in the system.
type Role string

const (
	// RoleAdmin indicates a store administrator.
	RoleAdmin Role = "admin"
	// RoleSeller indicates a seller who logs direct sales and requests restocks.
	RoleSeller Role = "seller"
	// RoleCustomer indicates a regular customer.
	RoleCustomer Role = "customer"
)

// String returns the string representation of the Role.
func (r Role) String() string {
	return string(r)
}

// IsValid checks if the Role is a valid value.
func (r Role) IsValid() bool {
	switch r {
	case RoleAdmin, RoleSeller, RoleCustomer:
		return true
	default:
		return false
	}
}
