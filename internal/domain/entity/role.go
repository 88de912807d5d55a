package entity

// Role represents the kind of account a registered identity holds.
type Role string

const (
	// RoleCustomer browses businesses, reviews and orders.
	RoleCustomer Role = "customer"
	// RoleBusinessOwner manages exactly one business.
	RoleBusinessOwner Role = "business_owner"
)

// String returns the string representation of the Role.
func (r Role) String() string {
	return string(r)
}

// IsValid checks if the Role is a valid value.
func (r Role) IsValid() bool {
	switch r {
	case RoleCustomer, RoleBusinessOwner:
		return true
	default:
		return false
	}
}
