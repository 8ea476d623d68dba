package domain

import "fmt"

// Role enumerates the platform's access roles. The set is closed: any other
// value is rejected when a token or request body is parsed, never downstream.
type Role string

const (
	RoleAdmin           Role = "admin"
	RoleCustomer        Role = "customer"
	RoleRestaurantOwner Role = "restaurantOwner"
	RoleDeliveryPerson  Role = "deliveryPerson"
)

// DefaultRole is assigned when registration does not name a role.
const DefaultRole = RoleCustomer

// ParseRole validates a raw role value against the closed enumeration.
func ParseRole(raw string) (Role, error) {
	switch Role(raw) {
	case RoleAdmin, RoleCustomer, RoleRestaurantOwner, RoleDeliveryPerson:
		return Role(raw), nil
	default:
		return "", fmt.Errorf("unknown role %q", raw)
	}
}

// Valid reports whether the role belongs to the enumeration.
func (r Role) Valid() bool {
	_, err := ParseRole(string(r))
	return err == nil
}
