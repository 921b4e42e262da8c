package order

import "mealmarket/internal/core/domain/model/kernel"

// Role names the kind of party requesting a transition.
type Role string

const (
	RoleCustomer Role = "customer"
	RoleChef     Role = "chef"
	RoleDriver   Role = "driver"
	RoleAdmin    Role = "admin"
	RoleSystem   Role = "system"
)

// Actor is the authenticated identity on whose behalf an operation runs.
// Authentication itself happens outside the core; the core only enforces that
// the actor owns or controls the order it mutates.
type Actor struct {
	ID   kernel.UUID
	Role Role
}

// NewActor builds an actor from an identity and role.
func NewActor(id kernel.UUID, role Role) Actor {
	return Actor{ID: id, Role: role}
}

// IsAdmin reports whether the actor carries the admin role.
func (a Actor) IsAdmin() bool {
	return a.Role == RoleAdmin
}
