package authz

import "github.com/pizzaria-dev/pizzaria/internal/models"

// Actor is the authenticated identity a policy decision is made for.
type Actor struct {
	ID    uint
	Admin bool
}

// CanAccess reports whether the actor may operate on the order: admins may
// touch any order, everyone else only their own.
func CanAccess(actor Actor, order *models.Order) bool {
	return actor.Admin || actor.ID == order.UserID
}

// CanListAll reports whether the actor may list every order in the system.
func CanListAll(actor Actor) bool {
	return actor.Admin
}
