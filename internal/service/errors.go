package service

import (
	"errors"

	"docu360/internal/data"
)

var (
	// ErrForbidden marks an operation the actor is not authorized for. It is
	// checked before any mutation is attempted.
	ErrForbidden = errors.New("forbidden")
	// ErrValidation marks a blocking precondition such as a missing required
	// field. No state mutation occurs.
	ErrValidation = errors.New("validation failed")
)

// Actor is the authenticated caller as supplied by the identity provider:
// an opaque subject, a role, and for customer actors the single customer
// account they may act as.
type Actor struct {
	Subject    string
	Role       string
	CustomerID string
}

// owns reports whether the actor may operate on the given product. Admins
// may act on every product; customer actors only on products of their own
// account.
func (a Actor) owns(p *data.Product) bool {
	if a.Role == data.RoleAdmin {
		return true
	}
	return a.Role == data.RoleCustomer && a.CustomerID != "" && a.CustomerID == p.CustomerID
}
