// Package authz maps (operation, role) pairs to allow/deny through a
// single capability table, replacing per-resolver role comparisons.
package authz

import (
	"ec-service/internal/entity"
)

// Op names an operation subject to an authorization decision.
type Op string

const (
	ManageProducts   Op = "manage-products"
	ManageCategories Op = "manage-categories"
	ManageUsers      Op = "manage-users"
	ViewAllOrders    Op = "view-all-orders"
	UpdateOrderState Op = "update-order-status"
)

var capabilities = map[Op]map[entity.Role]bool{
	ManageProducts:   {entity.RoleAdmin: true},
	ManageCategories: {entity.RoleAdmin: true},
	ManageUsers:      {entity.RoleAdmin: true},
	ViewAllOrders:    {entity.RoleAdmin: true},
	UpdateOrderState: {entity.RoleAdmin: true, entity.RoleStaff: true},
}

// Allowed reports whether the user may perform op. A nil user is never
// allowed; callers distinguish UNAUTHENTICATED from FORBIDDEN.
func Allowed(user *entity.User, op Op) bool {
	if user == nil {
		return false
	}
	return capabilities[op][user.Role]
}

// Require returns nil if the user may perform op, ErrNotAuthenticated
// for anonymous callers, and ErrForbidden otherwise.
func Require(user *entity.User, op Op) error {
	if user == nil {
		return entity.ErrNotAuthenticated
	}
	if !Allowed(user, op) {
		return entity.ErrForbidden
	}
	return nil
}
