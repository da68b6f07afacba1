// Package authz is the single capability predicate consulted by handlers and
// middleware, replacing per-screen role-list checks.
package authz

import profiledom "straightenup/internal/domain/profile"

// Action names a privileged operation.
type Action string

const (
	ViewAdmin         Action = "view_admin"
	ManageProducts    Action = "manage_products"
	ManageOrders      Action = "manage_orders"
	ManageUsers       Action = "manage_users"
	ModerateForum     Action = "moderate_forum"
	ManageSupport     Action = "manage_support"
	ManageSiteContent Action = "manage_site_content"
)

// capability table: manager is staff without user administration.
var allowed = map[Action]map[profiledom.Role]bool{
	ViewAdmin:         {profiledom.RoleAdmin: true, profiledom.RoleManager: true},
	ManageProducts:    {profiledom.RoleAdmin: true, profiledom.RoleManager: true},
	ManageOrders:      {profiledom.RoleAdmin: true, profiledom.RoleManager: true},
	ManageUsers:       {profiledom.RoleAdmin: true},
	ModerateForum:     {profiledom.RoleAdmin: true, profiledom.RoleManager: true},
	ManageSupport:     {profiledom.RoleAdmin: true, profiledom.RoleManager: true},
	ManageSiteContent: {profiledom.RoleAdmin: true},
}

// Can reports whether role may perform action.
func Can(role profiledom.Role, action Action) bool {
	perms, ok := allowed[action]
	if !ok {
		return false
	}
	return perms[role]
}
