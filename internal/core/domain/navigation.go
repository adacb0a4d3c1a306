package domain

// MenuItem is one sidebar navigation entry.
type MenuItem struct {
	Label string
	Icon  string
	Path  string
}

// menus maps each role to its ordered sidebar entries. Adding a role or an
// entry is a data change here, not a code branch elsewhere.
var menus = map[Role][]MenuItem{
	RoleAdmin: {
		{Label: "Overview", Icon: "chart", Path: "/dashboard"},
		{Label: "User Management", Icon: "users", Path: "/dashboard/users"},
		{Label: "Service Orders", Icon: "file", Path: "/dashboard/orders"},
	},
	RoleMechanic: {
		{Label: "My Assignments", Icon: "wrench", Path: "/dashboard"},
		{Label: "Service Orders", Icon: "file", Path: "/dashboard/orders"},
	},
	RoleCustomer: {
		{Label: "My Bookings", Icon: "file", Path: "/dashboard"},
		{Label: "New Booking", Icon: "wrench", Path: "/dashboard/new-booking"},
	},
}

// MenuFor returns the sidebar entries for a role. A role with no declared
// entries gets an empty menu, never an error.
func MenuFor(role Role) []MenuItem {
	return menus[role]
}

// Capability names a role-gated feature.
type Capability string

const (
	CapBookService  Capability = "book_service"
	CapManageOrders Capability = "manage_orders"
	CapManageUsers  Capability = "manage_users"
	CapPromoteUser  Capability = "promote_user"
)

// capabilities is the declarative role → feature table. Route gating and
// in-page controls both read from it.
var capabilities = map[Capability][]Role{
	CapBookService:  {RoleCustomer},
	CapManageOrders: {RoleAdmin, RoleMechanic},
	CapManageUsers:  {RoleAdmin},
	CapPromoteUser:  {RoleAdmin},
}

// Can reports whether the role holds the capability.
func (r Role) Can(c Capability) bool {
	for _, allowed := range capabilities[c] {
		if allowed == r {
			return true
		}
	}
	return false
}

// RolesAllowed returns the roles holding a capability, in declaration order.
func RolesAllowed(c Capability) []Role {
	return capabilities[c]
}
