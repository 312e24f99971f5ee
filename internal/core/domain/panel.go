package domain

// Panel identifiers form a closed set; activeTab selects exactly one.
const (
	PanelMyProperties   = "my-properties"
	PanelContracts      = "contracts"
	PanelListings       = "listings"
	PanelClients        = "clients"
	PanelCalendar       = "calendar"
	PanelUserManagement = "users"
	PanelAnalytics      = "analytics"
	PanelSettings       = "settings"
	PanelProfile        = "profile"
	PanelFavorites      = "favorites"
	PanelNotifications  = "notifications"
)

// PanelState reports how a dispatch request resolved. Selecting a tab is
// never an error: restricted and unknown tabs resolve to placeholders.
type PanelState string

const (
	PanelAvailable      PanelState = "available"
	PanelNotAvailable   PanelState = "not_available"
	PanelNotImplemented PanelState = "not_implemented"
)

// Panel describes a resolved dashboard content area.
type Panel struct {
	ID    string     `json:"id"`
	Title string     `json:"title"`
	State PanelState `json:"state"`
}

type panelDef struct {
	title string
	roles []Role
}

// panelRegistry binds each panel identifier to its title and the roles that
// may open it. An empty role list means every role.
var panelRegistry = map[string]panelDef{
	PanelMyProperties:   {title: "My Properties", roles: []Role{RoleClient}},
	PanelContracts:      {title: "Contracts", roles: []Role{RoleClient}},
	PanelListings:       {title: "Listings", roles: []Role{RoleAgent, RoleAdmin}},
	PanelClients:        {title: "Clients", roles: []Role{RoleAgent}},
	PanelCalendar:       {title: "Calendar", roles: []Role{RoleAgent}},
	PanelUserManagement: {title: "User Management", roles: []Role{RoleAdmin}},
	PanelAnalytics:      {title: "Analytics", roles: []Role{RoleAdmin}},
	PanelSettings:       {title: "Settings", roles: []Role{RoleAdmin}},
	PanelProfile:        {title: "Profile"},
	PanelFavorites:      {title: "Favorites"},
	PanelNotifications:  {title: "Notifications"},
}

// ResolvePanel dispatches activeTab for the given role. Unknown tabs yield a
// not-implemented placeholder, role-restricted tabs a not-available one;
// neither case is an error.
func ResolvePanel(role Role, activeTab string) Panel {
	def, ok := panelRegistry[activeTab]
	if !ok {
		return Panel{ID: activeTab, Title: "Not Implemented", State: PanelNotImplemented}
	}
	if len(def.roles) > 0 && !roleAllowed(role, def.roles) {
		return Panel{ID: activeTab, Title: def.title, State: PanelNotAvailable}
	}
	return Panel{ID: activeTab, Title: def.title, State: PanelAvailable}
}

func roleAllowed(role Role, allowed []Role) bool {
	for _, r := range allowed {
		if r == role {
			return true
		}
	}
	return false
}
