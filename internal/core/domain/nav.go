package domain

// NavItem is a single role-scoped menu entry. ID maps 1:1 to a dashboard
// panel identifier.
type NavItem struct {
	ID             string `json:"id"`
	Label          string `json:"label"`
	Icon           string `json:"icon"`
	Badge          int    `json:"badge,omitempty"`
	BadgeHighlight bool   `json:"badge_highlight,omitempty"`
}

// BadgeCounts carries the numeric badges shown in the navigation. The
// values are supplied by the caller; navigation never counts anything
// itself.
type BadgeCounts struct {
	Favorites           int `json:"favorites"`
	Contracts           int `json:"contracts"`
	UnreadNotifications int `json:"unread_notifications"`
}

// roleNavItems defines the role-specific part of the menu, per role, in
// display order. Badge slots are filled by NavItemsFor; entries here only
// name which count feeds which item.
var roleNavItems = map[Role][]NavItem{
	RoleClient: {
		{ID: PanelMyProperties, Label: "My Properties", Icon: "home"},
		{ID: PanelContracts, Label: "Contracts", Icon: "file-text"},
	},
	RoleAgent: {
		{ID: PanelListings, Label: "My Listings", Icon: "building"},
		{ID: PanelClients, Label: "Clients", Icon: "users"},
		{ID: PanelCalendar, Label: "Calendar", Icon: "calendar"},
	},
	RoleAdmin: {
		{ID: PanelUserManagement, Label: "User Management", Icon: "shield"},
		{ID: PanelListings, Label: "Listings", Icon: "building"},
		{ID: PanelAnalytics, Label: "Analytics", Icon: "bar-chart"},
		{ID: PanelSettings, Label: "Settings", Icon: "settings"},
	},
}

// NavItemsFor maps (role, counts) to the ordered navigation menu. Pure and
// deterministic: identical input yields an identical sequence. Role-specific
// items come first; the three common items (profile, favorites,
// notifications) close the menu for every role, in that fixed order.
func NavItemsFor(role Role, counts BadgeCounts) []NavItem {
	specific := roleNavItems[role]
	items := make([]NavItem, 0, len(specific)+3)

	for _, it := range specific {
		if role == RoleClient && it.ID == PanelContracts {
			it.Badge = counts.Contracts
		}
		items = append(items, it)
	}

	items = append(items,
		NavItem{ID: PanelProfile, Label: "Profile", Icon: "user"},
		NavItem{ID: PanelFavorites, Label: "Favorites", Icon: "heart", Badge: counts.Favorites},
		NavItem{
			ID:             PanelNotifications,
			Label:          "Notifications",
			Icon:           "bell",
			Badge:          counts.UnreadNotifications,
			BadgeHighlight: counts.UnreadNotifications > 0,
		},
	)
	return items
}
