package domain

import (
	"reflect"
	"testing"
)

func TestNavItemsFor_CommonTail(t *testing.T) {
	counts := BadgeCounts{Favorites: 2, Contracts: 1, UnreadNotifications: 5}

	for _, role := range AllRoles {
		items := NavItemsFor(role, counts)
		if len(items) < 3 {
			t.Fatalf("role %s: expected at least the common items, got %d", role, len(items))
		}

		tail := items[len(items)-3:]
		if tail[0].ID != PanelProfile || tail[1].ID != PanelFavorites || tail[2].ID != PanelNotifications {
			t.Fatalf("role %s: unexpected common tail: %+v", role, tail)
		}
	}
}

func TestNavItemsFor_Deterministic(t *testing.T) {
	counts := BadgeCounts{Favorites: 7, Contracts: 3, UnreadNotifications: 1}

	for _, role := range AllRoles {
		first := NavItemsFor(role, counts)
		second := NavItemsFor(role, counts)
		if !reflect.DeepEqual(first, second) {
			t.Fatalf("role %s: repeated calls differ", role)
		}
	}
}

func TestNavItemsFor_BadgePassThrough(t *testing.T) {
	counts := BadgeCounts{Favorites: 4, Contracts: 2, UnreadNotifications: 9}
	items := NavItemsFor(RoleClient, counts)

	byID := make(map[string]NavItem, len(items))
	for _, it := range items {
		byID[it.ID] = it
	}

	if byID[PanelContracts].Badge != 2 {
		t.Fatalf("contracts badge: expected 2, got %d", byID[PanelContracts].Badge)
	}
	if byID[PanelFavorites].Badge != 4 {
		t.Fatalf("favorites badge: expected 4, got %d", byID[PanelFavorites].Badge)
	}
	if byID[PanelNotifications].Badge != 9 || !byID[PanelNotifications].BadgeHighlight {
		t.Fatalf("notifications badge: %+v", byID[PanelNotifications])
	}
}

func TestNavItemsFor_NoHighlightWithoutUnread(t *testing.T) {
	items := NavItemsFor(RoleAgent, BadgeCounts{})
	last := items[len(items)-1]
	if last.BadgeHighlight {
		t.Fatalf("notifications should not highlight with zero unread")
	}
}

func TestNavItemsFor_AdminHasNoBadges(t *testing.T) {
	counts := BadgeCounts{Favorites: 1, Contracts: 1, UnreadNotifications: 1}
	items := NavItemsFor(RoleAdmin, counts)

	// Only the common favorites/notifications entries may carry badges.
	for _, it := range items[:len(items)-3] {
		if it.Badge != 0 {
			t.Fatalf("admin item %s should carry no badge, got %d", it.ID, it.Badge)
		}
	}
}

func TestNavItemsFor_RoleSpecificOrder(t *testing.T) {
	items := NavItemsFor(RoleAgent, BadgeCounts{})
	want := []string{PanelListings, PanelClients, PanelCalendar}
	for i, id := range want {
		if items[i].ID != id {
			t.Fatalf("agent item %d: expected %s, got %s", i, id, items[i].ID)
		}
	}
}
