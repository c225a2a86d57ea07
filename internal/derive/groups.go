// Package derive computes the read-side views every page of the planner
// relies on: category groups of the guest list and the per-table projection
// of a seating layout.  Everything here is a pure function over its inputs;
// nothing mutates arguments, nothing touches the store, and nothing errors.
// Callers may recompute freely on every request.
package derive

import (
	"fmt"
	"sort"
	"strings"

	"github.com/seatharmony/seatharmony/internal/model"
)

// UncategorizedGroup is the sentinel group receiving every guest whose
// category is nil or empty.  Coercion happens here, at grouping time; the
// guest's stored GroupID stays untouched.
const UncategorizedGroup = "Uncategorized"

// GroupGuestsByCategory partitions guests by their category label.  Every
// guest lands in exactly one group, guests keep their input order inside a
// group, and groups appear in first-seen category order.  Group ids are
// positional ("group-1", "group-2", ...).
func GroupGuestsByCategory(guests []model.Guest) []model.GuestGroup {
	var order []string
	byName := make(map[string][]model.Guest)
	for _, g := range guests {
		name := g.Group()
		if name == "" {
			name = UncategorizedGroup
		}
		if _, seen := byName[name]; !seen {
			order = append(order, name)
		}
		byName[name] = append(byName[name], g)
	}

	groups := make([]model.GuestGroup, 0, len(order))
	for i, name := range order {
		members := byName[name]
		groups = append(groups, model.GuestGroup{
			ID:         fmt.Sprintf("group-%d", i+1),
			Name:       name,
			Guests:     members,
			GuestCount: len(members),
		})
	}
	return groups
}

// SortGroupsForDisplay returns a copy of groups with the Uncategorized
// group moved to the end.  This is the dashboard's presentation policy
// layered on top of the base grouping, not a property of the grouping
// itself, which is why it lives in a separate function.
func SortGroupsForDisplay(groups []model.GuestGroup) []model.GuestGroup {
	sorted := make([]model.GuestGroup, len(groups))
	copy(sorted, groups)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Name != UncategorizedGroup && sorted[j].Name == UncategorizedGroup
	})
	return sorted
}

// GroupPriority classifies a category name for display emphasis, using the
// same keyword heuristic as the dashboard: family-ish categories are high
// priority, work-ish ones are mixed, everything else is standard.
func GroupPriority(name string) string {
	lower := strings.ToLower(name)
	switch {
	case strings.Contains(lower, "family") || strings.Contains(lower, "parent") || strings.Contains(lower, "sibling"):
		return "High Priority"
	case strings.Contains(lower, "work") || strings.Contains(lower, "colleague"):
		return "Mixed Group"
	default:
		return "Standard"
	}
}
