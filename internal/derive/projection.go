package derive

import "github.com/seatharmony/seatharmony/internal/model"

// Sentinel categories for tables without a usable group label.
const (
	CategoryMixed = "Mixed" // seated guests, none with a category
	CategoryEmpty = "Empty" // no guests at all
)

// palette is the fixed legend palette.  Categories are colored by their
// position in the projection's first-seen category order, reused
// cyclically.  The mapping is positional on purpose: it matches what the
// planner UI has always shown, and changing it changes visible output.
var palette = []string{
	"#C1A58D", // taupe
	"#264653", // deep teal
	"#A63A29", // rust red
	"#98A593", // sage green
	"#E76F51", // burnt orange
	"#1D3557", // midnight blue
	"#B07B62", // muted terracotta
	"#606C38", // olive drab
	"#C6878F", // dusty rose
	"#899CA1", // slate blue
	"#B87333", // copper
	"#6B705C", // warm grey
	"#7B3F36", // dark red-brown
	"#B7B7A4", // pale moss
	"#D4A373", // muted mustard
	"#2E5D4B", // forest green
	"#A97142", // rich clay
	"#4A4E69", // storm cloud
	"#E6CCB2", // sandstone
	"#6B8E23", // artichoke
}

// Projection is every consistent derived view of one seating layout:
// per-table rosters, the unseated set, each table's primary category and
// the legend statistics.  All four planner pages render from this one
// structure.
type Projection struct {
	// GuestsByTable has a key for every table, including empty ones.
	// Guests appear in input order.
	GuestsByTable map[string][]model.Guest

	// UnseatedGuests lists, in input order, every guest with no
	// assignment entry or whose entry points at an unknown table.
	UnseatedGuests []model.Guest

	// PrimaryCategory maps table id to its legend category: the group of
	// the first seated guest that has one, else Mixed, else Empty.
	PrimaryCategory map[string]string

	// CategoryOrder lists primary categories in first-seen table order.
	// It fixes the legend's color assignment; CategoryStats holds the
	// table tally per category.
	CategoryOrder []string
	CategoryStats map[string]int
}

// Project derives all views from guests, tables and a sparse guest->table
// assignment map.  It never fails: a dangling table reference simply makes
// that guest unseated, and missing data degrades to empty collections or
// the Mixed/Empty sentinels.  Layouts arrive from an external optimizer and
// must render even when partially stale, e.g. after tables were replaced.
// Inputs are not mutated.
func Project(guests []model.Guest, tables []model.Table, assignments map[string]string) Projection {
	byTable := make(map[string][]model.Guest, len(tables))
	for _, t := range tables {
		byTable[t.ID] = []model.Guest{}
	}

	var unseated []model.Guest
	for _, g := range guests {
		tableID := assignments[g.ID]
		if tableID == "" {
			unseated = append(unseated, g)
			continue
		}
		if _, known := byTable[tableID]; !known {
			unseated = append(unseated, g)
			continue
		}
		byTable[tableID] = append(byTable[tableID], g)
	}

	primary := make(map[string]string, len(tables))
	stats := make(map[string]int, len(tables))
	var order []string
	for _, t := range tables {
		category := primaryCategory(byTable[t.ID])
		primary[t.ID] = category
		if _, seen := stats[category]; !seen {
			order = append(order, category)
		}
		stats[category]++
	}

	return Projection{
		GuestsByTable:   byTable,
		UnseatedGuests:  unseated,
		PrimaryCategory: primary,
		CategoryOrder:   order,
		CategoryStats:   stats,
	}
}

// primaryCategory picks the table's legend label: the group_id of the first
// guest in the roster that has one.  Deliberately first-match, not a
// majority vote; the legend has always worked this way.
func primaryCategory(roster []model.Guest) string {
	if len(roster) == 0 {
		return CategoryEmpty
	}
	for _, g := range roster {
		if g.Group() != "" {
			return g.Group()
		}
	}
	return CategoryMixed
}

// ColorFor returns the legend color for a category within this projection,
// or "" for a category the projection never saw.
func (p Projection) ColorFor(category string) string {
	for i, c := range p.CategoryOrder {
		if c == category {
			return palette[i%len(palette)]
		}
	}
	return ""
}

// SeatedCount reports how many guests resolved to a real table.
func (p Projection) SeatedCount() int {
	n := 0
	for _, roster := range p.GuestsByTable {
		n += len(roster)
	}
	return n
}
