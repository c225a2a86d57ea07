package model

import "fmt"

// TableTemplate describes one batch of identical tables inside a venue
// layout: how many, what shape and capacity, and where they sit relative to
// the dance floor and the weather.
type TableTemplate struct {
	Type           TableType           `json:"type"`
	Capacity       int                 `json:"capacity"`
	Count          int                 `json:"count"`
	Zone           string              `json:"zone,omitempty"`
	NearDanceFloor DanceFloorProximity `json:"nearDanceFloor"`
	Placement      TablePlacement      `json:"placement"`
}

// VenueLayout is a catalog entry describing a physical venue: its overall
// capacity and the table templates it offers.  Venues are static data; the
// planner picks one and the templates are expanded into concrete tables.
type VenueLayout struct {
	ID             string          `json:"id"`
	Name           string          `json:"name"`
	Description    string          `json:"description"`
	Category       string          `json:"category"` // indoor | outdoor | banquet | intimate
	TotalCapacity  int             `json:"totalCapacity"`
	TableTemplates []TableTemplate `json:"tableTemplates"`
	Features       []string        `json:"features"`
	Popular        bool            `json:"popular,omitempty"`
}

// Sufficient reports whether the venue can hold the given guest count.
// Selection UIs use this to warn before confirming; the table generator
// itself does not enforce it.
func (v VenueLayout) Sufficient(guestCount int) bool {
	return v.TotalCapacity >= guestCount
}

// GenerateTablesFromVenue expands a venue's templates into concrete tables.
// Templates are walked in declared order and table numbering runs
// sequentially across the whole venue, not per template, so the result is
// always Table 1..Table N.  Proximity and placement flags are copied into
// the constraints both as categorical values and as precomputed booleans.
func GenerateTablesFromVenue(v VenueLayout) []Table {
	total := 0
	for _, tpl := range v.TableTemplates {
		total += tpl.Count
	}
	tables := make([]Table, 0, total)
	index := 1
	for _, tpl := range v.TableTemplates {
		for i := 0; i < tpl.Count; i++ {
			var zone *string
			if tpl.Zone != "" {
				z := tpl.Zone
				zone = &z
			}
			tables = append(tables, Table{
				ID:       fmt.Sprintf("%s-table-%d", v.ID, index),
				Name:     fmt.Sprintf("Table %d", index),
				Capacity: tpl.Capacity,
				Zone:     zone,
				Constraints: TableConstraints{
					TableType:              string(tpl.Type),
					VenueID:                v.ID,
					NearDanceFloor:         string(tpl.NearDanceFloor),
					Placement:              string(tpl.Placement),
					IsAdjacentToDanceFloor: tpl.NearDanceFloor == ProximityAdjacent,
					IsNearDanceFloor:       tpl.NearDanceFloor == ProximityAdjacent || tpl.NearDanceFloor == ProximityNear,
					IsIndoor:               tpl.Placement == PlacementIndoor,
					IsOutdoor:              tpl.Placement == PlacementOutdoor,
					IsCovered:              tpl.Placement == PlacementCovered,
				},
			})
			index++
		}
	}
	return tables
}

// CreateDefaultTables is the fallback generator used before a venue is
// chosen: enough identical tables to hold guestCount at seatsPerTable seats
// each, no zones, no constraints.
func CreateDefaultTables(guestCount, seatsPerTable int) []Table {
	if seatsPerTable < 1 {
		seatsPerTable = 10
	}
	tableCount := (guestCount + seatsPerTable - 1) / seatsPerTable
	tables := make([]Table, 0, tableCount)
	for i := 1; i <= tableCount; i++ {
		tables = append(tables, Table{
			ID:       fmt.Sprintf("table-%d", i),
			Name:     fmt.Sprintf("Table %d", i),
			Capacity: seatsPerTable,
		})
	}
	return tables
}

// VenueByID looks a venue up in the built-in catalog.
func VenueByID(id string) (VenueLayout, bool) {
	for _, v := range VenueLayouts {
		if v.ID == id {
			return v, true
		}
	}
	return VenueLayout{}, false
}

// VenueLayouts is the built-in venue catalog.  When a database is
// configured these seed the venues table; otherwise they are served
// directly.
var VenueLayouts = []VenueLayout{
	{
		ID:            "grand-ballroom",
		Name:          "Grand Ballroom",
		Description:   "A classic, elegant space with high ceilings and a central dance floor. Perfect for large weddings with traditional round table seating.",
		Category:      "indoor",
		TotalCapacity: 350,
		TableTemplates: []TableTemplate{
			{Type: TableRound, Capacity: 10, Count: 8, Zone: "inner-ring", NearDanceFloor: ProximityAdjacent, Placement: PlacementIndoor},
			{Type: TableRound, Capacity: 10, Count: 12, Zone: "main", NearDanceFloor: ProximityNear, Placement: PlacementIndoor},
			{Type: TableRound, Capacity: 8, Count: 15, Zone: "sides", NearDanceFloor: ProximityFar, Placement: PlacementIndoor},
		},
		Features: []string{"Dance Floor", "Stage", "High Ceilings", "Central Location"},
		Popular:  true,
	},
	{
		ID:            "garden-pavilion",
		Name:          "Garden Pavilion",
		Description:   "Open-air feel with protective covering. Ideal for spring and summer receptions with flexible round table arrangements.",
		Category:      "outdoor",
		TotalCapacity: 200,
		TableTemplates: []TableTemplate{
			{Type: TableRound, Capacity: 10, Count: 7, Zone: "pavilion", NearDanceFloor: ProximityAdjacent, Placement: PlacementCovered},
			{Type: TableRound, Capacity: 10, Count: 6, Zone: "lawn", NearDanceFloor: ProximityNear, Placement: PlacementOutdoor},
			{Type: TableRound, Capacity: 8, Count: 8, Zone: "garden", NearDanceFloor: ProximityFar, Placement: PlacementOutdoor},
		},
		Features: []string{"Natural Light", "Garden Views", "Covered Area", "Photo Spots"},
	},
	{
		ID:            "modern-banquet",
		Name:          "Modern Banquet",
		Description:   "Contemporary design with long communal tables. Great for intimate, family-style dining with elegant rectangular seating.",
		Category:      "banquet",
		TotalCapacity: 180,
		TableTemplates: []TableTemplate{
			{Type: TableRectangular, Capacity: 14, Count: 2, Zone: "front", NearDanceFloor: ProximityAdjacent, Placement: PlacementIndoor},
			{Type: TableRectangular, Capacity: 12, Count: 4, Zone: "center", NearDanceFloor: ProximityNear, Placement: PlacementIndoor},
			{Type: TableRectangular, Capacity: 12, Count: 4, Zone: "main", NearDanceFloor: ProximityNear, Placement: PlacementIndoor},
			{Type: TableRectangular, Capacity: 10, Count: 5, Zone: "sides", NearDanceFloor: ProximityFar, Placement: PlacementIndoor},
		},
		Features: []string{"Family Style", "Communal Dining", "Modern Aesthetic", "Intimate Feel"},
		Popular:  true,
	},
	{
		ID:            "rooftop-terrace",
		Name:          "Rooftop Terrace",
		Description:   "Stunning city views with a mix of round and cocktail tables. Perfect for sunset ceremonies and evening receptions.",
		Category:      "outdoor",
		TotalCapacity: 150,
		TableTemplates: []TableTemplate{
			{Type: TableRound, Capacity: 8, Count: 4, Zone: "front", NearDanceFloor: ProximityAdjacent, Placement: PlacementCovered},
			{Type: TableRound, Capacity: 8, Count: 6, Zone: "main", NearDanceFloor: ProximityNear, Placement: PlacementCovered},
			{Type: TableRound, Capacity: 8, Count: 4, Zone: "lounge", NearDanceFloor: ProximityFar, Placement: PlacementIndoor},
			{Type: TableRound, Capacity: 6, Count: 5, Zone: "terrace", NearDanceFloor: ProximityFar, Placement: PlacementOutdoor},
		},
		Features: []string{"City Views", "Sunset Location", "Open Air", "Cocktail Space"},
	},
	{
		ID:            "rustic-barn",
		Name:          "Rustic Barn",
		Description:   "Charming countryside venue with exposed beams. Long farmhouse tables create a warm, intimate atmosphere.",
		Category:      "indoor",
		TotalCapacity: 160,
		TableTemplates: []TableTemplate{
			{Type: TableRectangular, Capacity: 12, Count: 2, Zone: "front", NearDanceFloor: ProximityAdjacent, Placement: PlacementIndoor},
			{Type: TableRectangular, Capacity: 14, Count: 3, Zone: "main-floor", NearDanceFloor: ProximityNear, Placement: PlacementIndoor},
			{Type: TableRectangular, Capacity: 14, Count: 3, Zone: "barn-center", NearDanceFloor: ProximityNear, Placement: PlacementIndoor},
			{Type: TableRectangular, Capacity: 12, Count: 4, Zone: "loft", NearDanceFloor: ProximityFar, Placement: PlacementIndoor},
		},
		Features: []string{"Exposed Beams", "Farmhouse Style", "Warm Lighting", "Country Charm"},
	},
	{
		ID:            "intimate-chapel",
		Name:          "Intimate Chapel",
		Description:   "A cozy, elegant space for smaller gatherings. Mixed seating with round tables for personal connections.",
		Category:      "intimate",
		TotalCapacity: 80,
		TableTemplates: []TableTemplate{
			{Type: TableRound, Capacity: 8, Count: 3, Zone: "altar", NearDanceFloor: ProximityAdjacent, Placement: PlacementIndoor},
			{Type: TableRound, Capacity: 8, Count: 4, Zone: "nave", NearDanceFloor: ProximityNear, Placement: PlacementIndoor},
			{Type: TableRound, Capacity: 6, Count: 5, Zone: "sides", NearDanceFloor: ProximityFar, Placement: PlacementIndoor},
		},
		Features: []string{"Intimate Setting", "Classic Architecture", "Natural Acoustics", "Cozy Atmosphere"},
	},
	{
		ID:            "beach-resort",
		Name:          "Beach Resort",
		Description:   "Oceanfront venue with flexible indoor-outdoor flow. Round tables with ocean views for a relaxed celebration.",
		Category:      "outdoor",
		TotalCapacity: 220,
		TableTemplates: []TableTemplate{
			{Type: TableRound, Capacity: 10, Count: 4, Zone: "front", NearDanceFloor: ProximityAdjacent, Placement: PlacementCovered},
			{Type: TableRound, Capacity: 10, Count: 6, Zone: "pavilion", NearDanceFloor: ProximityNear, Placement: PlacementCovered},
			{Type: TableRound, Capacity: 10, Count: 6, Zone: "patio", NearDanceFloor: ProximityNear, Placement: PlacementOutdoor},
			{Type: TableRound, Capacity: 8, Count: 6, Zone: "beachfront", NearDanceFloor: ProximityFar, Placement: PlacementOutdoor},
		},
		Features: []string{"Ocean Views", "Beach Access", "Indoor-Outdoor", "Sunset Backdrop"},
		Popular:  true,
	},
}
