package model

import "encoding/json"

// TableType describes the physical shape of a table.
type TableType string

// DanceFloorProximity locates a table relative to the dance floor.
type DanceFloorProximity string

// TablePlacement distinguishes indoor, outdoor and covered positions.
type TablePlacement string

const (
	TableRound       TableType = "round"
	TableRectangular TableType = "rectangular"

	ProximityAdjacent DanceFloorProximity = "adjacent"
	ProximityNear     DanceFloorProximity = "near"
	ProximityFar      DanceFloorProximity = "far"

	PlacementIndoor  TablePlacement = "indoor"
	PlacementOutdoor TablePlacement = "outdoor"
	PlacementCovered TablePlacement = "covered"
)

// Table is a seating unit.  Capacity must be positive; Zone is nil for
// tables generated before a venue is chosen.  Table identity is stable for
// the lifetime of a venue selection; selecting a new venue replaces the
// whole collection.
type Table struct {
	ID          string           `json:"id"`
	Name        string           `json:"name"`
	Capacity    int              `json:"capacity"`
	Zone        *string          `json:"zone"`
	Constraints TableConstraints `json:"constraints"`
}

// TableConstraints carries the attribute bag attached to each table.  The
// named fields cover everything this service reads or writes; anything else
// arriving from outside (or destined for the optimizer) rides along in
// Extra unvalidated.  On the wire the whole thing is one flat JSON object,
// matching the optimizer's open constraints map.
type TableConstraints struct {
	TableType      string // "round" | "rectangular"
	VenueID        string // id of the venue the table was generated from
	NearDanceFloor string // "adjacent" | "near" | "far"
	Placement      string // "indoor" | "outdoor" | "covered"

	// Derived booleans, precomputed at generation time so downstream
	// filters never re-derive them from the categorical values.
	IsAdjacentToDanceFloor bool
	IsNearDanceFloor       bool
	IsIndoor               bool
	IsOutdoor              bool
	IsCovered              bool

	// Extra holds unrecognized keys verbatim.
	Extra map[string]any
}

// MarshalJSON flattens the constraints into a single object.  Keys are only
// emitted when their categorical source is set, so a default table
// serializes as {} exactly like one created with no constraints at all.
func (tc TableConstraints) MarshalJSON() ([]byte, error) {
	m := make(map[string]any, len(tc.Extra)+9)
	for k, v := range tc.Extra {
		m[k] = v
	}
	if tc.TableType != "" {
		m["tableType"] = tc.TableType
	}
	if tc.VenueID != "" {
		m["venueId"] = tc.VenueID
	}
	if tc.NearDanceFloor != "" {
		m["nearDanceFloor"] = tc.NearDanceFloor
		m["isAdjacentToDanceFloor"] = tc.IsAdjacentToDanceFloor
		m["isNearDanceFloor"] = tc.IsNearDanceFloor
	}
	if tc.Placement != "" {
		m["placement"] = tc.Placement
		m["isIndoor"] = tc.IsIndoor
		m["isOutdoor"] = tc.IsOutdoor
		m["isCovered"] = tc.IsCovered
	}
	return json.Marshal(m)
}

// UnmarshalJSON lifts the known keys into their typed fields and stashes
// everything else in Extra.
func (tc *TableConstraints) UnmarshalJSON(data []byte) error {
	var m map[string]any
	if err := json.Unmarshal(data, &m); err != nil {
		return err
	}
	*tc = TableConstraints{}
	for k, v := range m {
		switch k {
		case "tableType":
			tc.TableType, _ = v.(string)
		case "venueId":
			tc.VenueID, _ = v.(string)
		case "nearDanceFloor":
			tc.NearDanceFloor, _ = v.(string)
		case "placement":
			tc.Placement, _ = v.(string)
		case "isAdjacentToDanceFloor":
			tc.IsAdjacentToDanceFloor, _ = v.(bool)
		case "isNearDanceFloor":
			tc.IsNearDanceFloor, _ = v.(bool)
		case "isIndoor":
			tc.IsIndoor, _ = v.(bool)
		case "isOutdoor":
			tc.IsOutdoor, _ = v.(bool)
		case "isCovered":
			tc.IsCovered, _ = v.(bool)
		default:
			if tc.Extra == nil {
				tc.Extra = map[string]any{}
			}
			tc.Extra[k] = v
		}
	}
	return nil
}
