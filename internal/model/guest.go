package model

// Guest represents a single person to be seated.  The JSON field names
// mirror the optimizer service's wire format exactly, so a Guest can be
// sent to /api/layouts/generate without any translation layer.
//
// Fields:
//
//	ID             - stable identifier derived at ingestion (row + slugged name).
//	Name           - trimmed display name, never empty for a stored guest.
//	GroupID        - category label from the spreadsheet; nil when the cell was blank.
//	                 Coercion to the "Uncategorized" sentinel happens at grouping
//	                 time, not here: the raw field stays nil in storage.
//	Importance     - 0 = standard, >0 = elevated priority (VIP). Display only.
//	Tags           - free-text labels such as dietary or accessibility notes.
//	MustSitWith    - guest IDs that must share a table. Passed through to the
//	                 optimizer untouched; this layer never enforces them.
//	MustNotSitWith - guest IDs that must not share a table. Pass-through as well.
type Guest struct {
	ID             string   `json:"id"`
	Name           string   `json:"name"`
	GroupID        *string  `json:"group_id"`
	Importance     int      `json:"importance"`
	Tags           []string `json:"tags"`
	MustSitWith    []string `json:"must_sit_with"`
	MustNotSitWith []string `json:"must_not_sit_with"`
}

// NewGuest builds a guest from an ingested spreadsheet row.  A blank
// category becomes a nil GroupID; importance and the constraint sets start
// empty and are edited later through the store.
func NewGuest(id, name, category string) Guest {
	var group *string
	if category != "" {
		group = &category
	}
	return Guest{
		ID:             id,
		Name:           name,
		GroupID:        group,
		Importance:     0,
		Tags:           []string{},
		MustSitWith:    []string{},
		MustNotSitWith: []string{},
	}
}

// Group returns the guest's category label, or "" when uncategorized.
func (g Guest) Group() string {
	if g.GroupID == nil {
		return ""
	}
	return *g.GroupID
}

// GuestGroup is a derived partition of the guest list sharing one category
// label.  It is recomputed on demand and never persisted.
type GuestGroup struct {
	ID         string  `json:"id"`
	Name       string  `json:"name"`
	Guests     []Guest `json:"guests"`
	GuestCount int     `json:"guestCount"`
}
