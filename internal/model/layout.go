package model

// ConstraintSummary reports which soft constraints an optimized layout
// satisfied or violated, plus any hard violations.  Produced by the
// optimizer service; displayed verbatim.
type ConstraintSummary struct {
	SatisfiedSoft  map[string]int `json:"satisfied_soft"`
	ViolatedSoft   map[string]int `json:"violated_soft"`
	HardViolations []string       `json:"hard_violations"`
}

// Layout is one scored candidate seating arrangement as returned by the
// external optimizer.  This service never computes Score or the breakdown;
// it only stores and projects them.  Assignments map guest id -> table id
// and may be sparse: a guest without an entry is unseated.
type Layout struct {
	ID                 string             `json:"id"`
	Assignments        map[string]string  `json:"assignments"`
	Score              float64            `json:"score"`
	ObjectiveBreakdown map[string]float64 `json:"objective_breakdown"`
	VariantLabel       *string            `json:"variant_label"`
	VariantID          *string            `json:"variant_id"`
	Summary            *ConstraintSummary `json:"summary"`
}

// TotLayout bundles a Layout with the Tree-of-Thoughts search metadata that
// produced it: the state value, the objective weights explored on that
// branch, and the solver's notes.
type TotLayout struct {
	Value   float64            `json:"value"`
	Weights map[string]float64 `json:"weights"`
	Notes   string             `json:"notes"`
	Layout  Layout             `json:"layout"`
}

// VenueConfig pairs the current table collection with free-form optimizer
// settings.  The store keeps it consistent with the standalone table list:
// replacing one replaces the other.
type VenueConfig struct {
	Tables   []Table        `json:"tables"`
	Settings map[string]any `json:"settings"`
}

// TotParams tunes the Tree-of-Thoughts search on the optimizer side.
type TotParams struct {
	Depth     int `json:"depth"`
	Branching int `json:"branching"`
	NGenerate int `json:"n_generate"`
	NEvaluate int `json:"n_evaluate"`
	TopK      int `json:"top_k"`
}

// DefaultTotParams returns the search parameters used when the planner has
// not tuned anything.
func DefaultTotParams() TotParams {
	return TotParams{
		Depth:     2,
		Branching: 4,
		NGenerate: 4,
		NEvaluate: 4,
		TopK:      3,
	}
}
