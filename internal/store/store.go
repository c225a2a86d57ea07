package store

import (
	"context"
	"encoding/json"
	"errors"
	"sync"

	"github.com/seatharmony/seatharmony/internal/model"
)

// ErrDuplicateGuest is returned by AddGuest when the id is already taken.
// Guest ids key assignment maps and patch/remove operations, so two guests
// must never share one.
var ErrDuplicateGuest = errors.New("guest id already exists")

// DefaultSeatsPerTable is the capacity used for the fallback tables
// generated right after an import, before a venue is chosen.
const DefaultSeatsPerTable = 10

// Field keys.  One durable KV entry per field, namespaced per session.
const (
	fieldGuests         = "guests"
	fieldTables         = "tables"
	fieldVenueConfig    = "venue_config"
	fieldVenueLayout    = "venue_layout"
	fieldTotParams      = "tot_params"
	fieldLayouts        = "layouts"
	fieldSelectedLayout = "selected_layout"
)

var allFields = []string{
	fieldGuests, fieldTables, fieldVenueConfig, fieldVenueLayout,
	fieldTotParams, fieldLayouts, fieldSelectedLayout,
}

// Phase is the explicit session state machine.  Each transition is driven
// by exactly one store mutation; consumers pattern-match on the phase
// instead of re-deriving it from ad hoc emptiness checks.
type Phase string

const (
	PhaseEmpty            Phase = "empty"
	PhaseIngested         Phase = "ingested"
	PhaseVenueSelected    Phase = "venue_selected"
	PhaseLayoutsGenerated Phase = "layouts_generated"
	PhaseLayoutSelected   Phase = "layout_selected"
)

// Store owns one planning session's canonical state.  Construct one per
// request from the shared KV and the session id; all methods persist
// immediately.  Derived structures (groups, projections) are computed by
// callers from the getters and never stored.
//
// The loading and error flags are transient UI state: they are held in
// memory only and vanish with the process, exactly like the original
// client's non-persisted flags.
type Store struct {
	kv     KV
	prefix string

	mu      sync.Mutex
	loading bool
	lastErr string
}

// New binds a session id to the shared KV.  Keys take the form
// "seatharmony:<session>:<field>".
func New(kv KV, sessionID string) *Store {
	return &Store{kv: kv, prefix: "seatharmony:" + sessionID + ":"}
}

func (s *Store) key(field string) string { return s.prefix + field }

// load reads one field, falling back to def when the key is absent or its
// JSON no longer parses.  Corruption of one field must never prevent the
// others from loading, so the error is swallowed by contract.
func load[T any](ctx context.Context, s *Store, field string, def T) T {
	bs, err := s.kv.Get(ctx, s.key(field))
	if err != nil {
		return def
	}
	var v T
	if err := json.Unmarshal(bs, &v); err != nil {
		return def
	}
	return v
}

func save(ctx context.Context, s *Store, field string, v any) error {
	bs, err := json.Marshal(v)
	if err != nil {
		return err
	}
	return s.kv.Set(ctx, s.key(field), bs)
}

// Guests returns the canonical guest list, empty when nothing was imported.
func (s *Store) Guests(ctx context.Context) []model.Guest {
	return load(ctx, s, fieldGuests, []model.Guest{})
}

// SetGuests replaces the guest list wholesale and clears the error flag.
func (s *Store) SetGuests(ctx context.Context, guests []model.Guest) error {
	s.SetError("")
	return save(ctx, s, fieldGuests, guests)
}

// Tables returns the current table collection.
func (s *Store) Tables(ctx context.Context) []model.Table {
	return load(ctx, s, fieldTables, []model.Table{})
}

// SetTables replaces the tables and mirrors them into the venue config's
// table list.  Tables and venue config move together; callers must not
// assume one can change without the other.
func (s *Store) SetTables(ctx context.Context, tables []model.Table) error {
	if err := save(ctx, s, fieldTables, tables); err != nil {
		return err
	}
	cfg := s.VenueConfig(ctx)
	cfg.Tables = tables
	return save(ctx, s, fieldVenueConfig, cfg)
}

// VenueConfig returns the venue configuration, defaulting to empty tables
// and settings.
func (s *Store) VenueConfig(ctx context.Context) model.VenueConfig {
	return load(ctx, s, fieldVenueConfig, model.VenueConfig{Tables: []model.Table{}, Settings: map[string]any{}})
}

// SetVenueConfig replaces the venue config and the standalone table list
// with the config's tables, keeping the two views consistent.
func (s *Store) SetVenueConfig(ctx context.Context, cfg model.VenueConfig) error {
	if err := save(ctx, s, fieldVenueConfig, cfg); err != nil {
		return err
	}
	return save(ctx, s, fieldTables, cfg.Tables)
}

// SelectedVenue returns the chosen venue layout, nil before selection.
func (s *Store) SelectedVenue(ctx context.Context) *model.VenueLayout {
	return load[*model.VenueLayout](ctx, s, fieldVenueLayout, nil)
}

// SetSelectedVenue records the chosen venue; pass nil to clear it.
func (s *Store) SetSelectedVenue(ctx context.Context, v *model.VenueLayout) error {
	if v == nil {
		return s.kv.Delete(ctx, s.key(fieldVenueLayout))
	}
	return save(ctx, s, fieldVenueLayout, v)
}

// TotParams returns the optimizer search parameters, defaulting to the
// stock settings.
func (s *Store) TotParams(ctx context.Context) model.TotParams {
	return load(ctx, s, fieldTotParams, model.DefaultTotParams())
}

// SetTotParams persists tuned search parameters.
func (s *Store) SetTotParams(ctx context.Context, p model.TotParams) error {
	return save(ctx, s, fieldTotParams, p)
}

// Layouts returns the candidate layouts from the last generation run.
func (s *Store) Layouts(ctx context.Context) []model.TotLayout {
	return load(ctx, s, fieldLayouts, []model.TotLayout{})
}

// SetLayouts replaces the candidate set and resets the selection, so the
// session drops back to the layouts-generated phase until the planner
// picks one.
func (s *Store) SetLayouts(ctx context.Context, layouts []model.TotLayout) error {
	if err := save(ctx, s, fieldLayouts, layouts); err != nil {
		return err
	}
	return s.kv.Delete(ctx, s.key(fieldSelectedLayout))
}

// SelectedLayoutIndex returns the selection pointer, 0 when none was
// recorded.
func (s *Store) SelectedLayoutIndex(ctx context.Context) int {
	return load(ctx, s, fieldSelectedLayout, 0)
}

// SetSelectedLayoutIndex records which candidate the planner picked.  The
// presence of the key is what moves the session into the layout-selected
// phase.
func (s *Store) SetSelectedLayoutIndex(ctx context.Context, index int) error {
	return save(ctx, s, fieldSelectedLayout, index)
}

// GuestPatch is a partial guest update.  Nil fields are left untouched; a
// set GroupID of "" clears the guest's category back to nil.
type GuestPatch struct {
	Name           *string
	GroupID        *string
	Importance     *int
	Tags           *[]string
	MustSitWith    *[]string
	MustNotSitWith *[]string
}

// UpdateGuest merges the patch into the guest with the given id.  An
// unknown id is a no-op, never an error.
func (s *Store) UpdateGuest(ctx context.Context, id string, patch GuestPatch) error {
	guests := s.Guests(ctx)
	changed := false
	for i := range guests {
		if guests[i].ID != id {
			continue
		}
		applyPatch(&guests[i], patch)
		changed = true
		break
	}
	if !changed {
		return nil
	}
	return save(ctx, s, fieldGuests, guests)
}

func applyPatch(g *model.Guest, patch GuestPatch) {
	if patch.Name != nil {
		g.Name = *patch.Name
	}
	if patch.GroupID != nil {
		if *patch.GroupID == "" {
			g.GroupID = nil
		} else {
			v := *patch.GroupID
			g.GroupID = &v
		}
	}
	if patch.Importance != nil {
		g.Importance = *patch.Importance
	}
	if patch.Tags != nil {
		g.Tags = *patch.Tags
	}
	if patch.MustSitWith != nil {
		g.MustSitWith = *patch.MustSitWith
	}
	if patch.MustNotSitWith != nil {
		g.MustNotSitWith = *patch.MustNotSitWith
	}
}

// AddGuest appends one guest to the list.  An id collision is rejected
// with ErrDuplicateGuest and leaves the list untouched.
func (s *Store) AddGuest(ctx context.Context, g model.Guest) error {
	guests := s.Guests(ctx)
	for _, existing := range guests {
		if existing.ID == g.ID {
			return ErrDuplicateGuest
		}
	}
	return save(ctx, s, fieldGuests, append(guests, g))
}

// RemoveGuest drops the guest with the given id; unknown ids are a no-op.
func (s *Store) RemoveGuest(ctx context.Context, id string) error {
	guests := s.Guests(ctx)
	kept := guests[:0:0]
	for _, g := range guests {
		if g.ID != id {
			kept = append(kept, g)
		}
	}
	if len(kept) == len(guests) {
		return nil
	}
	return save(ctx, s, fieldGuests, kept)
}

// InitializeFromSpreadsheet resets the whole planning funnel after a fresh
// import: the guest list is replaced, default tables are generated at ten
// seats per table, the venue config is reset to those tables, previous
// candidate layouts are discarded along with the selection, the chosen
// venue is cleared, and the error flag is reset.  This is the single entry
// point following a successful ingestion.
func (s *Store) InitializeFromSpreadsheet(ctx context.Context, guests []model.Guest) error {
	if err := save(ctx, s, fieldGuests, guests); err != nil {
		return err
	}
	tables := model.CreateDefaultTables(len(guests), DefaultSeatsPerTable)
	if err := save(ctx, s, fieldTables, tables); err != nil {
		return err
	}
	cfg := model.VenueConfig{Tables: tables, Settings: map[string]any{}}
	if err := save(ctx, s, fieldVenueConfig, cfg); err != nil {
		return err
	}
	if err := save(ctx, s, fieldLayouts, []model.TotLayout{}); err != nil {
		return err
	}
	if err := s.kv.Delete(ctx, s.key(fieldSelectedLayout), s.key(fieldVenueLayout)); err != nil {
		return err
	}
	s.SetError("")
	return nil
}

// ClearAll wipes every durable field and its backing key, and resets the
// transient flags.  Full session teardown.
func (s *Store) ClearAll(ctx context.Context) error {
	keys := make([]string, len(allFields))
	for i, f := range allFields {
		keys[i] = s.key(f)
	}
	if err := s.kv.Delete(ctx, keys...); err != nil {
		return err
	}
	s.mu.Lock()
	s.loading = false
	s.lastErr = ""
	s.mu.Unlock()
	return nil
}

// HasStoredData reports whether a guest list exists, mirroring the check
// views use to decide between the planner and the landing flow.
func (s *Store) HasStoredData(ctx context.Context) bool {
	return len(s.Guests(ctx)) > 0
}

// Phase derives the session's position in the planning funnel.
func (s *Store) Phase(ctx context.Context) Phase {
	if len(s.Guests(ctx)) == 0 {
		return PhaseEmpty
	}
	if s.SelectedVenue(ctx) == nil {
		return PhaseIngested
	}
	if len(s.Layouts(ctx)) == 0 {
		return PhaseVenueSelected
	}
	if _, err := s.kv.Get(ctx, s.key(fieldSelectedLayout)); err != nil {
		return PhaseLayoutsGenerated
	}
	return PhaseLayoutSelected
}

// SetLoading flips the transient loading flag.
func (s *Store) SetLoading(v bool) {
	s.mu.Lock()
	s.loading = v
	s.mu.Unlock()
}

// Loading reports the transient loading flag.
func (s *Store) Loading() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loading
}

// SetError records a transient, user-visible error message; "" clears it.
func (s *Store) SetError(msg string) {
	s.mu.Lock()
	s.lastErr = msg
	s.mu.Unlock()
}

// Err returns the transient error message, "" when none.
func (s *Store) Err() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastErr
}
