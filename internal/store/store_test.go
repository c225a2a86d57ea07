package store

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/seatharmony/seatharmony/internal/model"
)

func newTestStore() *Store {
	return New(NewMemoryKV(), "test-session")
}

func guests(names ...string) []model.Guest {
	out := make([]model.Guest, 0, len(names))
	for i, n := range names {
		out = append(out, model.NewGuest(fmt.Sprintf("g%d", i+1), n, "Family"))
	}
	return out
}

func TestStoreRoundTrips(t *testing.T) {
	ctx := context.Background()
	s := newTestStore()

	t.Run("defaults before anything is stored", func(t *testing.T) {
		if got := s.Guests(ctx); len(got) != 0 {
			t.Errorf("expected no guests, got %d", len(got))
		}
		if got := s.Tables(ctx); len(got) != 0 {
			t.Errorf("expected no tables, got %d", len(got))
		}
		if v := s.SelectedVenue(ctx); v != nil {
			t.Errorf("expected nil venue, got %v", v)
		}
		if p := s.TotParams(ctx); p != model.DefaultTotParams() {
			t.Errorf("expected default params, got %+v", p)
		}
		if idx := s.SelectedLayoutIndex(ctx); idx != 0 {
			t.Errorf("expected index 0, got %d", idx)
		}
	})

	t.Run("guests persist", func(t *testing.T) {
		if err := s.SetGuests(ctx, guests("Amy", "Bo")); err != nil {
			t.Fatalf("SetGuests failed: %v", err)
		}
		got := s.Guests(ctx)
		if len(got) != 2 || got[0].Name != "Amy" {
			t.Errorf("unexpected guests: %v", got)
		}
	})

	t.Run("selected venue persists and clears", func(t *testing.T) {
		v, _ := model.VenueByID("garden-pavilion")
		if err := s.SetSelectedVenue(ctx, &v); err != nil {
			t.Fatalf("SetSelectedVenue failed: %v", err)
		}
		got := s.SelectedVenue(ctx)
		if got == nil || got.ID != "garden-pavilion" {
			t.Errorf("unexpected venue: %v", got)
		}
		if err := s.SetSelectedVenue(ctx, nil); err != nil {
			t.Fatalf("clearing venue failed: %v", err)
		}
		if s.SelectedVenue(ctx) != nil {
			t.Error("venue not cleared")
		}
	})
}

func TestCorruptFieldFallsBackAlone(t *testing.T) {
	ctx := context.Background()
	kv := NewMemoryKV()
	s := New(kv, "sess")

	if err := s.SetGuests(ctx, guests("Amy")); err != nil {
		t.Fatalf("SetGuests failed: %v", err)
	}
	if err := s.SetTotParams(ctx, model.TotParams{Depth: 5, Branching: 2, NGenerate: 1, NEvaluate: 1, TopK: 1}); err != nil {
		t.Fatalf("SetTotParams failed: %v", err)
	}

	// Corrupt only the params key.
	if err := kv.Set(ctx, "seatharmony:sess:tot_params", []byte("{not json")); err != nil {
		t.Fatalf("Set failed: %v", err)
	}

	if p := s.TotParams(ctx); p != model.DefaultTotParams() {
		t.Errorf("corrupt params should fall back to defaults, got %+v", p)
	}
	if got := s.Guests(ctx); len(got) != 1 {
		t.Errorf("corruption of one field leaked into another: %v", got)
	}
}

func TestTablesAndVenueConfigMoveTogether(t *testing.T) {
	ctx := context.Background()
	s := newTestStore()

	tables := model.CreateDefaultTables(20, 10)
	if err := s.SetTables(ctx, tables); err != nil {
		t.Fatalf("SetTables failed: %v", err)
	}
	if cfg := s.VenueConfig(ctx); len(cfg.Tables) != 2 {
		t.Errorf("SetTables did not mirror into venue config: %d tables", len(cfg.Tables))
	}

	cfg := model.VenueConfig{
		Tables:   model.CreateDefaultTables(50, 10),
		Settings: map[string]any{"theme": "rustic"},
	}
	if err := s.SetVenueConfig(ctx, cfg); err != nil {
		t.Fatalf("SetVenueConfig failed: %v", err)
	}
	if got := s.Tables(ctx); len(got) != 5 {
		t.Errorf("SetVenueConfig did not replace tables: %d tables", len(got))
	}
}

func TestUpdateGuest(t *testing.T) {
	ctx := context.Background()
	s := newTestStore()
	if err := s.SetGuests(ctx, guests("Amy", "Bo")); err != nil {
		t.Fatalf("SetGuests failed: %v", err)
	}

	t.Run("patches only the set fields", func(t *testing.T) {
		name := "Amy Smith"
		importance := 3
		if err := s.UpdateGuest(ctx, "g1", GuestPatch{Name: &name, Importance: &importance}); err != nil {
			t.Fatalf("UpdateGuest failed: %v", err)
		}
		got := s.Guests(ctx)[0]
		if got.Name != "Amy Smith" || got.Importance != 3 {
			t.Errorf("patch not applied: %+v", got)
		}
		if got.Group() != "Family" {
			t.Errorf("untouched field changed: %q", got.Group())
		}
	})

	t.Run("empty group id clears the category", func(t *testing.T) {
		empty := ""
		if err := s.UpdateGuest(ctx, "g1", GuestPatch{GroupID: &empty}); err != nil {
			t.Fatalf("UpdateGuest failed: %v", err)
		}
		if got := s.Guests(ctx)[0]; got.GroupID != nil {
			t.Errorf("expected cleared group, got %q", *got.GroupID)
		}
	})

	t.Run("unknown id is a no-op", func(t *testing.T) {
		name := "Nobody"
		if err := s.UpdateGuest(ctx, "missing", GuestPatch{Name: &name}); err != nil {
			t.Fatalf("UpdateGuest failed: %v", err)
		}
		if got := s.Guests(ctx); len(got) != 2 {
			t.Errorf("guest list changed: %v", got)
		}
	})
}

func TestAddGuestRejectsDuplicateIDs(t *testing.T) {
	ctx := context.Background()
	s := newTestStore()

	if err := s.AddGuest(ctx, model.NewGuest("guest-manual-amy", "Amy", "Family")); err != nil {
		t.Fatalf("first AddGuest failed: %v", err)
	}
	err := s.AddGuest(ctx, model.NewGuest("guest-manual-amy", "Amy", "Friends"))
	if !errors.Is(err, ErrDuplicateGuest) {
		t.Fatalf("expected ErrDuplicateGuest, got %v", err)
	}
	if got := s.Guests(ctx); len(got) != 1 {
		t.Fatalf("rejected add changed the list: %d guests", len(got))
	}

	// With ids unique, patch and remove address exactly one record.
	name := "Amy Smith"
	if err := s.UpdateGuest(ctx, "guest-manual-amy", GuestPatch{Name: &name}); err != nil {
		t.Fatalf("UpdateGuest failed: %v", err)
	}
	if got := s.Guests(ctx)[0]; got.Name != "Amy Smith" {
		t.Errorf("patch missed its guest: %q", got.Name)
	}
	if err := s.RemoveGuest(ctx, "guest-manual-amy"); err != nil {
		t.Fatalf("RemoveGuest failed: %v", err)
	}
	if got := s.Guests(ctx); len(got) != 0 {
		t.Errorf("expected empty list after removal, got %d guests", len(got))
	}
}

func TestRemoveGuest(t *testing.T) {
	ctx := context.Background()
	s := newTestStore()
	if err := s.SetGuests(ctx, guests("Amy", "Bo", "Cy")); err != nil {
		t.Fatalf("SetGuests failed: %v", err)
	}
	if err := s.RemoveGuest(ctx, "g2"); err != nil {
		t.Fatalf("RemoveGuest failed: %v", err)
	}
	got := s.Guests(ctx)
	if len(got) != 2 || got[0].ID != "g1" || got[1].ID != "g3" {
		t.Errorf("unexpected guests after removal: %v", got)
	}
}

func TestInitializeFromSpreadsheet(t *testing.T) {
	ctx := context.Background()
	s := newTestStore()

	// Seed a fully progressed session.
	v, _ := model.VenueByID("grand-ballroom")
	if err := s.SetSelectedVenue(ctx, &v); err != nil {
		t.Fatal(err)
	}
	if err := s.SetLayouts(ctx, []model.TotLayout{{Value: 1}}); err != nil {
		t.Fatal(err)
	}
	if err := s.SetSelectedLayoutIndex(ctx, 0); err != nil {
		t.Fatal(err)
	}
	s.SetError("previous import failed")

	imported := make([]model.Guest, 25)
	for i := range imported {
		imported[i] = model.NewGuest("g", "Guest", "Family")
	}
	if err := s.InitializeFromSpreadsheet(ctx, imported); err != nil {
		t.Fatalf("InitializeFromSpreadsheet failed: %v", err)
	}

	if got := s.Guests(ctx); len(got) != 25 {
		t.Errorf("expected 25 guests, got %d", len(got))
	}
	// 25 guests at 10 seats each round up to 3 default tables.
	if got := s.Tables(ctx); len(got) != 3 {
		t.Errorf("expected 3 default tables, got %d", len(got))
	}
	if got := s.Layouts(ctx); len(got) != 0 {
		t.Errorf("layouts survived the reset: %v", got)
	}
	if s.SelectedVenue(ctx) != nil {
		t.Error("venue selection survived the reset")
	}
	if s.Err() != "" {
		t.Errorf("error flag survived the reset: %q", s.Err())
	}
	if s.Phase(ctx) != PhaseIngested {
		t.Errorf("expected phase %s, got %s", PhaseIngested, s.Phase(ctx))
	}
}

func TestClearAll(t *testing.T) {
	ctx := context.Background()
	s := newTestStore()
	if err := s.SetGuests(ctx, guests("Amy")); err != nil {
		t.Fatal(err)
	}
	s.SetLoading(true)
	s.SetError("boom")

	if err := s.ClearAll(ctx); err != nil {
		t.Fatalf("ClearAll failed: %v", err)
	}
	if s.HasStoredData(ctx) {
		t.Error("guest data survived ClearAll")
	}
	if s.Loading() || s.Err() != "" {
		t.Error("transient flags survived ClearAll")
	}
	if s.Phase(ctx) != PhaseEmpty {
		t.Errorf("expected phase %s, got %s", PhaseEmpty, s.Phase(ctx))
	}
}

func TestPhaseTransitions(t *testing.T) {
	ctx := context.Background()
	s := newTestStore()

	if s.Phase(ctx) != PhaseEmpty {
		t.Fatalf("fresh session should be %s, got %s", PhaseEmpty, s.Phase(ctx))
	}

	if err := s.InitializeFromSpreadsheet(ctx, guests("Amy", "Bo")); err != nil {
		t.Fatal(err)
	}
	if s.Phase(ctx) != PhaseIngested {
		t.Fatalf("after import expected %s, got %s", PhaseIngested, s.Phase(ctx))
	}

	v, _ := model.VenueByID("garden-pavilion")
	if err := s.SetSelectedVenue(ctx, &v); err != nil {
		t.Fatal(err)
	}
	if s.Phase(ctx) != PhaseVenueSelected {
		t.Fatalf("after venue expected %s, got %s", PhaseVenueSelected, s.Phase(ctx))
	}

	if err := s.SetLayouts(ctx, []model.TotLayout{{Value: 1}, {Value: 2}}); err != nil {
		t.Fatal(err)
	}
	if s.Phase(ctx) != PhaseLayoutsGenerated {
		t.Fatalf("after generation expected %s, got %s", PhaseLayoutsGenerated, s.Phase(ctx))
	}

	if err := s.SetSelectedLayoutIndex(ctx, 1); err != nil {
		t.Fatal(err)
	}
	if s.Phase(ctx) != PhaseLayoutSelected {
		t.Fatalf("after selection expected %s, got %s", PhaseLayoutSelected, s.Phase(ctx))
	}

	// Regenerating drops the selection and the phase with it.
	if err := s.SetLayouts(ctx, []model.TotLayout{{Value: 3}}); err != nil {
		t.Fatal(err)
	}
	if s.Phase(ctx) != PhaseLayoutsGenerated {
		t.Fatalf("regeneration should reset selection, got %s", s.Phase(ctx))
	}
	if s.SelectedLayoutIndex(ctx) != 0 {
		t.Errorf("expected index back to 0, got %d", s.SelectedLayoutIndex(ctx))
	}
}
