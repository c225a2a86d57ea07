package derive

import (
	"testing"

	"github.com/seatharmony/seatharmony/internal/model"
)

func table(id string, capacity int) model.Table {
	return model.Table{ID: id, Name: id, Capacity: capacity}
}

func TestProject(t *testing.T) {
	t.Run("dangling table reference makes the guest unseated", func(t *testing.T) {
		guests := []model.Guest{
			guest("g1", "Amy", "Family"),
			guest("g2", "Bo", "Family"),
			guest("g3", "Cy", "Friends"),
		}
		tables := []model.Table{table("table-1", 10), table("table-2", 10)}
		assignments := map[string]string{
			"g1": "table-1",
			"g2": "table-1",
			"g3": "table-9", // stale reference, table-9 no longer exists
		}
		p := Project(guests, tables, assignments)
		if got := len(p.GuestsByTable["table-1"]); got != 2 {
			t.Errorf("expected 2 guests at table-1, got %d", got)
		}
		if len(p.UnseatedGuests) != 1 || p.UnseatedGuests[0].ID != "g3" {
			t.Fatalf("expected g3 unseated, got %v", p.UnseatedGuests)
		}
		if p.SeatedCount() != 2 {
			t.Errorf("expected 2 seated, got %d", p.SeatedCount())
		}
	})

	t.Run("every table is keyed, including empty ones", func(t *testing.T) {
		tables := []model.Table{table("table-1", 10), table("table-2", 10)}
		p := Project(nil, tables, nil)
		for _, tbl := range tables {
			roster, ok := p.GuestsByTable[tbl.ID]
			if !ok {
				t.Errorf("table %s missing from projection", tbl.ID)
			}
			if roster == nil {
				t.Errorf("table %s has nil roster", tbl.ID)
			}
		}
	})

	t.Run("guests without assignments are unseated in input order", func(t *testing.T) {
		guests := []model.Guest{
			guest("g1", "Amy", ""),
			guest("g2", "Bo", ""),
			guest("g3", "Cy", ""),
		}
		p := Project(guests, []model.Table{table("table-1", 10)}, map[string]string{"g2": "table-1"})
		if len(p.UnseatedGuests) != 2 {
			t.Fatalf("expected 2 unseated, got %d", len(p.UnseatedGuests))
		}
		if p.UnseatedGuests[0].ID != "g1" || p.UnseatedGuests[1].ID != "g3" {
			t.Errorf("unseated out of order: %s, %s", p.UnseatedGuests[0].ID, p.UnseatedGuests[1].ID)
		}
	})

	t.Run("primary category is the first guest with a group", func(t *testing.T) {
		guests := []model.Guest{
			guest("g1", "Amy", ""),
			guest("g2", "Bo", "Family"),
			guest("g3", "Cy", "Friends"),
		}
		assignments := map[string]string{"g1": "table-1", "g2": "table-1", "g3": "table-1"}
		p := Project(guests, []model.Table{table("table-1", 10)}, assignments)
		if p.PrimaryCategory["table-1"] != "Family" {
			t.Errorf("expected Family, got %q", p.PrimaryCategory["table-1"])
		}
	})

	t.Run("sentinel categories for mixed and empty tables", func(t *testing.T) {
		guests := []model.Guest{guest("g1", "Amy", "")}
		tables := []model.Table{table("table-1", 10), table("table-2", 10)}
		p := Project(guests, tables, map[string]string{"g1": "table-1"})
		if p.PrimaryCategory["table-1"] != CategoryMixed {
			t.Errorf("expected %s for table-1, got %q", CategoryMixed, p.PrimaryCategory["table-1"])
		}
		if p.PrimaryCategory["table-2"] != CategoryEmpty {
			t.Errorf("expected %s for table-2, got %q", CategoryEmpty, p.PrimaryCategory["table-2"])
		}
	})

	t.Run("category stats tally tables per category", func(t *testing.T) {
		guests := []model.Guest{
			guest("g1", "Amy", "Family"),
			guest("g2", "Bo", "Family"),
		}
		tables := []model.Table{table("table-1", 10), table("table-2", 10), table("table-3", 10)}
		assignments := map[string]string{"g1": "table-1", "g2": "table-2"}
		p := Project(guests, tables, assignments)
		if p.CategoryStats["Family"] != 2 {
			t.Errorf("expected 2 Family tables, got %d", p.CategoryStats["Family"])
		}
		if p.CategoryStats[CategoryEmpty] != 1 {
			t.Errorf("expected 1 Empty table, got %d", p.CategoryStats[CategoryEmpty])
		}
		if len(p.CategoryOrder) != 2 {
			t.Errorf("expected 2 categories in order, got %v", p.CategoryOrder)
		}
	})

	t.Run("does not mutate its inputs", func(t *testing.T) {
		guests := []model.Guest{guest("g1", "Amy", "Family")}
		tables := []model.Table{table("table-1", 10)}
		assignments := map[string]string{"g1": "table-1"}
		Project(guests, tables, assignments)
		if len(assignments) != 1 || assignments["g1"] != "table-1" {
			t.Errorf("assignments mutated: %v", assignments)
		}
		if guests[0].ID != "g1" || tables[0].ID != "table-1" {
			t.Error("guests or tables mutated")
		}
	})
}

func TestColorFor(t *testing.T) {
	t.Run("colors follow first-seen category order", func(t *testing.T) {
		guests := []model.Guest{
			guest("g1", "Amy", "Family"),
			guest("g2", "Bo", "Friends"),
		}
		tables := []model.Table{table("table-1", 10), table("table-2", 10)}
		assignments := map[string]string{"g1": "table-1", "g2": "table-2"}
		p := Project(guests, tables, assignments)
		if got := p.ColorFor("Family"); got != palette[0] {
			t.Errorf("expected first palette color for Family, got %q", got)
		}
		if got := p.ColorFor("Friends"); got != palette[1] {
			t.Errorf("expected second palette color for Friends, got %q", got)
		}
	})

	t.Run("unknown category has no color", func(t *testing.T) {
		p := Project(nil, nil, nil)
		if got := p.ColorFor("Family"); got != "" {
			t.Errorf("expected empty color, got %q", got)
		}
	})
}
