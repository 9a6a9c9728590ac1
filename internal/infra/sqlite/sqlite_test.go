package sqlite

import (
	"testing"

	"github.com/gearline/gearline/internal/domain"
	"github.com/gearline/gearline/internal/sim/catalog"
	"github.com/gearline/gearline/internal/sim/process"
)

func openTestDB(t *testing.T) *DB {
	t.Helper()
	db, err := Open(t.TempDir())
	if err != nil {
		t.Fatalf("Open() error: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

func TestOpen_MigratesAndPings(t *testing.T) {
	db := openTestDB(t)
	if err := db.Ping(); err != nil {
		t.Errorf("Ping() error: %v", err)
	}
}

func TestOpen_Reopen(t *testing.T) {
	dir := t.TempDir()
	db, err := Open(dir)
	if err != nil {
		t.Fatalf("first Open() error: %v", err)
	}
	db.Close()

	// Migrations are idempotent on an existing database.
	db, err = Open(dir)
	if err != nil {
		t.Fatalf("second Open() error: %v", err)
	}
	db.Close()
}

func TestSaveLoadProcesses_RoundTrip(t *testing.T) {
	db := openTestDB(t)
	cat := catalog.Default()

	milling, _ := cat.RecipeFor(domain.ProcessMilling, "wheat")
	mixing, _ := cat.RecipeFor(domain.ProcessMixing, "raw_iron")
	in := []process.Instance{
		{Coord: domain.Coord{X: 6, Y: 4, Z: 0}, Kind: domain.ProcessMilling, Recipe: milling, Input: "wheat", Remaining: 7},
		{Coord: domain.Coord{X: 3, Y: 4, Z: 1}, Kind: domain.ProcessMixing, Recipe: mixing, Input: "raw_iron", Remaining: 12},
	}
	if err := db.SaveProcesses(in); err != nil {
		t.Fatalf("SaveProcesses() error: %v", err)
	}

	out, err := db.LoadProcesses(cat)
	if err != nil {
		t.Fatalf("LoadProcesses() error: %v", err)
	}
	if len(out) != 2 {
		t.Fatalf("loaded %d instances, want 2", len(out))
	}
	// Rows come back ordered by coordinate key.
	if out[0].Coord.Key() != "3,4,1" || out[1].Coord.Key() != "6,4,0" {
		t.Errorf("load order = %s, %s", out[0].Coord.Key(), out[1].Coord.Key())
	}
	for _, inst := range out {
		if inst.Coord.Key() == "6,4,0" {
			if inst.Recipe.Output != "flour" || inst.Remaining != 7 {
				t.Errorf("milling row = %+v", inst)
			}
		}
	}
}

func TestSaveProcesses_ReplacesPreviousSet(t *testing.T) {
	db := openTestDB(t)
	cat := catalog.Default()
	milling, _ := cat.RecipeFor(domain.ProcessMilling, "wheat")

	first := []process.Instance{
		{Coord: domain.Coord{X: 1}, Kind: domain.ProcessMilling, Recipe: milling, Input: "wheat", Remaining: 5},
	}
	if err := db.SaveProcesses(first); err != nil {
		t.Fatal(err)
	}
	// An empty save wipes the table.
	if err := db.SaveProcesses(nil); err != nil {
		t.Fatal(err)
	}

	out, err := db.LoadProcesses(cat)
	if err != nil {
		t.Fatal(err)
	}
	if len(out) != 0 {
		t.Errorf("loaded %d instances after empty save, want 0", len(out))
	}
}

func TestLoadProcesses_DropsUnresolvableRecipes(t *testing.T) {
	db := openTestDB(t)
	cat := catalog.Default()
	milling, _ := cat.RecipeFor(domain.ProcessMilling, "wheat")

	// A stale row whose recipe no longer exists in the catalog.
	stale := milling
	stale.Inputs = []domain.ItemID{"obsolete_item"}
	in := []process.Instance{
		{Coord: domain.Coord{X: 1}, Kind: domain.ProcessMilling, Recipe: milling, Input: "wheat", Remaining: 3},
		{Coord: domain.Coord{X: 2}, Kind: domain.ProcessMilling, Recipe: stale, Input: "obsolete_item", Remaining: 3},
	}
	if err := db.SaveProcesses(in); err != nil {
		t.Fatal(err)
	}

	out, err := db.LoadProcesses(cat)
	if err != nil {
		t.Fatal(err)
	}
	if len(out) != 1 {
		t.Fatalf("loaded %d instances, want 1 (stale recipe dropped)", len(out))
	}
	if out[0].Coord.Key() != "1,0,0" {
		t.Errorf("surviving row = %s, want 1,0,0", out[0].Coord.Key())
	}
}

func TestEvents_AppendAndRecent(t *testing.T) {
	db := openTestDB(t)

	for i := 1; i <= 3; i++ {
		if err := db.AppendEvent("run-a", uint64(i), "notify", "event"); err != nil {
			t.Fatalf("AppendEvent() error: %v", err)
		}
	}

	events, err := db.RecentEvents(2)
	if err != nil {
		t.Fatalf("RecentEvents() error: %v", err)
	}
	if len(events) != 2 {
		t.Fatalf("got %d events, want 2", len(events))
	}
	// Newest first.
	if events[0].Tick != 3 || events[1].Tick != 2 {
		t.Errorf("event ticks = %d, %d, want 3, 2", events[0].Tick, events[1].Tick)
	}
	if events[0].RunID != "run-a" || events[0].Kind != "notify" {
		t.Errorf("event fields = %+v", events[0])
	}
}

func TestRecentEvents_DefaultLimit(t *testing.T) {
	db := openTestDB(t)
	if err := db.AppendEvent("run-a", 1, "notify", "only one"); err != nil {
		t.Fatal(err)
	}
	events, err := db.RecentEvents(0)
	if err != nil {
		t.Fatal(err)
	}
	if len(events) != 1 {
		t.Errorf("got %d events, want 1", len(events))
	}
}
