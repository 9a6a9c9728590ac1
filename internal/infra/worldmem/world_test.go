package worldmem

import (
	"testing"

	"github.com/gearline/gearline/internal/domain"
)

func TestWorld_BlockLifecycle(t *testing.T) {
	w := New()
	c := domain.Coord{X: 1, Y: 2, Z: 3}

	if _, ok := w.LookupBlock(c); ok {
		t.Error("empty world reported a block")
	}

	w.SetBlock(c, "gearline:shaft")
	id, ok := w.LookupBlock(c)
	if !ok || id != "gearline:shaft" {
		t.Errorf("LookupBlock = (%s, %v), want (gearline:shaft, true)", id, ok)
	}

	w.RemoveBlock(c)
	if _, ok := w.LookupBlock(c); ok {
		t.Error("removed block still present")
	}
}

func TestWorld_PlayerPresence(t *testing.T) {
	w := New()
	if _, ok := w.PlayerPosition(); ok {
		t.Error("new world should have no player")
	}

	at := domain.Coord{X: 5, Y: 4, Z: -2}
	w.SetPlayer(at)
	got, ok := w.PlayerPosition()
	if !ok || got != at {
		t.Errorf("PlayerPosition = (%v, %v), want (%v, true)", got, ok, at)
	}

	w.ClearPlayer()
	if _, ok := w.PlayerPosition(); ok {
		t.Error("cleared player still reported")
	}
}

func TestWorld_InventorySlots(t *testing.T) {
	w := New()
	c := domain.Coord{X: 1}

	if _, ok := w.InventoryItem(c, 0); ok {
		t.Error("empty slot reported an item")
	}

	w.SetInventoryItem(c, 0, "wheat", 3)
	item, ok := w.InventoryItem(c, 0)
	if !ok || item != "wheat" {
		t.Errorf("InventoryItem = (%s, %v), want (wheat, true)", item, ok)
	}
	if _, count := w.Stack(c, 0); count != 3 {
		t.Errorf("count = %d, want 3", count)
	}

	// Slots are independent per index.
	if _, ok := w.InventoryItem(c, 1); ok {
		t.Error("adjacent slot leaked the stack")
	}

	// Empty item or non-positive count clears.
	w.SetInventoryItem(c, 0, "", 0)
	if _, ok := w.InventoryItem(c, 0); ok {
		t.Error("cleared slot still occupied")
	}
	w.SetInventoryItem(c, 0, "flour", 0)
	if _, ok := w.InventoryItem(c, 0); ok {
		t.Error("zero-count stack should clear the slot")
	}
}

func TestWorld_HeatedChecksSelfAndBelow(t *testing.T) {
	w := New()
	machine := domain.Coord{X: 0, Y: 4, Z: 0}

	if w.Heated(machine) {
		t.Error("unheated coordinate reported heat")
	}

	w.SetHeatSource(domain.Coord{X: 0, Y: 3, Z: 0}, true)
	if !w.Heated(machine) {
		t.Error("heat source directly below not detected")
	}

	w.SetHeatSource(domain.Coord{X: 0, Y: 3, Z: 0}, false)
	w.SetHeatSource(machine, true)
	if !w.Heated(machine) {
		t.Error("heat source at the coordinate not detected")
	}

	if w.Heated(domain.Coord{X: 0, Y: 6, Z: 0}) {
		t.Error("heat reported two blocks above the source")
	}
}
