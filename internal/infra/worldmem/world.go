// Package worldmem is an in-memory implementation of the domain.Host
// collaborator contract: blocks, per-machine slot inventories, heat
// sources, and a player position. It backs the built-in demo world and
// the engine tests; a real host game would supply its own implementation.
package worldmem

import (
	"sync"

	"github.com/gearline/gearline/internal/domain"
)

type slotKey struct {
	coord domain.Coord
	slot  int
}

type stack struct {
	item  domain.ItemID
	count int
}

// World is a mutex-guarded in-memory voxel world.
type World struct {
	mu        sync.RWMutex
	blocks    map[domain.Coord]domain.BlockID
	inv       map[slotKey]stack
	heat      map[domain.Coord]bool
	player    domain.Coord
	hasPlayer bool
}

// New returns an empty world with no player.
func New() *World {
	return &World{
		blocks: make(map[domain.Coord]domain.BlockID),
		inv:    make(map[slotKey]stack),
		heat:   make(map[domain.Coord]bool),
	}
}

// ─── World Editing ──────────────────────────────────────────────────────────

// SetBlock places a block.
func (w *World) SetBlock(c domain.Coord, id domain.BlockID) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.blocks[c] = id
}

// RemoveBlock clears a coordinate back to air.
func (w *World) RemoveBlock(c domain.Coord) {
	w.mu.Lock()
	defer w.mu.Unlock()
	delete(w.blocks, c)
}

// SetPlayer places the player at a coordinate.
func (w *World) SetPlayer(c domain.Coord) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.player = c
	w.hasPlayer = true
}

// ClearPlayer removes the player, making the world accessor unavailable.
func (w *World) ClearPlayer() {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.hasPlayer = false
}

// SetHeatSource marks or clears a heat source at a coordinate.
func (w *World) SetHeatSource(c domain.Coord, on bool) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if on {
		w.heat[c] = true
	} else {
		delete(w.heat, c)
	}
}

// Stack reads a slot's item and count directly, for tests and tools.
func (w *World) Stack(c domain.Coord, slot int) (domain.ItemID, int) {
	w.mu.RLock()
	defer w.mu.RUnlock()
	s := w.inv[slotKey{coord: c, slot: slot}]
	return s.item, s.count
}

// ─── domain.Host Implementation ─────────────────────────────────────────────

// LookupBlock implements domain.Host.
func (w *World) LookupBlock(c domain.Coord) (domain.BlockID, bool) {
	w.mu.RLock()
	defer w.mu.RUnlock()
	id, ok := w.blocks[c]
	return id, ok
}

// PlayerPosition implements domain.Host.
func (w *World) PlayerPosition() (domain.Coord, bool) {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.player, w.hasPlayer
}

// InventoryItem implements domain.Host.
func (w *World) InventoryItem(c domain.Coord, slot int) (domain.ItemID, bool) {
	w.mu.RLock()
	defer w.mu.RUnlock()
	s, ok := w.inv[slotKey{coord: c, slot: slot}]
	if !ok || s.item == "" || s.count <= 0 {
		return "", false
	}
	return s.item, true
}

// SetInventoryItem implements domain.Host. An empty item or non-positive
// count clears the slot.
func (w *World) SetInventoryItem(c domain.Coord, slot int, item domain.ItemID, count int) {
	w.mu.Lock()
	defer w.mu.Unlock()
	key := slotKey{coord: c, slot: slot}
	if item == "" || count <= 0 {
		delete(w.inv, key)
		return
	}
	w.inv[key] = stack{item: item, count: count}
}

// Heated implements domain.Host: a coordinate is heated when a heat
// source sits at it or directly below it.
func (w *World) Heated(c domain.Coord) bool {
	w.mu.RLock()
	defer w.mu.RUnlock()
	if w.heat[c] {
		return true
	}
	below := domain.Coord{X: c.X, Y: c.Y - 1, Z: c.Z}
	return w.heat[below]
}
