package domain

// ─── Collaborator Interfaces ────────────────────────────────────────────────
// The simulation core never talks to a concrete world implementation.
// Infrastructure (or the host game) implements these; the sim packages
// depend only on the interfaces.

// Host is the external world-query collaborator. All methods are
// synchronous; implementations own their own locking. Reads and writes
// within one tick happen on the tick goroutine only.
type Host interface {
	// LookupBlock returns the block id at a coordinate, ok=false for air
	// or unloaded positions.
	LookupBlock(c Coord) (BlockID, bool)

	// PlayerPosition returns the scan center, ok=false when no player
	// (or world accessor) is available. The simulation degrades to an
	// empty network for that tick.
	PlayerPosition() (Coord, bool)

	// InventoryItem reads the item in a machine slot, ok=false when empty.
	InventoryItem(c Coord, slot int) (ItemID, bool)

	// SetInventoryItem writes a slot. An empty item or non-positive count
	// clears the slot.
	SetInventoryItem(c Coord, slot int, item ItemID, count int)

	// Heated reports whether a heat source affects the coordinate.
	Heated(c Coord) bool
}

// Notifier receives user-facing simulation events: overload warnings,
// process start and completion messages.
type Notifier interface {
	Notify(message string)
}

// NotifierFunc adapts a plain function to the Notifier interface.
type NotifierFunc func(string)

// Notify implements Notifier.
func (f NotifierFunc) Notify(message string) { f(message) }
