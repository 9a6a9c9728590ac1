// Package domain holds the core types of the Gearline kinetic simulation.
// Everything here is pure data — no I/O, no infrastructure dependency.
package domain

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
)

// BlockID identifies a world block type (e.g. "gearline:shaft").
type BlockID string

// ItemID identifies an inventory item (e.g. "wheat"). Empty means no item.
type ItemID string

// ─── Coordinates ────────────────────────────────────────────────────────────

// Coord is an integer block coordinate in the world.
type Coord struct {
	X int `json:"x"`
	Y int `json:"y"`
	Z int `json:"z"`
}

// Key returns the canonical "x,y,z" string used as node identity.
func (c Coord) Key() string {
	return strconv.Itoa(c.X) + "," + strconv.Itoa(c.Y) + "," + strconv.Itoa(c.Z)
}

// ParseKey parses a "x,y,z" key back into a Coord.
func ParseKey(key string) (Coord, error) {
	parts := strings.Split(key, ",")
	if len(parts) != 3 {
		return Coord{}, fmt.Errorf("%w: %q", ErrBadCoordKey, key)
	}
	var c Coord
	var err error
	if c.X, err = strconv.Atoi(parts[0]); err != nil {
		return Coord{}, fmt.Errorf("%w: %q", ErrBadCoordKey, key)
	}
	if c.Y, err = strconv.Atoi(parts[1]); err != nil {
		return Coord{}, fmt.Errorf("%w: %q", ErrBadCoordKey, key)
	}
	if c.Z, err = strconv.Atoi(parts[2]); err != nil {
		return Coord{}, fmt.Errorf("%w: %q", ErrBadCoordKey, key)
	}
	return c, nil
}

// Add offsets the coordinate by a vector.
func (c Coord) Add(v Vec3) Coord {
	return Coord{X: c.X + v.X, Y: c.Y + v.Y, Z: c.Z + v.Z}
}

// Neighbors returns the 6 axis-aligned neighbor coordinates.
func (c Coord) Neighbors() [6]Coord {
	return [6]Coord{
		{c.X + 1, c.Y, c.Z},
		{c.X - 1, c.Y, c.Z},
		{c.X, c.Y + 1, c.Z},
		{c.X, c.Y - 1, c.Z},
		{c.X, c.Y, c.Z + 1},
		{c.X, c.Y, c.Z - 1},
	}
}

// Vec3 is an integer unit vector encoding rotation direction.
type Vec3 struct {
	X int `json:"x"`
	Y int `json:"y"`
	Z int `json:"z"`
}

// Up is the default rotation direction for freshly scanned nodes.
var Up = Vec3{X: 0, Y: 1, Z: 0}

// Neg reverses all three components (gearbox rule).
func (v Vec3) Neg() Vec3 {
	return Vec3{X: -v.X, Y: -v.Y, Z: -v.Z}
}

// ─── Machine Kinds ──────────────────────────────────────────────────────────

// MachineKind classifies a kinetic block.
type MachineKind string

const (
	KindMotor     MachineKind = "MOTOR"
	KindShaft     MachineKind = "SHAFT"
	KindGearbox   MachineKind = "GEARBOX"
	KindBelt      MachineKind = "BELT"
	KindPress     MachineKind = "PRESS"
	KindMillstone MachineKind = "MILLSTONE"
	KindMixer     MachineKind = "MIXER"
)

// ProcessKind names a recipe table.
type ProcessKind string

const (
	ProcessPressing ProcessKind = "pressing"
	ProcessMilling  ProcessKind = "milling"
	ProcessMixing   ProcessKind = "mixing"
)

// ProcessKind maps a machine kind to its recipe table.
// Transmission elements and motors have no processing role.
func (k MachineKind) ProcessKind() (ProcessKind, bool) {
	switch k {
	case KindPress:
		return ProcessPressing, true
	case KindMillstone:
		return ProcessMilling, true
	case KindMixer:
		return ProcessMixing, true
	default:
		return "", false
	}
}

// ─── Static Catalog Entries ─────────────────────────────────────────────────

// MachineTemplate is the static description of a kinetic block type.
// Immutable after catalog load.
type MachineTemplate struct {
	Block          BlockID     `json:"block"`
	Kind           MachineKind `json:"kind"`
	Speed          float64     `json:"speed"` // nominal; meaningful for motors only
	StressCapacity float64     `json:"stress_capacity"`
	Consumption    float64     `json:"consumption"`
	ProcessingTime float64     `json:"processing_time,omitempty"` // base ticks at unit speed
	InputSlot      int         `json:"input_slot"`                // -1 if none
	OutputSlot     int         `json:"output_slot"`               // -1 if none
	NeedsHeat      bool        `json:"needs_heat,omitempty"`
}

// HasInput reports whether the template defines an input slot.
func (t MachineTemplate) HasInput() bool { return t.InputSlot >= 0 }

// RecipeEntry is one immutable recipe in a processing table.
type RecipeEntry struct {
	Inputs     []ItemID // one or more required inputs
	Output     ItemID
	Count      int
	StressCost float64 // informational; not charged against the network
	Time       float64 // base processing time in ticks at unit speed
	NeedsHeat  bool
}

// Key returns the comma-joined composite lookup key for the recipe.
func (r RecipeEntry) Key() string {
	parts := make([]string, len(r.Inputs))
	for i, in := range r.Inputs {
		parts[i] = string(in)
	}
	return strings.Join(parts, ",")
}

// ─── Network ────────────────────────────────────────────────────────────────

// NetworkNode is one matched block instance in the per-tick network snapshot.
// Nodes are created fresh every tick by the scanner, mutated in place by
// propagation and the stress ledger, and discarded at the end of the tick.
type NetworkNode struct {
	Coord     Coord
	Block     BlockID
	Kind      MachineKind
	Speed     float64 // signed; sign encodes rotational sense
	Direction Vec3
	Stress    float64 // derived by the ledger
	Powered   bool    // derived; never true for motors

	// Template fields copied in at scan time.
	BaseSpeed      float64
	StressCapacity float64
	Consumption    float64
	ProcessingTime float64
	InputSlot      int
	OutputSlot     int
	NeedsHeat      bool
}

// HasInput reports whether the node's template defines an input slot.
func (n *NetworkNode) HasInput() bool { return n.InputSlot >= 0 }

// Network is the per-tick node set with stress accounting.
type Network struct {
	Nodes      map[string]*NetworkNode // keyed by Coord.Key()
	Stress     float64
	Capacity   float64
	Overloaded bool
}

// NewNetwork returns an empty network.
func NewNetwork() *Network {
	return &Network{Nodes: make(map[string]*NetworkNode)}
}

// Node returns the node at a coordinate, or nil.
func (n *Network) Node(c Coord) *NetworkNode {
	return n.Nodes[c.Key()]
}

// SortedKeys returns node keys in ascending order. Used wherever
// traversal or reporting order must be deterministic.
func (n *Network) SortedKeys() []string {
	keys := make([]string, 0, len(n.Nodes))
	for k := range n.Nodes {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
