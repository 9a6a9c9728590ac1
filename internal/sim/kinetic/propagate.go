// Package kinetic implements power propagation and stress accounting over
// a scanned network: breadth-first traversal from motor and windmill
// sources, directional transformation at transmission elements, and the
// network-wide stress ledger with hard overload shutdown.
package kinetic

import (
	"math"

	"github.com/gearline/gearline/internal/domain"
)

// Config fixes the propagation parameters for a simulation run.
type Config struct {
	// MotorSpeed is the nominal motor speed; windmill speed scales from it.
	MotorSpeed float64
	// SpeedUnit is the base unit (default 64) dividing speed in the stress
	// and windmill-height formulas.
	SpeedUnit float64
	// WindmillBlock is the marker block reinterpreted as a synthetic motor.
	WindmillBlock domain.BlockID
}

// WindmillCapacityBonus is added to network capacity per windmill marker,
// on top of the nominal figure accumulated by the scanner.
const WindmillCapacityBonus = 1024

// DefaultSpeedUnit is the base speed/stress unit.
const DefaultSpeedUnit = 64

func (c Config) speedUnit() float64 {
	if c.SpeedUnit <= 0 {
		return DefaultSpeedUnit
	}
	return c.SpeedUnit
}

// Propagate seeds power from every source node and walks the 6-connected
// network, assigning speed and rotation direction per transmission rules.
//
// Sources are processed in ascending coordinate-key order, and a node is
// only overwritten when the new candidate's |speed| strictly exceeds the
// value it already holds. The effective speed of every reached node is
// therefore the maximum |speed| over all sources that reach it, with the
// first such source winning ties — a deterministic tie-break.
func Propagate(net *domain.Network, cfg Config) {
	seedWindmills(net, cfg)
	seedMotors(net)

	for _, key := range net.SortedKeys() {
		src := net.Nodes[key]
		if src.Kind != domain.KindMotor || src.Speed == 0 {
			continue
		}
		flood(net, src)
	}
}

// seedWindmills reinterprets windmill marker nodes as synthetic motors:
// speed proportional to height, direction up, plus a fixed capacity bonus.
func seedWindmills(net *domain.Network, cfg Config) {
	for _, n := range net.Nodes {
		if n.Block != cfg.WindmillBlock {
			continue
		}
		n.Kind = domain.KindMotor
		n.Speed = cfg.MotorSpeed * float64(n.Coord.Y) / cfg.speedUnit()
		n.Direction = domain.Up
		net.Capacity += WindmillCapacityBonus
	}
}

// seedMotors gives catalog motors their fixed template speed.
func seedMotors(net *domain.Network) {
	for _, n := range net.Nodes {
		if n.Kind == domain.KindMotor && n.Speed == 0 {
			n.Speed = n.BaseSpeed
			n.Direction = domain.Up
		}
	}
}

// wave is the per-path propagation state carried by the BFS queue.
// Direction depends on the path taken (gearboxes flip it), so it cannot
// be read back from the node being traversed.
type wave struct {
	coord     domain.Coord
	speed     float64
	direction domain.Vec3
}

// flood runs one source's breadth-first traversal. The visited set is
// scoped to this traversal: a node visited by one source's BFS can still
// be revisited by another source's.
func flood(net *domain.Network, src *domain.NetworkNode) {
	visited := map[string]bool{src.Coord.Key(): true}
	queue := []wave{{coord: src.Coord, speed: src.Speed, direction: src.Direction}}

	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]

		// A node with zero speed is never propagated from.
		if cur.speed == 0 {
			continue
		}

		for _, nc := range cur.coord.Neighbors() {
			key := nc.Key()
			if visited[key] {
				continue
			}
			node, ok := net.Nodes[key]
			if !ok {
				continue
			}
			visited[key] = true

			next := transmit(cur, node.Kind)
			if math.Abs(next.speed) > math.Abs(node.Speed) {
				node.Speed = next.speed
				node.Direction = next.direction
			}
			queue = append(queue, wave{coord: nc, speed: next.speed, direction: next.direction})
		}
	}
}

// transmit applies the transmission-element rule for the receiving kind.
// Shafts relay speed and direction unchanged; gearboxes relay speed but
// negate all three direction components. Every other kind inherits
// unchanged by the same default rule — no gear-ratio multiplication is
// implemented (a named simplification).
func transmit(in wave, kind domain.MachineKind) wave {
	out := wave{speed: in.speed, direction: in.direction}
	if kind == domain.KindGearbox {
		out.direction = in.direction.Neg()
	}
	return out
}
