package sim

import (
	"github.com/gearline/gearline/internal/domain"
	"github.com/gearline/gearline/internal/sim/process"
)

// Snapshot is the read-only diagnostic view exposed for inspection and
// testing. It is a deep copy — callers can hold it across ticks.
type Snapshot struct {
	Tick       uint64              `json:"tick"`
	Nodes      map[string]NodeView `json:"nodes"`
	Stress     float64             `json:"current_stress"`
	Capacity   float64             `json:"stress_capacity"`
	Overloaded bool                `json:"overloaded"`
	Processes  []ProcessView       `json:"processes"`
}

// NodeView is the externally visible slice of a NetworkNode.
type NodeView struct {
	Coord     domain.Coord `json:"coord"`
	Block     string       `json:"block"`
	Kind      string       `json:"kind"`
	Speed     float64      `json:"speed"`
	Direction domain.Vec3  `json:"direction"`
	Stress    float64      `json:"current_stress"`
	Powered   bool         `json:"is_powered"`
}

// ProcessView is the externally visible slice of a process instance.
type ProcessView struct {
	Coord     domain.Coord `json:"coord"`
	Kind      string       `json:"kind"`
	Recipe    string       `json:"recipe"`
	Output    string       `json:"output"`
	Remaining int          `json:"remaining"`
}

// Snapshot returns the view of the most recently completed tick.
func (s *Simulator) Snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.snap
}

func buildSnapshot(tick uint64, net *domain.Network, instances []process.Instance) Snapshot {
	snap := Snapshot{
		Tick:       tick,
		Nodes:      make(map[string]NodeView, len(net.Nodes)),
		Stress:     net.Stress,
		Capacity:   net.Capacity,
		Overloaded: net.Overloaded,
		Processes:  make([]ProcessView, 0, len(instances)),
	}
	for key, n := range net.Nodes {
		snap.Nodes[key] = NodeView{
			Coord:     n.Coord,
			Block:     string(n.Block),
			Kind:      string(n.Kind),
			Speed:     n.Speed,
			Direction: n.Direction,
			Stress:    n.Stress,
			Powered:   n.Powered,
		}
	}
	for _, inst := range instances {
		snap.Processes = append(snap.Processes, ProcessView{
			Coord:     inst.Coord,
			Kind:      string(inst.Kind),
			Recipe:    inst.Recipe.Key(),
			Output:    string(inst.Recipe.Output),
			Remaining: inst.Remaining,
		})
	}
	return snap
}
