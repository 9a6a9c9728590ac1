package kinetic

import (
	"math"

	"github.com/gearline/gearline/internal/domain"
)

// Settle runs the stress ledger over a propagated network.
//
// Every non-motor node with non-zero speed is marked powered and charged
// consumption × |speed| / unit; the charges sum into the network total.
// Motors and zero-speed nodes are never powered and contribute no load.
//
// If the total would exceed capacity, the whole network shuts down: every
// node's speed, stress, and powered flag are reset and the network is
// marked overloaded. This is a hard cutoff — no partial power. Settle
// reports whether the shutdown fired so the caller can notify.
func Settle(net *domain.Network, cfg Config) (overloaded bool) {
	unit := cfg.speedUnit()

	var total float64
	for _, n := range net.Nodes {
		if n.Kind == domain.KindMotor || n.Speed == 0 {
			continue
		}
		n.Stress = n.Consumption * math.Abs(n.Speed) / unit
		n.Powered = true
		total += n.Stress
	}
	net.Stress = total

	if total > net.Capacity {
		for _, n := range net.Nodes {
			n.Speed = 0
			n.Stress = 0
			n.Powered = false
		}
		net.Stress = 0
		net.Overloaded = true
		return true
	}
	return false
}
