// Package scan builds the per-tick network snapshot from the host world.
package scan

import (
	"github.com/gearline/gearline/internal/domain"
	"github.com/gearline/gearline/internal/sim/catalog"
)

// Scan iterates every integer coordinate in the cube [center±radius]^3,
// queries the host for a block, and instantiates an unpowered NetworkNode
// for every block the catalog recognizes. Nominal stress capacity is the
// sum of template capacities over matched nodes; propagation adds source
// bonuses on top of this figure rather than replacing it.
//
// Scan has no side effects beyond producing the node set and tolerates the
// host reporting "no block" for any coordinate.
func Scan(host domain.Host, cat *catalog.Catalog, center domain.Coord, radius int) *domain.Network {
	net := domain.NewNetwork()
	if radius < 0 {
		return net
	}

	for x := center.X - radius; x <= center.X+radius; x++ {
		for y := center.Y - radius; y <= center.Y+radius; y++ {
			for z := center.Z - radius; z <= center.Z+radius; z++ {
				c := domain.Coord{X: x, Y: y, Z: z}
				block, ok := host.LookupBlock(c)
				if !ok {
					continue
				}
				tpl, ok := cat.TemplateFor(block)
				if !ok {
					continue
				}
				net.Nodes[c.Key()] = newNode(c, tpl)
				net.Capacity += tpl.StressCapacity
			}
		}
	}
	return net
}

// newNode copies template fields into a fresh, unpowered node.
func newNode(c domain.Coord, tpl domain.MachineTemplate) *domain.NetworkNode {
	return &domain.NetworkNode{
		Coord:          c,
		Block:          tpl.Block,
		Kind:           tpl.Kind,
		Speed:          0,
		Direction:      domain.Up,
		BaseSpeed:      tpl.Speed,
		StressCapacity: tpl.StressCapacity,
		Consumption:    tpl.Consumption,
		ProcessingTime: tpl.ProcessingTime,
		InputSlot:      tpl.InputSlot,
		OutputSlot:     tpl.OutputSlot,
		NeedsHeat:      tpl.NeedsHeat,
	}
}
