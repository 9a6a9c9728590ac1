package daemon

import (
	"github.com/gearline/gearline/internal/domain"
	"github.com/gearline/gearline/internal/infra/worldmem"
	"github.com/gearline/gearline/internal/sim/catalog"
)

// BuildDemoWorld seeds a small in-memory kinetic layout so the daemon and
// the offline tick command have something observable out of the box:
// a motor driving a shaft run into a gearbox and a millstone, a heated
// mixer off the line, and a windmill column high above.
func BuildDemoWorld() *worldmem.World {
	w := worldmem.New()
	w.SetPlayer(domain.Coord{X: 0, Y: 4, Z: 0})

	// Motor and shaft line along +X at y=4.
	w.SetBlock(domain.Coord{X: 2, Y: 4, Z: 0}, "gearline:motor")
	w.SetBlock(domain.Coord{X: 3, Y: 4, Z: 0}, "gearline:shaft")
	w.SetBlock(domain.Coord{X: 4, Y: 4, Z: 0}, "gearline:shaft")
	w.SetBlock(domain.Coord{X: 5, Y: 4, Z: 0}, "gearline:gearbox")
	w.SetBlock(domain.Coord{X: 6, Y: 4, Z: 0}, "gearline:millstone")
	w.SetInventoryItem(domain.Coord{X: 6, Y: 4, Z: 0}, 0, "wheat", 1)

	// Press branch off the shaft line.
	w.SetBlock(domain.Coord{X: 4, Y: 4, Z: 1}, "gearline:press")
	w.SetInventoryItem(domain.Coord{X: 4, Y: 4, Z: 1}, 0, "iron_ingot", 1)

	// Heated mixer fed from the same line.
	w.SetBlock(domain.Coord{X: 3, Y: 4, Z: 1}, "gearline:mixer")
	w.SetInventoryItem(domain.Coord{X: 3, Y: 4, Z: 1}, 0, "raw_iron", 1)
	w.SetHeatSource(domain.Coord{X: 3, Y: 3, Z: 1}, true)

	// Windmill column: marker high up for height-proportional speed,
	// shafts carrying the power back down toward the line.
	w.SetBlock(domain.Coord{X: 0, Y: 24, Z: 0}, catalog.WindmillBlock)
	for y := 5; y < 24; y++ {
		w.SetBlock(domain.Coord{X: 0, Y: y, Z: 0}, "gearline:shaft")
	}

	return w
}
