package scan

import (
	"testing"

	"github.com/gearline/gearline/internal/domain"
	"github.com/gearline/gearline/internal/infra/worldmem"
	"github.com/gearline/gearline/internal/sim/catalog"
)

func testWorld(t *testing.T) *worldmem.World {
	t.Helper()
	w := worldmem.New()
	w.SetBlock(domain.Coord{X: 0, Y: 0, Z: 0}, "gearline:motor")
	w.SetBlock(domain.Coord{X: 1, Y: 0, Z: 0}, "gearline:shaft")
	w.SetBlock(domain.Coord{X: 2, Y: 0, Z: 0}, "gearline:millstone")
	w.SetBlock(domain.Coord{X: 0, Y: 1, Z: 0}, "somegame:dirt") // not in catalog
	return w
}

func TestScan_MatchesCatalogBlocksOnly(t *testing.T) {
	w := testWorld(t)
	net := Scan(w, catalog.Default(), domain.Coord{}, 4)

	if len(net.Nodes) != 3 {
		t.Fatalf("node count = %d, want 3", len(net.Nodes))
	}
	if net.Node(domain.Coord{X: 0, Y: 1, Z: 0}) != nil {
		t.Error("unrecognized block should not produce a node")
	}
}

func TestScan_NodesStartUnpowered(t *testing.T) {
	w := testWorld(t)
	net := Scan(w, catalog.Default(), domain.Coord{}, 4)

	for key, n := range net.Nodes {
		if n.Speed != 0 || n.Powered || n.Stress != 0 {
			t.Errorf("node %s not unpowered: speed=%v powered=%v stress=%v", key, n.Speed, n.Powered, n.Stress)
		}
		if n.Direction != domain.Up {
			t.Errorf("node %s direction = %v, want %v", key, n.Direction, domain.Up)
		}
	}
}

func TestScan_AccumulatesNominalCapacity(t *testing.T) {
	w := testWorld(t)
	cat := catalog.Default()
	net := Scan(w, cat, domain.Coord{}, 4)

	var want float64
	for _, block := range []domain.BlockID{"gearline:motor", "gearline:shaft", "gearline:millstone"} {
		tpl, _ := cat.TemplateFor(block)
		want += tpl.StressCapacity
	}
	if net.Capacity != want {
		t.Errorf("capacity = %v, want %v", net.Capacity, want)
	}
}

func TestScan_RadiusBoundsCube(t *testing.T) {
	w := worldmem.New()
	w.SetBlock(domain.Coord{X: 3, Y: 0, Z: 0}, "gearline:shaft") // outside radius 2
	w.SetBlock(domain.Coord{X: 2, Y: 0, Z: 0}, "gearline:shaft") // on the boundary

	net := Scan(w, catalog.Default(), domain.Coord{}, 2)
	if len(net.Nodes) != 1 {
		t.Fatalf("node count = %d, want 1", len(net.Nodes))
	}
	if net.Node(domain.Coord{X: 2, Y: 0, Z: 0}) == nil {
		t.Error("boundary coordinate should be scanned")
	}
}

func TestScan_Idempotent(t *testing.T) {
	// Given an unchanged world, two consecutive scans produce node sets
	// identical in coordinates and template fields.
	w := testWorld(t)
	cat := catalog.Default()

	a := Scan(w, cat, domain.Coord{}, 4)
	b := Scan(w, cat, domain.Coord{}, 4)

	if len(a.Nodes) != len(b.Nodes) {
		t.Fatalf("node counts differ: %d vs %d", len(a.Nodes), len(b.Nodes))
	}
	for key, na := range a.Nodes {
		nb, ok := b.Nodes[key]
		if !ok {
			t.Fatalf("node %s missing from second scan", key)
		}
		if na.Block != nb.Block || na.Kind != nb.Kind ||
			na.Consumption != nb.Consumption || na.StressCapacity != nb.StressCapacity ||
			na.InputSlot != nb.InputSlot || na.OutputSlot != nb.OutputSlot {
			t.Errorf("node %s template fields differ between scans", key)
		}
	}
	if a.Capacity != b.Capacity {
		t.Errorf("capacity differs: %v vs %v", a.Capacity, b.Capacity)
	}
}

func TestScan_EmptyWorld(t *testing.T) {
	net := Scan(worldmem.New(), catalog.Default(), domain.Coord{}, 8)
	if len(net.Nodes) != 0 || net.Capacity != 0 {
		t.Errorf("empty world scan: nodes=%d capacity=%v, want empty", len(net.Nodes), net.Capacity)
	}
}
