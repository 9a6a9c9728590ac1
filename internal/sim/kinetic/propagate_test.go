package kinetic

import (
	"math"
	"testing"

	"github.com/gearline/gearline/internal/domain"
	"github.com/gearline/gearline/internal/infra/worldmem"
	"github.com/gearline/gearline/internal/sim/catalog"
	"github.com/gearline/gearline/internal/sim/scan"
)

func testConfig() Config {
	return Config{
		MotorSpeed:    catalog.DefaultMotorSpeed,
		SpeedUnit:     DefaultSpeedUnit,
		WindmillBlock: catalog.WindmillBlock,
	}
}

// buildNetwork scans a freshly built world so propagation tests run
// against real scanner output.
func buildNetwork(t *testing.T, blocks map[domain.Coord]domain.BlockID) *domain.Network {
	t.Helper()
	w := worldmem.New()
	for c, id := range blocks {
		w.SetBlock(c, id)
	}
	return scan.Scan(w, catalog.Default(), domain.Coord{}, 48)
}

func TestPropagate_SimpleShaftLine(t *testing.T) {
	net := buildNetwork(t, map[domain.Coord]domain.BlockID{
		{X: 0, Y: 0, Z: 0}: "gearline:motor",
		{X: 1, Y: 0, Z: 0}: "gearline:shaft",
	})
	Propagate(net, testConfig())

	shaft := net.Node(domain.Coord{X: 1, Y: 0, Z: 0})
	if shaft.Speed != 128 {
		t.Errorf("shaft speed = %v, want 128", shaft.Speed)
	}
	if shaft.Direction != domain.Up {
		t.Errorf("shaft direction = %v, want %v", shaft.Direction, domain.Up)
	}
}

func TestPropagate_GearboxReversesDirection(t *testing.T) {
	net := buildNetwork(t, map[domain.Coord]domain.BlockID{
		{X: 0, Y: 0, Z: 0}: "gearline:motor",
		{X: 1, Y: 0, Z: 0}: "gearline:gearbox",
	})
	Propagate(net, testConfig())

	gb := net.Node(domain.Coord{X: 1, Y: 0, Z: 0})
	if gb.Speed != 128 {
		t.Errorf("gearbox speed = %v, want 128 (speed unchanged)", gb.Speed)
	}
	want := domain.Vec3{X: 0, Y: -1, Z: 0}
	if gb.Direction != want {
		t.Errorf("gearbox direction = %v, want %v", gb.Direction, want)
	}
}

func TestPropagate_GearboxInvolution(t *testing.T) {
	// Two gearboxes in series restore the original direction.
	net := buildNetwork(t, map[domain.Coord]domain.BlockID{
		{X: 0, Y: 0, Z: 0}: "gearline:motor",
		{X: 1, Y: 0, Z: 0}: "gearline:gearbox",
		{X: 2, Y: 0, Z: 0}: "gearline:gearbox",
	})
	Propagate(net, testConfig())

	second := net.Node(domain.Coord{X: 2, Y: 0, Z: 0})
	if second.Direction != domain.Up {
		t.Errorf("second gearbox direction = %v, want %v", second.Direction, domain.Up)
	}
	if second.Speed != 128 {
		t.Errorf("second gearbox speed = %v, want 128", second.Speed)
	}
}

func TestPropagate_ChainThroughMixedKinds(t *testing.T) {
	// Default rule: non-shaft, non-gearbox kinds inherit unchanged.
	net := buildNetwork(t, map[domain.Coord]domain.BlockID{
		{X: 0, Y: 0, Z: 0}: "gearline:motor",
		{X: 1, Y: 0, Z: 0}: "gearline:belt",
		{X: 2, Y: 0, Z: 0}: "gearline:millstone",
	})
	Propagate(net, testConfig())

	mill := net.Node(domain.Coord{X: 2, Y: 0, Z: 0})
	if mill.Speed != 128 || mill.Direction != domain.Up {
		t.Errorf("millstone = (%v, %v), want (128, %v)", mill.Speed, mill.Direction, domain.Up)
	}
}

func TestPropagate_DisconnectedNodeStaysStill(t *testing.T) {
	net := buildNetwork(t, map[domain.Coord]domain.BlockID{
		{X: 0, Y: 0, Z: 0}: "gearline:motor",
		{X: 5, Y: 0, Z: 0}: "gearline:shaft", // gap at 1..4
	})
	Propagate(net, testConfig())

	if got := net.Node(domain.Coord{X: 5, Y: 0, Z: 0}).Speed; got != 0 {
		t.Errorf("disconnected shaft speed = %v, want 0", got)
	}
}

func TestPropagate_WindmillHeightProportionalSpeed(t *testing.T) {
	net := buildNetwork(t, map[domain.Coord]domain.BlockID{
		{X: 0, Y: 32, Z: 0}: catalog.WindmillBlock,
		{X: 1, Y: 32, Z: 0}: "gearline:shaft",
	})
	nominal := net.Capacity
	Propagate(net, testConfig())

	wm := net.Node(domain.Coord{X: 0, Y: 32, Z: 0})
	if wm.Kind != domain.KindMotor {
		t.Errorf("windmill kind after propagation = %s, want MOTOR", wm.Kind)
	}
	if want := 128.0 * 32 / 64; wm.Speed != want {
		t.Errorf("windmill speed = %v, want %v", wm.Speed, want)
	}

	shaft := net.Node(domain.Coord{X: 1, Y: 32, Z: 0})
	if shaft.Speed != wm.Speed {
		t.Errorf("shaft speed = %v, want %v", shaft.Speed, wm.Speed)
	}

	// Bonus capacity is additive with the scanner's nominal figure.
	if want := nominal + WindmillCapacityBonus; net.Capacity != want {
		t.Errorf("capacity = %v, want %v", net.Capacity, want)
	}
}

func TestPropagate_MergeTakesMaxAbsoluteSpeed(t *testing.T) {
	// A low windmill (speed 32) and a full motor (speed 128) both reach
	// the same shaft; it must hold the larger magnitude.
	net := buildNetwork(t, map[domain.Coord]domain.BlockID{
		{X: 0, Y: 16, Z: 0}: catalog.WindmillBlock, // 128*16/64 = 32
		{X: 0, Y: 15, Z: 0}: "gearline:shaft",
		{X: 0, Y: 14, Z: 0}: "gearline:shaft",
		{X: 1, Y: 14, Z: 0}: "gearline:motor",
	})
	Propagate(net, testConfig())

	top := net.Node(domain.Coord{X: 0, Y: 15, Z: 0})
	if top.Speed != 128 {
		t.Errorf("shared shaft speed = %v, want 128 (max of 32 and 128)", top.Speed)
	}
}

func TestPropagate_DirectionTieBreakFirstSourceWins(t *testing.T) {
	// Two motors of equal speed reach the middle shaft, one of them
	// through a gearbox (direction down). Sources run in ascending
	// coordinate-key order and ties never overwrite, so the motor at
	// (0,0,0) sets the direction.
	net := buildNetwork(t, map[domain.Coord]domain.BlockID{
		{X: 0, Y: 0, Z: 0}: "gearline:motor",
		{X: 1, Y: 0, Z: 0}: "gearline:shaft",
		{X: 2, Y: 0, Z: 0}: "gearline:shaft",
		{X: 3, Y: 0, Z: 0}: "gearline:gearbox",
		{X: 4, Y: 0, Z: 0}: "gearline:motor",
	})
	Propagate(net, testConfig())

	mid := net.Node(domain.Coord{X: 2, Y: 0, Z: 0})
	if mid.Speed != 128 {
		t.Fatalf("mid shaft speed = %v, want 128", mid.Speed)
	}
	if mid.Direction != domain.Up {
		t.Errorf("mid shaft direction = %v, want %v (first source wins ties)", mid.Direction, domain.Up)
	}
}

func TestPropagate_ZeroSpeedSourceDoesNotPropagate(t *testing.T) {
	// A windmill at y=0 computes speed 0 and must not power anything.
	net := buildNetwork(t, map[domain.Coord]domain.BlockID{
		{X: 0, Y: 0, Z: 0}: catalog.WindmillBlock,
		{X: 1, Y: 0, Z: 0}: "gearline:shaft",
	})
	Propagate(net, testConfig())

	if got := net.Node(domain.Coord{X: 1, Y: 0, Z: 0}).Speed; got != 0 {
		t.Errorf("shaft speed = %v, want 0", got)
	}
}

func TestPropagate_MonotonicityOverReachableNodes(t *testing.T) {
	// Every reached node's |speed| equals the max |speed| over sources
	// that can reach it through non-zero-speed chains. With a single
	// source that is simply the source speed everywhere on the line.
	net := buildNetwork(t, map[domain.Coord]domain.BlockID{
		{X: 0, Y: 0, Z: 0}: "gearline:motor",
		{X: 1, Y: 0, Z: 0}: "gearline:shaft",
		{X: 2, Y: 0, Z: 0}: "gearline:gearbox",
		{X: 3, Y: 0, Z: 0}: "gearline:shaft",
		{X: 4, Y: 0, Z: 0}: "gearline:millstone",
	})
	Propagate(net, testConfig())

	for x := 1; x <= 4; x++ {
		n := net.Node(domain.Coord{X: x, Y: 0, Z: 0})
		if math.Abs(n.Speed) != 128 {
			t.Errorf("node at x=%d |speed| = %v, want 128", x, math.Abs(n.Speed))
		}
	}
}
