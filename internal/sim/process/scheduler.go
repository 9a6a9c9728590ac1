// Package process implements the machine process scheduler: a per-node
// recipe state machine (IDLE → RUNNING → COMPLETE | CANCELLED → IDLE)
// driven by the per-tick network snapshot.
//
// Instances are keyed by node coordinate and survive across ticks — the
// only long-lived simulation state besides the external inventory. They
// are re-validated against power status every tick, which makes them
// safely resumable after a restart.
package process

import (
	"fmt"
	"math"
	"sort"

	"github.com/gearline/gearline/internal/domain"
	"github.com/gearline/gearline/internal/sim/catalog"
)

// Instance is one in-flight recipe at a node coordinate.
type Instance struct {
	Coord     domain.Coord
	Kind      domain.ProcessKind
	Recipe    domain.RecipeEntry
	Input     domain.ItemID // the captured input-slot item
	Remaining int           // ticks until completion
}

// Scheduler owns all process instances. Not safe for concurrent use;
// the tick goroutine is the only caller.
type Scheduler struct {
	cat       *catalog.Catalog
	host      domain.Host
	notifier  domain.Notifier
	speedUnit float64

	instances map[string]*Instance // keyed by Coord.Key()
	stats     Stats
}

// Stats counts scheduler lifecycle transitions since startup.
type Stats struct {
	Started   uint64 `json:"started"`
	Completed uint64 `json:"completed"`
	Cancelled uint64 `json:"cancelled"`
}

// New creates a scheduler. A nil notifier disables event messages.
func New(cat *catalog.Catalog, host domain.Host, notifier domain.Notifier, speedUnit float64) *Scheduler {
	if speedUnit <= 0 {
		speedUnit = 64
	}
	return &Scheduler{
		cat:       cat,
		host:      host,
		notifier:  notifier,
		speedUnit: speedUnit,
		instances: make(map[string]*Instance),
	}
}

// Tick advances every instance by one step against the given network
// snapshot: cancels instances whose node lost power, starts new instances
// on powered idle machines, then counts down and completes running ones.
func (s *Scheduler) Tick(net *domain.Network) {
	s.cancelUnpowered(net)
	s.startIdle(net)
	s.progress(net)
}

// Restore installs persisted instances, replacing current state. Called
// once at startup; the next Tick re-validates every instance against
// power status.
func (s *Scheduler) Restore(list []Instance) {
	s.instances = make(map[string]*Instance, len(list))
	for i := range list {
		inst := list[i]
		s.instances[inst.Coord.Key()] = &inst
	}
}

// Instances returns a sorted copy of all in-flight instances, for
// persistence and diagnostics.
func (s *Scheduler) Instances() []Instance {
	out := make([]Instance, 0, len(s.instances))
	for _, inst := range s.instances {
		out = append(out, *inst)
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].Coord.Key() < out[j].Coord.Key()
	})
	return out
}

// Stats returns lifecycle counters since startup.
func (s *Scheduler) Stats() Stats { return s.stats }

// ─── Phases ─────────────────────────────────────────────────────────────────

// cancelUnpowered removes every instance whose node is gone or unpowered.
// Forced cancel: no partial credit, consumed input is not restored.
func (s *Scheduler) cancelUnpowered(net *domain.Network) {
	for key, inst := range s.instances {
		node, ok := net.Nodes[key]
		if ok && node.Powered && node.Speed != 0 {
			continue
		}
		delete(s.instances, key)
		s.stats.Cancelled++
		s.notify("process cancelled at %s: %s lost power", key, inst.Recipe.Key())
	}
}

// startIdle transitions idle powered processing machines to RUNNING when
// their input slot holds a recognized recipe key and, for heated recipes,
// a heat source is present. The input item is consumed immediately.
func (s *Scheduler) startIdle(net *domain.Network) {
	for _, key := range net.SortedKeys() {
		node := net.Nodes[key]
		if !node.Powered || node.Speed == 0 || !node.HasInput() {
			continue
		}
		kind, ok := node.Kind.ProcessKind()
		if !ok {
			continue
		}
		if _, running := s.instances[key]; running {
			continue
		}

		item, ok := s.host.InventoryItem(node.Coord, node.InputSlot)
		if !ok || item == "" {
			continue
		}
		recipe, ok := s.cat.RecipeFor(kind, string(item))
		if !ok {
			continue // absence, not failure: stays IDLE
		}
		if recipe.NeedsHeat && !s.host.Heated(node.Coord) {
			continue // deferred until heat is introduced
		}

		// Consume input up front; cancellation does not refund it.
		s.host.SetInventoryItem(node.Coord, node.InputSlot, "", 0)

		s.instances[key] = &Instance{
			Coord:     node.Coord,
			Kind:      kind,
			Recipe:    recipe,
			Input:     item,
			Remaining: s.duration(recipe, node.Speed),
		}
		s.stats.Started++
		s.notify("process started at %s: %s -> %s", key, recipe.Key(), recipe.Output)
	}
}

// progress counts down running instances and completes those that reach
// zero: the output is written to the node's output slot, then offered to
// an adjacent machine with a free input slot.
func (s *Scheduler) progress(net *domain.Network) {
	for _, key := range sortedInstanceKeys(s.instances) {
		inst := s.instances[key]
		inst.Remaining--
		if inst.Remaining > 0 {
			continue
		}

		node := net.Nodes[key]
		s.host.SetInventoryItem(node.Coord, node.OutputSlot, inst.Recipe.Output, inst.Recipe.Count)
		s.handOff(net, node, inst.Recipe)

		delete(s.instances, key)
		s.stats.Completed++
		s.notify("process complete at %s: %s x%d", key, inst.Recipe.Output, inst.Recipe.Count)
	}
}

// handOff forwards the finished product to the first adjacent node whose
// template defines an input slot that is currently empty. Direct transfer
// only — no queueing and no multi-hop flow.
func (s *Scheduler) handOff(net *domain.Network, node *domain.NetworkNode, recipe domain.RecipeEntry) {
	for _, nc := range node.Coord.Neighbors() {
		target, ok := net.Nodes[nc.Key()]
		if !ok || !target.HasInput() {
			continue
		}
		if _, occupied := s.host.InventoryItem(target.Coord, target.InputSlot); occupied {
			continue
		}
		s.host.SetInventoryItem(target.Coord, target.InputSlot, recipe.Output, recipe.Count)
		s.host.SetInventoryItem(node.Coord, node.OutputSlot, "", 0)
		return
	}
}

// ─── Helpers ────────────────────────────────────────────────────────────────

// duration scales the recipe's base time inversely with rotational speed.
// The ceiling enforces a floor of one tick.
func (s *Scheduler) duration(recipe domain.RecipeEntry, speed float64) int {
	factor := math.Abs(speed) / s.speedUnit
	ticks := int(math.Ceil(recipe.Time / factor))
	if ticks < 1 {
		ticks = 1
	}
	return ticks
}

func (s *Scheduler) notify(format string, args ...any) {
	if s.notifier != nil {
		s.notifier.Notify(fmt.Sprintf(format, args...))
	}
}

func sortedInstanceKeys(m map[string]*Instance) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
