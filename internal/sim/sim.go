// Package sim orchestrates the kinetic simulation: one discrete tick
// rebuilds the network snapshot from scratch (scan → propagate → settle)
// and then drives the process scheduler against it. No node identity
// persists across ticks; only scheduler instances and the external
// inventory are long-lived.
package sim

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/gearline/gearline/internal/domain"
	"github.com/gearline/gearline/internal/infra/metrics"
	"github.com/gearline/gearline/internal/sim/catalog"
	"github.com/gearline/gearline/internal/sim/kinetic"
	"github.com/gearline/gearline/internal/sim/process"
	"github.com/gearline/gearline/internal/sim/scan"
)

// Config fixes the simulation parameters at initialization. There is no
// runtime reconfiguration.
type Config struct {
	TickPeriod time.Duration // interval between ticks
	ScanRadius int           // cube half-extent around the player
	MotorSpeed float64       // nominal motor speed
	SpeedUnit  float64       // base stress/speed unit (default 64)
}

// DefaultConfig returns the standard simulation parameters.
func DefaultConfig() Config {
	return Config{
		TickPeriod: 250 * time.Millisecond,
		ScanRadius: 32,
		MotorSpeed: catalog.DefaultMotorSpeed,
		SpeedUnit:  kinetic.DefaultSpeedUnit,
	}
}

// ProcessStore persists scheduler instances across restarts and records
// simulation events. Implemented by infra/sqlite.
type ProcessStore interface {
	SaveProcesses(list []process.Instance) error
	LoadProcesses(cat *catalog.Catalog) ([]process.Instance, error)
	AppendEvent(runID string, tick uint64, kind, message string) error
}

// Options are the optional simulator collaborators.
type Options struct {
	Notifier domain.Notifier // user-facing event sink; nil silences events
	Store    ProcessStore    // nil disables persistence and the event log
	Logger   *zap.Logger     // nil falls back to zap.NewNop
}

// Simulator owns the tick loop and all tick-scoped state.
type Simulator struct {
	cfg      Config
	cat      *catalog.Catalog
	host     domain.Host
	notifier domain.Notifier
	store    ProcessStore
	log      *zap.Logger
	sched    *process.Scheduler
	runID    string

	mu   sync.RWMutex // guards snap for concurrent readers (API, CLI)
	snap Snapshot

	tick      uint64        // mutated by the tick goroutine only
	lastStats process.Stats // last observed scheduler counters
}

// New builds a simulator around a validated catalog and a host world.
func New(cfg Config, cat *catalog.Catalog, host domain.Host, opts Options) *Simulator {
	if cfg.TickPeriod <= 0 {
		cfg.TickPeriod = DefaultConfig().TickPeriod
	}
	if cfg.SpeedUnit <= 0 {
		cfg.SpeedUnit = kinetic.DefaultSpeedUnit
	}
	if cfg.MotorSpeed <= 0 {
		cfg.MotorSpeed = catalog.DefaultMotorSpeed
	}
	log := opts.Logger
	if log == nil {
		log = zap.NewNop()
	}

	s := &Simulator{
		cfg:      cfg,
		cat:      cat,
		host:     host,
		notifier: opts.Notifier,
		store:    opts.Store,
		log:      log,
		runID:    uuid.NewString(),
		snap:     Snapshot{Nodes: map[string]NodeView{}},
	}
	// The scheduler notifies through the simulator so every event also
	// reaches the log and the event store.
	s.sched = process.New(cat, host, domain.NotifierFunc(s.notify), cfg.SpeedUnit)
	return s
}

// RestoreProcesses loads persisted instances into the scheduler. The next
// tick re-validates each one against power status, so stale instances are
// cancelled rather than resumed blindly.
func (s *Simulator) RestoreProcesses() error {
	if s.store == nil {
		return nil
	}
	list, err := s.store.LoadProcesses(s.cat)
	if err != nil {
		return fmt.Errorf("load processes: %w", err)
	}
	s.sched.Restore(list)
	if len(list) > 0 {
		s.log.Info("restored process instances", zap.Int("count", len(list)))
	}
	return nil
}

// ─── Tick ───────────────────────────────────────────────────────────────────

// Tick advances the simulation by one step. All effects flow through the
// host collaborator; the previous network snapshot is discarded entirely.
func (s *Simulator) Tick() {
	started := time.Now()
	s.tick++

	net := domain.NewNetwork()
	center, ok := s.host.PlayerPosition()
	if !ok {
		// Unavailable dependency degrades to an empty network this tick;
		// the scheduler then cancels every orphaned instance.
		s.log.Debug("player unavailable, empty network this tick", zap.Uint64("tick", s.tick))
	} else {
		net = scan.Scan(s.host, s.cat, center, s.cfg.ScanRadius)
		kcfg := kinetic.Config{
			MotorSpeed:    s.cfg.MotorSpeed,
			SpeedUnit:     s.cfg.SpeedUnit,
			WindmillBlock: catalog.WindmillBlock,
		}
		kinetic.Propagate(net, kcfg)
		if kinetic.Settle(net, kcfg) {
			metrics.Overloads.Inc()
			s.notify(fmt.Sprintf("kinetic network overloaded: load exceeds capacity %.0f, shutting down", net.Capacity))
		}
	}

	s.sched.Tick(net)

	snap := buildSnapshot(s.tick, net, s.sched.Instances())
	s.mu.Lock()
	s.snap = snap
	s.mu.Unlock()

	s.persist()
	s.observe(net, time.Since(started))
}

// Run drives Tick at the configured period until the context is
// cancelled. Ticks never overlap: the loop is sequential, and the ticker
// drops overdue ticks instead of letting them pile up, so a slow tick
// skips beats rather than drifting.
func (s *Simulator) Run(ctx context.Context) {
	ticker := time.NewTicker(s.cfg.TickPeriod)
	defer ticker.Stop()

	s.log.Info("simulation started",
		zap.Duration("period", s.cfg.TickPeriod),
		zap.Int("radius", s.cfg.ScanRadius),
		zap.String("run_id", s.runID))

	for {
		select {
		case <-ctx.Done():
			s.log.Info("simulation stopped", zap.Uint64("ticks", s.tick))
			return
		case <-ticker.C:
			s.Tick()
		}
	}
}

// ─── Internal ───────────────────────────────────────────────────────────────

func (s *Simulator) notify(msg string) {
	if s.notifier != nil {
		s.notifier.Notify(msg)
	}
	s.log.Info(msg, zap.Uint64("tick", s.tick))
	if s.store != nil {
		if err := s.store.AppendEvent(s.runID, s.tick, "notify", msg); err != nil {
			s.log.Warn("append event failed", zap.Error(err))
		}
	}
}

func (s *Simulator) persist() {
	if s.store == nil {
		return
	}
	if err := s.store.SaveProcesses(s.sched.Instances()); err != nil {
		s.log.Warn("persist processes failed", zap.Error(err))
	}
}

func (s *Simulator) observe(net *domain.Network, elapsed time.Duration) {
	powered := 0
	for _, n := range net.Nodes {
		if n.Powered {
			powered++
		}
	}
	stats := s.sched.Stats()

	metrics.TickDuration.Observe(elapsed.Seconds())
	metrics.TicksTotal.Inc()
	metrics.NetworkStress.Set(net.Stress)
	metrics.NetworkCapacity.Set(net.Capacity)
	metrics.NodesTotal.Set(float64(len(net.Nodes)))
	metrics.NodesPowered.Set(float64(powered))
	metrics.ProcessesActive.Set(float64(len(s.sched.Instances())))
	metrics.ProcessesStarted.Add(float64(stats.Started - s.lastStats.Started))
	metrics.ProcessesCompleted.Add(float64(stats.Completed - s.lastStats.Completed))
	metrics.ProcessesCancelled.Add(float64(stats.Cancelled - s.lastStats.Cancelled))
	s.lastStats = stats
}
