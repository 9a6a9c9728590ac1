package daemon

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/gearline/gearline/internal/api"
	"github.com/gearline/gearline/internal/domain"
	"github.com/gearline/gearline/internal/health"
	"github.com/gearline/gearline/internal/infra/sqlite"
	"github.com/gearline/gearline/internal/sim"
	"github.com/gearline/gearline/internal/sim/catalog"
)

// Daemon is the core Gearline runtime. It wires together the catalog,
// the host world, the simulator, persistence, and the HTTP API.
type Daemon struct {
	Config  Config
	Log     *zap.Logger
	DB      *sqlite.DB
	Catalog *catalog.Catalog
	Host    domain.Host
	Sim     *sim.Simulator
	Server  *api.Server
	Health  *health.Checker

	cancel context.CancelFunc
}

// New creates and initializes a Daemon with the built-in demo world.
func New() (*Daemon, error) {
	cfg, err := LoadConfig()
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	return NewWithConfig(cfg, BuildDemoWorld())
}

// NewWithConfig creates a Daemon around the given configuration and host
// world. Catalog validation fails fast here, before any tick runs.
func NewWithConfig(cfg Config, host domain.Host) (*Daemon, error) {
	log, err := newLogger(cfg.Logging.Level)
	if err != nil {
		return nil, fmt.Errorf("build logger: %w", err)
	}

	cat, err := catalog.New(cfg.Sim.MotorSpeed)
	if err != nil {
		return nil, fmt.Errorf("load catalog: %w", err)
	}

	db, err := sqlite.Open(gearlineHome())
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	simCfg := sim.Config{
		TickPeriod: time.Duration(cfg.Sim.TickMS) * time.Millisecond,
		ScanRadius: cfg.Sim.ScanRadius,
		MotorSpeed: cfg.Sim.MotorSpeed,
		SpeedUnit:  cfg.Sim.SpeedUnit,
	}
	simulator := sim.New(simCfg, cat, host, sim.Options{
		Notifier: domain.NotifierFunc(func(msg string) {
			log.Info(msg, zap.String("source", "simulation"))
		}),
		Store:  db,
		Logger: log.Named("sim"),
	})
	if err := simulator.RestoreProcesses(); err != nil {
		log.Warn("restore processes failed, starting clean", zap.Error(err))
	}

	srv := api.NewServer(simulator, cat, db)
	if cfg.Telemetry.Prometheus {
		srv.EnableMetrics()
	}

	checker := health.NewChecker(db, host, simulator)
	srv.SetHealth(checker)

	return &Daemon{
		Config:  cfg,
		Log:     log,
		DB:      db,
		Catalog: cat,
		Host:    host,
		Sim:     simulator,
		Server:  srv,
		Health:  checker,
	}, nil
}

// Serve starts the simulation loop and HTTP server, blocking until
// shutdown.
func (d *Daemon) Serve(ctx context.Context) error {
	ctx, cancel := context.WithCancel(ctx)
	d.cancel = cancel

	go d.Sim.Run(ctx)
	go d.Health.Run(ctx)

	addr := fmt.Sprintf("%s:%d", d.Config.API.Host, d.Config.API.Port)
	httpServer := &http.Server{
		Addr:         addr,
		Handler:      d.Server.Handler(),
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  2 * time.Minute,
	}

	// Graceful shutdown on signal. The simulation stops between ticks,
	// so no partial tick state survives into the next start.
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		select {
		case <-sigCh:
		case <-ctx.Done():
		}
		cancel()

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer shutdownCancel()

		_ = httpServer.Shutdown(shutdownCtx)
		_ = d.DB.Close()
	}()

	d.Log.Info("gearline serving", zap.String("addr", addr))
	if d.Config.Telemetry.Prometheus {
		d.Log.Info("metrics enabled", zap.String("url", "http://"+addr+"/metrics"))
	}

	if err := httpServer.ListenAndServe(); err != http.ErrServerClosed {
		return err
	}
	return nil
}

// Close shuts down all daemon resources.
func (d *Daemon) Close() {
	if d.cancel != nil {
		d.cancel()
	}
	if d.DB != nil {
		_ = d.DB.Close()
	}
	if d.Log != nil {
		_ = d.Log.Sync()
	}
}

// newLogger builds the daemon logger at the configured level.
func newLogger(level string) (*zap.Logger, error) {
	lvl, err := zapcore.ParseLevel(level)
	if err != nil {
		lvl = zapcore.InfoLevel
	}
	cfg := zap.NewProductionConfig()
	cfg.Level = zap.NewAtomicLevelAt(lvl)
	cfg.Encoding = "console"
	cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	return cfg.Build()
}
