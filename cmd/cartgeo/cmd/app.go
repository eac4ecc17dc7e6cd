package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/reloadkit/cartgeo/internal/config"
	"github.com/reloadkit/cartgeo/internal/engine"
	"github.com/reloadkit/cartgeo/internal/influx"
	"github.com/reloadkit/cartgeo/internal/logging"
	"github.com/reloadkit/cartgeo/internal/storage"
	"github.com/reloadkit/cartgeo/internal/storage/factory"
	"github.com/reloadkit/cartgeo/internal/worker"
	"github.com/rs/zerolog"
)

// AppName prefixes log files.
const AppName = "cartgeo"

// app holds the state shared by all commands of one invocation.
type app struct {
	configDir string
	started   time.Time

	slogManager *logging.SlogManager
	logger      *slog.Logger
	zlog        zerolog.Logger
	engine      *engine.Service
}

func newApp() *app {
	return &app{
		started:     time.Now(),
		slogManager: logging.NewSlogManager(),
		logger:      slog.Default(),
		zlog:        zerolog.Nop(),
	}
}

// init loads configuration, sets up logging and builds the engine.
func (a *app) init() error {
	if err := config.Load(a.configDir); err != nil {
		if !config.IsNotFound(err) {
			return err
		}
		config.SetDefaults()
	}
	level := config.GetString("logLevel")

	var file io.Writer
	if dir := config.GetString("logsDir"); dir != "" {
		f, err := logging.OpenLogFile(dir, AppName, a.started)
		if err != nil {
			return err
		}
		file = f
	}

	var graylog io.Writer
	var graylogErr error
	if gc := config.GetGraylogConfig(); gc.Enabled {
		w, err := logging.NewGraylogWriter(gc.Address)
		if err != nil {
			graylogErr = err
		} else {
			graylog = w
		}
	}

	a.slogManager.Setup(file, level, graylog)
	a.logger = a.slogManager.Logger()
	a.zlog = logging.NewZerolog(file, level)
	if graylogErr != nil {
		a.logger.Warn("Graylog disabled", "error", graylogErr)
	}

	svc, err := engine.New(engine.OptionsFromConfig(config.GetEngineConfig()), a.logger)
	if err != nil {
		return fmt.Errorf("invalid engine configuration: %w", err)
	}
	a.engine = svc
	return nil
}

func (a *app) close() error {
	return a.slogManager.Close()
}

// openBackend creates and initialises the configured storage backend.
func (a *app) openBackend() (storage.Backend, error) {
	sc := config.GetStorageConfig()
	b, err := factory.NewBackend(sc, config.GetDBConfig(), a.zlog)
	if err != nil {
		return nil, err
	}
	if err := b.Init(); err != nil {
		return nil, fmt.Errorf("failed to initialize %s storage: %w", sc.Type, err)
	}
	a.logger.Debug("Storage backend initialized", "type", sc.Type)
	return b, nil
}

// statsSink returns the influx run-stats sink when enabled. The returned
// close function is always safe to call.
func (a *app) statsSink(ctx context.Context) (worker.StatsSink, func() error) {
	ic := config.GetInfluxConfig()
	if !ic.Enabled {
		return nil, func() error { return nil }
	}
	m := influx.NewManager(a.zlog, ic)
	if err := m.Connect(ctx); err != nil {
		a.logger.Warn("Run statistics disabled", "error", err)
		_ = m.Close()
		return nil, func() error { return nil }
	}
	return m, m.Close
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
