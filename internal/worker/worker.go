// Package worker renders the stored catalog in parallel and keeps the
// resulting profiles as snapshots of one run.
package worker

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/reloadkit/cartgeo/internal/engine"
	"github.com/reloadkit/cartgeo/internal/logging"
	"github.com/reloadkit/cartgeo/internal/storage"
	"github.com/reloadkit/cartgeo/internal/validate"
	"github.com/reloadkit/cartgeo/pkg/core"
	"golang.org/x/sync/errgroup"
)

// StatsSink receives the statistics of every finished run.
type StatsSink interface {
	RecordRun(ctx context.Context, s Stats) error
}

// Dependencies holds all dependencies for the worker manager
type Dependencies struct {
	Engine  *engine.Service
	Backend storage.Backend
	Logger  *slog.Logger
	Sink    StatsSink // optional
}

// Options control one catalog run.
type Options struct {
	Workers int           // concurrent renders; below 1 means 1
	Timeout time.Duration // 0 disables the deadline
}

// Stats summarise a catalog run.
type Stats struct {
	RunID          string         `json:"run_id"`
	Started        time.Time      `json:"started"`
	Duration       time.Duration  `json:"duration"`
	Total          int            `json:"total"`
	ByKind         map[string]int `json:"by_kind"`
	ByCompleteness map[string]int `json:"by_completeness"`
	Invalid        int            `json:"invalid"`
	Estimated      int            `json:"estimated_fields"`
}

// Result is the output of Render. Snapshots are in catalog order:
// cartridges by ID, then bullets by ID.
type Result struct {
	Stats     Stats                  `json:"stats"`
	Snapshots []core.ProfileSnapshot `json:"snapshots"`
}

// Manager runs catalog renders.
type Manager struct {
	deps Dependencies
	now  func() time.Time
}

// NewManager creates a new worker manager
func NewManager(deps Dependencies) *Manager {
	if deps.Logger == nil {
		deps.Logger = slog.Default()
	}
	return &Manager{deps: deps, now: time.Now}
}

type job struct {
	kind   string
	id     uint
	name   string
	render func(ctx context.Context) (engine.Drawing, error)
}

func (m *Manager) jobs() ([]job, error) {
	cartridges, err := m.deps.Backend.Cartridges()
	if err != nil {
		return nil, fmt.Errorf("failed to list cartridges: %w", err)
	}
	bullets, err := m.deps.Backend.Bullets()
	if err != nil {
		return nil, fmt.Errorf("failed to list bullets: %w", err)
	}

	jobs := make([]job, 0, len(cartridges)+len(bullets))
	for _, c := range cartridges {
		dims := c.Dimensions
		jobs = append(jobs, job{kind: core.KindCartridge, id: c.ID, name: c.Name,
			render: func(ctx context.Context) (engine.Drawing, error) { return m.deps.Engine.Cartridge(ctx, dims) }})
	}
	for _, b := range bullets {
		dims := b.Dimensions
		jobs = append(jobs, job{kind: core.KindBullet, id: b.ID, name: b.Name,
			render: func(ctx context.Context) (engine.Drawing, error) { return m.deps.Engine.Bullet(ctx, dims) }})
	}
	return jobs, nil
}

// Render generates every cartridge and bullet in the backend, records the
// snapshots under a new run ID and reports the run to the sink. Records
// rejected by validation are kept as Insufficient snapshots and counted as
// invalid; any other failure aborts the run.
func (m *Manager) Render(ctx context.Context, opts Options) (Result, error) {
	runID := uuid.NewString()
	ctx = logging.WithRunID(ctx, runID)
	if opts.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, opts.Timeout)
		defer cancel()
	}
	started := m.now()

	jobs, err := m.jobs()
	if err != nil {
		return Result{}, err
	}
	m.deps.Logger.InfoContext(ctx, "catalog render started", "records", len(jobs), "workers", max(opts.Workers, 1))

	results := make([]core.GeometryResult, len(jobs))
	invalid := make([]bool, len(jobs))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(max(opts.Workers, 1))
	for i, j := range jobs {
		i, j := i, j
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			d, err := j.render(gctx)
			var bad *validate.InvalidDimensionError
			switch {
			case errors.As(err, &bad):
				invalid[i] = true
				m.deps.Logger.WarnContext(gctx, "record skipped", "kind", j.kind, "name", j.name, "error", err)
			case err != nil:
				return fmt.Errorf("%s %q: %w", j.kind, j.name, err)
			}
			results[i] = d.GeometryResult
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		m.deps.Logger.ErrorContext(ctx, "catalog render failed", "error", err)
		return Result{}, err
	}

	stats := Stats{
		RunID:          runID,
		Started:        started,
		ByKind:         make(map[string]int),
		ByCompleteness: make(map[string]int),
	}
	snapshots := make([]core.ProfileSnapshot, 0, len(jobs))
	for i, j := range jobs {
		s := core.ProfileSnapshot{RunID: runID, Kind: j.kind, RecordID: j.id, Name: j.name, Result: results[i]}
		if err := m.deps.Backend.RecordSnapshot(&s); err != nil {
			return Result{}, fmt.Errorf("failed to record snapshot for %s %q: %w", j.kind, j.name, err)
		}
		snapshots = append(snapshots, s)

		stats.Total++
		stats.ByKind[j.kind]++
		stats.ByCompleteness[s.Result.Completeness.String()]++
		stats.Estimated += s.Result.EstimatedFields.Len()
		if invalid[i] {
			stats.Invalid++
		}
	}
	stats.Duration = m.now().Sub(started)

	m.deps.Logger.InfoContext(ctx, "catalog render finished",
		"total", stats.Total,
		"invalid", stats.Invalid,
		"insufficient", stats.ByCompleteness[core.Insufficient.String()],
		"duration", stats.Duration)

	if m.deps.Sink != nil {
		if err := m.deps.Sink.RecordRun(ctx, stats); err != nil {
			m.deps.Logger.WarnContext(ctx, "failed to record run statistics", "error", err)
		}
	}
	return Result{Stats: stats, Snapshots: snapshots}, nil
}
