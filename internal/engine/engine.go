// Package engine is the entry point used by the CLI and the catalog worker.
// It applies configured options to the geometry packages, logs each call and
// counts results on the global OTel meter.
package engine

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/reloadkit/cartgeo/internal/assembly"
	"github.com/reloadkit/cartgeo/internal/bullet"
	"github.com/reloadkit/cartgeo/internal/cartridge"
	"github.com/reloadkit/cartgeo/internal/chamber"
	"github.com/reloadkit/cartgeo/internal/config"
	"github.com/reloadkit/cartgeo/internal/dimension"
	"github.com/reloadkit/cartgeo/internal/geo"
	"github.com/reloadkit/cartgeo/internal/mesh"
	"github.com/reloadkit/cartgeo/internal/validate"
	"github.com/reloadkit/cartgeo/pkg/core"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// Drawing scale and margin, in drawing units.
const (
	DrawingScale  = 8.0
	DrawingMargin = 60.0
)

// Options are the resolved engine settings.
type Options struct {
	Layout          dimension.Options
	Thresholds      assembly.Thresholds
	Mesh            mesh.Options
	WallThicknessMM float64
	MinRadiusMM     float64
}

// DefaultOptions mirrors the configuration defaults.
func DefaultOptions() Options {
	return Options{
		Layout:          dimension.DefaultOptions,
		Thresholds:      assembly.DefaultThresholds,
		Mesh:            mesh.Options{Segments: mesh.DefaultSegments},
		WallThicknessMM: mesh.DefaultWallThickness,
		MinRadiusMM:     mesh.DefaultMinRadius,
	}
}

// OptionsFromConfig maps the engine section of the configuration.
func OptionsFromConfig(cfg config.EngineConfig) Options {
	return Options{
		Layout: dimension.Options{
			BaseOffset:  cfg.Layout.BaseOffset,
			TierSpacing: cfg.Layout.TierSpacing,
			Clearance:   cfg.Layout.Clearance,
		},
		Thresholds: assembly.Thresholds{
			CautionRatio: cfg.Stress.CautionRatio,
			DangerRatio:  cfg.Stress.DangerRatio,
		},
		Mesh:            mesh.Options{Segments: cfg.Mesh.Segments},
		WallThicknessMM: cfg.Mesh.WallThicknessMM,
		MinRadiusMM:     cfg.Mesh.MinRadiusMM,
	}
}

// Drawing is a generated profile with its placed dimensions.
type Drawing struct {
	core.GeometryResult
	Width      float64               `json:"width,omitempty"`
	Height     float64               `json:"height,omitempty"`
	AreaMM2    float64               `json:"area_mm2,omitempty"`
	Dimensions []dimension.Placement `json:"dimensions,omitempty"`
}

// Service runs the geometry packages with a fixed set of options.
type Service struct {
	opts   Options
	logger *slog.Logger

	profiles     metric.Int64Counter
	insufficient metric.Int64Counter
	estimated    metric.Int64Counter
	invalid      metric.Int64Counter
	triangles    metric.Int64Counter
}

// New validates opts and creates a Service. A nil logger uses slog.Default.
func New(opts Options, logger *slog.Logger) (*Service, error) {
	if err := opts.Thresholds.Validate(); err != nil {
		return nil, err
	}
	if opts.Mesh.Segments < 1 {
		return nil, fmt.Errorf("%w: got %d", mesh.ErrInvalidSegments, opts.Mesh.Segments)
	}
	if opts.WallThicknessMM < 0 || opts.MinRadiusMM < 0 {
		return nil, errors.New("mesh wall thickness and minimum radius must not be negative")
	}
	if logger == nil {
		logger = slog.Default()
	}
	s := &Service{opts: opts, logger: logger}

	m := meter()
	var err error
	s.profiles, err = m.Int64Counter(
		"geometry.profiles.generated",
		metric.WithDescription("Profiles generated, by kind and completeness"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating profiles counter: %w", err)
	}
	s.insufficient, err = m.Int64Counter(
		"geometry.profiles.insufficient",
		metric.WithDescription("Profiles that could not be rendered"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating insufficient counter: %w", err)
	}
	s.estimated, err = m.Int64Counter(
		"geometry.fields.estimated",
		metric.WithDescription("Fields filled in by estimators"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating estimated counter: %w", err)
	}
	s.invalid, err = m.Int64Counter(
		"geometry.records.invalid",
		metric.WithDescription("Records rejected by validation"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating invalid counter: %w", err)
	}
	s.triangles, err = m.Int64Counter(
		"geometry.mesh.triangles",
		metric.WithDescription("Triangles emitted by the mesh builder"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating triangles counter: %w", err)
	}
	return s, nil
}

// Options returns the settings the service runs with.
func (s *Service) Options() Options {
	return s.opts
}

func (s *Service) record(ctx context.Context, kind string, res core.GeometryResult, err error) {
	kindAttr := attribute.String("kind", kind)
	var invalid *validate.InvalidDimensionError
	if errors.As(err, &invalid) {
		s.invalid.Add(ctx, 1, metric.WithAttributes(kindAttr, attribute.String("field", invalid.Field)))
		s.logger.WarnContext(ctx, "invalid dimensions", "kind", kind, "field", invalid.Field, "value", invalid.Value, "reason", invalid.Reason)
		return
	}
	s.profiles.Add(ctx, 1, metric.WithAttributes(kindAttr, attribute.String("completeness", res.Completeness.String())))
	if n := res.EstimatedFields.Len(); n > 0 {
		s.estimated.Add(ctx, int64(n), metric.WithAttributes(kindAttr))
	}
	if !res.Renderable() {
		s.insufficient.Add(ctx, 1, metric.WithAttributes(kindAttr))
		s.logger.InfoContext(ctx, "profile not renderable", "kind", kind, "estimated", []string(res.EstimatedFields))
		return
	}
	s.logger.DebugContext(ctx, "profile generated", "kind", kind, "points", len(res.ProfilePoints),
		"completeness", res.Completeness.String(), "estimated", len(res.EstimatedFields))
}

// frame fits points into a drawing with DrawingMargin on every side.
func frame(points []core.ProfilePoint) (dimension.Frame, float64, float64) {
	_, maxX, maxR := geo.Bounds(points)
	f := dimension.Frame{
		Scale:   DrawingScale,
		OriginX: DrawingMargin,
		OriginY: DrawingMargin + maxR*DrawingScale,
	}
	return f, 2*DrawingMargin + maxX*DrawingScale, 2*DrawingMargin + 2*maxR*DrawingScale
}

func (s *Service) draw(res core.GeometryResult, cands func(dimension.Frame) []core.DimensionAnnotation) Drawing {
	d := Drawing{GeometryResult: res}
	if !res.Renderable() {
		return d
	}
	f, w, h := frame(res.ProfilePoints)
	d.Width, d.Height = w, h
	d.AreaMM2 = geo.CrossSectionArea(res.ProfilePoints)
	d.Dimensions = dimension.Layout(cands(f), f.Canvas(res.ProfilePoints, w, h), s.opts.Layout)
	return d
}

// Cartridge generates the case profile of d and lays out its dimensions.
func (s *Service) Cartridge(ctx context.Context, d core.CartridgeDimensions) (Drawing, error) {
	r, ok, err := cartridge.Resolve(d)
	if err != nil {
		res := core.InsufficientResult(core.FieldSet{})
		s.record(ctx, core.KindCartridge, res, err)
		return Drawing{GeometryResult: res}, err
	}
	if !ok {
		res := core.InsufficientResult(r.Estimated)
		s.record(ctx, core.KindCartridge, res, nil)
		return Drawing{GeometryResult: res}, nil
	}
	res := r.Result()
	s.record(ctx, core.KindCartridge, res, nil)
	return s.draw(res, func(f dimension.Frame) []core.DimensionAnnotation {
		return dimension.CartridgeCandidates(r, f)
	}), nil
}

// Bullet generates the projectile profile of d and lays out its dimensions.
func (s *Service) Bullet(ctx context.Context, d core.BulletDimensions) (Drawing, error) {
	r, ok, err := bullet.Resolve(d)
	if err != nil {
		res := core.InsufficientResult(core.FieldSet{})
		s.record(ctx, core.KindBullet, res, err)
		return Drawing{GeometryResult: res}, err
	}
	if !ok {
		res := core.InsufficientResult(r.Estimated)
		s.record(ctx, core.KindBullet, res, nil)
		return Drawing{GeometryResult: res}, nil
	}
	res := r.Result()
	s.record(ctx, core.KindBullet, res, nil)
	return s.draw(res, func(f dimension.Frame) []core.DimensionAnnotation {
		return dimension.BulletCandidates(r, f)
	}), nil
}

// Chamber computes clearances of d in rifle, which may be nil.
func (s *Service) Chamber(ctx context.Context, d core.CartridgeDimensions, rifle *core.RifleChamber) (chamber.Result, error) {
	res, err := chamber.Build(d, rifle)
	if err != nil {
		var invalid *validate.InvalidDimensionError
		if errors.As(err, &invalid) {
			s.invalid.Add(ctx, 1, metric.WithAttributes(attribute.String("kind", "chamber"), attribute.String("field", invalid.Field)))
		}
		return res, err
	}
	s.logger.DebugContext(ctx, "chamber computed",
		"headspace_gap_mm", res.Clearances.HeadspaceGapMM,
		"estimated", len(res.Clearances.EstimatedFields),
		"outline", len(res.ProfilePoints) > 0)
	return res, nil
}

// Assembly lays out a cartridge in a barrel with the configured stress thresholds.
func (s *Service) Assembly(ctx context.Context, p assembly.Params) (core.AssemblyLayout, error) {
	l, err := assembly.Build(p, s.opts.Thresholds)
	if err != nil {
		return l, err
	}
	if l.StressZone == core.ZoneCaution || l.StressZone == core.ZoneDanger {
		s.logger.WarnContext(ctx, "pressure above threshold", "ratio", l.PressureRatio, "zone", l.StressZone.String())
	}
	return l, nil
}

// Barrel describes the barrel and load a cartridge is laid out in.
type Barrel struct {
	LengthMM        float64
	VisibleLengthMM float64
	SeatingDepthMM  float64 // 0 seats the bullet one diameter deep
	OuterDiameterMM float64
	NodesMM         []float64
	PeakPressure    float64
	MaxPressure     float64
}

// Load resolves the cartridge and bullet records and lays them out in barrel.
// Bore and groove diameters come from the cartridge record when present.
// rifle may be nil; when given, it supplies the barrel length and outer
// diameter that barrel leaves at zero.
func (s *Service) Load(ctx context.Context, c core.CartridgeDimensions, b core.BulletDimensions, barrel Barrel, rifle *core.RifleChamber) (core.AssemblyLayout, error) {
	if rifle != nil {
		if err := validate.Rifle(*rifle); err != nil {
			return core.AssemblyLayout{}, err
		}
		if barrel.LengthMM == 0 && rifle.BarrelLengthMM != nil {
			barrel.LengthMM = *rifle.BarrelLengthMM
		}
		if barrel.OuterDiameterMM == 0 && rifle.BarrelOuterDiameterMM != nil {
			barrel.OuterDiameterMM = *rifle.BarrelOuterDiameterMM
		}
	}
	if barrel.LengthMM == 0 {
		return core.AssemblyLayout{}, fmt.Errorf("%w: no barrel length given and none in the rifle record", assembly.ErrInvalidParams)
	}

	cr, ok, err := cartridge.Resolve(c)
	if err != nil {
		return core.AssemblyLayout{}, err
	}
	if !ok {
		return core.AssemblyLayout{}, fmt.Errorf("cartridge: %w", ErrNotRenderable)
	}
	br, ok, err := bullet.Resolve(b)
	if err != nil {
		return core.AssemblyLayout{}, err
	}
	if !ok {
		return core.AssemblyLayout{}, fmt.Errorf("bullet: %w", ErrNotRenderable)
	}

	bore := br.BodyRadius * 2
	if c.BoreDiameterMM != nil {
		bore = *c.BoreDiameterMM
	}
	seating := barrel.SeatingDepthMM
	if seating == 0 {
		seating = br.BodyRadius * 2
	}
	return s.Assembly(ctx, assembly.Params{
		CaseLengthMM:     cr.CaseLength,
		BaseDiameterMM:   cr.BaseRadius * 2,
		BulletLengthMM:   br.TotalLength,
		SeatingDepthMM:   seating,
		BarrelLengthMM:   barrel.LengthMM,
		VisibleLengthMM:  barrel.VisibleLengthMM,
		BoreDiameterMM:   bore,
		GrooveDiameterMM: bore + 2*chamber.RiflingHeight(c),
		OuterDiameterMM:  barrel.OuterDiameterMM,
		NodesMM:          barrel.NodesMM,
		PeakPressure:     barrel.PeakPressure,
		MaxPressure:      barrel.MaxPressure,
	})
}

// Solid is a revolved profile, optionally with its inner wall.
type Solid struct {
	Outer *mesh.Mesh
	Inner *mesh.Mesh
}

// Mesh revolves points with the configured segment count. When hollow is set
// the inner wall is revolved as well.
func (s *Service) Mesh(ctx context.Context, points []core.ProfilePoint, sweep mesh.Sweep, hollow bool) (Solid, error) {
	opts := s.opts.Mesh
	opts.Sweep = sweep
	outer, err := mesh.Revolve(points, opts)
	if err != nil {
		return Solid{}, fmt.Errorf("failed to revolve profile: %w", err)
	}
	sol := Solid{Outer: outer}
	if hollow {
		inner, err := mesh.Revolve(mesh.InnerWall(points, s.opts.WallThicknessMM, s.opts.MinRadiusMM), opts)
		if err != nil {
			return Solid{}, fmt.Errorf("failed to revolve inner wall: %w", err)
		}
		sol.Inner = inner
	}
	n := outer.TriangleCount()
	if sol.Inner != nil {
		n += sol.Inner.TriangleCount()
	}
	s.triangles.Add(ctx, int64(n), metric.WithAttributes(attribute.String("sweep", sweep.String())))
	s.logger.DebugContext(ctx, "mesh built", "segments", opts.Segments, "sweep", sweep.String(), "triangles", n)
	return sol, nil
}

// ErrNotRenderable is returned when a mesh is requested for a profile that
// could not be generated.
var ErrNotRenderable = errors.New("profile is not renderable")

// CartridgeMesh generates the case profile of d and revolves it as a hollow shell.
func (s *Service) CartridgeMesh(ctx context.Context, d core.CartridgeDimensions, sweep mesh.Sweep) (Solid, error) {
	dr, err := s.Cartridge(ctx, d)
	if err != nil {
		return Solid{}, err
	}
	if !dr.Renderable() {
		return Solid{}, ErrNotRenderable
	}
	return s.Mesh(ctx, dr.ProfilePoints, sweep, true)
}

// BulletMesh generates the bullet profile of d and revolves it as a solid.
func (s *Service) BulletMesh(ctx context.Context, d core.BulletDimensions, sweep mesh.Sweep) (Solid, error) {
	dr, err := s.Bullet(ctx, d)
	if err != nil {
		return Solid{}, err
	}
	if !dr.Renderable() {
		return Solid{}, ErrNotRenderable
	}
	return s.Mesh(ctx, dr.ProfilePoints, sweep, false)
}
