package dimension

import (
	"github.com/reloadkit/cartgeo/internal/bullet"
	"github.com/reloadkit/cartgeo/internal/cartridge"
	"github.com/reloadkit/cartgeo/internal/geo"
	"github.com/reloadkit/cartgeo/pkg/core"
)

// Frame maps profile millimetres to drawing coordinates. The part axis runs
// along y = OriginY and the top half is drawn above it.
type Frame struct {
	Scale   float64
	OriginX float64
	OriginY float64
}

func (f Frame) x(mm float64) float64 { return f.OriginX + mm*f.Scale }
func (f Frame) y(mm float64) float64 { return f.OriginY + mm*f.Scale }

// Canvas returns a canvas of the given size whose part extent is the
// mirrored outline of points.
func (f Frame) Canvas(points []core.ProfilePoint, width, height float64) Canvas {
	c := Canvas{Width: width, Height: height}
	if len(points) == 0 {
		return c
	}
	minX, maxX, maxR := geo.Bounds(points)
	c.MinX, c.MaxX = f.x(minX), f.x(maxX)
	c.MinY, c.MaxY = f.y(-maxR), f.y(maxR)
	return c
}

func (f Frame) horizontal(label string, x1, x2, atR float64, side core.Side, estimated bool) core.DimensionAnnotation {
	y := f.y(-atR)
	if side == core.Bottom {
		y = f.y(atR)
	}
	return core.DimensionAnnotation{
		X1: f.x(x1), Y1: y, X2: f.x(x2), Y2: y,
		ValueMM:     x2 - x1,
		Label:       label,
		Side:        side,
		IsEstimated: estimated,
	}
}

func (f Frame) vertical(label string, atX, radius float64, side core.Side, estimated bool) core.DimensionAnnotation {
	return core.DimensionAnnotation{
		X1: f.x(atX), Y1: f.y(-radius), X2: f.x(atX), Y2: f.y(radius),
		ValueMM:     radius * 2,
		Label:       label,
		Side:        side,
		IsEstimated: estimated,
	}
}

// CartridgeCandidates derives the annotations of a cartridge drawing.
// Diameters go on the left and right edges, lengths on the top and bottom.
func CartridgeCandidates(r cartridge.Resolved, f Frame) []core.DimensionAnnotation {
	est := r.Estimated.Has
	cands := []core.DimensionAnnotation{
		f.horizontal("Case length", 0, r.CaseLength, r.BaseRadius, core.Bottom, false),
		f.horizontal("Rim thickness", 0, r.RimThickness, r.RimRadius, core.Top, est(core.FieldRimThickness)),
		f.vertical("Rim diameter", 0, r.RimRadius, core.Left, false),
		f.vertical("Base diameter", r.RimThickness, r.BaseRadius, core.Left, false),
	}
	if r.StraightWall {
		return cands
	}
	return append(cands,
		f.horizontal("Body length", 0, r.BodyEnd, r.ShoulderRadius, core.Top, est(core.FieldBodyLength)),
		f.horizontal("Neck length", r.ShoulderEnd, r.CaseLength, r.NeckRadius, core.Top, est(core.FieldNeckLength)),
		f.vertical("Shoulder diameter", r.BodyEnd, r.ShoulderRadius, core.Right, r.ShoulderDefaulted),
		f.vertical("Neck diameter", r.CaseLength, r.NeckRadius, core.Right, false),
	)
}

// BulletCandidates derives the annotations of a bullet drawing.
func BulletCandidates(r bullet.Resolved, f Frame) []core.DimensionAnnotation {
	est := r.Estimated.Has
	start := r.NoseStart()
	cands := []core.DimensionAnnotation{
		f.horizontal("Overall length", 0, r.TotalLength, r.BodyRadius, core.Bottom, est(core.FieldLength)),
		f.vertical("Diameter", start, r.BodyRadius, core.Left, false),
		f.horizontal("Ogive length", start, r.TotalLength, r.BodyRadius, core.Top, est(core.FieldOgiveType)),
	}
	if r.BearingSurface > 0 {
		cands = append(cands, f.horizontal("Bearing surface", r.BoatTail, start, r.BodyRadius, core.Top, est(core.FieldBearingSurface)))
	}
	if r.BoatTail > 0 {
		cands = append(cands, f.horizontal("Boat tail", 0, r.BoatTail, r.BodyRadius, core.Top, est(core.FieldBoatTailLength)))
	}
	if r.MeplatRadius > 0 {
		cands = append(cands, f.vertical("Meplat", r.TotalLength, r.MeplatRadius, core.Right, false))
	}
	return cands
}
