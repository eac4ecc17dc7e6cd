// Package bullet builds the axial profile of a bullet, including its ogive
// nose, from a possibly incomplete dimension record.
package bullet

import (
	"math"

	"github.com/reloadkit/cartgeo/internal/classify"
	"github.com/reloadkit/cartgeo/internal/estimate"
	"github.com/reloadkit/cartgeo/internal/geo"
	"github.com/reloadkit/cartgeo/internal/validate"
	"github.com/reloadkit/cartgeo/pkg/core"
)

const (
	meplatToBodyRatio   = 0.06
	boatTailBaseRatio   = 0.85
	minNoseFraction     = 0.20
	maxBoatTailFraction = 0.30
)

// Resolved holds the dimensions the bullet profile is drawn from. Radii and
// lengths are in mm; axial positions are measured from the base.
type Resolved struct {
	BodyRadius         float64
	BoatTailBaseRadius float64
	MeplatRadius       float64
	TotalLength        float64
	BearingSurface     float64
	BoatTail           float64
	NoseLength         float64
	Ogive              classify.Ogive

	Estimated    core.FieldSet
	Completeness core.Completeness
}

// NoseStart is the axial position where the ogive begins.
func (r Resolved) NoseStart() float64 {
	return r.BoatTail + r.BearingSurface
}

// Resolve validates d and fills every dimension the profile needs. ok is false
// when the diameter is missing or no length can be resolved.
func Resolve(d core.BulletDimensions) (r Resolved, ok bool, err error) {
	if err := validate.Bullet(d); err != nil {
		return Resolved{Estimated: core.FieldSet{}, Completeness: core.Insufficient}, false, err
	}
	if d.DiameterMM == nil {
		return Resolved{Estimated: core.FieldSet{}, Completeness: core.Insufficient}, false, nil
	}

	var tr estimate.Tracker
	total, ok := tr.Resolve(core.FieldLength, d.LengthMM, func() (float64, bool) {
		return estimate.BulletLength(d)
	})
	if !ok {
		return Resolved{Estimated: tr.Fields(), Completeness: core.Insufficient}, false, nil
	}

	r.TotalLength = total
	r.BodyRadius = *d.DiameterMM / 2
	r.BearingSurface, _ = tr.Resolve(core.FieldBearingSurface, d.BearingSurfaceMM, func() (float64, bool) {
		return estimate.BearingSurface(d, total)
	})
	r.BoatTail, _ = tr.Resolve(core.FieldBoatTailLength, d.BoatTailLengthMM, func() (float64, bool) {
		return estimate.BoatTailLength(d, total)
	})

	r.MeplatRadius = r.BodyRadius * meplatToBodyRatio
	if d.MeplatDiameterMM != nil {
		r.MeplatRadius = math.Min(*d.MeplatDiameterMM/2, r.BodyRadius)
	}

	var ogiveEstimated bool
	r.Ogive, ogiveEstimated = classify.OgiveFamily(d.OgiveType, d.BulletType)
	if ogiveEstimated {
		tr.Mark(core.FieldOgiveType)
	}

	r.BoatTail = math.Min(r.BoatTail, total*maxBoatTailFraction)
	if minNose := total * minNoseFraction; total-r.BoatTail-r.BearingSurface < minNose {
		r.BearingSurface = math.Max(0, total-r.BoatTail-minNose)
	}
	r.NoseLength = total - r.BoatTail - r.BearingSurface

	r.BoatTailBaseRadius = r.BodyRadius
	if r.BoatTail > 0 {
		r.BoatTailBaseRadius = r.BodyRadius * boatTailBaseRatio
	}

	r.Estimated = tr.Fields()
	r.Completeness = tr.Completeness()
	return r, true, nil
}

// Points returns the top-half profile: boat tail, bearing surface, then the
// sampled ogive ending at the meplat.
func (r Resolved) Points() []core.ProfilePoint {
	points := make([]core.ProfilePoint, 0, OgiveSamples+3)
	points = append(points, core.ProfilePoint{X: 0, Y: r.BoatTailBaseRadius})
	if r.BoatTail > 0 {
		points = append(points, core.ProfilePoint{X: r.BoatTail, Y: r.BodyRadius})
	}
	start := r.NoseStart()
	if r.BearingSurface > 0 {
		points = append(points, core.ProfilePoint{X: start, Y: r.BodyRadius})
	}
	for i := 1; i <= OgiveSamples; i++ {
		t := float64(i) / OgiveSamples
		points = append(points, core.ProfilePoint{
			X: start + r.NoseLength*t,
			Y: NoseRadius(r.Ogive, t, r.BodyRadius, r.MeplatRadius),
		})
	}
	return points
}

// Path serialises the closed outline using the curve primitive of the ogive
// family for the nose. The bottom half mirrors the top.
func (r Resolved) Path() string {
	start := r.NoseStart()
	p := geo.NewPath().MoveTo(0, -r.BoatTailBaseRadius)
	if r.BoatTail > 0 {
		p.LineTo(r.BoatTail, -r.BodyRadius)
	}
	if r.BearingSurface > 0 {
		p.LineTo(start, -r.BodyRadius)
	}
	r.nose(p, -1)
	if r.MeplatRadius > 0 {
		p.LineTo(r.TotalLength, r.MeplatRadius)
	}
	r.nose(p, 1)
	if r.BearingSurface > 0 && r.BoatTail > 0 {
		p.LineTo(r.BoatTail, r.BodyRadius)
	}
	p.LineTo(0, r.BoatTailBaseRadius)
	return p.LineTo(0, -r.BoatTailBaseRadius).Close().String()
}

// nose draws the ogive. sign -1 draws the top half from the shank to the tip,
// sign 1 the bottom half from the tip back to the shank.
func (r Resolved) nose(p *geo.Path, sign float64) {
	start, end := r.NoseStart(), r.TotalLength
	body, meplat := r.BodyRadius*sign, r.MeplatRadius*sign
	span := r.BodyRadius - r.MeplatRadius

	toX, toY := end, meplat
	if sign > 0 {
		toX, toY = start, body
	}

	switch r.Ogive {
	case classify.Secant:
		p.QuadTo(start+r.NoseLength*0.35, sign*(r.MeplatRadius+span*0.9), toX, toY)
	case classify.Hybrid:
		c1x, c1y := start+r.NoseLength*0.30, body
		c2x, c2y := start+r.NoseLength*0.75, sign*(r.MeplatRadius+span*0.35)
		if sign > 0 {
			c1x, c1y, c2x, c2y = c2x, c2y, c1x, c1y
		}
		p.CubicTo(c1x, c1y, c2x, c2y, toX, toY)
	case classify.RoundNose:
		p.ArcTo(r.NoseLength, span, 0, false, true, toX, toY)
	case classify.FlatNose:
		p.LineTo(toX, toY)
	default:
		p.QuadTo(start+r.NoseLength/2, body, toX, toY)
	}
}

// Result renders r. An Insufficient grade yields the empty result.
func (r Resolved) Result() core.GeometryResult {
	if r.Completeness == core.Insufficient {
		return core.InsufficientResult(r.Estimated)
	}
	return core.GeometryResult{
		SVGPath:         r.Path(),
		ProfilePoints:   r.Points(),
		EstimatedFields: r.Estimated,
		Completeness:    r.Completeness,
	}
}

// Generate builds the bullet profile for d.
func Generate(d core.BulletDimensions) (core.GeometryResult, error) {
	r, ok, err := Resolve(d)
	if err != nil {
		return core.InsufficientResult(core.FieldSet{}), err
	}
	if !ok {
		return core.InsufficientResult(r.Estimated), nil
	}
	return r.Result(), nil
}
