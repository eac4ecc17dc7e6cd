// Package cartridge builds the axial profile of a cartridge case from a
// possibly incomplete dimension record.
package cartridge

import (
	"math"

	"github.com/reloadkit/cartgeo/internal/classify"
	"github.com/reloadkit/cartgeo/internal/estimate"
	"github.com/reloadkit/cartgeo/internal/geo"
	"github.com/reloadkit/cartgeo/internal/validate"
	"github.com/reloadkit/cartgeo/pkg/core"
)

// mouthMarginMM keeps the shoulder at least this far behind the case mouth.
const mouthMarginMM = 1.0

// Resolved holds every dimension the profile is drawn from, in mm, with
// diameters already halved to radii.
type Resolved struct {
	CaseLength     float64
	BaseRadius     float64
	NeckRadius     float64
	RimRadius      float64
	RimThickness   float64
	StraightWall   bool
	ShoulderRadius float64
	ShoulderAngle  float64 // degrees; 0 when no angle could be resolved
	NeckLength     float64
	BodyEnd        float64 // axial position where the shoulder starts
	ShoulderEnd    float64 // axial position where the neck starts

	// ShoulderDefaulted is set when the shoulder diameter was not recorded.
	// The default does not count towards completeness.
	ShoulderDefaulted bool
	Estimated         core.FieldSet
	Completeness      core.Completeness
}

// IsStraightWall reports whether d describes a case without a usable shoulder.
func IsStraightWall(d core.CartridgeDimensions) bool {
	if classify.IsStraightWallText(d.CaseType) {
		return true
	}
	if d.ShoulderDiameterMM != nil && d.NeckDiameterMM != nil {
		return math.Abs(*d.ShoulderDiameterMM-*d.NeckDiameterMM) < estimate.StraightWallThresholdMM
	}
	if d.ShoulderDiameterMM == nil && d.NeckDiameterMM != nil && d.BaseDiameterMM != nil {
		return math.Abs(*d.BaseDiameterMM-*d.NeckDiameterMM) < estimate.StraightWallThresholdMM
	}
	return false
}

// Resolve validates d and fills every dimension the profile needs. ok is false
// when a required field is missing. Invalid values return an
// *validate.InvalidDimensionError.
func Resolve(d core.CartridgeDimensions) (r Resolved, ok bool, err error) {
	if err := validate.Cartridge(d); err != nil {
		return Resolved{Estimated: core.FieldSet{}, Completeness: core.Insufficient}, false, err
	}
	if d.CaseLengthMM == nil || d.BaseDiameterMM == nil || d.NeckDiameterMM == nil {
		return Resolved{Estimated: core.FieldSet{}, Completeness: core.Insufficient}, false, nil
	}

	var tr estimate.Tracker
	r.CaseLength = *d.CaseLengthMM
	r.BaseRadius = *d.BaseDiameterMM / 2
	r.NeckRadius = *d.NeckDiameterMM / 2
	r.RimRadius = r.BaseRadius
	if d.RimDiameterMM != nil {
		r.RimRadius = *d.RimDiameterMM / 2
	}
	rimThickness, _ := tr.Resolve(core.FieldRimThickness, d.RimThicknessMM, func() (float64, bool) {
		return estimate.RimThickness(d)
	})
	r.RimThickness = math.Min(rimThickness, r.CaseLength)
	r.StraightWall = IsStraightWall(d)

	if r.StraightWall {
		r.ShoulderRadius = r.BaseRadius
		r.BodyEnd = r.CaseLength
		r.ShoulderEnd = r.CaseLength
		r.Estimated = tr.Fields()
		r.Completeness = tr.Completeness()
		return r, true, nil
	}

	var shoulderDiameter float64
	if d.ShoulderDiameterMM != nil {
		shoulderDiameter = *d.ShoulderDiameterMM
	} else {
		shoulderDiameter, _ = estimate.ShoulderDiameter(d)
		r.ShoulderDefaulted = true
	}
	r.ShoulderRadius = shoulderDiameter / 2

	r.NeckLength, _ = tr.Resolve(core.FieldNeckLength, d.NeckLengthMM, func() (float64, bool) {
		return estimate.NeckLength(d)
	})
	bodyLength, _ := tr.Resolve(core.FieldBodyLength, d.BodyLengthMM, func() (float64, bool) {
		return estimate.BodyLength(d, r.NeckLength)
	})

	withShoulder := d
	withShoulder.ShoulderDiameterMM = core.Float(shoulderDiameter)
	angle, hasAngle := tr.Resolve(core.FieldShoulderAngle, d.ShoulderAngleDeg, func() (float64, bool) {
		return estimate.ShoulderAngle(withShoulder)
	})

	limit := math.Max(r.RimThickness, r.CaseLength-mouthMarginMM)
	r.BodyEnd = clamp(bodyLength, r.RimThickness, limit)

	var shoulderEnd float64
	if hasAngle {
		r.ShoulderAngle = angle
		shoulderEnd = r.BodyEnd + (r.ShoulderRadius-r.NeckRadius)/math.Tan(angle*math.Pi/180)
	} else {
		shoulderEnd = r.CaseLength - r.NeckLength
	}
	r.ShoulderEnd = clamp(shoulderEnd, r.BodyEnd, limit)

	r.Estimated = tr.Fields()
	r.Completeness = tr.Completeness()
	return r, true, nil
}

func clamp(v, lo, hi float64) float64 {
	if hi < lo {
		hi = lo
	}
	return math.Min(math.Max(v, lo), hi)
}

// Points returns the top-half profile in axial order.
func (r Resolved) Points() []core.ProfilePoint {
	points := []core.ProfilePoint{
		{X: 0, Y: r.RimRadius},
		{X: r.RimThickness, Y: r.RimRadius},
		{X: r.RimThickness, Y: r.BaseRadius},
	}
	if r.StraightWall {
		return append(points, core.ProfilePoint{X: r.CaseLength, Y: r.BaseRadius})
	}
	return append(points,
		core.ProfilePoint{X: r.BodyEnd, Y: r.ShoulderRadius},
		core.ProfilePoint{X: r.ShoulderEnd, Y: r.NeckRadius},
		core.ProfilePoint{X: r.CaseLength, Y: r.NeckRadius},
	)
}

// Result renders r. An Insufficient grade yields the empty result.
func (r Resolved) Result() core.GeometryResult {
	if r.Completeness == core.Insufficient {
		return core.InsufficientResult(r.Estimated)
	}
	points := r.Points()
	return core.GeometryResult{
		SVGPath:         geo.MirroredPath(points),
		ProfilePoints:   points,
		EstimatedFields: r.Estimated,
		Completeness:    r.Completeness,
	}
}

// Generate builds the cartridge profile for d.
func Generate(d core.CartridgeDimensions) (core.GeometryResult, error) {
	r, ok, err := Resolve(d)
	if err != nil {
		return core.InsufficientResult(core.FieldSet{}), err
	}
	if !ok {
		return core.InsufficientResult(core.FieldSet{}), nil
	}
	return r.Result(), nil
}
