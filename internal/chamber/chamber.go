// Package chamber computes the clearances between a cartridge and the chamber
// it sits in, and the chamber outline used for drawing.
package chamber

import (
	"math"

	"github.com/reloadkit/cartgeo/internal/cartridge"
	"github.com/reloadkit/cartgeo/internal/estimate"
	"github.com/reloadkit/cartgeo/internal/geo"
	"github.com/reloadkit/cartgeo/internal/validate"
	"github.com/reloadkit/cartgeo/pkg/core"
)

// Defaults substituted when the rifle record does not supply a value.
const (
	DefaultHeadspaceMM     = 0.10
	DefaultThroatAngleDeg  = 1.5
	DefaultRiflingHeightMM = 0.1
	neckClearanceRatio     = 0.015
	bodyClearanceRatio     = 0.008
	freeboreToCaliberRatio = 0.2
)

// Caliber returns the nominal bore of d: bore diameter when known, else neck
// diameter, else 0.
func Caliber(d core.CartridgeDimensions) float64 {
	if d.BoreDiameterMM != nil {
		return *d.BoreDiameterMM
	}
	if d.NeckDiameterMM != nil {
		return *d.NeckDiameterMM
	}
	return 0
}

func radialGap(chamberDiameter, caseDiameter *float64) (float64, bool) {
	if chamberDiameter == nil || caseDiameter == nil {
		return 0, false
	}
	return math.Max(0, (*chamberDiameter-*caseDiameter)/2), true
}

func orZero(p *float64) float64 {
	if p == nil {
		return 0
	}
	return *p
}

// Compute resolves every clearance for d chambered in rifle. rifle may be nil.
// Values not supplied by the rifle are derived from the cartridge and recorded
// as estimated. No clearance is negative.
func Compute(d core.CartridgeDimensions, rifle *core.RifleChamber) (core.ChamberClearances, error) {
	if err := validate.Cartridge(d); err != nil {
		return core.ChamberClearances{EstimatedFields: core.FieldSet{}}, err
	}
	var rc core.RifleChamber
	if rifle != nil {
		if err := validate.Rifle(*rifle); err != nil {
			return core.ChamberClearances{EstimatedFields: core.FieldSet{}}, err
		}
		rc = *rifle
	}

	var tr estimate.Tracker
	var c core.ChamberClearances

	c.HeadspaceGapMM, _ = tr.Resolve(core.FieldHeadspaceGap, rc.HeadspaceMM, func() (float64, bool) {
		return DefaultHeadspaceMM, true
	})

	if gap, ok := radialGap(rc.ChamberNeckDiameterMM, d.NeckDiameterMM); ok {
		c.NeckClearanceMM = gap
	} else {
		c.NeckClearanceMM = orZero(d.NeckDiameterMM) * neckClearanceRatio / 2
		tr.Mark(core.FieldNeckClearance)
	}

	if gap, ok := radialGap(rc.ChamberBodyDiameterMM, d.BaseDiameterMM); ok {
		c.BodyClearanceMM = gap
	} else {
		c.BodyClearanceMM = orZero(d.BaseDiameterMM) * bodyClearanceRatio / 2
		tr.Mark(core.FieldBodyClearance)
	}

	c.FreeboreMM, _ = tr.Resolve(core.FieldFreebore, rc.FreeboreMM, func() (float64, bool) {
		return Caliber(d) * freeboreToCaliberRatio, true
	})

	c.ThroatAngleDeg, _ = tr.Resolve(core.FieldThroatAngle, rc.ThroatAngleDeg, func() (float64, bool) {
		return DefaultThroatAngleDeg, true
	})

	c.RiflingEngagementMM, _ = tr.Resolve(core.FieldRiflingEngagement, rc.RiflingEngagementMM, func() (float64, bool) {
		return RiflingHeight(d) / math.Tan(c.ThroatAngleDeg*math.Pi/180), true
	})

	c.HeadspaceGapMM = math.Max(0, c.HeadspaceGapMM)
	c.FreeboreMM = math.Max(0, c.FreeboreMM)
	c.RiflingEngagementMM = math.Max(0, c.RiflingEngagementMM)
	c.EstimatedFields = tr.Fields()
	return c, nil
}

// RiflingHeight returns the land height (groove − bore)/2, or the default
// when either diameter is unknown or they are inverted.
func RiflingHeight(d core.CartridgeDimensions) float64 {
	if d.GrooveDiameterMM != nil && d.BoreDiameterMM != nil && *d.GrooveDiameterMM > *d.BoreDiameterMM {
		return (*d.GrooveDiameterMM - *d.BoreDiameterMM) / 2
	}
	return DefaultRiflingHeightMM
}

// Outline inflates a cartridge profile by the clearances and extends it with
// the throat. Points at or beyond neckStartX get the neck clearance, the rest
// the body clearance; everything ahead of the bolt face is pushed forward by
// the headspace gap. The freebore runs at groove radius and the leade cone
// closes to bore radius over the rifling engagement length. A bore of 0 omits
// the throat.
func Outline(profile []core.ProfilePoint, c core.ChamberClearances, neckStartX, bore, groove float64) ([]core.ProfilePoint, string) {
	if len(profile) < 2 {
		return nil, ""
	}
	points := make([]core.ProfilePoint, 0, len(profile)+3)
	for i, p := range profile {
		gap := c.BodyClearanceMM
		if p.X >= neckStartX {
			gap = c.NeckClearanceMM
		}
		x := p.X
		if i > 0 {
			x += c.HeadspaceGapMM
		}
		points = append(points, core.ProfilePoint{X: x, Y: p.Y + gap})
	}

	if bore > 0 {
		mouth := points[len(points)-1].X
		boreR := bore / 2
		grooveR := math.Max(groove, bore) / 2
		freeboreEnd := mouth + c.FreeboreMM
		points = append(points,
			core.ProfilePoint{X: mouth, Y: grooveR},
			core.ProfilePoint{X: freeboreEnd, Y: grooveR},
			core.ProfilePoint{X: freeboreEnd + c.RiflingEngagementMM, Y: boreR},
		)
	}
	return points, geo.MirroredPath(points)
}

// Result bundles the clearances with the drawable chamber outline.
type Result struct {
	Clearances    core.ChamberClearances `json:"clearances"`
	ProfilePoints []core.ProfilePoint    `json:"profile_points"`
	SVGPath       string                 `json:"svg_path"`
}

// Build computes the clearances for d in rifle and, when the cartridge profile
// is renderable, the chamber outline around it.
func Build(d core.CartridgeDimensions, rifle *core.RifleChamber) (Result, error) {
	c, err := Compute(d, rifle)
	if err != nil {
		return Result{Clearances: c}, err
	}
	res := Result{Clearances: c}

	r, ok, err := cartridge.Resolve(d)
	if err != nil {
		return res, err
	}
	if !ok || r.Completeness == core.Insufficient {
		return res, nil
	}
	neckStart := r.ShoulderEnd
	if r.StraightWall {
		neckStart = r.CaseLength
	}
	bore := Caliber(d)
	res.ProfilePoints, res.SVGPath = Outline(r.Points(), c, neckStart, bore, bore+2*RiflingHeight(d))
	return res, nil
}
