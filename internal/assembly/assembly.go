// Package assembly places the barrel window, cartridge and bullet on one axial
// line and maps barrel-harmonic and pressure results onto it.
package assembly

import (
	"errors"
	"fmt"
	"math"

	"github.com/reloadkit/cartgeo/pkg/core"
)

var (
	// ErrInvalidThresholds is returned when stress thresholds are not
	// positive and strictly increasing.
	ErrInvalidThresholds = errors.New("invalid stress thresholds")
	// ErrInvalidParams is returned for layouts that cannot be placed.
	ErrInvalidParams = errors.New("invalid assembly parameters")
)

// Thresholds split pressure ratios into stress zones.
type Thresholds struct {
	CautionRatio float64 `json:"caution_ratio" mapstructure:"cautionRatio"`
	DangerRatio  float64 `json:"danger_ratio" mapstructure:"dangerRatio"`
}

// DefaultThresholds flags loads above 85% of SAAMI maximum as caution and
// anything at or over the maximum as danger.
var DefaultThresholds = Thresholds{CautionRatio: 0.85, DangerRatio: 1.0}

// Validate checks that both ratios are positive and caution is below danger.
func (t Thresholds) Validate() error {
	if !(t.CautionRatio > 0) || !(t.DangerRatio > 0) {
		return fmt.Errorf("%w: ratios must be positive (caution=%g danger=%g)", ErrInvalidThresholds, t.CautionRatio, t.DangerRatio)
	}
	if t.CautionRatio >= t.DangerRatio {
		return fmt.Errorf("%w: caution %g must be below danger %g", ErrInvalidThresholds, t.CautionRatio, t.DangerRatio)
	}
	return nil
}

// Zone classifies a peak/maximum pressure ratio.
func (t Thresholds) Zone(ratio float64) core.StressZone {
	switch {
	case ratio < t.CautionRatio:
		return core.ZoneSafe
	case ratio < t.DangerRatio:
		return core.ZoneCaution
	default:
		return core.ZoneDanger
	}
}

// Params are the inputs of Build. Lengths are in mm and axial positions are
// measured from the bolt face (the case head).
type Params struct {
	CaseLengthMM   float64
	BaseDiameterMM float64

	BulletLengthMM float64
	SeatingDepthMM float64 // how far the bullet base sits behind the case mouth

	BarrelLengthMM   float64 // bolt face to muzzle
	VisibleLengthMM  float64 // drawn window; 0 shows the whole barrel
	BoreDiameterMM   float64
	GrooveDiameterMM float64
	OuterDiameterMM  float64 // 0 derives a plausible profile

	NodesMM      []float64 // OBT node positions along the full barrel
	PeakPressure float64
	MaxPressure  float64 // SAAMI maximum, same unit as PeakPressure
}

// Build lays out p. Nodes are rescaled from the full barrel into the visible
// window and dropped when they fall outside it.
func Build(p Params, th Thresholds) (core.AssemblyLayout, error) {
	if err := th.Validate(); err != nil {
		return core.AssemblyLayout{}, err
	}
	if !(p.CaseLengthMM > 0) {
		return core.AssemblyLayout{}, fmt.Errorf("%w: case length %g", ErrInvalidParams, p.CaseLengthMM)
	}
	if p.BarrelLengthMM <= p.CaseLengthMM {
		return core.AssemblyLayout{}, fmt.Errorf("%w: barrel length %g does not exceed case length %g",
			ErrInvalidParams, p.BarrelLengthMM, p.CaseLengthMM)
	}
	if p.VisibleLengthMM < 0 || p.SeatingDepthMM < 0 || p.BulletLengthMM < 0 {
		return core.AssemblyLayout{}, fmt.Errorf("%w: negative length", ErrInvalidParams)
	}

	full := p.BarrelLengthMM - p.CaseLengthMM
	visible := p.VisibleLengthMM
	if visible == 0 || visible > full {
		visible = full
	}

	l := core.AssemblyLayout{
		CartridgeOffsetX: 0,
		CaseLengthMM:     p.CaseLengthMM,
		BarrelStartX:     p.CaseLengthMM,
		BarrelEndX:       p.CaseLengthMM + visible,
		VisibleLengthMM:  visible,
		FullLengthMM:     full,
		BulletBaseX:      p.CaseLengthMM - math.Min(p.SeatingDepthMM, p.BulletLengthMM),
		BoreRadiusMM:     p.BoreDiameterMM / 2,
		GrooveRadiusMM:   p.GrooveDiameterMM / 2,
		Nodes:            ScaleNodes(p.NodesMM, p.CaseLengthMM, visible, full),
	}
	l.BulletTipX = l.BulletBaseX + p.BulletLengthMM
	l.OuterRadiusMM = p.OuterDiameterMM / 2
	if l.OuterRadiusMM == 0 {
		l.OuterRadiusMM = math.Max(p.BaseDiameterMM/2*1.6, l.GrooveRadiusMM*3)
	}
	l.StressZone = core.ZoneUnknown
	if p.MaxPressure > 0 {
		l.PressureRatio = p.PeakPressure / p.MaxPressure
		l.StressZone = th.Zone(l.PressureRatio)
	}
	return l, nil
}

const nodeEpsilon = 1e-9

// ScaleNodes maps node positions along the full barrel into the visible window
// that starts at caseLength. The result is never nil.
func ScaleNodes(nodes []float64, caseLength, visible, full float64) []float64 {
	out := []float64{}
	if full <= 0 {
		return out
	}
	start, end := caseLength, caseLength+visible
	scale := visible / full
	for _, n := range nodes {
		x := start + (n-caseLength)*scale
		if x < start-nodeEpsilon || x > end+nodeEpsilon {
			continue
		}
		out = append(out, x)
	}
	return out
}
