// Package estimate guesses missing physical dimensions from the ones present,
// using reloading-engineering rules of thumb. Every estimator is pure and
// returns ok=false when no reasonable guess exists.
package estimate

import (
	"math"

	"github.com/reloadkit/cartgeo/internal/classify"
	"github.com/reloadkit/cartgeo/pkg/core"
)

const (
	// GrainsToKg converts grains to kilograms.
	GrainsToKg = 0.00006479891

	// StraightWallThresholdMM is the shoulder/neck diameter difference below
	// which a case has no meaningful shoulder.
	StraightWallThresholdMM = 0.5

	defaultShoulderAngleDeg = 25.0
	shortCaseShoulderDeg    = 30.0
	shortCaseLengthMM       = 50.0
	neckToDiameterRatio     = 0.8
	headAndShoulderMM       = 6.0
	minBodyFraction         = 0.5
	defaultRimThicknessMM   = 1.3
	shoulderToBaseRatio     = 0.97
	bulletLengthFudge       = 1.20
	matchBearingRatio       = 0.55
	generalBearingRatio     = 0.40
	boatTailRatio           = 0.15
	otherBaseTailRatio      = 0.10
)

func value(p *float64) (float64, bool) {
	if p == nil {
		return 0, false
	}
	return *p, true
}

// ShoulderAngle estimates the shoulder angle in degrees. Short, fat cases get
// a steeper shoulder. There is no estimate when the shoulder and neck diameters
// are too close for a shoulder to exist.
func ShoulderAngle(d core.CartridgeDimensions) (float64, bool) {
	shoulder, hasShoulder := value(d.ShoulderDiameterMM)
	neck, hasNeck := value(d.NeckDiameterMM)
	if hasShoulder && hasNeck && shoulder-neck < StraightWallThresholdMM {
		return 0, false
	}
	if caseLength, ok := value(d.CaseLengthMM); ok && caseLength < shortCaseLengthMM {
		return shortCaseShoulderDeg, true
	}
	return defaultShoulderAngleDeg, true
}

// NeckLength estimates neck length with the one-caliber rule, falling back to
// 0.8 × neck diameter when the bore is unknown.
func NeckLength(d core.CartridgeDimensions) (float64, bool) {
	if bore, ok := value(d.BoreDiameterMM); ok {
		return bore, true
	}
	if neck, ok := value(d.NeckDiameterMM); ok {
		return neck * neckToDiameterRatio, true
	}
	return 0, false
}

// BodyLength estimates the head-to-shoulder length given the resolved neck
// length. The result never drops below half the case length.
func BodyLength(d core.CartridgeDimensions, neckLength float64) (float64, bool) {
	caseLength, ok := value(d.CaseLengthMM)
	if !ok {
		return 0, false
	}
	return math.Max(caseLength-neckLength-headAndShoulderMM, caseLength*minBodyFraction), true
}

// RimThickness returns the typical rim thickness.
func RimThickness(core.CartridgeDimensions) (float64, bool) {
	return defaultRimThicknessMM, true
}

// ShoulderDiameter estimates the shoulder diameter of a bottleneck case as a
// fraction of the base diameter, kept clear of the neck.
func ShoulderDiameter(d core.CartridgeDimensions) (float64, bool) {
	base, ok := value(d.BaseDiameterMM)
	if !ok {
		return 0, false
	}
	est := base * shoulderToBaseRatio
	if neck, ok := value(d.NeckDiameterMM); ok {
		est = math.Max(est, math.Min(neck+StraightWallThresholdMM, base))
	}
	return est, true
}

// BulletLength estimates overall bullet length from mass, diameter and
// material density, treating the bullet as a cylinder and adding 20% for the
// nose taper.
func BulletLength(d core.BulletDimensions) (float64, bool) {
	diameter, ok := value(d.DiameterMM)
	if !ok || diameter <= 0 {
		return 0, false
	}
	weight, ok := value(d.WeightGrains)
	if !ok {
		return 0, false
	}
	weightKg := weight * GrainsToKg
	radiusM := (diameter / 2) / 1000
	area := math.Pi * radiusM * radiusM
	density := classify.MaterialDensity(d.Material)
	return (weightKg / (density * area)) * bulletLengthFudge * 1000, true
}

// BearingSurface estimates the cylindrical bearing length. Match designs carry
// a longer bearing surface.
func BearingSurface(d core.BulletDimensions, totalLength float64) (float64, bool) {
	if totalLength <= 0 {
		return 0, false
	}
	if classify.IsMatchBullet(d.BulletType) {
		return totalLength * matchBearingRatio, true
	}
	return totalLength * generalBearingRatio, true
}

// BoatTailLength estimates the boat-tail length from base_type. A blank
// base_type gives no estimate.
func BoatTailLength(d core.BulletDimensions, totalLength float64) (float64, bool) {
	switch classify.BaseStyle(d.BaseType) {
	case classify.BaseFlat:
		return 0, true
	case classify.BaseBoatTail:
		return totalLength * boatTailRatio, true
	case classify.BaseOther:
		return totalLength * otherBaseTailRatio, true
	default:
		return 0, false
	}
}
