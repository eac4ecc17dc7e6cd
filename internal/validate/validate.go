// Package validate checks dimension records before they reach the estimators.
//
// Policy: a missing value is never an error (it is estimated or graded). A
// present value must be finite and non-negative, fields that act as divisors
// or lengths must be strictly positive, and angles must lie in (0°, 90°).
// Any violation is reported as an *InvalidDimensionError.
package validate

import (
	"errors"
	"fmt"
	"math"

	"github.com/reloadkit/cartgeo/pkg/core"
)

// ErrInvalidDimension is matched by every InvalidDimensionError via errors.Is.
var ErrInvalidDimension = errors.New("invalid dimension")

// InvalidDimensionError describes the first offending field of a record.
type InvalidDimensionError struct {
	Field  string
	Value  float64
	Reason string
}

func (e *InvalidDimensionError) Error() string {
	return fmt.Sprintf("invalid dimension %s=%g: %s", e.Field, e.Value, e.Reason)
}

// Is lets errors.Is(err, ErrInvalidDimension) succeed.
func (e *InvalidDimensionError) Is(target error) bool {
	return target == ErrInvalidDimension
}

type kind int

const (
	positive kind = iota // > 0
	nonNegative          // >= 0
	angle                // (0, 90)
)

type check struct {
	field string
	value *float64
	kind  kind
}

func run(checks []check) error {
	for _, c := range checks {
		if c.value == nil {
			continue
		}
		v := *c.value
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return &InvalidDimensionError{Field: c.field, Value: v, Reason: "not a finite number"}
		}
		if v < 0 {
			return &InvalidDimensionError{Field: c.field, Value: v, Reason: "negative"}
		}
		switch c.kind {
		case positive:
			if v == 0 {
				return &InvalidDimensionError{Field: c.field, Value: v, Reason: "must be greater than zero"}
			}
		case angle:
			if v == 0 || v >= 90 {
				return &InvalidDimensionError{Field: c.field, Value: v, Reason: "angle must be between 0 and 90 degrees"}
			}
		}
	}
	return nil
}

// Cartridge validates a cartridge record.
func Cartridge(d core.CartridgeDimensions) error {
	return run([]check{
		{core.FieldCaseLength, d.CaseLengthMM, positive},
		{core.FieldBaseDiameter, d.BaseDiameterMM, positive},
		{core.FieldNeckDiameter, d.NeckDiameterMM, positive},
		{core.FieldBoreDiameter, d.BoreDiameterMM, positive},
		{core.FieldGrooveDiameter, d.GrooveDiameterMM, positive},
		{core.FieldRimDiameter, d.RimDiameterMM, positive},
		{core.FieldShoulderDiameter, d.ShoulderDiameterMM, positive},
		{core.FieldShoulderAngle, d.ShoulderAngleDeg, angle},
		{core.FieldNeckLength, d.NeckLengthMM, positive},
		{core.FieldBodyLength, d.BodyLengthMM, positive},
		{core.FieldRimThickness, d.RimThicknessMM, positive},
	})
}

// Bullet validates a bullet record. Boat tail and meplat may be zero.
func Bullet(d core.BulletDimensions) error {
	return run([]check{
		{core.FieldDiameter, d.DiameterMM, positive},
		{core.FieldLength, d.LengthMM, positive},
		{core.FieldWeight, d.WeightGrains, positive},
		{core.FieldBearingSurface, d.BearingSurfaceMM, positive},
		{core.FieldBoatTailLength, d.BoatTailLengthMM, nonNegative},
		{core.FieldMeplatDiameter, d.MeplatDiameterMM, nonNegative},
	})
}

// Rifle validates a rifle chamber record. Freebore and headspace may be zero.
func Rifle(c core.RifleChamber) error {
	return run([]check{
		{core.FieldFreebore, c.FreeboreMM, nonNegative},
		{core.FieldThroatAngle, c.ThroatAngleDeg, angle},
		{core.FieldHeadspaceGap, c.HeadspaceMM, nonNegative},
		{"chamber_neck_diameter_mm", c.ChamberNeckDiameterMM, positive},
		{"chamber_body_diameter_mm", c.ChamberBodyDiameterMM, positive},
		{core.FieldRiflingEngagement, c.RiflingEngagementMM, nonNegative},
		{"barrel_length_mm", c.BarrelLengthMM, positive},
		{"barrel_outer_diameter_mm", c.BarrelOuterDiameterMM, positive},
	})
}
