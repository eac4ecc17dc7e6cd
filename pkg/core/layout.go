// pkg/core/layout.go
package core

import (
	"fmt"
	"strings"
)

// Side is the drawing edge a dimension annotation is attached to.
type Side int

const (
	Top Side = iota
	Bottom
	Left
	Right
)

func (s Side) String() string {
	switch s {
	case Top:
		return "top"
	case Bottom:
		return "bottom"
	case Left:
		return "left"
	case Right:
		return "right"
	default:
		return fmt.Sprintf("side(%d)", int(s))
	}
}

// MarshalText implements encoding.TextMarshaler.
func (s Side) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (s *Side) UnmarshalText(b []byte) error {
	switch strings.ToLower(string(b)) {
	case "top":
		*s = Top
	case "bottom":
		*s = Bottom
	case "left":
		*s = Left
	case "right":
		*s = Right
	default:
		return fmt.Errorf("unknown side %q", string(b))
	}
	return nil
}

// DimensionAnnotation is a measured span on a drawing. OffsetTier is 0 until
// the annotation has been through dimension layout, then 1 or more.
type DimensionAnnotation struct {
	X1          float64 `json:"x1"`
	Y1          float64 `json:"y1"`
	X2          float64 `json:"x2"`
	Y2          float64 `json:"y2"`
	ValueMM     float64 `json:"value_mm"`
	Label       string  `json:"label"`
	Side        Side    `json:"side"`
	OffsetTier  int     `json:"offset_tier"`
	IsEstimated bool    `json:"is_estimated"`
}

// ChamberClearances are the gaps separating a chambered cartridge from the chamber walls.
type ChamberClearances struct {
	HeadspaceGapMM      float64  `json:"headspace_gap_mm"`
	NeckClearanceMM     float64  `json:"neck_clearance_mm"`
	BodyClearanceMM     float64  `json:"body_clearance_mm"`
	FreeboreMM          float64  `json:"freebore_mm"`
	ThroatAngleDeg      float64  `json:"throat_angle_deg"`
	RiflingEngagementMM float64  `json:"rifling_engagement_mm"`
	EstimatedFields     FieldSet `json:"estimated_fields"`
}

// StressZone classifies peak chamber pressure against the SAAMI maximum.
type StressZone int

const (
	ZoneSafe StressZone = iota
	ZoneCaution
	ZoneDanger
	// ZoneUnknown is used when no maximum pressure is available.
	ZoneUnknown
)

func (z StressZone) String() string {
	switch z {
	case ZoneSafe:
		return "safe"
	case ZoneCaution:
		return "caution"
	case ZoneDanger:
		return "danger"
	case ZoneUnknown:
		return "unknown"
	default:
		return fmt.Sprintf("zone(%d)", int(z))
	}
}

// MarshalText implements encoding.TextMarshaler.
func (z StressZone) MarshalText() ([]byte, error) {
	return []byte(z.String()), nil
}

// AssemblyLayout places barrel window, cartridge and bullet on one axial line.
type AssemblyLayout struct {
	BarrelStartX     float64    `json:"barrel_start_x"`
	BarrelEndX       float64    `json:"barrel_end_x"`
	VisibleLengthMM  float64    `json:"visible_length_mm"`
	FullLengthMM     float64    `json:"full_length_mm"`
	CartridgeOffsetX float64    `json:"cartridge_offset_x"`
	CaseLengthMM     float64    `json:"case_length_mm"`
	BulletBaseX      float64    `json:"bullet_base_x"`
	BulletTipX       float64    `json:"bullet_tip_x"`
	BoreRadiusMM     float64    `json:"bore_radius_mm"`
	GrooveRadiusMM   float64    `json:"groove_radius_mm"`
	OuterRadiusMM    float64    `json:"outer_radius_mm"`
	Nodes            []float64  `json:"nodes"`
	PressureRatio    float64    `json:"pressure_ratio"`
	StressZone       StressZone `json:"stress_zone"`
}
