// pkg/core/dimensions.go
package core

// Field names recorded in EstimatedFields. They match the column names of the
// dimension records so callers can map an estimate back to its source.
const (
	FieldCaseLength       = "case_length_mm"
	FieldBaseDiameter     = "base_diameter_mm"
	FieldNeckDiameter     = "neck_diameter_mm"
	FieldBoreDiameter     = "bore_diameter_mm"
	FieldGrooveDiameter   = "groove_diameter_mm"
	FieldRimDiameter      = "rim_diameter_mm"
	FieldShoulderDiameter = "shoulder_diameter_mm"
	FieldShoulderAngle    = "shoulder_angle_deg"
	FieldNeckLength       = "neck_length_mm"
	FieldBodyLength       = "body_length_mm"
	FieldRimThickness     = "rim_thickness_mm"

	FieldDiameter       = "diameter_mm"
	FieldLength         = "length_mm"
	FieldWeight         = "weight_grains"
	FieldBearingSurface = "bearing_surface_mm"
	FieldBoatTailLength = "boat_tail_length_mm"
	FieldMeplatDiameter = "meplat_diameter_mm"
	FieldOgiveType      = "ogive_type"

	FieldHeadspaceGap      = "headspace_gap_mm"
	FieldNeckClearance     = "neck_clearance_mm"
	FieldBodyClearance     = "body_clearance_mm"
	FieldFreebore          = "freebore_mm"
	FieldThroatAngle       = "throat_angle_deg"
	FieldRiflingEngagement = "rifling_engagement_mm"
)

// CartridgeDimensions describes a cartridge case as supplied by the catalog.
// Nil fields are unknown. CaseLengthMM, BaseDiameterMM and NeckDiameterMM are
// required; every other field can be estimated.
type CartridgeDimensions struct {
	CaseLengthMM       *float64 `json:"case_length_mm,omitempty" yaml:"case_length_mm,omitempty"`
	BaseDiameterMM     *float64 `json:"base_diameter_mm,omitempty" yaml:"base_diameter_mm,omitempty"`
	NeckDiameterMM     *float64 `json:"neck_diameter_mm,omitempty" yaml:"neck_diameter_mm,omitempty"`
	BoreDiameterMM     *float64 `json:"bore_diameter_mm,omitempty" yaml:"bore_diameter_mm,omitempty"`
	GrooveDiameterMM   *float64 `json:"groove_diameter_mm,omitempty" yaml:"groove_diameter_mm,omitempty"`
	RimDiameterMM      *float64 `json:"rim_diameter_mm,omitempty" yaml:"rim_diameter_mm,omitempty"`
	ShoulderDiameterMM *float64 `json:"shoulder_diameter_mm,omitempty" yaml:"shoulder_diameter_mm,omitempty"`
	ShoulderAngleDeg   *float64 `json:"shoulder_angle_deg,omitempty" yaml:"shoulder_angle_deg,omitempty"`
	NeckLengthMM       *float64 `json:"neck_length_mm,omitempty" yaml:"neck_length_mm,omitempty"`
	BodyLengthMM       *float64 `json:"body_length_mm,omitempty" yaml:"body_length_mm,omitempty"`
	RimThicknessMM     *float64 `json:"rim_thickness_mm,omitempty" yaml:"rim_thickness_mm,omitempty"`
	CaseType           string   `json:"case_type,omitempty" yaml:"case_type,omitempty"`
}

// BulletDimensions describes a projectile. DiameterMM is required.
type BulletDimensions struct {
	DiameterMM       *float64 `json:"diameter_mm,omitempty" yaml:"diameter_mm,omitempty"`
	LengthMM         *float64 `json:"length_mm,omitempty" yaml:"length_mm,omitempty"`
	WeightGrains     *float64 `json:"weight_grains,omitempty" yaml:"weight_grains,omitempty"`
	BearingSurfaceMM *float64 `json:"bearing_surface_mm,omitempty" yaml:"bearing_surface_mm,omitempty"`
	BoatTailLengthMM *float64 `json:"boat_tail_length_mm,omitempty" yaml:"boat_tail_length_mm,omitempty"`
	MeplatDiameterMM *float64 `json:"meplat_diameter_mm,omitempty" yaml:"meplat_diameter_mm,omitempty"`
	OgiveType        string   `json:"ogive_type,omitempty" yaml:"ogive_type,omitempty"`
	Material         string   `json:"material,omitempty" yaml:"material,omitempty"`
	BulletType       string   `json:"bullet_type,omitempty" yaml:"bullet_type,omitempty"`
	BaseType         string   `json:"base_type,omitempty" yaml:"base_type,omitempty"`
}

// RifleChamber holds the chamber and barrel figures of a rifle record.
// All fields are optional.
type RifleChamber struct {
	FreeboreMM            *float64 `json:"freebore_mm,omitempty" yaml:"freebore_mm,omitempty"`
	ThroatAngleDeg        *float64 `json:"throat_angle_deg,omitempty" yaml:"throat_angle_deg,omitempty"`
	HeadspaceMM           *float64 `json:"headspace_mm,omitempty" yaml:"headspace_mm,omitempty"`
	ChamberNeckDiameterMM *float64 `json:"chamber_neck_diameter_mm,omitempty" yaml:"chamber_neck_diameter_mm,omitempty"`
	ChamberBodyDiameterMM *float64 `json:"chamber_body_diameter_mm,omitempty" yaml:"chamber_body_diameter_mm,omitempty"`
	RiflingEngagementMM   *float64 `json:"rifling_engagement_mm,omitempty" yaml:"rifling_engagement_mm,omitempty"`
	BarrelLengthMM        *float64 `json:"barrel_length_mm,omitempty" yaml:"barrel_length_mm,omitempty"`
	BarrelOuterDiameterMM *float64 `json:"barrel_outer_diameter_mm,omitempty" yaml:"barrel_outer_diameter_mm,omitempty"`
}

// Float returns a pointer to v. Handy for building records in code and tests.
func Float(v float64) *float64 {
	return &v
}
