package model

import (
	"time"

	geom "github.com/peterstace/simplefeatures/geom"
	"gorm.io/datatypes"
)

// DatabaseModels lists every table of the catalog schema.
var DatabaseModels = []interface{}{
	&Cartridge{},
	&Bullet{},
	&Rifle{},
	&ProfileSnapshot{},
}

////////////////////////
// CATALOG RECORDS
////////////////////////

// Cartridge is a stored case record. Nullable columns are unknown values.
type Cartridge struct {
	ID                 uint      `json:"id" gorm:"primarykey;autoIncrement"`
	CreatedAt          time.Time `json:"-"`
	UpdatedAt          time.Time `json:"-"`
	Name               string    `json:"name" gorm:"size:127;uniqueIndex"`
	CaseLengthMM       *float64  `json:"caseLengthMm"`
	BaseDiameterMM     *float64  `json:"baseDiameterMm"`
	NeckDiameterMM     *float64  `json:"neckDiameterMm"`
	BoreDiameterMM     *float64  `json:"boreDiameterMm"`
	GrooveDiameterMM   *float64  `json:"grooveDiameterMm"`
	RimDiameterMM      *float64  `json:"rimDiameterMm"`
	ShoulderDiameterMM *float64  `json:"shoulderDiameterMm"`
	ShoulderAngleDeg   *float64  `json:"shoulderAngleDeg"`
	NeckLengthMM       *float64  `json:"neckLengthMm"`
	BodyLengthMM       *float64  `json:"bodyLengthMm"`
	RimThicknessMM     *float64  `json:"rimThicknessMm"`
	CaseType           string    `json:"caseType" gorm:"size:64"`
}

func (*Cartridge) TableName() string {
	return "cartridges"
}

// Bullet is a stored projectile record.
type Bullet struct {
	ID               uint      `json:"id" gorm:"primarykey;autoIncrement"`
	CreatedAt        time.Time `json:"-"`
	UpdatedAt        time.Time `json:"-"`
	Name             string    `json:"name" gorm:"size:127;uniqueIndex"`
	DiameterMM       *float64  `json:"diameterMm"`
	LengthMM         *float64  `json:"lengthMm"`
	WeightGrains     *float64  `json:"weightGrains"`
	BearingSurfaceMM *float64  `json:"bearingSurfaceMm"`
	BoatTailLengthMM *float64  `json:"boatTailLengthMm"`
	MeplatDiameterMM *float64  `json:"meplatDiameterMm"`
	OgiveType        string    `json:"ogiveType" gorm:"size:64"`
	Material         string    `json:"material" gorm:"size:64"`
	BulletType       string    `json:"bulletType" gorm:"size:64"`
	BaseType         string    `json:"baseType" gorm:"size:64"`
}

func (*Bullet) TableName() string {
	return "bullets"
}

// Rifle holds the chamber and barrel figures of a rifle.
type Rifle struct {
	ID                    uint      `json:"id" gorm:"primarykey;autoIncrement"`
	CreatedAt             time.Time `json:"-"`
	UpdatedAt             time.Time `json:"-"`
	Name                  string    `json:"name" gorm:"size:127;uniqueIndex"`
	FreeboreMM            *float64  `json:"freeboreMm"`
	ThroatAngleDeg        *float64  `json:"throatAngleDeg"`
	HeadspaceMM           *float64  `json:"headspaceMm"`
	ChamberNeckDiameterMM *float64  `json:"chamberNeckDiameterMm"`
	ChamberBodyDiameterMM *float64  `json:"chamberBodyDiameterMm"`
	RiflingEngagementMM   *float64  `json:"riflingEngagementMm"`
	BarrelLengthMM        *float64  `json:"barrelLengthMm"`
	BarrelOuterDiameterMM *float64  `json:"barrelOuterDiameterMm"`
}

func (*Rifle) TableName() string {
	return "rifles"
}

////////////////////////
// RENDER OUTPUT
////////////////////////

// ProfileSnapshot is a generated profile kept by a catalog run. Outline is
// the mirrored part outline as a WKB polygon; Points and Estimated are JSON
// arrays.
type ProfileSnapshot struct {
	ID           uint           `json:"id" gorm:"primarykey;autoIncrement"`
	CreatedAt    time.Time      `json:"createdAt" gorm:"index"`
	RunID        string         `json:"runId" gorm:"size:36;index:idx_snapshot_run"`
	Kind         string         `json:"kind" gorm:"size:16;index:idx_snapshot_run"`
	RecordID     uint           `json:"recordId" gorm:"index:idx_snapshot_run"`
	Name         string         `json:"name" gorm:"size:127"`
	Completeness string         `json:"completeness" gorm:"size:16"`
	SVGPath      string         `json:"svgPath"`
	Points       datatypes.JSON `json:"points"`
	Estimated    datatypes.JSON `json:"estimated"`
	AreaMM2      float64        `json:"areaMm2"`
	Outline      geom.Geometry  `json:"-"`
}

func (*ProfileSnapshot) TableName() string {
	return "profile_snapshots"
}
