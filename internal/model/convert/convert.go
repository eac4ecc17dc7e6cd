// Package convert maps catalog records between the core types and the GORM models.
package convert

import (
	"encoding/json"
	"fmt"

	"github.com/reloadkit/cartgeo/internal/geo"
	"github.com/reloadkit/cartgeo/internal/model"
	"github.com/reloadkit/cartgeo/pkg/core"
)

func clone(p *float64) *float64 {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}

// CartridgeToModel converts a core.CartridgeRecord to a GORM Cartridge.
func CartridgeToModel(r core.CartridgeRecord) model.Cartridge {
	d := r.Dimensions
	return model.Cartridge{
		ID:                 r.ID,
		Name:               r.Name,
		CaseLengthMM:       clone(d.CaseLengthMM),
		BaseDiameterMM:     clone(d.BaseDiameterMM),
		NeckDiameterMM:     clone(d.NeckDiameterMM),
		BoreDiameterMM:     clone(d.BoreDiameterMM),
		GrooveDiameterMM:   clone(d.GrooveDiameterMM),
		RimDiameterMM:      clone(d.RimDiameterMM),
		ShoulderDiameterMM: clone(d.ShoulderDiameterMM),
		ShoulderAngleDeg:   clone(d.ShoulderAngleDeg),
		NeckLengthMM:       clone(d.NeckLengthMM),
		BodyLengthMM:       clone(d.BodyLengthMM),
		RimThicknessMM:     clone(d.RimThicknessMM),
		CaseType:           d.CaseType,
	}
}

// CartridgeToCore converts a GORM Cartridge to a core.CartridgeRecord.
func CartridgeToCore(m model.Cartridge) core.CartridgeRecord {
	return core.CartridgeRecord{
		ID:   m.ID,
		Name: m.Name,
		Dimensions: core.CartridgeDimensions{
			CaseLengthMM:       clone(m.CaseLengthMM),
			BaseDiameterMM:     clone(m.BaseDiameterMM),
			NeckDiameterMM:     clone(m.NeckDiameterMM),
			BoreDiameterMM:     clone(m.BoreDiameterMM),
			GrooveDiameterMM:   clone(m.GrooveDiameterMM),
			RimDiameterMM:      clone(m.RimDiameterMM),
			ShoulderDiameterMM: clone(m.ShoulderDiameterMM),
			ShoulderAngleDeg:   clone(m.ShoulderAngleDeg),
			NeckLengthMM:       clone(m.NeckLengthMM),
			BodyLengthMM:       clone(m.BodyLengthMM),
			RimThicknessMM:     clone(m.RimThicknessMM),
			CaseType:           m.CaseType,
		},
	}
}

// BulletToModel converts a core.BulletRecord to a GORM Bullet.
func BulletToModel(r core.BulletRecord) model.Bullet {
	d := r.Dimensions
	return model.Bullet{
		ID:               r.ID,
		Name:             r.Name,
		DiameterMM:       clone(d.DiameterMM),
		LengthMM:         clone(d.LengthMM),
		WeightGrains:     clone(d.WeightGrains),
		BearingSurfaceMM: clone(d.BearingSurfaceMM),
		BoatTailLengthMM: clone(d.BoatTailLengthMM),
		MeplatDiameterMM: clone(d.MeplatDiameterMM),
		OgiveType:        d.OgiveType,
		Material:         d.Material,
		BulletType:       d.BulletType,
		BaseType:         d.BaseType,
	}
}

// BulletToCore converts a GORM Bullet to a core.BulletRecord.
func BulletToCore(m model.Bullet) core.BulletRecord {
	return core.BulletRecord{
		ID:   m.ID,
		Name: m.Name,
		Dimensions: core.BulletDimensions{
			DiameterMM:       clone(m.DiameterMM),
			LengthMM:         clone(m.LengthMM),
			WeightGrains:     clone(m.WeightGrains),
			BearingSurfaceMM: clone(m.BearingSurfaceMM),
			BoatTailLengthMM: clone(m.BoatTailLengthMM),
			MeplatDiameterMM: clone(m.MeplatDiameterMM),
			OgiveType:        m.OgiveType,
			Material:         m.Material,
			BulletType:       m.BulletType,
			BaseType:         m.BaseType,
		},
	}
}

// RifleToModel converts a core.RifleRecord to a GORM Rifle.
func RifleToModel(r core.RifleRecord) model.Rifle {
	c := r.Chamber
	return model.Rifle{
		ID:                    r.ID,
		Name:                  r.Name,
		FreeboreMM:            clone(c.FreeboreMM),
		ThroatAngleDeg:        clone(c.ThroatAngleDeg),
		HeadspaceMM:           clone(c.HeadspaceMM),
		ChamberNeckDiameterMM: clone(c.ChamberNeckDiameterMM),
		ChamberBodyDiameterMM: clone(c.ChamberBodyDiameterMM),
		RiflingEngagementMM:   clone(c.RiflingEngagementMM),
		BarrelLengthMM:        clone(c.BarrelLengthMM),
		BarrelOuterDiameterMM: clone(c.BarrelOuterDiameterMM),
	}
}

// RifleToCore converts a GORM Rifle to a core.RifleRecord.
func RifleToCore(m model.Rifle) core.RifleRecord {
	return core.RifleRecord{
		ID:   m.ID,
		Name: m.Name,
		Chamber: core.RifleChamber{
			FreeboreMM:            clone(m.FreeboreMM),
			ThroatAngleDeg:        clone(m.ThroatAngleDeg),
			HeadspaceMM:           clone(m.HeadspaceMM),
			ChamberNeckDiameterMM: clone(m.ChamberNeckDiameterMM),
			ChamberBodyDiameterMM: clone(m.ChamberBodyDiameterMM),
			RiflingEngagementMM:   clone(m.RiflingEngagementMM),
			BarrelLengthMM:        clone(m.BarrelLengthMM),
			BarrelOuterDiameterMM: clone(m.BarrelOuterDiameterMM),
		},
	}
}

// SnapshotToModel converts a core.ProfileSnapshot to a GORM ProfileSnapshot.
// The outline polygon and its area are derived from the profile points.
func SnapshotToModel(s core.ProfileSnapshot) (model.ProfileSnapshot, error) {
	points := s.Result.ProfilePoints
	if points == nil {
		points = []core.ProfilePoint{}
	}
	pts, err := json.Marshal(points)
	if err != nil {
		return model.ProfileSnapshot{}, fmt.Errorf("failed to marshal profile points: %w", err)
	}
	estimated := s.Result.EstimatedFields
	if estimated == nil {
		estimated = core.FieldSet{}
	}
	est, err := json.Marshal(estimated)
	if err != nil {
		return model.ProfileSnapshot{}, fmt.Errorf("failed to marshal estimated fields: %w", err)
	}

	outline, err := geo.OutlinePolygon(s.Result.ProfilePoints)
	if err != nil {
		return model.ProfileSnapshot{}, err
	}
	return model.ProfileSnapshot{
		ID:           s.ID,
		CreatedAt:    s.CreatedAt,
		RunID:        s.RunID,
		Kind:         s.Kind,
		RecordID:     s.RecordID,
		Name:         s.Name,
		Completeness: s.Result.Completeness.String(),
		SVGPath:      s.Result.SVGPath,
		Points:       pts,
		Estimated:    est,
		AreaMM2:      outline.Area(),
		Outline:      outline.AsGeometry(),
	}, nil
}

// SnapshotToCore converts a GORM ProfileSnapshot to a core.ProfileSnapshot.
func SnapshotToCore(m model.ProfileSnapshot) (core.ProfileSnapshot, error) {
	s := core.ProfileSnapshot{
		ID:        m.ID,
		RunID:     m.RunID,
		Kind:      m.Kind,
		RecordID:  m.RecordID,
		Name:      m.Name,
		CreatedAt: m.CreatedAt,
	}
	if err := s.Result.Completeness.UnmarshalText([]byte(m.Completeness)); err != nil {
		return s, err
	}
	s.Result.SVGPath = m.SVGPath
	if len(m.Points) > 0 {
		if err := json.Unmarshal(m.Points, &s.Result.ProfilePoints); err != nil {
			return s, fmt.Errorf("failed to unmarshal profile points: %w", err)
		}
	}
	if len(s.Result.ProfilePoints) == 0 {
		s.Result.ProfilePoints = nil
	}
	s.Result.EstimatedFields = core.FieldSet{}
	if len(m.Estimated) > 0 {
		if err := json.Unmarshal(m.Estimated, &s.Result.EstimatedFields); err != nil {
			return s, fmt.Errorf("failed to unmarshal estimated fields: %w", err)
		}
	}
	return s, nil
}
