package core

import "time"

// CartridgeRecord is a named cartridge as held by the catalog store.
type CartridgeRecord struct {
	ID         uint                `json:"id" yaml:"id"`
	Name       string              `json:"name" yaml:"name"`
	Dimensions CartridgeDimensions `json:"dimensions" yaml:"dimensions"`
}

// BulletRecord is a named bullet as held by the catalog store.
type BulletRecord struct {
	ID         uint             `json:"id" yaml:"id"`
	Name       string           `json:"name" yaml:"name"`
	Dimensions BulletDimensions `json:"dimensions" yaml:"dimensions"`
}

// RifleRecord is a named rifle with its chamber figures.
type RifleRecord struct {
	ID      uint         `json:"id" yaml:"id"`
	Name    string       `json:"name" yaml:"name"`
	Chamber RifleChamber `json:"chamber" yaml:"chamber"`
}

// Snapshot kinds.
const (
	KindCartridge = "cartridge"
	KindBullet    = "bullet"
)

// ProfileSnapshot is a generated profile persisted by a catalog run.
type ProfileSnapshot struct {
	ID        uint           `json:"id"`
	RunID     string         `json:"run_id"`
	Kind      string         `json:"kind"`
	RecordID  uint           `json:"record_id"`
	Name      string         `json:"name"`
	Result    GeometryResult `json:"result"`
	CreatedAt time.Time      `json:"created_at"`
}
