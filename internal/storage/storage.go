package storage

import (
	"errors"
	"fmt"

	"github.com/reloadkit/cartgeo/internal/records"
	"github.com/reloadkit/cartgeo/pkg/core"
)

// ErrNotFound is returned when a record or snapshot does not exist.
var ErrNotFound = errors.New("not found")

// Backend is the interface all catalog storage implementations must satisfy.
type Backend interface {
	// Lifecycle
	Init() error
	Close() error

	// Records. Save assigns the ID; a record whose name already exists
	// replaces the stored one and keeps its ID.
	SaveCartridge(r *core.CartridgeRecord) error
	SaveBullet(r *core.BulletRecord) error
	SaveRifle(r *core.RifleRecord) error

	Cartridge(id uint) (core.CartridgeRecord, error)
	Bullet(id uint) (core.BulletRecord, error)
	Rifle(id uint) (core.RifleRecord, error)

	// Listings are ordered by ID.
	Cartridges() ([]core.CartridgeRecord, error)
	Bullets() ([]core.BulletRecord, error)
	Rifles() ([]core.RifleRecord, error)

	// Render output
	RecordSnapshot(s *core.ProfileSnapshot) error
	Snapshots(runID string) ([]core.ProfileSnapshot, error)
}

// Exporter is an optional interface for backends that write their snapshots
// to a file on Close.
type Exporter interface {
	ExportedFilePath() string
}

// Dumper is an optional interface for backends that can copy their whole
// database to a file.
type Dumper interface {
	Dump(path string) error
}

// Seed saves every record of c into b and returns the number saved.
func Seed(b Backend, c records.Catalog) (int, error) {
	n := 0
	for i := range c.Cartridges {
		if err := b.SaveCartridge(&c.Cartridges[i]); err != nil {
			return n, fmt.Errorf("cartridge %q: %w", c.Cartridges[i].Name, err)
		}
		n++
	}
	for i := range c.Bullets {
		if err := b.SaveBullet(&c.Bullets[i]); err != nil {
			return n, fmt.Errorf("bullet %q: %w", c.Bullets[i].Name, err)
		}
		n++
	}
	for i := range c.Rifles {
		if err := b.SaveRifle(&c.Rifles[i]); err != nil {
			return n, fmt.Errorf("rifle %q: %w", c.Rifles[i].Name, err)
		}
		n++
	}
	return n, nil
}
