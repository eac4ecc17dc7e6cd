// Package gormstorage keeps the catalog in a SQL database through GORM.
package gormstorage

import (
	"errors"
	"fmt"

	"github.com/reloadkit/cartgeo/internal/config"
	"github.com/reloadkit/cartgeo/internal/database"
	"github.com/reloadkit/cartgeo/internal/model"
	"github.com/reloadkit/cartgeo/internal/model/convert"
	"github.com/reloadkit/cartgeo/internal/storage"
	"github.com/reloadkit/cartgeo/pkg/core"
	"gorm.io/gorm"
)

// Backend stores records and snapshots through a database.Manager.
type Backend struct {
	mgr     *database.Manager
	storage config.StorageConfig
	db      config.DBConfig
}

// New creates a backend. Init connects mgr with the given settings unless
// it is already connected.
func New(mgr *database.Manager, storageCfg config.StorageConfig, dbCfg config.DBConfig) *Backend {
	return &Backend{mgr: mgr, storage: storageCfg, db: dbCfg}
}

// Init connects if needed and migrates the schema.
func (b *Backend) Init() error {
	if b.mgr.DB == nil {
		if err := b.mgr.Connect(b.storage, b.db); err != nil {
			return err
		}
	}
	return b.mgr.Setup()
}

// Close closes the database connection.
func (b *Backend) Close() error {
	return b.mgr.Close()
}

// Dump copies the database to path. Only sqlite connections can be dumped.
func (b *Backend) Dump(path string) error {
	return b.mgr.DumpToFile(path)
}

func notFound(err error, kind string, id uint) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return fmt.Errorf("%s %d: %w", kind, id, storage.ErrNotFound)
	}
	return fmt.Errorf("failed to load %s %d: %w", kind, id, err)
}

// upsert creates row, or updates the row that already carries its name.
// setID is called with the stored ID before saving.
func upsert[T any](db *gorm.DB, name string, row *T, setID func(uint)) error {
	return db.Transaction(func(tx *gorm.DB) error {
		var ids []uint
		if err := tx.Model(new(T)).Where("name = ?", name).Limit(1).Pluck("id", &ids).Error; err != nil {
			return err
		}
		if len(ids) == 0 {
			setID(0)
			return tx.Create(row).Error
		}
		setID(ids[0])
		return tx.Omit("CreatedAt").Save(row).Error
	})
}

func (b *Backend) SaveCartridge(r *core.CartridgeRecord) error {
	m := convert.CartridgeToModel(*r)
	if err := upsert(b.mgr.DB, m.Name, &m, func(id uint) { m.ID = id }); err != nil {
		return fmt.Errorf("failed to save cartridge: %w", err)
	}
	r.ID = m.ID
	return nil
}

func (b *Backend) SaveBullet(r *core.BulletRecord) error {
	m := convert.BulletToModel(*r)
	if err := upsert(b.mgr.DB, m.Name, &m, func(id uint) { m.ID = id }); err != nil {
		return fmt.Errorf("failed to save bullet: %w", err)
	}
	r.ID = m.ID
	return nil
}

func (b *Backend) SaveRifle(r *core.RifleRecord) error {
	m := convert.RifleToModel(*r)
	if err := upsert(b.mgr.DB, m.Name, &m, func(id uint) { m.ID = id }); err != nil {
		return fmt.Errorf("failed to save rifle: %w", err)
	}
	r.ID = m.ID
	return nil
}

func (b *Backend) Cartridge(id uint) (core.CartridgeRecord, error) {
	var m model.Cartridge
	if err := b.mgr.DB.First(&m, id).Error; err != nil {
		return core.CartridgeRecord{}, notFound(err, core.KindCartridge, id)
	}
	return convert.CartridgeToCore(m), nil
}

func (b *Backend) Bullet(id uint) (core.BulletRecord, error) {
	var m model.Bullet
	if err := b.mgr.DB.First(&m, id).Error; err != nil {
		return core.BulletRecord{}, notFound(err, core.KindBullet, id)
	}
	return convert.BulletToCore(m), nil
}

func (b *Backend) Rifle(id uint) (core.RifleRecord, error) {
	var m model.Rifle
	if err := b.mgr.DB.First(&m, id).Error; err != nil {
		return core.RifleRecord{}, notFound(err, "rifle", id)
	}
	return convert.RifleToCore(m), nil
}

func (b *Backend) Cartridges() ([]core.CartridgeRecord, error) {
	var rows []model.Cartridge
	if err := b.mgr.DB.Order("id").Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("failed to list cartridges: %w", err)
	}
	out := make([]core.CartridgeRecord, len(rows))
	for i, m := range rows {
		out[i] = convert.CartridgeToCore(m)
	}
	return out, nil
}

func (b *Backend) Bullets() ([]core.BulletRecord, error) {
	var rows []model.Bullet
	if err := b.mgr.DB.Order("id").Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("failed to list bullets: %w", err)
	}
	out := make([]core.BulletRecord, len(rows))
	for i, m := range rows {
		out[i] = convert.BulletToCore(m)
	}
	return out, nil
}

func (b *Backend) Rifles() ([]core.RifleRecord, error) {
	var rows []model.Rifle
	if err := b.mgr.DB.Order("id").Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("failed to list rifles: %w", err)
	}
	out := make([]core.RifleRecord, len(rows))
	for i, m := range rows {
		out[i] = convert.RifleToCore(m)
	}
	return out, nil
}

// RecordSnapshot inserts s with its outline polygon.
func (b *Backend) RecordSnapshot(s *core.ProfileSnapshot) error {
	m, err := convert.SnapshotToModel(*s)
	if err != nil {
		return err
	}
	if err := b.mgr.DB.Create(&m).Error; err != nil {
		return fmt.Errorf("failed to record snapshot: %w", err)
	}
	s.ID = m.ID
	s.CreatedAt = m.CreatedAt
	return nil
}

// Snapshots returns the snapshots of runID ordered by ID. An empty runID
// returns every snapshot.
func (b *Backend) Snapshots(runID string) ([]core.ProfileSnapshot, error) {
	q := b.mgr.DB.Order("id")
	if runID != "" {
		q = q.Where("run_id = ?", runID)
	}
	var rows []model.ProfileSnapshot
	if err := q.Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("failed to list snapshots: %w", err)
	}
	out := make([]core.ProfileSnapshot, 0, len(rows))
	for _, m := range rows {
		s, err := convert.SnapshotToCore(m)
		if err != nil {
			return nil, fmt.Errorf("snapshot %d: %w", m.ID, err)
		}
		out = append(out, s)
	}
	return out, nil
}
