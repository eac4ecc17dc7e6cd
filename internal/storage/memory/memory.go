package memory

import (
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/reloadkit/cartgeo/internal/config"
	"github.com/reloadkit/cartgeo/internal/records"
	"github.com/reloadkit/cartgeo/internal/storage"
	"github.com/reloadkit/cartgeo/pkg/core"
)

// table holds one record kind keyed by ID with a name index.
type table[T any] struct {
	rows   map[uint]T
	names  map[string]uint
	nextID uint
}

func newTable[T any]() *table[T] {
	return &table[T]{rows: make(map[uint]T), names: make(map[string]uint)}
}

// put stores the value built by set under name, reusing the ID of an
// existing row with the same name.
func (t *table[T]) put(name string, set func(id uint) T) {
	id, ok := t.names[name]
	if !ok {
		t.nextID++
		id = t.nextID
		t.names[name] = id
	}
	t.rows[id] = set(id)
}

func (t *table[T]) get(id uint) (T, error) {
	v, ok := t.rows[id]
	if !ok {
		return v, fmt.Errorf("id %d: %w", id, storage.ErrNotFound)
	}
	return v, nil
}

func (t *table[T]) list() []T {
	ids := make([]uint, 0, len(t.rows))
	for id := range t.rows {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	out := make([]T, len(ids))
	for i, id := range ids {
		out[i] = t.rows[id]
	}
	return out
}

// Backend keeps the catalog in memory, optionally seeded from a file, and
// exports recorded snapshots to JSON on Close.
type Backend struct {
	cfg config.MemoryConfig
	now func() time.Time

	cartridges *table[core.CartridgeRecord]
	bullets    *table[core.BulletRecord]
	rifles     *table[core.RifleRecord]
	snapshots  []core.ProfileSnapshot

	lastExportPath string
	mu             sync.RWMutex
}

// New creates a new memory backend
func New(cfg config.MemoryConfig) *Backend {
	return &Backend{
		cfg:        cfg,
		now:        func() time.Time { return time.Now().UTC() },
		cartridges: newTable[core.CartridgeRecord](),
		bullets:    newTable[core.BulletRecord](),
		rifles:     newTable[core.RifleRecord](),
	}
}

// Init loads the seed file when one is configured.
func (b *Backend) Init() error {
	if b.cfg.SeedFile == "" {
		return nil
	}
	c, err := records.LoadCatalog(b.cfg.SeedFile)
	if err != nil {
		return fmt.Errorf("failed to load seed file: %w", err)
	}
	_, err = storage.Seed(b, c)
	return err
}

// Close exports the snapshots recorded since New, if any.
func (b *Backend) Close() error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if len(b.snapshots) == 0 || b.cfg.OutputDir == "" {
		return nil
	}
	return b.exportJSON()
}

func (b *Backend) SaveCartridge(r *core.CartridgeRecord) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.cartridges.put(r.Name, func(id uint) core.CartridgeRecord {
		r.ID = id
		return *r
	})
	return nil
}

func (b *Backend) SaveBullet(r *core.BulletRecord) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.bullets.put(r.Name, func(id uint) core.BulletRecord {
		r.ID = id
		return *r
	})
	return nil
}

func (b *Backend) SaveRifle(r *core.RifleRecord) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.rifles.put(r.Name, func(id uint) core.RifleRecord {
		r.ID = id
		return *r
	})
	return nil
}

func (b *Backend) Cartridge(id uint) (core.CartridgeRecord, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.cartridges.get(id)
}

func (b *Backend) Bullet(id uint) (core.BulletRecord, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.bullets.get(id)
}

func (b *Backend) Rifle(id uint) (core.RifleRecord, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.rifles.get(id)
}

func (b *Backend) Cartridges() ([]core.CartridgeRecord, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.cartridges.list(), nil
}

func (b *Backend) Bullets() ([]core.BulletRecord, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.bullets.list(), nil
}

func (b *Backend) Rifles() ([]core.RifleRecord, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.rifles.list(), nil
}

// RecordSnapshot appends s, assigning its ID and creation time.
func (b *Backend) RecordSnapshot(s *core.ProfileSnapshot) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	s.ID = uint(len(b.snapshots) + 1)
	if s.CreatedAt.IsZero() {
		s.CreatedAt = b.now()
	}
	b.snapshots = append(b.snapshots, *s)
	return nil
}

// Snapshots returns the snapshots of runID in recording order. An empty
// runID returns every snapshot.
func (b *Backend) Snapshots(runID string) ([]core.ProfileSnapshot, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	out := make([]core.ProfileSnapshot, 0, len(b.snapshots))
	for _, s := range b.snapshots {
		if runID == "" || s.RunID == runID {
			out = append(out, s)
		}
	}
	return out, nil
}

// ExportedFilePath returns the file written by the last Close.
func (b *Backend) ExportedFilePath() string {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.lastExportPath
}
