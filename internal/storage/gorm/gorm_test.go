package gormstorage

import (
	"io"
	"testing"

	"github.com/reloadkit/cartgeo/internal/bullet"
	"github.com/reloadkit/cartgeo/internal/config"
	"github.com/reloadkit/cartgeo/internal/database"
	"github.com/reloadkit/cartgeo/internal/model"
	"github.com/reloadkit/cartgeo/internal/records"
	"github.com/reloadkit/cartgeo/internal/storage"
	"github.com/reloadkit/cartgeo/pkg/core"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Compile-time interface check
var (
	_ storage.Backend = (*Backend)(nil)
	_ storage.Dumper  = (*Backend)(nil)
)

func newTestBackend(t *testing.T) *Backend {
	t.Helper()
	mgr := database.NewManager(zerolog.New(io.Discard))
	require.NoError(t, mgr.OpenSQLite(database.MemoryPath))
	b := New(mgr, config.StorageConfig{Type: config.StorageSQLite}, config.DBConfig{})
	require.NoError(t, b.Init())
	t.Cleanup(func() { _ = b.Close() })
	return b
}

func TestInit_ConnectsFromConfig(t *testing.T) {
	mgr := database.NewManager(zerolog.New(io.Discard))
	b := New(mgr, config.StorageConfig{Type: config.StorageSQLite, SQLite: config.SQLiteConfig{Path: t.TempDir() + "/c.db"}}, config.DBConfig{})
	require.NoError(t, b.Init())
	t.Cleanup(func() { _ = b.Close() })
	assert.Equal(t, "sqlite", mgr.Dialect)
}

func TestCartridges(t *testing.T) {
	b := newTestBackend(t)

	c := core.CartridgeRecord{Name: ".308 Winchester", Dimensions: core.CartridgeDimensions{
		CaseLengthMM:   core.Float(51.18),
		BaseDiameterMM: core.Float(11.96),
		NeckDiameterMM: core.Float(8.77),
	}}
	require.NoError(t, b.SaveCartridge(&c))
	require.NotZero(t, c.ID)

	got, err := b.Cartridge(c.ID)
	require.NoError(t, err)
	assert.Equal(t, c, got)
	assert.Nil(t, got.Dimensions.BodyLengthMM)

	_, err = b.Cartridge(c.ID + 100)
	assert.ErrorIs(t, err, storage.ErrNotFound)
}

func TestSave_ReplacesByName(t *testing.T) {
	b := newTestBackend(t)

	first := core.BulletRecord{Name: "168gr", Dimensions: core.BulletDimensions{DiameterMM: core.Float(7.82)}}
	require.NoError(t, b.SaveBullet(&first))
	other := core.BulletRecord{Name: "55gr", Dimensions: core.BulletDimensions{DiameterMM: core.Float(5.7)}}
	require.NoError(t, b.SaveBullet(&other))
	again := core.BulletRecord{Name: "168gr", Dimensions: core.BulletDimensions{DiameterMM: core.Float(7.83), OgiveType: "secant"}}
	require.NoError(t, b.SaveBullet(&again))

	assert.Equal(t, first.ID, again.ID)
	list, err := b.Bullets()
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "168gr", list[0].Name)
	assert.Equal(t, 7.83, *list[0].Dimensions.DiameterMM)
	assert.Equal(t, "secant", list[0].Dimensions.OgiveType)
}

func TestRifles(t *testing.T) {
	b := newTestBackend(t)
	r := core.RifleRecord{Name: "Bolt gun", Chamber: core.RifleChamber{ThroatAngleDeg: core.Float(1.5)}}
	require.NoError(t, b.SaveRifle(&r))

	got, err := b.Rifle(r.ID)
	require.NoError(t, err)
	assert.Equal(t, r, got)

	list, err := b.Rifles()
	require.NoError(t, err)
	assert.Len(t, list, 1)

	_, err = b.Rifle(99)
	assert.ErrorIs(t, err, storage.ErrNotFound)
}

func TestSeed(t *testing.T) {
	b := newTestBackend(t)
	n, err := storage.Seed(b, records.Catalog{
		Cartridges: []core.CartridgeRecord{{Name: "a"}, {Name: "b"}},
		Rifles:     []core.RifleRecord{{Name: "r"}},
	})
	require.NoError(t, err)
	assert.Equal(t, 3, n)

	cs, err := b.Cartridges()
	require.NoError(t, err)
	require.Len(t, cs, 2)
	assert.Less(t, cs[0].ID, cs[1].ID)
}

func TestSnapshots_RoundTrip(t *testing.T) {
	b := newTestBackend(t)

	res, err := bullet.Generate(core.BulletDimensions{
		DiameterMM:       core.Float(7.82),
		LengthMM:         core.Float(31.2),
		BearingSurfaceMM: core.Float(14),
		BoatTailLengthMM: core.Float(3.8),
		MeplatDiameterMM: core.Float(1.6),
		OgiveType:        "tangent",
	})
	require.NoError(t, err)

	s := core.ProfileSnapshot{RunID: "run-1", Kind: core.KindBullet, RecordID: 4, Name: "168gr", Result: res}
	require.NoError(t, b.RecordSnapshot(&s))
	require.NotZero(t, s.ID)
	assert.False(t, s.CreatedAt.IsZero())

	other := core.ProfileSnapshot{RunID: "run-2", Kind: core.KindBullet, Result: core.InsufficientResult(core.FieldSet{core.FieldLength})}
	require.NoError(t, b.RecordSnapshot(&other))

	got, err := b.Snapshots("run-1")
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, res, got[0].Result)
	assert.Equal(t, uint(4), got[0].RecordID)

	all, err := b.Snapshots("")
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, core.Insufficient, all[1].Result.Completeness)

	var row model.ProfileSnapshot
	require.NoError(t, b.mgr.DB.First(&row, s.ID).Error)
	assert.False(t, row.Outline.IsEmpty(), "outline polygon survives the database")
	assert.Greater(t, row.AreaMM2, 0.0)
}

func TestDump(t *testing.T) {
	b := newTestBackend(t)
	require.NoError(t, b.SaveCartridge(&core.CartridgeRecord{Name: "9mm Luger", Dimensions: core.CartridgeDimensions{
		CaseLengthMM:   core.Float(19.15),
		BaseDiameterMM: core.Float(9.96),
		NeckDiameterMM: core.Float(9.65),
	}}))

	path := t.TempDir() + "/dump.db"
	require.NoError(t, b.Dump(path))

	mgr := database.NewManager(zerolog.New(io.Discard))
	require.NoError(t, mgr.OpenSQLite(path))
	t.Cleanup(func() { _ = mgr.Close() })
	var n int64
	require.NoError(t, mgr.DB.Model(&model.Cartridge{}).Count(&n).Error)
	assert.Equal(t, int64(1), n)
}
