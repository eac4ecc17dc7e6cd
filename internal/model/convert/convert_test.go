package convert

import (
	"testing"
	"time"

	"github.com/reloadkit/cartgeo/internal/cartridge"
	"github.com/reloadkit/cartgeo/internal/geo"
	"github.com/reloadkit/cartgeo/internal/model"
	"github.com/reloadkit/cartgeo/pkg/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCartridge_RoundTrip(t *testing.T) {
	in := core.CartridgeRecord{
		ID:   7,
		Name: ".308 Winchester",
		Dimensions: core.CartridgeDimensions{
			CaseLengthMM:   core.Float(51.18),
			BaseDiameterMM: core.Float(11.96),
			NeckDiameterMM: core.Float(8.77),
			CaseType:       "bottleneck",
		},
	}
	m := CartridgeToModel(in)
	assert.Equal(t, uint(7), m.ID)
	assert.Nil(t, m.ShoulderAngleDeg)
	require.NotNil(t, m.CaseLengthMM)
	assert.NotSame(t, in.Dimensions.CaseLengthMM, m.CaseLengthMM, "pointers are copied")

	assert.Equal(t, in, CartridgeToCore(m))
}

func TestBullet_RoundTrip(t *testing.T) {
	in := core.BulletRecord{
		ID:   3,
		Name: "168gr HPBT",
		Dimensions: core.BulletDimensions{
			DiameterMM:   core.Float(7.82),
			WeightGrains: core.Float(168),
			OgiveType:    "tangent",
			BulletType:   "match",
			BaseType:     "boat tail",
		},
	}
	assert.Equal(t, in, BulletToCore(BulletToModel(in)))
}

func TestRifle_RoundTrip(t *testing.T) {
	in := core.RifleRecord{
		ID:   1,
		Name: "Bolt gun",
		Chamber: core.RifleChamber{
			FreeboreMM:     core.Float(1.5),
			BarrelLengthMM: core.Float(610),
		},
	}
	assert.Equal(t, in, RifleToCore(RifleToModel(in)))
}

func TestSnapshot_RoundTrip(t *testing.T) {
	res, err := cartridge.Generate(core.CartridgeDimensions{
		CaseLengthMM:       core.Float(51.18),
		BaseDiameterMM:     core.Float(11.96),
		NeckDiameterMM:     core.Float(8.77),
		ShoulderDiameterMM: core.Float(11.53),
		ShoulderAngleDeg:   core.Float(20),
		NeckLengthMM:       core.Float(7.98),
		BodyLengthMM:       core.Float(39.62),
		RimThicknessMM:     core.Float(1.37),
	})
	require.NoError(t, err)

	in := core.ProfileSnapshot{
		RunID:     "run-1",
		Kind:      core.KindCartridge,
		RecordID:  7,
		Name:      ".308 Winchester",
		Result:    res,
		CreatedAt: time.Date(2026, 4, 2, 10, 0, 0, 0, time.UTC),
	}
	m, err := SnapshotToModel(in)
	require.NoError(t, err)
	assert.Equal(t, res.Completeness.String(), m.Completeness)
	assert.InDelta(t, geo.CrossSectionArea(res.ProfilePoints), m.AreaMM2, 1e-9)
	assert.Greater(t, m.AreaMM2, 0.0)
	assert.False(t, m.Outline.IsEmpty())

	out, err := SnapshotToCore(m)
	require.NoError(t, err)
	assert.Equal(t, in, out)
}

func TestSnapshot_Insufficient(t *testing.T) {
	in := core.ProfileSnapshot{
		Kind:   core.KindBullet,
		Result: core.InsufficientResult(core.FieldSet{core.FieldLength}),
	}
	m, err := SnapshotToModel(in)
	require.NoError(t, err)
	assert.Equal(t, "[]", string(m.Points))
	assert.Equal(t, `["length_mm"]`, string(m.Estimated))
	assert.Equal(t, 0.0, m.AreaMM2)
	assert.True(t, m.Outline.IsEmpty())

	out, err := SnapshotToCore(m)
	require.NoError(t, err)
	assert.Equal(t, in.Result, out.Result)
}

func TestSnapshotToCore_BadCompleteness(t *testing.T) {
	_, err := SnapshotToCore(modelWith("partial"))
	assert.Error(t, err)
}

func modelWith(completeness string) model.ProfileSnapshot {
	return model.ProfileSnapshot{Completeness: completeness}
}
