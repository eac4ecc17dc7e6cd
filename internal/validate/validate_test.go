package validate

import (
	"errors"
	"math"
	"testing"

	"github.com/reloadkit/cartgeo/pkg/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCartridge_EmptyRecordIsValid(t *testing.T) {
	assert.NoError(t, Cartridge(core.CartridgeDimensions{}))
}

func TestCartridge_Negative(t *testing.T) {
	err := Cartridge(core.CartridgeDimensions{CaseLengthMM: core.Float(-51.2)})
	require.Error(t, err)

	var dimErr *InvalidDimensionError
	require.True(t, errors.As(err, &dimErr))
	assert.Equal(t, core.FieldCaseLength, dimErr.Field)
	assert.Equal(t, -51.2, dimErr.Value)
	assert.True(t, errors.Is(err, ErrInvalidDimension))
}

func TestCartridge_ZeroDiameter(t *testing.T) {
	err := Cartridge(core.CartridgeDimensions{NeckDiameterMM: core.Float(0)})
	var dimErr *InvalidDimensionError
	require.ErrorAs(t, err, &dimErr)
	assert.Equal(t, core.FieldNeckDiameter, dimErr.Field)
	assert.Contains(t, dimErr.Error(), "greater than zero")
}

func TestCartridge_NonFinite(t *testing.T) {
	err := Cartridge(core.CartridgeDimensions{BaseDiameterMM: core.Float(math.NaN())})
	require.ErrorIs(t, err, ErrInvalidDimension)

	err = Cartridge(core.CartridgeDimensions{BaseDiameterMM: core.Float(math.Inf(1))})
	require.ErrorIs(t, err, ErrInvalidDimension)
}

func TestCartridge_ShoulderAngleRange(t *testing.T) {
	assert.NoError(t, Cartridge(core.CartridgeDimensions{ShoulderAngleDeg: core.Float(20)}))
	assert.Error(t, Cartridge(core.CartridgeDimensions{ShoulderAngleDeg: core.Float(0)}))
	assert.Error(t, Cartridge(core.CartridgeDimensions{ShoulderAngleDeg: core.Float(90)}))
}

func TestBullet_ZeroBoatTailAllowed(t *testing.T) {
	d := core.BulletDimensions{
		DiameterMM:       core.Float(7.82),
		BoatTailLengthMM: core.Float(0),
		MeplatDiameterMM: core.Float(0),
	}
	assert.NoError(t, Bullet(d))
}

func TestBullet_ZeroDiameterRejected(t *testing.T) {
	err := Bullet(core.BulletDimensions{DiameterMM: core.Float(0)})
	var dimErr *InvalidDimensionError
	require.ErrorAs(t, err, &dimErr)
	assert.Equal(t, core.FieldDiameter, dimErr.Field)
}

func TestRifle(t *testing.T) {
	assert.NoError(t, Rifle(core.RifleChamber{FreeboreMM: core.Float(0), HeadspaceMM: core.Float(0.05)}))
	assert.Error(t, Rifle(core.RifleChamber{ThroatAngleDeg: core.Float(95)}))
	assert.Error(t, Rifle(core.RifleChamber{BarrelLengthMM: core.Float(-1)}))
}
