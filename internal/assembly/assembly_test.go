package assembly

import (
	"testing"

	"github.com/reloadkit/cartgeo/pkg/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func params() Params {
	return Params{
		CaseLengthMM:     51.18,
		BaseDiameterMM:   11.96,
		BulletLengthMM:   31.2,
		SeatingDepthMM:   10,
		BarrelLengthMM:   611.18, // 560mm of barrel ahead of the case mouth
		VisibleLengthMM:  140,
		BoreDiameterMM:   7.62,
		GrooveDiameterMM: 7.82,
		NodesMM:          []float64{20, 191.18, 331.18, 611.18, 700},
		PeakPressure:     55000,
		MaxPressure:      62000,
	}
}

func TestBuild_Layout(t *testing.T) {
	l, err := Build(params(), DefaultThresholds)
	require.NoError(t, err)

	assert.Equal(t, 0.0, l.CartridgeOffsetX)
	assert.Equal(t, 51.18, l.BarrelStartX)
	assert.InDelta(t, 191.18, l.BarrelEndX, 1e-9)
	assert.InDelta(t, 560.0, l.FullLengthMM, 1e-9)
	assert.Equal(t, 140.0, l.VisibleLengthMM)
	assert.InDelta(t, 41.18, l.BulletBaseX, 1e-9)
	assert.InDelta(t, 72.38, l.BulletTipX, 1e-9)
	assert.Equal(t, 3.81, l.BoreRadiusMM)
	assert.Equal(t, 3.91, l.GrooveRadiusMM)
	assert.InDelta(t, 11.73, l.OuterRadiusMM, 1e-9)
}

func TestBuild_NodesRescaled(t *testing.T) {
	l, err := Build(params(), DefaultThresholds)
	require.NoError(t, err)

	// 140/560 = 0.25; nodes behind the chamber or past the muzzle are dropped.
	require.Len(t, l.Nodes, 3)
	assert.InDelta(t, 51.18+140*0.25, l.Nodes[0], 1e-9)
	assert.InDelta(t, 51.18+280*0.25, l.Nodes[1], 1e-9)
	assert.InDelta(t, 191.18, l.Nodes[2], 1e-9)
	for _, n := range l.Nodes {
		assert.GreaterOrEqual(t, n, l.BarrelStartX)
		assert.LessOrEqual(t, n, l.BarrelEndX+1e-9)
	}
}

func TestBuild_WholeBarrelWhenNoWindow(t *testing.T) {
	p := params()
	p.VisibleLengthMM = 0
	l, err := Build(p, DefaultThresholds)
	require.NoError(t, err)
	assert.InDelta(t, l.FullLengthMM, l.VisibleLengthMM, 1e-9)
	assert.InDelta(t, 191.18, l.Nodes[0], 1e-9)
}

func TestBuild_StressZones(t *testing.T) {
	tests := []struct {
		peak float64
		want core.StressZone
	}{
		{40000, core.ZoneSafe},
		{55000, core.ZoneCaution},
		{62000, core.ZoneDanger},
		{70000, core.ZoneDanger},
	}
	for _, tt := range tests {
		p := params()
		p.PeakPressure = tt.peak
		l, err := Build(p, DefaultThresholds)
		require.NoError(t, err)
		assert.Equal(t, tt.want, l.StressZone, "peak %v", tt.peak)
	}
}

func TestBuild_ConfigurableThresholds(t *testing.T) {
	l, err := Build(params(), Thresholds{CautionRatio: 0.9, DangerRatio: 0.95})
	require.NoError(t, err)
	assert.Equal(t, core.ZoneSafe, l.StressZone, "55000/62000 is below 0.9")
}

func TestBuild_NoPressureData(t *testing.T) {
	p := params()
	p.MaxPressure = 0
	l, err := Build(p, DefaultThresholds)
	require.NoError(t, err)
	assert.Equal(t, 0.0, l.PressureRatio)
	assert.Equal(t, core.ZoneUnknown, l.StressZone)
	assert.Equal(t, "unknown", l.StressZone.String())

	p.PeakPressure = 70000
	l, err = Build(p, DefaultThresholds)
	require.NoError(t, err)
	assert.Equal(t, core.ZoneUnknown, l.StressZone, "peak alone is not classified")
}

func TestBuild_InvalidThresholds(t *testing.T) {
	for _, th := range []Thresholds{
		{},
		{CautionRatio: 1, DangerRatio: 0.9},
		{CautionRatio: 0.9, DangerRatio: 0.9},
		{CautionRatio: -0.1, DangerRatio: 1},
	} {
		_, err := Build(params(), th)
		assert.ErrorIs(t, err, ErrInvalidThresholds, "%+v", th)
	}
}

func TestBuild_InvalidParams(t *testing.T) {
	p := params()
	p.BarrelLengthMM = 40
	_, err := Build(p, DefaultThresholds)
	assert.ErrorIs(t, err, ErrInvalidParams)

	p = params()
	p.CaseLengthMM = 0
	_, err = Build(p, DefaultThresholds)
	assert.ErrorIs(t, err, ErrInvalidParams)
}

func TestBuild_OuterDiameterGiven(t *testing.T) {
	p := params()
	p.OuterDiameterMM = 30
	l, err := Build(p, DefaultThresholds)
	require.NoError(t, err)
	assert.Equal(t, 15.0, l.OuterRadiusMM)
}

func TestScaleNodes_NeverNil(t *testing.T) {
	assert.NotNil(t, ScaleNodes(nil, 50, 100, 500))
	assert.Empty(t, ScaleNodes([]float64{100}, 50, 100, 0))
}
