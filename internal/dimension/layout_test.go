package dimension

import (
	"testing"

	"github.com/reloadkit/cartgeo/internal/bullet"
	"github.com/reloadkit/cartgeo/internal/cartridge"
	"github.com/reloadkit/cartgeo/pkg/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func top(x1, x2 float64) core.DimensionAnnotation {
	return core.DimensionAnnotation{X1: x1, Y1: 50, X2: x2, Y2: 50, ValueMM: x2 - x1, Side: core.Top}
}

func canvas() Canvas {
	return Canvas{Width: 400, Height: 200, MinX: 20, MinY: 60, MaxX: 380, MaxY: 140}
}

func TestLayout_OverlapStaggers(t *testing.T) {
	placements := Layout([]core.DimensionAnnotation{top(0, 10), top(5, 15), top(20, 30)}, canvas(), DefaultOptions)
	require.Len(t, placements, 3)

	assert.Equal(t, 1, placements[0].Annotation.OffsetTier)
	assert.Equal(t, 2, placements[1].Annotation.OffsetTier)
	assert.Equal(t, 1, placements[2].Annotation.OffsetTier, "non-overlapping span shares tier 1")
	assert.NotEqual(t, placements[0].Annotation.OffsetTier, placements[1].Annotation.OffsetTier)
}

func TestLayout_Offsets(t *testing.T) {
	placements := Layout([]core.DimensionAnnotation{top(0, 10), top(5, 15)}, canvas(), DefaultOptions)

	assert.Equal(t, 12.0, placements[0].Offset)
	assert.Equal(t, 20.0, placements[1].Offset)
	assert.Equal(t, 48.0, placements[0].Line)
	assert.Equal(t, 40.0, placements[1].Line)
	assert.False(t, placements[1].Overflow)
}

func TestLayout_ClearanceCountsAsOverlap(t *testing.T) {
	placements := Layout([]core.DimensionAnnotation{top(0, 10), top(10.5, 20)}, canvas(), DefaultOptions)
	assert.Equal(t, 2, placements[1].Annotation.OffsetTier)

	opts := DefaultOptions
	opts.Clearance = 0.1
	placements = Layout([]core.DimensionAnnotation{top(0, 10), top(10.5, 20)}, canvas(), opts)
	assert.Equal(t, 1, placements[1].Annotation.OffsetTier)
}

func TestLayout_SortsByStartKeepsInputOrder(t *testing.T) {
	// Input order is reversed; the sweep still runs by span start.
	placements := Layout([]core.DimensionAnnotation{top(20, 30), top(5, 15), top(0, 10)}, canvas(), DefaultOptions)

	assert.Equal(t, 1, placements[2].Annotation.OffsetTier)
	assert.Equal(t, 2, placements[1].Annotation.OffsetTier)
	assert.Equal(t, 1, placements[0].Annotation.OffsetTier)
	assert.Equal(t, 20.0, placements[0].Annotation.X1, "placements come back in input order")
}

func TestLayout_TiesBrokenByInsertionOrder(t *testing.T) {
	a := top(0, 10)
	a.Label = "first"
	b := top(0, 8)
	b.Label = "second"
	placements := Layout([]core.DimensionAnnotation{a, b}, canvas(), DefaultOptions)
	assert.Equal(t, 1, placements[0].Annotation.OffsetTier)
	assert.Equal(t, 2, placements[1].Annotation.OffsetTier)

	placements = Layout([]core.DimensionAnnotation{b, a}, canvas(), DefaultOptions)
	assert.Equal(t, "second", placements[0].Annotation.Label)
	assert.Equal(t, 1, placements[0].Annotation.OffsetTier)
	assert.Equal(t, 2, placements[1].Annotation.OffsetTier)
}

func TestLayout_SidesIndependent(t *testing.T) {
	bottom := top(0, 10)
	bottom.Side = core.Bottom
	left := core.DimensionAnnotation{X1: 20, Y1: 60, X2: 20, Y2: 140, Side: core.Left}
	right := core.DimensionAnnotation{X1: 380, Y1: 80, X2: 380, Y2: 120, Side: core.Right}

	placements := Layout([]core.DimensionAnnotation{top(0, 10), bottom, left, right}, canvas(), DefaultOptions)
	for _, p := range placements {
		assert.Equal(t, 1, p.Annotation.OffsetTier, p.Annotation.Side.String())
	}
	assert.Equal(t, 152.0, placements[1].Line)
	assert.Equal(t, 8.0, placements[2].Line)
	assert.Equal(t, 392.0, placements[3].Line)
}

func TestLayout_VerticalSpansUseY(t *testing.T) {
	a := core.DimensionAnnotation{X1: 20, Y1: 60, X2: 20, Y2: 140, Side: core.Left}
	b := core.DimensionAnnotation{X1: 30, Y1: 130, X2: 30, Y2: 70, Side: core.Left}
	placements := Layout([]core.DimensionAnnotation{a, b}, canvas(), DefaultOptions)
	assert.Equal(t, 2, placements[1].Annotation.OffsetTier)
}

func TestLayout_Overflow(t *testing.T) {
	cands := make([]core.DimensionAnnotation, 0, 8)
	for i := 0; i < 8; i++ {
		cands = append(cands, top(0, 10))
	}
	placements := Layout(cands, canvas(), DefaultOptions)
	assert.Equal(t, 8, Tiers(placements, core.Top))
	assert.False(t, placements[0].Overflow)
	assert.True(t, placements[7].Overflow, "tier 8 sits at 60-12-56 < 0")
}

func TestLayout_Empty(t *testing.T) {
	assert.Empty(t, Layout(nil, canvas(), DefaultOptions))
}

func TestOptions_Offset(t *testing.T) {
	assert.Equal(t, 12.0, DefaultOptions.Offset(1))
	assert.Equal(t, 28.0, DefaultOptions.Offset(3))
	assert.Equal(t, 12.0, DefaultOptions.Offset(0))
}

func TestCartridgeCandidates_LayoutWithoutCollisions(t *testing.T) {
	r, ok, err := cartridge.Resolve(core.CartridgeDimensions{
		CaseLengthMM:       core.Float(51.18),
		BaseDiameterMM:     core.Float(11.96),
		NeckDiameterMM:     core.Float(8.77),
		BoreDiameterMM:     core.Float(7.62),
		ShoulderDiameterMM: core.Float(11.53),
		ShoulderAngleDeg:   core.Float(20),
		BodyLengthMM:       core.Float(39.62),
		RimThicknessMM:     core.Float(1.37),
	})
	require.NoError(t, err)
	require.True(t, ok)

	f := Frame{Scale: 6, OriginX: 40, OriginY: 150}
	cands := CartridgeCandidates(r, f)
	require.Len(t, cands, 8)

	var neck core.DimensionAnnotation
	for _, c := range cands {
		if c.Label == "Neck length" {
			neck = c
		}
	}
	assert.True(t, neck.IsEstimated)
	// Spans the drawn neck: shoulder end (39.62 + 3.7915) to the mouth.
	assert.InDelta(t, r.CaseLength-r.ShoulderEnd, neck.ValueMM, 1e-9)
	assert.InDelta(t, 7.7685, neck.ValueMM, 1e-3)
	assert.Equal(t, f.x(r.ShoulderEnd), neck.X1)

	placements := Layout(cands, f.Canvas(r.Points(), 500, 300), DefaultOptions)
	for i := range placements {
		for j := i + 1; j < len(placements); j++ {
			a, b := placements[i].Annotation, placements[j].Annotation
			if a.Side != b.Side || a.OffsetTier != b.OffsetTier {
				continue
			}
			assert.False(t, spanOf(a).overlaps(spanOf(b), DefaultOptions.Clearance), "%s / %s", a.Label, b.Label)
		}
	}
}

func TestCartridgeCandidates_DefaultedShoulderFlagged(t *testing.T) {
	r, ok, err := cartridge.Resolve(core.CartridgeDimensions{
		CaseLengthMM:   core.Float(51.18),
		BaseDiameterMM: core.Float(11.96),
		NeckDiameterMM: core.Float(8.6),
		NeckLengthMM:   core.Float(7.98),
	})
	require.NoError(t, err)
	require.True(t, ok)
	require.True(t, r.ShoulderDefaulted)

	for _, c := range CartridgeCandidates(r, Frame{Scale: 1}) {
		if c.Label == "Shoulder diameter" {
			assert.True(t, c.IsEstimated)
			return
		}
	}
	t.Fatal("no shoulder diameter annotation")
}

func TestCartridgeCandidates_StraightWall(t *testing.T) {
	r, ok, err := cartridge.Resolve(core.CartridgeDimensions{
		CaseLengthMM:   core.Float(32.6),
		BaseDiameterMM: core.Float(11.0),
		NeckDiameterMM: core.Float(10.8),
		CaseType:       "straight",
	})
	require.NoError(t, err)
	require.True(t, ok)
	assert.Len(t, CartridgeCandidates(r, Frame{Scale: 1}), 4)
}

func TestBulletCandidates(t *testing.T) {
	r, ok, err := bullet.Resolve(core.BulletDimensions{
		DiameterMM:       core.Float(7.82),
		LengthMM:         core.Float(31.2),
		BearingSurfaceMM: core.Float(14),
		BoatTailLengthMM: core.Float(3.8),
		MeplatDiameterMM: core.Float(1.6),
		OgiveType:        "tangent",
	})
	require.NoError(t, err)
	require.True(t, ok)

	cands := BulletCandidates(r, Frame{Scale: 1})
	require.Len(t, cands, 6)
	assert.Equal(t, "Overall length", cands[0].Label)
	assert.InDelta(t, 31.2, cands[0].ValueMM, 1e-9)
	assert.Equal(t, core.Bottom, cands[0].Side)
	assert.False(t, cands[0].IsEstimated)

	placements := Layout(cands, Canvas{Width: 100, Height: 100}, DefaultOptions)
	tiers := map[string]int{}
	for _, p := range placements {
		tiers[p.Annotation.Label] = p.Annotation.OffsetTier
	}
	assert.Equal(t, 1, tiers["Boat tail"])
	assert.Equal(t, 1, tiers["Ogive length"])
	assert.Equal(t, 2, tiers["Bearing surface"], "touches the boat tail span within clearance")
}
