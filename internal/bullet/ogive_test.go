package bullet

import (
	"math"
	"testing"

	"github.com/reloadkit/cartgeo/internal/classify"
	"github.com/stretchr/testify/assert"
)

var families = []classify.Ogive{
	classify.Spitzer,
	classify.Tangent,
	classify.Secant,
	classify.Hybrid,
	classify.FlatNose,
	classify.RoundNose,
}

func TestFalloff_Endpoints(t *testing.T) {
	for _, o := range families {
		assert.InDelta(t, 1.0, Falloff(o, 0), 1e-12, o.String())
		assert.InDelta(t, 0.0, Falloff(o, 1), 1e-12, o.String())
	}
}

func TestFalloff_Midpoint(t *testing.T) {
	assert.InDelta(t, 0.75, Falloff(classify.Tangent, 0.5), 1e-12)
	assert.InDelta(t, 0.75, Falloff(classify.Spitzer, 0.5), 1e-12)
	assert.InDelta(t, math.Pow(0.5, 1.5), Falloff(classify.Secant, 0.5), 1e-12)
	assert.InDelta(t, 0.5*0.75+0.5*math.Pow(0.5, 1.5), Falloff(classify.Hybrid, 0.5), 1e-12)
	assert.InDelta(t, math.Sqrt(0.75), Falloff(classify.RoundNose, 0.5), 1e-12)
	assert.InDelta(t, 0.5, Falloff(classify.FlatNose, 0.5), 1e-12)
}

func TestFalloff_ClampsParameter(t *testing.T) {
	assert.Equal(t, Falloff(classify.Tangent, 0), Falloff(classify.Tangent, -1))
	assert.Equal(t, Falloff(classify.Tangent, 1), Falloff(classify.Tangent, 2))
}

func TestNoseRadius_FlatNoseIsLinear(t *testing.T) {
	// bodyR*(1-t) + meplatR*t
	assert.InDelta(t, 4*0.75+2*0.25, NoseRadius(classify.FlatNose, 0.25, 4, 2), 1e-12)
}
