package bullet

import (
	"math"

	"github.com/reloadkit/cartgeo/internal/classify"
)

// OgiveSamples is the number of parameter steps the nose is sampled at.
const OgiveSamples = 16

// Falloff returns the normalised nose radius at parameter t in [0, 1]:
// 1 at the end of the bearing surface, 0 at the meplat.
func Falloff(o classify.Ogive, t float64) float64 {
	t = math.Min(math.Max(t, 0), 1)
	tangent := 1 - t*t
	secant := math.Pow(1-t, 1.5)
	switch o {
	case classify.Secant:
		return secant
	case classify.Hybrid:
		return (1-t)*tangent + t*secant
	case classify.RoundNose:
		return math.Sqrt(1 - t*t)
	case classify.FlatNose:
		return 1 - t
	default:
		return tangent
	}
}

// NoseRadius returns the nose radius at parameter t between bodyR and meplatR.
func NoseRadius(o classify.Ogive, t, bodyR, meplatR float64) float64 {
	return meplatR + (bodyR-meplatR)*Falloff(o, t)
}
