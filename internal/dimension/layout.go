// Package dimension places dimension annotations around a part drawing.
// Annotations competing for the same edge are staggered into tiers so that
// no two overlapping spans share a dimension line.
package dimension

import (
	"sort"

	"github.com/reloadkit/cartgeo/pkg/core"
)

// Options control tier geometry. All values are in drawing units.
type Options struct {
	BaseOffset  float64 `json:"base_offset" mapstructure:"baseOffset"`
	TierSpacing float64 `json:"tier_spacing" mapstructure:"tierSpacing"`
	Clearance   float64 `json:"clearance" mapstructure:"clearance"`
}

// DefaultOptions are used when no configuration overrides them.
var DefaultOptions = Options{BaseOffset: 12, TierSpacing: 8, Clearance: 1}

// Offset returns the distance of tier from the part edge.
func (o Options) Offset(tier int) float64 {
	if tier < 1 {
		tier = 1
	}
	return o.BaseOffset + float64(tier-1)*o.TierSpacing
}

// Canvas is the drawing area and the extent of the part inside it.
type Canvas struct {
	Width  float64
	Height float64
	MinX   float64
	MinY   float64
	MaxX   float64
	MaxY   float64
}

// Placement is an annotation with its tier resolved. Line is the y of a
// Top/Bottom dimension line or the x of a Left/Right one; Overflow is set when
// that line falls outside the canvas.
type Placement struct {
	Annotation core.DimensionAnnotation `json:"annotation"`
	Offset     float64                  `json:"offset"`
	Line       float64                  `json:"line"`
	Overflow   bool                     `json:"overflow"`
}

type span struct{ lo, hi float64 }

func spanOf(a core.DimensionAnnotation) span {
	lo, hi := a.X1, a.X2
	if a.Side == core.Left || a.Side == core.Right {
		lo, hi = a.Y1, a.Y2
	}
	if lo > hi {
		lo, hi = hi, lo
	}
	return span{lo, hi}
}

func (s span) overlaps(o span, clearance float64) bool {
	return s.lo < o.hi+clearance && o.lo < s.hi+clearance
}

// Layout assigns an offset tier to every candidate. Sides are packed
// independently: candidates are stably sorted by span start, and each takes
// the lowest tier whose spans it does not overlap (within opts.Clearance),
// opening a new tier when none fits. Placements are returned in input order.
func Layout(cands []core.DimensionAnnotation, canvas Canvas, opts Options) []Placement {
	out := make([]Placement, len(cands))
	bySide := map[core.Side][]int{}
	for i, c := range cands {
		bySide[c.Side] = append(bySide[c.Side], i)
	}

	for _, side := range []core.Side{core.Top, core.Bottom, core.Left, core.Right} {
		idx := bySide[side]
		sort.SliceStable(idx, func(a, b int) bool {
			return spanOf(cands[idx[a]]).lo < spanOf(cands[idx[b]]).lo
		})

		var tiers [][]span
		for _, i := range idx {
			s := spanOf(cands[i])
			tier := -1
			for t, occupied := range tiers {
				free := true
				for _, o := range occupied {
					if s.overlaps(o, opts.Clearance) {
						free = false
						break
					}
				}
				if free {
					tier = t
					break
				}
			}
			if tier < 0 {
				tiers = append(tiers, nil)
				tier = len(tiers) - 1
			}
			tiers[tier] = append(tiers[tier], s)

			a := cands[i]
			a.OffsetTier = tier + 1
			out[i] = place(a, canvas, opts)
		}
	}
	return out
}

func place(a core.DimensionAnnotation, canvas Canvas, opts Options) Placement {
	p := Placement{Annotation: a, Offset: opts.Offset(a.OffsetTier)}
	switch a.Side {
	case core.Top:
		p.Line = canvas.MinY - p.Offset
		p.Overflow = p.Line < 0
	case core.Bottom:
		p.Line = canvas.MaxY + p.Offset
		p.Overflow = p.Line > canvas.Height
	case core.Left:
		p.Line = canvas.MinX - p.Offset
		p.Overflow = p.Line < 0
	case core.Right:
		p.Line = canvas.MaxX + p.Offset
		p.Overflow = p.Line > canvas.Width
	}
	return p
}

// Tiers returns the number of tiers used on side.
func Tiers(placements []Placement, side core.Side) int {
	n := 0
	for _, p := range placements {
		if p.Annotation.Side == side && p.Annotation.OffsetTier > n {
			n = p.Annotation.OffsetTier
		}
	}
	return n
}
