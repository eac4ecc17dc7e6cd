package geo

import (
	"math"
	"strconv"
	"strings"
)

// Path accumulates SVG path commands. Coordinates are written in absolute
// form, rounded to 1/10000 mm.
type Path struct {
	b strings.Builder
}

// NewPath returns an empty path.
func NewPath() *Path {
	return &Path{}
}

func (p *Path) cmd(c string, vals ...float64) *Path {
	if p.b.Len() > 0 {
		p.b.WriteByte(' ')
	}
	p.b.WriteString(c)
	for _, v := range vals {
		p.b.WriteByte(' ')
		p.b.WriteString(FormatCoord(v))
	}
	return p
}

// MoveTo starts a new sub-path.
func (p *Path) MoveTo(x, y float64) *Path {
	return p.cmd("M", x, y)
}

// LineTo draws a straight segment.
func (p *Path) LineTo(x, y float64) *Path {
	return p.cmd("L", x, y)
}

// QuadTo draws a quadratic Bézier with control point (cx, cy).
func (p *Path) QuadTo(cx, cy, x, y float64) *Path {
	return p.cmd("Q", cx, cy, x, y)
}

// CubicTo draws a cubic Bézier with control points (c1x, c1y) and (c2x, c2y).
func (p *Path) CubicTo(c1x, c1y, c2x, c2y, x, y float64) *Path {
	return p.cmd("C", c1x, c1y, c2x, c2y, x, y)
}

// ArcTo draws an elliptical arc.
func (p *Path) ArcTo(rx, ry, rotation float64, largeArc, sweep bool, x, y float64) *Path {
	return p.cmd("A", rx, ry, rotation, flag(largeArc), flag(sweep), x, y)
}

// Close closes the current sub-path.
func (p *Path) Close() *Path {
	return p.cmd("Z")
}

// String returns the path data.
func (p *Path) String() string {
	return p.b.String()
}

func flag(b bool) float64 {
	if b {
		return 1
	}
	return 0
}

// FormatCoord renders v with at most four decimals and no negative zero.
func FormatCoord(v float64) string {
	r := math.Round(v*1e4) / 1e4
	if r == 0 {
		r = 0
	}
	return strconv.FormatFloat(r, 'f', -1, 64)
}
