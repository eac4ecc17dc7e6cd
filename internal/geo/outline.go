// Package geo turns top-half profile points into drawing primitives: SVG path
// data and closed outline polygons.
//
// Drawing frame: x grows from the case head (or bullet base) towards the
// mouth (or tip), y is radius. SVG y grows downwards, so the top half of a
// part is emitted with negated y and the bottom half with positive y.
package geo

import (
	"fmt"

	geom "github.com/peterstace/simplefeatures/geom"
	"github.com/reloadkit/cartgeo/pkg/core"
)

// MirroredPath serialises the closed outline of points: the top half left to
// right with y negated, the bottom half right to left with positive y, then a
// line back to the first coordinate and Z. The first and last coordinates of
// the path coincide. An empty string is returned for fewer than two points.
func MirroredPath(points []core.ProfilePoint) string {
	if len(points) < 2 {
		return ""
	}
	p := NewPath().MoveTo(points[0].X, -points[0].Y)
	for _, pt := range points[1:] {
		p.LineTo(pt.X, -pt.Y)
	}
	for i := len(points) - 1; i >= 0; i-- {
		p.LineTo(points[i].X, points[i].Y)
	}
	return p.LineTo(points[0].X, -points[0].Y).Close().String()
}

// OutlineRing returns the closed ring of the full cross-section as flat x,y
// pairs. Points on the axis are emitted once and consecutive duplicates are
// dropped so the ring stays simple.
func OutlineRing(points []core.ProfilePoint) []float64 {
	if len(points) < 2 {
		return nil
	}
	ring := make([]float64, 0, len(points)*4+2)
	push := func(x, y float64) {
		if n := len(ring); n >= 2 && ring[n-2] == x && ring[n-1] == y {
			return
		}
		ring = append(ring, x, y)
	}
	for _, pt := range points {
		push(pt.X, -pt.Y)
	}
	for i := len(points) - 1; i >= 0; i-- {
		if points[i].Y == 0 {
			continue
		}
		push(points[i].X, points[i].Y)
	}
	if ring[0] != ring[len(ring)-2] || ring[1] != ring[len(ring)-1] {
		ring = append(ring, ring[0], ring[1])
	}
	return ring
}

// OutlinePolygon returns the full cross-section of points as a polygon.
// Profiles too short to enclose an area give an empty polygon.
func OutlinePolygon(points []core.ProfilePoint) (geom.Polygon, error) {
	ring := OutlineRing(points)
	if len(ring) < 8 {
		return geom.Polygon{}, nil
	}
	seq := geom.NewSequence(ring, geom.DimXY)
	ls, err := geom.NewLineString(seq)
	if err != nil {
		return geom.Polygon{}, fmt.Errorf("failed to build outline ring: %w", err)
	}
	poly, err := geom.NewPolygon([]geom.LineString{ls})
	if err != nil {
		return geom.Polygon{}, fmt.Errorf("failed to build outline polygon: %w", err)
	}
	return poly, nil
}

// CrossSectionArea returns the area in mm² enclosed by the mirrored outline.
func CrossSectionArea(points []core.ProfilePoint) float64 {
	poly, err := OutlinePolygon(points)
	if err != nil || poly.IsEmpty() {
		return 0
	}
	return poly.Area()
}

// Bounds returns the extent of the mirrored outline.
func Bounds(points []core.ProfilePoint) (minX, maxX, maxR float64) {
	if len(points) == 0 {
		return 0, 0, 0
	}
	minX, maxX = points[0].X, points[0].X
	for _, p := range points {
		if p.X < minX {
			minX = p.X
		}
		if p.X > maxX {
			maxX = p.X
		}
		if p.Y > maxR {
			maxR = p.Y
		}
	}
	return minX, maxX, maxR
}
