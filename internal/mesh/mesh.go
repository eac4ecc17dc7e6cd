// Package mesh turns a top-half profile into a solid of revolution.
//
// The profile is read as a lathe generator: y is the radius and x the height
// along the axis. A profile point (x, y) at sweep angle θ becomes the vertex
// (y·sinθ, x, y·cosθ), so column 0 lies in the z/height plane.
package mesh

import (
	"errors"
	"fmt"
	"math"

	"github.com/reloadkit/cartgeo/internal/geo"
	"github.com/reloadkit/cartgeo/pkg/core"
	"gonum.org/v1/gonum/spatial/r3"
)

// Default mesh parameters.
const (
	DefaultSegments      = 48
	DefaultWallThickness = 0.3
	DefaultMinRadius     = 0.05
)

var (
	// ErrTooFewPoints is returned for profiles with fewer than two points.
	ErrTooFewPoints = geo.ErrTooFewPoints
	// ErrInvalidSegments is returned when the segment count is below one.
	ErrInvalidSegments = errors.New("segment count must be at least 1")
)

// Sweep is the angle a profile is revolved through.
type Sweep int

const (
	// Full revolves through 2π.
	Full Sweep = iota
	// Half revolves through π, for cutaway views.
	Half
)

// Angle returns the sweep in radians.
func (s Sweep) Angle() float64 {
	if s == Half {
		return math.Pi
	}
	return 2 * math.Pi
}

func (s Sweep) String() string {
	if s == Half {
		return "half"
	}
	return "full"
}

// Options control tessellation.
type Options struct {
	Segments int
	Sweep    Sweep
}

// Mesh is an indexed triangle mesh. Vertices are stored column by column:
// the vertex of profile point i in column j is at j*Rows+i.
type Mesh struct {
	Vertices []r3.Vec
	Normals  []r3.Vec
	Indices  []uint32
	Rows     int // profile points per column
	Columns  int // segments + 1
	Sweep    Sweep
}

// Revolve builds the solid of revolution of points.
func Revolve(points []core.ProfilePoint, opts Options) (*Mesh, error) {
	if err := geo.CheckProfile(points); err != nil {
		return nil, err
	}
	if opts.Segments < 1 {
		return nil, fmt.Errorf("%w: got %d", ErrInvalidSegments, opts.Segments)
	}

	rows := len(points)
	cols := opts.Segments + 1
	m := &Mesh{
		Vertices: make([]r3.Vec, 0, rows*cols),
		Indices:  make([]uint32, 0, opts.Segments*(rows-1)*6),
		Rows:     rows,
		Columns:  cols,
		Sweep:    opts.Sweep,
	}

	step := opts.Sweep.Angle() / float64(opts.Segments)
	for j := 0; j < cols; j++ {
		sin, cos := math.Sincos(float64(j) * step)
		for _, p := range points {
			m.Vertices = append(m.Vertices, r3.Vec{X: p.Y * sin, Y: p.X, Z: p.Y * cos})
		}
	}

	for j := 0; j < opts.Segments; j++ {
		for i := 0; i < rows-1; i++ {
			a := uint32(j*rows + i)
			b := a + 1
			c := uint32((j+1)*rows + i)
			d := c + 1
			m.Indices = append(m.Indices, a, c, b, b, c, d)
		}
	}

	m.Normals = vertexNormals(m, step)
	return m, nil
}

// vertexNormals accumulates unnormalised face normals, whose length is twice
// the triangle area, so larger faces weigh more. Vertices touching only
// degenerate faces fall back to the radial direction.
func vertexNormals(m *Mesh, step float64) []r3.Vec {
	normals := make([]r3.Vec, len(m.Vertices))
	for t := 0; t+2 < len(m.Indices); t += 3 {
		i0, i1, i2 := m.Indices[t], m.Indices[t+1], m.Indices[t+2]
		v0 := m.Vertices[i0]
		n := r3.Cross(r3.Sub(m.Vertices[i1], v0), r3.Sub(m.Vertices[i2], v0))
		normals[i0] = r3.Add(normals[i0], n)
		normals[i1] = r3.Add(normals[i1], n)
		normals[i2] = r3.Add(normals[i2], n)
	}
	for k, n := range normals {
		if r3.Norm(n) > 0 {
			normals[k] = r3.Unit(n)
			continue
		}
		sin, cos := math.Sincos(float64(k/m.Rows) * step)
		normals[k] = r3.Vec{X: sin, Z: cos}
	}
	return normals
}

// TriangleCount returns the number of triangles.
func (m *Mesh) TriangleCount() int {
	return len(m.Indices) / 3
}

// Silhouette recovers the generator profile from one column of the mesh.
// Column 0 reproduces the input points exactly.
func (m *Mesh) Silhouette(column int) []core.ProfilePoint {
	if column < 0 || column >= m.Columns {
		return nil
	}
	out := make([]core.ProfilePoint, m.Rows)
	for i := range out {
		v := m.Vertices[column*m.Rows+i]
		out[i] = core.ProfilePoint{X: v.Y, Y: math.Hypot(v.X, v.Z)}
	}
	return out
}

// Buffers flattens the mesh for GPU upload: xyz positions, xyz normals and
// triangle indices.
func (m *Mesh) Buffers() (positions, normals []float32, indices []uint32) {
	positions = make([]float32, 0, len(m.Vertices)*3)
	normals = make([]float32, 0, len(m.Normals)*3)
	for k, v := range m.Vertices {
		positions = append(positions, float32(v.X), float32(v.Y), float32(v.Z))
		n := m.Normals[k]
		normals = append(normals, float32(n.X), float32(n.Y), float32(n.Z))
	}
	indices = append([]uint32(nil), m.Indices...)
	return positions, normals, indices
}

// InnerWall offsets every radius inward by thickness, never below minRadius.
// Axial positions are unchanged so the result can be revolved alongside the
// outer profile to form a hollow shell.
func InnerWall(points []core.ProfilePoint, thickness, minRadius float64) []core.ProfilePoint {
	out := make([]core.ProfilePoint, len(points))
	for i, p := range points {
		out[i] = core.ProfilePoint{X: p.X, Y: math.Max(p.Y-thickness, minRadius)}
	}
	return out
}
