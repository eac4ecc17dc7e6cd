package geo

import (
	"encoding/json"
	"errors"
	"fmt"

	geom "github.com/peterstace/simplefeatures/geom"
	"github.com/reloadkit/cartgeo/pkg/core"
)

var (
	// ErrTooFewPoints is returned when a profile has fewer than two points.
	ErrTooFewPoints = errors.New("profile must have at least 2 points")
	// ErrNotMonotonic is returned when profile x coordinates decrease.
	ErrNotMonotonic = errors.New("profile x coordinates must be non-decreasing")
)

// ParseProfilePoints parses a JSON array of coordinates into profile points.
// Input format: "[[x1,y1],[x2,y2],...]"
func ParseProfilePoints(input string) ([]core.ProfilePoint, error) {
	var coords [][]float64
	if err := json.Unmarshal([]byte(input), &coords); err != nil {
		return nil, fmt.Errorf("failed to parse profile JSON: %w", err)
	}

	if len(coords) < 2 {
		return nil, fmt.Errorf("%w, got %d", ErrTooFewPoints, len(coords))
	}

	points := make([]core.ProfilePoint, len(coords))
	for i, coord := range coords {
		if len(coord) < 2 {
			return nil, fmt.Errorf("coordinate %d has insufficient values", i)
		}
		points[i] = core.ProfilePoint{X: coord[0], Y: coord[1]}
	}

	if err := CheckProfile(points); err != nil {
		return nil, err
	}
	return points, nil
}

// CheckProfile verifies that points form a usable top-half profile.
func CheckProfile(points []core.ProfilePoint) error {
	if len(points) < 2 {
		return fmt.Errorf("%w, got %d", ErrTooFewPoints, len(points))
	}
	for i := 1; i < len(points); i++ {
		if points[i].X < points[i-1].X {
			return fmt.Errorf("%w: point %d x=%g after x=%g", ErrNotMonotonic, i, points[i].X, points[i-1].X)
		}
	}
	return nil
}

// ProfileLineString returns the top-half profile as a line string in the
// drawing frame (radius as positive y).
func ProfileLineString(points []core.ProfilePoint) (geom.LineString, error) {
	flatCoords := make([]float64, 0, len(points)*2)
	for _, p := range points {
		flatCoords = append(flatCoords, p.X, p.Y)
	}
	seq := geom.NewSequence(flatCoords, geom.DimXY)
	ls, err := geom.NewLineString(seq)
	if err != nil {
		return geom.LineString{}, fmt.Errorf("failed to build profile line string: %w", err)
	}
	return ls, nil
}
