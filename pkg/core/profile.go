// pkg/core/profile.go
package core

import (
	"fmt"
	"sort"
	"strings"
)

// ProfilePoint is a point on the top half of a part outline.
// X is axial distance in mm from the case head (or bullet base), Y is radius in mm.
type ProfilePoint struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Completeness grades how much of a result rests on estimates.
type Completeness int

const (
	Full Completeness = iota
	Basic
	Insufficient
)

func (c Completeness) String() string {
	switch c {
	case Full:
		return "full"
	case Basic:
		return "basic"
	case Insufficient:
		return "insufficient"
	default:
		return fmt.Sprintf("completeness(%d)", int(c))
	}
}

// MarshalText implements encoding.TextMarshaler.
func (c Completeness) MarshalText() ([]byte, error) {
	return []byte(c.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (c *Completeness) UnmarshalText(b []byte) error {
	switch strings.ToLower(string(b)) {
	case "full":
		*c = Full
	case "basic":
		*c = Basic
	case "insufficient":
		*c = Insufficient
	default:
		return fmt.Errorf("unknown completeness %q", string(b))
	}
	return nil
}

// FieldSet is a sorted set of field names.
type FieldSet []string

// Add returns the set with name inserted.
func (s FieldSet) Add(name string) FieldSet {
	i := sort.SearchStrings(s, name)
	if i < len(s) && s[i] == name {
		return s
	}
	s = append(s, "")
	copy(s[i+1:], s[i:])
	s[i] = name
	return s
}

// Has reports whether name is in the set.
func (s FieldSet) Has(name string) bool {
	i := sort.SearchStrings(s, name)
	return i < len(s) && s[i] == name
}

// Len returns the number of names in the set.
func (s FieldSet) Len() int {
	return len(s)
}

// GeometryResult is the output of a profile generator.
// When Completeness is Insufficient, SVGPath is empty and ProfilePoints is nil.
type GeometryResult struct {
	SVGPath         string         `json:"svg_path"`
	ProfilePoints   []ProfilePoint `json:"profile_points"`
	EstimatedFields FieldSet       `json:"estimated_fields"`
	Completeness    Completeness   `json:"completeness"`
}

// Renderable reports whether the result may be drawn.
func (r GeometryResult) Renderable() bool {
	return r.Completeness != Insufficient
}

// InsufficientResult returns the "cannot render" sentinel carrying whatever
// fields were estimated before resolution failed.
func InsufficientResult(estimated FieldSet) GeometryResult {
	return GeometryResult{
		EstimatedFields: estimated,
		Completeness:    Insufficient,
	}
}
