package collision

import (
	"math"

	"github.com/opd-ai/collide2d/pkg/geometry"
)

// LinesShape is an ordered set of line segments, such as a poly-line
type LinesShape struct {
	shapeBase
	lines     []geometry.Line
	threshold float64
}

// NewLinesShape creates a lines shape from at least one segment
func NewLinesShape(lines ...geometry.Line) (*LinesShape, error) {
	if len(lines) == 0 {
		return nil, ErrEmptyLines
	}
	s := &LinesShape{shapeBase: newShapeBase(), threshold: geometry.DefaultLineThreshold}
	s.lines = append(s.lines, lines...)
	s.recompute()
	return s, nil
}

// NewPolylineShape connects consecutive points into segments
func NewPolylineShape(points ...geometry.Vector2D) (*LinesShape, error) {
	if len(points) < 2 {
		return nil, ErrEmptyLines
	}
	lines := make([]geometry.Line, 0, len(points)-1)
	for i := 1; i < len(points); i++ {
		lines = append(lines, geometry.Line{From: points[i-1], To: points[i]})
	}
	return NewLinesShape(lines...)
}

// Kind implements Shape
func (s *LinesShape) Kind() Kind { return KindLines }

// Lines returns a copy of the segments
func (s *LinesShape) Lines() []geometry.Line {
	out := make([]geometry.Line, len(s.lines))
	copy(out, s.lines)
	return out
}

// Threshold is the distance under which a point counts as touching a segment
func (s *LinesShape) Threshold() float64 { return s.threshold }

// SetThreshold changes the point-vs-line tolerance; non-positive restores the default
func (s *LinesShape) SetThreshold(threshold float64) {
	if threshold <= 0 {
		threshold = geometry.DefaultLineThreshold
	}
	s.threshold = threshold
	s.setCache(s.bb, s.center, s.radius)
}

// AddLines appends segments
func (s *LinesShape) AddLines(lines ...geometry.Line) {
	if len(lines) == 0 {
		return
	}
	s.lines = append(s.lines, lines...)
	s.recompute()
}

// SetLines replaces all segments. The shape keeps its old segments when
// lines is empty.
func (s *LinesShape) SetLines(lines ...geometry.Line) error {
	if len(lines) == 0 {
		return ErrEmptyLines
	}
	s.lines = append(s.lines[:0], lines...)
	s.recompute()
	return nil
}

func (s *LinesShape) recompute() {
	bb := geometry.LinesBoundingBox(s.lines)
	center := bb.Center()
	var radiusSq float64
	for _, l := range s.lines {
		radiusSq = math.Max(radiusSq, center.DistanceSquared(l.From))
		radiusSq = math.Max(radiusSq, center.DistanceSquared(l.To))
	}
	s.setCache(bb, center, math.Sqrt(radiusSq))
}
