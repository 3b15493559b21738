package astar

import (
	"github.com/katalvlaran/olrdecode/geo"
	"github.com/katalvlaran/olrdecode/roadgraph"
)

// Vertex is one A* search state: the junction reached, the junction and
// accumulated distance at which the current stage began, which stage
// we're in, and whether the stage's bearing check has already fired.
type Vertex struct {
	Junction           roadgraph.Junction
	StageStart         roadgraph.Junction
	StageStartDistance float64
	Stage              int
	BearingChecked     bool
}

// VertexKey is the comparable identity of a Vertex used to key the scores
// and Links tables. It derives from Junction.Point rather than the full
// Junction value, matching Junction's own equality contract ("two
// junctions are equal iff their coordinates are equal") — two vertices at
// the same coordinate are the same search state regardless of the
// altitude a graph backend happens to attach to the Junction value.
type VertexKey struct {
	Point              geo.Point
	StageStartPoint    geo.Point
	StageStartDistance float64
	Stage              int
	BearingChecked     bool
}

// Key returns v's VertexKey.
func (v Vertex) Key() VertexKey {
	return VertexKey{
		Point:              v.Junction.Point,
		StageStartPoint:    v.StageStart.Point,
		StageStartDistance: v.StageStartDistance,
		Stage:              v.Stage,
		BearingChecked:     v.BearingChecked,
	}
}
