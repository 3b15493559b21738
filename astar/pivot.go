package astar

import (
	"context"
	"math"

	"github.com/katalvlaran/olrdecode/geo"
	"github.com/katalvlaran/olrdecode/roadgraph"
)

// MaxRoadCandidates bounds how many closest edges contribute to a pivot
// set or to the source/sink fake-edge vicinity.
const MaxRoadCandidates = 10

// CloseVicinityMeters is the search radius used when locating edges near a
// reference point, matching the 25m rect `openlr_simple_decoder.cpp`
// builds around a point before scanning for road features.
const CloseVicinityMeters = 25.0

// PivotSet is the multiset of junctions used as a stage's goal set for the
// A* potential heuristic.
type PivotSet []roadgraph.Junction

// Potential returns π(j): the minimum DistanceOnEarth from j to any point
// in the set. It is admissible — it never overestimates the remaining
// distance to the stage's goal, since every pivot is itself a point the
// path could end the stage at.
func (ps PivotSet) Potential(j roadgraph.Junction) float64 {
	if len(ps) == 0 {
		return 0
	}

	best := math.Inf(1)
	for _, p := range ps {
		if d := geo.DistanceOnEarth(j.Point, p.Point); d < best {
			best = d
		}
	}

	return best
}

// BuildPivotSet finds up to MaxRoadCandidates closest edges to p within
// CloseVicinityMeters and returns the multiset of their start/end
// junctions.
func BuildPivotSet(ctx context.Context, g roadgraph.RoadGraph, p roadgraph.Junction) (PivotSet, error) {
	edges, err := g.ClosestEdges(ctx, p, CloseVicinityMeters, MaxRoadCandidates)
	if err != nil {
		return nil, err
	}

	ps := make(PivotSet, 0, len(edges)*2)
	for _, e := range edges {
		ps = append(ps, e.Start, e.End)
	}

	return ps, nil
}
