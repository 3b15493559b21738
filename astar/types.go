package astar

import "github.com/katalvlaran/olrdecode/roadgraph"

// ReferencePoint is one anchor of a linear location reference, already
// projected into the router's working coordinate space. DNP and LFRCNP
// are meaningless on the last point of a reference.
type ReferencePoint struct {
	Junction roadgraph.Junction
	Bearing  uint8 // quantized 0..255
	LFRCNP   roadgraph.FunctionalRoadClass
	DNP      float64 // distance to next point, meters
}
