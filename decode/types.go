// Package decode implements the decoder façade: loading already-parsed
// reference records, filtering and sorting them, fanning them out to a
// worker pool that runs one astar.Router per worker, and writing the
// result to a sink file.
package decode

import (
	"math"

	"github.com/katalvlaran/olrdecode/roadgraph"
)

// InvalidSegmentID is the sentinel segmentId value matching
// LinearSegment::kInvalidSegmentId in the original decoder.
const InvalidSegmentID = math.MaxUint32

// LocationReferencePoint is one OpenLR anchor point.
// DistanceToNextPointMeters and LowestFRCToNextPoint are meaningless on
// the last point of a LinearLocationReference.
type LocationReferencePoint struct {
	LatLon                    roadgraph.Junction // already-projected geographic position
	Bearing                   uint8              // quantized 0..255
	FunctionalRoadClass       roadgraph.FunctionalRoadClass
	FormOfAWay                roadgraph.FormOfAWay
	DistanceToNextPointMeters float64
	LowestFRCToNextPoint      roadgraph.FunctionalRoadClass
}

// LinearLocationReference is an ordered sequence of at least two LRPs plus
// the reference's start/end trim offsets.
type LinearLocationReference struct {
	Points               []LocationReferencePoint
	PositiveOffsetMeters float64
	NegativeOffsetMeters float64
}

// LinearSegment is one input record: a unique segment id, its location
// reference, and the reference's declared total length.
type LinearSegment struct {
	SegmentID           uint32
	LocationReference   LinearLocationReference
	SegmentLengthMeters float64
}
