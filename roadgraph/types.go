// Package roadgraph defines the types and collaborator interface through
// which the decoder observes a private road network. The graph itself —
// storage, spatial indexing, feature loading — is an external concern;
// this package only names the shapes the decoder depends on, plus a small
// in-memory implementation (MemGraph) used by tests and the bundled CLI.
package roadgraph

import "github.com/katalvlaran/olrdecode/geo"

// FeatureId is an opaque handle into the map backend: a tile ("mwm") plus
// the index of a linear feature within that tile.
type FeatureId struct {
	Country string
	Index   uint32
}

// Junction is a point on the road network, identified by its projected
// coordinate. Two junctions are equal iff their coordinates are equal.
type Junction struct {
	Point    geo.Point
	Altitude float64
}

// Equal reports whether two junctions occupy the same coordinate.
func (j Junction) Equal(other Junction) bool {
	return j.Point == other.Point
}

// Edge is a directed segment of a feature between two junctions.
//
// SegmentIndex is the edge's position within its parent feature, used when
// rendering the sink's country-featureIndex-segmentIndex token. IsFake
// marks synthetic edges installed by the router's setup phase (source/sink
// connectors, and the self-transition/no-op sentinel used at bearing
// checks) — fake edges are always passable and are filtered out of the
// final emitted path.
type Edge struct {
	Feature      FeatureId
	SegmentIndex uint32
	Start        Junction
	End          Junction
	IsFake       bool
}

// RoadInfo is the cached classification of a feature: its functional road
// class and physical form. It is looked up once per feature per decode run
// (see package roadclass) and is immutable once computed.
type RoadInfo struct {
	FRC FunctionalRoadClass
	FOW FormOfAWay
}

// FunctionalRoadClass ranks road importance; FRC0 is most important.
type FunctionalRoadClass int

const (
	FRC0 FunctionalRoadClass = iota
	FRC1
	FRC2
	FRC3
	FRC4
	FRC5
	FRC6
	FRC7
	FRCNotAValue
)

// FormOfAWay describes the physical form of a road.
type FormOfAWay int

const (
	FOWUndefined FormOfAWay = iota
	FOWMotorway
	FOWMultipleCarriageway
	FOWSingleCarriageway
	FOWRoundabout
	FOWTrafficSquare
	FOWSlipRoad
	FOWOther
	FOWBikePath
	FOWFootpath
	FOWNotAValue
)

// PassFRCLowestRestriction reports whether edge may be traversed under a
// "lowest FRC to next point" restriction. Fake edges always pass; real
// edges pass iff their cached FRC is at least as important (numerically
// ≤) as restriction.
func PassFRCLowestRestriction(edge Edge, frc FunctionalRoadClass, restriction FunctionalRoadClass) bool {
	if edge.IsFake {
		return true
	}

	return frc <= restriction
}

// FeatureTypeSet is the set of OSM-style road type path strings parsed from
// a feature's header, e.g. "highway-motorway" or "highway-residential".
// It is the input to roadclass.Classifier.Classify.
type FeatureTypeSet []string
