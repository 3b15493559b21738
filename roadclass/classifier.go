// Package roadclass resolves a road feature's type strings into a
// (FunctionalRoadClass, FormOfAWay) pair, and memoizes the result per
// feature for the lifetime of one decode run.
//
// Classification is a flat level→type-path table plus a generic
// matchesAny predicate, rather than a dispatch hierarchy of per-class
// checkers — a data table reads and extends more easily than a class tree
// when the only thing that varies between "classes" is which strings they
// match.
package roadclass

import "github.com/katalvlaran/olrdecode/roadgraph"

// Classifier holds the static type-name registry; it is read-only once
// NewClassifier returns. decode's workers each construct their own
// Classifier rather than sharing one.
type Classifier struct {
	frcTable []frcRule
}

type frcRule struct {
	frc   roadgraph.FunctionalRoadClass
	paths []string
}

// NewClassifier builds the registry:
// motorway/motorway_link/trunk/trunk_link → FRC0; primary/primary_link →
// FRC1; secondary/secondary_link → FRC2; tertiary/tertiary_link → FRC3;
// road/unclassified/residential → FRC4; living_street → FRC5; else FRC7.
func NewClassifier() *Classifier {
	return &Classifier{
		frcTable: []frcRule{
			{roadgraph.FRC0, []string{"highway-motorway", "highway-motorway_link", "highway-trunk", "highway-trunk_link"}},
			{roadgraph.FRC1, []string{"highway-primary", "highway-primary_link"}},
			{roadgraph.FRC2, []string{"highway-secondary", "highway-secondary_link"}},
			{roadgraph.FRC3, []string{"highway-tertiary", "highway-tertiary_link"}},
			{roadgraph.FRC4, []string{"highway-road", "highway-unclassified", "highway-residential"}},
			{roadgraph.FRC5, []string{"highway-living_street"}},
		},
	}
}

// matchesAny reports whether any of types is present in paths.
func matchesAny(types roadgraph.FeatureTypeSet, paths []string) bool {
	for _, t := range types {
		for _, p := range paths {
			if t == p {
				return true
			}
		}
	}

	return false
}

// isTrunkFamily and isPrimaryFamily back the FormOfAWay assignment: the
// trunk family maps to Motorway, the primary family to
// MultipleCarriageway, and everything else to SingleCarriageway.
func isTrunkFamily(types roadgraph.FeatureTypeSet) bool {
	return matchesAny(types, []string{"highway-motorway", "highway-motorway_link", "highway-trunk", "highway-trunk_link"})
}

func isPrimaryFamily(types roadgraph.FeatureTypeSet) bool {
	return matchesAny(types, []string{"highway-primary", "highway-primary_link"})
}

// Classify maps a feature's parsed type set to a RoadInfo. Unmatched types
// fall back to FRC7 / SingleCarriageway, mirroring the original decoder's
// catch-all branch.
func (c *Classifier) Classify(types roadgraph.FeatureTypeSet) roadgraph.RoadInfo {
	frc := roadgraph.FRC7
	for _, rule := range c.frcTable {
		if matchesAny(types, rule.paths) {
			frc = rule.frc
			break
		}
	}

	fow := roadgraph.FOWSingleCarriageway
	switch {
	case isTrunkFamily(types):
		fow = roadgraph.FOWMotorway
	case isPrimaryFamily(types):
		fow = roadgraph.FOWMultipleCarriageway
	}

	return roadgraph.RoadInfo{FRC: frc, FOW: fow}
}
