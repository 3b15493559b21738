package roadclass

import (
	"context"

	"github.com/katalvlaran/olrdecode/roadgraph"
)

// Cache memoizes RoadInfo lookups by FeatureId for the lifetime of one
// decode run. It carries no internal locking and is meant to be owned by a
// single worker — callers must not share a single Cache across goroutines.
type Cache struct {
	classifier *Classifier
	graph      roadgraph.RoadGraph
	entries    map[roadgraph.FeatureId]roadgraph.RoadInfo
}

// NewCache returns an empty cache backed by classifier and graph.
func NewCache(classifier *Classifier, graph roadgraph.RoadGraph) *Cache {
	return &Cache{
		classifier: classifier,
		graph:      graph,
		entries:    make(map[roadgraph.FeatureId]roadgraph.RoadInfo),
	}
}

// RoadInfo resolves id's RoadInfo, consulting the cache first and falling
// back to a graph feature-type read plus classification on a miss.
func (c *Cache) RoadInfo(ctx context.Context, id roadgraph.FeatureId) (roadgraph.RoadInfo, error) {
	if info, ok := c.entries[id]; ok {
		return info, nil
	}

	types, err := c.graph.FeatureTypes(ctx, id)
	if err != nil {
		return roadgraph.RoadInfo{}, err
	}

	info := c.classifier.Classify(types)
	c.entries[id] = info

	return info, nil
}

// PassFRCLowestRestriction reports whether edge may be traversed given
// restriction, consulting the cache for its FRC (fake edges always pass
// without a lookup).
func (c *Cache) PassFRCLowestRestriction(ctx context.Context, edge roadgraph.Edge, restriction roadgraph.FunctionalRoadClass) (bool, error) {
	if edge.IsFake {
		return true, nil
	}

	info, err := c.RoadInfo(ctx, edge.Feature)
	if err != nil {
		return false, err
	}

	return roadgraph.PassFRCLowestRestriction(edge, info.FRC, restriction), nil
}

// Len reports the number of distinct features classified so far. Exposed
// for tests that assert the cache actually amortizes lookups across edges
// sharing a feature.
func (c *Cache) Len() int {
	return len(c.entries)
}
