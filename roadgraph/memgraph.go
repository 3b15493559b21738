package roadgraph

import (
	"context"
	"fmt"
	"math"
	"sort"
	"sync"

	"github.com/katalvlaran/olrdecode/geo"
)

// MemGraph is a small in-memory RoadGraph used by tests and the bundled
// CLI. Real deployments back RoadGraph with a pre-compiled map
// index; MemGraph exists only so the router has something concrete to run
// against without that external component.
//
// Adjacency is stored as junction → outgoing edges, guarded by a single
// RWMutex covering both the real and fake edge maps.
type MemGraph struct {
	mu sync.RWMutex

	out   map[geo.Point][]Edge
	types map[FeatureId]FeatureTypeSet
	fakes map[geo.Point][]Edge
}

// NewMemGraph returns an empty graph.
func NewMemGraph() *MemGraph {
	return &MemGraph{
		out:   make(map[geo.Point][]Edge),
		types: make(map[FeatureId]FeatureTypeSet),
		fakes: make(map[geo.Point][]Edge),
	}
}

// AddFeature registers a linear feature as a chain of directed edges
// between consecutive junctions, and records its road-type set for later
// classification. If bidirectional is true, the reverse edges are also
// added (as separate, reverse-indexed segments).
func (g *MemGraph) AddFeature(id FeatureId, junctions []Junction, types FeatureTypeSet, bidirectional bool) {
	g.mu.Lock()
	defer g.mu.Unlock()

	g.types[id] = types

	for i := 0; i+1 < len(junctions); i++ {
		e := Edge{Feature: id, SegmentIndex: uint32(i), Start: junctions[i], End: junctions[i+1]}
		g.out[e.Start.Point] = append(g.out[e.Start.Point], e)

		if bidirectional {
			rev := Edge{Feature: id, SegmentIndex: uint32(i), Start: junctions[i+1], End: junctions[i]}
			g.out[rev.Start.Point] = append(g.out[rev.Start.Point], rev)
		}
	}
}

// ClosestEdges implements RoadGraph. An edge's distance to j is the
// distance to its nearer endpoint; an edge whose interior passes within
// radius of j while both endpoints lie farther away is not returned.
func (g *MemGraph) ClosestEdges(_ context.Context, j Junction, radius float64, maxCandidates int) ([]Edge, error) {
	g.mu.RLock()
	defer g.mu.RUnlock()

	type scored struct {
		e Edge
		d float64
	}
	var candidates []scored
	seen := make(map[string]bool)

	for _, edges := range g.out {
		for _, e := range edges {
			key := fmt.Sprintf("%s-%d-%d-%v", e.Feature.Country, e.Feature.Index, e.SegmentIndex, e.Start.Point == j.Point)
			if seen[key] {
				continue
			}
			seen[key] = true

			d := math.Min(geo.DistanceOnEarth(j.Point, e.Start.Point), geo.DistanceOnEarth(j.Point, e.End.Point))
			if d <= radius {
				candidates = append(candidates, scored{e: e, d: d})
			}
		}
	}

	sort.Slice(candidates, func(i, k int) bool { return candidates[i].d < candidates[k].d })

	if maxCandidates > 0 && len(candidates) > maxCandidates {
		candidates = candidates[:maxCandidates]
	}

	out := make([]Edge, len(candidates))
	for i, c := range candidates {
		out[i] = c.e
	}

	return out, nil
}

// OutgoingEdges implements RoadGraph.
func (g *MemGraph) OutgoingEdges(_ context.Context, j Junction) ([]Edge, error) {
	g.mu.RLock()
	defer g.mu.RUnlock()

	real := g.out[j.Point]
	fake := g.fakes[j.Point]

	edges := make([]Edge, 0, len(real)+len(fake))
	edges = append(edges, real...)
	edges = append(edges, fake...)

	return edges, nil
}

// InstallFake implements RoadGraph.
func (g *MemGraph) InstallFake(_ context.Context, a, b Junction) (Edge, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	e := Edge{Start: a, End: b, IsFake: true}
	g.fakes[a.Point] = append(g.fakes[a.Point], e)

	return e, nil
}

// ResetFakes implements RoadGraph.
func (g *MemGraph) ResetFakes(_ context.Context) error {
	g.mu.Lock()
	defer g.mu.Unlock()

	g.fakes = make(map[geo.Point][]Edge)

	return nil
}

// FeatureTypes implements RoadGraph.
func (g *MemGraph) FeatureTypes(_ context.Context, id FeatureId) (FeatureTypeSet, error) {
	g.mu.RLock()
	defer g.mu.RUnlock()

	types, ok := g.types[id]
	if !ok {
		return nil, fmt.Errorf("roadgraph: unknown feature %s-%d", id.Country, id.Index)
	}

	return types, nil
}
