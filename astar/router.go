// Package astar implements the multi-stage A*-style search at the heart of
// the decoder. A Router advances through a sequence of stages, one per
// anchor point of a location reference, using an admissible potential
// heuristic over each stage's pivot set to keep the search tractable. Each
// worker constructs its own Router, RoadGraph adapter, and classifier
// cache; a Router is not safe for concurrent use and its Solve method is
// called once per input segment.
//
// The search's priority queue, lazy "skip stale" guard, and heap
// bookkeeping follow a standard Dijkstra/A* shape: a min-heap of (state,
// score) pairs, duplicate pushes on relaxation instead of an in-place
// decrease-key, and a scores map used to detect and discard stale pops.
package astar

import (
	"container/heap"
	"context"
	"fmt"
	"math"

	"github.com/katalvlaran/olrdecode/geo"
	"github.com/katalvlaran/olrdecode/roadclass"
	"github.com/katalvlaran/olrdecode/roadgraph"
	"github.com/katalvlaran/olrdecode/score"
)

// Fixed search tuning constants.
const (
	kDistanceAccuracyM = 1000.0
	kBearingDist       = 25.0
	kEps               = 1e-6
)

// Router runs the multi-stage A* search against a single RoadGraph and
// roadclass.Cache. Not safe for concurrent use — each worker owns its own
// Router.
type Router struct {
	graph roadgraph.RoadGraph
	cache *roadclass.Cache
}

// NewRouter constructs a Router over graph and cache.
func NewRouter(graph roadgraph.RoadGraph, cache *roadclass.Cache) *Router {
	return &Router{graph: graph, cache: cache}
}

// Solve decodes one linear location reference into the edge path that most
// plausibly realizes it. Fake edges are filtered from the result. Returns
// ErrTooFewPoints if points has fewer than 2 elements, and ErrNoPath if the
// search queue empties without reaching the final stage along a path that
// contains at least one real (non-fake) edge.
func (r *Router) Solve(ctx context.Context, points []ReferencePoint) ([]roadgraph.Edge, error) {
	path, _, err := r.SolveScored(ctx, points)

	return path, err
}

// SolveScored runs the same search as Solve but also returns the winning
// terminal vertex's composite score, letting callers (chiefly tests)
// inspect the individual penalty components that produced the final path.
func (r *Router) SolveScored(ctx context.Context, points []ReferencePoint) ([]roadgraph.Edge, score.Score, error) {
	n := len(points)
	if n < 2 {
		return nil, score.Score{}, ErrTooFewPoints
	}

	if err := r.graph.ResetFakes(ctx); err != nil {
		return nil, score.Score{}, fmt.Errorf("astar: reset fakes: %w", err)
	}

	pivotSets, err := r.buildPivotSets(ctx, points)
	if err != nil {
		return nil, score.Score{}, err
	}
	if len(pivotSets) != n-1 {
		panic("astar: pivot-set length must equal n-1")
	}

	source := points[0].Junction
	sink := points[n-1].Junction

	if err := r.installSourceSinkFakes(ctx, source, sink); err != nil {
		return nil, score.Score{}, err
	}

	return r.search(ctx, points, pivotSets, source)
}

// buildPivotSets computes P[0..n-2]: interior pivot sets for points
// [1..n-2], and the literal last point for the final stage.
func (r *Router) buildPivotSets(ctx context.Context, points []ReferencePoint) ([]PivotSet, error) {
	n := len(points)
	pivotSets := make([]PivotSet, n-1)

	for s := 0; s < n-2; s++ {
		ps, err := BuildPivotSet(ctx, r.graph, points[s+1].Junction)
		if err != nil {
			return nil, fmt.Errorf("astar: pivot set for point %d: %w", s+1, err)
		}
		pivotSets[s] = ps
	}
	pivotSets[n-2] = PivotSet{points[n-1].Junction}

	return pivotSets, nil
}

// installSourceSinkFakes joins the synthetic source and sink junctions
// into the graph's connectivity.
func (r *Router) installSourceSinkFakes(ctx context.Context, source, sink roadgraph.Junction) error {
	sourceEdges, err := r.graph.ClosestEdges(ctx, source, CloseVicinityMeters, MaxRoadCandidates)
	if err != nil {
		return fmt.Errorf("astar: closest edges to source: %w", err)
	}
	for _, e := range sourceEdges {
		if _, err := r.graph.InstallFake(ctx, source, e.Start); err != nil {
			return err
		}
		if _, err := r.graph.InstallFake(ctx, source, e.End); err != nil {
			return err
		}
	}

	sinkEdges, err := r.graph.ClosestEdges(ctx, sink, CloseVicinityMeters, MaxRoadCandidates)
	if err != nil {
		return fmt.Errorf("astar: closest edges to sink: %w", err)
	}
	for _, e := range sinkEdges {
		if _, err := r.graph.InstallFake(ctx, e.Start, sink); err != nil {
			return err
		}
		if _, err := r.graph.InstallFake(ctx, e.End, sink); err != nil {
			return err
		}
	}

	return nil
}

// queueItem is one entry in the priority queue: a state plus the score it
// was pushed with. Stale entries (whose score no longer matches the
// scores table) are skipped on pop.
type queueItem struct {
	v Vertex
	s score.Score
}

type priorityQueue []*queueItem

func (pq priorityQueue) Len() int            { return len(pq) }
func (pq priorityQueue) Less(i, j int) bool  { return score.Less(pq[i].s, pq[j].s) }
func (pq priorityQueue) Swap(i, j int)       { pq[i], pq[j] = pq[j], pq[i] }
func (pq *priorityQueue) Push(x interface{}) { *pq = append(*pq, x.(*queueItem)) }
func (pq *priorityQueue) Pop() interface{} {
	old := *pq
	n := len(old)
	item := old[n-1]
	old[n-1] = nil
	*pq = old[:n-1]

	return item
}

// searchState bundles the mutable tables threaded through one Solve call.
// scores is keyed by VertexKey, not Vertex, so that two states at the same
// coordinate are recognized as the same state regardless of any incidental
// Junction fields (altitude) that don't participate in a vertex's search
// identity.
type searchState struct {
	pq     priorityQueue
	scores map[VertexKey]score.Score
	links  *Links
}

func (s *searchState) relax(v, parent Vertex, edge roadgraph.Edge, newScore score.Score) {
	key := v.Key()
	if existing, ok := s.scores[key]; ok && !score.Less(newScore, existing) {
		return
	}
	s.scores[key] = newScore
	s.links.Set(v, parent, edge)
	heap.Push(&s.pq, &queueItem{v: v, s: newScore})
}

// potentialAt is π evaluated at stage, defaulting to 0 for the terminal
// stage n-1, which has no further pivot set — reaching it is the goal.
func potentialAt(pivotSets []PivotSet, stage int, j roadgraph.Junction) float64 {
	if stage < 0 || stage >= len(pivotSets) {
		return 0
	}

	return pivotSets[stage].Potential(j)
}

// search runs the main A* loop: pop the cheapest vertex, skip stale
// entries, and either terminate at the final stage or advance the vertex
// through the per-stage procedure.
func (r *Router) search(ctx context.Context, points []ReferencePoint, pivotSets []PivotSet, source roadgraph.Junction) ([]roadgraph.Edge, score.Score, error) {
	n := len(points)

	st := &searchState{
		scores: make(map[VertexKey]score.Score),
		links:  NewLinks(),
	}
	heap.Init(&st.pq)

	initial := Vertex{Junction: source, StageStart: source, StageStartDistance: 0, Stage: 0, BearingChecked: false}
	st.scores[initial.Key()] = score.Score{}
	heap.Push(&st.pq, &queueItem{v: initial, s: score.Score{}})

	for st.pq.Len() > 0 {
		item := heap.Pop(&st.pq).(*queueItem)
		u := item.v

		// Skip-stale guard: a cheaper relaxation has since replaced this entry.
		if current, ok := st.scores[u.Key()]; !ok || score.Less(current, item.s) {
			continue
		}

		if u.Stage < 0 || u.Stage >= n {
			panic("astar: popped vertex stage out of range")
		}

		if u.Stage == n-1 {
			// A terminal vertex reached through fake edges alone matched no
			// road; keep searching for one whose path uses a real edge.
			path := reconstruct(st.links, u)
			if len(path) == 0 {
				continue
			}

			return path, item.s, nil
		}

		if err := r.step(ctx, st, points, pivotSets, source, u, item.s); err != nil {
			return nil, score.Score{}, err
		}
	}

	return nil, score.Score{}, ErrNoPath
}

// step runs the per-stage procedure for one popped vertex u: an overshoot
// cutoff, the bearing-check transition, the stage-advance transition, and
// finally edge expansion.
func (r *Router) step(ctx context.Context, st *searchState, points []ReferencePoint, pivotSets []PivotSet, source roadgraph.Junction, u Vertex, us score.Score) error {
	n := len(points)
	s := u.Stage

	piU := potentialAt(pivotSets, s, u.Junction)
	// The reduced distance telescopes against the initial vertex's
	// potential, which is measured against stage 0's pivot set.
	piSource := potentialAt(pivotSets, 0, source)
	ud := us.Distance + piSource - piU

	// 1. Overshoot cutoff.
	dnp := points[s].DNP
	limit := u.StageStartDistance + dnp + math.Max(kDistanceAccuracyM, dnp)
	if ud > limit {
		return nil
	}

	skipExpansion := false

	if piU < kEps {
		switch {
		case !u.BearingChecked:
			// 2. Bearing-check transition.
			v := Vertex{Junction: u.Junction, StageStart: u.StageStart, StageStartDistance: u.StageStartDistance, Stage: s, BearingChecked: true}
			ns := us
			if !u.StageStart.Equal(u.Junction) {
				diff := geo.BearingDiff(points[s].Bearing, geo.Bearing(u.StageStart.Point, u.Junction.Point))
				ns = ns.AddBearingPenalty(diff, kBearingDist)
			}
			st.relax(v, u, roadgraph.MakeFake(u.Junction, u.Junction), ns)

		default:
			// 3. Stage advance.
			v := Vertex{Junction: u.Junction, StageStart: u.Junction, StageStartDistance: ud, Stage: s + 1, BearingChecked: false}
			piV := potentialAt(pivotSets, s+1, v.Junction)
			ns := us.AddDistance(math.Max(piV-piU, 0))
			ns = ns.AddIntermediateErrorPenalty(geo.DistanceOnEarth(u.Junction.Point, points[s+1].Junction.Point))

			if s+1 == n-1 {
				b := reverseBearingPoint(st.links, u)
				diff := geo.BearingDiff(points[n-1].Bearing, geo.Bearing(v.Junction.Point, b.Point))
				ns = ns.AddBearingPenalty(diff, kBearingDist)
				skipExpansion = true
			}

			st.relax(v, u, roadgraph.MakeFake(u.Junction, u.Junction), ns)
		}
	}

	if skipExpansion {
		return nil
	}

	return r.expand(ctx, st, points, pivotSets, u, us, ud, piU)
}

// expand is step 4, "Edge expansion".
func (r *Router) expand(ctx context.Context, st *searchState, points []ReferencePoint, pivotSets []PivotSet, u Vertex, us score.Score, ud, piU float64) error {
	s := u.Stage

	edges, err := r.graph.OutgoingEdges(ctx, u.Junction)
	if err != nil {
		return fmt.Errorf("astar: outgoing edges: %w", err)
	}

	for _, edge := range edges {
		pass, err := r.cache.PassFRCLowestRestriction(ctx, edge, points[s].LFRCNP)
		if err != nil {
			return fmt.Errorf("astar: frc restriction: %w", err)
		}
		if !pass {
			continue
		}

		w := geo.DistanceOnEarth(edge.Start.Point, edge.End.Point)
		v := Vertex{Junction: edge.End, StageStart: u.StageStart, StageStartDistance: u.StageStartDistance, Stage: s, BearingChecked: u.BearingChecked}
		piV := potentialAt(pivotSets, s, v.Junction)
		ns := us.AddDistance(math.Max(w+piV-piU, 0))

		vd := ud + w
		if !v.BearingChecked && vd >= u.StageStartDistance+kBearingDist {
			if ud >= u.StageStartDistance+kBearingDist {
				panic("astar: mid-stage bearing precondition violated: ud already past threshold")
			}

			distAlongEdge := vd - u.StageStartDistance - kBearingDist
			p := geo.PointAtSegment(edge.Start.Point, edge.End.Point, distAlongEdge)
			if u.StageStart.Point != p {
				diff := geo.BearingDiff(points[s].Bearing, geo.Bearing(u.StageStart.Point, p))
				ns = ns.AddBearingPenalty(diff, kBearingDist)
			}
			v.BearingChecked = true
		}

		if vd > v.StageStartDistance+points[s].DNP {
			overshoot := math.Min(vd-v.StageStartDistance-points[s].DNP, w)
			ns = ns.AddDistanceErrorPenalty(overshoot)
		}

		if edge.IsFake {
			ns = ns.AddFakePenalty(w)
		}

		st.relax(v, u, edge, ns)
	}

	return nil
}

// reverseBearingPoint measures the arrival bearing at the sink by walking
// backward from u within its current stage, accumulating edge lengths
// until kBearingDist is reached, and interpolating that point on the last
// traversed edge counted from its end. If the stage is shorter than
// kBearingDist altogether, the earliest junction reached in the stage is
// used instead.
func reverseBearingPoint(links *Links, u Vertex) roadgraph.Junction {
	acc := 0.0
	cur := u
	earliest := u.Junction

	for {
		parent, edge, ok := links.Parent(cur)
		if !ok || parent.Stage != u.Stage {
			break
		}

		w := geo.DistanceOnEarth(edge.Start.Point, edge.End.Point)
		if acc+w >= kBearingDist {
			p := geo.PointAtSegment(edge.End.Point, edge.Start.Point, kBearingDist-acc)

			return roadgraph.Junction{Point: p}
		}

		acc += w
		earliest = edge.Start
		cur = parent
	}

	return earliest
}

// reconstruct walks links backward from the terminal vertex to the
// search's initial vertex, reverses the resulting edge list, and filters
// out fake edges.
func reconstruct(links *Links, terminal Vertex) []roadgraph.Edge {
	var edges []roadgraph.Edge

	cur := terminal
	for {
		parent, edge, ok := links.Parent(cur)
		if !ok {
			break
		}
		edges = append(edges, edge)
		cur = parent
	}

	for i, j := 0, len(edges)-1; i < j; i, j = i+1, j-1 {
		edges[i], edges[j] = edges[j], edges[i]
	}

	out := edges[:0]
	for _, e := range edges {
		if !e.IsFake {
			out = append(out, e)
		}
	}

	return out
}
