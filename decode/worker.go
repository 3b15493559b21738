package decode

import (
	"context"
	"log/slog"

	"github.com/katalvlaran/olrdecode/astar"
	"github.com/katalvlaran/olrdecode/roadclass"
	"github.com/katalvlaran/olrdecode/roadgraph"
)

// progressLogInterval is how often a worker logs a progress line naming
// its thread index.
const progressLogInterval = 100

// GraphFactory returns a fresh RoadGraph adapter for one worker. Workers
// never share a RoadGraph instance: each gets its own fake-edge overlay so
// install/reset calls from concurrent workers never interfere, even though
// the underlying map data they read may be shared.
type GraphFactory func() roadgraph.RoadGraph

// toReferencePoints projects a LinearLocationReference into the sequence
// of astar.ReferencePoint the router consumes.
func toReferencePoints(ref LinearLocationReference) []astar.ReferencePoint {
	points := make([]astar.ReferencePoint, len(ref.Points))
	for i, lrp := range ref.Points {
		points[i] = astar.ReferencePoint{
			Junction: lrp.LatLon,
			Bearing:  lrp.Bearing,
			LFRCNP:   lrp.LowestFRCToNextPoint,
			DNP:      lrp.DistanceToNextPointMeters,
		}
	}

	return points
}

// runWorker decodes every segment at the given indices, writing results
// into the shared results slice at the segment's own index. No lock is
// needed because each worker's index set is disjoint by construction.
func runWorker(ctx context.Context, threadIndex int, logger *slog.Logger, newGraph GraphFactory, segments []LinearSegment, indices []int, results []PathResult) Stats {
	var stats Stats

	graph := newGraph()
	cache := roadclass.NewCache(roadclass.NewClassifier(), graph)
	router := astar.NewRouter(graph, cache)

	completed := 0
	for _, idx := range indices {
		seg := segments[idx]
		path, err := router.Solve(ctx, toReferencePoints(seg.LocationReference))

		stats.RoutesHandled++
		if err != nil {
			stats.RoutesNotCalculated++
			results[idx] = PathResult{SegmentID: seg.SegmentID}
		} else {
			results[idx] = PathResult{SegmentID: seg.SegmentID, Path: path}
		}

		completed++
		if completed%progressLogInterval == 0 && logger != nil {
			logger.Info("decode progress", "thread", threadIndex, "completed", completed)
		}
	}

	return stats
}
