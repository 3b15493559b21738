package decode

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"sort"

	"golang.org/x/sync/errgroup"
)

// Decode implements the decoder façade:
//  1. filter to multipoint references only, when multipointsOnly is set
//  2. truncate to maxSegments (maxSegments < 0 means unlimited)
//  3. stable-sort the surviving segments by SegmentID ascending
//  4. allocate one output slot per surviving segment
//  5. fan the segments out to numThreads workers, each running its own
//     astar.Router over its own RoadGraph and roadclass.Cache
//  6. merge per-worker Stats and write the sink file to sink
//
// logger may be nil to disable progress logging. newGraph is called once
// per worker, from that worker's goroutine, so calls may run concurrently.
func Decode(ctx context.Context, logger *slog.Logger, newGraph GraphFactory, segments []LinearSegment, sink io.Writer, maxSegments int, multipointsOnly bool, numThreads int) (Stats, error) {
	if numThreads < 1 {
		return Stats{}, fmt.Errorf("decode: numThreads must be >= 1, got %d: %w", numThreads, ErrBadInput)
	}
	if newGraph == nil {
		return Stats{}, fmt.Errorf("decode: newGraph factory is required: %w", ErrBadInput)
	}

	filtered := segments
	if multipointsOnly {
		filtered = make([]LinearSegment, 0, len(segments))
		for _, seg := range segments {
			if len(seg.LocationReference.Points) > 2 {
				filtered = append(filtered, seg)
			}
		}
	}

	if maxSegments >= 0 && len(filtered) > maxSegments {
		filtered = filtered[:maxSegments]
	}

	sort.SliceStable(filtered, func(i, j int) bool {
		return filtered[i].SegmentID < filtered[j].SegmentID
	})

	results := make([]PathResult, len(filtered))
	if len(filtered) == 0 {
		if err := WriteSink(sink, results); err != nil {
			return Stats{}, fmt.Errorf("decode: writing empty sink: %w", err)
		}
		return Stats{}, nil
	}

	batch := batchSize()
	workerStats := make([]Stats, numThreads)

	g, gctx := errgroup.WithContext(ctx)
	for t := 0; t < numThreads; t++ {
		t := t
		g.Go(func() error {
			indices := batchIndicesFor(t, numThreads, len(filtered), batch)
			workerStats[t] = runWorker(gctx, t, logger, newGraph, filtered, indices, results)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return Stats{}, fmt.Errorf("%w: %v", ErrDecoder, err)
	}

	var total Stats
	for _, s := range workerStats {
		total.Add(s)
	}

	if err := WriteSink(sink, results); err != nil {
		return Stats{}, fmt.Errorf("decode: writing sink: %w", err)
	}

	if logger != nil {
		logger.Info("decode complete",
			"handled", total.RoutesHandled,
			"not_calculated", total.RoutesNotCalculated,
			"short_routes", total.ShortRoutes,
			"zero_candidates", total.ZeroCandidates,
			"ambiguous", total.MoreThanOneCandidate,
		)
	}

	return total, nil
}
