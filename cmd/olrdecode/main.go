// olrdecode decodes a document of OpenLR linear location references into
// road-network paths.
//
// Usage:
//
//	go run ./cmd/olrdecode -input refs.xml -output paths.txt
//	go run ./cmd/olrdecode -input refs.xml -limit 500 -multipoints_only -num_threads 4
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"

	"github.com/katalvlaran/olrdecode/decode"
	"github.com/katalvlaran/olrdecode/roadgraph"
)

func main() {
	if err := run(); err != nil {
		slog.Error("olrdecode failed", "err", err)
		os.Exit(1)
	}
}

func run() error {
	var (
		inputPath       string
		outputPath      string
		limit           int
		multipointsOnly bool
		numThreads      int
	)

	flagSet := flag.NewFlagSet("olrdecode", flag.ContinueOnError)
	flagSet.StringVar(&inputPath, "input", "", "path to the xml reference document (required)")
	flagSet.StringVar(&outputPath, "output", "output.txt", "path to write the sink file")
	flagSet.IntVar(&limit, "limit", -1, "max segments to decode, -1 for unlimited")
	flagSet.BoolVar(&multipointsOnly, "multipoints_only", false, "decode only references with more than 2 points")
	flagSet.IntVar(&numThreads, "num_threads", 1, "worker count, 1..128")
	if err := flagSet.Parse(os.Args[1:]); err != nil {
		return err
	}

	if inputPath == "" {
		return fmt.Errorf("%w: -input is required", decode.ErrBadInput)
	}
	if numThreads < 1 || numThreads > 128 {
		return fmt.Errorf("%w: -num_threads must be in [1, 128], got %d", decode.ErrBadInput, numThreads)
	}
	if limit < -1 {
		return fmt.Errorf("%w: -limit must be >= -1, got %d", decode.ErrBadInput, limit)
	}

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelInfo}))

	in, err := os.Open(inputPath)
	if err != nil {
		return fmt.Errorf("opening input: %w", err)
	}
	defer in.Close()

	segments, err := decode.ParseXML(in)
	if err != nil {
		return fmt.Errorf("parsing input: %w", err)
	}
	logger.Info("reference document loaded", "segments", len(segments))

	out, err := os.Create(outputPath)
	if err != nil {
		return fmt.Errorf("creating output: %w", err)
	}
	defer out.Close()

	// MemGraph is scaffolding for this standalone demo: a real deployment
	// wires RoadGraph to a pre-compiled map index instead of an empty graph.
	newGraph := func() roadgraph.RoadGraph { return roadgraph.NewMemGraph() }

	stats, err := decode.Decode(context.Background(), logger, newGraph, segments, out, limit, multipointsOnly, numThreads)
	if err != nil {
		return fmt.Errorf("decoding: %w", err)
	}

	logger.Info("done",
		"output", outputPath,
		"handled", stats.RoutesHandled,
		"not_calculated", stats.RoutesNotCalculated,
	)

	return nil
}
