package roadgraph

import "context"

// RoadGraph is the decoder's collaborator boundary onto a pre-compiled map
// of road features, assumed to offer neighborhood queries, outgoing-edge
// enumeration, and closest-edge lookup. The decoder never constructs or
// owns the backend — it is handed one instance per worker, with no
// cross-worker sharing, and only ever reads from it, except for the
// fake-edge install/reset calls the router's setup phase makes.
//
// Implementations must be safe for concurrent read access from multiple
// RoadGraph instances backed by the same underlying data, but a single
// RoadGraph value is used by exactly one goroutine at a time.
type RoadGraph interface {
	// ClosestEdges returns up to maxCandidates edges whose geometry passes
	// within searchRadiusMeters of p, ordered by increasing distance to p.
	ClosestEdges(ctx context.Context, p Junction, searchRadiusMeters float64, maxCandidates int) ([]Edge, error)

	// OutgoingEdges enumerates edges starting at j, including any fake
	// edges currently installed at j.
	OutgoingEdges(ctx context.Context, j Junction) ([]Edge, error)

	// InstallFake adds a synthetic directed edge (IsFake set) from a to b
	// that OutgoingEdges(a) will subsequently report. Used to join an
	// arbitrary source/sink junction into the graph's connectivity.
	InstallFake(ctx context.Context, a, b Junction) (Edge, error)

	// ResetFakes removes every fake edge previously installed via
	// InstallFake. Called once at the start of each reference's setup
	// phase, before any new fakes for that reference are installed.
	ResetFakes(ctx context.Context) error

	// FeatureTypes returns the parsed road-type path set for a feature,
	// e.g. {"highway-motorway"}. Backs roadclass.Classifier's cache miss
	// path.
	FeatureTypes(ctx context.Context, id FeatureId) (FeatureTypeSet, error)
}
