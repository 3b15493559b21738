// Package olrdecode decodes OpenLR linear location references against a
// road network: it reconstructs the sequence of road-graph edges an
// encoder meant when it produced a chain of location reference points.
//
// The module is organized as:
//
//	geo/       — map projection, great-circle distance, bearings
//	roadgraph/ — the RoadGraph collaborator interface and a small in-memory
//	             implementation used by tests and the bundled CLI
//	roadclass/ — functional-road-class / form-of-way classification and
//	             its per-worker memoizing cache
//	score/     — the additive path-quality score the router minimizes
//	astar/     — the multi-stage A* router (astar.Router.Solve)
//	decode/    — the decoder façade: filtering, sorting, the worker pool,
//	             and the sink file writer
//	cmd/olrdecode — a standalone CLI driving decode.Decode end to end
//
// Real deployments provide their own roadgraph.RoadGraph backed by a
// pre-compiled map index; this module does not ship one.
package olrdecode
