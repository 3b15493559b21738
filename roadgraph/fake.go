package roadgraph

// MakeFake builds a synthetic, non-installed fake edge between two
// junctions. It is used by the router for the bearing-check self
// transition, which needs a sentinel edge purely for Links bookkeeping —
// it is never added to the graph via InstallFake and is always filtered
// out of an emitted path.
func MakeFake(a, b Junction) Edge {
	return Edge{Start: a, End: b, IsFake: true}
}
