package astar

import "github.com/katalvlaran/olrdecode/roadgraph"

// Links records, for every vertex relaxed during a search, the parent
// vertex and the edge taken to reach it. Path reconstruction walks this
// table backward from the terminal vertex. Entries are keyed by
// VertexKey rather than Vertex itself, so lookups are insensitive to
// fields (like a Junction's altitude) that aren't part of a vertex's
// search identity.
type Links struct {
	parent map[VertexKey]Vertex
	edge   map[VertexKey]roadgraph.Edge
}

// NewLinks returns an empty link table.
func NewLinks() *Links {
	return &Links{
		parent: make(map[VertexKey]Vertex),
		edge:   make(map[VertexKey]roadgraph.Edge),
	}
}

// Set records that v was reached from parent via edge.
func (l *Links) Set(v, parent Vertex, edge roadgraph.Edge) {
	key := v.Key()
	l.parent[key] = parent
	l.edge[key] = edge
}

// Parent returns the recorded parent and edge for v, and whether one was
// ever recorded (false for the search's initial vertex).
func (l *Links) Parent(v Vertex) (Vertex, roadgraph.Edge, bool) {
	key := v.Key()
	parent, ok := l.parent[key]
	if !ok {
		return Vertex{}, roadgraph.Edge{}, false
	}

	return parent, l.edge[key], true
}
