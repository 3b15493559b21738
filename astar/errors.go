package astar

import "errors"

// ErrTooFewPoints indicates a reference with fewer than two points was
// passed to Solve; a location reference needs at least a start and an end.
var ErrTooFewPoints = errors.New("astar: reference must have at least 2 points")

// ErrNoPath indicates the search queue emptied before any terminal-stage
// vertex whose path contains a real (non-fake) edge was popped. Callers should treat this as a per-segment decode
// failure and emit no output line for it.
var ErrNoPath = errors.New("astar: no path found")
