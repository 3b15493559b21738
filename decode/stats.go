package decode

// Stats accumulates per-worker decode counters and is merged across
// workers once the pool joins. RoutesNotCalculated counts segments that
// failed the A* search.
//
// ShortRoutes, ZeroCandidates and MoreThanOneCandidate are carried only
// for log-format compatibility with the historical sequential decoder
// this module doesn't implement: the A* router never updates them, so
// they always merge to 0.
type Stats struct {
	RoutesHandled        uint32
	RoutesNotCalculated  uint32
	ShortRoutes          uint32
	ZeroCandidates       uint32
	MoreThanOneCandidate uint32
}

// Add accumulates other into s in place.
func (s *Stats) Add(other Stats) {
	s.RoutesHandled += other.RoutesHandled
	s.RoutesNotCalculated += other.RoutesNotCalculated
	s.ShortRoutes += other.ShortRoutes
	s.ZeroCandidates += other.ZeroCandidates
	s.MoreThanOneCandidate += other.MoreThanOneCandidate
}
