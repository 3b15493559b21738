package astar_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/olrdecode/astar"
	"github.com/katalvlaran/olrdecode/geo"
	"github.com/katalvlaran/olrdecode/roadclass"
	"github.com/katalvlaran/olrdecode/roadgraph"
)

func junctionAt(lat, lon float64) roadgraph.Junction {
	return roadgraph.Junction{Point: geo.FromLatLon(geo.LatLon{Lat: lat, Lon: lon})}
}

// eastOffset returns a longitude that places a point ~meters east of
// (lat, lon) at the given latitude, using the equirectangular
// approximation — fine for the small spans these tests use.
func eastOffset(lat, lon, meters float64) float64 {
	const metersPerDegreeLon = 111320.0 // at the equator; tests stay near lat 0
	return lon + meters/(metersPerDegreeLon)
}

func newRouter(g roadgraph.RoadGraph) *astar.Router {
	cache := roadclass.NewCache(roadclass.NewClassifier(), g)
	return astar.NewRouter(g, cache)
}

// TestSolve_StraightRoadTwoPoints covers the simplest case: a single
// tertiary edge exactly 100m long connecting both anchors due east.
func TestSolve_StraightRoadTwoPoints(t *testing.T) {
	ctx := context.Background()
	g := roadgraph.NewMemGraph()

	a := junctionAt(0, 0)
	b := junctionAt(0, eastOffset(0, 0, 100))
	fid := roadgraph.FeatureId{Country: "UA", Index: 1}
	g.AddFeature(fid, []roadgraph.Junction{a, b}, roadgraph.FeatureTypeSet{"highway-tertiary"}, false)

	r := newRouter(g)
	eastBearing := geo.Bearing(a.Point, b.Point)

	points := []astar.ReferencePoint{
		{Junction: a, Bearing: eastBearing, LFRCNP: roadgraph.FRC3, DNP: 100},
		{Junction: b, Bearing: eastBearing},
	}

	path, err := r.Solve(ctx, points)
	require.NoError(t, err)
	require.Len(t, path, 1)
	assert.Equal(t, fid, path[0].Feature)
	assert.False(t, path[0].IsFake)
}

// TestSolve_OvershootCutoff covers the overshoot cutoff: DNP says 50m but
// the only connecting edge is 10km long, which must exceed the overshoot
// cutoff and fail the segment.
func TestSolve_OvershootCutoff(t *testing.T) {
	ctx := context.Background()
	g := roadgraph.NewMemGraph()

	a := junctionAt(0, 0)
	b := junctionAt(0, eastOffset(0, 0, 10000))
	fid := roadgraph.FeatureId{Country: "UA", Index: 2}
	g.AddFeature(fid, []roadgraph.Junction{a, b}, roadgraph.FeatureTypeSet{"highway-tertiary"}, false)

	r := newRouter(g)
	bearing := geo.Bearing(a.Point, b.Point)

	points := []astar.ReferencePoint{
		{Junction: a, Bearing: bearing, LFRCNP: roadgraph.FRC3, DNP: 50},
		{Junction: b, Bearing: bearing},
	}

	_, err := r.Solve(ctx, points)
	assert.ErrorIs(t, err, astar.ErrNoPath)
}

// TestSolve_FRCRestrictionFiltersEdges covers the FRC restriction: the
// only connecting road is residential (FRC4), which fails an FRC2
// restriction.
func TestSolve_FRCRestrictionFiltersEdges(t *testing.T) {
	ctx := context.Background()
	g := roadgraph.NewMemGraph()

	a := junctionAt(0, 0)
	b := junctionAt(0, eastOffset(0, 0, 100))
	fid := roadgraph.FeatureId{Country: "UA", Index: 3}
	g.AddFeature(fid, []roadgraph.Junction{a, b}, roadgraph.FeatureTypeSet{"highway-residential"}, false)

	r := newRouter(g)
	bearing := geo.Bearing(a.Point, b.Point)

	points := []astar.ReferencePoint{
		{Junction: a, Bearing: bearing, LFRCNP: roadgraph.FRC2, DNP: 100},
		{Junction: b, Bearing: bearing},
	}

	_, err := r.Solve(ctx, points)
	assert.ErrorIs(t, err, astar.ErrNoPath)
}

// TestSolve_FRCRestrictionAllowsQualifyingRoad is the positive twin of the
// FRC filter test: an FRC2-or-better road must still be found.
func TestSolve_FRCRestrictionAllowsQualifyingRoad(t *testing.T) {
	ctx := context.Background()
	g := roadgraph.NewMemGraph()

	a := junctionAt(0, 0)
	b := junctionAt(0, eastOffset(0, 0, 100))
	fid := roadgraph.FeatureId{Country: "UA", Index: 4}
	g.AddFeature(fid, []roadgraph.Junction{a, b}, roadgraph.FeatureTypeSet{"highway-secondary"}, false)

	r := newRouter(g)
	bearing := geo.Bearing(a.Point, b.Point)

	points := []astar.ReferencePoint{
		{Junction: a, Bearing: bearing, LFRCNP: roadgraph.FRC2, DNP: 100},
		{Junction: b, Bearing: bearing},
	}

	path, err := r.Solve(ctx, points)
	require.NoError(t, err)
	require.Len(t, path, 1)
}

// TestSolve_EmitsNoFakeEdges checks that fake edges never leak into an
// emitted path, across a multi-edge route.
func TestSolve_EmitsNoFakeEdges(t *testing.T) {
	ctx := context.Background()
	g := roadgraph.NewMemGraph()

	a := junctionAt(0, 0)
	mid := junctionAt(0, eastOffset(0, 0, 50))
	b := junctionAt(0, eastOffset(0, 0, 100))
	fid := roadgraph.FeatureId{Country: "UA", Index: 5}
	g.AddFeature(fid, []roadgraph.Junction{a, mid, b}, roadgraph.FeatureTypeSet{"highway-tertiary"}, false)

	r := newRouter(g)
	bearing := geo.Bearing(a.Point, b.Point)

	points := []astar.ReferencePoint{
		{Junction: a, Bearing: bearing, LFRCNP: roadgraph.FRC3, DNP: 100},
		{Junction: b, Bearing: bearing},
	}

	path, err := r.Solve(ctx, points)
	require.NoError(t, err)
	for _, e := range path {
		assert.False(t, e.IsFake)
	}
}

// TestSolve_PathEdgesAreContiguous checks that consecutive edges in an
// emitted path always share a junction.
func TestSolve_PathEdgesAreContiguous(t *testing.T) {
	ctx := context.Background()
	g := roadgraph.NewMemGraph()

	a := junctionAt(0, 0)
	mid := junctionAt(0, eastOffset(0, 0, 50))
	b := junctionAt(0, eastOffset(0, 0, 100))
	fid := roadgraph.FeatureId{Country: "UA", Index: 6}
	g.AddFeature(fid, []roadgraph.Junction{a, mid, b}, roadgraph.FeatureTypeSet{"highway-tertiary"}, false)

	r := newRouter(g)
	bearing := geo.Bearing(a.Point, b.Point)

	points := []astar.ReferencePoint{
		{Junction: a, Bearing: bearing, LFRCNP: roadgraph.FRC3, DNP: 100},
		{Junction: b, Bearing: bearing},
	}

	path, err := r.Solve(ctx, points)
	require.NoError(t, err)
	for i := 0; i+1 < len(path); i++ {
		assert.Equal(t, path[i].End, path[i+1].Start)
	}
}

// TestSolve_TooFewPoints exercises the precondition guard directly.
func TestSolve_TooFewPoints(t *testing.T) {
	ctx := context.Background()
	g := roadgraph.NewMemGraph()
	r := newRouter(g)

	_, err := r.Solve(ctx, []astar.ReferencePoint{{Junction: junctionAt(0, 0)}})
	assert.ErrorIs(t, err, astar.ErrTooFewPoints)
}

// TestPivotSet_PotentialIsZeroAtMember confirms the heuristic is exactly
// zero at its own goal, the base case invariant 6 (admissibility) relies
// on.
func TestPivotSet_PotentialIsZeroAtMember(t *testing.T) {
	j := junctionAt(10, 20)
	ps := astar.PivotSet{j}
	assert.InDelta(t, 0, ps.Potential(j), 1e-6)
}

// TestSolve_IntermediatePivotDrivesStageAdvance exercises a genuine
// three-point route where the interior anchor (m) sits a few meters off
// the road, so BuildPivotSet discovers the nearby junction (jprev) as a
// pivot-set member and the stage advances there rather than at the
// off-road anchor itself. The final score's intermediate-error penalty
// must equal the real earth distance between the discovered junction and
// the off-road anchor it stands in for.
func TestSolve_IntermediatePivotDrivesStageAdvance(t *testing.T) {
	ctx := context.Background()
	g := roadgraph.NewMemGraph()

	a := junctionAt(0, 0)
	jprev := junctionAt(0, eastOffset(0, 0, 70))
	j1 := junctionAt(0, eastOffset(0, 0, 100))
	m := junctionAt(0, eastOffset(0, 0, 105)) // 5m past j1, off-road anchor
	b := junctionAt(0, eastOffset(0, 0, 200))

	bearing := geo.Bearing(a.Point, b.Point)

	g.AddFeature(roadgraph.FeatureId{Country: "UA", Index: 10}, []roadgraph.Junction{a, jprev}, roadgraph.FeatureTypeSet{"highway-tertiary"}, false)
	g.AddFeature(roadgraph.FeatureId{Country: "UA", Index: 11}, []roadgraph.Junction{jprev, j1}, roadgraph.FeatureTypeSet{"highway-tertiary"}, false)
	g.AddFeature(roadgraph.FeatureId{Country: "UA", Index: 12}, []roadgraph.Junction{j1, b}, roadgraph.FeatureTypeSet{"highway-tertiary"}, false)

	r := newRouter(g)

	points := []astar.ReferencePoint{
		{Junction: a, Bearing: bearing, LFRCNP: roadgraph.FRC3, DNP: 70},
		{Junction: m, Bearing: bearing, LFRCNP: roadgraph.FRC3, DNP: 130},
		{Junction: b, Bearing: bearing},
	}

	path, finalScore, err := r.SolveScored(ctx, points)
	require.NoError(t, err)
	require.Len(t, path, 3)
	for i := 0; i+1 < len(path); i++ {
		assert.Equal(t, path[i].End, path[i+1].Start)
	}

	want := geo.DistanceOnEarth(jprev.Point, m.Point)
	assert.InDelta(t, want, finalScore.IntermediateErrorPenalty, 1e-6)
}

// TestSolve_SinkBearingMismatchPenalizesPath gives the sink a reference
// bearing opposite to its arrival bearing (the bearing from the sink looking
// back along the only road that reaches it), so the final sink bearing
// check must fire and contribute a non-zero bearing penalty to the winning
// path's score.
func TestSolve_SinkBearingMismatchPenalizesPath(t *testing.T) {
	ctx := context.Background()
	g := roadgraph.NewMemGraph()

	a := junctionAt(0, 0)
	b := junctionAt(0, eastOffset(0, 0, 100))
	fid := roadgraph.FeatureId{Country: "UA", Index: 20}
	g.AddFeature(fid, []roadgraph.Junction{a, b}, roadgraph.FeatureTypeSet{"highway-tertiary"}, false)

	r := newRouter(g)
	actualBearing := geo.Bearing(a.Point, b.Point)
	arrivalBearing := geo.Bearing(b.Point, a.Point)
	wrongBearing := uint8((int(arrivalBearing) + geo.BearingBuckets/2) % geo.BearingBuckets)

	points := []astar.ReferencePoint{
		{Junction: a, Bearing: actualBearing, LFRCNP: roadgraph.FRC3, DNP: 100},
		{Junction: b, Bearing: wrongBearing},
	}

	path, finalScore, err := r.SolveScored(ctx, points)
	require.NoError(t, err)
	require.Len(t, path, 1)
	assert.Greater(t, finalScore.BearingPenalty, 0.0)
}
