package roadclass_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/olrdecode/roadclass"
	"github.com/katalvlaran/olrdecode/roadgraph"
)

func TestClassify_Table(t *testing.T) {
	c := roadclass.NewClassifier()

	cases := []struct {
		name string
		in   roadgraph.FeatureTypeSet
		frc  roadgraph.FunctionalRoadClass
		fow  roadgraph.FormOfAWay
	}{
		{"motorway", roadgraph.FeatureTypeSet{"highway-motorway"}, roadgraph.FRC0, roadgraph.FOWMotorway},
		{"trunk_link", roadgraph.FeatureTypeSet{"highway-trunk_link"}, roadgraph.FRC0, roadgraph.FOWMotorway},
		{"primary", roadgraph.FeatureTypeSet{"highway-primary"}, roadgraph.FRC1, roadgraph.FOWMultipleCarriageway},
		{"secondary", roadgraph.FeatureTypeSet{"highway-secondary"}, roadgraph.FRC2, roadgraph.FOWSingleCarriageway},
		{"tertiary_link", roadgraph.FeatureTypeSet{"highway-tertiary_link"}, roadgraph.FRC3, roadgraph.FOWSingleCarriageway},
		{"residential", roadgraph.FeatureTypeSet{"highway-residential"}, roadgraph.FRC4, roadgraph.FOWSingleCarriageway},
		{"living_street", roadgraph.FeatureTypeSet{"highway-living_street"}, roadgraph.FRC5, roadgraph.FOWSingleCarriageway},
		{"unknown", roadgraph.FeatureTypeSet{"highway-footway"}, roadgraph.FRC7, roadgraph.FOWSingleCarriageway},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			info := c.Classify(tc.in)
			assert.Equal(t, tc.frc, info.FRC)
			assert.Equal(t, tc.fow, info.FOW)
		})
	}
}

// stubGraph answers FeatureTypes from a fixed map and counts calls, so
// tests can assert the cache amortizes lookups.
type stubGraph struct {
	roadgraph.RoadGraph
	types map[roadgraph.FeatureId]roadgraph.FeatureTypeSet
	calls int
}

func (s *stubGraph) FeatureTypes(_ context.Context, id roadgraph.FeatureId) (roadgraph.FeatureTypeSet, error) {
	s.calls++
	types, ok := s.types[id]
	if !ok {
		return nil, errors.New("not found")
	}

	return types, nil
}

func TestCache_MemoizesAcrossSharedFeature(t *testing.T) {
	ctx := context.Background()
	fid := roadgraph.FeatureId{Country: "UA", Index: 7}
	stub := &stubGraph{types: map[roadgraph.FeatureId]roadgraph.FeatureTypeSet{
		fid: {"highway-secondary"},
	}}

	cache := roadclass.NewCache(roadclass.NewClassifier(), stub)

	for i := 0; i < 5; i++ {
		info, err := cache.RoadInfo(ctx, fid)
		require.NoError(t, err)
		assert.Equal(t, roadgraph.FRC2, info.FRC)
	}

	assert.Equal(t, 1, stub.calls, "expected a single graph read amortized across repeated lookups")
	assert.Equal(t, 1, cache.Len())
}

func TestPassFRCLowestRestriction_FakeAlwaysPasses(t *testing.T) {
	ctx := context.Background()
	cache := roadclass.NewCache(roadclass.NewClassifier(), &stubGraph{types: map[roadgraph.FeatureId]roadgraph.FeatureTypeSet{}})

	fake := roadgraph.MakeFake(roadgraph.Junction{}, roadgraph.Junction{})
	ok, err := cache.PassFRCLowestRestriction(ctx, fake, roadgraph.FRC0)
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestPassFRCLowestRestriction_FiltersLowerClass(t *testing.T) {
	ctx := context.Background()
	fid := roadgraph.FeatureId{Country: "UA", Index: 1}
	stub := &stubGraph{types: map[roadgraph.FeatureId]roadgraph.FeatureTypeSet{
		fid: {"highway-residential"}, // FRC4
	}}
	cache := roadclass.NewCache(roadclass.NewClassifier(), stub)

	edge := roadgraph.Edge{Feature: fid}
	ok, err := cache.PassFRCLowestRestriction(ctx, edge, roadgraph.FRC2)
	require.NoError(t, err)
	assert.False(t, ok, "FRC4 edge must not pass an FRC2 restriction")
}
