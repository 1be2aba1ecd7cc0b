package services

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"

	"travel-itinerary-service/internal/domain"
)

// Two tight blobs around Paris and London plus a straggler near each.
func blobPOIs() []POI {
	return []POI{
		{Name: "Louvre", Coordinates: domain.Coordinates{Lat: 48.8606, Lng: 2.3376}},
		{Name: "Orsay", Coordinates: domain.Coordinates{Lat: 48.8600, Lng: 2.3266}},
		{Name: "Notre-Dame", Coordinates: domain.Coordinates{Lat: 48.8530, Lng: 2.3499}},
		{Name: "Tower of London", Coordinates: domain.Coordinates{Lat: 51.5081, Lng: -0.0759}},
		{Name: "British Museum", Coordinates: domain.Coordinates{Lat: 51.5194, Lng: -0.1270}},
		{Name: "Big Ben", Coordinates: domain.Coordinates{Lat: 51.5007, Lng: -0.1246}},
	}
}

func TestClusterPOIsPartitionIsExact(t *testing.T) {
	points := blobPOIs()

	groups := ClusterPOIs(points, 2)
	require.LessOrEqual(t, len(groups), 2)

	seen := map[string]int{}
	total := 0
	for _, g := range groups {
		for _, p := range g {
			seen[p.Name]++
			total++
		}
	}
	require.Equal(t, len(points), total)
	for _, p := range points {
		require.Equal(t, 1, seen[p.Name], "point %q must appear exactly once", p.Name)
	}
}

func TestClusterPOIsSeparatesDistantBlobs(t *testing.T) {
	groups := ClusterPOIs(blobPOIs(), 2)

	cityOf := func(name string) string {
		switch name {
		case "Louvre", "Orsay", "Notre-Dame":
			return "paris"
		default:
			return "london"
		}
	}

	for _, g := range groups {
		if len(g) == 0 {
			continue
		}
		want := cityOf(g[0].Name)
		for _, p := range g {
			require.Equal(t, want, cityOf(p.Name), "group mixes cities: %v", g)
		}
	}
}

func TestClusterPOIsIsReproducible(t *testing.T) {
	first := ClusterPOIs(blobPOIs(), 3)
	for i := 0; i < 5; i++ {
		require.Equal(t, first, ClusterPOIs(blobPOIs(), 3))
	}
}

func TestClusterPOIsShortCircuitsSmallInputs(t *testing.T) {
	points := blobPOIs()[:3]

	// n <= k means clustering is meaningless: one group with everything.
	groups := ClusterPOIs(points, 3)
	require.Len(t, groups, 1)
	require.Equal(t, points, groups[0])

	groups = ClusterPOIs(points, 5)
	require.Len(t, groups, 1)

	groups = ClusterPOIs(nil, 3)
	require.Len(t, groups, 1)
	require.Empty(t, groups[0])
}

func TestClusterPOIsDegenerateCoordinatesFallBack(t *testing.T) {
	points := []POI{
		{Name: "a", Coordinates: domain.Coordinates{Lat: 48, Lng: 2}},
		{Name: "b", Coordinates: domain.Coordinates{Lat: 99, Lng: 500}}, // out of range
		{Name: "c", Coordinates: domain.Coordinates{Lat: 49, Lng: 3}},
		{Name: "d", Coordinates: domain.Coordinates{Lat: 50, Lng: 4}},
	}

	groups := ClusterPOIs(points, 2)
	require.Len(t, groups, 1)
	require.Equal(t, points, groups[0])
}

func TestClusterPOIsIdenticalPointsStayTogether(t *testing.T) {
	points := make([]POI, 6)
	for i := range points {
		points[i] = POI{
			Name:        fmt.Sprintf("copy-%d", i),
			Coordinates: domain.Coordinates{Lat: 48.8606, Lng: 2.3376},
		}
	}

	groups := ClusterPOIs(points, 2)
	require.LessOrEqual(t, len(groups), 2)

	total := 0
	nonEmpty := 0
	for _, g := range groups {
		total += len(g)
		if len(g) > 0 {
			nonEmpty++
		}
	}
	require.Equal(t, 6, total)
	// All identical points collapse into one cluster; the other may be empty.
	require.Equal(t, 1, nonEmpty)
}
