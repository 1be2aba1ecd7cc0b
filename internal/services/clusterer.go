package services

import (
	"log"
	"math"
	"math/rand"

	"travel-itinerary-service/internal/domain"
)

// Fixed k-means seed so repeated runs over the same input produce the
// same grouping.
const clusterSeed = 42

const maxKMeansIterations = 100

// A point of interest considered for daily distribution.
type POI struct {
	Name        string
	Coordinates domain.Coordinates
}

// ClusterPOIs partitions points of interest into at most k geographic
// groups for distribution across days.
//
// Coordinates are standardized (zero mean, unit variance) before
// clustering so latitude and longitude contribute equally. Every input
// point lands in exactly one group; empty groups are possible and not an
// error. Clusters carry no identity across runs.
//
// With k or fewer points, clustering is meaningless and all points are
// returned as a single group. Degenerate coordinate sets fall back to a
// single group as well; the routine never fails.
func ClusterPOIs(points []POI, k int) [][]POI {
	if k < 1 || len(points) <= k {
		return [][]POI{points}
	}

	coords := make([][2]float64, len(points))
	for i, p := range points {
		if !p.Coordinates.InRange() ||
			math.IsNaN(p.Coordinates.Lat) || math.IsNaN(p.Coordinates.Lng) {
			log.Printf("cluster pois: degenerate coordinates for %q, using single group", p.Name)
			return [][]POI{points}
		}
		coords[i] = [2]float64{p.Coordinates.Lat, p.Coordinates.Lng}
	}

	standardize(coords)
	labels := kMeans(coords, k)

	groups := make([][]POI, k)
	for i := range groups {
		groups[i] = []POI{}
	}
	for i, label := range labels {
		groups[label] = append(groups[label], points[i])
	}

	return groups
}

// standardize rescales each axis in place to zero mean and unit variance.
// A zero-variance axis is left at its centered value rather than divided.
func standardize(coords [][2]float64) {
	n := float64(len(coords))

	for axis := 0; axis < 2; axis++ {
		mean := 0.0
		for i := range coords {
			mean += coords[i][axis]
		}
		mean /= n

		variance := 0.0
		for i := range coords {
			d := coords[i][axis] - mean
			variance += d * d
		}
		std := math.Sqrt(variance / n)
		if std == 0 {
			std = 1
		}

		for i := range coords {
			coords[i][axis] = (coords[i][axis] - mean) / std
		}
	}
}

// kMeans runs Lloyd's algorithm over 2D points and returns a cluster
// label per point. Initial centroids are drawn from the input with a
// fixed-seed generator; an emptied cluster keeps its previous centroid.
func kMeans(coords [][2]float64, k int) []int {
	rng := rand.New(rand.NewSource(clusterSeed))

	centroids := make([][2]float64, k)
	for i, idx := range rng.Perm(len(coords))[:k] {
		centroids[i] = coords[idx]
	}

	labels := make([]int, len(coords))

	for iter := 0; iter < maxKMeansIterations; iter++ {
		changed := false
		for i, c := range coords {
			best := 0
			bestDist := math.MaxFloat64
			for j, centroid := range centroids {
				d := squaredDistance(c, centroid)
				if d < bestDist {
					bestDist = d
					best = j
				}
			}
			if labels[i] != best {
				labels[i] = best
				changed = true
			}
		}

		if !changed && iter > 0 {
			break
		}

		sums := make([][2]float64, k)
		counts := make([]int, k)
		for i, c := range coords {
			sums[labels[i]][0] += c[0]
			sums[labels[i]][1] += c[1]
			counts[labels[i]]++
		}
		for j := range centroids {
			if counts[j] == 0 {
				continue
			}
			centroids[j][0] = sums[j][0] / float64(counts[j])
			centroids[j][1] = sums[j][1] / float64(counts[j])
		}
	}

	return labels
}

func squaredDistance(a, b [2]float64) float64 {
	dx := a[0] - b[0]
	dy := a[1] - b[1]
	return dx*dx + dy*dy
}
