package rank

import (
	"sort"
	"strings"

	"jobwatch/internal/domain"
)

// Sort modes. Distance-primary is the default; relevance-primary lifts score
// and the leadership flag above distance. "New first" and the
// case-insensitive title tie-break hold in both modes.
const (
	ModeDistance  = "distance"
	ModeRelevance = "relevance"
)

// sentinelDistanceKm sorts records without coordinates after every record
// that has them.
const sentinelDistanceKm = 999999.0

// Order sorts annotated jobs in place and assigns 1-based rank indexes in
// final order. The index labels both the list rows and the map markers, so it
// must match the rendered order exactly.
func Order(jobs []domain.Job, mode string) {
	less := distanceLess
	if mode == ModeRelevance {
		less = relevanceLess
	}
	sort.SliceStable(jobs, func(i, k int) bool { return less(jobs[i], jobs[k]) })
	for i := range jobs {
		jobs[i].Rank = i + 1
	}
}

func distanceLess(a, b domain.Job) bool {
	if pa, pb := priorityRank(a), priorityRank(b); pa != pb {
		return pa < pb
	}
	if da, db := distanceRank(a), distanceRank(b); da != db {
		return da < db
	}
	if na, nb := newRank(a), newRank(b); na != nb {
		return na < nb
	}
	if a.Score != b.Score {
		return a.Score > b.Score
	}
	return titleLess(a, b)
}

func relevanceLess(a, b domain.Job) bool {
	if pa, pb := priorityRank(a), priorityRank(b); pa != pb {
		return pa < pb
	}
	if na, nb := newRank(a), newRank(b); na != nb {
		return na < nb
	}
	if a.Score != b.Score {
		return a.Score > b.Score
	}
	if a.Leadership != b.Leadership {
		return a.Leadership
	}
	if da, db := distanceRank(a), distanceRank(b); da != db {
		return da < db
	}
	return titleLess(a, b)
}

func priorityRank(j domain.Job) int {
	if j.Org != nil && j.Org.HighPriority() {
		return 0
	}
	return 1
}

func distanceRank(j domain.Job) float64 {
	if j.DistanceKm == nil {
		return sentinelDistanceKm
	}
	return *j.DistanceKm
}

func newRank(j domain.Job) int {
	if j.New {
		return 0
	}
	return 1
}

func titleLess(a, b domain.Job) bool {
	return strings.ToLower(a.Title) < strings.ToLower(b.Title)
}
