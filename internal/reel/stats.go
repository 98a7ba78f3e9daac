package reel

import (
	"math"
	"sort"
)

// Mean returns the arithmetic mean of values, or 0 for an empty slice.
func Mean(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	var sum float64
	for _, v := range values {
		sum += v
	}
	return sum / float64(len(values))
}

// PctChange returns the signed percentage change of current against baseline.
// A zero baseline yields 0.
func PctChange(current, baseline float64) float64 {
	if baseline == 0 {
		return 0
	}
	return (current - baseline) / baseline * 100
}

// Round rounds v to the given number of decimal places.
func Round(v float64, places int) float64 {
	p := math.Pow(10, float64(places))
	return math.Round(v*p) / p
}

// RoundInt rounds half to even, the rule used for every integer point score.
func RoundInt(v float64) int {
	return int(math.RoundToEven(v))
}

// Metric selects one numeric field of a reel. The second return value is
// false when the field is missing.
type Metric func(r Reel) (float64, bool)

var (
	ViewsMetric      Metric = func(r Reel) (float64, bool) { return float64(r.Views), true }
	SavesMetric      Metric = func(r Reel) (float64, bool) { return float64(r.Saves), true }
	LikesMetric      Metric = func(r Reel) (float64, bool) { return float64(r.Likes), true }
	RetentionMetric  Metric = func(r Reel) (float64, bool) { return deref(r.RetentionRatio) }
	EngagementMetric Metric = func(r Reel) (float64, bool) { return deref(r.EngagementRate) }
	HookScoreMetric  Metric = func(r Reel) (float64, bool) { return deref(r.HookScore) }
	SaveRateMetric   Metric = func(r Reel) (float64, bool) { return deref(r.SaveRate) }
)

func deref(p *float64) (float64, bool) {
	if p == nil {
		return 0, false
	}
	return *p, true
}

// Values collects the present values of m across reels. Missing values are skipped.
func Values(reels []Reel, m Metric) []float64 {
	out := make([]float64, 0, len(reels))
	for _, r := range reels {
		if v, ok := m(r); ok {
			out = append(out, v)
		}
	}
	return out
}

// MeanOf is Mean(Values(reels, m)).
func MeanOf(reels []Reel, m Metric) float64 {
	return Mean(Values(reels, m))
}

// SumOf sums the present values of m across reels.
func SumOf(reels []Reel, m Metric) float64 {
	var sum float64
	for _, v := range Values(reels, m) {
		sum += v
	}
	return sum
}

// Group is a set of reels sharing a key, in first-seen order.
type Group struct {
	Key   string
	Reels []Reel
}

// GroupBy partitions reels by key. Groups appear in the order their key was
// first seen, which keeps later stable sorts deterministic.
func GroupBy(reels []Reel, key func(Reel) string) []Group {
	index := make(map[string]int)
	var groups []Group
	for _, r := range reels {
		k := key(r)
		i, ok := index[k]
		if !ok {
			i = len(groups)
			index[k] = i
			groups = append(groups, Group{Key: k})
		}
		groups[i].Reels = append(groups[i].Reels, r)
	}
	return groups
}

// SortByViews returns a copy of reels ordered by views, highest first.
// Equal view counts keep their input order.
func SortByViews(reels []Reel) []Reel {
	sorted := make([]Reel, len(reels))
	copy(sorted, reels)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].Views > sorted[j].Views })
	return sorted
}

// SortByRecency returns a copy of reels ordered newest first. Reels with an
// unknown creation time sort after dated ones; ties keep their input order.
func SortByRecency(reels []Reel) []Reel {
	sorted := make([]Reel, len(reels))
	copy(sorted, reels)
	sort.SliceStable(sorted, func(i, j int) bool {
		ti, okI := sorted[i].Created()
		tj, okJ := sorted[j].Created()
		switch {
		case okI && okJ:
			return ti.After(tj)
		case okI:
			return true
		default:
			return false
		}
	})
	return sorted
}
