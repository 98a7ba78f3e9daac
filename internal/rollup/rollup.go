// Package rollup summarises a reel history over a calendar month or a
// trailing week and scores it against a baseline period.
package rollup

import (
	"sort"

	"github.com/TobiSchelling/ReelIQ/internal/reel"
)

// MinPeriodReels is the smallest in-period count that avoids the all-time fallback.
const MinPeriodReels = 2

const componentWeight = 25

// Summary holds period statistics. Rates are fractions, not percentages.
type Summary struct {
	ReelCount     int     `json:"reel_count"`
	TotalViews    int     `json:"total_views"`
	TotalSaves    int     `json:"total_saves"`
	TotalLikes    int     `json:"total_likes"`
	AvgViews      float64 `json:"avg_views"`
	AvgRetention  float64 `json:"avg_retention"`
	AvgEngagement float64 `json:"avg_engagement"`
	AvgHook       float64 `json:"avg_hook"`
	AvgSaveRate   float64 `json:"avg_save_rate"`
}

// Summarise computes means over present values and totals over all reels.
func Summarise(reels []reel.Reel) Summary {
	return Summary{
		ReelCount:     len(reels),
		TotalViews:    int(reel.SumOf(reels, reel.ViewsMetric)),
		TotalSaves:    int(reel.SumOf(reels, reel.SavesMetric)),
		TotalLikes:    int(reel.SumOf(reels, reel.LikesMetric)),
		AvgViews:      reel.MeanOf(reels, reel.ViewsMetric),
		AvgRetention:  reel.MeanOf(reels, reel.RetentionMetric),
		AvgEngagement: reel.MeanOf(reels, reel.EngagementMetric),
		AvgHook:       reel.MeanOf(reels, reel.HookScoreMetric),
		AvgSaveRate:   reel.MeanOf(reels, reel.SaveRateMetric),
	}
}

// Components are the four 0-25 sub-scores of a rollup.
type Components struct {
	Views      int `json:"views"`
	Retention  int `json:"retention"`
	Engagement int `json:"engagement"`
	SaveRate   int `json:"save_rate"`
}

// Total sums the components.
func (c Components) Total() int {
	return c.Views + c.Retention + c.Engagement + c.SaveRate
}

// Deltas are percentage changes against the baseline, nil when the baseline is zero.
type Deltas struct {
	Views      *float64 `json:"view_change"`
	Retention  *float64 `json:"ret_change"`
	Engagement *float64 `json:"eng_change"`
	SaveRate   *float64 `json:"save_change"`
}

// CategoryBreakdown describes one category within the summary set.
type CategoryBreakdown struct {
	Category        string  `json:"category"`
	Count           int     `json:"count"`
	AvgViews        int     `json:"avg_views"`
	AvgRetentionPct float64 `json:"avg_retention"`
	SharePct        int     `json:"share"`
}

// HookBreakdown describes one hook type within the summary set.
type HookBreakdown struct {
	HookType     string  `json:"hook_type"`
	Count        int     `json:"count"`
	AvgViews     float64 `json:"avg_views"`
	AvgHookScore float64 `json:"avg_hook_score"`
	AvgRetention float64 `json:"avg_retention"`
}

// Rollup is the part shared by the monthly card and the weekly digest.
type Rollup struct {
	HasData           bool                `json:"has_data"`
	UseAllTime        bool                `json:"use_all_time"`
	Summary           Summary             `json:"summary"`
	Baseline          Summary             `json:"baseline"`
	Score             int                 `json:"score"`
	Label             string              `json:"score_label"`
	Colour            string              `json:"score_colour"`
	Components        Components          `json:"score_components"`
	Deltas            Deltas              `json:"deltas"`
	MostImproved      string              `json:"most_improved,omitempty"`
	MostImprovedVal   *float64            `json:"most_improved_val,omitempty"`
	BestReel          *reel.Reel          `json:"best_reel,omitempty"`
	CategoryBreakdown []CategoryBreakdown `json:"category_breakdown"`
	HookBreakdown     []HookBreakdown     `json:"hook_breakdown"`
}

// ScoreComponent ramps current against baseline onto 0..weight: half credit
// at parity, full credit from 120%, nothing below 60%. A zero baseline earns
// half credit.
func ScoreComponent(current, baseline float64, weight int) int {
	if baseline == 0 {
		return weight / 2
	}
	w := float64(weight)
	ratio := current / baseline
	switch {
	case ratio >= 1.2:
		return weight
	case ratio >= 1.0:
		return reel.RoundInt(w*0.5 + (ratio-1.0)/0.2*w*0.5)
	case ratio >= 0.6:
		return reel.RoundInt((ratio - 0.6) / 0.4 * w * 0.5)
	default:
		return 0
	}
}

func delta(current, baseline float64) *float64 {
	if baseline == 0 {
		return nil
	}
	d := reel.Round(reel.PctChange(current, baseline), 1)
	return &d
}

type band struct {
	min    int
	label  string
	colour string
}

func classify(score int, bands []band) (string, string) {
	for _, b := range bands {
		if score >= b.min {
			return b.label, b.colour
		}
	}
	last := bands[len(bands)-1]
	return last.label, last.colour
}

// partition is the split of a history around one period.
type partition struct {
	current []reel.Reel
	prior   []reel.Reel
	other   []reel.Reel
}

// compute scores the partitioned history. It returns HasData=false only for
// an empty history.
func compute(all []reel.Reel, p partition, bands []band) Rollup {
	useAllTime := len(p.current) < MinPeriodReels
	summaryReels := p.current
	if useAllTime {
		summaryReels = all
	}
	if len(summaryReels) == 0 {
		return Rollup{}
	}

	var baselineReels []reel.Reel
	switch {
	case !useAllTime && len(p.prior) > 0:
		baselineReels = p.prior
	case len(p.other) > 0:
		baselineReels = p.other
	default:
		baselineReels = all
	}

	s := Summarise(summaryReels)
	b := Summarise(baselineReels)

	comps := Components{
		Views:      ScoreComponent(s.AvgViews, b.AvgViews, componentWeight),
		Retention:  ScoreComponent(s.AvgRetention, b.AvgRetention, componentWeight),
		Engagement: ScoreComponent(s.AvgEngagement, b.AvgEngagement, componentWeight),
		SaveRate:   ScoreComponent(s.AvgSaveRate, b.AvgSaveRate, componentWeight),
	}
	score := comps.Total()
	label, colour := classify(score, bands)

	deltas := Deltas{
		Views:      delta(s.AvgViews, b.AvgViews),
		Retention:  delta(s.AvgRetention, b.AvgRetention),
		Engagement: delta(s.AvgEngagement, b.AvgEngagement),
		SaveRate:   delta(s.AvgSaveRate, b.AvgSaveRate),
	}
	improved, improvedVal := mostImproved(deltas)

	byViews := reel.SortByViews(summaryReels)
	best := byViews[0]

	return Rollup{
		HasData:           true,
		UseAllTime:        useAllTime,
		Summary:           s,
		Baseline:          b,
		Score:             score,
		Label:             label,
		Colour:            colour,
		Components:        comps,
		Deltas:            deltas,
		MostImproved:      improved,
		MostImprovedVal:   improvedVal,
		BestReel:          &best,
		CategoryBreakdown: categoryBreakdown(summaryReels),
		HookBreakdown:     hookBreakdown(summaryReels),
	}
}

// mostImproved picks the largest strictly positive delta. Earlier metrics win ties.
func mostImproved(d Deltas) (string, *float64) {
	candidates := []struct {
		name  string
		value *float64
	}{
		{"Views", d.Views},
		{"Retention", d.Retention},
		{"Engagement", d.Engagement},
		{"Save Rate", d.SaveRate},
	}
	var name string
	var best *float64
	for _, c := range candidates {
		if c.value == nil || *c.value <= 0 {
			continue
		}
		if best == nil || *c.value > *best {
			name, best = c.name, c.value
		}
	}
	return name, best
}

func categoryBreakdown(reels []reel.Reel) []CategoryBreakdown {
	var out []CategoryBreakdown
	for _, g := range reel.GroupBy(reels, reel.Reel.CategoryOrDefault) {
		out = append(out, CategoryBreakdown{
			Category:        g.Key,
			Count:           len(g.Reels),
			AvgViews:        reel.RoundInt(reel.MeanOf(g.Reels, reel.ViewsMetric)),
			AvgRetentionPct: reel.Round(reel.MeanOf(g.Reels, reel.RetentionMetric)*100, 1),
			SharePct:        reel.RoundInt(float64(len(g.Reels)) / float64(len(reels)) * 100),
		})
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].AvgViews > out[j].AvgViews })
	return out
}

func hookBreakdown(reels []reel.Reel) []HookBreakdown {
	var out []HookBreakdown
	for _, g := range reel.GroupBy(reels, reel.Reel.HookTypeOrDefault) {
		out = append(out, HookBreakdown{
			HookType:     g.Key,
			Count:        len(g.Reels),
			AvgViews:     reel.MeanOf(g.Reels, reel.ViewsMetric),
			AvgHookScore: reel.MeanOf(g.Reels, reel.HookScoreMetric),
			AvgRetention: reel.MeanOf(g.Reels, reel.RetentionMetric),
		})
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].AvgViews > out[j].AvgViews })
	return out
}

// bestByViews returns the group key with the highest mean views, first seen
// winning ties.
func bestByViews(reels []reel.Reel, key func(reel.Reel) string) string {
	var best string
	var bestAvg float64
	for i, g := range reel.GroupBy(reels, key) {
		avg := reel.MeanOf(g.Reels, reel.ViewsMetric)
		if i == 0 || avg > bestAvg {
			best, bestAvg = g.Key, avg
		}
	}
	return best
}
