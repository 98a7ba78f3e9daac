// Package benchmark compares a creator's averages with industry figures for
// their follower tier and content category.
package benchmark

import (
	"fmt"
	"sort"
	"strings"

	"github.com/dustin/go-humanize"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/TobiSchelling/ReelIQ/internal/reel"
)

// DetectTier buckets a follower count.
func DetectTier(followers int) Tier {
	switch {
	case followers < 10_000:
		return Nano
	case followers < 50_000:
		return Micro
	case followers < 200_000:
		return Mid
	default:
		return Macro
	}
}

// NormaliseCategory maps free-text categories onto the known set. Unmapped
// input comes back title-cased with CategoryOther.
func NormaliseCategory(raw string) (string, reel.Category) {
	if c, ok := categorySynonyms[strings.ToLower(strings.TrimSpace(raw))]; ok {
		return c.String(), c
	}
	return cases.Title(language.Und).String(raw), reel.CategoryOther
}

// GetBenchmark looks up the industry figures, falling back to the tier average.
func GetBenchmark(c reel.Category, t Tier) Benchmark {
	if b, ok := industryBenchmarks[tableKey{c, t}]; ok {
		return b
	}
	return tierFallback[t]
}

// PctDelta is the signed percentage difference of user against benchmark.
func PctDelta(user, benchmark float64) float64 {
	return reel.PctChange(user, benchmark)
}

// Grade labels a delta.
type Grade struct {
	Label string `json:"label"`
	Class string `json:"class"`
}

// GradeDelta classifies a percentage delta into five bands.
func GradeDelta(deltaPct float64) Grade {
	switch {
	case deltaPct >= 30:
		return Grade{"Crushing It", "crushing"}
	case deltaPct >= 10:
		return Grade{"Above Avg", "above"}
	case deltaPct >= -10:
		return Grade{"On Par", "on_par"}
	case deltaPct >= -25:
		return Grade{"Below Avg", "below"}
	default:
		return Grade{"Lagging", "lagging"}
	}
}

// ScoreMetric scores user against benchmark on 0-25: 25 from 130%, 12.5 at
// parity, 0 below 60%. A zero benchmark scores 12.
func ScoreMetric(user, benchmark float64) int {
	if benchmark == 0 {
		return 12
	}
	ratio := user / benchmark
	switch {
	case ratio >= 1.3:
		return 25
	case ratio >= 1.0:
		return reel.RoundInt(12.5 + (ratio-1.0)/0.3*12.5)
	case ratio >= 0.6:
		return reel.RoundInt((ratio - 0.6) / 0.4 * 12.5)
	default:
		return 0
	}
}

// MetricResult compares one metric with its benchmark.
type MetricResult struct {
	Name     string  `json:"name"`
	User     float64 `json:"user"`
	Bench    float64 `json:"bench"`
	DeltaPct float64 `json:"delta_pct"`
	Grade    Grade   `json:"grade"`
	Score    int     `json:"score"`
}

// Opportunity is one of the two weakest metrics with formatted values.
type Opportunity struct {
	Metric   string  `json:"metric"`
	UserVal  string  `json:"user_val"`
	BenchVal string  `json:"bench_val"`
	Target   string  `json:"target"`
	DeltaPct float64 `json:"delta_pct"`
}

// CategoryRow compares one raw category with its own benchmark.
type CategoryRow struct {
	Category           string  `json:"category"`
	Recognised         bool    `json:"recognised"`
	Count              int     `json:"count"`
	AvgViews           int     `json:"avg_views"`
	BenchViews         int     `json:"bench_views"`
	DeltaViews         float64 `json:"delta_views"`
	GradeViews         Grade   `json:"grade_views"`
	AvgRetentionPct    float64 `json:"avg_retention"`
	BenchRetentionPct  float64 `json:"bench_retention"`
	GradeRetention     string  `json:"grade_ret"`
	AvgEngagementPct   float64 `json:"avg_engagement"`
	BenchEngagementPct float64 `json:"bench_engagement"`
	GradeEngagement    string  `json:"grade_eng"`
}

// Report is the full industry comparison.
type Report struct {
	HasData              bool           `json:"has_data"`
	ReelCount            int            `json:"reel_count"`
	FollowerCount        int            `json:"follower_count"`
	Tier                 Tier           `json:"tier"`
	TierLabel            string         `json:"tier_label"`
	PrimaryCategory      string         `json:"primary_category"`
	UnrecognizedCategory bool           `json:"unrecognized_category"`
	Benchmark            Benchmark      `json:"benchmark"`
	Metrics              []MetricResult `json:"metrics"`
	Score                int            `json:"benchmark_score"`
	ScoreLabel           string         `json:"score_label"`
	ScoreColour          string         `json:"score_colour"`
	StrongestMetric      string         `json:"strongest_metric"`
	StrongestDelta       float64        `json:"strongest_delta"`
	Opportunities        []Opportunity  `json:"opportunity_cards"`
	CategoryBreakdown    []CategoryRow  `json:"category_breakdown"`
}

// Metric returns the named metric result.
func (r *Report) Metric(name string) (MetricResult, bool) {
	for _, m := range r.Metrics {
		if m.Name == name {
			return m, true
		}
	}
	return MetricResult{}, false
}

// ComputeReport compares reels with the benchmark of their primary category.
func ComputeReport(reels []reel.Reel) *Report {
	if len(reels) == 0 {
		return &Report{}
	}

	followers := MedianFollowers(reels)
	tier := DetectTier(followers)

	counts := countCategories(reels)
	primary, primaryCat := NormaliseCategory(counts[0].name)
	bench := GetBenchmark(primaryCat, tier)

	r := &Report{
		HasData:              true,
		ReelCount:            len(reels),
		FollowerCount:        followers,
		Tier:                 tier,
		TierLabel:            tier.Label(),
		PrimaryCategory:      primary,
		UnrecognizedCategory: !primaryCat.Known(),
		Benchmark:            bench,
	}

	userVals := []struct {
		name  string
		user  float64
		bench float64
	}{
		{"Views", reel.MeanOf(reels, reel.ViewsMetric), bench.AvgViews},
		{"Retention", reel.MeanOf(reels, reel.RetentionMetric), bench.AvgRetention},
		{"Engagement", reel.MeanOf(reels, reel.EngagementMetric), bench.AvgEngagement},
		{"Save Rate", reel.MeanOf(reels, reel.SaveRateMetric), bench.AvgSaveRate},
	}
	for _, v := range userVals {
		delta := PctDelta(v.user, v.bench)
		m := MetricResult{
			Name:     v.name,
			User:     v.user,
			Bench:    v.bench,
			DeltaPct: delta,
			Grade:    GradeDelta(delta),
			Score:    ScoreMetric(v.user, v.bench),
		}
		r.Metrics = append(r.Metrics, m)
		r.Score += m.Score
	}
	r.ScoreLabel, r.ScoreColour = scoreBand(r.Score)

	strongest := r.Metrics[0]
	for _, m := range r.Metrics[1:] {
		if m.DeltaPct > strongest.DeltaPct {
			strongest = m
		}
	}
	r.StrongestMetric = strongest.Name
	r.StrongestDelta = reel.Round(strongest.DeltaPct, 1)

	weakest := make([]MetricResult, len(r.Metrics))
	copy(weakest, r.Metrics)
	sort.SliceStable(weakest, func(i, j int) bool { return weakest[i].DeltaPct < weakest[j].DeltaPct })
	for _, m := range weakest[:2] {
		r.Opportunities = append(r.Opportunities, opportunity(m))
	}

	for _, c := range counts {
		r.CategoryBreakdown = append(r.CategoryBreakdown, categoryRow(c, tier))
	}
	for i := range r.Metrics {
		r.Metrics[i].DeltaPct = reel.Round(r.Metrics[i].DeltaPct, 1)
	}
	return r
}

func scoreBand(score int) (string, string) {
	switch {
	case score >= 80:
		return "Industry Leader", "crushing"
	case score >= 60:
		return "Above Average", "above"
	case score >= 40:
		return "On Par", "on_par"
	case score >= 25:
		return "Below Average", "below"
	default:
		return "Needs Work", "lagging"
	}
}

// MedianFollowers is the median of the non-zero follower counts, truncated
// to a whole number. It is 0 when no reel carries a count.
func MedianFollowers(reels []reel.Reel) int {
	var counts []int
	for _, r := range reels {
		if r.FollowerCount > 0 {
			counts = append(counts, r.FollowerCount)
		}
	}
	if len(counts) == 0 {
		return 0
	}
	sort.Ints(counts)
	mid := len(counts) / 2
	if len(counts)%2 == 1 {
		return counts[mid]
	}
	return int(float64(counts[mid-1]+counts[mid]) / 2)
}

type categoryCount struct {
	name  string
	reels []reel.Reel
}

// countCategories groups reels by raw category, most common first. Equal
// counts keep first-seen order.
func countCategories(reels []reel.Reel) []categoryCount {
	var out []categoryCount
	for _, g := range reel.GroupBy(reels, rawCategory) {
		out = append(out, categoryCount{name: g.Key, reels: g.Reels})
	}
	sort.SliceStable(out, func(i, j int) bool { return len(out[i].reels) > len(out[j].reels) })
	return out
}

func rawCategory(r reel.Reel) string {
	if r.Category == "" {
		return "Unknown"
	}
	return r.Category
}

func opportunity(m MetricResult) Opportunity {
	o := Opportunity{Metric: m.Name, DeltaPct: reel.Round(m.DeltaPct, 1)}
	if m.Name == "Views" {
		o.UserVal = humanize.Comma(int64(m.User))
		o.BenchVal = humanize.Comma(int64(m.Bench))
		o.Target = o.BenchVal + " views/reel"
		return o
	}
	o.UserVal = fmt.Sprintf("%.1f%%", m.User*100)
	o.BenchVal = fmt.Sprintf("%.1f%%", m.Bench*100)
	o.Target = o.BenchVal + " " + strings.ToLower(m.Name)
	return o
}

func categoryRow(c categoryCount, tier Tier) CategoryRow {
	_, cat := NormaliseCategory(c.name)
	bench := GetBenchmark(cat, tier)

	views := reel.MeanOf(c.reels, reel.ViewsMetric)
	retention := reel.MeanOf(c.reels, reel.RetentionMetric)
	engagement := reel.MeanOf(c.reels, reel.EngagementMetric)
	deltaViews := PctDelta(views, bench.AvgViews)

	return CategoryRow{
		Category:           c.name,
		Recognised:         cat.Known(),
		Count:              len(c.reels),
		AvgViews:           reel.RoundInt(views),
		BenchViews:         reel.RoundInt(bench.AvgViews),
		DeltaViews:         reel.Round(deltaViews, 1),
		GradeViews:         GradeDelta(deltaViews),
		AvgRetentionPct:    reel.Round(retention*100, 1),
		BenchRetentionPct:  reel.Round(bench.AvgRetention*100, 1),
		GradeRetention:     GradeDelta(PctDelta(retention, bench.AvgRetention)).Label,
		AvgEngagementPct:   reel.Round(engagement*100, 2),
		BenchEngagementPct: reel.Round(bench.AvgEngagement*100, 2),
		GradeEngagement:    GradeDelta(PctDelta(engagement, bench.AvgEngagement)).Label,
	}
}
