// Package patterns derives personal benchmarks and content patterns from a
// creator's own reel history.
package patterns

import (
	"sort"

	"github.com/TobiSchelling/ReelIQ/internal/reel"
)

// MinReels is the smallest history that produces patterns.
const MinReels = 5

const (
	trendMinReels       = 10
	trendRecentCount    = 5
	performersShown     = 3
	underperformerRatio = 0.6
	underperformersMax  = 5
)

// Benchmarks are the creator's own averages.
type Benchmarks struct {
	AvgRetention  float64 `json:"avg_retention"`
	AvgEngagement float64 `json:"avg_engagement"`
	AvgHook       float64 `json:"avg_hook"`
	AvgSaveRate   float64 `json:"avg_save_rate"`
	AvgViews      float64 `json:"avg_views"`
}

// CategorySummary aggregates reels sharing a category.
type CategorySummary struct {
	Category     string  `json:"category"`
	Count        int     `json:"count"`
	AvgViews     float64 `json:"avg_views"`
	AvgSaves     float64 `json:"avg_saves"`
	AvgRetention float64 `json:"avg_retention"`
}

// HookSummary aggregates reels sharing a hook type.
type HookSummary struct {
	HookType     string  `json:"hook_type"`
	Count        int     `json:"count"`
	AvgHookScore float64 `json:"avg_hook_score"`
	AvgRetention float64 `json:"avg_retention"`
}

// Trend compares the most recent reels with everything before them.
type Trend struct {
	RecentAvgViews float64 `json:"recent_avg_views"`
	OlderAvgViews  float64 `json:"older_avg_views"`
	ChangePct      float64 `json:"change_pct"`
}

// Patterns is the aggregate view of a reel history. Only EnoughData and Count
// are set when the history is shorter than MinReels.
type Patterns struct {
	EnoughData       bool              `json:"enough_data"`
	Count            int               `json:"count"`
	Benchmarks       Benchmarks        `json:"benchmarks"`
	TopPerformers    []reel.Reel       `json:"top_performers"`
	BottomPerformers []reel.Reel       `json:"bottom_performers"`
	CategorySummary  []CategorySummary `json:"category_summary"`
	HookSummary      []HookSummary     `json:"hook_summary"`
	Trend            *Trend            `json:"trend,omitempty"`
	Underperformers  []reel.Reel       `json:"underperformers"`
}

// Compute aggregates reels into personal patterns.
func Compute(reels []reel.Reel) *Patterns {
	if len(reels) < MinReels {
		return &Patterns{EnoughData: false, Count: len(reels)}
	}

	avgViews := reel.MeanOf(reels, reel.ViewsMetric)
	p := &Patterns{
		EnoughData: true,
		Count:      len(reels),
		Benchmarks: Benchmarks{
			AvgRetention:  reel.Round(reel.MeanOf(reels, reel.RetentionMetric), 3),
			AvgEngagement: reel.Round(reel.MeanOf(reels, reel.EngagementMetric), 3),
			AvgHook:       reel.Round(reel.MeanOf(reels, reel.HookScoreMetric), 1),
			AvgSaveRate:   reel.Round(reel.MeanOf(reels, reel.SaveRateMetric), 3),
			AvgViews:      reel.Round(avgViews, 0),
		},
		CategorySummary: summariseCategories(reels),
		HookSummary:     summariseHooks(reels),
		Trend:           computeTrend(reels),
	}

	byViews := reel.SortByViews(reels)
	n := max(1, len(byViews)/5)
	p.TopPerformers = head(byViews[:n], performersShown)
	p.BottomPerformers = head(byViews[len(byViews)-n:], performersShown)

	threshold := avgViews * underperformerRatio
	for _, r := range reels {
		if float64(r.Views) < threshold {
			p.Underperformers = append(p.Underperformers, r)
		}
	}
	p.Underperformers = head(p.Underperformers, underperformersMax)

	return p
}

func summariseCategories(reels []reel.Reel) []CategorySummary {
	var out []CategorySummary
	for _, g := range reel.GroupBy(reels, reel.Reel.CategoryOrDefault) {
		out = append(out, CategorySummary{
			Category:     g.Key,
			Count:        len(g.Reels),
			AvgViews:     reel.MeanOf(g.Reels, reel.ViewsMetric),
			AvgSaves:     reel.MeanOf(g.Reels, reel.SavesMetric),
			AvgRetention: reel.MeanOf(g.Reels, reel.RetentionMetric),
		})
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].AvgViews > out[j].AvgViews })
	return out
}

func summariseHooks(reels []reel.Reel) []HookSummary {
	var out []HookSummary
	for _, g := range reel.GroupBy(reels, reel.Reel.HookTypeOrDefault) {
		out = append(out, HookSummary{
			HookType:     g.Key,
			Count:        len(g.Reels),
			AvgHookScore: reel.MeanOf(g.Reels, reel.HookScoreMetric),
			AvgRetention: reel.MeanOf(g.Reels, reel.RetentionMetric),
		})
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].AvgHookScore > out[j].AvgHookScore })
	return out
}

func computeTrend(reels []reel.Reel) *Trend {
	if len(reels) < trendMinReels {
		return nil
	}
	recent := reel.SortByRecency(reels)
	recentViews := reel.MeanOf(recent[:trendRecentCount], reel.ViewsMetric)
	olderViews := reel.MeanOf(recent[trendRecentCount:], reel.ViewsMetric)
	return &Trend{
		RecentAvgViews: recentViews,
		OlderAvgViews:  olderViews,
		ChangePct:      reel.PctChange(recentViews, olderViews),
	}
}

func head(reels []reel.Reel, n int) []reel.Reel {
	if len(reels) > n {
		return reels[:n]
	}
	return reels
}
