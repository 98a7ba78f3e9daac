package benchmark

import (
	"testing"

	"github.com/TobiSchelling/ReelIQ/internal/reel"
)

func f(v float64) *float64 { return &v }

func mk(category string, followers, views int, retention, engagement, save float64) reel.Reel {
	return reel.Reel{
		Category:       category,
		FollowerCount:  followers,
		Views:          views,
		RetentionRatio: f(retention),
		EngagementRate: f(engagement),
		SaveRate:       f(save),
	}
}

func TestDetectTier(t *testing.T) {
	tests := []struct {
		followers int
		want      Tier
	}{
		{0, Nano},
		{9_999, Nano},
		{10_000, Micro},
		{49_999, Micro},
		{50_000, Mid},
		{199_999, Mid},
		{200_000, Macro},
	}
	for _, tt := range tests {
		if got := DetectTier(tt.followers); got != tt.want {
			t.Errorf("DetectTier(%d) = %s, want %s", tt.followers, got, tt.want)
		}
	}
	if Micro.Label() != "Micro (10 K – 50 K)" {
		t.Errorf("unexpected label %q", Micro.Label())
	}
}

func TestNormaliseCategory(t *testing.T) {
	if name, c := NormaliseCategory(" Comedy "); name != "Entertainment" || c != reel.Entertainment {
		t.Errorf("expected Entertainment, got %q %v", name, c)
	}
	if name, c := NormaliseCategory("how-to"); name != "Educational" || c != reel.Educational {
		t.Errorf("expected Educational, got %q %v", name, c)
	}
	name, c := NormaliseCategory("cooking classes")
	if name != "Cooking Classes" || c != reel.CategoryOther {
		t.Errorf("expected title-cased fallback, got %q %v", name, c)
	}
}

func TestGetBenchmarkFallsBackToTier(t *testing.T) {
	if got := GetBenchmark(reel.Transactional, Mid); got.AvgViews != 12_000 {
		t.Errorf("expected Transactional mid, got %+v", got)
	}
	if got := GetBenchmark(reel.CategoryOther, Mid); got != tierFallback[Mid] {
		t.Errorf("expected tier fallback, got %+v", got)
	}
}

func TestPctDelta(t *testing.T) {
	if got := PctDelta(120, 100); got != 20 {
		t.Errorf("expected +20, got %v", got)
	}
	if got := PctDelta(80, 100); got != -20 {
		t.Errorf("expected -20, got %v", got)
	}
	if got := PctDelta(5, 0); got != 0 {
		t.Errorf("expected 0 on zero benchmark, got %v", got)
	}
}

func TestGradeDelta(t *testing.T) {
	tests := []struct {
		delta float64
		class string
	}{
		{30, "crushing"},
		{29.9, "above"},
		{10, "above"},
		{-10, "on_par"},
		{-10.1, "below"},
		{-25, "below"},
		{-25.1, "lagging"},
	}
	for _, tt := range tests {
		if got := GradeDelta(tt.delta); got.Class != tt.class {
			t.Errorf("GradeDelta(%v) = %s, want %s", tt.delta, got.Class, tt.class)
		}
	}
}

func TestScoreMetric(t *testing.T) {
	tests := []struct {
		user, bench float64
		want        int
	}{
		{5, 0, 12},
		{130, 100, 25},
		{100, 100, 12},
		{115, 100, 19},
		{80, 100, 6},
		{50, 100, 0},
	}
	for _, tt := range tests {
		if got := ScoreMetric(tt.user, tt.bench); got != tt.want {
			t.Errorf("ScoreMetric(%v, %v) = %d, want %d", tt.user, tt.bench, got, tt.want)
		}
	}
}

func TestMedianFollowers(t *testing.T) {
	reels := []reel.Reel{{FollowerCount: 2000}, {FollowerCount: 0}, {FollowerCount: 4001}, {FollowerCount: 3000}, {FollowerCount: 5000}}
	if got := MedianFollowers(reels); got != 3500 {
		t.Errorf("expected truncated mean of middle pair 3500, got %d", got)
	}
	if got := MedianFollowers(reels[:3]); got != 3000 {
		t.Errorf("expected 3000, got %d", got)
	}
	if got := MedianFollowers([]reel.Reel{{}}); got != 0 {
		t.Errorf("expected 0 without counts, got %d", got)
	}
}

func TestComputeReport(t *testing.T) {
	reels := []reel.Reel{
		mk("Educational", 2000, 2800, 0.27, 0.093, 0.007),
		mk("cooking", 4000, 2800, 0.27, 0.093, 0.007),
		mk("Educational", 0, 2800, 0.27, 0.093, 0.007),
		mk("cooking", 3000, 2800, 0.27, 0.093, 0.007),
		mk("Educational", 5000, 2800, 0.27, 0.093, 0.007),
	}
	r := ComputeReport(reels)

	if !r.HasData || r.ReelCount != 5 {
		t.Fatalf("unexpected report %+v", r)
	}
	if r.FollowerCount != 3500 || r.Tier != Nano {
		t.Errorf("expected nano tier from median 3500, got %d %s", r.FollowerCount, r.Tier)
	}
	if r.PrimaryCategory != "Educational" || r.UnrecognizedCategory {
		t.Errorf("unexpected primary category %q %v", r.PrimaryCategory, r.UnrecognizedCategory)
	}

	views, _ := r.Metric("Views")
	if views.DeltaPct != 100 || views.Score != 25 || views.Grade.Label != "Crushing It" {
		t.Errorf("unexpected views metric %+v", views)
	}
	retention, _ := r.Metric("Retention")
	if retention.DeltaPct != -50 || retention.Score != 0 || retention.Grade.Class != "lagging" {
		t.Errorf("unexpected retention metric %+v", retention)
	}
	if r.Score != 50 || r.ScoreLabel != "On Par" || r.ScoreColour != "on_par" {
		t.Errorf("got %d %q %q", r.Score, r.ScoreLabel, r.ScoreColour)
	}
	if r.StrongestMetric != "Views" || r.StrongestDelta != 100 {
		t.Errorf("unexpected strongest %q %v", r.StrongestMetric, r.StrongestDelta)
	}

	if len(r.Opportunities) != 2 {
		t.Fatalf("expected 2 opportunities, got %d", len(r.Opportunities))
	}
	first := r.Opportunities[0]
	if first.Metric != "Save Rate" || first.UserVal != "0.7%" || first.BenchVal != "2.8%" || first.Target != "2.8% save rate" {
		t.Errorf("unexpected first opportunity %+v", first)
	}
	second := r.Opportunities[1]
	if second.Metric != "Retention" || second.UserVal != "27.0%" || second.Target != "54.0% retention" {
		t.Errorf("unexpected second opportunity %+v", second)
	}

	if len(r.CategoryBreakdown) != 2 {
		t.Fatalf("expected 2 category rows, got %d", len(r.CategoryBreakdown))
	}
	cooking := r.CategoryBreakdown[1]
	if cooking.Category != "cooking" || cooking.Recognised || cooking.Count != 2 || cooking.BenchViews != 1400 {
		t.Errorf("unexpected cooking row %+v", cooking)
	}
	if cooking.GradeViews.Label != "Crushing It" {
		t.Errorf("unexpected grade %+v", cooking.GradeViews)
	}
}

func TestComputeReportUnrecognizedPrimary(t *testing.T) {
	reels := []reel.Reel{
		mk("cooking", 60_000, 100, 0.5, 0.05, 0.02),
		mk("cooking", 60_000, 100, 0.5, 0.05, 0.02),
		mk("Aesthetic", 60_000, 100, 0.5, 0.05, 0.02),
	}
	r := ComputeReport(reels)
	if r.PrimaryCategory != "Cooking" || !r.UnrecognizedCategory {
		t.Errorf("expected flagged unrecognised category, got %q %v", r.PrimaryCategory, r.UnrecognizedCategory)
	}
	if r.Tier != Mid || r.Benchmark != tierFallback[Mid] {
		t.Errorf("expected mid tier fallback benchmark, got %s %+v", r.Tier, r.Benchmark)
	}
}

func TestComputeReportEmpty(t *testing.T) {
	if ComputeReport(nil).HasData {
		t.Error("expected no data")
	}
}

func TestViewsOpportunityFormatting(t *testing.T) {
	o := opportunity(MetricResult{Name: "Views", User: 1234.9, Bench: 18_000, DeltaPct: -93.14})
	if o.UserVal != "1,234" || o.BenchVal != "18,000" || o.Target != "18,000 views/reel" || o.DeltaPct != -93.1 {
		t.Errorf("unexpected card %+v", o)
	}
}
