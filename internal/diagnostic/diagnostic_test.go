package diagnostic

import (
	"encoding/json"
	"math"
	"reflect"
	"strings"
	"testing"

	"github.com/TobiSchelling/ReelIQ/internal/reel"
)

func sampleInput() Input {
	return Input{
		Views:            1000,
		WatchTimeMinutes: 75,
		DurationSeconds:  15,
		Likes:            50,
		Comments:         10,
		Shares:           5,
		Saves:            20,
		Caption:          "Why nobody talks about this mistake",
		Category:         "Educational",
		FollowerCount:    2000,
	}
}

func TestRunScenario(t *testing.T) {
	res := Run(sampleInput())

	if res.Retention.Ratio != 0.3 || res.Retention.Label != "Below Average" {
		t.Errorf("retention = %v %q", res.Retention.Ratio, res.Retention.Label)
	}
	if !strings.Contains(res.Retention.Explanation, "30.0%") || !strings.Contains(res.Retention.Explanation, "average of 50%") {
		t.Errorf("unexpected retention explanation: %s", res.Retention.Explanation)
	}
	if res.Engagement.Rate != 0.085 || res.Engagement.Label != "Good" {
		t.Errorf("engagement = %v %q", res.Engagement.Rate, res.Engagement.Label)
	}
	if res.Engagement.Band != Band1KTo5K {
		t.Errorf("expected 1k-5k band, got %s", res.Engagement.Band)
	}
	if res.Hook.Score != 7.5 || res.Hook.Label != "Strong" {
		t.Errorf("hook = %v %q", res.Hook.Score, res.Hook.Label)
	}
	wantTriggers := []string{"why", "mistake", "nobody talks"}
	if !reflect.DeepEqual(res.Hook.Triggers, wantTriggers) {
		t.Errorf("triggers = %v, want %v", res.Hook.Triggers, wantTriggers)
	}
	if res.SaveRate.Rate != 0.02 || res.SaveRate.Label != "Good" {
		t.Errorf("save rate = %v %q", res.SaveRate.Rate, res.SaveRate.Label)
	}
}

func TestRunIsDeterministic(t *testing.T) {
	a := Run(sampleInput())
	b := Run(sampleInput())
	if !reflect.DeepEqual(a, b) {
		t.Error("expected identical results for identical input")
	}
}

func TestRetentionRatioBounds(t *testing.T) {
	tests := []struct {
		name     string
		views    int
		watch    float64
		duration int
		want     float64
	}{
		{"replays clamp to one", 10, 100, 10, 1},
		{"zero views", 0, 10, 15, 0},
		{"zero duration", 100, 10, 0, 0},
		{"negative duration", 100, 10, -5, 0},
		{"negative watch clamps to zero", 100, -10, 15, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := RetentionRatio(tt.views, tt.watch, tt.duration); got != tt.want {
				t.Errorf("got %v, want %v", got, tt.want)
			}
		})
	}
}

func TestClassifyRetentionOtherUsesEducational(t *testing.T) {
	got := ClassifyRetention(0.29, reel.CategoryOther)
	if got.Label != "Poor" {
		t.Errorf("expected Poor against Educational thresholds, got %q", got.Label)
	}
	if got := ClassifyRetention(0.2, reel.Aesthetic); got.Label != "Below Average" {
		t.Errorf("expected Aesthetic 0.2 to be Below Average, got %q", got.Label)
	}
	if got := ClassifyRetention(0.75, reel.Transactional); got.Label != "Good" {
		t.Errorf("expected Good, got %q", got.Label)
	}
}

func TestRetentionExplanationNamesEnteredCategory(t *testing.T) {
	in := sampleInput()
	in.Category = "Cooking"
	res := Run(in)
	if !strings.Contains(res.Retention.Explanation, "Cooking category average of 50%") {
		t.Errorf("expected entered category with Educational threshold, got %s", res.Retention.Explanation)
	}

	in.Category = ""
	res = Run(in)
	if !strings.Contains(res.Retention.Explanation, "Educational category") {
		t.Errorf("expected blank category to name the applied thresholds, got %s", res.Retention.Explanation)
	}
}

func TestClassifyEngagementBands(t *testing.T) {
	tests := []struct {
		rate      float64
		followers int
		want      string
	}{
		{0.02, 500, "Poor"},
		{0.02, 2000, "Below Average"},
		{0.02, 8000, "Below Average"},
		{0.014, 8000, "Poor"},
		{0.07, 8000, "Good"},
		{0.07, 500, "Average"},
	}
	for _, tt := range tests {
		if got := ClassifyEngagement(tt.rate, tt.followers); got.Label != tt.want {
			t.Errorf("ClassifyEngagement(%v, %d) = %q, want %q", tt.rate, tt.followers, got.Label, tt.want)
		}
	}
}

func TestZeroViewsAreSafe(t *testing.T) {
	in := sampleInput()
	in.Views = 0
	res := Run(in)
	if res.Retention.Ratio != 0 || res.Engagement.Rate != 0 {
		t.Errorf("expected zero rates, got %v %v", res.Retention.Ratio, res.Engagement.Rate)
	}
	if res.SaveRate.Label != "Unknown" || res.SaveRate.Explanation != "No views data available." {
		t.Errorf("unexpected save rate %+v", res.SaveRate)
	}
}

func TestNegativeInputsAreClamped(t *testing.T) {
	in := sampleInput()
	in.Saves = -4
	in.FollowerCount = -1
	res := Run(in)
	if res.Inputs.Saves != 0 || res.Inputs.FollowerCount != 0 {
		t.Errorf("expected clamped echo, got %+v", res.Inputs)
	}
}

func TestNonFiniteWatchTimeIsZero(t *testing.T) {
	for _, watch := range []float64{math.NaN(), math.Inf(1), math.Inf(-1)} {
		in := sampleInput()
		in.WatchTimeMinutes = watch
		res := Run(in)
		if res.Inputs.WatchTimeMinutes != 0 || res.Retention.Ratio != 0 || res.Retention.Label != "Poor" {
			t.Errorf("watch %v: got watch %v ratio %v label %q", watch, res.Inputs.WatchTimeMinutes, res.Retention.Ratio, res.Retention.Label)
		}
		if _, err := json.Marshal(res); err != nil {
			t.Errorf("watch %v: result not encodable: %v", watch, err)
		}
	}
}

func TestDurationClampedToOneSecond(t *testing.T) {
	in := sampleInput()
	in.DurationSeconds = 0
	res := Run(in)
	if res.Inputs.DurationSeconds != 1 {
		t.Errorf("expected duration clamped to 1, got %d", res.Inputs.DurationSeconds)
	}
	if res.Retention.Ratio < 0 || res.Retention.Ratio > 1 {
		t.Errorf("ratio out of range: %v", res.Retention.Ratio)
	}

	var r reel.Reel
	res.Apply(&r)
	if r.DurationSeconds != 1 {
		t.Errorf("expected stored duration 1, got %d", r.DurationSeconds)
	}
}

func TestSaveRateMonotonic(t *testing.T) {
	order := map[string]int{"Low": 0, "Average": 1, "Good": 2, "Excellent": 3}
	prev := -1
	for saves := 0; saves <= 100; saves++ {
		got := ScoreSaveRate(1000, saves)
		rank, ok := order[got.Label]
		if !ok {
			t.Fatalf("unexpected label %q", got.Label)
		}
		if rank < prev {
			t.Fatalf("label regressed at %d saves: %q", saves, got.Label)
		}
		prev = rank
	}
}

func TestScoreHook(t *testing.T) {
	if got := ScoreHook("   "); got.Label != "No Caption" || got.Score != 0 {
		t.Errorf("expected No Caption, got %+v", got)
	}

	weak := ScoreHook("Sunset at the beach")
	if weak.Label != "Weak" || !strings.Contains(weak.Explanation, "Triggers found: none.") {
		t.Errorf("unexpected weak hook %+v", weak)
	}

	multi := ScoreHook("Stop scrolling\nsecond line has why how secret")
	if multi.FirstLine != "Stop scrolling" {
		t.Errorf("expected first line only, got %q", multi.FirstLine)
	}
	if multi.Score != 2.5 {
		t.Errorf("expected only first line triggers, got %v", multi.Score)
	}

	capped := ScoreHook("Why you never know how the secret truth works")
	if capped.Score != 10 {
		t.Errorf("expected score capped at 10, got %v", capped.Score)
	}
}

func TestScoreHookLongLinePenalty(t *testing.T) {
	long := "Why this one simple thing is the reason your garden grows so much better than the rest of them"
	got := ScoreHook(long)
	// "why" and "you" match, 5.0 minus the 2 point penalty.
	if got.Score != 3 {
		t.Errorf("expected 3, got %v", got.Score)
	}
	if got.Label != "Weak" || !strings.Contains(got.Explanation, "opening line is too long") {
		t.Errorf("expected weak hook with length note, got %+v", got)
	}
}

func TestApply(t *testing.T) {
	res := Run(sampleInput())
	var r reel.Reel
	res.Apply(&r)
	if r.Views != 1000 || r.Category != "Educational" {
		t.Errorf("raw fields not copied: %+v", r)
	}
	if r.RetentionRatio == nil || *r.RetentionRatio != 0.3 || r.RetentionLabel != "Below Average" {
		t.Errorf("retention not applied: %v %q", r.RetentionRatio, r.RetentionLabel)
	}
	if r.HookScore == nil || *r.HookScore != 7.5 {
		t.Errorf("hook not applied: %v", r.HookScore)
	}
	if r.SaveRate == nil || r.SaveLabel != "Good" {
		t.Errorf("save rate not applied: %v %q", r.SaveRate, r.SaveLabel)
	}
}
