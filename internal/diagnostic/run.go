package diagnostic

import (
	"math"

	"github.com/TobiSchelling/ReelIQ/internal/reel"
)

// Input holds the raw metrics of a published reel.
type Input struct {
	Views            int     `json:"views"`
	WatchTimeMinutes float64 `json:"watch_time_minutes"`
	DurationSeconds  int     `json:"reel_duration_seconds"`
	Likes            int     `json:"likes"`
	Comments         int     `json:"comments"`
	Shares           int     `json:"shares"`
	Saves            int     `json:"saves"`
	Caption          string  `json:"caption"`
	Category         string  `json:"category"`
	HookType         string  `json:"hook_type,omitempty"`
	FollowerCount    int     `json:"follower_count"`
}

// InputFromReel extracts the raw metrics of a stored reel.
func InputFromReel(r reel.Reel) Input {
	return Input{
		Views:            r.Views,
		WatchTimeMinutes: r.WatchTimeMinutes,
		DurationSeconds:  r.DurationSeconds,
		Likes:            r.Likes,
		Comments:         r.Comments,
		Shares:           r.Shares,
		Saves:            r.Saves,
		Caption:          r.Caption,
		Category:         r.Category,
		HookType:         r.HookType,
		FollowerCount:    r.FollowerCount,
	}
}

// Normalise clamps negative counts to zero and the duration to at least one
// second. A watch time that is not a finite number counts as zero.
func (in Input) Normalise() Input {
	in.Views = max(in.Views, 0)
	if math.IsNaN(in.WatchTimeMinutes) || math.IsInf(in.WatchTimeMinutes, 0) {
		in.WatchTimeMinutes = 0
	}
	in.WatchTimeMinutes = max(in.WatchTimeMinutes, 0)
	in.DurationSeconds = max(in.DurationSeconds, 1)
	in.Likes = max(in.Likes, 0)
	in.Comments = max(in.Comments, 0)
	in.Shares = max(in.Shares, 0)
	in.Saves = max(in.Saves, 0)
	in.FollowerCount = max(in.FollowerCount, 0)
	return in
}

// Result is the full diagnosis of one reel.
type Result struct {
	Inputs     Input      `json:"inputs"`
	Retention  Retention  `json:"retention"`
	Engagement Engagement `json:"engagement"`
	Hook       Hook       `json:"hook"`
	SaveRate   SaveRate   `json:"save_rate"`
}

// Run scores all four diagnostic dimensions. It never fails: degenerate
// numbers produce zero rates and the matching labels.
func Run(in Input) *Result {
	in = in.Normalise()
	ratio := RetentionRatio(in.Views, in.WatchTimeMinutes, in.DurationSeconds)
	rate := EngagementRate(in.Views, in.Likes, in.Comments, in.Shares, in.Saves)

	return &Result{
		Inputs:     in,
		Retention:  ClassifyRetentionAs(ratio, reel.ParseCategory(in.Category), in.Category),
		Engagement: ClassifyEngagement(rate, in.FollowerCount),
		Hook:       ScoreHook(in.Caption),
		SaveRate:   ScoreSaveRate(in.Views, in.Saves),
	}
}

// Apply writes the raw inputs and derived fields of res into r.
func (res *Result) Apply(r *reel.Reel) {
	in := res.Inputs
	r.Views = in.Views
	r.WatchTimeMinutes = in.WatchTimeMinutes
	r.DurationSeconds = in.DurationSeconds
	r.Likes = in.Likes
	r.Comments = in.Comments
	r.Shares = in.Shares
	r.Saves = in.Saves
	r.Caption = in.Caption
	r.Category = in.Category
	r.HookType = in.HookType
	r.FollowerCount = in.FollowerCount

	retention := res.Retention.Ratio
	engagement := res.Engagement.Rate
	hook := res.Hook.Score
	save := res.SaveRate.Rate
	r.RetentionRatio = &retention
	r.RetentionLabel = res.Retention.Label
	r.EngagementRate = &engagement
	r.EngagementLabel = res.Engagement.Label
	r.HookScore = &hook
	r.HookLabel = res.Hook.Label
	r.SaveRate = &save
	r.SaveLabel = res.SaveRate.Label
}
