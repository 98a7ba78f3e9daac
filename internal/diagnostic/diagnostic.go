package diagnostic

import (
	"fmt"
	"math"
	"strings"

	"github.com/TobiSchelling/ReelIQ/internal/reel"
)

// Thresholds is an ascending {poor, average, good} triple.
type Thresholds struct {
	Poor    float64
	Average float64
	Good    float64
}

// Source: Hootsuite 2024, Sprout Social 2024.
var retentionBenchmarks = map[reel.Category]Thresholds{
	reel.Educational:   {Poor: 0.30, Average: 0.50, Good: 0.70},
	reel.Inspirational: {Poor: 0.25, Average: 0.45, Good: 0.65},
	reel.Transactional: {Poor: 0.35, Average: 0.55, Good: 0.75},
	reel.Aesthetic:     {Poor: 0.20, Average: 0.40, Good: 0.60},
	reel.Entertainment: {Poor: 0.25, Average: 0.50, Good: 0.70},
}

// FollowerBand buckets follower counts for engagement thresholds.
type FollowerBand string

const (
	BandUnder1K FollowerBand = "under_1k"
	Band1KTo5K  FollowerBand = "1k_5k"
	Band5KPlus  FollowerBand = "5k_plus"
)

var engagementBenchmarks = map[FollowerBand]Thresholds{
	BandUnder1K: {Poor: 0.03, Average: 0.06, Good: 0.10},
	Band1KTo5K:  {Poor: 0.02, Average: 0.05, Good: 0.08},
	Band5KPlus:  {Poor: 0.015, Average: 0.04, Good: 0.07},
}

// RetentionThresholds returns the thresholds for c, falling back to Educational.
func RetentionThresholds(c reel.Category) Thresholds {
	return retentionBenchmarks[thresholdSource(c)]
}

func thresholdSource(c reel.Category) reel.Category {
	if _, ok := retentionBenchmarks[c]; ok {
		return c
	}
	return reel.Educational
}

// BandFor returns the engagement follower band for a follower count.
func BandFor(followers int) FollowerBand {
	switch {
	case followers < 1000:
		return BandUnder1K
	case followers < 5000:
		return Band1KTo5K
	default:
		return Band5KPlus
	}
}

// Retention is a classified retention ratio.
type Retention struct {
	Label       string  `json:"label"`
	Explanation string  `json:"explanation"`
	Ratio       float64 `json:"ratio"`
}

// Engagement is a classified engagement rate.
type Engagement struct {
	Label       string       `json:"label"`
	Explanation string       `json:"explanation"`
	Rate        float64      `json:"rate"`
	Band        FollowerBand `json:"band"`
}

// SaveRate is a classified save rate.
type SaveRate struct {
	Rate        float64 `json:"rate"`
	Label       string  `json:"label"`
	Explanation string  `json:"explanation"`
}

// RetentionRatio is the average fraction of the reel each view watched,
// clamped to [0, 1] so replays never push it past full retention.
func RetentionRatio(views int, watchTimeMinutes float64, durationSeconds int) float64 {
	if views <= 0 || durationSeconds <= 0 {
		return 0
	}
	avgWatchSeconds := watchTimeMinutes * 60 / float64(views)
	ratio := avgWatchSeconds / float64(durationSeconds)
	return reel.Round(math.Max(0, math.Min(ratio, 1)), 3)
}

// ClassifyRetention grades a retention ratio against the category thresholds.
func ClassifyRetention(ratio float64, category reel.Category) Retention {
	return ClassifyRetentionAs(ratio, category, category.String())
}

// ClassifyRetentionAs is ClassifyRetention with the category named as the
// creator entered it. A blank name falls back to the category whose
// thresholds apply.
func ClassifyRetentionAs(ratio float64, category reel.Category, name string) Retention {
	b := RetentionThresholds(category)
	pct := fmt.Sprintf("%.1f%%", reel.Round(ratio*100, 1))
	name = strings.TrimSpace(name)
	if name == "" {
		name = thresholdSource(category).String()
	}

	var label, explanation string
	switch {
	case ratio < b.Poor:
		label = "Poor"
		explanation = fmt.Sprintf("Your retention ratio of %s is below the %s category baseline of %d%%. "+
			"Most viewers left almost immediately, suggesting a hook failure in the first 2-3 seconds.",
			pct, name, wholePct(b.Poor))
	case ratio < b.Average:
		label = "Below Average"
		explanation = fmt.Sprintf("Your retention ratio of %s is below the %s category average of %d%%. "+
			"Your hook pulled some viewers in but failed to sustain attention.",
			pct, name, wholePct(b.Average))
	case ratio < b.Good:
		label = "Average"
		explanation = fmt.Sprintf("Your retention ratio of %s meets the %s category average of %d%%. "+
			"Solid performance but room to push into the top tier.",
			pct, name, wholePct(b.Average))
	default:
		label = "Good"
		explanation = fmt.Sprintf("Your retention ratio of %s exceeds the %s category benchmark of %d%%. "+
			"Strong viewer retention.",
			pct, name, wholePct(b.Good))
	}
	return Retention{Label: label, Explanation: explanation, Ratio: ratio}
}

// EngagementRate is total interactions per view.
func EngagementRate(views, likes, comments, shares, saves int) float64 {
	if views <= 0 {
		return 0
	}
	interactions := likes + comments + shares + saves
	return reel.Round(float64(interactions)/float64(views), 4)
}

// ClassifyEngagement grades an engagement rate against the follower band thresholds.
func ClassifyEngagement(rate float64, followerCount int) Engagement {
	band := BandFor(followerCount)
	b := engagementBenchmarks[band]
	pct := fmt.Sprintf("%.1f%%", reel.Round(rate*100, 1))

	var label, explanation string
	switch {
	case rate < b.Poor:
		label = "Poor"
		explanation = "Engagement rate of " + pct + " is below average for your follower tier. " +
			"Your content is not triggering interaction - check your call-to-action and emotional resonance."
	case rate < b.Average:
		label = "Below Average"
		explanation = "Engagement rate of " + pct + " is slightly below average for your follower tier. " +
			"Small improvements to your CTA could move this significantly."
	case rate < b.Good:
		label = "Average"
		explanation = "Engagement rate of " + pct + " is within the normal range for your follower tier. " +
			"Solid but not outstanding."
	default:
		label = "Good"
		explanation = "Engagement rate of " + pct + " is strong for your follower tier. " +
			"Your content is resonating well with your audience."
	}
	return Engagement{Label: label, Explanation: explanation, Rate: rate, Band: band}
}

// ScoreSaveRate grades saves per view.
func ScoreSaveRate(views, saves int) SaveRate {
	if views <= 0 {
		return SaveRate{Rate: 0, Label: "Unknown", Explanation: "No views data available."}
	}
	rate := float64(saves) / float64(views)
	pct := fmt.Sprintf("%.1f%%", reel.Round(rate*100, 1))

	var label, explanation string
	switch {
	case rate >= 0.05:
		label = "Excellent"
		explanation = "Save rate of " + pct + " is exceptional. Your content has high perceived value."
	case rate >= 0.02:
		label = "Good"
		explanation = "Save rate of " + pct + " is above average. " +
			"Your content delivers enough value that viewers want to return to it."
	case rate >= 0.01:
		label = "Average"
		explanation = "Save rate of " + pct + " is average. Consider adding more actionable takeaways to increase saves."
	default:
		label = "Low"
		explanation = "Save rate of " + pct + " is low. Saves signal deep value to the algorithm. " +
			"Add tips, lists, or information viewers will want to revisit."
	}
	return SaveRate{Rate: reel.Round(rate, 4), Label: label, Explanation: explanation}
}

func wholePct(ratio float64) int {
	return int(math.Round(ratio * 100))
}
