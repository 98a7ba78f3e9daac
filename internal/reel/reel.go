package reel

import (
	"strings"
	"time"
)

// DefaultDurationSeconds is used when an imported record carries no duration.
const DefaultDurationSeconds = 15

// Reel is one scored piece of content belonging to a single user.
// Derived fields are nil when the record was stored without them.
type Reel struct {
	ID        int64   `json:"id"`
	UserID    string  `json:"user_id"`
	CreatedAt *string `json:"created_at,omitempty"`

	Views            int     `json:"views"`
	WatchTimeMinutes float64 `json:"watch_time_minutes"`
	DurationSeconds  int     `json:"reel_duration_seconds"`
	Likes            int     `json:"likes"`
	Comments         int     `json:"comments"`
	Shares           int     `json:"shares"`
	Saves            int     `json:"saves"`
	Caption          string  `json:"caption"`
	Category         string  `json:"category"`
	HookType         string  `json:"hook_type"`
	FollowerCount    int     `json:"follower_count"`

	RetentionRatio  *float64 `json:"retention_ratio"`
	RetentionLabel  string   `json:"retention_label"`
	EngagementRate  *float64 `json:"engagement_rate"`
	EngagementLabel string   `json:"engagement_label"`
	HookScore       *float64 `json:"hook_score"`
	HookLabel       string   `json:"hook_label"`
	SaveRate        *float64 `json:"save_rate"`
	SaveLabel       string   `json:"save_label"`

	AIReport *string `json:"ai_report,omitempty"`
}

// timeLayouts lists the timestamp formats accepted in CreatedAt.
var timeLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05",
	"2006-01-02",
}

// ParseTime parses a stored creation timestamp. The second return value is
// false for missing or unparseable values.
func ParseTime(raw *string) (time.Time, bool) {
	if raw == nil {
		return time.Time{}, false
	}
	s := strings.TrimSpace(*raw)
	if s == "" {
		return time.Time{}, false
	}
	for _, layout := range timeLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.UTC(), true
		}
	}
	return time.Time{}, false
}

// Created returns the parsed creation time of the reel.
func (r Reel) Created() (time.Time, bool) {
	return ParseTime(r.CreatedAt)
}

// CategoryOrDefault returns the raw category or "Uncategorised" when empty.
func (r Reel) CategoryOrDefault() string {
	if strings.TrimSpace(r.Category) == "" {
		return "Uncategorised"
	}
	return r.Category
}

// HookTypeOrDefault returns the raw hook type or "Unknown" when empty.
func (r Reel) HookTypeOrDefault() string {
	if strings.TrimSpace(r.HookType) == "" {
		return "Unknown"
	}
	return r.HookType
}

// DisplayCaption returns the caption, falling back to the category, truncated to max runes.
func (r Reel) DisplayCaption(max int) string {
	s := strings.TrimSpace(r.Caption)
	if s == "" {
		s = strings.TrimSpace(r.Category)
	}
	if s == "" {
		s = "Untitled"
	}
	runes := []rune(s)
	if max > 0 && len(runes) > max {
		return string(runes[:max])
	}
	return s
}
