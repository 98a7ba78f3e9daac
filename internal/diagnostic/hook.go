package diagnostic

import (
	"fmt"
	"strings"

	"github.com/TobiSchelling/ReelIQ/internal/reel"
)

// HookTriggers is the curiosity and urgency vocabulary matched against a
// caption's opening line. Matching is literal substring containment on the
// lowercased line, so the order here is the order triggers are reported in.
var HookTriggers = []string{
	"you", "why", "how", "secret", "mistake", "never", "always",
	"stop", "truth", "warning", "finally", "revealed", "proven",
	"what if", "did you", "most people", "nobody talks",
}

const (
	triggerPoints   = 2.5
	maxHookScore    = 10.0
	maxHookWords    = 15
	longHookPenalty = 2.0
)

// Hook is the result of scoring a caption's opening line.
type Hook struct {
	Score       float64  `json:"score"`
	Label       string   `json:"label"`
	Explanation string   `json:"explanation"`
	FirstLine   string   `json:"first_line"`
	Triggers    []string `json:"triggers"`
}

// FirstLine returns the first line of a trimmed caption.
func FirstLine(caption string) string {
	return strings.SplitN(strings.TrimSpace(caption), "\n", 2)[0]
}

// MatchTriggers returns the trigger terms contained in line, case-folded.
func MatchTriggers(line string) []string {
	lower := strings.ToLower(line)
	var found []string
	for _, t := range HookTriggers {
		if strings.Contains(lower, t) {
			found = append(found, t)
		}
	}
	return found
}

// RawHookScore scores a caption opening on the 0-10 scale. The second return
// value reports whether the long-line penalty was applied.
func RawHookScore(firstLine string) (score float64, tooLong bool, triggers []string) {
	triggers = MatchTriggers(firstLine)
	score = min(float64(len(triggers))*triggerPoints, maxHookScore)
	if len(strings.Fields(firstLine)) > maxHookWords {
		score = max(score-longHookPenalty, 0)
		tooLong = true
	}
	return score, tooLong, triggers
}

// ScoreHook rates the scroll-stopping power of a caption's first line.
func ScoreHook(caption string) Hook {
	if strings.TrimSpace(caption) == "" {
		return Hook{
			Score:       0,
			Label:       "No Caption",
			Explanation: "No caption was provided. Captions are critical for hook strength and searchability.",
		}
	}

	firstLine := FirstLine(caption)
	score, tooLong, triggers := RawHookScore(firstLine)

	lengthNote := ""
	if tooLong {
		lengthNote = " Your opening line is too long - aim for under 10 words for maximum scroll-stopping impact."
	}

	var label, explanation string
	switch {
	case score >= 7:
		label = "Strong"
		explanation = "Your hook contains strong cognitive triggers: " + formatTriggers(triggers) +
			". This opening has good scroll-stopping potential." + lengthNote
	case score >= 4:
		label = "Moderate"
		explanation = "Your hook has some engaging elements but could be stronger. Triggers found: " +
			formatTriggers(triggers) +
			". Consider opening with a pattern break, bold claim, or direct question." + lengthNote
	default:
		label = "Weak"
		explanation = "Your hook is weak - no strong cognitive interruption triggers detected. " +
			"Instagram users scroll at high speed. Your first line needs to create immediate curiosity, urgency, or value. " +
			"Start with You, a provocative question, or a bold statement. Triggers found: " +
			formatTriggers(triggers) + "." + lengthNote
	}

	return Hook{
		Score:       reel.Round(score, 1),
		Label:       label,
		Explanation: explanation,
		FirstLine:   firstLine,
		Triggers:    triggers,
	}
}

func formatTriggers(triggers []string) string {
	if len(triggers) == 0 {
		return "none"
	}
	quoted := make([]string, len(triggers))
	for i, t := range triggers {
		quoted[i] = fmt.Sprintf("%q", t)
	}
	return strings.Join(quoted, ", ")
}
