// Package prescore predicts how a planned reel will perform before it is filmed.
// The score is four components of up to 25 points each.
package prescore

import (
	"fmt"
	"strings"

	"github.com/TobiSchelling/ReelIQ/internal/diagnostic"
	"github.com/TobiSchelling/ReelIQ/internal/reel"
)

// Input describes a planned reel.
type Input struct {
	Category        string `json:"category"`
	HookType        string `json:"hook_type"`
	DurationSeconds int    `json:"planned_duration_seconds"`
	FollowerCount   int    `json:"follower_count"`
	Caption         string `json:"planned_caption"`
}

// Component is one labelled sub-score.
type Component struct {
	Score int    `json:"score"`
	Label string `json:"label"`
}

// Components holds the four sub-scores.
type Components struct {
	Duration  Component `json:"duration"`
	Hook      Component `json:"hook"`
	Alignment Component `json:"alignment"`
	Caption   Component `json:"caption"`
}

// Result is the pre-production prediction.
type Result struct {
	Total      int        `json:"total"`
	Label      string     `json:"label"`
	Colour     string     `json:"colour"`
	Summary    string     `json:"summary"`
	Flags      []string   `json:"flags"`
	Components Components `json:"components"`
	Inputs     Input      `json:"inputs"`
}

// ScoreDuration returns the duration fit points for a category. Unknown
// categories use the Educational table.
func ScoreDuration(seconds int, category reel.Category) int {
	table, ok := durationScores[category]
	if !ok {
		table = durationScores[reel.Educational]
	}
	for _, b := range table {
		if b.lo <= seconds && seconds < b.hi {
			return b.points
		}
	}
	return noBandScore
}

// HookPower returns the intrinsic scroll-stopping power of a hook type.
func HookPower(h reel.HookType) int {
	if p, ok := hookPower[h]; ok {
		return p
	}
	return neutralScore
}

// Alignment scores how well a hook type suits a category.
func Alignment(c reel.Category, h reel.HookType) int {
	row, ok := alignmentMatrix[c]
	if !ok {
		return neutralScore
	}
	for i, known := range reel.HookTypes {
		if known == h {
			return row[i]
		}
	}
	return neutralScore
}

// ScoreCaptionHook rescales the caption hook heuristic to 0-25. A blank
// caption is neutral.
func ScoreCaptionHook(caption string) int {
	if strings.TrimSpace(caption) == "" {
		return neutralScore
	}
	raw, _, _ := diagnostic.RawHookScore(diagnostic.FirstLine(caption))
	return reel.RoundInt(raw / 10 * maxComponentScore)
}

// BuildRiskFlags lists the warnings for a plan. Each rule is independent and
// the order is fixed.
func BuildRiskFlags(in Input, alignment, caption int) []string {
	category := reel.ParseCategory(in.Category)
	hook := reel.ParseHookType(in.HookType)
	flags := []string{}

	if in.DurationSeconds > 90 && category == reel.Entertainment {
		flags = append(flags, "Duration over 90 s is high-risk for Entertainment — most viewers drop off before the 1-minute mark.")
	}
	if in.DurationSeconds > 60 && category == reel.Aesthetic {
		flags = append(flags, "Aesthetic reels perform best under 30 s. At this length, engagement is likely to drop significantly.")
	}
	if hook == reel.HookNone {
		flags = append(flags, "No hook strategy means the algorithm sees drop-off in the first 3 s, killing reach before it starts.")
	}
	if alignment < alignmentLow {
		flags = append(flags, fmt.Sprintf("'%s' is a weak match for %s content — consider a Question or Tutorial hook instead.",
			in.HookType, in.Category))
	}
	if in.Caption != "" && caption < captionLow {
		flags = append(flags, "Your planned caption opening lacks scroll-stopping trigger words (Why / How / Stop / Secret etc).")
	}
	if in.DurationSeconds < 10 && category == reel.Educational {
		flags = append(flags, "Under 10 s is too short to deliver educational value — aim for 30–60 s.")
	}
	return flags
}

// Run scores a planned reel.
func Run(in Input) *Result {
	category := reel.ParseCategory(in.Category)
	hook := reel.ParseHookType(in.HookType)

	dur := ScoreDuration(in.DurationSeconds, category)
	power := HookPower(hook)
	align := Alignment(category, hook)
	caption := ScoreCaptionHook(in.Caption)

	total := min(dur+power+align+caption, maxTotal)
	label, colour, summary := band(total)

	return &Result{
		Total:   total,
		Label:   label,
		Colour:  colour,
		Summary: summary,
		Flags:   BuildRiskFlags(in, align, caption),
		Components: Components{
			Duration:  Component{Score: dur, Label: "Duration Fit"},
			Hook:      Component{Score: power, Label: "Hook Power"},
			Alignment: Component{Score: align, Label: "Category Match"},
			Caption:   Component{Score: caption, Label: "Caption Hook"},
		},
		Inputs: in,
	}
}

func band(total int) (label, colour, summary string) {
	switch {
	case total >= 80:
		return "Strong Launch", "good", "Your planned reel has the ingredients for strong organic reach."
	case total >= 60:
		return "Solid Foundation", "average", "Good base — a few targeted tweaks can push this into high-performance territory."
	case total >= 40:
		return "Needs Work", "poor", "Several elements are misaligned. Address the risk flags before filming."
	default:
		return "High Risk", "poor", "This combination is likely to underperform. Review all components before proceeding."
	}
}
