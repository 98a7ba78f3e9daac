package coach

import (
	"context"
	"fmt"
	"math"

	"github.com/dustin/go-humanize"

	"github.com/TobiSchelling/ReelIQ/internal/llm"
	"github.com/TobiSchelling/ReelIQ/internal/patterns"
)

const briefSystem = "You are a senior Instagram Reels content strategist. Write precise, actionable production briefs. Every recommendation must be specific and immediately actionable."

const genericPersonalisation = "No personal data available. Generate a strong generic brief based on Instagram Reels best practices for 2025."

const briefTemplate = `You are a senior Instagram content strategist creating a production-ready brief for a creator's next reel. Be direct, specific, and practical.

TOPIC: %s
GOAL: %s

%s

Write the brief using exactly these sections:

━━ FORMAT
Hook type, recommended duration and on-screen format.

━━ HOOK OPTIONS
Three alternative opening lines, each under 12 words.

━━ CAPTION STRUCTURE
Opening line: [scroll-stopping first line]
Body: [2-3 short lines of value]
CTA: [specific call to action aligned with the goal: %s]

━━ CONTENT ANGLE
The single idea this reel should deliver and why it fits the topic.

━━ FILMING NOTES
Three practical notes on shots, pacing and text overlays.

Keep the entire brief under 350 words. Plain English only.`

// RecommendedDuration suggests a length range from an average retention ratio.
func RecommendedDuration(avgRetention float64) string {
	pct := avgRetention * 100
	switch {
	case pct < 35:
		return "15–25 seconds (your retention drops off quickly, keep it tight)"
	case pct < 55:
		return "25–40 seconds (your retention is solid in this range)"
	default:
		return "30–60 seconds (you hold attention well, you can go longer)"
	}
}

// Personalisation renders the creator data block of the brief prompt.
func Personalisation(p *patterns.Patterns) string {
	if p == nil || !p.EnoughData {
		return genericPersonalisation
	}

	bestCategory := "Educational"
	if len(p.CategorySummary) > 0 {
		bestCategory = p.CategorySummary[0].Category
	}
	bestHook := "Question"
	if len(p.HookSummary) > 0 {
		bestHook = p.HookSummary[0].HookType
	}
	b := p.Benchmarks
	avgRet := b.AvgRetention * 100

	topReel := ""
	if len(p.TopPerformers) > 0 {
		top := p.TopPerformers[0]
		topReel = fmt.Sprintf("Your best-performing reel was: %q with %s views.",
			top.DisplayCaption(80), humanize.Comma(int64(top.Views)))
	}

	return fmt.Sprintf(`CREATOR'S PERSONAL DATA (from %d analysed reels):
- Average views: %s
- Average retention: %.1f%%
- Average save rate: %.2f%%
- Best content category: %s
- Best hook type: %s
- Recommended duration: %s
%s

IMPORTANT: This brief MUST use %s as the hook type and reference the creator's %.1f%% retention baseline when making duration decisions.`,
		p.Count,
		humanize.Comma(int64(math.Round(b.AvgViews))),
		avgRet,
		b.AvgSaveRate*100,
		bestCategory,
		bestHook,
		RecommendedDuration(b.AvgRetention),
		topReel,
		bestHook, avgRet,
	)
}

// BuildBriefPrompt renders the content brief prompt for a topic and goal.
func BuildBriefPrompt(topic, goal string, p *patterns.Patterns) string {
	return fmt.Sprintf(briefTemplate, topic, goal, Personalisation(p), goal)
}

// GenerateBrief writes a production brief for the next reel, personalised
// with the creator's patterns when there are enough reels.
func GenerateBrief(ctx context.Context, provider llm.Provider, topic, goal string, p *patterns.Patterns) string {
	return generate(ctx, provider, "brief", llm.Request{
		System:      briefSystem,
		Prompt:      BuildBriefPrompt(topic, goal, p),
		MaxTokens:   600,
		Temperature: 0.75,
	})
}
