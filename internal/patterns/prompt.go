package patterns

import (
	"context"
	"fmt"
	"log"
	"math"
	"strings"

	"github.com/dustin/go-humanize"

	"github.com/TobiSchelling/ReelIQ/internal/llm"
	"github.com/TobiSchelling/ReelIQ/internal/reel"
)

const (
	insightsMarker = "====INSIGHTS===="
	roadmapMarker  = "====ROADMAP===="
	maxTokens      = 900
	temperature    = 0.7
	titleRunes     = 60
)

const promptTemplate = `You are a plain-talking Instagram growth coach for a solo creator with %d reels saved.
Analyse their personal data below and return TWO sections EXACTLY as shown — no extra text, no headings, no markdown.

Personal benchmarks (their own averages — NOT industry averages):
- Average views: %s
- Average retention: %.1f%%
- Average engagement rate: %.2f%%
- Average hook score: %.1f/10
- Average save rate: %.2f%%

Top content category by avg views: %s
Best hook type by avg hook score: %s
Top reels: %s
Underperforming reels: %s
%s

====INSIGHTS====
Write 4–5 bullet points about what the data shows. Each bullet is 1–2 sentences. Start each with "• ".
Talk directly to the creator as "you". Be specific — use their actual numbers. No jargon. No generic advice.

====ROADMAP====
Write exactly 3 priority action items the creator should do RIGHT NOW to improve reach.
Use this exact format for each item — nothing else:

[HIGH] Title of action
One or two sentences describing exactly what to do. Reference their actual data.

[MEDIUM] Title of action
One or two sentences describing exactly what to do. Reference their actual data.

[LOW] Title of action
One or two sentences describing exactly what to do. Reference their actual data.

Priority levels: HIGH = biggest quick win, MEDIUM = important but slower return, LOW = good habit to build.
Each action must be specific to this creator's data — never generic.`

// RoadmapItem is one prioritised action.
type RoadmapItem struct {
	Level string `json:"level"`
	Title string `json:"title"`
	Desc  string `json:"desc"`
}

// AIContent is the generated commentary on a set of patterns. Error is set
// instead of failing the caller.
type AIContent struct {
	Insights string        `json:"insights,omitempty"`
	Roadmap  []RoadmapItem `json:"roadmap,omitempty"`
	Error    string        `json:"error,omitempty"`
}

// BuildPrompt renders the coaching prompt for p.
func BuildPrompt(p *Patterns) string {
	b := p.Benchmarks

	topCat := "N/A"
	if len(p.CategorySummary) > 0 {
		topCat = p.CategorySummary[0].Category
	}
	topHook := "N/A"
	if len(p.HookSummary) > 0 {
		topHook = p.HookSummary[0].HookType
	}

	trendLine := ""
	if p.Trend != nil {
		direction := "down"
		if p.Trend.ChangePct > 0 {
			direction = "up"
		}
		trendLine = fmt.Sprintf("Recent trend: last 5 reels average %s views vs %s before — %s %.0f%%.",
			commaf(p.Trend.RecentAvgViews), commaf(p.Trend.OlderAvgViews), direction, math.Abs(p.Trend.ChangePct))
	}

	return fmt.Sprintf(promptTemplate,
		p.Count,
		commaf(b.AvgViews),
		b.AvgRetention*100,
		b.AvgEngagement*100,
		b.AvgHook,
		b.AvgSaveRate*100,
		topCat,
		topHook,
		titles(p.TopPerformers),
		titles(p.Underperformers),
		trendLine,
	)
}

func titles(reels []reel.Reel) string {
	if len(reels) == 0 {
		return "none"
	}
	parts := make([]string, len(reels))
	for i, r := range reels {
		caption := r.Caption
		if caption == "" {
			caption = "untitled"
		}
		if runes := []rune(caption); len(runes) > titleRunes {
			caption = string(runes[:titleRunes])
		}
		parts[i] = fmt.Sprintf(`"%s" (%s views)`, caption, humanize.Comma(int64(r.Views)))
	}
	return strings.Join(parts, ", ")
}

func commaf(v float64) string {
	return humanize.Comma(int64(math.RoundToEven(v)))
}

// ParseRoadmap reads [HIGH], [MEDIUM] and [LOW] tagged items. Lines after a
// tag are joined into its description; text before the first tag is ignored.
func ParseRoadmap(text string) []RoadmapItem {
	var items []RoadmapItem
	var current *RoadmapItem
	for _, line := range strings.Split(strings.TrimSpace(text), "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		if level, title, ok := roadmapTag(line); ok {
			if current != nil {
				items = append(items, *current)
			}
			current = &RoadmapItem{Level: level, Title: title}
			continue
		}
		if current == nil {
			continue
		}
		if current.Desc != "" {
			current.Desc += " "
		}
		current.Desc += line
	}
	if current != nil {
		items = append(items, *current)
	}
	return items
}

func roadmapTag(line string) (level, title string, ok bool) {
	for _, lvl := range []string{"HIGH", "MEDIUM", "LOW"} {
		tag := "[" + lvl + "]"
		if strings.HasPrefix(line, tag) {
			return lvl, strings.TrimSpace(line[len(tag):]), true
		}
	}
	return "", "", false
}

// ParseAIContent splits a model reply into insights and roadmap sections.
func ParseAIContent(text string) (string, []RoadmapItem) {
	text = strings.TrimSpace(text)
	insights, roadmap, found := strings.Cut(text, roadmapMarker)
	if !found {
		return text, nil
	}
	insights = strings.TrimSpace(strings.ReplaceAll(insights, insightsMarker, ""))
	roadmap = strings.TrimSpace(roadmap)
	if roadmap == "" {
		return insights, nil
	}
	return insights, ParseRoadmap(roadmap)
}

// GenerateAIContent asks provider for insights and a roadmap.
func GenerateAIContent(ctx context.Context, provider llm.Provider, p *Patterns) AIContent {
	if p == nil || !p.EnoughData {
		return AIContent{Error: "Not enough data."}
	}
	if provider == nil {
		return AIContent{Error: "No text generation provider configured."}
	}

	text, err := provider.Generate(ctx, llm.Request{
		Prompt:      BuildPrompt(p),
		MaxTokens:   maxTokens,
		Temperature: temperature,
	})
	if err != nil {
		log.Printf("Pattern insights generation failed: %v", err)
		return AIContent{Error: err.Error()}
	}

	insights, roadmap := ParseAIContent(llm.CleanResponse(text))
	return AIContent{Insights: insights, Roadmap: roadmap}
}
