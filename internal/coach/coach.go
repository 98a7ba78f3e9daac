// Package coach turns scoring results into plain-language advice using a
// text generation provider.
package coach

import (
	"context"
	"fmt"
	"log"
	"strings"

	"github.com/dustin/go-humanize"

	"github.com/TobiSchelling/ReelIQ/internal/diagnostic"
	"github.com/TobiSchelling/ReelIQ/internal/llm"
	"github.com/TobiSchelling/ReelIQ/internal/prescore"
	"github.com/TobiSchelling/ReelIQ/internal/reel"
)

// ErrorPrefix starts every generated text that failed.
const ErrorPrefix = "API ERROR: "

const (
	reportSystem = "You are an expert Instagram content performance analyst helping non-technical small business owners improve their content."
	tipsSystem   = "You are an expert Instagram Reels strategist. Give short, specific, actionable advice to creators before they film."
)

const reportTemplate = `You are a content performance analyst helping a small business owner understand why their Instagram Reel underperformed. Write a clear, specific, plain-language diagnostic report. No jargon. Every recommendation must reference a specific metric.

CONTENT DETAILS:
- Category: %s
- Follower Count: %s
- Reel Duration: %d seconds
- Caption Opening Line: %s

DIAGNOSTIC SCORES:
- Retention: %s (%.1f%% retention ratio)
- Engagement Rate: %s (%.2f%%)
- Hook Strength: %s (%.1f/10)
- Save Rate: %s (%.2f%%)

Structure your report with these exact sections:

OVERALL DIAGNOSIS
2-3 sentences summarising how this reel performed and the single biggest issue.

WHAT WENT WRONG
3 specific findings, each referencing an actual score.

YOUR TOP 3 ACTIONS
3 concrete things to change in the next reel.

WHAT GOOD LOOKS LIKE
1 short paragraph describing what success looks like.

Keep under 400 words. Plain English only.`

const tipsTemplate = `You are an expert Instagram Reels strategist helping a creator optimise a reel BEFORE they film it. Based on the planned reel details and risk flags below, give exactly 3 specific, actionable pre-production tips. Each tip must reference the actual numbers/choices the creator made. Be direct, no fluff.

PLANNED REEL DETAILS:
- Category: %s
- Hook Type: %s
- Planned Duration: %d seconds
- Follower Count: %s
- Planned Caption Opening: %s

PRE-SCORE BREAKDOWN:
- Overall Pre-Score: %d/100 (%s)
- Duration Fit: %d/25
- Hook Power: %d/25
- Category Match: %d/25
- Caption Hook: %d/25

RISK FLAGS DETECTED:
%s

Format each tip exactly like this:
TIP 1: [Short bold title]
[2-3 sentences. Specific. Reference their actual choice.]

TIP 2: [Short bold title]
[2-3 sentences. Specific. Reference their actual choice.]

TIP 3: [Short bold title]
[2-3 sentences. Specific. Reference their actual choice.]

Under 250 words total. Plain English only.`

// BuildReportPrompt renders the diagnostic report prompt for a scored reel.
func BuildReportPrompt(res *diagnostic.Result) string {
	in := res.Inputs
	firstLine := res.Hook.FirstLine
	if firstLine == "" {
		firstLine = "Not provided"
	}
	return fmt.Sprintf(reportTemplate,
		orDefault(in.Category, "Uncategorised"),
		humanize.Comma(int64(in.FollowerCount)),
		in.DurationSeconds,
		firstLine,
		res.Retention.Label, reel.Round(res.Retention.Ratio*100, 1),
		res.Engagement.Label, res.Engagement.Rate*100,
		res.Hook.Label, res.Hook.Score,
		res.SaveRate.Label, res.SaveRate.Rate*100,
	)
}

// BuildTipsPrompt renders the pre-production tips prompt for a planned reel.
func BuildTipsPrompt(res *prescore.Result) string {
	in := res.Inputs
	flags := "- None identified"
	if len(res.Flags) > 0 {
		flags = "- " + strings.Join(res.Flags, "\n- ")
	}
	c := res.Components
	return fmt.Sprintf(tipsTemplate,
		orDefault(in.Category, "Uncategorised"),
		orDefault(in.HookType, "Unknown"),
		in.DurationSeconds,
		humanize.Comma(int64(in.FollowerCount)),
		orDefault(in.Caption, "Not provided"),
		res.Total, res.Label,
		c.Duration.Score, c.Hook.Score, c.Alignment.Score, c.Caption.Score,
		flags,
	)
}

// GenerateReport writes a plain-language diagnostic report for a scored reel.
func GenerateReport(ctx context.Context, provider llm.Provider, res *diagnostic.Result) string {
	return generate(ctx, provider, "report", llm.Request{
		System:      reportSystem,
		Prompt:      BuildReportPrompt(res),
		MaxTokens:   600,
		Temperature: 0.7,
	})
}

// GenerateTips writes three pre-production tips for a planned reel.
func GenerateTips(ctx context.Context, provider llm.Provider, res *prescore.Result) string {
	return generate(ctx, provider, "tips", llm.Request{
		System:      tipsSystem,
		Prompt:      BuildTipsPrompt(res),
		MaxTokens:   400,
		Temperature: 0.7,
	})
}

// IsError reports whether text is a failed generation.
func IsError(text string) bool {
	return strings.HasPrefix(text, ErrorPrefix)
}

func generate(ctx context.Context, provider llm.Provider, kind string, req llm.Request) string {
	if provider == nil {
		return ErrorPrefix + "no text generation provider configured"
	}
	text, err := provider.Generate(ctx, req)
	if err != nil {
		log.Printf("Coach %s generation failed: %v", kind, err)
		return ErrorPrefix + err.Error()
	}
	return llm.CleanResponse(text)
}

func orDefault(s, fallback string) string {
	if strings.TrimSpace(s) == "" {
		return fallback
	}
	return s
}
