package coach

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/TobiSchelling/ReelIQ/internal/diagnostic"
	"github.com/TobiSchelling/ReelIQ/internal/llm"
	"github.com/TobiSchelling/ReelIQ/internal/patterns"
	"github.com/TobiSchelling/ReelIQ/internal/prescore"
	"github.com/TobiSchelling/ReelIQ/internal/reel"
)

type mockProvider struct {
	response string
	err      error
	calls    int
	last     llm.Request
}

func (m *mockProvider) Generate(_ context.Context, req llm.Request) (string, error) {
	m.calls++
	m.last = req
	return m.response, m.err
}

func (m *mockProvider) IsConfigured() bool { return true }

func scoredReel() *diagnostic.Result {
	return diagnostic.Run(diagnostic.Input{
		Views:            1000,
		WatchTimeMinutes: 75,
		DurationSeconds:  15,
		Likes:            50,
		Comments:         10,
		Shares:           5,
		Saves:            20,
		Caption:          "Why nobody talks about this mistake\nmore text",
		Category:         "Educational",
		FollowerCount:    2000,
	})
}

func assertContains(t *testing.T, text string, wants ...string) {
	t.Helper()
	for _, want := range wants {
		if !strings.Contains(text, want) {
			t.Errorf("expected prompt to contain %q", want)
		}
	}
}

func TestBuildReportPrompt(t *testing.T) {
	prompt := BuildReportPrompt(scoredReel())
	assertContains(t, prompt,
		"- Category: Educational",
		"- Follower Count: 2,000",
		"- Reel Duration: 15 seconds",
		"- Caption Opening Line: Why nobody talks about this mistake\n",
		"- Retention: Below Average (30.0% retention ratio)",
		"- Engagement Rate: Good (8.50%)",
		"- Hook Strength: Strong (7.5/10)",
		"- Save Rate: Good (2.00%)",
		"WHAT GOOD LOOKS LIKE",
	)
}

func TestBuildReportPromptWithoutCaption(t *testing.T) {
	res := diagnostic.Run(diagnostic.Input{Views: 10, DurationSeconds: 15})
	assertContains(t, BuildReportPrompt(res), "Caption Opening Line: Not provided", "Category: Uncategorised")
}

func TestGenerateReport(t *testing.T) {
	mock := &mockProvider{response: "```\nOVERALL DIAGNOSIS\nFine.\n```"}
	got := GenerateReport(context.Background(), mock, scoredReel())

	if got != "OVERALL DIAGNOSIS\nFine." {
		t.Errorf("unexpected report %q", got)
	}
	if mock.last.MaxTokens != 600 || mock.last.Temperature != 0.7 || mock.last.System != reportSystem {
		t.Errorf("unexpected request %+v", mock.last)
	}
}

func TestGenerateErrors(t *testing.T) {
	mock := &mockProvider{err: errors.New("rate limited")}
	got := GenerateReport(context.Background(), mock, scoredReel())
	if got != "API ERROR: rate limited" || !IsError(got) {
		t.Errorf("unexpected error text %q", got)
	}

	got = GenerateTips(context.Background(), nil, prescore.Run(prescore.Input{}))
	if !IsError(got) {
		t.Errorf("expected error without provider, got %q", got)
	}
}

func TestBuildTipsPrompt(t *testing.T) {
	res := prescore.Run(prescore.Input{
		Category:        "Entertainment",
		HookType:        "No Hook Planned",
		DurationSeconds: 120,
		Caption:         "sunset vibes",
	})
	prompt := BuildTipsPrompt(res)
	assertContains(t, prompt,
		"- Hook Type: No Hook Planned",
		"- Planned Duration: 120 seconds",
		"- Planned Caption Opening: sunset vibes",
		"- Overall Pre-Score: 17/100 (High Risk)",
		"- Duration Fit: ",
		"\n- Duration over 90 s",
		"TIP 3:",
	)

	clean := prescore.Run(prescore.Input{Category: "Educational", HookType: "Tutorial / How-To", DurationSeconds: 45})
	assertContains(t, BuildTipsPrompt(clean), "- None identified", "Planned Caption Opening: Not provided")
}

func TestGenerateTipsRequest(t *testing.T) {
	mock := &mockProvider{response: "TIP 1: Cut it"}
	got := GenerateTips(context.Background(), mock, prescore.Run(prescore.Input{Category: "Educational"}))
	if got != "TIP 1: Cut it" || mock.last.MaxTokens != 400 || mock.last.System != tipsSystem {
		t.Errorf("unexpected tips %q with %+v", got, mock.last)
	}
}

func TestRecommendedDuration(t *testing.T) {
	tests := []struct {
		retention float64
		prefix    string
	}{
		{0.2, "15–25"},
		{0.349, "15–25"},
		{0.35, "25–40"},
		{0.549, "25–40"},
		{0.55, "30–60"},
	}
	for _, tt := range tests {
		if got := RecommendedDuration(tt.retention); !strings.HasPrefix(got, tt.prefix) {
			t.Errorf("RecommendedDuration(%v) = %q, want prefix %q", tt.retention, got, tt.prefix)
		}
	}
}

func TestBriefPromptPersonalised(t *testing.T) {
	p := &patterns.Patterns{
		EnoughData: true,
		Count:      6,
		Benchmarks: patterns.Benchmarks{AvgViews: 12345.6, AvgRetention: 0.5, AvgSaveRate: 0.0125},
		CategorySummary: []patterns.CategorySummary{
			{Category: "Aesthetic"},
		},
		HookSummary:   []patterns.HookSummary{{HookType: "Bold Statement"}},
		TopPerformers: []reel.Reel{{Views: 40000, Caption: "My studio tour"}},
	}
	prompt := BuildBriefPrompt("Studio tour", "followers", p)
	assertContains(t, prompt,
		"TOPIC: Studio tour",
		"GOAL: followers",
		"(from 6 analysed reels)",
		"- Average views: 12,346",
		"- Average retention: 50.0%",
		"- Average save rate: 1.25%",
		"- Best content category: Aesthetic",
		"- Recommended duration: 25–40 seconds",
		`Your best-performing reel was: "My studio tour" with 40,000 views.`,
		"MUST use Bold Statement as the hook type",
		"aligned with the goal: followers]",
	)
}

func TestBriefPromptGeneric(t *testing.T) {
	prompt := BuildBriefPrompt("Topic", "sales", &patterns.Patterns{Count: 2})
	assertContains(t, prompt, genericPersonalisation)
	if strings.Contains(prompt, "CREATOR'S PERSONAL DATA") {
		t.Error("expected no personal data without enough reels")
	}

	p := &patterns.Patterns{EnoughData: true, Count: 5}
	assertContains(t, Personalisation(p), "Best content category: Educational", "Best hook type: Question")
}

func TestGenerateBriefRequest(t *testing.T) {
	mock := &mockProvider{response: "━━ FORMAT"}
	GenerateBrief(context.Background(), mock, "t", "g", nil)
	if mock.calls != 1 || mock.last.Temperature != 0.75 || mock.last.MaxTokens != 600 {
		t.Errorf("unexpected request %+v", mock.last)
	}
}
