package output

import (
	"fmt"

	"github.com/dustin/go-humanize"

	"github.com/TobiSchelling/ReelIQ/internal/database"
	"github.com/TobiSchelling/ReelIQ/internal/patterns"
	"github.com/TobiSchelling/ReelIQ/internal/reel"
	"github.com/TobiSchelling/ReelIQ/internal/rollup"
)

// Reels prints a one-line summary per reel.
func (p *Printer) Reels(reels []reel.Reel) {
	if len(reels) == 0 {
		p.line("No reels stored yet.")
		return
	}
	for _, r := range reels {
		created := "unknown"
		if t, ok := r.Created(); ok {
			created = t.Format("2006-01-02")
		}
		p.line("%5d  %s  %9s views  %-13s %-13s %s", r.ID, created, humanize.Comma(int64(r.Views)),
			p.tagged(TagFor(r.RetentionLabel), r.RetentionLabel),
			p.tagged(TagFor(r.HookLabel), r.HookLabel),
			r.DisplayCaption(40))
	}
}

// Stats prints store statistics.
func (p *Printer) Stats(s *database.Stats, dbPath string) {
	p.heading("Reel Store")
	p.line("  Database: %s", dbPath)
	p.line("  Reels: %d (%d scored, %d with AI report)", s.TotalReels, s.ScoredReels, s.WithAIReport)
	p.line("  Categories: %d", s.Categories)
	if s.FirstCreated != nil && s.LatestCreated != nil {
		p.line("  Range: %s to %s", *s.FirstCreated, *s.LatestCreated)
	}
}

// Patterns prints personal benchmarks and, when present, generated insights.
func (p *Printer) Patterns(pt *patterns.Patterns, ai *patterns.AIContent) {
	p.heading("Your Patterns")
	if !pt.EnoughData {
		p.line("You have %d reels. Add at least %d to unlock patterns.", pt.Count, patterns.MinReels)
		return
	}
	b := pt.Benchmarks
	p.line("%d reels · avg %s views · retention %s · engagement %s · hook %.1f/10 · saves %s",
		pt.Count, comma(b.AvgViews), pct(b.AvgRetention, 1), pct(b.AvgEngagement, 2), b.AvgHook, pct(b.AvgSaveRate, 2))

	if pt.Trend != nil {
		tag := "poor"
		if pt.Trend.ChangePct >= 0 {
			tag = "good"
		}
		p.line("Trend: last 5 reels %s views vs %s before (%s)", comma(pt.Trend.RecentAvgViews),
			comma(pt.Trend.OlderAvgViews), p.tagged(tag, fmt.Sprintf("%+.1f%%", pt.Trend.ChangePct)))
	}

	p.blank()
	p.line("Categories:")
	for _, c := range pt.CategorySummary {
		p.line("  %-16s %3d reels  %s avg views  %s retention", c.Category, c.Count, comma(c.AvgViews), pct(c.AvgRetention, 1))
	}
	p.line("Hook types:")
	for _, h := range pt.HookSummary {
		p.line("  %-20s %3d reels  %.1f/10 hook", h.HookType, h.Count, h.AvgHookScore)
	}
	p.reelList("Top performers:", pt.TopPerformers)
	p.reelList("Bottom performers:", pt.BottomPerformers)
	p.reelList("Underperformers:", pt.Underperformers)

	if ai == nil {
		return
	}
	p.blank()
	if ai.Error != "" {
		p.line("%s", p.faint("Insights unavailable: "+ai.Error))
		return
	}
	p.Text("Insights", ai.Insights)
	for _, item := range ai.Roadmap {
		tag := map[string]string{"HIGH": "poor", "MEDIUM": "average", "LOW": "good"}[item.Level]
		p.line("%s %s", p.tagged(tag, "["+item.Level+"]"), item.Title)
		p.line("  %s", item.Desc)
	}
}

func (p *Printer) reelList(title string, reels []reel.Reel) {
	if len(reels) == 0 {
		return
	}
	p.line("%s", title)
	for _, r := range reels {
		p.line("  %s (%s views)", r.DisplayCaption(60), humanize.Comma(int64(r.Views)))
	}
}

// Monthly prints the month-over-month card.
func (p *Printer) Monthly(m *rollup.Monthly) {
	p.heading("Monthly Report · " + m.MonthLabel)
	if !m.HasData {
		p.line("No reels yet.")
		return
	}
	if m.UseAllTime {
		p.line("%s", p.faint("Fewer than 2 reels this month; showing all-time figures."))
	}
	p.rollup(&m.Rollup, m.CompareLabel)
	if m.BestHookType != "" {
		p.line("Best hook type: %s", m.BestHookType)
	}
	if len(m.AvailableMonths) > 0 {
		var months []string
		for _, ym := range m.AvailableMonths {
			months = append(months, ym.String())
		}
		p.line("%s", p.faint(fmt.Sprintf("Months with data: %v", months)))
	}
}

// Digest prints the weekly digest.
func (p *Printer) Digest(d *rollup.Digest) {
	p.heading("Weekly Digest · " + d.PeriodLabel)
	if !d.HasData {
		p.line("No reels yet.")
		return
	}
	if d.UserEmail != "" {
		p.line("For %s · %d reels total", d.UserEmail, d.TotalReels)
	}
	p.rollup(&d.Rollup, "Previous week")
	if d.WorstReel != nil {
		p.line("Needs work: %s (%s views)", d.WorstReel.DisplayCaption(60), humanize.Comma(int64(d.WorstReel.Views)))
	}
	if d.BestCategory != "" {
		p.line("Best category: %s", d.BestCategory)
	}
	p.line("%s", p.faint("Generated "+d.GeneratedAt))
}

func (p *Printer) rollup(r *rollup.Rollup, compareLabel string) {
	p.line("Score %s  %s", p.tagged(r.Colour, fmt.Sprintf("%d/100", r.Score)), p.tagged(r.Colour, r.Label))
	s := r.Summary
	p.line("%d reels · %s views · %s saves · %s likes", s.ReelCount,
		humanize.Comma(int64(s.TotalViews)), humanize.Comma(int64(s.TotalSaves)), humanize.Comma(int64(s.TotalLikes)))
	p.blank()

	rows := []struct {
		name         string
		current, was string
		delta        *float64
		score        int
	}{
		{"Views", comma(s.AvgViews), comma(r.Baseline.AvgViews), r.Deltas.Views, r.Components.Views},
		{"Retention", pct(s.AvgRetention, 1), pct(r.Baseline.AvgRetention, 1), r.Deltas.Retention, r.Components.Retention},
		{"Engagement", pct(s.AvgEngagement, 2), pct(r.Baseline.AvgEngagement, 2), r.Deltas.Engagement, r.Components.Engagement},
		{"Save Rate", pct(s.AvgSaveRate, 2), pct(r.Baseline.AvgSaveRate, 2), r.Deltas.SaveRate, r.Components.SaveRate},
	}
	p.line("  %-10s %10s %10s %9s %6s", "", "Now", compareLabel, "Change", "Score")
	for _, row := range rows {
		p.line("  %-10s %10s %10s %9s %3d/25", row.name, row.current, row.was, signed(row.delta), row.score)
	}
	p.blank()
	if r.MostImproved != "" {
		p.line("Most improved: %s (%s)", r.MostImproved, p.tagged("good", signed(r.MostImprovedVal)))
	}
	if r.BestReel != nil {
		p.line("Best reel: %s (%s views)", r.BestReel.DisplayCaption(60), humanize.Comma(int64(r.BestReel.Views)))
	}
	for _, c := range r.CategoryBreakdown {
		p.line("  %-16s %3d reels  %3d%%  %s avg views", c.Category, c.Count, c.SharePct, humanize.Comma(int64(c.AvgViews)))
	}
}
