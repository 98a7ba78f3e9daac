package output

import (
	"fmt"
	"strings"

	"github.com/dustin/go-humanize"

	"github.com/TobiSchelling/ReelIQ/internal/benchmark"
	"github.com/TobiSchelling/ReelIQ/internal/diagnostic"
	"github.com/TobiSchelling/ReelIQ/internal/prescore"
)

// Diagnostic prints the four diagnostic dimensions of a reel.
func (p *Printer) Diagnostic(res *diagnostic.Result) {
	p.heading("Reel Diagnostic")
	rows := []struct {
		name, label, value, explanation string
	}{
		{"Retention", res.Retention.Label, pct(res.Retention.Ratio, 1), res.Retention.Explanation},
		{"Engagement", res.Engagement.Label, pct(res.Engagement.Rate, 2), res.Engagement.Explanation},
		{"Hook", res.Hook.Label, fmt.Sprintf("%.1f/10", res.Hook.Score), res.Hook.Explanation},
		{"Save Rate", res.SaveRate.Label, pct(res.SaveRate.Rate, 2), res.SaveRate.Explanation},
	}
	for _, r := range rows {
		p.line("%-11s %s  %s", r.name, p.tagged(TagFor(r.label), r.label), r.value)
		p.line("            %s", p.faint(r.explanation))
	}
	if len(res.Hook.Triggers) > 0 {
		p.line("Triggers    %s", strings.Join(res.Hook.Triggers, ", "))
	}
}

// PreScore prints a pre-production prediction.
func (p *Printer) PreScore(res *prescore.Result) {
	p.heading("Pre-Score")
	p.line("%s  %s", p.tagged(res.Colour, humanize.Comma(int64(res.Total))+"/100"), p.tagged(res.Colour, res.Label))
	p.line("%s", res.Summary)
	p.blank()
	c := res.Components
	for _, comp := range []prescore.Component{c.Duration, c.Hook, c.Alignment, c.Caption} {
		p.line("  %-15s %2d/25", comp.Label, comp.Score)
	}
	if len(res.Flags) > 0 {
		p.blank()
		p.line("Risk flags:")
		for _, f := range res.Flags {
			p.line("  %s %s", p.tagged("poor", "!"), f)
		}
	}
}

// Benchmark prints the industry comparison.
func (p *Printer) Benchmark(r *benchmark.Report) {
	p.heading("Industry Benchmark")
	if !r.HasData {
		p.line("No reels yet. Add a reel to compare against industry figures.")
		return
	}
	p.line("%d reels · %s · %s", r.ReelCount, r.PrimaryCategory, r.TierLabel)
	if r.UnrecognizedCategory {
		p.line("%s", p.faint("Category not in the benchmark set; using tier averages."))
	}
	p.line("Score %s  %s", p.tagged(r.ScoreColour, humanize.Comma(int64(r.Score))+"/100"), p.tagged(r.ScoreColour, r.ScoreLabel))
	p.blank()
	for _, m := range r.Metrics {
		user, bench := pct(m.User, 1), pct(m.Bench, 1)
		if m.Name == "Views" {
			user, bench = comma(m.User), comma(m.Bench)
		}
		p.line("  %-10s %10s vs %-10s %+7.1f%%  %s", m.Name, user, bench, m.DeltaPct, p.tagged(m.Grade.Class, m.Grade.Label))
	}
	p.blank()
	p.line("Strongest: %s (%+.1f%%)", r.StrongestMetric, r.StrongestDelta)
	for _, o := range r.Opportunities {
		p.line("Opportunity: %s %s vs %s, target %s", o.Metric, o.UserVal, o.BenchVal, o.Target)
	}
	if len(r.CategoryBreakdown) > 1 {
		p.blank()
		p.line("By category:")
		for _, c := range r.CategoryBreakdown {
			p.line("  %-16s %3d reels  %s avg views vs %s  %s", c.Category, c.Count,
				humanize.Comma(int64(c.AvgViews)), humanize.Comma(int64(c.BenchViews)),
				p.tagged(c.GradeViews.Class, c.GradeViews.Label))
		}
	}
}
