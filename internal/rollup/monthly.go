package rollup

import (
	"fmt"
	"sort"
	"time"

	"github.com/TobiSchelling/ReelIQ/internal/reel"
)

var monthlyBands = []band{
	{80, "Breakout Month", "good"},
	{60, "Growing", "good"},
	{40, "Steady", "average"},
	{0, "Needs Attention", "poor"},
}

// YearMonth identifies a calendar month.
type YearMonth struct {
	Year  int        `json:"year"`
	Month time.Month `json:"month"`
}

func (ym YearMonth) String() string {
	return fmt.Sprintf("%s %d", ym.Month, ym.Year)
}

// Prev returns the preceding calendar month.
func (ym YearMonth) Prev() YearMonth {
	if ym.Month == time.January {
		return YearMonth{Year: ym.Year - 1, Month: time.December}
	}
	return YearMonth{Year: ym.Year, Month: ym.Month - 1}
}

// Monthly is the month-over-month performance card.
type Monthly struct {
	Rollup
	Target          YearMonth   `json:"target"`
	MonthLabel      string      `json:"month_label"`
	CompareLabel    string      `json:"compare_label"`
	BestHookType    string      `json:"best_hook_type,omitempty"`
	AvailableMonths []YearMonth `json:"available_months"`
}

// ComputeMonthly builds the card for the given month. With fewer than
// MinPeriodReels reels in that month the card covers the whole history.
func ComputeMonthly(reels []reel.Reel, year int, month time.Month) *Monthly {
	target := YearMonth{Year: year, Month: month}
	prev := target.Prev()

	var p partition
	for _, r := range reels {
		t, ok := r.Created()
		switch {
		case !ok:
			p.other = append(p.other, r)
		case t.Year() == target.Year && t.Month() == target.Month:
			p.current = append(p.current, r)
		case t.Year() == prev.Year && t.Month() == prev.Month:
			p.prior = append(p.prior, r)
		default:
			p.other = append(p.other, r)
		}
	}

	m := &Monthly{
		Rollup:          compute(reels, p, monthlyBands),
		Target:          target,
		MonthLabel:      target.String(),
		AvailableMonths: AvailableMonths(reels),
	}
	if !m.HasData {
		return m
	}

	m.CompareLabel = "Prior average"
	if !m.UseAllTime && len(p.prior) > 0 {
		m.CompareLabel = prev.String()
	}
	m.BestHookType = m.HookBreakdown[0].HookType
	return m
}

// AvailableMonths lists the months containing at least one dated reel, newest first.
func AvailableMonths(reels []reel.Reel) []YearMonth {
	seen := make(map[YearMonth]bool)
	var out []YearMonth
	for _, r := range reels {
		t, ok := r.Created()
		if !ok {
			continue
		}
		ym := YearMonth{Year: t.Year(), Month: t.Month()}
		if !seen[ym] {
			seen[ym] = true
			out = append(out, ym)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Year != out[j].Year {
			return out[i].Year > out[j].Year
		}
		return out[i].Month > out[j].Month
	})
	return out
}
