package rollup

import (
	"fmt"
	"time"

	"github.com/TobiSchelling/ReelIQ/internal/reel"
)

const week = 7 * 24 * time.Hour

var digestBands = []band{
	{80, "Breakout Week", "good"},
	{60, "Growing", "good"},
	{40, "Steady", "average"},
	{0, "Needs Attention", "poor"},
}

// Digest is the trailing-week summary.
type Digest struct {
	Rollup
	UserEmail    string     `json:"user_email"`
	PeriodLabel  string     `json:"period_label"`
	TotalReels   int        `json:"total_reels"`
	WorstReel    *reel.Reel `json:"worst_reel,omitempty"`
	BestCategory string     `json:"best_category,omitempty"`
	GeneratedAt  string     `json:"generated_at"`
}

// BuildDigest summarises the seven days before now against the seven days
// before that.
func BuildDigest(reels []reel.Reel, email string, now time.Time) *Digest {
	now = now.UTC()
	weekAgo := now.Add(-week)
	twoWeeksAgo := now.Add(-2 * week)

	var p partition
	for _, r := range reels {
		t, ok := r.Created()
		switch {
		case !ok:
			p.other = append(p.other, r)
		case !t.Before(weekAgo):
			p.current = append(p.current, r)
		case !t.Before(twoWeeksAgo):
			p.prior = append(p.prior, r)
		default:
			p.other = append(p.other, r)
		}
	}

	d := &Digest{
		Rollup:      compute(reels, p, digestBands),
		UserEmail:   email,
		TotalReels:  len(reels),
		GeneratedAt: now.Format("Mon 02 Jan 2006 · 15:04 UTC"),
	}
	if !d.HasData {
		return d
	}

	summaryReels := p.current
	if d.UseAllTime {
		summaryReels = reels
		d.PeriodLabel = fmt.Sprintf("All time · %d reels", len(reels))
	} else {
		d.PeriodLabel = weekAgo.Format("2 Jan") + " – " + now.Format("2 Jan")
	}

	if len(summaryReels) > 1 {
		byViews := reel.SortByViews(summaryReels)
		worst := byViews[len(byViews)-1]
		d.WorstReel = &worst
	}
	d.BestCategory = bestByViews(summaryReels, reel.Reel.CategoryOrDefault)
	return d
}
