// Package ingest scores reels and persists them, one at a time or as a
// CSV batch.
package ingest

import (
	"context"
	"fmt"
	"log"

	"github.com/TobiSchelling/ReelIQ/internal/coach"
	"github.com/TobiSchelling/ReelIQ/internal/diagnostic"
	"github.com/TobiSchelling/ReelIQ/internal/llm"
	"github.com/TobiSchelling/ReelIQ/internal/reel"
)

// Store is the persistence needed by ingestion.
type Store interface {
	InsertReel(r reel.Reel) (int64, error)
	InsertReels(reels []reel.Reel) ([]int64, error)
}

// Score runs the diagnostic on in and returns the reel record to store.
func Score(userID string, in diagnostic.Input, createdAt *string) (reel.Reel, *diagnostic.Result) {
	res := diagnostic.Run(in)
	r := reel.Reel{UserID: userID, CreatedAt: createdAt}
	res.Apply(&r)
	return r, res
}

// Added is the outcome of adding one reel.
type Added struct {
	Reel   reel.Reel          `json:"reel"`
	Result *diagnostic.Result `json:"diagnostic"`
	// Report is the generated text, which may be an error string. It is only
	// stored on the reel when generation succeeded.
	Report string `json:"ai_report,omitempty"`
}

// Add scores a reel, optionally asks provider for a report, and stores it.
// A nil provider skips the report.
func Add(ctx context.Context, store Store, provider llm.Provider, userID string, in diagnostic.Input) (*Added, error) {
	r, res := Score(userID, in, nil)
	a := &Added{Result: res}

	if provider != nil {
		a.Report = coach.GenerateReport(ctx, provider, res)
		if !coach.IsError(a.Report) {
			report := a.Report
			r.AIReport = &report
		}
	}

	id, err := store.InsertReel(r)
	if err != nil {
		return nil, fmt.Errorf("storing reel: %w", err)
	}
	r.ID = id
	a.Reel = r
	log.Printf("Stored reel %d (%s retention, %s engagement)", id, res.Retention.Label, res.Engagement.Label)
	return a, nil
}
