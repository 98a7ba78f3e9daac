package ingest

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"log"
	"math"
	"strconv"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/TobiSchelling/ReelIQ/internal/diagnostic"
	"github.com/TobiSchelling/ReelIQ/internal/reel"
)

// Columns lists the recognised CSV headers. Only views is required.
var Columns = []string{
	"views", "watch_time_minutes", "reel_duration_seconds", "likes", "comments",
	"shares", "saves", "caption", "category", "hook_type", "follower_count", "created_at",
}

// Row is one parsed CSV record.
type Row struct {
	Line      int
	Input     diagnostic.Input
	CreatedAt *string
}

// RowError describes a record that could not be parsed.
type RowError struct {
	Line int
	Err  error
}

func (e RowError) Error() string {
	return fmt.Sprintf("line %d: %v", e.Line, e.Err)
}

func (e RowError) MarshalText() ([]byte, error) {
	return []byte(e.Error()), nil
}

// ImportResult summarises a CSV import.
type ImportResult struct {
	Imported int        `json:"imported"`
	IDs      []int64    `json:"ids"`
	Skipped  []RowError `json:"skipped"`
}

// ParseCSV reads canonical-header CSV. Unknown columns are ignored and bad
// records are returned as RowErrors instead of failing the whole file.
func ParseCSV(r io.Reader) ([]Row, []RowError, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if err == io.EOF {
		return nil, nil, errors.New("empty CSV file")
	}
	if err != nil {
		return nil, nil, fmt.Errorf("reading CSV header: %w", err)
	}

	index := make(map[string]int, len(header))
	for i, h := range header {
		index[strings.ToLower(strings.TrimSpace(strings.TrimPrefix(h, "\ufeff")))] = i
	}
	if _, ok := index["views"]; !ok {
		return nil, nil, fmt.Errorf("CSV header has no views column; expected columns: %s", strings.Join(Columns, ", "))
	}

	var rows []Row
	var skipped []RowError
	for {
		record, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			var perr *csv.ParseError
			if !errors.As(err, &perr) {
				return nil, nil, fmt.Errorf("reading CSV: %w", err)
			}
			skipped = append(skipped, RowError{Line: perr.StartLine, Err: perr.Err})
			continue
		}
		line, _ := cr.FieldPos(0)
		if blank(record) {
			continue
		}
		row, err := parseRecord(record, index)
		if err != nil {
			skipped = append(skipped, RowError{Line: line, Err: err})
			continue
		}
		row.Line = line
		rows = append(rows, row)
	}
	return rows, skipped, nil
}

func parseRecord(record []string, index map[string]int) (Row, error) {
	field := func(name string) string {
		i, ok := index[name]
		if !ok || i >= len(record) {
			return ""
		}
		return strings.TrimSpace(record[i])
	}

	var row Row
	var err error
	in := &row.Input
	if in.Views, err = parseInt(field("views"), "views"); err != nil {
		return row, err
	}
	if in.WatchTimeMinutes, err = parseFloat(field("watch_time_minutes"), "watch_time_minutes"); err != nil {
		return row, err
	}
	if raw := field("reel_duration_seconds"); raw == "" {
		in.DurationSeconds = reel.DefaultDurationSeconds
	} else if in.DurationSeconds, err = parseInt(raw, "reel_duration_seconds"); err != nil {
		return row, err
	}
	ints := []struct {
		name string
		dest *int
	}{
		{"likes", &in.Likes},
		{"comments", &in.Comments},
		{"shares", &in.Shares},
		{"saves", &in.Saves},
		{"follower_count", &in.FollowerCount},
	}
	for _, f := range ints {
		if *f.dest, err = parseInt(field(f.name), f.name); err != nil {
			return row, err
		}
	}
	in.Caption = field("caption")
	in.Category = field("category")
	in.HookType = field("hook_type")

	if created := field("created_at"); created != "" {
		if _, ok := reel.ParseTime(&created); !ok {
			return row, fmt.Errorf("created_at: unrecognised timestamp %q", created)
		}
		row.CreatedAt = &created
	}
	return row, nil
}

// maxCount bounds integer cells so float-formatted counts convert exactly.
const maxCount = 1 << 53

// parseInt accepts thousands separators and whole-number floats.
func parseInt(raw, name string) (int, error) {
	if raw == "" {
		return 0, nil
	}
	raw = strings.ReplaceAll(raw, ",", "")
	if n, err := strconv.Atoi(raw); err == nil {
		if n > maxCount || n < -maxCount {
			return 0, fmt.Errorf("%s: out of range: %q", name, raw)
		}
		return n, nil
	}
	v, err := parseFloat(raw, name)
	if err != nil {
		return 0, err
	}
	if math.Abs(v) > maxCount {
		return 0, fmt.Errorf("%s: out of range: %q", name, raw)
	}
	return int(v), nil
}

// parseFloat rejects NaN and infinities, which strconv accepts.
func parseFloat(raw, name string) (float64, error) {
	if raw == "" {
		return 0, nil
	}
	v, err := strconv.ParseFloat(strings.ReplaceAll(raw, ",", ""), 64)
	if err != nil {
		return 0, fmt.Errorf("%s: not a number: %q", name, raw)
	}
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, fmt.Errorf("%s: not a finite number: %q", name, raw)
	}
	return v, nil
}

func blank(record []string) bool {
	for _, f := range record {
		if strings.TrimSpace(f) != "" {
			return false
		}
	}
	return true
}

// Import parses a CSV file, scores every row with up to workers goroutines
// and stores the batch in one transaction.
func Import(ctx context.Context, store Store, userID string, r io.Reader, workers int) (*ImportResult, error) {
	rows, skipped, err := ParseCSV(r)
	if err != nil {
		return nil, err
	}
	for _, s := range skipped {
		log.Printf("Skipping CSV %v", s)
	}
	res := &ImportResult{Skipped: skipped}
	if len(rows) == 0 {
		return res, nil
	}

	reels := make([]reel.Reel, len(rows))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(max(workers, 1))
	for i, row := range rows {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			reels[i], _ = Score(userID, row.Input, row.CreatedAt)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("scoring CSV rows: %w", err)
	}

	ids, err := store.InsertReels(reels)
	if err != nil {
		return nil, fmt.Errorf("storing imported reels: %w", err)
	}
	res.Imported = len(ids)
	res.IDs = ids
	log.Printf("Imported %d reels, skipped %d rows", res.Imported, len(res.Skipped))
	return res, nil
}
