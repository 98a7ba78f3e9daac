package database

import (
	"path/filepath"
	"testing"

	"github.com/TobiSchelling/ReelIQ/internal/reel"
)

func openTestDB(t *testing.T) *DB {
	t.Helper()
	db, err := Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("failed to open test db: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

func ptr(s string) *string { return &s }

func f(v float64) *float64 { return &v }

func sampleReel(user, created string, views int) reel.Reel {
	return reel.Reel{
		UserID:           user,
		CreatedAt:        ptr(created),
		Views:            views,
		WatchTimeMinutes: 75,
		DurationSeconds:  15,
		Likes:            50,
		Saves:            20,
		Caption:          "Why nobody talks about this",
		Category:         "Educational",
		HookType:         "Question",
		FollowerCount:    2000,
		RetentionRatio:   f(0.3),
		RetentionLabel:   "Below Average",
		EngagementRate:   f(0.085),
		EngagementLabel:  "Good",
		HookScore:        f(7.5),
		HookLabel:        "Strong",
		SaveRate:         f(0.02),
		SaveLabel:        "Good",
	}
}

func TestOpenSetsPragmas(t *testing.T) {
	db := openTestDB(t)

	var mode string
	if err := db.conn.QueryRow("PRAGMA journal_mode").Scan(&mode); err != nil {
		t.Fatalf("journal_mode: %v", err)
	}
	if mode != "wal" {
		t.Errorf("journal_mode = %q, want wal", mode)
	}

	var timeout int
	if err := db.conn.QueryRow("PRAGMA busy_timeout").Scan(&timeout); err != nil {
		t.Fatalf("busy_timeout: %v", err)
	}
	if timeout != busyTimeoutMillis {
		t.Errorf("busy_timeout = %d, want %d", timeout, busyTimeoutMillis)
	}
}

func TestInsertAndGetReel(t *testing.T) {
	db := openTestDB(t)
	id, err := db.InsertReel(sampleReel("u1", "2026-10-03T10:00:00Z", 1000))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if id == 0 {
		t.Fatal("expected non-zero reel ID")
	}

	got, err := db.GetReel("u1", id)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got == nil {
		t.Fatal("expected reel, got nil")
	}
	if got.Views != 1000 || got.Caption != "Why nobody talks about this" || got.HookLabel != "Strong" {
		t.Errorf("unexpected reel %+v", got)
	}
	if got.RetentionRatio == nil || *got.RetentionRatio != 0.3 {
		t.Errorf("expected retention 0.3, got %v", got.RetentionRatio)
	}
	if got.CreatedAt == nil || *got.CreatedAt != "2026-10-03 10:00:00" {
		t.Errorf("expected normalised timestamp, got %v", got.CreatedAt)
	}
	if got.AIReport != nil {
		t.Errorf("expected no AI report, got %q", *got.AIReport)
	}
}

func TestGetReelOtherUser(t *testing.T) {
	db := openTestDB(t)
	id, _ := db.InsertReel(sampleReel("u1", "2026-10-03", 10))

	got, err := db.GetReel("u2", id)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != nil {
		t.Error("expected nil for another user's reel")
	}
}

func TestInsertReelDefaultsCreatedAt(t *testing.T) {
	db := openTestDB(t)
	r := sampleReel("u1", "", 10)
	r.CreatedAt = nil
	r.Caption = ""
	r.RetentionRatio = nil
	r.RetentionLabel = ""

	id, err := db.InsertReel(r)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	got, _ := db.GetReel("u1", id)
	if _, ok := got.Created(); !ok {
		t.Errorf("expected a parseable creation time, got %v", got.CreatedAt)
	}
	if got.Caption != "" || got.RetentionRatio != nil || got.RetentionLabel != "" {
		t.Errorf("expected empty nullable fields, got %+v", got)
	}
}

func TestGetUserReelsNewestFirst(t *testing.T) {
	db := openTestDB(t)
	db.InsertReel(sampleReel("u1", "2026-09-01", 1))
	db.InsertReel(sampleReel("u1", "2026-10-12T09:30:00Z", 2))
	db.InsertReel(sampleReel("u1", "2026-10-03 08:00:00", 3))
	db.InsertReel(sampleReel("u2", "2026-10-13", 4))

	reels, err := db.GetUserReels("u1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(reels) != 3 {
		t.Fatalf("expected 3 reels, got %d", len(reels))
	}
	for i, want := range []int{2, 3, 1} {
		if reels[i].Views != want {
			t.Errorf("reel %d: expected views %d, got %d", i, want, reels[i].Views)
		}
	}
}

func TestInsertReelsBatch(t *testing.T) {
	db := openTestDB(t)
	ids, err := db.InsertReels([]reel.Reel{
		sampleReel("u1", "2026-10-01", 1),
		sampleReel("u1", "2026-10-02", 2),
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(ids) != 2 || ids[0] == ids[1] {
		t.Errorf("unexpected ids %v", ids)
	}

	reels, _ := db.GetUserReels("u1")
	if len(reels) != 2 {
		t.Errorf("expected 2 reels, got %d", len(reels))
	}
}

func TestDeleteReel(t *testing.T) {
	db := openTestDB(t)
	id, _ := db.InsertReel(sampleReel("u1", "2026-10-01", 1))

	if ok, _ := db.DeleteReel("u2", id); ok {
		t.Error("expected another user's delete to be a no-op")
	}
	ok, err := db.DeleteReel("u1", id)
	if err != nil || !ok {
		t.Fatalf("expected delete, got %v %v", ok, err)
	}
	if got, _ := db.GetReel("u1", id); got != nil {
		t.Error("expected reel to be gone")
	}
	if ok, _ := db.DeleteReel("u1", id); ok {
		t.Error("expected second delete to report false")
	}
}

func TestUpdateAIReport(t *testing.T) {
	db := openTestDB(t)
	id, _ := db.InsertReel(sampleReel("u1", "2026-10-01", 1))

	if err := db.UpdateAIReport("u1", id, "OVERALL DIAGNOSIS"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	got, _ := db.GetReel("u1", id)
	if got.AIReport == nil || *got.AIReport != "OVERALL DIAGNOSIS" {
		t.Errorf("unexpected report %v", got.AIReport)
	}

	if err := db.UpdateAIReport("u1", id+100, "x"); err == nil {
		t.Error("expected error for missing reel")
	}
}

func TestGetStats(t *testing.T) {
	db := openTestDB(t)
	db.InsertReel(sampleReel("u1", "2026-09-01", 1))
	second := sampleReel("u1", "2026-10-02", 2)
	second.Category = "Aesthetic"
	second.RetentionRatio = nil
	id, _ := db.InsertReel(second)
	db.UpdateAIReport("u1", id, "report")
	db.InsertReel(sampleReel("u2", "2026-10-03", 3))

	s, err := db.GetStats("u1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if s.TotalReels != 2 || s.ScoredReels != 1 || s.WithAIReport != 1 || s.Categories != 2 {
		t.Errorf("unexpected stats %+v", s)
	}
	if s.FirstCreated == nil || *s.FirstCreated != "2026-09-01 00:00:00" {
		t.Errorf("unexpected first created %v", s.FirstCreated)
	}
	if s.LatestCreated == nil || *s.LatestCreated != "2026-10-02 00:00:00" {
		t.Errorf("unexpected latest created %v", s.LatestCreated)
	}
}

func TestGetStatsEmpty(t *testing.T) {
	db := openTestDB(t)
	s, err := db.GetStats("nobody")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if s.TotalReels != 0 || s.FirstCreated != nil {
		t.Errorf("unexpected stats %+v", s)
	}
}
