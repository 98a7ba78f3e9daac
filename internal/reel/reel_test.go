package reel

import "testing"

func ptr(s string) *string { return &s }

func f(v float64) *float64 { return &v }

func TestParseCategory(t *testing.T) {
	tests := []struct {
		raw  string
		want Category
	}{
		{"Educational", Educational},
		{" Aesthetic ", Aesthetic},
		{"Entertainment", Entertainment},
		{"educational", CategoryOther},
		{"Cooking", CategoryOther},
		{"", CategoryOther},
	}
	for _, tt := range tests {
		if got := ParseCategory(tt.raw); got != tt.want {
			t.Errorf("ParseCategory(%q) = %v, want %v", tt.raw, got, tt.want)
		}
	}
	if CategoryOther.Known() {
		t.Error("expected Other to be unknown")
	}
	if !Transactional.Known() {
		t.Error("expected Transactional to be known")
	}
}

func TestParseHookType(t *testing.T) {
	if got := ParseHookType("Tutorial / How-To"); got != HookTutorial {
		t.Errorf("expected HookTutorial, got %v", got)
	}
	if got := ParseHookType("No Hook Planned"); got != HookNone {
		t.Errorf("expected HookNone, got %v", got)
	}
	if got := ParseHookType("Meme"); got != HookOther {
		t.Errorf("expected HookOther, got %v", got)
	}
	if HookOther.String() != "Other" {
		t.Errorf("unexpected name %q", HookOther.String())
	}
}

func TestParseTime(t *testing.T) {
	for _, raw := range []string{"2026-10-01T12:00:00Z", "2026-10-01 12:00:00", "2026-10-01"} {
		got, ok := ParseTime(ptr(raw))
		if !ok {
			t.Errorf("expected %q to parse", raw)
			continue
		}
		if got.Year() != 2026 || got.Month() != 10 || got.Day() != 1 {
			t.Errorf("unexpected time for %q: %v", raw, got)
		}
	}
	if _, ok := ParseTime(ptr("last tuesday")); ok {
		t.Error("expected garbage timestamp to be rejected")
	}
	if _, ok := ParseTime(nil); ok {
		t.Error("expected nil timestamp to be rejected")
	}
}

func TestMeanAndPctChange(t *testing.T) {
	if Mean(nil) != 0 {
		t.Error("expected mean of empty slice to be 0")
	}
	if got := Mean([]float64{1, 2, 3}); got != 2 {
		t.Errorf("expected 2, got %v", got)
	}
	if got := PctChange(120, 100); got != 20 {
		t.Errorf("expected 20, got %v", got)
	}
	if got := PctChange(5, 0); got != 0 {
		t.Errorf("expected 0 on zero baseline, got %v", got)
	}
}

func TestMeanOfSkipsMissing(t *testing.T) {
	reels := []Reel{
		{RetentionRatio: f(0.4)},
		{RetentionRatio: nil},
		{RetentionRatio: f(0.6)},
	}
	if got := MeanOf(reels, RetentionMetric); got != 0.5 {
		t.Errorf("expected 0.5, got %v", got)
	}
}

func TestRoundInt(t *testing.T) {
	if RoundInt(12.5) != 12 {
		t.Error("expected half to round to even")
	}
	if RoundInt(7.5) != 8 {
		t.Error("expected 7.5 to round to 8")
	}
}

func TestGroupByKeepsFirstSeenOrder(t *testing.T) {
	reels := []Reel{{Category: "B"}, {Category: "A"}, {Category: "B"}, {Category: ""}}
	groups := GroupBy(reels, Reel.CategoryOrDefault)
	if len(groups) != 3 {
		t.Fatalf("expected 3 groups, got %d", len(groups))
	}
	if groups[0].Key != "B" || len(groups[0].Reels) != 2 {
		t.Errorf("unexpected first group %+v", groups[0])
	}
	if groups[2].Key != "Uncategorised" {
		t.Errorf("expected Uncategorised, got %q", groups[2].Key)
	}
}

func TestSortByRecency(t *testing.T) {
	reels := []Reel{
		{ID: 1, CreatedAt: ptr("2026-01-01")},
		{ID: 2, CreatedAt: ptr("garbage")},
		{ID: 3, CreatedAt: ptr("2026-03-01")},
	}
	sorted := SortByRecency(reels)
	if sorted[0].ID != 3 || sorted[1].ID != 1 || sorted[2].ID != 2 {
		t.Errorf("unexpected order: %d %d %d", sorted[0].ID, sorted[1].ID, sorted[2].ID)
	}
	if reels[0].ID != 1 {
		t.Error("expected input to be left untouched")
	}
}

func TestDisplayCaption(t *testing.T) {
	if got := (Reel{Caption: "Hello world"}).DisplayCaption(5); got != "Hello" {
		t.Errorf("expected truncation, got %q", got)
	}
	if got := (Reel{Category: "Aesthetic"}).DisplayCaption(70); got != "Aesthetic" {
		t.Errorf("expected category fallback, got %q", got)
	}
	if got := (Reel{}).DisplayCaption(70); got != "Untitled" {
		t.Errorf("expected Untitled, got %q", got)
	}
}
