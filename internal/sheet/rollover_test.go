package sheet

import (
	"reflect"
	"testing"
	"time"
)

var rolloverNow = time.Date(2024, 1, 2, 9, 30, 0, 0, time.UTC)

func testSheet(t *testing.T) *Sheet {
	t.Helper()
	s, err := New("groceries", "Groceries", "weekly shopping")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	return s
}

func itemAt(t *testing.T, created time.Time, text string, completed bool) ChecklistItem {
	t.Helper()
	it := NewItem(text, created)
	if completed {
		it.Completed = true
		closed := created
		it.ClosedAt = &closed
	}
	return it
}

func TestRolloverEmptySheet(t *testing.T) {
	s := testSheet(t)

	Rollover(s, "2024-01-02", rolloverNow, RolloverOptions{})

	if len(s.Days) != 1 {
		t.Fatalf("expected 1 day, got %d", len(s.Days))
	}
	if s.Days[0].Day != "2024-01-02" {
		t.Errorf("expected today entry, got %s", s.Days[0].Day)
	}
	if len(s.Days[0].Items) != 0 {
		t.Errorf("expected empty today entry, got %d items", len(s.Days[0].Items))
	}
}

func TestRolloverMigratesIncompleteItem(t *testing.T) {
	created := time.Date(2024, 1, 1, 8, 0, 0, 0, time.UTC)
	s := testSheet(t)
	s.Days = []DayEntry{
		{Day: "2024-01-01", Items: []ChecklistItem{itemAt(t, created, "buy milk", false)}},
	}

	Rollover(s, "2024-01-02", rolloverNow, RolloverOptions{})

	if len(s.Days) != 1 {
		t.Fatalf("expected old day pruned, got %d days", len(s.Days))
	}
	today := s.Days[0]
	if today.Day != "2024-01-02" {
		t.Fatalf("expected 2024-01-02, got %s", today.Day)
	}
	if len(today.Items) != 1 {
		t.Fatalf("expected 1 migrated item, got %d", len(today.Items))
	}
	it := today.Items[0]
	if it.Text != "buy milk" {
		t.Errorf("expected 'buy milk', got %q", it.Text)
	}
	if it.Completed {
		t.Error("migrated item should stay incomplete")
	}
	if !it.AddedAt.Equal(rolloverNow) {
		t.Errorf("expected AddedAt re-stamped to %v, got %v", rolloverNow, it.AddedAt)
	}
}

func TestRolloverPreservesRelativeOrder(t *testing.T) {
	created := time.Date(2023, 12, 30, 8, 0, 0, 0, time.UTC)
	s := testSheet(t)
	s.Days = []DayEntry{
		// Deliberately out of chronological order in storage.
		{Day: "2024-01-01", Items: []ChecklistItem{
			itemAt(t, created, "c", false),
			itemAt(t, created, "d", false),
		}},
		{Day: "2023-12-31", Items: []ChecklistItem{
			itemAt(t, created, "a", false),
			itemAt(t, created, "b", true),
			itemAt(t, created, "e", false),
		}},
		{Day: "2024-01-02", Items: []ChecklistItem{
			itemAt(t, created, "already here", false),
		}},
	}

	Rollover(s, "2024-01-02", rolloverNow, RolloverOptions{})

	today, ok := s.Day("2024-01-02")
	if !ok {
		t.Fatal("expected today entry")
	}
	var texts []string
	for _, it := range today.Items {
		texts = append(texts, it.Text)
	}
	want := []string{"already here", "a", "e", "c", "d"}
	if !reflect.DeepEqual(texts, want) {
		t.Errorf("expected order %v, got %v", want, texts)
	}

	old, ok := s.Day("2023-12-31")
	if !ok {
		t.Fatal("expected 2023-12-31 kept (has a completed item)")
	}
	if len(old.Items) != 1 || !old.Items[0].Completed {
		t.Errorf("expected only the completed item left, got %v", old.Items)
	}
}

func TestRolloverLeavesCompletedUntouched(t *testing.T) {
	created := time.Date(2024, 1, 1, 8, 0, 0, 0, time.UTC)
	s := testSheet(t)
	done := itemAt(t, created, "done already", true)
	s.Days = []DayEntry{{Day: "2024-01-01", Items: []ChecklistItem{done}}}

	Rollover(s, "2024-01-02", rolloverNow, RolloverOptions{})

	old, ok := s.Day("2024-01-01")
	if !ok {
		t.Fatal("expected non-empty past day kept")
	}
	if !reflect.DeepEqual(old.Items[0], done) {
		t.Errorf("completed item changed during rollover: %+v", old.Items[0])
	}
	if today, _ := s.Day("2024-01-02"); len(today.Items) != 0 {
		t.Errorf("expected nothing migrated, got %d items", len(today.Items))
	}
}

func TestRolloverIdempotent(t *testing.T) {
	created := time.Date(2024, 1, 1, 8, 0, 0, 0, time.UTC)
	s := testSheet(t)
	s.Days = []DayEntry{
		{Day: "2024-01-01", Items: []ChecklistItem{
			itemAt(t, created, "carry me", false),
			itemAt(t, created, "finished", true),
		}},
	}

	Rollover(s, "2024-01-02", rolloverNow, RolloverOptions{})
	first := make([]DayEntry, len(s.Days))
	copy(first, s.Days)

	later := rolloverNow.Add(5 * time.Minute)
	Rollover(s, "2024-01-02", later, RolloverOptions{})

	if !reflect.DeepEqual(first, s.Days) {
		t.Errorf("second rollover changed the sheet:\nfirst:  %+v\nsecond: %+v", first, s.Days)
	}
}

func TestRolloverPrunesEveryEmptyPastDay(t *testing.T) {
	created := time.Date(2024, 1, 1, 8, 0, 0, 0, time.UTC)
	s := testSheet(t)
	s.Days = []DayEntry{
		{Day: "2023-12-30"},
		{Day: "2024-01-01", Items: []ChecklistItem{itemAt(t, created, "move", false)}},
	}

	Rollover(s, "2024-01-02", rolloverNow, RolloverOptions{})

	for _, d := range s.Days {
		if d.Day != "2024-01-02" && len(d.Items) == 0 {
			t.Errorf("empty past day %s survived rollover", d.Day)
		}
	}
	if _, ok := s.Day("2023-12-30"); ok {
		t.Error("expected already-empty day pruned")
	}
}

func TestRolloverSeedsFreshEmptyToday(t *testing.T) {
	s := testSheet(t)

	Rollover(s, "2024-01-02", rolloverNow, RolloverOptions{SeedText: "plan the day"})

	today, _ := s.Day("2024-01-02")
	if len(today.Items) != 1 {
		t.Fatalf("expected seeded item, got %d items", len(today.Items))
	}
	if today.Items[0].Text != "plan the day" {
		t.Errorf("expected seed text, got %q", today.Items[0].Text)
	}
	if today.Items[0].Completed {
		t.Error("seed item should be incomplete")
	}

	// Seeding only applies to a freshly created entry.
	Rollover(s, "2024-01-03", rolloverNow.Add(24*time.Hour), RolloverOptions{SeedText: "plan the day"})
	next, _ := s.Day("2024-01-03")
	if len(next.Items) != 1 {
		t.Fatalf("expected only the migrated seed item, got %d", len(next.Items))
	}
}

func TestRolloverNoSeedWhenItemsMigrated(t *testing.T) {
	created := time.Date(2024, 1, 1, 8, 0, 0, 0, time.UTC)
	s := testSheet(t)
	s.Days = []DayEntry{
		{Day: "2024-01-01", Items: []ChecklistItem{itemAt(t, created, "carried", false)}},
	}

	Rollover(s, "2024-01-02", rolloverNow, RolloverOptions{SeedText: "plan the day"})

	today, _ := s.Day("2024-01-02")
	if len(today.Items) != 1 || today.Items[0].Text != "carried" {
		t.Errorf("expected only the migrated item, got %+v", today.Items)
	}
}
