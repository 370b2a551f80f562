package sheet

import (
	"errors"
	"testing"
	"time"
)

var mutateNow = time.Date(2024, 1, 2, 14, 0, 0, 0, time.UTC)

func sheetWithItems(t *testing.T, day string, texts ...string) *Sheet {
	t.Helper()
	s := testSheet(t)
	entry := s.EnsureDay(day)
	for _, text := range texts {
		entry.Items = append(entry.Items, NewItem(text, mutateNow))
	}
	return s
}

func TestToggleCompletesAndStamps(t *testing.T) {
	s := sheetWithItems(t, "2024-01-02", "buy milk")
	id := s.Days[0].Items[0].ID

	if err := s.Toggle("2024-01-02", id, mutateNow); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	it := s.Days[0].Items[0]
	if !it.Completed {
		t.Error("expected completed")
	}
	if it.ClosedAt == nil || !it.ClosedAt.Equal(mutateNow) {
		t.Errorf("expected ClosedAt %v, got %v", mutateNow, it.ClosedAt)
	}
}

func TestToggleTwiceRestoresState(t *testing.T) {
	s := sheetWithItems(t, "2024-01-02", "buy milk")
	id := s.Days[0].Items[0].ID

	if err := s.Toggle("2024-01-02", id, mutateNow); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := s.Toggle("2024-01-02", id, mutateNow.Add(time.Minute)); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	it := s.Days[0].Items[0]
	if it.Completed {
		t.Error("expected incomplete after double toggle")
	}
	if it.ClosedAt != nil {
		t.Errorf("expected ClosedAt cleared, got %v", it.ClosedAt)
	}
}

func TestToggleUnknownCoordinate(t *testing.T) {
	s := sheetWithItems(t, "2024-01-02", "buy milk")

	err := s.Toggle("2024-01-02", "no-such-item", mutateNow)
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}

	err = s.Toggle("2024-01-03", s.Days[0].Items[0].ID, mutateNow)
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound for missing day, got %v", err)
	}
}

func TestEditTextTrims(t *testing.T) {
	s := sheetWithItems(t, "2024-01-02", "buy milk")
	id := s.Days[0].Items[0].ID

	if err := s.EditText("2024-01-02", id, "  buy oat milk  "); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := s.Days[0].Items[0].Text; got != "buy oat milk" {
		t.Errorf("expected trimmed text, got %q", got)
	}
}

func TestEditTextEmptyDeletesRow(t *testing.T) {
	s := sheetWithItems(t, "2024-01-02", "first", "second")
	first := s.Days[0].Items[0].ID

	if err := s.EditText("2024-01-02", first, "   "); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	entry := s.Days[0]
	if len(entry.Items) != 1 {
		t.Fatalf("expected 1 item left, got %d", len(entry.Items))
	}
	if entry.Items[0].Text != "second" {
		t.Errorf("expected 'second' to shift into position 0, got %q", entry.Items[0].Text)
	}
	if err := s.EditText("2024-01-02", first, "resurrect"); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound for deleted item, got %v", err)
	}
}

func TestEditTextUnknownCoordinate(t *testing.T) {
	s := sheetWithItems(t, "2024-01-02", "buy milk")
	if err := s.EditText("2024-01-02", "nope", "text"); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestAddItemAppends(t *testing.T) {
	s := sheetWithItems(t, "2024-01-02", "buy milk")

	it, err := s.AddItem("2024-01-02", "call mom", mutateNow)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if it.Completed || it.ClosedAt != nil {
		t.Error("new item should be incomplete with no ClosedAt")
	}
	if !it.AddedAt.Equal(mutateNow) {
		t.Errorf("expected AddedAt %v, got %v", mutateNow, it.AddedAt)
	}

	entry := s.Days[0]
	if len(entry.Items) != 2 || entry.Items[1].Text != "call mom" {
		t.Errorf("expected 'call mom' appended, got %+v", entry.Items)
	}
}

func TestAddItemMissingDay(t *testing.T) {
	s := sheetWithItems(t, "2024-01-02", "buy milk")

	_, err := s.AddItem("2024-01-03", "too soon", mutateNow)
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
	if len(s.Days) != 1 {
		t.Error("AddItem must not create day entries")
	}
}

func TestRemoveItemStaleCoordinateIsNoop(t *testing.T) {
	s := sheetWithItems(t, "2024-01-02", "buy milk")
	id := s.Days[0].Items[0].ID

	s.RemoveItem("2024-01-02", id)
	if len(s.Days[0].Items) != 0 {
		t.Fatal("expected item removed")
	}

	// Racing double-delete: same coordinate again, and a bogus day.
	s.RemoveItem("2024-01-02", id)
	s.RemoveItem("2024-01-09", id)
	if len(s.Days[0].Items) != 0 {
		t.Error("stale remove should leave the sheet unchanged")
	}
}
