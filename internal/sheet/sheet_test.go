package sheet

import (
	"errors"
	"testing"
)

func TestNewValidation(t *testing.T) {
	if _, err := New("  ", "Title", ""); !errors.Is(err, ErrInvalidInput) {
		t.Errorf("expected ErrInvalidInput for blank id, got %v", err)
	}
	if _, err := New("id", "   ", ""); !errors.Is(err, ErrInvalidInput) {
		t.Errorf("expected ErrInvalidInput for blank title, got %v", err)
	}
	if _, err := New("../escape", "Title", ""); !errors.Is(err, ErrInvalidInput) {
		t.Errorf("expected ErrInvalidInput for path separator, got %v", err)
	}

	s, err := New("daily", " Daily ", " things to do ")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if s.Title != "Daily" || s.Description != "things to do" {
		t.Errorf("expected trimmed fields, got %q / %q", s.Title, s.Description)
	}
}

func TestEnsureDayUnique(t *testing.T) {
	s := testSheet(t)
	a := s.EnsureDay("2024-01-02")
	a.Items = append(a.Items, NewItem("x", rolloverNow))
	b := s.EnsureDay("2024-01-02")

	if len(s.Days) != 1 {
		t.Fatalf("expected one entry per day key, got %d", len(s.Days))
	}
	if len(b.Items) != 1 {
		t.Error("EnsureDay should return the existing entry")
	}
}

func TestValidDay(t *testing.T) {
	if !ValidDay("2024-01-02") {
		t.Error("expected 2024-01-02 valid")
	}
	for _, bad := range []string{"2024-1-2", "02-01-2024", "tomorrow", ""} {
		if ValidDay(bad) {
			t.Errorf("expected %q invalid", bad)
		}
	}
}
