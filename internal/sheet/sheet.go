package sheet

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"tasky/internal/clock"
)

// ChecklistItem is one row of a day's checklist. ClosedAt is set exactly
// when Completed is true.
type ChecklistItem struct {
	ID        string
	Text      string
	Completed bool
	AddedAt   time.Time
	ClosedAt  *time.Time
}

// DayEntry holds the items recorded for one calendar day. Item order is
// insertion order and is meaningful for display.
type DayEntry struct {
	Day   string
	Items []ChecklistItem
}

// Sheet is a named collection of dated checklists. Days holds at most
// one entry per day key.
type Sheet struct {
	ID          string
	Title       string
	Description string
	Days        []DayEntry
}

// New creates an empty sheet. The id doubles as the storage key and must
// be non-blank and filename-safe; the title must be non-blank.
func New(id, title, description string) (*Sheet, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return nil, fmt.Errorf("%w: sheet id cannot be empty", ErrInvalidInput)
	}
	if strings.ContainsAny(id, "/\\") {
		return nil, fmt.Errorf("%w: sheet id %q contains path separators", ErrInvalidInput, id)
	}
	if strings.TrimSpace(title) == "" {
		return nil, fmt.Errorf("%w: sheet title cannot be empty", ErrInvalidInput)
	}
	return &Sheet{
		ID:          id,
		Title:       strings.TrimSpace(title),
		Description: strings.TrimSpace(description),
	}, nil
}

// NewItem creates an incomplete item with a fresh identity.
func NewItem(text string, now time.Time) ChecklistItem {
	return ChecklistItem{
		ID:      uuid.NewString(),
		Text:    text,
		AddedAt: now,
	}
}

// ValidDay reports whether key is a well-formed YYYY-MM-DD day key.
func ValidDay(key string) bool {
	_, err := time.Parse(clock.DayFormat, key)
	return err == nil
}

// Day returns the entry for the given day key, if present.
func (s *Sheet) Day(day string) (*DayEntry, bool) {
	for i := range s.Days {
		if s.Days[i].Day == day {
			return &s.Days[i], true
		}
	}
	return nil, false
}

// EnsureDay returns the entry for the given day key, appending an empty
// one if absent.
func (s *Sheet) EnsureDay(day string) *DayEntry {
	if d, ok := s.Day(day); ok {
		return d
	}
	s.Days = append(s.Days, DayEntry{Day: day})
	return &s.Days[len(s.Days)-1]
}

// Item resolves a (day, itemID) coordinate to the entry and the item's
// position within it.
func (s *Sheet) Item(day, itemID string) (*DayEntry, int, error) {
	d, ok := s.Day(day)
	if !ok {
		return nil, 0, fmt.Errorf("%w: day %s in sheet %s", ErrNotFound, day, s.ID)
	}
	for i := range d.Items {
		if d.Items[i].ID == itemID {
			return d, i, nil
		}
	}
	return nil, 0, fmt.Errorf("%w: item %s on %s in sheet %s", ErrNotFound, itemID, day, s.ID)
}

// ItemCount returns the total number of items across all days.
func (s *Sheet) ItemCount() int {
	n := 0
	for i := range s.Days {
		n += len(s.Days[i].Items)
	}
	return n
}
