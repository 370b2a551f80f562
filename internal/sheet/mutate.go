package sheet

import (
	"fmt"
	"strings"
	"time"
)

// The mutation operations below address items by (day, itemID) and never
// perform rollover; that only happens on the open lifecycle event. The
// caller persists the sheet afterward.

// Toggle flips an item's completed state. Completing stamps ClosedAt
// with now; un-completing clears it.
func (s *Sheet) Toggle(day, itemID string, now time.Time) error {
	d, i, err := s.Item(day, itemID)
	if err != nil {
		return err
	}
	it := &d.Items[i]
	it.Completed = !it.Completed
	if it.Completed {
		t := now
		it.ClosedAt = &t
	} else {
		it.ClosedAt = nil
	}
	return nil
}

// EditText replaces an item's text with the trimmed input. Submitting
// text that trims to empty deletes the row, matching the panel's
// clear-to-delete behavior.
func (s *Sheet) EditText(day, itemID, newText string) error {
	d, i, err := s.Item(day, itemID)
	if err != nil {
		return err
	}
	trimmed := strings.TrimSpace(newText)
	if trimmed == "" {
		d.Items = append(d.Items[:i], d.Items[i+1:]...)
		return nil
	}
	d.Items[i].Text = trimmed
	return nil
}

// AddItem appends a new incomplete item to an existing day entry. It
// never creates the entry; the day must already exist.
func (s *Sheet) AddItem(day, text string, now time.Time) (*ChecklistItem, error) {
	d, ok := s.Day(day)
	if !ok {
		return nil, fmt.Errorf("%w: day %s in sheet %s", ErrNotFound, day, s.ID)
	}
	d.Items = append(d.Items, NewItem(text, now))
	return &d.Items[len(d.Items)-1], nil
}

// RemoveItem deletes an item if the coordinate still resolves. A stale
// coordinate is tolerated as a no-op: rapid edits in the panel can race
// a delete against an already-deleted row.
func (s *Sheet) RemoveItem(day, itemID string) {
	d, i, err := s.Item(day, itemID)
	if err != nil {
		return
	}
	d.Items = append(d.Items[:i], d.Items[i+1:]...)
}
