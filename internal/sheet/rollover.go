package sheet

import (
	"sort"
	"time"
)

// RolloverOptions configures optional per-open behavior.
type RolloverOptions struct {
	// SeedText, when non-empty, is the text of a starter item added to a
	// freshly created today entry that ends rollover with no items.
	SeedText string
}

// Rollover reconciles a sheet against today: it ensures an entry for
// today exists, moves every incomplete item from other days into it, and
// prunes entries left empty. Today's entry survives even when empty so
// the session has somewhere to append; a later open on another day
// prunes it if the user never added anything.
//
// The operation is deterministic and idempotent for a fixed today: a
// second call finds no incomplete items outside today and changes
// nothing.
func Rollover(s *Sheet, today string, now time.Time, opts RolloverOptions) {
	_, existed := s.Day(today)
	if !existed {
		s.Days = append(s.Days, DayEntry{Day: today})
	}

	// Visit past (and any stray future) days oldest first so migrated
	// items keep their relative order, grouped by origin day.
	order := make([]int, 0, len(s.Days))
	for i := range s.Days {
		if s.Days[i].Day != today {
			order = append(order, i)
		}
	}
	sort.Slice(order, func(a, b int) bool { return s.Days[order[a]].Day < s.Days[order[b]].Day })

	var migrated []ChecklistItem
	for _, i := range order {
		d := &s.Days[i]
		kept := d.Items[:0]
		for _, it := range d.Items {
			if it.Completed {
				kept = append(kept, it)
				continue
			}
			it.AddedAt = now
			migrated = append(migrated, it)
		}
		d.Items = kept
	}

	entry, _ := s.Day(today)
	entry.Items = append(entry.Items, migrated...)

	if !existed && len(entry.Items) == 0 && opts.SeedText != "" {
		entry.Items = append(entry.Items, NewItem(opts.SeedText, now))
	}

	kept := s.Days[:0]
	for _, d := range s.Days {
		if d.Day == today || len(d.Items) > 0 {
			kept = append(kept, d)
		}
	}
	s.Days = kept
}
