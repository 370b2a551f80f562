package view

import (
	"regexp"
	"sort"
	"time"

	"github.com/lucasb-eyer/go-colorful"

	"tasky/internal/clock"
	"tasky/internal/sheet"
)

// Snapshot is a read-only projection of a sheet for rendering. Building
// one never mutates the sheet.
type Snapshot struct {
	SheetID     string
	Title       string
	Description string
	Days        []Day
}

// Day is one rendered day entry, most recent first in Snapshot.Days.
type Day struct {
	Key     string
	Display string
	Today   bool
	Items   []Item
}

// Item carries the stable id used for mutations and the position used
// only for display numbering.
type Item struct {
	ID        string
	Position  int
	Text      string
	Completed bool
	AddedAt   time.Time
	ClosedAt  *time.Time
	Spans     []Span
}

// Span marks a bracketed substring of an item's text together with its
// derived display color.
type Span struct {
	Start int
	End   int
	Text  string
	Color string
}

const displayDayFormat = "January 2, 2006"

var bracketPattern = regexp.MustCompile(`\[(.*?)\]`)

// Project builds a snapshot sorted by day descending.
func Project(s *sheet.Sheet, today string) Snapshot {
	snap := Snapshot{
		SheetID:     s.ID,
		Title:       s.Title,
		Description: s.Description,
	}

	for _, d := range s.Days {
		day := Day{
			Key:     d.Day,
			Display: displayDay(d.Day),
			Today:   d.Day == today,
		}
		for i, it := range d.Items {
			day.Items = append(day.Items, Item{
				ID:        it.ID,
				Position:  i,
				Text:      it.Text,
				Completed: it.Completed,
				AddedAt:   it.AddedAt,
				ClosedAt:  it.ClosedAt,
				Spans:     HighlightSpans(it.Text),
			})
		}
		snap.Days = append(snap.Days, day)
	}

	sort.SliceStable(snap.Days, func(i, j int) bool { return snap.Days[i].Key > snap.Days[j].Key })
	return snap
}

// HighlightSpans finds non-nested [bracketed] substrings and assigns
// each a deterministic color: the hue rotates with the length of the
// bracketed text, at fixed saturation and lightness.
func HighlightSpans(text string) []Span {
	var spans []Span
	for _, m := range bracketPattern.FindAllStringSubmatchIndex(text, -1) {
		inner := text[m[2]:m[3]]
		hue := float64(len(inner)*30%360)
		spans = append(spans, Span{
			Start: m[0],
			End:   m[1],
			Text:  text[m[0]:m[1]],
			Color: colorful.Hsl(hue, 0.7, 0.5).Hex(),
		})
	}
	return spans
}

// ItemAt resolves a display position within a day back to the item, for
// hosts that address rows positionally. The position is only as fresh as
// the snapshot it came from.
func (s Snapshot) ItemAt(day string, position int) (Item, bool) {
	for _, d := range s.Days {
		if d.Key != day {
			continue
		}
		if position < 0 || position >= len(d.Items) {
			return Item{}, false
		}
		return d.Items[position], true
	}
	return Item{}, false
}

func displayDay(key string) string {
	t, err := time.Parse(clock.DayFormat, key)
	if err != nil {
		return key
	}
	return t.Format(displayDayFormat)
}
