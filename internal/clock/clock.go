package clock

import "time"

// Clock provides the current instant and calendar day. Engines take a
// Clock instead of calling time.Now so rollover behavior is testable
// with a fixed date.
type Clock interface {
	Now() time.Time
	Today() string
}

// DayFormat is the canonical day-key layout.
const DayFormat = "2006-01-02"

// System is the wall-clock implementation.
type System struct{}

func (System) Now() time.Time { return time.Now() }

func (System) Today() string { return time.Now().Format(DayFormat) }

// Frozen returns a fixed instant, for tests.
type Frozen struct {
	Instant time.Time
}

func (f Frozen) Now() time.Time { return f.Instant }

func (f Frozen) Today() string { return f.Instant.Format(DayFormat) }
