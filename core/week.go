package core

import "time"

const (
	// OpeningHour is the first hour shown on the grid.
	OpeningHour = 6

	// HourSlots is how many one-hour rows each day column has, so the
	// grid runs 06:00-22:00.
	HourSlots = 16

	// The grid maps one minute to one pixel; blocks are pulled in by a
	// small inset on both ends so adjacent bookings do not touch.
	blockInset = 2
)

// AnchorFor returns the Monday at midnight of the week containing t.
// Weeks start on Monday regardless of locale: a Sunday belongs to the week
// that started six days earlier.
func AnchorFor(t time.Time) time.Time {
	t = time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())

	if t.Weekday() == time.Sunday {
		return t.AddDate(0, 0, -6)
	}

	return t.AddDate(0, 0, -(int(t.Weekday()) - 1))
}

// NextWeek moves the anchor one week forward.
func NextWeek(anchor time.Time) time.Time {
	return anchor.AddDate(0, 0, 7)
}

// PrevWeek moves the anchor one week back.
func PrevWeek(anchor time.Time) time.Time {
	return anchor.AddDate(0, 0, -7)
}

// InWeek reports whether day falls within [anchor, anchor+7d). The day is
// rebased into the anchor's location first, so a record loaded with a UTC
// day still lands in the right local week.
func InWeek(anchor time.Time, day time.Time) bool {
	d := time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, anchor.Location())

	return !d.Before(anchor) && d.Before(anchor.AddDate(0, 0, 7))
}

// ColumnIndex maps a day to its grid column, Monday=0 through Sunday=6.
func ColumnIndex(day time.Time) int {
	return (int(day.Weekday()) + 6) % 7
}

// MinutesSinceOpen converts a "HH:MM" time of day to minutes past the
// 06:00 grid origin. Times before 06:00 come out negative and times after
// 22:00 overflow the grid; neither is an error here, the caller renders
// whatever geometry results.
func MinutesSinceOpen(clock string) (int, error) {
	t, err := time.Parse(clockFormat, clock)
	if err != nil {
		return 0, err
	}

	return (t.Hour()-OpeningHour)*60 + t.Minute(), nil
}

// Block is the vertical placement of an event inside a day column, in
// pixels below the column header.
type Block struct {
	Top    int `json:"top"`
	Height int `json:"height"`
}

// BlockFor computes where an event sits on the grid. The top edge is inset
// into the start slot, the bottom edge pulled up out of the end slot, and
// the height trimmed by one more inset, matching the grid's styling.
func BlockFor(start, end string, headerHeight int) (Block, error) {
	s, err := MinutesSinceOpen(start)
	if err != nil {
		return Block{}, err
	}

	e, err := MinutesSinceOpen(end)
	if err != nil {
		return Block{}, err
	}

	top := headerHeight + s + blockInset
	bottom := headerHeight + e - blockInset

	return Block{Top: top, Height: bottom - top - blockInset}, nil
}
