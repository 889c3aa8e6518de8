package core

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

const (
	// DefaultEventType is what the booking form falls back to when no
	// service category was picked.
	DefaultEventType = "Massage"

	dayFormat   = "2006-01-02"
	clockFormat = "15:04"
	keyPrefix   = "event-"
)

// Date is a calendar day without a time-of-day component. It marshals as
// "2006-01-02" so storage keys and JSON payloads stay byte-stable.
type Date struct {
	time.Time
}

// NewDate truncates t to midnight in its own location.
func NewDate(t time.Time) Date {
	return Date{time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())}
}

func (d Date) String() string {
	return d.Format(dayFormat)
}

func (d Date) MarshalJSON() ([]byte, error) {
	return json.Marshal(d.Format(dayFormat))
}

func (d *Date) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("failed to decode day: %w", err)
	}

	t, err := time.Parse(dayFormat, s)
	if err != nil {
		return fmt.Errorf("day must be formatted as %s: %w", dayFormat, err)
	}

	d.Time = t

	return nil
}

// Event is one booking on the studio calendar. Start and End are wall-clock
// times of day ("HH:MM"); Capacity is kept as entered, digits or not.
type Event struct {
	Title     string    `json:"title"`
	Day       Date      `json:"day"`
	Start     string    `json:"start"`
	End       string    `json:"end"`
	Type      string    `json:"type"`
	Capacity  string    `json:"capacity"`
	CreatedAt time.Time `json:"created_at,omitzero"`
}

// Key derives the storage identity of the event from its day and start time.
// Two events sharing a day and start time share a key, so the later save
// overwrites the earlier one.
func (e *Event) Key() string {
	return keyPrefix + e.Day.String() + "-" + e.Start
}

// ParseKey splits a storage key of the form "event-<day>-<start>" back into
// its day and start time.
func ParseKey(key string) (Date, string, error) {
	rest, ok := strings.CutPrefix(key, keyPrefix)
	if !ok {
		return Date{}, "", fmt.Errorf("key %q does not start with %q", key, keyPrefix)
	}

	if len(rest) < len(dayFormat)+1 || rest[len(dayFormat)] != '-' {
		return Date{}, "", fmt.Errorf("key %q is missing a day segment", key)
	}

	day, err := time.Parse(dayFormat, rest[:len(dayFormat)])
	if err != nil {
		return Date{}, "", fmt.Errorf("key %q holds an invalid day: %w", key, err)
	}

	start := rest[len(dayFormat)+1:]
	if _, err := time.Parse(clockFormat, start); err != nil {
		return Date{}, "", fmt.Errorf("key %q holds an invalid start time: %w", key, err)
	}

	return Date{day}, start, nil
}

// ClockTime combines a calendar day with a "HH:MM" time of day.
func ClockTime(day Date, clock string) (time.Time, error) {
	t, err := time.Parse(clockFormat, clock)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid time of day %q: %w", clock, err)
	}

	return time.Date(day.Year(), day.Month(), day.Day(), t.Hour(), t.Minute(), 0, 0, day.Location()), nil
}
