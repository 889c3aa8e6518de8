package core

import (
	"errors"
	"fmt"
	"time"
)

// MinEventDuration is the shortest booking the form accepts. The boundary
// is inclusive: an event lasting exactly 15 minutes passes.
const MinEventDuration = 15 * time.Minute

// ValidateEvent checks a submitted event before it is persisted. The
// duration check is same-day wall-clock subtraction, so an end time past
// midnight comes out negative and is rejected rather than wrapped.
func ValidateEvent(event Event) error {
	if event.Day.IsZero() {
		return errors.New("day is required")
	}

	if event.Start == "" {
		return errors.New("start time is required")
	}

	if event.End == "" {
		return errors.New("end time is required")
	}

	start, err := time.Parse(clockFormat, event.Start)
	if err != nil {
		return fmt.Errorf("start time must be HH:MM: %w", err)
	}

	end, err := time.Parse(clockFormat, event.End)
	if err != nil {
		return fmt.Errorf("end time must be HH:MM: %w", err)
	}

	if end.Sub(start) < MinEventDuration {
		return errors.New("end time must be at least 15 minutes after the start time")
	}

	return nil
}
