package core

import (
	"fmt"
	"time"

	ics "github.com/arran4/golang-ical"
)

// ExportWeek renders the events of the week starting at anchor as an
// iCalendar feed. Events outside the window are skipped, as are events
// whose times cannot be combined with their day; the feed is derived data
// and follows the same silent-miss policy as the grid.
func ExportWeek(anchor time.Time, events []Event) (string, error) {
	cal := ics.NewCalendar()
	cal.SetMethod(ics.MethodPublish)
	cal.SetProductId("-//studio-calendar//EN")

	for _, event := range events {
		if !InWeek(anchor, event.Day.Time) {
			continue
		}

		start, err := ClockTime(event.Day, event.Start)
		if err != nil {
			continue
		}

		end, err := ClockTime(event.Day, event.End)
		if err != nil {
			continue
		}

		e := cal.AddEvent(event.Key() + "@studio-calendar")
		e.SetDtStampTime(time.Now())
		e.SetStartAt(start)
		e.SetEndAt(end)
		e.SetSummary(event.Title)
		e.SetDescription(fmt.Sprintf("%s, capacity %s", event.Type, event.Capacity))

		if !event.CreatedAt.IsZero() {
			e.SetCreatedTime(event.CreatedAt)
		}
	}

	return cal.Serialize(), nil
}
