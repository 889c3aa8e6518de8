package core

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExportWeek(t *testing.T) {
	t.Parallel()

	anchor := time.Date(2024, 6, 3, 0, 0, 0, 0, time.UTC)

	events := []Event{
		{
			Title:    "Hot stones",
			Day:      NewDate(time.Date(2024, 6, 5, 0, 0, 0, 0, time.UTC)),
			Start:    "10:00",
			End:      "10:30",
			Type:     "Massage",
			Capacity: "4",
		},
		{
			Title: "Out of window",
			Day:   NewDate(time.Date(2024, 7, 1, 0, 0, 0, 0, time.UTC)),
			Start: "10:00",
			End:   "11:00",
		},
		{
			Title: "Broken clock",
			Day:   NewDate(time.Date(2024, 6, 4, 0, 0, 0, 0, time.UTC)),
			Start: "whenever",
			End:   "11:00",
		},
	}

	feed, err := ExportWeek(anchor, events)
	require.NoError(t, err)

	assert.Contains(t, feed, "BEGIN:VCALENDAR")
	assert.Contains(t, feed, "SUMMARY:Hot stones")
	assert.Contains(t, feed, "UID:event-2024-06-05-10:00@studio-calendar")
	assert.Contains(t, feed, "capacity 4")
	assert.NotContains(t, feed, "Out of window")
	assert.NotContains(t, feed, "Broken clock")
}

func TestExportWeek_Empty(t *testing.T) {
	t.Parallel()

	feed, err := ExportWeek(time.Date(2024, 6, 3, 0, 0, 0, 0, time.UTC), nil)
	require.NoError(t, err)

	assert.Contains(t, feed, "BEGIN:VCALENDAR")
	assert.NotContains(t, feed, "BEGIN:VEVENT")
}
