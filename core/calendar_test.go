package core

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildWeekView(t *testing.T) {
	t.Parallel()

	anchor := time.Date(2024, 6, 3, 0, 0, 0, 0, time.UTC) // a Monday
	now := time.Date(2024, 6, 5, 11, 0, 0, 0, time.UTC)

	newEvent := func(day time.Time, start, end, title string) Event {
		return Event{Title: title, Day: NewDate(day), Start: start, End: end, Type: "Massage", Capacity: "4"}
	}

	t.Run("places an event on its weekday column", func(t *testing.T) {
		t.Parallel()

		wednesday := time.Date(2024, 6, 5, 0, 0, 0, 0, time.UTC)
		view := BuildWeekView(anchor, now, []Event{newEvent(wednesday, "10:00", "10:30", "Hot stones")})

		require.Len(t, view.Days[2].Blocks, 1)

		block := view.Days[2].Blocks[0]
		assert.Equal(t, "event-2024-06-05-10:00", block.Key)
		assert.Equal(t, "Hot stones (10:00 - 10:30)", block.Label)
		assert.Equal(t, DayHeaderHeight+240+2, block.Top)
		assert.Equal(t, 24, block.Height)

		for i, day := range view.Days {
			if i != 2 {
				assert.Empty(t, day.Blocks)
			}
		}
	})

	t.Run("renders an event iff its day is inside the window", func(t *testing.T) {
		t.Parallel()

		events := []Event{
			newEvent(anchor, "08:00", "09:00", "first monday"),
			newEvent(anchor.AddDate(0, 0, 6), "08:00", "09:00", "sunday"),
			newEvent(anchor.AddDate(0, 0, 7), "08:00", "09:00", "next monday"),
			newEvent(anchor.AddDate(0, 0, -1), "08:00", "09:00", "previous sunday"),
		}

		view := BuildWeekView(anchor, now, events)

		require.Len(t, view.Days[0].Blocks, 1)
		assert.Equal(t, "first monday", view.Days[0].Blocks[0].Title)
		require.Len(t, view.Days[6].Blocks, 1)
		assert.Equal(t, "sunday", view.Days[6].Blocks[0].Title)

		total := 0
		for _, day := range view.Days {
			total += len(day.Blocks)
		}
		assert.Equal(t, 2, total)
	})

	t.Run("drops events with unparseable times silently", func(t *testing.T) {
		t.Parallel()

		view := BuildWeekView(anchor, now, []Event{newEvent(anchor, "whenever", "09:00", "broken")})

		for _, day := range view.Days {
			assert.Empty(t, day.Blocks)
		}
	})

	t.Run("orders a day's blocks by start time", func(t *testing.T) {
		t.Parallel()

		view := BuildWeekView(anchor, now, []Event{
			newEvent(anchor, "14:00", "15:00", "late"),
			newEvent(anchor, "08:00", "09:00", "early"),
			newEvent(anchor, "10:00", "11:00", "middle"),
		})

		require.Len(t, view.Days[0].Blocks, 3)
		assert.Equal(t, "early", view.Days[0].Blocks[0].Title)
		assert.Equal(t, "middle", view.Days[0].Blocks[1].Title)
		assert.Equal(t, "late", view.Days[0].Blocks[2].Title)
	})

	t.Run("marks today and labels the columns monday first", func(t *testing.T) {
		t.Parallel()

		view := BuildWeekView(anchor, now, nil)

		assert.Equal(t, "2024-06-03", view.Anchor.String())

		for i, day := range view.Days {
			assert.Equal(t, dayNames[i], day.Name)
			assert.Equal(t, anchor.AddDate(0, 0, i), day.Date.Time)
			assert.Equal(t, i == 2, day.IsToday)
		}
	})
}

func TestHourLabels(t *testing.T) {
	t.Parallel()

	labels := HourLabels()

	require.Len(t, labels, HourSlots)
	assert.Equal(t, "06:00", labels[0])
	assert.Equal(t, "21:00", labels[len(labels)-1])
}

func TestTemplatesParse(t *testing.T) {
	t.Parallel()

	assert.NotNil(t, Templates().Lookup("calendar.gohtml"))
}
