package core

import (
	"embed"
	"fmt"
	"html/template"
	"sort"
	"time"
)

// DayHeaderHeight is the fixed pixel height of the day-column header the
// stylesheet uses; block geometry is computed below it.
const DayHeaderHeight = 48

//go:embed templates/calendar.gohtml
var templateFS embed.FS

// Templates parses the embedded calendar page.
func Templates() *template.Template {
	return template.Must(template.ParseFS(templateFS, "templates/*.gohtml"))
}

// EventBlock is one positioned booking inside a day column.
type EventBlock struct {
	Key      string `json:"key"`
	Title    string `json:"title"`
	Label    string `json:"label"`
	Type     string `json:"type"`
	Capacity string `json:"capacity"`
	Start    string `json:"start"`
	End      string `json:"end"`
	Top      int    `json:"top"`
	Height   int    `json:"height"`
}

// DayView is one rendered column, Monday through Sunday.
type DayView struct {
	Name    string       `json:"name"`
	Date    Date         `json:"date"`
	IsToday bool         `json:"is_today"`
	Blocks  []EventBlock `json:"blocks"`
}

// WeekView is the full rendered week: a pure function of the anchor, the
// clock and the stored events. Every request rebuilds it from scratch.
type WeekView struct {
	Anchor Date       `json:"anchor"`
	Days   [7]DayView `json:"days"`
}

var dayNames = [7]string{"Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday", "Sunday"}

// BuildWeekView lays the given events out on the week starting at anchor.
// An event is placed iff its day falls within [anchor, anchor+7d); events
// outside the window, or with times that cannot be parsed, are dropped
// silently per the render-miss policy.
func BuildWeekView(anchor time.Time, now time.Time, events []Event) WeekView {
	view := WeekView{Anchor: NewDate(anchor)}

	today := NewDate(now)

	for i := range view.Days {
		date := NewDate(anchor.AddDate(0, 0, i))
		view.Days[i] = DayView{
			Name:    dayNames[i],
			Date:    date,
			IsToday: date.Time.Equal(today.Time),
			Blocks:  []EventBlock{},
		}
	}

	for _, event := range events {
		if !InWeek(anchor, event.Day.Time) {
			continue
		}

		block, err := BlockFor(event.Start, event.End, DayHeaderHeight)
		if err != nil {
			continue
		}

		col := ColumnIndex(event.Day.Time)
		view.Days[col].Blocks = append(view.Days[col].Blocks, EventBlock{
			Key:      event.Key(),
			Title:    event.Title,
			Label:    fmt.Sprintf("%s (%s - %s)", event.Title, event.Start, event.End),
			Type:     event.Type,
			Capacity: event.Capacity,
			Start:    event.Start,
			End:      event.End,
			Top:      block.Top,
			Height:   block.Height,
		})
	}

	// Storage order is unspecified; display order comes from start times.
	for i := range view.Days {
		sort.Slice(view.Days[i].Blocks, func(a, b int) bool {
			return view.Days[i].Blocks[a].Start < view.Days[i].Blocks[b].Start
		})
	}

	return view
}

// HourLabels returns the row labels for the 16 grid slots, 06:00 onwards.
func HourLabels() []string {
	labels := make([]string, 0, HourSlots)
	for i := range HourSlots {
		labels = append(labels, fmt.Sprintf("%02d:00", OpeningHour+i))
	}

	return labels
}
