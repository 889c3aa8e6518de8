package core

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAnchorFor(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		in   time.Time
		want time.Time
	}{
		{
			name: "monday maps to itself",
			in:   time.Date(2024, 6, 3, 15, 4, 5, 0, time.UTC),
			want: time.Date(2024, 6, 3, 0, 0, 0, 0, time.UTC),
		},
		{
			name: "wednesday maps back to monday",
			in:   time.Date(2024, 6, 5, 9, 30, 0, 0, time.UTC),
			want: time.Date(2024, 6, 3, 0, 0, 0, 0, time.UTC),
		},
		{
			name: "saturday maps back to monday",
			in:   time.Date(2024, 6, 8, 23, 59, 59, 0, time.UTC),
			want: time.Date(2024, 6, 3, 0, 0, 0, 0, time.UTC),
		},
		{
			name: "sunday belongs to the week started six days earlier",
			in:   time.Date(2024, 6, 9, 1, 0, 0, 0, time.UTC),
			want: time.Date(2024, 6, 3, 0, 0, 0, 0, time.UTC),
		},
		{
			name: "year boundary",
			in:   time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC),
			want: time.Date(2024, 12, 30, 0, 0, 0, 0, time.UTC),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got := AnchorFor(tt.in)

			assert.Equal(t, tt.want, got)
			assert.Equal(t, time.Monday, got.Weekday())
			assert.Equal(t, 0, got.Hour()+got.Minute()+got.Second()+got.Nanosecond())
		})
	}
}

func TestWeekNavigationRoundTrip(t *testing.T) {
	t.Parallel()

	anchor := AnchorFor(time.Date(2024, 6, 5, 10, 0, 0, 0, time.UTC))

	assert.Equal(t, anchor, PrevWeek(NextWeek(anchor)))
	assert.Equal(t, anchor, NextWeek(PrevWeek(anchor)))
	assert.Equal(t, anchor.AddDate(0, 0, 7), NextWeek(anchor))
}

func TestInWeek(t *testing.T) {
	t.Parallel()

	anchor := time.Date(2024, 6, 3, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name string
		day  time.Time
		want bool
	}{
		{name: "anchor monday is inside", day: anchor, want: true},
		{name: "sunday is inside", day: anchor.AddDate(0, 0, 6), want: true},
		{name: "next monday is outside", day: anchor.AddDate(0, 0, 7), want: false},
		{name: "previous sunday is outside", day: anchor.AddDate(0, 0, -1), want: false},
		{name: "time of day is ignored", day: time.Date(2024, 6, 9, 23, 30, 0, 0, time.UTC), want: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			assert.Equal(t, tt.want, InWeek(anchor, tt.day))
		})
	}
}

func TestColumnIndex(t *testing.T) {
	t.Parallel()

	monday := time.Date(2024, 6, 3, 0, 0, 0, 0, time.UTC)

	for i := range 7 {
		assert.Equal(t, i, ColumnIndex(monday.AddDate(0, 0, i)))
	}
}

func TestMinutesSinceOpen(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		clock   string
		want    int
		wantErr bool
	}{
		{name: "grid origin", clock: "06:00", want: 0},
		{name: "ten o'clock", clock: "10:00", want: 240},
		{name: "with minutes", clock: "10:30", want: 270},
		{name: "before opening goes negative", clock: "05:30", want: -30},
		{name: "past closing overflows", clock: "23:00", want: 1020},
		{name: "malformed", clock: "25:99", wantErr: true},
		{name: "empty", clock: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := MinutesSinceOpen(tt.clock)

			if tt.wantErr {
				require.Error(t, err)
			} else {
				require.NoError(t, err)
				assert.Equal(t, tt.want, got)
			}
		})
	}
}

func TestBlockFor(t *testing.T) {
	t.Parallel()

	t.Run("thirty minute booking", func(t *testing.T) {
		t.Parallel()

		block, err := BlockFor("10:00", "10:30", 0)
		require.NoError(t, err)

		// Start offset 240, inset 2px on each edge plus a 2px height trim.
		assert.Equal(t, Block{Top: 242, Height: 24}, block)
	})

	t.Run("header height shifts the top only", func(t *testing.T) {
		t.Parallel()

		plain, err := BlockFor("10:00", "11:00", 0)
		require.NoError(t, err)

		shifted, err := BlockFor("10:00", "11:00", DayHeaderHeight)
		require.NoError(t, err)

		assert.Equal(t, plain.Top+DayHeaderHeight, shifted.Top)
		assert.Equal(t, plain.Height, shifted.Height)
	})

	t.Run("malformed times error out", func(t *testing.T) {
		t.Parallel()

		_, err := BlockFor("nope", "10:30", 0)
		assert.Error(t, err)

		_, err = BlockFor("10:00", "nope", 0)
		assert.Error(t, err)
	})
}
