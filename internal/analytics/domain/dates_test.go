package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestDateRange(t *testing.T) {
	r := DateRange{
		Start: time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC),
		End:   time.Date(2025, 6, 8, 0, 0, 0, 0, time.UTC),
	}

	assert.True(t, r.Contains(r.Start), "start is inclusive")
	assert.True(t, r.Contains(r.End), "end is inclusive")
	assert.True(t, r.Contains(r.Start.Add(time.Hour)))
	assert.False(t, r.Contains(r.Start.Add(-time.Nanosecond)))
	assert.False(t, r.Contains(r.End.Add(time.Nanosecond)))

	assert.Equal(t, 7, r.Days())
	assert.Equal(t, 1, DateRange{Start: r.Start, End: r.Start}.Days(), "degenerate ranges count one day")
}

func TestStartOfWeek_SundayBased(t *testing.T) {
	wednesday := time.Date(2025, 6, 18, 15, 30, 0, 0, time.UTC)
	sunday := time.Date(2025, 6, 15, 0, 0, 0, 0, time.UTC)

	assert.Equal(t, sunday, StartOfWeek(wednesday))
	assert.Equal(t, sunday, StartOfWeek(sunday.Add(time.Minute)), "Sunday maps to itself")
}

func TestWeekNumber(t *testing.T) {
	cases := []struct {
		date time.Time
		want int
	}{
		// Jan 1 2025 is a Wednesday, so the first partial week runs Jan 1-4.
		{time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC), 1},
		{time.Date(2025, 1, 4, 0, 0, 0, 0, time.UTC), 1},
		{time.Date(2025, 1, 5, 0, 0, 0, 0, time.UTC), 2},
		{time.Date(2025, 12, 31, 0, 0, 0, 0, time.UTC), 53},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, WeekNumber(tc.date), tc.date.Format("2006-01-02"))
	}
}

func TestSeason(t *testing.T) {
	cases := map[time.Month]string{
		time.February: "Winter",
		time.March:    "Spring",
		time.May:      "Spring",
		time.June:     "Summer",
		time.August:   "Summer",
		time.November: "Fall",
		time.December: "Winter",
	}
	for month, want := range cases {
		assert.Equal(t, want, Season(time.Date(2025, month, 15, 0, 0, 0, 0, time.UTC)))
	}
}

func TestRounding(t *testing.T) {
	assert.Equal(t, 33.33, Round2(100.0/3))
	assert.Equal(t, 66.67, Round2(200.0/3))
	assert.Equal(t, 33, RoundPercent(100.0/3))
	assert.Equal(t, 67, RoundPercent(200.0/3))
}

func TestClamp(t *testing.T) {
	assert.Equal(t, 0.3, Clamp(-1.5, 0.3, 0.95))
	assert.Equal(t, 0.95, Clamp(2, 0.3, 0.95))
	assert.Equal(t, 0.5, Clamp(0.5, 0.3, 0.95))
}
