package types

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func mustLoad(t *testing.T, name string) *time.Location {
	t.Helper()
	loc, err := time.LoadLocation(name)
	if err != nil {
		t.Fatalf("loading %s: %v", name, err)
	}
	return loc
}

func TestAddClampedDate(t *testing.T) {
	tests := []struct {
		name   string
		in     time.Time
		years  int
		months int
		days   int
		want   time.Time
	}{
		{
			name:   "jan 31 plus one month clamps to feb 28",
			in:     time.Date(2011, time.January, 31, 0, 0, 0, 0, time.UTC),
			months: 1,
			want:   time.Date(2011, time.February, 28, 0, 0, 0, 0, time.UTC),
		},
		{
			name:   "jan 31 plus one month clamps to feb 29 in leap years",
			in:     time.Date(2012, time.January, 31, 0, 0, 0, 0, time.UTC),
			months: 1,
			want:   time.Date(2012, time.February, 29, 0, 0, 0, 0, time.UTC),
		},
		{
			name:   "minus one month keeps the day when it exists",
			in:     time.Date(2011, time.February, 28, 0, 0, 0, 0, time.UTC),
			months: -1,
			want:   time.Date(2011, time.January, 28, 0, 0, 0, 0, time.UTC),
		},
		{
			name:   "november plus two months crosses the year",
			in:     time.Date(2011, time.November, 15, 0, 0, 0, 0, time.UTC),
			months: 2,
			want:   time.Date(2012, time.January, 15, 0, 0, 0, 0, time.UTC),
		},
		{
			name:   "january minus three months crosses back",
			in:     time.Date(2011, time.January, 15, 0, 0, 0, 0, time.UTC),
			months: -3,
			want:   time.Date(2010, time.October, 15, 0, 0, 0, 0, time.UTC),
		},
		{
			name:  "plus one year from feb 29 clamps to feb 28",
			in:    time.Date(2012, time.February, 29, 0, 0, 0, 0, time.UTC),
			years: 1,
			want:  time.Date(2013, time.February, 28, 0, 0, 0, 0, time.UTC),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := AddClampedDate(tt.in, tt.years, tt.months, tt.days)
			assert.True(t, got.Equal(tt.want), "want %s, got %s", tt.want, got)
		})
	}
}

func TestAddClampedDatePreservesClockAndLocation(t *testing.T) {
	ny := mustLoad(t, "America/New_York")
	in := time.Date(2011, time.January, 31, 14, 30, 45, 0, ny)

	got := AddClampedDate(in, 0, 1, 0)
	assert.Equal(t, 14, got.Hour())
	assert.Equal(t, 30, got.Minute())
	assert.Equal(t, ny, got.Location())
	assert.Equal(t, 28, got.Day())
}

func TestLastDayOfMonth(t *testing.T) {
	assert.Equal(t, 31, LastDayOfMonth(2011, time.January))
	assert.Equal(t, 28, LastDayOfMonth(2011, time.February))
	assert.Equal(t, 29, LastDayOfMonth(2012, time.February))
	assert.Equal(t, 30, LastDayOfMonth(2011, time.April))
	assert.Equal(t, 31, LastDayOfMonth(2011, time.December))
}

func TestClampDayToMonth(t *testing.T) {
	assert.Equal(t, 28, ClampDayToMonth(2011, time.February, 31))
	assert.Equal(t, 29, ClampDayToMonth(2012, time.February, 31))
	assert.Equal(t, 15, ClampDayToMonth(2011, time.February, 15))
}

func TestCivilDate(t *testing.T) {
	ny := mustLoad(t, "America/New_York")

	// The calendar date in the instant's own location is what survives.
	in := time.Date(2011, time.January, 14, 23, 30, 0, 0, ny)
	got := CivilDate(in)
	assert.True(t, got.Equal(time.Date(2011, time.January, 14, 0, 0, 0, 0, time.UTC)))
	assert.Equal(t, time.UTC, got.Location())
}

func TestDaysBetween(t *testing.T) {
	jan1 := time.Date(2011, time.January, 1, 0, 0, 0, 0, time.UTC)
	jan15 := time.Date(2011, time.January, 15, 0, 0, 0, 0, time.UTC)

	assert.Equal(t, 14, DaysBetween(jan1, jan15))
	assert.Equal(t, -14, DaysBetween(jan15, jan1))
	assert.Equal(t, 0, DaysBetween(jan1, jan1))

	// Time-of-day never shifts the count.
	lateJan1 := time.Date(2011, time.January, 1, 23, 59, 0, 0, time.UTC)
	assert.Equal(t, 14, DaysBetween(lateJan1, jan15))

	// Leap february.
	feb1 := time.Date(2012, time.February, 1, 0, 0, 0, 0, time.UTC)
	mar1 := time.Date(2012, time.March, 1, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, 29, DaysBetween(feb1, mar1))
}
