package parse

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDateRecoversSameDayAcrossLayouts(t *testing.T) {
	// Day 25 so the day-first encodings cannot be swallowed by the
	// month-first layout earlier in the trial order.
	encodings := []string{
		"25-Mar-2025",
		"2025-03-25",
		"03/25/2025",
		"25/03/2025",
		"25 Mar 2025",
		"Mar 25, 2025",
		"2025/03/25",
		"25-03-2025",
		"25 March 2025",
		"March 25, 2025",
	}

	for _, encoded := range encodings {
		parsed, ok := Date(encoded)
		require.True(t, ok, "expected %q to parse", encoded)
		assert.Equal(t, 2025, parsed.Year(), encoded)
		assert.Equal(t, time.March, parsed.Month(), encoded)
		assert.Equal(t, 25, parsed.Day(), encoded)
	}
}

func TestDateAmbiguousSlashFormResolvesMonthFirst(t *testing.T) {
	parsed, ok := Date("01/02/2025")

	require.True(t, ok)
	assert.Equal(t, time.January, parsed.Month())
	assert.Equal(t, 2, parsed.Day())
}

func TestDateTrimsSurroundingWhitespace(t *testing.T) {
	parsed, ok := Date("  2025-07-14  ")

	require.True(t, ok)
	assert.Equal(t, 14, parsed.Day())
}

func TestDateRejectsImpossibleCalendarDate(t *testing.T) {
	_, ok := Date("31 Feb 2025")

	assert.False(t, ok)
}

func TestDateRejectsGarbage(t *testing.T) {
	for _, raw := range []string{"", "   ", "not a date", "2025", "tomorrow"} {
		_, ok := Date(raw)
		assert.False(t, ok, "expected %q to be absent", raw)
	}
}

func TestWeekOfBucketsByISOWeek(t *testing.T) {
	monday := time.Date(2025, time.January, 6, 0, 0, 0, 0, time.Local)

	assert.Equal(t, WeekKey{Year: 2025, Week: 2}, WeekOf(monday))
}

func TestWeekOfYearBoundaryBelongsToNextISOYear(t *testing.T) {
	lateDecember := time.Date(2025, time.December, 29, 0, 0, 0, 0, time.Local)

	assert.Equal(t, WeekKey{Year: 2026, Week: 1}, WeekOf(lateDecember))
}
