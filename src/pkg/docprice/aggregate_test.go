package docprice

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func quoteRow(date string, prices ...string) []string {
	return append([]string{date}, prices...)
}

func TestAggregateWeeklyAveragesSuppliersPerDay(t *testing.T) {
	data := [][]string{
		quoteRow("2025-01-06", "3300", "3500", ""),
		quoteRow("2025-01-08", "3600", "0", "abc"),
	}

	weeks := AggregateWeekly(data, 2025)

	require.Len(t, weeks, 1)
	week := weeks[0]
	assert.Equal(t, 2025, week.Year)
	assert.Equal(t, 2, week.Week)
	assert.Equal(t, 2, week.Entries)
	assert.Equal(t, 3500.0, week.AvgPrice)
	assert.Equal(t, 3300.0, week.MinPrice)
	assert.Equal(t, 3600.0, week.MaxPrice)
	assert.Equal(t, 300.0, week.Spread)
	assert.Equal(t, "2025-01-06", week.Start.Format("2006-01-02"))
	assert.Equal(t, "2025-01-08", week.End.Format("2006-01-02"))
	assert.Nil(t, week.WowPct)
	assert.Nil(t, week.WowAbs)
}

func TestAggregateWeeklyDropsDaysWithoutPositivePrices(t *testing.T) {
	data := [][]string{
		quoteRow("2025-01-06", "3300"),
		quoteRow("2025-01-07", "0", "-5", ""),
		quoteRow("2024-12-30", "3300"),
		quoteRow("not a date", "3300"),
	}

	weeks := AggregateWeekly(data, 2025)

	require.Len(t, weeks, 1)
	assert.Equal(t, 1, weeks[0].Entries)
	assert.Equal(t, 3300.0, weeks[0].AvgPrice)
}

func TestAggregateWeeklyWoWAgainstPriorWeek(t *testing.T) {
	data := [][]string{
		quoteRow("2025-01-06", "3300", "3500"),
		quoteRow("2025-01-08", "3600"),
		quoteRow("2025-01-13", "3850"),
	}

	weeks := AggregateWeekly(data, 2025)

	require.Len(t, weeks, 2)
	require.NotNil(t, weeks[1].WowPct)
	assert.Equal(t, 10.0, *weeks[1].WowPct)
	require.NotNil(t, weeks[1].WowAbs)
	assert.Equal(t, 350.0, *weeks[1].WowAbs)
}

func TestAggregateWeeklyRoundsAverageHalfEven(t *testing.T) {
	data := [][]string{
		quoteRow("2025-01-06", "3300", "3301"),
	}

	weeks := AggregateWeekly(data, 2025)

	require.Len(t, weeks, 1)
	assert.Equal(t, 3300.0, weeks[0].AvgPrice)
}

func TestWowStrings(t *testing.T) {
	rise := 350.0
	fall := -350.0
	flat := 0.0
	risePct := 10.0
	fallPct := -10.5

	assert.Equal(t, "N/A", wowString(nil))
	assert.Equal(t, "+10.0%", wowString(&risePct))
	assert.Equal(t, "-10.5%", wowString(&fallPct))

	assert.Equal(t, "N/A", absWowString(nil))
	assert.Equal(t, "+₦350", absWowString(&rise))
	assert.Equal(t, "-₦350", absWowString(&fall))
	assert.Equal(t, "₦0", absWowString(&flat))

	big := 1350.0
	assert.Equal(t, "+₦1,350", absWowString(&big))
}

func TestYtdExtremesFirstWeekOwnsDuplicates(t *testing.T) {
	weeks := []WeekRow{
		{Week: 2, MinPrice: 3200, MaxPrice: 3600},
		{Week: 3, MinPrice: 3100, MaxPrice: 3800},
		{Week: 4, MinPrice: 3100, MaxPrice: 3800},
	}

	high, low := ytdExtremes(weeks)

	assert.Equal(t, 3, high.Week)
	assert.Equal(t, 3, low.Week)
}
