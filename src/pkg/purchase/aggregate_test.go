package purchase

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func purchaseRow(date string, birds string, chickenKg string, gizzardKg string) []string {
	return []string{date, "", "", "", "", birds, "", "", chickenKg, gizzardKg}
}

func TestAggregateWeeklySingleBucket(t *testing.T) {
	data := [][]string{
		purchaseRow("2025-01-06", "100", "50.0", "10.0"),
		purchaseRow("2025-01-08", "200", "90.0", "15.0"),
	}

	weeks := AggregateWeekly(data, 2025)

	require.Len(t, weeks, 1)
	week := weeks[0]
	assert.Equal(t, 2025, week.Year)
	assert.Equal(t, 2, week.Week)
	assert.Equal(t, 300, week.TotalBirds)
	assert.Equal(t, 140.0, week.ChickenKg)
	assert.Equal(t, 25.0, week.GizzardKg)
	assert.Equal(t, 165.0, week.TotalKg)
	assert.Equal(t, 2, week.PurchaseDays)
	assert.Equal(t, 150.0, week.AvgBirdsPerDay)
	assert.Equal(t, 82.5, week.AvgKgPerDay)
	assert.Equal(t, "2025-01-06", week.Start.Format("2006-01-02"))
	assert.Equal(t, "2025-01-08", week.End.Format("2006-01-02"))
	assert.Nil(t, week.BirdsWoW)
	assert.Nil(t, week.WeightWoW)
}

func TestAggregateWeeklyDropsOffYearAndBadDates(t *testing.T) {
	data := [][]string{
		purchaseRow("2024-12-30", "500", "100.0", "20.0"),
		purchaseRow("31 Feb 2025", "500", "100.0", "20.0"),
		purchaseRow("not a date", "500", "100.0", "20.0"),
		purchaseRow("2025-03-03", "80", "40.0", "5.0"),
	}

	weeks := AggregateWeekly(data, 2025)

	require.Len(t, weeks, 1)
	assert.Equal(t, 80, weeks[0].TotalBirds)
}

func TestAggregateWeeklyCountsDistinctPurchaseDays(t *testing.T) {
	data := [][]string{
		purchaseRow("2025-01-06", "100", "50.0", "10.0"),
		purchaseRow("2025-01-06", "50", "25.0", "5.0"),
	}

	weeks := AggregateWeekly(data, 2025)

	require.Len(t, weeks, 1)
	assert.Equal(t, 1, weeks[0].PurchaseDays)
	assert.Equal(t, 150, weeks[0].TotalBirds)
	assert.Equal(t, 150.0, weeks[0].AvgBirdsPerDay)
}

func TestAggregateWeeklyWoWAgainstPriorWeek(t *testing.T) {
	data := [][]string{
		purchaseRow("2025-01-06", "100", "50.0", "10.0"),
		purchaseRow("2025-01-08", "200", "90.0", "15.0"),
		purchaseRow("2025-01-13", "300", "165.0", "0"),
	}

	weeks := AggregateWeekly(data, 2025)

	require.Len(t, weeks, 2)
	require.NotNil(t, weeks[1].BirdsWoW)
	assert.Equal(t, 100.0, *weeks[1].BirdsWoW)
	require.NotNil(t, weeks[1].WeightWoW)
	assert.Equal(t, 100.0, *weeks[1].WeightWoW)
}

func TestAggregateWeeklyWoWNilWhenPriorAverageZero(t *testing.T) {
	data := [][]string{
		purchaseRow("2025-01-06", "", "0", "0"),
		purchaseRow("2025-01-13", "300", "165.0", "0"),
	}

	weeks := AggregateWeekly(data, 2025)

	require.Len(t, weeks, 2)
	assert.Nil(t, weeks[1].BirdsWoW)
	assert.Nil(t, weeks[1].WeightWoW)
}

func TestAggregateWeeklySortsBucketsChronologically(t *testing.T) {
	data := [][]string{
		purchaseRow("2025-02-10", "10", "1.0", "0"),
		purchaseRow("2025-01-06", "20", "2.0", "0"),
	}

	weeks := AggregateWeekly(data, 2025)

	require.Len(t, weeks, 2)
	assert.Equal(t, 2, weeks[0].Week)
	assert.Equal(t, 7, weeks[1].Week)
}

func TestAggregateWeeklyToleratesShortRows(t *testing.T) {
	data := [][]string{
		{"2025-01-06", "", "", "", "", "40"},
		{"2025-01-07"},
	}

	weeks := AggregateWeekly(data, 2025)

	require.Len(t, weeks, 1)
	assert.Equal(t, 40, weeks[0].TotalBirds)
	assert.Equal(t, 0.0, weeks[0].ChickenKg)
	assert.Equal(t, 2, weeks[0].PurchaseDays)
}
