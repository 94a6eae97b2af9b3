package competitor

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func day(year int, month int, dayOfMonth int) time.Time {
	return time.Date(year, time.Month(month), dayOfMonth, 0, 0, 0, 0, time.Local)
}

func price(value float64) *float64 {
	return &value
}

func TestLocationNameMapsSurveyTabs(t *testing.T) {
	assert.Equal(t, "Abuja", LocationName("Abuja_Entry"))
	assert.Equal(t, "Kano", LocationName("Kano_Entry"))
	assert.Equal(t, "Lagos_Pilot", LocationName("Lagos_Pilot"))
}

func TestExtractSellingRecordsKeepsCurrentYearBrandRows(t *testing.T) {
	rows := [][]string{
		{"Date", "Brand", "Whole Chicken", "Gizzard"},
		{"2025-02-03", "Pullus", "5500", "2000"},
		{"2024-11-12", "FarmFresh", "5000", ""},
		{"2025-02-03", "   ", "5200", ""},
		{"2025-02-03", "Chi Farms", "5200/5400", "abc"},
	}

	records, e := ExtractSellingRecords("Abuja", rows, 2025, false)

	require.Nil(t, e)
	require.Len(t, records, 2)

	assert.Equal(t, "Pullus", records[0].Brand)
	assert.Equal(t, "Abuja", records[0].Location)
	assert.Equal(t, day(2025, 2, 3), records[0].Date)
	assert.Equal(t, 5500.0, records[0].Prices[ProductWholeChicken])
	assert.Equal(t, 2000.0, records[0].Prices[ProductGizzard])

	assert.Equal(t, "Chi Farms", records[1].Brand)
	assert.Equal(t, 5300.0, records[1].Prices[ProductWholeChicken])
	_, quoted := records[1].Prices[ProductGizzard]
	assert.False(t, quoted)
}

func TestExtractSellingRecordsProductColumnsFollowHeader(t *testing.T) {
	rows := [][]string{
		{"Date", "Brand", "Gizzard", "Whole Chicken"},
		{"2025-03-01", "FarmFresh", "2100", "5600"},
	}

	records, e := ExtractSellingRecords("Kano", rows, 2025, false)

	require.Nil(t, e)
	require.Len(t, records, 1)
	assert.Equal(t, 5600.0, records[0].Prices[ProductWholeChicken])
	assert.Equal(t, 2100.0, records[0].Prices[ProductGizzard])
}

func TestExtractSellingRecordsMissingProductColumn(t *testing.T) {
	rows := [][]string{
		{"Date", "Brand", "Whole Chicken"},
		{"2025-03-01", "Pullus", "5500"},
	}

	records, e := ExtractSellingRecords("Kaduna", rows, 2025, false)

	require.Nil(t, e)
	require.Len(t, records, 1)
	assert.Equal(t, 5500.0, records[0].Prices[ProductWholeChicken])
	_, quoted := records[0].Prices[ProductGizzard]
	assert.False(t, quoted)
}

func TestExtractSellingRecordsStrictSchema(t *testing.T) {
	rows := [][]string{
		{"Date", "Brand", "Whole Chicken"},
		{"2025-03-01", "Pullus", "5500"},
	}

	records, e := ExtractSellingRecords("Kaduna", rows, 2025, true)
	require.NotNil(t, e)
	assert.Nil(t, records)

	full := [][]string{
		{"Date", "Brand", "Whole Chicken", "Gizzard"},
		{"2025-03-01", "Pullus", "5500", "2000"},
	}
	records, e = ExtractSellingRecords("Kaduna", full, 2025, true)
	require.Nil(t, e)
	assert.Len(t, records, 1)
}

func TestExtractSellingRecordsEmptySheet(t *testing.T) {
	records, e := ExtractSellingRecords("Abuja", nil, 2025, false)
	assert.Nil(t, e)
	assert.Nil(t, records)

	records, e = ExtractSellingRecords("Abuja", [][]string{{"Date", "Brand"}}, 2025, false)
	assert.Nil(t, e)
	assert.Nil(t, records)
}

func TestAggregateSellingComparesOwnAgainstCompetitorMean(t *testing.T) {
	records := []SellingRecord{
		{Date: day(2025, 2, 3), Location: "Abuja", Brand: "PULLUS", Prices: map[string]float64{
			ProductWholeChicken: 5500, ProductGizzard: 2000,
		}},
		{Date: day(2025, 2, 3), Location: "Abuja", Brand: "Chi Farms", Prices: map[string]float64{
			ProductWholeChicken: 5200,
		}},
		{Date: day(2025, 2, 3), Location: "Abuja", Brand: "FarmFresh", Prices: map[string]float64{
			ProductWholeChicken: 5400, ProductGizzard: 1800,
		}},
		{Date: day(2025, 2, 3), Location: "Abuja", Brand: "Olam", Prices: map[string]float64{}},
	}

	rows := AggregateSelling(records)

	require.Len(t, rows, 1)
	row := rows[0]
	assert.Equal(t, day(2025, 2, 3), row.Date)
	assert.Equal(t, "Abuja", row.Location)
	assert.Equal(t, 2, row.CompBrands)

	wholeChicken := row.ByProduct[ProductWholeChicken]
	require.NotNil(t, wholeChicken.Pullus)
	require.NotNil(t, wholeChicken.CompAvg)
	require.NotNil(t, wholeChicken.DiffPct)
	assert.Equal(t, 5500.0, *wholeChicken.Pullus)
	assert.Equal(t, 5300.0, *wholeChicken.CompAvg)
	assert.Equal(t, 3.8, *wholeChicken.DiffPct)

	gizzard := row.ByProduct[ProductGizzard]
	require.NotNil(t, gizzard.DiffPct)
	assert.Equal(t, 2000.0, *gizzard.Pullus)
	assert.Equal(t, 1800.0, *gizzard.CompAvg)
	assert.Equal(t, 11.1, *gizzard.DiffPct)
}

func TestAggregateSellingDiffAbsentWithoutBothSides(t *testing.T) {
	records := []SellingRecord{
		{Date: day(2025, 2, 3), Location: "Abuja", Brand: "Pullus", Prices: map[string]float64{
			ProductWholeChicken: 5500,
		}},
		{Date: day(2025, 2, 3), Location: "Abuja", Brand: "Chi Farms", Prices: map[string]float64{
			ProductGizzard: 1800,
		}},
	}

	rows := AggregateSelling(records)

	require.Len(t, rows, 1)
	wholeChicken := rows[0].ByProduct[ProductWholeChicken]
	assert.NotNil(t, wholeChicken.Pullus)
	assert.Nil(t, wholeChicken.CompAvg)
	assert.Nil(t, wholeChicken.DiffPct)

	gizzard := rows[0].ByProduct[ProductGizzard]
	assert.Nil(t, gizzard.Pullus)
	assert.NotNil(t, gizzard.CompAvg)
	assert.Nil(t, gizzard.DiffPct)
}

func TestAggregateSellingMeanRoundsHalfEven(t *testing.T) {
	records := []SellingRecord{
		{Date: day(2025, 2, 3), Location: "Kano", Brand: "Chi Farms", Prices: map[string]float64{
			ProductWholeChicken: 5200,
		}},
		{Date: day(2025, 2, 3), Location: "Kano", Brand: "FarmFresh", Prices: map[string]float64{
			ProductWholeChicken: 5201,
		}},
	}

	rows := AggregateSelling(records)

	require.Len(t, rows, 1)
	compAvg := rows[0].ByProduct[ProductWholeChicken].CompAvg
	require.NotNil(t, compAvg)
	assert.Equal(t, 5200.0, *compAvg)
}

func TestAggregateSellingSortsByDateThenLocation(t *testing.T) {
	records := []SellingRecord{
		{Date: day(2025, 2, 10), Location: "Kano", Brand: "Pullus", Prices: map[string]float64{ProductWholeChicken: 5600}},
		{Date: day(2025, 2, 3), Location: "Kaduna", Brand: "Pullus", Prices: map[string]float64{ProductWholeChicken: 5500}},
		{Date: day(2025, 2, 3), Location: "Abuja", Brand: "Pullus", Prices: map[string]float64{ProductWholeChicken: 5400}},
	}

	rows := AggregateSelling(records)

	require.Len(t, rows, 3)
	assert.Equal(t, "Abuja", rows[0].Location)
	assert.Equal(t, "Kaduna", rows[1].Location)
	assert.Equal(t, day(2025, 2, 10), rows[2].Date)
	assert.Equal(t, "Kano", rows[2].Location)
}

func TestLatestRowPerLocationKeepsNewestSurvey(t *testing.T) {
	rows := []SellingRow{
		{Date: day(2025, 2, 3), Location: "Abuja", CompBrands: 2},
		{Date: day(2025, 2, 10), Location: "Abuja", CompBrands: 3},
		{Date: day(2025, 2, 10), Location: "Kano", CompBrands: 1},
	}

	latest := latestRowPerLocation(rows)

	require.Len(t, latest, 2)
	assert.Equal(t, 3, latest["Abuja"].CompBrands)
	assert.Equal(t, 1, latest["Kano"].CompBrands)
}

func TestMeanOrZero(t *testing.T) {
	assert.Equal(t, 0.0, meanOrZero(nil))
	assert.Equal(t, 5250.0, meanOrZero([]float64{5200, 5300}))
}

func TestPctString(t *testing.T) {
	assert.Equal(t, "+3.8%", pctString(3.8))
	assert.Equal(t, "-2.5%", pctString(-2.5))
	assert.Equal(t, "0.0%", pctString(0))
}

func TestSignedNaira(t *testing.T) {
	assert.Equal(t, "+₦550", signedNaira(550))
	assert.Equal(t, "-₦1,250", signedNaira(-1250))
	assert.Equal(t, "+₦0", signedNaira(0))
}

func TestTableCellHelpers(t *testing.T) {
	assert.Equal(t, "", nairaCell(nil))
	assert.Equal(t, 5500, nairaCell(price(5500.9)))
	assert.Equal(t, "", diffCell(nil))
	assert.Equal(t, 3.8, diffCell(price(3.8)))
}
