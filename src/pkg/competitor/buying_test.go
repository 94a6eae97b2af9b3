package competitor

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var buyingHeader = []string{
	"Entry ID", "Date", "Time", "Entered By", "State",
	"Competitor Name", "Product Type", "Competitor Price (N)", "Pullus Price (N)", "Notes",
}

func TestExtractBuyingRecordsFindsHeaderAfterPreamble(t *testing.T) {
	rows := [][]string{
		{"Q1 Buying Survey"},
		{},
		buyingHeader,
		{"1", "2025-02-03", "", "", "Kaduna", "Chi Farms", "dressed birds", "3,400", "4,000", "strong demand"},
		{"2", "2024-12-20", "", "", "Kano", "Olam", "Dressed Birds", "3,300", "3,900", ""},
		{"3", "2025-02-04", "", "", "Kano", "", "live birds", "3,000", "", ""},
		{"4", "2025-02-05", "", "", "Kano", "Olam", "LIVE BIRDS", "3,100 - 3,300", "", ""},
	}

	records, e := ExtractBuyingRecords(rows, 2025, false)

	require.Nil(t, e)
	require.Len(t, records, 2)

	first := records[0]
	assert.Equal(t, day(2025, 2, 3), first.Date)
	assert.Equal(t, "Kaduna", first.State)
	assert.Equal(t, "Chi Farms", first.Competitor)
	assert.Equal(t, ProductDressedBirds, first.ProductType)
	require.NotNil(t, first.CompPrice)
	require.NotNil(t, first.PullusPrice)
	assert.Equal(t, 3400.0, *first.CompPrice)
	assert.Equal(t, 4000.0, *first.PullusPrice)
	assert.Equal(t, "strong demand", first.Notes)

	second := records[1]
	assert.Equal(t, ProductLiveBirds, second.ProductType)
	require.NotNil(t, second.CompPrice)
	assert.Equal(t, 3200.0, *second.CompPrice)
	assert.Nil(t, second.PullusPrice)
}

func TestExtractBuyingRecordsWithoutHeaderMarker(t *testing.T) {
	rows := [][]string{
		{"Date", "State", "Competitor Name"},
		{"2025-02-03", "Kaduna", "Chi Farms"},
	}

	records, e := ExtractBuyingRecords(rows, 2025, false)

	assert.Nil(t, e)
	assert.Nil(t, records)
}

func TestExtractBuyingRecordsColumnsFollowHeaderNames(t *testing.T) {
	rows := [][]string{
		{"Entry ID", "Date", "Competitor Name", "Product Type", "Competitor Price (N)", "Pullus Price (N)", "State", "Notes"},
		{"1", "2025-02-03", "Chi Farms", "Dressed Birds", "3400", "4000", "Kaduna", "ok"},
	}

	records, e := ExtractBuyingRecords(rows, 2025, false)

	require.Nil(t, e)
	require.Len(t, records, 1)
	assert.Equal(t, "Kaduna", records[0].State)
	assert.Equal(t, "Chi Farms", records[0].Competitor)
	assert.Equal(t, "ok", records[0].Notes)
}

func TestExtractBuyingRecordsStrictSchema(t *testing.T) {
	missingState := [][]string{
		{"Entry ID", "Date", "Competitor Name", "Product Type", "Competitor Price (N)", "Pullus Price (N)", "Notes"},
		{"1", "2025-02-03", "Chi Farms", "Dressed Birds", "3400", "4000", "ok"},
	}

	records, e := ExtractBuyingRecords(missingState, 2025, true)
	require.NotNil(t, e)
	assert.Nil(t, records)

	complete := [][]string{
		buyingHeader,
		{"1", "2025-02-03", "", "", "Kaduna", "Chi Farms", "Dressed Birds", "3400", "4000", ""},
	}
	records, e = ExtractBuyingRecords(complete, 2025, true)
	require.Nil(t, e)
	assert.Len(t, records, 1)
}

func TestComputeBuyingSummaryDressedAverages(t *testing.T) {
	records := []BuyingRecord{
		{Date: day(2025, 2, 3), ProductType: ProductDressedBirds, CompPrice: price(3400), PullusPrice: price(4000)},
		{Date: day(2025, 2, 4), ProductType: ProductDressedBirds, CompPrice: price(3600), PullusPrice: price(4100)},
		{Date: day(2025, 2, 5), ProductType: ProductDressedBirds, CompPrice: price(3500)},
		{Date: day(2025, 2, 5), ProductType: ProductLiveBirds, CompPrice: price(3000)},
		{Date: day(2025, 2, 6), ProductType: ProductLiveBirds},
		{Date: day(2025, 2, 6), ProductType: "Whole Chicken", CompPrice: price(5000)},
	}

	summary := ComputeBuyingSummary(records)

	assert.Equal(t, 4050.0, summary.AvgPullus)
	assert.Equal(t, 3500.0, summary.AvgComp)
	assert.Equal(t, 15.7, summary.DiffPct)
	assert.Equal(t, 550.0, summary.DiffAbs)
	assert.Equal(t, 6, summary.TotalEntries)
	assert.Equal(t, 3, summary.DressedEntries)
	assert.Equal(t, 2, summary.LiveEntries)
	assert.Equal(t, []float64{3000}, summary.LiveCompPrices)
}

func TestComputeBuyingSummarySingleEntryDiff(t *testing.T) {
	records := []BuyingRecord{
		{Date: day(2025, 2, 3), ProductType: ProductDressedBirds, CompPrice: price(3400), PullusPrice: price(4000)},
	}

	summary := ComputeBuyingSummary(records)

	assert.Equal(t, 17.6, summary.DiffPct)
	assert.Equal(t, 600.0, summary.DiffAbs)
}

func TestComputeBuyingSummaryZeroFallbacks(t *testing.T) {
	records := []BuyingRecord{
		{Date: day(2025, 2, 3), ProductType: ProductDressedBirds, PullusPrice: price(4000)},
	}

	summary := ComputeBuyingSummary(records)

	assert.Equal(t, 4000.0, summary.AvgPullus)
	assert.Equal(t, 0.0, summary.AvgComp)
	assert.Equal(t, 0.0, summary.DiffPct)
	assert.Equal(t, 4000.0, summary.DiffAbs)
}

func TestOrderForTablePutsDressedFirst(t *testing.T) {
	records := []BuyingRecord{
		{Date: day(2025, 1, 5), ProductType: ProductLiveBirds, Competitor: "Olam"},
		{Date: day(2025, 2, 1), ProductType: ProductDressedBirds, Competitor: "Chi Farms"},
		{Date: day(2025, 1, 1), ProductType: "Point Of Lay", Competitor: "Amo Farm"},
		{Date: day(2025, 1, 10), ProductType: ProductDressedBirds, Competitor: "FarmFresh"},
	}

	combined, dressedCount := orderForTable(records)

	require.Len(t, combined, 3)
	assert.Equal(t, 2, dressedCount)
	assert.Equal(t, "FarmFresh", combined[0].Competitor)
	assert.Equal(t, "Chi Farms", combined[1].Competitor)
	assert.Equal(t, "Olam", combined[2].Competitor)
}

func TestLiveRange(t *testing.T) {
	lowest, highest, ok := liveRange([]float64{3200, 3000, 3300})
	require.True(t, ok)
	assert.Equal(t, 3000.0, lowest)
	assert.Equal(t, 3300.0, highest)

	_, _, ok = liveRange(nil)
	assert.False(t, ok)
}
