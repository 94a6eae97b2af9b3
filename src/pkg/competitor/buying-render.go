package competitor

import (
	"fmt"
	"sort"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/xuri/excelize/v2"

	tl "github.com/tuumbleweed/tintlog/logger"
	"github.com/tuumbleweed/tintlog/palette"
	"github.com/tuumbleweed/xerr"

	"poultry-dashboard/src/pkg/parse"
	"poultry-dashboard/src/pkg/workbook"
)

// BuyingSheetName is the dashboard sheet the buying report renders into.
const BuyingSheetName = "Competitor Buying Prices"

const (
	buyingBannerRow      = 10
	buyingTableHeaderRow = 13
)

/*
RenderBuying rebuilds the farm-gate buying sheet: the dressed-bird
summary cards, the live-birds callout banner, the entry table (dressed
first, then live), and the dressed-only price chart.
*/
func RenderBuying(file *excelize.File, records []BuyingRecord, now time.Time) (e *xerr.Error) {
	if len(records) == 0 {
		return nil
	}

	if e = workbook.ResetSheet(file, BuyingSheetName); e != nil {
		return e
	}

	summary := ComputeBuyingSummary(records)
	combined, dressedCount := orderForTable(records)

	firstDate := records[0].Date
	lastDate := records[0].Date
	for _, record := range records[1:] {
		if record.Date.Before(firstDate) {
			firstDate = record.Date
		}
		if record.Date.After(lastDate) {
			lastDate = record.Date
		}
	}

	subtitle := fmt.Sprintf(
		"Data range: %s - %s  |  Last updated: %s",
		firstDate.Format("02 Jan 2006"),
		lastDate.Format("02 Jan 2006"),
		now.Format("02 Jan 2006 03:04 PM"),
	)
	if e = workbook.RenderTitle(file, BuyingSheetName, "PULLUS COMPETITOR BUYING PRICES", subtitle, reportColumns); e != nil {
		return e
	}

	// paying less than the market is the unfavorable side here
	marketNote := "Pullus pays more to farmers"
	diffColor := workbook.Green
	if summary.DiffPct < 0 {
		marketNote = "Competitors pay more to farmers"
		diffColor = workbook.Red
	}
	dressedLabel := fmt.Sprintf("%d of %d entries (Dressed Birds)", summary.DressedEntries, summary.TotalEntries)
	lastDateLabel := lastDate.Format("02 Jan 2006")

	cards := []workbook.Card{
		{
			Accent: workbook.CardBlue, Label: "PULLUS BUYING PRICE",
			Value: summary.AvgPullus, ValueFormat: workbook.FmtNaira,
			SubLabel: "Dressed Birds Avg", SubValue: dressedLabel,
			SubValueColor: workbook.DarkText, SubValueSize: 9, SubValueBold: true,
			PeriodLabel: lastDateLabel, PeriodSize: 7,
		},
		{
			Accent: workbook.CardOrange, Label: "COMPETITOR AVG PRICE",
			Value: summary.AvgComp, ValueFormat: workbook.FmtNaira,
			SubLabel: "Dressed Birds Avg", SubValue: dressedLabel,
			SubValueColor: workbook.DarkText, SubValueSize: 9, SubValueBold: true,
			PeriodLabel: lastDateLabel, PeriodSize: 7,
		},
		{
			Accent: workbook.CardPurple, Label: "PULLUS vs MARKET",
			Value: pctString(summary.DiffPct), ValueColor: diffColor,
			SubLabel: marketNote, SubValue: signedNaira(summary.DiffAbs),
			SubValueColor: workbook.DarkText, SubValueSize: 9, SubValueBold: true,
			PeriodSize: 7,
		},
	}
	if e = workbook.RenderCards(file, BuyingSheetName, 4, 3, cards); e != nil {
		return e
	}

	liveLow, liveHigh, haveLive := liveRange(summary.LiveCompPrices)
	bannerCells := []string{"No Live Birds data available", "", ""}
	if haveLive {
		priceRange := fmt.Sprintf("₦%s", humanize.Comma(int64(liveLow)))
		if int(liveLow) != int(liveHigh) {
			priceRange = fmt.Sprintf("₦%s - ₦%s", humanize.Comma(int64(liveLow)), humanize.Comma(int64(liveHigh)))
		}
		bannerCells = []string{
			"LIVE BIRDS MARKET",
			fmt.Sprintf("Competitor prices: %s", priceRange),
			fmt.Sprintf("%d entries  |  No Pullus data", summary.LiveEntries),
		}
	}

	leadStyle, e := workbook.BannerStyle(file, workbook.BannerCellOptions{Bold: true, LeftAlign: true})
	if e != nil {
		return e
	}
	middleStyle, e := workbook.BannerStyle(file, workbook.BannerCellOptions{})
	if e != nil {
		return e
	}
	trailStyle, e := workbook.BannerStyle(file, workbook.BannerCellOptions{FontSize: 9, FontColor: workbook.MutedInk})
	if e != nil {
		return e
	}
	bannerStyles := []int{leadStyle, middleStyle, trailStyle}

	spans := [][2]int{{1, 3}, {4, 6}, {7, 9}}
	for spanIndex, span := range spans {
		if e = workbook.MergeAcross(file, BuyingSheetName, buyingBannerRow, span[0], span[1]); e != nil {
			return e
		}
		if e = workbook.WriteRow(file, BuyingSheetName, span[0], buyingBannerRow, []any{bannerCells[spanIndex]}); e != nil {
			return e
		}
		if e = workbook.SetCellStyleRange(file, BuyingSheetName, span[0], buyingBannerRow, span[1], buyingBannerRow, bannerStyles[spanIndex]); e != nil {
			return e
		}
	}

	explainer := "Shows what Pullus pays farmers for birds vs competitor buying prices. " +
		"Diff % = (Pullus - Competitor) / Competitor. " +
		"Negative = Pullus pays less (competitors have sourcing advantage)."
	if e = workbook.RenderExplainer(file, BuyingSheetName, 12, explainer, reportColumns); e != nil {
		return e
	}

	headers := []string{
		"Date", "Location", "Competitor", "Product Type",
		"Comp Price", "Pullus Price", "Diff %",
		"Diff (₦)", "Notes",
	}
	if e = workbook.RenderHeader(file, BuyingSheetName, buyingTableHeaderRow, headers); e != nil {
		return e
	}

	columnFormats := []string{
		"", "", "", "",
		workbook.FmtNaira, workbook.FmtNaira, workbook.FmtSignedDec1,
		workbook.FmtSignedNaira, "",
	}
	plainStyles, zebraStyles, e := workbook.TableColumnStyles(file, columnFormats)
	if e != nil {
		return e
	}

	dataStartRow := buyingTableHeaderRow + 1
	for rowIndex, record := range combined {
		diffPct := any("")
		diffAbs := any("")
		if record.CompPrice != nil && record.PullusPrice != nil && *record.CompPrice > 0 {
			compPrice := *record.CompPrice
			pullusPrice := *record.PullusPrice
			diffPct = parse.RoundTo((pullusPrice-compPrice)/compPrice*100, 1)
			diffAbs = int(pullusPrice - compPrice)
		}

		values := []any{
			record.Date.Format("02 Jan 2006"),
			record.State,
			record.Competitor,
			record.ProductType,
			nairaCell(record.CompPrice),
			nairaCell(record.PullusPrice),
			diffPct,
			diffAbs,
			record.Notes,
		}

		styles := plainStyles
		if rowIndex%2 == 0 {
			styles = zebraStyles
		}
		if e = workbook.RenderTableRow(file, BuyingSheetName, dataStartRow+rowIndex, values, styles); e != nil {
			return e
		}
	}
	tl.Log(tl.Info1, palette.Blue, "Wrote %d rows of data", buyingTableHeaderRow+len(combined))

	// sign colors are swapped vs the selling sheet: positive reads green
	dataEndRow := dataStartRow + len(combined) - 1
	if e = workbook.SignConditionalFormat(file, BuyingSheetName, workbook.RangeRef(7, dataStartRow, 8, dataEndRow), workbook.Green, workbook.Red); e != nil {
		return e
	}

	if e = workbook.SetColumnWidths(file, BuyingSheetName, []float64{100, 80, 170, 105, 95, 95, 75, 85, 155}); e != nil {
		return e
	}
	heights := map[int]float64{
		1: 50, 2: 30, 3: 10,
		4: 32, 5: 32, 6: 32, 7: 32, 8: 32,
		9: 10, 10: 32, 11: 10, 12: 30, 13: 36,
	}
	if e = workbook.SetRowHeights(file, BuyingSheetName, heights); e != nil {
		return e
	}
	if e = workbook.FreezeRows(file, BuyingSheetName, buyingTableHeaderRow); e != nil {
		return e
	}
	tl.Log(tl.Info1, palette.Blue, "Applied %s", "formatting")

	if dressedCount > 0 {
		lowestPrice := 0.0
		haveLowest := false
		for _, record := range combined[:dressedCount] {
			for _, price := range []*float64{record.CompPrice, record.PullusPrice} {
				if price == nil {
					continue
				}
				if !haveLowest || *price < lowestPrice {
					lowestPrice = *price
					haveLowest = true
				}
			}
		}
		axisMinimum := 0.0
		if haveLowest {
			axisMinimum = workbook.AxisFloor(lowestPrice, 500, 500)
			if axisMinimum < 0 {
				axisMinimum = 0
			}
		}

		dressedEndRow := dataStartRow + dressedCount - 1
		chartOptions := workbook.ChartOptions{
			Title:         "Pullus vs Competitor Buying Prices (Dressed Birds)",
			Width:         720,
			Height:        420,
			CategoriesRef: workbook.SeriesRef(BuyingSheetName, 1, dataStartRow, dressedEndRow),
			YAxisTitle:    "Price (₦)",
			YAxisMin:      &axisMinimum,
		}
		columnSeries := workbook.Series{
			Name:   "Comp Price",
			Values: workbook.SeriesRef(BuyingSheetName, 5, dataStartRow, dressedEndRow),
			Color:  workbook.CardOrange,
		}
		lineSeries := workbook.Series{
			Name:   "Pullus Price",
			Values: workbook.SeriesRef(BuyingSheetName, 6, dataStartRow, dressedEndRow),
			Color:  workbook.CardBlue,
		}
		if e = workbook.AddComboChart(file, BuyingSheetName, workbook.CellRef(10, 4), chartOptions, columnSeries, lineSeries, false); e != nil {
			return e
		}
		tl.Log(tl.Info1, palette.Blue, "Created %s", "chart")
	}

	tl.Log(tl.Notice, palette.GreenBold, "Competitor Buying Prices dashboard built: %d entries", len(records))
	tl.Log(
		tl.Info, palette.Green, "Dressed Birds: Pullus avg %s vs Comp avg %s (%s)",
		humanize.Comma(int64(summary.AvgPullus)), humanize.Comma(int64(summary.AvgComp)), pctString(summary.DiffPct),
	)
	if haveLive {
		tl.Log(
			tl.Info, palette.Green, "Live Birds: %d entries, comp prices %s - %s",
			summary.LiveEntries, humanize.Comma(int64(liveLow)), humanize.Comma(int64(liveHigh)),
		)
	}
	return nil
}

/*
orderForTable sorts each product group by date and lays dressed-bird
entries ahead of live-bird ones. Other product types stay out of the
table.
*/
func orderForTable(records []BuyingRecord) (combined []BuyingRecord, dressedCount int) {
	dressed := []BuyingRecord{}
	live := []BuyingRecord{}
	for _, record := range records {
		switch record.ProductType {
		case ProductDressedBirds:
			dressed = append(dressed, record)
		case ProductLiveBirds:
			live = append(live, record)
		}
	}
	sort.SliceStable(dressed, func(i, j int) bool { return dressed[i].Date.Before(dressed[j].Date) })
	sort.SliceStable(live, func(i, j int) bool { return live[i].Date.Before(live[j].Date) })

	combined = append(combined, dressed...)
	combined = append(combined, live...)
	return combined, len(dressed)
}

// liveRange is the lowest and highest competitor live-bird quote
func liveRange(prices []float64) (lowest float64, highest float64, ok bool) {
	if len(prices) == 0 {
		return 0, 0, false
	}
	lowest = prices[0]
	highest = prices[0]
	for _, price := range prices[1:] {
		if price < lowest {
			lowest = price
		}
		if price > highest {
			highest = price
		}
	}
	return lowest, highest, true
}
