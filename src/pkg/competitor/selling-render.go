package competitor

import (
	"fmt"
	"math"
	"sort"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/xuri/excelize/v2"

	tl "github.com/tuumbleweed/tintlog/logger"
	"github.com/tuumbleweed/tintlog/palette"
	"github.com/tuumbleweed/xerr"

	"poultry-dashboard/src/pkg/parse"
	"poultry-dashboard/src/pkg/workbook"
)

// SellingSheetName is the dashboard sheet the selling report renders into.
const SellingSheetName = "Competitor Selling Prices"

const (
	reportColumns         = 9
	sellingTableHeaderRow = 11
)

// fixed survey cities, in card display order
var locationDisplayOrder = []string{"Abuja", "Kaduna", "Kano"}

/*
RenderSelling rebuilds the selling price sheet: title block, the
own-vs-market cards built from each location's latest survey, the
per-day table, and the whole chicken comparison chart.
*/
func RenderSelling(file *excelize.File, rows []SellingRow, now time.Time) (e *xerr.Error) {
	if len(rows) == 0 {
		return nil
	}

	if e = workbook.ResetSheet(file, SellingSheetName); e != nil {
		return e
	}

	subtitle := fmt.Sprintf(
		"Data range: %s - %s  |  Last updated: %s",
		rows[0].Date.Format("02 Jan 2006"),
		rows[len(rows)-1].Date.Format("02 Jan 2006"),
		now.Format("02 Jan 2006 03:04 PM"),
	)
	if e = workbook.RenderTitle(file, SellingSheetName, "PULLUS COMPETITOR SELLING PRICES", subtitle, reportColumns); e != nil {
		return e
	}

	latestByLoc := latestRowPerLocation(rows)

	pullusPrices := []float64{}
	compPrices := []float64{}
	for _, row := range latestByLoc {
		comparison := row.ByProduct[ProductWholeChicken]
		if comparison.Pullus != nil {
			pullusPrices = append(pullusPrices, *comparison.Pullus)
		}
		if comparison.CompAvg != nil {
			compPrices = append(compPrices, *comparison.CompAvg)
		}
	}
	latestPullus := meanOrZero(pullusPrices)
	latestComp := meanOrZero(compPrices)
	premiumPct := 0.0
	if latestComp != 0 {
		premiumPct = parse.RoundTo((latestPullus-latestComp)/latestComp*100, 1)
	}

	pullusParts := []string{}
	compParts := []string{}
	for _, location := range locationDisplayOrder {
		row, surveyed := latestByLoc[location]
		if !surveyed {
			continue
		}
		comparison := row.ByProduct[ProductWholeChicken]
		if comparison.Pullus != nil {
			pullusParts = append(pullusParts, fmt.Sprintf("%s: ₦%s", location, humanize.Comma(int64(*comparison.Pullus))))
		}
		if comparison.CompAvg != nil {
			compParts = append(compParts, fmt.Sprintf("%s: ₦%s", location, humanize.Comma(int64(*comparison.CompAvg))))
		}
	}

	locations := make([]string, 0, len(latestByLoc))
	for location := range latestByLoc {
		locations = append(locations, location)
	}
	sort.Strings(locations)
	dateParts := make([]string, 0, len(locations))
	for _, location := range locations {
		dateParts = append(dateParts, fmt.Sprintf("%s: %s", location, latestByLoc[location].Date.Format("02 Jan")))
	}

	pricedNote := "Priced below competitors"
	if premiumPct > 0 {
		pricedNote = "Priced above competitors"
	}
	premiumColor := workbook.Green
	if premiumPct > 0 {
		premiumColor = workbook.Red
	}
	marketGap := ""
	if latestComp != 0 {
		marketGap = signedNaira(latestPullus - latestComp)
	}

	cards := []workbook.Card{
		{
			Accent: workbook.CardBlue, Label: "PULLUS WHOLE CHICKEN",
			Value: latestPullus, ValueFormat: workbook.FmtNaira,
			SubLabel: "Avg Across Locations", SubValue: strings.Join(pullusParts, " | "),
			SubValueColor: workbook.DarkText, SubValueSize: 9, SubValueBold: true,
			PeriodLabel: strings.Join(dateParts, " | "), PeriodSize: 7,
		},
		{
			Accent: workbook.CardOrange, Label: "COMPETITOR AVG WC",
			Value: latestComp, ValueFormat: workbook.FmtNaira,
			SubLabel: "Avg Across Locations", SubValue: strings.Join(compParts, " | "),
			SubValueColor: workbook.DarkText, SubValueSize: 9, SubValueBold: true,
			PeriodSize: 7,
		},
		{
			Accent: workbook.CardPurple, Label: "PULLUS vs MARKET",
			Value: pctString(premiumPct), ValueColor: premiumColor,
			SubLabel: pricedNote, SubValue: marketGap,
			SubValueColor: workbook.DarkText, SubValueSize: 9, SubValueBold: true,
			PeriodSize: 7,
		},
	}
	if e = workbook.RenderCards(file, SellingSheetName, 4, 3, cards); e != nil {
		return e
	}

	explainer := "Shows Pullus selling prices vs competitor averages per location and survey date. " +
		"Diff % = (Pullus - Competitor Avg) / Competitor Avg. Positive = Pullus priced higher."
	if e = workbook.RenderExplainer(file, SellingSheetName, 10, explainer, reportColumns); e != nil {
		return e
	}

	headers := []string{
		"Date", "Location",
		"Pullus WC", "Comp Avg WC", "WC Diff %",
		"Pullus Gzd", "Comp Avg Gzd", "Gzd Diff %",
		"Competitors",
	}
	if e = workbook.RenderHeader(file, SellingSheetName, sellingTableHeaderRow, headers); e != nil {
		return e
	}

	columnFormats := []string{
		"", "",
		workbook.FmtNaira, workbook.FmtNaira, workbook.FmtSignedDec1,
		workbook.FmtNaira, workbook.FmtNaira, workbook.FmtSignedDec1,
		"",
	}
	plainStyles, zebraStyles, e := workbook.TableColumnStyles(file, columnFormats)
	if e != nil {
		return e
	}

	dataStartRow := sellingTableHeaderRow + 1
	for rowIndex, row := range rows {
		wholeChicken := row.ByProduct[ProductWholeChicken]
		gizzard := row.ByProduct[ProductGizzard]
		values := []any{
			row.Date.Format("02 Jan 2006"),
			row.Location,
			nairaCell(wholeChicken.Pullus),
			nairaCell(wholeChicken.CompAvg),
			diffCell(wholeChicken.DiffPct),
			nairaCell(gizzard.Pullus),
			nairaCell(gizzard.CompAvg),
			diffCell(gizzard.DiffPct),
			row.CompBrands,
		}

		styles := plainStyles
		if rowIndex%2 == 0 {
			styles = zebraStyles
		}
		if e = workbook.RenderTableRow(file, SellingSheetName, dataStartRow+rowIndex, values, styles); e != nil {
			return e
		}
	}
	tl.Log(tl.Info1, palette.Blue, "Wrote %d rows of data", sellingTableHeaderRow+len(rows))

	// a positive differential means the own price is above the market,
	// flagged red on this sheet
	dataEndRow := dataStartRow + len(rows) - 1
	if e = workbook.SignConditionalFormat(file, SellingSheetName, workbook.RangeRef(5, dataStartRow, 5, dataEndRow), workbook.Red, workbook.Green); e != nil {
		return e
	}
	if e = workbook.SignConditionalFormat(file, SellingSheetName, workbook.RangeRef(8, dataStartRow, 8, dataEndRow), workbook.Red, workbook.Green); e != nil {
		return e
	}

	if e = workbook.SetColumnWidths(file, SellingSheetName, []float64{100, 85, 95, 110, 85, 95, 110, 85, 90}); e != nil {
		return e
	}
	heights := map[int]float64{1: 50, 2: 30, 3: 10, 4: 32, 5: 32, 6: 32, 7: 32, 8: 32, 9: 10, 10: 30, 11: 36}
	if e = workbook.SetRowHeights(file, SellingSheetName, heights); e != nil {
		return e
	}
	if e = workbook.FreezeRows(file, SellingSheetName, sellingTableHeaderRow); e != nil {
		return e
	}
	tl.Log(tl.Info1, palette.Blue, "Applied %s", "formatting")

	lowestPrice := 0.0
	haveLowest := false
	for _, row := range rows {
		comparison := row.ByProduct[ProductWholeChicken]
		for _, price := range []*float64{comparison.Pullus, comparison.CompAvg} {
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
		axisMinimum = workbook.AxisFloor(lowestPrice, 100, 200)
	}

	chartOptions := workbook.ChartOptions{
		Title:         "Pullus vs Competitor Avg — Whole Chicken",
		Width:         780,
		Height:        420,
		CategoriesRef: workbook.SeriesRef(SellingSheetName, 1, dataStartRow, dataEndRow),
		XAxisTitle:    "Date / Location",
		YAxisTitle:    "Price (₦)",
		YAxisMin:      &axisMinimum,
	}
	series := []workbook.Series{
		{Name: "Pullus WC", Values: workbook.SeriesRef(SellingSheetName, 3, dataStartRow, dataEndRow), Color: workbook.CardBlue},
		{Name: "Comp Avg WC", Values: workbook.SeriesRef(SellingSheetName, 4, dataStartRow, dataEndRow), Color: workbook.CardOrange},
	}
	if e = workbook.AddLineChart(file, SellingSheetName, workbook.CellRef(10, 4), chartOptions, series); e != nil {
		return e
	}
	tl.Log(tl.Info1, palette.Blue, "Created %s", "chart")

	tl.Log(
		tl.Notice, palette.GreenBold, "Competitor Selling Prices dashboard built: %d entries across %d locations",
		len(rows), len(latestByLoc),
	)
	return nil
}

// latestRowPerLocation keeps each location's newest survey day
func latestRowPerLocation(rows []SellingRow) map[string]SellingRow {
	latest := map[string]SellingRow{}
	for _, row := range rows {
		existing, seen := latest[row.Location]
		if !seen || row.Date.After(existing.Date) {
			latest[row.Location] = row
		}
	}
	return latest
}

func meanOrZero(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	sum := 0.0
	for _, value := range values {
		sum += value
	}
	return parse.RoundTo(sum/float64(len(values)), 0)
}

func pctString(value float64) string {
	if value > 0 {
		return fmt.Sprintf("+%.1f%%", value)
	}
	return fmt.Sprintf("%.1f%%", value)
}

// signedNaira keeps the plus sign on zero, matching the card framing
func signedNaira(value float64) string {
	sign := "+"
	if value < 0 {
		sign = "-"
	}
	return fmt.Sprintf("%s₦%s", sign, humanize.Comma(int64(math.Abs(value))))
}

func nairaCell(price *float64) any {
	if price == nil {
		return ""
	}
	return int(*price)
}

func diffCell(diff *float64) any {
	if diff == nil {
		return ""
	}
	return *diff
}
