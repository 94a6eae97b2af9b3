package docprice

import (
	"fmt"
	"math"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/xuri/excelize/v2"

	tl "github.com/tuumbleweed/tintlog/logger"
	"github.com/tuumbleweed/tintlog/palette"
	"github.com/tuumbleweed/xerr"

	"poultry-dashboard/src/pkg/workbook"
)

// SheetName is the dashboard sheet this report renders into.
const SheetName = "DOC Price Trends"

const (
	reportColumns  = 9
	tableHeaderRow = 11
)

/*
Render rebuilds the DOC price sheet: title block, the latest/high/low
price cards, the weekly table, and the price trend line chart.
*/
func Render(file *excelize.File, weeks []WeekRow, now time.Time) (e *xerr.Error) {
	if len(weeks) == 0 {
		return nil
	}

	if e = workbook.ResetSheet(file, SheetName); e != nil {
		return e
	}

	latest := weeks[len(weeks)-1]

	subtitle := fmt.Sprintf(
		"Data range: %s - %s  |  Last updated: %s",
		weeks[0].Start.Format("02 Jan 2006"),
		latest.End.Format("02 Jan 2006"),
		now.Format("02 Jan 2006 03:04 PM"),
	)
	if e = workbook.RenderTitle(file, SheetName, "PULLUS DOC PRICE TRENDS", subtitle, reportColumns); e != nil {
		return e
	}

	ytdHigh, ytdLow := ytdExtremes(weeks)

	cards := []workbook.Card{
		{
			Accent: workbook.CardBlue, Label: "LATEST AVG PRICE",
			Value: latest.AvgPrice, ValueFormat: workbook.FmtNaira,
			SubLabel: "WoW Change",
			SubValue: fmt.Sprintf("%s (%s)", absWowString(latest.WowAbs), wowString(latest.WowPct)),
			SubValueColor: wowColor(latest.WowPct), SubValueSize: 12, SubValueBold: true,
			PeriodLabel: fmt.Sprintf("Week %d, %d", latest.Week, latest.Year),
		},
		{
			Accent: workbook.CardOrange, Label: "YTD HIGH",
			Value: ytdHigh.MaxPrice, ValueFormat: workbook.FmtNaira,
			SubLabel: fmt.Sprintf("%d Maximum", now.Year()),
			SubValue: fmt.Sprintf("Spread: ₦%s", humanize.Comma(int64(ytdHigh.MaxPrice-ytdLow.MinPrice))),
			SubValueColor: workbook.DarkText, SubValueSize: 12, SubValueBold: true,
			PeriodLabel: fmt.Sprintf("Week %d, %d", ytdHigh.Week, ytdHigh.Year),
		},
		{
			Accent: workbook.CardPurple, Label: "YTD LOW",
			Value: ytdLow.MinPrice, ValueFormat: workbook.FmtNaira,
			SubLabel: fmt.Sprintf("%d Minimum", now.Year()),
			SubValue: fmt.Sprintf("W%d (%s)", ytdLow.Week, ytdLow.Start.Format("02 Jan")),
			SubValueColor: workbook.DarkText, SubValueSize: 12, SubValueBold: true,
			PeriodLabel: fmt.Sprintf("Week %d, %d", ytdLow.Week, ytdLow.Year),
		},
	}
	if e = workbook.RenderCards(file, SheetName, 4, 3, cards); e != nil {
		return e
	}

	explainer := "Prices are averaged across all reporting suppliers per date, then aggregated weekly. " +
		"Spread = Max - Min supplier price. WoW = week-over-week change in average price."
	if e = workbook.RenderExplainer(file, SheetName, 10, explainer, reportColumns); e != nil {
		return e
	}

	headers := []string{
		"Week", "Date Range", "Days",
		"Avg Price", "Min Price", "Max Price",
		"Spread", "WoW Change", "WoW %",
	}
	if e = workbook.RenderHeader(file, SheetName, tableHeaderRow, headers); e != nil {
		return e
	}

	columnFormats := []string{
		"", "", workbook.FmtInt,
		workbook.FmtNaira, workbook.FmtNaira, workbook.FmtNaira, workbook.FmtNaira,
		workbook.FmtSignedNaira, workbook.FmtSignedDec1,
	}
	plainStyles, zebraStyles, e := workbook.TableColumnStyles(file, columnFormats)
	if e != nil {
		return e
	}

	dataStartRow := tableHeaderRow + 1
	for weekIndex, week := range weeks {
		dateRange := fmt.Sprintf("%s - %s", week.Start.Format("02 Jan"), week.End.Format("02 Jan 2006"))
		values := []any{
			fmt.Sprintf("W%d", week.Week),
			dateRange,
			week.Entries,
			int(week.AvgPrice),
			int(week.MinPrice),
			int(week.MaxPrice),
			int(week.Spread),
			absWowCell(week.WowAbs),
			wowCell(week.WowPct),
		}

		styles := plainStyles
		if weekIndex%2 == 0 {
			styles = zebraStyles
		}
		if e = workbook.RenderTableRow(file, SheetName, dataStartRow+weekIndex, values, styles); e != nil {
			return e
		}
	}
	tl.Log(tl.Info1, palette.Blue, "Wrote %d rows of data", tableHeaderRow+len(weeks))

	dataEndRow := dataStartRow + len(weeks) - 1
	if e = workbook.SignConditionalFormat(file, SheetName, workbook.RangeRef(8, dataStartRow, 9, dataEndRow), workbook.Green, workbook.Red); e != nil {
		return e
	}

	if e = workbook.SetColumnWidths(file, SheetName, []float64{70, 180, 60, 95, 95, 95, 85, 100, 85}); e != nil {
		return e
	}
	heights := map[int]float64{1: 50, 2: 30, 3: 10, 4: 32, 5: 32, 6: 32, 7: 32, 8: 32, 9: 10, 10: 30, 11: 36}
	if e = workbook.SetRowHeights(file, SheetName, heights); e != nil {
		return e
	}
	if e = workbook.FreezeRows(file, SheetName, tableHeaderRow); e != nil {
		return e
	}
	tl.Log(tl.Info1, palette.Blue, "Applied %s", "formatting")

	axisMinimum := workbook.AxisFloor(ytdLow.MinPrice, 100, 100)
	chartOptions := workbook.ChartOptions{
		Title:         "DOC Price Trend (Weekly Avg)",
		Width:         780,
		Height:        420,
		CategoriesRef: workbook.SeriesRef(SheetName, 1, dataStartRow, dataEndRow),
		XAxisTitle:    "Week",
		YAxisTitle:    "Price (₦)",
		YAxisMin:      &axisMinimum,
	}
	series := []workbook.Series{
		{Name: "Avg Price", Values: workbook.SeriesRef(SheetName, 4, dataStartRow, dataEndRow), Color: workbook.CardBlue},
		{Name: "Min Price", Values: workbook.SeriesRef(SheetName, 5, dataStartRow, dataEndRow), Color: workbook.TrendLine, Width: 1},
		{Name: "Max Price", Values: workbook.SeriesRef(SheetName, 6, dataStartRow, dataEndRow), Color: workbook.TrendLine, Width: 1},
	}
	if e = workbook.AddLineChart(file, SheetName, workbook.CellRef(10, 4), chartOptions, series); e != nil {
		return e
	}
	tl.Log(tl.Info1, palette.Blue, "Created %s", "chart")

	tl.Log(tl.Notice, palette.GreenBold, "DOC Price Trends dashboard built: %d weeks", len(weeks))
	tl.Log(tl.Info, palette.Green, "Latest: W%d avg price %d", latest.Week, int(latest.AvgPrice))
	return nil
}

func wowString(wow *float64) string {
	if wow == nil {
		return "N/A"
	}
	if *wow > 0 {
		return fmt.Sprintf("+%.1f%%", *wow)
	}
	return fmt.Sprintf("%.1f%%", *wow)
}

/*
absWowString renders the naira move with an explicit sign, "N/A" when
there is no prior week.
*/
func absWowString(wow *float64) string {
	if wow == nil {
		return "N/A"
	}
	sign := ""
	if *wow > 0 {
		sign = "+"
	} else if *wow < 0 {
		sign = "-"
	}
	return fmt.Sprintf("%s₦%s", sign, humanize.Comma(int64(math.Abs(*wow))))
}

// a missing reading stays red, same as a decline
func wowColor(wow *float64) string {
	if wow != nil && *wow > 0 {
		return workbook.Green
	}
	return workbook.Red
}

func wowCell(wow *float64) any {
	if wow == nil {
		return ""
	}
	return *wow
}

func absWowCell(wow *float64) any {
	if wow == nil {
		return ""
	}
	return int(*wow)
}

// the first week holding an extreme owns its card label
func ytdExtremes(weeks []WeekRow) (high WeekRow, low WeekRow) {
	high = weeks[0]
	low = weeks[0]
	for _, week := range weeks {
		if week.MaxPrice > high.MaxPrice {
			high = week
		}
		if week.MinPrice < low.MinPrice {
			low = week
		}
	}
	return high, low
}
