package purchase

import (
	"fmt"
	"time"

	"github.com/xuri/excelize/v2"

	tl "github.com/tuumbleweed/tintlog/logger"
	"github.com/tuumbleweed/tintlog/palette"
	"github.com/tuumbleweed/xerr"

	"poultry-dashboard/src/pkg/parse"
	"poultry-dashboard/src/pkg/workbook"
)

// SheetName is the dashboard sheet this report renders into.
const SheetName = "Weekly Purchase"

const (
	reportColumns  = 10
	tableHeaderRow = 11
)

/*
Render rebuilds the weekly purchase sheet: title block, the three YTD
cards with their daily-average WoW readings, the weekly table, and the
birds/weight combo chart.
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
	if e = workbook.RenderTitle(file, SheetName, "PULLUS WEEKLY PURCHASE DASHBOARD", subtitle, reportColumns); e != nil {
		return e
	}

	ytdBirds := 0
	ytdChickenKg := 0.0
	ytdGizzardKg := 0.0
	for _, week := range weeks {
		ytdBirds += week.TotalBirds
		ytdChickenKg += week.ChickenKg
		ytdGizzardKg += week.GizzardKg
	}

	birdsWoW := cardWoW(weeks, func(week WeekRow) float64 { return float64(week.TotalBirds) })
	chickenWoW := cardWoW(weeks, func(week WeekRow) float64 { return week.ChickenKg })
	gizzardWoW := cardWoW(weeks, func(week WeekRow) float64 { return week.GizzardKg })

	latestLabel := fmt.Sprintf("Week %d, %d (%d days)", latest.Week, latest.Year, latest.PurchaseDays)
	cards := []workbook.Card{
		{
			Accent: workbook.CardBlue, Label: "TOTAL BIRDS (YTD)",
			Value: ytdBirds, ValueFormat: workbook.FmtInt,
			SubLabel: "Avg/Day WoW", SubValue: wowString(birdsWoW),
			SubValueColor: wowColor(birdsWoW), SubValueSize: 14, SubValueBold: true,
			PeriodLabel: latestLabel,
		},
		{
			Accent: workbook.CardOrange, Label: "TOTAL CHICKEN WT (YTD)",
			Value: parse.RoundTo(ytdChickenKg, 2), ValueFormat: workbook.FmtKg,
			SubLabel: "Avg/Day WoW", SubValue: wowString(chickenWoW),
			SubValueColor: wowColor(chickenWoW), SubValueSize: 14, SubValueBold: true,
			PeriodLabel: latestLabel,
		},
		{
			Accent: workbook.CardPurple, Label: "TOTAL GIZZARD WT (YTD)",
			Value: parse.RoundTo(ytdGizzardKg, 2), ValueFormat: workbook.FmtKg,
			SubLabel: "Avg/Day WoW", SubValue: wowString(gizzardWoW),
			SubValueColor: wowColor(gizzardWoW), SubValueSize: 14, SubValueBold: true,
			PeriodLabel: latestLabel,
		},
	}
	if e = workbook.RenderCards(file, SheetName, 4, 3, cards); e != nil {
		return e
	}

	explainer := "WoW % = Week-over-Week change based on daily averages (total / purchase days), not raw totals. " +
		"Weight WoW % uses combined chicken + gizzard weight."
	if e = workbook.RenderExplainer(file, SheetName, 10, explainer, reportColumns); e != nil {
		return e
	}

	headers := []string{
		"Week", "Date Range", "Purchase Days", "Total Birds",
		"Chicken Wt (kg)", "Gizzard Wt (kg)", "Total Wt (kg)",
		"Avg Birds/Day", "Birds Avg/Day WoW %", "Weight Avg/Day WoW %",
	}
	if e = workbook.RenderHeader(file, SheetName, tableHeaderRow, headers); e != nil {
		return e
	}

	columnFormats := []string{
		"", "", workbook.FmtInt, workbook.FmtInt,
		workbook.FmtDec2, workbook.FmtDec2, workbook.FmtDec2,
		workbook.FmtDec1, workbook.FmtSignedDec1, workbook.FmtSignedDec1,
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
			week.PurchaseDays,
			week.TotalBirds,
			week.ChickenKg,
			week.GizzardKg,
			week.TotalKg,
			week.AvgBirdsPerDay,
			wowCell(week.BirdsWoW),
			wowCell(week.WeightWoW),
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
	if e = workbook.SignConditionalFormat(file, SheetName, workbook.RangeRef(9, dataStartRow, 10, dataEndRow), workbook.Green, workbook.Red); e != nil {
		return e
	}

	if e = workbook.SetColumnWidths(file, SheetName, []float64{70, 180, 70, 90, 120, 120, 110, 105, 120, 130}); e != nil {
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

	chartOptions := workbook.ChartOptions{
		Title:            "Weekly Birds & Chicken Weight",
		Width:            720,
		Height:           420,
		CategoriesRef:    workbook.SeriesRef(SheetName, 1, dataStartRow, dataEndRow),
		XAxisTitle:       "Week",
		YAxisTitle:       "Birds",
		SecondYAxisTitle: "Chicken Weight (kg)",
	}
	columnSeries := workbook.Series{
		Name:   "Total Birds",
		Values: workbook.SeriesRef(SheetName, 4, dataStartRow, dataEndRow),
		Color:  workbook.CardBlue,
	}
	lineSeries := workbook.Series{
		Name:   "Chicken Wt (kg)",
		Values: workbook.SeriesRef(SheetName, 5, dataStartRow, dataEndRow),
		Color:  workbook.CardOrange,
	}
	if e = workbook.AddComboChart(file, SheetName, workbook.CellRef(11, 4), chartOptions, columnSeries, lineSeries, true); e != nil {
		return e
	}
	tl.Log(tl.Info1, palette.Blue, "Created %s", "chart")

	tl.Log(tl.Notice, palette.GreenBold, "Weekly Purchase dashboard built: %d weeks", len(weeks))
	tl.Log(
		tl.Info, palette.Green, "Latest: W%d (%s - %s)",
		latest.Week, latest.Start.Format("02 Jan"), latest.End.Format("02 Jan 2006"),
	)
	return nil
}

/*
cardWoW compares the latest and prior week's per-day average of one raw
total. nil when there is no prior week or a denominator is zero.
*/
func cardWoW(weeks []WeekRow, total func(WeekRow) float64) *float64 {
	if len(weeks) < 2 {
		return nil
	}
	latest := weeks[len(weeks)-1]
	previous := weeks[len(weeks)-2]
	if latest.PurchaseDays == 0 || previous.PurchaseDays == 0 {
		return nil
	}

	currentAvg := total(latest) / float64(latest.PurchaseDays)
	previousAvg := total(previous) / float64(previous.PurchaseDays)
	return wowPct(currentAvg, previousAvg)
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
