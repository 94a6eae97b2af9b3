package workbook

import (
	"fmt"
	"math"

	"github.com/xuri/excelize/v2"

	"github.com/tuumbleweed/xerr"
)

/*
Series describes one plotted series: its legend name, the absolute value
range, the line or fill color, and an optional thinner line width for
context series (min/max bands).
*/
type Series struct {
	Name   string
	Values string
	Color  string
	Width  float64
}

/*
ChartOptions carries the shared chart frame: title, size, the category
range, axis titles, and an optional fixed value-axis minimum.
*/
type ChartOptions struct {
	Title            string
	Width            uint
	Height           uint
	CategoriesRef    string
	XAxisTitle       string
	YAxisTitle       string
	SecondYAxisTitle string
	YAxisMin         *float64
}

/*
AddLineChart draws a plain line chart with one or more series.
*/
func AddLineChart(file *excelize.File, sheet string, anchorCell string, options ChartOptions, series []Series) (e *xerr.Error) {
	chart := &excelize.Chart{
		Type:      excelize.Line,
		Series:    buildSeries(options.CategoriesRef, series),
		Title:     richText(options.Title),
		Dimension: excelize.ChartDimension{Width: options.Width, Height: options.Height},
		Legend:    excelize.ChartLegend{Position: "bottom"},
		XAxis:     excelize.ChartAxis{Title: richText(options.XAxisTitle)},
		YAxis:     excelize.ChartAxis{Minimum: options.YAxisMin, Title: richText(options.YAxisTitle)},
	}

	chartErr := file.AddChart(sheet, anchorCell, chart)
	if chartErr != nil {
		return xerr.NewError(chartErr, "Unable to add line chart", fmt.Sprintf("%s at %s", sheet, anchorCell))
	}
	return nil
}

/*
AddComboChart draws a column series with a line series on top. When
secondaryAxis is set the line series gets its own value axis on the right.
*/
func AddComboChart(file *excelize.File, sheet string, anchorCell string, options ChartOptions, columnSeries Series, lineSeries Series, secondaryAxis bool) (e *xerr.Error) {
	columnChart := &excelize.Chart{
		Type:      excelize.Col,
		Series:    buildSeries(options.CategoriesRef, []Series{columnSeries}),
		Title:     richText(options.Title),
		Dimension: excelize.ChartDimension{Width: options.Width, Height: options.Height},
		Legend:    excelize.ChartLegend{Position: "bottom"},
		XAxis:     excelize.ChartAxis{Title: richText(options.XAxisTitle)},
		YAxis:     excelize.ChartAxis{Minimum: options.YAxisMin, Title: richText(options.YAxisTitle)},
	}
	lineChart := &excelize.Chart{
		Type:   excelize.Line,
		Series: buildSeries(options.CategoriesRef, []Series{lineSeries}),
		YAxis:  excelize.ChartAxis{Secondary: secondaryAxis, Title: richText(options.SecondYAxisTitle)},
	}

	chartErr := file.AddChart(sheet, anchorCell, columnChart, lineChart)
	if chartErr != nil {
		return xerr.NewError(chartErr, "Unable to add combo chart", fmt.Sprintf("%s at %s", sheet, anchorCell))
	}
	return nil
}

/*
AxisFloor rounds a data minimum down to a clean step and backs off one pad
below it, so the value axis starts under the lowest point.
*/
func AxisFloor(minimum float64, step float64, pad float64) float64 {
	return math.Floor(minimum/step)*step - pad
}

func buildSeries(categoriesRef string, series []Series) []excelize.ChartSeries {
	chartSeries := make([]excelize.ChartSeries, 0, len(series))
	for _, entry := range series {
		chartSeries = append(chartSeries, excelize.ChartSeries{
			Name:       entry.Name,
			Categories: categoriesRef,
			Values:     entry.Values,
			Fill:       excelize.Fill{Type: "pattern", Color: []string{entry.Color}, Pattern: 1},
			Line:       excelize.ChartLine{Width: entry.Width},
			Marker:     excelize.ChartMarker{Symbol: "none"},
		})
	}
	return chartSeries
}

func richText(text string) []excelize.RichTextRun {
	if text == "" {
		return nil
	}
	return []excelize.RichTextRun{{Text: text}}
}
