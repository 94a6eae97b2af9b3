package workbook

import (
	"github.com/xuri/excelize/v2"

	"github.com/tuumbleweed/xerr"
)

/*
Card is one KPI block: five stacked rows (label, value, sub-label,
sub-value, period label), merged across the card's column span. Value may
be a number (formatted by ValueFormat) or a preformatted string.
*/
type Card struct {
	Accent        string
	Label         string
	Value         any
	ValueFormat   string
	ValueColor    string
	SubLabel      string
	SubValue      string
	SubValueColor string
	SubValueSize  float64
	SubValueBold  bool
	PeriodLabel   string
	PeriodSize    float64
}

/*
RenderTitle writes the banner and subtitle rows merged across the sheet's
column span.
*/
func RenderTitle(file *excelize.File, sheet string, title string, subtitle string, columns int) (e *xerr.Error) {
	titleStyle, e := TitleStyle(file)
	if e != nil {
		return e
	}
	subtitleStyle, e := SubtitleStyle(file)
	if e != nil {
		return e
	}

	if e = mergedCell(file, sheet, 1, 1, columns, title, titleStyle); e != nil {
		return e
	}
	return mergedCell(file, sheet, 2, 1, columns, subtitle, subtitleStyle)
}

/*
RenderCards lays three cards side by side, each spanning columnsPerCard
columns, starting at topRow.
*/
func RenderCards(file *excelize.File, sheet string, topRow int, columnsPerCard int, cards []Card) (e *xerr.Error) {
	for cardIndex, card := range cards {
		startColumn := cardIndex*columnsPerCard + 1
		endColumn := startColumn + columnsPerCard - 1

		rowSpecs := []struct {
			options CardCellOptions
			value   any
		}{
			{CardCellOptions{Bold: true, FontSize: 9, AccentTop: card.Accent}, card.Label},
			{CardCellOptions{Bold: true, FontSize: 22, FontColor: defaultColor(card.ValueColor, Navy), NumberFormat: card.ValueFormat}, card.Value},
			{CardCellOptions{FontSize: 8, FontColor: MutedInk}, card.SubLabel},
			{CardCellOptions{FontSize: defaultSize(card.SubValueSize, 8), FontColor: defaultColor(card.SubValueColor, MutedInk), Bold: card.SubValueBold, Wrap: true}, card.SubValue},
			{CardCellOptions{FontSize: defaultSize(card.PeriodSize, 8), FontColor: MutedInk, Bottom: true, Wrap: true}, card.PeriodLabel},
		}

		for rowOffset, spec := range rowSpecs {
			styleID, styleErr := CardCellStyle(file, spec.options)
			if styleErr != nil {
				return styleErr
			}
			row := topRow + rowOffset
			if e = MergeAcross(file, sheet, row, startColumn, endColumn); e != nil {
				return e
			}
			if e = setValue(file, sheet, startColumn, row, spec.value); e != nil {
				return e
			}
			if e = SetCellStyleRange(file, sheet, startColumn, row, endColumn, row, styleID); e != nil {
				return e
			}
		}
	}
	return nil
}

/*
RenderExplainer writes the methodology note merged across the sheet.
*/
func RenderExplainer(file *excelize.File, sheet string, row int, text string, columns int) (e *xerr.Error) {
	explainerStyle, e := ExplainerStyle(file)
	if e != nil {
		return e
	}
	return mergedCell(file, sheet, row, 1, columns, text, explainerStyle)
}

/*
RenderHeader writes the table header row with the header style.
*/
func RenderHeader(file *excelize.File, sheet string, row int, headers []string) (e *xerr.Error) {
	headerStyle, e := HeaderStyle(file)
	if e != nil {
		return e
	}

	values := make([]any, len(headers))
	for headerIndex, header := range headers {
		values[headerIndex] = header
	}
	if e = WriteRow(file, sheet, 1, row, values); e != nil {
		return e
	}
	return SetCellStyleRange(file, sheet, 1, row, len(headers), row, headerStyle)
}

/*
TableColumnStyles prebuilds the zebra and plain body styles for each table
column format, so the row loop only applies style IDs.
*/
func TableColumnStyles(file *excelize.File, formats []string) (plain []int, zebra []int, e *xerr.Error) {
	plain = make([]int, len(formats))
	zebra = make([]int, len(formats))
	for columnIndex, format := range formats {
		plain[columnIndex], e = DataCellStyle(file, false, format)
		if e != nil {
			return plain, zebra, e
		}
		zebra[columnIndex], e = DataCellStyle(file, true, format)
		if e != nil {
			return plain, zebra, e
		}
	}
	return plain, zebra, nil
}

/*
RenderTableRow writes one body row and applies the per-column styles.
*/
func RenderTableRow(file *excelize.File, sheet string, row int, values []any, styles []int) (e *xerr.Error) {
	if e = WriteRow(file, sheet, 1, row, values); e != nil {
		return e
	}
	for columnIndex := range values {
		if e = SetCellStyleRange(file, sheet, columnIndex+1, row, columnIndex+1, row, styles[columnIndex]); e != nil {
			return e
		}
	}
	return nil
}

func mergedCell(file *excelize.File, sheet string, row int, startColumn int, endColumn int, value any, styleID int) (e *xerr.Error) {
	if e = MergeAcross(file, sheet, row, startColumn, endColumn); e != nil {
		return e
	}
	if e = setValue(file, sheet, startColumn, row, value); e != nil {
		return e
	}
	return SetCellStyleRange(file, sheet, startColumn, row, endColumn, row, styleID)
}

func setValue(file *excelize.File, sheet string, column int, row int, value any) (e *xerr.Error) {
	cell := CellRef(column, row)
	valueErr := file.SetCellValue(sheet, cell, value)
	if valueErr != nil {
		return xerr.NewError(valueErr, "Unable to set cell value", cell)
	}
	return nil
}

func defaultColor(color string, fallback string) string {
	if color == "" {
		return fallback
	}
	return color
}

func defaultSize(size float64, fallback float64) float64 {
	if size == 0 {
		return fallback
	}
	return size
}
