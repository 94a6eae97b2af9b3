package workbook

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/tuumbleweed/xerr"
)

// report palette, shared by all dashboard sheets
const (
	Navy       = "1B2A4A"
	Teal       = "2E86AB"
	Green      = "27AE60"
	Red        = "E74C3C"
	LightBg    = "F8F9FA"
	White      = "FFFFFF"
	DarkText   = "2C3E50"
	CardBlue   = "3498DB"
	CardOrange = "E67E22"
	CardPurple = "9B59B6"

	CardBorder   = "DEE2E6"
	SubtitleInk  = "BFC7D1"
	MutedInk     = "999999"
	FaintInk     = "808080"
	BannerBg     = "FFF3CD"
	BannerBorder = "FFECB5"
	TrendLine    = "BDC3C7"
)

// number format patterns used across the report tables and cards
const (
	FmtInt         = "#,##0"
	FmtDec1        = "#,##0.0"
	FmtDec2        = "#,##0.00"
	FmtKg          = "#,##0.00\" kg\""
	FmtSignedDec1  = "+#,##0.0;-#,##0.0;\"--\""
	FmtNaira       = "₦#,##0"
	FmtSignedNaira = "+₦#,##0;-₦#,##0;\"--\""
)

/*
TitleStyle is the sheet-wide banner row.
*/
func TitleStyle(file *excelize.File) (styleID int, e *xerr.Error) {
	return newStyle(file, &excelize.Style{
		Font:      &excelize.Font{Bold: true, Size: 18, Color: White},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{Navy}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
	})
}

/*
SubtitleStyle is the data-range and last-updated line under the title.
*/
func SubtitleStyle(file *excelize.File) (styleID int, e *xerr.Error) {
	return newStyle(file, &excelize.Style{
		Font:      &excelize.Font{Size: 10, Color: SubtitleInk},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{Navy}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
	})
}

/*
CardCellOptions selects the look of one merged row inside a KPI card.
AccentTop opens the card with a thick colored rule; Bottom closes it.
*/
type CardCellOptions struct {
	FontColor    string
	FontSize     float64
	Bold         bool
	Wrap         bool
	NumberFormat string
	AccentTop    string
	Bottom       bool
}

/*
CardCellStyle builds the style for one of the five stacked rows of a card.
*/
func CardCellStyle(file *excelize.File, options CardCellOptions) (styleID int, e *xerr.Error) {
	borders := []excelize.Border{
		{Type: "left", Color: CardBorder, Style: 1},
		{Type: "right", Color: CardBorder, Style: 1},
	}
	if options.AccentTop != "" {
		borders = append(borders, excelize.Border{Type: "top", Color: options.AccentTop, Style: 5})
	}
	if options.Bottom {
		borders = append(borders, excelize.Border{Type: "bottom", Color: CardBorder, Style: 1})
	}

	fontColor := options.FontColor
	if fontColor == "" {
		fontColor = DarkText
	}
	fontSize := options.FontSize
	if fontSize == 0 {
		fontSize = 10
	}

	style := &excelize.Style{
		Font:      &excelize.Font{Bold: options.Bold, Size: fontSize, Color: fontColor},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{White}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center", WrapText: options.Wrap},
		Border:    borders,
	}
	if options.NumberFormat != "" {
		customNumFmt := options.NumberFormat
		style.CustomNumFmt = &customNumFmt
	}
	return newStyle(file, style)
}

/*
ExplainerStyle is the small methodology note above the table.
*/
func ExplainerStyle(file *excelize.File) (styleID int, e *xerr.Error) {
	return newStyle(file, &excelize.Style{
		Font:      &excelize.Font{Size: 8, Color: FaintInk},
		Alignment: &excelize.Alignment{Horizontal: "left", Vertical: "center", WrapText: true},
	})
}

/*
HeaderStyle is the table header row.
*/
func HeaderStyle(file *excelize.File) (styleID int, e *xerr.Error) {
	return newStyle(file, &excelize.Style{
		Font:      &excelize.Font{Bold: true, Size: 10, Color: White},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{Teal}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center", WrapText: true},
		Border:    allBorders(),
	})
}

/*
DataCellStyle is one table body cell. Zebra striping alternates the fill;
the number format is per column.
*/
func DataCellStyle(file *excelize.File, zebra bool, numberFormat string) (styleID int, e *xerr.Error) {
	fill := White
	if zebra {
		fill = LightBg
	}

	style := &excelize.Style{
		Font:      &excelize.Font{Size: 10, Color: DarkText},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{fill}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
		Border:    allBorders(),
	}
	if numberFormat != "" {
		customNumFmt := numberFormat
		style.CustomNumFmt = &customNumFmt
	}
	return newStyle(file, style)
}

/*
BannerCellOptions selects the look of one cell in the yellow callout
block (live-birds market note).
*/
type BannerCellOptions struct {
	Bold      bool
	FontSize  float64
	FontColor string
	LeftAlign bool
}

func BannerStyle(file *excelize.File, options BannerCellOptions) (styleID int, e *xerr.Error) {
	fontColor := options.FontColor
	if fontColor == "" {
		fontColor = DarkText
	}
	fontSize := options.FontSize
	if fontSize == 0 {
		fontSize = 10
	}
	horizontal := "center"
	if options.LeftAlign {
		horizontal = "left"
	}

	return newStyle(file, &excelize.Style{
		Font:      &excelize.Font{Bold: options.Bold, Size: fontSize, Color: fontColor},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{BannerBg}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: horizontal, Vertical: "center"},
		Border: []excelize.Border{
			{Type: "top", Color: BannerBorder, Style: 1},
			{Type: "bottom", Color: BannerBorder, Style: 1},
			{Type: "left", Color: BannerBorder, Style: 1},
			{Type: "right", Color: BannerBorder, Style: 1},
		},
	})
}

/*
SignConditionalFormat colors a numeric range by sign. Which sign gets
green and which red is the caller's decision; selling and buying reports
read the same sign differently.
*/
func SignConditionalFormat(file *excelize.File, sheet string, rangeRef string, positiveColor string, negativeColor string) (e *xerr.Error) {
	positiveStyle, styleErr := file.NewConditionalStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Color: positiveColor},
	})
	if styleErr != nil {
		return xerr.NewError(styleErr, "Unable to create conditional style", positiveColor)
	}
	negativeStyle, styleErr := file.NewConditionalStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Color: negativeColor},
	})
	if styleErr != nil {
		return xerr.NewError(styleErr, "Unable to create conditional style", negativeColor)
	}

	formatErr := file.SetConditionalFormat(sheet, rangeRef, []excelize.ConditionalFormatOptions{
		{Type: "cell", Criteria: ">", Value: "0", Format: &positiveStyle},
		{Type: "cell", Criteria: "<", Value: "0", Format: &negativeStyle},
	})
	if formatErr != nil {
		return xerr.NewError(formatErr, "Unable to set conditional format", fmt.Sprintf("%s %s", sheet, rangeRef))
	}
	return nil
}

/*
SetCellStyleRange applies a style across a rectangular range.
*/
func SetCellStyleRange(file *excelize.File, sheet string, startColumn int, startRow int, endColumn int, endRow int, styleID int) (e *xerr.Error) {
	styleErr := file.SetCellStyle(sheet, CellRef(startColumn, startRow), CellRef(endColumn, endRow), styleID)
	if styleErr != nil {
		return xerr.NewError(styleErr, "Unable to apply cell style", fmt.Sprintf("%s %s", sheet, RangeRef(startColumn, startRow, endColumn, endRow)))
	}
	return nil
}

/*
MergeAcross merges one row's cells between two 1-based columns.
*/
func MergeAcross(file *excelize.File, sheet string, row int, startColumn int, endColumn int) (e *xerr.Error) {
	mergeErr := file.MergeCell(sheet, CellRef(startColumn, row), CellRef(endColumn, row))
	if mergeErr != nil {
		return xerr.NewError(mergeErr, "Unable to merge cells", fmt.Sprintf("%s row %d", sheet, row))
	}
	return nil
}

/*
SetColumnWidths applies per-column widths starting at column A. Widths
are given in pixels and converted to character units.
*/
func SetColumnWidths(file *excelize.File, sheet string, pixelWidths []float64) (e *xerr.Error) {
	for columnIndex, pixels := range pixelWidths {
		columnName, nameErr := excelize.ColumnNumberToName(columnIndex + 1)
		if nameErr != nil {
			return xerr.NewError(nameErr, "Unable to resolve column name", fmt.Sprintf("column %d", columnIndex+1))
		}
		widthErr := file.SetColWidth(sheet, columnName, columnName, pixels/7.0)
		if widthErr != nil {
			return xerr.NewError(widthErr, "Unable to set column width", fmt.Sprintf("%s column %s", sheet, columnName))
		}
	}
	return nil
}

/*
SetRowHeights applies the given 1-based row heights. Heights are given in
pixels and converted to points.
*/
func SetRowHeights(file *excelize.File, sheet string, pixelHeights map[int]float64) (e *xerr.Error) {
	for row, pixels := range pixelHeights {
		heightErr := file.SetRowHeight(sheet, row, pixels*0.75)
		if heightErr != nil {
			return xerr.NewError(heightErr, "Unable to set row height", fmt.Sprintf("%s row %d", sheet, row))
		}
	}
	return nil
}

/*
FreezeRows freezes everything through the given row so the cards and the
table header stay put while scrolling the data.
*/
func FreezeRows(file *excelize.File, sheet string, rowCount int) (e *xerr.Error) {
	topLeft := CellRef(1, rowCount+1)
	panesErr := file.SetPanes(sheet, &excelize.Panes{
		Freeze:      true,
		YSplit:      rowCount,
		TopLeftCell: topLeft,
		ActivePane:  "bottomLeft",
		Selection: []excelize.Selection{
			{SQRef: topLeft, ActiveCell: topLeft, Pane: "bottomLeft"},
		},
	})
	if panesErr != nil {
		return xerr.NewError(panesErr, "Unable to freeze header rows", sheet)
	}
	return nil
}

func allBorders() []excelize.Border {
	return []excelize.Border{
		{Type: "top", Color: CardBorder, Style: 1},
		{Type: "bottom", Color: CardBorder, Style: 1},
		{Type: "left", Color: CardBorder, Style: 1},
		{Type: "right", Color: CardBorder, Style: 1},
	}
}

func newStyle(file *excelize.File, style *excelize.Style) (styleID int, e *xerr.Error) {
	styleID, styleErr := file.NewStyle(style)
	if styleErr != nil {
		return styleID, xerr.NewError(styleErr, "Unable to create style", "workbook style")
	}
	return styleID, nil
}
