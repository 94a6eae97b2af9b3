// Package workbook wraps the excelize backend: opening source workbooks
// from disk or over HTTP, sheet lifecycle in the dashboard file, and the
// shared styling and chart plumbing the report builders sit on.
package workbook

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/tuumbleweed/xerr"
)

/*
CellRef converts 1-based column/row coordinates to an A1 reference.
*/
func CellRef(column int, row int) string {
	name, refErr := excelize.CoordinatesToCellName(column, row)
	if refErr != nil {
		return ""
	}
	return name
}

/*
RangeRef builds an A1:B2 style range from 1-based coordinates.
*/
func RangeRef(startColumn int, startRow int, endColumn int, endRow int) string {
	return CellRef(startColumn, startRow) + ":" + CellRef(endColumn, endRow)
}

/*
SeriesRef builds an absolute single-column data range for chart series,
like 'Weekly Purchase'!$A$12:$A$20.
*/
func SeriesRef(sheet string, column int, startRow int, endRow int) string {
	columnName, refErr := excelize.ColumnNumberToName(column)
	if refErr != nil {
		return ""
	}
	return fmt.Sprintf("'%s'!$%s$%d:$%s$%d", sheet, columnName, startRow, columnName, endRow)
}

/*
WriteRow writes values left to right starting at the given 1-based
column/row.
*/
func WriteRow(file *excelize.File, sheet string, column int, row int, values []any) (e *xerr.Error) {
	writeErr := file.SetSheetRow(sheet, CellRef(column, row), &values)
	if writeErr != nil {
		return xerr.NewError(writeErr, "Unable to write row", fmt.Sprintf("%s row %d", sheet, row))
	}
	return nil
}
