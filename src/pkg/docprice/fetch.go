package docprice

import (
	tl "github.com/tuumbleweed/tintlog/logger"
	"github.com/tuumbleweed/tintlog/palette"
	"github.com/tuumbleweed/xerr"

	"poultry-dashboard/src/pkg/workbook"
)

/*
FetchRows opens the quote workbook and returns the price tab's data
rows, header stripped. Every header column after the date is one
supplier.
*/
func FetchRows(location string, tab string) (data [][]string, e *xerr.Error) {
	file, e := workbook.Open(location)
	if e != nil {
		return nil, e
	}
	defer func() { _ = file.Close() }()

	rows, e := workbook.Rows(file, tab)
	if e != nil {
		return nil, e
	}
	if len(rows) == 0 {
		tl.Log(tl.Warning, palette.PurpleBright, "Tab '%s' is empty", tab)
		return nil, nil
	}

	suppliers := 0
	if len(rows[0]) > 0 {
		suppliers = len(rows[0]) - 1
	}
	data = rows[1:]
	tl.Log(tl.Info1, palette.Cyan, "Fetched %d price entries, %d suppliers", len(data), suppliers)
	return data, nil
}
