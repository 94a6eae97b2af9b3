package purchase

import (
	tl "github.com/tuumbleweed/tintlog/logger"
	"github.com/tuumbleweed/tintlog/palette"
	"github.com/tuumbleweed/xerr"

	"poultry-dashboard/src/pkg/workbook"
)

/*
FetchRows opens the purchase workbook and returns the entry tab's data
rows, header stripped.
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

	data = rows[1:]
	tl.Log(tl.Info1, palette.Cyan, "Fetched %d rows, columns: %v", len(data), rows[0])
	return data, nil
}
