package competitor

import (
	"strings"

	tl "github.com/tuumbleweed/tintlog/logger"
	"github.com/tuumbleweed/tintlog/palette"
	"github.com/tuumbleweed/xerr"

	"poultry-dashboard/src/pkg/workbook"
)

/*
FetchSellingRecords reads every configured survey tab from the selling
workbook and extracts the current-year records of each. Blank tab names
are skipped; a missing tab is an error.
*/
func FetchSellingRecords(workbookLocation string, tabs []string, year int, strict bool) (records []SellingRecord, e *xerr.Error) {
	file, e := workbook.Open(workbookLocation)
	if e != nil {
		return nil, e
	}
	defer func() { _ = file.Close() }()

	read := 0
	for _, tabName := range tabs {
		tabName = strings.TrimSpace(tabName)
		if tabName == "" {
			continue
		}
		rows, rowsErr := workbook.Rows(file, tabName)
		if rowsErr != nil {
			return nil, rowsErr
		}
		tabRecords, extractErr := ExtractSellingRecords(LocationName(tabName), rows, year, strict)
		if extractErr != nil {
			return nil, extractErr
		}
		records = append(records, tabRecords...)
		read += 1
	}
	tl.Log(tl.Info1, palette.Cyan, "Fetched %d records across %d tabs", len(records), read)
	return records, nil
}

/*
FetchBuyingRecords reads the buying survey tab and extracts its
current-year records.
*/
func FetchBuyingRecords(workbookLocation string, tab string, year int, strict bool) (records []BuyingRecord, e *xerr.Error) {
	file, e := workbook.Open(workbookLocation)
	if e != nil {
		return nil, e
	}
	defer func() { _ = file.Close() }()

	rows, e := workbook.Rows(file, tab)
	if e != nil {
		return nil, e
	}
	return ExtractBuyingRecords(rows, year, strict)
}
