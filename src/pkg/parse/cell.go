package parse

/*
Cell returns the cell at index, or "" when the row is shorter. The
workbook backend trims trailing empty cells, so rows come back ragged.
*/
func Cell(row []string, index int) string {
	if index < 0 || index >= len(row) {
		return ""
	}
	return row[index]
}
