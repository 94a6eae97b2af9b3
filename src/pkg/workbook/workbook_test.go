package workbook

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func TestCellRef(t *testing.T) {
	assert.Equal(t, "A1", CellRef(1, 1))
	assert.Equal(t, "J4", CellRef(10, 4))
	assert.Equal(t, "AA2", CellRef(27, 2))
	assert.Equal(t, "", CellRef(0, 1))
}

func TestRangeRef(t *testing.T) {
	assert.Equal(t, "A12:I20", RangeRef(1, 12, 9, 20))
}

func TestSeriesRef(t *testing.T) {
	assert.Equal(t, "'Weekly Purchase'!$C$12:$C$20", SeriesRef("Weekly Purchase", 3, 12, 20))
}

func TestAxisFloor(t *testing.T) {
	assert.Equal(t, 5200.0, AxisFloor(5437, 100, 200))
	assert.Equal(t, 2500.0, AxisFloor(3480, 500, 500))
	assert.Equal(t, 1000.0, AxisFloor(1000, 100, 0))
}

func TestEnsureSheetClaimsDefaultSheet(t *testing.T) {
	file := excelize.NewFile()

	index, e := EnsureSheet(file, "Weekly Purchase")
	require.Nil(t, e)
	assert.Equal(t, 0, index)

	index, e = EnsureSheet(file, "DOC Price Trends")
	require.Nil(t, e)
	assert.Equal(t, 1, index)

	index, e = EnsureSheet(file, "Weekly Purchase")
	require.Nil(t, e)
	assert.Equal(t, 0, index)

	assert.Equal(t, []string{"Weekly Purchase", "DOC Price Trends"}, file.GetSheetList())
}

func TestResetSheetClearsValuesAndKeepsPosition(t *testing.T) {
	file := excelize.NewFile()
	for _, title := range []string{"First", "Second", "Third"} {
		_, e := EnsureSheet(file, title)
		require.Nil(t, e)
	}
	require.NoError(t, file.SetCellValue("Second", "A1", "stale"))

	e := ResetSheet(file, "Second")
	require.Nil(t, e)

	value, readErr := file.GetCellValue("Second", "A1")
	require.NoError(t, readErr)
	assert.Equal(t, "", value)
	assert.Equal(t, []string{"First", "Second", "Third"}, file.GetSheetList())
}

func TestResetSheetCreatesMissingSheet(t *testing.T) {
	file := excelize.NewFile()

	e := ResetSheet(file, "Weekly Purchase")
	require.Nil(t, e)
	assert.Equal(t, []string{"Weekly Purchase"}, file.GetSheetList())
}

func TestOpenDashboardStartsFreshWhenMissing(t *testing.T) {
	path := filepath.Join(t.TempDir(), "dashboard.xlsx")

	file, e := OpenDashboard(path)
	require.Nil(t, e)
	assert.Equal(t, []string{"Sheet1"}, file.GetSheetList())
}

func TestSaveCreatesParentDirectory(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out", "dashboard.xlsx")

	file := excelize.NewFile()
	_, e := EnsureSheet(file, "Weekly Purchase")
	require.Nil(t, e)
	e = Save(file, path)
	require.Nil(t, e)

	_, statErr := os.Stat(path)
	assert.NoError(t, statErr)

	reopened, e := OpenDashboard(path)
	require.Nil(t, e)
	assert.Equal(t, []string{"Weekly Purchase"}, reopened.GetSheetList())
}
