package workbook

import (
	"os"
	"path/filepath"

	"github.com/xuri/excelize/v2"

	tl "github.com/tuumbleweed/tintlog/logger"
	"github.com/tuumbleweed/tintlog/palette"
	"github.com/tuumbleweed/xerr"
)

/*
OpenDashboard opens the destination workbook, or starts a fresh one when
the file does not exist yet. Sheets of an existing file are preserved, so
report sheets whose source data did not change keep their prior content.
*/
func OpenDashboard(path string) (file *excelize.File, e *xerr.Error) {
	_, statErr := os.Stat(path)
	if statErr != nil {
		tl.Log(tl.Info1, palette.Blue, "Dashboard workbook '%s' %s, starting %s", path, "not found", "a fresh one")
		return excelize.NewFile(), nil
	}

	file, openErr := excelize.OpenFile(path)
	if openErr != nil {
		return file, xerr.NewError(openErr, "Unable to open dashboard workbook", path)
	}
	return file, nil
}

/*
EnsureSheet returns the index of the named sheet, creating it when absent.
A brand-new workbook's default sheet is claimed by the first report that
asks, so report sheets start at index 0.
*/
func EnsureSheet(file *excelize.File, title string) (index int, e *xerr.Error) {
	index, indexErr := file.GetSheetIndex(title)
	if indexErr != nil {
		return index, xerr.NewError(indexErr, "Unable to look up sheet", title)
	}
	if index >= 0 {
		return index, nil
	}

	sheets := file.GetSheetList()
	if len(sheets) == 1 && sheets[0] == "Sheet1" {
		renameErr := file.SetSheetName("Sheet1", title)
		if renameErr != nil {
			return index, xerr.NewError(renameErr, "Unable to claim default sheet", title)
		}
		tl.Log(tl.Verbose, palette.CyanDim, "Claimed default sheet as '%s'", title)
		return 0, nil
	}

	index, newErr := file.NewSheet(title)
	if newErr != nil {
		return index, xerr.NewError(newErr, "Unable to create sheet", title)
	}
	tl.Log(tl.Verbose, palette.CyanDim, "Created sheet '%s' at index %d", title, index)
	return index, nil
}

// scratch sheet parked in the workbook while a report sheet is rebuilt,
// so the delete never targets the last remaining sheet
const rebuildScratchSheet = "__rebuild__"

/*
ResetSheet clears a report sheet back to blank before a rebuild: values,
styles, merges, charts, and conditional formats all go. The sheet keeps
its position in the workbook.
*/
func ResetSheet(file *excelize.File, title string) (e *xerr.Error) {
	index, indexErr := file.GetSheetIndex(title)
	if indexErr != nil {
		return xerr.NewError(indexErr, "Unable to look up sheet", title)
	}
	if index < 0 {
		_, e = EnsureSheet(file, title)
		return e
	}

	sheets := file.GetSheetList()

	_, scratchErr := file.NewSheet(rebuildScratchSheet)
	if scratchErr != nil {
		return xerr.NewError(scratchErr, "Unable to create scratch sheet", rebuildScratchSheet)
	}
	deleteErr := file.DeleteSheet(title)
	if deleteErr != nil {
		return xerr.NewError(deleteErr, "Unable to drop sheet for rebuild", title)
	}
	_, newErr := file.NewSheet(title)
	if newErr != nil {
		return xerr.NewError(newErr, "Unable to recreate sheet", title)
	}

	// recreate appends at the end; restore the old position
	if index+1 < len(sheets) {
		moveErr := file.MoveSheet(title, sheets[index+1])
		if moveErr != nil {
			return xerr.NewError(moveErr, "Unable to restore sheet position", title)
		}
	}

	deleteScratchErr := file.DeleteSheet(rebuildScratchSheet)
	if deleteScratchErr != nil {
		return xerr.NewError(deleteScratchErr, "Unable to drop scratch sheet", rebuildScratchSheet)
	}
	return nil
}

/*
Save writes the dashboard workbook, creating the parent directory first.
*/
func Save(file *excelize.File, path string) (e *xerr.Error) {
	mkdirErr := os.MkdirAll(filepath.Dir(path), 0o755)
	if mkdirErr != nil {
		return xerr.NewError(mkdirErr, "create dashboard output directory", filepath.Dir(path))
	}

	saveErr := file.SaveAs(path)
	if saveErr != nil {
		return xerr.NewError(saveErr, "Unable to save dashboard workbook", path)
	}

	tl.Log(tl.Info1, palette.Blue, "Saved dashboard workbook '%s'", path)
	return nil
}
