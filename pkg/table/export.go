package table

import (
	"github.com/xuri/excelize/v2"

	"github.com/grovetools/covview/errors"
)

// HighlightFill is the cell fill for rows inside the visible window.
const HighlightFill = "#CFE2FF"

const exportSheet = "Features"

// ExportXLSX writes rows to a workbook with an id column followed by the
// GFF columns. Rows whose position is true in highlighted get HighlightFill.
func ExportXLSX(path string, rows []Row, highlighted []bool) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", exportSheet); err != nil {
		return errors.Wrap(err, errors.ErrCodeInternal, "failed to name sheet")
	}

	header := []interface{}{"id"}
	for _, c := range Columns {
		header = append(header, c)
	}
	if err := f.SetSheetRow(exportSheet, "A1", &header); err != nil {
		return errors.Wrap(err, errors.ErrCodeInternal, "failed to write header")
	}

	headerStyle, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return errors.Wrap(err, errors.ErrCodeInternal, "failed to create header style")
	}
	lastCol, _ := excelize.ColumnNumberToName(len(header))
	if err := f.SetCellStyle(exportSheet, "A1", lastCol+"1", headerStyle); err != nil {
		return errors.Wrap(err, errors.ErrCodeInternal, "failed to style header")
	}

	fillStyle, err := f.NewStyle(&excelize.Style{
		Fill: excelize.Fill{Type: "pattern", Color: []string{HighlightFill}, Pattern: 1},
	})
	if err != nil {
		return errors.Wrap(err, errors.ErrCodeInternal, "failed to create fill style")
	}

	for i, r := range rows {
		cell, _ := excelize.CoordinatesToCellName(1, i+2)
		values := []interface{}{r.ID, r.SeqID, r.Source, r.Type, r.Start, r.End, r.Score, r.Strand, r.Phase, r.Attributes}
		if err := f.SetSheetRow(exportSheet, cell, &values); err != nil {
			return errors.Wrap(err, errors.ErrCodeInternal, "failed to write row").WithDetail("row", i)
		}
		if i < len(highlighted) && highlighted[i] {
			end, _ := excelize.CoordinatesToCellName(len(values), i+2)
			if err := f.SetCellStyle(exportSheet, cell, end, fillStyle); err != nil {
				return errors.Wrap(err, errors.ErrCodeInternal, "failed to style row").WithDetail("row", i)
			}
		}
	}

	if err := f.SaveAs(path); err != nil {
		return errors.Wrap(err, errors.ErrCodeInternal, "failed to save workbook").WithDetail("path", path)
	}
	return nil
}
