package excel

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/xuri/excelize/v2"

	"classeur/domain/group"
	"classeur/domain/tabular"
	"classeur/internal/errors"
)

// DataWriter writes datasets back out as .xlsx or .csv, preserving column
// order.
type DataWriter struct {
	filePath string
	fileType string
	sheet    string
}

// NewDataWriter creates a writer for the given path, choosing the format
// from the extension.
func NewDataWriter(filePath string) *DataWriter {
	ext := strings.ToLower(filepath.Ext(filePath))
	fileType := "xlsx"
	if ext == ".csv" {
		fileType = "csv"
	}
	return &DataWriter{filePath: filePath, fileType: fileType, sheet: "Sheet1"}
}

// WriteDataset writes the header row followed by every data row.
func (w *DataWriter) WriteDataset(ds tabular.Dataset) error {
	switch w.fileType {
	case "csv":
		return w.writeCSV(ds)
	case "xlsx":
		return w.writeExcel(ds)
	default:
		return errors.InvalidInput(fmt.Sprintf("unsupported file type: %s", w.fileType))
	}
}

// WriteGroups flattens a group sequence into one sheet. A marker column
// holding each group's key value is prepended to the schema so group
// boundaries survive the flattening.
func (w *DataWriter) WriteGroups(columns []string, groups []group.Group, markerColumn string) error {
	out := tabular.Dataset{Columns: append([]string{markerColumn}, columns...)}
	for _, g := range groups {
		for _, row := range g.Rows {
			flat := make(tabular.Row, len(row)+1)
			for k, v := range row {
				flat[k] = v
			}
			flat[markerColumn] = g.Key
			out.Append(flat)
		}
	}
	return w.WriteDataset(out)
}

func (w *DataWriter) writeExcel(ds tabular.Dataset) error {
	f := excelize.NewFile()
	defer f.Close()

	for i, h := range ds.Columns {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		if err := f.SetCellValue(w.sheet, cell, h); err != nil {
			return errors.Wrapf(err, "failed to write header %s", h)
		}
	}

	dateStyle, err := f.NewStyle(&excelize.Style{CustomNumFmt: strPtr("dd/mm/yyyy")})
	if err != nil {
		return errors.Wrap(err, "failed to create date style")
	}

	for r, row := range ds.Rows {
		for c, col := range ds.Columns {
			value := row.Get(col)
			if value.Kind == tabular.KindEmpty {
				continue
			}
			cell, _ := excelize.CoordinatesToCellName(c+1, r+2)
			if err := f.SetCellValue(w.sheet, cell, value.Value()); err != nil {
				return errors.Wrapf(err, "failed to write cell %s", cell)
			}
			if value.Kind == tabular.KindDate {
				if err := f.SetCellStyle(w.sheet, cell, cell, dateStyle); err != nil {
					return errors.Wrapf(err, "failed to style cell %s", cell)
				}
			}
		}
	}

	if err := f.SaveAs(w.filePath); err != nil {
		return errors.Wrapf(err, "failed to save %s", w.filePath)
	}
	return nil
}

func (w *DataWriter) writeCSV(ds tabular.Dataset) error {
	file, err := os.Create(w.filePath)
	if err != nil {
		return errors.Wrapf(err, "failed to create %s", w.filePath)
	}
	defer file.Close()

	cw := csv.NewWriter(file)
	defer cw.Flush()

	if err := cw.Write(ds.Columns); err != nil {
		return errors.Wrap(err, "failed to write CSV header")
	}
	line := make([]string, len(ds.Columns))
	for _, row := range ds.Rows {
		for i, col := range ds.Columns {
			line[i] = row.Get(col).Display()
		}
		if err := cw.Write(line); err != nil {
			return errors.Wrap(err, "failed to write CSV row")
		}
	}
	return cw.Error()
}

func strPtr(s string) *string { return &s }
