// Package excel is the tabular I/O adapter: it loads spreadsheet-like
// files (.xlsx, .csv) into datasets of normalized cells and writes
// datasets back out. Cell typing lives here, the core packages only ever
// see the four semantic kinds.
package excel

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/xuri/excelize/v2"

	"classeur/domain/tabular"
	"classeur/internal/errors"
)

// DataReader handles reading Excel and CSV files
type DataReader struct {
	filePath string
	fileType string // "xlsx" or "csv"
	sheet    string // xlsx sheet name, first sheet when empty
}

// NewDataReader creates a reader for the given file, choosing the format
// from the extension.
func NewDataReader(filePath string) *DataReader {
	ext := strings.ToLower(filepath.Ext(filePath))
	fileType := "xlsx"
	if ext == ".csv" {
		fileType = "csv"
	}
	return &DataReader{filePath: filePath, fileType: fileType}
}

// WithSheet selects a named worksheet instead of the first one.
func (r *DataReader) WithSheet(name string) *DataReader {
	r.sheet = name
	return r
}

// ReadDataset loads the file into a dataset. The first row is the header;
// header names are trimmed, cell values normalized via tabular.ParseCell.
func (r *DataReader) ReadDataset() (tabular.Dataset, error) {
	if _, err := os.Stat(r.filePath); os.IsNotExist(err) {
		return tabular.Dataset{}, errors.Wrapf(err, "%s file not found: %s", strings.ToUpper(r.fileType), r.filePath)
	}

	switch r.fileType {
	case "csv":
		return r.readCSV()
	case "xlsx":
		return r.readExcel()
	default:
		return tabular.Dataset{}, errors.InvalidInput(fmt.Sprintf("unsupported file type: %s", r.fileType))
	}
}

func (r *DataReader) readExcel() (tabular.Dataset, error) {
	f, err := excelize.OpenFile(r.filePath)
	if err != nil {
		return tabular.Dataset{}, errors.Wrapf(err, "failed to open Excel file %s", r.filePath)
	}
	defer f.Close()

	sheet := r.sheet
	if sheet == "" {
		sheets := f.GetSheetList()
		if len(sheets) == 0 {
			return tabular.Dataset{}, errors.InvalidInput(fmt.Sprintf("no sheets in %s", r.filePath))
		}
		sheet = sheets[0]
	}

	rows, err := f.GetRows(sheet)
	if err != nil {
		return tabular.Dataset{}, errors.Wrapf(err, "failed to read sheet %s", sheet)
	}
	return r.processRows(rows)
}

func (r *DataReader) readCSV() (tabular.Dataset, error) {
	file, err := os.Open(r.filePath)
	if err != nil {
		return tabular.Dataset{}, errors.Wrapf(err, "failed to open CSV file %s", r.filePath)
	}
	defer file.Close()

	reader := csv.NewReader(file)
	reader.FieldsPerRecord = -1
	rows, err := reader.ReadAll()
	if err != nil {
		return tabular.Dataset{}, errors.Wrapf(err, "failed to read CSV file %s", r.filePath)
	}
	return r.processRows(rows)
}

// processRows converts raw string rows into a normalized dataset. Every
// header column is materialized in every row so that schema checks see a
// fixed column set per load.
func (r *DataReader) processRows(raw [][]string) (tabular.Dataset, error) {
	if len(raw) == 0 {
		return tabular.Dataset{}, errors.InvalidInput(fmt.Sprintf("%s has no header row", r.filePath))
	}

	headers := make([]string, len(raw[0]))
	for i, h := range raw[0] {
		headers[i] = strings.TrimSpace(h)
	}

	ds := tabular.Dataset{Columns: headers}
	for _, line := range raw[1:] {
		row := make(tabular.Row, len(headers))
		for j, header := range headers {
			if j < len(line) {
				row[header] = tabular.ParseCell(line[j])
			} else {
				row[header] = tabular.EmptyCell()
			}
		}
		ds.Append(row)
	}
	return ds, nil
}
