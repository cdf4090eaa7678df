// ABOUTME: Reads uploaded well tables from Excel workbooks or CSV files
// ABOUTME: Returns the raw header and rows for ClassifyTable to type-check

package services

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/markalston/separator-sizer/backend/models"
)

var (
	// ErrUnsupportedFormat indicates an upload that is neither .xlsx nor .csv
	ErrUnsupportedFormat = errors.New("unsupported file format")

	// ErrUnreadableTable indicates a corrupt workbook or malformed CSV
	ErrUnreadableTable = errors.New("unable to read the file")
)

// ReadWellTable reads the first worksheet of an .xlsx workbook, or a .csv
// file, choosing the parser by file extension. The first non-empty row is the header.
func ReadWellTable(r io.Reader, filename string) (models.WellTable, error) {
	var rows [][]string
	var err error

	switch ext := strings.ToLower(filepath.Ext(filename)); ext {
	case ".xlsx", ".xlsm":
		rows, err = readWorkbook(r)
	case ".csv":
		rows, err = readCSV(r)
	default:
		return models.WellTable{}, fmt.Errorf("%w: %q", ErrUnsupportedFormat, sanitizeForLog(ext))
	}
	if err != nil {
		return models.WellTable{}, err
	}

	for len(rows) > 0 && blankRow(rows[0]) {
		rows = rows[1:]
	}
	if len(rows) == 0 {
		return models.WellTable{}, invalidInput("%s contains no header row", sanitizeForLog(filepath.Base(filename)))
	}

	return models.WellTable{Header: rows[0], Rows: rows[1:]}, nil
}

func readWorkbook(r io.Reader) ([][]string, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("%w: workbook: %v", ErrUnreadableTable, err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, invalidInput("workbook has no sheets")
	}

	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("%w: sheet %q: %v", ErrUnreadableTable, sheets[0], err)
	}
	return rows, nil
}

func readCSV(r io.Reader) ([][]string, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true

	rows, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("%w: CSV: %v", ErrUnreadableTable, err)
	}
	return rows, nil
}
