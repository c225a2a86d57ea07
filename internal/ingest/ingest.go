package ingest

import (
	"encoding/csv"
	"io"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/seatharmony/seatharmony/internal/model"
)

// Column aliases, matched case-insensitively against the header row.  The
// guest-list template ships with a "Proper Names" column; plain "Name" is
// accepted as a fallback, and "Proper Names" wins when both are present.
const (
	colProperNames = "proper names"
	colName        = "name"
	colCategory    = "category"
)

// ParseFile parses an uploaded guest list.  The extension decides the
// decoder: .csv goes through encoding/csv, .xlsx/.xls through excelize
// (always the first sheet).  Any other extension fails with
// InvalidFileTypeError before the content is touched.
func ParseFile(filename string, r io.Reader) ([]model.Guest, error) {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".csv":
		return parseCSV(r)
	case ".xlsx", ".xls":
		return parseWorkbook(r)
	default:
		return nil, &InvalidFileTypeError{Filename: filename}
	}
}

func parseCSV(r io.Reader) ([]model.Guest, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1 // rows may be ragged; missing cells read as empty
	rows, err := cr.ReadAll()
	if err != nil {
		return nil, &FileReadError{Err: err}
	}
	return guestsFromRows(rows)
}

func parseWorkbook(r io.Reader) ([]model.Guest, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, &FileReadError{Err: err}
	}
	defer func() { _ = f.Close() }()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, &EmptyDatasetError{Reason: "the spreadsheet appears to be empty"}
	}
	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, &FileReadError{Err: err}
	}
	return guestsFromRows(rows)
}

// guestsFromRows turns a header row plus data rows into guests.  Rows whose
// name cell is blank are silently dropped; ids are derived from the
// retained row's 1-based position and the slugged name, which keeps them
// deterministic for a given file (but not across edited re-uploads).
func guestsFromRows(rows [][]string) ([]model.Guest, error) {
	if len(rows) == 0 {
		return nil, &EmptyDatasetError{Reason: "the spreadsheet appears to be empty"}
	}
	header := rows[0]
	data := rows[1:]
	if len(data) == 0 {
		return nil, &EmptyDatasetError{Reason: "the spreadsheet appears to be empty"}
	}

	nameIdx := findColumn(header, colProperNames)
	if nameIdx < 0 {
		nameIdx = findColumn(header, colName)
	}
	categoryIdx := findColumn(header, colCategory)

	if nameIdx < 0 || categoryIdx < 0 {
		var missing []string
		if nameIdx < 0 {
			missing = append(missing, "Proper Names")
		}
		if categoryIdx < 0 {
			missing = append(missing, "Category")
		}
		return nil, &MissingColumnError{Columns: missing}
	}

	guests := make([]model.Guest, 0, len(data))
	for _, row := range data {
		name := strings.TrimSpace(cell(row, nameIdx))
		if name == "" {
			continue
		}
		category := strings.TrimSpace(cell(row, categoryIdx))
		id := "guest-" + strconv.Itoa(len(guests)+1) + "-" + slug(name)
		guests = append(guests, model.NewGuest(id, name, category))
	}
	if len(guests) == 0 {
		return nil, &EmptyDatasetError{Reason: "no valid guests found: the name column has no data"}
	}
	return guests, nil
}

// findColumn returns the index of the first header cell matching the alias
// case-insensitively, or -1.  A UTF-8 BOM on the first cell of a CSV would
// otherwise defeat the match, so it is stripped here.
func findColumn(header []string, alias string) int {
	for i, h := range header {
		h = strings.TrimPrefix(h, "\uFEFF")
		if strings.ToLower(strings.TrimSpace(h)) == alias {
			return i
		}
	}
	return -1
}

// cell reads a column from a possibly short row.
func cell(row []string, idx int) string {
	if idx >= len(row) {
		return ""
	}
	return row[idx]
}

// slug lowercases a name and collapses whitespace runs into hyphens.
func slug(name string) string {
	return strings.Join(strings.Fields(strings.ToLower(name)), "-")
}
