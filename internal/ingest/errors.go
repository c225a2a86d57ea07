// Package ingest parses an uploaded guest-list spreadsheet or CSV into
// Guest records.  This file defines the error types the parser reports.
// Each type maps to one user-visible failure mode so handlers can translate
// them into specific HTTP responses without string matching.
package ingest

import (
	"fmt"
	"strings"
)

// InvalidFileTypeError is reported before any parse attempt when the
// uploaded file's extension is not a supported spreadsheet or CSV type.
type InvalidFileTypeError struct {
	Filename string
}

func (e *InvalidFileTypeError) Error() string {
	return fmt.Sprintf("unsupported file type %q: please upload a valid Excel (.xlsx, .xls) or CSV file", e.Filename)
}

// EmptyDatasetError is reported when the sheet has no data rows, or when
// every row was dropped because its name cell was blank.
type EmptyDatasetError struct {
	Reason string
}

func (e *EmptyDatasetError) Error() string {
	return e.Reason
}

// MissingColumnError is reported when the required columns cannot be
// resolved in the header row.  Columns lists exactly which are missing.
type MissingColumnError struct {
	Columns []string
}

func (e *MissingColumnError) Error() string {
	quoted := make([]string, len(e.Columns))
	for i, c := range e.Columns {
		quoted[i] = fmt.Sprintf("%q", c)
	}
	return fmt.Sprintf("missing required column(s): %s", strings.Join(quoted, " and "))
}

// FileReadError wraps a failure to read or decode the underlying file
// (corrupt workbook, I/O error).
type FileReadError struct {
	Err error
}

func (e *FileReadError) Error() string {
	return fmt.Sprintf("failed to read the file: %v", e.Err)
}

func (e *FileReadError) Unwrap() error { return e.Err }
