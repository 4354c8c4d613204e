package table

import "fmt"

// MissingTableError reports that a table handle could not be resolved: the
// file, sheet, page element or SQL table does not exist (yet).
type MissingTableError struct {
	Handle string
	Err    error
}

func (e *MissingTableError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("table %q not found", e.Handle)
	}
	return fmt.Sprintf("table %q not found: %v", e.Handle, e.Err)
}

func (e *MissingTableError) Unwrap() error { return e.Err }

// MalformedRowError reports the first cell that failed to parse. Row is the
// zero-based data row index (the header row is not counted) and Column is
// the cell index within that row.
type MalformedRowError struct {
	Row    int
	Column int
	Field  string
	Value  string
	Err    error
}

func (e *MalformedRowError) Error() string {
	return fmt.Sprintf("row %d column %d (%s): bad value %q: %v", e.Row, e.Column, e.Field, e.Value, e.Err)
}

func (e *MalformedRowError) Unwrap() error { return e.Err }
