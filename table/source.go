package table

import (
	"errors"
	"fmt"
	"io/fs"

	"github.com/rustyeddy/indichart/market"
)

// Source is a tabular data provider: a header row followed by data rows of
// cell text. Every call reads the table afresh.
type Source interface {
	Header() ([]string, error)
	Rows() ([][]string, error)
}

// Extract reads every data row of src and returns the aligned time series.
// Rows keep their table order; nothing is sorted, deduplicated or filled.
func Extract(src Source, m ColumnMapping) (*market.Bundle, error) {
	if src == nil {
		return nil, &MissingTableError{Handle: "<nil>"}
	}
	if err := m.Validate(); err != nil {
		return nil, fmt.Errorf("column mapping: %w", err)
	}

	rows, err := src.Rows()
	if err != nil {
		return nil, err
	}

	b := market.NewBundle(m.Fields()...)
	for i, cells := range rows {
		r, err := ParseRow(i, cells, m)
		if err != nil {
			return nil, err
		}
		if err := b.Append(r); err != nil {
			return nil, fmt.Errorf("row %d: %w", i, err)
		}
	}
	return b, nil
}

// Memory is a Source over cells already held in memory. The first row is
// the header.
type Memory struct {
	Name  string
	Cells [][]string
}

// NewMemory returns a Source over the given cells.
func NewMemory(name string, cells [][]string) *Memory {
	return &Memory{Name: name, Cells: cells}
}

func (s *Memory) Header() ([]string, error) {
	if s == nil {
		return nil, &MissingTableError{Handle: "<nil>"}
	}
	h, _, err := split(s.Name, s.Cells)
	return h, err
}

func (s *Memory) Rows() ([][]string, error) {
	if s == nil {
		return nil, &MissingTableError{Handle: "<nil>"}
	}
	_, rows, err := split(s.Name, s.Cells)
	return rows, err
}

var errNoHeader = errors.New("no header row")

// split separates the header row from the data rows.
func split(handle string, cells [][]string) ([]string, [][]string, error) {
	if len(cells) == 0 {
		return nil, nil, &MissingTableError{Handle: handle, Err: errNoHeader}
	}
	return cells[0], cells[1:], nil
}

// missing converts a not-exist error into a MissingTableError.
func missing(handle string, err error) error {
	if errors.Is(err, fs.ErrNotExist) {
		return &MissingTableError{Handle: handle, Err: err}
	}
	return fmt.Errorf("read %s: %w", handle, err)
}
