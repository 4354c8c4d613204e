package table

import (
	"encoding/csv"
	"fmt"
	"os"
)

// CSVSource reads a comma separated file whose first record is the header.
// Quoted cells may contain commas, e.g. a volume of "1,200".
type CSVSource struct {
	Path  string
	Comma rune
}

func NewCSV(path string) *CSVSource {
	return &CSVSource{Path: path, Comma: ','}
}

func (s *CSVSource) Header() ([]string, error) {
	cells, err := s.read()
	if err != nil {
		return nil, err
	}
	h, _, err := split(s.Path, cells)
	return h, err
}

func (s *CSVSource) Rows() ([][]string, error) {
	cells, err := s.read()
	if err != nil {
		return nil, err
	}
	_, rows, err := split(s.Path, cells)
	return rows, err
}

func (s *CSVSource) read() ([][]string, error) {
	if s == nil {
		return nil, &MissingTableError{Handle: "<nil>"}
	}
	f, err := os.Open(s.Path)
	if err != nil {
		return nil, missing(s.Path, err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1
	r.TrimLeadingSpace = true
	if s.Comma != 0 {
		r.Comma = s.Comma
	}

	cells, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("parse csv %s: %w", s.Path, err)
	}
	return cells, nil
}
