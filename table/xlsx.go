package table

import (
	"errors"
	"fmt"

	"github.com/xuri/excelize/v2"
)

// XLSXSource reads one sheet of an Excel workbook. An empty Sheet selects
// the first sheet of the workbook.
type XLSXSource struct {
	Path  string
	Sheet string
}

func NewXLSX(path, sheet string) *XLSXSource {
	return &XLSXSource{Path: path, Sheet: sheet}
}

func (s *XLSXSource) Header() ([]string, error) {
	cells, err := s.read()
	if err != nil {
		return nil, err
	}
	h, _, err := split(s.handle(), cells)
	return h, err
}

func (s *XLSXSource) Rows() ([][]string, error) {
	cells, err := s.read()
	if err != nil {
		return nil, err
	}
	_, rows, err := split(s.handle(), cells)
	return rows, err
}

func (s *XLSXSource) handle() string {
	if s.Sheet == "" {
		return s.Path
	}
	return s.Path + "#" + s.Sheet
}

func (s *XLSXSource) read() ([][]string, error) {
	if s == nil {
		return nil, &MissingTableError{Handle: "<nil>"}
	}
	f, err := excelize.OpenFile(s.Path)
	if err != nil {
		return nil, missing(s.handle(), err)
	}
	defer f.Close()

	sheet := s.Sheet
	if sheet == "" {
		sheets := f.GetSheetList()
		if len(sheets) == 0 {
			return nil, &MissingTableError{Handle: s.handle(), Err: errors.New("workbook has no sheets")}
		}
		sheet = sheets[0]
	}
	idx, err := f.GetSheetIndex(sheet)
	if err != nil || idx < 0 {
		return nil, &MissingTableError{Handle: s.handle(), Err: fmt.Errorf("no sheet %q", sheet)}
	}

	cells, err := f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("read sheet %s: %w", s.handle(), err)
	}
	return cells, nil
}
