package table

import (
	"fmt"
	"path/filepath"
	"strings"
)

const (
	FormatCSV    = "csv"
	FormatXLSX   = "xlsx"
	FormatHTML   = "html"
	FormatSQLite = "sqlite"
)

// Open resolves a table handle to a Source without reading it:
//
//	prices.csv
//	book.xlsx#SMA
//	page.html#rsi_14_ScrollableTable
//	sqlite:data.db#rsi_14
//
// Whether the table actually exists is only known when it is read.
func Open(handle string) (Source, error) {
	if rest, ok := strings.CutPrefix(handle, "sqlite:"); ok {
		path, name, _ := strings.Cut(rest, "#")
		return New(FormatSQLite, path, name)
	}
	path, name := handle, ""
	if i := strings.LastIndex(handle, "#"); i >= 0 {
		path, name = handle[:i], handle[i+1:]
	}
	return New(FormatOf(path), path, name)
}

// FormatOf guesses the format from the file extension.
func FormatOf(path string) string {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".csv", ".txt":
		return FormatCSV
	case ".xlsx", ".xlsm":
		return FormatXLSX
	case ".html", ".htm":
		return FormatHTML
	case ".db", ".sqlite", ".sqlite3":
		return FormatSQLite
	}
	return ""
}

// New builds a Source of the given format. name is the sheet, CSS class or
// SQL table, depending on the format.
func New(format, path, name string) (Source, error) {
	if path == "" {
		return nil, fmt.Errorf("table path is required")
	}
	switch format {
	case FormatCSV:
		return NewCSV(path), nil
	case FormatXLSX:
		return NewXLSX(path, name), nil
	case FormatHTML:
		return NewHTML(path, name), nil
	case FormatSQLite:
		if name == "" {
			return nil, fmt.Errorf("sqlite source %s needs a table name", path)
		}
		return NewSQLite(path, name), nil
	}
	return nil, fmt.Errorf("unsupported table format %q for %s", format, path)
}

// PathOf returns the file behind a file-backed source, or "" for sources
// that do not read from disk.
func PathOf(src Source) string {
	switch s := src.(type) {
	case *CSVSource:
		return s.Path
	case *XLSXSource:
		return s.Path
	case *HTMLSource:
		return s.Path
	case *SQLiteSource:
		return s.Path
	}
	return ""
}
