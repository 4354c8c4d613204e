package table

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"strings"

	_ "github.com/mattn/go-sqlite3"
)

// SQLiteSource reads a table of a SQLite database. The header is the
// column list and rows come back in rowid (insertion) order.
type SQLiteSource struct {
	Path  string
	Table string
}

func NewSQLite(path, table string) *SQLiteSource {
	return &SQLiteSource{Path: path, Table: table}
}

func (s *SQLiteSource) Header() ([]string, error) {
	h, _, err := s.read()
	return h, err
}

func (s *SQLiteSource) Rows() ([][]string, error) {
	_, rows, err := s.read()
	return rows, err
}

func (s *SQLiteSource) handle() string {
	return "sqlite:" + s.Path + "#" + s.Table
}

func (s *SQLiteSource) read() ([]string, [][]string, error) {
	if s == nil {
		return nil, nil, &MissingTableError{Handle: "<nil>"}
	}
	// sql.Open would silently create an empty database.
	if _, err := os.Stat(s.Path); err != nil {
		return nil, nil, missing(s.handle(), err)
	}

	db, err := sql.Open("sqlite3", "file:"+s.Path+"?mode=ro")
	if err != nil {
		return nil, nil, fmt.Errorf("open %s: %w", s.Path, err)
	}
	defer db.Close()

	var n int
	err = db.QueryRow(`SELECT count(*) FROM sqlite_master WHERE type = 'table' AND name = ?`, s.Table).Scan(&n)
	if err != nil {
		return nil, nil, fmt.Errorf("lookup %s: %w", s.handle(), err)
	}
	if n == 0 {
		return nil, nil, &MissingTableError{Handle: s.handle(), Err: errors.New("no such table")}
	}

	rows, err := db.Query(`SELECT * FROM ` + quoteIdent(s.Table) + ` ORDER BY rowid`)
	if err != nil {
		return nil, nil, fmt.Errorf("query %s: %w", s.handle(), err)
	}
	defer rows.Close()

	header, err := rows.Columns()
	if err != nil {
		return nil, nil, err
	}

	var out [][]string
	vals := make([]sql.NullString, len(header))
	ptrs := make([]any, len(header))
	for i := range vals {
		ptrs[i] = &vals[i]
	}
	for rows.Next() {
		if err := rows.Scan(ptrs...); err != nil {
			return nil, nil, fmt.Errorf("scan %s: %w", s.handle(), err)
		}
		row := make([]string, len(vals))
		for i, v := range vals {
			row[i] = v.String
		}
		out = append(out, row)
	}
	if err := rows.Err(); err != nil {
		return nil, nil, err
	}
	return header, out, nil
}

func quoteIdent(s string) string {
	return `"` + strings.ReplaceAll(s, `"`, `""`) + `"`
}
