package table

import (
	"errors"
	"fmt"
	"os"
	"slices"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// HTMLSource reads a <table> out of a rendered page. With Class set, the
// table is the first one inside (or equal to) the first element carrying
// that CSS class, like the selector ".rsi_14_ScrollableTable table". With
// Class empty the first table of the document is used.
type HTMLSource struct {
	Path  string
	Class string
}

func NewHTML(path, class string) *HTMLSource {
	return &HTMLSource{Path: path, Class: class}
}

func (s *HTMLSource) Header() ([]string, error) {
	cells, err := s.read()
	if err != nil {
		return nil, err
	}
	h, _, err := split(s.handle(), cells)
	return h, err
}

func (s *HTMLSource) Rows() ([][]string, error) {
	cells, err := s.read()
	if err != nil {
		return nil, err
	}
	_, rows, err := split(s.handle(), cells)
	return rows, err
}

func (s *HTMLSource) handle() string {
	if s.Class == "" {
		return s.Path
	}
	return s.Path + "#" + s.Class
}

func (s *HTMLSource) read() ([][]string, error) {
	if s == nil {
		return nil, &MissingTableError{Handle: "<nil>"}
	}
	f, err := os.Open(s.Path)
	if err != nil {
		return nil, missing(s.handle(), err)
	}
	defer f.Close()

	doc, err := html.Parse(f)
	if err != nil {
		return nil, fmt.Errorf("parse html %s: %w", s.Path, err)
	}

	root := doc
	if s.Class != "" {
		root = find(doc, func(n *html.Node) bool { return hasClass(n, s.Class) })
		if root == nil {
			return nil, &MissingTableError{Handle: s.handle(), Err: fmt.Errorf("no element with class %q", s.Class)}
		}
	}
	tbl := find(root, func(n *html.Node) bool { return n.Type == html.ElementNode && n.DataAtom == atom.Table })
	if tbl == nil {
		return nil, &MissingTableError{Handle: s.handle(), Err: errors.New("no <table> element")}
	}

	var cells [][]string
	for _, tr := range rowsOf(tbl) {
		var row []string
		for c := tr.FirstChild; c != nil; c = c.NextSibling {
			if c.Type == html.ElementNode && (c.DataAtom == atom.Td || c.DataAtom == atom.Th) {
				row = append(row, strings.TrimSpace(text(c)))
			}
		}
		cells = append(cells, row)
	}
	return cells, nil
}

// find does a depth-first search from n (inclusive).
func find(n *html.Node, match func(*html.Node) bool) *html.Node {
	if match(n) {
		return n
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if found := find(c, match); found != nil {
			return found
		}
	}
	return nil
}

func hasClass(n *html.Node, class string) bool {
	if n.Type != html.ElementNode {
		return false
	}
	for _, a := range n.Attr {
		if a.Key == "class" && slices.Contains(strings.Fields(a.Val), class) {
			return true
		}
	}
	return false
}

// rowsOf collects the <tr> elements of tbl without descending into nested
// tables.
func rowsOf(tbl *html.Node) []*html.Node {
	var out []*html.Node
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			if c.Type != html.ElementNode {
				continue
			}
			switch c.DataAtom {
			case atom.Tr:
				out = append(out, c)
			case atom.Table:
			default:
				walk(c)
			}
		}
	}
	walk(tbl)
	return out
}

func text(n *html.Node) string {
	var b strings.Builder
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.TextNode {
			b.WriteString(n.Data)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n)
	return b.String()
}
