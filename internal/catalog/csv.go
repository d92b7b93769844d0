package catalog

import (
	"bytes"
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
)

// Columns lists the CSV columns a catalogue file must have.
var Columns = []string{"Title", "Price", "Pages", "Year", "Diff", "Pass", "URL"}

// MissingColumnsError is returned when a catalogue file lacks columns.
type MissingColumnsError struct {
	Columns []string
}

func (e *MissingColumnsError) Error() string {
	return "missing columns: " + strings.Join(e.Columns, ", ")
}

// RowError reports a malformed catalogue row. Line is 1-based and counts
// the header.
type RowError struct {
	Line   int
	Column string
	Err    error
}

func (e *RowError) Error() string {
	return fmt.Sprintf("line %d, column %s: %v", e.Line, e.Column, e.Err)
}

func (e *RowError) Unwrap() error { return e.Err }

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// ParseCSV reads catalogue rows. Extra columns are ignored; a leading
// UTF-8 byte order mark is skipped.
func ParseCSV(r io.Reader) ([]Book, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read catalogue: %w", err)
	}
	data = bytes.TrimPrefix(data, utf8BOM)

	cr := csv.NewReader(bytes.NewReader(data))
	cr.FieldsPerRecord = -1

	header, err := cr.Read()
	if errors.Is(err, io.EOF) {
		return nil, &MissingColumnsError{Columns: Columns}
	}
	if err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}

	idx := make(map[string]int, len(header))
	for i, h := range header {
		idx[strings.TrimSpace(h)] = i
	}
	var missing []string
	for _, c := range Columns {
		if _, ok := idx[c]; !ok {
			missing = append(missing, c)
		}
	}
	if len(missing) > 0 {
		return nil, &MissingColumnsError{Columns: missing}
	}

	var books []Book
	for line := 2; ; line++ {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read line %d: %w", line, err)
		}
		b, err := parseRow(rec, idx, line)
		if err != nil {
			return nil, err
		}
		books = append(books, b)
	}
	return books, nil
}

func parseRow(rec []string, idx map[string]int, line int) (Book, error) {
	field := func(col string) string {
		if i := idx[col]; i < len(rec) {
			return strings.TrimSpace(rec[i])
		}
		return ""
	}
	num := func(col string) (float64, error) {
		v, err := strconv.ParseFloat(field(col), 64)
		if err != nil {
			return 0, &RowError{Line: line, Column: col, Err: err}
		}
		return v, nil
	}

	b := Book{Title: field("Title"), Pass: field("Pass"), URL: field("URL")}
	var err error
	if b.Price, err = num("Price"); err != nil {
		return Book{}, err
	}
	pages, err := num("Pages")
	if err != nil {
		return Book{}, err
	}
	year, err := num("Year")
	if err != nil {
		return Book{}, err
	}
	if b.Diff, err = num("Diff"); err != nil {
		return Book{}, err
	}
	b.Pages, b.Year = int(pages), int(year)
	return b, nil
}

// Load parses r and inserts every row. It returns the number of books added.
func (c *Catalog) Load(ctx context.Context, r io.Reader) (int, error) {
	books, err := ParseCSV(r)
	if err != nil {
		return 0, err
	}
	if err := c.Insert(ctx, books); err != nil {
		return 0, err
	}
	return len(books), nil
}

// LoadFile loads a catalogue CSV file.
func (c *Catalog) LoadFile(ctx context.Context, path string) (int, error) {
	f, err := os.Open(path)
	if err != nil {
		return 0, fmt.Errorf("open catalogue: %w", err)
	}
	defer f.Close()
	return c.Load(ctx, f)
}
