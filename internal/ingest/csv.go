// Package ingest normalizes reading-history exports into domain book records.
//
// The reader understands Goodreads-style CSV exports: columns are located by
// header name, not position, so reordered or partial exports still load.
// Unparseable numbers and dates normalize silently to the unknown sentinel;
// ingestion never fails on a bad field, only on unreadable CSV structure.
package ingest

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/shelfpick/shelfpick-server/internal/domain"
	"github.com/shelfpick/shelfpick-server/internal/id"
)

// Column header aliases, matched after normalization (lowercase, spaces and
// punctuation stripped). Goodreads and LibraryThing exports both resolve.
var columnAliases = map[string][]string{
	"title":   {"title"},
	"author":  {"author", "primaryauthor"},
	"pages":   {"numberofpages", "pages", "pagecount"},
	"year":    {"originalpublicationyear", "yearpublished", "publicationyear"},
	"avg":     {"averagerating", "avgrating"},
	"user":    {"myrating", "userrating", "rating"},
	"read":    {"dateread"},
	"added":   {"dateadded", "entrydate"},
	"shelves": {"bookshelves", "shelves", "collections"},
	"isbn":    {"isbn13", "isbn"},
}

// Date layouts seen in the wild, tried in order.
var dateLayouts = []string{
	"2006/01/02",
	"2006-01-02",
	"01/02/2006",
	"Jan 2, 2006",
}

// Load reads and normalizes the export file at path.
func Load(path string) ([]domain.Book, error) {
	f, err := os.Open(path) //#nosec G304 -- export path comes from config
	if err != nil {
		return nil, fmt.Errorf("open export: %w", err)
	}
	defer f.Close()

	books, err := Parse(f)
	if err != nil {
		return nil, fmt.Errorf("parse export %s: %w", path, err)
	}
	return books, nil
}

// Parse normalizes CSV export data into book records. The first row must be
// a header; unrecognized columns are ignored, missing columns leave their
// fields at the unknown sentinel.
func Parse(r io.Reader) ([]domain.Book, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1 // tolerate ragged rows

	header, err := reader.Read()
	if err != nil {
		if err == io.EOF {
			return nil, nil
		}
		return nil, fmt.Errorf("read header: %w", err)
	}

	cols := mapColumns(header)

	var books []domain.Book
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read record: %w", err)
		}

		book := normalizeRecord(record, cols)
		book.ID = id.MustGenerate("book")
		books = append(books, book)
	}

	return books, nil
}

// mapColumns resolves header names to field indexes.
func mapColumns(header []string) map[string]int {
	cols := make(map[string]int)
	for i, h := range header {
		normalized := normalizeHeader(h)
		for field, aliases := range columnAliases {
			if _, taken := cols[field]; taken {
				continue
			}
			for _, alias := range aliases {
				if normalized == alias {
					cols[field] = i
					break
				}
			}
		}
	}
	return cols
}

// normalizeHeader lowercases a header and strips everything but letters and digits.
func normalizeHeader(h string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(h) {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// normalizeRecord converts one CSV row into a book, mapping bad fields to
// the unknown sentinel rather than erroring.
func normalizeRecord(record []string, cols map[string]int) domain.Book {
	field := func(name string) string {
		i, ok := cols[name]
		if !ok || i >= len(record) {
			return ""
		}
		return strings.TrimSpace(record[i])
	}

	return domain.Book{
		Title:           field("title"),
		Author:          field("author"),
		Pages:           parseIntField(field("pages")),
		PublicationYear: parseIntField(field("year")),
		AverageRating:   parseFloatField(field("avg")),
		UserRating:      parseFloatField(field("user")),
		DateRead:        parseDateField(field("read")),
		DateAdded:       parseDateField(field("added")),
		Shelves:         parseShelves(field("shelves")),
		ISBN:            normalizeISBN(field("isbn")),
	}
}

// parseIntField returns 0 (unknown) for missing or non-numeric input.
// Negative values are treated as unknown too.
func parseIntField(s string) int {
	if s == "" {
		return 0
	}
	n, err := strconv.Atoi(s)
	if err != nil || n < 0 {
		return 0
	}
	return n
}

// parseFloatField returns 0 (unrated) for missing or non-numeric input.
func parseFloatField(s string) float64 {
	if s == "" {
		return 0
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || f < 0 {
		return 0
	}
	return f
}

// parseDateField returns the zero time for missing or unparseable dates.
func parseDateField(s string) time.Time {
	if s == "" {
		return time.Time{}
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t
		}
	}
	return time.Time{}
}

// parseShelves splits a comma-separated tag string into trimmed tags.
func parseShelves(s string) []string {
	if s == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	var shelves []string
	for _, p := range parts {
		if tag := strings.TrimSpace(p); tag != "" {
			shelves = append(shelves, tag)
		}
	}
	return shelves
}

// normalizeISBN strips the Excel-style ="..." wrapper Goodreads emits and
// discards placeholder values.
func normalizeISBN(s string) string {
	s = strings.TrimPrefix(s, "=")
	s = strings.Trim(s, `"`)
	if s == "" || s == "0" {
		return ""
	}
	return s
}
