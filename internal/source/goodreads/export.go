// Package goodreads reads Goodreads library export CSVs. Goodreads retired
// its API, so the export file is the source of record; the newest
// goodreads_library_*.csv in the export directory wins.
package goodreads

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"
	"time"
)

// Book is one cleaned export row.
type Book struct {
	Title     string
	Author    string
	Rating    *float64
	DateRead  *time.Time
	DateAdded *time.Time
	ISBN      string
	Pages     *int
	Format    string
}

// FindLatestExport returns the most recently modified
// goodreads_library_*.csv under dir, or an error when none exists.
// Parameters:
//   - dir: export directory to scan.
//
// Returns:
//   - string: path to the newest export.
//   - error: non-nil when the directory has no export.
func FindLatestExport(dir string) (string, error) {
	matches, err := filepath.Glob(filepath.Join(dir, "goodreads_library_*.csv"))
	if err != nil {
		return "", err
	}
	if len(matches) == 0 {
		return "", fmt.Errorf("no goodreads_library_*.csv in %s", dir)
	}

	latest := ""
	var latestMod time.Time
	for _, m := range matches {
		info, err := os.Stat(m)
		if err != nil {
			continue
		}
		if latest == "" || info.ModTime().After(latestMod) {
			latest = m
			latestMod = info.ModTime()
		}
	}
	return latest, nil
}

// ReadExport parses an export file into cleaned book records. Rows without
// a title are dropped; unparseable numbers and dates become nil.
// Parameters:
//   - path: CSV export path.
//
// Returns:
//   - []Book: cleaned rows in file order.
//   - error: non-nil if the file cannot be read or parsed.
func ReadExport(path string) ([]Book, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	reader := csv.NewReader(f)
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("failed to read export header: %w", err)
	}
	col := make(map[string]int, len(header))
	for i, h := range header {
		col[headerToSnake(h)] = i
	}

	rows, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to read export rows: %w", err)
	}

	field := func(row []string, name string) string {
		i, ok := col[name]
		if !ok || i >= len(row) {
			return ""
		}
		return strings.TrimSpace(row[i])
	}

	var books []Book
	for _, row := range rows {
		title := field(row, "title")
		if title == "" {
			continue
		}
		b := Book{
			Title:     title,
			Author:    field(row, "author"),
			ISBN:      cleanISBN(field(row, "isbn")),
			Format:    field(row, "binding"),
			Rating:    parseRating(field(row, "my_rating")),
			Pages:     parsePages(field(row, "number_of_pages")),
			DateRead:  parseExportDate(field(row, "date_read")),
			DateAdded: parseExportDate(field(row, "date_added")),
		}
		books = append(books, b)
	}
	return books, nil
}

var nonAlnum = regexp.MustCompile(`[^a-zA-Z0-9_]`)
var spaceDash = regexp.MustCompile(`[\s\-]+`)

// headerToSnake converts an export header like "Number of Pages" to
// "number_of_pages".
func headerToSnake(h string) string {
	s := strings.TrimSpace(h)
	s = spaceDash.ReplaceAllString(s, "_")
	s = nonAlnum.ReplaceAllString(s, "")
	return strings.ToLower(s)
}

// cleanISBN strips the ="..." wrapper Goodreads puts around ISBN columns.
func cleanISBN(s string) string {
	s = strings.TrimPrefix(s, "=")
	s = strings.Trim(s, `"`)
	return strings.TrimSpace(s)
}

func parseRating(s string) *float64 {
	r, err := strconv.ParseFloat(s, 64)
	if err != nil || r == 0 {
		return nil
	}
	return &r
}

func parsePages(s string) *int {
	if s == "" || strings.EqualFold(s, "unknown") {
		return nil
	}
	p, err := strconv.Atoi(s)
	if err != nil {
		return nil
	}
	return &p
}

// parseExportDate handles both date formats Goodreads exports use.
func parseExportDate(s string) *time.Time {
	if s == "" || s == "not set" {
		return nil
	}
	for _, layout := range []string{"2006/01/02", "Jan 02, 2006"} {
		if t, err := time.Parse(layout, s); err == nil {
			return &t
		}
	}
	return nil
}
