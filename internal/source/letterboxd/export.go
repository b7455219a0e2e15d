// Package letterboxd reads Letterboxd account export CSVs (watched.csv and
// watchlist.csv).
package letterboxd

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"
)

// Film is one export row. Year stays a string: Letterboxd leaves it empty
// for some entries and it participates in the natural key as-is.
type Film struct {
	Name          string
	Year          string
	WatchedOn     *time.Time
	Rating        *float64
	LetterboxdURI string
}

// ReadExport parses one export CSV (watched.csv or watchlist.csv layout)
// into film records. Rows without a name are dropped.
// Parameters:
//   - path: CSV export path.
//
// Returns:
//   - []Film: cleaned rows in file order.
//   - error: non-nil if the file cannot be read or parsed.
func ReadExport(path string) ([]Film, error) {
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
		col[strings.ToLower(strings.TrimSpace(h))] = i
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

	var films []Film
	for _, row := range rows {
		name := field(row, "name")
		if name == "" {
			continue
		}
		film := Film{
			Name:          name,
			Year:          field(row, "year"),
			LetterboxdURI: field(row, "letterboxd uri"),
		}
		if d := field(row, "date"); d != "" {
			if t, err := time.Parse("2006-01-02", d); err == nil {
				film.WatchedOn = &t
			}
		}
		if r := field(row, "rating"); r != "" {
			if v, err := strconv.ParseFloat(r, 64); err == nil {
				film.Rating = &v
			}
		}
		films = append(films, film)
	}
	return films, nil
}

// ExportPath returns the conventional path of a shelf export under dir
// (watched.csv or watchlist.csv) if it exists.
// Parameters:
//   - dir: export directory.
//   - shelf: "watched" or "watchlist".
//
// Returns:
//   - string: path to the shelf CSV.
//   - error: non-nil when the file is missing.
func ExportPath(dir, shelf string) (string, error) {
	p := filepath.Join(dir, shelf+".csv")
	if _, err := os.Stat(p); err != nil {
		return "", fmt.Errorf("letterboxd export %s not found: %w", p, err)
	}
	return p, nil
}
