package goodreads

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestHeaderToSnake(t *testing.T) {
	testCases := []struct {
		name   string
		header string
		want   string
	}{
		{name: "simple", header: "Title", want: "title"},
		{name: "spaces", header: "Number of Pages", want: "number_of_pages"},
		{name: "punctuation", header: "Author l-f", want: "author_l_f"},
		{name: "padded", header: "  Date Read  ", want: "date_read"},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			if got := headerToSnake(tc.header); got != tc.want {
				t.Errorf("headerToSnake(%q) = %q, want %q", tc.header, got, tc.want)
			}
		})
	}
}

func TestCleanISBN(t *testing.T) {
	testCases := []struct {
		name string
		raw  string
		want string
	}{
		{name: "wrapped", raw: `="0441013597"`, want: "0441013597"},
		{name: "empty wrapper", raw: `=""`, want: ""},
		{name: "plain", raw: "0441013597", want: "0441013597"},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			if got := cleanISBN(tc.raw); got != tc.want {
				t.Errorf("cleanISBN(%q) = %q, want %q", tc.raw, got, tc.want)
			}
		})
	}
}

func TestParseExportDate(t *testing.T) {
	slash := parseExportDate("2024/03/01")
	if slash == nil || !slash.Equal(time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)) {
		t.Errorf("parseExportDate slash format = %v", slash)
	}
	long := parseExportDate("Mar 01, 2024")
	if long == nil || !long.Equal(time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)) {
		t.Errorf("parseExportDate long format = %v", long)
	}
	if parseExportDate("not set") != nil {
		t.Error(`parseExportDate("not set") != nil`)
	}
	if parseExportDate("") != nil {
		t.Error(`parseExportDate("") != nil`)
	}
}

func TestFindLatestExportPicksNewestFile(t *testing.T) {
	dir := t.TempDir()
	older := filepath.Join(dir, "goodreads_library_export_2023.csv")
	newer := filepath.Join(dir, "goodreads_library_export_2024.csv")
	for _, p := range []string{older, newer} {
		if err := os.WriteFile(p, []byte("Title,Author\n"), 0o644); err != nil {
			t.Fatal(err)
		}
	}
	old := time.Now().Add(-24 * time.Hour)
	if err := os.Chtimes(older, old, old); err != nil {
		t.Fatal(err)
	}

	got, err := FindLatestExport(dir)
	if err != nil {
		t.Fatalf("FindLatestExport() error = %v", err)
	}
	if got != newer {
		t.Errorf("FindLatestExport() = %s, want %s", got, newer)
	}
}

func TestReadExportCleansRows(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "goodreads_library_export.csv")
	content := `Title,Author,My Rating,Number of Pages,Date Read,Date Added,ISBN,Binding
Dune,Frank Herbert,0,unknown,not set,2024/01/15,"=""""",Paperback
,Ghost Author,5,100,2024/03/01,2024/01/01,,Hardcover
Dune Messiah,Frank Herbert,4,256,2024/03/01,2024/01/20,"=""0441172695""",Paperback
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	books, err := ReadExport(path)
	if err != nil {
		t.Fatalf("ReadExport() error = %v", err)
	}
	// The titleless row is dropped.
	if len(books) != 2 {
		t.Fatalf("parsed %d rows, want 2", len(books))
	}

	dune := books[0]
	if dune.Rating != nil {
		t.Errorf("zero rating should parse as nil, got %v", *dune.Rating)
	}
	if dune.Pages != nil {
		t.Errorf(`pages "unknown" should parse as nil, got %v`, *dune.Pages)
	}
	if dune.DateRead != nil {
		t.Errorf(`date "not set" should parse as nil, got %v`, dune.DateRead)
	}
	if dune.ISBN != "" {
		t.Errorf("empty ISBN wrapper should clean to \"\", got %q", dune.ISBN)
	}

	messiah := books[1]
	if messiah.Rating == nil || *messiah.Rating != 4 {
		t.Errorf("Rating = %v, want 4", messiah.Rating)
	}
	if messiah.Pages == nil || *messiah.Pages != 256 {
		t.Errorf("Pages = %v, want 256", messiah.Pages)
	}
	if messiah.ISBN != "0441172695" {
		t.Errorf("ISBN = %q, want 0441172695", messiah.ISBN)
	}
}
