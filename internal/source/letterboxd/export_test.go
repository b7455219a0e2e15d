package letterboxd

import (
	"os"
	"path/filepath"
	"testing"
)

func TestReadExportParsesShelfFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "watched.csv")
	content := `Date,Name,Year,Letterboxd URI,Rating
2024-05-01,Dune,2021,https://boxd.it/a,4.5
2024-05-02,Home Movie,,https://boxd.it/b,
bad-date,Stalker,1979,https://boxd.it/c,5
2024-05-03,,1999,https://boxd.it/d,3
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	films, err := ReadExport(path)
	if err != nil {
		t.Fatalf("ReadExport() error = %v", err)
	}
	// The nameless row is dropped.
	if len(films) != 3 {
		t.Fatalf("parsed %d rows, want 3", len(films))
	}

	dune := films[0]
	if dune.Name != "Dune" || dune.Year != "2021" {
		t.Errorf("row = %q (%q), want Dune (2021)", dune.Name, dune.Year)
	}
	if dune.WatchedOn == nil {
		t.Error("WatchedOn = nil, want parsed date")
	}
	if dune.Rating == nil || *dune.Rating != 4.5 {
		t.Errorf("Rating = %v, want 4.5", dune.Rating)
	}

	// Empty year survives as the empty string; it is part of the key.
	if films[1].Year != "" {
		t.Errorf("Year = %q, want empty", films[1].Year)
	}
	if films[1].Rating != nil {
		t.Errorf("empty rating should parse as nil, got %v", *films[1].Rating)
	}

	// An unparseable date leaves WatchedOn nil without dropping the row.
	if films[2].Name != "Stalker" || films[2].WatchedOn != nil {
		t.Errorf("row = %+v, want Stalker with nil WatchedOn", films[2])
	}
}

func TestExportPathRequiresFile(t *testing.T) {
	dir := t.TempDir()
	if _, err := ExportPath(dir, "watched"); err == nil {
		t.Fatal("ExportPath() error = nil, want missing file failure")
	}

	p := filepath.Join(dir, "watchlist.csv")
	if err := os.WriteFile(p, []byte("Date,Name,Year,Letterboxd URI\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	got, err := ExportPath(dir, "watchlist")
	if err != nil {
		t.Fatalf("ExportPath() error = %v", err)
	}
	if got != p {
		t.Errorf("ExportPath() = %s, want %s", got, p)
	}
}
