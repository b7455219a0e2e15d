package reconcile

import "testing"

func TestKeyTrimsFields(t *testing.T) {
	testCases := []struct {
		name string
		a    []string
		b    []string
		same bool
	}{
		{
			name: "surrounding whitespace ignored",
			a:    []string{" Dune ", "Frank Herbert"},
			b:    []string{"Dune", " Frank Herbert "},
			same: true,
		},
		{
			name: "case matters",
			a:    []string{"dune", "Frank Herbert"},
			b:    []string{"Dune", "Frank Herbert"},
			same: false,
		},
		{
			name: "field boundaries preserved",
			a:    []string{"ab", "c"},
			b:    []string{"a", "bc"},
			same: false,
		},
		{
			name: "inner whitespace preserved",
			a:    []string{"Dune  Messiah", "Frank Herbert"},
			b:    []string{"Dune Messiah", "Frank Herbert"},
			same: false,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			if got := Key(tc.a...) == Key(tc.b...); got != tc.same {
				t.Errorf("Key(%q) == Key(%q): got %v, want %v", tc.a, tc.b, got, tc.same)
			}
		})
	}
}

func TestKeySetSkipsExistingSinkKeys(t *testing.T) {
	// Sink already holds ("Dune", "Frank Herbert"); the source batch
	// re-offers it plus one genuinely new book.
	set := NewKeySet()
	set.Add("Dune", "Frank Herbert")

	batch := [][2]string{
		{"Dune", "Frank Herbert"},
		{"Dune Messiah", "Frank Herbert"},
	}

	var inserted [][2]string
	for _, b := range batch {
		if set.Add(b[0], b[1]) {
			inserted = append(inserted, b)
		}
	}

	if len(inserted) != 1 {
		t.Fatalf("inserted %d records, want 1", len(inserted))
	}
	if inserted[0] != [2]string{"Dune Messiah", "Frank Herbert"} {
		t.Errorf("inserted %v, want Dune Messiah", inserted[0])
	}
}

func TestKeySetFirstOccurrenceWinsWithinRun(t *testing.T) {
	set := NewKeySet()

	if !set.Add("Solaris", "Stanisław Lem") {
		t.Fatal("first occurrence should be new")
	}
	if set.Add("Solaris ", " Stanisław Lem") {
		t.Error("trimmed duplicate within the same run should be dropped")
	}
	if set.Len() != 1 {
		t.Errorf("set holds %d keys, want 1", set.Len())
	}
}

func TestKeySetContains(t *testing.T) {
	set := NewKeySet()
	set.Add("Arrival", "2016")

	if !set.Contains(" Arrival", "2016 ") {
		t.Error("Contains should match after trimming")
	}
	if set.Contains("arrival", "2016") {
		t.Error("Contains must stay case-sensitive")
	}
}
