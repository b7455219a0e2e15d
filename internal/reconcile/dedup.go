package reconcile

import "strings"

// keySep joins natural-key fields. The unit separator cannot appear in
// titles or author names, so joined keys never collide across field
// boundaries.
const keySep = "\x1f"

// Key normalizes a composite natural key: each field is trimmed of
// surrounding whitespace, case left as-is. Case-sensitivity after trimming
// matches the historical loader behavior (see DESIGN.md).
func Key(fields ...string) string {
	trimmed := make([]string, len(fields))
	for i, f := range fields {
		trimmed[i] = strings.TrimSpace(f)
	}
	return strings.Join(trimmed, keySep)
}

// KeySet tracks natural keys already present in the sink plus keys staged
// for insertion within the current run, so duplicates inside one source
// batch are dropped too. First occurrence wins.
type KeySet struct {
	seen map[string]struct{}
}

// NewKeySet returns an empty key set.
func NewKeySet() *KeySet {
	return &KeySet{seen: make(map[string]struct{})}
}

// Contains reports whether the key built from fields has been seen.
func (s *KeySet) Contains(fields ...string) bool {
	_, ok := s.seen[Key(fields...)]
	return ok
}

// Add marks the key built from fields as seen and reports whether it was
// new. Later duplicates return false and should be skipped silently.
func (s *KeySet) Add(fields ...string) bool {
	k := Key(fields...)
	if _, ok := s.seen[k]; ok {
		return false
	}
	s.seen[k] = struct{}{}
	return true
}

// Len returns the number of distinct keys seen.
func (s *KeySet) Len() int {
	return len(s.seen)
}
