package catalog

import "github.com/five82/leaflet/internal/bookstore"

// Store holds the last fetched book collection. The collection is replaced
// wholesale by Load and never patched in place.
//
// Store is not safe for concurrent use; it is owned by the UI update loop.
type Store struct {
	books   []bookstore.Book
	version uint64
	loaded  bool
}

// Load replaces the collection. Records with a duplicate ID after the first
// occurrence are skipped.
func (s *Store) Load(books []bookstore.Book) {
	seen := make(map[int64]struct{}, len(books))
	next := make([]bookstore.Book, 0, len(books))
	for _, b := range books {
		if _, dup := seen[b.ID]; dup {
			continue
		}
		seen[b.ID] = struct{}{}
		next = append(next, b)
	}
	s.books = next
	s.loaded = true
	s.version++
}

// All returns a copy of the current collection.
func (s *Store) All() []bookstore.Book {
	if s == nil || len(s.books) == 0 {
		return nil
	}
	dup := make([]bookstore.Book, len(s.books))
	copy(dup, s.books)
	return dup
}

// Len reports the number of books held.
func (s *Store) Len() int {
	if s == nil {
		return 0
	}
	return len(s.books)
}

// Loaded reports whether a collection has been loaded since creation or the last Discard.
func (s *Store) Loaded() bool {
	return s != nil && s.loaded
}

// Version increases on every Load and Discard.
func (s *Store) Version() uint64 {
	if s == nil {
		return 0
	}
	return s.version
}

// Discard empties the store.
func (s *Store) Discard() {
	if s == nil {
		return
	}
	s.books = nil
	s.loaded = false
	s.version++
}
