package state

import (
	"time"

	"github.com/five82/leaflet/internal/bookstore"
	"github.com/five82/leaflet/internal/catalog"
)

// Phase is the fetch lifecycle stage of a view.
type Phase int

const (
	PhaseLoading Phase = iota
	PhaseError
	PhaseReady
)

func (p Phase) String() string {
	switch p {
	case PhaseLoading:
		return "loading"
	case PhaseError:
		return "error"
	case PhaseReady:
		return "ready"
	default:
		return "unknown"
	}
}

// Ticket identifies one fetch. Only the most recent ticket may complete.
type Ticket uint64

// Snapshot represents the fetch status available to the UI.
type Snapshot struct {
	Phase               Phase
	LastUpdated         time.Time
	LastError           error
	ConsecutiveFailures int // Number of consecutive fetch failures
	Version             uint64
}

// IsOffline returns true when the API has been unreachable for multiple fetches.
func (s Snapshot) IsOffline() bool {
	return s.ConsecutiveFailures >= 2
}

// Store tracks the fetch lifecycle of one view and owns its catalog.
// A zero Store is in the loading phase with no fetch issued yet.
//
// Store is not safe for concurrent use; results are delivered to it as
// messages on the UI update loop.
type Store struct {
	catalog  catalog.Store
	snapshot Snapshot
	current  Ticket
	inFlight bool
	closed   bool
}

// BeginFetch enters the loading phase and returns the ticket the result must
// be completed with. Any earlier outstanding ticket is superseded.
func (s *Store) BeginFetch() Ticket {
	s.current++
	s.inFlight = true
	if !s.closed {
		s.snapshot.Phase = PhaseLoading
	}
	return s.current
}

// Complete applies a fetch result. It reports false, and changes nothing,
// when the ticket is stale or the store is closed. When err is non-nil the
// previous catalog is kept but the view shows the error.
func (s *Store) Complete(t Ticket, books []bookstore.Book, err error) bool {
	if s.closed || t != s.current || !s.inFlight {
		return false
	}
	s.inFlight = false
	s.snapshot.LastUpdated = time.Now()

	if err != nil {
		s.snapshot.Phase = PhaseError
		s.snapshot.LastError = err
		s.snapshot.ConsecutiveFailures++
		return true
	}

	s.catalog.Load(books)
	s.snapshot.Phase = PhaseReady
	s.snapshot.LastError = nil
	s.snapshot.ConsecutiveFailures = 0
	s.snapshot.Version = s.catalog.Version()
	return true
}

// InFlight reports whether a fetch is outstanding.
func (s *Store) InFlight() bool {
	return s.inFlight
}

// Close discards the catalog. Later results are ignored.
func (s *Store) Close() {
	if s.closed {
		return
	}
	s.closed = true
	s.inFlight = false
	s.catalog.Discard()
}

// Closed reports whether Close has been called.
func (s *Store) Closed() bool {
	return s.closed
}

// Snapshot returns a copy of the current fetch status.
func (s *Store) Snapshot() Snapshot {
	return s.snapshot
}

// Catalog exposes the catalog for querying. Callers must not Load into it.
func (s *Store) Catalog() *catalog.Store {
	return &s.catalog
}
