package state

import (
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/five82/leaflet/internal/bookstore"
	"github.com/five82/leaflet/internal/catalog"
)

func books(n int) []bookstore.Book {
	out := make([]bookstore.Book, 0, n)
	for i := 1; i <= n; i++ {
		out = append(out, bookstore.Book{ID: int64(i), Title: "T", Author: "A", Price: decimal.NewFromInt(int64(i))})
	}
	return out
}

func TestStore_CompleteLoadsCatalog(t *testing.T) {
	var s Store

	if s.Snapshot().Phase != PhaseLoading {
		t.Fatalf("zero Phase = %v, want loading", s.Snapshot().Phase)
	}

	ticket := s.BeginFetch()
	if !s.InFlight() {
		t.Fatalf("InFlight() = false after BeginFetch")
	}

	before := time.Now()
	if !s.Complete(ticket, books(3), nil) {
		t.Fatalf("Complete returned false for current ticket")
	}

	snap := s.Snapshot()
	if snap.Phase != PhaseReady {
		t.Fatalf("Phase = %v, want ready", snap.Phase)
	}
	if snap.LastUpdated.Before(before) {
		t.Fatalf("LastUpdated = %v, want >= %v", snap.LastUpdated, before)
	}
	if snap.LastError != nil {
		t.Fatalf("LastError = %v, want nil", snap.LastError)
	}
	if s.Catalog().Len() != 3 {
		t.Fatalf("catalog len = %d, want 3", s.Catalog().Len())
	}
	if snap.Version != s.Catalog().Version() {
		t.Fatalf("Version = %d, want %d", snap.Version, s.Catalog().Version())
	}
}

func TestStore_StaleTicketIsDiscarded(t *testing.T) {
	var s Store

	old := s.BeginFetch()
	current := s.BeginFetch()

	if s.Complete(old, books(5), nil) {
		t.Fatalf("Complete accepted a superseded ticket")
	}
	if s.Snapshot().Phase != PhaseLoading {
		t.Fatalf("Phase = %v, want loading after stale result", s.Snapshot().Phase)
	}
	if !s.Complete(current, books(2), nil) {
		t.Fatalf("Complete rejected the current ticket")
	}
	if s.Catalog().Len() != 2 {
		t.Fatalf("catalog len = %d, want 2", s.Catalog().Len())
	}
	if s.Complete(current, books(9), nil) {
		t.Fatalf("Complete accepted the same ticket twice")
	}
}

func TestStore_ErrorKeepsPreviousCatalog(t *testing.T) {
	var s Store

	s.Complete(s.BeginFetch(), books(4), nil)
	s.Complete(s.BeginFetch(), nil, errors.New("boom"))

	snap := s.Snapshot()
	if snap.Phase != PhaseError {
		t.Fatalf("Phase = %v, want error", snap.Phase)
	}
	if snap.LastError == nil || snap.LastError.Error() != "boom" {
		t.Fatalf("LastError = %v, want boom", snap.LastError)
	}
	if s.Catalog().Len() != 4 {
		t.Fatalf("catalog changed on error: len = %d, want 4", s.Catalog().Len())
	}
}

func TestStore_ConsecutiveFailures(t *testing.T) {
	var s Store

	// Initially zero failures
	snap := s.Snapshot()
	if snap.ConsecutiveFailures != 0 {
		t.Fatalf("ConsecutiveFailures = %d, want 0", snap.ConsecutiveFailures)
	}
	if snap.IsOffline() {
		t.Fatal("IsOffline() = true, want false with 0 failures")
	}

	s.Complete(s.BeginFetch(), nil, errors.New("fail 1"))
	snap = s.Snapshot()
	if snap.ConsecutiveFailures != 1 || snap.IsOffline() {
		t.Fatalf("after 1 failure: failures=%d offline=%v", snap.ConsecutiveFailures, snap.IsOffline())
	}

	s.Complete(s.BeginFetch(), nil, errors.New("fail 2"))
	snap = s.Snapshot()
	if snap.ConsecutiveFailures != 2 || !snap.IsOffline() {
		t.Fatalf("after 2 failures: failures=%d offline=%v", snap.ConsecutiveFailures, snap.IsOffline())
	}

	// Success resets counter
	s.Complete(s.BeginFetch(), books(1), nil)
	snap = s.Snapshot()
	if snap.ConsecutiveFailures != 0 {
		t.Fatalf("ConsecutiveFailures = %d, want 0 after success", snap.ConsecutiveFailures)
	}
	if snap.IsOffline() {
		t.Fatal("IsOffline() = true, want false after success")
	}
}

func TestStore_CloseIgnoresLateResults(t *testing.T) {
	var s Store

	s.Complete(s.BeginFetch(), books(2), nil)
	ticket := s.BeginFetch()
	s.Close()

	if s.Complete(ticket, books(7), nil) {
		t.Fatalf("Complete accepted a result after Close")
	}
	if s.Catalog().Loaded() || s.Catalog().Len() != 0 {
		t.Fatalf("catalog not discarded on Close")
	}
	if !s.Closed() {
		t.Fatalf("Closed() = false after Close")
	}
	s.Close()
}

func TestProject(t *testing.T) {
	var s Store
	engine := catalog.NewEngine(4)
	query := catalog.NewState()

	ticket := s.BeginFetch()
	if d := Project(&s, engine, query); d.Kind != DisplayLoading {
		t.Fatalf("Kind = %v, want loading", d.Kind)
	}

	s.Complete(ticket, books(14), nil)
	d := Project(&s, engine, query)
	if d.Kind != DisplayReady {
		t.Fatalf("Kind = %v, want ready", d.Kind)
	}
	if len(d.Page.Books) != catalog.PageSize || d.Page.TotalPages != 2 {
		t.Fatalf("page = %d books over %d pages, want 12 over 2", len(d.Page.Books), d.Page.TotalPages)
	}

	// Refresh from ready re-enters loading.
	ticket = s.BeginFetch()
	if d := Project(&s, engine, query); d.Kind != DisplayLoading {
		t.Fatalf("Kind = %v, want loading on refresh", d.Kind)
	}

	s.Complete(ticket, nil, errors.New("api /api/v1/books returned status 502"))
	d = Project(&s, nil, query)
	if d.Kind != DisplayError {
		t.Fatalf("Kind = %v, want error", d.Kind)
	}
	if d.Message != "api /api/v1/books returned status 502" {
		t.Fatalf("Message = %q, want verbatim error", d.Message)
	}
}

func TestPhaseString(t *testing.T) {
	tests := map[Phase]string{
		PhaseLoading: "loading",
		PhaseError:   "error",
		PhaseReady:   "ready",
		Phase(42):    "unknown",
	}
	for p, want := range tests {
		if got := p.String(); got != want {
			t.Fatalf("Phase(%d).String() = %q, want %q", int(p), got, want)
		}
	}
}
