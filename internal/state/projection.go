package state

import "github.com/five82/leaflet/internal/catalog"

// DisplayKind says which of the three view states applies.
type DisplayKind int

const (
	DisplayLoading DisplayKind = iota
	DisplayError
	DisplayReady
)

// Display is what the view renders: a spinner, an error message or a page.
type Display struct {
	Kind    DisplayKind
	Message string
	Page    catalog.Page
}

// Project derives the display for query from the store's fetch status.
// A nil engine evaluates the query uncached.
func Project(s *Store, engine *catalog.Engine, query catalog.State) Display {
	snap := s.Snapshot()
	switch snap.Phase {
	case PhaseError:
		msg := "unknown error"
		if snap.LastError != nil {
			msg = snap.LastError.Error()
		}
		return Display{Kind: DisplayError, Message: msg}
	case PhaseReady:
		return Display{Kind: DisplayReady, Page: engine.Query(s.Catalog(), query)}
	default:
		return Display{Kind: DisplayLoading, Message: "Loading books..."}
	}
}
