// Package ui is leaflet's terminal interface, built on Bubble Tea.
//
// Model follows the Elm architecture: Update handles input and fetch results,
// and View renders from the current state only.
// Network calls never run inside Update. They are tea.Cmd functions that
// return a booksMsg tagged with the state.Ticket issued when the fetch began,
// so a slow response that has been superseded is dropped.
//
// # Views
//
//   - Catalog: the full book list (GET /api/v1/books)
//   - New Arrivals: recently added books (GET /api/v1/books/new), fetched on first visit
//   - Activity: the tail of leaflet's own log file
//
// Catalog and New Arrivals each own a browser: a state.Store, a catalog.State
// (search term, category, sort key, page) and the selected row. Every change to
// the query re-runs state.Project and writes the clamped page index back, so
// the page shown and the page stored never disagree.
//
// # Layout
//
//	leaflet  http://localhost:8080  ● READY  Books: 42  14:02:11 (now)
//	/:Search  c:Fiction  s:Newest  ←/→:Page  j/k:Navigate  x:Delete ...
//	┌──── Catalog (14) ────┐┌──── Details ────┐
//	│ 14 books in Fiction  ││ Dune            │
//	│ #12 Dune · Herbert   ││ Frank Herbert   │
//	│ ...                  ││ ...             │
//	│ ‹ Prev ●○ Next › ... ││                 │
//	└──────────────────────┘└─────────────────┘
//
// # Key Bindings
//
//   - q / N / L: Catalog, New Arrivals, Activity
//   - tab: cycle views; esc returns to the catalog or clears the search
//   - /: live search on title and author
//   - c / C, s / S: cycle category and sort forward and back
//   - ←/→, [ / ]: previous and next page
//   - j/k, g/G: move the selection
//   - x: delete the selected book after confirmation
//   - r: refresh the current view
//   - T: cycle theme (persisted with the sort key in prefs.toml)
//   - h/?: help; e or ctrl+c: quit
package ui
