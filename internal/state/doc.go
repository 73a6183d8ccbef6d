// Package state tracks the fetch lifecycle of a catalog view and projects it
// onto what the UI renders.
//
// Store owns one catalog.Store. A fetch is started with BeginFetch, which
// returns a Ticket, and finished with Complete. Only the latest ticket is
// accepted, so a refresh issued while a fetch is outstanding supersedes it,
// and nothing is applied after Close:
//
//	t := store.BeginFetch()
//	books, err := client.FetchBooks(ctx) // run inside a tea.Cmd
//	store.Complete(t, books, err)        // back on the update loop
//
// Project maps the store onto a Display: loading while a fetch is in flight,
// the error text after a failure, or the queried page once ready. A failed
// fetch keeps the previously loaded catalog, but the view shows the error
// until the next successful fetch.
//
// The store has no lock. It is mutated only from the Bubble Tea update loop.
package state
