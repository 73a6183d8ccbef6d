// Package catalog implements the in-memory book catalog and its query engine.
//
// A Store holds the last fetched collection. A State holds the user's search,
// category, sort and page selection. Query derives the visible Page from the
// two in four stages: search, category filter, stable sort, paginate.
//
//	page := catalog.Query(store, st)
//	st.PageIndex = page.PageIndex // keep the clamped index
//
// Query is total and pure. Engine wraps it with an LRU keyed by store version
// and normalised state.
package catalog
