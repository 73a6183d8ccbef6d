package catalog

import (
	"sort"
	"strings"

	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/five82/leaflet/internal/bookstore"
)

const defaultCacheSize = 64

// Page is one window of a query result.
type Page struct {
	Books      []bookstore.Book
	TotalCount int
	TotalPages int
	// PageIndex is the page actually returned after clamping into [1, TotalPages].
	PageIndex int
}

// Query filters, sorts and paginates the store's books according to st.
// It never fails and does not modify store or st.
func Query(store *Store, st State) Page {
	st = st.normalized()

	books := store.All()
	books = filterBooks(books, func(b bookstore.Book) bool {
		return matchesSearch(b, st.SearchTerm) && matchesCategory(b, st.Category)
	})
	sortBooks(books, st.SortKey)
	return paginate(books, st.PageIndex)
}

// normalizeTerm case-folds the search term. Whitespace is significant.
func normalizeTerm(term string) string {
	return strings.ToLower(term)
}

func matchesSearch(b bookstore.Book, term string) bool {
	if term == "" {
		return true
	}
	return strings.Contains(strings.ToLower(b.Title), term) ||
		strings.Contains(strings.ToLower(b.Author), term)
}

func matchesCategory(b bookstore.Book, c Category) bool {
	if c == CategoryAll {
		return true
	}
	if !b.HasCategory() {
		return false
	}
	return strings.EqualFold(b.Category, string(c))
}

func filterBooks(books []bookstore.Book, keep func(bookstore.Book) bool) []bookstore.Book {
	out := books[:0]
	for _, b := range books {
		if keep(b) {
			out = append(out, b)
		}
	}
	return out
}

func sortBooks(books []bookstore.Book, key SortKey) {
	switch key {
	case SortPriceLow:
		sort.SliceStable(books, func(i, j int) bool {
			return books[i].Price.LessThan(books[j].Price)
		})
	case SortPriceHigh:
		sort.SliceStable(books, func(i, j int) bool {
			return books[i].Price.GreaterThan(books[j].Price)
		})
	case SortPopular:
		sort.SliceStable(books, func(i, j int) bool {
			return books[i].Reviews > books[j].Reviews
		})
	default:
		// Higher IDs are newer.
		sort.SliceStable(books, func(i, j int) bool {
			return books[i].ID > books[j].ID
		})
	}
}

func paginate(books []bookstore.Book, pageIndex int) Page {
	total := len(books)
	pages := (total + PageSize - 1) / PageSize
	if pages < 1 {
		pages = 1
	}
	if pageIndex < 1 {
		pageIndex = 1
	}
	if pageIndex > pages {
		pageIndex = pages
	}

	start := (pageIndex - 1) * PageSize
	end := start + PageSize
	if end > total {
		end = total
	}
	window := make([]bookstore.Book, 0, end-start)
	window = append(window, books[start:end]...)

	return Page{
		Books:      window,
		TotalCount: total,
		TotalPages: pages,
		PageIndex:  pageIndex,
	}
}

type cacheKey struct {
	store   *Store
	version uint64
	state   State
}

// Engine memoises Query results by store version and normalised state.
// It is not safe for concurrent use.
type Engine struct {
	cache *lru.Cache[cacheKey, Page]
	hits  int
}

// NewEngine returns an Engine caching up to size results. Non-positive sizes use a default.
func NewEngine(size int) *Engine {
	if size <= 0 {
		size = defaultCacheSize
	}
	cache, err := lru.New[cacheKey, Page](size)
	if err != nil {
		// lru.New only fails on non-positive sizes.
		panic(err)
	}
	return &Engine{cache: cache}
}

// Query returns the same result as the package-level Query.
func (e *Engine) Query(store *Store, st State) Page {
	if e == nil || e.cache == nil {
		return Query(store, st)
	}
	key := cacheKey{store: store, version: store.Version(), state: st.normalized()}
	if page, ok := e.cache.Get(key); ok {
		e.hits++
		return clonePage(page)
	}
	page := Query(store, st)
	e.cache.Add(key, page)
	return clonePage(page)
}

// Purge drops every cached result.
func (e *Engine) Purge() {
	if e == nil || e.cache == nil {
		return
	}
	e.cache.Purge()
}

// Hits reports how many queries were answered from the cache.
func (e *Engine) Hits() int {
	if e == nil {
		return 0
	}
	return e.hits
}

func clonePage(p Page) Page {
	books := make([]bookstore.Book, len(p.Books))
	copy(books, p.Books)
	p.Books = books
	return p
}
