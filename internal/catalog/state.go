package catalog

// State is the user's current search, filter, sort and page selection.
type State struct {
	SearchTerm string
	Category   Category
	SortKey    SortKey
	PageIndex  int
}

// NewState returns the default selection: no search, all categories, newest first, page 1.
func NewState() State {
	return State{
		Category:  CategoryAll,
		SortKey:   SortNewest,
		PageIndex: 1,
	}
}

// SetSearchTerm updates the search text and returns to the first page.
func (s *State) SetSearchTerm(term string) {
	s.SearchTerm = term
	s.PageIndex = 1
}

// SetCategory selects a category and returns to the first page. Unknown
// categories select CategoryAll.
func (s *State) SetCategory(c Category) {
	s.Category = ParseCategory(string(c))
	s.PageIndex = 1
}

// SetSort changes the ordering. The page is kept.
func (s *State) SetSort(k SortKey) {
	s.SortKey = ParseSortKey(string(k))
}

// SetPage moves to page n. Values below 1 select page 1; the upper bound is
// applied by the next query.
func (s *State) SetPage(n int) {
	if n < 1 {
		n = 1
	}
	s.PageIndex = n
}

// NextPage moves one page forward.
func (s *State) NextPage() { s.SetPage(s.PageIndex + 1) }

// PrevPage moves one page back, stopping at page 1.
func (s *State) PrevPage() { s.SetPage(s.PageIndex - 1) }

// CycleCategory steps through Categories by delta, wrapping at either end.
func (s *State) CycleCategory(delta int) {
	s.SetCategory(cycle(Categories, ParseCategory(string(s.Category)), delta))
}

// CycleSort steps through SortKeys by delta, wrapping at either end.
func (s *State) CycleSort(delta int) {
	s.SetSort(cycle(SortKeys, ParseSortKey(string(s.SortKey)), delta))
}

// normalized returns the state in the form the engine evaluates it.
func (s State) normalized() State {
	out := State{
		SearchTerm: normalizeTerm(s.SearchTerm),
		Category:   ParseCategory(string(s.Category)),
		SortKey:    ParseSortKey(string(s.SortKey)),
		PageIndex:  s.PageIndex,
	}
	if out.PageIndex < 1 {
		out.PageIndex = 1
	}
	return out
}
