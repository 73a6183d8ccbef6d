package catalog

import "strings"

// PageSize is the fixed number of books on one page.
const PageSize = 12

// Category is one of the fixed catalog sections.
type Category string

const (
	CategoryAll        Category = "all"
	CategoryFiction    Category = "fiction"
	CategoryNonFiction Category = "non-fiction"
	CategoryScience    Category = "science"
	CategoryHistory    Category = "history"
	CategoryArt        Category = "art"
	CategoryPsychology Category = "psychology"
	CategoryBusiness   Category = "business"
	CategoryTechnology Category = "technology"
	CategoryCooking    Category = "cooking"
)

// Categories lists every selectable category in display order.
var Categories = []Category{
	CategoryAll,
	CategoryFiction,
	CategoryNonFiction,
	CategoryScience,
	CategoryHistory,
	CategoryArt,
	CategoryPsychology,
	CategoryBusiness,
	CategoryTechnology,
	CategoryCooking,
}

// ParseCategory maps free text onto a known category. Unknown values become CategoryAll.
func ParseCategory(s string) Category {
	s = strings.ToLower(strings.TrimSpace(s))
	for _, c := range Categories {
		if string(c) == s {
			return c
		}
	}
	return CategoryAll
}

// Label is the human-readable name of the category.
func (c Category) Label() string {
	switch c {
	case CategoryAll:
		return "All Books"
	case CategoryNonFiction:
		return "Non-Fiction"
	}
	s := string(c)
	if s == "" {
		return ""
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

// SortKey selects the ordering of query results.
type SortKey string

const (
	SortNewest    SortKey = "newest"
	SortPriceLow  SortKey = "price-low"
	SortPriceHigh SortKey = "price-high"
	SortPopular   SortKey = "popular"
)

// SortKeys lists every sort key in display order.
var SortKeys = []SortKey{SortNewest, SortPriceLow, SortPriceHigh, SortPopular}

// ParseSortKey maps free text onto a known sort key. Unknown values become SortNewest.
func ParseSortKey(s string) SortKey {
	s = strings.ToLower(strings.TrimSpace(s))
	for _, k := range SortKeys {
		if string(k) == s {
			return k
		}
	}
	return SortNewest
}

// Label is the human-readable name of the sort key.
func (k SortKey) Label() string {
	switch k {
	case SortPriceLow:
		return "Price: Low to High"
	case SortPriceHigh:
		return "Price: High to Low"
	case SortPopular:
		return "Most Popular"
	default:
		return "Newest"
	}
}

func indexOf[T comparable](list []T, v T) int {
	for i, item := range list {
		if item == v {
			return i
		}
	}
	return 0
}

func cycle[T comparable](list []T, current T, delta int) T {
	n := len(list)
	i := (indexOf(list, current) + delta) % n
	if i < 0 {
		i += n
	}
	return list[i]
}
