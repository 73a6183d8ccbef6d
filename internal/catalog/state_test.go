package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewState_Defaults(t *testing.T) {
	st := NewState()
	assert.Equal(t, "", st.SearchTerm)
	assert.Equal(t, CategoryAll, st.Category)
	assert.Equal(t, SortNewest, st.SortKey)
	assert.Equal(t, 1, st.PageIndex)
}

func TestState_SearchAndCategoryResetPage(t *testing.T) {
	st := NewState()
	st.SetPage(4)
	st.SetSearchTerm("dune")
	assert.Equal(t, 1, st.PageIndex)

	st.SetPage(3)
	st.SetCategory(CategoryHistory)
	assert.Equal(t, 1, st.PageIndex)
	assert.Equal(t, CategoryHistory, st.Category)
}

func TestState_SortPreservesPage(t *testing.T) {
	st := NewState()
	st.SetPage(3)
	st.SetSort(SortPopular)
	assert.Equal(t, 3, st.PageIndex)
	assert.Equal(t, SortPopular, st.SortKey)
}

func TestState_InvalidValuesFallBack(t *testing.T) {
	st := NewState()
	st.SetCategory(Category("poetry"))
	assert.Equal(t, CategoryAll, st.Category)

	st.SetSort(SortKey("alphabetical"))
	assert.Equal(t, SortNewest, st.SortKey)

	st.SetPage(-5)
	assert.Equal(t, 1, st.PageIndex)
	st.PrevPage()
	assert.Equal(t, 1, st.PageIndex)
}

func TestState_CycleWraps(t *testing.T) {
	st := NewState()
	st.CycleCategory(-1)
	assert.Equal(t, CategoryCooking, st.Category)
	st.CycleCategory(1)
	assert.Equal(t, CategoryAll, st.Category)
	st.CycleCategory(2)
	assert.Equal(t, CategoryNonFiction, st.Category)

	st.SetPage(2)
	st.CycleSort(1)
	assert.Equal(t, SortPriceLow, st.SortKey)
	assert.Equal(t, 2, st.PageIndex)
	st.CycleSort(-2)
	assert.Equal(t, SortPopular, st.SortKey)
}

func TestParseCategoryAndLabels(t *testing.T) {
	assert.Equal(t, CategoryNonFiction, ParseCategory(" Non-Fiction "))
	assert.Equal(t, CategoryAll, ParseCategory(""))
	assert.Equal(t, "Non-Fiction", CategoryNonFiction.Label())
	assert.Equal(t, "Science", CategoryScience.Label())
	assert.Equal(t, "All Books", CategoryAll.Label())

	assert.Equal(t, SortPriceHigh, ParseSortKey("PRICE-HIGH"))
	assert.Equal(t, "Newest", SortKey("x").Label())
	assert.Equal(t, "Most Popular", SortPopular.Label())
}
