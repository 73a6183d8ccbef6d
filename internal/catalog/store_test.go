package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStore_LoadReplacesAndDedupes(t *testing.T) {
	var s Store
	assert.False(t, s.Loaded())
	assert.Nil(t, s.All())

	s.Load(fictionShelf(3))
	require.True(t, s.Loaded())
	assert.Equal(t, 3, s.Len())
	v1 := s.Version()

	dup := book(2, "Duplicate", "Other", "art", "1", 0)
	s.Load(append(fictionShelf(2), dup))
	assert.Equal(t, 2, s.Len())
	assert.Equal(t, "Novel 2", s.All()[1].Title, "first occurrence wins")
	assert.Greater(t, s.Version(), v1)
}

func TestStore_AllReturnsCopy(t *testing.T) {
	var s Store
	s.Load(fictionShelf(2))

	books := s.All()
	books[0].Title = "mutated"
	assert.Equal(t, "Novel 1", s.All()[0].Title)
}

func TestStore_LoadEmptyIsLoaded(t *testing.T) {
	var s Store
	s.Load(nil)
	assert.True(t, s.Loaded())
	assert.Equal(t, 0, s.Len())
}

func TestStore_Discard(t *testing.T) {
	var s Store
	s.Load(fictionShelf(2))
	v := s.Version()

	s.Discard()
	assert.False(t, s.Loaded())
	assert.Equal(t, 0, s.Len())
	assert.Greater(t, s.Version(), v)
}

func TestStore_NilReceiver(t *testing.T) {
	var s *Store
	assert.NotPanics(t, func() { s.Discard() })
	assert.Nil(t, s.All())
	assert.Equal(t, 0, s.Len())
	assert.False(t, s.Loaded())
	assert.Equal(t, uint64(0), s.Version())
}
