package directory

import (
	"fmt"
	"testing"

	"github.com/redoficios2025-Inicial/redoficios-gateway/internal/domain/profile"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func workers(n int) []profile.Profile {
	out := make([]profile.Profile, n)
	for i := range out {
		out[i] = profile.Profile{
			UserID: fmt.Sprintf("w%d", i+1),
			Name:   fmt.Sprintf("Trabajadora %d", i+1),
			Rating: 5 - float64(i)*0.1,
		}
	}
	return out
}

func TestFilter_MatchesAllProfileFields(t *testing.T) {
	profiles := []profile.Profile{
		{UserID: "w1", Name: "Mariela S.", Profession: "Limpieza", Locality: "Alcorta", Tags: []string{"Limpieza profunda"}},
		{UserID: "w2", Name: "Rosa L.", Profession: "Electricista", Locality: "Firmat", Tags: []string{"Instalaciones"}},
	}

	assert.Len(t, Filter(profiles, "limpieza"), 1)
	assert.Len(t, Filter(profiles, "ELECTRI"), 1)
	assert.Len(t, Filter(profiles, "firmat"), 1)
	assert.Len(t, Filter(profiles, "rosa"), 1)
	assert.Len(t, Filter(profiles, ""), 2)
	assert.Len(t, Filter(profiles, "   "), 2)
	assert.Empty(t, Filter(profiles, "plomeria"))
}

func TestSortByRating_Descending(t *testing.T) {
	profiles := []profile.Profile{
		{UserID: "a", Rating: 3.9},
		{UserID: "b", Rating: 5.0},
		{UserID: "c", Rating: 4.2},
	}
	SortByRating(profiles)
	assert.Equal(t, "b", profiles[0].UserID)
	assert.Equal(t, "c", profiles[1].UserID)
	assert.Equal(t, "a", profiles[2].UserID)
}

func TestPaginate_SevenProfilesPageSizeThree(t *testing.T) {
	profiles := workers(7)

	p1 := Paginate(profiles, 1, 3)
	require.Len(t, p1.Items, 3)
	assert.Equal(t, "w1", p1.Items[0].UserID)
	assert.Equal(t, "w3", p1.Items[2].UserID)
	assert.Equal(t, 3, p1.TotalPages)
	assert.True(t, p1.HasNextPage)
	assert.False(t, p1.HasPrevPage)

	p3 := Paginate(profiles, 3, 3)
	require.Len(t, p3.Items, 1)
	assert.Equal(t, "w7", p3.Items[0].UserID)
	assert.False(t, p3.HasNextPage)
	assert.True(t, p3.HasPrevPage)
}

func TestPaginate_ClampsOutOfRangePage(t *testing.T) {
	profiles := workers(7)

	past := Paginate(profiles, 9, 3)
	assert.Equal(t, 3, past.CurrentPage)
	require.Len(t, past.Items, 1)
	assert.Equal(t, "w7", past.Items[0].UserID)

	before := Paginate(profiles, 0, 3)
	assert.Equal(t, 1, before.CurrentPage)
}

func TestPaginate_EmptyList(t *testing.T) {
	p := Paginate(nil, 5, 3)
	assert.Empty(t, p.Items)
	assert.Equal(t, 0, p.TotalPages)
	assert.False(t, p.HasNextPage)
	assert.False(t, p.HasPrevPage)
}
