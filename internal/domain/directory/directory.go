package directory

import (
	"sort"
	"strings"

	"github.com/redoficios2025-Inicial/redoficios-gateway/internal/domain/profile"
)

const DefaultPageSize = 3

// Page is one window over an already-filtered, in-memory profile list.
// Navigation never touches the network; the full list is fetched once and
// sliced here.
type Page struct {
	Items       []profile.Profile `json:"items"`
	TotalItems  int               `json:"total_items"`
	TotalPages  int               `json:"total_pages"`
	CurrentPage int               `json:"current_page"`
	HasNextPage bool              `json:"has_next_page"`
	HasPrevPage bool              `json:"has_prev_page"`
}

// Filter keeps the profiles whose name, profession, tags or locality contain
// the query, case-insensitively. An empty or whitespace query matches
// everything.
func Filter(profiles []profile.Profile, query string) []profile.Profile {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return profiles
	}
	out := make([]profile.Profile, 0, len(profiles))
	for _, p := range profiles {
		if strings.Contains(p.SearchText(), q) {
			out = append(out, p)
		}
	}
	return out
}

// SortByRating orders profiles by average rating, best first. The sort is
// stable so equally rated profiles keep their fetch order.
func SortByRating(profiles []profile.Profile) {
	sort.SliceStable(profiles, func(i, j int) bool {
		return profiles[i].Rating > profiles[j].Rating
	})
}

// Paginate slices the list into the requested page. The page number is
// clamped to [1, totalPages] so a shrunken result set can never strand the
// caller past the end.
func Paginate(profiles []profile.Profile, page, pageSize int) Page {
	if pageSize <= 0 {
		pageSize = DefaultPageSize
	}

	totalItems := len(profiles)
	totalPages := (totalItems + pageSize - 1) / pageSize

	if page < 1 || totalPages == 0 {
		page = 1
	}
	if totalPages > 0 && page > totalPages {
		page = totalPages
	}

	start := (page - 1) * pageSize
	end := start + pageSize
	if start > totalItems {
		start = totalItems
	}
	if end > totalItems {
		end = totalItems
	}

	return Page{
		Items:       profiles[start:end],
		TotalItems:  totalItems,
		TotalPages:  totalPages,
		CurrentPage: page,
		HasNextPage: page < totalPages,
		HasPrevPage: page > 1,
	}
}
