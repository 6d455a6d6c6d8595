// Package feed filters and paginates item collections for the public
// listing. Everything here is a pure function over slices: the store is
// the source of truth and the feed never mutates it.
package feed

import (
	"errors"
	"strings"

	"github.com/erazemk/najdeno/internal/model"
)

// CategoryAll is the sentinel category that disables category filtering.
const CategoryAll = "All"

// DefaultPageSize is the page size used by the public feed.
const DefaultPageSize = 6

// ErrPageOutOfRange is returned by Paginate for a page outside
// [1, totalPages]. Callers clamp the requested page before calling.
var ErrPageOutOfRange = errors.New("page out of range")

// Search filters items by a case-insensitive substring match of query
// against the item name or place, and by exact category. An empty query
// matches everything; CategoryAll (or an empty category) disables the
// category filter. With both filters disabled the input is returned as is.
func Search(items []model.Item, query, category string) []model.Item {
	if query == "" && (category == "" || category == CategoryAll) {
		return items
	}

	q := strings.ToLower(query)
	var out []model.Item
	for _, item := range items {
		if q != "" &&
			!strings.Contains(strings.ToLower(item.Name), q) &&
			!strings.Contains(strings.ToLower(item.Place), q) {
			continue
		}
		if category != "" && category != CategoryAll && item.Category != category {
			continue
		}
		out = append(out, item)
	}
	return out
}

// Paginate slices seq into pages of pageSize and returns the requested
// page along with the total page count. Page numbers start at 1. An empty
// sequence has zero pages; requesting page 1 of it returns an empty page
// (the feed shows "no results" without a pagination control). Any other
// page outside [1, totalPages] is a contract violation.
func Paginate[T any](seq []T, pageSize, page int) ([]T, int, error) {
	if pageSize < 1 {
		return nil, 0, errors.New("page size must be positive")
	}

	totalPages := (len(seq) + pageSize - 1) / pageSize

	if page == 1 && totalPages == 0 {
		return []T{}, 0, nil
	}
	if page < 1 || page > totalPages {
		return nil, totalPages, ErrPageOutOfRange
	}

	start := (page - 1) * pageSize
	end := start + pageSize
	if end > len(seq) {
		end = len(seq)
	}
	return seq[start:end], totalPages, nil
}

// ClampPage forces page into the valid range for the given total, treating
// an empty result set as a single empty page.
func ClampPage(page, totalPages int) int {
	if page < 1 {
		return 1
	}
	if totalPages > 0 && page > totalPages {
		return totalPages
	}
	if totalPages == 0 {
		return 1
	}
	return page
}

// Categories returns CategoryAll followed by the distinct categories of
// items in first-seen order, for building the feed's category filter.
func Categories(items []model.Item) []string {
	out := []string{CategoryAll}
	seen := map[string]bool{}
	for _, item := range items {
		if item.Category == "" || seen[item.Category] {
			continue
		}
		seen[item.Category] = true
		out = append(out, item.Category)
	}
	return out
}
