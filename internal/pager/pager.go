// Package pager slices filtered record sequences into fixed-size pages and
// computes navigable page-number windows.
package pager

// DefaultPageSize is the number of rows shown per history page.
const DefaultPageSize = 10

// maxVisiblePages bounds the page-number window shown in navigation.
const maxVisiblePages = 5

// Page describes one page of a paginated sequence.
type Page struct {
	// StartIndex and EndIndex are the half-open [start, end) bounds of
	// this page within the full sequence.
	StartIndex int
	EndIndex   int
	// Number is the clamped current page, 1-based.
	Number int
	// TotalPages is ceil(total/size); 0 for an empty sequence.
	TotalPages int
	// Total is the length of the full sequence.
	Total int
}

// Paginate computes the page window for a sequence of the given length.
// pageSize values < 1 fall back to DefaultPageSize. The requested page is
// clamped to [1, totalPages]; it never wraps.
func Paginate(total, pageSize, page int) Page {
	if pageSize < 1 {
		pageSize = DefaultPageSize
	}

	totalPages := (total + pageSize - 1) / pageSize

	if page < 1 {
		page = 1
	}
	if totalPages > 0 && page > totalPages {
		page = totalPages
	}

	start := (page - 1) * pageSize
	end := start + pageSize
	if start > total {
		start = total
	}
	if end > total {
		end = total
	}

	return Page{
		StartIndex: start,
		EndIndex:   end,
		Number:     page,
		TotalPages: totalPages,
		Total:      total,
	}
}

// Slice returns the records on the page. It is a convenience over
// Paginate's index window.
func Slice[T any](items []T, pageSize, page int) ([]T, Page) {
	p := Paginate(len(items), pageSize, page)
	return items[p.StartIndex:p.EndIndex], p
}

// HasPrev reports whether a previous page exists.
func (p Page) HasPrev() bool { return p.Number > 1 }

// HasNext reports whether a following page exists.
func (p Page) HasNext() bool { return p.Number < p.TotalPages }

// PageNumbers returns the up-to-5 page numbers to show in navigation,
// centered on the current page and clamped to [1, totalPages]. With 5 or
// fewer total pages all of them are returned; with more, the window always
// holds exactly 5 entries.
func PageNumbers(current, totalPages int) []int {
	if totalPages < 1 {
		return nil
	}

	if totalPages <= maxVisiblePages {
		pages := make([]int, totalPages)
		for i := range pages {
			pages[i] = i + 1
		}
		return pages
	}

	start := current - maxVisiblePages/2
	if start < 1 {
		start = 1
	}
	end := start + maxVisiblePages - 1
	if end > totalPages {
		end = totalPages
		start = end - maxVisiblePages + 1
	}

	pages := make([]int, 0, maxVisiblePages)
	for i := start; i <= end; i++ {
		pages = append(pages, i)
	}
	return pages
}
