package catalog

import "strconv"

// Paginate returns items[(page-1)*pageSize : page*pageSize] clipped to the
// input. A start past the end yields an empty, non-nil slice.
func Paginate[T any](items []T, page, pageSize int) []T {
	if page < 1 {
		page = 1
	}
	if pageSize <= 0 || page-1 > len(items)/pageSize {
		return []T{}
	}
	start := (page - 1) * pageSize
	if start >= len(items) {
		return []T{}
	}
	end := min(start+pageSize, len(items))
	return items[start:end]
}

// PageFromQuery parses a page query value. Absent, non-numeric and
// non-positive values all mean page 1.
func PageFromQuery(raw string) int {
	page, err := strconv.Atoi(raw)
	if err != nil || page < 1 {
		return 1
	}
	return page
}
