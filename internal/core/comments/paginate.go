package comments

// PageSize is the number of rows shown per page.
const PageSize = 10

// TotalPages returns ceil(n/size); zero rows yield zero pages.
func TotalPages(n, size int) int {
	if n <= 0 || size <= 0 {
		return 0
	}
	return (n + size - 1) / size
}

// Paginate returns the 1-based page of rows. Out of range pages yield an
// empty slice.
func Paginate[T any](rows []T, page, size int) []T {
	if page < 1 || size <= 0 {
		return []T{}
	}
	start := (page - 1) * size
	if start >= len(rows) {
		return []T{}
	}
	end := min(start+size, len(rows))
	return rows[start:end]
}
