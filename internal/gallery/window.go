package gallery

// WindowSize is the maximum number of page buttons shown at once.
const WindowSize = 5

// Window returns the 0-based page indices to display in the
// pagination bar: all pages when there are at most five, otherwise a
// five-wide window centered on the current page and clamped at both
// ends.
func Window(totalPages, current int) []int {
	if totalPages <= 0 {
		return nil
	}

	if totalPages <= WindowSize {
		pages := make([]int, totalPages)
		for i := range pages {
			pages[i] = i
		}
		return pages
	}

	var start int
	switch {
	case current < 3:
		start = 0
	case current > totalPages-4:
		start = totalPages - WindowSize
	default:
		start = current - 2
	}

	pages := make([]int, WindowSize)
	for i := range pages {
		pages[i] = start + i
	}
	return pages
}
