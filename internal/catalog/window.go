package catalog

// PageWindow returns the inclusive range of page buttons to render around the
// current page: at most five buttons, pinned to the edges near either end.
func PageWindow(page, totalPages int) (start, end int) {
	if totalPages < 1 {
		return 1, 1
	}
	if page < 1 {
		page = 1
	}
	if page > totalPages {
		page = totalPages
	}

	start = page - 2
	end = page + 2
	if page <= 3 {
		start, end = 1, 5
	}
	if page >= totalPages-2 {
		start, end = totalPages-4, totalPages
	}
	if start < 1 {
		start = 1
	}
	if end > totalPages {
		end = totalPages
	}
	return start, end
}
