package pagination

// Window describes one page of an ordered, filtered result set: the
// half-open slice [Offset, Offset+PageSize) of TotalCount rows.
type Window struct {
	Page       int
	PageSize   int
	TotalCount int
}

// TotalPages is ceil(TotalCount / PageSize). An empty result set yields 0.
func (w Window) TotalPages() int {
	if w.PageSize <= 0 || w.TotalCount <= 0 {
		return 0
	}
	return (w.TotalCount + w.PageSize - 1) / w.PageSize
}

// Clamp restricts page to [1, TotalPages], treating an empty result set
// as a single page so page 1 always remains valid.
func (w Window) Clamp(page int) int {
	last := w.TotalPages()
	if last < 1 {
		last = 1
	}
	if page < 1 {
		return 1
	}
	if page > last {
		return last
	}
	return page
}

func (w Window) Offset() int {
	page := w.Page
	if page < 1 {
		page = 1
	}
	return (page - 1) * w.PageSize
}

func (w Window) Limit() int {
	return w.PageSize
}
