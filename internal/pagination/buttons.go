package pagination

// Ellipsis marks a gap in a windowed page-button row.
const Ellipsis = -1

// PageButtons lays out the page-number buttons for a pager with the
// given current page and page count. Up to seven pages are shown in
// full; beyond that the row is windowed around the current page:
//
//	current <= 4:          1 2 3 4 5 ... last
//	current >= last-3:     1 ... last-4 .. last
//	otherwise:             1 ... current-1 current current+1 ... last
func PageButtons(current, totalPages int) []int {
	if totalPages < 1 {
		return nil
	}

	if totalPages <= 7 {
		pages := make([]int, 0, totalPages)
		for i := 1; i <= totalPages; i++ {
			pages = append(pages, i)
		}
		return pages
	}

	var pages []int
	switch {
	case current <= 4:
		for i := 1; i <= 5; i++ {
			pages = append(pages, i)
		}
		pages = append(pages, Ellipsis, totalPages)
	case current >= totalPages-3:
		pages = append(pages, 1, Ellipsis)
		for i := totalPages - 4; i <= totalPages; i++ {
			pages = append(pages, i)
		}
	default:
		pages = append(pages, 1, Ellipsis)
		for i := current - 1; i <= current+1; i++ {
			pages = append(pages, i)
		}
		pages = append(pages, Ellipsis, totalPages)
	}
	return pages
}
