package views

// Paginator tracks a cursor over a windowed list. The window is page-aligned
// and follows the cursor, so the selected row is always visible.
type Paginator struct {
	pageSize int
	page     int // zero-based, always cursor/pageSize
	cursor   int // absolute index into the list
	total    int
}

// NewPaginator creates a paginator with the given page size.
func NewPaginator(pageSize int) *Paginator {
	if pageSize <= 0 {
		pageSize = 10
	}
	return &Paginator{pageSize: pageSize}
}

// SetTotal sets the list length and clamps the cursor into it.
func (p *Paginator) SetTotal(total int) {
	p.total = total
	if p.cursor >= total {
		p.cursor = total - 1
	}
	if p.cursor < 0 {
		p.cursor = 0
	}
	p.page = p.cursor / p.pageSize
}

// Cursor returns the absolute index of the selected row.
func (p *Paginator) Cursor() int {
	return p.cursor
}

// CursorUp moves the selection up one row, reporting whether it moved.
func (p *Paginator) CursorUp() bool {
	if p.cursor == 0 {
		return false
	}
	p.cursor--
	p.page = p.cursor / p.pageSize
	return true
}

// CursorDown moves the selection down one row, reporting whether it moved.
func (p *Paginator) CursorDown() bool {
	if p.cursor >= p.total-1 {
		return false
	}
	p.cursor++
	p.page = p.cursor / p.pageSize
	return true
}

// PageOffset returns the absolute index of the first visible row.
func (p *Paginator) PageOffset() int {
	return p.page * p.pageSize
}

// VisibleRange returns the half-open index range of the current page.
func (p *Paginator) VisibleRange() (start, end int) {
	start = p.PageOffset()
	end = min(start+p.pageSize, p.total)
	return
}

// TotalPages returns the page count; an empty list still has one page.
func (p *Paginator) TotalPages() int {
	if p.total == 0 {
		return 1
	}
	return (p.total + p.pageSize - 1) / p.pageSize
}

// CurrentPage returns the one-based number of the visible page.
func (p *Paginator) CurrentPage() int {
	return p.page + 1
}

// NextPage advances a full page, placing the cursor on its first row.
func (p *Paginator) NextPage() bool {
	if p.page >= p.TotalPages()-1 {
		return false
	}
	p.page++
	p.cursor = p.PageOffset()
	return true
}

// PrevPage goes back a full page, placing the cursor on its first row.
func (p *Paginator) PrevPage() bool {
	if p.page == 0 {
		return false
	}
	p.page--
	p.cursor = p.PageOffset()
	return true
}

// Reset empties the paginator.
func (p *Paginator) Reset() {
	p.cursor = 0
	p.page = 0
	p.total = 0
}
