package calendar

import "sync"

// DefaultPageSize is the number of items shown per week bucket page
const DefaultPageSize = 20

// Pager tracks the current page of every bucket. Pages start at 1.
type Pager struct {
	mu    sync.Mutex
	size  int
	pages map[string]int
}

// NewPager returns a pager with the given page size (DefaultPageSize if size <= 0)
func NewPager(size int) *Pager {
	if size <= 0 {
		size = DefaultPageSize
	}
	return &Pager{size: size, pages: make(map[string]int)}
}

// Size returns the page size
func (p *Pager) Size() int {
	return p.size
}

// Page returns the current page of key, 1 if never set
func (p *Pager) Page(key string) int {
	p.mu.Lock()
	defer p.mu.Unlock()

	if page, ok := p.pages[key]; ok {
		return page
	}
	return 1
}

// SetPage moves key to page; values below 1 are clamped to 1
func (p *Pager) SetPage(key string, page int) {
	if page < 1 {
		page = 1
	}
	p.mu.Lock()
	p.pages[key] = page
	p.mu.Unlock()
}

// EnsurePage sets key to page 1 unless a page was already chosen.
// Called when a bucket gets expanded.
func (p *Pager) EnsurePage(key string) {
	p.mu.Lock()
	if _, ok := p.pages[key]; !ok {
		p.pages[key] = 1
	}
	p.mu.Unlock()
}

// Paginate returns the current page of items for key
func Paginate[T any](p *Pager, items []T, key string) []T {
	return PageOf(items, p.Page(key), p.size)
}

// PageOf returns items[(page-1)*size : page*size], clipped to the slice
func PageOf[T any](items []T, page, size int) []T {
	if size <= 0 {
		size = DefaultPageSize
	}
	if page < 1 {
		page = 1
	}
	// compare before multiplying: (page-1)*size overflows for huge pages
	if page-1 >= TotalPages(len(items), size) {
		return []T{}
	}
	start := (page - 1) * size
	end := len(items)
	if size < end-start {
		end = start + size
	}
	return items[start:end]
}

// TotalPages returns ceil(n / size)
func TotalPages(n, size int) int {
	if size <= 0 {
		size = DefaultPageSize
	}
	if n <= 0 {
		return 0
	}
	pages := n / size
	if n%size != 0 {
		pages++
	}
	return pages
}
