package history

import (
	"time"

	"github.com/Veraticus/dompet/internal/model"
)

// DefaultPageSize is how many transactions one page adds to the window.
const DefaultPageSize = 20

// RecentCount is how many transactions the summary view shows.
const RecentCount = 10

// Window is a filtered, incrementally growing view over a transaction list.
// Changing a filter shrinks the window back to its first page.
type Window struct {
	all      []model.Transaction
	filtered []model.Transaction
	filter   Filter
	pageSize int
	limit    int
}

// NewWindow creates a window over txns showing the first page.
// A non-positive pageSize uses DefaultPageSize.
func NewWindow(txns []model.Transaction, pageSize int, loc *time.Location) *Window {
	if pageSize <= 0 {
		pageSize = DefaultPageSize
	}
	w := &Window{
		pageSize: pageSize,
		limit:    pageSize,
		filter:   Filter{Location: loc},
	}
	w.SetTransactions(txns)
	return w
}

// SetTransactions replaces the underlying list, typically after a reload.
// Filters and the current window size are kept.
func (w *Window) SetTransactions(txns []model.Transaction) {
	w.all = txns
	w.refilter()
}

// SetCategoryQuery changes the category filter. The window resets to the
// first page only when the query actually changes.
func (w *Window) SetCategoryQuery(query string) {
	if query == w.filter.Category {
		return
	}
	w.filter.Category = query
	w.reset()
}

// SetDateQuery changes the YYYY-MM-DD date filter, resetting like SetCategoryQuery.
func (w *Window) SetDateQuery(date string) {
	if date == w.filter.Date {
		return
	}
	w.filter.Date = date
	w.reset()
}

// Filter returns the active filter.
func (w *Window) Filter() Filter {
	return w.filter
}

// LoadMore grows the window by one page. It is a no-op when nothing is left.
func (w *Window) LoadMore() {
	if w.HasMore() {
		w.limit += w.pageSize
	}
}

// HasMore reports whether filtered transactions remain beyond the window.
func (w *Window) HasMore() bool {
	return w.limit < len(w.filtered)
}

// Visible returns the transactions inside the window.
func (w *Window) Visible() []model.Transaction {
	if w.limit >= len(w.filtered) {
		return w.filtered
	}
	return w.filtered[:w.limit]
}

// Filtered returns every transaction that passes the filter.
func (w *Window) Filtered() []model.Transaction {
	return w.filtered
}

// Groups buckets the visible transactions relative to now.
func (w *Window) Groups(now time.Time) []Group {
	return DeriveDateBuckets(w.Visible(), now)
}

func (w *Window) reset() {
	w.limit = w.pageSize
	w.refilter()
}

func (w *Window) refilter() {
	w.filtered = w.filter.Apply(w.all)
}
