package history

import (
	"strings"
	"time"

	"github.com/Veraticus/dompet/internal/model"
)

// Filter narrows a transaction list by category name and calendar day.
type Filter struct {
	Location *time.Location // nil means time.Local
	Category string         // case-insensitive substring of the category name
	Date     string         // YYYY-MM-DD; empty matches every date
}

// IsZero reports whether the filter matches everything.
func (f Filter) IsZero() bool {
	return strings.TrimSpace(f.Category) == "" && strings.TrimSpace(f.Date) == ""
}

// Match reports whether txn passes the filter. A transaction whose date
// cannot be read never matches a date query.
func (f Filter) Match(txn model.Transaction) bool {
	if query := strings.ToLower(strings.TrimSpace(f.Category)); query != "" {
		if !strings.Contains(strings.ToLower(txn.Category), query) {
			return false
		}
	}

	if day := strings.TrimSpace(f.Date); day != "" {
		key := DateKey(txn.Date, f.Location)
		if key == "" || key != day {
			return false
		}
	}

	return true
}

// Apply returns the transactions that pass the filter, in input order.
func (f Filter) Apply(txns []model.Transaction) []model.Transaction {
	if f.IsZero() {
		return txns
	}

	matched := make([]model.Transaction, 0, len(txns))
	for _, txn := range txns {
		if f.Match(txn) {
			matched = append(matched, txn)
		}
	}
	return matched
}

// FilterTransactions applies a category and date query in local time.
func FilterTransactions(txns []model.Transaction, categoryQuery, dateQuery string) []model.Transaction {
	return Filter{Category: categoryQuery, Date: dateQuery}.Apply(txns)
}

// Recent returns at most n transactions from the front of txns.
func Recent(txns []model.Transaction, n int) []model.Transaction {
	if n < 0 {
		n = 0
	}
	if len(txns) <= n {
		return txns
	}
	return txns[:n]
}

// Totals sums incoming and outgoing amounts.
func Totals(txns []model.Transaction) (in, out int64) {
	for _, txn := range txns {
		if txn.Type == model.DirectionIn {
			in += txn.Amount
		} else {
			out += txn.Amount
		}
	}
	return in, out
}
