package history

import (
	"time"

	"github.com/Veraticus/dompet/internal/model"
)

// Bucket is a relative-date section of the history list.
type Bucket int

// Buckets in display order.
const (
	Today Bucket = iota
	Yesterday
	ThisWeek
	Older
)

var bucketTitles = map[Bucket]string{
	Today:     "Today",
	Yesterday: "Yesterday",
	ThisWeek:  "This Week",
	Older:     "Older",
}

// Title returns the section heading for b.
func (b Bucket) Title() string {
	if title, ok := bucketTitles[b]; ok {
		return title
	}
	return "Unknown"
}

func (b Bucket) String() string {
	return b.Title()
}

// Group is one non-empty section of the history list.
type Group struct {
	Transactions []model.Transaction
	Bucket       Bucket
}

// Title returns the section heading.
func (g Group) Title() string {
	return g.Bucket.Title()
}

// startOfDay truncates t to midnight in its own location.
func startOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

// startOfWeek returns the Sunday midnight that opens t's week.
func startOfWeek(t time.Time) time.Time {
	day := startOfDay(t)
	return day.AddDate(0, 0, -int(day.Weekday()))
}

// Classify places a date relative to now. Dates are compared in now's location.
func Classify(date, now time.Time) Bucket {
	date = date.In(now.Location())
	today := startOfDay(now)
	day := startOfDay(date)

	switch {
	case day.Equal(today):
		return Today
	case day.Equal(today.AddDate(0, 0, -1)):
		return Yesterday
	case startOfWeek(date).Equal(startOfWeek(now)):
		return ThisWeek
	default:
		return Older
	}
}

// DeriveDateBuckets groups txns into Today, Yesterday, This Week and Older
// relative to now. Transactions with unreadable dates fall into Older. Empty
// groups are omitted and input order is preserved within each group.
func DeriveDateBuckets(txns []model.Transaction, now time.Time) []Group {
	loc := now.Location()
	sorted := make(map[Bucket][]model.Transaction, len(bucketTitles))

	for _, txn := range txns {
		bucket := Older
		if date, ok := ParseDate(txn.Date, loc); ok {
			bucket = Classify(date, now)
		}
		sorted[bucket] = append(sorted[bucket], txn)
	}

	groups := make([]Group, 0, len(sorted))
	for _, bucket := range []Bucket{Today, Yesterday, ThisWeek, Older} {
		if len(sorted[bucket]) == 0 {
			continue
		}
		groups = append(groups, Group{Bucket: bucket, Transactions: sorted[bucket]})
	}
	return groups
}
