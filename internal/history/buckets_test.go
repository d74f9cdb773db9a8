package history

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Veraticus/dompet/internal/model"
)

func txnOn(id int64, date string) model.Transaction {
	return model.Transaction{ID: id, Date: date, Amount: 1000, Type: model.DirectionOut, Category: "Makan"}
}

func groupIDs(g Group) []int64 {
	ids := make([]int64, 0, len(g.Transactions))
	for _, txn := range g.Transactions {
		ids = append(ids, txn.ID)
	}
	return ids
}

func TestDeriveDateBuckets(t *testing.T) {
	now := time.Date(2024, 3, 15, 12, 0, 0, 0, time.UTC)
	txns := []model.Transaction{
		txnOn(1, "2024-03-15T09:00:00.000Z"),
		txnOn(2, "2024-03-14T18:00:00.000Z"),
		txnOn(3, "2024-03-10T08:00:00.000Z"),
		txnOn(4, "2024-01-01T08:00:00.000Z"),
		txnOn(5, "not-a-date"),
		txnOn(6, "15/03/2024"),
		txnOn(7, "2024-03-09T23:59:00.000Z"),
	}

	groups := DeriveDateBuckets(txns, now)
	require.Len(t, groups, 4)

	assert.Equal(t, Today, groups[0].Bucket)
	assert.Equal(t, []int64{1, 6}, groupIDs(groups[0]))

	assert.Equal(t, Yesterday, groups[1].Bucket)
	assert.Equal(t, []int64{2}, groupIDs(groups[1]))

	assert.Equal(t, ThisWeek, groups[2].Bucket)
	assert.Equal(t, []int64{3}, groupIDs(groups[2]))

	// Saturday before the week began, an old date and an unreadable date.
	assert.Equal(t, Older, groups[3].Bucket)
	assert.Equal(t, []int64{4, 5, 7}, groupIDs(groups[3]))
	assert.Equal(t, "Older", groups[3].Title())
}

func TestDeriveDateBuckets_OmitsEmptyGroups(t *testing.T) {
	now := time.Date(2024, 3, 15, 12, 0, 0, 0, time.UTC)

	groups := DeriveDateBuckets([]model.Transaction{txnOn(1, "2023-12-31")}, now)
	require.Len(t, groups, 1)
	assert.Equal(t, Older, groups[0].Bucket)

	assert.Empty(t, DeriveDateBuckets(nil, now))
}

func TestDeriveDateBuckets_UsesNowLocation(t *testing.T) {
	// 20:00 UTC on the 14th is already the 15th in Jakarta.
	now := time.Date(2024, 3, 15, 8, 0, 0, 0, jakarta)
	groups := DeriveDateBuckets([]model.Transaction{txnOn(1, "2024-03-14T20:00:00.000Z")}, now)
	require.Len(t, groups, 1)
	assert.Equal(t, Today, groups[0].Bucket)
}

func TestDeriveDateBuckets_Deterministic(t *testing.T) {
	now := time.Date(2024, 3, 15, 12, 0, 0, 0, time.UTC)
	txns := []model.Transaction{
		txnOn(1, "2024-03-13"),
		txnOn(2, "2024-03-15"),
		txnOn(3, "bad"),
	}
	assert.Equal(t, DeriveDateBuckets(txns, now), DeriveDateBuckets(txns, now))
}

func TestClassify(t *testing.T) {
	// Sunday 2024-03-10 opens the week of Friday 2024-03-15.
	now := time.Date(2024, 3, 15, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		date time.Time
		want Bucket
	}{
		{date: time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC), want: Today},
		{date: time.Date(2024, 3, 15, 23, 59, 0, 0, time.UTC), want: Today},
		{date: time.Date(2024, 3, 14, 0, 0, 0, 0, time.UTC), want: Yesterday},
		{date: time.Date(2024, 3, 13, 0, 0, 0, 0, time.UTC), want: ThisWeek},
		{date: time.Date(2024, 3, 10, 0, 0, 0, 0, time.UTC), want: ThisWeek},
		{date: time.Date(2024, 3, 16, 9, 0, 0, 0, time.UTC), want: ThisWeek},
		{date: time.Date(2024, 3, 9, 23, 59, 0, 0, time.UTC), want: Older},
		{date: time.Date(2023, 3, 15, 12, 0, 0, 0, time.UTC), want: Older},
	}

	for _, tt := range tests {
		t.Run(tt.date.Format(time.RFC3339), func(t *testing.T) {
			assert.Equal(t, tt.want, Classify(tt.date, now))
		})
	}
}

func TestClassify_YesterdayAcrossWeekBoundary(t *testing.T) {
	// Sunday: yesterday was Saturday of the previous week.
	now := time.Date(2024, 3, 10, 9, 0, 0, 0, time.UTC)
	assert.Equal(t, Yesterday, Classify(time.Date(2024, 3, 9, 12, 0, 0, 0, time.UTC), now))
	assert.Equal(t, Older, Classify(time.Date(2024, 3, 8, 12, 0, 0, 0, time.UTC), now))
}

func TestBucketTitles(t *testing.T) {
	assert.Equal(t, "Today", Today.Title())
	assert.Equal(t, "Yesterday", Yesterday.String())
	assert.Equal(t, "This Week", ThisWeek.Title())
	assert.Equal(t, "Unknown", Bucket(42).Title())
}
