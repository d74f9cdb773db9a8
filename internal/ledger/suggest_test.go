package ledger

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/Veraticus/dompet/internal/model"
)

func TestSuggestCategory(t *testing.T) {
	cats := []model.Category{
		{ID: 1, Name: "Bensin"},
		{ID: 2, Name: "Makan"},
		{ID: 3, Name: "Transport"},
		{ID: 4, Name: model.IncomeCategoryName},
	}

	tests := []struct {
		name   string
		query  string
		wantID int64
		wantOK bool
	}{
		{name: "typo", query: "makn", wantID: 2, wantOK: true},
		{name: "case and spacing", query: "  BENSN ", wantID: 1, wantOK: true},
		{name: "longer name tolerates more edits", query: "transprot", wantID: 3, wantOK: true},
		{name: "nothing close", query: "Liburan", wantOK: false},
		{name: "income is never suggested", query: "uang masok", wantOK: false},
		{name: "empty", query: " ", wantOK: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := SuggestCategory(cats, tt.query)
			assert.Equal(t, tt.wantOK, ok)
			if tt.wantOK {
				assert.Equal(t, tt.wantID, got.ID)
			}
		})
	}
}
