package ledger

import (
	"strings"

	"github.com/agnivade/levenshtein"

	"github.com/Veraticus/dompet/internal/model"
)

// SuggestCategory returns the category whose name is closest to name, if any
// is close enough to be a likely typo. The income category is never suggested.
func SuggestCategory(categories []model.Category, name string) (model.Category, bool) {
	query := strings.ToLower(model.NormalizeName(name))
	if query == "" {
		return model.Category{}, false
	}

	limit := max(2, len(query)/3)
	best, bestDist := model.Category{}, limit+1
	for _, cat := range categories {
		if cat.IsIncome() {
			continue
		}
		dist := levenshtein.ComputeDistance(query, strings.ToLower(cat.Name))
		if dist < bestDist {
			best, bestDist = cat, dist
		}
	}
	return best, bestDist <= limit
}
