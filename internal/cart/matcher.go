package cart

import (
	"github.com/shopmallhq/shopmall-backend/pkg/db/models"
	dbtypes "github.com/shopmallhq/shopmall-backend/pkg/db/types"
)

// MatchVariant returns the first declared SKU whose combination matches the
// requested selection exactly: same option keys, same values, order
// independent. Returns nil when no SKU matches. Callers must not pass an
// empty selection.
func MatchVariant(variants []models.ProductVariant, requested dbtypes.StringMap) *models.ProductVariant {
	if len(requested) == 0 {
		return nil
	}
	for i := range variants {
		if variants[i].Combination.Equal(requested) {
			return &variants[i]
		}
	}
	return nil
}
