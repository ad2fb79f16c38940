package cart

import (
	"time"

	"github.com/shopmallhq/shopmall-backend/pkg/db/models"
	dbtypes "github.com/shopmallhq/shopmall-backend/pkg/db/types"
	pkgerrors "github.com/shopmallhq/shopmall-backend/pkg/errors"
)

// canonicalSelection normalizes nil and empty selections to nil so line
// identity does not depend on how the client sent an absent selection.
func canonicalSelection(selection dbtypes.StringMap) dbtypes.StringMap {
	if len(selection) == 0 {
		return nil
	}
	return selection.Clone()
}

func sameLine(item models.CartItem, guid string, selection dbtypes.StringMap) bool {
	return item.ProductGUID == guid && item.VariantSelection.Equal(selection)
}

// Reconcile applies one upsert against the provided lines and returns the
// resulting slice. Line identity is (product guid, canonical selection).
// Quantity zero removes a present line and no-ops on an absent one. An
// existing line keeps its locked prices and only takes the new quantity. A
// new line snapshots name, image, and the resolved price pair. The input
// slice is never mutated, so a failed upsert leaves the cart untouched.
func Reconcile(lines []models.CartItem, product *models.Product, selection dbtypes.StringMap, quantity int, now time.Time) ([]models.CartItem, error) {
	if quantity < 0 {
		return nil, pkgerrors.New(pkgerrors.CodeInvalidRequest, "quantity must not be negative")
	}

	selection = canonicalSelection(selection)

	idx := -1
	for i := range lines {
		if sameLine(lines[i], product.GUID, selection) {
			idx = i
			break
		}
	}

	if quantity == 0 {
		if idx < 0 {
			return lines, nil
		}
		out := make([]models.CartItem, 0, len(lines)-1)
		out = append(out, lines[:idx]...)
		out = append(out, lines[idx+1:]...)
		return out, nil
	}

	if idx >= 0 {
		out := append([]models.CartItem(nil), lines...)
		out[idx].Quantity = quantity
		out[idx].UpdatedAt = now
		return out, nil
	}

	resolved, err := ResolvePrice(product, selection)
	if err != nil {
		return nil, err
	}

	line := models.CartItem{
		ProductGUID:      product.GUID,
		Name:             product.Name,
		ImageURL:         product.ImageURL,
		VariantSelection: selection,
		Quantity:         quantity,
		OriginalPrice:    resolved.OriginalPrice,
		SalePrice:        resolved.SalePrice,
		Position:         nextPosition(lines),
		CreatedAt:        now,
		UpdatedAt:        now,
	}
	if resolved.Variant != nil && resolved.Variant.ImageURL != nil {
		line.ImageURL = resolved.Variant.ImageURL
	}

	out := append([]models.CartItem(nil), lines...)
	return append(out, line), nil
}

func nextPosition(lines []models.CartItem) int {
	next := 0
	for _, line := range lines {
		if line.Position >= next {
			next = line.Position + 1
		}
	}
	return next
}
