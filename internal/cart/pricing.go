package cart

import (
	"github.com/shopspring/decimal"

	"github.com/shopmallhq/shopmall-backend/pkg/db/models"
	dbtypes "github.com/shopmallhq/shopmall-backend/pkg/db/types"
	pkgerrors "github.com/shopmallhq/shopmall-backend/pkg/errors"
)

// ResolvedPrice carries the price pair that gets locked into a cart line,
// plus the matched SKU when the product declares variants.
type ResolvedPrice struct {
	OriginalPrice decimal.Decimal
	SalePrice     decimal.Decimal
	Variant       *models.ProductVariant
}

// ResolvePrice applies the selection policy in order: a variant product with
// no selection fails VARIANT_REQUIRED; a single product with a selection
// fails VARIANT_NOT_ALLOWED; an unmatched or unavailable SKU fails
// VARIANT_UNAVAILABLE; a matched SKU without a full price pair fails
// VARIANT_PRICE_INVALID. Single products resolve to the base price pair.
func ResolvePrice(product *models.Product, selection dbtypes.StringMap) (*ResolvedPrice, error) {
	hasSelection := len(selection) > 0

	if product.HasVariants() {
		if !hasSelection {
			return nil, pkgerrors.New(pkgerrors.CodeVariantRequired, "variant selection is required")
		}
		variant := MatchVariant(product.Variants, selection)
		if variant == nil || !variant.Available {
			return nil, pkgerrors.New(pkgerrors.CodeVariantUnavailable, "variant is not available")
		}
		if variant.OriginalPrice == nil || variant.SalePrice == nil {
			return nil, pkgerrors.New(pkgerrors.CodeVariantPriceInvalid, "variant is not priced for sale")
		}
		return &ResolvedPrice{
			OriginalPrice: *variant.OriginalPrice,
			SalePrice:     *variant.SalePrice,
			Variant:       variant,
		}, nil
	}

	if hasSelection {
		return nil, pkgerrors.New(pkgerrors.CodeVariantNotAllowed, "product does not declare variants")
	}

	return &ResolvedPrice{
		OriginalPrice: product.OriginalPrice,
		SalePrice:     product.SalePrice,
	}, nil
}
