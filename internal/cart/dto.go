package cart

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/shopmallhq/shopmall-backend/pkg/db/models"
)

// UpsertItemInput captures the payload for a single cart line upsert.
type UpsertItemInput struct {
	ProductGUID      string
	Quantity         int
	VariantSelection map[string]string
}

// LineDTO is the transport shape of one cart line.
type LineDTO struct {
	ID               uuid.UUID         `json:"id"`
	ProductGUID      string            `json:"product_guid"`
	Name             string            `json:"name"`
	ImageURL         *string           `json:"image_url,omitempty"`
	VariantSelection map[string]string `json:"variant_selection,omitempty"`
	Quantity         int               `json:"quantity"`
	OriginalPrice    decimal.Decimal   `json:"original_price"`
	SalePrice        decimal.Decimal   `json:"sale_price"`
	CreatedAt        time.Time         `json:"created_at"`
	UpdatedAt        time.Time         `json:"updated_at"`
}

// LinesFromModels maps persisted cart items to their transport shape.
func LinesFromModels(items []models.CartItem) []LineDTO {
	out := make([]LineDTO, 0, len(items))
	for _, item := range items {
		out = append(out, LineDTO{
			ID:               item.ID,
			ProductGUID:      item.ProductGUID,
			Name:             item.Name,
			ImageURL:         item.ImageURL,
			VariantSelection: item.VariantSelection,
			Quantity:         item.Quantity,
			OriginalPrice:    item.OriginalPrice,
			SalePrice:        item.SalePrice,
			CreatedAt:        item.CreatedAt,
			UpdatedAt:        item.UpdatedAt,
		})
	}
	return out
}
