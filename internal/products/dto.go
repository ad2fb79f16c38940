package products

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/shopmallhq/shopmall-backend/pkg/db/models"
)

// SummaryDTO is the card shape used by storefront listings.
type SummaryDTO struct {
	GUID          string          `json:"guid"`
	Name          string          `json:"name"`
	Summary       *string         `json:"summary,omitempty"`
	DisplayStatus int             `json:"display_status"`
	SaleStatus    int             `json:"sale_status"`
	CategoryCode  *int            `json:"category_code,omitempty"`
	ProductType   string          `json:"product_type"`
	OriginalPrice decimal.Decimal `json:"original_price"`
	SalePrice     decimal.Decimal `json:"sale_price"`
	SoldCount     int             `json:"sold_count"`
	ImageURL      *string         `json:"image_url,omitempty"`
	UpdatedAt     time.Time       `json:"updated_at"`
}

// OptionDTO describes one configurable option axis of a variant product.
type OptionDTO struct {
	Name     string   `json:"name"`
	Values   []string `json:"values"`
	Position int      `json:"position"`
}

// VariantDTO describes one purchasable SKU combination.
type VariantDTO struct {
	Combination   map[string]string `json:"combination"`
	OriginalPrice *decimal.Decimal  `json:"original_price,omitempty"`
	SalePrice     *decimal.Decimal  `json:"sale_price,omitempty"`
	Available     bool              `json:"available"`
	ImageURL      *string           `json:"image_url,omitempty"`
	Gallery       []string          `json:"gallery,omitempty"`
	SKUCode       *string           `json:"sku_code,omitempty"`
	Stock         int               `json:"stock"`
	Position      int               `json:"position"`
}

// DetailDTO is the full product shape returned by detail endpoints.
type DetailDTO struct {
	SummaryDTO
	Description *string           `json:"description,omitempty"`
	Gallery     []string          `json:"gallery,omitempty"`
	Specs       map[string]string `json:"specs,omitempty"`
	Options     []OptionDTO       `json:"options,omitempty"`
	Variants    []VariantDTO      `json:"variants,omitempty"`
	CreatedAt   time.Time         `json:"created_at"`
}

// SummaryFromModel maps a product row to its listing card.
func SummaryFromModel(p *models.Product) SummaryDTO {
	return SummaryDTO{
		GUID:          p.GUID,
		Name:          p.Name,
		Summary:       p.Summary,
		DisplayStatus: p.DisplayStatus,
		SaleStatus:    p.SaleStatus,
		CategoryCode:  p.CategoryCode,
		ProductType:   p.ProductType,
		OriginalPrice: p.OriginalPrice,
		SalePrice:     p.SalePrice,
		SoldCount:     p.SoldCount,
		ImageURL:      p.ImageURL,
		UpdatedAt:     p.UpdatedAt,
	}
}

// SummariesFromModels maps a product list to listing cards.
func SummariesFromModels(rows []models.Product) []SummaryDTO {
	out := make([]SummaryDTO, 0, len(rows))
	for i := range rows {
		out = append(out, SummaryFromModel(&rows[i]))
	}
	return out
}

// DetailFromModel maps a product with its associations to the detail shape.
func DetailFromModel(p *models.Product) *DetailDTO {
	if p == nil {
		return nil
	}

	detail := &DetailDTO{
		SummaryDTO:  SummaryFromModel(p),
		Description: p.Description,
		Gallery:     p.Gallery,
		Specs:       p.Specs,
		CreatedAt:   p.CreatedAt,
	}

	for _, opt := range p.Options {
		detail.Options = append(detail.Options, OptionDTO{
			Name:     opt.Name,
			Values:   opt.Values,
			Position: opt.Position,
		})
	}
	for _, v := range p.Variants {
		detail.Variants = append(detail.Variants, VariantDTO{
			Combination:   v.Combination,
			OriginalPrice: v.OriginalPrice,
			SalePrice:     v.SalePrice,
			Available:     v.Available,
			ImageURL:      v.ImageURL,
			Gallery:       v.Gallery,
			SKUCode:       v.SKUCode,
			Stock:         v.Stock,
			Position:      v.Position,
		})
	}
	return detail
}
