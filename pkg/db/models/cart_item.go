package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	dbtypes "github.com/shopmallhq/shopmall-backend/pkg/db/types"
)

// CartItem is one cart line. Identity within a cart is the product GUID plus
// the canonical variant selection; prices are locked at the time the line was
// added and never refreshed by quantity updates.
type CartItem struct {
	ID               uuid.UUID         `gorm:"type:uuid;default:gen_random_uuid();primaryKey"`
	CartID           uuid.UUID         `gorm:"column:cart_id;type:uuid;not null;index"`
	ProductGUID      string            `gorm:"column:product_guid;not null"`
	Name             string            `gorm:"column:name;not null"`
	ImageURL         *string           `gorm:"column:image_url"`
	VariantSelection dbtypes.StringMap `gorm:"column:variant_selection;type:jsonb"`
	Quantity         int               `gorm:"column:quantity;not null"`
	OriginalPrice    decimal.Decimal   `gorm:"column:original_price;type:numeric(12,2);not null"`
	SalePrice        decimal.Decimal   `gorm:"column:sale_price;type:numeric(12,2);not null"`
	Position         int               `gorm:"column:position;not null;default:0"`
	CreatedAt        time.Time         `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt        time.Time         `gorm:"column:updated_at;autoUpdateTime"`
}
