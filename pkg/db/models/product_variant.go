package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/shopspring/decimal"

	dbtypes "github.com/shopmallhq/shopmall-backend/pkg/db/types"
)

// ProductVariant is one concrete SKU of a variant product. Combination maps
// option name to the chosen value. Nil prices mean the SKU is declared but not
// purchasable at its current configuration.
type ProductVariant struct {
	ID            uuid.UUID         `gorm:"type:uuid;default:gen_random_uuid();primaryKey"`
	ProductID     uuid.UUID         `gorm:"column:product_id;type:uuid;not null;index"`
	Combination   dbtypes.StringMap `gorm:"column:combination;type:jsonb;not null"`
	OriginalPrice *decimal.Decimal  `gorm:"column:original_price;type:numeric(12,2)"`
	SalePrice     *decimal.Decimal  `gorm:"column:sale_price;type:numeric(12,2)"`
	Available     bool              `gorm:"column:available;not null;default:true"`
	ImageURL      *string           `gorm:"column:image_url"`
	Gallery       pq.StringArray    `gorm:"column:gallery;type:text[]"`
	SKUCode       *string           `gorm:"column:sku_code"`
	Stock         int               `gorm:"column:stock;not null;default:0"`
	Position      int               `gorm:"column:position;not null;default:0"`
	CreatedAt     time.Time         `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt     time.Time         `gorm:"column:updated_at;autoUpdateTime"`
}
