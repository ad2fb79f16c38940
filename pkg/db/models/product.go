package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/shopspring/decimal"

	dbtypes "github.com/shopmallhq/shopmall-backend/pkg/db/types"
)

// Product type discriminator.
const (
	ProductTypeSingle  = "single"
	ProductTypeVariant = "variant"
)

// Display / sale status values carried over from the storefront contract.
const (
	DisplayStatusHot = 2

	SaleStatusUpcomingA = 2
	SaleStatusUpcomingB = 3
)

// Product represents the canonical catalog listing.
type Product struct {
	ID            uuid.UUID         `gorm:"type:uuid;default:gen_random_uuid();primaryKey"`
	GUID          string            `gorm:"column:guid;not null;uniqueIndex"`
	Name          string            `gorm:"column:name;not null"`
	Summary       *string           `gorm:"column:summary"`
	Description   *string           `gorm:"column:description"`
	DisplayStatus int               `gorm:"column:display_status;not null;default:1"`
	SaleStatus    int               `gorm:"column:sale_status;not null;default:1"`
	CategoryCode  *int              `gorm:"column:category_code"`
	ProductType   string            `gorm:"column:product_type;not null;default:'single'"`
	OriginalPrice decimal.Decimal   `gorm:"column:original_price;type:numeric(12,2);not null"`
	SalePrice     decimal.Decimal   `gorm:"column:sale_price;type:numeric(12,2);not null"`
	SoldCount     int               `gorm:"column:sold_count;not null;default:0"`
	ImageURL      *string           `gorm:"column:image_url"`
	Gallery       pq.StringArray    `gorm:"column:gallery;type:text[]"`
	Specs         dbtypes.StringMap `gorm:"column:specs;type:jsonb"`
	Options       []ProductOption   `gorm:"foreignKey:ProductID;constraint:OnDelete:CASCADE"`
	Variants      []ProductVariant  `gorm:"foreignKey:ProductID;constraint:OnDelete:CASCADE"`
	UpdatedBy     *string           `gorm:"column:updated_by"`
	CreatedAt     time.Time         `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt     time.Time         `gorm:"column:updated_at;autoUpdateTime"`
}

// HasVariants reports whether the product declares variant SKUs.
func (p Product) HasVariants() bool {
	return p.ProductType == ProductTypeVariant
}

// IsDiscounted reports whether the sale price undercuts the original price.
func (p Product) IsDiscounted() bool {
	return p.SalePrice.LessThan(p.OriginalPrice)
}
