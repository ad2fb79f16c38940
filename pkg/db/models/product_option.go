package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

// ProductOption declares one selectable dimension of a variant product,
// e.g. name "color" with values ["red","blue"].
type ProductOption struct {
	ID        uuid.UUID      `gorm:"type:uuid;default:gen_random_uuid();primaryKey"`
	ProductID uuid.UUID      `gorm:"column:product_id;type:uuid;not null;index"`
	Name      string         `gorm:"column:name;not null"`
	Values    pq.StringArray `gorm:"column:values;type:text[];not null"`
	Position  int            `gorm:"column:position;not null;default:0"`
	CreatedAt time.Time      `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt time.Time      `gorm:"column:updated_at;autoUpdateTime"`
}
