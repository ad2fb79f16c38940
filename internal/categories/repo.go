package categories

import (
	"context"

	"gorm.io/gorm"

	"github.com/shopmallhq/shopmall-backend/pkg/db/models"
)

// Repository exposes persistence operations for categories.
type Repository struct {
	db *gorm.DB
}

// NewRepository constructs a category repository bound to the provided DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// ListActive returns active categories ordered by sort_order.
func (r *Repository) ListActive(ctx context.Context) ([]models.Category, error) {
	var rows []models.Category
	err := r.db.WithContext(ctx).
		Where("is_active = ?", true).
		Order("sort_order ASC").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

// FindByCode loads one category by its stable external code.
func (r *Repository) FindByCode(ctx context.Context, code int) (*models.Category, error) {
	var row models.Category
	if err := r.db.WithContext(ctx).Where("code = ?", code).First(&row).Error; err != nil {
		return nil, err
	}
	return &row, nil
}
