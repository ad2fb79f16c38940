package products

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/shopmallhq/shopmall-backend/pkg/db/models"
	"github.com/shopmallhq/shopmall-backend/pkg/pagination"
)

// BestSellingLimit caps the storefront best-seller shelf.
const BestSellingLimit = 10

// Repository exposes persistence operations for the product catalog.
type Repository struct {
	db *gorm.DB
}

// NewRepository builds a catalog repository tied to the provided GORM DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// WithTx returns a repository bound to the provided transaction.
func (r *Repository) WithTx(tx *gorm.DB) *Repository {
	if tx == nil {
		return r
	}
	return &Repository{db: tx}
}

func withAssociations(db *gorm.DB) *gorm.DB {
	return db.
		Preload("Options", func(db *gorm.DB) *gorm.DB {
			return db.Order("position ASC")
		}).
		Preload("Variants", func(db *gorm.DB) *gorm.DB {
			return db.Order("position ASC")
		})
}

// FindByGUID loads the product with its options and variants.
func (r *Repository) FindByGUID(ctx context.Context, guid string) (*models.Product, error) {
	var product models.Product
	err := withAssociations(r.db.WithContext(ctx)).
		Where("guid = ?", guid).
		First(&product).Error
	if err != nil {
		return nil, err
	}
	return &product, nil
}

// ListHot returns products flagged as hot, most recently updated first.
func (r *Repository) ListHot(ctx context.Context) ([]models.Product, error) {
	return r.list(ctx, func(db *gorm.DB) *gorm.DB {
		return db.Where("display_status = ?", models.DisplayStatusHot)
	})
}

// ListDiscounted returns products whose sale price undercuts the original.
func (r *Repository) ListDiscounted(ctx context.Context) ([]models.Product, error) {
	return r.list(ctx, func(db *gorm.DB) *gorm.DB {
		return db.Where("sale_price < original_price")
	})
}

// ListBestSelling returns the top sellers by sold_count.
func (r *Repository) ListBestSelling(ctx context.Context) ([]models.Product, error) {
	var rows []models.Product
	err := r.db.WithContext(ctx).
		Order("sold_count DESC").
		Limit(BestSellingLimit).
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

// ListUpcoming returns products not yet on sale.
func (r *Repository) ListUpcoming(ctx context.Context) ([]models.Product, error) {
	return r.list(ctx, func(db *gorm.DB) *gorm.DB {
		return db.Where("sale_status IN ?", []int{models.SaleStatusUpcomingA, models.SaleStatusUpcomingB})
	})
}

// ListByCategoryCode returns the products filed under a category.
func (r *Repository) ListByCategoryCode(ctx context.Context, code int) ([]models.Product, error) {
	return r.list(ctx, func(db *gorm.DB) *gorm.DB {
		return db.Where("category_code = ?", code)
	})
}

func (r *Repository) list(ctx context.Context, scope func(*gorm.DB) *gorm.DB) ([]models.Product, error) {
	var rows []models.Product
	err := scope(r.db.WithContext(ctx)).
		Order("updated_at DESC").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

// ListPaged returns one admin console page plus the total row count.
func (r *Repository) ListPaged(ctx context.Context, params pagination.Params) ([]models.Product, int64, error) {
	params = pagination.Normalize(params)

	var total int64
	if err := r.db.WithContext(ctx).Model(&models.Product{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var rows []models.Product
	err := r.db.WithContext(ctx).
		Order("updated_at DESC").
		Offset(params.Offset()).
		Limit(params.Limit).
		Find(&rows).Error
	if err != nil {
		return nil, 0, err
	}
	return rows, total, nil
}

// Create inserts the product together with its option and variant rows.
func (r *Repository) Create(ctx context.Context, product *models.Product) (*models.Product, error) {
	assignIDs(product)
	if err := r.db.WithContext(ctx).Create(product).Error; err != nil {
		return nil, err
	}
	return product, nil
}

// Save persists the product row itself; associations are replaced separately.
func (r *Repository) Save(ctx context.Context, product *models.Product) (*models.Product, error) {
	err := r.db.WithContext(ctx).
		Omit("Options", "Variants").
		Save(product).Error
	if err != nil {
		return nil, err
	}
	return product, nil
}

// DeleteByGUID removes the product and reports whether a row was deleted.
// Option and variant rows go with it via the cascade.
func (r *Repository) DeleteByGUID(ctx context.Context, guid string) (bool, error) {
	res := r.db.WithContext(ctx).Where("guid = ?", guid).Delete(&models.Product{})
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

// ReplaceOptions swaps the product's option rows wholesale.
func (r *Repository) ReplaceOptions(ctx context.Context, productID uuid.UUID, rows []models.ProductOption) error {
	tx := r.db.WithContext(ctx)
	if err := tx.Where("product_id = ?", productID).Delete(&models.ProductOption{}).Error; err != nil {
		return err
	}
	if len(rows) == 0 {
		return nil
	}
	for i := range rows {
		rows[i].ProductID = productID
		if rows[i].ID == uuid.Nil {
			rows[i].ID = uuid.New()
		}
	}
	return tx.Create(&rows).Error
}

// ReplaceVariants swaps the product's variant rows wholesale.
func (r *Repository) ReplaceVariants(ctx context.Context, productID uuid.UUID, rows []models.ProductVariant) error {
	tx := r.db.WithContext(ctx)
	if err := tx.Where("product_id = ?", productID).Delete(&models.ProductVariant{}).Error; err != nil {
		return err
	}
	if len(rows) == 0 {
		return nil
	}
	for i := range rows {
		rows[i].ProductID = productID
		if rows[i].ID == uuid.Nil {
			rows[i].ID = uuid.New()
		}
	}
	return tx.Create(&rows).Error
}

func assignIDs(product *models.Product) {
	if product.ID == uuid.Nil {
		product.ID = uuid.New()
	}
	for i := range product.Options {
		product.Options[i].ProductID = product.ID
		if product.Options[i].ID == uuid.Nil {
			product.Options[i].ID = uuid.New()
		}
	}
	for i := range product.Variants {
		product.Variants[i].ProductID = product.ID
		if product.Variants[i].ID == uuid.Nil {
			product.Variants[i].ID = uuid.New()
		}
	}
}
