package products

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/shopmallhq/shopmall-backend/pkg/db/models"
	dbtypes "github.com/shopmallhq/shopmall-backend/pkg/db/types"
	"github.com/shopmallhq/shopmall-backend/pkg/pagination"
)

func setupProductTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{})
	require.NoError(t, err)

	productsTable := `
CREATE TABLE IF NOT EXISTS products (
  id TEXT PRIMARY KEY,
  guid TEXT NOT NULL UNIQUE,
  name TEXT NOT NULL,
  summary TEXT,
  description TEXT,
  display_status INTEGER NOT NULL DEFAULT 1,
  sale_status INTEGER NOT NULL DEFAULT 1,
  category_code INTEGER,
  product_type TEXT NOT NULL DEFAULT 'single',
  original_price TEXT NOT NULL,
  sale_price TEXT NOT NULL,
  sold_count INTEGER NOT NULL DEFAULT 0,
  image_url TEXT,
  gallery TEXT,
  specs TEXT,
  updated_by TEXT,
  created_at DATETIME,
  updated_at DATETIME
);`
	optionsTable := `
CREATE TABLE IF NOT EXISTS product_options (
  id TEXT PRIMARY KEY,
  product_id TEXT NOT NULL,
  name TEXT NOT NULL,
  "values" TEXT NOT NULL,
  position INTEGER NOT NULL DEFAULT 0,
  created_at DATETIME,
  updated_at DATETIME
);`
	variantsTable := `
CREATE TABLE IF NOT EXISTS product_variants (
  id TEXT PRIMARY KEY,
  product_id TEXT NOT NULL,
  combination TEXT NOT NULL,
  original_price TEXT,
  sale_price TEXT,
  available INTEGER NOT NULL DEFAULT 1,
  image_url TEXT,
  gallery TEXT,
  sku_code TEXT,
  stock INTEGER NOT NULL DEFAULT 0,
  position INTEGER NOT NULL DEFAULT 0,
  created_at DATETIME,
  updated_at DATETIME
);`
	require.NoError(t, db.Exec(productsTable).Error)
	require.NoError(t, db.Exec(optionsTable).Error)
	require.NoError(t, db.Exec(variantsTable).Error)
	return db
}

func seedProduct(t *testing.T, repo *Repository, mutate func(*models.Product)) *models.Product {
	t.Helper()
	product := &models.Product{
		GUID:          uuid.NewString(),
		Name:          "Seed Product",
		ProductType:   models.ProductTypeSingle,
		DisplayStatus: 1,
		SaleStatus:    1,
		OriginalPrice: decimal.RequireFromString("20.00"),
		SalePrice:     decimal.RequireFromString("20.00"),
	}
	if mutate != nil {
		mutate(product)
	}
	created, err := repo.Create(context.Background(), product)
	require.NoError(t, err)
	return created
}

func TestRepositoryFindByGUIDWithAssociations(t *testing.T) {
	repo := NewRepository(setupProductTestDB(t))

	price := decimal.RequireFromString("25.00")
	seeded := seedProduct(t, repo, func(p *models.Product) {
		p.ProductType = models.ProductTypeVariant
		p.Options = []models.ProductOption{
			{Name: "size", Values: []string{"M", "L"}, Position: 1},
			{Name: "color", Values: []string{"red"}, Position: 0},
		}
		p.Variants = []models.ProductVariant{
			{Combination: dbtypes.StringMap{"color": "red", "size": "L"}, Position: 1, Available: true, OriginalPrice: &price, SalePrice: &price},
			{Combination: dbtypes.StringMap{"color": "red", "size": "M"}, Position: 0, Available: true, OriginalPrice: &price, SalePrice: &price},
		}
	})

	got, err := repo.FindByGUID(context.Background(), seeded.GUID)
	require.NoError(t, err)
	require.Len(t, got.Options, 2)
	assert.Equal(t, "color", got.Options[0].Name)
	require.Len(t, got.Variants, 2)
	assert.Equal(t, "M", got.Variants[0].Combination["size"])
	require.NotNil(t, got.Variants[0].SalePrice)
	assert.True(t, got.Variants[0].SalePrice.Equal(price))
}

func TestRepositoryFindByGUIDMissing(t *testing.T) {
	repo := NewRepository(setupProductTestDB(t))

	_, err := repo.FindByGUID(context.Background(), "missing")
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestRepositoryStorefrontShelves(t *testing.T) {
	repo := NewRepository(setupProductTestDB(t))
	ctx := context.Background()

	seedProduct(t, repo, func(p *models.Product) {
		p.Name = "hot"
		p.DisplayStatus = models.DisplayStatusHot
	})
	seedProduct(t, repo, func(p *models.Product) {
		p.Name = "discounted"
		p.SalePrice = decimal.RequireFromString("10.00")
	})
	seedProduct(t, repo, func(p *models.Product) {
		p.Name = "upcoming"
		p.SaleStatus = models.SaleStatusUpcomingA
	})
	seedProduct(t, repo, func(p *models.Product) {
		p.Name = "plain"
	})

	hot, err := repo.ListHot(ctx)
	require.NoError(t, err)
	require.Len(t, hot, 1)
	assert.Equal(t, "hot", hot[0].Name)

	discounted, err := repo.ListDiscounted(ctx)
	require.NoError(t, err)
	require.Len(t, discounted, 1)
	assert.Equal(t, "discounted", discounted[0].Name)

	upcoming, err := repo.ListUpcoming(ctx)
	require.NoError(t, err)
	require.Len(t, upcoming, 1)
	assert.Equal(t, "upcoming", upcoming[0].Name)
}

func TestRepositoryListBestSellingOrdersAndCaps(t *testing.T) {
	repo := NewRepository(setupProductTestDB(t))

	for i := 0; i < BestSellingLimit+2; i++ {
		n := i
		seedProduct(t, repo, func(p *models.Product) {
			p.Name = fmt.Sprintf("p-%d", n)
			p.SoldCount = n
		})
	}

	rows, err := repo.ListBestSelling(context.Background())
	require.NoError(t, err)
	require.Len(t, rows, BestSellingLimit)
	assert.Equal(t, BestSellingLimit+1, rows[0].SoldCount)
}

func TestRepositoryListByCategoryCode(t *testing.T) {
	repo := NewRepository(setupProductTestDB(t))

	code := 7
	seedProduct(t, repo, func(p *models.Product) { p.CategoryCode = &code })
	seedProduct(t, repo, nil)

	rows, err := repo.ListByCategoryCode(context.Background(), code)
	require.NoError(t, err)
	require.Len(t, rows, 1)
}

func TestRepositoryListPaged(t *testing.T) {
	repo := NewRepository(setupProductTestDB(t))
	ctx := context.Background()

	base := time.Now().UTC()
	for i := 0; i < 5; i++ {
		n := i
		seedProduct(t, repo, func(p *models.Product) {
			p.Name = fmt.Sprintf("p-%d", n)
			p.UpdatedAt = base.Add(time.Duration(n) * time.Minute)
		})
	}

	rows, total, err := repo.ListPaged(ctx, pagination.Params{Page: 2, Limit: 2})
	require.NoError(t, err)
	assert.EqualValues(t, 5, total)
	require.Len(t, rows, 2)
	assert.Equal(t, "p-2", rows[0].Name)
	assert.Equal(t, "p-1", rows[1].Name)
}

func TestRepositoryDeleteByGUID(t *testing.T) {
	repo := NewRepository(setupProductTestDB(t))
	ctx := context.Background()

	seeded := seedProduct(t, repo, nil)

	deleted, err := repo.DeleteByGUID(ctx, seeded.GUID)
	require.NoError(t, err)
	assert.True(t, deleted)

	deleted, err = repo.DeleteByGUID(ctx, seeded.GUID)
	require.NoError(t, err)
	assert.False(t, deleted)
}

func TestRepositoryReplaceVariants(t *testing.T) {
	repo := NewRepository(setupProductTestDB(t))
	ctx := context.Background()

	price := decimal.RequireFromString("30.00")
	seeded := seedProduct(t, repo, func(p *models.Product) {
		p.ProductType = models.ProductTypeVariant
		p.Variants = []models.ProductVariant{
			{Combination: dbtypes.StringMap{"color": "red"}, Available: true, OriginalPrice: &price, SalePrice: &price},
		}
	})

	err := repo.ReplaceVariants(ctx, seeded.ID, []models.ProductVariant{
		{Combination: dbtypes.StringMap{"color": "blue"}, Available: true, OriginalPrice: &price, SalePrice: &price, Position: 0},
		{Combination: dbtypes.StringMap{"color": "green"}, Available: false, Position: 1},
	})
	require.NoError(t, err)

	got, err := repo.FindByGUID(ctx, seeded.GUID)
	require.NoError(t, err)
	require.Len(t, got.Variants, 2)
	assert.Equal(t, "blue", got.Variants[0].Combination["color"])
	assert.False(t, got.Variants[1].Available)
	assert.Nil(t, got.Variants[1].SalePrice)
}
