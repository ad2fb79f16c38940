package categories

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/shopmallhq/shopmall-backend/internal/products"
	"github.com/shopmallhq/shopmall-backend/pkg/db/models"
	pkgerrors "github.com/shopmallhq/shopmall-backend/pkg/errors"
)

type categoryRepository interface {
	ListActive(ctx context.Context) ([]models.Category, error)
	FindByCode(ctx context.Context, code int) (*models.Category, error)
}

type categoryProductLister interface {
	ListByCategoryCode(ctx context.Context, code int) ([]models.Product, error)
}

// Service exposes storefront category browsing.
type Service interface {
	List(ctx context.Context) ([]CategoryDTO, error)
	ListProducts(ctx context.Context, code int) ([]products.SummaryDTO, error)
}

type service struct {
	repo    categoryRepository
	catalog categoryProductLister
}

// NewService constructs the category browsing service.
func NewService(repo categoryRepository, catalog categoryProductLister) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("category repository required")
	}
	if catalog == nil {
		return nil, fmt.Errorf("product lister required")
	}
	return &service{repo: repo, catalog: catalog}, nil
}

func (s *service) List(ctx context.Context) ([]CategoryDTO, error) {
	rows, err := s.repo.ListActive(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "list categories")
	}
	return FromModels(rows), nil
}

// ListProducts verifies the category exists before listing its products.
func (s *service) ListProducts(ctx context.Context, code int) ([]products.SummaryDTO, error) {
	if _, err := s.repo.FindByCode(ctx, code); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "category not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "load category")
	}

	rows, err := s.catalog.ListByCategoryCode(ctx, code)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "list category products")
	}
	return products.SummariesFromModels(rows), nil
}
