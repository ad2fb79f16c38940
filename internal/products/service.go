package products

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/shopmallhq/shopmall-backend/pkg/db/models"
	pkgerrors "github.com/shopmallhq/shopmall-backend/pkg/errors"

	"gorm.io/gorm"
)

type catalogRepository interface {
	FindByGUID(ctx context.Context, guid string) (*models.Product, error)
	ListHot(ctx context.Context) ([]models.Product, error)
	ListDiscounted(ctx context.Context) ([]models.Product, error)
	ListBestSelling(ctx context.Context) ([]models.Product, error)
	ListUpcoming(ctx context.Context) ([]models.Product, error)
}

// Service exposes storefront catalog browsing.
type Service interface {
	Hot(ctx context.Context) ([]SummaryDTO, error)
	Discounted(ctx context.Context) ([]SummaryDTO, error)
	BestSelling(ctx context.Context) ([]SummaryDTO, error)
	Upcoming(ctx context.Context) ([]SummaryDTO, error)
	Detail(ctx context.Context, guid string) (*DetailDTO, error)
}

type service struct {
	repo catalogRepository
}

// NewService constructs the storefront catalog service.
func NewService(repo catalogRepository) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("catalog repository required")
	}
	return &service{repo: repo}, nil
}

func (s *service) Hot(ctx context.Context) ([]SummaryDTO, error) {
	return s.shelf(ctx, s.repo.ListHot, "list hot products")
}

func (s *service) Discounted(ctx context.Context) ([]SummaryDTO, error) {
	return s.shelf(ctx, s.repo.ListDiscounted, "list discounted products")
}

func (s *service) BestSelling(ctx context.Context) ([]SummaryDTO, error) {
	return s.shelf(ctx, s.repo.ListBestSelling, "list best sellers")
}

func (s *service) Upcoming(ctx context.Context) ([]SummaryDTO, error) {
	return s.shelf(ctx, s.repo.ListUpcoming, "list upcoming products")
}

func (s *service) shelf(ctx context.Context, fetch func(context.Context) ([]models.Product, error), op string) ([]SummaryDTO, error) {
	rows, err := fetch(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, op)
	}
	return SummariesFromModels(rows), nil
}

// Detail returns the full product, options and variants included.
func (s *service) Detail(ctx context.Context, guid string) (*DetailDTO, error) {
	guid = strings.TrimSpace(guid)
	if guid == "" {
		return nil, pkgerrors.New(pkgerrors.CodeInvalidRequest, "product guid is required")
	}

	product, err := s.repo.FindByGUID(ctx, guid)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeProductNotFound, "product not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "load product")
	}
	return DetailFromModel(product), nil
}
