package products

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/shopmallhq/shopmall-backend/pkg/db/models"
	dbtypes "github.com/shopmallhq/shopmall-backend/pkg/db/types"
	pkgerrors "github.com/shopmallhq/shopmall-backend/pkg/errors"
	"github.com/shopmallhq/shopmall-backend/pkg/pagination"
)

// OptionInput declares one option axis in an admin payload.
type OptionInput struct {
	Name     string   `json:"name" validate:"required"`
	Values   []string `json:"values" validate:"required,min=1"`
	Position int      `json:"position"`
}

// VariantInput declares one SKU in an admin payload.
type VariantInput struct {
	Combination   map[string]string `json:"combination" validate:"required"`
	OriginalPrice *decimal.Decimal  `json:"original_price,omitempty"`
	SalePrice     *decimal.Decimal  `json:"sale_price,omitempty"`
	Available     *bool             `json:"available,omitempty"`
	ImageURL      *string           `json:"image_url,omitempty"`
	Gallery       []string          `json:"gallery,omitempty"`
	SKUCode       *string           `json:"sku_code,omitempty"`
	Stock         int               `json:"stock"`
	Position      int               `json:"position"`
}

// CreateProductRequest is the admin payload for a new listing. The guid is
// generated server side.
type CreateProductRequest struct {
	Name          string            `json:"name" validate:"required"`
	Summary       *string           `json:"summary,omitempty"`
	Description   *string           `json:"description,omitempty"`
	DisplayStatus *int              `json:"display_status,omitempty"`
	SaleStatus    *int              `json:"sale_status,omitempty"`
	CategoryCode  *int              `json:"category_code,omitempty"`
	ProductType   string            `json:"product_type,omitempty"`
	OriginalPrice decimal.Decimal   `json:"original_price" validate:"required"`
	SalePrice     *decimal.Decimal  `json:"sale_price,omitempty"`
	SoldCount     *int              `json:"sold_count,omitempty"`
	ImageURL      *string           `json:"image_url,omitempty"`
	Gallery       []string          `json:"gallery,omitempty"`
	Specs         map[string]string `json:"specs,omitempty"`
	Options       []OptionInput     `json:"options,omitempty"`
	Variants      []VariantInput    `json:"variants,omitempty"`
}

// UpdateProductRequest is a partial update; nil fields stay untouched.
// Option and variant lists are replaced wholesale when present.
type UpdateProductRequest struct {
	Name          *string            `json:"name,omitempty"`
	Summary       *string            `json:"summary,omitempty"`
	Description   *string            `json:"description,omitempty"`
	DisplayStatus *int               `json:"display_status,omitempty"`
	SaleStatus    *int               `json:"sale_status,omitempty"`
	CategoryCode  *int               `json:"category_code,omitempty"`
	ProductType   *string            `json:"product_type,omitempty"`
	OriginalPrice *decimal.Decimal   `json:"original_price,omitempty"`
	SalePrice     *decimal.Decimal   `json:"sale_price,omitempty"`
	SoldCount     *int               `json:"sold_count,omitempty"`
	ImageURL      *string            `json:"image_url,omitempty"`
	Gallery       *[]string          `json:"gallery,omitempty"`
	Specs         *map[string]string `json:"specs,omitempty"`
	Options       *[]OptionInput     `json:"options,omitempty"`
	Variants      *[]VariantInput    `json:"variants,omitempty"`
}

// ProductListPage is one admin console page.
type ProductListPage struct {
	Items []SummaryDTO    `json:"items"`
	Meta  pagination.Page `json:"meta"`
}

type adminRepository interface {
	WithTx(tx *gorm.DB) *Repository
	FindByGUID(ctx context.Context, guid string) (*models.Product, error)
	ListPaged(ctx context.Context, params pagination.Params) ([]models.Product, int64, error)
	Create(ctx context.Context, product *models.Product) (*models.Product, error)
	Save(ctx context.Context, product *models.Product) (*models.Product, error)
	DeleteByGUID(ctx context.Context, guid string) (bool, error)
}

type txRunner interface {
	WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error
}

// AdminService exposes the product console operations.
type AdminService interface {
	List(ctx context.Context, params pagination.Params) (*ProductListPage, error)
	Get(ctx context.Context, guid string) (*DetailDTO, error)
	Create(ctx context.Context, req CreateProductRequest, updatedBy string) (*DetailDTO, error)
	Update(ctx context.Context, guid string, req UpdateProductRequest, updatedBy string) (*DetailDTO, error)
	Delete(ctx context.Context, guid string) error
}

type adminService struct {
	repo adminRepository
	tx   txRunner
}

// NewAdminService constructs the product console service.
func NewAdminService(repo adminRepository, tx txRunner) (AdminService, error) {
	if repo == nil {
		return nil, fmt.Errorf("product repository required")
	}
	if tx == nil {
		return nil, fmt.Errorf("transaction runner required")
	}
	return &adminService{repo: repo, tx: tx}, nil
}

func (s *adminService) List(ctx context.Context, params pagination.Params) (*ProductListPage, error) {
	rows, total, err := s.repo.ListPaged(ctx, params)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "list products")
	}
	return &ProductListPage{
		Items: SummariesFromModels(rows),
		Meta:  pagination.NewPage(params, total),
	}, nil
}

func (s *adminService) Get(ctx context.Context, guid string) (*DetailDTO, error) {
	product, err := s.loadByGUID(ctx, s.repo, guid)
	if err != nil {
		return nil, err
	}
	return DetailFromModel(product), nil
}

// Create generates the guid and persists the listing with its options and
// variants in one transaction.
func (s *adminService) Create(ctx context.Context, req CreateProductRequest, updatedBy string) (*DetailDTO, error) {
	productType := strings.TrimSpace(req.ProductType)
	if productType == "" {
		productType = models.ProductTypeSingle
	}
	if productType != models.ProductTypeSingle && productType != models.ProductTypeVariant {
		return nil, pkgerrors.New(pkgerrors.CodeInvalidRequest, "product_type must be single or variant")
	}
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, pkgerrors.New(pkgerrors.CodeInvalidRequest, "name is required")
	}
	if req.OriginalPrice.IsNegative() {
		return nil, pkgerrors.New(pkgerrors.CodeInvalidRequest, "original_price must not be negative")
	}
	if productType == models.ProductTypeVariant && len(req.Variants) == 0 {
		return nil, pkgerrors.New(pkgerrors.CodeInvalidRequest, "variant products require at least one variant")
	}
	if productType == models.ProductTypeSingle && len(req.Variants) > 0 {
		return nil, pkgerrors.New(pkgerrors.CodeInvalidRequest, "single products must not declare variants")
	}

	salePrice := req.OriginalPrice
	if req.SalePrice != nil {
		salePrice = *req.SalePrice
	}
	if salePrice.IsNegative() {
		return nil, pkgerrors.New(pkgerrors.CodeInvalidRequest, "sale_price must not be negative")
	}

	product := &models.Product{
		GUID:          uuid.NewString(),
		Name:          name,
		Summary:       req.Summary,
		Description:   req.Description,
		DisplayStatus: intOrDefault(req.DisplayStatus, 1),
		SaleStatus:    intOrDefault(req.SaleStatus, 1),
		CategoryCode:  req.CategoryCode,
		ProductType:   productType,
		OriginalPrice: req.OriginalPrice,
		SalePrice:     salePrice,
		SoldCount:     intOrDefault(req.SoldCount, 0),
		ImageURL:      req.ImageURL,
		Gallery:       req.Gallery,
		Specs:         req.Specs,
		Options:       optionsFromInputs(req.Options),
		Variants:      variantsFromInputs(req.Variants),
	}
	if by := strings.TrimSpace(updatedBy); by != "" {
		product.UpdatedBy = &by
	}

	txErr := s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		if _, err := s.repo.WithTx(tx).Create(ctx, product); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "create product")
		}
		return nil
	})
	if txErr != nil {
		return nil, txErr
	}

	return DetailFromModel(product), nil
}

// Update applies the partial payload. When the options or variants list is
// present it replaces the stored rows wholesale.
func (s *adminService) Update(ctx context.Context, guid string, req UpdateProductRequest, updatedBy string) (*DetailDTO, error) {
	var updated *models.Product
	txErr := s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)

		product, err := s.loadByGUID(ctx, repo, guid)
		if err != nil {
			return err
		}

		if err := applyProductUpdate(product, req); err != nil {
			return err
		}
		if by := strings.TrimSpace(updatedBy); by != "" {
			product.UpdatedBy = &by
		}

		if _, err := repo.Save(ctx, product); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "save product")
		}

		if req.Options != nil {
			rows := optionsFromInputs(*req.Options)
			if err := repo.ReplaceOptions(ctx, product.ID, rows); err != nil {
				return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "replace options")
			}
			product.Options = rows
		}
		if req.Variants != nil {
			rows := variantsFromInputs(*req.Variants)
			if err := repo.ReplaceVariants(ctx, product.ID, rows); err != nil {
				return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "replace variants")
			}
			product.Variants = rows
		}

		updated = product
		return nil
	})
	if txErr != nil {
		return nil, txErr
	}

	return DetailFromModel(updated), nil
}

func (s *adminService) Delete(ctx context.Context, guid string) error {
	guid = strings.TrimSpace(guid)
	if guid == "" {
		return pkgerrors.New(pkgerrors.CodeInvalidRequest, "product guid is required")
	}
	deleted, err := s.repo.DeleteByGUID(ctx, guid)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "delete product")
	}
	if !deleted {
		return pkgerrors.New(pkgerrors.CodeProductNotFound, "product not found")
	}
	return nil
}

func (s *adminService) loadByGUID(ctx context.Context, repo adminRepository, guid string) (*models.Product, error) {
	guid = strings.TrimSpace(guid)
	if guid == "" {
		return nil, pkgerrors.New(pkgerrors.CodeInvalidRequest, "product guid is required")
	}
	product, err := repo.FindByGUID(ctx, guid)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeProductNotFound, "product not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "load product")
	}
	return product, nil
}

func applyProductUpdate(product *models.Product, req UpdateProductRequest) error {
	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)
		if name == "" {
			return pkgerrors.New(pkgerrors.CodeInvalidRequest, "name must not be blank")
		}
		product.Name = name
	}
	if req.Summary != nil {
		product.Summary = req.Summary
	}
	if req.Description != nil {
		product.Description = req.Description
	}
	if req.DisplayStatus != nil {
		product.DisplayStatus = *req.DisplayStatus
	}
	if req.SaleStatus != nil {
		product.SaleStatus = *req.SaleStatus
	}
	if req.CategoryCode != nil {
		product.CategoryCode = req.CategoryCode
	}
	if req.ProductType != nil {
		pt := strings.TrimSpace(*req.ProductType)
		if pt != models.ProductTypeSingle && pt != models.ProductTypeVariant {
			return pkgerrors.New(pkgerrors.CodeInvalidRequest, "product_type must be single or variant")
		}
		product.ProductType = pt
	}
	if req.OriginalPrice != nil {
		if req.OriginalPrice.IsNegative() {
			return pkgerrors.New(pkgerrors.CodeInvalidRequest, "original_price must not be negative")
		}
		product.OriginalPrice = *req.OriginalPrice
	}
	if req.SalePrice != nil {
		if req.SalePrice.IsNegative() {
			return pkgerrors.New(pkgerrors.CodeInvalidRequest, "sale_price must not be negative")
		}
		product.SalePrice = *req.SalePrice
	}
	if req.SoldCount != nil {
		product.SoldCount = *req.SoldCount
	}
	if req.ImageURL != nil {
		product.ImageURL = req.ImageURL
	}
	if req.Gallery != nil {
		product.Gallery = *req.Gallery
	}
	if req.Specs != nil {
		product.Specs = *req.Specs
	}
	return nil
}

func optionsFromInputs(inputs []OptionInput) []models.ProductOption {
	if len(inputs) == 0 {
		return nil
	}
	rows := make([]models.ProductOption, 0, len(inputs))
	for i, in := range inputs {
		position := in.Position
		if position == 0 {
			position = i
		}
		rows = append(rows, models.ProductOption{
			Name:     in.Name,
			Values:   in.Values,
			Position: position,
		})
	}
	return rows
}

func variantsFromInputs(inputs []VariantInput) []models.ProductVariant {
	if len(inputs) == 0 {
		return nil
	}
	rows := make([]models.ProductVariant, 0, len(inputs))
	for i, in := range inputs {
		available := true
		if in.Available != nil {
			available = *in.Available
		}
		position := in.Position
		if position == 0 {
			position = i
		}
		rows = append(rows, models.ProductVariant{
			Combination:   dbtypes.StringMap(in.Combination),
			OriginalPrice: in.OriginalPrice,
			SalePrice:     in.SalePrice,
			Available:     available,
			ImageURL:      in.ImageURL,
			Gallery:       in.Gallery,
			SKUCode:       in.SKUCode,
			Stock:         in.Stock,
			Position:      position,
		})
	}
	return rows
}

func intOrDefault(v *int, def int) int {
	if v == nil {
		return def
	}
	return *v
}
