package cart

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/shopmallhq/shopmall-backend/pkg/db"
	"github.com/shopmallhq/shopmall-backend/pkg/db/models"
	pkgerrors "github.com/shopmallhq/shopmall-backend/pkg/errors"
)

type txRunner interface {
	WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error
}

// Service exposes cart read and upsert operations.
type Service interface {
	GetItems(ctx context.Context, userID uuid.UUID) ([]LineDTO, error)
	UpsertItem(ctx context.Context, userID uuid.UUID, input UpsertItemInput) ([]LineDTO, error)
}

type service struct {
	repo     CartRepository
	tx       txRunner
	products ProductLoader
	now      func() time.Time
}

// NewService builds a cart service backed by the provided stack.
func NewService(repo CartRepository, tx txRunner, products ProductLoader) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("cart repository required")
	}
	if tx == nil {
		return nil, fmt.Errorf("transaction runner required")
	}
	if products == nil {
		return nil, fmt.Errorf("product loader required")
	}
	return &service{
		repo:     repo,
		tx:       tx,
		products: products,
		now:      func() time.Time { return time.Now().UTC() },
	}, nil
}

// GetItems returns the user's cart lines, creating an empty cart on first access.
func (s *service) GetItems(ctx context.Context, userID uuid.UUID) ([]LineDTO, error) {
	if userID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeInvalidRequest, "user id is required")
	}

	cart, err := s.loadOrCreate(ctx, s.repo, userID, false)
	if err != nil {
		return nil, err
	}
	return LinesFromModels(cart.Items), nil
}

// UpsertItem runs the full upsert pipeline: validate the request shape, load
// the product, then reconcile and persist inside one transaction holding the
// cart row lock. The returned slice is the cart's full line list.
func (s *service) UpsertItem(ctx context.Context, userID uuid.UUID, input UpsertItemInput) ([]LineDTO, error) {
	if userID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeInvalidRequest, "user id is required")
	}
	guid := strings.TrimSpace(input.ProductGUID)
	if guid == "" {
		return nil, pkgerrors.New(pkgerrors.CodeInvalidRequest, "product_guid is required")
	}
	if input.Quantity < 0 {
		return nil, pkgerrors.New(pkgerrors.CodeInvalidRequest, "quantity must not be negative")
	}

	product, err := s.products.FindByGUID(ctx, guid)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeProductNotFound, "product not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load product")
	}

	var result []models.CartItem
	txErr := s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)

		cart, err := s.loadOrCreate(ctx, repo, userID, true)
		if err != nil {
			return err
		}

		lines, err := Reconcile(cart.Items, product, input.VariantSelection, input.Quantity, s.now())
		if err != nil {
			return err
		}

		if err := repo.ReplaceItems(ctx, cart.ID, lines); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "persist cart lines")
		}

		result = lines
		return nil
	})
	if txErr != nil {
		return nil, txErr
	}

	return LinesFromModels(result), nil
}

// loadOrCreate fetches the user's cart, creating it when absent. With forUpdate
// set, the cart row is locked for the enclosing transaction. A concurrent
// create losing the unique race falls back to re-reading the winner's row.
func (s *service) loadOrCreate(ctx context.Context, repo CartRepository, userID uuid.UUID, forUpdate bool) (*models.Cart, error) {
	find := repo.FindByUserID
	if forUpdate {
		find = repo.FindByUserIDForUpdate
	}

	cart, err := find(ctx, userID)
	if err == nil {
		return cart, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "load cart")
	}

	created, createErr := repo.Create(ctx, &models.Cart{UserID: userID})
	if createErr == nil {
		return created, nil
	}
	if db.IsUniqueViolation(createErr, "") {
		cart, err = find(ctx, userID)
		if err != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "reload cart")
		}
		return cart, nil
	}
	return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, createErr, "create cart")
}
