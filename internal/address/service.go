package address

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/shopmallhq/shopmall-backend/pkg/db/models"
	pkgerrors "github.com/shopmallhq/shopmall-backend/pkg/errors"
)

// AddressRepository defines the persistence surface required by the service.
type AddressRepository interface {
	WithTx(tx *gorm.DB) AddressRepository
	ListByUser(ctx context.Context, userID uuid.UUID) ([]models.Address, error)
	FindByIDAndUser(ctx context.Context, id, userID uuid.UUID) (*models.Address, error)
	FindDefaultByUser(ctx context.Context, userID uuid.UUID) (*models.Address, error)
	CountByUser(ctx context.Context, userID uuid.UUID) (int64, error)
	Create(ctx context.Context, row *models.Address) (*models.Address, error)
	Save(ctx context.Context, row *models.Address) (*models.Address, error)
	Delete(ctx context.Context, id, userID uuid.UUID) (bool, error)
	ClearDefault(ctx context.Context, userID uuid.UUID) error
}

type txRunner interface {
	WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error
}

// Service manages the user's address book.
type Service interface {
	List(ctx context.Context, userID uuid.UUID) ([]AddressDTO, error)
	GetDefault(ctx context.Context, userID uuid.UUID) (*AddressDTO, error)
	Create(ctx context.Context, userID uuid.UUID, req CreateAddressRequest) (*AddressDTO, error)
	Update(ctx context.Context, userID, id uuid.UUID, req UpdateAddressRequest) (*AddressDTO, error)
	Delete(ctx context.Context, userID, id uuid.UUID) error
}

type service struct {
	repo AddressRepository
	tx   txRunner
}

// NewService constructs the address book service.
func NewService(repo AddressRepository, tx txRunner) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("address repository required")
	}
	if tx == nil {
		return nil, fmt.Errorf("transaction runner required")
	}
	return &service{repo: repo, tx: tx}, nil
}

func (s *service) List(ctx context.Context, userID uuid.UUID) ([]AddressDTO, error) {
	rows, err := s.repo.ListByUser(ctx, userID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "list addresses")
	}
	return FromModels(rows), nil
}

func (s *service) GetDefault(ctx context.Context, userID uuid.UUID) (*AddressDTO, error) {
	row, err := s.repo.FindDefaultByUser(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "no default address")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "load default address")
	}
	return FromModel(row), nil
}

// Create inserts an entry. The user's first address always becomes the
// default; an explicit default flips the flag off the previous holder.
func (s *service) Create(ctx context.Context, userID uuid.UUID, req CreateAddressRequest) (*AddressDTO, error) {
	row := &models.Address{
		UserID:     userID,
		FullName:   strings.TrimSpace(req.FullName),
		Phone:      strings.TrimSpace(req.Phone),
		Street:     strings.TrimSpace(req.Street),
		City:       strings.TrimSpace(req.City),
		State:      strings.TrimSpace(req.State),
		PostalCode: strings.TrimSpace(req.PostalCode),
		Country:    strings.TrimSpace(req.Country),
		IsDefault:  req.IsDefault,
	}
	if row.FullName == "" || row.Phone == "" || row.Street == "" || row.City == "" {
		return nil, pkgerrors.New(pkgerrors.CodeInvalidRequest, "full_name, phone, street and city are required")
	}
	if row.Country == "" {
		row.Country = "USA"
	}

	txErr := s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)

		count, err := repo.CountByUser(ctx, userID)
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "count addresses")
		}
		if count == 0 {
			row.IsDefault = true
		} else if row.IsDefault {
			if err := repo.ClearDefault(ctx, userID); err != nil {
				return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "clear default")
			}
		}

		if _, err := repo.Create(ctx, row); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "create address")
		}
		return nil
	})
	if txErr != nil {
		return nil, txErr
	}

	return FromModel(row), nil
}

func (s *service) Update(ctx context.Context, userID, id uuid.UUID, req UpdateAddressRequest) (*AddressDTO, error) {
	var updated *models.Address
	txErr := s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)

		row, err := repo.FindByIDAndUser(ctx, id, userID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return pkgerrors.New(pkgerrors.CodeNotFound, "address not found")
			}
			return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "load address")
		}

		applyUpdate(row, req)
		if row.FullName == "" || row.Phone == "" || row.Street == "" || row.City == "" {
			return pkgerrors.New(pkgerrors.CodeInvalidRequest, "full_name, phone, street and city must not be blank")
		}

		if req.IsDefault != nil && *req.IsDefault {
			if err := repo.ClearDefault(ctx, userID); err != nil {
				return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "clear default")
			}
			row.IsDefault = true
		}

		if _, err := repo.Save(ctx, row); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "save address")
		}
		updated = row
		return nil
	})
	if txErr != nil {
		return nil, txErr
	}

	return FromModel(updated), nil
}

func (s *service) Delete(ctx context.Context, userID, id uuid.UUID) error {
	deleted, err := s.repo.Delete(ctx, id, userID)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "delete address")
	}
	if !deleted {
		return pkgerrors.New(pkgerrors.CodeNotFound, "address not found")
	}
	return nil
}

func applyUpdate(row *models.Address, req UpdateAddressRequest) {
	if req.FullName != nil {
		row.FullName = strings.TrimSpace(*req.FullName)
	}
	if req.Phone != nil {
		row.Phone = strings.TrimSpace(*req.Phone)
	}
	if req.Street != nil {
		row.Street = strings.TrimSpace(*req.Street)
	}
	if req.City != nil {
		row.City = strings.TrimSpace(*req.City)
	}
	if req.State != nil {
		row.State = strings.TrimSpace(*req.State)
	}
	if req.PostalCode != nil {
		row.PostalCode = strings.TrimSpace(*req.PostalCode)
	}
	if req.Country != nil && strings.TrimSpace(*req.Country) != "" {
		row.Country = strings.TrimSpace(*req.Country)
	}
	if req.IsDefault != nil && !*req.IsDefault {
		row.IsDefault = false
	}
}
