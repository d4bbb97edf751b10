package service

import (
	"context"
	"errors"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/papertrail/storefront/internal/domain"
	"github.com/papertrail/storefront/internal/repository"
)

// AddressService manages a user's address book. At most one address per
// user carries the default flag.
type AddressService interface {
	List(ctx context.Context, userID int64) ([]domain.Address, error)
	Create(ctx context.Context, userID int64, params domain.AddressParams) (domain.Address, error)
	Update(ctx context.Context, userID, addressID int64, params domain.AddressParams) (domain.Address, error)
	Delete(ctx context.Context, userID, addressID int64) error
	SetDefault(ctx context.Context, userID, addressID int64) (domain.Address, error)
}

type addressService struct {
	store    repository.Store
	validate *validator.Validate
}

// NewAddressService creates an AddressService.
func NewAddressService(store repository.Store) AddressService {
	return &addressService{
		store:    store,
		validate: validator.New(validator.WithRequiredStructEnabled()),
	}
}

func (s *addressService) List(ctx context.Context, userID int64) ([]domain.Address, error) {
	const op = "address.list"

	addrs, err := s.store.ListAddressesByUser(ctx, userID)
	if err != nil {
		return nil, domain.WrapError(err, domain.EINTERNAL, op, "Unable to load addresses")
	}
	return addrs, nil
}

func (s *addressService) Create(ctx context.Context, userID int64, params domain.AddressParams) (domain.Address, error) {
	const op = "address.create"

	if err := s.validateParams(op, params); err != nil {
		return domain.Address{}, err
	}

	var created domain.Address
	err := s.store.WithTx(ctx, func(q repository.Querier) error {
		if params.IsDefault {
			if err := q.ClearDefaultAddress(ctx, userID); err != nil {
				return err
			}
		}
		var err error
		created, err = q.CreateAddress(ctx, repository.CreateAddressParams{
			UserID:        userID,
			Recipient:     params.Recipient,
			Line1:         params.Line1,
			City:          params.City,
			PostalCode:    params.PostalCode,
			ContactNumber: params.ContactNumber,
			IsDefault:     params.IsDefault,
		})
		return err
	})
	if err != nil {
		return domain.Address{}, domain.WrapError(err, domain.EINTERNAL, op, "Unable to create address")
	}
	return created, nil
}

func (s *addressService) Update(ctx context.Context, userID, addressID int64, params domain.AddressParams) (domain.Address, error) {
	const op = "address.update"

	if err := s.validateParams(op, params); err != nil {
		return domain.Address{}, err
	}

	var updated domain.Address
	err := s.store.WithTx(ctx, func(q repository.Querier) error {
		current, err := q.GetAddressByID(ctx, addressID)
		if err != nil {
			return err
		}
		if current.UserID != userID {
			return repository.ErrNotFound
		}

		if params.IsDefault && !current.IsDefault {
			if err := q.ClearDefaultAddress(ctx, userID); err != nil {
				return err
			}
		}

		updated, err = q.UpdateAddress(ctx, repository.UpdateAddressParams{
			ID:            addressID,
			Recipient:     params.Recipient,
			Line1:         params.Line1,
			City:          params.City,
			PostalCode:    params.PostalCode,
			ContactNumber: params.ContactNumber,
			IsDefault:     params.IsDefault,
		})
		return err
	})
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return domain.Address{}, ErrAddressNotFound
		}
		return domain.Address{}, domain.WrapError(err, domain.EINTERNAL, op, "Unable to update address")
	}
	return updated, nil
}

func (s *addressService) Delete(ctx context.Context, userID, addressID int64) error {
	const op = "address.delete"

	err := s.store.WithTx(ctx, func(q repository.Querier) error {
		current, err := q.GetAddressByID(ctx, addressID)
		if err != nil {
			return err
		}
		if current.UserID != userID {
			return repository.ErrNotFound
		}
		return q.DeleteAddress(ctx, addressID)
	})
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrAddressNotFound
		}
		return domain.WrapError(err, domain.EINTERNAL, op, "Unable to delete address")
	}
	return nil
}

func (s *addressService) SetDefault(ctx context.Context, userID, addressID int64) (domain.Address, error) {
	const op = "address.default"

	var updated domain.Address
	err := s.store.WithTx(ctx, func(q repository.Querier) error {
		current, err := q.GetAddressByID(ctx, addressID)
		if err != nil {
			return err
		}
		if current.UserID != userID {
			return repository.ErrNotFound
		}
		if current.IsDefault {
			updated = current
			return nil
		}

		if err := q.ClearDefaultAddress(ctx, userID); err != nil {
			return err
		}

		updated, err = q.UpdateAddress(ctx, repository.UpdateAddressParams{
			ID:            addressID,
			Recipient:     current.Recipient,
			Line1:         current.Line1,
			City:          current.City,
			PostalCode:    current.PostalCode,
			ContactNumber: current.ContactNumber,
			IsDefault:     true,
		})
		return err
	})
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return domain.Address{}, ErrAddressNotFound
		}
		return domain.Address{}, domain.WrapError(err, domain.EINTERNAL, op, "Unable to set default address")
	}
	return updated, nil
}

func (s *addressService) validateParams(op string, params domain.AddressParams) error {
	if err := s.validate.Struct(params); err != nil {
		validation := domain.NewValidationError(op)
		var fieldErrs validator.ValidationErrors
		if errors.As(err, &fieldErrs) {
			for _, fe := range fieldErrs {
				validation.AddFieldError(strings.ToLower(fe.Field()), addressFieldMessage(fe))
			}
		} else {
			validation.AddFieldError("input", "Invalid address")
		}
		return validation
	}
	return nil
}

func addressFieldMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "This field is required"
	case "max":
		return "Value is too long"
	default:
		return "Invalid value"
	}
}
