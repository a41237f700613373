package service

import (
	"context"
	"fmt"

	"github.com/foodondoor/backend/internal/models"
	"github.com/foodondoor/backend/internal/repo"
	"github.com/foodondoor/backend/internal/transport"
	"gorm.io/gorm"
)

type AddressService struct {
	Repo *repo.GormRepo
}

func (s *AddressService) customer(ctx context.Context, code string) (*models.Customer, error) {
	customer, err := s.Repo.CustomerByCode(ctx, code)
	if err == gorm.ErrRecordNotFound {
		return nil, fmt.Errorf("%w: customer %s", ErrNotFound, code)
	}
	if err != nil {
		return nil, err
	}
	return customer, nil
}

func (s *AddressService) Create(ctx context.Context, customerCode string, req transport.AddressRequest) (*models.Address, error) {
	customer, err := s.customer(ctx, customerCode)
	if err != nil {
		return nil, err
	}

	if req.Line1 == "" {
		return nil, fmt.Errorf("%w: address_line1 is required", ErrValidation)
	}
	if !ValidPincode(req.Pincode) {
		return nil, fmt.Errorf("%w: invalid pincode format, expected 6 digits", ErrValidation)
	}

	addr := &models.Address{
		CustomerID: customer.ID,
		Line1:      req.Line1,
		Line2:      req.Line2,
		City:       req.City,
		State:      req.State,
		Pincode:    req.Pincode,
		IsDefault:  req.IsDefault,
	}
	if err := s.Repo.CreateAddress(ctx, addr); err != nil {
		return nil, err
	}

	if addr.IsDefault {
		customer.DefaultAddressID = &addr.ID
		if err := s.Repo.SaveCustomer(ctx, customer); err != nil {
			return nil, err
		}
	}
	return addr, nil
}

func (s *AddressService) Update(ctx context.Context, customerCode string, addressID uint, req transport.AddressRequest) (*models.Address, error) {
	customer, err := s.customer(ctx, customerCode)
	if err != nil {
		return nil, err
	}

	addr, err := s.Repo.CustomerAddress(ctx, customer.ID, addressID)
	if err == gorm.ErrRecordNotFound {
		return nil, fmt.Errorf("%w: address %d", ErrNotFound, addressID)
	}
	if err != nil {
		return nil, err
	}

	if req.Line1 != "" {
		addr.Line1 = req.Line1
	}
	addr.Line2 = req.Line2
	if req.City != "" {
		addr.City = req.City
	}
	if req.State != "" {
		addr.State = req.State
	}
	if req.Pincode != "" {
		if !ValidPincode(req.Pincode) {
			return nil, fmt.Errorf("%w: invalid pincode format, expected 6 digits", ErrValidation)
		}
		addr.Pincode = req.Pincode
	}
	addr.IsDefault = req.IsDefault

	if err := s.Repo.UpdateAddress(ctx, addr); err != nil {
		return nil, err
	}

	if addr.IsDefault {
		customer.DefaultAddressID = &addr.ID
		if err := s.Repo.SaveCustomer(ctx, customer); err != nil {
			return nil, err
		}
	} else if customer.DefaultAddressID != nil && *customer.DefaultAddressID == addr.ID {
		customer.DefaultAddressID = nil
		if err := s.Repo.SaveCustomer(ctx, customer); err != nil {
			return nil, err
		}
	}
	return addr, nil
}

func (s *AddressService) List(ctx context.Context, customerCode string) ([]models.Address, error) {
	customer, err := s.customer(ctx, customerCode)
	if err != nil {
		return nil, err
	}
	return s.Repo.CustomerAddresses(ctx, customer.ID)
}

func (s *AddressService) Delete(ctx context.Context, customerCode string, addressID uint) error {
	customer, err := s.customer(ctx, customerCode)
	if err != nil {
		return err
	}

	if _, err := s.Repo.CustomerAddress(ctx, customer.ID, addressID); err != nil {
		if err == gorm.ErrRecordNotFound {
			return fmt.Errorf("%w: address %d", ErrNotFound, addressID)
		}
		return err
	}
	if err := s.Repo.DeleteAddress(ctx, addressID); err != nil {
		return err
	}

	if customer.DefaultAddressID != nil && *customer.DefaultAddressID == addressID {
		customer.DefaultAddressID = nil
		if err := s.Repo.SaveCustomer(ctx, customer); err != nil {
			return err
		}
	}
	return nil
}
