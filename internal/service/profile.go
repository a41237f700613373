package service

import (
	"context"
	"fmt"
	"io"

	"github.com/elastic/go-elasticsearch/v9"
	"github.com/foodondoor/backend/internal/models"
	"github.com/foodondoor/backend/internal/repo"
	"github.com/foodondoor/backend/internal/search"
	"github.com/foodondoor/backend/internal/storage"
	"github.com/foodondoor/backend/internal/transport"
	"github.com/foodondoor/backend/pkg/logging"
	"gorm.io/gorm"
)

// ProfileService handles vendor and customer account data outside of auth:
// profile reads and edits, push token registration, image uploads and the
// vendor notification inbox.
type ProfileService struct {
	Repo *repo.GormRepo
	Disk *storage.Disk
	ES   *elasticsearch.Client
}

func (s *ProfileService) Vendor(ctx context.Context, code string) (*models.Vendor, error) {
	vendor, err := s.Repo.VendorByCode(ctx, code)
	if err == gorm.ErrRecordNotFound {
		return nil, fmt.Errorf("%w: vendor %s", ErrNotFound, code)
	}
	if err != nil {
		return nil, err
	}
	return vendor, nil
}

func (s *ProfileService) Customer(ctx context.Context, code string) (*models.Customer, error) {
	customer, err := s.Repo.CustomerByCode(ctx, code)
	if err == gorm.ErrRecordNotFound {
		return nil, fmt.Errorf("%w: customer %s", ErrNotFound, code)
	}
	if err != nil {
		return nil, err
	}
	return customer, nil
}

func (s *ProfileService) UpdateVendor(ctx context.Context, code string, req transport.VendorSignupRequest) (*models.Vendor, error) {
	vendor, err := s.Vendor(ctx, code)
	if err != nil {
		return nil, err
	}

	if req.RestaurantName != "" {
		vendor.RestaurantName = req.RestaurantName
	}
	if req.Email != "" {
		vendor.Email = req.Email
	}
	if req.Address != "" {
		vendor.Address = req.Address
	}
	if req.ContactNumber != "" {
		vendor.ContactNumber = req.ContactNumber
	}
	if req.OpenHours != "" {
		vendor.OpenHours = req.OpenHours
	}
	if req.CuisineType != "" {
		vendor.CuisineType = req.CuisineType
	}
	if req.Pincode != "" {
		vendor.Pincode = req.Pincode
	}
	if req.Latitude != 0 {
		vendor.Latitude = req.Latitude
	}
	if req.Longitude != 0 {
		vendor.Longitude = req.Longitude
	}

	if err := s.Repo.SaveVendor(ctx, vendor); err != nil {
		return nil, err
	}
	s.indexVendor(ctx, vendor)
	return vendor, nil
}

func (s *ProfileService) SetVendorFCMToken(ctx context.Context, code, token string) error {
	if token == "" {
		return fmt.Errorf("%w: fcm_token is required", ErrValidation)
	}
	vendor, err := s.Vendor(ctx, code)
	if err != nil {
		return err
	}
	vendor.FCMToken = token
	return s.Repo.SaveVendor(ctx, vendor)
}

func (s *ProfileService) SetCustomerFCMToken(ctx context.Context, code, token string) error {
	if token == "" {
		return fmt.Errorf("%w: fcm_token is required", ErrValidation)
	}
	customer, err := s.Customer(ctx, code)
	if err != nil {
		return err
	}
	customer.FCMToken = token
	return s.Repo.SaveCustomer(ctx, customer)
}

// UploadVendorImage stores the file on disk and appends its public path to
// the vendor's image list.
func (s *ProfileService) UploadVendorImage(ctx context.Context, code, filename string, r io.Reader) (string, error) {
	vendor, err := s.Vendor(ctx, code)
	if err != nil {
		return "", err
	}

	path, err := s.Disk.SaveVendorImage(vendor.Code, filename, r)
	if err != nil {
		return "", err
	}

	vendor.Images = append(vendor.Images, path)
	if err := s.Repo.SaveVendor(ctx, vendor); err != nil {
		return "", err
	}
	return path, nil
}

func (s *ProfileService) Notifications(ctx context.Context, vendorCode string) ([]models.Notification, error) {
	vendor, err := s.Vendor(ctx, vendorCode)
	if err != nil {
		return nil, err
	}
	return s.Repo.VendorNotifications(ctx, vendor.ID)
}

// IndexVendor pushes the vendor's search document; used after signup and
// profile edits.
func (s *ProfileService) IndexVendor(ctx context.Context, vendor *models.Vendor) {
	s.indexVendor(ctx, vendor)
}

func (s *ProfileService) indexVendor(ctx context.Context, vendor *models.Vendor) {
	if s.ES == nil {
		return
	}
	doc := search.VendorDoc{
		Code:           vendor.Code,
		RestaurantName: vendor.RestaurantName,
		Address:        vendor.Address,
		CuisineType:    vendor.CuisineType,
		Rating:         vendor.Rating,
	}
	if err := search.Index(ctx, s.ES, search.VendorIndex, vendor.Code, doc); err != nil {
		logging.FromContext(ctx).Warn("vendor index failed", "vendor", vendor.Code, "error", err)
	}
}
