package service

import (
	"context"
	"fmt"

	"github.com/elastic/go-elasticsearch/v9"
	"github.com/foodondoor/backend/internal/models"
	"github.com/foodondoor/backend/internal/repo"
	"github.com/foodondoor/backend/internal/search"
	"github.com/foodondoor/backend/internal/transport"
	"github.com/foodondoor/backend/pkg/logging"
	"gorm.io/gorm"
)

// CatalogService owns a vendor's menu. Search indexing follows every write
// best-effort; a failed index call is logged, never surfaced.
type CatalogService struct {
	Repo *repo.GormRepo
	ES   *elasticsearch.Client
}

func (s *CatalogService) vendor(ctx context.Context, code string) (*models.Vendor, error) {
	vendor, err := s.Repo.VendorByCode(ctx, code)
	if err == gorm.ErrRecordNotFound {
		return nil, fmt.Errorf("%w: vendor %s", ErrNotFound, code)
	}
	if err != nil {
		return nil, err
	}
	return vendor, nil
}

func (s *CatalogService) Create(ctx context.Context, vendorCode string, req transport.FoodListingRequest) (*models.FoodListing, error) {
	vendor, err := s.vendor(ctx, vendorCode)
	if err != nil {
		return nil, err
	}

	if req.Name == "" {
		return nil, fmt.Errorf("%w: name is required", ErrValidation)
	}
	if req.Price == nil || *req.Price < 0 {
		return nil, fmt.Errorf("%w: price must be a non-negative number", ErrValidation)
	}

	food := &models.FoodListing{
		VendorID:    vendor.ID,
		Name:        req.Name,
		Description: req.Description,
		Price:       *req.Price,
		IsAvailable: true,
		Category:    req.Category,
		Images:      req.Images,
	}
	if req.IsAvailable != nil {
		food.IsAvailable = *req.IsAvailable
	}
	if err := s.Repo.CreateFoodListing(ctx, food); err != nil {
		return nil, err
	}

	s.indexFood(ctx, vendor, food)
	return food, nil
}

func (s *CatalogService) Update(ctx context.Context, vendorCode string, foodID uint, req transport.FoodListingRequest) (*models.FoodListing, error) {
	vendor, err := s.vendor(ctx, vendorCode)
	if err != nil {
		return nil, err
	}

	food, err := s.Repo.FoodListing(ctx, vendor.ID, foodID)
	if err == gorm.ErrRecordNotFound {
		return nil, fmt.Errorf("%w: food item %d", ErrNotFound, foodID)
	}
	if err != nil {
		return nil, err
	}

	if req.Name != "" {
		food.Name = req.Name
	}
	if req.Description != "" {
		food.Description = req.Description
	}
	if req.Price != nil {
		if *req.Price < 0 {
			return nil, fmt.Errorf("%w: price must be a non-negative number", ErrValidation)
		}
		food.Price = *req.Price
	}
	if req.IsAvailable != nil {
		food.IsAvailable = *req.IsAvailable
	}
	if req.Category != "" {
		food.Category = req.Category
	}
	if req.Images != nil {
		food.Images = req.Images
	}

	if err := s.Repo.SaveFoodListing(ctx, food); err != nil {
		return nil, err
	}

	s.indexFood(ctx, vendor, food)
	return food, nil
}

func (s *CatalogService) Delete(ctx context.Context, vendorCode string, foodID uint) error {
	vendor, err := s.vendor(ctx, vendorCode)
	if err != nil {
		return err
	}

	if err := s.Repo.DeleteFoodListing(ctx, vendor.ID, foodID); err != nil {
		if err == gorm.ErrRecordNotFound {
			return fmt.Errorf("%w: food item %d", ErrNotFound, foodID)
		}
		return err
	}

	if s.ES != nil {
		if err := search.Delete(ctx, s.ES, search.FoodIndex, search.FoodDocID(foodID)); err != nil {
			logging.FromContext(ctx).Warn("search delete failed", "food_id", foodID, "error", err)
		}
	}
	return nil
}

// VendorMenu lists a vendor's own listings, including unavailable ones.
func (s *CatalogService) VendorMenu(ctx context.Context, vendorCode string) ([]models.FoodListing, error) {
	vendor, err := s.vendor(ctx, vendorCode)
	if err != nil {
		return nil, err
	}
	return s.Repo.VendorFoodListings(ctx, vendor.ID, false)
}

// PublicMenu lists only the available listings of a vendor, for customers.
func (s *CatalogService) PublicMenu(ctx context.Context, vendorCode string) (*models.Vendor, []models.FoodListing, error) {
	vendor, err := s.vendor(ctx, vendorCode)
	if err != nil {
		return nil, nil, err
	}
	foods, err := s.Repo.VendorFoodListings(ctx, vendor.ID, true)
	if err != nil {
		return nil, nil, err
	}
	return vendor, foods, nil
}

// FoodDetail is the public single-item read, with the owning vendor.
func (s *CatalogService) FoodDetail(ctx context.Context, foodID uint) (*models.FoodListing, *models.Vendor, error) {
	food, err := s.Repo.FoodListingByID(ctx, foodID)
	if err == gorm.ErrRecordNotFound {
		return nil, nil, fmt.Errorf("%w: food item %d", ErrNotFound, foodID)
	}
	if err != nil {
		return nil, nil, err
	}
	vendor, err := s.Repo.VendorByID(ctx, food.VendorID)
	if err != nil {
		return nil, nil, err
	}
	return food, vendor, nil
}

func (s *CatalogService) indexFood(ctx context.Context, vendor *models.Vendor, food *models.FoodListing) {
	if s.ES == nil {
		return
	}
	doc := search.FoodDoc{
		ID:          food.ID,
		VendorCode:  vendor.Code,
		Name:        food.Name,
		Description: food.Description,
		Category:    food.Category,
		Price:       food.Price,
		IsAvailable: food.IsAvailable,
	}
	if err := search.Index(ctx, s.ES, search.FoodIndex, search.FoodDocID(food.ID), doc); err != nil {
		logging.FromContext(ctx).Warn("search index failed", "food_id", food.ID, "error", err)
	}
}
