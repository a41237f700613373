package service

import (
	"context"
	"fmt"
	"time"

	"github.com/foodondoor/backend/internal/models"
	"github.com/foodondoor/backend/internal/repo"
	"github.com/foodondoor/backend/internal/transport"
	"gorm.io/gorm"
)

const promoDateLayout = "2006-01-02"

// MarketingService owns vendor promotions, vendor menu categories and the
// customer home-screen content.
type MarketingService struct {
	Repo *repo.GormRepo
}

func (s *MarketingService) vendor(ctx context.Context, code string) (*models.Vendor, error) {
	vendor, err := s.Repo.VendorByCode(ctx, code)
	if err == gorm.ErrRecordNotFound {
		return nil, fmt.Errorf("%w: vendor %s", ErrNotFound, code)
	}
	if err != nil {
		return nil, err
	}
	return vendor, nil
}

func validPromoDate(d string) bool {
	if d == "" {
		return true
	}
	_, err := time.Parse(promoDateLayout, d)
	return err == nil
}

func (s *MarketingService) Promotions(ctx context.Context, vendorCode string) ([]models.Promotion, error) {
	vendor, err := s.vendor(ctx, vendorCode)
	if err != nil {
		return nil, err
	}
	return s.Repo.VendorPromotions(ctx, vendor.ID)
}

func (s *MarketingService) CreatePromotion(ctx context.Context, vendorCode string, req transport.PromotionRequest) (*models.Promotion, error) {
	vendor, err := s.vendor(ctx, vendorCode)
	if err != nil {
		return nil, err
	}

	if req.Title == "" {
		return nil, fmt.Errorf("%w: title is required", ErrValidation)
	}
	if !validPromoDate(req.StartDate) || !validPromoDate(req.EndDate) {
		return nil, fmt.Errorf("%w: dates must be YYYY-MM-DD", ErrValidation)
	}

	promo := &models.Promotion{
		VendorID:    vendor.ID,
		Title:       req.Title,
		Description: req.Description,
		StartDate:   req.StartDate,
		EndDate:     req.EndDate,
	}
	if err := s.Repo.CreatePromotion(ctx, promo); err != nil {
		return nil, err
	}
	return promo, nil
}

func (s *MarketingService) UpdatePromotion(ctx context.Context, vendorCode string, promoID uint, req transport.PromotionRequest) (*models.Promotion, error) {
	vendor, err := s.vendor(ctx, vendorCode)
	if err != nil {
		return nil, err
	}

	promo, err := s.Repo.Promotion(ctx, vendor.ID, promoID)
	if err == gorm.ErrRecordNotFound {
		return nil, fmt.Errorf("%w: promotion %d", ErrNotFound, promoID)
	}
	if err != nil {
		return nil, err
	}

	if req.Title != "" {
		promo.Title = req.Title
	}
	if req.Description != "" {
		promo.Description = req.Description
	}
	if req.StartDate != "" {
		if !validPromoDate(req.StartDate) {
			return nil, fmt.Errorf("%w: dates must be YYYY-MM-DD", ErrValidation)
		}
		promo.StartDate = req.StartDate
	}
	if req.EndDate != "" {
		if !validPromoDate(req.EndDate) {
			return nil, fmt.Errorf("%w: dates must be YYYY-MM-DD", ErrValidation)
		}
		promo.EndDate = req.EndDate
	}

	if err := s.Repo.SavePromotion(ctx, promo); err != nil {
		return nil, err
	}
	return promo, nil
}

func (s *MarketingService) DeletePromotion(ctx context.Context, vendorCode string, promoID uint) error {
	vendor, err := s.vendor(ctx, vendorCode)
	if err != nil {
		return err
	}
	if err := s.Repo.DeletePromotion(ctx, vendor.ID, promoID); err != nil {
		if err == gorm.ErrRecordNotFound {
			return fmt.Errorf("%w: promotion %d", ErrNotFound, promoID)
		}
		return err
	}
	return nil
}

func (s *MarketingService) Categories(ctx context.Context, vendorCode string) ([]models.VendorCategory, error) {
	vendor, err := s.vendor(ctx, vendorCode)
	if err != nil {
		return nil, err
	}
	return s.Repo.VendorCategories(ctx, vendor.ID)
}

func (s *MarketingService) CreateCategory(ctx context.Context, vendorCode string, req transport.VendorCategoryRequest) (*models.VendorCategory, error) {
	vendor, err := s.vendor(ctx, vendorCode)
	if err != nil {
		return nil, err
	}
	if req.Name == "" {
		return nil, fmt.Errorf("%w: name is required", ErrValidation)
	}

	cat := &models.VendorCategory{VendorID: vendor.ID, Name: req.Name}
	if err := s.Repo.CreateVendorCategory(ctx, cat); err != nil {
		return nil, err
	}
	return cat, nil
}

func (s *MarketingService) UpdateCategory(ctx context.Context, vendorCode string, catID uint, req transport.VendorCategoryRequest) (*models.VendorCategory, error) {
	vendor, err := s.vendor(ctx, vendorCode)
	if err != nil {
		return nil, err
	}

	cat, err := s.Repo.VendorCategory(ctx, vendor.ID, catID)
	if err == gorm.ErrRecordNotFound {
		return nil, fmt.Errorf("%w: category %d", ErrNotFound, catID)
	}
	if err != nil {
		return nil, err
	}

	if req.Name == "" {
		return nil, fmt.Errorf("%w: name is required", ErrValidation)
	}
	cat.Name = req.Name

	if err := s.Repo.SaveVendorCategory(ctx, cat); err != nil {
		return nil, err
	}
	return cat, nil
}

func (s *MarketingService) DeleteCategory(ctx context.Context, vendorCode string, catID uint) error {
	vendor, err := s.vendor(ctx, vendorCode)
	if err != nil {
		return err
	}
	if err := s.Repo.DeleteVendorCategory(ctx, vendor.ID, catID); err != nil {
		if err == gorm.ErrRecordNotFound {
			return fmt.Errorf("%w: category %d", ErrNotFound, catID)
		}
		return err
	}
	return nil
}

// HomeBanners lists the active carousel images for the customer home screen.
func (s *MarketingService) HomeBanners(ctx context.Context) ([]transport.BannerView, error) {
	banners, err := s.Repo.ActiveBanners(ctx)
	if err != nil {
		return nil, err
	}
	views := make([]transport.BannerView, 0, len(banners))
	for _, b := range banners {
		views = append(views, transport.BannerView{Title: b.Title, Image: b.Image})
	}
	return views, nil
}

// HomeCategories lists the active cuisine tiles for the customer home screen.
func (s *MarketingService) HomeCategories(ctx context.Context) ([]transport.FoodCategoryView, error) {
	cats, err := s.Repo.ActiveFoodCategories(ctx)
	if err != nil {
		return nil, err
	}
	views := make([]transport.FoodCategoryView, 0, len(cats))
	for _, c := range cats {
		views = append(views, transport.FoodCategoryView{Name: c.Name, ImageURL: c.ImageURL})
	}
	return views, nil
}
