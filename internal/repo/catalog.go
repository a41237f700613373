package repo

import (
	"context"

	"github.com/foodondoor/backend/internal/models"
	"gorm.io/gorm"
)

func (r *GormRepo) CreateFoodListing(ctx context.Context, f *models.FoodListing) error {
	return r.DB.WithContext(ctx).Create(f).Error
}

func (r *GormRepo) FoodListing(ctx context.Context, vendorID, foodID uint) (*models.FoodListing, error) {
	var f models.FoodListing
	if err := r.DB.WithContext(ctx).
		Where("id = ? AND vendor_id = ?", foodID, vendorID).
		First(&f).Error; err != nil {
		return nil, err
	}
	return &f, nil
}

func (r *GormRepo) FoodListingByID(ctx context.Context, foodID uint) (*models.FoodListing, error) {
	var f models.FoodListing
	if err := r.DB.WithContext(ctx).First(&f, foodID).Error; err != nil {
		return nil, err
	}
	return &f, nil
}

func (r *GormRepo) VendorFoodListings(ctx context.Context, vendorID uint, availableOnly bool) ([]models.FoodListing, error) {
	q := r.DB.WithContext(ctx).Where("vendor_id = ?", vendorID)
	if availableOnly {
		q = q.Where("is_available = ?", true)
	}
	var foods []models.FoodListing
	if err := q.Order("id ASC").Find(&foods).Error; err != nil {
		return nil, err
	}
	return foods, nil
}

func (r *GormRepo) SaveFoodListing(ctx context.Context, f *models.FoodListing) error {
	return r.DB.WithContext(ctx).Save(f).Error
}

func (r *GormRepo) DeleteFoodListing(ctx context.Context, vendorID, foodID uint) error {
	res := r.DB.WithContext(ctx).
		Where("id = ? AND vendor_id = ?", foodID, vendorID).
		Delete(&models.FoodListing{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
