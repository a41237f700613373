package repo

import (
	"context"

	"github.com/foodondoor/backend/internal/models"
	"gorm.io/gorm"
)

// --- promotions ---

func (r *GormRepo) CreatePromotion(ctx context.Context, p *models.Promotion) error {
	return r.DB.WithContext(ctx).Create(p).Error
}

func (r *GormRepo) Promotion(ctx context.Context, vendorID, promoID uint) (*models.Promotion, error) {
	var p models.Promotion
	if err := r.DB.WithContext(ctx).
		Where("id = ? AND vendor_id = ?", promoID, vendorID).
		First(&p).Error; err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *GormRepo) VendorPromotions(ctx context.Context, vendorID uint) ([]models.Promotion, error) {
	var promos []models.Promotion
	if err := r.DB.WithContext(ctx).
		Where("vendor_id = ?", vendorID).
		Order("created_at DESC").
		Find(&promos).Error; err != nil {
		return nil, err
	}
	return promos, nil
}

func (r *GormRepo) SavePromotion(ctx context.Context, p *models.Promotion) error {
	return r.DB.WithContext(ctx).Save(p).Error
}

func (r *GormRepo) DeletePromotion(ctx context.Context, vendorID, promoID uint) error {
	res := r.DB.WithContext(ctx).
		Where("id = ? AND vendor_id = ?", promoID, vendorID).
		Delete(&models.Promotion{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// --- vendor categories ---

func (r *GormRepo) CreateVendorCategory(ctx context.Context, c *models.VendorCategory) error {
	return r.DB.WithContext(ctx).Create(c).Error
}

func (r *GormRepo) VendorCategory(ctx context.Context, vendorID, catID uint) (*models.VendorCategory, error) {
	var c models.VendorCategory
	if err := r.DB.WithContext(ctx).
		Where("id = ? AND vendor_id = ?", catID, vendorID).
		First(&c).Error; err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *GormRepo) VendorCategories(ctx context.Context, vendorID uint) ([]models.VendorCategory, error) {
	var cats []models.VendorCategory
	if err := r.DB.WithContext(ctx).
		Where("vendor_id = ?", vendorID).
		Order("created_at DESC").
		Find(&cats).Error; err != nil {
		return nil, err
	}
	return cats, nil
}

func (r *GormRepo) SaveVendorCategory(ctx context.Context, c *models.VendorCategory) error {
	return r.DB.WithContext(ctx).Save(c).Error
}

func (r *GormRepo) DeleteVendorCategory(ctx context.Context, vendorID, catID uint) error {
	res := r.DB.WithContext(ctx).
		Where("id = ? AND vendor_id = ?", catID, vendorID).
		Delete(&models.VendorCategory{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// --- home screen content ---

func (r *GormRepo) ActiveBanners(ctx context.Context) ([]models.Banner, error) {
	var banners []models.Banner
	if err := r.DB.WithContext(ctx).
		Where("is_active = ?", true).
		Order("id ASC").
		Find(&banners).Error; err != nil {
		return nil, err
	}
	return banners, nil
}

func (r *GormRepo) ActiveFoodCategories(ctx context.Context) ([]models.FoodCategory, error) {
	var cats []models.FoodCategory
	if err := r.DB.WithContext(ctx).
		Where("is_active = ?", true).
		Order("id ASC").
		Find(&cats).Error; err != nil {
		return nil, err
	}
	return cats, nil
}
