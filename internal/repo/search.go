package repo

import (
	"context"

	"github.com/foodondoor/backend/internal/models"
)

// SearchCatalog is the LIKE-based fallback used when no search backend is
// configured.
func (r *GormRepo) SearchCatalog(ctx context.Context, q string, limit int) ([]models.FoodListing, []models.Vendor, error) {
	pattern := "%" + q + "%"

	var foods []models.FoodListing
	if err := r.DB.WithContext(ctx).
		Where("is_available = ?", true).
		Where("name LIKE ? OR description LIKE ? OR category LIKE ?", pattern, pattern, pattern).
		Limit(limit).
		Find(&foods).Error; err != nil {
		return nil, nil, err
	}

	var vendors []models.Vendor
	if err := r.DB.WithContext(ctx).
		Where("is_active = ?", true).
		Where("restaurant_name LIKE ? OR cuisine_type LIKE ?", pattern, pattern).
		Limit(limit).
		Find(&vendors).Error; err != nil {
		return nil, nil, err
	}
	return foods, vendors, nil
}
