package repo

import (
	"context"

	"github.com/foodondoor/backend/internal/models"
)

func (r *GormRepo) CreateNotification(ctx context.Context, n *models.Notification) error {
	return r.DB.WithContext(ctx).Create(n).Error
}

func (r *GormRepo) VendorNotifications(ctx context.Context, vendorID uint) ([]models.Notification, error) {
	var items []models.Notification
	if err := r.DB.WithContext(ctx).
		Where("vendor_id = ?", vendorID).
		Order("created_at DESC").
		Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}
