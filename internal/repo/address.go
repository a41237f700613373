package repo

import (
	"context"

	"github.com/foodondoor/backend/internal/models"
	"gorm.io/gorm"
)

// CreateAddress inserts the address; when it is marked default, the
// sibling default flags are cleared in the same transaction.
func (r *GormRepo) CreateAddress(ctx context.Context, a *models.Address) error {
	return r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if a.IsDefault {
			if err := tx.Model(&models.Address{}).
				Where("customer_id = ?", a.CustomerID).
				Update("is_default", false).Error; err != nil {
				return err
			}
		}
		return tx.Create(a).Error
	})
}

func (r *GormRepo) UpdateAddress(ctx context.Context, a *models.Address) error {
	return r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if a.IsDefault {
			if err := tx.Model(&models.Address{}).
				Where("customer_id = ? AND id <> ?", a.CustomerID, a.ID).
				Update("is_default", false).Error; err != nil {
				return err
			}
		}
		return tx.Save(a).Error
	})
}

func (r *GormRepo) AddressByID(ctx context.Context, id uint) (*models.Address, error) {
	var a models.Address
	if err := r.DB.WithContext(ctx).First(&a, id).Error; err != nil {
		return nil, err
	}
	return &a, nil
}

func (r *GormRepo) CustomerAddress(ctx context.Context, customerID, addressID uint) (*models.Address, error) {
	var a models.Address
	if err := r.DB.WithContext(ctx).
		Where("id = ? AND customer_id = ?", addressID, customerID).
		First(&a).Error; err != nil {
		return nil, err
	}
	return &a, nil
}

func (r *GormRepo) CustomerAddresses(ctx context.Context, customerID uint) ([]models.Address, error) {
	var addrs []models.Address
	if err := r.DB.WithContext(ctx).
		Where("customer_id = ?", customerID).
		Order("id ASC").
		Find(&addrs).Error; err != nil {
		return nil, err
	}
	return addrs, nil
}

func (r *GormRepo) DeleteAddress(ctx context.Context, id uint) error {
	res := r.DB.WithContext(ctx).Delete(&models.Address{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
