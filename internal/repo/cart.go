package repo

import (
	"context"
	"errors"

	"github.com/foodondoor/backend/internal/models"
	"gorm.io/gorm"
)

// ErrMultiVendor is returned when an item from a second vendor is added to
// a non-empty cart.
var ErrMultiVendor = errors.New("cart already holds items from another vendor")

func (r *GormRepo) GetCart(ctx context.Context, customerID uint) ([]models.CartItem, error) {
	var items []models.CartItem
	if err := r.DB.WithContext(ctx).
		Where("customer_id = ?", customerID).
		Order("created_at ASC").
		Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

// CartVendorID returns the vendor owning the items currently in the cart,
// or 0 for an empty cart.
func (r *GormRepo) CartVendorID(ctx context.Context, customerID uint) (uint, error) {
	var item models.CartItem
	err := r.DB.WithContext(ctx).
		Where("customer_id = ?", customerID).
		First(&item).Error
	if err == gorm.ErrRecordNotFound {
		return 0, nil
	}
	if err != nil {
		return 0, err
	}

	var food models.FoodListing
	if err := r.DB.WithContext(ctx).First(&food, item.FoodListingID).Error; err != nil {
		return 0, err
	}
	return food.VendorID, nil
}

// AddToCart enforces the single-vendor invariant, then either increments
// the existing row's quantity or inserts a new one.
func (r *GormRepo) AddToCart(ctx context.Context, item *models.CartItem, vendorID uint) error {
	return r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		currentVendor, err := (&GormRepo{DB: tx}).CartVendorID(ctx, item.CustomerID)
		if err != nil {
			return err
		}
		if currentVendor != 0 && currentVendor != vendorID {
			return ErrMultiVendor
		}

		res := tx.Model(&models.CartItem{}).
			Where("customer_id = ? AND food_listing_id = ?", item.CustomerID, item.FoodListingID).
			Update("quantity", gorm.Expr("quantity + ?", item.Quantity))
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected > 0 {
			return tx.Where("customer_id = ? AND food_listing_id = ?", item.CustomerID, item.FoodListingID).
				First(item).Error
		}

		return tx.Create(item).Error
	})
}

func (r *GormRepo) DeleteCartItem(ctx context.Context, customerID, itemID uint) error {
	res := r.DB.WithContext(ctx).
		Where("id = ? AND customer_id = ?", itemID, customerID).
		Delete(&models.CartItem{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *GormRepo) ClearCart(ctx context.Context, customerID uint) error {
	return r.DB.WithContext(ctx).
		Where("customer_id = ?", customerID).
		Delete(&models.CartItem{}).Error
}
