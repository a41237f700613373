package repo

import (
	"context"
	"crypto/rand"
	"fmt"
	"math/big"

	"github.com/foodondoor/backend/internal/models"
)

// NewOrderNumber returns a random ORD##### number. No collision check; the
// unique index on the column backstops a clash as an insert failure.
func NewOrderNumber() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(90000))
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("ORD%d", n.Int64()+10000), nil
}

// CreateOrder persists the order together with its line items in one
// transaction (gorm cascades the Items association inside Create).
func (r *GormRepo) CreateOrder(ctx context.Context, order *models.Order) error {
	return r.DB.WithContext(ctx).Create(order).Error
}

func (r *GormRepo) OrderByNumber(ctx context.Context, number string) (*models.Order, error) {
	var order models.Order
	if err := r.DB.WithContext(ctx).
		Preload("Items").
		Preload("Items.FoodListing").
		Preload("Vendor").
		Preload("Customer").
		Where("number = ?", number).
		First(&order).Error; err != nil {
		return nil, err
	}
	return &order, nil
}

func (r *GormRepo) CustomerOrders(ctx context.Context, customerID uint, statuses []string) ([]models.Order, error) {
	q := r.DB.WithContext(ctx).
		Preload("Items").
		Preload("Items.FoodListing").
		Preload("Vendor").
		Where("customer_id = ?", customerID)
	if len(statuses) > 0 {
		q = q.Where("status IN ?", statuses)
	}

	var orders []models.Order
	if err := q.Order("created_at DESC").Find(&orders).Error; err != nil {
		return nil, err
	}
	return orders, nil
}

func (r *GormRepo) VendorOrders(ctx context.Context, vendorID uint) ([]models.Order, error) {
	var orders []models.Order
	if err := r.DB.WithContext(ctx).
		Preload("Items").
		Preload("Items.FoodListing").
		Where("vendor_id = ?", vendorID).
		Order("created_at DESC").
		Find(&orders).Error; err != nil {
		return nil, err
	}
	return orders, nil
}

func (r *GormRepo) SaveOrder(ctx context.Context, order *models.Order) error {
	return r.DB.WithContext(ctx).Save(order).Error
}

type VendorOrderStats struct {
	TotalOrders     int64
	TotalRevenue    float64
	PendingOrders   int64
	CompletedOrders int64
	PopularItem     string
}

// VendorOrderStats aggregates the dashboard numbers for one vendor. The
// popular item is the listing with the highest quantity sold across all of
// the vendor's orders; empty when the vendor has none.
func (r *GormRepo) VendorOrderStats(ctx context.Context, vendorID uint) (*VendorOrderStats, error) {
	db := r.DB.WithContext(ctx)
	var stats VendorOrderStats

	if err := db.Model(&models.Order{}).
		Where("vendor_id = ?", vendorID).
		Count(&stats.TotalOrders).Error; err != nil {
		return nil, err
	}
	if err := db.Model(&models.Order{}).
		Where("vendor_id = ?", vendorID).
		Select("COALESCE(SUM(total_amount), 0)").
		Scan(&stats.TotalRevenue).Error; err != nil {
		return nil, err
	}
	if err := db.Model(&models.Order{}).
		Where("vendor_id = ? AND status = ?", vendorID, models.OrderStatusPending).
		Count(&stats.PendingOrders).Error; err != nil {
		return nil, err
	}
	if err := db.Model(&models.Order{}).
		Where("vendor_id = ? AND status = ?", vendorID, models.OrderStatusDelivered).
		Count(&stats.CompletedOrders).Error; err != nil {
		return nil, err
	}

	var top struct {
		Name string
		Qty  int64
	}
	if err := db.Model(&models.OrderItem{}).
		Select("food_listings.name AS name, SUM(order_items.quantity) AS qty").
		Joins("JOIN orders ON orders.id = order_items.order_id").
		Joins("JOIN food_listings ON food_listings.id = order_items.food_listing_id").
		Where("orders.vendor_id = ?", vendorID).
		Group("food_listings.name").
		Order("qty DESC").
		Limit(1).
		Scan(&top).Error; err != nil {
		return nil, err
	}
	stats.PopularItem = top.Name
	return &stats, nil
}
