package repo

import (
	"context"
	"testing"

	"github.com/foodondoor/backend/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seedCartFixtures(t *testing.T, r *GormRepo) (customer models.Customer, foodA, foodB models.FoodListing) {
	t.Helper()
	ctx := context.Background()

	vendorA := models.Vendor{Code: "V001", Phone: "9000000001", RestaurantName: "A", Email: "a@example.com"}
	vendorB := models.Vendor{Code: "V002", Phone: "9000000002", RestaurantName: "B", Email: "b@example.com"}
	require.NoError(t, r.DB.Create(&vendorA).Error)
	require.NoError(t, r.DB.Create(&vendorB).Error)

	customer = models.Customer{Code: "C10001", Phone: "9111111111", FullName: "Test", Email: "c@example.com"}
	require.NoError(t, r.CreateCustomer(ctx, &customer))

	foodA = models.FoodListing{VendorID: vendorA.ID, Name: "Dosa", Price: 80, IsAvailable: true}
	foodB = models.FoodListing{VendorID: vendorB.ID, Name: "Biryani", Price: 220, IsAvailable: true}
	require.NoError(t, r.DB.Create(&foodA).Error)
	require.NoError(t, r.DB.Create(&foodB).Error)
	return
}

func TestAddToCart_IncrementsExistingRow(t *testing.T) {
	t.Parallel()

	r := initTestDB(t)
	ctx := context.Background()
	customer, foodA, _ := seedCartFixtures(t, r)

	first := &models.CartItem{CustomerID: customer.ID, FoodListingID: foodA.ID, Quantity: 1}
	require.NoError(t, r.AddToCart(ctx, first, foodA.VendorID))

	second := &models.CartItem{CustomerID: customer.ID, FoodListingID: foodA.ID, Quantity: 2}
	require.NoError(t, r.AddToCart(ctx, second, foodA.VendorID))

	items, err := r.GetCart(ctx, customer.ID)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.EqualValues(t, 3, items[0].Quantity)
}

func TestAddToCart_RejectsSecondVendor(t *testing.T) {
	t.Parallel()

	r := initTestDB(t)
	ctx := context.Background()
	customer, foodA, foodB := seedCartFixtures(t, r)

	require.NoError(t, r.AddToCart(ctx, &models.CartItem{CustomerID: customer.ID, FoodListingID: foodA.ID, Quantity: 1}, foodA.VendorID))

	err := r.AddToCart(ctx, &models.CartItem{CustomerID: customer.ID, FoodListingID: foodB.ID, Quantity: 1}, foodB.VendorID)
	assert.ErrorIs(t, err, ErrMultiVendor)

	// the cart is unchanged
	items, err := r.GetCart(ctx, customer.ID)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, foodA.ID, items[0].FoodListingID)
}

func TestCartVendorID(t *testing.T) {
	t.Parallel()

	r := initTestDB(t)
	ctx := context.Background()
	customer, foodA, _ := seedCartFixtures(t, r)

	id, err := r.CartVendorID(ctx, customer.ID)
	require.NoError(t, err)
	assert.Zero(t, id)

	require.NoError(t, r.AddToCart(ctx, &models.CartItem{CustomerID: customer.ID, FoodListingID: foodA.ID, Quantity: 1}, foodA.VendorID))

	id, err = r.CartVendorID(ctx, customer.ID)
	require.NoError(t, err)
	assert.Equal(t, foodA.VendorID, id)
}

func TestClearCart(t *testing.T) {
	t.Parallel()

	r := initTestDB(t)
	ctx := context.Background()
	customer, foodA, _ := seedCartFixtures(t, r)

	require.NoError(t, r.AddToCart(ctx, &models.CartItem{CustomerID: customer.ID, FoodListingID: foodA.ID, Quantity: 2}, foodA.VendorID))
	require.NoError(t, r.ClearCart(ctx, customer.ID))

	items, err := r.GetCart(ctx, customer.ID)
	require.NoError(t, err)
	assert.Empty(t, items)
}
