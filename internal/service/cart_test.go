package service

import (
	"context"
	"testing"

	"github.com/foodondoor/backend/internal/models"
	"github.com/foodondoor/backend/internal/repo"
	"github.com/foodondoor/backend/internal/transport"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type cartFixtures struct {
	repo     *repo.GormRepo
	svc      *CartService
	customer models.Customer
	dosa     models.FoodListing
	biryani  models.FoodListing
}

func newCartFixtures(t *testing.T) *cartFixtures {
	t.Helper()
	r := initTestRepo(t)
	ctx := context.Background()

	vendorA := models.Vendor{Code: "V001", Phone: "9000000001", RestaurantName: "Udupi Palace", Email: "a@example.com", IsActive: true}
	vendorB := models.Vendor{Code: "V002", Phone: "9000000002", RestaurantName: "Biryani House", Email: "b@example.com", IsActive: true}
	require.NoError(t, r.DB.Create(&vendorA).Error)
	require.NoError(t, r.DB.Create(&vendorB).Error)

	customer := models.Customer{Code: "C10001", Phone: "9111111111", FullName: "Asha", Email: "asha@example.com"}
	require.NoError(t, r.CreateCustomer(ctx, &customer))

	dosa := models.FoodListing{VendorID: vendorA.ID, Name: "Masala Dosa", Price: 80, IsAvailable: true}
	biryani := models.FoodListing{VendorID: vendorB.ID, Name: "Biryani", Price: 220, IsAvailable: true}
	require.NoError(t, r.DB.Create(&dosa).Error)
	require.NoError(t, r.DB.Create(&biryani).Error)

	return &cartFixtures{repo: r, svc: &CartService{Repo: r}, customer: customer, dosa: dosa, biryani: biryani}
}

func TestCartService_AddAndView(t *testing.T) {
	t.Parallel()

	f := newCartFixtures(t)
	ctx := context.Background()

	view, multiVendor, err := f.svc.Add(ctx, transport.AddToCartRequest{
		CustomerID: f.customer.Code, FoodID: f.dosa.ID, Quantity: 2,
	})
	require.NoError(t, err)
	require.Nil(t, multiVendor)
	require.Len(t, view.Items, 1)
	assert.InDelta(t, 160.0, view.Total, 0.001)
	require.NotNil(t, view.Vendor)
	assert.Equal(t, "V001", view.Vendor.ID)
}

func TestCartService_MultiVendorPayload(t *testing.T) {
	t.Parallel()

	f := newCartFixtures(t)
	ctx := context.Background()

	_, _, err := f.svc.Add(ctx, transport.AddToCartRequest{CustomerID: f.customer.Code, FoodID: f.dosa.ID, Quantity: 1})
	require.NoError(t, err)

	view, multiVendor, err := f.svc.Add(ctx, transport.AddToCartRequest{CustomerID: f.customer.Code, FoodID: f.biryani.ID, Quantity: 1})
	require.NoError(t, err)
	assert.Nil(t, view)
	require.NotNil(t, multiVendor)
	assert.Equal(t, "MULTI_VENDOR_ERROR", multiVendor.Error)
	assert.Equal(t, "V001", multiVendor.CurrentVendor.ID)
	assert.Equal(t, "V002", multiVendor.NewVendor.ID)
}

func TestCartService_AddUnavailableItem(t *testing.T) {
	t.Parallel()

	f := newCartFixtures(t)
	ctx := context.Background()

	f.dosa.IsAvailable = false
	require.NoError(t, f.repo.SaveFoodListing(ctx, &f.dosa))

	_, _, err := f.svc.Add(ctx, transport.AddToCartRequest{CustomerID: f.customer.Code, FoodID: f.dosa.ID, Quantity: 1})
	assert.ErrorIs(t, err, ErrValidation)
}

func TestCartService_RemoveAndClear(t *testing.T) {
	t.Parallel()

	f := newCartFixtures(t)
	ctx := context.Background()

	view, _, err := f.svc.Add(ctx, transport.AddToCartRequest{CustomerID: f.customer.Code, FoodID: f.dosa.ID, Quantity: 1})
	require.NoError(t, err)
	require.Len(t, view.Items, 1)

	require.NoError(t, f.svc.Remove(ctx, f.customer.Code, view.Items[0].ID))
	assert.ErrorIs(t, f.svc.Remove(ctx, f.customer.Code, view.Items[0].ID), ErrNotFound)

	_, _, err = f.svc.Add(ctx, transport.AddToCartRequest{CustomerID: f.customer.Code, FoodID: f.dosa.ID, Quantity: 1})
	require.NoError(t, err)
	require.NoError(t, f.svc.Clear(ctx, f.customer.Code))

	empty, err := f.svc.View(ctx, f.customer.Code)
	require.NoError(t, err)
	assert.Empty(t, empty.Items)
	assert.Zero(t, empty.Total)
}
