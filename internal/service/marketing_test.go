package service

import (
	"context"
	"testing"

	"github.com/foodondoor/backend/internal/models"
	"github.com/foodondoor/backend/internal/transport"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newMarketingFixtures(t *testing.T) (*MarketingService, models.Vendor) {
	t.Helper()
	r := initTestRepo(t)

	vendor := models.Vendor{
		Code: "V001", Phone: "9000000001", RestaurantName: "Udupi Palace",
		Email: "udupi@example.com", IsActive: true,
	}
	require.NoError(t, r.DB.Create(&vendor).Error)
	return &MarketingService{Repo: r}, vendor
}

func TestPromotions_CRUD(t *testing.T) {
	t.Parallel()

	svc, vendor := newMarketingFixtures(t)
	ctx := context.Background()

	promo, err := svc.CreatePromotion(ctx, vendor.Code, transport.PromotionRequest{
		Title: "Weekend special", Description: "Flat 20% off", StartDate: "2026-09-05", EndDate: "2026-09-07",
	})
	require.NoError(t, err)
	assert.NotZero(t, promo.ID)

	promos, err := svc.Promotions(ctx, vendor.Code)
	require.NoError(t, err)
	require.Len(t, promos, 1)
	assert.Equal(t, "Weekend special", promos[0].Title)

	updated, err := svc.UpdatePromotion(ctx, vendor.Code, promo.ID, transport.PromotionRequest{Title: "Monsoon special"})
	require.NoError(t, err)
	assert.Equal(t, "Monsoon special", updated.Title)
	assert.Equal(t, "2026-09-05", updated.StartDate)

	require.NoError(t, svc.DeletePromotion(ctx, vendor.Code, promo.ID))
	promos, err = svc.Promotions(ctx, vendor.Code)
	require.NoError(t, err)
	assert.Empty(t, promos)
}

func TestPromotions_Validation(t *testing.T) {
	t.Parallel()

	svc, vendor := newMarketingFixtures(t)
	ctx := context.Background()

	_, err := svc.CreatePromotion(ctx, vendor.Code, transport.PromotionRequest{Description: "no title"})
	assert.ErrorIs(t, err, ErrValidation)

	_, err = svc.CreatePromotion(ctx, vendor.Code, transport.PromotionRequest{Title: "Bad dates", StartDate: "05-09-2026"})
	assert.ErrorIs(t, err, ErrValidation)

	_, err = svc.CreatePromotion(ctx, "V999", transport.PromotionRequest{Title: "Ghost vendor"})
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = svc.UpdatePromotion(ctx, vendor.Code, 42, transport.PromotionRequest{Title: "Missing"})
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestPromotions_VendorScoped(t *testing.T) {
	t.Parallel()

	svc, vendor := newMarketingFixtures(t)
	ctx := context.Background()

	other := models.Vendor{Code: "V002", Phone: "9000000002", RestaurantName: "Other", Email: "o@example.com", IsActive: true}
	require.NoError(t, svc.Repo.DB.Create(&other).Error)

	promo, err := svc.CreatePromotion(ctx, vendor.Code, transport.PromotionRequest{Title: "Mine"})
	require.NoError(t, err)

	_, err = svc.UpdatePromotion(ctx, other.Code, promo.ID, transport.PromotionRequest{Title: "Stolen"})
	assert.ErrorIs(t, err, ErrNotFound)
	err = svc.DeletePromotion(ctx, other.Code, promo.ID)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestVendorCategories_CRUD(t *testing.T) {
	t.Parallel()

	svc, vendor := newMarketingFixtures(t)
	ctx := context.Background()

	cat, err := svc.CreateCategory(ctx, vendor.Code, transport.VendorCategoryRequest{Name: "Tiffin"})
	require.NoError(t, err)

	_, err = svc.CreateCategory(ctx, vendor.Code, transport.VendorCategoryRequest{})
	assert.ErrorIs(t, err, ErrValidation)

	updated, err := svc.UpdateCategory(ctx, vendor.Code, cat.ID, transport.VendorCategoryRequest{Name: "Breakfast"})
	require.NoError(t, err)
	assert.Equal(t, "Breakfast", updated.Name)

	require.NoError(t, svc.DeleteCategory(ctx, vendor.Code, cat.ID))
	err = svc.DeleteCategory(ctx, vendor.Code, cat.ID)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestHomeContent_ActiveOnly(t *testing.T) {
	t.Parallel()

	svc, _ := newMarketingFixtures(t)
	ctx := context.Background()

	require.NoError(t, svc.Repo.DB.Create(&models.Banner{Title: "Live", Image: "/media/banners/live.png", IsActive: true}).Error)
	require.NoError(t, svc.Repo.DB.Create(&models.Banner{Title: "Retired", Image: "/media/banners/old.png", IsActive: false}).Error)
	require.NoError(t, svc.Repo.DB.Create(&models.FoodCategory{Name: "South Indian", ImageURL: "/media/categories/si.png", IsActive: true}).Error)
	require.NoError(t, svc.Repo.DB.Create(&models.FoodCategory{Name: "Hidden", IsActive: false}).Error)

	banners, err := svc.HomeBanners(ctx)
	require.NoError(t, err)
	require.Len(t, banners, 1)
	assert.Equal(t, "Live", banners[0].Title)

	cats, err := svc.HomeCategories(ctx)
	require.NoError(t, err)
	require.Len(t, cats, 1)
	assert.Equal(t, "South Indian", cats[0].Name)
}
