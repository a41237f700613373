package httpserver

import (
	"net/http"
	"strconv"

	"github.com/foodondoor/backend/internal/middleware"
	"github.com/foodondoor/backend/internal/service"
	"github.com/foodondoor/backend/internal/transport"
	"github.com/foodondoor/backend/pkg/logging"
	"github.com/labstack/echo/v4"
)

type VendorHTTP struct {
	Catalog   *service.CatalogService
	Profile   *service.ProfileService
	Orders    *service.OrderService
	Marketing *service.MarketingService
}

func (h *VendorHTTP) GetProfile(c echo.Context) error {
	ctx := c.Request().Context()
	vendor, err := h.Profile.Vendor(ctx, middleware.Subject(c))
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, vendor)
}

func (h *VendorHTTP) UpdateProfile(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "vendor.update_profile")

	var req transport.VendorSignupRequest
	if err := c.Bind(&req); err != nil {
		l.Warn("update_profile_error", "status", 400, "reason", "invalid body", "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}

	vendor, err := h.Profile.UpdateVendor(ctx, middleware.Subject(c), req)
	if err != nil {
		l.Warn("update_profile_error", "error", err)
		return httpError(err)
	}

	l.Info("update_profile_success")
	return c.JSON(http.StatusOK, vendor)
}

func (h *VendorHTTP) ListFoods(c echo.Context) error {
	ctx := c.Request().Context()
	foods, err := h.Catalog.VendorMenu(ctx, middleware.Subject(c))
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, foods)
}

func (h *VendorHTTP) CreateFood(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "vendor.create_food")

	var req transport.FoodListingRequest
	if err := c.Bind(&req); err != nil {
		l.Warn("create_food_error", "status", 400, "reason", "invalid body", "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}

	food, err := h.Catalog.Create(ctx, middleware.Subject(c), req)
	if err != nil {
		l.Warn("create_food_error", "error", err)
		return httpError(err)
	}

	l.Info("create_food_success", "food_id", food.ID)
	return c.JSON(http.StatusCreated, food)
}

func foodIDParam(c echo.Context) (uint, error) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		return 0, echo.NewHTTPError(http.StatusBadRequest, "invalid food id")
	}
	return uint(id), nil
}

func (h *VendorHTTP) UpdateFood(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "vendor.update_food")

	id, err := foodIDParam(c)
	if err != nil {
		return err
	}

	var req transport.FoodListingRequest
	if err := c.Bind(&req); err != nil {
		l.Warn("update_food_error", "status", 400, "reason", "invalid body", "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}

	food, err := h.Catalog.Update(ctx, middleware.Subject(c), id, req)
	if err != nil {
		l.Warn("update_food_error", "error", err)
		return httpError(err)
	}

	l.Info("update_food_success", "food_id", food.ID)
	return c.JSON(http.StatusOK, food)
}

func (h *VendorHTTP) DeleteFood(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "vendor.delete_food")

	id, err := foodIDParam(c)
	if err != nil {
		return err
	}

	if err := h.Catalog.Delete(ctx, middleware.Subject(c), id); err != nil {
		l.Warn("delete_food_error", "error", err)
		return httpError(err)
	}

	l.Info("delete_food_success", "food_id", id)
	return c.NoContent(http.StatusNoContent)
}

func (h *VendorHTTP) ListOrders(c echo.Context) error {
	ctx := c.Request().Context()
	orders, err := h.Orders.VendorOrders(ctx, middleware.Subject(c))
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, orders)
}

func (h *VendorHTTP) UpdateOrderStatus(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "vendor.update_order_status")

	var req transport.StatusUpdateRequest
	if err := c.Bind(&req); err != nil {
		l.Warn("update_status_error", "status", 400, "reason", "invalid body", "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}

	order, err := h.Orders.UpdateStatus(ctx, middleware.Subject(c), c.Param("number"), req.Status)
	if err != nil {
		l.Warn("update_status_error", "error", err)
		return httpError(err)
	}

	l.Info("update_status_success", "order", order.Number, "new_status", order.Status)
	return c.JSON(http.StatusOK, order)
}

func (h *VendorHTTP) Notifications(c echo.Context) error {
	ctx := c.Request().Context()
	items, err := h.Profile.Notifications(ctx, middleware.Subject(c))
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, items)
}

func (h *VendorHTTP) RegisterFCMToken(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "vendor.register_fcm")

	var req transport.FCMTokenRequest
	if err := c.Bind(&req); err != nil {
		l.Warn("register_fcm_error", "status", 400, "reason", "invalid body", "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}

	if err := h.Profile.SetVendorFCMToken(ctx, middleware.Subject(c), req.FCMToken); err != nil {
		l.Warn("register_fcm_error", "error", err)
		return httpError(err)
	}

	l.Info("register_fcm_success")
	return c.JSON(http.StatusOK, echo.Map{"message": "token registered"})
}

func (h *VendorHTTP) Analytics(c echo.Context) error {
	ctx := c.Request().Context()
	stats, err := h.Orders.VendorAnalytics(ctx, middleware.Subject(c))
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, stats)
}

// --- promotions ---

func (h *VendorHTTP) ListPromotions(c echo.Context) error {
	promos, err := h.Marketing.Promotions(c.Request().Context(), middleware.Subject(c))
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, promos)
}

func (h *VendorHTTP) CreatePromotion(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "vendor.create_promotion")

	var req transport.PromotionRequest
	if err := c.Bind(&req); err != nil {
		l.Warn("create_promotion_error", "status", 400, "reason", "invalid body", "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}

	promo, err := h.Marketing.CreatePromotion(ctx, middleware.Subject(c), req)
	if err != nil {
		l.Warn("create_promotion_error", "error", err)
		return httpError(err)
	}

	l.Info("create_promotion_success", "promotion_id", promo.ID)
	return c.JSON(http.StatusCreated, promo)
}

func (h *VendorHTTP) UpdatePromotion(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "vendor.update_promotion")

	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid promotion id")
	}

	var req transport.PromotionRequest
	if err := c.Bind(&req); err != nil {
		l.Warn("update_promotion_error", "status", 400, "reason", "invalid body", "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}

	promo, err := h.Marketing.UpdatePromotion(ctx, middleware.Subject(c), uint(id), req)
	if err != nil {
		l.Warn("update_promotion_error", "error", err)
		return httpError(err)
	}

	l.Info("update_promotion_success", "promotion_id", promo.ID)
	return c.JSON(http.StatusOK, promo)
}

func (h *VendorHTTP) DeletePromotion(c echo.Context) error {
	ctx := c.Request().Context()
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid promotion id")
	}
	if err := h.Marketing.DeletePromotion(ctx, middleware.Subject(c), uint(id)); err != nil {
		return httpError(err)
	}
	return c.NoContent(http.StatusNoContent)
}

// --- menu categories ---

func (h *VendorHTTP) ListCategories(c echo.Context) error {
	cats, err := h.Marketing.Categories(c.Request().Context(), middleware.Subject(c))
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, cats)
}

func (h *VendorHTTP) CreateCategory(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "vendor.create_category")

	var req transport.VendorCategoryRequest
	if err := c.Bind(&req); err != nil {
		l.Warn("create_category_error", "status", 400, "reason", "invalid body", "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}

	cat, err := h.Marketing.CreateCategory(ctx, middleware.Subject(c), req)
	if err != nil {
		l.Warn("create_category_error", "error", err)
		return httpError(err)
	}

	l.Info("create_category_success", "category_id", cat.ID)
	return c.JSON(http.StatusCreated, cat)
}

func (h *VendorHTTP) UpdateCategory(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "vendor.update_category")

	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid category id")
	}

	var req transport.VendorCategoryRequest
	if err := c.Bind(&req); err != nil {
		l.Warn("update_category_error", "status", 400, "reason", "invalid body", "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}

	cat, err := h.Marketing.UpdateCategory(ctx, middleware.Subject(c), uint(id), req)
	if err != nil {
		l.Warn("update_category_error", "error", err)
		return httpError(err)
	}

	l.Info("update_category_success", "category_id", cat.ID)
	return c.JSON(http.StatusOK, cat)
}

func (h *VendorHTTP) DeleteCategory(c echo.Context) error {
	ctx := c.Request().Context()
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid category id")
	}
	if err := h.Marketing.DeleteCategory(ctx, middleware.Subject(c), uint(id)); err != nil {
		return httpError(err)
	}
	return c.NoContent(http.StatusNoContent)
}

// UploadImage accepts a multipart form with an "image" file part.
func (h *VendorHTTP) UploadImage(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "vendor.upload_image")

	file, err := c.FormFile("image")
	if err != nil {
		l.Warn("upload_image_error", "status", 400, "reason", "missing file", "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "image file is required")
	}

	src, err := file.Open()
	if err != nil {
		l.Warn("upload_image_error", "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "could not read upload")
	}
	defer src.Close()

	path, err := h.Profile.UploadVendorImage(ctx, middleware.Subject(c), file.Filename, src)
	if err != nil {
		l.Warn("upload_image_error", "error", err)
		return httpError(err)
	}

	l.Info("upload_image_success", "path", path)
	return c.JSON(http.StatusCreated, echo.Map{"image": path})
}
