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

type CustomerHTTP struct {
	Profile   *service.ProfileService
	Cart      *service.CartService
	Orders    *service.OrderService
	Addresses *service.AddressService
	Discovery *service.DiscoveryService
	Catalog   *service.CatalogService
	Marketing *service.MarketingService
}

func (h *CustomerHTTP) GetProfile(c echo.Context) error {
	customer, err := h.Profile.Customer(c.Request().Context(), middleware.Subject(c))
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, customer)
}

func (h *CustomerHTTP) RegisterFCMToken(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "customer.register_fcm")

	var req transport.FCMTokenRequest
	if err := c.Bind(&req); err != nil {
		l.Warn("register_fcm_error", "status", 400, "reason", "invalid body", "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}

	if err := h.Profile.SetCustomerFCMToken(ctx, middleware.Subject(c), req.FCMToken); err != nil {
		l.Warn("register_fcm_error", "error", err)
		return httpError(err)
	}

	l.Info("register_fcm_success")
	return c.JSON(http.StatusOK, echo.Map{"message": "token registered"})
}

// --- home screen ---

func (h *CustomerHTTP) HomeBanners(c echo.Context) error {
	banners, err := h.Marketing.HomeBanners(c.Request().Context())
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, banners)
}

func (h *CustomerHTTP) HomeCategories(c echo.Context) error {
	cats, err := h.Marketing.HomeCategories(c.Request().Context())
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, cats)
}

// --- discovery ---

func (h *CustomerHTTP) NearbyVendors(c echo.Context) error {
	vendors, err := h.Discovery.Nearby(c.Request().Context(), c.QueryParam("pincode"))
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, vendors)
}

func (h *CustomerHTTP) TopRatedVendors(c echo.Context) error {
	vendors, err := h.Discovery.TopRated(c.Request().Context())
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, vendors)
}

func (h *CustomerHTTP) ActiveVendors(c echo.Context) error {
	vendors, err := h.Discovery.ActiveByPincode(c.Request().Context(), c.QueryParam("pincode"))
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, vendors)
}

func (h *CustomerHTTP) Search(c echo.Context) error {
	res, err := h.Discovery.Search(c.Request().Context(), c.QueryParam("q"))
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, res)
}

// VendorMenu is the public menu of one restaurant, available items only.
func (h *CustomerHTTP) VendorMenu(c echo.Context) error {
	vendor, foods, err := h.Catalog.PublicMenu(c.Request().Context(), c.Param("vendor_id"))
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, echo.Map{"vendor": vendor, "foods": foods})
}

func (h *CustomerHTTP) FoodDetail(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid food id")
	}
	food, vendor, err := h.Catalog.FoodDetail(c.Request().Context(), uint(id))
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, echo.Map{
		"food": food,
		"vendor": transport.VendorRef{
			ID:   vendor.Code,
			Name: vendor.RestaurantName,
		},
	})
}

// --- cart ---

func (h *CustomerHTTP) GetCart(c echo.Context) error {
	view, err := h.Cart.View(c.Request().Context(), middleware.Subject(c))
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, view)
}

func (h *CustomerHTTP) AddToCart(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "customer.add_to_cart")

	var req transport.AddToCartRequest
	if err := c.Bind(&req); err != nil {
		l.Warn("add_to_cart_error", "status", 400, "reason", "invalid body", "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}
	req.CustomerID = middleware.Subject(c)

	view, multiVendor, err := h.Cart.Add(ctx, req)
	if err != nil {
		l.Warn("add_to_cart_error", "error", err)
		return httpError(err)
	}
	if multiVendor != nil {
		l.Warn("add_to_cart_multi_vendor", "current", multiVendor.CurrentVendor.ID, "new", multiVendor.NewVendor.ID)
		return c.JSON(http.StatusBadRequest, multiVendor)
	}

	l.Info("add_to_cart_success", "food_id", req.FoodID)
	return c.JSON(http.StatusOK, view)
}

func (h *CustomerHTTP) RemoveCartItem(c echo.Context) error {
	ctx := c.Request().Context()
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid item id")
	}

	if err := h.Cart.Remove(ctx, middleware.Subject(c), uint(id)); err != nil {
		return httpError(err)
	}
	return c.NoContent(http.StatusNoContent)
}

func (h *CustomerHTTP) ClearCart(c echo.Context) error {
	if err := h.Cart.Clear(c.Request().Context(), middleware.Subject(c)); err != nil {
		return httpError(err)
	}
	return c.NoContent(http.StatusNoContent)
}

// --- addresses ---

func (h *CustomerHTTP) ListAddresses(c echo.Context) error {
	addrs, err := h.Addresses.List(c.Request().Context(), middleware.Subject(c))
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, addrs)
}

func (h *CustomerHTTP) CreateAddress(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "customer.create_address")

	var req transport.AddressRequest
	if err := c.Bind(&req); err != nil {
		l.Warn("create_address_error", "status", 400, "reason", "invalid body", "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}

	addr, err := h.Addresses.Create(ctx, middleware.Subject(c), req)
	if err != nil {
		l.Warn("create_address_error", "error", err)
		return httpError(err)
	}

	l.Info("create_address_success", "address_id", addr.ID)
	return c.JSON(http.StatusCreated, addr)
}

func (h *CustomerHTTP) UpdateAddress(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "customer.update_address")

	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid address id")
	}

	var req transport.AddressRequest
	if err := c.Bind(&req); err != nil {
		l.Warn("update_address_error", "status", 400, "reason", "invalid body", "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}

	addr, err := h.Addresses.Update(ctx, middleware.Subject(c), uint(id), req)
	if err != nil {
		l.Warn("update_address_error", "error", err)
		return httpError(err)
	}

	l.Info("update_address_success", "address_id", addr.ID)
	return c.JSON(http.StatusOK, addr)
}

func (h *CustomerHTTP) DeleteAddress(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid address id")
	}
	if err := h.Addresses.Delete(c.Request().Context(), middleware.Subject(c), uint(id)); err != nil {
		return httpError(err)
	}
	return c.NoContent(http.StatusNoContent)
}

// --- orders ---

func (h *CustomerHTTP) PlaceOrder(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "customer.place_order")

	var req transport.PlaceOrderRequest
	if err := c.Bind(&req); err != nil {
		l.Warn("place_order_error", "status", 400, "reason", "invalid body", "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}
	req.OrderDetails.CustomerID = middleware.Subject(c)

	res, err := h.Orders.PlaceOrder(ctx, req)
	if err != nil {
		l.Warn("place_order_error", "error", err)
		return httpError(err)
	}

	l.Info("place_order_success", "order", res.OrderID, "total", res.TotalAmount)
	return c.JSON(http.StatusCreated, res)
}

func (h *CustomerHTTP) ListOrders(c echo.Context) error {
	orders, err := h.Orders.CustomerOrders(c.Request().Context(), middleware.Subject(c), c.QueryParam("filter"))
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, orders)
}

func (h *CustomerHTTP) GetOrder(c echo.Context) error {
	order, err := h.Orders.Order(c.Request().Context(), c.Param("number"))
	if err != nil {
		return httpError(err)
	}
	if order.Customer.Code != middleware.Subject(c) {
		return echo.NewHTTPError(http.StatusNotFound, "order "+c.Param("number"))
	}
	return c.JSON(http.StatusOK, order)
}

func (h *CustomerHTTP) DeliveryFee(c echo.Context) error {
	res, err := h.Orders.DeliveryFee(c.Request().Context(), c.QueryParam("vendor_id"), c.QueryParam("pincode"))
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, res)
}
