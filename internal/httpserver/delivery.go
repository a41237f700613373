package httpserver

import (
	"net/http"

	"github.com/foodondoor/backend/internal/middleware"
	"github.com/foodondoor/backend/internal/service"
	"github.com/foodondoor/backend/internal/transport"
	"github.com/foodondoor/backend/pkg/logging"
	"github.com/labstack/echo/v4"
)

type DeliveryHTTP struct {
	Svc    *service.DeliveryService
	Orders *service.OrderService
}

func (h *DeliveryHTTP) GetProfile(c echo.Context) error {
	agent, err := h.Svc.Profile(c.Request().Context(), middleware.Subject(c))
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, agent)
}

func (h *DeliveryHTTP) ListOrders(c echo.Context) error {
	orders, err := h.Svc.Orders(c.Request().Context(), middleware.Subject(c), c.QueryParam("filter"))
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, orders)
}

func (h *DeliveryHTTP) AcceptOrder(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "delivery.accept_order")

	order, err := h.Svc.Accept(ctx, middleware.Subject(c), c.Param("number"))
	if err != nil {
		l.Warn("accept_order_error", "error", err)
		return httpError(err)
	}

	l.Info("accept_order_success", "order", order.Number)
	return c.JSON(http.StatusOK, order)
}

// UpdateStatus lets the courier move an order to out_for_delivery or
// delivered.
func (h *DeliveryHTTP) UpdateStatus(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "delivery.update_status")

	var req transport.StatusUpdateRequest
	if err := c.Bind(&req); err != nil {
		l.Warn("update_status_error", "status", 400, "reason", "invalid body", "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}

	order, err := h.Orders.UpdateStatus(ctx, "", c.Param("number"), req.Status)
	if err != nil {
		l.Warn("update_status_error", "error", err)
		return httpError(err)
	}

	l.Info("update_status_success", "order", order.Number, "new_status", order.Status)
	return c.JSON(http.StatusOK, order)
}

func (h *DeliveryHTTP) UpdateLocation(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "delivery.update_location")

	var req transport.LocationUpdateRequest
	if err := c.Bind(&req); err != nil {
		l.Warn("update_location_error", "status", 400, "reason", "invalid body", "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}

	order, err := h.Orders.UpdateLocation(ctx, c.Param("number"), req.Lat, req.Lng)
	if err != nil {
		l.Warn("update_location_error", "error", err)
		return httpError(err)
	}

	l.Info("update_location_success", "order", order.Number)
	return c.JSON(http.StatusOK, order)
}

func (h *DeliveryHTTP) RegisterFCMToken(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "delivery.register_fcm")

	var req transport.FCMTokenRequest
	if err := c.Bind(&req); err != nil {
		l.Warn("register_fcm_error", "status", 400, "reason", "invalid body", "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}

	if err := h.Svc.UpdateFCMToken(ctx, middleware.Subject(c), req.FCMToken); err != nil {
		l.Warn("register_fcm_error", "error", err)
		return httpError(err)
	}

	l.Info("register_fcm_success")
	return c.JSON(http.StatusOK, echo.Map{"message": "token registered"})
}

// TrackOrder is the public live-tracking read used by customers.
func (h *DeliveryHTTP) TrackOrder(c echo.Context) error {
	order, err := h.Orders.Order(c.Request().Context(), c.Param("number"))
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, echo.Map{
		"order_id": order.Number,
		"status":   order.Status,
		"lat":      order.DeliveryLat,
		"lng":      order.DeliveryLng,
	})
}
