package httpserver

import (
	"net/http"

	"github.com/foodondoor/backend/internal/service"
	"github.com/foodondoor/backend/internal/transport"
	"github.com/foodondoor/backend/pkg/logging"
	"github.com/foodondoor/backend/pkg/tokens"
	"github.com/labstack/echo/v4"
)

type AuthHTTP struct {
	Svc     *service.AuthService
	Profile *service.ProfileService
}

func tokenResponse(pair *tokens.Pair) transport.TokenResponse {
	return transport.TokenResponse{Access: pair.Access, Refresh: pair.Refresh}
}

func (h *AuthHTTP) sendOTP(role string) echo.HandlerFunc {
	return func(c echo.Context) error {
		ctx := c.Request().Context()
		l := logging.FromContext(ctx).With("handler", role+".send_otp")

		var req transport.SendOTPRequest
		if err := c.Bind(&req); err != nil {
			l.Warn("send_otp_error", "status", 400, "reason", "invalid body", "error", err)
			return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
		}

		var err error
		if role == tokens.RoleDelivery {
			_, err = h.Svc.SendDeliveryOTP(ctx, req.Phone)
		} else {
			_, err = h.Svc.SendOTP(ctx, req.Phone)
		}
		if err != nil {
			l.Warn("send_otp_error", "error", err)
			return httpError(err)
		}

		l.Info("send_otp_success")
		return c.JSON(http.StatusOK, echo.Map{"message": "OTP sent"})
	}
}

func (h *AuthHTTP) SendVendorOTP(c echo.Context) error   { return h.sendOTP(tokens.RoleVendor)(c) }
func (h *AuthHTTP) SendCustomerOTP(c echo.Context) error { return h.sendOTP(tokens.RoleCustomer)(c) }
func (h *AuthHTTP) SendDeliveryOTP(c echo.Context) error { return h.sendOTP(tokens.RoleDelivery)(c) }

// signupKey is the boolean flag name in the verify response; the vendor and
// customer apps expect is_signup, the delivery app expects is_new_user.
func signupKey(role string) string {
	if role == tokens.RoleDelivery {
		return "is_new_user"
	}
	return "is_signup"
}

func (h *AuthHTTP) verifyOTP(role string, verify func(echo.Context, transport.VerifyOTPRequest) (*service.LoginResult, error)) echo.HandlerFunc {
	return func(c echo.Context) error {
		ctx := c.Request().Context()
		l := logging.FromContext(ctx).With("handler", role+".verify_otp")

		var req transport.VerifyOTPRequest
		if err := c.Bind(&req); err != nil {
			l.Warn("verify_otp_error", "status", 400, "reason", "invalid body", "error", err)
			return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
		}

		res, err := verify(c, req)
		if err != nil {
			l.Warn("verify_otp_error", "error", err)
			return httpError(err)
		}

		if res.NeedsSignup {
			l.Info("verify_otp_needs_signup")
			return c.JSON(http.StatusOK, echo.Map{signupKey(role): true})
		}

		l.Info("verify_otp_success")
		return c.JSON(http.StatusOK, echo.Map{
			signupKey(role): false,
			"user_id":       res.SubjectID,
			"access":        res.Pair.Access,
			"refresh":       res.Pair.Refresh,
		})
	}
}

func (h *AuthHTTP) VerifyVendorOTP(c echo.Context) error {
	return h.verifyOTP(tokens.RoleVendor, func(c echo.Context, req transport.VerifyOTPRequest) (*service.LoginResult, error) {
		return h.Svc.VerifyVendorOTP(c.Request().Context(), req.Phone, req.OTP)
	})(c)
}

func (h *AuthHTTP) VerifyCustomerOTP(c echo.Context) error {
	return h.verifyOTP(tokens.RoleCustomer, func(c echo.Context, req transport.VerifyOTPRequest) (*service.LoginResult, error) {
		return h.Svc.VerifyCustomerOTP(c.Request().Context(), req.Phone, req.OTP)
	})(c)
}

func (h *AuthHTTP) VerifyDeliveryOTP(c echo.Context) error {
	return h.verifyOTP(tokens.RoleDelivery, func(c echo.Context, req transport.VerifyOTPRequest) (*service.LoginResult, error) {
		return h.Svc.VerifyDeliveryOTP(c.Request().Context(), req.Phone, req.OTP)
	})(c)
}

func (h *AuthHTTP) VendorSignup(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "vendor.signup")

	var req transport.VendorSignupRequest
	if err := c.Bind(&req); err != nil {
		l.Warn("signup_error", "status", 400, "reason", "invalid body", "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}

	vendor, err := h.Svc.VendorSignup(ctx, req)
	if err != nil {
		l.Warn("signup_error", "error", err)
		return httpError(err)
	}
	h.Profile.IndexVendor(ctx, vendor)

	l.Info("signup_success", "vendor", vendor.Code)
	return c.JSON(http.StatusCreated, vendor)
}

func (h *AuthHTTP) CustomerSignup(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "customer.signup")

	var req transport.CustomerSignupRequest
	if err := c.Bind(&req); err != nil {
		l.Warn("signup_error", "status", 400, "reason", "invalid body", "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}

	customer, pair, err := h.Svc.CustomerSignup(ctx, req)
	if err != nil {
		l.Warn("signup_error", "error", err)
		return httpError(err)
	}

	l.Info("signup_success", "customer", customer.Code)
	return c.JSON(http.StatusCreated, echo.Map{
		"customer": customer,
		"access":   pair.Access,
		"refresh":  pair.Refresh,
	})
}

func (h *AuthHTTP) DeliveryRegister(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "delivery.register")

	var req transport.DeliveryRegisterRequest
	if err := c.Bind(&req); err != nil {
		l.Warn("register_error", "status", 400, "reason", "invalid body", "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}

	agent, pair, err := h.Svc.DeliveryRegister(ctx, req)
	if err != nil {
		l.Warn("register_error", "error", err)
		return httpError(err)
	}

	l.Info("register_success", "agent", agent.ID)
	return c.JSON(http.StatusCreated, echo.Map{
		"agent":   agent,
		"access":  pair.Access,
		"refresh": pair.Refresh,
	})
}

func (h *AuthHTTP) refresh(role string) echo.HandlerFunc {
	return func(c echo.Context) error {
		ctx := c.Request().Context()
		l := logging.FromContext(ctx).With("handler", role+".refresh")

		var req transport.RefreshRequest
		if err := c.Bind(&req); err != nil {
			l.Warn("refresh_error", "status", 400, "reason", "invalid body", "error", err)
			return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
		}

		pair, err := h.Svc.Refresh(ctx, role, req.Refresh)
		if err != nil {
			l.Warn("refresh_error", "error", err)
			return httpError(err)
		}

		l.Info("refresh_success")
		return c.JSON(http.StatusOK, tokenResponse(pair))
	}
}

func (h *AuthHTTP) RefreshVendor(c echo.Context) error   { return h.refresh(tokens.RoleVendor)(c) }
func (h *AuthHTTP) RefreshCustomer(c echo.Context) error { return h.refresh(tokens.RoleCustomer)(c) }
func (h *AuthHTTP) RefreshDelivery(c echo.Context) error { return h.refresh(tokens.RoleDelivery)(c) }
