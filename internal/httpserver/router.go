package httpserver

import (
	"net/http"

	"github.com/foodondoor/backend/internal/middleware"
	"github.com/foodondoor/backend/pkg/tokens"
	"github.com/labstack/echo/v4"
)

type Deps struct {
	Auth     *AuthHTTP
	Vendor   *VendorHTTP
	Customer *CustomerHTTP
	Delivery *DeliveryHTTP
	Issuer   *tokens.Issuer
	MediaDir string
}

func Register(e *echo.Echo, d *Deps) {
	e.GET("/health/live", func(c echo.Context) error { return c.NoContent(http.StatusOK) })
	e.GET("/health/ready", func(c echo.Context) error { return c.NoContent(http.StatusOK) })

	if d.MediaDir != "" {
		e.Static("/media", d.MediaDir)
	}

	authMW := middleware.Auth(d.Issuer)

	// vendor app
	vendor := e.Group("/api/vendor")
	vendor.POST("/send-otp/", d.Auth.SendVendorOTP)
	vendor.POST("/verify-otp/", d.Auth.VerifyVendorOTP)
	vendor.POST("/signup/", d.Auth.VendorSignup)
	vendor.POST("/token/refresh/", d.Auth.RefreshVendor)

	vendorAuth := vendor.Group("", authMW, middleware.RequireRole(tokens.RoleVendor))
	vendorAuth.GET("/profile/", d.Vendor.GetProfile)
	vendorAuth.PATCH("/profile/", d.Vendor.UpdateProfile)
	vendorAuth.GET("/foods/", d.Vendor.ListFoods)
	vendorAuth.POST("/foods/", d.Vendor.CreateFood)
	vendorAuth.PATCH("/foods/:id/", d.Vendor.UpdateFood)
	vendorAuth.DELETE("/foods/:id/", d.Vendor.DeleteFood)
	vendorAuth.GET("/orders/", d.Vendor.ListOrders)
	vendorAuth.POST("/orders/:number/status/", d.Vendor.UpdateOrderStatus)
	vendorAuth.GET("/notifications/", d.Vendor.Notifications)
	vendorAuth.GET("/analytics/", d.Vendor.Analytics)
	vendorAuth.GET("/promotions/", d.Vendor.ListPromotions)
	vendorAuth.POST("/promotions/", d.Vendor.CreatePromotion)
	vendorAuth.PATCH("/promotions/:id/", d.Vendor.UpdatePromotion)
	vendorAuth.DELETE("/promotions/:id/", d.Vendor.DeletePromotion)
	vendorAuth.GET("/categories/", d.Vendor.ListCategories)
	vendorAuth.POST("/categories/", d.Vendor.CreateCategory)
	vendorAuth.PATCH("/categories/:id/", d.Vendor.UpdateCategory)
	vendorAuth.DELETE("/categories/:id/", d.Vendor.DeleteCategory)
	vendorAuth.POST("/fcm-token/", d.Vendor.RegisterFCMToken)
	vendorAuth.POST("/upload-image/", d.Vendor.UploadImage)

	// customer app
	customer := e.Group("/api/customer")
	customer.POST("/send-otp/", d.Auth.SendCustomerOTP)
	customer.POST("/verify-otp/", d.Auth.VerifyCustomerOTP)
	customer.POST("/signup/", d.Auth.CustomerSignup)
	customer.POST("/token/refresh/", d.Auth.RefreshCustomer)
	customer.GET("/home/banners/", d.Customer.HomeBanners)
	customer.GET("/home/categories/", d.Customer.HomeCategories)
	customer.GET("/vendors/nearby/", d.Customer.NearbyVendors)
	customer.GET("/vendors/top-rated/", d.Customer.TopRatedVendors)
	customer.GET("/vendors/", d.Customer.ActiveVendors)
	customer.GET("/vendors/:vendor_id/menu/", d.Customer.VendorMenu)
	customer.GET("/foods/:id/", d.Customer.FoodDetail)
	customer.GET("/search/", d.Customer.Search)
	customer.GET("/delivery-fee/", d.Customer.DeliveryFee)

	customerAuth := customer.Group("", authMW, middleware.RequireRole(tokens.RoleCustomer))
	customerAuth.GET("/profile/", d.Customer.GetProfile)
	customerAuth.POST("/fcm-token/", d.Customer.RegisterFCMToken)
	customerAuth.GET("/cart/", d.Customer.GetCart)
	customerAuth.POST("/cart/", d.Customer.AddToCart)
	customerAuth.DELETE("/cart/:id/", d.Customer.RemoveCartItem)
	customerAuth.DELETE("/cart/", d.Customer.ClearCart)
	customerAuth.GET("/addresses/", d.Customer.ListAddresses)
	customerAuth.POST("/addresses/", d.Customer.CreateAddress)
	customerAuth.PATCH("/addresses/:id/", d.Customer.UpdateAddress)
	customerAuth.DELETE("/addresses/:id/", d.Customer.DeleteAddress)
	customerAuth.POST("/orders/", d.Customer.PlaceOrder)
	customerAuth.GET("/orders/", d.Customer.ListOrders)
	customerAuth.GET("/orders/:number/", d.Customer.GetOrder)
	customerAuth.GET("/orders/:number/track/", d.Delivery.TrackOrder)

	// delivery app
	delivery := e.Group("/api/delivery")
	delivery.POST("/send-otp/", d.Auth.SendDeliveryOTP)
	delivery.POST("/verify-otp/", d.Auth.VerifyDeliveryOTP)
	delivery.POST("/register/", d.Auth.DeliveryRegister)
	delivery.POST("/token/refresh/", d.Auth.RefreshDelivery)

	deliveryAuth := delivery.Group("", authMW, middleware.RequireRole(tokens.RoleDelivery))
	deliveryAuth.GET("/profile/", d.Delivery.GetProfile)
	deliveryAuth.GET("/orders/", d.Delivery.ListOrders)
	deliveryAuth.POST("/orders/:number/accept/", d.Delivery.AcceptOrder)
	deliveryAuth.POST("/orders/:number/status/", d.Delivery.UpdateStatus)
	deliveryAuth.POST("/orders/:number/location/", d.Delivery.UpdateLocation)
	deliveryAuth.POST("/fcm-token/", d.Delivery.RegisterFCMToken)
}
