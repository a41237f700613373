// Package transport holds the request/response shapes of the HTTP API.
package transport

type SendOTPRequest struct {
	Phone string `json:"phone"`
}

type VerifyOTPRequest struct {
	Phone string `json:"phone"`
	OTP   string `json:"otp"`
}

type RefreshRequest struct {
	Refresh string `json:"refresh"`
}

type TokenResponse struct {
	Access  string `json:"access"`
	Refresh string `json:"refresh"`
}

type VendorSignupRequest struct {
	Phone          string  `json:"phone"`
	RestaurantName string  `json:"restaurant_name"`
	Email          string  `json:"email"`
	Address        string  `json:"address"`
	ContactNumber  string  `json:"contact_number"`
	OpenHours      string  `json:"open_hours"`
	CuisineType    string  `json:"cuisine_type"`
	Pincode        string  `json:"pincode"`
	Latitude       float64 `json:"latitude"`
	Longitude      float64 `json:"longitude"`
}

type CustomerSignupRequest struct {
	Phone string `json:"phone"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

type DeliveryRegisterRequest struct {
	Phone string `json:"phone"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

type FCMTokenRequest struct {
	FCMToken string `json:"fcm_token"`
}

type FoodListingRequest struct {
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Price       *float64 `json:"price"`
	IsAvailable *bool    `json:"is_available"`
	Category    string   `json:"category"`
	Images      []string `json:"images"`
}

type AddToCartRequest struct {
	CustomerID string `json:"customer_id"`
	FoodID     uint   `json:"food_id"`
	Quantity   uint   `json:"quantity"`
}

type AddressRequest struct {
	CustomerID string `json:"customer_id"`
	Line1      string `json:"address_line1"`
	Line2      string `json:"address_line2"`
	City       string `json:"city"`
	State      string `json:"state"`
	Pincode    string `json:"postal_code"`
	IsDefault  bool   `json:"is_default"`
}

type OrderItemInput struct {
	FoodID   uint `json:"food_id"`
	Quantity int  `json:"quantity"`
	// Price is accepted for wire compatibility but ignored: items are
	// re-priced from the catalog.
	Price float64 `json:"price"`
}

type PlaceOrderDetails struct {
	CustomerID  string           `json:"customer_id"`
	VendorID    string           `json:"vendor_id"`
	Items       []OrderItemInput `json:"items"`
	Address     string           `json:"address"`
	DeliveryFee *float64         `json:"delivery_fee"`
	TotalPrice  *float64         `json:"total_price"`
}

type PlaceOrderRequest struct {
	PaymentMethod string            `json:"payment_method"`
	PaymentStatus string            `json:"payment_status"`
	TxnID         string            `json:"txn_id"`
	OrderDetails  PlaceOrderDetails `json:"order_details"`
}

type VendorRef struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Phone string `json:"phone,omitempty"`
}

type PlaceOrderResponse struct {
	OrderID               string    `json:"order_id"`
	Status                string    `json:"status"`
	EstimatedDeliveryTime int       `json:"estimated_delivery_time"`
	TotalAmount           float64   `json:"total_amount"`
	ItemsTotal            float64   `json:"items_total"`
	DeliveryFee           float64   `json:"delivery_fee"`
	Vendor                VendorRef `json:"vendor"`
	DeliveryAddress       string    `json:"delivery_address"`
	DistanceKm            *float64  `json:"distance_km,omitempty"`
}

type DeliveryFeeResponse struct {
	DeliveryFee float64 `json:"delivery_fee"`
	DistanceKm  float64 `json:"distance_km"`
}

type StatusUpdateRequest struct {
	Status string `json:"status"`
}

type LocationUpdateRequest struct {
	Lat *float64 `json:"lat"`
	Lng *float64 `json:"lng"`
}

type PromotionRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	StartDate   string `json:"start_date"`
	EndDate     string `json:"end_date"`
}

type VendorCategoryRequest struct {
	Name string `json:"name"`
}

type VendorAnalytics struct {
	TotalOrders     int64   `json:"total_orders"`
	TotalRevenue    float64 `json:"total_revenue"`
	PendingOrders   int64   `json:"pending_orders"`
	CompletedOrders int64   `json:"completed_orders"`
	PopularItem     string  `json:"popular_item"`
}

type BannerView struct {
	Title string `json:"title"`
	Image string `json:"image"`
}

type FoodCategoryView struct {
	Name     string `json:"name"`
	ImageURL string `json:"image_url"`
}

type MultiVendorError struct {
	Error         string    `json:"error"`
	Message       string    `json:"message"`
	CurrentVendor VendorRef `json:"current_vendor"`
	NewVendor     VendorRef `json:"new_vendor"`
}
