package models

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// StringList is a JSON-encoded list column used for image paths.
type StringList []string

func (l StringList) Value() (driver.Value, error) {
	if l == nil {
		l = StringList{}
	}
	return json.Marshal(l)
}

func (l *StringList) Scan(value any) error {
	if value == nil {
		*l = StringList{}
		return nil
	}
	switch v := value.(type) {
	case []byte:
		return json.Unmarshal(v, l)
	case string:
		return json.Unmarshal([]byte(v), l)
	default:
		return errors.New("unsupported type for StringList")
	}
}

type Vendor struct {
	ID            uint       `gorm:"primaryKey"              json:"id"`
	Code          string     `gorm:"uniqueIndex;size:10"     json:"vendor_id"`
	Phone         string     `gorm:"uniqueIndex;size:15"     json:"phone"`
	RestaurantName string    `gorm:"not null"                json:"restaurant_name"`
	Email         string     `gorm:"uniqueIndex"             json:"email"`
	Address       string     `                               json:"address"`
	ContactNumber string     `gorm:"size:15"                 json:"contact_number"`
	OpenHours     string     `gorm:"size:15"                 json:"open_hours"`
	CuisineType   string     `gorm:"size:100"                json:"cuisine_type"`
	Pincode       string     `gorm:"size:10"                 json:"pincode"`
	IsActive      bool       `gorm:"default:true"            json:"is_active"`
	Rating        float64    `gorm:"default:0"               json:"rating"`
	Latitude      float64    `                               json:"latitude"`
	Longitude     float64    `                               json:"longitude"`
	Images        StringList `gorm:"type:text"               json:"uploaded_images"`
	FCMToken      string     `gorm:"size:255"                json:"-"`
	CreatedAt     time.Time  `                               json:"created_at"`
}

type Customer struct {
	ID               uint      `gorm:"primaryKey"          json:"id"`
	Code             string    `gorm:"uniqueIndex;size:10" json:"customer_id"`
	Phone            string    `gorm:"uniqueIndex;size:15" json:"phone"`
	FullName         string    `gorm:"size:100;not null"   json:"full_name"`
	Email            string    `gorm:"uniqueIndex"         json:"email"`
	DefaultAddressID *uint     `                           json:"default_address_id"`
	FCMToken         string    `gorm:"size:255"            json:"-"`
	CreatedAt        time.Time `                           json:"created_at"`
	UpdatedAt        time.Time `                           json:"updated_at"`
}

type DeliveryAgent struct {
	ID           uuid.UUID `gorm:"primaryKey"          json:"id"`
	Phone        string    `gorm:"uniqueIndex;size:15" json:"phone"`
	Name         string    `gorm:"size:100"            json:"name"`
	Email        string    `                           json:"email"`
	IsActive     bool      `gorm:"default:true"        json:"is_active"`
	IsRegistered bool      `gorm:"default:false"       json:"is_registered"`
	FCMToken     string    `gorm:"size:255"            json:"-"`
	CreatedAt    time.Time `                           json:"created_at"`
}

func (a *DeliveryAgent) BeforeCreate(tx *gorm.DB) error {
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	return nil
}

type Address struct {
	ID         uint   `gorm:"primaryKey"     json:"id"`
	CustomerID uint   `gorm:"index;not null" json:"customer_id"`
	Line1      string `gorm:"not null"       json:"address_line_1"`
	Line2      string `                      json:"address_line_2"`
	City       string `gorm:"size:100"       json:"city"`
	State      string `gorm:"size:100"       json:"state"`
	Pincode    string `gorm:"size:10"        json:"pincode"`
	IsDefault  bool   `gorm:"default:false"  json:"is_default"`
}

type FoodListing struct {
	ID          uint       `gorm:"primaryKey"     json:"id"`
	VendorID    uint       `gorm:"index;not null" json:"vendor_id"`
	Name        string     `gorm:"not null"       json:"name"`
	Description string     `                      json:"description"`
	Price       float64    `gorm:"not null"       json:"price"`
	IsAvailable bool       `gorm:"default:true"   json:"is_available"`
	Category    string     `gorm:"size:100"       json:"category"`
	Images      StringList `gorm:"type:text"      json:"images"`
}

type CartItem struct {
	ID            uint      `gorm:"primaryKey"                           json:"id"`
	CustomerID    uint      `gorm:"uniqueIndex:idx_customer_food;not null" json:"customer_id"`
	FoodListingID uint      `gorm:"uniqueIndex:idx_customer_food;not null" json:"food_id"`
	Quantity      uint      `gorm:"default:1;check:quantity>0"           json:"quantity"`
	CreatedAt     time.Time `                                            json:"created_at"`
}

// Order status vocabulary. The codebase historically carried two divergent
// sets; this is the single canonical one (lowercase, snake_case).
const (
	OrderStatusPending        = "pending"
	OrderStatusConfirmed      = "confirmed"
	OrderStatusPreparing      = "preparing"
	OrderStatusOutForDelivery = "out_for_delivery"
	OrderStatusDelivered      = "delivered"
	OrderStatusCancelled      = "cancelled"
)

// InProgressStatuses are the states a customer's "in progress" filter
// matches.
var InProgressStatuses = []string{
	OrderStatusPending,
	OrderStatusConfirmed,
	OrderStatusPreparing,
	OrderStatusOutForDelivery,
}

func ValidOrderStatus(s string) bool {
	switch s {
	case OrderStatusPending, OrderStatusConfirmed, OrderStatusPreparing,
		OrderStatusOutForDelivery, OrderStatusDelivered, OrderStatusCancelled:
		return true
	}
	return false
}

const (
	PaymentModeCOD   = "COD"
	PaymentModePaytm = "PAYTM"
)

type Order struct {
	ID              uint       `gorm:"primaryKey"          json:"id"`
	Number          string     `gorm:"uniqueIndex;size:20" json:"order_number"`
	CustomerID      uint       `gorm:"index;not null"      json:"-"`
	Customer        Customer   `                           json:"-"`
	VendorID        uint       `gorm:"index;not null"      json:"-"`
	Vendor          Vendor     `                           json:"-"`
	DeliveryAgentID *uuid.UUID `gorm:"type:text;index"     json:"delivery_agent_id"`
	Status          string     `gorm:"size:20;not null"    json:"status"`
	ItemsTotal      float64    `gorm:"not null"            json:"items_total"`
	DeliveryFee     float64    `                           json:"delivery_fee"`
	TotalAmount     float64    `gorm:"not null"            json:"total_amount"`
	DeliveryAddress string     `                           json:"delivery_address"`
	PaymentMode     string     `gorm:"size:10"             json:"payment_mode"`
	PaymentStatus   string     `gorm:"size:20"             json:"payment_status"`
	PaymentID       string     `gorm:"size:100"            json:"payment_id,omitempty"`
	DeliveryLat     *float64   `                           json:"delivery_lat,omitempty"`
	DeliveryLng     *float64   `                           json:"delivery_lng,omitempty"`
	CreatedAt       time.Time  `                           json:"created_at"`
	Items           []OrderItem `                          json:"items,omitempty"`
}

type OrderItem struct {
	ID            uint        `gorm:"primaryKey"     json:"id"`
	OrderID       uint        `gorm:"index;not null" json:"order_id"`
	FoodListingID uint        `gorm:"not null"       json:"food_id"`
	FoodListing   FoodListing `                      json:"-"`
	Quantity      uint        `gorm:"check:quantity>0" json:"quantity"`
	// UnitPrice is the catalog price snapshot taken when the order was
	// placed.
	UnitPrice float64 `gorm:"not null" json:"price"`
}

// Promotion is a vendor-run offer shown on the vendor dashboard. Dates are
// stored as plain YYYY-MM-DD strings; either bound may be empty for an
// open-ended promotion.
type Promotion struct {
	ID          uint      `gorm:"primaryKey"     json:"id"`
	VendorID    uint      `gorm:"index;not null" json:"-"`
	Title       string    `gorm:"size:255;not null" json:"title"`
	Description string    `                      json:"description"`
	StartDate   string    `gorm:"size:10"        json:"start_date"`
	EndDate     string    `gorm:"size:10"        json:"end_date"`
	CreatedAt   time.Time `                      json:"created_at"`
}

// VendorCategory is a vendor-defined menu section label.
type VendorCategory struct {
	ID        uint      `gorm:"primaryKey"      json:"id"`
	VendorID  uint      `gorm:"index;not null"  json:"-"`
	Name      string    `gorm:"size:100;not null" json:"name"`
	CreatedAt time.Time `                       json:"created_at"`
}

// Banner is a home-screen carousel image, managed out of band.
type Banner struct {
	ID        uint      `gorm:"primaryKey"   json:"id"`
	Title     string    `gorm:"size:100"     json:"title"`
	Image     string    `gorm:"size:255"     json:"image"`
	IsActive  bool      `gorm:"default:true" json:"is_active"`
	CreatedAt time.Time `                    json:"created_at"`
}

// FoodCategory is a global cuisine tile on the customer home screen.
type FoodCategory struct {
	ID       uint   `gorm:"primaryKey"        json:"id"`
	Name     string `gorm:"size:100;not null" json:"name"`
	ImageURL string `gorm:"size:255"          json:"image_url"`
	IsActive bool   `gorm:"default:true"      json:"is_active"`
}

type Notification struct {
	ID        uint      `gorm:"primaryKey"     json:"id"`
	VendorID  uint      `gorm:"index;not null" json:"vendor_id"`
	Title     string    `gorm:"size:255"       json:"title"`
	Body      string    `                      json:"body"`
	CreatedAt time.Time `                      json:"created_at"`
}

// AllModels is the migration set.
func AllModels() []any {
	return []any{
		&Vendor{}, &Customer{}, &DeliveryAgent{}, &Address{},
		&FoodListing{}, &CartItem{}, &Order{}, &OrderItem{}, &Notification{},
		&Promotion{}, &VendorCategory{}, &Banner{}, &FoodCategory{},
	}
}
