package service

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/foodondoor/backend/internal/events"
	"github.com/foodondoor/backend/internal/models"
	"github.com/foodondoor/backend/internal/repo"
	"github.com/foodondoor/backend/internal/transport"
	"github.com/foodondoor/backend/pkg/geo"
	"github.com/foodondoor/backend/pkg/logging"
	"github.com/foodondoor/backend/pkg/push"
	"gorm.io/gorm"
)

const estimatedDeliveryMinutes = 30

type OrderService struct {
	Repo     *repo.GormRepo
	Geocoder geo.Geocoder
	Events   *events.Producer
	Push     push.Sender
}

// PlaceOrder validates and prices a checkout request, persists the order
// with its line items, then fires the vendor notification, push and event
// side effects. The side effects are best-effort; the committed order is
// never rolled back for them.
func (s *OrderService) PlaceOrder(ctx context.Context, req transport.PlaceOrderRequest) (*transport.PlaceOrderResponse, error) {
	d := req.OrderDetails

	customer, err := s.Repo.CustomerByCode(ctx, d.CustomerID)
	if err == gorm.ErrRecordNotFound {
		return nil, fmt.Errorf("%w: customer %s", ErrNotFound, d.CustomerID)
	}
	if err != nil {
		return nil, err
	}

	vendor, err := s.Repo.VendorByCode(ctx, d.VendorID)
	if err == gorm.ErrRecordNotFound {
		return nil, fmt.Errorf("%w: vendor %s", ErrNotFound, d.VendorID)
	}
	if err != nil {
		return nil, err
	}

	if len(d.Items) == 0 {
		return nil, fmt.Errorf("%w: order has no items", ErrValidation)
	}

	var (
		itemsTotal  float64
		orderItems  []models.OrderItem
		unavailable []string
	)
	for _, in := range d.Items {
		if in.Quantity <= 0 {
			return nil, fmt.Errorf("%w: quantity must be a positive integer", ErrValidation)
		}

		food, err := s.Repo.FoodListing(ctx, vendor.ID, in.FoodID)
		if err == gorm.ErrRecordNotFound {
			return nil, fmt.Errorf("%w: food item %d", ErrNotFound, in.FoodID)
		}
		if err != nil {
			return nil, err
		}
		if !food.IsAvailable {
			unavailable = append(unavailable, food.Name)
			continue
		}

		itemsTotal += food.Price * float64(in.Quantity)
		orderItems = append(orderItems, models.OrderItem{
			FoodListingID: food.ID,
			Quantity:      uint(in.Quantity),
			UnitPrice:     food.Price,
		})
	}
	if len(unavailable) > 0 {
		return nil, fmt.Errorf("%w: items no longer available: %s",
			ErrValidation, strings.Join(unavailable, ", "))
	}

	address, pincode, err := s.resolveAddress(ctx, customer, d.Address)
	if err != nil {
		return nil, err
	}

	// The fee is only computed when the client did not supply one; a client
	// override skips geocoding entirely.
	var (
		deliveryFee float64
		distanceKm  *float64
	)
	if d.DeliveryFee != nil {
		deliveryFee = *d.DeliveryFee
	} else {
		quote, err := QuoteDeliveryFee(ctx, s.Geocoder, geo.Point{Lat: vendor.Latitude, Lng: vendor.Longitude}, pincode)
		if err != nil {
			return nil, err
		}
		deliveryFee = quote.Fee
		km := quote.DistanceKm
		distanceKm = &km
	}
	total := itemsTotal + deliveryFee
	if d.TotalPrice != nil {
		total = *d.TotalPrice
	}

	number, err := repo.NewOrderNumber()
	if err != nil {
		return nil, err
	}

	paymentMode := strings.ToUpper(strings.TrimSpace(req.PaymentMethod))
	if paymentMode != models.PaymentModeCOD && paymentMode != models.PaymentModePaytm {
		return nil, fmt.Errorf("%w: payment_method must be COD or PAYTM", ErrValidation)
	}
	paymentStatus := req.PaymentStatus
	if paymentStatus == "" {
		paymentStatus = "pending"
	}

	order := &models.Order{
		Number:          number,
		CustomerID:      customer.ID,
		VendorID:        vendor.ID,
		Status:          models.OrderStatusPending,
		ItemsTotal:      itemsTotal,
		DeliveryFee:     deliveryFee,
		TotalAmount:     total,
		DeliveryAddress: address,
		PaymentMode:     paymentMode,
		PaymentStatus:   paymentStatus,
		PaymentID:       req.TxnID,
		Items:           orderItems,
	}
	if err := s.Repo.CreateOrder(ctx, order); err != nil {
		return nil, err
	}

	s.notifyVendor(ctx, vendor, order)
	s.publish(ctx, events.OrderEvent{
		Type:        events.EventOrderPlaced,
		OrderNumber: order.Number,
		VendorCode:  vendor.Code,
		Customer:    customer.Code,
		Status:      order.Status,
		Total:       order.TotalAmount,
		At:          time.Now().UTC(),
	})

	return &transport.PlaceOrderResponse{
		OrderID:               order.Number,
		Status:                order.Status,
		EstimatedDeliveryTime: estimatedDeliveryMinutes,
		TotalAmount:           order.TotalAmount,
		ItemsTotal:            order.ItemsTotal,
		DeliveryFee:           order.DeliveryFee,
		Vendor: transport.VendorRef{
			ID:    vendor.Code,
			Name:  vendor.RestaurantName,
			Phone: vendor.ContactNumber,
		},
		DeliveryAddress: order.DeliveryAddress,
		DistanceKm:      distanceKm,
	}, nil
}

// resolveAddress accepts a saved address ID, a raw address string ending in
// a pincode, or falls back to the customer's default saved address. A numeric
// value is tried as an address ID first; an unknown ID degrades to the raw
// path, so a bare pincode that happens to collide with an ID still works.
func (s *OrderService) resolveAddress(ctx context.Context, customer *models.Customer, raw string) (address, pincode string, err error) {
	raw = strings.TrimSpace(raw)
	if raw != "" {
		if id, convErr := strconv.Atoi(raw); convErr == nil && id > 0 {
			saved, err := s.Repo.CustomerAddress(ctx, customer.ID, uint(id))
			if err == nil {
				return formatAddress(saved), saved.Pincode, nil
			}
			if err != gorm.ErrRecordNotFound {
				return "", "", err
			}
		}
		pin := lastPincode(raw)
		if pin == "" {
			return "", "", fmt.Errorf("%w: address must include a 6 digit pincode", ErrValidation)
		}
		return raw, pin, nil
	}

	if customer.DefaultAddressID == nil {
		return "", "", fmt.Errorf("%w: no address given and no default address on file", ErrValidation)
	}
	saved, err := s.Repo.CustomerAddress(ctx, customer.ID, *customer.DefaultAddressID)
	if err == gorm.ErrRecordNotFound {
		return "", "", fmt.Errorf("%w: default address", ErrNotFound)
	}
	if err != nil {
		return "", "", err
	}
	return formatAddress(saved), saved.Pincode, nil
}

func formatAddress(a *models.Address) string {
	parts := []string{a.Line1}
	for _, p := range []string{a.Line2, a.City, a.State, a.Pincode} {
		if p != "" {
			parts = append(parts, p)
		}
	}
	return strings.Join(parts, ", ")
}

// lastPincode pulls the trailing 6 digit group out of a free-form address.
func lastPincode(address string) string {
	fields := strings.FieldsFunc(address, func(r rune) bool {
		return r == ' ' || r == ',' || r == '-'
	})
	for i := len(fields) - 1; i >= 0; i-- {
		if ValidPincode(fields[i]) {
			return fields[i]
		}
	}
	return ""
}

// DeliveryFee prices a standalone fee lookup for a vendor and pincode,
// without placing an order.
func (s *OrderService) DeliveryFee(ctx context.Context, vendorCode, pincode string) (*transport.DeliveryFeeResponse, error) {
	vendor, err := s.Repo.VendorByCode(ctx, vendorCode)
	if err == gorm.ErrRecordNotFound {
		return nil, fmt.Errorf("%w: vendor %s", ErrNotFound, vendorCode)
	}
	if err != nil {
		return nil, err
	}

	quote, err := QuoteDeliveryFee(ctx, s.Geocoder, geo.Point{Lat: vendor.Latitude, Lng: vendor.Longitude}, pincode)
	if err != nil {
		return nil, err
	}
	return &transport.DeliveryFeeResponse{DeliveryFee: quote.Fee, DistanceKm: quote.DistanceKm}, nil
}

func (s *OrderService) Order(ctx context.Context, number string) (*models.Order, error) {
	order, err := s.Repo.OrderByNumber(ctx, number)
	if err == gorm.ErrRecordNotFound {
		return nil, fmt.Errorf("%w: order %s", ErrNotFound, number)
	}
	if err != nil {
		return nil, err
	}
	return order, nil
}

// CustomerOrders lists a customer's orders; filter is "in_progress",
// "delivered" or empty for all.
func (s *OrderService) CustomerOrders(ctx context.Context, customerCode, filter string) ([]models.Order, error) {
	customer, err := s.Repo.CustomerByCode(ctx, customerCode)
	if err == gorm.ErrRecordNotFound {
		return nil, fmt.Errorf("%w: customer %s", ErrNotFound, customerCode)
	}
	if err != nil {
		return nil, err
	}

	var statuses []string
	switch filter {
	case "":
	case "in_progress":
		statuses = models.InProgressStatuses
	case "delivered":
		statuses = []string{models.OrderStatusDelivered}
	default:
		return nil, fmt.Errorf("%w: unknown filter %q", ErrValidation, filter)
	}
	return s.Repo.CustomerOrders(ctx, customer.ID, statuses)
}

// VendorAnalytics aggregates order counts, revenue and the best-selling item
// for the vendor dashboard.
func (s *OrderService) VendorAnalytics(ctx context.Context, vendorCode string) (*transport.VendorAnalytics, error) {
	vendor, err := s.Repo.VendorByCode(ctx, vendorCode)
	if err == gorm.ErrRecordNotFound {
		return nil, fmt.Errorf("%w: vendor %s", ErrNotFound, vendorCode)
	}
	if err != nil {
		return nil, err
	}

	stats, err := s.Repo.VendorOrderStats(ctx, vendor.ID)
	if err != nil {
		return nil, err
	}
	return &transport.VendorAnalytics{
		TotalOrders:     stats.TotalOrders,
		TotalRevenue:    stats.TotalRevenue,
		PendingOrders:   stats.PendingOrders,
		CompletedOrders: stats.CompletedOrders,
		PopularItem:     stats.PopularItem,
	}, nil
}

func (s *OrderService) VendorOrders(ctx context.Context, vendorCode string) ([]models.Order, error) {
	vendor, err := s.Repo.VendorByCode(ctx, vendorCode)
	if err == gorm.ErrRecordNotFound {
		return nil, fmt.Errorf("%w: vendor %s", ErrNotFound, vendorCode)
	}
	if err != nil {
		return nil, err
	}
	return s.Repo.VendorOrders(ctx, vendor.ID)
}

// UpdateStatus moves an order through its lifecycle. Vendors may only touch
// their own orders; the customer is pushed on every transition.
func (s *OrderService) UpdateStatus(ctx context.Context, vendorCode, number, status string) (*models.Order, error) {
	status = strings.ToLower(strings.TrimSpace(status))
	if !models.ValidOrderStatus(status) {
		return nil, fmt.Errorf("%w: invalid status %q", ErrValidation, status)
	}

	order, err := s.Order(ctx, number)
	if err != nil {
		return nil, err
	}
	if vendorCode != "" && order.Vendor.Code != vendorCode {
		return nil, fmt.Errorf("%w: order %s", ErrNotFound, number)
	}

	order.Status = status
	if err := s.Repo.SaveOrder(ctx, order); err != nil {
		return nil, err
	}

	if s.Push != nil && order.Customer.FCMToken != "" {
		if err := s.Push.Send(ctx, order.Customer.FCMToken,
			"Order "+order.Number,
			fmt.Sprintf("Your order is now %s", strings.ReplaceAll(status, "_", " "))); err != nil {
			logging.FromContext(ctx).Warn("customer push failed", "order", order.Number, "error", err)
		}
	}
	s.publish(ctx, events.OrderEvent{
		Type:        events.EventOrderStatusChanged,
		OrderNumber: order.Number,
		VendorCode:  order.Vendor.Code,
		Customer:    order.Customer.Code,
		Status:      status,
		At:          time.Now().UTC(),
	})
	return order, nil
}

// UpdateLocation records the courier position for live tracking.
func (s *OrderService) UpdateLocation(ctx context.Context, number string, lat, lng *float64) (*models.Order, error) {
	if lat == nil || lng == nil {
		return nil, fmt.Errorf("%w: lat and lng are required", ErrValidation)
	}
	if *lat < -90 || *lat > 90 || *lng < -180 || *lng > 180 {
		return nil, fmt.Errorf("%w: coordinates out of range", ErrValidation)
	}

	order, err := s.Order(ctx, number)
	if err != nil {
		return nil, err
	}

	order.DeliveryLat = lat
	order.DeliveryLng = lng
	if err := s.Repo.SaveOrder(ctx, order); err != nil {
		return nil, err
	}

	s.publish(ctx, events.OrderEvent{
		Type:        events.EventOrderLocation,
		OrderNumber: order.Number,
		VendorCode:  order.Vendor.Code,
		At:          time.Now().UTC(),
	})
	return order, nil
}

func (s *OrderService) notifyVendor(ctx context.Context, vendor *models.Vendor, order *models.Order) {
	log := logging.FromContext(ctx)

	n := &models.Notification{
		VendorID: vendor.ID,
		Title:    "New order " + order.Number,
		Body:     fmt.Sprintf("New order for %.2f, payment %s", order.TotalAmount, order.PaymentMode),
	}
	if err := s.Repo.CreateNotification(ctx, n); err != nil {
		log.Warn("notification insert failed", "order", order.Number, "error", err)
	}

	if s.Push == nil || vendor.FCMToken == "" {
		return
	}
	if err := s.Push.Send(ctx, vendor.FCMToken, n.Title, n.Body); err != nil {
		log.Warn("vendor push failed", "order", order.Number, "error", err)
	}
}

func (s *OrderService) publish(ctx context.Context, ev events.OrderEvent) {
	if err := s.Events.Publish(ctx, ev); err != nil {
		logging.FromContext(ctx).Warn("event publish failed", "order", ev.OrderNumber, "type", ev.Type, "error", err)
	}
}
