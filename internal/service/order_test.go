package service

import (
	"context"
	"strconv"
	"testing"

	"github.com/foodondoor/backend/internal/events"
	"github.com/foodondoor/backend/internal/models"
	"github.com/foodondoor/backend/internal/repo"
	"github.com/foodondoor/backend/internal/transport"
	"github.com/foodondoor/backend/pkg/geo"
	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func initTestRepo(t *testing.T) *repo.GormRepo {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(models.AllModels()...))
	return &repo.GormRepo{DB: db}
}

type orderFixtures struct {
	repo     *repo.GormRepo
	svc      *OrderService
	customer models.Customer
	vendor   models.Vendor
	dosa     models.FoodListing
	idli     models.FoodListing
}

func newOrderFixtures(t *testing.T, gc geo.Geocoder) *orderFixtures {
	t.Helper()
	r := initTestRepo(t)
	ctx := context.Background()

	vendor := models.Vendor{
		Code: "V001", Phone: "9000000001", RestaurantName: "Udupi Palace",
		Email: "udupi@example.com", ContactNumber: "08012345678",
		Latitude: 12.9716, Longitude: 77.5946, IsActive: true,
	}
	require.NoError(t, r.DB.Create(&vendor).Error)

	customer := models.Customer{Code: "C10001", Phone: "9111111111", FullName: "Asha", Email: "asha@example.com"}
	require.NoError(t, r.CreateCustomer(ctx, &customer))

	dosa := models.FoodListing{VendorID: vendor.ID, Name: "Masala Dosa", Price: 80, IsAvailable: true}
	idli := models.FoodListing{VendorID: vendor.ID, Name: "Idli", Price: 40, IsAvailable: true}
	require.NoError(t, r.DB.Create(&dosa).Error)
	require.NoError(t, r.DB.Create(&idli).Error)

	return &orderFixtures{
		repo:     r,
		svc:      &OrderService{Repo: r, Geocoder: gc, Events: events.NewProducer(nil, "")},
		customer: customer,
		vendor:   vendor,
		dosa:     dosa,
		idli:     idli,
	}
}

func placeOrderReq(f *orderFixtures, items []transport.OrderItemInput) transport.PlaceOrderRequest {
	return transport.PlaceOrderRequest{
		PaymentMethod: "cod",
		OrderDetails: transport.PlaceOrderDetails{
			CustomerID: f.customer.Code,
			VendorID:   f.vendor.Code,
			Items:      items,
			Address:    "12 MG Road, Bengaluru, 123456",
		},
	}
}

func TestPlaceOrder_Success(t *testing.T) {
	t.Parallel()

	f := newOrderFixtures(t, fakeGeocoder{})
	res, err := f.svc.PlaceOrder(context.Background(), placeOrderReq(f, []transport.OrderItemInput{
		{FoodID: f.dosa.ID, Quantity: 2},
		{FoodID: f.idli.ID, Quantity: 1},
	}))
	require.NoError(t, err)

	assert.Regexp(t, `^ORD\d{5}$`, res.OrderID)
	assert.Equal(t, models.OrderStatusPending, res.Status)
	assert.InDelta(t, 200.0, res.ItemsTotal, 0.001)
	assert.InDelta(t, 20.0, res.DeliveryFee, 0.001) // test pincode, flat fee
	assert.InDelta(t, 220.0, res.TotalAmount, 0.001)
	assert.Equal(t, f.vendor.Code, res.Vendor.ID)
	require.NotNil(t, res.DistanceKm)
	assert.InDelta(t, 0.0, *res.DistanceKm, 0.001)

	stored, err := f.repo.OrderByNumber(context.Background(), res.OrderID)
	require.NoError(t, err)
	require.Len(t, stored.Items, 2)
	assert.Equal(t, models.PaymentModeCOD, stored.PaymentMode)

	// the vendor got an inbox notification
	notes, err := f.repo.VendorNotifications(context.Background(), f.vendor.ID)
	require.NoError(t, err)
	require.Len(t, notes, 1)
	assert.Contains(t, notes[0].Title, res.OrderID)
}

func TestPlaceOrder_RepricesFromCatalog(t *testing.T) {
	t.Parallel()

	f := newOrderFixtures(t, fakeGeocoder{})
	req := placeOrderReq(f, []transport.OrderItemInput{
		{FoodID: f.dosa.ID, Quantity: 1, Price: 1.0}, // client price is ignored
	})

	res, err := f.svc.PlaceOrder(context.Background(), req)
	require.NoError(t, err)
	assert.InDelta(t, 80.0, res.ItemsTotal, 0.001)
}

func TestPlaceOrder_UnavailableItemRejectsWholeOrder(t *testing.T) {
	t.Parallel()

	f := newOrderFixtures(t, fakeGeocoder{})
	f.idli.IsAvailable = false
	require.NoError(t, f.repo.SaveFoodListing(context.Background(), &f.idli))

	_, err := f.svc.PlaceOrder(context.Background(), placeOrderReq(f, []transport.OrderItemInput{
		{FoodID: f.dosa.ID, Quantity: 1},
		{FoodID: f.idli.ID, Quantity: 1},
	}))
	require.ErrorIs(t, err, ErrValidation)
	assert.Contains(t, err.Error(), "Idli")

	// nothing was persisted
	orders, listErr := f.repo.CustomerOrders(context.Background(), f.customer.ID, nil)
	require.NoError(t, listErr)
	assert.Empty(t, orders)
}

func TestPlaceOrder_UnknownActors(t *testing.T) {
	t.Parallel()

	f := newOrderFixtures(t, fakeGeocoder{})

	req := placeOrderReq(f, []transport.OrderItemInput{{FoodID: f.dosa.ID, Quantity: 1}})
	req.OrderDetails.CustomerID = "C99999"
	_, err := f.svc.PlaceOrder(context.Background(), req)
	assert.ErrorIs(t, err, ErrNotFound)

	req = placeOrderReq(f, []transport.OrderItemInput{{FoodID: f.dosa.ID, Quantity: 1}})
	req.OrderDetails.VendorID = "V999"
	_, err = f.svc.PlaceOrder(context.Background(), req)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestPlaceOrder_InvalidQuantity(t *testing.T) {
	t.Parallel()

	f := newOrderFixtures(t, fakeGeocoder{})
	_, err := f.svc.PlaceOrder(context.Background(), placeOrderReq(f, []transport.OrderItemInput{
		{FoodID: f.dosa.ID, Quantity: 0},
	}))
	assert.ErrorIs(t, err, ErrValidation)
}

func TestPlaceOrder_FoodFromOtherVendor(t *testing.T) {
	t.Parallel()

	f := newOrderFixtures(t, fakeGeocoder{})
	other := models.Vendor{Code: "V002", Phone: "9000000002", RestaurantName: "Other", Email: "o@example.com", IsActive: true}
	require.NoError(t, f.repo.DB.Create(&other).Error)
	foreign := models.FoodListing{VendorID: other.ID, Name: "Paratha", Price: 60, IsAvailable: true}
	require.NoError(t, f.repo.DB.Create(&foreign).Error)

	_, err := f.svc.PlaceOrder(context.Background(), placeOrderReq(f, []transport.OrderItemInput{
		{FoodID: foreign.ID, Quantity: 1},
	}))
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestPlaceOrder_ClientOverridesFeeAndTotal(t *testing.T) {
	t.Parallel()

	f := newOrderFixtures(t, fakeGeocoder{})
	fee := 35.0
	total := 500.0
	req := placeOrderReq(f, []transport.OrderItemInput{{FoodID: f.dosa.ID, Quantity: 1}})
	req.OrderDetails.DeliveryFee = &fee
	req.OrderDetails.TotalPrice = &total

	res, err := f.svc.PlaceOrder(context.Background(), req)
	require.NoError(t, err)
	assert.InDelta(t, 35.0, res.DeliveryFee, 0.001)
	assert.InDelta(t, 500.0, res.TotalAmount, 0.001)
}

func TestPlaceOrder_FeeOverrideSkipsGeocoding(t *testing.T) {
	t.Parallel()

	// a client-supplied fee must not trigger a geocoder call at all
	f := newOrderFixtures(t, fakeGeocoder{err: geo.ErrNotFound})
	fee := 35.0
	req := placeOrderReq(f, []transport.OrderItemInput{{FoodID: f.dosa.ID, Quantity: 1}})
	req.OrderDetails.Address = "44 Residency Road, Bengaluru, 560025"
	req.OrderDetails.DeliveryFee = &fee

	res, err := f.svc.PlaceOrder(context.Background(), req)
	require.NoError(t, err)
	assert.InDelta(t, 35.0, res.DeliveryFee, 0.001)
	assert.Nil(t, res.DistanceKm)
}

func TestPlaceOrder_SavedAddressID(t *testing.T) {
	t.Parallel()

	f := newOrderFixtures(t, fakeGeocoder{})
	ctx := context.Background()

	addr := &models.Address{CustomerID: f.customer.ID, Line1: "7 Brigade Road", City: "Bengaluru", State: "KA", Pincode: "123456"}
	require.NoError(t, f.repo.CreateAddress(ctx, addr))

	req := placeOrderReq(f, []transport.OrderItemInput{{FoodID: f.dosa.ID, Quantity: 1}})
	req.OrderDetails.Address = strconv.Itoa(int(addr.ID))

	res, err := f.svc.PlaceOrder(ctx, req)
	require.NoError(t, err)
	assert.Contains(t, res.DeliveryAddress, "7 Brigade Road")
	assert.Contains(t, res.DeliveryAddress, "123456")
}

func TestPlaceOrder_SavedAddressIDOtherCustomer(t *testing.T) {
	t.Parallel()

	f := newOrderFixtures(t, fakeGeocoder{})
	ctx := context.Background()

	other := models.Customer{Code: "C20002", Phone: "9222222222", FullName: "Ravi", Email: "ravi@example.com"}
	require.NoError(t, f.repo.CreateCustomer(ctx, &other))
	addr := &models.Address{CustomerID: other.ID, Line1: "Elsewhere", Pincode: "560001"}
	require.NoError(t, f.repo.CreateAddress(ctx, addr))

	// a foreign address ID is not resolvable and has no pincode of its own
	req := placeOrderReq(f, []transport.OrderItemInput{{FoodID: f.dosa.ID, Quantity: 1}})
	req.OrderDetails.Address = strconv.Itoa(int(addr.ID))

	_, err := f.svc.PlaceOrder(ctx, req)
	assert.ErrorIs(t, err, ErrValidation)
}

func TestPlaceOrder_PaymentMethodValidation(t *testing.T) {
	t.Parallel()

	f := newOrderFixtures(t, fakeGeocoder{})
	ctx := context.Background()

	for _, method := range []string{"upi", "card", ""} {
		req := placeOrderReq(f, []transport.OrderItemInput{{FoodID: f.dosa.ID, Quantity: 1}})
		req.PaymentMethod = method
		_, err := f.svc.PlaceOrder(ctx, req)
		assert.ErrorIs(t, err, ErrValidation, "payment method %q", method)
	}

	req := placeOrderReq(f, []transport.OrderItemInput{{FoodID: f.dosa.ID, Quantity: 1}})
	req.PaymentMethod = "paytm"
	res, err := f.svc.PlaceOrder(ctx, req)
	require.NoError(t, err)

	stored, err := f.repo.OrderByNumber(ctx, res.OrderID)
	require.NoError(t, err)
	assert.Equal(t, models.PaymentModePaytm, stored.PaymentMode)
	assert.Equal(t, "pending", stored.PaymentStatus)
}

func TestPlaceOrder_DefaultAddressFallback(t *testing.T) {
	t.Parallel()

	f := newOrderFixtures(t, fakeGeocoder{})
	ctx := context.Background()

	addr := &models.Address{CustomerID: f.customer.ID, Line1: "12 MG Road", City: "Bengaluru", Pincode: "123456", IsDefault: true}
	require.NoError(t, f.repo.CreateAddress(ctx, addr))
	f.customer.DefaultAddressID = &addr.ID
	require.NoError(t, f.repo.SaveCustomer(ctx, &f.customer))

	req := placeOrderReq(f, []transport.OrderItemInput{{FoodID: f.dosa.ID, Quantity: 1}})
	req.OrderDetails.Address = ""
	req.OrderDetails.CustomerID = f.customer.Code

	res, err := f.svc.PlaceOrder(ctx, req)
	require.NoError(t, err)
	assert.Contains(t, res.DeliveryAddress, "12 MG Road")
	assert.Contains(t, res.DeliveryAddress, "123456")
}

func TestUpdateStatus(t *testing.T) {
	t.Parallel()

	f := newOrderFixtures(t, fakeGeocoder{})
	ctx := context.Background()

	res, err := f.svc.PlaceOrder(ctx, placeOrderReq(f, []transport.OrderItemInput{{FoodID: f.dosa.ID, Quantity: 1}}))
	require.NoError(t, err)

	order, err := f.svc.UpdateStatus(ctx, f.vendor.Code, res.OrderID, "Confirmed")
	require.NoError(t, err)
	assert.Equal(t, models.OrderStatusConfirmed, order.Status)

	_, err = f.svc.UpdateStatus(ctx, f.vendor.Code, res.OrderID, "bogus")
	assert.ErrorIs(t, err, ErrValidation)

	// another vendor cannot touch the order
	_, err = f.svc.UpdateStatus(ctx, "V999", res.OrderID, "preparing")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestUpdateLocation(t *testing.T) {
	t.Parallel()

	f := newOrderFixtures(t, fakeGeocoder{})
	ctx := context.Background()

	res, err := f.svc.PlaceOrder(ctx, placeOrderReq(f, []transport.OrderItemInput{{FoodID: f.dosa.ID, Quantity: 1}}))
	require.NoError(t, err)

	lat, lng := 12.95, 77.61
	order, err := f.svc.UpdateLocation(ctx, res.OrderID, &lat, &lng)
	require.NoError(t, err)
	require.NotNil(t, order.DeliveryLat)
	assert.InDelta(t, 12.95, *order.DeliveryLat, 0.0001)

	_, err = f.svc.UpdateLocation(ctx, res.OrderID, nil, &lng)
	assert.ErrorIs(t, err, ErrValidation)

	bad := 200.0
	_, err = f.svc.UpdateLocation(ctx, res.OrderID, &bad, &lng)
	assert.ErrorIs(t, err, ErrValidation)
}

func TestCustomerOrders_Filters(t *testing.T) {
	t.Parallel()

	f := newOrderFixtures(t, fakeGeocoder{})
	ctx := context.Background()

	res, err := f.svc.PlaceOrder(ctx, placeOrderReq(f, []transport.OrderItemInput{{FoodID: f.dosa.ID, Quantity: 1}}))
	require.NoError(t, err)

	inProgress, err := f.svc.CustomerOrders(ctx, f.customer.Code, "in_progress")
	require.NoError(t, err)
	assert.Len(t, inProgress, 1)

	delivered, err := f.svc.CustomerOrders(ctx, f.customer.Code, "delivered")
	require.NoError(t, err)
	assert.Empty(t, delivered)

	_, err = f.svc.UpdateStatus(ctx, f.vendor.Code, res.OrderID, models.OrderStatusDelivered)
	require.NoError(t, err)

	delivered, err = f.svc.CustomerOrders(ctx, f.customer.Code, "delivered")
	require.NoError(t, err)
	assert.Len(t, delivered, 1)

	_, err = f.svc.CustomerOrders(ctx, f.customer.Code, "nope")
	assert.ErrorIs(t, err, ErrValidation)
}

func TestVendorAnalytics(t *testing.T) {
	t.Parallel()

	f := newOrderFixtures(t, fakeGeocoder{})
	ctx := context.Background()

	first, err := f.svc.PlaceOrder(ctx, placeOrderReq(f, []transport.OrderItemInput{
		{FoodID: f.dosa.ID, Quantity: 2},
		{FoodID: f.idli.ID, Quantity: 1},
	}))
	require.NoError(t, err)
	_, err = f.svc.PlaceOrder(ctx, placeOrderReq(f, []transport.OrderItemInput{
		{FoodID: f.dosa.ID, Quantity: 1},
	}))
	require.NoError(t, err)

	_, err = f.svc.UpdateStatus(ctx, f.vendor.Code, first.OrderID, models.OrderStatusDelivered)
	require.NoError(t, err)

	stats, err := f.svc.VendorAnalytics(ctx, f.vendor.Code)
	require.NoError(t, err)
	assert.EqualValues(t, 2, stats.TotalOrders)
	assert.EqualValues(t, 1, stats.PendingOrders)
	assert.EqualValues(t, 1, stats.CompletedOrders)
	assert.InDelta(t, 320.0, stats.TotalRevenue, 0.001) // 220 + 100, flat fee each
	assert.Equal(t, "Masala Dosa", stats.PopularItem)

	_, err = f.svc.VendorAnalytics(ctx, "V999")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestVendorAnalytics_Empty(t *testing.T) {
	t.Parallel()

	f := newOrderFixtures(t, fakeGeocoder{})
	stats, err := f.svc.VendorAnalytics(context.Background(), f.vendor.Code)
	require.NoError(t, err)
	assert.Zero(t, stats.TotalOrders)
	assert.Zero(t, stats.TotalRevenue)
	assert.Empty(t, stats.PopularItem)
}

func TestDeliveryFee_Lookup(t *testing.T) {
	t.Parallel()

	f := newOrderFixtures(t, fakeGeocoder{point: geo.Point{Lat: 12.9716, Lng: 77.5946}})

	res, err := f.svc.DeliveryFee(context.Background(), f.vendor.Code, "560001")
	require.NoError(t, err)
	assert.InDelta(t, 20.0, res.DeliveryFee, 0.001)
	assert.InDelta(t, 0.0, res.DistanceKm, 0.001)

	_, err = f.svc.DeliveryFee(context.Background(), "V999", "560001")
	assert.ErrorIs(t, err, ErrNotFound)
}
