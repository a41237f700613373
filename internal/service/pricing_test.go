package service

import (
	"context"
	"testing"

	"github.com/foodondoor/backend/pkg/geo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeGeocoder struct {
	point geo.Point
	err   error
}

func (f fakeGeocoder) GeocodePincode(context.Context, string) (geo.Point, error) {
	return f.point, f.err
}

func TestFeeForDistance(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name     string
		distance float64
		want     float64
	}{
		{"zero distance", 0, 20.0},
		{"inside base radius", 3.2, 20.0},
		{"exactly base radius", 5.0, 20.0},
		{"just outside", 5.5, 22.5},
		{"far away", 12.0, 55.0},
		{"rounded to 2 decimals", 5.333, 21.67},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			assert.InDelta(t, tc.want, feeForDistance(tc.distance), 0.001)
		})
	}
}

func TestQuoteDeliveryFee_TestPincode(t *testing.T) {
	t.Parallel()

	// the fixed test pincode must never hit the geocoder
	q, err := QuoteDeliveryFee(context.Background(), fakeGeocoder{err: assert.AnError}, geo.Point{}, "123456")
	require.NoError(t, err)
	assert.Equal(t, 20.0, q.Fee)
	assert.Equal(t, 0.0, q.DistanceKm)
}

func TestQuoteDeliveryFee_InvalidPincode(t *testing.T) {
	t.Parallel()

	for _, pin := range []string{"", "12345", "1234567", "12a456"} {
		_, err := QuoteDeliveryFee(context.Background(), fakeGeocoder{}, geo.Point{}, pin)
		assert.ErrorIs(t, err, ErrValidation, "pincode %q", pin)
	}
}

func TestQuoteDeliveryFee_GeocodeFailure(t *testing.T) {
	t.Parallel()

	_, err := QuoteDeliveryFee(context.Background(), fakeGeocoder{err: geo.ErrNotFound}, geo.Point{}, "560001")
	assert.ErrorIs(t, err, ErrValidation)
}

func TestQuoteDeliveryFee_Distance(t *testing.T) {
	t.Parallel()

	// roughly 1 degree of longitude apart on the equator, ~111 km
	vendor := geo.Point{Lat: 0, Lng: 0}
	gc := fakeGeocoder{point: geo.Point{Lat: 0, Lng: 1}}

	q, err := QuoteDeliveryFee(context.Background(), gc, vendor, "560001")
	require.NoError(t, err)
	assert.InDelta(t, 111.2, q.DistanceKm, 1.0)
	assert.InDelta(t, 20.0+(q.DistanceKm-5.0)*5.0, q.Fee, 0.1)
}

func TestValidPincode(t *testing.T) {
	t.Parallel()

	assert.True(t, ValidPincode("560001"))
	assert.False(t, ValidPincode("56001"))
	assert.False(t, ValidPincode("5600011"))
	assert.False(t, ValidPincode("56000a"))
}
