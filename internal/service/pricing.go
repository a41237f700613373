package service

import (
	"context"
	"fmt"
	"math"
	"regexp"

	"github.com/foodondoor/backend/pkg/geo"
)

const (
	baseDeliveryFee = 20.0
	baseRadiusKm    = 5.0
	perKmSurcharge  = 5.0

	// testPincode short-circuits geocoding with a fixed fee so mobile
	// builds can exercise checkout without a live geocoder.
	testPincode    = "123456"
	testPincodeFee = 20.0
)

var pincodeRe = regexp.MustCompile(`^\d{6}$`)

func ValidPincode(pin string) bool {
	return pincodeRe.MatchString(pin)
}

// feeForDistance applies the tiered rule: flat fee inside the base radius,
// flat fee plus a per-kilometer surcharge beyond it, rounded to 2 decimals.
func feeForDistance(distanceKm float64) float64 {
	fee := baseDeliveryFee
	if distanceKm > baseRadiusKm {
		fee += (distanceKm - baseRadiusKm) * perKmSurcharge
	}
	return math.Round(fee*100) / 100
}

type FeeQuote struct {
	Fee        float64
	DistanceKm float64
}

// QuoteDeliveryFee geocodes the delivery pincode and prices the distance to
// the vendor location.
func QuoteDeliveryFee(ctx context.Context, geocoder geo.Geocoder, vendorLoc geo.Point, pincode string) (*FeeQuote, error) {
	if !ValidPincode(pincode) {
		return nil, fmt.Errorf("%w: invalid pincode format, expected 6 digits", ErrValidation)
	}

	if pincode == testPincode {
		return &FeeQuote{Fee: testPincodeFee, DistanceKm: 0}, nil
	}

	dest, err := geocoder.GeocodePincode(ctx, pincode)
	if err != nil {
		return nil, fmt.Errorf("%w: could not geocode delivery address", ErrValidation)
	}

	distance := geo.DistanceKm(vendorLoc, dest)
	return &FeeQuote{
		Fee:        feeForDistance(distance),
		DistanceKm: math.Round(distance*100) / 100,
	}, nil
}
