package service

import (
	"context"
	"fmt"
	"math"

	"github.com/elastic/go-elasticsearch/v9"
	"github.com/foodondoor/backend/internal/models"
	"github.com/foodondoor/backend/internal/repo"
	"github.com/foodondoor/backend/internal/search"
	"github.com/foodondoor/backend/pkg/geo"
	"github.com/foodondoor/backend/pkg/logging"
)

const (
	nearbyRadiusKm    = 5.0
	defaultSearchSize = 20
	topRatedLimit     = 10
)

// DiscoveryService answers the customer home screen: nearby and top rated
// restaurants plus text search over vendors and dishes.
type DiscoveryService struct {
	Repo     *repo.GormRepo
	Geocoder geo.Geocoder
	ES       *elasticsearch.Client
}

// NearbyVendor is a vendor with its computed distance from the customer.
type NearbyVendor struct {
	models.Vendor
	DistanceKm float64 `json:"distance_km"`
}

// Nearby geocodes the pincode and returns active vendors within the
// delivery radius, nearest first.
func (s *DiscoveryService) Nearby(ctx context.Context, pincode string) ([]NearbyVendor, error) {
	if !ValidPincode(pincode) {
		return nil, fmt.Errorf("%w: invalid pincode format, expected 6 digits", ErrValidation)
	}

	origin, err := s.Geocoder.GeocodePincode(ctx, pincode)
	if err != nil {
		return nil, fmt.Errorf("%w: could not geocode pincode", ErrValidation)
	}

	vendors, err := s.Repo.ActiveVendors(ctx, "")
	if err != nil {
		return nil, err
	}

	out := make([]NearbyVendor, 0, len(vendors))
	for _, v := range vendors {
		d := geo.DistanceKm(origin, geo.Point{Lat: v.Latitude, Lng: v.Longitude})
		if d > nearbyRadiusKm {
			continue
		}
		out = append(out, NearbyVendor{Vendor: v, DistanceKm: round2(d)})
	}

	// insertion sort; the filtered set is small
	for i := 1; i < len(out); i++ {
		for j := i; j > 0 && out[j].DistanceKm < out[j-1].DistanceKm; j-- {
			out[j], out[j-1] = out[j-1], out[j]
		}
	}
	return out, nil
}

func round2(f float64) float64 {
	return math.Round(f*100) / 100
}

func (s *DiscoveryService) TopRated(ctx context.Context) ([]models.Vendor, error) {
	return s.Repo.TopRatedVendors(ctx, topRatedLimit)
}

func (s *DiscoveryService) ActiveByPincode(ctx context.Context, pincode string) ([]models.Vendor, error) {
	return s.Repo.ActiveVendors(ctx, pincode)
}

type SearchResults struct {
	Foods   []search.FoodDoc   `json:"foods"`
	Vendors []search.VendorDoc `json:"vendors"`
}

// Search fans the query out to both indices. Without a search backend it
// degrades to a SQL LIKE scan so the endpoint still answers.
func (s *DiscoveryService) Search(ctx context.Context, q string) (*SearchResults, error) {
	if q == "" {
		return nil, fmt.Errorf("%w: query is required", ErrValidation)
	}

	if s.ES == nil {
		return s.sqlSearch(ctx, q)
	}

	foods, err := search.Foods(ctx, s.ES, q, defaultSearchSize)
	if err != nil {
		logging.FromContext(ctx).Warn("food search failed", "error", err)
		return s.sqlSearch(ctx, q)
	}
	vendors, err := search.Vendors(ctx, s.ES, q, defaultSearchSize)
	if err != nil {
		logging.FromContext(ctx).Warn("vendor search failed", "error", err)
		vendors = nil
	}
	return &SearchResults{Foods: foods, Vendors: vendors}, nil
}

func (s *DiscoveryService) sqlSearch(ctx context.Context, q string) (*SearchResults, error) {
	foods, vendors, err := s.Repo.SearchCatalog(ctx, q, defaultSearchSize)
	if err != nil {
		return nil, err
	}

	res := &SearchResults{
		Foods:   make([]search.FoodDoc, 0, len(foods)),
		Vendors: make([]search.VendorDoc, 0, len(vendors)),
	}
	for _, f := range foods {
		vendorCode := ""
		if v, err := s.Repo.VendorByID(ctx, f.VendorID); err == nil {
			vendorCode = v.Code
		}
		res.Foods = append(res.Foods, search.FoodDoc{
			ID:          f.ID,
			VendorCode:  vendorCode,
			Name:        f.Name,
			Description: f.Description,
			Category:    f.Category,
			Price:       f.Price,
			IsAvailable: f.IsAvailable,
		})
	}
	for _, v := range vendors {
		res.Vendors = append(res.Vendors, search.VendorDoc{
			Code:           v.Code,
			RestaurantName: v.RestaurantName,
			Address:        v.Address,
			CuisineType:    v.CuisineType,
			Rating:         v.Rating,
		})
	}
	return res, nil
}
