// Package geo wraps the Nominatim geocoding service and the great-circle
// distance math used for delivery-fee pricing.
package geo

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"net/http"
	"net/url"
	"strconv"
	"time"
)

var ErrNotFound = errors.New("location not found")

type Point struct {
	Lat float64
	Lng float64
}

// Geocoder resolves a postal pincode to coordinates.
type Geocoder interface {
	GeocodePincode(ctx context.Context, pincode string) (Point, error)
}

type NominatimClient struct {
	BaseURL   string
	UserAgent string
	HTTP      *http.Client
}

func NewNominatim(baseURL string) *NominatimClient {
	if baseURL == "" {
		baseURL = "https://nominatim.openstreetmap.org"
	}
	return &NominatimClient{
		BaseURL:   baseURL,
		UserAgent: "foodondoor_backend",
		HTTP:      &http.Client{Timeout: 5 * time.Second},
	}
}

func (c *NominatimClient) GeocodePincode(ctx context.Context, pincode string) (Point, error) {
	q := url.Values{}
	q.Set("q", pincode+", India")
	q.Set("format", "json")
	q.Set("limit", "1")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.BaseURL+"/search?"+q.Encode(), nil)
	if err != nil {
		return Point{}, err
	}
	req.Header.Set("User-Agent", c.UserAgent)

	resp, err := c.HTTP.Do(req)
	if err != nil {
		return Point{}, fmt.Errorf("geocode request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return Point{}, fmt.Errorf("geocode status %d", resp.StatusCode)
	}

	var results []struct {
		Lat string `json:"lat"`
		Lon string `json:"lon"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&results); err != nil {
		return Point{}, err
	}
	if len(results) == 0 {
		return Point{}, ErrNotFound
	}

	lat, err := strconv.ParseFloat(results[0].Lat, 64)
	if err != nil {
		return Point{}, err
	}
	lng, err := strconv.ParseFloat(results[0].Lon, 64)
	if err != nil {
		return Point{}, err
	}
	return Point{Lat: lat, Lng: lng}, nil
}

const earthRadiusKm = 6371.0

// DistanceKm returns the great-circle distance between two points using the
// haversine formula.
func DistanceKm(a, b Point) float64 {
	la1 := a.Lat * math.Pi / 180
	la2 := b.Lat * math.Pi / 180
	dLat := (b.Lat - a.Lat) * math.Pi / 180
	dLng := (b.Lng - a.Lng) * math.Pi / 180

	h := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(la1)*math.Cos(la2)*math.Sin(dLng/2)*math.Sin(dLng/2)
	return 2 * earthRadiusKm * math.Asin(math.Sqrt(h))
}
