package geo

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDistanceKm(t *testing.T) {
	t.Parallel()

	// Bengaluru city center to the airport, ~31 km
	blr := Point{Lat: 12.9716, Lng: 77.5946}
	airport := Point{Lat: 13.1986, Lng: 77.7066}
	assert.InDelta(t, 28.0, DistanceKm(blr, airport), 3.0)

	assert.Zero(t, DistanceKm(blr, blr))

	// symmetric
	assert.InDelta(t, DistanceKm(blr, airport), DistanceKm(airport, blr), 0.0001)
}

func TestNominatimClient_GeocodePincode(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "560001, India", r.URL.Query().Get("q"))
		assert.Equal(t, "json", r.URL.Query().Get("format"))
		assert.NotEmpty(t, r.Header.Get("User-Agent"))
		w.Write([]byte(`[{"lat":"12.98","lon":"77.60"}]`))
	}))
	defer srv.Close()

	c := NewNominatim(srv.URL)
	p, err := c.GeocodePincode(context.Background(), "560001")
	require.NoError(t, err)
	assert.InDelta(t, 12.98, p.Lat, 0.001)
	assert.InDelta(t, 77.60, p.Lng, 0.001)
}

func TestNominatimClient_NoResults(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`[]`))
	}))
	defer srv.Close()

	c := &NominatimClient{BaseURL: srv.URL, UserAgent: "test", HTTP: &http.Client{Timeout: time.Second}}
	_, err := c.GeocodePincode(context.Background(), "000000")
	assert.ErrorIs(t, err, ErrNotFound)
}
