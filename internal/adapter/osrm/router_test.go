package osrm

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/urbancabz/booking-system/internal/domain/models"
	"github.com/urbancabz/booking-system/internal/domain/types"
)

func TestFetchRoute(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{
			"code": "Ok",
			"routes": [{
				"distance": 1421340.2,
				"duration": 67320.0,
				"geometry": {
					"type": "LineString",
					"coordinates": [[77.209, 28.6139], [75.7873, 26.9124], [72.8777, 19.076]]
				}
			}]
		}`))
	}))
	defer srv.Close()

	client := New(srv.URL)
	metrics, err := client.FetchRoute(context.Background(),
		models.Location{Lat: 28.6139, Lng: 77.209},
		models.Location{Lat: 19.076, Lng: 72.8777},
	)
	if err != nil {
		t.Fatalf("FetchRoute: %v", err)
	}

	if metrics.DistanceKm != 1421.3 {
		t.Errorf("distance = %v, want 1421.3", metrics.DistanceKm)
	}
	if metrics.DurationMin != 1122 {
		t.Errorf("duration = %d, want 1122", metrics.DurationMin)
	}
	if metrics.IsEstimate {
		t.Error("routed metrics marked as estimate")
	}

	// Geometry pairs come back lon,lat and must be flipped.
	if len(metrics.Coordinates) != 3 {
		t.Fatalf("coordinates = %d points, want 3", len(metrics.Coordinates))
	}
	first := metrics.Coordinates[0]
	if first[0] != 28.6139 || first[1] != 77.209 {
		t.Errorf("first point = %v, want [28.6139 77.209]", first)
	}
}

func TestFetchRoute_NoRoute(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"code": "NoRoute", "routes": []}`))
	}))
	defer srv.Close()

	client := New(srv.URL)
	_, err := client.FetchRoute(context.Background(),
		models.Location{Lat: 28.6139, Lng: 77.209},
		models.Location{Lat: 19.076, Lng: 72.8777},
	)
	if !errors.Is(err, types.ErrRouteNotFound) {
		t.Errorf("err = %v, want ErrRouteNotFound", err)
	}
}
