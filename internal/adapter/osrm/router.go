package osrm

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"net/http"
	"time"

	"github.com/urbancabz/booking-system/internal/domain/models"
	"github.com/urbancabz/booking-system/internal/domain/types"
	wrap "github.com/urbancabz/booking-system/pkg/logger/wrapper"
)

const defaultEndpoint = "https://router.project-osrm.org"

// Client fetches driving routes from an OSRM HTTP server.
type Client struct {
	endpoint string
	client   *http.Client
}

func New(endpoint string) *Client {
	if endpoint == "" {
		endpoint = defaultEndpoint
	}
	return &Client{
		endpoint: endpoint,
		client:   &http.Client{Timeout: 10 * time.Second},
	}
}

type routeResponse struct {
	Code   string `json:"code"`
	Routes []struct {
		Distance float64 `json:"distance"` // meters
		Duration float64 `json:"duration"` // seconds
		Geometry struct {
			Coordinates [][]float64 `json:"coordinates"` // lon,lat pairs
		} `json:"geometry"`
	} `json:"routes"`
}

// FetchRoute returns the driving distance and duration between two points.
// Returns types.ErrRouteNotFound when OSRM reports no route.
func (c *Client) FetchRoute(ctx context.Context, from, to models.Location) (models.RouteMetrics, error) {
	const op = "osrm.FetchRoute"

	// OSRM expects lon,lat coordinate order.
	reqURL := fmt.Sprintf("%s/route/v1/driving/%f,%f;%f,%f?overview=full&geometries=geojson",
		c.endpoint, from.Lng, from.Lat, to.Lng, to.Lat)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return models.RouteMetrics{}, wrap.Error(ctx, fmt.Errorf("%s: %w", op, err))
	}

	resp, err := c.client.Do(req)
	if err != nil {
		ctx = wrap.WithAction(ctx, types.ActionExternalServiceFailed)
		return models.RouteMetrics{}, wrap.Error(ctx, fmt.Errorf("%s: request failed: %w", op, err))
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		ctx = wrap.WithAction(ctx, types.ActionExternalServiceFailed)
		return models.RouteMetrics{}, wrap.Error(ctx, fmt.Errorf("%s: unexpected response status %d", op, resp.StatusCode))
	}

	var payload routeResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return models.RouteMetrics{}, wrap.Error(ctx, fmt.Errorf("%s: failed to decode response: %w", op, err))
	}

	if payload.Code != "Ok" || len(payload.Routes) == 0 {
		return models.RouteMetrics{}, wrap.Error(ctx, fmt.Errorf("%w: osrm code %q", types.ErrRouteNotFound, payload.Code))
	}

	route := payload.Routes[0]

	// Flip geojson lon,lat pairs to lat,lng for map rendering.
	coords := make([][]float64, 0, len(route.Geometry.Coordinates))
	for _, pair := range route.Geometry.Coordinates {
		if len(pair) < 2 {
			continue
		}
		coords = append(coords, []float64{pair[1], pair[0]})
	}

	return models.RouteMetrics{
		DistanceKm:  models.RoundKm(route.Distance / 1000),
		DurationMin: int(math.Round(route.Duration / 60)),
		Coordinates: coords,
	}, nil
}
