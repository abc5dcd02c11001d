package nominatim

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/urbancabz/booking-system/internal/domain/models"
	"github.com/urbancabz/booking-system/internal/domain/types"
	wrap "github.com/urbancabz/booking-system/pkg/logger/wrapper"
)

const (
	defaultEndpoint = "https://nominatim.openstreetmap.org"

	// Nominatim usage policy requires an identifying User-Agent.
	userAgent = "UrbanCabz/1.0"

	// Search bias, the storefront serves Indian routes only.
	countryCodes = "in"
)

// Client geocodes free-text addresses via the Nominatim search API.
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

type searchResult struct {
	Lat         string `json:"lat"`
	Lon         string `json:"lon"`
	DisplayName string `json:"display_name"`
}

// Search resolves an address to coordinates. Returns
// types.ErrLocationNotFound when Nominatim has zero results.
func (c *Client) Search(ctx context.Context, address string) (models.Location, error) {
	const op = "nominatim.Search"

	q := url.Values{}
	q.Set("q", address)
	q.Set("format", "json")
	q.Set("limit", "1")
	q.Set("countrycodes", countryCodes)

	reqURL := fmt.Sprintf("%s/search?%s", c.endpoint, q.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return models.Location{}, wrap.Error(ctx, fmt.Errorf("%s: %w", op, err))
	}
	req.Header.Set("User-Agent", userAgent)

	resp, err := c.client.Do(req)
	if err != nil {
		ctx = wrap.WithAction(ctx, types.ActionExternalServiceFailed)
		return models.Location{}, wrap.Error(ctx, fmt.Errorf("%s: request failed: %w", op, err))
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		ctx = wrap.WithAction(ctx, types.ActionExternalServiceFailed)
		return models.Location{}, wrap.Error(ctx, fmt.Errorf("%s: unexpected response status %d", op, resp.StatusCode))
	}

	var results []searchResult
	if err := json.NewDecoder(resp.Body).Decode(&results); err != nil {
		return models.Location{}, wrap.Error(ctx, fmt.Errorf("%s: failed to decode response: %w", op, err))
	}

	if len(results) == 0 {
		return models.Location{}, wrap.Error(ctx, types.ErrLocationNotFound)
	}

	lat, err := strconv.ParseFloat(results[0].Lat, 64)
	if err != nil {
		return models.Location{}, wrap.Error(ctx, fmt.Errorf("%s: failed to parse latitude: %w", op, err))
	}
	lng, err := strconv.ParseFloat(results[0].Lon, 64)
	if err != nil {
		return models.Location{}, wrap.Error(ctx, fmt.Errorf("%s: failed to parse longitude: %w", op, err))
	}

	return models.Location{
		Lat:              lat,
		Lng:              lng,
		FormattedAddress: results[0].DisplayName,
	}, nil
}
