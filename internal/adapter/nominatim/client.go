// Package nominatim implements the geocoding adapter over the Nominatim
// search API.
package nominatim

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"nearbyconnect/internal/domain"

	"golang.org/x/time/rate"
)

// Client is an HTTP client for a Nominatim instance.
type Client struct {
	baseURL string
	http    *http.Client
	limiter *rate.Limiter
}

// New creates a client for the given base URL. Outbound calls are limited
// to one per second per the Nominatim usage policy.
func New(baseURL string) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: 10 * time.Second},
		limiter: rate.NewLimiter(rate.Limit(1), 1),
	}
}

var _ domain.Geocoder = (*Client)(nil)

// searchResult mirrors one Nominatim /search candidate. Coordinates and the
// bounding box come back as strings.
type searchResult struct {
	Lat         string   `json:"lat"`
	Lon         string   `json:"lon"`
	DisplayName string   `json:"display_name"`
	BoundingBox []string `json:"boundingbox"` // minLat, maxLat, minLon, maxLon
}

func (c *Client) search(ctx context.Context, text string, limit int) ([]searchResult, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	q := url.Values{}
	q.Set("format", "json")
	q.Set("q", text)
	if limit > 0 {
		q.Set("limit", strconv.Itoa(limit))
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/search?"+q.Encode(), nil)
	if err != nil {
		return nil, err
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrUpstreamUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: geocoder returned %d", domain.ErrUpstreamUnavailable, resp.StatusCode)
	}

	var results []searchResult
	if err := json.NewDecoder(resp.Body).Decode(&results); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrUpstreamUnavailable, err)
	}
	return results, nil
}

// Resolve returns the coordinate and bounding box of the top-ranked
// candidate. Ambiguous multi-match input resolves to the first candidate by
// policy, not by error.
func (c *Client) Resolve(ctx context.Context, text string) (domain.GeoPoint, domain.BoundingBox, error) {
	results, err := c.search(ctx, text, 0)
	if err != nil {
		return domain.GeoPoint{}, domain.BoundingBox{}, err
	}
	if len(results) == 0 {
		return domain.GeoPoint{}, domain.BoundingBox{}, domain.ErrLocationNotFound
	}

	top := results[0]
	lat, latErr := strconv.ParseFloat(top.Lat, 64)
	lon, lonErr := strconv.ParseFloat(top.Lon, 64)
	if latErr != nil || lonErr != nil {
		return domain.GeoPoint{}, domain.BoundingBox{},
			fmt.Errorf("%w: unparsable coordinates %q,%q", domain.ErrUpstreamUnavailable, top.Lat, top.Lon)
	}

	box, err := parseBoundingBox(top.BoundingBox)
	if err != nil {
		return domain.GeoPoint{}, domain.BoundingBox{},
			fmt.Errorf("%w: %v", domain.ErrUpstreamUnavailable, err)
	}
	return domain.GeoPoint{Lat: lat, Lon: lon}, box, nil
}

// Suggest returns up to limit candidate display names for partial text.
func (c *Client) Suggest(ctx context.Context, text string, limit int) ([]string, error) {
	results, err := c.search(ctx, text, limit)
	if err != nil {
		return nil, err
	}
	names := make([]string, 0, len(results))
	for _, r := range results {
		names = append(names, r.DisplayName)
	}
	return names, nil
}

func parseBoundingBox(raw []string) (domain.BoundingBox, error) {
	if len(raw) != 4 {
		return domain.BoundingBox{}, fmt.Errorf("bounding box has %d elements", len(raw))
	}
	vals := make([]float64, 4)
	for i, s := range raw {
		v, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return domain.BoundingBox{}, fmt.Errorf("unparsable bounding box value %q", s)
		}
		vals[i] = v
	}
	return domain.BoundingBox{MinLat: vals[0], MaxLat: vals[1], MinLon: vals[2], MaxLon: vals[3]}, nil
}
