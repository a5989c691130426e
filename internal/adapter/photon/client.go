// Package photon implements the point-of-interest adapter over the Photon
// geocoding API.
package photon

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
)

// Client is an HTTP client for a Photon instance.
type Client struct {
	baseURL string
	http    *http.Client
}

// New creates a client for the given base URL.
func New(baseURL string) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: 10 * time.Second},
	}
}

var _ domain.POIProvider = (*Client)(nil)

// featureCollection mirrors the GeoJSON subset Photon returns.
type featureCollection struct {
	Features []struct {
		Geometry struct {
			Coordinates []float64 `json:"coordinates"` // lon, lat
		} `json:"geometry"`
		Properties struct {
			OSMID    json.Number `json:"osm_id"`
			Name     string      `json:"name"`
			Type     string      `json:"type"`
			City     string      `json:"city"`
			District string      `json:"district"`
		} `json:"properties"`
	} `json:"features"`
}

// Search returns raw POI records for the category inside the box. Records
// without a usable display name are dropped, and the result is capped at
// limit regardless of upstream volume.
func (c *Client) Search(ctx context.Context, category string, box domain.BoundingBox, limit int) ([]domain.RawPlace, error) {
	center := box.Center()

	q := url.Values{}
	q.Set("q", category)
	q.Set("lat", strconv.FormatFloat(center.Lat, 'f', -1, 64))
	q.Set("lon", strconv.FormatFloat(center.Lon, 'f', -1, 64))
	q.Set("limit", strconv.Itoa(limit))
	// Photon expects minLon,minLat,maxLon,maxLat.
	q.Set("bbox", fmt.Sprintf("%v,%v,%v,%v", box.MinLon, box.MinLat, box.MaxLon, box.MaxLat))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/api/?"+q.Encode(), nil)
	if err != nil {
		return nil, err
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrUpstreamUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: poi index returned %d", domain.ErrUpstreamUnavailable, resp.StatusCode)
	}

	var fc featureCollection
	if err := json.NewDecoder(resp.Body).Decode(&fc); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrUpstreamUnavailable, err)
	}

	out := make([]domain.RawPlace, 0, len(fc.Features))
	for _, f := range fc.Features {
		if f.Properties.Name == "" || len(f.Geometry.Coordinates) < 2 {
			continue
		}
		out = append(out, domain.RawPlace{
			ID:       f.Properties.OSMID.String(),
			Name:     f.Properties.Name,
			Type:     f.Properties.Type,
			Locality: f.Properties.City,
			District: f.Properties.District,
			Location: domain.GeoPoint{
				Lat: f.Geometry.Coordinates[1],
				Lon: f.Geometry.Coordinates[0],
			},
		})
		if len(out) >= limit {
			break
		}
	}
	return out, nil
}
