package domain

import (
	"context"
	"math"
)

// GeoPoint is a WGS-84 coordinate in degrees.
type GeoPoint struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

// BoundingBox is a rectangular lat/lon region constraining a POI query. It
// is derived from geocoding a place name.
type BoundingBox struct {
	MinLat float64
	MinLon float64
	MaxLat float64
	MaxLon float64
}

// Center returns the midpoint of the box.
func (b BoundingBox) Center() GeoPoint {
	return GeoPoint{
		Lat: (b.MinLat + b.MaxLat) / 2,
		Lon: (b.MinLon + b.MaxLon) / 2,
	}
}

// RawPlace is an unprocessed point-of-interest record as returned by the
// POI index. Any field except the location may be empty.
type RawPlace struct {
	ID       string
	Name     string
	Type     string
	Locality string
	District string
	Location GeoPoint
}

// Place is a normalized, ranked point of interest. Place batches are
// ephemeral: built fresh per search, unique by ID within the batch, and
// discarded when a newer search supersedes them.
type Place struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Address     string   `json:"address"`
	Type        string   `json:"type"`
	Description string   `json:"description"`
	Location    GeoPoint `json:"location"`
	DistanceKm  float64  `json:"distanceKm"`
	Rating      float64  `json:"rating"`
}

// Geocoder defines the port for the text-to-location service.
type Geocoder interface {
	// Resolve returns the coordinate and bounding box of the top-ranked
	// candidate for the given free text, or ErrLocationNotFound.
	Resolve(ctx context.Context, text string) (GeoPoint, BoundingBox, error)
	// Suggest returns up to limit candidate place names for partial text.
	Suggest(ctx context.Context, text string, limit int) ([]string, error)
}

// POIProvider defines the port for the point-of-interest index.
type POIProvider interface {
	Search(ctx context.Context, category string, box BoundingBox, limit int) ([]RawPlace, error)
}

const earthRadiusKm = 6371

// DistanceKm returns the great-circle distance between two points using the
// haversine formula, rounded to one decimal place.
func DistanceKm(a, b GeoPoint) float64 {
	dLat := (b.Lat - a.Lat) * math.Pi / 180
	dLon := (b.Lon - a.Lon) * math.Pi / 180
	h := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(a.Lat*math.Pi/180)*math.Cos(b.Lat*math.Pi/180)*
			math.Sin(dLon/2)*math.Sin(dLon/2)
	c := 2 * math.Atan2(math.Sqrt(h), math.Sqrt(1-h))
	return math.Round(earthRadiusKm*c*10) / 10
}
