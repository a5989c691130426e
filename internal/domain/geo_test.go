package domain

import (
	"math"
	"testing"
)

// The anchor every distance in the system is measured from.
var anchor = GeoPoint{Lat: 12.8916, Lon: 74.9872}

func TestDistanceKm_ZeroAtSamePoint(t *testing.T) {
	if got := DistanceKm(anchor, anchor); got != 0.0 {
		t.Fatalf("expected 0.0, got %v", got)
	}
}

func TestDistanceKm_Symmetric(t *testing.T) {
	b := GeoPoint{Lat: 12.9716, Lon: 77.5946} // Bangalore
	if d1, d2 := DistanceKm(anchor, b), DistanceKm(b, anchor); d1 != d2 {
		t.Fatalf("distance not symmetric: %v vs %v", d1, d2)
	}
}

func TestDistanceKm_KnownValue(t *testing.T) {
	// Mangalore city centre is roughly 17 km from the anchor.
	b := GeoPoint{Lat: 12.9141, Lon: 74.8560}
	got := DistanceKm(anchor, b)
	if got < 13 || got > 16 {
		t.Fatalf("distance out of expected range: %v", got)
	}
	// rounded to one decimal
	if got != math.Round(got*10)/10 {
		t.Fatalf("distance not rounded to one decimal: %v", got)
	}
}

func TestBoundingBox_Center(t *testing.T) {
	b := BoundingBox{MinLat: 10, MaxLat: 12, MinLon: 70, MaxLon: 76}
	c := b.Center()
	if c.Lat != 11 || c.Lon != 73 {
		t.Fatalf("unexpected center: %+v", c)
	}
}
