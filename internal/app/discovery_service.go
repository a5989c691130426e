package app

import (
	"context"
	"strings"

	"nearbyconnect/internal/domain"
)

// MaxResults caps a search batch regardless of upstream volume.
const MaxResults = 50

// Query describes one search invocation. Queries are ephemeral; a new query
// from the same client supersedes the previous one.
type Query struct {
	City     string
	Category string
	Sort     SortKey
}

// ResultSet is the outcome of one pipeline run.
type ResultSet struct {
	Label  string          `json:"status"`
	Center domain.GeoPoint `json:"center"`
	Places []domain.Place  `json:"places"`
}

// DiscoveryService orchestrates geocoding, POI lookup and ranking. A Run
// supersedes any prior in-flight Run from the same client: every invocation
// takes a monotonically increasing sequence number under its client key, and
// an invocation that is no longer the latest when a stage completes returns
// ErrSuperseded so its results are dropped, never merged or raced into the
// caller's view. Runs from different clients proceed independently.
type DiscoveryService struct {
	geo    domain.Geocoder
	pois   domain.POIProvider
	ranker *Ranker
	seq    sequencer
}

// NewDiscoveryService creates a pipeline over the given adapters.
func NewDiscoveryService(geo domain.Geocoder, pois domain.POIProvider, ranker *Ranker) *DiscoveryService {
	return &DiscoveryService{geo: geo, pois: pois, ranker: ranker}
}

// Run executes one search for the given client: resolve the city, query
// POIs inside the resulting box, normalize and sort. On
// domain.ErrLocationNotFound the search aborts without producing a batch,
// leaving whatever the caller currently displays untouched.
func (s *DiscoveryService) Run(ctx context.Context, client string, q Query) (*ResultSet, error) {
	if strings.TrimSpace(q.City) == "" || strings.TrimSpace(q.Category) == "" {
		return nil, ErrValidation
	}

	ctr, token := s.seq.begin(client)

	center, box, err := s.geo.Resolve(ctx, q.City)
	if err != nil {
		return nil, err
	}
	if ctr.Load() != token {
		return nil, ErrSuperseded
	}

	raws, err := s.pois.Search(ctx, q.Category, box, MaxResults)
	if err != nil {
		return nil, err
	}
	if ctr.Load() != token {
		return nil, ErrSuperseded
	}

	places := make([]domain.Place, 0, len(raws))
	for _, raw := range raws {
		places = append(places, s.ranker.Normalize(raw, q.Category, q.City))
	}
	s.ranker.Sort(places, q.Sort)

	return &ResultSet{
		Label:  Label(q.Category, q.City),
		Center: center,
		Places: places,
	}, nil
}
