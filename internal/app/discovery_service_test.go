package app

import (
	"context"
	"testing"

	"nearbyconnect/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeGeocoder struct {
	resolveFn func(ctx context.Context, text string) (domain.GeoPoint, domain.BoundingBox, error)
	suggestFn func(ctx context.Context, text string, limit int) ([]string, error)
}

func (f *fakeGeocoder) Resolve(ctx context.Context, text string) (domain.GeoPoint, domain.BoundingBox, error) {
	if f.resolveFn != nil {
		return f.resolveFn(ctx, text)
	}
	return domain.GeoPoint{Lat: 12.89, Lon: 74.99},
		domain.BoundingBox{MinLat: 12.8, MaxLat: 13.0, MinLon: 74.9, MaxLon: 75.1}, nil
}

func (f *fakeGeocoder) Suggest(ctx context.Context, text string, limit int) ([]string, error) {
	if f.suggestFn != nil {
		return f.suggestFn(ctx, text, limit)
	}
	return []string{text + " City"}, nil
}

type fakePOIProvider struct {
	searchFn func(ctx context.Context, category string, box domain.BoundingBox, limit int) ([]domain.RawPlace, error)
}

func (f *fakePOIProvider) Search(ctx context.Context, category string, box domain.BoundingBox, limit int) ([]domain.RawPlace, error) {
	if f.searchFn != nil {
		return f.searchFn(ctx, category, box, limit)
	}
	return nil, nil
}

func TestRun_HappyPath(t *testing.T) {
	pois := &fakePOIProvider{
		searchFn: func(ctx context.Context, category string, box domain.BoundingBox, limit int) ([]domain.RawPlace, error) {
			assert.Equal(t, "hospital", category)
			assert.Equal(t, MaxResults, limit)
			return []domain.RawPlace{
				{ID: "osm-1", Name: "Low", Location: domain.GeoPoint{Lat: 12.9, Lon: 74.99}},  // rating 3.7
				{ID: "12345", Name: "High", Location: domain.GeoPoint{Lat: 12.9, Lon: 74.99}}, // rating 4.5
			}, nil
		},
	}

	svc := NewDiscoveryService(&fakeGeocoder{}, pois, NewRanker(testAnchor))
	res, err := svc.Run(context.Background(), "client-a", Query{City: "Udupi", Category: "hospital", Sort: SortByRating})
	require.NoError(t, err)

	assert.Equal(t, "Hospitals in Udupi", res.Label)
	assert.Equal(t, domain.GeoPoint{Lat: 12.89, Lon: 74.99}, res.Center)
	require.Len(t, res.Places, 2)
	assert.Equal(t, "High", res.Places[0].Name)
	assert.Equal(t, "Low", res.Places[1].Name)
}

func TestRun_Validation(t *testing.T) {
	svc := NewDiscoveryService(&fakeGeocoder{}, &fakePOIProvider{}, NewRanker(testAnchor))

	_, err := svc.Run(context.Background(), "client-a", Query{City: "", Category: "hospital"})
	assert.ErrorIs(t, err, ErrValidation)

	_, err = svc.Run(context.Background(), "client-a", Query{City: "Udupi", Category: "  "})
	assert.ErrorIs(t, err, ErrValidation)
}

func TestRun_LocationNotFoundAbortsBeforePOI(t *testing.T) {
	poiCalled := false
	geo := &fakeGeocoder{
		resolveFn: func(ctx context.Context, text string) (domain.GeoPoint, domain.BoundingBox, error) {
			return domain.GeoPoint{}, domain.BoundingBox{}, domain.ErrLocationNotFound
		},
	}
	pois := &fakePOIProvider{
		searchFn: func(ctx context.Context, category string, box domain.BoundingBox, limit int) ([]domain.RawPlace, error) {
			poiCalled = true
			return nil, nil
		},
	}

	svc := NewDiscoveryService(geo, pois, NewRanker(testAnchor))
	_, err := svc.Run(context.Background(), "client-a", Query{City: "Nowhereville", Category: "bank"})

	assert.ErrorIs(t, err, domain.ErrLocationNotFound)
	assert.False(t, poiCalled, "a failed geocode must abort the pipeline")
}

func TestRun_UpstreamFailurePropagates(t *testing.T) {
	pois := &fakePOIProvider{
		searchFn: func(ctx context.Context, category string, box domain.BoundingBox, limit int) ([]domain.RawPlace, error) {
			return nil, domain.ErrUpstreamUnavailable
		},
	}

	svc := NewDiscoveryService(&fakeGeocoder{}, pois, NewRanker(testAnchor))
	_, err := svc.Run(context.Background(), "client-a", Query{City: "Udupi", Category: "bank"})
	assert.ErrorIs(t, err, domain.ErrUpstreamUnavailable)
}

func TestRun_SupersededByNewerRun(t *testing.T) {
	entered := make(chan struct{})
	release := make(chan struct{})
	firstCall := true

	pois := &fakePOIProvider{
		searchFn: func(ctx context.Context, category string, box domain.BoundingBox, limit int) ([]domain.RawPlace, error) {
			if firstCall {
				firstCall = false
				close(entered)
				<-release // hold the first run's network call open
			}
			return []domain.RawPlace{{ID: category, Name: category, Location: testAnchor}}, nil
		},
	}

	svc := NewDiscoveryService(&fakeGeocoder{}, pois, NewRanker(testAnchor))

	type outcome struct {
		res *ResultSet
		err error
	}
	first := make(chan outcome, 1)
	go func() {
		res, err := svc.Run(context.Background(), "client-a", Query{City: "Udupi", Category: "hospital"})
		first <- outcome{res, err}
	}()

	<-entered
	second, err := svc.Run(context.Background(), "client-a", Query{City: "Udupi", Category: "bank"})
	require.NoError(t, err)
	require.Len(t, second.Places, 1)
	assert.Equal(t, "bank", second.Places[0].Name)

	close(release)
	got := <-first
	// The first run's response arrived after the second began: it must be
	// discarded, regardless of network arrival order.
	assert.Nil(t, got.res)
	assert.ErrorIs(t, got.err, ErrSuperseded)
}

func TestRun_ClientsRunIndependently(t *testing.T) {
	entered := make(chan struct{})
	release := make(chan struct{})
	firstCall := true

	pois := &fakePOIProvider{
		searchFn: func(ctx context.Context, category string, box domain.BoundingBox, limit int) ([]domain.RawPlace, error) {
			if firstCall {
				firstCall = false
				close(entered)
				<-release
			}
			return []domain.RawPlace{{ID: category, Name: category, Location: testAnchor}}, nil
		},
	}

	svc := NewDiscoveryService(&fakeGeocoder{}, pois, NewRanker(testAnchor))

	type outcome struct {
		res *ResultSet
		err error
	}
	slow := make(chan outcome, 1)
	go func() {
		res, err := svc.Run(context.Background(), "client-a", Query{City: "Udupi", Category: "hospital"})
		slow <- outcome{res, err}
	}()

	// A different client searches while the first run is still in flight.
	<-entered
	second, err := svc.Run(context.Background(), "client-b", Query{City: "Udupi", Category: "bank"})
	require.NoError(t, err)
	require.Len(t, second.Places, 1)

	close(release)
	got := <-slow
	require.NoError(t, got.err, "another client's search must not discard this one")
	require.NotNil(t, got.res)
	require.Len(t, got.res.Places, 1)
	assert.Equal(t, "hospital", got.res.Places[0].Name)
}

func TestRun_SequentialRunsSucceed(t *testing.T) {
	svc := NewDiscoveryService(&fakeGeocoder{}, &fakePOIProvider{}, NewRanker(testAnchor))

	for i := 0; i < 3; i++ {
		_, err := svc.Run(context.Background(), "client-a", Query{City: "Udupi", Category: "park"})
		require.NoError(t, err)
	}
}
