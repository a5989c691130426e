package app

import (
	"fmt"
	"math"
	"sort"
	"strings"
	"unicode"

	"nearbyconnect/internal/domain"

	"github.com/google/uuid"
	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// SortKey selects the ordering of a result batch.
type SortKey string

const (
	SortByRating   SortKey = "rating"
	SortByDistance SortKey = "distance"
	SortByName     SortKey = "name"
)

// Ranker normalizes raw POI records into ranked places. All distances are
// measured from the fixed anchor coordinate.
type Ranker struct {
	anchor domain.GeoPoint
}

// NewRanker creates a Ranker anchored at the given coordinate.
func NewRanker(anchor domain.GeoPoint) *Ranker {
	return &Ranker{anchor: anchor}
}

// Rating derives a deterministic rating in [3.7, 5.0] from a place id: the
// sum of the id's Unicode code points mod 13, scaled to one decimal above
// 3.7. Same id, same rating, on every query and every implementation. Not a
// real score and not cryptographic; the system has no rating provider, so
// this stands in for one.
func Rating(id string) float64 {
	var seed int
	for _, r := range id {
		seed += int(r)
	}
	return math.Round((3.7+float64(seed%13)/10)*10) / 10
}

// Normalize turns a raw record into a Place: id falls back to a locally
// generated one, address to district then to the searched city, type to the
// category. Distance and rating are synthesized here. The rating is seeded
// from the upstream id, or from the name when the record has none, so a
// place keeps the same rating across repeated queries either way.
func (rk *Ranker) Normalize(raw domain.RawPlace, category, city string) domain.Place {
	id := raw.ID
	ratingSeed := raw.ID
	if id == "" {
		id = uuid.NewString()
		ratingSeed = raw.Name
	}
	address := raw.Locality
	if address == "" {
		address = raw.District
	}
	if address == "" {
		address = city
	}
	placeType := raw.Type
	if placeType == "" {
		placeType = category
	}
	return domain.Place{
		ID:          id,
		Name:        raw.Name,
		Address:     address,
		Type:        placeType,
		Description: fmt.Sprintf("%s is a verified %s located in %s.", raw.Name, category, city),
		Location:    raw.Location,
		DistanceKm:  domain.DistanceKm(rk.anchor, raw.Location),
		Rating:      Rating(ratingSeed),
	}
}

// Sort orders places in place: rating descending, distance ascending, or
// name ascending under locale-aware collation. The sort is stable, so ties
// keep their prior relative order, and it can be reapplied when the key
// changes without re-querying. Batches are unique by id by construction; no
// cross-batch dedupe happens here.
func (rk *Ranker) Sort(places []domain.Place, key SortKey) {
	switch key {
	case SortByDistance:
		sort.SliceStable(places, func(i, j int) bool {
			return places[i].DistanceKm < places[j].DistanceKm
		})
	case SortByName:
		// Collators carry internal buffers, so build one per call rather
		// than sharing across requests.
		coll := collate.New(language.English)
		sort.SliceStable(places, func(i, j int) bool {
			return coll.CompareString(places[i].Name, places[j].Name) < 0
		})
	default:
		sort.SliceStable(places, func(i, j int) bool {
			return places[i].Rating > places[j].Rating
		})
	}
}

// Label builds the human-readable batch status, e.g. "Hospitals in Udupi".
func Label(category, city string) string {
	category = strings.TrimSpace(category)
	if category == "" {
		return city
	}
	runes := []rune(category)
	runes[0] = unicode.ToUpper(runes[0])
	return fmt.Sprintf("%ss in %s", string(runes), city)
}
