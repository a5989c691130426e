package app

import (
	"context"
	"strings"
	"unicode/utf8"

	"nearbyconnect/internal/domain"
)

const (
	// suggestMinChars is the minimum input length before the geocoder is
	// consulted at all.
	suggestMinChars = 4
	// suggestLimit bounds the number of returned candidates.
	suggestLimit = 5
)

// Suggester serves autocomplete lookups against the geocoder. Debouncing of
// keystrokes is the caller's job; the suggester enforces last-query-wins per
// client: only the most recently issued call under a client key may deliver
// results, and a call that is superseded while its geocoder request is in
// flight gets ErrSuperseded instead. Clients never supersede each other.
type Suggester struct {
	geo domain.Geocoder
	seq sequencer
}

// NewSuggester creates a Suggester over the given geocoder.
func NewSuggester(geo domain.Geocoder) *Suggester {
	return &Suggester{geo: geo}
}

// Suggest returns candidate place names for the client's partial input.
// Input shorter than the minimum returns an empty result without touching
// the geocoder.
func (s *Suggester) Suggest(ctx context.Context, client, partial string) ([]string, error) {
	partial = strings.TrimSpace(partial)
	if utf8.RuneCountInString(partial) < suggestMinChars {
		return nil, nil
	}

	ctr, token := s.seq.begin(client)

	names, err := s.geo.Suggest(ctx, partial, suggestLimit)
	if err != nil {
		return nil, err
	}
	if ctr.Load() != token {
		return nil, ErrSuperseded
	}
	return names, nil
}
