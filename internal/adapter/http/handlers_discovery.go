package adapthttp

import (
	"errors"
	"net/http"

	"nearbyconnect/internal/app"
	"nearbyconnect/internal/domain"
)

func (s *Server) handleSuggest(w http.ResponseWriter, r *http.Request) {
	client, _ := SubjectFromContext(r.Context())
	names, err := s.suggester.Suggest(r.Context(), client, r.URL.Query().Get("q"))
	switch {
	case errors.Is(err, app.ErrSuperseded):
		// A newer request won; this result must never reach the client.
		w.WriteHeader(http.StatusNoContent)
	case errors.Is(err, domain.ErrUpstreamUnavailable):
		writeJSON(w, http.StatusBadGateway, map[string]string{"error": "Suggestions unavailable"})
	case err != nil:
		s.logger.Error().Err(err).Msg("suggest failed")
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "Internal error"})
	default:
		if names == nil {
			names = []string{}
		}
		writeJSON(w, http.StatusOK, map[string]any{"suggestions": names})
	}
}

func (s *Server) handleSearch(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	query := app.Query{
		City:     q.Get("city"),
		Category: q.Get("category"),
		Sort:     app.SortKey(q.Get("sort")),
	}

	client, _ := SubjectFromContext(r.Context())
	res, err := s.discovery.Run(r.Context(), client, query)
	switch {
	case errors.Is(err, app.ErrValidation):
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "City and category required"})
	case errors.Is(err, domain.ErrLocationNotFound):
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "Location not found"})
	case errors.Is(err, app.ErrSuperseded):
		w.WriteHeader(http.StatusNoContent)
	case errors.Is(err, domain.ErrUpstreamUnavailable):
		writeJSON(w, http.StatusBadGateway, map[string]string{"error": "Search temporarily unavailable"})
	case err != nil:
		s.logger.Error().Err(err).Msg("search failed")
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "Internal error"})
	default:
		writeJSON(w, http.StatusOK, res)
	}
}
