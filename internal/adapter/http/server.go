// Package adapthttp implements the HTTP adapter for the application.
package adapthttp

import (
	"net/http"

	"nearbyconnect/internal/app"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"
)

// Server is the driving HTTP adapter that routes requests to application
// services.
type Server struct {
	creds     *app.CredentialService
	gate      *app.SessionGate
	discovery *app.DiscoveryService
	suggester *app.Suggester
	logger    zerolog.Logger
	webDir    string
}

// New creates a Server wired to the given application services.
func New(creds *app.CredentialService, gate *app.SessionGate, discovery *app.DiscoveryService,
	suggester *app.Suggester, logger zerolog.Logger, webDir string) *Server {
	return &Server{
		creds:     creds,
		gate:      gate,
		discovery: discovery,
		suggester: suggester,
		logger:    logger,
		webDir:    webDir,
	}
}

// Handler returns the root http.Handler for the application. Discovery
// routes sit behind the session middleware; a request must verify before
// any discovery action is allowed.
func (s *Server) Handler() http.Handler {
	r := mux.NewRouter()
	r.Use(s.loggingMiddleware, metricsMiddleware)

	api := r.PathPrefix("/api").Subrouter()
	api.HandleFunc("/register", s.handleRegister).Methods(http.MethodPost)
	api.HandleFunc("/login", s.handleLogin).Methods(http.MethodPost)
	api.HandleFunc("/verify", s.handleVerify).Methods(http.MethodGet)
	api.HandleFunc("/logout", s.handleLogout).Methods(http.MethodPost)

	discovery := r.PathPrefix("/api").Subrouter()
	discovery.Use(s.requireSession)
	discovery.HandleFunc("/suggest", s.handleSuggest).Methods(http.MethodGet)
	discovery.HandleFunc("/search", s.handleSearch).Methods(http.MethodGet)

	r.HandleFunc("/health", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, map[string]any{"ok": true})
	}).Methods(http.MethodGet)
	r.Handle("/metrics", promhttp.Handler()).Methods(http.MethodGet)

	if s.webDir != "" {
		r.PathPrefix("/").Handler(spaFromDisk(s.webDir))
	}

	return withNoCache(r)
}
