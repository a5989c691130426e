package main

import (
	"errors"
	"net/http"
	"os"
	"strconv"

	adapthttp "nearbyconnect/internal/adapter/http"
	"nearbyconnect/internal/adapter/memory"
	"nearbyconnect/internal/adapter/nominatim"
	"nearbyconnect/internal/adapter/photon"
	"nearbyconnect/internal/adapter/postgres"
	"nearbyconnect/internal/app"
	"nearbyconnect/internal/domain"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
)

func main() {
	_ = godotenv.Load()
	logger := zerolog.New(os.Stdout).With().Timestamp().Logger()

	addr := env("ADDR", ":8080")
	webDir := env("WEB_DIR", "web")

	secret := os.Getenv("SESSION_SECRET")
	if secret == "" {
		logger.Fatal().Msg("SESSION_SECRET is required")
	}

	// All distances are measured from this fixed coordinate.
	anchor := domain.GeoPoint{
		Lat: envFloat(logger, "ANCHOR_LAT", 12.8916),
		Lon: envFloat(logger, "ANCHOR_LON", 74.9872),
	}

	var accounts domain.AccountRepository
	if connStr := os.Getenv("DATABASE_URL"); connStr != "" {
		db, err := postgres.Open(connStr)
		if err != nil {
			logger.Fatal().Err(err).Msg("db open failed")
		}
		defer func() { _ = db.Close() }()
		accounts = db
	} else {
		logger.Warn().Msg("DATABASE_URL not set; accounts are held in memory")
		accounts = memory.New()
	}

	geo := nominatim.New(env("NOMINATIM_URL", "https://nominatim.openstreetmap.org"))
	pois := photon.New(env("PHOTON_URL", "https://photon.komoot.io"))
	ranker := app.NewRanker(anchor)

	srv := adapthttp.New(
		app.NewCredentialService(accounts),
		app.NewSessionGate([]byte(secret)),
		app.NewDiscoveryService(geo, pois, ranker),
		app.NewSuggester(geo),
		logger,
		webDir,
	)

	logger.Info().Str("addr", addr).Msg("listening")
	if err := http.ListenAndServe(addr, srv.Handler()); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.Fatal().Err(err).Msg("server exited")
	}
}

func env(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envFloat(logger zerolog.Logger, key string, fallback float64) float64 {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		logger.Fatal().Str("key", key).Str("value", v).Msg("invalid float env var")
	}
	return f
}
