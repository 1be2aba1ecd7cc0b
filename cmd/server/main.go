package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"

	_ "github.com/jackc/pgx/v5/stdlib"

	"travel-itinerary-service/internal/adapters/cache"
	"travel-itinerary-service/internal/adapters/generation"
	"travel-itinerary-service/internal/adapters/places"
	"travel-itinerary-service/internal/api"
	"travel-itinerary-service/internal/platform/db"
	"travel-itinerary-service/internal/ports"
	"travel-itinerary-service/internal/services"
)

// main is the application composition root.
// It wires concrete adapters (Gemini, Google Maps, cache backends)
// behind ports and starts the HTTP server.
func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found (using environment variables)")
	}

	port := getEnv("PORT", "8080")
	model := getEnv("GEMINI_MODEL", "gemini-2.0-flash")
	corsOrigins := splitList(getEnv("CORS_ORIGINS", "http://localhost:3000"))

	geminiKey := os.Getenv("GEMINI_API_KEY")
	if strings.TrimSpace(geminiKey) == "" {
		log.Fatal("GEMINI_API_KEY is required")
	}

	mapsKey := os.Getenv("MAPS_API_KEY")
	if strings.TrimSpace(mapsKey) == "" {
		log.Fatal("MAPS_API_KEY is required")
	}

	ctx := context.Background()

	generator, err := generation.NewGeminiGenerator(ctx, geminiKey, model)
	if err != nil {
		log.Fatal(err)
	}

	// Geocode lookups persist across restarts when a cache backend is
	// configured; plans themselves are never persisted.
	geocodeCache, cleanup, err := buildGeocodeCache(ctx)
	if err != nil {
		log.Fatal(err)
	}
	if cleanup != nil {
		defer cleanup()
	}

	mapsClient, err := places.NewGoogleMapsClient(mapsKey, geocodeCache)
	if err != nil {
		log.Fatal(err)
	}

	synth := services.NewSynthesizer(generator)
	router := api.NewRouter(synth, mapsClient, mapsClient, mapsClient, corsOrigins)

	// Timeouts are tuned for two chained generation-model calls per request.
	log.Printf("Server listening addr=:%s", port)
	srv := &http.Server{
		Addr:              ":" + port,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      180 * time.Second,
		IdleTimeout:       60 * time.Second,
	}
	log.Fatal(srv.ListenAndServe())
}

// buildGeocodeCache selects the persistent geocode cache backend: Redis
// when REDIS_ADDR is set, Postgres when DATABASE_URL is set, otherwise
// none (the in-process memo still applies).
func buildGeocodeCache(ctx context.Context) (ports.GeocodeCache, func(), error) {
	if addr := strings.TrimSpace(os.Getenv("REDIS_ADDR")); addr != "" {
		client := redis.NewClient(&redis.Options{Addr: addr})
		if err := client.Ping(ctx).Err(); err != nil {
			return nil, nil, err
		}
		log.Printf("geocode cache backend=redis addr=%s", addr)
		return cache.NewRedisGeocodeCache(client), func() { _ = client.Close() }, nil
	}

	if databaseURL := strings.TrimSpace(os.Getenv("DATABASE_URL")); databaseURL != "" {
		pool, err := db.Open(databaseURL)
		if err != nil {
			return nil, nil, err
		}
		pg := cache.NewPGGeocodeCache(pool)
		if err := pg.EnsureSchema(ctx); err != nil {
			pool.Close()
			return nil, nil, err
		}
		log.Printf("geocode cache backend=postgres")
		return pg, func() { _ = pool.Close() }, nil
	}

	log.Println("geocode cache backend=none (in-process memo only)")
	return nil, nil, nil
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func splitList(s string) []string {
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
