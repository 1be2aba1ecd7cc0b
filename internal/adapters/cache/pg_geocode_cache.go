package cache

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"travel-itinerary-service/internal/domain"
	"travel-itinerary-service/internal/platform/obs"
)

// PGGeocodeCache is a Postgres-backed cache mapping place names to
// coordinates. Keys are expected to be consistent (already normalized)
// by the caller.
type PGGeocodeCache struct {
	DB *sql.DB
}

func NewPGGeocodeCache(db *sql.DB) *PGGeocodeCache {
	return &PGGeocodeCache{DB: db}
}

// EnsureSchema creates the cache table if it does not exist.
func (s *PGGeocodeCache) EnsureSchema(ctx context.Context) error {
	if s.DB == nil {
		return errors.New("geocode cache: db is nil")
	}

	q := `
	CREATE TABLE IF NOT EXISTS place_geocode (
		place TEXT PRIMARY KEY,
		lat DOUBLE PRECISION NOT NULL,
		lng DOUBLE PRECISION NOT NULL
	);
	`
	if _, err := s.DB.ExecContext(ctx, q); err != nil {
		return fmt.Errorf("geocode cache: create table: %w", err)
	}

	return nil
}

// Fetch cached coordinates for the given place names.
func (s *PGGeocodeCache) GetMany(
	ctx context.Context,
	places []string,
) (_ map[string]domain.Coordinates, err error) {
	defer obs.Time(ctx, "geocode.cache.GetMany")(&err)

	if s.DB == nil {
		return nil, errors.New("geocode cache: db is nil")
	}

	if len(places) == 0 {
		return map[string]domain.Coordinates{}, nil
	}

	seen := map[string]struct{}{}
	uniq := make([]string, 0, len(places))
	for _, p := range places {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}

		if _, ok := seen[p]; ok {
			continue
		}
		seen[p] = struct{}{}
		uniq = append(uniq, p)
	}

	if len(uniq) == 0 {
		return map[string]domain.Coordinates{}, nil
	}

	q := `
	SELECT place, lat, lng
	FROM place_geocode
	WHERE place = ANY($1::text[]);
	`

	rows, err := s.DB.QueryContext(ctx, q, uniq)
	if err != nil {
		return nil, fmt.Errorf("get geocode cache: query place_geocode table: %w", err)
	}
	defer rows.Close()

	out := make(map[string]domain.Coordinates, len(uniq))
	for rows.Next() {
		var place string
		var lat, lng float64
		if err := rows.Scan(&place, &lat, &lng); err != nil {
			return nil, fmt.Errorf("get geocode cache: scan rows: %w", err)
		}
		out[place] = domain.Coordinates{Lat: lat, Lng: lng}
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("get geocode cache: row iteration: %w", err)
	}

	return out, nil
}

// Store place -> coordinate mappings in the cache. The whole batch is
// upserted in one statement, so it is atomic without an explicit
// transaction.
func (s *PGGeocodeCache) PutMany(ctx context.Context, results map[string]domain.Coordinates) error {
	if s.DB == nil {
		return errors.New("geocode cache: db is nil")
	}

	if len(results) == 0 {
		return nil
	}

	places := make([]string, 0, len(results))
	lats := make([]float64, 0, len(results))
	lngs := make([]float64, 0, len(results))
	for place, c := range results {
		if strings.TrimSpace(place) == "" {
			return fmt.Errorf("insert geocode cache: empty place key")
		}
		places = append(places, place)
		lats = append(lats, c.Lat)
		lngs = append(lngs, c.Lng)
	}

	q := `
	INSERT INTO place_geocode (place, lat, lng)
	SELECT * FROM unnest($1::text[], $2::float8[], $3::float8[])
	ON CONFLICT (place) DO UPDATE
	SET lat = EXCLUDED.lat,
		lng = EXCLUDED.lng;
	`

	if _, err := s.DB.ExecContext(ctx, q, places, lats, lngs); err != nil {
		return fmt.Errorf("insert geocode cache: upsert %d places: %w", len(places), err)
	}

	return nil
}
