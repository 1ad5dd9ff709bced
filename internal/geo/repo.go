package geo

import (
	"context"
	"database/sql"
	"fmt"
	"sync"

	"go.uber.org/zap"

	"saunahub/pkg/models"
)

// Repo holds the city and postal reference data. The tables are read from
// SQLite once (and again only on an explicit admin reload); every lookup
// afterwards is served from in-memory indexes. There is no write path.
type Repo struct {
	db  *sql.DB
	log *zap.Logger

	mu        sync.RWMutex
	byCountry map[string][]models.City // population descending
	bySlug    map[string]models.City
	postal    map[string]models.PostalCode // country+code
}

func NewRepo(db *sql.DB, log *zap.Logger) *Repo {
	return &Repo{
		db:        db,
		log:       log,
		byCountry: make(map[string][]models.City),
		bySlug:    make(map[string]models.City),
		postal:    make(map[string]models.PostalCode),
	}
}

// Load reads both tables and swaps the in-memory indexes atomically.
func (r *Repo) Load(ctx context.Context) error {
	byCountry := make(map[string][]models.City)
	bySlug := make(map[string]models.City)
	postal := make(map[string]models.PostalCode)

	rows, err := r.db.QueryContext(ctx, `
		SELECT country, slug, name, population
		FROM cities
		ORDER BY country ASC, population DESC, slug ASC
	`)
	if err != nil {
		return fmt.Errorf("query cities: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var c models.City
		if err := rows.Scan(&c.Country, &c.Slug, &c.Name, &c.Population); err != nil {
			return fmt.Errorf("scan city: %w", err)
		}
		byCountry[c.Country] = append(byCountry[c.Country], c)
		if _, exists := bySlug[c.Slug]; !exists {
			bySlug[c.Slug] = c
		}
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("cities rows: %w", err)
	}

	prows, err := r.db.QueryContext(ctx, `
		SELECT country, code, name, COALESCE(region, ''), COALESCE(lat, 0), COALESCE(lng, 0)
		FROM postal_codes
	`)
	if err != nil {
		return fmt.Errorf("query postal codes: %w", err)
	}
	defer prows.Close()

	for prows.Next() {
		var p models.PostalCode
		if err := prows.Scan(&p.Country, &p.Code, &p.Name, &p.Region, &p.Lat, &p.Lng); err != nil {
			return fmt.Errorf("scan postal code: %w", err)
		}
		postal[p.Country+p.Code] = p
	}
	if err := prows.Err(); err != nil {
		return fmt.Errorf("postal rows: %w", err)
	}

	r.mu.Lock()
	r.byCountry = byCountry
	r.bySlug = bySlug
	r.postal = postal
	r.mu.Unlock()

	r.log.Info("geo reference data loaded",
		zap.Int("cities", len(bySlug)),
		zap.Int("postal_codes", len(postal)),
		zap.Int("countries", len(byCountry)))
	return nil
}

// CitySlugs returns city slugs for the given countries in order, each
// country's cities sorted by population descending and truncated to
// perCountryLimit (<= 0 means all).
func (r *Repo) CitySlugs(countries []string, perCountryLimit int) []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var out []string
	for _, country := range countries {
		cities := r.byCountry[country]
		n := len(cities)
		if perCountryLimit > 0 && n > perCountryLimit {
			n = perCountryLimit
		}
		for i := 0; i < n; i++ {
			out = append(out, cities[i].Slug)
		}
	}
	return out
}

func (r *Repo) CitiesForCountry(country string, limit int) []models.City {
	r.mu.RLock()
	defer r.mu.RUnlock()

	cities := r.byCountry[country]
	if limit > 0 && len(cities) > limit {
		cities = cities[:limit]
	}
	out := make([]models.City, len(cities))
	copy(out, cities)
	return out
}

func (r *Repo) CityBySlug(slug string) (models.City, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	c, ok := r.bySlug[slug]
	return c, ok
}

func (r *Repo) PostalCode(country, code string) (models.PostalCode, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	p, ok := r.postal[country+code]
	return p, ok
}

// Counts reports index sizes, used by readiness and admin endpoints.
func (r *Repo) Counts() (cities, postalCodes int) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.bySlug), len(r.postal)
}
