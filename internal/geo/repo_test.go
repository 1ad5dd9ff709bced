package geo

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"

	_ "github.com/mattn/go-sqlite3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"saunahub/pkg/database"
)

func newTestRepo(t *testing.T) (*Repo, *sql.DB) {
	t.Helper()
	db, err := sql.Open("sqlite3", filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	require.NoError(t, database.MigrateFrom(db, "../../docs/schema.sql"))
	return NewRepo(db, zap.NewNop()), db
}

func seedCities(t *testing.T, db *sql.DB, rows [][4]any) {
	t.Helper()
	for _, r := range rows {
		_, err := db.Exec(`INSERT INTO cities (country, slug, name, population) VALUES (?, ?, ?, ?)`,
			r[0], r[1], r[2], r[3])
		require.NoError(t, err)
	}
}

func TestLoadAndCitySlugs(t *testing.T) {
	repo, db := newTestRepo(t)
	seedCities(t, db, [][4]any{
		{"ES", "madrid", "Madrid", 3300000},
		{"ES", "valencia", "Valencia", 790000},
		{"ES", "barcelona", "Barcelona", 1600000},
		{"DE", "berlin", "Berlin", 3700000},
		{"DE", "hamburg", "Hamburg", 1900000},
	})
	require.NoError(t, repo.Load(context.Background()))

	t.Run("population descending per country", func(t *testing.T) {
		got := repo.CitySlugs([]string{"ES"}, 0)
		assert.Equal(t, []string{"madrid", "barcelona", "valencia"}, got)
	})

	t.Run("per country limit applies", func(t *testing.T) {
		got := repo.CitySlugs([]string{"ES"}, 2)
		assert.Equal(t, []string{"madrid", "barcelona"}, got)
	})

	t.Run("multiple countries concatenate in order", func(t *testing.T) {
		got := repo.CitySlugs([]string{"DE", "ES"}, 1)
		assert.Equal(t, []string{"berlin", "madrid"}, got)
	})

	t.Run("unknown country yields nothing", func(t *testing.T) {
		assert.Empty(t, repo.CitySlugs([]string{"XX"}, 0))
	})
}

func TestCityLookups(t *testing.T) {
	repo, db := newTestRepo(t)
	seedCities(t, db, [][4]any{
		{"ES", "madrid", "Madrid", 3300000},
	})
	require.NoError(t, repo.Load(context.Background()))

	c, ok := repo.CityBySlug("madrid")
	require.True(t, ok)
	assert.Equal(t, "Madrid", c.Name)
	assert.Equal(t, "ES", c.Country)

	_, ok = repo.CityBySlug("atlantis")
	assert.False(t, ok)
}

func TestPostalCodeLookup(t *testing.T) {
	repo, db := newTestRepo(t)
	_, err := db.Exec(`INSERT INTO postal_codes (country, code, name, region, lat, lng)
		VALUES ('ES', '28001', 'Madrid', 'Madrid', 40.42, -3.68)`)
	require.NoError(t, err)
	require.NoError(t, repo.Load(context.Background()))

	p, ok := repo.PostalCode("ES", "28001")
	require.True(t, ok)
	assert.Equal(t, "Madrid", p.Name)
	assert.InDelta(t, 40.42, p.Lat, 0.001)

	_, ok = repo.PostalCode("ES", "99999")
	assert.False(t, ok)
}

func TestReloadSwapsIndexes(t *testing.T) {
	repo, db := newTestRepo(t)
	seedCities(t, db, [][4]any{{"ES", "madrid", "Madrid", 3300000}})
	require.NoError(t, repo.Load(context.Background()))

	cities, _ := repo.Counts()
	assert.Equal(t, 1, cities)

	seedCities(t, db, [][4]any{{"ES", "sevilla", "Sevilla", 690000}})
	require.NoError(t, repo.Load(context.Background()))

	cities, _ = repo.Counts()
	assert.Equal(t, 2, cities)
	assert.Equal(t, []string{"madrid", "sevilla"}, repo.CitySlugs([]string{"ES"}, 0))
}
