package main

import (
	"context"
	"database/sql"
	"encoding/csv"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"saunahub/pkg/database"
)

func main() {
	var (
		citiesIn = flag.String("cities", "data/cities.csv", "input CSV path for cities")
		postalIn = flag.String("postal", "data/postal_codes.csv", "input CSV path for postal codes")
	)
	flag.Parse()

	ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
	defer cancel()

	db := database.MustOpen(database.DefaultConfig())
	defer db.Close()

	if err := database.Migrate(db); err != nil {
		log.Fatalf("db migrate failed: %v", err)
	}

	if err := importCities(ctx, db, *citiesIn); err != nil {
		log.Fatalf("import cities failed: %v", err)
	}
	if err := importPostalCodes(ctx, db, *postalIn); err != nil {
		log.Fatalf("import postal codes failed: %v", err)
	}

	log.Printf("✅ imported cities from %s and postal codes from %s", *citiesIn, *postalIn)
}

func importCities(ctx context.Context, db *sql.DB, path string) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1

	header, err := readHeader(r)
	if err != nil {
		return err
	}

	stmt, err := db.PrepareContext(ctx, `
		INSERT INTO cities (country, slug, name, population)
		VALUES (?, ?, ?, ?)
		ON CONFLICT(country, slug) DO UPDATE SET
			name = excluded.name,
			population = excluded.population
	`)
	if err != nil {
		return err
	}
	defer stmt.Close()

	for {
		row, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return err
		}
		if len(row) == 0 {
			continue
		}

		country := strings.ToUpper(valueAt(header, row, "country"))
		slug := valueAt(header, row, "slug")
		name := valueAt(header, row, "name")
		if country == "" || slug == "" || name == "" {
			continue
		}

		population, err := parseInt(valueAt(header, row, "population"))
		if err != nil {
			return fmt.Errorf("parse population for %s/%s: %w", country, slug, err)
		}

		if _, err := stmt.ExecContext(ctx, country, slug, name, population); err != nil {
			return err
		}
	}

	return nil
}

func importPostalCodes(ctx context.Context, db *sql.DB, path string) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1

	header, err := readHeader(r)
	if err != nil {
		return err
	}

	stmt, err := db.PrepareContext(ctx, `
		INSERT INTO postal_codes (country, code, name, region, lat, lng)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT(country, code) DO UPDATE SET
			name = excluded.name,
			region = excluded.region,
			lat = excluded.lat,
			lng = excluded.lng
	`)
	if err != nil {
		return err
	}
	defer stmt.Close()

	for {
		row, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return err
		}
		if len(row) == 0 {
			continue
		}

		country := strings.ToUpper(valueAt(header, row, "country"))
		code := valueAt(header, row, "code")
		if country == "" || code == "" {
			continue
		}

		lat, err := parseFloat(valueAt(header, row, "lat"))
		if err != nil {
			return fmt.Errorf("parse lat for %s/%s: %w", country, code, err)
		}
		lng, err := parseFloat(valueAt(header, row, "lng"))
		if err != nil {
			return fmt.Errorf("parse lng for %s/%s: %w", country, code, err)
		}

		if _, err := stmt.ExecContext(
			ctx,
			country,
			code,
			valueAt(header, row, "name"),
			nullString(valueAt(header, row, "region")),
			lat,
			lng,
		); err != nil {
			return err
		}
	}

	return nil
}

func readHeader(r *csv.Reader) (map[string]int, error) {
	row, err := r.Read()
	if err != nil {
		return nil, err
	}
	header := make(map[string]int, len(row))
	for idx, name := range row {
		header[strings.TrimSpace(strings.ToLower(name))] = idx
	}
	return header, nil
}

func valueAt(header map[string]int, row []string, key string) string {
	idx, ok := header[key]
	if !ok || idx >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[idx])
}

func parseInt(raw string) (int64, error) {
	if raw == "" {
		return 0, nil
	}
	return strconv.ParseInt(raw, 10, 64)
}

func parseFloat(raw string) (float64, error) {
	if raw == "" {
		return 0, nil
	}
	return strconv.ParseFloat(raw, 64)
}

func nullString(raw string) sql.NullString {
	if raw == "" {
		return sql.NullString{}
	}
	return sql.NullString{String: raw, Valid: true}
}
