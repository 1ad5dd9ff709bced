package translate

import (
	"bytes"
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"go.uber.org/zap"

	"saunahub/internal/locale"
	"saunahub/pkg/models"
	"saunahub/pkg/utils"
)

// Service translates display strings through an external backend with an
// SQLite cache in front. Translation is best effort end to end: any failure
// returns the source text unchanged so a page never breaks on a missing
// translation.
type Service struct {
	db      *sql.DB
	baseURL string
	http    *http.Client
	log     *zap.Logger
}

// Options identifies what is being translated for cache keying and audit.
type Options struct {
	SourceLocale locale.Locale
	ContentType  string // "product_title", "product_description", ...
	SourceID     string
}

func NewService(db *sql.DB, cfg utils.TranslateConfig, log *zap.Logger) *Service {
	return &Service{
		db:      db,
		baseURL: cfg.APIURL,
		http:    &http.Client{Timeout: cfg.Timeout},
		log:     log,
	}
}

// Translate returns the text in the target locale and whether it came from
// cache. Same-locale and empty input short-circuit without touching the
// cache or the backend.
func (s *Service) Translate(ctx context.Context, text string, target locale.Locale, opts Options) (string, bool) {
	if text == "" || target == opts.SourceLocale {
		return text, false
	}

	if cached, ok := s.lookup(ctx, text, target, opts); ok {
		return cached, true
	}

	translated, err := s.request(ctx, text, target, opts)
	if err != nil {
		s.log.Warn("translation backend failed, serving source text",
			zap.String("target", string(target)), zap.Error(err))
		return text, false
	}

	// Cache writes are off the request path; a lost write only costs one
	// extra backend call later.
	go s.cache(text, target, opts, translated)
	return translated, false
}

// TranslateProduct rewrites the display strings of a product in place.
func (s *Service) TranslateProduct(ctx context.Context, p *models.Product, target locale.Locale, source locale.Locale) {
	if p == nil || target == source {
		return
	}
	opts := func(contentType string) Options {
		return Options{SourceLocale: source, ContentType: contentType, SourceID: p.Handle}
	}
	p.Title, _ = s.Translate(ctx, p.Title, target, opts("product_title"))
	p.Description, _ = s.Translate(ctx, p.Description, target, opts("product_description"))
	p.ProductType, _ = s.Translate(ctx, p.ProductType, target, opts("product_type"))
}

func (s *Service) lookup(ctx context.Context, text string, target locale.Locale, opts Options) (string, bool) {
	row := s.db.QueryRowContext(ctx, `
		SELECT translated_text FROM translations
		WHERE source_text = ? AND source_locale = ? AND target_locale = ? AND content_type = ?
	`, text, string(opts.SourceLocale), string(target), opts.ContentType)

	var translated string
	if err := row.Scan(&translated); err != nil {
		if err != sql.ErrNoRows {
			s.log.Warn("translation cache read", zap.Error(err))
		}
		return "", false
	}
	return translated, true
}

func (s *Service) cache(text string, target locale.Locale, opts Options, translated string) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO translations (source_text, source_locale, target_locale, content_type, source_id, translated_text)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT(source_text, source_locale, target_locale, content_type) DO UPDATE SET
			translated_text = excluded.translated_text,
			source_id = excluded.source_id
	`, text, string(opts.SourceLocale), string(target), opts.ContentType, opts.SourceID, translated)
	if err != nil {
		s.log.Warn("translation cache write", zap.Error(err))
	}
}

type translateRequest struct {
	Text   string `json:"text"`
	Source string `json:"source"`
	Target string `json:"target"`
}

type translateResponse struct {
	TranslatedText string `json:"translatedText"`
}

func (s *Service) request(ctx context.Context, text string, target locale.Locale, opts Options) (string, error) {
	if s.baseURL == "" {
		return "", fmt.Errorf("translation backend not configured")
	}

	body, err := json.Marshal(translateRequest{
		Text:   text,
		Source: string(opts.SourceLocale),
		Target: string(target),
	})
	if err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.baseURL, bytes.NewReader(body))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.http.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("translation backend returned %d", resp.StatusCode)
	}

	var out translateResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return "", fmt.Errorf("decode translation response: %w", err)
	}
	if out.TranslatedText == "" {
		return "", fmt.Errorf("translation backend returned empty text")
	}
	return out.TranslatedText, nil
}

// Stats summarizes the cache for the admin surface.
type Stats struct {
	Entries   int            `json:"entries"`
	ByLocale  map[string]int `json:"by_locale"`
	ByContent map[string]int `json:"by_content_type"`
}

func (s *Service) CacheStats(ctx context.Context) (Stats, error) {
	stats := Stats{ByLocale: make(map[string]int), ByContent: make(map[string]int)}

	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM translations`).Scan(&stats.Entries); err != nil {
		return stats, fmt.Errorf("count translations: %w", err)
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT target_locale, COUNT(*) FROM translations GROUP BY target_locale
	`)
	if err != nil {
		return stats, fmt.Errorf("group by locale: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var loc string
		var n int
		if err := rows.Scan(&loc, &n); err != nil {
			return stats, err
		}
		stats.ByLocale[loc] = n
	}
	if err := rows.Err(); err != nil {
		return stats, err
	}

	crows, err := s.db.QueryContext(ctx, `
		SELECT content_type, COUNT(*) FROM translations GROUP BY content_type
	`)
	if err != nil {
		return stats, fmt.Errorf("group by content type: %w", err)
	}
	defer crows.Close()
	for crows.Next() {
		var ct string
		var n int
		if err := crows.Scan(&ct, &n); err != nil {
			return stats, err
		}
		stats.ByContent[ct] = n
	}
	return stats, crows.Err()
}

// Purge empties the cache, returning how many entries were dropped.
func (s *Service) Purge(ctx context.Context) (int64, error) {
	res, err := s.db.ExecContext(ctx, `DELETE FROM translations`)
	if err != nil {
		return 0, fmt.Errorf("purge translations: %w", err)
	}
	return res.RowsAffected()
}
