package storefront

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"go.uber.org/zap"

	"saunahub/internal/locale"
	"saunahub/pkg/utils"
)

var (
	// ErrNotConfigured is returned when no backend domain is set. Callers
	// render an empty state instead of failing the page.
	ErrNotConfigured = errors.New("storefront backend not configured")

	// ErrCartNotFound signals the backend no longer knows the cart id.
	ErrCartNotFound = errors.New("cart not found")
)

// Client talks GraphQL-over-HTTP to the commerce backend. Every request
// carries a timeout (default 5s) and aborts on expiry.
type Client struct {
	apiURL string
	token  string
	http   *http.Client
	log    *zap.Logger
}

func NewClient(cfg utils.StorefrontConfig, log *zap.Logger) *Client {
	apiURL := ""
	if cfg.Domain != "" {
		apiURL = fmt.Sprintf("https://%s/api/2025-01/graphql.json", cfg.Domain)
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	return &Client{
		apiURL: apiURL,
		token:  cfg.AccessToken,
		http:   &http.Client{Timeout: timeout},
		log:    log,
	}
}

// NewClientForURL points the client at an explicit endpoint. Tests use this
// with httptest servers.
func NewClientForURL(apiURL, token string, timeout time.Duration, log *zap.Logger) *Client {
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	return &Client{apiURL: apiURL, token: token, http: &http.Client{Timeout: timeout}, log: log}
}

func (c *Client) Configured() bool { return c.apiURL != "" }

type graphQLError struct {
	Message string `json:"message"`
}

type envelope struct {
	Data   json.RawMessage `json:"data"`
	Errors []graphQLError  `json:"errors"`
}

// do posts one GraphQL operation and decodes the data payload into out.
func (c *Client) do(ctx context.Context, query string, variables map[string]any, out any) error {
	if !c.Configured() {
		return ErrNotConfigured
	}

	body, err := json.Marshal(map[string]any{"query": query, "variables": variables})
	if err != nil {
		return fmt.Errorf("marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.apiURL, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if c.token != "" {
		req.Header.Set("X-Shopify-Storefront-Access-Token", c.token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("storefront request: %w", err)
	}
	defer resp.Body.Close()

	raw, _ := io.ReadAll(resp.Body)
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("storefront status %d: %s", resp.StatusCode, string(raw))
	}

	var env envelope
	if err := json.Unmarshal(raw, &env); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	if len(env.Errors) > 0 {
		return fmt.Errorf("storefront graphql: %s", env.Errors[0].Message)
	}

	if err := json.Unmarshal(env.Data, out); err != nil {
		return fmt.Errorf("decode data: %w", err)
	}
	return nil
}

// languageCode maps a storefront locale to the backend's language code for
// @inContext queries.
func languageCode(loc locale.Locale) string {
	codes := map[locale.Locale]string{
		"es": "ES", "en": "EN", "de": "DE", "fr": "FR", "it": "IT",
		"pt": "PT", "nl": "NL", "pl": "PL", "cs": "CS", "el": "EL",
	}
	if code, ok := codes[loc]; ok {
		return code
	}
	return "EN"
}
