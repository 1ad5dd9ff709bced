package utils

import (
	"os"
	"strconv"
	"time"
)

type ServerConfig struct {
	Addr    string
	BaseURL string
}

func LoadServerConfig() ServerConfig {
	addr := os.Getenv("SAUNAHUB_ADDR")
	if addr == "" {
		addr = ":8080"
	}

	base := os.Getenv("SAUNAHUB_SITE_URL")
	if base == "" {
		base = "https://saunaspa.io"
	}

	return ServerConfig{Addr: addr, BaseURL: base}
}

type StorefrontConfig struct {
	Domain      string // commerce backend domain, e.g. my-shop.myshopify.com
	AccessToken string
	Timeout     time.Duration
}

func LoadStorefrontConfig() StorefrontConfig {
	timeout := 5 * time.Second
	if raw := os.Getenv("SAUNAHUB_STOREFRONT_TIMEOUT_MS"); raw != "" {
		if ms, err := strconv.Atoi(raw); err == nil && ms > 0 {
			timeout = time.Duration(ms) * time.Millisecond
		}
	}

	return StorefrontConfig{
		Domain:      os.Getenv("SAUNAHUB_STOREFRONT_DOMAIN"),
		AccessToken: os.Getenv("SAUNAHUB_STOREFRONT_TOKEN"),
		Timeout:     timeout,
	}
}

type TranslateConfig struct {
	APIURL  string // external translation backend; empty disables remote calls
	Timeout time.Duration
}

func LoadTranslateConfig() TranslateConfig {
	return TranslateConfig{
		APIURL:  os.Getenv("SAUNAHUB_TRANSLATE_URL"),
		Timeout: 10 * time.Second,
	}
}

type AdminConfig struct {
	JWTSecret    string
	JWTIssuer    string
	JWTDuration  time.Duration
	PasswordHash string // bcrypt hash of the admin password
}

func LoadAdminConfig() AdminConfig {
	secret := os.Getenv("SAUNAHUB_JWT_SECRET")
	if secret == "" {
		// dev default (change for production)
		secret = "dev-secret-change-me"
	}

	issuer := os.Getenv("SAUNAHUB_JWT_ISSUER")
	if issuer == "" {
		issuer = "saunahub"
	}

	dur := 24 * time.Hour
	if raw := os.Getenv("SAUNAHUB_JWT_TTL_HOURS"); raw != "" {
		if h, err := strconv.Atoi(raw); err == nil && h > 0 {
			dur = time.Duration(h) * time.Hour
		}
	}

	return AdminConfig{
		JWTSecret:    secret,
		JWTIssuer:    issuer,
		JWTDuration:  dur,
		PasswordHash: os.Getenv("SAUNAHUB_ADMIN_PASSWORD_HASH"),
	}
}
