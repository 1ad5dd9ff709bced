package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"saunahub/internal/admin"
	"saunahub/internal/cart"
	"saunahub/internal/geo"
	"saunahub/internal/locale"
	"saunahub/internal/seo"
	"saunahub/internal/storefront"
	"saunahub/internal/translate"
	"saunahub/pkg/database"
	"saunahub/pkg/utils"
)

func main() {
	_ = godotenv.Load()

	logger := newLogger()
	defer logger.Sync()

	dbCfg := database.DefaultConfig()
	db := database.MustOpen(dbCfg)
	defer db.Close()

	if err := database.Migrate(db); err != nil {
		logger.Fatal("db migrate failed", zap.Error(err))
	}

	serverCfg := utils.LoadServerConfig()

	// Geo reference data is loaded once up front; an empty table just means
	// empty sitemaps until import-geo has run.
	geoRepo := geo.NewRepo(db, logger)
	if err := geoRepo.Load(context.Background()); err != nil {
		logger.Fatal("geo load failed", zap.Error(err))
	}

	sfCfg := utils.LoadStorefrontConfig()
	sfClient := storefront.NewClient(sfCfg, logger)
	if !sfClient.Configured() {
		logger.Warn("commerce backend not configured, catalog and cart run degraded")
	}

	translations := translate.NewService(db, utils.LoadTranslateConfig(), logger)

	hub := cart.NewHub()
	sessions := cart.NewSessionRepo(db)
	cartManager := cart.NewManager(sfClient, sessions, hub, logger)
	defer cartManager.Close()

	router := gin.New()
	router.Use(gin.Recovery())
	_ = router.SetTrustedProxies([]string{"127.0.0.1"})

	router.Use(cors.New(cors.Config{
		AllowOrigins:     corsOrigins(),
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))
	router.Use(locale.Middleware())

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "db": dbCfg.Path})
	})

	router.GET("/ready", func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
		defer cancel()

		if err := db.PingContext(ctx); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "not_ready", "db_error": err.Error()})
			return
		}
		cities, postal := geoRepo.Counts()
		c.JSON(http.StatusOK, gin.H{
			"status":       "ready",
			"db":           "ok",
			"cities":       cities,
			"postal_codes": postal,
			"storefront":   sfClient.Configured(),
		})
	})

	seo.NewHandler(serverCfg.BaseURL, geoRepo, logger).RegisterRoutes(router)
	storefront.NewHandler(sfClient, translations, logger).RegisterRoutes(router)
	cart.NewHandler(cartManager, hub, logger).RegisterRoutes(router)
	admin.NewHandler(utils.LoadAdminConfig(), geoRepo, translations, logger).RegisterRoutes(router)

	httpSrv := &http.Server{
		Addr:    serverCfg.Addr,
		Handler: router,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("http server listening", zap.String("addr", serverCfg.Addr))
		if err := httpSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-sigCh:
		logger.Info("shutdown signal received", zap.String("signal", sig.String()))
	case err := <-errCh:
		logger.Error("server error", zap.Error(err))
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := httpSrv.Shutdown(shutdownCtx); err != nil {
		logger.Error("http shutdown", zap.Error(err))
	}
	logger.Info("shutdown complete")
}

func newLogger() *zap.Logger {
	if os.Getenv("SAUNAHUB_ENV") == "dev" {
		l, err := zap.NewDevelopment()
		if err != nil {
			panic(err)
		}
		return l
	}
	l, err := zap.NewProduction()
	if err != nil {
		panic(err)
	}
	return l
}

func corsOrigins() []string {
	if raw := os.Getenv("SAUNAHUB_CORS_ORIGINS"); raw != "" {
		var out []string
		for _, o := range strings.Split(raw, ",") {
			if o = strings.TrimSpace(o); o != "" {
				out = append(out, o)
			}
		}
		return out
	}
	return []string{"http://localhost:3000"}
}
