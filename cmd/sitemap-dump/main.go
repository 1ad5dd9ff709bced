package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"

	"go.uber.org/zap"

	"saunahub/internal/geo"
	"saunahub/internal/locale"
	"saunahub/internal/seo"
	"saunahub/pkg/database"
	"saunahub/pkg/utils"
)

// Renders the complete sitemap surface to static files, the same documents
// the HTTP handlers serve. Useful for eyeballing output and for prewarming
// a CDN.
func main() {
	out := flag.String("out", "sitemaps-out", "output directory")
	flag.Parse()

	logger, err := zap.NewDevelopment()
	if err != nil {
		log.Fatalf("logger: %v", err)
	}
	defer logger.Sync()

	db := database.MustOpen(database.DefaultConfig())
	defer db.Close()

	geoRepo := geo.NewRepo(db, logger)
	if err := geoRepo.Load(context.Background()); err != nil {
		logger.Fatal("geo load failed", zap.Error(err))
	}

	baseURL := utils.LoadServerConfig().BaseURL
	if err := os.MkdirAll(*out, 0o755); err != nil {
		logger.Fatal("create output dir", zap.Error(err))
	}

	write := func(name string, b []byte) {
		path := filepath.Join(*out, name)
		if err := os.WriteFile(path, b, 0o644); err != nil {
			logger.Fatal("write sitemap", zap.String("path", path), zap.Error(err))
		}
		logger.Info("wrote", zap.String("path", path), zap.Int("bytes", len(b)))
	}

	b, err := seo.RenderIndex(seo.IndexEntries(baseURL), time.Now())
	if err != nil {
		logger.Fatal("render index", zap.Error(err))
	}
	write("sitemap.xml", b)

	b, err = seo.RenderURLSet(seo.PageURLs(baseURL), "monthly", "1.0")
	if err != nil {
		logger.Fatal("render pages", zap.Error(err))
	}
	write("pages.xml", b)

	for _, loc := range locale.Supported {
		cities := geoRepo.CitySlugs(seo.LocaleCountries[loc], seo.StandardCityLimit)
		space := seo.StandardSpace(baseURL, loc, cities)

		urls := make([]string, 0, space.Len())
		space.ForEach(func(u string) bool {
			urls = append(urls, u)
			return true
		})
		b, err = seo.RenderURLSet(urls, "weekly", "0.8")
		if err != nil {
			logger.Fatal("render locale sitemap", zap.String("locale", string(loc)), zap.Error(err))
		}
		write(fmt.Sprintf("%s.xml", loc), b)

		allCities := geoRepo.CitySlugs(seo.LocaleCountries[loc], 0)
		massive := seo.MassiveSpace(baseURL, loc, allCities)
		for part := 1; part <= seo.PartsPerLocale; part++ {
			urls := massive.Slice((part-1)*seo.URLsPerPart, seo.URLsPerPart)
			if len(urls) == 0 {
				break
			}
			b, err = seo.RenderURLSet(urls, "weekly", "0.7")
			if err != nil {
				logger.Fatal("render massive sitemap",
					zap.String("locale", string(loc)), zap.Int("part", part), zap.Error(err))
			}
			write(fmt.Sprintf("massive-%s-%d.xml", loc, part), b)
		}
	}
}
