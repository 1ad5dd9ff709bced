package seo

import (
	"fmt"
	"net/http"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"saunahub/internal/locale"
)

// CityProvider supplies eligible city slugs for a set of countries, in
// population order. perCountryLimit <= 0 means no truncation.
type CityProvider interface {
	CitySlugs(countries []string, perCountryLimit int) []string
}

type Handler struct {
	BaseURL string
	Cities  CityProvider
	Log     *zap.Logger
}

func NewHandler(baseURL string, cities CityProvider, log *zap.Logger) *Handler {
	return &Handler{BaseURL: strings.TrimRight(baseURL, "/"), Cities: cities, Log: log}
}

func (h *Handler) RegisterRoutes(r *gin.Engine) {
	r.GET("/robots.txt", h.robots)
	r.GET("/sitemap.xml", h.index)
	r.GET("/sitemaps/:slug", h.localeSitemap)
	r.GET("/sitemaps-massive/:slug", h.massiveSitemap)
}

// IndexEntries lists every sitemap document the index advertises: static
// pages, one per-locale document, and the fixed massive part range.
func IndexEntries(baseURL string) []string {
	out := []string{baseURL + "/sitemaps/pages.xml"}
	for _, loc := range locale.Supported {
		out = append(out, fmt.Sprintf("%s/sitemaps/%s.xml", baseURL, loc))
	}
	for _, loc := range locale.Supported {
		for part := 1; part <= PartsPerLocale; part++ {
			out = append(out, fmt.Sprintf("%s/sitemaps-massive/massive-%s-%d.xml", baseURL, loc, part))
		}
	}
	return out
}

// PageURLs lists the static top-level pages.
func PageURLs(baseURL string) []string {
	urls := []string{baseURL}
	for _, loc := range locale.Supported {
		urls = append(urls,
			fmt.Sprintf("%s/%s", baseURL, loc),
			fmt.Sprintf("%s/%s/about", baseURL, loc),
			fmt.Sprintf("%s/%s/contact", baseURL, loc),
		)
	}
	urls = append(urls, baseURL+"/about", baseURL+"/contact")
	return urls
}

func (h *Handler) index(c *gin.Context) {
	b, err := RenderIndex(IndexEntries(h.BaseURL), time.Now())
	if err != nil {
		h.Log.Error("render sitemap index", zap.Error(err))
		c.String(http.StatusInternalServerError, "internal error")
		return
	}
	writeXML(c, b)
}

func (h *Handler) localeSitemap(c *gin.Context) {
	slug := c.Param("slug")

	if slug == "pages.xml" {
		b, err := RenderURLSet(PageURLs(h.BaseURL), "monthly", "1.0")
		if err != nil {
			h.Log.Error("render pages sitemap", zap.Error(err))
			c.String(http.StatusInternalServerError, "internal error")
			return
		}
		writeXML(c, b)
		return
	}

	name, ok := strings.CutSuffix(slug, ".xml")
	if !ok || !locale.IsSupported(name) {
		c.String(http.StatusNotFound, "Not found")
		return
	}
	loc := locale.Locale(name)

	cities := h.Cities.CitySlugs(LocaleCountries[loc], StandardCityLimit)
	space := StandardSpace(h.BaseURL, loc, cities)

	urls := make([]string, 0, space.Len())
	space.ForEach(func(u string) bool {
		urls = append(urls, u)
		return true
	})

	b, err := RenderURLSet(urls, "weekly", "0.8")
	if err != nil {
		h.Log.Error("render locale sitemap", zap.String("locale", name), zap.Error(err))
		c.String(http.StatusInternalServerError, "internal error")
		return
	}
	writeXML(c, b)
}

var massiveSlugRe = regexp.MustCompile(`^massive-([a-z]{2})-(\d+)\.xml$`)

func (h *Handler) massiveSitemap(c *gin.Context) {
	m := massiveSlugRe.FindStringSubmatch(c.Param("slug"))
	if m == nil {
		c.String(http.StatusNotFound, "Not found")
		return
	}
	if !locale.IsSupported(m[1]) {
		c.String(http.StatusNotFound, "Locale not supported")
		return
	}
	loc := locale.Locale(m[1])

	part, err := strconv.Atoi(m[2])
	if err != nil || part < 1 {
		c.String(http.StatusNotFound, "Not found")
		return
	}

	cities := h.Cities.CitySlugs(LocaleCountries[loc], 0)
	space := MassiveSpace(h.BaseURL, loc, cities)

	urls := space.Slice((part-1)*URLsPerPart, URLsPerPart)
	if len(urls) == 0 {
		c.String(http.StatusNotFound, "No URLs for this part")
		return
	}

	b, err := RenderURLSet(urls, "weekly", "0.7")
	if err != nil {
		h.Log.Error("render massive sitemap", zap.String("locale", m[1]), zap.Int("part", part), zap.Error(err))
		c.String(http.StatusInternalServerError, "internal error")
		return
	}
	writeXML(c, b)
}

func (h *Handler) robots(c *gin.Context) {
	body := fmt.Sprintf(`# saunahub robots.txt

User-agent: *
Allow: /

# Sitemaps
Sitemap: %s/sitemap.xml

# Crawl-delay for polite crawling
Crawl-delay: 1

# Block API routes
Disallow: /api/
Disallow: /admin/

User-agent: Googlebot
Allow: /

User-agent: Bingbot
Allow: /
`, h.BaseURL)

	c.Header("Cache-Control", "public, max-age=86400")
	c.Data(http.StatusOK, "text/plain; charset=utf-8", []byte(body))
}

func writeXML(c *gin.Context, b []byte) {
	c.Header("Cache-Control", "public, max-age=86400")
	c.Data(http.StatusOK, "application/xml", b)
}
