package storefront

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"saunahub/internal/locale"
	"saunahub/internal/translate"
	"saunahub/pkg/models"
)

// Handler is the catalog read surface. The commerce backend being down,
// slow, or unconfigured degrades to an empty catalog response; a browsing
// page never turns into a 5xx because the backend hiccuped.
type Handler struct {
	Client       *Client
	Translations *translate.Service
	Log          *zap.Logger
}

func NewHandler(client *Client, translations *translate.Service, log *zap.Logger) *Handler {
	return &Handler{Client: client, Translations: translations, Log: log}
}

func (h *Handler) RegisterRoutes(r gin.IRouter) {
	r.GET("/api/products", h.listProducts)
	r.GET("/api/products/:handle", h.getProduct)
}

type productListResponse struct {
	Items     []models.Product `json:"items"`
	Available bool             `json:"available"`
}

func (h *Handler) listProducts(c *gin.Context) {
	loc := locale.FromContext(c)

	q := ProductQuery{Locale: loc, SortKey: c.Query("sort")}
	if raw := c.Query("limit"); raw != "" {
		if n, err := strconv.Atoi(raw); err == nil && n > 0 && n <= 100 {
			q.First = n
		}
	}
	q.Reverse = c.Query("reverse") == "true"

	products, err := h.Client.Products(c.Request.Context(), q)
	if err != nil {
		h.Log.Warn("catalog unavailable", zap.Error(err))
		c.JSON(http.StatusOK, productListResponse{Items: []models.Product{}, Available: false})
		return
	}

	// The backend serves its own locale context; the cache-backed service
	// fills in locales the catalog was never authored in.
	if loc != locale.Default {
		for i := range products {
			h.Translations.TranslateProduct(c.Request.Context(), &products[i], loc, locale.Default)
		}
	}

	c.JSON(http.StatusOK, productListResponse{Items: products, Available: true})
}

func (h *Handler) getProduct(c *gin.Context) {
	loc := locale.FromContext(c)
	handle := c.Param("handle")

	product, err := h.Client.ProductByHandle(c.Request.Context(), handle, loc)
	if err != nil {
		h.Log.Warn("catalog unavailable", zap.String("handle", handle), zap.Error(err))
		c.JSON(http.StatusOK, gin.H{"item": nil, "available": false})
		return
	}
	if product == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "product not found"})
		return
	}

	if loc != locale.Default {
		h.Translations.TranslateProduct(c.Request.Context(), product, loc, locale.Default)
	}

	c.JSON(http.StatusOK, gin.H{"item": product, "available": true})
}
