package admin

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"saunahub/internal/geo"
	"saunahub/internal/translate"
	"saunahub/pkg/utils"
)

// Handler is the operational surface: password login plus a handful of
// maintenance endpoints behind the token middleware. There are no user
// accounts, only a single admin credential from the environment.
type Handler struct {
	Tokens       TokenService
	PasswordHash string
	Geo          *geo.Repo
	Translations *translate.Service
	Log          *zap.Logger
}

func NewHandler(cfg utils.AdminConfig, geoRepo *geo.Repo, translations *translate.Service, log *zap.Logger) *Handler {
	return &Handler{
		Tokens: TokenService{
			Secret:   []byte(cfg.JWTSecret),
			Issuer:   cfg.JWTIssuer,
			Duration: cfg.JWTDuration,
		},
		PasswordHash: cfg.PasswordHash,
		Geo:          geoRepo,
		Translations: translations,
		Log:          log,
	}
}

func (h *Handler) RegisterRoutes(r gin.IRouter) {
	r.POST("/auth/login", h.login)

	protected := r.Group("/admin", AuthMiddleware(h.Tokens))
	protected.POST("/geo/reload", h.reloadGeo)
	protected.GET("/translations/stats", h.translationStats)
	protected.DELETE("/translations", h.purgeTranslations)
}

type loginReq struct {
	Password string `json:"password"`
}

func (h *Handler) login(c *gin.Context) {
	var req loginReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid json"})
		return
	}
	if h.PasswordHash == "" {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "admin login disabled"})
		return
	}
	if err := bcrypt.CompareHashAndPassword([]byte(h.PasswordHash), []byte(req.Password)); err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid credentials"})
		return
	}

	token, exp, err := h.Tokens.Sign()
	if err != nil {
		h.Log.Error("sign admin token", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "token signing failed"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"token": token, "expires_at": exp})
}

func (h *Handler) reloadGeo(c *gin.Context) {
	if err := h.Geo.Load(c.Request.Context()); err != nil {
		h.Log.Error("reload geo data", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "reload failed"})
		return
	}
	cities, postal := h.Geo.Counts()
	c.JSON(http.StatusOK, gin.H{"cities": cities, "postal_codes": postal})
}

func (h *Handler) translationStats(c *gin.Context) {
	stats, err := h.Translations.CacheStats(c.Request.Context())
	if err != nil {
		h.Log.Error("translation stats", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "stats failed"})
		return
	}
	c.JSON(http.StatusOK, stats)
}

func (h *Handler) purgeTranslations(c *gin.Context) {
	dropped, err := h.Translations.Purge(c.Request.Context())
	if err != nil {
		h.Log.Error("purge translations", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "purge failed"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"dropped": dropped})
}
