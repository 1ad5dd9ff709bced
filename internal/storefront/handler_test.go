package storefront

import (
	"database/sql"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	_ "github.com/mattn/go-sqlite3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"saunahub/internal/locale"
	"saunahub/internal/translate"
	"saunahub/pkg/database"
	"saunahub/pkg/utils"
)

func newCatalogRouter(t *testing.T, client *Client) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, err := sql.Open("sqlite3", filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	require.NoError(t, database.MigrateFrom(db, "../../docs/schema.sql"))

	translations := translate.NewService(db, utils.TranslateConfig{Timeout: time.Second}, zap.NewNop())

	r := gin.New()
	r.Use(locale.Middleware())
	NewHandler(client, translations, zap.NewNop()).RegisterRoutes(r)
	return r
}

func TestListProductsDegradesWhenUnconfigured(t *testing.T) {
	client := NewClient(utils.StorefrontConfig{}, zap.NewNop())
	r := newCatalogRouter(t, client)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/products", nil))

	require.Equal(t, http.StatusOK, w.Code, "catalog outage never surfaces as 5xx")

	var resp struct {
		Items     []json.RawMessage `json:"items"`
		Available bool              `json:"available"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Empty(t, resp.Items)
	assert.False(t, resp.Available)
}

func TestListProductsServesCatalog(t *testing.T) {
	stub := &graphQLStub{body: `{
		"data": {
			"products": {
				"edges": [{
					"node": {
						"id": "gid://product/1",
						"title": "Barrel Sauna",
						"handle": "barrel-sauna",
						"availableForSale": true,
						"images": {"edges": []},
						"priceRange": {"minVariantPrice": {"amount": "3499.0", "currencyCode": "EUR"}},
						"variants": {"edges": []}
					}
				}]
			}
		}
	}`}
	r := newCatalogRouter(t, newStubClient(t, stub))

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/products?limit=5", nil))

	require.Equal(t, http.StatusOK, w.Code)

	var resp productListResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.True(t, resp.Available)
	require.Len(t, resp.Items, 1)
	assert.Equal(t, "Barrel Sauna", resp.Items[0].Title)
	assert.EqualValues(t, 5, stub.lastVars["first"])
}

func TestGetProductNotFound(t *testing.T) {
	r := newCatalogRouter(t, newStubClient(t, &graphQLStub{body: `{"data": {"product": null}}`}))

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/products/nope", nil))

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestGetProductDegradesOnBackendError(t *testing.T) {
	r := newCatalogRouter(t, newStubClient(t, &graphQLStub{status: http.StatusInternalServerError, body: "boom"}))

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/products/barrel-sauna", nil))

	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Item      json.RawMessage `json:"item"`
		Available bool            `json:"available"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.False(t, resp.Available)
}
