package cart

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type cartAPI struct {
	router  *gin.Engine
	backend *fakeBackend
	cookies []*http.Cookie
}

func newCartAPI(t *testing.T) *cartAPI {
	t.Helper()
	gin.SetMode(gin.TestMode)

	backend := newFakeBackend()
	sessions := NewSessionRepo(newTestDB(t))
	hub := NewHub()
	manager := NewManager(backend, sessions, hub, zap.NewNop())
	t.Cleanup(manager.Close)

	r := gin.New()
	NewHandler(manager, hub, zap.NewNop()).RegisterRoutes(r)
	return &cartAPI{router: r, backend: backend}
}

func (a *cartAPI) do(t *testing.T, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	for _, c := range a.cookies {
		req.AddCookie(c)
	}

	w := httptest.NewRecorder()
	a.router.ServeHTTP(w, req)
	if set := w.Result().Cookies(); len(set) > 0 {
		a.cookies = set
	}
	return w
}

func decodeCart(t *testing.T, w *httptest.ResponseRecorder) cartResponse {
	t.Helper()
	var resp cartResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return resp
}

func addBody(qty int) map[string]any {
	return map[string]any{
		"action":   "add",
		"quantity": qty,
		"variant":  testVariant(),
		"product":  testProduct(),
	}
}

func TestCartEndpointAdd(t *testing.T) {
	api := newCartAPI(t)

	w := api.do(t, http.MethodPost, "/api/cart", addBody(1))
	require.Equal(t, http.StatusOK, w.Code)

	resp := decodeCart(t, w)
	require.NotNil(t, resp.Cart)
	assert.Equal(t, 1, resp.TotalQuantity)
	require.Len(t, resp.Cart.Lines, 1)
	assert.NotEmpty(t, api.cookies, "first contact mints a session cookie")
	assert.Equal(t, sessionCookie, api.cookies[0].Name)
}

func TestCartEndpointFullFlow(t *testing.T) {
	api := newCartAPI(t)
	ctxLine := func(w *httptest.ResponseRecorder) string {
		resp := decodeCart(t, w)
		require.NotEmpty(t, resp.Cart.Lines)
		return resp.Cart.Lines[0].ID
	}

	w := api.do(t, http.MethodPost, "/api/cart", addBody(2))
	require.Equal(t, http.StatusOK, w.Code)
	lineID := ctxLine(w)

	w = api.do(t, http.MethodPost, "/api/cart", map[string]any{
		"action": "update", "lineId": lineID, "quantity": 5,
	})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 5, decodeCart(t, w).TotalQuantity)

	w = api.do(t, http.MethodPost, "/api/cart", map[string]any{
		"action": "remove", "lineId": lineID,
	})
	require.Equal(t, http.StatusOK, w.Code)
	resp := decodeCart(t, w)
	assert.Zero(t, resp.TotalQuantity)
	assert.Empty(t, resp.Cart.Lines)

	w = api.do(t, http.MethodGet, "/api/cart", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Zero(t, decodeCart(t, w).TotalQuantity)
}

func TestCartEndpointGetIsIdempotent(t *testing.T) {
	api := newCartAPI(t)

	api.do(t, http.MethodPost, "/api/cart", addBody(1))
	first := decodeCart(t, api.do(t, http.MethodPost, "/api/cart", map[string]any{"action": "get"}))
	second := decodeCart(t, api.do(t, http.MethodPost, "/api/cart", map[string]any{"action": "get"}))

	assert.Equal(t, first, second)
}

func TestCartEndpointValidation(t *testing.T) {
	api := newCartAPI(t)

	t.Run("unknown action", func(t *testing.T) {
		w := api.do(t, http.MethodPost, "/api/cart", map[string]any{"action": "explode"})
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("add without variant", func(t *testing.T) {
		w := api.do(t, http.MethodPost, "/api/cart", map[string]any{"action": "add", "quantity": 1})
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("update without line id", func(t *testing.T) {
		w := api.do(t, http.MethodPost, "/api/cart", map[string]any{"action": "update", "quantity": 1})
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("missing action", func(t *testing.T) {
		w := api.do(t, http.MethodPost, "/api/cart", map[string]any{})
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestCartEndpointBackendFailure(t *testing.T) {
	api := newCartAPI(t)

	require.Equal(t, http.StatusOK, api.do(t, http.MethodPost, "/api/cart", addBody(1)).Code)

	api.backend.failNext("add", errors.New("backend down"))
	w := api.do(t, http.MethodPost, "/api/cart", addBody(1))
	require.Equal(t, http.StatusBadGateway, w.Code)

	var resp map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Contains(t, resp["error"], "backend down")

	// The visible cart rolled back to the state before the failed add.
	get := decodeCart(t, api.do(t, http.MethodGet, "/api/cart", nil))
	assert.Equal(t, 1, get.TotalQuantity)
}

func TestCartSessionsAreIsolated(t *testing.T) {
	api := newCartAPI(t)
	other := &cartAPI{router: api.router, backend: api.backend}

	require.Equal(t, http.StatusOK, api.do(t, http.MethodPost, "/api/cart", addBody(3)).Code)

	w := other.do(t, http.MethodGet, "/api/cart", nil)
	require.Equal(t, http.StatusOK, w.Code)
	resp := decodeCart(t, w)
	assert.Zero(t, resp.TotalQuantity, "a fresh session starts with an empty cart")
	assert.Nil(t, resp.Cart)
}
