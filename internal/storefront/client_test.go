package storefront

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"saunahub/pkg/utils"
)

// graphQLStub answers every POST with a canned body and captures the last
// request for assertions.
type graphQLStub struct {
	body      string
	status    int
	lastQuery string
	lastToken string
	lastVars  map[string]any
}

func (g *graphQLStub) handler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			Query     string         `json:"query"`
			Variables map[string]any `json:"variables"`
		}
		_ = json.NewDecoder(r.Body).Decode(&req)
		g.lastQuery = req.Query
		g.lastVars = req.Variables
		g.lastToken = r.Header.Get("X-Shopify-Storefront-Access-Token")

		status := g.status
		if status == 0 {
			status = http.StatusOK
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = w.Write([]byte(g.body))
	}
}

func newStubClient(t *testing.T, stub *graphQLStub) *Client {
	t.Helper()
	srv := httptest.NewServer(stub.handler())
	t.Cleanup(srv.Close)
	return NewClientForURL(srv.URL, "test-token", 2*time.Second, zap.NewNop())
}

func TestProducts(t *testing.T) {
	stub := &graphQLStub{body: `{
		"data": {
			"products": {
				"edges": [{
					"node": {
						"id": "gid://product/1",
						"title": "Barrel Sauna",
						"description": "Outdoor barrel sauna.",
						"handle": "barrel-sauna",
						"availableForSale": true,
						"productType": "Saunas",
						"images": {"edges": [{"node": {"url": "https://img/1.jpg", "altText": "front"}}]},
						"priceRange": {"minVariantPrice": {"amount": "3499.0", "currencyCode": "EUR"}},
						"variants": {"edges": [{
							"node": {
								"id": "gid://variant/1",
								"title": "2-Person",
								"price": {"amount": "3499.0", "currencyCode": "EUR"},
								"availableForSale": true,
								"selectedOptions": [{"name": "Size", "value": "2-Person"}]
							}
						}]}
					}
				}]
			}
		}
	}`}
	client := newStubClient(t, stub)

	products, err := client.Products(context.Background(), ProductQuery{Locale: "es"})
	require.NoError(t, err)
	require.Len(t, products, 1)

	p := products[0]
	assert.Equal(t, "Barrel Sauna", p.Title)
	assert.Equal(t, "barrel-sauna", p.Handle)
	require.Len(t, p.Images, 1)
	assert.Equal(t, "https://img/1.jpg", p.Images[0].URL)
	require.Len(t, p.Variants, 1)
	assert.Equal(t, "gid://variant/1", p.Variants[0].ID)
	assert.Equal(t, "3499.0", p.PriceRange.MinVariantPrice.Amount)

	assert.Equal(t, "test-token", stub.lastToken)
	assert.Contains(t, stub.lastQuery, "@inContext(language: ES)")
	assert.Equal(t, float64(DefaultPageSize), stub.lastVars["first"])
	assert.Equal(t, DefaultSortKey, stub.lastVars["sortKey"])
}

func TestProductByHandle(t *testing.T) {
	t.Run("unknown handle returns nil without error", func(t *testing.T) {
		client := newStubClient(t, &graphQLStub{body: `{"data": {"product": null}}`})
		p, err := client.ProductByHandle(context.Background(), "nope", "en")
		require.NoError(t, err)
		assert.Nil(t, p)
	})
}

func TestCartNotFound(t *testing.T) {
	client := newStubClient(t, &graphQLStub{body: `{"data": {"cart": null}}`})
	_, err := client.Cart(context.Background(), "cart-gone")
	assert.ErrorIs(t, err, ErrCartNotFound)
}

func TestCartMutationUserErrors(t *testing.T) {
	client := newStubClient(t, &graphQLStub{body: `{
		"data": {
			"cartLinesAdd": {
				"cart": null,
				"userErrors": [{"field": ["lines"], "message": "variant is sold out"}]
			}
		}
	}`})

	_, err := client.AddCartLines(context.Background(), "cart-1", []CartLineInput{{MerchandiseID: "v1", Quantity: 1}})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "variant is sold out")
}

func TestCreateCart(t *testing.T) {
	client := newStubClient(t, &graphQLStub{body: `{
		"data": {
			"cartCreate": {
				"cart": {
					"id": "cart-1",
					"lines": {"edges": []},
					"cost": {"totalAmount": {"amount": "0.0", "currencyCode": "EUR"}},
					"checkoutUrl": "https://shop/checkout"
				},
				"userErrors": []
			}
		}
	}`})

	c, err := client.CreateCart(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "cart-1", c.ID)
	assert.Empty(t, c.Lines)
	assert.Equal(t, "https://shop/checkout", c.CheckoutURL)
}

func TestGraphQLErrorsSurface(t *testing.T) {
	client := newStubClient(t, &graphQLStub{body: `{"errors": [{"message": "throttled"}], "data": null}`})
	_, err := client.Products(context.Background(), ProductQuery{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "throttled")
}

func TestHTTPErrorSurfaces(t *testing.T) {
	client := newStubClient(t, &graphQLStub{status: http.StatusBadGateway, body: "upstream broken"})
	_, err := client.Products(context.Background(), ProductQuery{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "502")
}

func TestNotConfigured(t *testing.T) {
	client := NewClient(utils.StorefrontConfig{}, zap.NewNop())
	assert.False(t, client.Configured())

	_, err := client.Products(context.Background(), ProductQuery{})
	assert.ErrorIs(t, err, ErrNotConfigured)

	_, err = client.CreateCart(context.Background())
	assert.ErrorIs(t, err, ErrNotConfigured)
}
