package storefront

import (
	"context"
	"fmt"

	"saunahub/internal/locale"
	"saunahub/pkg/models"
)

const (
	DefaultPageSize = 20
	DefaultSortKey  = "TITLE"
)

const productFields = `
	id
	title
	description
	descriptionHtml
	handle
	availableForSale
	productType
	options {
		id
		name
		values
	}
	images(first: 5) {
		edges {
			node {
				url
				altText
			}
		}
	}
	priceRange {
		minVariantPrice {
			amount
			currencyCode
		}
	}
	compareAtPriceRange {
		minVariantPrice {
			amount
			currencyCode
		}
	}
	variants(first: 10) {
		edges {
			node {
				id
				title
				price {
					amount
					currencyCode
				}
				availableForSale
				selectedOptions {
					name
					value
				}
			}
		}
	}`

type ProductQuery struct {
	First   int
	SortKey string
	Reverse bool
	Locale  locale.Locale
}

// Products returns the locale-scoped catalog projection.
func (c *Client) Products(ctx context.Context, q ProductQuery) ([]models.Product, error) {
	if q.First <= 0 {
		q.First = DefaultPageSize
	}
	if q.SortKey == "" {
		q.SortKey = DefaultSortKey
	}

	query := fmt.Sprintf(`
		query getProducts($first: Int!, $sortKey: ProductSortKeys!, $reverse: Boolean) @inContext(language: %s) {
			products(first: $first, sortKey: $sortKey, reverse: $reverse) {
				edges {
					node {%s
					}
				}
			}
		}`, languageCode(q.Locale), productFields)

	var data struct {
		Products struct {
			Edges []struct {
				Node productWire `json:"node"`
			} `json:"edges"`
		} `json:"products"`
	}
	err := c.do(ctx, query, map[string]any{
		"first":   q.First,
		"sortKey": q.SortKey,
		"reverse": q.Reverse,
	}, &data)
	if err != nil {
		return nil, err
	}

	out := make([]models.Product, 0, len(data.Products.Edges))
	for _, e := range data.Products.Edges {
		out = append(out, e.Node.toModel())
	}
	return out, nil
}

// ProductByHandle returns one product, or nil when the handle is unknown.
func (c *Client) ProductByHandle(ctx context.Context, handle string, loc locale.Locale) (*models.Product, error) {
	query := fmt.Sprintf(`
		query getProduct($handle: String!) @inContext(language: %s) {
			product(handle: $handle) {%s
			}
		}`, languageCode(loc), productFields)

	var data struct {
		Product *productWire `json:"product"`
	}
	if err := c.do(ctx, query, map[string]any{"handle": handle}, &data); err != nil {
		return nil, err
	}
	if data.Product == nil {
		return nil, nil
	}
	p := data.Product.toModel()
	return &p, nil
}
