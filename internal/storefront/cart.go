package storefront

import (
	"context"
	"fmt"

	"saunahub/pkg/models"
)

// Four idempotent-by-id cart mutations plus a fetch. Every mutation response
// carries the full authoritative cart; totals are never computed here.

const cartFields = `
	id
	lines(first: 100) {
		edges {
			node {
				id
				quantity
				merchandise {
					... on ProductVariant {
						id
						title
						price {
							amount
							currencyCode
						}
						selectedOptions {
							name
							value
						}
						product {
							title
							handle
							images(first: 1) {
								edges {
									node {
										url
										altText
									}
								}
							}
						}
					}
				}
			}
		}
	}
	cost {
		totalAmount {
			amount
			currencyCode
		}
		subtotalAmount {
			amount
			currencyCode
		}
	}
	checkoutUrl`

type CartLineInput struct {
	MerchandiseID string `json:"merchandiseId"`
	Quantity      int    `json:"quantity"`
}

type CartLineUpdate struct {
	ID       string `json:"id"`
	Quantity int    `json:"quantity"`
}

type cartMutationPayload struct {
	Cart       *cartWire   `json:"cart"`
	UserErrors []userError `json:"userErrors"`
}

func (p cartMutationPayload) result(op string) (*models.Cart, error) {
	if len(p.UserErrors) > 0 {
		return nil, fmt.Errorf("%s: %s", op, p.UserErrors[0].Message)
	}
	if p.Cart == nil {
		return nil, fmt.Errorf("%s: backend returned no cart", op)
	}
	return p.Cart.toModel(), nil
}

func (c *Client) CreateCart(ctx context.Context) (*models.Cart, error) {
	query := fmt.Sprintf(`
		mutation cartCreate {
			cartCreate {
				cart {%s
				}
				userErrors {
					field
					message
				}
			}
		}`, cartFields)

	var data struct {
		CartCreate cartMutationPayload `json:"cartCreate"`
	}
	if err := c.do(ctx, query, nil, &data); err != nil {
		return nil, err
	}
	return data.CartCreate.result("cartCreate")
}

func (c *Client) AddCartLines(ctx context.Context, cartID string, lines []CartLineInput) (*models.Cart, error) {
	query := fmt.Sprintf(`
		mutation cartLinesAdd($cartId: ID!, $lines: [CartLineInput!]!) {
			cartLinesAdd(cartId: $cartId, lines: $lines) {
				cart {%s
				}
				userErrors {
					field
					message
				}
			}
		}`, cartFields)

	var data struct {
		CartLinesAdd cartMutationPayload `json:"cartLinesAdd"`
	}
	if err := c.do(ctx, query, map[string]any{"cartId": cartID, "lines": lines}, &data); err != nil {
		return nil, err
	}
	return data.CartLinesAdd.result("cartLinesAdd")
}

func (c *Client) UpdateCartLines(ctx context.Context, cartID string, lines []CartLineUpdate) (*models.Cart, error) {
	query := fmt.Sprintf(`
		mutation cartLinesUpdate($cartId: ID!, $lines: [CartLineUpdateInput!]!) {
			cartLinesUpdate(cartId: $cartId, lines: $lines) {
				cart {%s
				}
				userErrors {
					field
					message
				}
			}
		}`, cartFields)

	var data struct {
		CartLinesUpdate cartMutationPayload `json:"cartLinesUpdate"`
	}
	if err := c.do(ctx, query, map[string]any{"cartId": cartID, "lines": lines}, &data); err != nil {
		return nil, err
	}
	return data.CartLinesUpdate.result("cartLinesUpdate")
}

func (c *Client) RemoveCartLines(ctx context.Context, cartID string, lineIDs []string) (*models.Cart, error) {
	query := fmt.Sprintf(`
		mutation cartLinesRemove($cartId: ID!, $lineIds: [ID!]!) {
			cartLinesRemove(cartId: $cartId, lineIds: $lineIds) {
				cart {%s
				}
				userErrors {
					field
					message
				}
			}
		}`, cartFields)

	var data struct {
		CartLinesRemove cartMutationPayload `json:"cartLinesRemove"`
	}
	if err := c.do(ctx, query, map[string]any{"cartId": cartID, "lineIds": lineIDs}, &data); err != nil {
		return nil, err
	}
	return data.CartLinesRemove.result("cartLinesRemove")
}

// Cart fetches the cart by id; ErrCartNotFound when the backend returns null.
func (c *Client) Cart(ctx context.Context, cartID string) (*models.Cart, error) {
	query := fmt.Sprintf(`
		query getCart($cartId: ID!) {
			cart(id: $cartId) {%s
			}
		}`, cartFields)

	var data struct {
		Cart *cartWire `json:"cart"`
	}
	if err := c.do(ctx, query, map[string]any{"cartId": cartID}, &data); err != nil {
		return nil, err
	}
	if data.Cart == nil {
		return nil, ErrCartNotFound
	}
	return data.Cart.toModel(), nil
}
