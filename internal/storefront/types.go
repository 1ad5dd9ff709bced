package storefront

import "saunahub/pkg/models"

// GraphQL wire shapes (edges/nodes), flattened into pkg/models types before
// leaving this package.

type imageConn struct {
	Edges []struct {
		Node models.Image `json:"node"`
	} `json:"edges"`
}

func (c imageConn) flatten() []models.Image {
	out := make([]models.Image, 0, len(c.Edges))
	for _, e := range c.Edges {
		out = append(out, e.Node)
	}
	return out
}

type variantWire struct {
	ID               string                  `json:"id"`
	Title            string                  `json:"title"`
	Price            models.Money            `json:"price"`
	AvailableForSale bool                    `json:"availableForSale"`
	SelectedOptions  []models.SelectedOption `json:"selectedOptions"`
}

type productWire struct {
	ID                  string                 `json:"id"`
	Title               string                 `json:"title"`
	Description         string                 `json:"description"`
	DescriptionHTML     string                 `json:"descriptionHtml"`
	Handle              string                 `json:"handle"`
	AvailableForSale    bool                   `json:"availableForSale"`
	ProductType         string                 `json:"productType"`
	Options             []models.ProductOption `json:"options"`
	Images              imageConn              `json:"images"`
	PriceRange          models.PriceRange      `json:"priceRange"`
	CompareAtPriceRange *models.PriceRange     `json:"compareAtPriceRange"`
	Variants            struct {
		Edges []struct {
			Node variantWire `json:"node"`
		} `json:"edges"`
	} `json:"variants"`
}

func (p productWire) toModel() models.Product {
	variants := make([]models.Variant, 0, len(p.Variants.Edges))
	for _, e := range p.Variants.Edges {
		variants = append(variants, models.Variant{
			ID:               e.Node.ID,
			Title:            e.Node.Title,
			Price:            e.Node.Price,
			AvailableForSale: e.Node.AvailableForSale,
			SelectedOptions:  e.Node.SelectedOptions,
		})
	}
	return models.Product{
		ID:                  p.ID,
		Title:               p.Title,
		Description:         p.Description,
		DescriptionHTML:     p.DescriptionHTML,
		Handle:              p.Handle,
		AvailableForSale:    p.AvailableForSale,
		ProductType:         p.ProductType,
		Options:             p.Options,
		Images:              p.Images.flatten(),
		Variants:            variants,
		PriceRange:          p.PriceRange,
		CompareAtPriceRange: p.CompareAtPriceRange,
	}
}

type merchandiseWire struct {
	ID              string                  `json:"id"`
	Title           string                  `json:"title"`
	Price           models.Money            `json:"price"`
	SelectedOptions []models.SelectedOption `json:"selectedOptions"`
	Product         struct {
		Title  string    `json:"title"`
		Handle string    `json:"handle"`
		Images imageConn `json:"images"`
	} `json:"product"`
}

type cartWire struct {
	ID    string `json:"id"`
	Lines struct {
		Edges []struct {
			Node struct {
				ID          string          `json:"id"`
				Quantity    int             `json:"quantity"`
				Merchandise merchandiseWire `json:"merchandise"`
			} `json:"node"`
		} `json:"edges"`
	} `json:"lines"`
	Cost        models.CartCost `json:"cost"`
	CheckoutURL string          `json:"checkoutUrl"`
}

func (w cartWire) toModel() *models.Cart {
	lines := make([]models.CartLine, 0, len(w.Lines.Edges))
	for _, e := range w.Lines.Edges {
		m := e.Node.Merchandise
		lines = append(lines, models.CartLine{
			ID:       e.Node.ID,
			Quantity: e.Node.Quantity,
			Merchandise: models.Merchandise{
				ID:              m.ID,
				Title:           m.Title,
				Price:           m.Price,
				SelectedOptions: m.SelectedOptions,
				Product: models.LineProduct{
					Title:  m.Product.Title,
					Handle: m.Product.Handle,
					Images: m.Product.Images.flatten(),
				},
			},
		})
	}
	return &models.Cart{
		ID:          w.ID,
		Lines:       lines,
		Cost:        w.Cost,
		CheckoutURL: w.CheckoutURL,
	}
}

type userError struct {
	Field   []string `json:"field"`
	Message string   `json:"message"`
}
