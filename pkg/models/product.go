package models

type Image struct {
	URL     string `json:"url"`
	AltText string `json:"altText,omitempty"`
}

type SelectedOption struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

type ProductOption struct {
	ID     string   `json:"id"`
	Name   string   `json:"name"`
	Values []string `json:"values"`
}

type Variant struct {
	ID               string           `json:"id"`
	Title            string           `json:"title"`
	Price            Money            `json:"price"`
	AvailableForSale bool             `json:"availableForSale"`
	SelectedOptions  []SelectedOption `json:"selectedOptions"`
}

type PriceRange struct {
	MinVariantPrice Money `json:"minVariantPrice"`
}

// Product is the read-only, locale-scoped catalog projection consumed from
// the commerce backend. Nothing here is persisted locally.
type Product struct {
	ID                  string          `json:"id"`
	Title               string          `json:"title"`
	Description         string          `json:"description"`
	DescriptionHTML     string          `json:"descriptionHtml,omitempty"`
	Handle              string          `json:"handle"`
	AvailableForSale    bool            `json:"availableForSale"`
	ProductType         string          `json:"productType,omitempty"`
	Options             []ProductOption `json:"options,omitempty"`
	Images              []Image         `json:"images"`
	Variants            []Variant       `json:"variants"`
	PriceRange          PriceRange      `json:"priceRange"`
	CompareAtPriceRange *PriceRange     `json:"compareAtPriceRange,omitempty"`
}
