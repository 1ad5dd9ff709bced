package models

// Money is a backend-issued amount. The amount stays a decimal string end to
// end; this service never does arithmetic on prices.
type Money struct {
	Amount       string `json:"amount"`
	CurrencyCode string `json:"currencyCode"`
}

// Merchandise is the purchasable variant a cart line points at, with the
// denormalized product display data captured at add time.
type Merchandise struct {
	ID              string           `json:"id"`
	Title           string           `json:"title"`
	Price           Money            `json:"price"`
	SelectedOptions []SelectedOption `json:"selectedOptions,omitempty"`
	Product         LineProduct      `json:"product"`
}

// LineProduct is the display snapshot of the parent product carried on a
// cart line (title, handle, first images).
type LineProduct struct {
	Title  string  `json:"title"`
	Handle string  `json:"handle"`
	Images []Image `json:"images"`
}

type CartLine struct {
	ID          string      `json:"id"`
	Quantity    int         `json:"quantity"`
	Merchandise Merchandise `json:"merchandise"`
}

type CartCost struct {
	TotalAmount    Money  `json:"totalAmount"`
	SubtotalAmount *Money `json:"subtotalAmount,omitempty"`
	TotalTaxAmount *Money `json:"totalTaxAmount,omitempty"`
}

// Cart mirrors the remote cart resource. The backend owns line ids and the
// cost aggregate; both are treated as authoritative here.
type Cart struct {
	ID          string    `json:"id"`
	Lines       []CartLine `json:"lines"`
	Cost        CartCost  `json:"cost"`
	CheckoutURL string    `json:"checkoutUrl"`
}

// TotalQuantity sums the line quantities of the cart as currently visible.
func (c *Cart) TotalQuantity() int {
	if c == nil {
		return 0
	}
	total := 0
	for _, l := range c.Lines {
		total += l.Quantity
	}
	return total
}

// Clone returns a deep copy so optimistic edits never alias the snapshot.
func (c *Cart) Clone() *Cart {
	if c == nil {
		return nil
	}
	cp := *c
	cp.Lines = make([]CartLine, len(c.Lines))
	copy(cp.Lines, c.Lines)
	if c.Cost.SubtotalAmount != nil {
		v := *c.Cost.SubtotalAmount
		cp.Cost.SubtotalAmount = &v
	}
	if c.Cost.TotalTaxAmount != nil {
		v := *c.Cost.TotalTaxAmount
		cp.Cost.TotalTaxAmount = &v
	}
	return &cp
}
