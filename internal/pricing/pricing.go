// Package pricing converts between tag, sale, invoice and quote prices,
// checks margins against landing cost and back-calculates out-the-door
// offers for a single furniture deal. Every function is pure: callers pass a
// full snapshot of line items and settings and get a complete result back.
package pricing

// TaxRate is the sales tax applied to merchandise and delivery.
const TaxRate = 0.09125

// Mode selects how a deal is being worked.
type Mode string

const (
	ModeQuote       Mode = "quote"
	ModeMarginCheck Mode = "margin_check"
	ModeOtd         Mode = "otd"
)

// Valid reports whether m is one of the supported modes.
func (m Mode) Valid() bool {
	switch m {
	case ModeQuote, ModeMarginCheck, ModeOtd:
		return true
	}
	return false
}

// PriceType tells whether a typed price is before or after the sale discount.
type PriceType string

const (
	PriceTypeSale PriceType = "sale"
	PriceTypeTag  PriceType = "tag"
)

// Representation names the price form a line item's raw input holds.
type Representation string

const (
	RepresentationTag     Representation = "tag"
	RepresentationInvoice Representation = "invoice"
	RepresentationQuote   Representation = "quote"
)

// MarginTarget is one of the margin percentages a seller can price to.
type MarginTarget int

const (
	Target50 MarginTarget = 50
	Target49 MarginTarget = 49
	Target48 MarginTarget = 48
	Target47 MarginTarget = 47
)

// MarginTargets lists the supported targets, highest first.
var MarginTargets = []MarginTarget{Target50, Target49, Target48, Target47}

// Valid reports whether t is a supported margin target.
func (t MarginTarget) Valid() bool {
	for _, known := range MarginTargets {
		if t == known {
			return true
		}
	}
	return false
}

// MarginPick records that a line item's price came from a margin target
// click. OriginalPrice is the price typed before the first click.
type MarginPick struct {
	Target        MarginTarget `json:"target"`
	OriginalPrice Amount       `json:"originalPrice"`
}

// LineItem is one row of a deal as entered by the seller.
type LineItem struct {
	RawPrice    Amount      `json:"rawPrice"`
	Quantity    Quantity    `json:"quantity"`
	LandingCost Amount      `json:"landingCost"`
	Pick        *MarginPick `json:"marginPick,omitempty"`
}

// MarginSet reports whether RawPrice was produced by a margin target.
func (li LineItem) MarginSet() bool {
	return li.Pick != nil
}

// SelectedMargin returns the active margin target, if any.
func (li LineItem) SelectedMargin() (MarginTarget, bool) {
	if li.Pick == nil {
		return 0, false
	}
	return li.Pick.Target, true
}

// DealSettings holds the deal-wide inputs.
type DealSettings struct {
	Mode        Mode      `json:"mode"`
	SalePercent int       `json:"salePercent"`
	NoTaxPromo  bool      `json:"noTaxPromo"`
	PriceType   PriceType `json:"priceType"`
	DeliveryFee Amount    `json:"deliveryFee"`
	OtdOffer    Amount    `json:"otdOffer"`
}

// TargetPrice pairs a margin target with the price that reaches it.
type TargetPrice struct {
	Target MarginTarget `json:"target"`
	Price  float64      `json:"price"`
}

// LineResult is the derived view of one line item.
type LineResult struct {
	Authority     Representation `json:"authority"`
	SalePrice     float64        `json:"salePrice"`
	InvoicePrice  float64        `json:"invoicePrice"`
	QuotePrice    float64        `json:"quotePrice"`
	Units         int            `json:"units"`
	LineTotal     float64        `json:"lineTotal"`
	QuoteTotal    float64        `json:"quoteTotal"`
	LandingTotal  float64        `json:"landingTotal"`
	Margin        *float64       `json:"margin"`
	ProfitPerUnit *float64       `json:"profitPerUnit"`
	TotalProfit   *float64       `json:"totalProfit"`
	Badge         *Badge         `json:"badge,omitempty"`
	PriceAt       []TargetPrice  `json:"priceAt,omitempty"`
	Included      bool           `json:"included"`
}

// DealResult is the aggregated view of a whole deal.
type DealResult struct {
	Mode             Mode         `json:"mode"`
	Items            []LineResult `json:"items"`
	InvoiceSubtotal  float64      `json:"invoiceSubtotal"`
	QuoteSubtotal    float64      `json:"quoteSubtotal"`
	TotalLandingCost float64      `json:"totalLandingCost"`
	TotalProfit      *float64     `json:"totalProfit"`
	OverallMargin    *float64     `json:"overallMargin"`
	Badge            *Badge       `json:"badge,omitempty"`
	MerchandiseTax   float64      `json:"merchandiseTax"`
	DeliveryFee      float64      `json:"deliveryFee"`
	DeliveryTax      float64      `json:"deliveryTax"`
	CustomerTotal    float64      `json:"customerTotal"`
	Otd              *OtdAnalysis `json:"otd,omitempty"`
}

func ptr(v float64) *float64 {
	return &v
}
