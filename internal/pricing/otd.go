package pricing

// OtdStatus is the approval status of an out-the-door offer.
type OtdStatus string

const (
	OtdApproved        OtdStatus = "Approved"
	OtdManagerApproval OtdStatus = "Manager Approval"
	OtdCounterOffer    OtdStatus = "Counter Offer"
)

// OtdAnalysis is what a customer's all-in offer implies.
type OtdAnalysis struct {
	Offer              float64       `json:"offer"`
	DeliveryFee        float64       `json:"deliveryFee"`
	DeliveryTax        float64       `json:"deliveryTax"`
	MerchandiseWithTax float64       `json:"merchandiseWithTax"`
	SalePrice          float64       `json:"salePrice"`
	MerchandiseTax     float64       `json:"merchandiseTax"`
	Margin             *float64      `json:"margin"`
	Profit             float64       `json:"profit"`
	Badge              *Badge        `json:"badge,omitempty"`
	Status             OtdStatus     `json:"status,omitempty"`
	CounterOffers      []TargetPrice `json:"counterOffers"`
}

// ComputeOtdAnalysis backs the sale price, margin and profit out of an
// all-in offer and prices a counter offer at every margin target. Offers
// below the delivery floor give a negative sale price, not an error.
func ComputeOtdAnalysis(offer, deliveryFee, totalLandingCost float64) OtdAnalysis {
	deliveryTax := TaxOn(deliveryFee)
	merchandiseWithTax := offer - deliveryFee - deliveryTax
	salePrice := RemoveTax(merchandiseWithTax)

	out := OtdAnalysis{
		Offer:              offer,
		DeliveryFee:        deliveryFee,
		DeliveryTax:        deliveryTax,
		MerchandiseWithTax: merchandiseWithTax,
		SalePrice:          salePrice,
		MerchandiseTax:     merchandiseWithTax - salePrice,
		Profit:             salePrice - totalLandingCost,
	}
	if totalLandingCost > 0 {
		out.Margin = ptr(CalculateMargin(salePrice, totalLandingCost))
		out.Badge = badgeFor(out.Margin)
		out.Status = statusFor(*out.Badge)
	}

	for _, target := range targetPrices(totalLandingCost) {
		out.CounterOffers = append(out.CounterOffers, TargetPrice{
			Target: target.Target,
			Price:  AddTax(target.Price) + deliveryFee + deliveryTax,
		})
	}
	return out
}

func statusFor(b Badge) OtdStatus {
	switch b.Level {
	case BadgeGreen:
		return OtdApproved
	case BadgeOrange:
		return OtdManagerApproval
	default:
		return OtdCounterOffer
	}
}
