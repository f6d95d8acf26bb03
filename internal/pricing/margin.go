package pricing

import (
	"fmt"
)

// CalculateMargin returns the margin of salePrice over landingCost as a
// percentage of the sale price. A non-positive sale price yields 0.
func CalculateMargin(salePrice, landingCost float64) float64 {
	if salePrice <= 0 {
		return 0
	}
	return (salePrice - landingCost) / salePrice * 100
}

// PriceForMargin returns the sale price at which landingCost yields
// targetPercent margin.
func PriceForMargin(landingCost, targetPercent float64) (float64, error) {
	if targetPercent >= 100 {
		return 0, fmt.Errorf("price for %.2f%% margin: %w", targetPercent, ErrInvalidMarginTarget)
	}
	return landingCost / (1 - targetPercent/100), nil
}

// targetPrices returns the price reaching each supported target.
func targetPrices(landingCost float64) []TargetPrice {
	prices := make([]TargetPrice, 0, len(MarginTargets))
	for _, target := range MarginTargets {
		price, err := PriceForMargin(landingCost, float64(target))
		if err != nil {
			continue
		}
		prices = append(prices, TargetPrice{Target: target, Price: price})
	}
	return prices
}

// BadgeLevel is the color band of a margin.
type BadgeLevel string

const (
	BadgeGreen  BadgeLevel = "green"
	BadgeOrange BadgeLevel = "orange"
	BadgeRed    BadgeLevel = "red"
)

// Badge is the display classification of a margin.
type Badge struct {
	Level BadgeLevel `json:"level"`
	Label string     `json:"label"`
}

// ClassifyMargin places a margin percentage in its band. The margin is
// rounded to cents first so 46.995 reads as 47.00 and lands in orange.
func ClassifyMargin(margin float64) Badge {
	m := Round2(margin)
	switch {
	case m >= 50:
		return Badge{Level: BadgeGreen, Label: "Great"}
	case m >= 47:
		return Badge{Level: BadgeOrange, Label: "OK"}
	default:
		return Badge{Level: BadgeRed, Label: "Too Low"}
	}
}

func badgeFor(margin *float64) *Badge {
	if margin == nil {
		return nil
	}
	b := ClassifyMargin(*margin)
	return &b
}
