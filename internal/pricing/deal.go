package pricing

import "fmt"

// AggregateDeal computes every line item and sums the ones that are not
// empty into deal totals. In OTD mode only landing cost is summed and the
// offer is analysed instead.
func AggregateDeal(items []LineItem, settings DealSettings) DealResult {
	fee := settings.DeliveryFee.Float()
	res := DealResult{
		Mode:        settings.Mode,
		Items:       make([]LineResult, 0, len(items)),
		DeliveryFee: fee,
	}

	var profit float64
	hasProfit := false
	for _, item := range items {
		line := ComputeLineItem(item, settings)
		res.Items = append(res.Items, line)
		if !line.Included {
			continue
		}

		res.TotalLandingCost += line.LandingTotal
		if settings.Mode == ModeOtd {
			continue
		}
		res.InvoiceSubtotal += line.LineTotal
		res.QuoteSubtotal += line.QuoteTotal
		if line.TotalProfit != nil {
			profit += *line.TotalProfit
			hasProfit = true
		}
	}

	if hasProfit {
		res.TotalProfit = &profit
	}
	if res.InvoiceSubtotal > 0 && res.TotalLandingCost > 0 {
		res.OverallMargin = ptr(CalculateMargin(res.InvoiceSubtotal, res.TotalLandingCost))
		res.Badge = badgeFor(res.OverallMargin)
	}

	res.DeliveryTax = TaxOn(fee)
	res.MerchandiseTax = TaxOn(res.InvoiceSubtotal)
	if settings.Mode == ModeQuote && settings.NoTaxPromo {
		// Quote prices already carry merchandise tax.
		res.CustomerTotal = res.QuoteSubtotal + fee + res.DeliveryTax
	} else {
		res.CustomerTotal = res.InvoiceSubtotal + res.MerchandiseTax + fee + res.DeliveryTax
	}

	if settings.Mode == ModeOtd {
		otd := ComputeOtdAnalysis(settings.OtdOffer.Float(), fee, res.TotalLandingCost)
		res.Otd = &otd
	}
	return res
}

// Validate checks that a deal has enough input for its mode to be worth
// computing.
func Validate(items []LineItem, settings DealSettings) error {
	switch settings.Mode {
	case ModeQuote:
		for _, item := range items {
			if item.RawPrice > 0 {
				return nil
			}
		}
		return ErrNoPricedItems
	case ModeMarginCheck, ModeOtd:
		hasLanding := false
		for _, item := range items {
			if item.LandingCost > 0 {
				hasLanding = true
				break
			}
		}
		if !hasLanding {
			return ErrNoLandingCost
		}
		if settings.Mode == ModeOtd && settings.OtdOffer <= 0 {
			return ErrInvalidOtdOffer
		}
		return nil
	default:
		return fmt.Errorf("%w: %q", ErrUnknownMode, settings.Mode)
	}
}

// Compute validates a deal and aggregates it.
func Compute(items []LineItem, settings DealSettings) (DealResult, error) {
	if err := Validate(items, settings); err != nil {
		return DealResult{}, err
	}
	return AggregateDeal(items, settings), nil
}
