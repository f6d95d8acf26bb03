// Package export renders a computed deal as plain text for the clipboard.
package export

import (
	"fmt"
	"strings"

	"github.com/dustin/go-humanize"

	"github.com/Simplici0/dealdesk/internal/pricing"
)

// Money formats a dollar amount rounded to cents, e.g. "$1,063.97".
func Money(v float64) string {
	v = pricing.Round2(v)
	if v < 0 {
		return "-$" + humanize.FormatFloat("#,###.##", -v)
	}
	return "$" + humanize.FormatFloat("#,###.##", v)
}

// Percent formats a margin, or "n/a" when it is unknown.
func Percent(margin *float64) string {
	if margin == nil {
		return "n/a"
	}
	return fmt.Sprintf("%.2f%%", pricing.Round2(*margin))
}

// Format renders the deal summary for its mode.
func Format(res pricing.DealResult, settings pricing.DealSettings) string {
	var b strings.Builder
	switch res.Mode {
	case pricing.ModeMarginCheck:
		writeMarginCheck(&b, res)
	case pricing.ModeOtd:
		writeOtd(&b, res)
	default:
		writeQuote(&b, res, settings)
	}
	return strings.TrimRight(b.String(), "\n")
}

func writeQuote(b *strings.Builder, res pricing.DealResult, settings pricing.DealSettings) {
	header := "Quote"
	if settings.PriceType == pricing.PriceTypeTag && settings.SalePercent > 0 {
		header += fmt.Sprintf(" (%d%% off tag)", settings.SalePercent)
	}
	if settings.NoTaxPromo {
		header += " - No-Tax Promo"
	}
	fmt.Fprintln(b, header)

	n := 0
	for _, line := range res.Items {
		if !line.Included {
			continue
		}
		n++
		price, total := line.InvoicePrice, line.LineTotal
		if settings.NoTaxPromo {
			price, total = line.QuotePrice, line.QuoteTotal
		}
		fmt.Fprintf(b, "Item %d: %d x %s = %s\n", n, line.Units, Money(price), Money(total))
	}

	if settings.NoTaxPromo {
		fmt.Fprintf(b, "Merchandise (tax included): %s\n", Money(res.QuoteSubtotal))
	} else {
		fmt.Fprintf(b, "Subtotal: %s\n", Money(res.InvoiceSubtotal))
		fmt.Fprintf(b, "Tax (%s%%): %s\n", taxRateLabel(), Money(res.MerchandiseTax))
	}
	writeDelivery(b, res.DeliveryFee, res.DeliveryTax)
	fmt.Fprintf(b, "Total: %s\n", Money(res.CustomerTotal))
}

func writeMarginCheck(b *strings.Builder, res pricing.DealResult) {
	fmt.Fprintln(b, "Margin Check")

	n := 0
	for _, line := range res.Items {
		if !line.Included {
			continue
		}
		n++
		fmt.Fprintf(b, "Item %d: %d x %s, landing %s -> %s%s", n, line.Units, Money(line.InvoicePrice), Money(line.LandingTotal/float64(line.Units)), Percent(line.Margin), badgeLabel(line.Badge))
		if line.TotalProfit != nil {
			fmt.Fprintf(b, ", profit %s", Money(*line.TotalProfit))
		}
		fmt.Fprintln(b)
	}

	fmt.Fprintf(b, "Invoice subtotal: %s\n", Money(res.InvoiceSubtotal))
	fmt.Fprintf(b, "Landing cost: %s\n", Money(res.TotalLandingCost))
	fmt.Fprintf(b, "Overall margin: %s%s\n", Percent(res.OverallMargin), badgeLabel(res.Badge))
	if res.TotalProfit != nil {
		fmt.Fprintf(b, "Total profit: %s\n", Money(*res.TotalProfit))
	} else {
		fmt.Fprintln(b, "Total profit: n/a")
	}
}

func writeOtd(b *strings.Builder, res pricing.DealResult) {
	otd := res.Otd
	if otd == nil {
		return
	}

	fmt.Fprintf(b, "Out-the-door offer: %s\n", Money(otd.Offer))
	writeDelivery(b, otd.DeliveryFee, otd.DeliveryTax)
	fmt.Fprintf(b, "Sale price: %s\n", Money(otd.SalePrice))
	fmt.Fprintf(b, "Tax: %s\n", Money(otd.MerchandiseTax))
	fmt.Fprintf(b, "Landing cost: %s\n", Money(res.TotalLandingCost))
	status := ""
	if otd.Status != "" {
		status = " (" + string(otd.Status) + ")"
	}
	fmt.Fprintf(b, "Margin: %s%s\n", Percent(otd.Margin), status)
	fmt.Fprintf(b, "Profit: %s\n", Money(otd.Profit))

	if len(otd.CounterOffers) > 0 && res.TotalLandingCost > 0 {
		fmt.Fprintln(b, "Counter offers:")
		for _, offer := range otd.CounterOffers {
			fmt.Fprintf(b, "  %d%%: %s\n", offer.Target, Money(offer.Price))
		}
	}
}

func writeDelivery(b *strings.Builder, fee, tax float64) {
	if fee <= 0 {
		fmt.Fprintln(b, "Delivery: none")
		return
	}
	fmt.Fprintf(b, "Delivery: %s\n", Money(fee))
	fmt.Fprintf(b, "Delivery tax: %s\n", Money(tax))
}

func badgeLabel(b *pricing.Badge) string {
	if b == nil {
		return ""
	}
	return " (" + b.Label + ")"
}

func taxRateLabel() string {
	return strings.TrimRight(strings.TrimRight(fmt.Sprintf("%.4f", pricing.TaxRate*100), "0"), ".")
}
