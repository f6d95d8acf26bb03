package pricing

// resolutionKey is one row selector of the line resolution table.
type resolutionKey struct {
	mode       Mode
	noTaxPromo bool
	marginSet  bool
	hasPrice   bool
}

// resolution says which price form the raw input is, and whether the sale
// discount applies to it when the price type is tag.
type resolution struct {
	anchor   Representation
	discount bool
}

var (
	asInvoice       = resolution{anchor: RepresentationInvoice, discount: true}
	asQuote         = resolution{anchor: RepresentationQuote, discount: true}
	asMarginInvoice = resolution{anchor: RepresentationInvoice, discount: false}
)

// resolutionTable covers every (mode, noTaxPromo, marginSet, hasPrice)
// combination. A margin pick only matters in margin check mode.
var resolutionTable = map[resolutionKey]resolution{
	{ModeQuote, false, false, false}: asInvoice,
	{ModeQuote, false, false, true}:  asInvoice,
	{ModeQuote, false, true, false}:  asInvoice,
	{ModeQuote, false, true, true}:   asInvoice,
	{ModeQuote, true, false, false}:  asQuote,
	{ModeQuote, true, false, true}:   asQuote,
	{ModeQuote, true, true, false}:   asQuote,
	{ModeQuote, true, true, true}:    asQuote,

	{ModeMarginCheck, false, false, false}: asInvoice,
	{ModeMarginCheck, false, false, true}:  asInvoice,
	{ModeMarginCheck, false, true, false}:  asInvoice,
	{ModeMarginCheck, false, true, true}:   asMarginInvoice,
	{ModeMarginCheck, true, false, false}:  asInvoice,
	{ModeMarginCheck, true, false, true}:   asQuote,
	{ModeMarginCheck, true, true, false}:   asInvoice,
	{ModeMarginCheck, true, true, true}:    asMarginInvoice,

	{ModeOtd, false, false, false}: asInvoice,
	{ModeOtd, false, false, true}:  asInvoice,
	{ModeOtd, false, true, false}:  asInvoice,
	{ModeOtd, false, true, true}:   asInvoice,
	{ModeOtd, true, false, false}:  asInvoice,
	{ModeOtd, true, false, true}:   asInvoice,
	{ModeOtd, true, true, false}:   asInvoice,
	{ModeOtd, true, true, true}:    asInvoice,
}

func resolve(settings DealSettings, item LineItem) resolution {
	key := resolutionKey{
		mode:       settings.Mode,
		noTaxPromo: settings.NoTaxPromo,
		marginSet:  item.MarginSet(),
		hasPrice:   item.RawPrice > 0,
	}
	if r, ok := resolutionTable[key]; ok {
		return r
	}
	return asInvoice
}

// ComputeLineItem derives the sale, invoice and quote prices of one item and
// its margin and profit against landing cost.
func ComputeLineItem(item LineItem, settings DealSettings) LineResult {
	raw := item.RawPrice.Float()
	landing := item.LandingCost.Float()
	rule := resolve(settings, item)

	out := LineResult{
		Authority: rule.anchor,
		SalePrice: raw,
		Units:     item.Quantity.Units(),
	}
	if rule.discount && settings.PriceType == PriceTypeTag {
		out.SalePrice = ApplyDiscount(raw, float64(settings.SalePercent))
		out.Authority = RepresentationTag
	}

	switch rule.anchor {
	case RepresentationQuote:
		out.QuotePrice = out.SalePrice
		out.InvoicePrice = RemoveTax(out.QuotePrice)
	default:
		out.InvoicePrice = out.SalePrice
		if out.InvoicePrice > 0 {
			out.QuotePrice = AddTax(out.InvoicePrice)
		}
	}

	units := float64(out.Units)
	out.LineTotal = out.InvoicePrice * units
	out.QuoteTotal = out.QuotePrice * units
	out.LandingTotal = landing * units

	if landing > 0 && out.InvoicePrice > 0 {
		margin := CalculateMargin(out.InvoicePrice, landing)
		profit := out.InvoicePrice - landing
		out.Margin = &margin
		out.ProfitPerUnit = &profit
		out.TotalProfit = ptr(profit * units)
		out.Badge = badgeFor(out.Margin)
	}
	if landing > 0 {
		out.PriceAt = targetPrices(landing)
	}

	out.Included = !(out.LineTotal == 0 && landing == 0)
	return out
}

// SetRawPrice records a typed price. A typed price always replaces a margin
// target pick.
func SetRawPrice(item LineItem, price Amount) LineItem {
	item.RawPrice = price
	item.Pick = nil
	return item
}

// ToggleMarginTarget prices item at target margin over its landing cost.
// Picking the target that is already active restores the price typed before
// the first pick. Switching between targets keeps that original price.
func ToggleMarginTarget(item LineItem, target MarginTarget) (LineItem, error) {
	if !target.Valid() {
		return item, ErrInvalidMarginTarget
	}

	if item.Pick != nil && item.Pick.Target == target {
		item.RawPrice = item.Pick.OriginalPrice
		item.Pick = nil
		return item, nil
	}

	if item.LandingCost <= 0 {
		return item, ErrNoLandingCost
	}
	price, err := PriceForMargin(item.LandingCost.Float(), float64(target))
	if err != nil {
		return item, err
	}

	original := item.RawPrice
	if item.Pick != nil {
		original = item.Pick.OriginalPrice
	}
	item.RawPrice = Amount(Round2(price))
	item.Pick = &MarginPick{Target: target, OriginalPrice: original}
	return item, nil
}
