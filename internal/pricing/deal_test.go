package pricing

import (
	"errors"
	"reflect"
	"testing"
)

func TestAggregateDeal_QuoteNoTaxPromo(t *testing.T) {
	items := []LineItem{{RawPrice: 1200, Quantity: 1, LandingCost: 600}}
	settings := DealSettings{Mode: ModeQuote, SalePercent: 30, NoTaxPromo: true, PriceType: PriceTypeTag, DeliveryFee: 135}

	got := AggregateDeal(items, settings)

	centsEqual(t, "invoiceSubtotal", got.InvoiceSubtotal, 769.76)
	centsEqual(t, "quoteSubtotal", got.QuoteSubtotal, 840)
	centsEqual(t, "deliveryTax", got.DeliveryTax, 12.32)
	centsEqual(t, "customerTotal", got.CustomerTotal, 987.32)
}

func TestAggregateDeal_QuoteTaxed(t *testing.T) {
	items := []LineItem{{RawPrice: 1200, Quantity: 1, LandingCost: 600}}
	settings := DealSettings{Mode: ModeQuote, SalePercent: 30, PriceType: PriceTypeTag, DeliveryFee: 135}

	got := AggregateDeal(items, settings)

	centsEqual(t, "invoiceSubtotal", got.InvoiceSubtotal, 840)
	centsEqual(t, "merchandiseTax", got.MerchandiseTax, 76.65)
	centsEqual(t, "deliveryTax", got.DeliveryTax, 12.32)
	centsEqual(t, "customerTotal", got.CustomerTotal, 1063.97)
	if got.Otd != nil {
		t.Fatalf("expected no otd analysis outside otd mode")
	}
}

func TestAggregateDeal_SumsAndFilters(t *testing.T) {
	items := []LineItem{
		{RawPrice: 1200, Quantity: 2, LandingCost: 600},
		{RawPrice: 500, Quantity: 1},
		{},
		{LandingCost: 100, Quantity: 1},
	}
	settings := DealSettings{Mode: ModeMarginCheck, PriceType: PriceTypeSale}

	got := AggregateDeal(items, settings)

	if len(got.Items) != 4 {
		t.Fatalf("expected every row in items, got %d", len(got.Items))
	}
	if got.Items[2].Included {
		t.Fatalf("expected the empty row to be excluded")
	}
	nearlyEqual(t, "invoiceSubtotal", got.InvoiceSubtotal, 2900)
	nearlyEqual(t, "totalLandingCost", got.TotalLandingCost, 1300)
	if got.TotalProfit == nil {
		t.Fatalf("expected total profit")
	}
	nearlyEqual(t, "totalProfit", *got.TotalProfit, 1200)
	centsEqual(t, "overallMargin", *got.OverallMargin, 55.17)
	if got.Badge.Level != BadgeGreen {
		t.Fatalf("badge = %+v, want green", got.Badge)
	}
}

func TestAggregateDeal_NoProfitStaysNil(t *testing.T) {
	items := []LineItem{{RawPrice: 500, Quantity: 1}}
	got := AggregateDeal(items, DealSettings{Mode: ModeQuote, PriceType: PriceTypeSale})

	if got.TotalProfit != nil {
		t.Fatalf("expected nil total profit, got %v", *got.TotalProfit)
	}
	if got.OverallMargin != nil || got.Badge != nil {
		t.Fatalf("expected nil overall margin without landing cost")
	}
}

func TestAggregateDeal_IsIdempotent(t *testing.T) {
	items := []LineItem{
		{RawPrice: 1299.99, Quantity: 2, LandingCost: 611.37},
		{RawPrice: 89.5, Quantity: 4, LandingCost: 31.2},
	}
	settings := DealSettings{Mode: ModeQuote, SalePercent: 35, NoTaxPromo: true, PriceType: PriceTypeTag, DeliveryFee: 150}

	first := AggregateDeal(items, settings)
	for i := 0; i < 5; i++ {
		if again := AggregateDeal(items, settings); !reflect.DeepEqual(first, again) {
			t.Fatalf("aggregation %d differs: %+v vs %+v", i, first, again)
		}
	}
}

func TestAggregateDeal_OtdUsesLandingOnly(t *testing.T) {
	items := []LineItem{{RawPrice: 5000, Quantity: 1, LandingCost: 800}}
	settings := DealSettings{Mode: ModeOtd, PriceType: PriceTypeSale, DeliveryFee: 135, OtdOffer: 2000}

	got := AggregateDeal(items, settings)

	nearlyEqual(t, "invoiceSubtotal", got.InvoiceSubtotal, 0)
	nearlyEqual(t, "totalLandingCost", got.TotalLandingCost, 800)
	if got.Otd == nil {
		t.Fatalf("expected otd analysis")
	}
	centsEqual(t, "otd salePrice", got.Otd.SalePrice, 1697.76)
}

func TestValidate(t *testing.T) {
	priced := []LineItem{{RawPrice: 100}}
	landed := []LineItem{{LandingCost: 100}}

	cases := []struct {
		name     string
		items    []LineItem
		settings DealSettings
		want     error
	}{
		{"quote ok", priced, DealSettings{Mode: ModeQuote}, nil},
		{"quote needs price", landed, DealSettings{Mode: ModeQuote}, ErrNoPricedItems},
		{"margin ok", landed, DealSettings{Mode: ModeMarginCheck}, nil},
		{"margin needs landing", priced, DealSettings{Mode: ModeMarginCheck}, ErrNoLandingCost},
		{"otd ok", landed, DealSettings{Mode: ModeOtd, OtdOffer: 1}, nil},
		{"otd needs landing", priced, DealSettings{Mode: ModeOtd, OtdOffer: 100}, ErrNoLandingCost},
		{"otd needs offer", landed, DealSettings{Mode: ModeOtd}, ErrInvalidOtdOffer},
		{"unknown mode", priced, DealSettings{Mode: "layaway"}, ErrUnknownMode},
		{"no items", nil, DealSettings{Mode: ModeQuote}, ErrNoPricedItems},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := Validate(tc.items, tc.settings)
			if tc.want == nil {
				if err != nil {
					t.Fatalf("unexpected err: %v", err)
				}
				return
			}
			if !errors.Is(err, tc.want) {
				t.Fatalf("err = %v, want %v", err, tc.want)
			}
		})
	}
}

func TestCompute_ReturnsValidationError(t *testing.T) {
	if _, err := Compute(nil, DealSettings{Mode: ModeMarginCheck}); !errors.Is(err, ErrNoLandingCost) {
		t.Fatalf("err = %v, want ErrNoLandingCost", err)
	}

	res, err := Compute([]LineItem{{RawPrice: 1200, LandingCost: 600}}, DealSettings{Mode: ModeMarginCheck, PriceType: PriceTypeSale})
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	centsEqual(t, "overallMargin", *res.OverallMargin, 50)
}
