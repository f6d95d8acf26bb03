package pricing

import (
	"encoding/json"
	"testing"
)

func TestLineItemDecodesLooseValues(t *testing.T) {
	raw := `[
		{"rawPrice": 1200, "quantity": 2, "landingCost": "600"},
		{"rawPrice": "", "quantity": "", "landingCost": null},
		{"rawPrice": "$1,299.50", "quantity": "3", "landingCost": "abc"},
		{"rawPrice": 1132.08, "landingCost": 600, "marginPick": {"target": 47, "originalPrice": "1000"}}
	]`

	var items []LineItem
	if err := json.Unmarshal([]byte(raw), &items); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}

	nearlyEqual(t, "first landing", items[0].LandingCost.Float(), 600)
	if items[0].Quantity.Units() != 2 {
		t.Fatalf("first units = %d, want 2", items[0].Quantity.Units())
	}

	nearlyEqual(t, "blank price", items[1].RawPrice.Float(), 0)
	nearlyEqual(t, "null landing", items[1].LandingCost.Float(), 0)
	if items[1].Quantity.Units() != 1 {
		t.Fatalf("blank quantity units = %d, want 1", items[1].Quantity.Units())
	}

	nearlyEqual(t, "formatted price", items[2].RawPrice.Float(), 1299.5)
	nearlyEqual(t, "junk landing", items[2].LandingCost.Float(), 0)

	target, ok := items[3].SelectedMargin()
	if !ok || target != Target47 {
		t.Fatalf("selected = %v %v, want 47", target, ok)
	}
	nearlyEqual(t, "original", items[3].Pick.OriginalPrice.Float(), 1000)
}

func TestAmountRejectsMalformedJSON(t *testing.T) {
	var a Amount
	if err := json.Unmarshal([]byte(`{"x":1}`), &a); err == nil {
		t.Fatalf("expected an error for an object")
	}
}

func TestDealSettingsRoundTrip(t *testing.T) {
	in := DealSettings{Mode: ModeOtd, SalePercent: 35, NoTaxPromo: true, PriceType: PriceTypeTag, DeliveryFee: 150, OtdOffer: 2400}

	data, err := json.Marshal(in)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	var out DealSettings
	if err := json.Unmarshal(data, &out); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if out != in {
		t.Fatalf("round trip = %+v, want %+v", out, in)
	}
}
