package pricing

import "testing"

func TestComputeOtdAnalysis_ApprovedOffer(t *testing.T) {
	got := ComputeOtdAnalysis(2000, 135, 800)

	centsEqual(t, "merchandiseWithTax", got.MerchandiseWithTax, 1852.68)
	centsEqual(t, "salePrice", got.SalePrice, 1697.76)
	centsEqual(t, "merchandiseTax", got.MerchandiseTax, 154.92)
	centsEqual(t, "profit", got.Profit, 897.76)
	if got.Margin == nil {
		t.Fatalf("expected margin")
	}
	centsEqual(t, "margin", *got.Margin, 52.88)
	if got.Badge.Level != BadgeGreen || got.Status != OtdApproved {
		t.Fatalf("badge = %+v status = %s, want green/Approved", got.Badge, got.Status)
	}
}

func TestComputeOtdAnalysis_CounterOffers(t *testing.T) {
	got := ComputeOtdAnalysis(2000, 135, 800)

	want := []struct {
		target MarginTarget
		price  float64
	}{
		{Target50, 1893.32},
		{Target49, 1859.08},
		{Target48, 1826.16},
		{Target47, 1794.49},
	}
	if len(got.CounterOffers) != len(want) {
		t.Fatalf("expected %d counter offers, got %d", len(want), len(got.CounterOffers))
	}
	for i, w := range want {
		if got.CounterOffers[i].Target != w.target {
			t.Fatalf("counter offer %d target = %d, want %d", i, got.CounterOffers[i].Target, w.target)
		}
		centsEqual(t, "counter offer", got.CounterOffers[i].Price, w.price)
	}

	// Offering the 47% counter offer lands back on 47%.
	back := ComputeOtdAnalysis(got.CounterOffers[3].Price, 135, 800)
	centsEqual(t, "round trip margin", *back.Margin, 47)
	if back.Status != OtdManagerApproval {
		t.Fatalf("status = %s, want Manager Approval", back.Status)
	}
}

func TestComputeOtdAnalysis_OfferAtDeliveryFloor(t *testing.T) {
	got := ComputeOtdAnalysis(135, 135, 800)

	centsEqual(t, "merchandiseWithTax", got.MerchandiseWithTax, -12.32)
	centsEqual(t, "salePrice", got.SalePrice, -11.29)
	centsEqual(t, "profit", got.Profit, -811.29)
	if got.Margin == nil {
		t.Fatalf("expected a margin even below the floor")
	}
	nearlyEqual(t, "margin", *got.Margin, 0)
	if got.Status != OtdCounterOffer {
		t.Fatalf("status = %s, want Counter Offer", got.Status)
	}
}

func TestComputeOtdAnalysis_NoLandingCost(t *testing.T) {
	got := ComputeOtdAnalysis(1000, 0, 0)

	if got.Margin != nil || got.Badge != nil || got.Status != "" {
		t.Fatalf("expected no margin without landing cost, got %+v", got)
	}
	centsEqual(t, "profit", got.Profit, Round2(got.SalePrice))
	for _, offer := range got.CounterOffers {
		nearlyEqual(t, "counter offer", offer.Price, 0)
	}
}
