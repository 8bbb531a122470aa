package pricing

import (
	"testing"

	"rentalpricing/internal/common/money"
)

func ratePtr(r float64) *float64 { return &r }

func threeNightStay() BookingPriceInput {
	return BookingPriceInput{
		BasePrice:       2000,
		Nights:          3,
		CleaningFee:     300,
		PlatformFeeRate: ratePtr(0.15),
	}
}

func TestCalculateBreakdown_ThreeNightStay(t *testing.T) {
	got := CalculateBreakdown(threeNightStay(), 0.99)

	want := PriceBreakdown{
		Currency:        money.INR,
		PlatformFeeRate: 0.15,
		BaseAmount:      6000,
		HostFees:        300,
		Subtotal:        6300,
		PlatformFee:     945,
		GST:             1134,
		ProcessingFee:   212.70,
		TotalAmount:     8591.70,
		HostEarning:     5355,
		PlatformRevenue: 1157.70,
	}
	if got != want {
		t.Fatalf("breakdown mismatch\n got: %+v\nwant: %+v", got, want)
	}
}

func TestCalculateBreakdown_DiscountEqualToCharges(t *testing.T) {
	in := threeNightStay()
	in.DiscountAmount = 6300

	got := CalculateBreakdown(in, DefaultPlatformFeeRate)

	if got.Subtotal != 0 || got.PlatformFee != 0 || got.GST != 0 {
		t.Fatalf("expected zero subtotal, fee and gst, got %+v", got)
	}
	if got.ProcessingFee != 30 {
		t.Fatalf("processing fee = %v, want fixed component 30", got.ProcessingFee)
	}
	if got.TotalAmount != 30 {
		t.Fatalf("total = %v, want 30", got.TotalAmount)
	}
	if got.HostEarning != 0 || got.PlatformRevenue != 30 {
		t.Fatalf("host earning %v, platform revenue %v", got.HostEarning, got.PlatformRevenue)
	}
}

func TestCalculateBreakdown_DiscountBeyondChargesIsNotClamped(t *testing.T) {
	in := threeNightStay()
	in.DiscountAmount = 7000

	got := CalculateBreakdown(in, DefaultPlatformFeeRate)

	if got.Subtotal != -700 {
		t.Fatalf("subtotal = %v, want -700", got.Subtotal)
	}
	if got.PlatformFee != -105 || got.GST != -126 {
		t.Fatalf("platform fee %v, gst %v", got.PlatformFee, got.GST)
	}
	if got.ProcessingFee != 9.7 {
		t.Fatalf("processing fee = %v, want 9.7", got.ProcessingFee)
	}
	if got.TotalAmount != -921.3 {
		t.Fatalf("total = %v, want -921.3", got.TotalAmount)
	}
	if got.HostEarning != -595 {
		t.Fatalf("host earning = %v, want -595", got.HostEarning)
	}
}

func TestCalculateBreakdown_AllComponents(t *testing.T) {
	in := BookingPriceInput{
		BasePrice:       1500,
		Nights:          2,
		ExtraGuestPrice: 250,
		ExtraGuests:     2,
		CleaningFee:     200,
		ServiceFee:      100,
		SecurityDeposit: 500,
		HourlyExtension: 450,
		DiscountAmount:  250,
		Currency:        money.USD,
	}

	got := CalculateBreakdown(in, 0.10)

	want := PriceBreakdown{
		Currency:        money.USD,
		PlatformFeeRate: 0.10,
		BaseAmount:      4000,
		ExtraGuestCost:  1000,
		HostFees:        800,
		HourlyExtension: 450,
		DiscountAmount:  250,
		Subtotal:        5000,
		PlatformFee:     500,
		GST:             900,
		ProcessingFee:   175,
		TotalAmount:     6575,
		HostEarning:     4500,
		PlatformRevenue: 675,
	}
	if got != want {
		t.Fatalf("breakdown mismatch\n got: %+v\nwant: %+v", got, want)
	}
}

func TestCalculateBreakdown_ExtraGuestPriceIgnoredWithoutGuests(t *testing.T) {
	got := CalculateBreakdown(BookingPriceInput{BasePrice: 1000, Nights: 2, ExtraGuestPrice: 300}, 0.15)
	if got.ExtraGuestCost != 0 || got.BaseAmount != 2000 {
		t.Fatalf("extra guest cost %v, base amount %v", got.ExtraGuestCost, got.BaseAmount)
	}
}

func TestCalculateBreakdown_Defaults(t *testing.T) {
	got := CalculateBreakdown(BookingPriceInput{BasePrice: 999.99}, DefaultPlatformFeeRate)
	if got.Currency != money.INR {
		t.Fatalf("currency = %s, want INR", got.Currency)
	}
	if got.BaseAmount != 999.99 {
		t.Fatalf("base amount = %v, want one night at 999.99", got.BaseAmount)
	}
}

func TestCalculateBreakdown_IntermediateValuesRounded(t *testing.T) {
	in := BookingPriceInput{
		BasePrice:       333.333,
		Nights:          3,
		ExtraGuestPrice: 10.005,
		ExtraGuests:     1,
		CleaningFee:     0.333,
		ServiceFee:      0.333,
	}
	got := CalculateBreakdown(in, 0.15)

	for name, v := range map[string]float64{
		"base_amount":      got.BaseAmount,
		"extra_guest_cost": got.ExtraGuestCost,
		"host_fees":        got.HostFees,
		"subtotal":         got.Subtotal,
		"platform_fee":     got.PlatformFee,
		"gst":              got.GST,
		"processing_fee":   got.ProcessingFee,
		"total_amount":     got.TotalAmount,
		"host_earning":     got.HostEarning,
		"platform_revenue": got.PlatformRevenue,
	} {
		if ToTwoDecimals(v) != v {
			t.Errorf("%s = %v carries more than two decimals", name, v)
		}
	}
}

func TestCalculator_UsesProviderRate(t *testing.T) {
	calc := NewCalculator(StaticRate(0.10))
	in := threeNightStay()
	in.PlatformFeeRate = nil

	got := calc.Calculate(in)
	if got.PlatformFeeRate != 0.10 || got.PlatformFee != 630 {
		t.Fatalf("rate %v, platform fee %v", got.PlatformFeeRate, got.PlatformFee)
	}
}

func TestCalculator_InputRateOverridesProvider(t *testing.T) {
	calc := NewCalculator(StaticRate(0.10))

	got := calc.Calculate(threeNightStay())
	if got.PlatformFeeRate != 0.15 || got.PlatformFee != 945 {
		t.Fatalf("rate %v, platform fee %v", got.PlatformFeeRate, got.PlatformFee)
	}
}

func TestCalculator_NilProviderFallsBack(t *testing.T) {
	in := threeNightStay()
	in.PlatformFeeRate = nil

	got := NewCalculator(nil).Calculate(in)
	if got.PlatformFeeRate != DefaultPlatformFeeRate {
		t.Fatalf("rate = %v, want default", got.PlatformFeeRate)
	}
}

func TestPriceBreakdown_Projections(t *testing.T) {
	b := CalculateBreakdown(threeNightStay(), 0)

	c := b.Customer()
	if c.TotalAmount != b.TotalAmount || c.Subtotal != b.Subtotal || c.GST != b.GST || c.ProcessingFee != b.ProcessingFee {
		t.Fatalf("customer view diverges: %+v", c)
	}
	h := b.Host()
	if h.HostEarning != 5355 || h.PlatformFee != 945 || h.PlatformFeeRate != 0.15 {
		t.Fatalf("host view: %+v", h)
	}
	p := b.Platform()
	if p.PlatformRevenue != 1157.70 || p.ProcessingFee != 212.70 {
		t.Fatalf("platform view: %+v", p)
	}
}

func TestPriceBreakdown_Display(t *testing.T) {
	d := CalculateBreakdown(threeNightStay(), 0).Display()
	if d["total_amount"] != "₹8,591.70" {
		t.Fatalf("total_amount = %q", d["total_amount"])
	}
	if d["processing_fee"] != "₹212.70" {
		t.Fatalf("processing_fee = %q", d["processing_fee"])
	}
	if len(d) != 12 {
		t.Fatalf("expected 12 display fields, got %d", len(d))
	}
}
