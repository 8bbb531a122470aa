package pricing

import "rentalpricing/internal/common/money"

// Fixed rates applied to every booking.
const (
	GSTRate            = 0.18
	ProcessingFeeRate  = 0.029
	ProcessingFeeFixed = 30.0
)

// BookingPriceInput carries the raw numbers a booking is priced from.
// Zero values are defaulted by WithDefaults; PlatformFeeRate is nil unless
// the caller overrides the cached rate for this one calculation.
type BookingPriceInput struct {
	BasePrice       float64        `json:"base_price" yaml:"base_price" validate:"gte=0"`
	Nights          int            `json:"nights" yaml:"nights" validate:"gte=0"`
	ExtraGuestPrice float64        `json:"extra_guest_price" yaml:"extra_guest_price" validate:"gte=0"`
	ExtraGuests     int            `json:"extra_guests" yaml:"extra_guests" validate:"gte=0"`
	CleaningFee     float64        `json:"cleaning_fee" yaml:"cleaning_fee" validate:"gte=0"`
	ServiceFee      float64        `json:"service_fee" yaml:"service_fee" validate:"gte=0"`
	SecurityDeposit float64        `json:"security_deposit" yaml:"security_deposit" validate:"gte=0"`
	HourlyExtension float64        `json:"hourly_extension" yaml:"hourly_extension" validate:"gte=0"`
	DiscountAmount  float64        `json:"discount_amount" yaml:"discount_amount" validate:"gte=0"`
	Currency        money.Currency `json:"currency,omitempty" yaml:"currency" validate:"omitempty,oneof=INR USD EUR GBP JPY CAD AUD"`
	PlatformFeeRate *float64       `json:"platform_fee_rate,omitempty" yaml:"platform_fee_rate" validate:"omitempty,gte=0,lte=1"`
}

// WithDefaults returns a copy with Nights defaulted to 1 and Currency to INR.
func (in BookingPriceInput) WithDefaults() BookingPriceInput {
	if in.Nights == 0 {
		in.Nights = 1
	}
	if in.Currency == "" {
		in.Currency = money.DefaultCurrency
	}
	return in
}

// PriceBreakdown is the full derived price of a booking. All amounts are
// rounded to two decimals.
type PriceBreakdown struct {
	Currency        money.Currency `json:"currency"`
	PlatformFeeRate float64        `json:"platform_fee_rate"`
	BaseAmount      float64        `json:"base_amount"`
	ExtraGuestCost  float64        `json:"extra_guest_cost"`
	HostFees        float64        `json:"host_fees"`
	HourlyExtension float64        `json:"hourly_extension"`
	DiscountAmount  float64        `json:"discount_amount"`
	Subtotal        float64        `json:"subtotal"`
	PlatformFee     float64        `json:"platform_fee"`
	GST             float64        `json:"gst"`
	ProcessingFee   float64        `json:"processing_fee"`
	TotalAmount     float64        `json:"total_amount"`
	HostEarning     float64        `json:"host_earning"`
	PlatformRevenue float64        `json:"platform_revenue"`
}

// CalculateBreakdown prices a booking at the given platform fee rate. A rate
// set on the input takes precedence. Inputs are not range checked; see
// ValidateBookingInput.
func CalculateBreakdown(in BookingPriceInput, rate float64) PriceBreakdown {
	in = in.WithDefaults()
	if in.PlatformFeeRate != nil {
		rate = *in.PlatformFeeRate
	}
	nights := float64(in.Nights)

	var extraGuestCost float64
	if in.ExtraGuests > 0 {
		extraGuestCost = ToTwoDecimals(in.ExtraGuestPrice * float64(in.ExtraGuests) * nights)
	}
	baseAmount := ToTwoDecimals(ToTwoDecimals(in.BasePrice*nights) + extraGuestCost)
	hostFees := ToTwoDecimals(in.CleaningFee + in.ServiceFee + in.SecurityDeposit)
	extension := ToTwoDecimals(in.HourlyExtension)
	discount := ToTwoDecimals(in.DiscountAmount)

	// not clamped: a discount larger than all charges yields a negative subtotal
	subtotal := ToTwoDecimals(baseAmount + hostFees + extension - discount)

	platformFee := ToTwoDecimals(subtotal * rate)
	gst := ToTwoDecimals(subtotal * GSTRate)
	processingFee := ToTwoDecimals(subtotal*ProcessingFeeRate + ProcessingFeeFixed)

	return PriceBreakdown{
		Currency:        in.Currency,
		PlatformFeeRate: rate,
		BaseAmount:      baseAmount,
		ExtraGuestCost:  extraGuestCost,
		HostFees:        hostFees,
		HourlyExtension: extension,
		DiscountAmount:  discount,
		Subtotal:        subtotal,
		PlatformFee:     platformFee,
		GST:             gst,
		ProcessingFee:   processingFee,
		TotalAmount:     ToTwoDecimals(subtotal + platformFee + gst + processingFee),
		HostEarning:     ToTwoDecimals(subtotal - platformFee),
		PlatformRevenue: ToTwoDecimals(platformFee + processingFee),
	}
}

// Calculator prices bookings using the rate from its RateProvider.
type Calculator struct {
	rates RateProvider
}

// NewCalculator creates a calculator. A nil provider uses
// DefaultPlatformFeeRate.
func NewCalculator(rates RateProvider) *Calculator {
	if rates == nil {
		rates = StaticRate(DefaultPlatformFeeRate)
	}
	return &Calculator{rates: rates}
}

// Calculate prices a booking. It never blocks on the network.
func (c *Calculator) Calculate(in BookingPriceInput) PriceBreakdown {
	return CalculateBreakdown(in, c.rates.Get())
}

// CustomerBreakdown is what the paying guest sees.
type CustomerBreakdown struct {
	Currency        money.Currency `json:"currency"`
	BaseAmount      float64        `json:"base_amount"`
	ExtraGuestCost  float64        `json:"extra_guest_cost"`
	HostFees        float64        `json:"host_fees"`
	HourlyExtension float64        `json:"hourly_extension"`
	DiscountAmount  float64        `json:"discount_amount"`
	Subtotal        float64        `json:"subtotal"`
	PlatformFee     float64        `json:"platform_fee"`
	GST             float64        `json:"gst"`
	ProcessingFee   float64        `json:"processing_fee"`
	TotalAmount     float64        `json:"total_amount"`
}

// HostBreakdown is what the host or service provider sees.
type HostBreakdown struct {
	Currency        money.Currency `json:"currency"`
	Subtotal        float64        `json:"subtotal"`
	PlatformFeeRate float64        `json:"platform_fee_rate"`
	PlatformFee     float64        `json:"platform_fee"`
	HostEarning     float64        `json:"host_earning"`
}

// PlatformBreakdown is what the marketplace operator retains.
type PlatformBreakdown struct {
	Currency        money.Currency `json:"currency"`
	PlatformFee     float64        `json:"platform_fee"`
	ProcessingFee   float64        `json:"processing_fee"`
	PlatformRevenue float64        `json:"platform_revenue"`
}

// Customer projects the guest-facing view.
func (b PriceBreakdown) Customer() CustomerBreakdown {
	return CustomerBreakdown{
		Currency:        b.Currency,
		BaseAmount:      b.BaseAmount,
		ExtraGuestCost:  b.ExtraGuestCost,
		HostFees:        b.HostFees,
		HourlyExtension: b.HourlyExtension,
		DiscountAmount:  b.DiscountAmount,
		Subtotal:        b.Subtotal,
		PlatformFee:     b.PlatformFee,
		GST:             b.GST,
		ProcessingFee:   b.ProcessingFee,
		TotalAmount:     b.TotalAmount,
	}
}

// Host projects the host-facing view.
func (b PriceBreakdown) Host() HostBreakdown {
	return HostBreakdown{
		Currency:        b.Currency,
		Subtotal:        b.Subtotal,
		PlatformFeeRate: b.PlatformFeeRate,
		PlatformFee:     b.PlatformFee,
		HostEarning:     b.HostEarning,
	}
}

// Platform projects the operator-facing view.
func (b PriceBreakdown) Platform() PlatformBreakdown {
	return PlatformBreakdown{
		Currency:        b.Currency,
		PlatformFee:     b.PlatformFee,
		ProcessingFee:   b.ProcessingFee,
		PlatformRevenue: b.PlatformRevenue,
	}
}

// Display renders every monetary field with money.Format.
func (b PriceBreakdown) Display() map[string]string {
	c := b.Currency
	return map[string]string{
		"base_amount":      money.Format(b.BaseAmount, c),
		"extra_guest_cost": money.Format(b.ExtraGuestCost, c),
		"host_fees":        money.Format(b.HostFees, c),
		"hourly_extension": money.Format(b.HourlyExtension, c),
		"discount_amount":  money.Format(b.DiscountAmount, c),
		"subtotal":         money.Format(b.Subtotal, c),
		"platform_fee":     money.Format(b.PlatformFee, c),
		"gst":              money.Format(b.GST, c),
		"processing_fee":   money.Format(b.ProcessingFee, c),
		"total_amount":     money.Format(b.TotalAmount, c),
		"host_earning":     money.Format(b.HostEarning, c),
		"platform_revenue": money.Format(b.PlatformRevenue, c),
	}
}
