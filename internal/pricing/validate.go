package pricing

import (
	"errors"
	"fmt"
	"math"
	"strings"

	"rentalpricing/internal/common/validation"
)

// ErrInvalidBookingInput is returned by ValidateBookingInput.
var ErrInvalidBookingInput = errors.New("invalid booking input")

// HostPricingInput holds the prices a host enters for a listing.
type HostPricingInput struct {
	BasePrice       float64 `json:"base_price" validate:"gte=1,lte=1000000"`
	CleaningFee     float64 `json:"cleaning_fee" validate:"gte=0,lte=10000"`
	ServiceFee      float64 `json:"service_fee" validate:"gte=0,lte=50000"`
	SecurityDeposit float64 `json:"security_deposit" validate:"gte=0,lte=50000"`
}

// HostPricingResult lists one message per violated bound.
type HostPricingResult struct {
	IsValid bool     `json:"is_valid"`
	Errors  []string `json:"errors"`
}

// ValidateHostPricing checks host-entered prices against the listing bounds
// before they are accepted. It is not part of the calculation pipeline.
func ValidateHostPricing(in HostPricingInput) HostPricingResult {
	fieldErrs, err := validation.Struct(in)
	if err != nil {
		return HostPricingResult{Errors: []string{err.Error()}}
	}
	msgs := validation.Messages(fieldErrs)
	if msgs == nil {
		msgs = []string{}
	}
	return HostPricingResult{IsValid: len(msgs) == 0, Errors: msgs}
}

// ValidateBookingInput range checks a booking before it is priced. The
// calculation itself accepts any numbers, so callers at the input boundary
// run this first.
func ValidateBookingInput(in BookingPriceInput) error {
	var msgs []string
	amounts := []struct {
		name  string
		value float64
	}{
		{"base_price", in.BasePrice},
		{"extra_guest_price", in.ExtraGuestPrice},
		{"cleaning_fee", in.CleaningFee},
		{"service_fee", in.ServiceFee},
		{"security_deposit", in.SecurityDeposit},
		{"hourly_extension", in.HourlyExtension},
		{"discount_amount", in.DiscountAmount},
	}
	nonFinite := make(map[string]bool)
	for _, a := range amounts {
		if math.IsInf(a.value, 0) || math.IsNaN(a.value) {
			nonFinite[a.name] = true
			msgs = append(msgs, a.name+" must be finite")
		}
	}

	fieldErrs, err := validation.Struct(in)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidBookingInput, err)
	}
	for _, fe := range fieldErrs {
		// range tags misreport NaN and Inf
		if nonFinite[fe.Field] {
			continue
		}
		msgs = append(msgs, fe.Message)
	}

	if len(msgs) > 0 {
		return fmt.Errorf("%w: %s", ErrInvalidBookingInput, strings.Join(msgs, "; "))
	}
	return nil
}
