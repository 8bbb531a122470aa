// Package pricing computes booking price breakdowns: base stay cost, host fees,
// hourly extensions, discounts, platform commission, GST, payment processing
// fee and host payout.
//
// Every monetary value is rounded to two decimals at the moment it is
// computed, so partial sums shown to a user match the sums used downstream.
package pricing

import "math"

// ToTwoDecimals rounds v to cents, half away from zero. NaN and infinities
// are returned unchanged.
func ToTwoDecimals(v float64) float64 {
	r := math.Round(v*100) / 100
	if r == 0 {
		// avoid -0 leaking into JSON output
		return 0
	}
	return r
}
