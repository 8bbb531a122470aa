package pricing

import (
	"errors"
	"fmt"
)

// FullDayExtensionHours is the extension length from which a whole extra
// day is charged instead of a fraction.
const FullDayExtensionHours = 24

// ErrUnsupportedExtensionHours is returned for extension lengths that have no
// entry in the hourly table and are not covered by the full-day rule.
var ErrUnsupportedExtensionHours = errors.New("unsupported hourly extension")

// share of the nightly base price charged per extension length
var extensionFractions = map[int]float64{
	6:  0.30,
	12: 0.60,
	18: 0.75,
}

// CalculateHourlyExtension returns the charge for extending a stay by 6, 12
// or 18 hours. Any other length is rejected.
func CalculateHourlyExtension(basePrice float64, hours int) (float64, error) {
	fraction, ok := extensionFractions[hours]
	if !ok {
		return 0, fmt.Errorf("%w: %d hours (want 6, 12 or 18)", ErrUnsupportedExtensionHours, hours)
	}
	return ToTwoDecimals(basePrice * fraction), nil
}

// ExtensionCharge applies the booking-level extension policy on top of the
// hourly table: no extension costs nothing, 24 hours or more is billed as a
// full additional day, and everything else goes through the table.
func ExtensionCharge(basePrice float64, hours int) (float64, error) {
	switch {
	case hours == 0:
		return 0, nil
	case hours < 0:
		return 0, fmt.Errorf("%w: negative length %d", ErrUnsupportedExtensionHours, hours)
	case hours >= FullDayExtensionHours:
		return ToTwoDecimals(basePrice), nil
	default:
		return CalculateHourlyExtension(basePrice, hours)
	}
}
