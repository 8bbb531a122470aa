package pricing

import (
	"errors"
	"fmt"
	"io"

	"gopkg.in/yaml.v3"

	"rentalpricing/internal/common/money"
)

// ErrConflictingExtension is returned when a quote file sets both an
// extension length and a precomputed extension charge.
var ErrConflictingExtension = errors.New("quote file sets both extension_hours and hourly_extension")

// QuoteFile is the on-disk request for a single quote. JSON documents are
// accepted as well since they are valid YAML.
type QuoteFile struct {
	Booking        BookingPriceInput `yaml:"booking"`
	ExtensionHours int               `yaml:"extension_hours"`
}

// DecodeQuoteFile reads a quote file, rejecting unknown keys.
func DecodeQuoteFile(r io.Reader) (QuoteFile, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)

	var qf QuoteFile
	if err := dec.Decode(&qf); err != nil {
		if errors.Is(err, io.EOF) {
			return QuoteFile{}, errors.New("quote file is empty")
		}
		return QuoteFile{}, fmt.Errorf("decoding quote file: %w", err)
	}
	return qf, nil
}

// BookingInput normalizes the currency code and resolves the extension
// length, if any, into the booking's hourly extension charge. Unsupported
// currencies are left as written for ValidateBookingInput to report.
func (q QuoteFile) BookingInput() (BookingPriceInput, error) {
	in := q.Booking
	if c, ok := money.Parse(string(in.Currency)); ok {
		in.Currency = c
	}
	if q.ExtensionHours == 0 {
		return in, nil
	}
	if in.HourlyExtension != 0 {
		return BookingPriceInput{}, ErrConflictingExtension
	}

	charge, err := ExtensionCharge(in.BasePrice, q.ExtensionHours)
	if err != nil {
		return BookingPriceInput{}, err
	}
	in.HourlyExtension = charge
	return in, nil
}
