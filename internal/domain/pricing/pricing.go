// Package pricing computes the authoritative price of a stay.
package pricing

import (
	"math"
	"time"

	"github.com/mikiasgoitom/airhost/internal/domain/entity"
)

// TaxPercent is the fixed tax applied to the subtotal of every reservation.
const TaxPercent = 18

const day = 24 * time.Hour

// Nights returns the number of billable nights between checkIn and checkOut.
// A partial day counts as a full night.
func Nights(checkIn, checkOut time.Time) int64 {
	d := checkOut.Sub(checkIn)
	if d <= 0 {
		return 0
	}
	n := int64(d / day)
	if d%day != 0 {
		n++
	}
	return n
}

// ComputeReservationTotal prices a stay. Every intermediate amount is rounded
// half-up to a whole currency unit before it feeds the next stage.
func ComputeReservationTotal(checkIn, checkOut time.Time, nightlyRate, cleaningFee int64, serviceFeePct float64) (entity.PriceBreakdown, error) {
	if nightlyRate < 0 || cleaningFee < 0 || serviceFeePct < 0 || serviceFeePct > 100 || math.IsNaN(serviceFeePct) {
		return entity.PriceBreakdown{}, entity.ErrInvalidPricing
	}
	nights := Nights(checkIn, checkOut)
	if nights <= 0 {
		return entity.PriceBreakdown{}, entity.ErrInvalidDateRange
	}

	base := nightlyRate * nights
	// percentages are applied in basis points so that ties stay exact
	serviceFee := divRoundHalfUp(base*basisPoints(serviceFeePct), 10000)
	subtotal := base + cleaningFee + serviceFee
	tax := divRoundHalfUp(subtotal*TaxPercent, 100)

	return entity.PriceBreakdown{
		Nights:      nights,
		BasePrice:   base,
		CleaningFee: cleaningFee,
		ServiceFee:  serviceFee,
		Subtotal:    subtotal,
		Tax:         tax,
		Total:       subtotal + tax,
	}, nil
}

// basisPoints converts a percentage to hundredths of a percent.
func basisPoints(pct float64) int64 {
	return int64(math.Round(pct * 100))
}

// divRoundHalfUp returns n/d rounded to the nearest integer, ties up.
// n must be non-negative and d positive.
func divRoundHalfUp(n, d int64) int64 {
	return (n + d/2) / d
}
