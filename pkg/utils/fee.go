package utils

import "math"

// PlatformFeeRate is the surcharge applied to a listing's price at booking time.
const PlatformFeeRate = 0.10

// PlatformFee returns the platform surcharge on amount, rounded to cents.
func PlatformFee(amount float64) float64 {
	return math.Round(amount*PlatformFeeRate*100) / 100
}

// BookingTotal returns the platform fee and the total the booker pays.
func BookingTotal(amount float64) (fee float64, total float64) {
	fee = PlatformFee(amount)
	return fee, amount + fee
}
