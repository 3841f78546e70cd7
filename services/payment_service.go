package services

import "math"

// Platform and tailor service fee rates. Both are computed on the quoted
// order amount independently: the customer pays the order amount plus the
// platform fee, the tailor receives the order amount minus the service fee.
// The two fees are never compounded.
const (
	PlatformFeeRate      = 0.10
	TailorServiceFeeRate = 0.10
)

// FeeBreakdown is the full payment split for one order. Amounts are whole
// rupees.
type FeeBreakdown struct {
	OrderAmount          int `json:"order_amount"`
	PlatformFee          int `json:"platform_fee"`
	TailorServiceFee     int `json:"tailor_service_fee"`
	TotalCustomerPayment int `json:"total_customer_payment"`
	TailorReceives       int `json:"tailor_receives"`
}

// CalculateFees computes the payment breakdown for a quoted order amount.
// Each fee is rounded to the nearest rupee (half up) on its own; the caller
// is responsible for passing a positive amount.
func CalculateFees(orderAmount int) FeeBreakdown {
	platformFee := roundRupees(float64(orderAmount) * PlatformFeeRate)
	tailorServiceFee := roundRupees(float64(orderAmount) * TailorServiceFeeRate)

	return FeeBreakdown{
		OrderAmount:          orderAmount,
		PlatformFee:          platformFee,
		TailorServiceFee:     tailorServiceFee,
		TotalCustomerPayment: orderAmount + platformFee,
		TailorReceives:       orderAmount - tailorServiceFee,
	}
}

func roundRupees(v float64) int {
	return int(math.Round(v))
}
