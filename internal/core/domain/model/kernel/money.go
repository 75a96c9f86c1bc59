package kernel

import (
	"math"
	"strconv"
)

// Round2 rounds a monetary amount to two decimal places. All payout and quote
// amounts in the domain are stored already rounded; every derived amount (the
// punitive auto-requote in particular) must pass through Round2 before being
// recorded.
func Round2(amount float64) float64 {
	return math.Round(amount*100) / 100
}

// FormatMoney renders an amount with two decimal places for logs and emails.
func FormatMoney(amount float64) string {
	return strconv.FormatFloat(Round2(amount), 'f', 2, 64)
}
