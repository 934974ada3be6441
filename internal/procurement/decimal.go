package procurement

import "github.com/shopspring/decimal"

var oneDecimal = decimal.NewFromInt(1)

func rateDecimal(f float64) decimal.Decimal {
	return decimal.NewFromFloat(f)
}
