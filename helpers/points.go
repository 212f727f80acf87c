package helpers

import "github.com/shopspring/decimal"

// One loyalty point is worth £0.01.
var pointValue = decimal.New(1, -2)

func PointsToCurrency(points int64) decimal.Decimal {
	return decimal.NewFromInt(points).Mul(pointValue)
}

// CurrencyToPoints floors to a whole point so a fractional remainder is never
// credited back as points.
func CurrencyToPoints(amount decimal.Decimal) int64 {
	return amount.Div(pointValue).Floor().IntPart()
}
