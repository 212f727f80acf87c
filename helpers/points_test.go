package helpers

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

func TestPointsToCurrency(t *testing.T) {
	require.True(t, decimal.RequireFromString("2.50").Equal(PointsToCurrency(250)))
	require.True(t, decimal.Zero.Equal(PointsToCurrency(0)))
}

func TestCurrencyToPointsFloors(t *testing.T) {
	require.Equal(t, int64(255), CurrencyToPoints(decimal.RequireFromString("2.559")))
	require.Equal(t, int64(0), CurrencyToPoints(decimal.RequireFromString("0.009")))
	require.Equal(t, int64(199), CurrencyToPoints(decimal.RequireFromString("1.99")))
}

func TestConversionRoundTrip(t *testing.T) {
	for _, points := range []int64{1, 37, 100, 12345} {
		require.Equal(t, points, CurrencyToPoints(PointsToCurrency(points)))
	}
}
