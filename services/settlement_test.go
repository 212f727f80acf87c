package services

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

func dec(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return d
}

func TestSplitTender(t *testing.T) {
	cases := []struct {
		name       string
		total      string
		wallet     string
		points     int64
		useWallet  bool
		usePoints  bool
		wantWallet string
		wantPoints int64
		wantGw     string
		wantLabel  string
	}{
		{
			name:  "empty account routes everything to gateway",
			total: "5.00", wallet: "0", points: 0, useWallet: true, usePoints: true,
			wantWallet: "0", wantPoints: 0, wantGw: "5.00", wantLabel: "Gateway",
		},
		{
			name:  "partial wallet leaves gateway remainder",
			total: "5.00", wallet: "3.00", points: 0, useWallet: true, usePoints: false,
			wantWallet: "3.00", wantPoints: 0, wantGw: "2.00", wantLabel: "Wallet+Gateway",
		},
		{
			name:  "wallet covers everything",
			total: "5.00", wallet: "10.00", points: 500, useWallet: true, usePoints: true,
			wantWallet: "5.00", wantPoints: 0, wantGw: "0", wantLabel: "Wallet",
		},
		{
			name:  "wallet then points then nothing left",
			total: "5.00", wallet: "2.00", points: 500, useWallet: true, usePoints: true,
			wantWallet: "2.00", wantPoints: 300, wantGw: "0", wantLabel: "Wallet+Points",
		},
		{
			name:  "points only",
			total: "1.99", wallet: "50.00", points: 199, useWallet: false, usePoints: true,
			wantWallet: "0", wantPoints: 199, wantGw: "0", wantLabel: "Points",
		},
		{
			name:  "points short by a penny",
			total: "2.00", wallet: "0", points: 199, useWallet: true, usePoints: true,
			wantWallet: "0", wantPoints: 199, wantGw: "0.01", wantLabel: "Points+Gateway",
		},
		{
			name:  "tenders disabled routes everything to gateway",
			total: "5.00", wallet: "10.00", points: 500, useWallet: false, usePoints: false,
			wantWallet: "0", wantPoints: 0, wantGw: "5.00", wantLabel: "Gateway",
		},
		{
			name:  "zero total",
			total: "0", wallet: "10.00", points: 500, useWallet: true, usePoints: true,
			wantWallet: "0", wantPoints: 0, wantGw: "0", wantLabel: "Free",
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			split := SplitTender(dec(tc.total), dec(tc.wallet), tc.points, tc.useWallet, tc.usePoints)

			require.True(t, dec(tc.wantWallet).Equal(split.WalletUsed), "wallet: got %s", split.WalletUsed)
			require.Equal(t, tc.wantPoints, split.PointsUsed)
			require.True(t, dec(tc.wantGw).Equal(split.GatewayRemainder), "gateway: got %s", split.GatewayRemainder)
			require.Equal(t, tc.wantLabel, split.PaymentMethod)

			// wallet + points + gateway must reconstruct the total exactly
			sum := split.WalletUsed.Add(split.PointsValue).Add(split.GatewayRemainder)
			require.True(t, dec(tc.total).Equal(sum), "sum: got %s", sum)
		})
	}
}

func TestSplitTenderFloorsPoints(t *testing.T) {
	// half a point of coverage must not round up to a whole point
	split := SplitTender(dec("0.015"), decimal.Zero, 100, true, true)

	require.Equal(t, int64(1), split.PointsUsed)
	require.True(t, dec("0.01").Equal(split.PointsValue))
	require.True(t, dec("0.005").Equal(split.GatewayRemainder))

	sum := split.WalletUsed.Add(split.PointsValue).Add(split.GatewayRemainder)
	require.True(t, dec("0.015").Equal(sum))
}
