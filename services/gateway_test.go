package services

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNormalizeStatus(t *testing.T) {
	cases := []struct {
		raw  string
		want string
	}{
		{"PAID", StatusPaid},
		{"paid", StatusPaid},
		{"TXN_SUCCESS", StatusPaid},
		{"CAPTURED", StatusPaid},
		{"PAYMENT_CAPTURE_DONE", StatusPaid},

		{"FAILED", StatusFailed},
		{"CANCELLED", StatusFailed},
		{"USER_CANCELED", StatusFailed},
		{"DECLINED", StatusFailed},
		{"EXPIRED", StatusFailed},
		{"REJECTED", StatusFailed},

		{"PENDING", StatusPending},
		{"PROCESSING", StatusPending},
		{"AUTHORIZED", StatusPending},
		{"CREATED", StatusPending},
		{"  pending  ", StatusPending},

		{"", StatusUnknown},
		{"SOMETHING_ELSE", StatusUnknown},
	}

	for _, tc := range cases {
		t.Run(tc.raw, func(t *testing.T) {
			require.Equal(t, tc.want, NormalizeStatus(tc.raw))
		})
	}
}
