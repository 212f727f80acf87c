package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestCheckPlayCooldown(t *testing.T) {
	const cooldown = 50 * time.Millisecond

	ok, _ := CheckPlayCooldown(901, 1, cooldown)
	require.True(t, ok, "first play must pass")

	ok, wait := CheckPlayCooldown(901, 1, cooldown)
	require.False(t, ok, "immediate replay must be throttled")
	require.Greater(t, wait, time.Duration(0))
	require.LessOrEqual(t, wait, cooldown)

	time.Sleep(cooldown + 10*time.Millisecond)
	ok, _ = CheckPlayCooldown(901, 1, cooldown)
	require.True(t, ok, "play after the window must pass")
}

func TestCheckPlayCooldownIsPerOrder(t *testing.T) {
	const cooldown = time.Minute

	ok, _ := CheckPlayCooldown(902, 1, cooldown)
	require.True(t, ok)

	// different order for the same user is not throttled
	ok, _ = CheckPlayCooldown(902, 2, cooldown)
	require.True(t, ok)

	// different user on the same order is not throttled
	ok, _ = CheckPlayCooldown(903, 1, cooldown)
	require.True(t, ok)
}
