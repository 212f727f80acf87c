package services

import (
	"sync"
	"time"
)

// PlayCooldown is the minimum interval between plays on the same order. It
// keeps scripted clients from draining a capped prize pool faster than a human
// could tap.
const PlayCooldown = 3 * time.Second

type cooldownKey struct {
	UserID  uint
	OrderID uint
}

// Process-local on purpose; a multi-instance deployment swaps this for a
// shared TTL store keyed the same way.
var playCooldowns = struct {
	sync.Mutex
	last map[cooldownKey]time.Time
}{last: make(map[cooldownKey]time.Time)}

// CheckPlayCooldown records a play attempt and reports whether it is allowed.
// When throttled, the second return is how long to wait before retrying.
func CheckPlayCooldown(userID, orderID uint, cooldown time.Duration) (bool, time.Duration) {
	now := time.Now()

	playCooldowns.Lock()
	defer playCooldowns.Unlock()

	key := cooldownKey{UserID: userID, OrderID: orderID}
	if last, ok := playCooldowns.last[key]; ok {
		if wait := cooldown - now.Sub(last); wait > 0 {
			return false, wait
		}
	}

	playCooldowns.last[key] = now
	if len(playCooldowns.last) > 4096 {
		pruneCooldowns(now, cooldown)
	}
	return true, 0
}

func pruneCooldowns(now time.Time, cooldown time.Duration) {
	for key, last := range playCooldowns.last {
		if now.Sub(last) > cooldown {
			delete(playCooldowns.last, key)
		}
	}
}
