package jobs

import (
	"log"
	"os"
	"strconv"
	"sync"
	"time"

	"riches/services"
	"riches/tasks"
)

var scanLock sync.Mutex

// StartReconcileScheduler runs the payment reconciliation poll and the stale
// order sweep in the background. The returned stop function halts both loops;
// a scan already in flight finishes first. Overlapping scans are prevented by
// scanLock.
func StartReconcileScheduler() func() {
	interval := envMinutes("RECONCILE_INTERVAL_MINUTES", 15)
	grace := envMinutes("RECONCILE_GRACE_MINUTES", 2)

	stop := make(chan struct{})

	tickerPoll := time.NewTicker(interval)
	go func() {
		defer tickerPoll.Stop()
		for {
			select {
			case <-tickerPoll.C:
				if !scanLock.TryLock() {
					log.Println("⚠️  Reconcile scan still running, skipping tick")
					continue
				}
				if err := services.PollPendingPayments(grace); err != nil {
					log.Printf("❌ Reconcile scan: %v", err)
				}
				scanLock.Unlock()
			case <-stop:
				return
			}
		}
	}()

	tickerExpire := time.NewTicker(time.Hour)
	go func() {
		defer tickerExpire.Stop()
		for {
			select {
			case <-tickerExpire.C:
				tasks.ExpireStaleOrders()
			case <-stop:
				return
			}
		}
	}()

	return func() { close(stop) }
}

func envMinutes(key string, fallback int) time.Duration {
	raw := os.Getenv(key)
	if raw == "" {
		return time.Duration(fallback) * time.Minute
	}
	minutes, err := strconv.Atoi(raw)
	if err != nil || minutes <= 0 {
		log.Printf("⚠️  Invalid value for %s: %s", key, raw)
		return time.Duration(fallback) * time.Minute
	}
	return time.Duration(minutes) * time.Minute
}
