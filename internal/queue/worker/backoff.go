package worker

import (
	"math"
	"math/rand"
	"time"
)

// ExponentialBackoff returns 2s, 4s, 8s, ... capped at 5m, plus up to 250ms
// of jitter.
func ExponentialBackoff(attempt int) time.Duration {
	base := 2 * time.Second
	capDelay := 5 * time.Minute

	raw := float64(base) * math.Pow(2, float64(attempt))

	delay := capDelay
	if raw < float64(capDelay) {
		delay = time.Duration(raw)
	}

	// small jitter (0–250ms) to avoid thundering herd
	delay += time.Duration(rand.Intn(250)) * time.Millisecond
	return delay
}
