package query

import (
	"math"
	"time"
)

// backoffDelay computes the wait before retry number attempt (0-based):
// min(base * 2^attempt, cap). Delays are non-decreasing and capped.
func backoffDelay(attempt int, base, capDelay time.Duration) time.Duration {
	if attempt < 0 {
		attempt = 0
	}

	factor := math.Pow(2, float64(attempt))
	d := time.Duration(float64(base) * factor)
	if d > capDelay || d <= 0 {
		return capDelay
	}
	return d
}
