package browser

import (
	"math/rand"
	"time"
)

// Settle sleeps for base plus a random amount up to jitter. Randomized
// settles give client-side rendering time to catch up without producing a
// metronomic access pattern.
func Settle(base, jitter time.Duration) {
	d := base
	if jitter > 0 {
		d += time.Duration(rand.Int63n(int64(jitter)))
	}
	time.Sleep(d)
}
