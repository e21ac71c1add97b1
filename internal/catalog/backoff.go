package catalog

import "time"

// backoff tracks bounded retry state for a single request: how many
// attempts were spent and what the next fallback delay is. Keeping the
// state explicit keeps the delay math unit-testable.
type backoff struct {
	attempts int
	max      int
	next     time.Duration
}

func newBackoff(max int, initial time.Duration) *backoff {
	return &backoff{max: max, next: initial}
}

// Delay consumes one retry attempt and returns how long to wait before it.
// An advertised retry-after takes precedence over the doubling fallback;
// the fallback only doubles when it was actually used, so delays stay
// monotonically non-decreasing. The second return value is false once the
// ceiling is exhausted.
func (b *backoff) Delay(retryAfter time.Duration) (time.Duration, bool) {
	if b.attempts >= b.max {
		return 0, false
	}
	b.attempts++

	if retryAfter > 0 {
		if retryAfter > b.next {
			b.next = retryAfter
		}
		return retryAfter, true
	}

	delay := b.next
	b.next *= 2
	return delay, true
}
