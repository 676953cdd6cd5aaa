package loop

import (
	"fmt"
	"time"
)

// FrameRate is either on-demand or a fixed period.
type FrameRate struct {
	period time.Duration
}

// OnDemand never fires on its own; dispatch happens only on request.
var OnDemand = FrameRate{}

// Every returns a periodic rate. A non-positive period is OnDemand.
func Every(d time.Duration) FrameRate {
	if d <= 0 {
		return OnDemand
	}
	return FrameRate{period: d}
}

// IsOnDemand reports whether the rate never fires on its own.
func (r FrameRate) IsOnDemand() bool {
	return r.period <= 0
}

// Period returns the interval between deadlines, or zero for OnDemand.
func (r FrameRate) Period() time.Duration {
	return r.period
}

// String returns a readable form of the rate.
func (r FrameRate) String() string {
	if r.IsOnDemand() {
		return "on-demand"
	}
	return fmt.Sprintf("every %s", r.period)
}

// FrameTimer tracks the next deadline of a FrameRate.
type FrameTimer struct {
	rate FrameRate
	next time.Time
}

// NewFrameTimer creates a timer whose first deadline is now, so a
// periodic timer is ready on the first check.
func NewFrameTimer(rate FrameRate, now time.Time) *FrameTimer {
	return &FrameTimer{rate: rate, next: now}
}

// Rate returns the timer's rate.
func (t *FrameTimer) Rate() FrameRate {
	return t.rate
}

// Next returns the next deadline. It is meaningless for OnDemand.
func (t *FrameTimer) Next() time.Time {
	return t.next
}

// Ready reports whether the deadline has passed and, if so, advances it
// by one period. A timer that has fallen more than a period behind
// resynchronises to now plus one period instead of firing in a burst.
func (t *FrameTimer) Ready(now time.Time) bool {
	if t.rate.IsOnDemand() || now.Before(t.next) {
		return false
	}
	t.next = t.next.Add(t.rate.period)
	if !t.next.After(now) {
		t.next = now.Add(t.rate.period)
	}
	return true
}

// Until returns the time left before the next deadline, zero if it has
// passed. The boolean is false for OnDemand timers.
func (t *FrameTimer) Until(now time.Time) (time.Duration, bool) {
	if t.rate.IsOnDemand() {
		return 0, false
	}
	return max(t.next.Sub(now), 0), true
}
