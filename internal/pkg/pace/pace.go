// Package pace enforces a minimum interval between sequential upstream calls.
// CoinGecko's free tier tolerates roughly one request per 1.5s, so the sync
// job threads every fetch through one shared pacer instead of sleeping inline.
package pace

import (
	"context"
	"time"

	"golang.org/x/time/rate"
)

type Interval struct {
	lim *rate.Limiter
}

// NewInterval returns a pacer whose Wait returns immediately the first time
// and then no more often than once per min. min <= 0 disables pacing.
func NewInterval(min time.Duration) *Interval {
	if min <= 0 {
		return &Interval{lim: rate.NewLimiter(rate.Inf, 1)}
	}
	return &Interval{lim: rate.NewLimiter(rate.Every(min), 1)}
}

func (p *Interval) Wait(ctx context.Context) error {
	return p.lim.Wait(ctx)
}

// None never waits. Test helper.
type None struct{}

func (None) Wait(context.Context) error { return nil }
