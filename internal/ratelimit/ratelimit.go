package ratelimit

import (
	"context"
	"time"

	"golang.org/x/time/rate"
)

// Pacer spaces out successive page requests within one pagination run.
type Pacer interface {
	Wait(ctx context.Context) error
}

type limiterPacer struct {
	limiter *rate.Limiter
}

type noopPacer struct{}

// NewPacer returns a pacer that lets the first call through immediately and
// holds every later call back by delay. With a burst of one this means no
// delay trails the final page of a run.
func NewPacer(delay time.Duration) Pacer {
	if delay <= 0 {
		return noopPacer{}
	}
	return &limiterPacer{limiter: rate.NewLimiter(rate.Every(delay), 1)}
}

func (p *limiterPacer) Wait(ctx context.Context) error {
	return p.limiter.Wait(ctx)
}

func (noopPacer) Wait(context.Context) error { return nil }
