package worker

import (
	"context"
	"sync"

	"golang.org/x/time/rate"
)

// Limiter throttles submissions per sender so one chatty producer cannot
// crowd out the rest of a batch.
type Limiter struct {
	limiters     map[string]*rate.Limiter
	mu           sync.RWMutex
	defaultRate  rate.Limit
	defaultBurst int
}

// NewLimiter creates a per-sender rate limiter.
func NewLimiter(messagesPerSecond float64, burst int) *Limiter {
	if burst <= 0 {
		burst = 5
	}
	return &Limiter{
		limiters:     make(map[string]*rate.Limiter),
		defaultRate:  rate.Limit(messagesPerSecond),
		defaultBurst: burst,
	}
}

// Wait blocks until the sender may submit or ctx is cancelled.
func (l *Limiter) Wait(ctx context.Context, senderID string) error {
	return l.getLimiter(senderID).Wait(ctx)
}

// Allow reports whether the sender may submit right now.
func (l *Limiter) Allow(senderID string) bool {
	return l.getLimiter(senderID).Allow()
}

func (l *Limiter) getLimiter(senderID string) *rate.Limiter {
	l.mu.RLock()
	limiter, exists := l.limiters[senderID]
	l.mu.RUnlock()
	if exists {
		return limiter
	}

	l.mu.Lock()
	defer l.mu.Unlock()
	if limiter, exists := l.limiters[senderID]; exists {
		return limiter
	}
	limiter = rate.NewLimiter(l.defaultRate, l.defaultBurst)
	l.limiters[senderID] = limiter
	return limiter
}

// SetSenderRate overrides the limit for one sender.
func (l *Limiter) SetSenderRate(senderID string, messagesPerSecond float64, burst int) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if burst <= 0 {
		burst = l.defaultBurst
	}
	l.limiters[senderID] = rate.NewLimiter(rate.Limit(messagesPerSecond), burst)
}
