// Package ratelimit paces requests against the exchange's request-weight
// budget. Every REST route has a weight; the server rejects callers whose
// summed weight exceeds the budget inside the rolling window.
package ratelimit

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"golang.org/x/time/rate"
)

// BucketOrders is the bucket charged once per order placement or cancellation.
const BucketOrders = "orders"

// Limiter enforces a global weight budget plus optional named buckets.
type Limiter struct {
	global  *rate.Limiter
	buckets sync.Map
	weight  int
	period  time.Duration
	metrics *Metrics
}

// Metrics tracks statistics about limiter usage.
type Metrics struct {
	totalRequests  atomic.Int64
	totalWeight    atomic.Int64
	deniedRequests atomic.Int64
	lastUsedWeight atomic.Int64
	bucketCount    atomic.Int32
}

// New creates a Limiter allowing weight units per period. The full budget is
// available as burst, matching a window that resets once per period.
func New(weight int, period time.Duration) *Limiter {
	return &Limiter{
		global:  rate.NewLimiter(perSecond(weight, period), weight),
		weight:  weight,
		period:  period,
		metrics: &Metrics{},
	}
}

func perSecond(n int, period time.Duration) rate.Limit {
	return rate.Limit(float64(n) / period.Seconds())
}

// Wait blocks until weight units are available or ctx is done. A weight
// larger than the whole budget can never be satisfied and fails at once.
func (l *Limiter) Wait(ctx context.Context, weight int) error {
	if weight <= 0 {
		return nil
	}
	l.metrics.totalRequests.Add(1)
	if weight > l.weight {
		l.metrics.deniedRequests.Add(1)
		return fmt.Errorf("request weight %d exceeds budget %d", weight, l.weight)
	}
	if err := l.global.WaitN(ctx, weight); err != nil {
		l.metrics.deniedRequests.Add(1)
		return err
	}
	l.metrics.totalWeight.Add(int64(weight))
	return nil
}

// WaitBucket blocks until the named bucket admits one more call. Unknown
// buckets admit everything; configure them with SetBucketLimit.
func (l *Limiter) WaitBucket(ctx context.Context, bucket string) error {
	v, ok := l.buckets.Load(bucket)
	if !ok {
		return nil
	}
	if err := v.(*rate.Limiter).Wait(ctx); err != nil {
		l.metrics.deniedRequests.Add(1)
		return err
	}
	return nil
}

// Allow reports whether weight units are available right now, consuming them if so.
func (l *Limiter) Allow(weight int) bool {
	l.metrics.totalRequests.Add(1)
	if l.global.AllowN(time.Now(), weight) {
		l.metrics.totalWeight.Add(int64(weight))
		return true
	}
	l.metrics.deniedRequests.Add(1)
	return false
}

// SetBucketLimit creates or updates a bucket admitting count calls per period.
func (l *Limiter) SetBucketLimit(bucket string, count int, period time.Duration) {
	limiter := rate.NewLimiter(perSecond(count, period), count)
	actual, loaded := l.buckets.LoadOrStore(bucket, limiter)
	if loaded {
		existing := actual.(*rate.Limiter)
		existing.SetLimit(perSecond(count, period))
		existing.SetBurst(count)
		return
	}
	l.metrics.bucketCount.Add(1)
}

// ObserveUsedWeight records the server-reported weight consumed in the current window.
func (l *Limiter) ObserveUsedWeight(used int64) {
	l.metrics.lastUsedWeight.Store(used)
}

// Budget returns the configured weight per period.
func (l *Limiter) Budget() (int, time.Duration) {
	return l.weight, l.period
}

// Metrics returns a snapshot of the current limiter statistics.
func (l *Limiter) Metrics() MetricsSnapshot {
	return MetricsSnapshot{
		TotalRequests:  l.metrics.totalRequests.Load(),
		TotalWeight:    l.metrics.totalWeight.Load(),
		DeniedRequests: l.metrics.deniedRequests.Load(),
		LastUsedWeight: l.metrics.lastUsedWeight.Load(),
		BucketCount:    l.metrics.bucketCount.Load(),
	}
}

// MetricsSnapshot is a point-in-time capture of limiter statistics.
type MetricsSnapshot struct {
	// TotalRequests is the number of weighted checks performed.
	TotalRequests int64
	// TotalWeight is the weight admitted so far.
	TotalWeight int64
	// DeniedRequests counts checks that failed or were refused.
	DeniedRequests int64
	// LastUsedWeight is the most recent server-reported used weight.
	LastUsedWeight int64
	// BucketCount is the number of named buckets configured.
	BucketCount int32
}
