// Package metrics aggregates per-request usage counters in memory and
// periodically flushes them into the api_usage table.
//
// Requests are counted into hourly (method, route) buckets. The hot path is
// a map update under a mutex; persistence happens opportunistically when a
// request arrives and the previous flush is older than the flush interval,
// and once more on shutdown. Losing a partial bucket on a crash is fine,
// these numbers inform capacity chats, not billing.
package metrics

import (
	"context"
	"sync"
	"time"

	"github.com/cenkalti/backoff/v5"
	"go.uber.org/zap"

	"github.com/roboard/spares-kiosk/internal/store"
)

// RouteUnmatched is recorded for requests that hit no registered route, so
// bucket cardinality stays bounded regardless of what clients probe for.
const RouteUnmatched = "__unmatched__"

const defaultFlushInterval = 30 * time.Second

type bucketKey struct {
	bucketStart string
	method      string
	route       string
}

type counters struct {
	total         int64
	count2xx      int64
	count4xx      int64
	count5xx      int64
	sumDurationMS int64
	maxDurationMS int64
}

// Aggregator accumulates usage buckets and flushes them to the store.
type Aggregator struct {
	store         *store.MetricsStore
	log           *zap.SugaredLogger
	flushInterval time.Duration

	mu        sync.Mutex
	buckets   map[bucketKey]*counters
	lastFlush time.Time
	flushing  bool
}

func NewAggregator(st *store.MetricsStore) *Aggregator {
	return &Aggregator{
		store:         st,
		log:           zap.S().Named("metrics"),
		flushInterval: defaultFlushInterval,
		buckets:       make(map[bucketKey]*counters),
		lastFlush:     time.Now(),
	}
}

// Record counts one finished request. An empty route means the request
// matched no handler. Triggers a background flush when one is due.
func (a *Aggregator) Record(method, route string, status int, duration time.Duration) {
	if route == "" {
		route = RouteUnmatched
	}
	key := bucketKey{
		bucketStart: time.Now().UTC().Truncate(time.Hour).Format("2006-01-02T15:04:05Z"),
		method:      method,
		route:       route,
	}
	ms := duration.Milliseconds()

	a.mu.Lock()
	c, ok := a.buckets[key]
	if !ok {
		c = &counters{}
		a.buckets[key] = c
	}
	c.total++
	switch {
	case status >= 200 && status < 300:
		c.count2xx++
	case status >= 400 && status < 500:
		c.count4xx++
	case status >= 500:
		c.count5xx++
	}
	c.sumDurationMS += ms
	if ms > c.maxDurationMS {
		c.maxDurationMS = ms
	}

	due := !a.flushing && time.Since(a.lastFlush) >= a.flushInterval
	if due {
		a.flushing = true
	}
	a.mu.Unlock()

	if due {
		go func() {
			if err := a.Flush(context.Background()); err != nil {
				a.log.Warnw("usage flush failed, buckets retained", "error", err)
			}
			a.mu.Lock()
			a.flushing = false
			a.mu.Unlock()
		}()
	}
}

// Flush persists and drops all accumulated buckets. Buckets that fail to
// persist after retries are merged back so the next flush picks them up.
func (a *Aggregator) Flush(ctx context.Context) error {
	a.mu.Lock()
	pending := a.buckets
	a.buckets = make(map[bucketKey]*counters)
	a.lastFlush = time.Now()
	a.mu.Unlock()

	if len(pending) == 0 {
		return nil
	}

	var firstErr error
	for key, c := range pending {
		bucket := store.UsageBucket{
			BucketStart:   key.bucketStart,
			Method:        key.method,
			Route:         key.route,
			Total:         c.total,
			Count2xx:      c.count2xx,
			Count4xx:      c.count4xx,
			Count5xx:      c.count5xx,
			SumDurationMS: c.sumDurationMS,
			MaxDurationMS: c.maxDurationMS,
		}
		_, err := backoff.Retry(ctx, func() (struct{}, error) {
			return struct{}{}, a.store.UpsertBucket(ctx, bucket)
		}, backoff.WithBackOff(backoff.NewExponentialBackOff()), backoff.WithMaxTries(3))
		if err != nil {
			if firstErr == nil {
				firstErr = err
			}
			a.requeue(key, c)
		}
	}
	return firstErr
}

// Close performs a final synchronous flush. Call on shutdown.
func (a *Aggregator) Close(ctx context.Context) error {
	return a.Flush(ctx)
}

func (a *Aggregator) requeue(key bucketKey, c *counters) {
	a.mu.Lock()
	defer a.mu.Unlock()
	live, ok := a.buckets[key]
	if !ok {
		a.buckets[key] = c
		return
	}
	live.total += c.total
	live.count2xx += c.count2xx
	live.count4xx += c.count4xx
	live.count5xx += c.count5xx
	live.sumDurationMS += c.sumDurationMS
	if c.maxDurationMS > live.maxDurationMS {
		live.maxDurationMS = c.maxDurationMS
	}
}
