package ports

import (
	"context"
	"time"
)

// MetricsRecorder defines the interface for emitting operational
// metrics. Recording is fire-and-forget: implementations buffer and
// flush on their own schedule and never fail the caller.
type MetricsRecorder interface {
	// RecordCacheHit counts a cache hit for the given key
	RecordCacheHit(ctx context.Context, key string)

	// RecordCacheMiss counts a cache miss for the given key
	RecordCacheMiss(ctx context.Context, key string)

	// RecordLatency records how long a named operation took
	RecordLatency(ctx context.Context, operation string, d time.Duration)
}
