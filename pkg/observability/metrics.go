// Package observability reports cache efficiency and request latency to
// CloudWatch and wires X-Ray tracing around the HTTP surface.
package observability

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/cloudwatch"
	"github.com/aws/aws-sdk-go-v2/service/cloudwatch/types"
)

// Metrics emits operational metrics to CloudWatch. A nil client turns
// every call into a no-op, which is how local development runs.
type Metrics struct {
	namespace string
	client    *cloudwatch.Client
	logger    *zap.Logger
}

// NewMetrics creates a new metrics instance
func NewMetrics(namespace string, client *cloudwatch.Client, logger *zap.Logger) *Metrics {
	return &Metrics{
		namespace: namespace,
		client:    client,
		logger:    logger,
	}
}

// RecordCacheHit counts a cache hit for the given key
func (m *Metrics) RecordCacheHit(ctx context.Context, key string) {
	m.recordCacheAccess(ctx, key, "hit")
}

// RecordCacheMiss counts a cache miss for the given key
func (m *Metrics) RecordCacheMiss(ctx context.Context, key string) {
	m.recordCacheAccess(ctx, key, "miss")
}

func (m *Metrics) recordCacheAccess(ctx context.Context, key, outcome string) {
	if m.client == nil {
		return
	}

	m.put(ctx, types.MetricDatum{
		MetricName: aws.String("CacheAccess"),
		Dimensions: []types.Dimension{
			{
				Name:  aws.String("Key"),
				Value: aws.String(key),
			},
			{
				Name:  aws.String("Outcome"),
				Value: aws.String(outcome),
			},
		},
		Value:     aws.Float64(1),
		Unit:      types.StandardUnitCount,
		Timestamp: aws.Time(time.Now()),
	})
}

// RecordLatency records how long a named operation took
func (m *Metrics) RecordLatency(ctx context.Context, operation string, d time.Duration) {
	if m.client == nil {
		return
	}

	m.put(ctx, types.MetricDatum{
		MetricName: aws.String("OperationLatency"),
		Dimensions: []types.Dimension{
			{
				Name:  aws.String("Operation"),
				Value: aws.String(operation),
			},
		},
		Value:     aws.Float64(float64(d.Milliseconds())),
		Unit:      types.StandardUnitMilliseconds,
		Timestamp: aws.Time(time.Now()),
	})
}

// RecordError counts an error occurrence by type and code
func (m *Metrics) RecordError(ctx context.Context, errorType, errorCode string) {
	if m.client == nil {
		return
	}

	m.put(ctx, types.MetricDatum{
		MetricName: aws.String("Errors"),
		Dimensions: []types.Dimension{
			{
				Name:  aws.String("ErrorType"),
				Value: aws.String(errorType),
			},
			{
				Name:  aws.String("ErrorCode"),
				Value: aws.String(errorCode),
			},
		},
		Value:     aws.Float64(1),
		Unit:      types.StandardUnitCount,
		Timestamp: aws.Time(time.Now()),
	})
}

// put sends a single datum, logging and swallowing any failure so that
// metrics never fail the operation being measured.
func (m *Metrics) put(ctx context.Context, datum types.MetricDatum) {
	input := &cloudwatch.PutMetricDataInput{
		Namespace:  aws.String(m.namespace),
		MetricData: []types.MetricDatum{datum},
	}
	if _, err := m.client.PutMetricData(ctx, input); err != nil {
		m.logger.Warn("Failed to send metric", zap.Error(err))
	}
}
