package gemini

import (
	"context"
	"sync"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

var (
	metricsOnce     sync.Once
	requestCount    metric.Int64Counter
	requestDuration metric.Float64Histogram
)

func initMetrics() {
	meter := otel.Meter("github.com/aarogyaai/backend/internal/infrastructure/clients/gemini")

	requestCount, _ = meter.Int64Counter(
		"triage.inference.count",
		metric.WithDescription("Number of triage inference calls"),
	)
	requestDuration, _ = meter.Float64Histogram(
		"triage.inference.duration",
		metric.WithDescription("Triage inference duration in milliseconds"),
		metric.WithUnit("ms"),
	)
}

func recordTriageMetric(ctx context.Context, model string, duration time.Duration, err error) {
	metricsOnce.Do(initMetrics)

	attrs := []attribute.KeyValue{
		attribute.String("model", model),
		attribute.Bool("error", err != nil),
	}

	if requestCount != nil {
		requestCount.Add(ctx, 1, metric.WithAttributes(attrs...))
	}
	if requestDuration != nil {
		requestDuration.Record(ctx, float64(duration.Milliseconds()), metric.WithAttributes(attrs...))
	}
}
