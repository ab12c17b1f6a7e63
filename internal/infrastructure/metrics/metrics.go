package metrics

import (
	"context"
	"log/slog"
	"time"

	"github.com/sharebite/backend/internal/domain"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/otlp/otlpmetric/otlpmetricgrpc"
	"go.opentelemetry.io/otel/metric"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	sdkresource "go.opentelemetry.io/otel/sdk/resource"
	semconv "go.opentelemetry.io/otel/semconv/v1.24.0"
)

const meterName = "github.com/sharebite/backend"

// Init installs a global meter provider pushing to an OTLP gRPC endpoint.
// With no endpoint the global no-op provider stays in place.
func Init(ctx context.Context, service, endpoint string) (shutdown func(context.Context) error) {
	noop := func(context.Context) error { return nil }
	if endpoint == "" {
		slog.Debug("metrics export disabled")
		return noop
	}

	res, err := sdkresource.Merge(sdkresource.Default(), sdkresource.NewWithAttributes(
		semconv.SchemaURL,
		semconv.ServiceName(service),
	))
	if err != nil {
		res = sdkresource.Default()
	}

	initCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	exp, err := otlpmetricgrpc.New(initCtx,
		otlpmetricgrpc.WithEndpoint(endpoint),
		otlpmetricgrpc.WithInsecure(),
	)
	if err != nil {
		slog.Warn("metrics exporter init failed", "error", err)
		return noop
	}

	reader := sdkmetric.NewPeriodicReader(exp, sdkmetric.WithInterval(10*time.Second))
	mp := sdkmetric.NewMeterProvider(sdkmetric.WithReader(reader), sdkmetric.WithResource(res))
	otel.SetMeterProvider(mp)
	slog.Info("metrics initialized", "endpoint", endpoint)
	return mp.Shutdown
}

// Recorder records evaluation and corpus instruments
type Recorder struct {
	evaluations metric.Int64Counter
	duration    metric.Float64Histogram
	corpusRows  metric.Int64Counter
}

// NewRecorder creates instruments on the global meter provider
func NewRecorder() *Recorder {
	return NewRecorderWithProvider(otel.GetMeterProvider())
}

// NewRecorderWithProvider creates instruments on provider
func NewRecorderWithProvider(provider metric.MeterProvider) *Recorder {
	meter := provider.Meter(meterName)
	evaluations, _ := meter.Int64Counter("sharebite_evaluations_total",
		metric.WithDescription("Per-signal evaluation outcomes"))
	duration, _ := meter.Float64Histogram("sharebite_evaluation_duration_ms",
		metric.WithDescription("Combined evaluation latency"),
		metric.WithUnit("ms"))
	corpusRows, _ := meter.Int64Counter("sharebite_corpus_rows_total",
		metric.WithDescription("Synthetic corpus rows generated"))
	return &Recorder{evaluations: evaluations, duration: duration, corpusRows: corpusRows}
}

// RecordSignal counts one signal outcome
func (r *Recorder) RecordSignal(ctx context.Context, signal domain.Signal, ok bool) {
	outcome := "ok"
	if !ok {
		outcome = "error"
	}
	r.evaluations.Add(ctx, 1, metric.WithAttributes(
		attribute.String("signal", string(signal)),
		attribute.String("outcome", outcome),
	))
}

// RecordEvaluation observes the latency of one combined evaluation
func (r *Recorder) RecordEvaluation(ctx context.Context, elapsed time.Duration) {
	r.duration.Record(ctx, float64(elapsed.Microseconds())/1000)
}

// RecordCorpus counts generated corpus rows
func (r *Recorder) RecordCorpus(ctx context.Context, rows int) {
	r.corpusRows.Add(ctx, int64(rows))
}
