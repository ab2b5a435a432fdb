package telemetry

import (
	"context"
	"fmt"
	"time"

	"socially/internal/logger"
	"socially/utils"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/exporters/otlp/otlpmetric/otlpmetricgrpc"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
)

// MetricExportInterval is how often collected metrics are pushed
const MetricExportInterval = 30 * time.Second

// InitMeterProvider installs a global meter provider that pushes to the same
// collector as the tracer. Instruments created through InitMetrics before or
// after this call report through it. The returned func flushes and stops
// the exporter.
func InitMeterProvider(opts Options) (func(), error) {
	ctx := context.Background()

	exporter, err := otlpmetricgrpc.New(ctx,
		otlpmetricgrpc.WithEndpoint(opts.Endpoint),
		otlpmetricgrpc.WithInsecure(),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create OTLP metric exporter: %w", err)
	}

	res, err := newResource(ctx, opts)
	if err != nil {
		return nil, err
	}

	mp := sdkmetric.NewMeterProvider(
		sdkmetric.WithResource(res),
		sdkmetric.WithReader(sdkmetric.NewPeriodicReader(exporter,
			sdkmetric.WithInterval(MetricExportInterval))),
	)
	otel.SetMeterProvider(mp)

	logger.Info("OpenTelemetry meter provider initialized",
		"service", opts.ServiceName, "endpoint", opts.Endpoint, "interval", MetricExportInterval.String())

	return func() {
		ctx, cancel := utils.WithShutdownTimeout(context.Background())
		defer cancel()
		if err := mp.Shutdown(ctx); err != nil {
			logger.Error("Failed to shutdown meter provider", "error", err)
		}
	}, nil
}
