package coordinator

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

const instrumentationName = "github.com/tourglobe/stagecam/internal/coordinator"

// metrics wraps the coordinator's OTel instruments. The global meter is
// a no-op unless a provider is configured.
type metrics struct {
	flightsStarted  metric.Int64Counter
	flightsResolved metric.Int64Counter
	selectsSkipped  metric.Int64Counter
}

func newMetrics() *metrics {
	m := otel.Meter(instrumentationName)

	flightsStarted, _ := m.Int64Counter(
		"coordinator.flights.started",
		metric.WithDescription("Mode flights issued"),
	)
	flightsResolved, _ := m.Int64Counter(
		"coordinator.flights.resolved",
		metric.WithDescription("Mode flights resolved, by outcome"),
	)
	selectsSkipped, _ := m.Int64Counter(
		"coordinator.selects.skipped",
		metric.WithDescription("Stop selections skipped for missing input"),
	)

	return &metrics{
		flightsStarted:  flightsStarted,
		flightsResolved: flightsResolved,
		selectsSkipped:  selectsSkipped,
	}
}

func (m *metrics) started(target Mode) {
	m.flightsStarted.Add(context.Background(), 1,
		metric.WithAttributes(attribute.String("target", target.String())))
}

func (m *metrics) resolved(target Mode, cancelled bool) {
	m.flightsResolved.Add(context.Background(), 1,
		metric.WithAttributes(
			attribute.String("target", target.String()),
			attribute.Bool("cancelled", cancelled),
		))
}

func (m *metrics) skipped(stopID, reason string) {
	m.selectsSkipped.Add(context.Background(), 1,
		metric.WithAttributes(
			attribute.String("stop", stopID),
			attribute.String("reason", reason),
		))
}
