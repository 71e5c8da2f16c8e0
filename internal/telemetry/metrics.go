package telemetry

import (
	"context"
	"log"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

const meterName = "github.com/WailSalutem-Health-Care/clinic-service"

// Metrics holds all custom metrics for the service.
// A nil *Metrics is valid and records nothing.
type Metrics struct {
	// HTTP metrics
	HTTPRequestsTotal metric.Int64Counter
	HTTPDurationMs    metric.Float64Histogram

	// Business metrics
	OperationsTotal        metric.Int64Counter
	StatusTransitionsTotal metric.Int64Counter
	OverdueMarkedTotal     metric.Int64Counter

	// Auth metrics
	AuthFailuresTotal       metric.Int64Counter
	PermissionCheckDuration metric.Float64Histogram
}

// InitMetrics initializes all custom metrics on the global meter provider
func InitMetrics() (*Metrics, error) {
	meter := otel.Meter(meterName)

	httpRequestsTotal, err := meter.Int64Counter(
		"http_server_requests_total",
		metric.WithDescription("Total number of HTTP requests"),
		metric.WithUnit("{request}"),
	)
	if err != nil {
		return nil, err
	}

	httpDurationMs, err := meter.Float64Histogram(
		"http_server_duration_milliseconds",
		metric.WithDescription("HTTP request duration in milliseconds"),
		metric.WithUnit("ms"),
	)
	if err != nil {
		return nil, err
	}

	operationsTotal, err := meter.Int64Counter(
		"clinic_operations_total",
		metric.WithDescription("Total number of clinic record operations by entity"),
		metric.WithUnit("{operation}"),
	)
	if err != nil {
		return nil, err
	}

	statusTransitionsTotal, err := meter.Int64Counter(
		"clinic_status_transitions_total",
		metric.WithDescription("Total number of lifecycle status changes by entity"),
		metric.WithUnit("{transition}"),
	)
	if err != nil {
		return nil, err
	}

	overdueMarkedTotal, err := meter.Int64Counter(
		"clinic_payments_overdue_marked_total",
		metric.WithDescription("Payments flagged as overdue"),
		metric.WithUnit("{payment}"),
	)
	if err != nil {
		return nil, err
	}

	authFailuresTotal, err := meter.Int64Counter(
		"auth_failures_total",
		metric.WithDescription("Total number of authentication failures"),
		metric.WithUnit("{failure}"),
	)
	if err != nil {
		return nil, err
	}

	permissionCheckDuration, err := meter.Float64Histogram(
		"permission_check_duration_ms",
		metric.WithDescription("Permission check duration in milliseconds"),
		metric.WithUnit("ms"),
	)
	if err != nil {
		return nil, err
	}

	log.Println("✓ Custom metrics initialized")

	return &Metrics{
		HTTPRequestsTotal:       httpRequestsTotal,
		HTTPDurationMs:          httpDurationMs,
		OperationsTotal:         operationsTotal,
		StatusTransitionsTotal:  statusTransitionsTotal,
		OverdueMarkedTotal:      overdueMarkedTotal,
		AuthFailuresTotal:       authFailuresTotal,
		PermissionCheckDuration: permissionCheckDuration,
	}, nil
}

// RecordHTTPRequest records an HTTP request metric
func (m *Metrics) RecordHTTPRequest(ctx context.Context, method, route string, statusCode int, durationMs float64) {
	if m == nil {
		return
	}
	attrs := []attribute.KeyValue{
		attribute.String("http_method", method),
		attribute.String("http_route", route),
		attribute.Int("http_status_code", statusCode),
	}

	m.HTTPRequestsTotal.Add(ctx, 1, metric.WithAttributes(attrs...))
	m.HTTPDurationMs.Record(ctx, durationMs, metric.WithAttributes(attrs...))
}

// RecordOperation counts a create/update/list operation on an entity
func (m *Metrics) RecordOperation(ctx context.Context, entity, operation string) {
	if m == nil {
		return
	}
	m.OperationsTotal.Add(ctx, 1, metric.WithAttributes(
		attribute.String("entity", entity),
		attribute.String("operation", operation),
	))
}

// RecordStatusTransition counts a lifecycle change
func (m *Metrics) RecordStatusTransition(ctx context.Context, entity, from, to string) {
	if m == nil {
		return
	}
	m.StatusTransitionsTotal.Add(ctx, 1, metric.WithAttributes(
		attribute.String("entity", entity),
		attribute.String("from", from),
		attribute.String("to", to),
	))
}

// RecordOverdue counts payments flagged by an overdue sweep
func (m *Metrics) RecordOverdue(ctx context.Context, count int) {
	if m == nil || count == 0 {
		return
	}
	m.OverdueMarkedTotal.Add(ctx, int64(count))
}

// RecordAuthFailure records an authentication failure metric
func (m *Metrics) RecordAuthFailure(ctx context.Context, reason string) {
	if m == nil {
		return
	}
	m.AuthFailuresTotal.Add(ctx, 1, metric.WithAttributes(
		attribute.String("reason", reason),
	))
}

// RecordPermissionCheck records a permission check duration metric
func (m *Metrics) RecordPermissionCheck(ctx context.Context, permission string, durationMs float64, allowed bool) {
	if m == nil {
		return
	}
	m.PermissionCheckDuration.Record(ctx, durationMs, metric.WithAttributes(
		attribute.String("permission", permission),
		attribute.Bool("allowed", allowed),
	))
}
