package tool

import (
	"context"
	"time"

	// Packages
	attribute "go.opentelemetry.io/otel/attribute"
	metric "go.opentelemetry.io/otel/metric"
)

///////////////////////////////////////////////////////////////////////////////
// TYPES

// Observer records invocation metrics
type Observer struct {
	invocations metric.Int64Counter
	validation  metric.Int64Counter
	latency     metric.Float64Histogram
}

// Outcome is the terminal state of an invocation
type Outcome string

///////////////////////////////////////////////////////////////////////////////
// GLOBALS

const (
	OutcomeCompleted Outcome = "completed"
	OutcomeFailed    Outcome = "failed"
	OutcomeRejected  Outcome = "rejected"
)

const (
	MetricInvocations        = "scopey.tool.invocations"
	MetricValidationFailures = "scopey.tool.validation_failures"
	MetricLatency            = "scopey.tool.latency"
)

///////////////////////////////////////////////////////////////////////////////
// LIFECYCLE

// NewObserver creates an observer bound to the provided meter
func NewObserver(meter metric.Meter) (*Observer, error) {
	invocations, err := meter.Int64Counter(
		MetricInvocations,
		metric.WithDescription("Number of tool invocations"),
	)
	if err != nil {
		return nil, err
	}
	validation, err := meter.Int64Counter(
		MetricValidationFailures,
		metric.WithDescription("Number of tool invocations with arguments not matching the input schema"),
	)
	if err != nil {
		return nil, err
	}
	latency, err := meter.Float64Histogram(
		MetricLatency,
		metric.WithDescription("Tool latency in seconds"),
		metric.WithUnit("s"),
	)
	if err != nil {
		return nil, err
	}
	return &Observer{
		invocations: invocations,
		validation:  validation,
		latency:     latency,
	}, nil
}

///////////////////////////////////////////////////////////////////////////////
// PUBLIC METHODS

// ObserveInvoke records one invocation outcome and its duration
func (o *Observer) ObserveInvoke(ctx context.Context, name string, outcome Outcome, duration time.Duration) {
	if o == nil {
		return
	}
	options := metric.WithAttributes(
		attribute.String("tool_name", name),
		attribute.String("outcome", string(outcome)),
	)
	o.invocations.Add(ctx, 1, options)
	o.latency.Record(ctx, duration.Seconds(), options)
}

// ObserveValidation records arguments which did not match the input schema
func (o *Observer) ObserveValidation(ctx context.Context, name string, findings int) {
	if o == nil || findings == 0 {
		return
	}
	o.validation.Add(ctx, 1, metric.WithAttributes(
		attribute.String("tool_name", name),
		attribute.Int("findings", findings),
	))
}
