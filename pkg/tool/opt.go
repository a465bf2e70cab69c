package tool

import (
	"log/slog"

	// Packages
	scopey "github.com/mutablelogic/go-scopey"
	metric "go.opentelemetry.io/otel/metric"
	trace "go.opentelemetry.io/otel/trace"
)

///////////////////////////////////////////////////////////////////////////////
// TYPES

// Opt is a dispatcher option
type Opt func(*Dispatcher) error

///////////////////////////////////////////////////////////////////////////////
// PUBLIC METHODS

// WithLogger sets the logger for the dispatcher
func WithLogger(logger *slog.Logger) Opt {
	return func(d *Dispatcher) error {
		if logger == nil {
			return scopey.ErrBadParameter.With("logger is nil")
		}
		d.logger = logger
		return nil
	}
}

// WithTracer sets the tracer used to create a span for each invocation
func WithTracer(tracer trace.Tracer) Opt {
	return func(d *Dispatcher) error {
		d.tracer = tracer
		return nil
	}
}

// WithMeter sets the meter used to record invocation metrics
func WithMeter(meter metric.Meter) Opt {
	return func(d *Dispatcher) error {
		if meter == nil {
			return scopey.ErrBadParameter.With("meter is nil")
		}
		d.meter = meter
		return nil
	}
}

// WithStrictValidation rejects invocations whose arguments do not match the
// tool input schema, without calling the tool. By default validation findings
// are logged and the tool is called anyway.
func WithStrictValidation() Opt {
	return func(d *Dispatcher) error {
		d.strict = true
		return nil
	}
}
