package tool

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	// Packages
	uuid "github.com/google/uuid"
	otel "github.com/mutablelogic/go-client/pkg/otel"
	scopey "github.com/mutablelogic/go-scopey"
	schema "github.com/mutablelogic/go-scopey/pkg/schema"
	otelapi "go.opentelemetry.io/otel"
	attribute "go.opentelemetry.io/otel/attribute"
	metric "go.opentelemetry.io/otel/metric"
	trace "go.opentelemetry.io/otel/trace"
	noop "go.opentelemetry.io/otel/trace/noop"
)

///////////////////////////////////////////////////////////////////////////////
// TYPES

// Dispatcher resolves invocation requests against a toolkit, validates the
// arguments, runs the tool and converts the outcome into a response.
// It holds no state between invocations and is safe for concurrent use.
type Dispatcher struct {
	toolkit  *Toolkit
	strict   bool
	logger   *slog.Logger
	tracer   trace.Tracer
	meter    metric.Meter
	observer *Observer
}

///////////////////////////////////////////////////////////////////////////////
// GLOBALS

const (
	instrumentationName = "github.com/mutablelogic/go-scopey/pkg/tool"
)

///////////////////////////////////////////////////////////////////////////////
// LIFECYCLE

// NewDispatcher returns a dispatcher for the toolkit
func NewDispatcher(toolkit *Toolkit, opts ...Opt) (*Dispatcher, error) {
	if toolkit == nil {
		return nil, scopey.ErrBadParameter.With("toolkit is nil")
	}
	d := &Dispatcher{
		toolkit: toolkit,
		logger:  slog.Default(),
		tracer:  noop.NewTracerProvider().Tracer(instrumentationName),
		meter:   otelapi.GetMeterProvider().Meter(instrumentationName),
	}
	for _, opt := range opts {
		if err := opt(d); err != nil {
			return nil, err
		}
	}
	if d.tracer == nil {
		d.tracer = noop.NewTracerProvider().Tracer(instrumentationName)
	}

	// Create the metric instruments
	observer, err := NewObserver(d.meter)
	if err != nil {
		return nil, err
	}
	d.observer = observer

	return d, nil
}

///////////////////////////////////////////////////////////////////////////////
// PUBLIC METHODS

// Toolkit returns the toolkit the dispatcher resolves against
func (d *Dispatcher) Toolkit() *Toolkit {
	return d.toolkit
}

// List returns the discovery metadata for every tool
func (d *Dispatcher) List() []schema.ToolMeta {
	return d.toolkit.List()
}

// Call resolves a tool by name and invokes it with the arguments. An unknown
// name returns an ErrNotFound error and no tool is run. Any other outcome,
// including a tool failure, is returned as a response.
func (d *Dispatcher) Call(ctx context.Context, name string, args map[string]any) (*schema.CallToolResponse, error) {
	desc, err := d.toolkit.Lookup(name)
	if err != nil {
		d.logger.WarnContext(ctx, "tool not found", "tool", name)
		return nil, err
	}
	return d.Invoke(ctx, desc, args).Envelope(), nil
}

// Invoke validates the arguments and runs the tool once, returning the
// outcome. Validation findings prevent the tool from running only when
// strict validation is enabled.
func (d *Dispatcher) Invoke(ctx context.Context, desc *Descriptor, args map[string]any) (result Result) {
	callID := uuid.NewString()
	start := time.Now()
	outcome := OutcomeCompleted

	// OTEL
	ctx, endSpan := otel.StartSpan(d.tracer, ctx, "CallTool",
		attribute.String("tool.name", desc.Name()),
		attribute.String("tool.call_id", callID),
	)
	defer func() {
		if result.IsFailed() && outcome == OutcomeCompleted {
			outcome = OutcomeFailed
		}
		d.observer.ObserveInvoke(ctx, desc.Name(), outcome, time.Since(start))
		if result.IsFailed() {
			endSpan(failure{result})
		} else {
			endSpan(nil)
		}
	}()

	logger := d.logger.With("tool", desc.Name(), "call_id", callID)

	// Validate the arguments
	if err := desc.Validate(args); err != nil {
		findings, _ := AsValidationErrors(err)
		d.observer.ObserveValidation(ctx, desc.Name(), len(findings))
		trace.SpanFromContext(ctx).SetAttributes(
			attribute.StringSlice("tool.validation", findingStrings(findings)),
		)
		if d.strict {
			logger.WarnContext(ctx, "rejected arguments", "error", err)
			outcome = OutcomeRejected
			return Failed(err)
		}
		logger.WarnContext(ctx, "arguments do not match schema", "error", err)
	}

	// Encode the arguments
	var input json.RawMessage
	if args != nil {
		data, err := json.Marshal(args)
		if err != nil {
			return Failed(err)
		}
		input = data
	}

	// Run the tool
	logger.DebugContext(ctx, "invoking tool")
	result = run(ctx, desc.tool, input)
	if result.IsFailed() {
		logger.ErrorContext(ctx, "tool failed", "error", result.Message(), "duration", time.Since(start))
	} else {
		logger.DebugContext(ctx, "tool completed", "duration", time.Since(start))
	}
	return result
}

///////////////////////////////////////////////////////////////////////////////
// PRIVATE METHODS

// run calls the tool, converting a panic into a failure
func run(ctx context.Context, t Tool, input json.RawMessage) (result Result) {
	defer func() {
		if r := recover(); r != nil {
			if err, ok := r.(error); ok {
				result = Failed(err)
			} else {
				result = Failed(nil)
			}
		}
	}()
	value, err := t.Run(ctx, input)
	if err != nil {
		return Failed(err)
	}
	return Completed(value)
}

func findingStrings(findings ValidationErrors) []string {
	result := make([]string, 0, len(findings))
	for _, f := range findings {
		result = append(result, f.Error())
	}
	return result
}

// failure adapts a failed result for recording on a span
type failure struct {
	Result
}

func (f failure) Error() string {
	return f.Message()
}
