package otel

import (
	"context"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"

	"github.com/clarsbyte/onshape-mcp/feature"
)

// ChainObserver records feature chain resolution signals into
// OpenTelemetry.
type ChainObserver struct {
	tracer trace.Tracer

	steps       metric.Int64Counter
	resolutions metric.Int64Counter
	duration    metric.Float64Histogram
}

// NewChainObserver creates a chain observer bound to the provided meter
// and tracer.
func NewChainObserver(meter metric.Meter, tracer trace.Tracer) (*ChainObserver, error) {
	steps, err := meter.Int64Counter(
		"onshape.chain.steps",
		metric.WithDescription("Number of resolved chain steps"),
	)
	if err != nil {
		return nil, err
	}
	resolutions, err := meter.Int64Counter(
		"onshape.chain.resolutions",
		metric.WithDescription("Number of chain resolutions"),
	)
	if err != nil {
		return nil, err
	}
	duration, err := meter.Float64Histogram(
		"onshape.chain.duration",
		metric.WithDescription("Chain step and resolution duration in seconds"),
		metric.WithUnit("s"),
	)
	if err != nil {
		return nil, err
	}

	return &ChainObserver{
		tracer:      tracer,
		steps:       steps,
		resolutions: resolutions,
		duration:    duration,
	}, nil
}

// ObserveChainStep records one resolved sketch+extrude step.
func (o *ChainObserver) ObserveChainStep(observation feature.ChainStepObservation) {
	if o == nil {
		return
	}

	attrs := []attribute.KeyValue{
		attribute.Int("step", observation.Step),
		attribute.Float64("radius", observation.Radius),
		attribute.Float64("depth", observation.Depth),
		attribute.Bool("success", observation.Success),
	}
	if observation.ErrorCode != "" {
		attrs = append(attrs, attribute.String("error_code", observation.ErrorCode))
	}

	ctx := context.Background()
	options := metric.WithAttributes(attrs...)
	o.steps.Add(ctx, 1, options)
	o.duration.Record(ctx, float64(time.Duration(observation.DurationMS)*time.Millisecond)/float64(time.Second), options)

	if o.tracer == nil {
		return
	}
	_, span := o.tracer.Start(ctx, "chain.step", trace.WithAttributes(attrs...))
	if !observation.Success {
		span.SetStatus(codes.Error, observation.ErrorCode)
	} else {
		span.SetStatus(codes.Ok, "")
	}
	span.End()
}

// ObserveChain records one whole chain resolution.
func (o *ChainObserver) ObserveChain(observation feature.ChainObservation) {
	if o == nil {
		return
	}

	attrs := []attribute.KeyValue{
		attribute.Int("steps", observation.Steps),
		attribute.Int("features_created", observation.FeaturesCreated),
		attribute.Bool("success", observation.Success),
	}
	if observation.ErrorCode != "" {
		attrs = append(attrs, attribute.String("error_code", observation.ErrorCode))
	}

	ctx := context.Background()
	options := metric.WithAttributes(attrs...)
	o.resolutions.Add(ctx, 1, options)
	o.duration.Record(ctx, float64(time.Duration(observation.DurationMS)*time.Millisecond)/float64(time.Second), options)

	if o.tracer == nil {
		return
	}
	_, span := o.tracer.Start(ctx, "chain.resolve", trace.WithAttributes(attrs...))
	if !observation.Success {
		span.SetStatus(codes.Error, observation.ErrorCode)
	} else {
		span.SetStatus(codes.Ok, "")
	}
	span.End()
}

var _ feature.Observer = (*ChainObserver)(nil)
