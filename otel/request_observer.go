// Package otel records the transport and chain observability streams as
// OpenTelemetry metrics and spans.
package otel

import (
	"context"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"

	"github.com/clarsbyte/onshape-mcp/onshape"
)

// RequestObserver records Onshape API request signals into OpenTelemetry.
type RequestObserver struct {
	tracer trace.Tracer

	requests metric.Int64Counter
	latency  metric.Float64Histogram
}

// NewRequestObserver creates a request observer bound to the provided
// meter and tracer.
func NewRequestObserver(meter metric.Meter, tracer trace.Tracer) (*RequestObserver, error) {
	requests, err := meter.Int64Counter(
		"onshape.api.requests",
		metric.WithDescription("Number of Onshape API requests"),
	)
	if err != nil {
		return nil, err
	}
	latency, err := meter.Float64Histogram(
		"onshape.api.latency",
		metric.WithDescription("Onshape API request latency in seconds"),
		metric.WithUnit("s"),
	)
	if err != nil {
		return nil, err
	}

	return &RequestObserver{
		tracer:   tracer,
		requests: requests,
		latency:  latency,
	}, nil
}

// ObserveRequest records one API request result.
func (o *RequestObserver) ObserveRequest(observation onshape.RequestObservation) {
	if o == nil {
		return
	}

	attrs := []attribute.KeyValue{
		attribute.String("method", observation.Method),
		attribute.String("path", observation.Path),
		attribute.Int("status", observation.Status),
		attribute.Bool("success", observation.Success),
	}
	if observation.ErrorCode != "" {
		attrs = append(attrs, attribute.String("error_code", observation.ErrorCode))
	}

	ctx := context.Background()
	options := metric.WithAttributes(attrs...)
	o.requests.Add(ctx, 1, options)
	o.latency.Record(ctx, float64(time.Duration(observation.DurationMS)*time.Millisecond)/float64(time.Second), options)

	if o.tracer == nil {
		return
	}
	_, span := o.tracer.Start(ctx, "onshape.request", trace.WithAttributes(attrs...))
	if !observation.Success {
		span.SetStatus(codes.Error, observation.ErrorCode)
	} else {
		span.SetStatus(codes.Ok, "")
	}
	span.End()
}

var _ onshape.Observer = (*RequestObserver)(nil)
