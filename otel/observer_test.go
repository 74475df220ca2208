package otel_test

import (
	"context"
	"testing"

	"go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"
	"go.opentelemetry.io/otel/trace/noop"

	"github.com/clarsbyte/onshape-mcp/feature"
	"github.com/clarsbyte/onshape-mcp/onshape"
	cadotel "github.com/clarsbyte/onshape-mcp/otel"
)

// newTestMeter returns a meter backed by a manual reader for collecting
// metrics in tests.
func newTestMeter() (*metric.ManualReader, *metric.MeterProvider) {
	reader := metric.NewManualReader()
	mp := metric.NewMeterProvider(metric.WithReader(reader))
	return reader, mp
}

func collectMetrics(t *testing.T, reader *metric.ManualReader) *metricdata.ResourceMetrics {
	t.Helper()
	var rm metricdata.ResourceMetrics
	if err := reader.Collect(context.Background(), &rm); err != nil {
		t.Fatalf("failed to collect metrics: %v", err)
	}
	return &rm
}

func findMetric(rm *metricdata.ResourceMetrics, name string) *metricdata.Metrics {
	for _, scope := range rm.ScopeMetrics {
		for i := range scope.Metrics {
			if scope.Metrics[i].Name == name {
				return &scope.Metrics[i]
			}
		}
	}
	return nil
}

func TestRequestObserverRecordsMetrics(t *testing.T) {
	reader, mp := newTestMeter()
	meter := mp.Meter("test-request-observer")
	tracer := noop.NewTracerProvider().Tracer("test-request-observer")

	observer, err := cadotel.NewRequestObserver(meter, tracer)
	if err != nil {
		t.Fatalf("NewRequestObserver() error = %v", err)
	}

	observer.ObserveRequest(onshape.RequestObservation{
		Method:     "POST",
		Path:       "/partstudios/d/d1/w/w1/e/e1/features",
		Status:     400,
		DurationMS: 120,
		Success:    false,
		ErrorCode:  feature.CodeRemoteRejected,
	})
	observer.ObserveRequest(onshape.RequestObservation{
		Method:     "GET",
		Path:       "/documents",
		Status:     200,
		DurationMS: 40,
		Success:    true,
	})

	rm := collectMetrics(t, reader)

	requests := findMetric(rm, "onshape.api.requests")
	if requests == nil {
		t.Fatal("onshape.api.requests metric not found")
	}
	sum, ok := requests.Data.(metricdata.Sum[int64])
	if !ok {
		t.Fatalf("onshape.api.requests type = %T, want Sum[int64]", requests.Data)
	}
	var total int64
	for _, dp := range sum.DataPoints {
		total += dp.Value
	}
	if total != 2 {
		t.Fatalf("onshape.api.requests total = %d, want 2", total)
	}

	latency := findMetric(rm, "onshape.api.latency")
	if latency == nil {
		t.Fatal("onshape.api.latency metric not found")
	}
	if _, ok := latency.Data.(metricdata.Histogram[float64]); !ok {
		t.Fatalf("onshape.api.latency type = %T, want Histogram[float64]", latency.Data)
	}
}

func TestChainObserverRecordsMetrics(t *testing.T) {
	reader, mp := newTestMeter()
	meter := mp.Meter("test-chain-observer")
	tracer := noop.NewTracerProvider().Tracer("test-chain-observer")

	observer, err := cadotel.NewChainObserver(meter, tracer)
	if err != nil {
		t.Fatalf("NewChainObserver() error = %v", err)
	}

	observer.ObserveChainStep(feature.ChainStepObservation{
		Step:       0,
		Radius:     0.5,
		Depth:      0.25,
		SketchID:   "FS1",
		ExtrudeID:  "FX1",
		DurationMS: 80,
		Success:    true,
	})
	observer.ObserveChainStep(feature.ChainStepObservation{
		Step:       1,
		Radius:     0.25,
		Depth:      0.75,
		DurationMS: 30,
		Success:    false,
		ErrorCode:  feature.CodeRemoteRejected,
	})
	observer.ObserveChain(feature.ChainObservation{
		Steps:           2,
		FeaturesCreated: 3,
		DurationMS:      140,
		Success:         false,
		ErrorCode:       feature.CodeRemoteRejected,
	})

	rm := collectMetrics(t, reader)

	steps := findMetric(rm, "onshape.chain.steps")
	if steps == nil {
		t.Fatal("onshape.chain.steps metric not found")
	}
	sum, ok := steps.Data.(metricdata.Sum[int64])
	if !ok {
		t.Fatalf("onshape.chain.steps type = %T, want Sum[int64]", steps.Data)
	}
	var total int64
	for _, dp := range sum.DataPoints {
		total += dp.Value
	}
	if total != 2 {
		t.Fatalf("onshape.chain.steps total = %d, want 2", total)
	}

	resolutions := findMetric(rm, "onshape.chain.resolutions")
	if resolutions == nil {
		t.Fatal("onshape.chain.resolutions metric not found")
	}
	if _, ok := resolutions.Data.(metricdata.Sum[int64]); !ok {
		t.Fatalf("onshape.chain.resolutions type = %T, want Sum[int64]", resolutions.Data)
	}

	duration := findMetric(rm, "onshape.chain.duration")
	if duration == nil {
		t.Fatal("onshape.chain.duration metric not found")
	}
	if _, ok := duration.Data.(metricdata.Histogram[float64]); !ok {
		t.Fatalf("onshape.chain.duration type = %T, want Histogram[float64]", duration.Data)
	}
}

func TestObserversTolerateNilTracer(t *testing.T) {
	reader, mp := newTestMeter()
	meter := mp.Meter("test-no-tracer")

	requestObserver, err := cadotel.NewRequestObserver(meter, nil)
	if err != nil {
		t.Fatalf("NewRequestObserver() error = %v", err)
	}
	requestObserver.ObserveRequest(onshape.RequestObservation{Method: "GET", Path: "/documents", Status: 200, Success: true})

	chainObserver, err := cadotel.NewChainObserver(meter, nil)
	if err != nil {
		t.Fatalf("NewChainObserver() error = %v", err)
	}
	chainObserver.ObserveChain(feature.ChainObservation{Steps: 2, FeaturesCreated: 4, Success: true})

	rm := collectMetrics(t, reader)
	if findMetric(rm, "onshape.api.requests") == nil {
		t.Fatal("onshape.api.requests metric not found")
	}
	if findMetric(rm, "onshape.chain.resolutions") == nil {
		t.Fatal("onshape.chain.resolutions metric not found")
	}
}
