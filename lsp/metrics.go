package lsp

import (
	"context"
	"fmt"
	"time"

	protocol "github.com/tliron/glsp/protocol_3_16"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
)

const instrumentationName = "gqlsense.lsp"

// operation names one of the document queries the server answers.
type operation string

const (
	opDefinition     operation = "definition"
	opHover          operation = "hover"
	opDocumentSymbol operation = "documentSymbol"
)

// telemetry records one span and one set of measurements per query.
type telemetry struct {
	tracer  trace.Tracer
	latency metric.Float64Histogram
	total   metric.Int64Counter
	results metric.Int64Histogram
}

func newTelemetry(tp trace.TracerProvider, mp metric.MeterProvider) (*telemetry, error) {
	meter := mp.Meter(instrumentationName)
	t := &telemetry{tracer: tp.Tracer(instrumentationName)}

	var err error
	if t.latency, err = meter.Float64Histogram(
		"lsp_query_duration_seconds",
		metric.WithDescription("Duration of document queries"),
		metric.WithUnit("s"),
	); err != nil {
		return nil, fmt.Errorf("lsp_query_duration_seconds: %w", err)
	}
	if t.total, err = meter.Int64Counter(
		"lsp_query_total",
		metric.WithDescription("Total number of document queries"),
	); err != nil {
		return nil, fmt.Errorf("lsp_query_total: %w", err)
	}
	if t.results, err = meter.Int64Histogram(
		"lsp_query_results",
		metric.WithDescription("Number of results returned per query"),
	); err != nil {
		return nil, fmt.Errorf("lsp_query_results: %w", err)
	}
	return t, nil
}

// observation is an in-flight observation; finish must be called exactly once.
type observation struct {
	t     *telemetry
	ctx   context.Context
	op    operation
	span  trace.Span
	start time.Time
}

func (t *telemetry) begin(ctx context.Context, op operation, uri protocol.DocumentUri) *observation {
	ctx, span := t.tracer.Start(ctx, "lsp."+string(op),
		trace.WithSpanKind(trace.SpanKindServer),
		trace.WithAttributes(
			attribute.String("lsp.operation", string(op)),
			attribute.String("lsp.uri", string(uri)),
		),
	)
	return &observation{t: t, ctx: ctx, op: op, span: span, start: time.Now()}
}

// finish closes the span and records results; a query found something when results > 0.
func (q *observation) finish(results int) {
	found := results > 0
	q.span.SetAttributes(
		attribute.Int("lsp.results", results),
		attribute.Bool("lsp.found", found),
	)
	q.span.End()

	opAttr := attribute.String("operation", string(q.op))
	q.t.latency.Record(q.ctx, time.Since(q.start).Seconds(), metric.WithAttributes(opAttr, attribute.Bool("found", found)))
	q.t.total.Add(q.ctx, 1, metric.WithAttributes(opAttr, attribute.Bool("found", found)))
	q.t.results.Record(q.ctx, int64(results), metric.WithAttributes(opAttr))
}
