package trace

import (
	"context"
	"sort"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"
)

const instrumentationName = "news-textmining"

var (
	tracer  trace.Tracer
	enabled bool
)

// Init binds the package tracer to the global provider. The provider itself
// (exporter, resource) is installed by logger.InitWithConfig.
func Init(tracingEnabled bool) {
	enabled = tracingEnabled
	if !enabled {
		tracer = nil
		return
	}
	tracer = otel.Tracer(instrumentationName)
}

func StartSpan(ctx context.Context, spanName string, opts ...trace.SpanStartOption) (context.Context, trace.Span) {
	if !enabled || tracer == nil {
		return ctx, trace.SpanFromContext(ctx)
	}
	return tracer.Start(ctx, spanName, opts...)
}

func Enabled() bool {
	return enabled
}

// GetTraceFields returns a fresh field map seeded with the active trace and
// span ids, ready to be extended and passed to the logger.
func GetTraceFields(ctx context.Context) map[string]any {
	fields := make(map[string]any)
	if !enabled {
		return fields
	}
	span := trace.SpanFromContext(ctx)
	if !span.SpanContext().IsValid() {
		return fields
	}
	fields["trace_id"] = span.SpanContext().TraceID().String()
	fields["span_id"] = span.SpanContext().SpanID().String()
	return fields
}

// Args flattens a field map into slog key/value pairs.
func Args(fields map[string]any) []any {
	keys := make([]string, 0, len(fields))
	for k := range fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	args := make([]any, 0, len(fields)*2)
	for _, k := range keys {
		args = append(args, k, fields[k])
	}
	return args
}
