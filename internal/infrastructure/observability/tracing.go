package observability

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

const tracerName = "apkraft"

// GetTracer returns the tracer for the apkraft service.
func GetTracer() trace.Tracer {
	return otel.Tracer(tracerName)
}

// StartUploadSpan starts a span around storing an uploaded file.
func StartUploadSpan(ctx context.Context, filename, contentType string) (context.Context, trace.Span) {
	return GetTracer().Start(ctx, "file.upload",
		trace.WithSpanKind(trace.SpanKindInternal),
		trace.WithAttributes(
			attribute.String("file.name", filename),
			attribute.String("file.content_type", contentType),
		),
	)
}

// StartCheckUpdateSpan starts a span around an update check.
func StartCheckUpdateSpan(ctx context.Context, appID int64, versionName string, buildNumber uint64) (context.Context, trace.Span) {
	return GetTracer().Start(ctx, "app.check_update",
		trace.WithSpanKind(trace.SpanKindInternal),
		trace.WithAttributes(
			attribute.Int64("app.id", appID),
			attribute.String("revision.version_name", versionName),
			attribute.Int64("revision.build_number", int64(buildNumber)),
		),
	)
}

// RecordError records an error on a span.
func RecordError(span trace.Span, err error) {
	if err == nil {
		return
	}
	span.RecordError(err)
	span.SetStatus(codes.Error, err.Error())
}
