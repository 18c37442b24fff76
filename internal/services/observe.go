package services

import (
	"context"
	"log/slog"
	"sync"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
)

const instrumentationName = "github.com/ahmetcoskunkizilkaya/storefront-backend/internal/services"

var (
	tracer = otel.Tracer(instrumentationName)

	failuresOnce sync.Once
	failures     metric.Int64Counter
)

func failureCounter() metric.Int64Counter {
	failuresOnce.Do(func() {
		counter, err := otel.Meter(instrumentationName).Int64Counter(
			"storefront.store.failures",
			metric.WithDescription("Storage operations that returned an error, by entity, op and kind."),
		)
		if err != nil {
			slog.Warn("failed to create store failure counter", "error", err)
			return
		}
		failures = counter
	})
	return failures
}

func startSpan(ctx context.Context, entity, table, op string, attrs ...attribute.KeyValue) (context.Context, trace.Span) {
	attrs = append(attrs,
		attribute.String("db.system", "postgresql"),
		attribute.String("db.sql.table", table),
		attribute.String("storefront.entity", entity),
		attribute.String("storefront.op", op),
	)
	return tracer.Start(ctx, entity+"."+op, trace.WithSpanKind(trace.SpanKindClient), trace.WithAttributes(attrs...))
}

// fail converts a driver error into a *StoreError, records it on the span and
// logs it. Integrity violations are caller mistakes and log at WARN.
func fail(ctx context.Context, span trace.Span, entity, op string, id *int64, err error) error {
	storeErr := newStoreError(entity, op, err)

	span.RecordError(err)
	span.SetStatus(codes.Error, storeErr.Error())

	if counter := failureCounter(); counter != nil {
		counter.Add(ctx, 1, metric.WithAttributes(
			attribute.String("entity", entity),
			attribute.String("op", op),
			attribute.String("kind", storeErr.Kind.String()),
		))
	}

	attrs := []any{
		"entity", entity,
		"op", op,
		"kind", storeErr.Kind.String(),
		"code", storeErr.Code,
		"error", storeErr.Error(),
	}
	if id != nil {
		attrs = append(attrs, "entity_id", *id)
	}
	if storeErr.Detail != "" {
		attrs = append(attrs, "detail", storeErr.Detail)
	}

	level := slog.LevelError
	if storeErr.Kind == KindIntegrity {
		level = slog.LevelWarn
	}
	slog.Log(ctx, level, "storage operation failed", attrs...)

	return storeErr
}
