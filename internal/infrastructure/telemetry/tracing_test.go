package telemetry_test

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/codes"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
	"go.opentelemetry.io/otel/trace"

	"github.com/verdantia/storefront/internal/infrastructure/telemetry"
)

// setupTestTracer sets up a test tracer with an in-memory span recorder.
// Returns the span recorder for assertions and a cleanup function.
func setupTestTracer(t *testing.T) (*tracetest.SpanRecorder, func()) {
	t.Helper()

	sr := tracetest.NewSpanRecorder()
	tp := sdktrace.NewTracerProvider(
		sdktrace.WithSpanProcessor(sr),
	)

	originalProvider := otel.GetTracerProvider()
	otel.SetTracerProvider(tp)

	cleanup := func() {
		otel.SetTracerProvider(originalProvider)
		_ = tp.Shutdown(context.Background())
	}

	return sr, cleanup
}

func findAttribute(spans []sdktrace.ReadOnlySpan, key, want string) bool {
	for _, s := range spans {
		for _, attr := range s.Attributes() {
			if string(attr.Key) == key && attr.Value.Emit() == want {
				return true
			}
		}
	}
	return false
}

func TestStartSpan(t *testing.T) {
	sr, cleanup := setupTestTracer(t)
	defer cleanup()

	_, span := telemetry.StartSpan(context.Background(), "promotion.evaluate")
	require.NotNil(t, span)
	span.End()

	spans := sr.Ended()
	require.Len(t, spans, 1)

	assert.Equal(t, "promotion.evaluate", spans[0].Name())
	assert.Equal(t, trace.SpanKindInternal, spans[0].SpanKind())
}

func TestStartSpan_WithOptions(t *testing.T) {
	sr, cleanup := setupTestTracer(t)
	defer cleanup()

	_, span := telemetry.StartSpan(context.Background(), "cart.merge",
		telemetry.WithAttribute(telemetry.SpanAttrCartID, "cart-77"),
		telemetry.WithSpanKind(trace.SpanKindClient),
	)
	require.NotNil(t, span)
	span.End()

	spans := sr.Ended()
	require.Len(t, spans, 1)

	assert.Equal(t, trace.SpanKindClient, spans[0].SpanKind())
	assert.True(t, findAttribute(spans, telemetry.SpanAttrCartID, "cart-77"))
}

func TestStartServiceSpan(t *testing.T) {
	sr, cleanup := setupTestTracer(t)
	defer cleanup()

	_, span := telemetry.StartServiceSpan(context.Background(), "order", "checkout")
	require.NotNil(t, span)
	span.End()

	spans := sr.Ended()
	require.Len(t, spans, 1)
	assert.Equal(t, "order.checkout", spans[0].Name())
}

func TestSetAttributes(t *testing.T) {
	sr, cleanup := setupTestTracer(t)
	defer cleanup()

	_, span := telemetry.StartSpan(context.Background(), "order.checkout")

	orderID := uuid.New()
	telemetry.SetAttributes(span,
		telemetry.SpanAttrOrderID, orderID,
		telemetry.SpanAttrOrderNumber, "VD-20260829-0001",
		telemetry.SpanAttrItemCount, 3,
	)
	span.End()

	spans := sr.Ended()
	require.Len(t, spans, 1)

	assert.True(t, findAttribute(spans, telemetry.SpanAttrOrderID, orderID.String()),
		"uuid should be stringified via fmt.Stringer")
	assert.True(t, findAttribute(spans, telemetry.SpanAttrOrderNumber, "VD-20260829-0001"))
	assert.True(t, findAttribute(spans, telemetry.SpanAttrItemCount, "3"))
}

func TestSetAttributes_OddKeyValues(t *testing.T) {
	sr, cleanup := setupTestTracer(t)
	defer cleanup()

	_, span := telemetry.StartSpan(context.Background(), "test.odd")

	// Trailing key with no value is dropped, non-string keys are skipped
	telemetry.SetAttributes(span, "valid", "yes", 42, "skipped", "dangling")
	span.End()

	spans := sr.Ended()
	require.Len(t, spans, 1)
	assert.True(t, findAttribute(spans, "valid", "yes"))
	assert.False(t, findAttribute(spans, "dangling", ""))
}

func TestRecordError(t *testing.T) {
	sr, cleanup := setupTestTracer(t)
	defer cleanup()

	_, span := telemetry.StartSpan(context.Background(), "coupon.validate")
	telemetry.RecordError(span, errors.New("coupon expired"))
	span.End()

	spans := sr.Ended()
	require.Len(t, spans, 1)

	assert.Equal(t, codes.Error, spans[0].Status().Code)
	assert.Equal(t, "coupon expired", spans[0].Status().Description)
	require.Len(t, spans[0].Events(), 1)
	assert.Equal(t, "exception", spans[0].Events()[0].Name)
}

func TestRecordError_NilError(t *testing.T) {
	sr, cleanup := setupTestTracer(t)
	defer cleanup()

	_, span := telemetry.StartSpan(context.Background(), "test.operation")
	telemetry.RecordError(span, nil)
	span.End()

	spans := sr.Ended()
	require.Len(t, spans, 1)
	assert.Equal(t, codes.Unset, spans[0].Status().Code)
	assert.Empty(t, spans[0].Events())
}

func TestSetOK(t *testing.T) {
	sr, cleanup := setupTestTracer(t)
	defer cleanup()

	_, span := telemetry.StartSpan(context.Background(), "test.operation")
	telemetry.SetOK(span)
	span.End()

	spans := sr.Ended()
	require.Len(t, spans, 1)
	assert.Equal(t, codes.Ok, spans[0].Status().Code)
}

func TestAddEvent(t *testing.T) {
	sr, cleanup := setupTestTracer(t)
	defer cleanup()

	_, span := telemetry.StartSpan(context.Background(), "order.checkout")
	telemetry.AddEvent(span, "coupon_applied",
		telemetry.SpanAttrCouponCode, "WELCOME10",
	)
	span.End()

	spans := sr.Ended()
	require.Len(t, spans, 1)
	require.Len(t, spans[0].Events(), 1)
	assert.Equal(t, "coupon_applied", spans[0].Events()[0].Name)
}

func TestGetTraceID(t *testing.T) {
	_, cleanup := setupTestTracer(t)
	defer cleanup()

	// No span in the context
	assert.Empty(t, telemetry.GetTraceID(context.Background()))

	ctx, span := telemetry.StartSpan(context.Background(), "test.operation")
	defer span.End()

	traceID := telemetry.GetTraceID(ctx)
	assert.NotEmpty(t, traceID)
	assert.Len(t, traceID, 32)
}

func TestGetSpanID(t *testing.T) {
	_, cleanup := setupTestTracer(t)
	defer cleanup()

	assert.Empty(t, telemetry.GetSpanID(context.Background()))

	ctx, span := telemetry.StartSpan(context.Background(), "test.operation")
	defer span.End()

	spanID := telemetry.GetSpanID(ctx)
	assert.NotEmpty(t, spanID)
	assert.Len(t, spanID, 16)
}

func TestNestedSpans(t *testing.T) {
	sr, cleanup := setupTestTracer(t)
	defer cleanup()

	ctx, parent := telemetry.StartSpan(context.Background(), "order.checkout")
	_, child := telemetry.StartSpan(ctx, "coupon.redeem")
	child.End()
	parent.End()

	spans := sr.Ended()
	require.Len(t, spans, 2)

	// Child ends first
	assert.Equal(t, "coupon.redeem", spans[0].Name())
	assert.Equal(t, "order.checkout", spans[1].Name())
	assert.Equal(t, spans[1].SpanContext().SpanID(), spans[0].Parent().SpanID())
	assert.Equal(t, spans[1].SpanContext().TraceID(), spans[0].SpanContext().TraceID())
}

func TestNilSpanHelpers(t *testing.T) {
	// None of these should panic with a nil span
	telemetry.SetAttributes(nil, "key", "value")
	telemetry.SetAttribute(nil, "key", "value")
	telemetry.RecordError(nil, errors.New("boom"))
	telemetry.SetOK(nil)
	telemetry.AddEvent(nil, "event")
}
