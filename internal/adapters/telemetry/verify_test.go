package telemetry_test

import (
	"context"
	"errors"
	"net/netip"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
	"go.trai.ch/kiln/internal/adapters/telemetry"
	"go.trai.ch/kiln/internal/core/ports"
	"go.trai.ch/kiln/internal/core/ports/mocks"
	"go.uber.org/mock/gomock"
)

func TestInterfaceSatisfaction(_ *testing.T) {
	var _ ports.Tracer = (*telemetry.OTelTracer)(nil)
	var _ ports.Span = (*telemetry.OTelSpan)(nil)
	var _ sdktrace.SpanProcessor = (*telemetry.Bridge)(nil)
}

func TestOTelTracer_RecordsSpans(t *testing.T) {
	sr := tracetest.NewSpanRecorder()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(sr))
	tracer := telemetry.NewOTelTracerFrom(tp, "test")

	ctx, span := tracer.Start(context.Background(), "dispatch", ports.WithAttribute("jobs", 4))
	tracer.EmitPlan(ctx, []string{"parallel/test-a.js", "sequential/test-b.js"})
	span.SetAttribute("group", "parallel")
	span.RecordError(errors.New("case crashed"))
	n, err := span.Write([]byte("test log"))
	require.NoError(t, err)
	assert.Equal(t, 8, n)
	span.End()

	ended := sr.Ended()
	require.Len(t, ended, 1)
	got := ended[0]
	assert.Equal(t, "dispatch", got.Name())
	assert.Equal(t, codes.Error, got.Status().Code)
	assert.Contains(t, got.Attributes(), attribute.Int("jobs", 4))
	assert.Contains(t, got.Attributes(), attribute.String("group", "parallel"))

	var events []string
	for _, e := range got.Events() {
		events = append(events, e.Name)
	}
	assert.Contains(t, events, "plan_emitted")
	assert.Contains(t, events, "log")
}

func TestOTelSpan_AttributeTypes(t *testing.T) {
	sr := tracetest.NewSpanRecorder()
	tracer := telemetry.NewOTelTracerFrom(sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(sr)), "test")

	_, span := tracer.Start(context.Background(), "case", ports.WithAttribute("mode", "sequential"))
	span.SetAttribute("duration", 1500*time.Millisecond)
	span.SetAttribute("ratio", 0.5)
	span.SetAttribute("exit_code", int64(3))
	span.SetAttribute("cases", []string{"a", "b"})
	span.SetAttribute("addr", netip.MustParseAddr("127.0.0.1"))
	span.SetAttribute("raw", struct{ N int }{7})
	span.End()

	require.Len(t, sr.Ended(), 1)
	attrs := sr.Ended()[0].Attributes()
	assert.Contains(t, attrs, attribute.String("mode", "sequential"))
	assert.Contains(t, attrs, attribute.Int64("duration_ms", 1500))
	assert.Contains(t, attrs, attribute.Float64("ratio", 0.5))
	assert.Contains(t, attrs, attribute.Int64("exit_code", 3))
	assert.Contains(t, attrs, attribute.StringSlice("cases", []string{"a", "b"}))
	assert.Contains(t, attrs, attribute.String("addr", "127.0.0.1"))
	assert.Contains(t, attrs, attribute.String("raw", "{7}"))
}

func TestDiscard_Start(t *testing.T) {
	ctx := context.Background()
	gotCtx, span := telemetry.Discard.Start(ctx, "test-span", ports.WithAttribute("jobs", 2))
	assert.Equal(t, ctx, gotCtx)
	assert.Equal(t, telemetry.DiscardSpan, span)
	telemetry.Discard.EmitPlan(ctx, []string{"parallel/test-a.js"})

	span.SetAttribute("key", "value")
	span.RecordError(errors.New("ignored"))
	n, err := span.Write([]byte("test log"))
	require.NoError(t, err)
	assert.Equal(t, 8, n)

	span.End()
}

func TestBridge_LogsSpanLifecycle(t *testing.T) {
	ctrl := gomock.NewController(t)
	log := mocks.NewMockLogger(ctrl)
	log.EXPECT().DebugEnabled(telemetry.DebugArea).Return(true).AnyTimes()
	gomock.InOrder(
		log.EXPECT().Debug(telemetry.DebugArea, "generate started"),
		log.EXPECT().Debug(telemetry.DebugArea, gomock.Any()),
	)

	tp := telemetry.NewTracerProvider(telemetry.NewBridge(log))
	tracer := telemetry.NewOTelTracerFrom(tp, "test")

	_, span := tracer.Start(context.Background(), "generate")
	span.RecordError(errors.New("missing source"))
	span.End()
}

func TestBridge_SilentWhenAreaDisabled(t *testing.T) {
	ctrl := gomock.NewController(t)
	log := mocks.NewMockLogger(ctrl)
	log.EXPECT().DebugEnabled(telemetry.DebugArea).Return(false).AnyTimes()

	tp := telemetry.NewTracerProvider(telemetry.NewBridge(log))
	_, span := telemetry.NewOTelTracerFrom(tp, "test").Start(context.Background(), "configure")
	span.End()
}
