package telemetry_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/wasmbuild/internal/adapters/telemetry"
	"go.trai.ch/wasmbuild/internal/core/domain"
	"go.trai.ch/wasmbuild/internal/core/ports"
	"go.trai.ch/wasmbuild/internal/core/ports/mocks"
	"go.uber.org/mock/gomock"
)

func TestInterfaces(t *testing.T) {
	t.Parallel()

	var _ ports.Tracer = (*telemetry.OTelTracer)(nil)
	var _ ports.Span = (*telemetry.OTelSpan)(nil)
	var _ ports.Tracer = (*telemetry.NoOpTracer)(nil)
	var _ ports.Span = (*telemetry.NoOpSpan)(nil)
}

func TestOTelTracer_BridgesFinishedSpans(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	mockLogger := mocks.NewMockLogger(ctrl)

	var got domain.LogRecord
	mockLogger.EXPECT().Log(gomock.Any()).Do(func(rec domain.LogRecord) {
		got = rec
	}).Times(1)

	tracer := telemetry.NewOTelTracer("test-tracer", telemetry.NewBridge(mockLogger))

	_, span := tracer.Start(context.Background(), "compile")
	span.SetAttribute("program", "cargo")
	span.SetAttribute("args", []string{"build"})
	span.SetAttribute("exit_code", 0)
	span.SetAttribute("other", 1.5)
	span.End()

	require.NoError(t, tracer.Shutdown(context.Background()))

	assert.Equal(t, domain.LevelDebug, got.Level)
	assert.Equal(t, "stage finished", got.Message)
	require.Len(t, got.Fields, 3)
	assert.Equal(t, domain.F("stage", "compile"), got.Fields[0])
	assert.Equal(t, domain.F("status", "ok"), got.Fields[1])
	assert.Equal(t, "duration", got.Fields[2].Key)
}

func TestOTelTracer_RecordErrorMarksFailed(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	mockLogger := mocks.NewMockLogger(ctrl)

	var got domain.LogRecord
	mockLogger.EXPECT().Log(gomock.Any()).Do(func(rec domain.LogRecord) {
		got = rec
	})

	tracer := telemetry.NewOTelTracer("test-tracer", telemetry.NewBridge(mockLogger))

	_, span := tracer.Start(context.Background(), "reduce")
	span.RecordError(nil)
	span.RecordError(errors.New("boom"))
	span.End()

	require.NoError(t, tracer.Shutdown(context.Background()))
	assert.Equal(t, domain.F("status", "failed"), got.Fields[1])
}

func TestOTelTracer_WithoutProcessors(t *testing.T) {
	t.Parallel()

	tracer := telemetry.NewOTelTracer("test-tracer")
	ctx, span := tracer.Start(context.Background(), "check")
	assert.NotNil(t, ctx)
	span.End()
	assert.NoError(t, tracer.Shutdown(context.Background()))
}

func TestNoOpTracer(t *testing.T) {
	t.Parallel()

	tracer := telemetry.NewNoOpTracer()
	ctx := context.Background()

	gotCtx, span := tracer.Start(ctx, "compile")
	assert.Equal(t, ctx, gotCtx)

	span.SetAttribute("k", "v")
	span.RecordError(errors.New("ignored"))
	span.End()
	assert.NoError(t, tracer.Shutdown(ctx))
}

func TestBridge_NilLogger(t *testing.T) {
	t.Parallel()

	tracer := telemetry.NewOTelTracer("test-tracer", telemetry.NewBridge(nil))
	_, span := tracer.Start(context.Background(), "compile")
	span.End()
	assert.NoError(t, tracer.Shutdown(context.Background()))
}
