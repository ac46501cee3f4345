package errors

import (
	stderrors "errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTracerFromError(t *testing.T) {
	base := stderrors.New("connection reset")
	tracer := TracerFromError(base)

	assert.Equal(t, "connection reset", tracer.Error())
	assert.True(t, stderrors.Is(tracer, base))
	assert.NotNil(t, tracer.StackTrace())
}

func TestNewTracerWrap(t *testing.T) {
	tracer := NewTracer("apply signal").Wrap(stderrors.New("boom"))

	assert.Equal(t, "apply signal: boom", tracer.Error())
	assert.NotNil(t, tracer.StackTrace())
}

func TestErrorCodeEquals(t *testing.T) {
	details := NewErrorDetails("insufficient cash for buy", string(ErrInsufficientCash), "cash")

	tests := []struct {
		name string
		err  error
		code string
		want bool
	}{
		{name: "direct", err: details, code: string(ErrInsufficientCash), want: true},
		{name: "wrapped in tracer", err: TracerFromError(details), code: string(ErrInsufficientCash), want: true},
		{name: "different code", err: details, code: string(ErrNoMarketPrice), want: false},
		{name: "plain error", err: stderrors.New("x"), code: string(ErrInsufficientCash), want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ErrorCodeEquals(tt.err, tt.code))
		})
	}
}

func TestIsBusinessRejection(t *testing.T) {
	assert.True(t, IsBusinessRejection(NewErrorDetails("no cash", string(ErrInsufficientCash), "")))
	assert.True(t, IsBusinessRejection(TracerFromError(NewErrorDetails("bad qty", string(ErrInvalidQuantity), ""))))
	assert.False(t, IsBusinessRejection(NewErrorDetails("done", string(ErrSignalAlreadyProcessed), "")))
	assert.False(t, IsBusinessRejection(NewErrorDetails("db", string(GeneralRepositoryError), "")))
	assert.False(t, IsBusinessRejection(stderrors.New("plain")))

	details, ok := AsErrorDetails(TracerFromError(NewErrorDetails("m", "c", "f")))
	require.True(t, ok)
	assert.Equal(t, "f", details.Field)
}

func TestCategoryOf(t *testing.T) {
	assert.Equal(t, CategoryBusinessLogic, CategoryOf(ErrInsufficientPosition))
	assert.Equal(t, CategoryExternal, CategoryOf(ErrUpstreamStatus))
	assert.Equal(t, CategoryUnknown, CategoryOf(ErrorCode("nope")))
}
