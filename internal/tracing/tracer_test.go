package tracing

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInitTracerProvider_WithoutExporter(t *testing.T) {
	tp, err := InitTracerProvider("shipping-test", "")
	require.NoError(t, err)
	defer tp.Shutdown(context.Background())

	assert.Empty(t, GetTraceIDFromContext(context.Background()))

	ctx, span := tp.Tracer("test").Start(context.Background(), "span")
	defer span.End()
	assert.Len(t, GetTraceIDFromContext(ctx), 32)
}
