package logger

import (
	"bytes"
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCtx_TraceID(t *testing.T) {
	var buf bytes.Buffer
	InitTo(&buf, "shipping-test", "debug")

	ctx := WithTraceID(context.Background(), "abc123")
	Ctx(ctx).Info().Msg("hello")

	var line map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &line))
	assert.Equal(t, "shipping-test", line["service"])
	assert.Equal(t, "abc123", line["trace_id"])
	assert.Equal(t, "hello", line["message"])
}

func TestCtx_FallsBackToGlobal(t *testing.T) {
	var buf bytes.Buffer
	InitTo(&buf, "shipping-test", "info")

	Ctx(context.Background()).Debug().Msg("hidden")
	Ctx(context.Background()).Warn().Msg("shown")

	assert.NotContains(t, buf.String(), "hidden")
	assert.Contains(t, buf.String(), "shown")
}
