package logger

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func captureOutput(t *testing.T) *bytes.Buffer {
	t.Helper()
	buf := &bytes.Buffer{}
	original := logrus.StandardLogger().Out
	logrus.SetOutput(buf)
	logrus.SetFormatter(&logrus.JSONFormatter{})
	t.Cleanup(func() { logrus.SetOutput(original) })
	return buf
}

func TestConfigure(t *testing.T) {
	t.Cleanup(func() { logrus.SetLevel(logrus.InfoLevel) })

	Configure("debug")
	assert.Equal(t, logrus.DebugLevel, logrus.GetLevel())

	Configure("error")
	assert.Equal(t, logrus.ErrorLevel, logrus.GetLevel())

	Configure("not-a-level")
	assert.Equal(t, logrus.InfoLevel, logrus.GetLevel())
}

func TestRequestIDRoundTrip(t *testing.T) {
	ctx := ContextWithRequestID(context.Background(), "req-1")
	assert.Equal(t, "req-1", RequestIDFromContext(ctx))
	assert.Empty(t, RequestIDFromContext(context.Background()))
}

func TestWithContextAddsRequestID(t *testing.T) {
	buf := captureOutput(t)

	ctx := ContextWithRequestID(context.Background(), "abc-123")
	WithContext(ctx).WithField("component", "test").WithError(errors.New("boom")).Error("failed")

	var line map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &line))
	assert.Equal(t, "abc-123", line["request_id"])
	assert.Equal(t, "test", line["component"])
	assert.Equal(t, "boom", line["error"])
	assert.Equal(t, "failed", line["msg"])
}

func TestWithContextWithoutRequestID(t *testing.T) {
	buf := captureOutput(t)

	WithContext(context.Background()).WithFields(map[string]interface{}{"a": 1}).Info("hello")

	var line map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &line))
	_, ok := line["request_id"]
	assert.False(t, ok)
	assert.Equal(t, float64(1), line["a"])
}
