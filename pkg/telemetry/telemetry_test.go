package telemetry

import (
	"bytes"
	"context"
	"encoding/json"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoggerWritesStructuredEvents(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLogger(NewZerolog(LoggerConfig{Level: zerolog.InfoLevel, Output: &buf, Service: "spa"}))

	logger.Record(context.Background(), "reports.generate", map[string]any{"report": "services"})
	logger.Record(context.Background(), "reports.catalog.error", map[string]any{"error": "boom"})

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 2)

	var first map[string]any
	require.NoError(t, json.Unmarshal([]byte(lines[0]), &first))
	assert.Equal(t, "reports.generate", first["event"])
	assert.Equal(t, "services", first["report"])
	assert.Equal(t, "spa", first["service"])
	assert.Equal(t, "info", first["level"])

	var second map[string]any
	require.NoError(t, json.Unmarshal([]byte(lines[1]), &second))
	assert.Equal(t, "warn", second["level"])
}

func TestPrometheusCountsEvents(t *testing.T) {
	reg := prometheus.NewRegistry()
	metrics, err := NewPrometheus(reg, "spa")
	require.NoError(t, err)

	metrics.Record(context.Background(), "dashboard.widget.add", nil)
	metrics.Record(context.Background(), "dashboard.widget.add", nil)
	metrics.Record(context.Background(), "dashboard.widget.provider_error", map[string]any{"error": "x"})

	assert.Equal(t, 2.0, testutil.ToFloat64(metrics.events.WithLabelValues("dashboard.widget.add")))
	assert.Equal(t, 1.0, testutil.ToFloat64(metrics.errors.WithLabelValues("dashboard.widget.provider_error")))

	_, err = NewPrometheus(reg, "spa")
	require.Error(t, err, "duplicate registration must fail")
}

func TestMultiFansOut(t *testing.T) {
	first, second := &Memory{}, &Memory{}
	Multi{first, nil, second}.Record(context.Background(), "settings.save", nil)

	assert.Len(t, first.Events, 1)
	assert.Len(t, second.Events, 1)
	assert.Equal(t, []string{"settings.save"}, first.Names("settings."))
	assert.Empty(t, first.Names("dashboard."))
}
