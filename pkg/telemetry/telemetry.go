// Package telemetry provides Telemetry implementations for the dashboard,
// reports, and settings services. Every adapter satisfies the
// Record(ctx, event, payload) contract those packages declare.
package telemetry

import (
	"context"
	"io"
	"os"
	"sort"
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
)

// Recorder is the shared telemetry contract.
type Recorder interface {
	Record(ctx context.Context, event string, payload map[string]any)
}

// LoggerConfig configures NewZerolog.
type LoggerConfig struct {
	Level   zerolog.Level
	Output  io.Writer
	Console bool
	Service string
}

// NewZerolog builds the process logger.
func NewZerolog(cfg LoggerConfig) zerolog.Logger {
	out := cfg.Output
	if out == nil {
		out = os.Stdout
	}
	if cfg.Console {
		out = zerolog.ConsoleWriter{Out: out, TimeFormat: time.RFC3339}
	}
	ctx := zerolog.New(out).Level(cfg.Level).With().Timestamp()
	if cfg.Service != "" {
		ctx = ctx.Str("service", cfg.Service)
	}
	return ctx.Logger()
}

// Logger writes every event as a structured log line. Events carrying an
// "error" key are logged at warn level.
type Logger struct {
	log zerolog.Logger
}

// NewLogger adapts a zerolog logger.
func NewLogger(log zerolog.Logger) *Logger {
	return &Logger{log: log}
}

// Record implements Recorder.
func (l *Logger) Record(_ context.Context, event string, payload map[string]any) {
	entry := l.log.Info()
	if _, failed := payload["error"]; failed {
		entry = l.log.Warn()
	}
	entry.Str("event", event).Fields(payload).Msg("telemetry")
}

// Prometheus counts events by name. Event names are used verbatim as the
// "event" label.
type Prometheus struct {
	events *prometheus.CounterVec
	errors *prometheus.CounterVec
}

// NewPrometheus registers the event counters on reg.
func NewPrometheus(reg prometheus.Registerer, namespace string) (*Prometheus, error) {
	p := &Prometheus{
		events: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "telemetry_events_total",
			Help:      "Total number of dashboard telemetry events",
		}, []string{"event"}),
		errors: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "telemetry_errors_total",
			Help:      "Total number of dashboard telemetry events carrying an error",
		}, []string{"event"}),
	}
	if err := reg.Register(p.events); err != nil {
		return nil, err
	}
	if err := reg.Register(p.errors); err != nil {
		return nil, err
	}
	return p, nil
}

// Record implements Recorder.
func (p *Prometheus) Record(_ context.Context, event string, payload map[string]any) {
	p.events.WithLabelValues(event).Inc()
	if _, failed := payload["error"]; failed {
		p.errors.WithLabelValues(event).Inc()
	}
}

// Multi fans events out to every non-nil recorder.
type Multi []Recorder

// Record implements Recorder.
func (m Multi) Record(ctx context.Context, event string, payload map[string]any) {
	for _, r := range m {
		if r != nil {
			r.Record(ctx, event, payload)
		}
	}
}

// Memory keeps events for inspection by tests and the debug CLI.
type Memory struct {
	Events []Event
}

// Event is one recorded telemetry call.
type Event struct {
	Name    string
	Payload map[string]any
}

// Record implements Recorder.
func (m *Memory) Record(_ context.Context, event string, payload map[string]any) {
	m.Events = append(m.Events, Event{Name: event, Payload: payload})
}

// Names returns the distinct event names with the given prefix, sorted.
func (m *Memory) Names(prefix string) []string {
	seen := map[string]struct{}{}
	for _, e := range m.Events {
		if strings.HasPrefix(e.Name, prefix) {
			seen[e.Name] = struct{}{}
		}
	}
	out := make([]string, 0, len(seen))
	for name := range seen {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}
