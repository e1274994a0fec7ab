package log

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/jsil-dev/host-sdk/go/host"
	"github.com/jsil-dev/host-sdk/go/host/registry"
	"github.com/jsil-dev/host-sdk/go/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sinks struct {
	stdout *testutil.RecordingWriter
	stderr *testutil.RecordingWriter
	host   *host.Host
}

func newSinks(t *testing.T) sinks {
	t.Helper()
	s := sinks{stdout: &testutil.RecordingWriter{}, stderr: &testutil.RecordingWriter{}}
	reg := registry.New()
	require.NoError(t, reg.RegisterServices(map[string]any{"stdout": s.stdout, "stderr": s.stderr}))
	s.host = host.New(reg, host.WithStackTraces(false), host.WithLogger(slog.New(slog.NewTextHandler(io.Discard, nil))))
	return s
}

func TestFormatValue(t *testing.T) {
	tests := []struct {
		name string
		attr slog.Attr
		want string
	}{
		{"string", slog.String("key", "value"), "value"},
		{"int64", slog.Int64("key", 123), "123"},
		{"uint64", slog.Uint64("key", 7), "7"},
		{"bool", slog.Bool("key", true), "true"},
		{"float64", slog.Float64("key", 1.23), "1.23"},
		{"time", slog.Time("key", time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)), "2024-01-01T00:00:00Z"},
		{"duration", slog.Duration("key", 1*time.Hour), "1h0m0s"},
		{"error", slog.Any("key", errors.New("test error")), "test error"},
		{"nil", slog.Any("key", nil), "<nil>"},
		{"json", slog.Any("key", struct {
			Field string `json:"field"`
		}{"data"}), `{"field":"data"}`},
		{"log valuer", slog.Any("key", logValuer{val: "resolved"}), "resolved"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, formatValue(tt.attr.Value.Resolve()))
		})
	}
}

type logValuer struct {
	val string
}

func (l logValuer) LogValue() slog.Value {
	return slog.StringValue(l.val)
}

func TestQuoteIfNeeded(t *testing.T) {
	assert.Equal(t, "plain", quoteIfNeeded("plain"))
	assert.Equal(t, `""`, quoteIfNeeded(""))
	assert.Equal(t, `"two words"`, quoteIfNeeded("two words"))
	assert.Equal(t, `"a=b"`, quoteIfNeeded("a=b"))
}

func TestNewHandler_Defaults(t *testing.T) {
	h := NewHandler(newSinks(t).host)
	assert.True(t, h.Enabled(context.TODO(), slog.LevelInfo))
	assert.False(t, h.Enabled(context.TODO(), slog.LevelDebug))
}

func TestNewHandler_Options(t *testing.T) {
	h := NewHandler(newSinks(t).host, WithLevel(slog.LevelDebug), WithSource(true))
	assert.True(t, h.Enabled(context.TODO(), slog.LevelDebug))
}

func TestHandler_RoutesByLevel(t *testing.T) {
	s := newSinks(t)
	logger := New(s.host)

	logger.Info("frame done", "count", 3, "label", "two words")
	logger.Debug("filtered")
	logger.Warn("slow frame", "ms", 40)
	logger.Error("failed", "error", errors.New("boom"))

	testutil.AssertWrites(t, s.stdout, `INFO frame done count=3 label="two words"`+"\n")
	testutil.AssertWrites(t, s.stderr, "WARN slow frame ms=40\n", "ERROR failed error=boom\n")
}

func TestHandler_AttrsAndGroups(t *testing.T) {
	s := newSinks(t)
	logger := New(s.host).With("shell", "headless").WithGroup("req").With("id", 7)

	logger.Info("served", "status", "ok", slog.Group("timing", slog.Int("ms", 5)))

	testutil.AssertWrites(t, s.stdout, "INFO served shell=headless req.id=7 req.status=ok req.timing.ms=5\n")
}

func TestHandler_Source(t *testing.T) {
	s := newSinks(t)
	New(s.host, WithSource(true)).Info("here")

	require.Len(t, s.stdout.Writes(), 1)
	assert.Contains(t, s.stdout.Writes()[0], "source=log_test.go:")
}

func TestHandler_MissingService(t *testing.T) {
	h := NewHandler(host.New(registry.New()))
	record := slog.NewRecord(time.Now(), slog.LevelInfo, "lost", 0)

	err := h.Handle(context.Background(), record)
	testutil.AssertServiceUnavailable(t, err, "stdout")
}
