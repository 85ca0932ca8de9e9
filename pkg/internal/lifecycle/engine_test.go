package lifecycle_test

import (
	"bytes"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/klauspost/compress/gzip"
	"github.com/valyala/fastjson"
	"go.uber.org/zap/zapcore"

	"github.com/joeydtaylor/structura/pkg/internal/codec"
	"github.com/joeydtaylor/structura/pkg/internal/internallogger"
	"github.com/joeydtaylor/structura/pkg/internal/lifecycle"
	"github.com/joeydtaylor/structura/pkg/internal/types"
)

func quietDiagnostics() lifecycle.Option {
	return lifecycle.WithDiagnostics(internallogger.NewLogger(
		internallogger.LoggerWithWriteSyncer(zapcore.AddSync(io.Discard)),
	))
}

// blockingWriter stalls every write until released, simulating a wedged
// output stream.
type blockingWriter struct {
	release chan struct{}
}

func (w *blockingWriter) Write(p []byte) (int, error) {
	<-w.release
	return len(p), nil
}

func lines(buf *bytes.Buffer) []string {
	out := strings.TrimRight(buf.String(), "\n")
	if out == "" {
		return nil
	}
	return strings.Split(out, "\n")
}

func TestGetLoggerBeforeConfigure(t *testing.T) {
	e := lifecycle.NewEngine()
	if _, err := e.GetLogger(); !errors.Is(err, types.ErrNotConfigured) {
		t.Fatalf("GetLogger = %v, want ErrNotConfigured", err)
	}
}

func TestConfigureWhileActiveFails(t *testing.T) {
	e := lifecycle.NewEngine()
	var buf bytes.Buffer
	if err := e.Configure(lifecycle.WithOutput(&buf), quietDiagnostics()); err != nil {
		t.Fatalf("Configure: %v", err)
	}
	defer func() { _ = e.Shutdown(time.Second) }()

	if err := e.Configure(lifecycle.WithOutput(&buf), quietDiagnostics()); !errors.Is(err, types.ErrAlreadyConfigured) {
		t.Fatalf("second Configure = %v, want ErrAlreadyConfigured", err)
	}
}

func TestEmitDrainCycle(t *testing.T) {
	e := lifecycle.NewEngine()
	var buf bytes.Buffer
	err := e.Configure(
		lifecycle.WithServiceName("payments"),
		lifecycle.WithWorkerID("pod-1"),
		lifecycle.WithLogLevel("INFO"),
		lifecycle.WithOutput(&buf),
		quietDiagnostics(),
	)
	if err != nil {
		t.Fatalf("Configure: %v", err)
	}

	log, err := e.GetLogger()
	if err != nil {
		t.Fatalf("GetLogger: %v", err)
	}
	if err := log.Info("Order placed", "order_id", 42); err != nil {
		t.Fatalf("Info: %v", err)
	}
	if err := e.Shutdown(5 * time.Second); err != nil {
		t.Fatalf("Shutdown: %v", err)
	}

	got := lines(&buf)
	if len(got) != 1 {
		t.Fatalf("wrote %d lines, want 1: %q", len(got), buf.String())
	}
	v, err := fastjson.Parse(got[0])
	if err != nil {
		t.Fatalf("line not valid JSON: %v", err)
	}
	if s := string(v.GetStringBytes("level")); s != "INFO" {
		t.Errorf("level = %q", s)
	}
	if s := string(v.GetStringBytes("message")); s != "Order placed" {
		t.Errorf("message = %q", s)
	}
	if s := string(v.GetStringBytes("service_name")); s != "payments" {
		t.Errorf("service_name = %q", s)
	}
	if s := string(v.GetStringBytes("worker_id")); s != "pod-1" {
		t.Errorf("worker_id = %q", s)
	}
	if v.GetInt("order_id") != 42 {
		t.Errorf("order_id = %d", v.GetInt("order_id"))
	}
	if _, err := time.Parse(time.RFC3339Nano, string(v.GetStringBytes("timestamp"))); err != nil {
		t.Errorf("timestamp: %v", err)
	}
}

func TestShutdownDrainsEveryAcceptedRecord(t *testing.T) {
	e := lifecycle.NewEngine()
	var buf bytes.Buffer
	if err := e.Configure(lifecycle.WithOutput(&buf), quietDiagnostics()); err != nil {
		t.Fatalf("Configure: %v", err)
	}

	log, err := e.GetLogger()
	if err != nil {
		t.Fatalf("GetLogger: %v", err)
	}
	const n = 100
	for i := 0; i < n; i++ {
		if err := log.Info("burst", "i", i); err != nil {
			t.Fatalf("Info(%d): %v", i, err)
		}
	}
	if err := e.Shutdown(5 * time.Second); err != nil {
		t.Fatalf("Shutdown: %v", err)
	}

	got := lines(&buf)
	if len(got) != n {
		t.Fatalf("wrote %d lines, want %d", len(got), n)
	}
	for i, line := range got {
		if fastjson.MustParse(line).GetInt("i") != i {
			t.Fatalf("line %d out of order", i)
		}
	}
}

func TestLevelFilteredRecordsNeverReachOutput(t *testing.T) {
	e := lifecycle.NewEngine()
	var buf bytes.Buffer
	err := e.Configure(
		lifecycle.WithLogLevel("WARNING"),
		lifecycle.WithOutput(&buf),
		quietDiagnostics(),
	)
	if err != nil {
		t.Fatalf("Configure: %v", err)
	}

	log, _ := e.GetLogger()
	if err := log.Info("quiet"); err != nil {
		t.Fatalf("filtered Info returned %v", err)
	}
	if err := log.Warn("loud"); err != nil {
		t.Fatalf("Warn: %v", err)
	}
	if err := e.Shutdown(5 * time.Second); err != nil {
		t.Fatalf("Shutdown: %v", err)
	}

	got := lines(&buf)
	if len(got) != 1 {
		t.Fatalf("wrote %d lines, want 1", len(got))
	}
	if s := string(fastjson.MustParse(got[0]).GetStringBytes("level")); s != "WARNING" {
		t.Errorf("level = %q", s)
	}
}

func TestShutdownIsIdempotentAndInvalidatesLoggers(t *testing.T) {
	e := lifecycle.NewEngine()
	if err := e.Shutdown(time.Second); err != nil {
		t.Fatalf("Shutdown on unconfigured engine = %v, want nil", err)
	}

	var buf bytes.Buffer
	if err := e.Configure(lifecycle.WithOutput(&buf), quietDiagnostics()); err != nil {
		t.Fatalf("Configure: %v", err)
	}
	log, _ := e.GetLogger()
	if err := e.Shutdown(5 * time.Second); err != nil {
		t.Fatalf("Shutdown: %v", err)
	}
	if err := e.Shutdown(5 * time.Second); err != nil {
		t.Fatalf("second Shutdown = %v, want nil", err)
	}

	if err := log.Info("too late"); !errors.Is(err, types.ErrNotConfigured) {
		t.Fatalf("emit after shutdown = %v, want ErrNotConfigured", err)
	}
	if _, err := e.GetLogger(); !errors.Is(err, types.ErrNotConfigured) {
		t.Fatalf("GetLogger after shutdown = %v, want ErrNotConfigured", err)
	}
	if e.State() != lifecycle.StateStopped {
		t.Fatalf("state = %v, want STOPPED", e.State())
	}
}

func TestReconfigureAfterShutdown(t *testing.T) {
	e := lifecycle.NewEngine()
	var first, second bytes.Buffer

	if err := e.Configure(lifecycle.WithServiceName("one"), lifecycle.WithOutput(&first), quietDiagnostics()); err != nil {
		t.Fatalf("Configure: %v", err)
	}
	if err := e.Shutdown(5 * time.Second); err != nil {
		t.Fatalf("Shutdown: %v", err)
	}

	if err := e.Configure(lifecycle.WithServiceName("two"), lifecycle.WithOutput(&second), quietDiagnostics()); err != nil {
		t.Fatalf("reconfigure: %v", err)
	}
	log, err := e.GetLogger()
	if err != nil {
		t.Fatalf("GetLogger: %v", err)
	}
	if err := log.Info("fresh start"); err != nil {
		t.Fatalf("Info: %v", err)
	}
	if err := e.Shutdown(5 * time.Second); err != nil {
		t.Fatalf("Shutdown: %v", err)
	}

	if len(lines(&first)) != 0 {
		t.Errorf("old output received records: %q", first.String())
	}
	got := lines(&second)
	if len(got) != 1 {
		t.Fatalf("new output has %d lines, want 1", len(got))
	}
	if s := string(fastjson.MustParse(got[0]).GetStringBytes("service_name")); s != "two" {
		t.Errorf("service_name = %q", s)
	}
}

func TestShutdownTimeoutOnWedgedOutput(t *testing.T) {
	w := &blockingWriter{release: make(chan struct{})}
	t.Cleanup(func() { close(w.release) })

	e := lifecycle.NewEngine()
	if err := e.Configure(lifecycle.WithOutput(w), quietDiagnostics()); err != nil {
		t.Fatalf("Configure: %v", err)
	}
	log, _ := e.GetLogger()
	if err := log.Info("stuck"); err != nil {
		t.Fatalf("Info: %v", err)
	}

	if err := e.Shutdown(50 * time.Millisecond); !errors.Is(err, types.ErrShutdownTimeout) {
		t.Fatalf("Shutdown = %v, want ErrShutdownTimeout", err)
	}
	if e.State() != lifecycle.StateStopped {
		t.Fatalf("state = %v, want STOPPED", e.State())
	}
}

func TestShutdownTimeoutWithBlockedHeartbeat(t *testing.T) {
	w := &blockingWriter{release: make(chan struct{})}
	t.Cleanup(func() { close(w.release) })

	e := lifecycle.NewEngine()
	err := e.Configure(
		lifecycle.WithOutput(w),
		lifecycle.WithQueueCapacity(1),
		quietDiagnostics(),
	)
	if err != nil {
		t.Fatalf("Configure: %v", err)
	}

	// The first heartbeat record wedges the worker in Write, the next tick
	// fills the capacity-1 queue, and the one after blocks inside Enqueue.
	log, _ := e.GetLogger()
	log.StartHeartbeat(10 * time.Millisecond)
	time.Sleep(50 * time.Millisecond)

	done := make(chan error, 1)
	go func() {
		done <- e.Shutdown(100 * time.Millisecond)
	}()

	select {
	case err := <-done:
		if !errors.Is(err, types.ErrShutdownTimeout) {
			t.Fatalf("Shutdown = %v, want ErrShutdownTimeout", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("Shutdown hung on the blocked heartbeat goroutine")
	}
	if e.State() != lifecycle.StateStopped {
		t.Fatalf("state = %v, want STOPPED", e.State())
	}
}

func TestCompressedOutputRoundTrip(t *testing.T) {
	e := lifecycle.NewEngine()
	var buf bytes.Buffer
	err := e.Configure(
		lifecycle.WithOutput(&buf),
		lifecycle.WithCompression(codec.CompressGzip),
		quietDiagnostics(),
	)
	if err != nil {
		t.Fatalf("Configure: %v", err)
	}

	log, _ := e.GetLogger()
	if err := log.Info("first"); err != nil {
		t.Fatalf("Info: %v", err)
	}
	if err := log.Info("second"); err != nil {
		t.Fatalf("Info: %v", err)
	}
	if err := e.Shutdown(5 * time.Second); err != nil {
		t.Fatalf("Shutdown: %v", err)
	}

	r, err := gzip.NewReader(&buf)
	if err != nil {
		t.Fatalf("gzip reader: %v", err)
	}
	raw, err := io.ReadAll(r)
	if err != nil {
		t.Fatalf("decompress: %v", err)
	}
	got := strings.Split(strings.TrimRight(string(raw), "\n"), "\n")
	if len(got) != 2 {
		t.Fatalf("decompressed %d lines, want 2", len(got))
	}
	if s := string(fastjson.MustParse(got[1]).GetStringBytes("message")); s != "second" {
		t.Errorf("second message = %q", s)
	}
}

func TestFromFileOption(t *testing.T) {
	path := filepath.Join(t.TempDir(), "structura.toml")
	content := `
service_name = "from-file"
worker_id = "pod-9"
log_level = "DEBUG"
queue_capacity = 64
enqueue_timeout = "250ms"
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	opt, err := lifecycle.FromFile(path)
	if err != nil {
		t.Fatalf("FromFile: %v", err)
	}

	e := lifecycle.NewEngine()
	var buf bytes.Buffer
	if err := e.Configure(opt, lifecycle.WithOutput(&buf), quietDiagnostics()); err != nil {
		t.Fatalf("Configure: %v", err)
	}
	log, _ := e.GetLogger()
	if err := log.Debug("visible at debug"); err != nil {
		t.Fatalf("Debug: %v", err)
	}
	if err := e.Shutdown(5 * time.Second); err != nil {
		t.Fatalf("Shutdown: %v", err)
	}

	got := lines(&buf)
	if len(got) != 1 {
		t.Fatalf("wrote %d lines, want 1", len(got))
	}
	v := fastjson.MustParse(got[0])
	if s := string(v.GetStringBytes("service_name")); s != "from-file" {
		t.Errorf("service_name = %q", s)
	}
	if s := string(v.GetStringBytes("worker_id")); s != "pod-9" {
		t.Errorf("worker_id = %q", s)
	}
	if s := string(v.GetStringBytes("level")); s != "DEBUG" {
		t.Errorf("level = %q", s)
	}
}

func TestFromFileRejectsBadValues(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.toml")
	if err := os.WriteFile(path, []byte(`enqueue_timeout = "soon"`), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	if _, err := lifecycle.FromFile(path); err == nil {
		t.Fatal("invalid duration must fail")
	}

	if _, err := lifecycle.FromFile(filepath.Join(t.TempDir(), "missing.toml")); err == nil {
		t.Fatal("missing file must fail")
	}
}

func TestServiceNameFallsBackToEnv(t *testing.T) {
	t.Setenv("SERVICE", "env-service")

	e := lifecycle.NewEngine()
	var buf bytes.Buffer
	if err := e.Configure(lifecycle.WithOutput(&buf), quietDiagnostics()); err != nil {
		t.Fatalf("Configure: %v", err)
	}
	log, _ := e.GetLogger()
	if err := log.Info("hello"); err != nil {
		t.Fatalf("Info: %v", err)
	}
	if err := e.Shutdown(5 * time.Second); err != nil {
		t.Fatalf("Shutdown: %v", err)
	}

	got := lines(&buf)
	if len(got) != 1 {
		t.Fatalf("wrote %d lines, want 1", len(got))
	}
	if s := string(fastjson.MustParse(got[0]).GetStringBytes("service_name")); s != "env-service" {
		t.Errorf("service_name = %q", s)
	}
}
