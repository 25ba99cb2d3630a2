package log

import (
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/haukened/lognamefilter/internal/logfilter/filter"
	"github.com/haukened/lognamefilter/internal/logfilter/gateways/zapfilter"
)

type testLogger struct {
	name    string
	entries *[]string
}

func newTestLogger() *testLogger {
	return &testLogger{entries: &[]string{}}
}

func (l *testLogger) add(level, msg string) {
	prefix := level + ":"
	if l.name != "" {
		prefix += l.name + ":"
	}
	*l.entries = append(*l.entries, prefix+msg)
}

func (l *testLogger) Info(_ map[string]any, msg string)  { l.add("INFO", msg) }
func (l *testLogger) Error(_ map[string]any, msg string) { l.add("ERROR", msg) }
func (l *testLogger) Debug(_ map[string]any, msg string) { l.add("DEBUG", msg) }
func (l *testLogger) Warn(_ map[string]any, msg string)  { l.add("WARN", msg) }
func (l *testLogger) Panic(_ map[string]any, msg string) {}
func (l *testLogger) Fatal(_ map[string]any, msg string) {}
func (l *testLogger) Named(name string) Logger {
	return &testLogger{name: name, entries: l.entries}
}

func TestActualZapLogger(t *testing.T) {
	// test with fields and message
	Debug(map[string]any{
		"key1": "value1",
		"key2": 42,
		"key3": true,
	}, "test debug")
	// test with just a message
	Info(nil, "test info")
	Warn(nil, "test warn")
	Error(nil, "test error")
	Named("test.named").Info(nil, "test named")
	// recover handler for panic
	defer func() {
		if r := recover(); r == nil {
			t.Fatal("expected panic, but none occurred")
		}
	}()
	// test panic
	Panic(nil, "test panic") // This should panic
	// Note: Fatal will stop the test, so we don't call it here.
}

func TestSetLoggerAndGlobalLogging(t *testing.T) {
	// set up test fixtures
	orig := GetLogger()
	defer func() {
		SetLogger(orig) // Restore original logger after test
	}()
	tlog := newTestLogger()
	SetLogger(tlog)

	// Test code

	Info(nil, "info msg")
	Error(nil, "error msg")
	Debug(nil, "debug msg")
	Warn(nil, "warn msg")
	Named("worker").Info(nil, "named msg")

	expected := []string{
		"INFO:info msg",
		"ERROR:error msg",
		"DEBUG:debug msg",
		"WARN:warn msg",
		"INFO:worker:named msg",
	}

	entries := *tlog.entries
	if len(entries) != len(expected) {
		t.Fatalf("expected %d log entries, got %d", len(expected), len(entries))
	}
	for i, msg := range expected {
		if entries[i] != msg {
			t.Errorf("expected log[%d] = %q, got %q", i, msg, entries[i])
		}
	}
}

func TestConfigure_ValidLevels(t *testing.T) {
	// set up test fixtures
	orig := GetLogger()
	defer func() {
		SetLogger(orig) // Restore original logger after test
	}()
	SetLogger(newTestLogger())

	// Test code
	err := Configure("dev", "debug")
	if err != nil {
		t.Errorf("unexpected error: %v", err)
	}
	err = Configure("prod", "info", WithNameFilter(filter.Default()))
	if err != nil {
		t.Errorf("unexpected error: %v", err)
	}
	if _, ok := GetLogger().(*zapLogger); !ok {
		t.Errorf("expected zap logger after Configure, got %T", GetLogger())
	}
}

func TestConfigure_InvalidLevel(t *testing.T) {
	// set up test fixtures
	orig := GetLogger()
	defer func() {
		SetLogger(orig) // Restore original logger after test
	}()
	SetLogger(newTestLogger())

	// Test code
	err := Configure("dev", "notalevel")
	if err == nil {
		t.Fatal("expected error for invalid log level, got nil")
	}
}

func TestZapLogger_NamedEntriesPassThroughFilter(t *testing.T) {
	obsCore, logs := observer.New(zapcore.DebugLevel)
	base := zap.New(zapfilter.NewCore(obsCore, filter.Default()))
	logger := NewZapLogger(base)

	logger.Named("com.example").Named("sag").Info(map[string]any{"id": 1}, "dropped")
	logger.Named("com.example.service").Info(map[string]any{"id": 2}, "kept")
	logger.Debug(nil, "root kept")

	entries := logs.AllUntimed()
	if len(entries) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(entries))
	}
	if entries[0].LoggerName != "com.example.service" || entries[0].Message != "kept" {
		t.Errorf("unexpected first entry: %+v", entries[0].Entry)
	}
	if got := entries[0].ContextMap()["id"]; got != int64(2) {
		t.Errorf("expected id field 2, got %v (%T)", got, got)
	}
	if entries[1].LoggerName != "" || entries[1].Message != "root kept" {
		t.Errorf("unexpected second entry: %+v", entries[1].Entry)
	}
}

func TestNoopLogger_TestAllLevels(t *testing.T) {
	// set up test fixtures
	orig := GetLogger()
	defer func() {
		SetLogger(orig) // Restore original logger after test
	}()
	tlog := &noopLogger{}
	SetLogger(tlog)

	// Test code
	Debug(nil, "debug message")
	Info(nil, "info message")
	Warn(nil, "warn message")
	Error(nil, "error message")
	Panic(nil, "panic message")
	Fatal(nil, "fatal message")
	if Named("anything") != Logger(tlog) {
		t.Error("expected noop logger to return itself from Named")
	}
}
