package httpserver

import (
	"testing"
	"time"
)

type testLogger struct{}

func (testLogger) Debug(message interface{}, args ...interface{}) {}
func (testLogger) Info(message string, args ...interface{})       {}
func (testLogger) Warn(message string, args ...interface{})       {}
func (testLogger) Error(message interface{}, args ...interface{}) {}
func (testLogger) Fatal(message interface{}, args ...interface{}) {}

func TestNewDefaults(t *testing.T) {
	s := New(testLogger{})

	if s.address != _defaultAddr {
		t.Fatalf("unexpected default address: %s", s.address)
	}
	if s.readTimeout != _defaultReadTimeout || s.writeTimeout != _defaultWriteTimeout {
		t.Fatalf("unexpected default timeouts: %v/%v", s.readTimeout, s.writeTimeout)
	}
	if s.shutdownTimeout != _defaultShutdownTimeout {
		t.Fatalf("unexpected default shutdown timeout: %v", s.shutdownTimeout)
	}
	if s.App == nil {
		t.Fatalf("fiber app must be constructed")
	}
}

func TestNewWithOptions(t *testing.T) {
	s := New(
		testLogger{},
		Port("8080"),
		AppName("metadata-extractor"),
		Prefork(false),
		ReadTimeout(7*time.Second),
		WriteTimeout(9*time.Second),
		ShutdownTimeout(11*time.Second),
	)

	if s.address != ":8080" {
		t.Fatalf("unexpected address: %s", s.address)
	}
	if s.appName != "metadata-extractor" {
		t.Fatalf("unexpected app name: %s", s.appName)
	}
	if s.prefork {
		t.Fatalf("prefork must stay off")
	}
	if s.readTimeout != 7*time.Second || s.writeTimeout != 9*time.Second {
		t.Fatalf("unexpected timeouts: %v/%v", s.readTimeout, s.writeTimeout)
	}
	if s.shutdownTimeout != 11*time.Second {
		t.Fatalf("unexpected shutdown timeout: %v", s.shutdownTimeout)
	}
}
