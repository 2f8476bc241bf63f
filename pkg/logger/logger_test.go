package logger

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/sirupsen/logrus"
)

func TestNewParsesLevelAndFormat(t *testing.T) {
	l := New(LoggingConfig{Level: "debug", Format: "json"})
	if l.GetLevel() != logrus.DebugLevel {
		t.Fatalf("expected debug level, got %s", l.GetLevel())
	}
	if _, ok := l.Formatter.(*logrus.JSONFormatter); !ok {
		t.Fatalf("expected json formatter, got %T", l.Formatter)
	}

	fallback := New(LoggingConfig{Level: "loud"})
	if fallback.GetLevel() != logrus.InfoLevel {
		t.Fatalf("expected info fallback, got %s", fallback.GetLevel())
	}
}

func TestEntriesCarryComponent(t *testing.T) {
	var buf bytes.Buffer
	l := New(LoggingConfig{Level: "info", Format: "json"}).Named("orders")
	l.SetOutput(&buf)

	l.WithField("order_id", "42").Info("order created")

	var line map[string]any
	if err := json.Unmarshal(buf.Bytes(), &line); err != nil {
		t.Fatalf("decode log line: %v", err)
	}
	if line["component"] != "orders" || line["order_id"] != "42" || line["msg"] != "order created" {
		t.Fatalf("unexpected log line: %v", line)
	}
}

func TestOpenOutputRejectsUnknown(t *testing.T) {
	if _, err := openOutput("syslog", ""); err == nil {
		t.Fatalf("expected error for unsupported output")
	}
}
