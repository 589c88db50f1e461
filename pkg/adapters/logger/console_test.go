package logger

import (
	"bytes"
	"strings"
	"testing"

	"github.com/user/flashframes/pkg/ports"
)

func TestConsoleLogger_LevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	log := NewWriter(ports.LevelWarn, &buf)

	log.Debug("debug %d", 1)
	log.Info("info %d", 2)
	log.Warn("warn %d", 3)
	log.Error("error %d", 4)

	out := buf.String()
	if strings.Contains(out, "debug 1") || strings.Contains(out, "info 2") {
		t.Errorf("expected debug and info to be filtered, got %q", out)
	}
	if !strings.Contains(out, "warn 3") || !strings.Contains(out, "error 4") {
		t.Errorf("expected warn and error in output, got %q", out)
	}
}

func TestConsoleLogger_WithComponent(t *testing.T) {
	var buf bytes.Buffer
	log := NewWriter(ports.LevelDebug, &buf).WithComponent("extract")

	log.Info("probe %d", 3)

	if got := strings.TrimSpace(buf.String()); got != "[extract] probe 3" {
		t.Errorf("unexpected line %q", got)
	}
}

func TestConsoleLogger_QuietSuppressesErrors(t *testing.T) {
	var buf bytes.Buffer
	log := NewWriter(ports.LevelQuiet, &buf)

	log.Error("boom")

	if buf.Len() != 0 {
		t.Errorf("expected no output, got %q", buf.String())
	}
}
