package cli

import (
	"bytes"
	"strings"
	"testing"

	"github.com/charmbracelet/log"
)

func TestNewLoggerFiltersByLevel(t *testing.T) {
	var buf bytes.Buffer
	logger := newLogger(&buf, log.InfoLevel)

	logger.Debug("hidden detail")
	if buf.Len() != 0 {
		t.Fatalf("debug line written at info level: %q", buf.String())
	}

	logger.Info("layout done", "levels", 3)
	out := buf.String()
	if !strings.Contains(out, "layout done") || !strings.Contains(out, "levels=3") {
		t.Errorf("info line = %q", out)
	}
}

func TestSetLogLevel(t *testing.T) {
	var buf bytes.Buffer
	c := New(&buf, LogInfo)
	c.SetLogLevel(LogDebug)

	c.Logger.Debug("cache miss", "stage", "layout")
	if !strings.Contains(buf.String(), "cache miss") {
		t.Errorf("debug line missing after SetLogLevel: %q", buf.String())
	}
}

func TestProgressDone(t *testing.T) {
	var buf bytes.Buffer
	prog := newProgress(newLogger(&buf, log.InfoLevel))
	prog.done("rendered pUC19")

	if !strings.Contains(buf.String(), "rendered pUC19") {
		t.Errorf("progress output = %q", buf.String())
	}
}
