package logger

import (
	"bytes"
	"strings"
	"testing"
)

func TestImpl_WithComponent(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	log := New(Opts{Env: "production", Output: &buf})

	log.WithComponent("AnalysisService").Info("run finished", "topic", "pizza")

	out := buf.String()
	for _, want := range []string{"run finished", `"component":"AnalysisService"`, `"topic":"pizza"`} {
		if !strings.Contains(out, want) {
			t.Fatalf("log output %q does not contain %q", out, want)
		}
	}
}

func TestImpl_ProductionSkipsDebug(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	log := New(Opts{Env: "production", Output: &buf})

	log.Debug("noisy")
	if buf.Len() != 0 {
		t.Fatalf("expected debug to be filtered in production, got %q", buf.String())
	}
}
