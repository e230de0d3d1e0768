package records

import (
	"bytes"
	"log"
	"strings"
	"testing"
)

func TestInfof_NoDoubleFormattingWithPercent(t *testing.T) {
	// Swap the base logger to capture output
	var buf bytes.Buffer
	saved := baseLogger
	baseLogger = log.New(&buf, "", 0)
	defer func() { baseLogger = saved }()

	SetLogLevel("info")

	msg := "skipped 3 of 1500 rows (0.2% of input) while parsing"
	Infof(msg)

	out := buf.String()
	if !strings.Contains(out, "(0.2% of input)") {
		t.Fatalf("log output missing expected percent segment: %s", out)
	}
	if strings.Contains(out, "(MISSING)") {
		t.Fatalf("log output still shows fmt artifact: %s", out)
	}
}

func TestSetLogLevelFiltersDebug(t *testing.T) {
	var buf bytes.Buffer
	saved := baseLogger
	baseLogger = log.New(&buf, "", 0)
	defer func() {
		baseLogger = saved
		SetLogLevel("info")
	}()

	SetLogLevel("warn")
	Debugf("hidden %d", 1)
	Infof("also hidden")
	Warnf("visible")
	out := buf.String()
	if strings.Contains(out, "hidden") {
		t.Fatalf("expected debug/info suppressed at warn level: %s", out)
	}
	if !strings.Contains(out, "[WARN] visible") {
		t.Fatalf("expected warn line present: %s", out)
	}
	if GetLogLevel() != LevelWarn {
		t.Fatalf("expected level warn, got %v", GetLogLevel())
	}
}
