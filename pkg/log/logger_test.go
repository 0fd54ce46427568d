package log

import (
	"bytes"
	"os"
	"strings"
	"testing"
)

func TestLevels(t *testing.T) {
	var buf bytes.Buffer
	SetSink(&buf)
	defer SetSink(os.Stderr)
	defer SetLevel(Notice)

	logger := New("test")

	tests := []struct {
		name     string
		level    Level
		logFn    func()
		contains string
		expected bool
	}{
		{"debug hidden at notice", Notice, func() { logger.Debugf("debug %d", 1) }, "debug 1", false},
		{"info hidden at notice", Notice, func() { logger.Info("info message") }, "info message", false},
		{"notice shown at notice", Notice, func() { logger.Noticef("notice %s", "x") }, "notice x", true},
		{"debug shown at debug", Debug, func() { logger.Debugf("debug %d", 2) }, "debug 2", true},
		{"warning hidden at error", Error, func() { logger.Warning("careful") }, "careful", false},
		{"error shown at error", Error, func() { logger.Errorf("boom") }, "boom", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			buf.Reset()
			SetLevel(tt.level)
			tt.logFn()
			if got := strings.Contains(buf.String(), tt.contains); got != tt.expected {
				t.Errorf("Expected output containing %q=%v, got %q", tt.contains, tt.expected, buf.String())
			}
		})
	}
}

func TestModuleName(t *testing.T) {
	var buf bytes.Buffer
	SetSink(&buf)
	defer SetSink(os.Stderr)

	New("bvh").Notice("built")
	if !strings.Contains(buf.String(), "[bvh]") {
		t.Errorf("Expected module tag in %q", buf.String())
	}
	if GetLevel() != Notice {
		t.Errorf("Expected default level Notice, got %v", GetLevel())
	}
}

func TestEnabled(t *testing.T) {
	defer SetLevel(Notice)

	tests := []struct {
		level   Level
		query   Level
		enabled bool
	}{
		{Notice, Debug, false},
		{Notice, Info, false},
		{Notice, Notice, true},
		{Notice, Error, true},
		{Debug, Debug, true},
		{Info, Debug, false},
		{Error, Warning, false},
	}

	for _, tt := range tests {
		SetLevel(tt.level)
		if got := Enabled(tt.query); got != tt.enabled {
			t.Errorf("level %d: Enabled(%d) = %v, want %v", tt.level, tt.query, got, tt.enabled)
		}
	}
}
