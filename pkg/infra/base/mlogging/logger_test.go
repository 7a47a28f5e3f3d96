// 指示: miu200521358
package mlogging

import (
	"bytes"
	"strings"
	"testing"

	"github.com/miu200521358/mu_skin2nif/pkg/shared/base/logging"
)

func TestLoggerLevelFilter(t *testing.T) {
	buffer := bytes.NewBuffer(nil)
	logger := NewLogger(buffer)

	logger.Debug("見えないはず")
	logger.Info("情報: %d", 1)
	logger.Warn("警告")

	output := buffer.String()
	if strings.Contains(output, "[DEBUG]") {
		t.Fatalf("debug must be filtered at default level: %s", output)
	}
	if !strings.Contains(output, "[INFO] 情報: 1") {
		t.Fatalf("info output missing: %s", output)
	}
	if !strings.Contains(output, "[WARN] 警告") {
		t.Fatalf("warn output missing: %s", output)
	}
}

func TestLoggerDebugLevel(t *testing.T) {
	buffer := bytes.NewBuffer(nil)
	logger := NewLogger(buffer)
	logger.SetLevel(logging.LOG_LEVEL_DEBUG)

	logger.Debug("詳細")
	if !strings.Contains(buffer.String(), "[DEBUG] 詳細") {
		t.Fatalf("debug output missing: %s", buffer.String())
	}
}

func TestLoggerVerboseGate(t *testing.T) {
	buffer := bytes.NewBuffer(nil)
	logger := NewLogger(buffer)

	logger.Verbose(logging.VERBOSE_INDEX_PHYSICS, "出ない")
	if buffer.Len() != 0 {
		t.Fatalf("verbose must stay silent until enabled: %s", buffer.String())
	}

	logger.EnableVerbose(logging.VERBOSE_INDEX_PHYSICS)
	if !logger.IsVerboseEnabled(logging.VERBOSE_INDEX_PHYSICS) {
		t.Fatalf("verbose index must be enabled")
	}
	logger.Verbose(logging.VERBOSE_INDEX_PHYSICS, "物理: %s", "capsule")
	if !strings.Contains(buffer.String(), "物理: capsule") {
		t.Fatalf("verbose output missing: %s", buffer.String())
	}
}
