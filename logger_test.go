package pagesum

import (
	"context"
	"log/slog"
	"testing"
)

func TestNopLoggerDiscards(t *testing.T) {
	if nopLogger.Enabled(context.Background(), slog.LevelError) {
		t.Error("nop logger should be disabled at every level")
	}
	if NewPageExtractor(nil).logger != nopLogger {
		t.Error("nil logger should fall back to the nop logger")
	}
}
