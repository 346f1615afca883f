package config

import (
	"testing"
	"time"
)

func TestGetEnv(t *testing.T) {
	t.Setenv("SNEK_OUT_DIR", "traces")
	t.Setenv("SNEK_WORKERS", "7")
	t.Setenv("SNEK_CPUCT", "1.5")
	t.Setenv("SNEK_TICK", "150ms")
	t.Setenv("SNEK_TUI", "yes")
	t.Setenv("SNEK_BAD_INT", "seven")

	if got := GetEnvOrDefault("out_dir", "data"); got != "traces" {
		t.Errorf("string: got %q", got)
	}
	if got := GetEnvOrDefault("missing", "data"); got != "data" {
		t.Errorf("string default: got %q", got)
	}
	if got := GetEnvIntOrDefault("WORKERS", 1); got != 7 {
		t.Errorf("int: got %d", got)
	}
	if got := GetEnvIntOrDefault("BAD_INT", 3); got != 3 {
		t.Errorf("unparseable int should fall back, got %d", got)
	}
	if got := GetEnvFloatOrDefault("CPUCT", 1); got != 1.5 {
		t.Errorf("float: got %f", got)
	}
	if got := GetEnvDurationOrDefault("TICK", time.Second); got != 150*time.Millisecond {
		t.Errorf("duration: got %s", got)
	}
	if got := GetEnvBoolOrDefault("TUI", false); !got {
		t.Errorf("bool: got false")
	}
	if got := GetEnvBoolOrDefault("OUT_DIR", true); !got {
		t.Errorf("non-bool value should fall back to default")
	}
}
