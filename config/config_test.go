package config

import (
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"
)

var testLog = slog.New(slog.NewTextHandler(io.Discard, nil))

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadOverrides(t *testing.T) {
	path := writeConfig(t, `
refresh_rate: 2.0
max_history_points: 50
temperature_thresholds:
  warning: 65
  critical: 90
colors:
  warning: orange
display:
  show_network: true
`)
	cfg := Load(path, testLog)

	if cfg.RefreshRate != 2*time.Second {
		t.Errorf("RefreshRate = %v, want 2s", cfg.RefreshRate)
	}
	if cfg.MaxHistoryPoints != 50 {
		t.Errorf("MaxHistoryPoints = %d, want 50", cfg.MaxHistoryPoints)
	}
	if cfg.Thresholds.Warning != 65 || cfg.Thresholds.Critical != 90 {
		t.Errorf("Thresholds = %+v, want {65 90}", cfg.Thresholds)
	}
	if cfg.Colors.Warning != "orange" {
		t.Errorf("Colors.Warning = %q, want orange", cfg.Colors.Warning)
	}
	// Keys not present keep their defaults.
	if cfg.Colors.Normal != "green" {
		t.Errorf("Colors.Normal = %q, want default green", cfg.Colors.Normal)
	}
	if !cfg.Display.ShowNetwork {
		t.Error("Display.ShowNetwork = false, want true")
	}
	if !cfg.Display.ShowGPU {
		t.Error("Display.ShowGPU lost its default")
	}
}

func TestLoadInvalidValuesFallBack(t *testing.T) {
	path := writeConfig(t, `
refresh_rate: -1
max_history_points: 0
colors:
  critical: chartreuse
`)
	cfg := Load(path, testLog)

	if cfg.RefreshRate != time.Second {
		t.Errorf("RefreshRate = %v, want default 1s", cfg.RefreshRate)
	}
	if cfg.MaxHistoryPoints != 100 {
		t.Errorf("MaxHistoryPoints = %d, want default 100", cfg.MaxHistoryPoints)
	}
	if cfg.Colors.Critical != "red" {
		t.Errorf("Colors.Critical = %q, want default red", cfg.Colors.Critical)
	}
}

func TestLoadSwapsInvertedThresholds(t *testing.T) {
	path := writeConfig(t, `
temperature_thresholds:
  warning: 90
  critical: 70
`)
	cfg := Load(path, testLog)

	if cfg.Thresholds.Warning != 70 || cfg.Thresholds.Critical != 90 {
		t.Errorf("Thresholds = %+v, want swapped {70 90}", cfg.Thresholds)
	}
}

func TestLoadUnknownKeysIgnored(t *testing.T) {
	path := writeConfig(t, `
refresh_rate: 3
future_option: whatever
nested:
  thing: 12
`)
	cfg := Load(path, testLog)

	if cfg.RefreshRate != 3*time.Second {
		t.Errorf("RefreshRate = %v, want 3s", cfg.RefreshRate)
	}
}

func TestLoadMissingFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nope.yaml")
	cfg := Load(path, testLog)

	def := Default()
	if *cfg != *def {
		t.Errorf("missing file config = %+v, want defaults %+v", cfg, def)
	}
}
