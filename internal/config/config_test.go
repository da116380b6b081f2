package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/san-kum/sortviz/internal/engine"
	"github.com/san-kum/sortviz/internal/sorting"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.Algorithm != "bubble" {
		t.Errorf("expected algorithm bubble, got %s", cfg.Algorithm)
	}
	if cfg.Size != 30 {
		t.Errorf("expected size 30, got %d", cfg.Size)
	}
	if cfg.Delay() != 200*time.Millisecond {
		t.Errorf("expected 200ms delay, got %v", cfg.Delay())
	}
	if cfg.PollInterval() != engine.DefaultPollInterval {
		t.Errorf("expected 50ms poll interval, got %v", cfg.PollInterval())
	}
}

func TestClamp(t *testing.T) {
	tests := []struct {
		name      string
		cfg       Config
		wantSize  int
		wantDelay int
		wantAlg   string
	}{
		{"in range", Config{Algorithm: "insertion", Size: 40, DelayMs: 100}, 40, 100, "insertion"},
		{"too small", Config{Algorithm: "bubble", Size: 1, DelayMs: 0}, engine.MinSize, 1, "bubble"},
		{"too large", Config{Algorithm: "bubble", Size: 1000, DelayMs: 99999}, engine.MaxSize, 2000, "bubble"},
		{"bad algorithm", Config{Algorithm: "bogo", Size: 10, DelayMs: 10}, 10, 10, "bubble"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := tt.cfg
			cfg.Clamp()
			if cfg.Size != tt.wantSize {
				t.Errorf("size = %d, want %d", cfg.Size, tt.wantSize)
			}
			if cfg.DelayMs != tt.wantDelay {
				t.Errorf("delay = %d, want %d", cfg.DelayMs, tt.wantDelay)
			}
			if cfg.Algorithm != tt.wantAlg {
				t.Errorf("algorithm = %s, want %s", cfg.Algorithm, tt.wantAlg)
			}
		})
	}
}

func TestLoadSave(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sortviz.yaml")

	cfg := DefaultConfig()
	cfg.Algorithm = "insertion"
	cfg.Size = 12
	cfg.Seed = 99
	if err := Save(path, cfg); err != nil {
		t.Fatalf("save failed: %v", err)
	}

	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if loaded.GetAlgorithm() != sorting.Insertion {
		t.Errorf("expected insertion, got %s", loaded.GetAlgorithm())
	}
	if loaded.Size != 12 || loaded.Seed != 99 {
		t.Errorf("unexpected config: %+v", loaded)
	}
}

func TestLoadPartialKeepsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sortviz.yaml")
	if err := os.WriteFile(path, []byte("size: 250\n"), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if cfg.Size != engine.MaxSize {
		t.Errorf("expected clamped size %d, got %d", engine.MaxSize, cfg.Size)
	}
	if cfg.DelayMs != DefaultDelayMs {
		t.Errorf("expected default delay, got %d", cfg.DelayMs)
	}
}

func TestLoadInvalidYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sortviz.yaml")
	if err := os.WriteFile(path, []byte("size: [oops"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(path); err == nil {
		t.Error("expected parse error")
	}
}

func TestGetPreset(t *testing.T) {
	cfg := GetPreset("tiny")
	if cfg == nil {
		t.Fatal("expected preset, got nil")
	}
	if cfg.Size != 8 {
		t.Errorf("expected size 8, got %d", cfg.Size)
	}
	if cfg.GetAlgorithm() != sorting.Insertion {
		t.Errorf("expected insertion, got %s", cfg.GetAlgorithm())
	}
}

func TestGetPreset_NotFound(t *testing.T) {
	if cfg := GetPreset("nonexistent"); cfg != nil {
		t.Error("expected nil for nonexistent preset")
	}

	cfg := DefaultConfig()
	if err := cfg.ApplyPreset("nonexistent"); !errors.Is(err, ErrUnknownPreset) {
		t.Errorf("expected ErrUnknownPreset, got %v", err)
	}
}

func TestListPresets(t *testing.T) {
	presets := ListPresets()
	if len(presets) != len(Presets) {
		t.Errorf("expected %d presets, got %d", len(Presets), len(presets))
	}
	for i := 1; i < len(presets); i++ {
		if presets[i-1] > presets[i] {
			t.Error("expected presets sorted by name")
		}
	}
}

func TestSettingsFromConfig(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Size = 17
	cfg.DelayMs = 75

	s := cfg.Settings()
	if s.Size() != 17 || s.Delay() != 75*time.Millisecond {
		t.Errorf("unexpected settings: size=%d delay=%v", s.Size(), s.Delay())
	}
}
