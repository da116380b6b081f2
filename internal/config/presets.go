package config

import (
	"fmt"
	"sort"
)

var Presets = map[string]*Config{
	"tiny": {
		Algorithm: "insertion", Size: 8, DelayMs: 500,
	},
	"classic": {
		Algorithm: "bubble", Size: 30, DelayMs: 200,
	},
	"large": {
		Algorithm: "insertion", Size: 100, DelayMs: 20,
	},
	"turbo": {
		Algorithm: "bubble", Size: 60, DelayMs: 1,
	},
	"slowmo": {
		Algorithm: "bubble", Size: 12, DelayMs: 1200,
	},
}

// GetPreset returns a full configuration for the named preset, or nil.
func GetPreset(name string) *Config {
	p, ok := Presets[name]
	if !ok {
		return nil
	}
	cfg := DefaultConfig()
	cfg.Algorithm = p.Algorithm
	cfg.Size = p.Size
	cfg.DelayMs = p.DelayMs
	cfg.Clamp()
	return cfg
}

// ApplyPreset overwrites the playback fields of c with the named preset.
func (c *Config) ApplyPreset(name string) error {
	p := GetPreset(name)
	if p == nil {
		return fmt.Errorf("%w: %s (available: %v)", ErrUnknownPreset, name, ListPresets())
	}
	c.Algorithm = p.Algorithm
	c.Size = p.Size
	c.DelayMs = p.DelayMs
	return nil
}

func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
