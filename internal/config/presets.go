package config

import "sort"

var Presets = map[string]func(c *Config){
	"normal": func(c *Config) {},
	"hot": func(c *Config) {
		c.Beta = 0.5
		c.MaxDisplacement = 1.2
	},
	"cold": func(c *Config) {
		c.Beta = 2.0
		c.MaxDisplacement = 0.5
	},
	"long": func(c *Config) {
		c.Trials = 1000
		c.FrameDelay = 2
	},
}

// GetPreset returns a fresh copy of the named preset, or nil.
func GetPreset(name string) *Config {
	apply, ok := Presets[name]
	if !ok {
		return nil
	}
	cfg := DefaultConfig()
	apply(cfg)
	return cfg
}

func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
