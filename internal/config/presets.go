package config

import "sort"

// Presets are named pulse scenarios for the reference actuator.
var Presets = map[string]*Config{
	// creeping response, no ringing after the pulse
	"overdamped": preset(func(c *Config) {
		c.Muscle.Damping = 500.0
	}),
	// near-undamped, strong oscillation against the travel limits
	"ringing": preset(func(c *Config) {
		c.Muscle.Damping = 0.5
		c.Sim.Duration = 15.0
	}),
	// short pulses at a faster cadence
	"rapid": preset(func(c *Config) {
		c.Muscle.PulseWidth = 0.2
		c.Muscle.Period = 2.0
		c.Sim.Duration = 10.0
	}),
	// double the moving mass hauling a four-fold load
	"heavy": preset(func(c *Config) {
		c.Muscle.Load = 40.0
		c.Muscle.Mass = 1.0
	}),
}

func preset(mutate func(*Config)) *Config {
	cfg := DefaultConfig()
	mutate(cfg)
	return cfg
}

// GetPreset returns a copy of the named preset, or nil if unknown.
// Callers may mutate the copy freely.
func GetPreset(name string) *Config {
	cfg, ok := Presets[name]
	if !ok {
		return nil
	}
	c := *cfg
	return &c
}

func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
