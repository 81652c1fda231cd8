package config

import (
	"os"

	"gopkg.in/yaml.v3"

	"github.com/fluidx-lab/musclesim/internal/dynamo"
	"github.com/fluidx-lab/musclesim/internal/muscle"
)

const (
	DefaultDt       = 0.001
	DefaultDuration = 25.0
	DefaultFPS      = 30
	DefaultWidth    = 960
	DefaultHeight   = 540
	DefaultRings    = 6
)

type Config struct {
	Muscle MuscleConfig `yaml:"muscle"`
	Sim    SimConfig    `yaml:"sim"`
	Render RenderConfig `yaml:"render"`
}

type MuscleConfig struct {
	RestLength     float64 `yaml:"rest_length"`
	Radius         float64 `yaml:"radius"`
	ElasticModulus float64 `yaml:"elastic_modulus"`
	Damping        float64 `yaml:"damping"`
	Mass           float64 `yaml:"mass"`
	Load           float64 `yaml:"load"`
	PressureAmp    float64 `yaml:"pressure_amplitude"`
	PulseWidth     float64 `yaml:"pulse_width"`
	Period         float64 `yaml:"period"`
	MinStroke      float64 `yaml:"min_stroke"`
	MaxStroke      float64 `yaml:"max_stroke"`
}

type SimConfig struct {
	Integrator string  `yaml:"integrator"`
	Dt         float64 `yaml:"dt"`
	Duration   float64 `yaml:"duration"`
}

type RenderConfig struct {
	FPS    int    `yaml:"fps"`
	Width  int    `yaml:"width"`
	Height int    `yaml:"height"`
	Format string `yaml:"format"`
	Output string `yaml:"output"`
	Rings  int    `yaml:"rings"`
	Charts bool   `yaml:"charts"`
}

func DefaultConfig() *Config {
	return &Config{
		Muscle: MuscleConfig{
			RestLength:     muscle.DefaultRestLength,
			Radius:         muscle.DefaultRadius,
			ElasticModulus: muscle.DefaultElasticModulus,
			Damping:        muscle.DefaultDamping,
			Mass:           muscle.DefaultMass,
			Load:           muscle.DefaultLoad,
			PressureAmp:    muscle.DefaultPressureAmp,
			PulseWidth:     muscle.DefaultPulseWidth,
			Period:         muscle.DefaultPeriod,
			MinStroke:      muscle.DefaultMinStroke,
			MaxStroke:      muscle.DefaultMaxStroke,
		},
		Sim: SimConfig{
			Integrator: "euler",
			Dt:         DefaultDt,
			Duration:   DefaultDuration,
		},
		Render: RenderConfig{
			FPS:    DefaultFPS,
			Width:  DefaultWidth,
			Height: DefaultHeight,
			Format: "mp4",
			Output: "out/muscle.mp4",
			Rings:  DefaultRings,
			Charts: true,
		},
	}
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// MuscleParams converts the muscle section to model parameters.
func (c *Config) MuscleParams() muscle.Params {
	return muscle.Params{
		RestLength:     c.Muscle.RestLength,
		Radius:         c.Muscle.Radius,
		ElasticModulus: c.Muscle.ElasticModulus,
		Damping:        c.Muscle.Damping,
		Mass:           c.Muscle.Mass,
		Load:           c.Muscle.Load,
		PressureAmp:    c.Muscle.PressureAmp,
		PulseWidth:     c.Muscle.PulseWidth,
		Period:         c.Muscle.Period,
		MinStroke:      c.Muscle.MinStroke,
		MaxStroke:      c.Muscle.MaxStroke,
	}
}

// RunConfig converts the sim section to the engine's time settings.
func (c *Config) RunConfig() dynamo.Config {
	return dynamo.Config{
		Dt:       c.Sim.Dt,
		Duration: c.Sim.Duration,
	}
}
