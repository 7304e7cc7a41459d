package config

import (
	"os"

	"gopkg.in/yaml.v3"

	"github.com/san-kum/pendsim/internal/dynamo"
)

const (
	DefaultThetaDeg   = 10.0
	DefaultLength     = 1.0
	DefaultDt         = 0.01
	DefaultSteps      = 1000
	DefaultIntegrator = "rk4"
)

// File is the on-disk run description.
type File struct {
	ThetaDeg   float64 `yaml:"theta_deg"`
	Length     float64 `yaml:"length"`
	Dt         float64 `yaml:"dt"`
	Steps      int     `yaml:"steps"`
	Integrator string  `yaml:"integrator"`
	Output     string  `yaml:"output,omitempty"`
	Chart      string  `yaml:"chart,omitempty"`
}

func DefaultFile() *File {
	return &File{
		ThetaDeg:   DefaultThetaDeg,
		Length:     DefaultLength,
		Dt:         DefaultDt,
		Steps:      DefaultSteps,
		Integrator: DefaultIntegrator,
	}
}

// Load reads path on top of the defaults, so omitted keys keep their
// default values.
func Load(path string) (*File, error) {
	return LoadOver(path, DefaultFile())
}

// LoadOver reads path on top of base. base is not modified.
func LoadOver(path string, base *File) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := *base
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func Save(path string, cfg *File) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

func (f *File) Simulation() dynamo.Config {
	return dynamo.Config{
		InitialAngleDeg: f.ThetaDeg,
		Length:          f.Length,
		TimeStep:        f.Dt,
		Steps:           f.Steps,
	}
}
