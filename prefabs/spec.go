package prefabs

import (
	"fmt"
	"image/color"
	"strconv"
	"strings"

	"github.com/milk9111/rigid2d/physics"
	"gopkg.in/yaml.v3"
)

// LoadSpec decodes an entity prefab or physics.yaml into T.
func LoadSpec[T any](filename string) (T, error) {
	return decodeSpec[T](filename, Load)
}

func decodeSpec[T any](filename string, load func(string) ([]byte, error)) (T, error) {
	var zero T
	data, err := load(filename)
	if err != nil {
		return zero, fmt.Errorf("prefabs: load %s: %w", filename, err)
	}

	var spec T
	if err := yaml.Unmarshal(data, &spec); err != nil {
		return zero, fmt.Errorf("prefabs: unmarshal %s: %w", filename, err)
	}

	return spec, nil
}

const PhysicsFile = "physics.yaml"

// PhysicsSpec mirrors physics.Config. Missing fields keep their defaults.
type PhysicsSpec struct {
	GlobalMaxVelocity *float64 `yaml:"global_max_velocity"`
	Bounciness        *float64 `yaml:"bounciness"`
	BroadPhase        *bool    `yaml:"broad_phase"`
	ParallelUpdate    *bool    `yaml:"parallel_update"`
	Timestep          float64  `yaml:"timestep"`
}

func (s PhysicsSpec) Config() (physics.Config, error) {
	cfg := physics.DefaultConfig()
	if s.GlobalMaxVelocity != nil {
		cfg.GlobalMaxVelocity = *s.GlobalMaxVelocity
	}
	if s.Bounciness != nil {
		cfg.Bounciness = *s.Bounciness
	}
	if s.BroadPhase != nil {
		cfg.BroadPhase = *s.BroadPhase
	}
	if s.ParallelUpdate != nil {
		cfg.ParallelUpdate = *s.ParallelUpdate
	}
	if err := cfg.Validate(); err != nil {
		return physics.Config{}, fmt.Errorf("prefabs: %s: %w", PhysicsFile, err)
	}
	return cfg, nil
}

// LoadPhysicsConfig reads physics.yaml into a validated config.
func LoadPhysicsConfig() (physics.Config, PhysicsSpec, error) {
	spec, err := LoadSpec[PhysicsSpec](PhysicsFile)
	if err != nil {
		return physics.Config{}, spec, err
	}
	cfg, err := spec.Config()
	return cfg, spec, err
}

type TransformSpec struct {
	X        float64 `yaml:"x"`
	Y        float64 `yaml:"y"`
	ScaleX   float64 `yaml:"scale_x"`
	ScaleY   float64 `yaml:"scale_y"`
	Rotation float64 `yaml:"rotation"`
}

type YAMLColor struct {
	color.Color
}

func (c *YAMLColor) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind != yaml.ScalarNode {
		return fmt.Errorf("color must be a string")
	}

	s := strings.TrimPrefix(value.Value, "#")

	if len(s) != 6 && len(s) != 8 {
		return fmt.Errorf("invalid color format: %s", value.Value)
	}

	parse := func(start int) (uint8, error) {
		v, err := strconv.ParseUint(s[start:start+2], 16, 8)
		return uint8(v), err
	}

	r, err := parse(0)
	if err != nil {
		return err
	}
	g, err := parse(2)
	if err != nil {
		return err
	}
	b, err := parse(4)
	if err != nil {
		return err
	}

	a := uint8(255)
	if len(s) == 8 {
		a, err = parse(6)
		if err != nil {
			return err
		}
	}

	c.Color = color.NRGBA{R: r, G: g, B: b, A: a}
	return nil
}

func (c YAMLColor) MarshalYAML() (any, error) {
	if c.Color == nil {
		return nil, nil
	}
	n := color.NRGBAModel.Convert(c.Color).(color.NRGBA)
	return fmt.Sprintf("#%02x%02x%02x%02x", n.R, n.G, n.B, n.A), nil
}
