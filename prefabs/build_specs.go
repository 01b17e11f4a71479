package prefabs

import "gopkg.in/yaml.v3"

type EntityBuildSpec struct {
	Name       string         `yaml:"name"`
	Components map[string]any `yaml:"components"`
}

func LoadEntityBuildSpec(filename string) (EntityBuildSpec, error) {
	return LoadSpec[EntityBuildSpec](filename)
}

func DecodeComponentSpec[T any](raw any) (T, error) {
	var zero T
	if raw == nil {
		return zero, nil
	}
	b, err := yaml.Marshal(raw)
	if err != nil {
		return zero, err
	}
	var out T
	if err := yaml.Unmarshal(b, &out); err != nil {
		return zero, err
	}
	return out, nil
}

type TransformComponentSpec struct {
	X        float64 `yaml:"x"`
	Y        float64 `yaml:"y"`
	ScaleX   float64 `yaml:"scale_x"`
	ScaleY   float64 `yaml:"scale_y"`
	Rotation float64 `yaml:"rotation"`
}

type ColliderComponentSpec struct {
	// Shapes names a file under prefabs/shapes.
	Shapes        string     `yaml:"shapes"`
	Group         string     `yaml:"group"`
	Solid         *bool      `yaml:"solid"`
	UnitsPerPixel float64    `yaml:"units_per_pixel"`
	Color         *YAMLColor `yaml:"color"`
}

type DynamicObjectComponentSpec struct {
	MaxVelocity *float64  `yaml:"max_velocity"`
	Friction    float64   `yaml:"friction"`
	Accel       []float64 `yaml:"accel"`
}

type ScriptDriverComponentSpec struct {
	Script string         `yaml:"script"`
	Params map[string]any `yaml:"params"`
}

type CollisionLayerComponentSpec struct {
	Category uint32 `yaml:"category"`
	Mask     uint32 `yaml:"mask"`
}

type NameComponentSpec struct {
	Value string `yaml:"value"`
}
