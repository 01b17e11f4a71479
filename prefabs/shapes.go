package prefabs

import (
	"errors"
	"fmt"
	"slices"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/rigid2d/shape"
)

// DefaultUnitsPerPixel converts asset pixels to world units (32 px per unit).
const DefaultUnitsPerPixel = 1.0 / 32.0

// CollisionGroup is the group colliders read when a prefab names none.
const CollisionGroup = "collision"

var (
	ErrUnknownGroup     = errors.New("prefabs: unknown shape group")
	ErrInvalidCanvas    = errors.New("prefabs: shape asset canvas must have a positive size")
	ErrMalformedPolygon = errors.New("prefabs: polygon points must be [x, y] pairs")
)

// ShapeAssetSpec is collision geometry drawn on a canvas. Coordinates are
// pixels with the origin at the top left and y growing downward.
type ShapeAssetSpec struct {
	Width  float64                   `yaml:"width"`
	Height float64                   `yaml:"height"`
	Groups map[string]ShapeGroupSpec `yaml:"groups"`
}

type ShapeGroupSpec struct {
	Polygons [][][]float64 `yaml:"polygons"`
	Circles  []CircleSpec  `yaml:"circles"`
}

type CircleSpec struct {
	CX float64 `yaml:"cx"`
	CY float64 `yaml:"cy"`
	R  float64 `yaml:"r"`
}

// LoadShapeAsset reads a shape asset from shapes/.
func LoadShapeAsset(name string) (ShapeAssetSpec, error) {
	return decodeSpec[ShapeAssetSpec](name, loadShape)
}

// GroupNames lists the asset's groups in sorted order.
func (a ShapeAssetSpec) GroupNames() []string {
	names := make([]string, 0, len(a.Groups))
	for name := range a.Groups {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// Group builds the named group's shapes in local space: scaled by
// unitsPerPixel, centered on the canvas center and with y pointing up.
func (a ShapeAssetSpec) Group(name string, unitsPerPixel float64) ([]shape.Shape, error) {
	if !(a.Width > 0) || !(a.Height > 0) {
		return nil, fmt.Errorf("%w: %vx%v", ErrInvalidCanvas, a.Width, a.Height)
	}
	g, ok := a.Groups[name]
	if !ok {
		return nil, fmt.Errorf("%w %q", ErrUnknownGroup, name)
	}
	if unitsPerPixel <= 0 {
		unitsPerPixel = DefaultUnitsPerPixel
	}

	out := make([]shape.Shape, 0, len(g.Polygons)+len(g.Circles))
	for i, poly := range g.Polygons {
		pts := make([]cp.Vector, 0, len(poly))
		for _, p := range poly {
			if len(p) != 2 {
				return nil, fmt.Errorf("group %q polygon %d: %w", name, i, ErrMalformedPolygon)
			}
			pts = append(pts, a.toCentered(p[0], p[1], unitsPerPixel))
		}
		s, err := shape.NewPolygon(pts)
		if err != nil {
			return nil, fmt.Errorf("group %q polygon %d: %w", name, i, err)
		}
		out = append(out, s)
	}
	for i, c := range g.Circles {
		s, err := shape.NewCircle(a.toCentered(c.CX, c.CY, unitsPerPixel), c.R*unitsPerPixel)
		if err != nil {
			return nil, fmt.Errorf("group %q circle %d: %w", name, i, err)
		}
		out = append(out, s)
	}
	return out, nil
}

func (a ShapeAssetSpec) toCentered(x, y, unitsPerPixel float64) cp.Vector {
	return cp.Vector{
		X: (x - a.Width*0.5) * unitsPerPixel,
		Y: (a.Height*0.5 - y) * unitsPerPixel,
	}
}
