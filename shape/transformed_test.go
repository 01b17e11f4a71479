package shape

import (
	"math"
	"testing"

	"github.com/jakecoffman/cp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTransformedIdentityRoundTrip(t *testing.T) {
	poly := MustPolygon(v(-1, -2), v(3, -1), v(2, 2), v(-2, 1))
	ts := NewTransformed(poly)
	lo, hi := ts.Update(Identity())

	assert.Equal(t, poly.Polygon().Points(), ts.Current().Polygon().Points())
	assert.Equal(t, poly.Polygon().Edges(), ts.Current().Polygon().Edges())
	assert.Equal(t, v(-2, -2), lo)
	assert.Equal(t, v(3, 2), hi)

	circle := MustCircle(v(1, 1), 2)
	tc := NewTransformed(circle)
	lo, hi = tc.Update(Identity())
	assert.Equal(t, circle.Circle(), tc.Current().Circle())
	assert.Equal(t, v(-1, -1), lo)
	assert.Equal(t, v(3, 3), hi)
}

func TestTransformedPolygon(t *testing.T) {
	ts := NewTransformed(MustPolygon(v(0, 0), v(1, 0), v(1, 1), v(0, 1)))
	lo, hi := ts.Update(Transform{X: 10, Y: 5, ScaleX: 2, ScaleY: 2, Rotation: math.Pi / 2})

	want := []cp.Vector{v(10, 5), v(10, 7), v(8, 7), v(8, 5)}
	got := ts.Current().Polygon().Points()
	require.Len(t, got, len(want))
	for i := range want {
		assert.InDelta(t, want[i].X, got[i].X, 1e-9, "point %d", i)
		assert.InDelta(t, want[i].Y, got[i].Y, 1e-9, "point %d", i)
	}
	assert.InDelta(t, 8, lo.X, 1e-9)
	assert.InDelta(t, 5, lo.Y, 1e-9)
	assert.InDelta(t, 10, hi.X, 1e-9)
	assert.InDelta(t, 7, hi.Y, 1e-9)

	// the original stays in local space
	assert.Equal(t, v(1, 0), ts.Original().Polygon().Points()[1])
	assert.True(t, IsConvex(ts.Current().Polygon().Edges()))
}

func TestTransformedMirrorKeepsNormalsOutward(t *testing.T) {
	ts := NewTransformed(MustPolygon(v(-1, -1), v(1, -1), v(1, 1), v(-1, 1)))
	ts.Update(Transform{ScaleX: -1, ScaleY: 1})

	poly := ts.Current().Polygon()
	for i, n := range poly.Normals() {
		mid := poly.Points()[i].Add(poly.Edges()[i].Mult(0.5))
		assert.Greater(t, n.Dot(mid), 0.0, "normal %d", i)
	}
}

func TestTransformedCircle(t *testing.T) {
	tc := NewTransformed(MustCircle(v(1, 0), 1))
	lo, hi := tc.Update(Transform{X: 5, Y: 5, ScaleX: 3, ScaleY: 3, Rotation: math.Pi})

	c := tc.Current().Circle()
	assert.InDelta(t, 3, c.Radius, 1e-12)
	assert.InDelta(t, 2, c.Center.X, 1e-9)
	assert.InDelta(t, 5, c.Center.Y, 1e-9)
	assert.InDelta(t, -1, lo.X, 1e-9)
	assert.InDelta(t, 8, hi.Y, 1e-9)

	assert.Panics(t, func() {
		tc.Update(Transform{ScaleX: 1, ScaleY: 2})
	})
}

func TestTransformedUpdateIsRepeatable(t *testing.T) {
	ts := NewTransformed(MustPolygon(hexagon(1)...))
	tr := Transform{X: 1, Y: -1, ScaleX: 1, ScaleY: 1, Rotation: 0.3}
	lo1, hi1 := ts.Update(tr)
	first := append([]cp.Vector(nil), ts.Current().Polygon().Points()...)
	lo2, hi2 := ts.Update(tr)

	assert.Equal(t, lo1, lo2)
	assert.Equal(t, hi1, hi2)
	assert.Equal(t, first, ts.Current().Polygon().Points())
}
