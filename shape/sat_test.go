package shape

import (
	"math"
	"testing"

	"github.com/jakecoffman/cp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func unitSquare(x, y float64) Shape {
	s, err := Box(v(x, y), 0.5, 0.5)
	if err != nil {
		panic(err)
	}
	return s
}

func TestProject(t *testing.T) {
	sq := unitSquare(0, 0)
	lo, hi := Project(sq, v(1, 0))
	assert.InDelta(t, -0.5, lo, 1e-12)
	assert.InDelta(t, 0.5, hi, 1e-12)

	diag := v(1, 1).Normalize()
	lo, hi = Project(sq, diag)
	assert.InDelta(t, -math.Sqrt2/2, lo, 1e-9)
	assert.InDelta(t, math.Sqrt2/2, hi, 1e-9)

	c := MustCircle(v(3, 0), 2)
	lo, hi = Project(c, v(1, 0))
	assert.InDelta(t, 1, lo, 1e-12)
	assert.InDelta(t, 5, hi, 1e-12)

	assert.Panics(t, func() { Project(sq, v(2, 0)) })
}

func TestAxes(t *testing.T) {
	a := MustCircle(v(0, 0), 1)
	b := MustCircle(v(0, 5), 1)
	axes := Axes(a, b)
	require.Len(t, axes, 1)
	assert.InDelta(t, 1, axes[0].Y, 1e-12)

	same := Axes(a, MustCircle(v(0, 0), 2))
	require.Len(t, same, 1)
	assert.Equal(t, v(1, 0), same[0])

	sq := unitSquare(2, 0)
	axes = Axes(a, sq)
	require.Len(t, axes, 4)
	for i, ax := range axes {
		assert.InDelta(t, 1, ax.Length(), 1e-9)
		assert.Greater(t, ax.Dot(sq.Polygon().Points()[i]), 0.0)
	}

	assert.Equal(t, sq.Polygon().Normals(), Axes(sq, a))
}

func TestCollideCircles(t *testing.T) {
	cases := []struct {
		name   string
		r1, r2 float64
		d      float64
	}{
		{"deep", 1, 1, 0.5},
		{"shallow", 1, 2, 2.9},
		{"touching", 1, 1, 2},
		{"apart", 1, 1, 2.5},
		{"unequal_apart", 0.5, 3, 4},
		{"unequal_overlap", 0.5, 3, 3},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			a := MustCircle(v(0, 0), c.r1)
			b := MustCircle(v(c.d, 0), c.r2)
			mpv, ok := Collide(a, b)
			want := c.d < c.r1+c.r2
			require.Equal(t, want, ok)
			if !ok {
				return
			}
			assert.InDelta(t, c.r1+c.r2-c.d, mpv.Length(), 1e-9)
			assert.Greater(t, mpv.X, 0.0, "push should move b away from a")
		})
	}
}

func TestCollideCoincidentCircles(t *testing.T) {
	mpv, ok := Collide(MustCircle(v(1, 1), 1), MustCircle(v(1, 1), 2))
	require.True(t, ok)
	assert.InDelta(t, 2, mpv.Length(), 1e-12)
}

func TestCollideSquares(t *testing.T) {
	for _, dx := range []float64{0, 0.25, 0.5, 0.999, 1, 1.5, 1.99} {
		a := unitSquare(0, 0)
		b := unitSquare(dx, 0)
		mpv, ok := Collide(a, b)
		if dx < 1 {
			require.True(t, ok, "dx=%v", dx)
			if dx > 0 {
				assert.InDelta(t, 1-dx, math.Abs(mpv.X), 1e-9, "dx=%v", dx)
				assert.InDelta(t, 0, mpv.Y, 1e-9, "dx=%v", dx)
			}
		} else {
			require.False(t, ok, "dx=%v", dx)
		}
	}
}

func TestCollideMPVSeparates(t *testing.T) {
	a := unitSquare(0, 0)
	b := unitSquare(0.3, 0.8)
	mpv, ok := Collide(a, b)
	require.True(t, ok)
	assert.InDelta(t, 0, mpv.X, 1e-9)
	assert.InDelta(t, 0.2, math.Abs(mpv.Y), 1e-9)

	// opposite normals of a box tie, so orient the push away from a
	if mpv.Dot(b.Center().Sub(a.Center())) < 0 {
		mpv = mpv.Neg()
	}
	moved := NewTransformed(b)
	tr := Identity()
	tr.Translate(mpv)
	moved.Update(tr)
	_, still := Collide(a, moved.Current())
	assert.False(t, still)
}

func TestCollideCirclePolygon(t *testing.T) {
	sq := unitSquare(0, 0)

	cases := []struct {
		name   string
		center cp.Vector
		r      float64
		want   bool
	}{
		{"face_overlap", v(1, 0), 0.6, true},
		{"face_apart", v(1.2, 0), 0.6, false},
		{"corner_gap", v(1, 1), 0.6, false},
		{"corner_overlap", v(0.8, 0.8), 0.6, true},
		{"inside", v(0, 0), 0.1, true},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			circle := MustCircle(c.center, c.r)
			_, ok := Collide(sq, circle)
			assert.Equal(t, c.want, ok)
			_, ok = Collide(circle, sq)
			assert.Equal(t, c.want, ok, "reversed")
		})
	}
}

func TestCollideIsAntisymmetric(t *testing.T) {
	a := MustPolygon(v(-1, -1), v(1, -1), v(0, 1))
	b := MustCircle(v(0.5, 0.2), 0.5)
	ab, ok := Collide(a, b)
	require.True(t, ok)
	ba, ok := Collide(b, a)
	require.True(t, ok)
	assert.InDelta(t, ab.Length(), ba.Length(), 1e-9)
	assert.InDelta(t, -1, ab.Normalize().Dot(ba.Normalize()), 1e-9)
}
