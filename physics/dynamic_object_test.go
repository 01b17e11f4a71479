package physics

import (
	"math"
	"testing"

	"github.com/jakecoffman/cp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewDynamicObjectWith(t *testing.T) {
	cfg := DefaultConfig()
	cases := []struct {
		name     string
		maxVel   float64
		friction float64
		wantErr  error
	}{
		{"ok", 10, 0.5, nil},
		{"at_cap", cfg.GlobalMaxVelocity, 0, nil},
		{"above_cap", cfg.GlobalMaxVelocity + 1, 0, ErrMaxVelocityTooHigh},
		{"negative_friction", 10, -0.1, ErrNegativeFriction},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			d, err := NewDynamicObjectWith(cfg, c.maxVel, c.friction)
			if c.wantErr != nil {
				require.ErrorIs(t, err, c.wantErr)
				return
			}
			require.NoError(t, err)
			assert.InDelta(t, c.maxVel, d.MaxVelocity(), 1e-9)
			assert.Equal(t, c.friction, d.Friction())
		})
	}

	d := NewDynamicObject(cfg)
	assert.InDelta(t, cfg.GlobalMaxVelocity, d.MaxVelocity(), 1e-9)
	assert.Zero(t, d.Friction())
}

func TestIntegrate(t *testing.T) {
	d, err := NewDynamicObjectWith(DefaultConfig(), 10, 0)
	require.NoError(t, err)
	d.Accel = cp.Vector{X: 1}

	delta := d.Integrate(1)
	assert.Equal(t, cp.Vector{X: 1}, d.Velocity())
	assert.Equal(t, cp.Vector{X: 1}, delta)

	delta = d.Integrate(0.5)
	assert.InDelta(t, 1.5, d.Velocity().X, 1e-12)
	assert.InDelta(t, 0.75, delta.X, 1e-12)
}

func TestIntegrateFriction(t *testing.T) {
	d, err := NewDynamicObjectWith(DefaultConfig(), 100, 0.5)
	require.NoError(t, err)
	d.SetVelocity(cp.Vector{X: 4, Y: -2})

	d.Integrate(1)
	assert.InDelta(t, 2, d.Velocity().X, 1e-12)
	assert.InDelta(t, -1, d.Velocity().Y, 1e-12)

	// a constant push settles where accel balances friction
	d.Accel = cp.Vector{X: 1}
	for i := 0; i < 600; i++ {
		d.Integrate(0.1)
	}
	assert.InDelta(t, 2, d.Velocity().X, 1e-6)
	assert.InDelta(t, 0, d.Velocity().Y, 1e-6)
}

func TestIntegrateNeverExceedsMaxVelocity(t *testing.T) {
	accels := []cp.Vector{{X: 1}, {X: -3, Y: 4}, {X: 1e6, Y: 1e6}, {Y: -0.01}}
	for _, maxVel := range []float64{0, 0.5, 10, 999} {
		d, err := NewDynamicObjectWith(DefaultConfig(), maxVel, 0.1)
		require.NoError(t, err)
		for i := 0; i < 100; i++ {
			d.Accel = accels[i%len(accels)]
			d.Integrate(0.25)
			assert.LessOrEqual(t, d.Velocity().Length(), maxVel*(1+1e-12)+1e-12, "maxVel=%v step=%d", maxVel, i)
		}
	}
}

func TestBounce(t *testing.T) {
	d := NewDynamicObject(DefaultConfig())
	d.SetVelocity(cp.Vector{X: 4, Y: 2})

	// moving into a wall on the right
	assert.True(t, d.Bounce(cp.Vector{X: 0.3}, 0.5))
	assert.InDelta(t, -2, d.Velocity().X, 1e-12)
	assert.InDelta(t, 1, d.Velocity().Y, 1e-12)

	// already moving away
	assert.False(t, d.Bounce(cp.Vector{X: 0.3}, 0.5))
	assert.InDelta(t, -2, d.Velocity().X, 1e-12)

	assert.False(t, d.Bounce(cp.Vector{}, 0.5))
}

func TestConfigValidate(t *testing.T) {
	require.NoError(t, DefaultConfig().Validate())

	cfg := DefaultConfig()
	cfg.GlobalMaxVelocity = 0
	require.ErrorIs(t, cfg.Validate(), ErrInvalidMaxVelocity)
	cfg.GlobalMaxVelocity = math.NaN()
	require.ErrorIs(t, cfg.Validate(), ErrInvalidMaxVelocity)

	cfg = DefaultConfig()
	cfg.Bounciness = 1.5
	require.ErrorIs(t, cfg.Validate(), ErrInvalidBounciness)
}
