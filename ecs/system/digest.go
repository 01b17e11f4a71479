package system

import (
	"encoding/binary"
	"math"

	"github.com/cespare/xxhash/v2"
	"github.com/milk9111/rigid2d/ecs"
	"github.com/milk9111/rigid2d/ecs/component"
	"github.com/milk9111/rigid2d/physics"
)

// StateDigest hashes every entity's transform and velocity in id order.
// Two runs of the same level with the same dt produce the same digest.
func StateDigest(w *ecs.World) uint64 {
	h := xxhash.New()
	buf := make([]byte, 0, 64)
	for _, e := range ecs.Entities(w) {
		buf = buf[:0]
		buf = binary.LittleEndian.AppendUint32(buf, e.ID())
		if t, ok := ecs.Get(w, e, component.TransformComponent.Kind()); ok {
			buf = appendFloats(buf, t.X, t.Y, t.ScaleX, t.ScaleY, t.Rotation)
		}
		if d, ok := ecs.Get(w, e, physics.DynamicObjectComponent.Kind()); ok {
			v := d.Velocity()
			buf = appendFloats(buf, v.X, v.Y)
		}
		_, _ = h.Write(buf)
	}
	return h.Sum64()
}

func appendFloats(buf []byte, vals ...float64) []byte {
	for _, v := range vals {
		buf = binary.LittleEndian.AppendUint64(buf, math.Float64bits(v))
	}
	return buf
}
