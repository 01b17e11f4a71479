package component

// CollisionLayer allows entities to declare a collision category and mask
// so the physics system can skip pairs that should never interact.
type CollisionLayer struct {
	// Category is a bitmask of this entity's collision category. If zero,
	// the physics system treats it as category 1.
	Category uint32 `yaml:"category,omitempty"`
	// Mask is a bitmask of categories this entity collides with. If zero,
	// the physics system treats it as all bits set.
	Mask uint32 `yaml:"mask,omitempty"`
}

var CollisionLayerComponent = NewComponent[CollisionLayer]()

func (l CollisionLayer) category() uint32 {
	if l.Category == 0 {
		return 1
	}
	return l.Category
}

func (l CollisionLayer) mask() uint32 {
	if l.Mask == 0 {
		return ^uint32(0)
	}
	return l.Mask
}

// Interacts reports whether two layers accept each other.
func (l CollisionLayer) Interacts(other CollisionLayer) bool {
	return l.mask()&other.category() != 0 && other.mask()&l.category() != 0
}
