package ecs

import "slices"

// System is updated once per frame.
type System interface {
	Update(w *World)
}

// Scheduler runs its systems in a fixed order and counts the frames it has
// run. Gameplay systems that write DynamicObject.Accel go before physics.
type Scheduler struct {
	systems []System
	frame   uint64
}

func NewScheduler(systems ...System) *Scheduler {
	s := &Scheduler{}
	for _, system := range systems {
		s.Add(system)
	}
	return s
}

func (s *Scheduler) Add(system System) {
	if system == nil {
		return
	}
	s.systems = append(s.systems, system)
}

// Update runs one frame.
func (s *Scheduler) Update(w *World) {
	for _, system := range s.systems {
		system.Update(w)
	}
	s.frame++
}

// Run runs n frames back to back.
func (s *Scheduler) Run(w *World, n int) {
	for i := 0; i < n; i++ {
		s.Update(w)
	}
}

// Frame is the number of frames run since creation or the last Reset.
func (s *Scheduler) Frame() uint64 {
	return s.frame
}

func (s *Scheduler) Reset() {
	s.frame = 0
}

func (s *Scheduler) Systems() []System {
	return slices.Clone(s.systems)
}
