package ecs

// System represents a behavior that operates on entities with specific components.
// User-defined systems should implement this interface and can include Query fields
// for accessing entities, as well as custom state fields that persist between frames.
type System interface {
	Execute(frame *UpdateFrame)
}

// Sequence is a system made of sub-systems that always run together, in order.
// The frame's commands are flushed after each sub-system, exactly like between
// top-level systems.
type Sequence struct {
	Systems []System
}

// NewSequence builds a Sequence from the given systems.
func NewSequence(systems ...System) *Sequence {
	return &Sequence{Systems: systems}
}

// Execute runs each sub-system once.
func (s *Sequence) Execute(frame *UpdateFrame) {
	for _, system := range s.Systems {
		system.Execute(frame)
		frame.Flush()
	}
}
