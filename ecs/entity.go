package ecs

// EntityId encodes a slot index (lower 32 bits) and the slot's generation (upper 32 bits).
// The generation is bumped every time the slot is freed, so an id kept past a Delete
// never resolves to whatever entity reuses the slot later.
type EntityId uint64

// NewEntityId creates an EntityId from a slot index and generation
func NewEntityId(index uint32, generation uint32) EntityId {
	return EntityId(uint64(generation)<<32 | uint64(index))
}

// Index extracts the slot index from the entity ID
func (e EntityId) Index() uint32 {
	return uint32(e & 0xFFFFFFFF)
}

// Generation extracts the slot generation from the entity ID
func (e EntityId) Generation() uint32 {
	return uint32(e >> 32)
}

// IsZero reports whether e is the zero id, which is never issued by a Storage.
func (e EntityId) IsZero() bool {
	return e == 0
}

// entityLocation points at the archetype row holding an entity's components.
type entityLocation struct {
	archetype *Archetype
	row       int
}

// entityPool hands out slot indices and tracks their generations.
// Generations start at 1 so that id 0 stays reserved.
type entityPool struct {
	generations []uint32
	free        []uint32
}

func (p *entityPool) create() EntityId {
	if len(p.free) > 0 {
		index := p.free[len(p.free)-1]
		p.free = p.free[:len(p.free)-1]
		return NewEntityId(index, p.generations[index])
	}

	index := uint32(len(p.generations))
	p.generations = append(p.generations, 1)
	return NewEntityId(index, 1)
}

func (p *entityPool) alive(id EntityId) bool {
	index := id.Index()
	if int(index) >= len(p.generations) {
		return false
	}
	return p.generations[index] == id.Generation()
}

func (p *entityPool) destroy(id EntityId) bool {
	if !p.alive(id) {
		return false
	}
	index := id.Index()
	p.generations[index]++
	if p.generations[index] == 0 {
		p.generations[index] = 1
	}
	p.free = append(p.free, index)
	return true
}
