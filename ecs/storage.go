package ecs

import (
	"fmt"
	"reflect"
	"sort"
	"unsafe"

	"github.com/kamstrup/intmap"
)

// Storage is the main ECS storage interface
type Storage struct {
	archetypes map[uint32]*Archetype
	order      []*Archetype // creation order, used for deterministic iteration
	registry   *ComponentRegistry
	pool       entityPool
	locations  *intmap.Map[EntityId, entityLocation]
	singletons map[reflect.Type]*singletonEntry
	iterating  int
}

type singletonEntry struct {
	value   reflect.Value // pointer to the singleton value
	dataPtr unsafe.Pointer
}

// NewStorage creates a new ECS storage system with the given component registry
func NewStorage(registry *ComponentRegistry) *Storage {
	return &Storage{
		archetypes: make(map[uint32]*Archetype),
		registry:   registry,
		locations:  intmap.New[EntityId, entityLocation](256),
		singletons: make(map[reflect.Type]*singletonEntry),
	}
}

// Registry returns the component registry the storage was built with
func (s *Storage) Registry() *ComponentRegistry {
	return s.registry
}

// lock marks the start of an iteration; structural changes panic until unlock.
func (s *Storage) lock() {
	s.iterating++
}

func (s *Storage) unlock() {
	s.iterating--
}

// Iterating reports whether a View or Query iteration is currently in progress
func (s *Storage) Iterating() bool {
	return s.iterating > 0
}

func (s *Storage) assertMutable() {
	if s.iterating > 0 {
		panic(ErrStructuralMutation)
	}
}

// Alive reports whether id refers to a live entity
func (s *Storage) Alive(id EntityId) bool {
	_, ok := s.locations.Get(id)
	return ok
}

// Count returns the number of live entities
func (s *Storage) Count() int {
	return s.locations.Len()
}

// GetArchetype returns an archetype storage (if one exists)
func (s *Storage) GetArchetype(components ...any) *Archetype {
	types := extractComponentTypes(components)
	return s.archetypes[archetypeId(types)]
}

// GetArchetypeByTypes returns an archetype storage (if one exists) based on reflect.Type
func (s *Storage) GetArchetypeByTypes(types []reflect.Type) *Archetype {
	sorted := append([]reflect.Type(nil), types...)
	sort.Sort(byTypeName(sorted))
	return s.archetypes[archetypeId(sorted)]
}

// GetArchetypes returns all archetypes in creation order
func (s *Storage) GetArchetypes() []*Archetype {
	return s.order
}

func (s *Storage) archetypeFor(types []reflect.Type) *Archetype {
	id := archetypeId(types)
	archetype, exists := s.archetypes[id]
	if !exists {
		archetype = NewArchetype(id, types, s.registry)
		s.archetypes[id] = archetype
		s.order = append(s.order, archetype)
		return archetype
	}
	if !sameTypes(archetype.types, types) {
		panic(fmt.Sprintf("archetype id collision between %s and %v", archetype, types))
	}
	return archetype
}

// Spawn creates a new entity with the provided components
func (s *Storage) Spawn(components ...any) EntityId {
	if len(components) == 0 {
		panic("cannot spawn entity without components")
	}
	s.assertMutable()

	types := extractComponentTypes(components)
	archetype := s.archetypeFor(types)

	id := s.pool.create()
	row := archetype.spawn(id, orderComponents(types, components))
	s.locations.Put(id, entityLocation{archetype: archetype, row: row})
	return id
}

// Delete removes all data related to the entity ID.
// Unknown or already-deleted ids leave the storage untouched and report ErrStaleEntity.
func (s *Storage) Delete(id EntityId) error {
	s.assertMutable()

	loc, ok := s.locations.Get(id)
	if !ok {
		return fmt.Errorf("delete %d: %w", id, ErrStaleEntity)
	}

	loc.archetype.delete(loc.row)
	s.locations.Del(id)
	s.pool.destroy(id)
	return nil
}

// AddComponent attaches component to the entity, moving it to the matching archetype.
// Adding a type the entity already owns overwrites the existing value.
func (s *Storage) AddComponent(id EntityId, component any) error {
	s.assertMutable()

	loc, ok := s.locations.Get(id)
	if !ok {
		return fmt.Errorf("add component to %d: %w", id, ErrStaleEntity)
	}

	compType := componentType(component)
	oldArchetype := loc.archetype

	if oldArchetype.HasComponent(compType) {
		idx := oldArchetype.storageIndex(compType)
		dst := reflect.ValueOf(oldArchetype.storages[idx].Get(loc.row)).Elem()
		dst.Set(reflect.Indirect(reflect.ValueOf(component)))
		return nil
	}

	newTypes := make([]reflect.Type, 0, len(oldArchetype.types)+1)
	newTypes = append(newTypes, oldArchetype.types...)
	newTypes = append(newTypes, compType)
	sort.Sort(byTypeName(newTypes))

	components := make([]any, 0, len(newTypes))
	for _, typ := range newTypes {
		if typ == compType {
			components = append(components, component)
		} else {
			components = append(components, oldArchetype.GetComponent(loc.row, typ))
		}
	}

	s.move(id, loc, newTypes, components)
	return nil
}

// RemoveComponent detaches the component type from the entity.
// Removing the last component deletes the entity.
func (s *Storage) RemoveComponent(id EntityId, compType reflect.Type) error {
	s.assertMutable()

	loc, ok := s.locations.Get(id)
	if !ok {
		return fmt.Errorf("remove component from %d: %w", id, ErrStaleEntity)
	}

	oldArchetype := loc.archetype
	if !oldArchetype.HasComponent(compType) {
		return nil
	}

	newTypes := make([]reflect.Type, 0, len(oldArchetype.types)-1)
	for _, typ := range oldArchetype.types {
		if typ != compType {
			newTypes = append(newTypes, typ)
		}
	}

	if len(newTypes) == 0 {
		return s.Delete(id)
	}

	components := make([]any, 0, len(newTypes))
	for _, typ := range newTypes {
		components = append(components, oldArchetype.GetComponent(loc.row, typ))
	}

	s.move(id, loc, newTypes, components)
	return nil
}

// move re-homes an entity into the archetype for newTypes, keeping its id.
func (s *Storage) move(id EntityId, loc entityLocation, newTypes []reflect.Type, components []any) {
	newArchetype := s.archetypeFor(newTypes)
	row := newArchetype.spawn(id, components)
	loc.archetype.delete(loc.row)
	s.locations.Put(id, entityLocation{archetype: newArchetype, row: row})
}

// GetComponent returns the component for the given entity ID and component type
func (s *Storage) GetComponent(id EntityId, compType reflect.Type) any {
	loc, ok := s.locations.Get(id)
	if !ok {
		return nil
	}
	return loc.archetype.GetComponent(loc.row, compType)
}

// HasComponent checks if an entity has a specific component type
func (s *Storage) HasComponent(id EntityId, compType reflect.Type) bool {
	loc, ok := s.locations.Get(id)
	if !ok {
		return false
	}
	return loc.archetype.HasComponent(compType)
}

// AddSingleton stores value as the singleton for its type, replacing any previous one.
func (s *Storage) AddSingleton(value any) {
	v := reflect.ValueOf(value)
	t := v.Type()
	if t.Kind() == reflect.Ptr {
		t = t.Elem()
		v = v.Elem()
	}

	ptr := reflect.New(t)
	ptr.Elem().Set(v)
	s.singletons[t] = &singletonEntry{
		value:   ptr,
		dataPtr: ptr.UnsafePointer(),
	}
}

// ReadSingleton points *out at the stored singleton. out must be a **T.
// Returns false if no singleton of type T exists.
func (s *Storage) ReadSingleton(out any) bool {
	outVal := reflect.ValueOf(out)
	if outVal.Kind() != reflect.Ptr || outVal.Elem().Kind() != reflect.Ptr {
		panic("ReadSingleton expects a pointer to a pointer")
	}

	entry := s.singletons[outVal.Elem().Type().Elem()]
	if entry == nil {
		return false
	}
	outVal.Elem().Set(entry.value)
	return true
}

func (s *Storage) getSingletonEntry(t reflect.Type) *singletonEntry {
	return s.singletons[t]
}

func componentType(component any) reflect.Type {
	compType := reflect.TypeOf(component)
	if compType.Kind() == reflect.Ptr {
		compType = compType.Elem()
	}
	return compType
}

// extractComponentTypes extracts and sorts component types from a slice of components
func extractComponentTypes(components []any) []reflect.Type {
	types := make([]reflect.Type, 0, len(components))
	for _, comp := range components {
		compType := componentType(comp)

		// Components can be structs or primitives (int, string, etc.)
		// But not pointers, maps, channels, or functions (those aren't value types)
		if compType.Kind() == reflect.Ptr || compType.Kind() == reflect.Map ||
			compType.Kind() == reflect.Chan || compType.Kind() == reflect.Func {
			panic("components cannot be pointers, maps, channels, or functions")
		}

		types = append(types, compType)
	}
	sort.Sort(byTypeName(types))
	for i := 1; i < len(types); i++ {
		if types[i] == types[i-1] {
			panic("duplicate component type " + types[i].String())
		}
	}
	return types
}

// orderComponents lines components up with the sorted type list.
func orderComponents(types []reflect.Type, components []any) []any {
	ordered := make([]any, len(types))
	for _, comp := range components {
		t := componentType(comp)
		for i, typ := range types {
			if typ == t {
				ordered[i] = comp
				break
			}
		}
	}
	return ordered
}

func sameTypes(a, b []reflect.Type) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

type ComponentReader interface {
	GetComponent(EntityId, reflect.Type) any
}

// ReadComponent returns a typed pointer to the entity's component, or nil if absent.
func ReadComponent[T any](reader ComponentReader, entityId EntityId) *T {
	comp := reader.GetComponent(entityId, reflect.TypeFor[T]())
	if comp == nil {
		return nil
	}
	return comp.(*T)
}
