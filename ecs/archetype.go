package ecs

import (
	"reflect"
	"slices"
	"strings"

	"github.com/cespare/xxhash/v2"
)

type byTypeName []reflect.Type

func (a byTypeName) Len() int           { return len(a) }
func (a byTypeName) Swap(i, j int)      { a[i], a[j] = a[j], a[i] }
func (a byTypeName) Less(i, j int) bool { return a[i].String() < a[j].String() }

// Archetype represents a unique combination of component types
type Archetype struct {
	id       uint32
	types    []reflect.Type
	storages []iComponentStorage
	entities []EntityId // row -> owning entity, zero for a free row
	count    int
}

// NewArchetype creates a new archetype with the given ID and sorted component types
func NewArchetype(id uint32, types []reflect.Type, registry *ComponentRegistry) *Archetype {
	a := &Archetype{
		id:       id,
		types:    types,
		storages: make([]iComponentStorage, len(types)),
	}

	// Initialize storage for each component type
	for idx, typ := range types {
		factory := registry.getFactory(typ)
		if factory == nil {
			panic("component type " + typ.String() + " not registered")
		}
		a.storages[idx] = factory()
	}

	return a
}

// spawn stores the components for entity and returns the row they landed in.
// components must already be ordered like a.types.
func (a *Archetype) spawn(entity EntityId, components []any) int {
	row := -1
	for idx, comp := range components {
		pos := a.storages[idx].Append(comp)
		if row == -1 {
			row = pos
		} else if pos != row {
			panic("archetype " + a.String() + " storages out of step")
		}
	}

	for len(a.entities) <= row {
		a.entities = append(a.entities, 0)
	}
	a.entities[row] = entity
	a.count++
	return row
}

// GetComponent returns the component of the given type stored at row
func (a *Archetype) GetComponent(row int, compType reflect.Type) any {
	idx := a.storageIndex(compType)
	if idx == -1 {
		return nil
	}
	return a.storages[idx].Get(row)
}

func (a *Archetype) storageIndex(compType reflect.Type) int {
	for i, typ := range a.types {
		if typ == compType {
			return i
		}
	}
	return -1
}

// delete frees the row. The slot is reused by the next spawn into this archetype.
func (a *Archetype) delete(row int) {
	if row < 0 || row >= len(a.entities) || a.entities[row] == 0 {
		return
	}
	for _, storage := range a.storages {
		storage.Delete(row)
	}
	a.entities[row] = 0
	a.count--
}

// HasComponent checks if this archetype has the given component type
func (a *Archetype) HasComponent(compType reflect.Type) bool {
	return slices.Contains(a.types, compType)
}

// ID returns the archetype's unique identifier
func (a *Archetype) ID() uint32 {
	return a.id
}

// Types returns the sorted component types for this archetype
func (a *Archetype) Types() []reflect.Type {
	return a.types
}

// Len returns the number of live entities in the archetype
func (a *Archetype) Len() int {
	return a.count
}

func (a *Archetype) String() string {
	names := make([]string, len(a.types))
	for i, t := range a.types {
		names[i] = t.String()
	}
	return "[" + strings.Join(names, ", ") + "]"
}

// Iter returns an iterator over all live EntityIds in this archetype, in row order
func (a *Archetype) Iter() func(yield func(EntityId) bool) {
	return func(yield func(EntityId) bool) {
		for _, id := range a.entities {
			if id == 0 {
				continue
			}
			if !yield(id) {
				return
			}
		}
	}
}

// archetypeId hashes a sorted type set by type name. Names are stable across
// processes, so the same component set maps to the same id on every run.
func archetypeId(types []reflect.Type) uint32 {
	d := xxhash.New()
	for _, t := range types {
		_, _ = d.WriteString(t.PkgPath())
		_, _ = d.WriteString(".")
		_, _ = d.WriteString(t.String())
		_, _ = d.WriteString(";")
	}
	sum := d.Sum64()
	return uint32(sum) ^ uint32(sum>>32)
}
