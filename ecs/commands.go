package ecs

import (
	"errors"
	"reflect"
)

// Commands provides a buffer for deferred ECS operations.
// This prevents structural changes to the ECS storage during iteration: systems
// queue spawns and deletes while they walk a query, and the buffer is applied
// once the walk is over.
type Commands struct {
	spawns  []spawnCommand
	deletes []EntityId
	adds    []addComponentCommand
	removes []removeComponentCommand
	defers  []deferCommand
}

// NewCommands returns an empty command buffer.
func NewCommands() *Commands {
	return &Commands{}
}

type deferCommand struct {
	fn func()
}

type spawnCommand struct {
	components []any
}

type addComponentCommand struct {
	entity    EntityId
	component any
}

type removeComponentCommand struct {
	entity   EntityId
	compType reflect.Type
}

// Defer queues a function execution operation.
func (c *Commands) Defer(fn func()) {
	c.defers = append(c.defers, deferCommand{fn: fn})
}

// Spawn queues an entity spawn operation with the given components.
func (c *Commands) Spawn(components ...any) {
	c.spawns = append(c.spawns, spawnCommand{components: components})
}

// Delete queues an entity deletion operation.
func (c *Commands) Delete(entity EntityId) {
	c.deletes = append(c.deletes, entity)
}

// AddComponent queues a component addition operation.
func (c *Commands) AddComponent(entity EntityId, component any) {
	c.adds = append(c.adds, addComponentCommand{
		entity:    entity,
		component: component,
	})
}

// RemoveComponent queues a component removal operation.
func (c *Commands) RemoveComponent(entity EntityId, compType reflect.Type) {
	c.removes = append(c.removes, removeComponentCommand{
		entity:   entity,
		compType: compType,
	})
}

// Pending returns the number of queued spawns and deletes.
func (c *Commands) Pending() (spawns int, deletes int) {
	return len(c.spawns), len(c.deletes)
}

// Empty reports whether nothing is queued.
func (c *Commands) Empty() bool {
	return len(c.spawns) == 0 && len(c.deletes) == 0 && len(c.adds) == 0 &&
		len(c.removes) == 0 && len(c.defers) == 0
}

// Flush applies all queued commands to the provided storage and resets the buffer.
// Deletes run first, then component removals and additions, then spawns, then
// deferred functions. Queuing the same delete twice is harmless; deleting an id
// that was already gone before the flush is reported in the returned error.
func (c *Commands) Flush(storage *Storage) error {
	var errs []error
	deletedEntities := make(map[EntityId]bool, len(c.deletes))

	for _, id := range c.deletes {
		if deletedEntities[id] {
			continue
		}
		deletedEntities[id] = true
		if err := storage.Delete(id); err != nil {
			errs = append(errs, err)
		}
	}

	for _, cmd := range c.removes {
		if !deletedEntities[cmd.entity] {
			if err := storage.RemoveComponent(cmd.entity, cmd.compType); err != nil {
				errs = append(errs, err)
			}
		}
	}

	for _, cmd := range c.adds {
		if !deletedEntities[cmd.entity] {
			if err := storage.AddComponent(cmd.entity, cmd.component); err != nil {
				errs = append(errs, err)
			}
		}
	}

	for _, cmd := range c.spawns {
		storage.Spawn(cmd.components...)
	}

	defers := c.defers

	c.spawns = c.spawns[:0]
	c.deletes = c.deletes[:0]
	c.adds = c.adds[:0]
	c.removes = c.removes[:0]
	c.defers = nil

	for _, df := range defers {
		df.fn()
	}

	return errors.Join(errs...)
}
