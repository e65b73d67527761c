package ecs

import (
	"iter"
)

// Query wraps a View with a cache of matching archetypes for repeated iteration.
// Systems declare Query fields; the Scheduler initializes them on Register.
type Query[T any] struct {
	view               *View[T]
	storage            *Storage
	cachedArchetypes   []*Archetype
	lastArchetypeCount int
}

// NewQuery creates a new Query with archetype-level caching.
func NewQuery[T any](storage *Storage) *Query[T] {
	q := &Query[T]{}
	q.Init(storage)
	return q
}

// Init initializes or re-initializes the Query with a storage.
// Called by the Scheduler during system registration.
func (q *Query[T]) Init(storage *Storage) {
	q.view = NewView[T](storage)
	q.storage = storage
	q.cachedArchetypes = nil
	q.lastArchetypeCount = -1
}

// Execute refreshes the archetype cache. The Scheduler calls it before the
// owning system runs; Iter also refreshes lazily when archetypes were added.
func (q *Query[T]) Execute() {
	q.ensureArchetypeCache()
}

func (q *Query[T]) ensureArchetypeCache() {
	if q.storage == nil {
		panic("Query used before Init")
	}

	// Archetypes are only ever appended, so new ones are the tail of the order slice.
	order := q.storage.order
	if q.lastArchetypeCount == len(order) {
		return
	}

	start := max(q.lastArchetypeCount, 0)
	for _, archetype := range order[start:] {
		if q.view.matchesArchetype(archetype) {
			q.cachedArchetypes = append(q.cachedArchetypes, archetype)
		}
	}
	q.lastArchetypeCount = len(order)
}

// Iter returns an iterator over the matching entities. See View.Iter.
func (q *Query[T]) Iter() iter.Seq[T] {
	q.ensureArchetypeCache()
	return q.view.iterArchetypes(q.cachedArchetypes)
}

// Get returns the populated struct for one entity, or nil if it doesn't match.
func (q *Query[T]) Get(id EntityId) *T {
	return q.view.Get(id)
}

// First returns the first matching entity in iteration order
func (q *Query[T]) First() (T, bool) {
	for item := range q.Iter() {
		return item, true
	}
	var zero T
	return zero, false
}

// Count returns the number of matching entities
func (q *Query[T]) Count() int {
	n := 0
	for range q.Iter() {
		n++
	}
	return n
}
