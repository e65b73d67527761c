package ecs

import (
	"reflect"
	"sort"
)

// StorageStats is a point-in-time summary of a Storage.
type StorageStats struct {
	ArchetypeCount     int
	TotalEntityCount   int
	SingletonCount     int
	ArchetypeBreakdown []ArchetypeStats
	SingletonTypes     []reflect.Type
}

// ArchetypeStats describes one archetype in a StorageStats snapshot.
type ArchetypeStats struct {
	ID             uint32
	ComponentTypes []reflect.Type
	EntityCount    int
}

// CollectStats gathers archetype and singleton counts. Archetypes are listed
// in creation order, singleton types by name.
func (s *Storage) CollectStats() *StorageStats {
	stats := &StorageStats{
		ArchetypeCount:     len(s.order),
		SingletonCount:     len(s.singletons),
		ArchetypeBreakdown: make([]ArchetypeStats, 0, len(s.order)),
		SingletonTypes:     make([]reflect.Type, 0, len(s.singletons)),
	}

	for _, archetype := range s.order {
		stats.ArchetypeBreakdown = append(stats.ArchetypeBreakdown, ArchetypeStats{
			ID:             archetype.id,
			ComponentTypes: archetype.types,
			EntityCount:    archetype.count,
		})
		stats.TotalEntityCount += archetype.count
	}

	for t := range s.singletons {
		stats.SingletonTypes = append(stats.SingletonTypes, t)
	}
	sort.Sort(byTypeName(stats.SingletonTypes))

	return stats
}
