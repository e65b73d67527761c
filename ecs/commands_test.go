package ecs_test

import (
	"testing"

	"github.com/plus3/fryer/ecs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCommandsDeferStructuralChanges(t *testing.T) {
	storage := ecs.NewStorage(newTestRegistry())
	commands := ecs.NewCommands()

	a := storage.Spawn(Position{X: 1}, Health{Current: 0})
	b := storage.Spawn(Position{X: 2}, Health{Current: 5})

	view := ecs.NewView[struct {
		Id ecs.EntityId
		*Health
	}](storage)

	for item := range view.Iter() {
		if item.Health.Current == 0 {
			commands.Delete(item.Id)
			commands.Spawn(Name{Value: "tombstone"})
		}
	}

	// Nothing changes until the flush
	assert.True(t, storage.Alive(a))
	spawns, deletes := commands.Pending()
	assert.Equal(t, 1, spawns)
	assert.Equal(t, 1, deletes)

	require.NoError(t, commands.Flush(storage))
	assert.False(t, storage.Alive(a))
	assert.True(t, storage.Alive(b))
	assert.Equal(t, 1, ecs.NewView[struct{ *Name }](storage).Count())
	assert.True(t, commands.Empty())
}

func TestCommandsCountAfterFlush(t *testing.T) {
	storage := ecs.NewStorage(newTestRegistry())
	commands := ecs.NewCommands()

	ids := make([]ecs.EntityId, 7)
	for i := range ids {
		ids[i] = storage.Spawn(Position{X: float32(i)}, Health{Current: i % 2})
	}
	require.Equal(t, 7, storage.Count())

	view := ecs.NewView[struct {
		Id ecs.EntityId
		*Health
	}](storage)
	for item := range view.Iter() {
		if item.Health.Current == 0 {
			commands.Delete(item.Id)
		}
	}
	for i := range 14 {
		commands.Spawn(Position{Y: float32(i)})
	}

	spawns, deletes := commands.Pending()
	assert.Equal(t, 14, spawns)
	assert.Equal(t, 4, deletes)
	assert.Equal(t, 7, storage.Count(), "nothing applied before the flush")

	require.NoError(t, commands.Flush(storage))
	assert.Equal(t, 7-4+14, storage.Count())
	for i, id := range ids {
		assert.Equal(t, i%2 == 1, storage.Alive(id))
	}
}

func TestCommandsDuplicateDelete(t *testing.T) {
	storage := ecs.NewStorage(newTestRegistry())
	commands := ecs.NewCommands()

	id := storage.Spawn(Position{})
	commands.Delete(id)
	commands.Delete(id)

	assert.NoError(t, commands.Flush(storage))
	assert.False(t, storage.Alive(id))
}

func TestCommandsStaleDeleteReportsError(t *testing.T) {
	storage := ecs.NewStorage(newTestRegistry())
	commands := ecs.NewCommands()

	id := storage.Spawn(Position{})
	keep := storage.Spawn(Position{})
	require.NoError(t, storage.Delete(id))

	commands.Delete(id)
	commands.Spawn(Position{X: 7})

	err := commands.Flush(storage)
	assert.ErrorIs(t, err, ecs.ErrStaleEntity)

	// The rest of the buffer is still applied
	assert.True(t, storage.Alive(keep))
	assert.Equal(t, 2, storage.Count())
}

func TestCommandsComponentChanges(t *testing.T) {
	storage := ecs.NewStorage(newTestRegistry())
	commands := ecs.NewCommands()

	id := storage.Spawn(Position{}, Velocity{})
	gone := storage.Spawn(Position{})

	commands.AddComponent(id, Health{Current: 3})
	commands.RemoveComponent(id, ecsType[Velocity]())
	commands.Delete(gone)
	commands.AddComponent(gone, Health{})

	require.NoError(t, commands.Flush(storage))
	assert.Equal(t, 3, ecs.ReadComponent[Health](storage, id).Current)
	assert.Nil(t, ecs.ReadComponent[Velocity](storage, id))
	assert.False(t, storage.Alive(gone))
}

func TestCommandsDeferRunsAfterSpawns(t *testing.T) {
	storage := ecs.NewStorage(newTestRegistry())
	commands := ecs.NewCommands()

	var seen int
	commands.Spawn(Position{})
	commands.Defer(func() {
		seen = storage.Count()
	})

	require.NoError(t, commands.Flush(storage))
	assert.Equal(t, 1, seen)
}
