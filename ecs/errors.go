package ecs

import "errors"

var (
	// ErrStaleEntity is returned when an operation targets an id that was never
	// issued or whose slot has since been freed.
	ErrStaleEntity = errors.New("ecs: stale or unknown entity")

	// ErrStructuralMutation is the panic value raised when entities are spawned,
	// deleted or reshaped while a View or Query iteration is in progress.
	ErrStructuralMutation = errors.New("ecs: structural mutation during iteration")

	// ErrSchedulerRunning is the panic value raised when the system list is
	// changed while the scheduler is executing a frame.
	ErrSchedulerRunning = errors.New("ecs: scheduler is running")
)
