package ecs

// UpdateFrame is handed to every system during Scheduler.Once.
type UpdateFrame struct {
	DeltaTime float64
	Commands  *Commands
	Storage   *Storage

	system  string
	onError ErrorHandler
}

func newUpdateFrame(dt float64, storage *Storage, onError ErrorHandler) *UpdateFrame {
	return &UpdateFrame{
		DeltaTime: dt,
		Commands:  NewCommands(),
		Storage:   storage,
		onError:   onError,
	}
}

// NewUpdateFrame creates a standalone frame, for driving systems outside a Scheduler.
func NewUpdateFrame(dt float64, storage *Storage) *UpdateFrame {
	return newUpdateFrame(dt, storage, nil)
}

// System returns the name of the system currently executing.
func (f *UpdateFrame) System() string {
	return f.system
}

// Flush applies the queued commands now. Systems call it when they need their
// own spawns and deletes to be visible before they return.
func (f *UpdateFrame) Flush() {
	if f.Commands.Empty() {
		return
	}
	if err := f.Commands.Flush(f.Storage); err != nil && f.onError != nil {
		f.onError(f.system, err)
	}
}
