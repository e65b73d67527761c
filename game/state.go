package game

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/plus3/fryer/ecs"
)

// State is one built level: a World, its pipeline and the servers it talks
// to. A rebuild always produces a new State.
type State struct {
	ID        uuid.UUID
	Level     LevelName
	Storage   *ecs.Storage
	Scheduler *ecs.Scheduler

	session  *ecs.Singleton[Session]
	controls *ecs.Singleton[Controls]
	logger   *zap.Logger
}

// NewState builds level with the built-in registry.
func NewState(level LevelName, servers Servers) (*State, error) {
	return BuildState(level, servers, DefaultRegistry())
}

// BuildState builds level, constructing its systems from registry. Every
// system is constructed before the first frame so a missing server fails the
// build instead of a frame.
func BuildState(level LevelName, servers Servers, registry Registry) (*State, error) {
	spec, err := Level(level)
	if err != nil {
		return nil, err
	}

	id := uuid.New()
	logger := servers.logger().With(
		zap.String("state_id", id.String()),
		zap.String("level", string(level)),
	)

	components := ecs.NewComponentRegistry()
	RegisterComponents(components)
	storage := ecs.NewStorage(components)

	session := ecs.NewSingleton(storage, NewSession(level))
	controls := ecs.NewSingleton(storage, Controls{})

	scheduler := ecs.NewScheduler(storage)
	scheduler.SetErrorHandler(func(system string, err error) {
		logger.Warn("command flush failed", zap.String("system", system), zap.Error(err))
	})

	servers.Logger = logger
	var errs []error
	for _, name := range spec.Systems {
		system, err := registry.Build(name, servers)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		scheduler.RegisterNamed(string(name), system)
	}
	if err := errors.Join(errs...); err != nil {
		return nil, fmt.Errorf("build %s: %w", level, err)
	}

	builders[level](storage, spec)

	return &State{
		ID:        id,
		Level:     level,
		Storage:   storage,
		Scheduler: scheduler,
		session:   session,
		controls:  controls,
		logger:    logger,
	}, nil
}

// Session returns the state's session singleton.
func (s *State) Session() *Session {
	return s.session.Get()
}

// Step publishes controls and runs the pipeline once.
func (s *State) Step(dt float64, controls Controls) {
	s.controls.Set(controls)
	s.Scheduler.Once(dt)
}
