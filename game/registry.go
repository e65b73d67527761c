package game

import (
	"fmt"
	"slices"

	"gopkg.in/yaml.v3"

	"github.com/plus3/fryer/ecs"
)

// SystemName names a system a level can list.
type SystemName string

const (
	SystemGameMaster        SystemName = "game_master"
	SystemExitAction        SystemName = "exit_action"
	SystemStopAction        SystemName = "stop_action"
	SystemShakeAction       SystemName = "shake_action"
	SystemPotatoControl     SystemName = "potato_control"
	SystemResetLevel        SystemName = "reset_level"
	SystemIntegrateMotion   SystemName = "integrate_motion"
	SystemBounceBounds      SystemName = "bounce_bounds"
	SystemMovingPlatform    SystemName = "moving_platform"
	SystemRegisterCollider  SystemName = "register_collider"
	SystemPhysicsToPosition SystemName = "physics_to_position"
	SystemTeleportPotatoes  SystemName = "teleport_potatoes"
	SystemScoreFryingPan    SystemName = "score_frying_pan"
	SystemRenderMeshes      SystemName = "render_meshes"
	SystemRenderText        SystemName = "render_text"
	SystemCameraUpdate      SystemName = "camera_update"
	SystemPlayAudio         SystemName = "play_audio"
	SystemScoreboard        SystemName = "scoreboard"
	SystemDebugPhysics      SystemName = "debug_physics"
)

// Constructor builds a fresh system for one State.
type Constructor func(servers Servers) (ecs.System, error)

// Registry maps system names to their constructors.
type Registry map[SystemName]Constructor

func needRender(name SystemName, servers Servers) error {
	if servers.Render == nil {
		return fmt.Errorf("%w: %s needs a render server", ErrMissingServer, name)
	}
	return nil
}

func needAudio(name SystemName, servers Servers) error {
	if servers.Audio == nil {
		return fmt.Errorf("%w: %s needs an audio server", ErrMissingServer, name)
	}
	return nil
}

func needPhysics(name SystemName, servers Servers) error {
	if servers.Physics == nil {
		return fmt.Errorf("%w: %s needs a physics server", ErrMissingServer, name)
	}
	return nil
}

func plain(build func() ecs.System) Constructor {
	return func(Servers) (ecs.System, error) {
		return build(), nil
	}
}

func withRender(name SystemName, build func(RenderServer) ecs.System) Constructor {
	return func(servers Servers) (ecs.System, error) {
		if err := needRender(name, servers); err != nil {
			return nil, err
		}
		return build(servers.Render), nil
	}
}

func withPhysics(name SystemName, build func(PhysicsServer) ecs.System) Constructor {
	return func(servers Servers) (ecs.System, error) {
		if err := needPhysics(name, servers); err != nil {
			return nil, err
		}
		return build(servers.Physics), nil
	}
}

// DefaultRegistry returns a new registry holding every built-in system.
func DefaultRegistry() Registry {
	return Registry{
		SystemGameMaster: func(servers Servers) (ecs.System, error) {
			return NewGameMaster(servers), nil
		},
		SystemExitAction:      plain(func() ecs.System { return &ExitActionSystem{} }),
		SystemStopAction:      plain(func() ecs.System { return &StopActionSystem{} }),
		SystemShakeAction:     plain(func() ecs.System { return &ShakeActionSystem{} }),
		SystemPotatoControl:   plain(func() ecs.System { return &PotatoControlSystem{} }),
		SystemResetLevel:      plain(func() ecs.System { return &ResetLevelSystem{} }),
		SystemIntegrateMotion: plain(func() ecs.System { return &IntegrateMotionSystem{} }),
		SystemBounceBounds:    plain(func() ecs.System { return &BounceBoundsSystem{Bounds: DefaultBounds} }),
		SystemMovingPlatform:  plain(func() ecs.System { return &MovingPlatformSystem{} }),
		SystemScoreboard:      plain(func() ecs.System { return NewScoreboardSystem() }),

		SystemRegisterCollider: withPhysics(SystemRegisterCollider, func(p PhysicsServer) ecs.System {
			return NewRegisterColliderSystem(p)
		}),
		SystemPhysicsToPosition: withPhysics(SystemPhysicsToPosition, func(p PhysicsServer) ecs.System {
			return NewPhysicsToPositionSystem(p)
		}),
		SystemTeleportPotatoes: withPhysics(SystemTeleportPotatoes, func(p PhysicsServer) ecs.System {
			return NewTeleportPotatoesSystem(p, RoundSeed)
		}),
		SystemScoreFryingPan: withPhysics(SystemScoreFryingPan, func(p PhysicsServer) ecs.System {
			return NewScoreFryingPanSystem(p, RoundSeed+1)
		}),
		SystemDebugPhysics: withPhysics(SystemDebugPhysics, func(p PhysicsServer) ecs.System {
			return NewDebugPhysicsSystem(p)
		}),

		SystemRenderMeshes: withRender(SystemRenderMeshes, func(r RenderServer) ecs.System {
			return NewRenderMeshesSystem(r)
		}),
		SystemRenderText: withRender(SystemRenderText, func(r RenderServer) ecs.System {
			return NewRenderTextSystem(r)
		}),
		SystemCameraUpdate: withRender(SystemCameraUpdate, func(r RenderServer) ecs.System {
			return NewCameraUpdateSystem(r)
		}),

		SystemPlayAudio: func(servers Servers) (ecs.System, error) {
			if err := needAudio(SystemPlayAudio, servers); err != nil {
				return nil, err
			}
			return NewPlayAudioSystem(servers.Audio, servers.logger().Named("audio")), nil
		},
	}
}

// Build constructs the named system.
func (r Registry) Build(name SystemName, servers Servers) (ecs.System, error) {
	construct, ok := r[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownSystem, string(name))
	}
	return construct(servers)
}

// Names returns the registered names in sorted order.
func (r Registry) Names() []SystemName {
	names := make([]SystemName, 0, len(r))
	for name := range r {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

var knownSystems = DefaultRegistry()

// UnmarshalYAML accepts only built-in system names.
func (n *SystemName) UnmarshalYAML(value *yaml.Node) error {
	var s string
	if err := value.Decode(&s); err != nil {
		return err
	}
	if _, ok := knownSystems[SystemName(s)]; !ok {
		return fmt.Errorf("line %d: %w: %q", value.Line, ErrUnknownSystem, s)
	}
	*n = SystemName(s)
	return nil
}
