package game

import (
	"bytes"
	_ "embed"
	"errors"
	"fmt"
	"io"
	"math/rand/v2"
	"slices"
	"sync"

	"gopkg.in/yaml.v3"

	"github.com/plus3/fryer/assets"
	"github.com/plus3/fryer/ecs"
)

// LevelName identifies a buildable level.
type LevelName string

const (
	FryArena           LevelName = "fry_arena"
	MovingPlatformTest LevelName = "moving_platform_test"
)

// LevelSpec is a level's entry in levels.yaml.
type LevelSpec struct {
	Systems []SystemName `yaml:"systems"`
	Music   *assets.Name `yaml:"music"`
	Bubbles int          `yaml:"bubbles"`
}

type levelFile struct {
	Levels map[LevelName]LevelSpec `yaml:"levels"`
}

//go:embed levels.yaml
var levelsYAML []byte

// populate spawns a level's entities.
type populate func(storage *ecs.Storage, spec LevelSpec)

var builders = map[LevelName]populate{
	FryArena:           populateFryArena,
	MovingPlatformTest: populateMovingPlatform,
}

// LoadLevels decodes a level table. Every level needs a builder and at least
// one system.
func LoadLevels(r io.Reader) (map[LevelName]LevelSpec, error) {
	var file levelFile
	if err := yaml.NewDecoder(r).Decode(&file); err != nil {
		return nil, fmt.Errorf("decode levels: %w", err)
	}

	var errs []error
	for name, spec := range file.Levels {
		if _, ok := builders[name]; !ok {
			errs = append(errs, fmt.Errorf("%w: %q has no builder", ErrUnknownLevel, string(name)))
		}
		if len(spec.Systems) == 0 {
			errs = append(errs, fmt.Errorf("level %q lists no systems", string(name)))
		}
	}
	if err := errors.Join(errs...); err != nil {
		return nil, err
	}
	return file.Levels, nil
}

var (
	levelsOnce  sync.Once
	levelsTable map[LevelName]LevelSpec
)

func levels() map[LevelName]LevelSpec {
	levelsOnce.Do(func() {
		table, err := LoadLevels(bytes.NewReader(levelsYAML))
		if err != nil {
			panic(fmt.Sprintf("embedded levels.yaml: %v", err))
		}
		levelsTable = table
	})
	return levelsTable
}

// Levels returns the names of every built-in level, sorted.
func Levels() []LevelName {
	table := levels()
	names := make([]LevelName, 0, len(table))
	for name := range table {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// Level returns the definition of a built-in level.
func Level(name LevelName) (LevelSpec, error) {
	spec, ok := levels()[name]
	if !ok {
		return LevelSpec{}, fmt.Errorf("%w: %q", ErrUnknownLevel, string(name))
	}
	return spec, nil
}

const (
	plateY    = -1.5
	oilY      = -15
	bubbleY   = -6
	oilExtent = 40
	// BubbleSeed seeds the oil bubble layout.
	BubbleSeed = 10
)

func spawnCamera(storage *ecs.Storage) {
	storage.Spawn(
		Position{Y: 27.5, Z: 25},
		Camera{R: 20, G: 16, B: 12, Up: Vec3{Y: 1}, LookAt: Vec3{Y: -6}},
	)
}

func populateFryArena(storage *ecs.Storage, spec LevelSpec) {
	spawnCamera(storage)

	storage.Spawn(MeshInstance{Model: assets.Plate}, Position{Y: plateY}, Rotation{})
	storage.Spawn(MeshInstance{Model: assets.OilSea}, Position{Y: oilY}, Rotation{})

	rng := rand.New(rand.NewPCG(BubbleSeed, BubbleSeed))
	for range spec.Bubbles {
		pos := Position{
			X: (rng.Float32() - 0.5) * oilExtent,
			Y: bubbleY,
			Z: (rng.Float32() - 0.5) * oilExtent,
		}
		storage.Spawn(
			MeshInstance{Model: assets.OilBubble},
			pos,
			Rotation{},
			Animation{
				Duration: 0.5 + rng.Float32()*2,
				PastTime: rng.Float32() * 2,
				Type:     AnimBubble,
				OnFinish: FinishRepeatBubble,
				Target:   pos.Vec(),
			},
		)
	}

	if spec.Music != nil {
		storage.Spawn(Audio{Asset: *spec.Music, Mode: PlayLoop})
	}
}

func populateMovingPlatform(storage *ecs.Storage, spec LevelSpec) {
	spawnCamera(storage)
	storage.Spawn(MeshInstance{Model: assets.Plate}, Position{Y: plateY}, Rotation{}, Platform{})
}
