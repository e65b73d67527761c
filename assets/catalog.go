// Package assets describes every compiled-in asset by name. Models resolve to
// a glyph, colour and size that the reference renderers draw with; sounds
// resolve to a synthesis recipe the audio backend plays.
package assets

import (
	"bytes"
	_ "embed"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"sync"

	"gopkg.in/yaml.v3"
)

var (
	ErrUnknownAsset    = errors.New("assets: unknown asset")
	ErrMissingAsset    = errors.New("assets: asset missing from manifest")
	ErrDuplicateAsset  = errors.New("assets: asset declared twice")
	ErrInvalidManifest = errors.New("assets: invalid manifest")
)

//go:embed manifest.yaml
var manifestYAML []byte

// Kind tells which section of the manifest an asset lives in.
type Kind int

const (
	KindModel Kind = iota
	KindTexture
	KindSound
	KindFont
)

// Color is an RGB triple parsed from "#rrggbb".
type Color struct {
	R, G, B uint8
}

func (c *Color) UnmarshalYAML(value *yaml.Node) error {
	var s string
	if err := value.Decode(&s); err != nil {
		return err
	}
	s = strings.TrimPrefix(s, "#")
	if len(s) != 6 {
		return fmt.Errorf("%w: colour %q on line %d", ErrInvalidManifest, s, value.Line)
	}
	v, err := strconv.ParseUint(s, 16, 32)
	if err != nil {
		return fmt.Errorf("%w: colour %q on line %d: %v", ErrInvalidManifest, s, value.Line, err)
	}
	c.R, c.G, c.B = uint8(v>>16), uint8(v>>8), uint8(v)
	return nil
}

// Model is how a mesh is drawn by the reference renderers.
type Model struct {
	Glyph   string  `yaml:"glyph"`
	Color   Color   `yaml:"color"`
	Radius  float32 `yaml:"radius"`
	Texture *Name   `yaml:"texture,omitempty"`
}

// Texture only carries a tint; there are no texture bytes in this build.
type Texture struct {
	Color Color `yaml:"color"`
}

// Wave is an oscillator shape.
type Wave string

const (
	WaveSine   Wave = "sine"
	WaveSquare Wave = "square"
	WaveSaw    Wave = "saw"
	WaveNoise  Wave = "noise"
)

// Note is one step of a sound recipe.
type Note struct {
	Freq     float64 `yaml:"freq"`
	Duration float64 `yaml:"duration"` // seconds
}

// Sound is a synthesis recipe: the notes are played back to back.
type Sound struct {
	Wave  Wave    `yaml:"wave"`
	Gain  float64 `yaml:"gain"`
	Notes []Note  `yaml:"notes"`
}

// Duration returns the total length of the recipe in seconds.
func (s Sound) Duration() float64 {
	var total float64
	for _, n := range s.Notes {
		total += n.Duration
	}
	return total
}

// Font describes the overlay font.
type Font struct {
	Size int `yaml:"size"`
}

type manifest struct {
	Models   map[Name]Model   `yaml:"models"`
	Textures map[Name]Texture `yaml:"textures"`
	Sounds   map[Name]Sound   `yaml:"sounds"`
	Fonts    map[Name]Font    `yaml:"fonts"`
}

// Catalog resolves asset names to their descriptors.
type Catalog struct {
	kinds    [nameCount]Kind
	models   map[Name]Model
	textures map[Name]Texture
	sounds   map[Name]Sound
	fonts    map[Name]Font
}

// Load decodes and validates a manifest. Every Name must appear in exactly one section.
func Load(r io.Reader) (*Catalog, error) {
	var m manifest
	if err := yaml.NewDecoder(r).Decode(&m); err != nil {
		return nil, fmt.Errorf("decode manifest: %w", err)
	}

	c := &Catalog{
		models:   m.Models,
		textures: m.Textures,
		sounds:   m.Sounds,
		fonts:    m.Fonts,
	}

	seen := make(map[Name]bool, nameCount)
	var errs []error
	mark := func(name Name, kind Kind) {
		if seen[name] {
			errs = append(errs, fmt.Errorf("%w: %s", ErrDuplicateAsset, name))
			return
		}
		seen[name] = true
		c.kinds[name] = kind
	}
	for name := range m.Models {
		mark(name, KindModel)
	}
	for name := range m.Textures {
		mark(name, KindTexture)
	}
	for name, sound := range m.Sounds {
		mark(name, KindSound)
		if len(sound.Notes) == 0 {
			errs = append(errs, fmt.Errorf("%w: sound %s has no notes", ErrInvalidManifest, name))
		}
	}
	for name := range m.Fonts {
		mark(name, KindFont)
	}

	for _, name := range All() {
		if !seen[name] {
			errs = append(errs, fmt.Errorf("%w: %s", ErrMissingAsset, name))
		}
	}

	if err := errors.Join(errs...); err != nil {
		return nil, err
	}
	return c, nil
}

var (
	defaultOnce    sync.Once
	defaultCatalog *Catalog
)

// Default returns the catalog built from the embedded manifest.
// The manifest ships with the binary, so a broken one panics.
func Default() *Catalog {
	defaultOnce.Do(func() {
		c, err := Load(bytes.NewReader(manifestYAML))
		if err != nil {
			panic(err)
		}
		defaultCatalog = c
	})
	return defaultCatalog
}

// Kind returns which section the asset was declared in.
func (c *Catalog) Kind(name Name) Kind {
	return c.kinds[name]
}

func (c *Catalog) Model(name Name) (Model, bool) {
	m, ok := c.models[name]
	return m, ok
}

func (c *Catalog) Texture(name Name) (Texture, bool) {
	t, ok := c.textures[name]
	return t, ok
}

func (c *Catalog) Sound(name Name) (Sound, bool) {
	s, ok := c.sounds[name]
	return s, ok
}

func (c *Catalog) Font(name Name) (Font, bool) {
	f, ok := c.fonts[name]
	return f, ok
}
