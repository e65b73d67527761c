package assets

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// Name identifies a compiled-in asset. The set is closed; every Name must be
// described by the embedded manifest.
type Name int

const (
	Cube Name = iota
	Suzanne
	Triangle
	CubeTexture
	TriangleTexture
	SuzanneTexture
	DemoMusic
	BoingSFX
	FreeMonoBold
	HandThree
	HandTwo
	HandOne
	HandFist
	FryPanBlack
	FryPanWhite
	FryPanBlue
	FryPanRed
	Potato
	Plate
	OilSea
	OilBubble

	nameCount
)

var names = [nameCount]string{
	Cube:            "cube",
	Suzanne:         "suzanne",
	Triangle:        "triangle",
	CubeTexture:     "cube_texture",
	TriangleTexture: "triangle_texture",
	SuzanneTexture:  "suzanne_texture",
	DemoMusic:       "demo_music",
	BoingSFX:        "boing_sfx",
	FreeMonoBold:    "free_mono_bold",
	HandThree:       "hand_three",
	HandTwo:         "hand_two",
	HandOne:         "hand_one",
	HandFist:        "hand_fist",
	FryPanBlack:     "fry_pan_black",
	FryPanWhite:     "fry_pan_white",
	FryPanBlue:      "fry_pan_blue",
	FryPanRed:       "fry_pan_red",
	Potato:          "potato",
	Plate:           "plate",
	OilSea:          "oil_sea",
	OilBubble:       "oil_bubble",
}

// All returns every Name in declaration order.
func All() []Name {
	all := make([]Name, nameCount)
	for i := range all {
		all[i] = Name(i)
	}
	return all
}

func (n Name) String() string {
	if n < 0 || n >= nameCount {
		return fmt.Sprintf("Name(%d)", int(n))
	}
	return names[n]
}

// ParseName resolves a manifest key to its Name.
func ParseName(s string) (Name, error) {
	for i, name := range names {
		if name == s {
			return Name(i), nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownAsset, s)
}

// UnmarshalYAML lets manifests and level files refer to assets by key.
func (n *Name) UnmarshalYAML(value *yaml.Node) error {
	var s string
	if err := value.Decode(&s); err != nil {
		return err
	}
	parsed, err := ParseName(s)
	if err != nil {
		return fmt.Errorf("line %d: %w", value.Line, err)
	}
	*n = parsed
	return nil
}

func (n Name) MarshalYAML() (any, error) {
	return n.String(), nil
}
