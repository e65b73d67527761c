package terminal

import (
	"sync"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/plus3/fryer/game"
)

// DefaultHold is how long a key counts as held after its last press or
// auto-repeat. Terminals report presses only, never releases.
const DefaultHold = 150 * time.Millisecond

// Key identifies a terminal key. Printable keys use Rune with
// Key == tcell.KeyRune.
type Key struct {
	Key  tcell.Key
	Rune rune
}

func runeKey(r rune) Key { return Key{Key: tcell.KeyRune, Rune: r} }
func specialKey(k tcell.Key) Key { return Key{Key: k} }

func keyOf(ev *tcell.EventKey) Key {
	if ev.Key() == tcell.KeyRune {
		return runeKey(ev.Rune())
	}
	return specialKey(ev.Key())
}

type Binding struct {
	Home, One  Key
	Directions [6][]Key // indexed by game.Direction
}

// DefaultBindings covers two players; the other controllers stay idle.
var DefaultBindings = [game.ControllerCount]Binding{
	{
		Home: specialKey(tcell.KeyEscape), One: runeKey(' '),
		Directions: [6][]Key{
			game.Xp: {runeKey('a'), specialKey(tcell.KeyLeft)},
			game.Xn: {runeKey('d'), specialKey(tcell.KeyRight)},
			game.Yp: {runeKey('s'), specialKey(tcell.KeyPgDn)},
			game.Yn: {runeKey('w'), specialKey(tcell.KeyPgUp)},
			game.Zp: {runeKey('e'), specialKey(tcell.KeyUp)},
			game.Zn: {runeKey('q'), specialKey(tcell.KeyDown)},
		},
	},
	{
		Home: specialKey(tcell.KeyF1), One: runeKey('h'),
		Directions: [6][]Key{
			game.Xp: {runeKey('j')},
			game.Xn: {runeKey('l')},
			game.Yp: {runeKey('k')},
			game.Yn: {runeKey('i')},
			game.Zp: {runeKey('o')},
			game.Zn: {runeKey('u')},
		},
	},
}

// Keyboard turns key events into held keys.
type Keyboard struct {
	mu       sync.Mutex
	bindings [game.ControllerCount]Binding
	hold     time.Duration
	lastSeen map[Key]time.Time
}

func NewKeyboard(bindings [game.ControllerCount]Binding, hold time.Duration) *Keyboard {
	if hold <= 0 {
		hold = DefaultHold
	}
	return &Keyboard{bindings: bindings, hold: hold, lastSeen: make(map[Key]time.Time)}
}

// Press records a key event at now.
func (k *Keyboard) Press(ev *tcell.EventKey, now time.Time) {
	k.mu.Lock()
	defer k.mu.Unlock()
	k.lastSeen[keyOf(ev)] = now
}

func (k *Keyboard) held(key Key, now time.Time) bool {
	seen, ok := k.lastSeen[key]
	return ok && now.Sub(seen) < k.hold
}

// Read returns the raw controller state at now.
func (k *Keyboard) Read(now time.Time) [game.ControllerCount]game.RawController {
	k.mu.Lock()
	defer k.mu.Unlock()

	var raw [game.ControllerCount]game.RawController
	for i, b := range k.bindings {
		r := game.RawController{
			Home: b.Home != (Key{}) && k.held(b.Home, now),
			One:  b.One != (Key{}) && k.held(b.One, now),
		}
	directions:
		for dir, keys := range b.Directions {
			for _, key := range keys {
				if k.held(key, now) {
					r.Moving, r.Direction = true, game.Direction(dir)
					break directions
				}
			}
		}
		raw[i] = r
	}
	return raw
}
