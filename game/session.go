package game

import "fmt"

// Mode is the phase of a round.
type Mode int

const (
	Selection Mode = iota
	Hands
	Playing
	Finish
)

var modeNames = [...]string{"selection", "hands", "playing", "finish"}

func (m Mode) String() string {
	if m < 0 || int(m) >= len(modeNames) {
		return fmt.Sprintf("Mode(%d)", int(m))
	}
	return modeNames[m]
}

// Session is the per-state singleton shared by every system.
type Session struct {
	Running bool
	Mode    Mode
	Level   LevelName

	pending    LevelName
	hasPending bool
}

// NewSession returns a running session in Selection for level.
func NewSession(level LevelName) Session {
	return Session{Running: true, Mode: Selection, Level: level}
}

// Advance moves the mode exactly one step forward.
func (s *Session) Advance(to Mode) error {
	if to != s.Mode+1 {
		return fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, s.Mode, to)
	}
	s.Mode = to
	return nil
}

// RequestLevel asks the host to replace the whole state with a fresh build of
// level at the end of the frame. The first request of a frame wins; later ones
// return false and are dropped.
func (s *Session) RequestLevel(level LevelName) bool {
	if s.hasPending {
		return false
	}
	s.pending = level
	s.hasPending = true
	return true
}

// PendingLevel reports the outstanding rebuild request, if any.
func (s *Session) PendingLevel() (LevelName, bool) {
	return s.pending, s.hasPending
}

// takeRequest returns and clears the pending request.
func (s *Session) takeRequest() (LevelName, bool) {
	level, ok := s.pending, s.hasPending
	s.pending, s.hasPending = "", false
	return level, ok
}
