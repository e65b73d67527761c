package game

import "fmt"

// ControllerCount is the number of controller slots in a Controls snapshot.
const ControllerCount = 4

// Direction is the dominant axis of a motion gesture.
type Direction int

const (
	Xp Direction = iota
	Xn
	Yp
	Yn
	Zp
	Zn
)

var directionNames = [...]string{"x+", "x-", "y+", "y-", "z+", "z-"}

func (d Direction) String() string {
	if d < 0 || int(d) >= len(directionNames) {
		return fmt.Sprintf("Direction(%d)", int(d))
	}
	return directionNames[d]
}

// Vec returns the world-space nudge for a gesture. Controller axes do not line
// up with world axes: a vertical flick moves along y, a sideways flick along -x.
func (d Direction) Vec() Vec3 {
	switch d {
	case Zp:
		return Vec3{Y: 1}
	case Zn:
		return Vec3{Y: -1}
	case Xp:
		return Vec3{X: -1}
	case Xn:
		return Vec3{X: 1}
	case Yp:
		return Vec3{Z: 1}
	case Yn:
		return Vec3{Z: -1}
	}
	return Vec3{}
}

// MotionControl is a gesture in progress. Started is only set on its first
// frame and Ended only on its last.
type MotionControl struct {
	Direction Direction
	Started   bool
	Ended     bool
}

type Controller struct {
	Home   bool
	One    bool
	Motion *MotionControl
}

// Controls is the input snapshot for one frame.
type Controls struct {
	Controllers [ControllerCount]Controller
}

// RawController is what a backend reads from its device: buttons and
// whichever direction is currently held.
type RawController struct {
	Home      bool
	One       bool
	Moving    bool
	Direction Direction
}

// minMotionSteps is how many frames a gesture lasts at least.
const minMotionSteps = 7

type motionState struct {
	active    bool
	direction Direction
	steps     int
	ended     bool
}

// MotionTracker turns held directions into gesture events. A gesture starts
// on the first frame a direction is held, lasts at least minMotionSteps
// frames, ends on the first frame after that where the direction is no longer
// held, and is cleared the frame after it ended.
type MotionTracker struct {
	states [ControllerCount]motionState
}

// Update derives a Controls snapshot from the raw device state.
func (m *MotionTracker) Update(raw [ControllerCount]RawController) Controls {
	var controls Controls
	for i, r := range raw {
		controls.Controllers[i] = Controller{
			Home:   r.Home,
			One:    r.One,
			Motion: m.step(i, r),
		}
	}
	return controls
}

func (m *MotionTracker) step(i int, r RawController) *MotionControl {
	s := &m.states[i]

	if !s.active {
		if !r.Moving {
			return nil
		}
		*s = motionState{active: true, direction: r.Direction, steps: minMotionSteps}
		return &MotionControl{Direction: s.direction, Started: true}
	}

	if s.ended {
		*s = motionState{}
		return nil
	}

	if s.steps > 0 {
		s.steps--
	} else if !r.Moving || r.Direction != s.direction {
		s.ended = true
	}
	return &MotionControl{Direction: s.direction, Ended: s.ended}
}
