package game

import "errors"

var (
	// ErrInvalidTransition is returned when the play mode is asked to move
	// anywhere but exactly one step forward.
	ErrInvalidTransition = errors.New("game: invalid play mode transition")

	// ErrMissingServer is returned when a system needs a collaborator the
	// State was built without.
	ErrMissingServer = errors.New("game: required server is missing")

	ErrUnknownLevel  = errors.New("game: unknown level")
	ErrUnknownSystem = errors.New("game: unknown system")
)
