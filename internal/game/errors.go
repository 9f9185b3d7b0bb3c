package game

import "errors"

// Engine failure modes. Every rejected operation returns one of these
// (possibly wrapped with context) and leaves battle state untouched.
var (
	ErrInvalidUnit    = errors.New("unknown or dead unit")
	ErrNotYourTurn    = errors.New("unit does not belong to the acting team")
	ErrOutOfBounds    = errors.New("coordinate outside grid")
	ErrUnreachable    = errors.New("destination not reachable this turn")
	ErrTileOccupied   = errors.New("destination tile is occupied")
	ErrOutOfRange     = errors.New("target beyond maximum attack range")
	ErrTooClose       = errors.New("target below minimum attack range")
	ErrFriendlyFire   = errors.New("target is on the attacker's team")
	ErrAlreadyStarted = errors.New("battle already started")
	ErrNotStarted     = errors.New("battle not started")
)
