package game

import "errors"

// Board and checker errors
var (
	ErrBoardImport       = errors.New("invalid board import")
	ErrCheckerNotFound   = errors.New("checker not found")
	ErrContainerNotFound = errors.New("container not found")
	ErrCheckerCount      = errors.New("wrong number of checkers")
)

// State machine errors
var (
	ErrPlayerState = errors.New("operation invalid for player state")
	ErrDiceState   = errors.New("operation invalid for dice state")
	ErrGameState   = errors.New("operation invalid for game state")
	ErrPlayState   = errors.New("operation invalid for play state")
	ErrInvalidDie  = errors.New("die value must be 1-6")
)

// Play rule errors
var (
	ErrMustUseBothDice     = errors.New("must use both dice")
	ErrMustUseLargerDie    = errors.New("must use larger die")
	ErrInvalidMoveSequence = errors.New("invalid move sequence")
	ErrMustReenter         = errors.New("checker on the bar must reenter first")
)

// Cube errors
var (
	ErrCubeOwnership = errors.New("cube is owned by the other player")
	ErrCubeMaxxed    = errors.New("cube is at its maximum value")
	ErrDoublePending = errors.New("a double is awaiting a response")
	ErrNoDouble      = errors.New("no double to respond to")
)
