package game

import "fmt"

// PlayerState is the state of a seat within the turn cycle.
type PlayerState int

const (
	PlayerInactive PlayerState = iota
	PlayerRollingForStart
	PlayerRolledForStart
	PlayerRolling
	PlayerRolled
	PlayerMoving
	PlayerMoved
)

func (s PlayerState) String() string {
	switch s {
	case PlayerInactive:
		return "inactive"
	case PlayerRollingForStart:
		return "rolling-for-start"
	case PlayerRolledForStart:
		return "rolled-for-start"
	case PlayerRolling:
		return "rolling"
	case PlayerRolled:
		return "rolled"
	case PlayerMoving:
		return "moving"
	case PlayerMoved:
		return "moved"
	}
	return fmt.Sprintf("player-state(%d)", int(s))
}

// Player is one seat. Direction is fixed for the whole game. PipCount is
// derived from the board and refreshed after every executed move.
type Player struct {
	ID        string
	Color     Color
	Direction Direction
	State     PlayerState
	Dice      Dice
	PipCount  int
}

// PlayerOption customizes NewPlayer.
type PlayerOption func(*Player)

// WithPlayerID sets the player ID instead of generating one.
func WithPlayerID(id string) PlayerOption {
	return func(p *Player) { p.ID = id }
}

// WithPlayerState sets the initial state.
func WithPlayerState(s PlayerState) PlayerOption {
	return func(p *Player) { p.State = s }
}

// WithDice sets the player's dice.
func WithDice(d Dice) PlayerOption {
	return func(p *Player) { p.Dice = d }
}

// NewPlayer creates an inactive seat for color c travelling in direction d.
func NewPlayer(c Color, d Direction, opts ...PlayerOption) Player {
	p := Player{
		ID:        newID(),
		Color:     c,
		Direction: d,
		State:     PlayerInactive,
		Dice:      NewDice(c),
	}
	for _, opt := range opts {
		opt(&p)
	}
	return p
}

// Roll throws the player's dice.
func (p Player) Roll(src Source) (Player, error) {
	if err := p.canRoll(); err != nil {
		return p, err
	}
	d, err := p.Dice.Roll(src)
	if err != nil {
		return p, err
	}
	p.Dice = d
	p.State = PlayerRolled
	return p, nil
}

// WithRoll records a roll thrown outside the engine.
func (p Player) WithRoll(faces [2]int) (Player, error) {
	if err := p.canRoll(); err != nil {
		return p, err
	}
	d, err := p.Dice.WithRoll(faces)
	if err != nil {
		return p, err
	}
	p.Dice = d
	p.State = PlayerRolled
	return p, nil
}

func (p Player) canRoll() error {
	if p.State != PlayerInactive && p.State != PlayerRolling {
		return fmt.Errorf("%w: %s cannot roll while %s", ErrPlayerState, p.Color, p.State)
	}
	return nil
}

// RollForStart throws one die to decide who moves first.
func (p Player) RollForStart(src Source) (Player, error) {
	if p.State != PlayerInactive && p.State != PlayerRollingForStart {
		return p, fmt.Errorf("%w: %s cannot roll for start while %s", ErrPlayerState, p.Color, p.State)
	}
	d, err := p.Dice.RollForStart(src)
	if err != nil {
		return p, err
	}
	p.Dice = d
	p.State = PlayerRolledForStart
	return p, nil
}

// WithPipCount recomputes the pip count from b.
func (p Player) WithPipCount(b *Board) Player {
	p.PipCount = b.PipCount(p.Color)
	return p
}

func (p Player) withState(s PlayerState, ds DiceState) Player {
	p.State = s
	p.Dice = p.Dice.Reset(ds)
	return p
}
