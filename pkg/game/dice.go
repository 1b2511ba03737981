package game

import (
	"fmt"

	"golang.org/x/exp/rand"
)

// Source is the single source of randomness in the engine. It returns a
// uniform integer in [0, n).
type Source interface {
	Intn(n int) int
}

// NewSource returns a seeded PCG source. Equal seeds replay equal games.
func NewSource(seed uint64) Source {
	return rand.New(rand.NewSource(seed))
}

// DiceState is the state of a player's dice.
type DiceState int

const (
	DiceInactive DiceState = iota
	DiceRollingForStart
	DiceRolledForStart
	DiceRolling
	DiceRolled
)

func (s DiceState) String() string {
	switch s {
	case DiceInactive:
		return "inactive"
	case DiceRollingForStart:
		return "rolling-for-start"
	case DiceRolledForStart:
		return "rolled-for-start"
	case DiceRolling:
		return "rolling"
	case DiceRolled:
		return "rolled"
	}
	return fmt.Sprintf("dice-state(%d)", int(s))
}

// Dice is one player's pair of dice. CurrentRoll is zero until rolled; a
// start roll uses only the first die.
type Dice struct {
	ID          string
	Color       Color
	State       DiceState
	CurrentRoll [2]int
	Total       int
}

// NewDice returns inactive dice for color c.
func NewDice(c Color) Dice {
	return Dice{ID: newID(), Color: c, State: DiceInactive}
}

func rollDie(src Source) int {
	return src.Intn(6) + 1
}

// Roll draws two faces from src.
func (d Dice) Roll(src Source) (Dice, error) {
	return d.WithRoll([2]int{rollDie(src), rollDie(src)})
}

// WithRoll sets the faces directly, for dice thrown outside the engine.
func (d Dice) WithRoll(faces [2]int) (Dice, error) {
	switch d.State {
	case DiceInactive, DiceRolling, DiceRolledForStart:
	default:
		return d, fmt.Errorf("%w: cannot roll while %s", ErrDiceState, d.State)
	}
	for _, f := range faces {
		if f < 1 || f > 6 {
			return d, fmt.Errorf("%w: got %d", ErrInvalidDie, f)
		}
	}
	d.CurrentRoll = faces
	d.Total = faces[0] + faces[1]
	d.State = DiceRolled
	return d, nil
}

// RollForStart throws a single die to decide who moves first.
func (d Dice) RollForStart(src Source) (Dice, error) {
	switch d.State {
	case DiceInactive, DiceRollingForStart:
	default:
		return d, fmt.Errorf("%w: cannot roll for start while %s", ErrDiceState, d.State)
	}
	face := rollDie(src)
	d.CurrentRoll = [2]int{face, 0}
	d.Total = face
	d.State = DiceRolledForStart
	return d, nil
}

// IsDouble reports whether both faces of a completed roll match.
func (d Dice) IsDouble() bool {
	return d.State == DiceRolled && IsDouble(d.CurrentRoll)
}

// IsDouble reports whether roll is a double.
func IsDouble(roll [2]int) bool {
	return roll[0] == roll[1]
}

// Switch swaps the order of the faces. It has no effect on the rules.
func (d Dice) Switch() Dice {
	d.CurrentRoll[0], d.CurrentRoll[1] = d.CurrentRoll[1], d.CurrentRoll[0]
	return d
}

// Values returns the playable die values: two, or four for a double.
func (d Dice) Values() []int {
	if d.State != DiceRolled {
		return nil
	}
	if IsDouble(d.CurrentRoll) {
		v := d.CurrentRoll[0]
		return []int{v, v, v, v}
	}
	return []int{d.CurrentRoll[0], d.CurrentRoll[1]}
}

// Reset clears the faces and puts the dice in state s.
func (d Dice) Reset(s DiceState) Dice {
	d.CurrentRoll = [2]int{}
	d.Total = 0
	d.State = s
	return d
}
