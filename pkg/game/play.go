package game

import (
	"fmt"
	"slices"
)

// PlayState is the state of one turn's checker play.
type PlayState int

const (
	PlayRolled PlayState = iota
	PlayMoving
	PlayMoved
)

func (s PlayState) String() string {
	switch s {
	case PlayRolled:
		return "rolled"
	case PlayMoving:
		return "moving"
	case PlayMoved:
		return "moved"
	}
	return fmt.Sprintf("play-state(%d)", int(s))
}

// Play orchestrates one turn: one Move per die value (four on a double), each
// carrying the plays currently allowed by the compulsory-play rules:
//
//  1. a checker on the bar must reenter before anything else moves;
//  2. as many dice as possible must be played;
//  3. if only one die of a non-double can be played, it must be the larger
//     one whenever the larger one can be played;
//  4. if nothing can be played the turn is over.
//
// The allowed plays are recomputed from the board after every executed move.
type Play struct {
	ID     string
	State  PlayState
	Player Player
	Moves  []Move
}

// NewPlay computes the moves for a player who has rolled.
func NewPlay(b *Board, p Player) (Play, error) {
	if p.State != PlayerRolled {
		return Play{}, fmt.Errorf("%w: %s has not rolled (%s)", ErrPlayerState, p.Color, p.State)
	}
	values := p.Dice.Values()
	moves := make([]Move, len(values))
	for i, v := range values {
		moves[i] = Move{ID: newID(), DieValue: v, State: MoveReady}
	}
	play := Play{ID: newID(), State: PlayRolled, Player: p, Moves: moves}
	play.recompute(b)
	return play, nil
}

// Ready returns the moves still to be played.
func (p Play) Ready() []Move {
	var out []Move
	for _, m := range p.Moves {
		if m.State == MoveReady {
			out = append(out, m)
		}
	}
	return out
}

// Executed returns the moves played so far, in order of the dice.
func (p Play) Executed() []Move {
	var out []Move
	for _, m := range p.Moves {
		if m.State == MoveExecuted {
			out = append(out, m)
		}
	}
	return out
}

// PossibleMoves returns every play currently allowed, for any die.
func (p Play) PossibleMoves() []PossibleMove {
	var out []PossibleMove
	seen := map[[2]string]bool{}
	for _, m := range p.Moves {
		if m.State != MoveReady {
			continue
		}
		for _, pm := range m.PossibleMoves {
			key := [2]string{pm.Origin, pm.Destination}
			if seen[key] {
				continue
			}
			seen[key] = true
			out = append(out, pm)
		}
	}
	return out
}

// Move plays die from origin. It returns the updated play and board; on error
// both inputs are unchanged.
func (p Play) Move(b *Board, die int, origin string) (Play, *Board, error) {
	if p.State == PlayMoved {
		return p, b, fmt.Errorf("%w: play is %s", ErrPlayState, p.State)
	}
	idx := -1
	hasDie := false
	for i, m := range p.Moves {
		if m.State != MoveReady || m.DieValue != die {
			continue
		}
		hasDie = true
		if _, ok := m.possible(origin); ok {
			idx = i
			break
		}
	}
	if idx < 0 {
		if !hasDie {
			return p, b, fmt.Errorf("%w: no unplayed %d", ErrInvalidMoveSequence, die)
		}
		return p, b, p.rejection(b, die, origin)
	}

	nb, executed, err := p.Moves[idx].Execute(b, origin)
	if err != nil {
		return p, b, err
	}
	np := p.clone()
	np.Moves[idx] = executed
	np.State = PlayMoving
	np.recompute(nb)
	return np, nb, nil
}

// Recompute returns the play with its allowed moves derived again from b.
// It has no side effects and is safe to repeat.
func (p Play) Recompute(b *Board) Play {
	np := p.clone()
	np.recompute(b)
	return np
}

func (p Play) clone() Play {
	p.Moves = slices.Clone(p.Moves)
	return p
}

// rejection explains why die cannot be played from origin.
func (p Play) rejection(b *Board, die int, origin string) error {
	c := p.Player.Color
	l := layoutFor(b, c)
	if l.own[barIndex] > 0 && origin != b.bar(c).ID {
		return fmt.Errorf("%w: %s has %d on the bar", ErrMustReenter, c, l.own[barIndex])
	}
	legal := false
	for _, pm := range LegalMoves(b, c, die) {
		if pm.Origin == origin {
			legal = true
			break
		}
	}
	if !legal {
		return fmt.Errorf("%w: %d cannot be played from %s", ErrInvalidMoveSequence, die, pointName(b, c, origin))
	}
	remaining := p.remainingDice()
	if ds := distinct(remaining); len(ds) == 2 && die == ds[1] && l.maxPlayable(remaining) == 1 {
		return fmt.Errorf("%w: only one die can be played and %d is playable", ErrMustUseLargerDie, ds[0])
	}
	return fmt.Errorf("%w: %s/%d leaves dice unplayed", ErrMustUseBothDice, pointName(b, c, origin), die)
}

func (p Play) remainingDice() []int {
	var dice []int
	for _, m := range p.Moves {
		if m.State == MoveReady {
			dice = append(dice, m.DieValue)
		}
	}
	return dice
}

// recompute fills PossibleMoves of every ready move from b and closes the
// play when nothing more can be played.
func (p *Play) recompute(b *Board) {
	c := p.Player.Color
	l := layoutFor(b, c)
	remaining := p.remainingDice()
	allowed, most := allowedSteps(l, remaining)

	// on a double the first most ready moves carry the plays, the rest are dead
	live := most
	for i := range p.Moves {
		m := &p.Moves[i]
		if m.State != MoveReady {
			continue
		}
		m.Kind = MoveNone
		m.PossibleMoves = nil
		if live == 0 {
			continue
		}
		steps := allowed[m.DieValue]
		if len(steps) == 0 {
			continue
		}
		m.PossibleMoves = make([]PossibleMove, len(steps))
		for j, s := range steps {
			m.PossibleMoves[j] = possibleFromStep(b, c, m.DieValue, s)
		}
		live--
	}

	if most == 0 {
		for i := range p.Moves {
			if p.Moves[i].State == MoveReady {
				p.Moves[i].State = MoveForfeited
			}
		}
		p.State = PlayMoved
	}
}

// allowedSteps returns, per die value, the first plays that begin a sequence
// using the most dice, and that maximum. When only one die of two different
// values can be played, only the larger die is allowed if it is playable.
func allowedSteps(l layout, dice []int) (map[int][]step, int) {
	type candidate struct {
		die   int
		s     step
		depth int
	}
	var cands []candidate
	most := 0
	for _, die := range distinct(dice) {
		rest := without(dice, die)
		for _, s := range l.steps(die) {
			depth := 1 + l.apply(s).maxPlayable(rest)
			cands = append(cands, candidate{die: die, s: s, depth: depth})
			if depth > most {
				most = depth
			}
		}
	}

	allowed := map[int][]step{}
	for _, c := range cands {
		if c.depth == most {
			allowed[c.die] = append(allowed[c.die], c.s)
		}
	}
	if ds := distinct(dice); most == 1 && len(ds) == 2 && len(allowed[ds[0]]) > 0 {
		delete(allowed, ds[1])
	}
	return allowed, most
}
