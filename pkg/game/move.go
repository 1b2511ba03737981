package game

import (
	"fmt"
	"strconv"
)

// MoveKind is the closed set of single-die plays.
type MoveKind int

const (
	MoveNone MoveKind = iota
	MovePointToPoint
	MoveReenter
	MoveBearOff
)

func (k MoveKind) String() string {
	switch k {
	case MoveNone:
		return "no-move"
	case MovePointToPoint:
		return "point-to-point"
	case MoveReenter:
		return "reenter"
	case MoveBearOff:
		return "bear-off"
	}
	return fmt.Sprintf("move-kind(%d)", int(k))
}

// MoveState tracks a single die within a turn.
type MoveState int

const (
	MoveReady MoveState = iota
	MoveExecuted
	MoveForfeited // the die could not be played
)

func (s MoveState) String() string {
	switch s {
	case MoveReady:
		return "ready"
	case MoveExecuted:
		return "executed"
	case MoveForfeited:
		return "forfeited"
	}
	return fmt.Sprintf("move-state(%d)", int(s))
}

// PossibleMove is one legal way to play a die: a checker of Color leaves
// Origin and lands on Destination, sending a lone opposing checker to the bar
// if Hit is set.
type PossibleMove struct {
	Kind        MoveKind
	Color       Color
	DieValue    int
	Origin      string
	Destination string
	Hit         bool
}

// Notation renders the play from the mover's side, e.g. "13/10", "bar/22*",
// "6/off".
func (pm PossibleMove) Notation(b *Board) string {
	return pointName(b, pm.Color, pm.Origin) + "/" + pointName(b, pm.Color, pm.Destination) + hitMark(pm.Hit)
}

func pointName(b *Board, c Color, id string) string {
	cont, ok := b.containers[id]
	if !ok {
		return "?"
	}
	switch cont.Kind {
	case KindBar:
		return "bar"
	case KindOff:
		return "off"
	}
	return strconv.Itoa(cont.Position.For(b.directions[c]))
}

func hitMark(hit bool) string {
	if hit {
		return "*"
	}
	return ""
}

// Move is the play of one die value within a turn. PossibleMoves lists every
// destination currently allowed for it. Kind, Origin and Destination describe
// the play once executed; a die that cannot be played is MoveNone.
type Move struct {
	ID            string
	DieValue      int
	Kind          MoveKind
	Origin        string
	Destination   string
	Hit           bool
	PossibleMoves []PossibleMove
	State         MoveState
}

// HasKind reports whether any possible play of m is of kind k.
func (m Move) HasKind(k MoveKind) bool {
	for _, pm := range m.PossibleMoves {
		if pm.Kind == k {
			return true
		}
	}
	return false
}

// Notation renders an executed move for color c, like PossibleMove.Notation.
func (m Move) Notation(b *Board, c Color) string {
	if m.State != MoveExecuted {
		return ""
	}
	return pointName(b, c, m.Origin) + "/" + pointName(b, c, m.Destination) + hitMark(m.Hit)
}

// possible returns the possible play leaving origin, if any.
func (m Move) possible(origin string) (PossibleMove, bool) {
	for _, pm := range m.PossibleMoves {
		if pm.Origin == origin {
			return pm, true
		}
	}
	return PossibleMove{}, false
}

// Execute plays m from origin on b. It fails unless origin is one of m's
// possible moves. b is left untouched; the new board is returned with the
// executed record.
func (m Move) Execute(b *Board, origin string) (*Board, Move, error) {
	if m.State != MoveReady {
		return b, m, fmt.Errorf("%w: die %d already %s", ErrInvalidMoveSequence, m.DieValue, m.State)
	}
	pm, ok := m.possible(origin)
	if !ok {
		return b, m, fmt.Errorf("%w: die %d cannot be played from %s", ErrInvalidMoveSequence, m.DieValue, origin)
	}
	nb, err := applyPossibleMove(b, pm)
	if err != nil {
		return b, m, err
	}
	m.Kind = pm.Kind
	m.Origin = pm.Origin
	m.Destination = pm.Destination
	m.Hit = pm.Hit
	m.State = MoveExecuted
	return nb, m, nil
}

// applyPossibleMove relocates one checker on a copy of b. On a hit the lone
// opposing checker goes to its own bar before the mover lands.
func applyPossibleMove(b *Board, pm PossibleMove) (*Board, error) {
	origin, ok := b.containers[pm.Origin]
	if !ok {
		return b, fmt.Errorf("%w: %s", ErrContainerNotFound, pm.Origin)
	}
	if color, n := b.occupancy(origin); n == 0 || color != pm.Color {
		return b, fmt.Errorf("%w: no %s checker at origin", ErrInvalidMoveSequence, pm.Color)
	}
	if _, ok := b.containers[pm.Destination]; !ok {
		return b, fmt.Errorf("%w: %s", ErrContainerNotFound, pm.Destination)
	}

	nb := b.clone()
	dest := nb.containers[pm.Destination]
	if pm.Hit {
		if color, n := nb.occupancy(dest); n != 1 || color == pm.Color {
			return b, fmt.Errorf("%w: hit without a lone opposing checker", ErrInvalidMoveSequence)
		}
		nb.relocate(dest.Checkers[0], nb.bar(pm.Color.Opponent()).ID)
	}
	src := nb.containers[pm.Origin]
	nb.relocate(src.Checkers[len(src.Checkers)-1], pm.Destination)
	return nb, nil
}

// barIndex and offIndex are the layout slots for the bar and borne-off
// checkers. Points use their number as seen by the mover.
const (
	offIndex = 0
	barIndex = 25
)

// layout is a compact view of the board from the mover's side, used by the
// move search. own counts the mover's checkers by distance to off; opp counts
// opposing checkers on each point numbered from the mover's side.
type layout struct {
	own [26]int8
	opp [25]int8
}

func layoutFor(b *Board, c Color) layout {
	var l layout
	d := b.directions[c]
	for _, id := range b.points {
		p := b.containers[id]
		color, n := b.occupancy(p)
		if n == 0 {
			continue
		}
		if color == c {
			l.own[p.Position.For(d)] = int8(n)
		} else {
			l.opp[p.Position.For(d)] = int8(n)
		}
	}
	l.own[barIndex] = int8(b.BarCount(c))
	l.own[offIndex] = int8(b.OffCount(c))
	return l
}

// step is a single-die play on a layout.
type step struct {
	kind     MoveKind
	from, to int
	hit      bool
}

// kindFor selects the move kind for a checker at from playing die.
func kindFor(from, die int) MoveKind {
	switch {
	case from == barIndex:
		return MoveReenter
	case from < 1 || from > NumPoints:
		return MoveNone
	case from-die >= 1:
		return MovePointToPoint
	default:
		return MoveBearOff
	}
}

// allHome reports whether every remaining checker is in the home board.
func (l *layout) allHome() bool {
	for i := HomeBoardSize + 1; i <= barIndex; i++ {
		if l.own[i] > 0 {
			return false
		}
	}
	return true
}

// highest returns the farthest occupied point, or 0.
func (l *layout) highest() int {
	for i := NumPoints; i >= 1; i-- {
		if l.own[i] > 0 {
			return i
		}
	}
	return 0
}

func (l *layout) open(to int) bool {
	return l.opp[to] <= 1
}

// check decides whether a checker at from may play die.
func (l *layout) check(from, die int) (step, bool) {
	s := step{kind: kindFor(from, die), from: from}
	switch s.kind {
	case MoveReenter:
		s.to = barIndex - die
		if !l.open(s.to) {
			return s, false
		}
		s.hit = l.opp[s.to] == 1
		return s, true
	case MovePointToPoint:
		s.to = from - die
		if !l.open(s.to) {
			return s, false
		}
		s.hit = l.opp[s.to] == 1
		return s, true
	case MoveBearOff:
		s.to = offIndex
		if !l.allHome() {
			return s, false
		}
		return s, from == die || l.highest() == from
	case MoveNone:
		return s, false
	}
	return s, false
}

// steps lists every single-die play, ignoring sequencing rules other than bar
// priority.
func (l *layout) steps(die int) []step {
	if l.own[barIndex] > 0 {
		if s, ok := l.check(barIndex, die); ok {
			return []step{s}
		}
		return nil
	}
	var out []step
	for from := NumPoints; from >= 1; from-- {
		if l.own[from] == 0 {
			continue
		}
		if s, ok := l.check(from, die); ok {
			out = append(out, s)
		}
	}
	return out
}

func (l layout) apply(s step) layout {
	l.own[s.from]--
	l.own[s.to]++
	if s.hit {
		l.opp[s.to] = 0
	}
	return l
}

// maxPlayable returns how many of dice can be played in the best order.
func (l layout) maxPlayable(dice []int) int {
	if len(dice) == 0 {
		return 0
	}
	best := 0
	for _, die := range distinct(dice) {
		rest := without(dice, die)
		for _, s := range l.steps(die) {
			if n := 1 + l.apply(s).maxPlayable(rest); n > best {
				best = n
				if best == len(dice) {
					return best
				}
			}
		}
	}
	return best
}

// distinct returns the distinct values of dice, largest first.
func distinct(dice []int) []int {
	out := make([]int, 0, 2)
	for _, d := range dice {
		seen := false
		for _, o := range out {
			if o == d {
				seen = true
				break
			}
		}
		if !seen {
			out = append(out, d)
		}
	}
	if len(out) == 2 && out[0] < out[1] {
		out[0], out[1] = out[1], out[0]
	}
	return out
}

// without returns dice with one occurrence of die removed.
func without(dice []int, die int) []int {
	out := make([]int, 0, len(dice))
	removed := false
	for _, d := range dice {
		if d == die && !removed {
			removed = true
			continue
		}
		out = append(out, d)
	}
	return out
}

func possibleFromStep(b *Board, c Color, die int, s step) PossibleMove {
	d := b.directions[c]
	pm := PossibleMove{Kind: s.kind, Color: c, DieValue: die, Hit: s.hit}
	if s.from == barIndex {
		pm.Origin = b.bar(c).ID
	} else {
		pm.Origin = b.point(d, s.from).ID
	}
	if s.to == offIndex {
		pm.Destination = b.off(c).ID
	} else {
		pm.Destination = b.point(d, s.to).ID
	}
	return pm
}

// LegalMoves lists every single-die play of die for color c on b, applying
// bar priority but no turn sequencing rules.
func LegalMoves(b *Board, c Color, die int) []PossibleMove {
	l := layoutFor(b, c)
	steps := l.steps(die)
	out := make([]PossibleMove, len(steps))
	for i, s := range steps {
		out[i] = possibleFromStep(b, c, die, s)
	}
	return out
}
