package game

import (
	"context"
	"fmt"
	"strconv"
	"strings"
)

// HintRequest describes a position for an external move advisor. Positions
// travel as position IDs from the side of Player, so the advisor never needs
// to know which way anyone moves.
type HintRequest struct {
	PositionID string `json:"position_id"`
	Dice       [2]int `json:"dice"`
	Player     Color  `json:"player"`
	CubeValue  int    `json:"cube_value"`
	CubeOwner  *Color `json:"cube_owner,omitempty"`
}

// HintPlay is one die of a suggested play. Points are numbered from the
// mover's side: 25 is the bar and 0 is off.
type HintPlay struct {
	Die  int `json:"die"`
	From int `json:"from"`
	To   int `json:"to"`
}

// Hint is a complete suggested play for a roll.
type Hint struct {
	Plays  []HintPlay `json:"plays"`
	Equity float64    `json:"equity"`
}

// String renders the hint in the usual notation, e.g. "13/10 bar/22".
func (h Hint) String() string {
	if len(h.Plays) == 0 {
		return "no move"
	}
	parts := make([]string, len(h.Plays))
	for i, p := range h.Plays {
		parts[i] = hintPoint(p.From) + "/" + hintPoint(p.To)
	}
	return strings.Join(parts, " ")
}

func hintPoint(n int) string {
	switch n {
	case barIndex:
		return "bar"
	case offIndex:
		return "off"
	}
	return strconv.Itoa(n)
}

// Hinter suggests plays. Implementations may call out to an analysis engine.
type Hinter interface {
	GetMoveHints(ctx context.Context, req HintRequest) ([]Hint, error)
	GetBestMove(ctx context.Context, req HintRequest) (Hint, error)
}

// NewHintRequest describes the active player's position right after their
// roll.
func NewHintRequest(g *Game) (HintRequest, error) {
	if g.State != GameRolled {
		return HintRequest{}, fmt.Errorf("%w: no fresh roll while %s", ErrGameState, g.State)
	}
	p := g.ActivePlayer()
	req := HintRequest{
		PositionID: g.Board.PositionID(p.Color),
		Dice:       p.Dice.CurrentRoll,
		Player:     p.Color,
		CubeValue:  g.Cube.Stake(),
	}
	if g.Cube.Owner != nil {
		owner := *g.Cube.Owner
		req.CubeOwner = &owner
	}
	return req, nil
}

// Sequences lists every complete play of dice for color c, one per distinct
// resulting position. Each play uses as many dice as the rules require.
func Sequences(b *Board, c Color, dice []int) [][]HintPlay {
	var out [][]HintPlay
	seen := map[layout]bool{}
	var walk func(l layout, dice []int, prefix []HintPlay)
	walk = func(l layout, dice []int, prefix []HintPlay) {
		allowed, most := allowedSteps(l, dice)
		if most == 0 {
			if len(prefix) > 0 && !seen[l] {
				seen[l] = true
				out = append(out, append([]HintPlay(nil), prefix...))
			}
			return
		}
		for _, die := range distinct(dice) {
			for _, s := range allowed[die] {
				walk(l.apply(s), without(dice, die), append(prefix, HintPlay{Die: die, From: s.from, To: s.to}))
			}
		}
	}
	walk(layoutFor(b, c), dice, nil)
	return out
}

// HintsFor answers req from the rules alone: every legal play, unranked.
func HintsFor(req HintRequest) ([]Hint, error) {
	b, err := BoardFromPositionID(req.PositionID, req.Player, Clockwise)
	if err != nil {
		return nil, err
	}
	d, err := NewDice(req.Player).WithRoll(req.Dice)
	if err != nil {
		return nil, err
	}
	seqs := Sequences(b, req.Player, d.Values())
	hints := make([]Hint, len(seqs))
	for i, s := range seqs {
		hints[i] = Hint{Plays: s}
	}
	return hints, nil
}

// RandomHinter picks uniformly among the legal plays. It stands in for an
// analysis engine in self-play and tests.
type RandomHinter struct {
	src Source
}

// NewRandomHinter returns a RandomHinter drawing from src.
func NewRandomHinter(src Source) *RandomHinter {
	return &RandomHinter{src: src}
}

func (h *RandomHinter) GetMoveHints(ctx context.Context, req HintRequest) ([]Hint, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return HintsFor(req)
}

func (h *RandomHinter) GetBestMove(ctx context.Context, req HintRequest) (Hint, error) {
	hints, err := h.GetMoveHints(ctx, req)
	if err != nil {
		return Hint{}, err
	}
	if len(hints) == 0 {
		return Hint{}, nil
	}
	return hints[h.src.Intn(len(hints))], nil
}

// MoveFrom plays die from point from, numbered from the active player's
// side with 25 for the bar.
func (g *Game) MoveFrom(die, from int) (*Game, error) {
	c := g.Active
	var origin string
	switch {
	case from == barIndex:
		origin = g.Board.bar(c).ID
	case from >= 1 && from <= NumPoints:
		origin = g.Board.point(g.Board.directions[c], from).ID
	default:
		return g, fmt.Errorf("%w: no point %d", ErrContainerNotFound, from)
	}
	return g.Move(die, origin)
}

// PlayHint plays every die of h in order.
func (g *Game) PlayHint(h Hint) (*Game, error) {
	ng := g
	for _, p := range h.Plays {
		var err error
		if ng, err = ng.MoveFrom(p.Die, p.From); err != nil {
			return g, fmt.Errorf("play %s: %w", h, err)
		}
	}
	return ng, nil
}
