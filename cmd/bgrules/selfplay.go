package main

import (
	"context"
	"fmt"
	"io"

	"github.com/rs/zerolog"

	"github.com/yourusername/bgrules/pkg/game"
	"github.com/yourusername/bgrules/pkg/match"
)

// record is the outcome of one self-play game.
type record struct {
	Winner     game.Color
	Result     game.Result
	Points     int
	Turns      int
	Cube       int
	Transcript *match.Game
}

// selfPlay plays one game between two random players seeded from seed. The
// transcript goes to out when it is not nil.
func selfPlay(ctx context.Context, seed uint64, maxTurns int, log zerolog.Logger, out io.Writer) (record, error) {
	if out == nil {
		out = io.Discard
	}
	cfg := game.DefaultConfig()
	cfg.Seed = seed
	cfg.Logger = log
	g, err := game.NewGame(cfg)
	if err != nil {
		return record{}, err
	}
	hinter := game.NewRandomHinter(game.NewSource(seed ^ 0x9e3779b97f4a7c15))
	transcript := match.NewGame(1, 0, 0)

	if g.State == game.GameRollingForStart {
		if g, err = g.RollForStart(); err != nil {
			return record{}, err
		}
		fmt.Fprintf(out, "white rolls %d, black rolls %d\n",
			g.Players[game.White].Dice.Total, g.Players[game.Black].Dice.Total)
	}

	turns := 0
	for g.State != game.GameCompleted {
		if turns >= maxTurns {
			return record{}, fmt.Errorf("game %s: no result after %d turns", g.ID, maxTurns)
		}
		if err := ctx.Err(); err != nil {
			return record{}, err
		}

		if g, err = offerCube(g, transcript, out); err != nil {
			return record{}, err
		}
		if g.State == game.GameCompleted {
			break
		}

		if g, err = g.Roll(); err != nil {
			return record{}, err
		}
		p := g.ActivePlayer()
		transcript.AddRoll(p.Color, p.Dice.CurrentRoll)

		var h game.Hint
		if g.State == game.GameRolled {
			req, err := game.NewHintRequest(g)
			if err != nil {
				return record{}, err
			}
			if h, err = hinter.GetBestMove(ctx, req); err != nil {
				return record{}, err
			}
			if g, err = g.PlayHint(h); err != nil {
				return record{}, err
			}
		}
		transcript.AddMove(p.Color, h.Plays)
		fmt.Fprintf(out, "%-5s %d-%d: %s\n", p.Color, p.Dice.CurrentRoll[0], p.Dice.CurrentRoll[1], h)

		if g.State == game.GameMoved {
			if g, err = g.ConfirmTurn(); err != nil {
				return record{}, err
			}
		}
		turns++
	}

	transcript.Finish(g)
	return record{
		Winner:     *g.Winner,
		Result:     g.Result,
		Points:     g.Points,
		Turns:      turns,
		Cube:       g.Cube.Stake(),
		Transcript: transcript,
	}, nil
}

// offerCube doubles when the player on roll leads the race by a tenth of
// their own count; the opponent takes unless they trail by a fifth of theirs.
func offerCube(g *game.Game, transcript *match.Game, out io.Writer) (*game.Game, error) {
	p, o := g.ActivePlayer(), g.InactivePlayer()
	if !g.Cube.CanDouble(p.Color) || (o.PipCount-p.PipCount)*10 < p.PipCount {
		return g, nil
	}
	g, err := g.Double()
	if err != nil {
		return g, err
	}
	transcript.AddDouble(p.Color, g.Cube.Value)

	if (o.PipCount-p.PipCount)*5 < o.PipCount {
		fmt.Fprintf(out, "%-5s doubles to %d, %s takes\n", p.Color, g.Cube.Value, o.Color)
		transcript.AddTake(o.Color)
		return g.AcceptDouble()
	}
	fmt.Fprintf(out, "%-5s doubles to %d, %s drops\n", p.Color, g.Cube.Value, o.Color)
	transcript.AddPass(o.Color)
	return g.DeclineDouble()
}
