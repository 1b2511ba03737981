// Package match records games played with the rules engine and writes them
// as Jellyfish MAT transcripts. Player 1 is always White, Player 2 Black.
package match

import (
	"github.com/yourusername/bgrules/pkg/game"
)

// Match is a series of games between two named players.
type Match struct {
	Player1     string // White
	Player2     string // Black
	MatchLength int    // 0 = money session
	Date        string // YYYY-MM-DD
	Event       string
	Games       []*Game
}

// Game is the transcript of one game.
type Game struct {
	Number  int // 1-indexed
	Score1  int // Player 1 score at the start of the game
	Score2  int
	Actions []Action
	Winner  *game.Color // nil while unfinished
	Points  int
	Result  game.Result
}

// ActionType is the kind of a transcript entry.
type ActionType int

const (
	ActionRoll ActionType = iota
	ActionMove
	ActionDouble
	ActionTake
	ActionPass
)

// Action is one transcript entry. Plays are numbered from the side of Player.
type Action struct {
	Type   ActionType
	Player game.Color
	Dice   [2]int          // ActionRoll
	Plays  []game.HintPlay // ActionMove; empty when the roll could not be played
	Value  int             // ActionDouble
}

// NewMatch creates an empty match.
func NewMatch(player1, player2 string, matchLength int) *Match {
	return &Match{
		Player1:     player1,
		Player2:     player2,
		MatchLength: matchLength,
		Games:       make([]*Game, 0),
	}
}

// NewGame starts the transcript of a game.
func NewGame(number, score1, score2 int) *Game {
	return &Game{
		Number:  number,
		Score1:  score1,
		Score2:  score2,
		Actions: make([]Action, 0),
	}
}

// AddRoll records a roll.
func (g *Game) AddRoll(player game.Color, dice [2]int) {
	g.Actions = append(g.Actions, Action{Type: ActionRoll, Player: player, Dice: dice})
}

// AddMove records the plays of a turn.
func (g *Game) AddMove(player game.Color, plays []game.HintPlay) {
	g.Actions = append(g.Actions, Action{Type: ActionMove, Player: player, Plays: plays})
}

// AddDouble records a double to value.
func (g *Game) AddDouble(player game.Color, value int) {
	g.Actions = append(g.Actions, Action{Type: ActionDouble, Player: player, Value: value})
}

// AddTake records a take.
func (g *Game) AddTake(player game.Color) {
	g.Actions = append(g.Actions, Action{Type: ActionTake, Player: player})
}

// AddPass records a drop.
func (g *Game) AddPass(player game.Color) {
	g.Actions = append(g.Actions, Action{Type: ActionPass, Player: player})
}

// Finish copies the outcome of a completed game.
func (g *Game) Finish(result *game.Game) {
	if result.Winner == nil {
		return
	}
	w := *result.Winner
	g.Winner = &w
	g.Points = result.Points
	g.Result = result.Result
}
