package game

import (
	crand "crypto/rand"
	"encoding/binary"
	"fmt"

	"github.com/rs/zerolog"
)

// GameState is the state of a whole game.
type GameState int

const (
	GameRollingForStart GameState = iota
	GameRolledForStart
	GameRolling
	GameRolled
	GameMoving
	GameMoved
	GameCompleted
)

func (s GameState) String() string {
	switch s {
	case GameRollingForStart:
		return "rolling-for-start"
	case GameRolledForStart:
		return "rolled-for-start"
	case GameRolling:
		return "rolling"
	case GameRolled:
		return "rolled"
	case GameMoving:
		return "moving"
	case GameMoved:
		return "moved"
	case GameCompleted:
		return "completed"
	}
	return fmt.Sprintf("game-state(%d)", int(s))
}

// Result tells how a completed game was won.
type Result int

const (
	ResultNone Result = iota
	ResultSingle
	ResultGammon
	ResultBackgammon
	ResultDropped // the loser declined a double
)

func (r Result) String() string {
	switch r {
	case ResultNone:
		return "none"
	case ResultSingle:
		return "single"
	case ResultGammon:
		return "gammon"
	case ResultBackgammon:
		return "backgammon"
	case ResultDropped:
		return "dropped"
	}
	return fmt.Sprintf("result(%d)", int(r))
}

// Multiplier is the number of stakes the result is worth.
func (r Result) Multiplier() int {
	switch r {
	case ResultGammon:
		return 2
	case ResultBackgammon:
		return 3
	case ResultSingle, ResultDropped:
		return 1
	}
	return 0
}

// Config controls NewGame. Unset fields are chosen at random from the
// game's Source.
type Config struct {
	WhiteDirection *Direction // nil = random, ignored when Board is set
	Board          *Board     // nil = standard starting layout
	FirstMover     *Color     // nil = roll for start
	Seed           uint64     // 0 = random seed, ignored when Source is set
	Source         Source
	Logger         zerolog.Logger
}

// DefaultConfig returns a Config with random seating, a start roll and no
// logging.
func DefaultConfig() Config {
	return Config{Logger: zerolog.Nop()}
}

// RandomSeed returns a seed read from crypto/rand.
func RandomSeed() (uint64, error) {
	var b [8]byte
	if _, err := crand.Read(b[:]); err != nil {
		return 0, fmt.Errorf("read random seed: %w", err)
	}
	return binary.LittleEndian.Uint64(b[:]), nil
}

// Game is one game from the start roll to the last checker borne off.
// Players is indexed by Color. Every method returns a new Game and leaves the
// receiver untouched; only the random Source is shared between them.
type Game struct {
	ID            string
	State         GameState
	Players       [2]Player
	Board         *Board
	Cube          Cube
	Active        Color
	Play          *Play
	PendingDouble bool
	Winner        *Color
	Result        Result
	Points        int

	src Source
	log zerolog.Logger
}

// NewGame seats both players, sets up the board and a centered cube. Seat
// directions follow the board.
func NewGame(cfg Config) (*Game, error) {
	src := cfg.Source
	if src == nil {
		seed := cfg.Seed
		if seed == 0 {
			var err error
			if seed, err = RandomSeed(); err != nil {
				return nil, err
			}
		}
		src = NewSource(seed)
	}

	board := cfg.Board
	if board == nil {
		var whiteDir Direction
		if cfg.WhiteDirection != nil {
			if !cfg.WhiteDirection.Valid() {
				return nil, fmt.Errorf("invalid direction %d", int(*cfg.WhiteDirection))
			}
			whiteDir = *cfg.WhiteDirection
		} else {
			// only an unconfigured seating consumes randomness
			whiteDir = Direction(src.Intn(2))
		}
		board = StartingBoard(whiteDir)
	}
	if err := board.Validate(); err != nil {
		return nil, err
	}
	whiteDir := board.DirectionOf(White)

	g := &Game{
		ID:    newID(),
		State: GameRollingForStart,
		Players: [2]Player{
			NewPlayer(White, whiteDir, WithPlayerState(PlayerRollingForStart)),
			NewPlayer(Black, whiteDir.Opposite(), WithPlayerState(PlayerRollingForStart)),
		},
		Board: board,
		Cube:  NewCube(),
		src:   src,
		log:   cfg.Logger,
	}
	for i := range g.Players {
		g.Players[i] = g.Players[i].WithPipCount(board)
		g.Players[i].Dice = g.Players[i].Dice.Reset(DiceRollingForStart)
	}

	if cfg.FirstMover != nil {
		if !cfg.FirstMover.Valid() {
			return nil, fmt.Errorf("invalid first mover %d", int(*cfg.FirstMover))
		}
		g.startTurn(*cfg.FirstMover)
	}

	g.log.Debug().
		Str("game", g.ID).
		Stringer("white", whiteDir).
		Stringer("state", g.State).
		Msg("game created")
	return g, nil
}

// ActivePlayer returns the player whose turn it is.
func (g *Game) ActivePlayer() Player {
	return g.Players[g.Active]
}

// InactivePlayer returns the player waiting for their turn.
func (g *Game) InactivePlayer() Player {
	return g.Players[g.Active.Opponent()]
}

func (g *Game) clone() *Game {
	ng := *g
	if g.Play != nil {
		p := g.Play.clone()
		ng.Play = &p
	}
	return &ng
}

func (g *Game) startTurn(c Color) {
	g.Active = c
	g.Players[c] = g.Players[c].withState(PlayerRolling, DiceRolling)
	g.Players[c.Opponent()] = g.Players[c.Opponent()].withState(PlayerInactive, DiceInactive)
	g.Play = nil
	g.State = GameRolling
}

// RollForStart throws one die for each player, re-throwing ties. The higher
// die moves first.
func (g *Game) RollForStart() (*Game, error) {
	if g.State != GameRollingForStart {
		return g, fmt.Errorf("%w: cannot roll for start while %s", ErrGameState, g.State)
	}
	ng := g.clone()
	for {
		for _, c := range []Color{White, Black} {
			p, err := ng.Players[c].RollForStart(ng.src)
			if err != nil {
				return g, err
			}
			ng.Players[c] = p
		}
		w, b := ng.Players[White].Dice.Total, ng.Players[Black].Dice.Total
		ng.log.Debug().Str("game", ng.ID).Int("white", w).Int("black", b).Msg("rolled for start")
		if w != b {
			first := White
			if b > w {
				first = Black
			}
			ng.startTurn(first)
			ng.State = GameRolledForStart
			return ng, nil
		}
		for _, c := range []Color{White, Black} {
			ng.Players[c] = ng.Players[c].withState(PlayerRollingForStart, DiceRollingForStart)
		}
	}
}

func (g *Game) canRoll() error {
	if g.State != GameRolling && g.State != GameRolledForStart {
		return fmt.Errorf("%w: cannot roll while %s", ErrGameState, g.State)
	}
	if g.PendingDouble {
		return ErrDoublePending
	}
	return nil
}

// Roll throws the active player's dice and computes their legal moves. A
// roll with no legal move leaves the game in GameMoved, ready to hand off.
func (g *Game) Roll() (*Game, error) {
	if err := g.canRoll(); err != nil {
		return g, err
	}
	p, err := g.ActivePlayer().Roll(g.src)
	if err != nil {
		return g, err
	}
	return g.rolled(p)
}

// RollWith records dice thrown outside the engine for the active player.
func (g *Game) RollWith(faces [2]int) (*Game, error) {
	if err := g.canRoll(); err != nil {
		return g, err
	}
	p, err := g.ActivePlayer().WithRoll(faces)
	if err != nil {
		return g, err
	}
	return g.rolled(p)
}

func (g *Game) rolled(p Player) (*Game, error) {
	play, err := NewPlay(g.Board, p)
	if err != nil {
		return g, err
	}
	ng := g.clone()
	ng.State = GameRolled
	if play.State == PlayMoved {
		p.State = PlayerMoved
		ng.State = GameMoved
	}
	play.Player = p
	ng.Players[p.Color] = p
	ng.Play = &play

	ng.log.Debug().
		Str("game", ng.ID).
		Stringer("player", p.Color).
		Ints("dice", p.Dice.CurrentRoll[:]).
		Stringer("state", ng.State).
		Msg("rolled")
	return ng, nil
}

// Move plays die from the container origin for the active player.
func (g *Game) Move(die int, origin string) (*Game, error) {
	if g.State != GameRolled && g.State != GameMoving {
		return g, fmt.Errorf("%w: cannot move while %s", ErrGameState, g.State)
	}
	play, board, err := g.Play.Move(g.Board, die, origin)
	if err != nil {
		return g, err
	}

	ng := g.clone()
	ng.Board = board
	for i := range ng.Players {
		ng.Players[i] = ng.Players[i].WithPipCount(board)
	}
	p := ng.Players[g.Active]
	p.State = PlayerMoving
	ng.State = GameMoving
	if play.State == PlayMoved {
		p.State = PlayerMoved
		ng.State = GameMoved
	}
	ng.Players[g.Active] = p
	play.Player = p
	ng.Play = &play

	ev := ng.log.Debug().
		Str("game", ng.ID).
		Stringer("player", g.Active).
		Int("die", die)
	if i := justExecuted(*g.Play, play); i >= 0 {
		ev = ev.Str("play", play.Moves[i].Notation(board, g.Active))
	}
	ev.Stringer("state", ng.State).Msg("moved")

	if board.OffCount(g.Active) == NumCheckers {
		ng.complete(g.Active, ng.winResult(g.Active), ng.Cube.Stake())
	}
	return ng, nil
}

// justExecuted returns the index of the move executed between before and
// after.
func justExecuted(before, after Play) int {
	for i, m := range after.Moves {
		if m.State == MoveExecuted && before.Moves[i].State != MoveExecuted {
			return i
		}
	}
	return -1
}

// LegalMoves returns the plays currently open to the active player.
func (g *Game) LegalMoves() []PossibleMove {
	if g.Play == nil {
		return nil
	}
	return g.Play.PossibleMoves()
}

// ConfirmTurn hands the dice to the other player once the active player has
// played everything they must.
func (g *Game) ConfirmTurn() (*Game, error) {
	if g.State != GameMoved {
		return g, fmt.Errorf("%w: cannot confirm turn while %s", ErrGameState, g.State)
	}
	ng := g.clone()
	ng.startTurn(g.Active.Opponent())
	ng.log.Debug().Str("game", ng.ID).Stringer("player", ng.Active).Msg("turn passed")
	return ng, nil
}

// Double offers the cube to the opponent before the active player rolls.
func (g *Game) Double() (*Game, error) {
	if g.State != GameRolling && g.State != GameRolledForStart {
		return g, fmt.Errorf("%w: cannot double while %s", ErrGameState, g.State)
	}
	if g.PendingDouble {
		return g, ErrDoublePending
	}
	cube, err := g.Cube.Double(g.Active)
	if err != nil {
		return g, err
	}
	ng := g.clone()
	ng.Cube = cube
	ng.PendingDouble = true
	ng.log.Debug().Str("game", ng.ID).Stringer("player", g.Active).Int("cube", cube.Value).Msg("doubled")
	return ng, nil
}

// AcceptDouble takes the offered cube; the doubler then rolls.
func (g *Game) AcceptDouble() (*Game, error) {
	if !g.PendingDouble {
		return g, ErrNoDouble
	}
	ng := g.clone()
	ng.PendingDouble = false
	ng.log.Debug().Str("game", ng.ID).Int("cube", ng.Cube.Value).Msg("double accepted")
	return ng, nil
}

// DeclineDouble concedes the game to the doubler at the stake before the
// double.
func (g *Game) DeclineDouble() (*Game, error) {
	if !g.PendingDouble {
		return g, ErrNoDouble
	}
	ng := g.clone()
	ng.PendingDouble = false
	ng.complete(g.Active, ResultDropped, ng.Cube.Value/2)
	return ng, nil
}

// winResult grades a win by bear-off: a gammon if the loser has borne off
// nothing, a backgammon if the loser also still has a checker on the bar or
// in the winner's home board.
func (g *Game) winResult(winner Color) Result {
	loser := winner.Opponent()
	if g.Board.OffCount(loser) > 0 {
		return ResultSingle
	}
	if g.Board.BarCount(loser) > 0 {
		return ResultBackgammon
	}
	d := g.Board.DirectionOf(loser)
	for n := NumPoints - HomeBoardSize + 1; n <= NumPoints; n++ {
		if color, k := g.Board.occupancy(g.Board.point(d, n)); k > 0 && color == loser {
			return ResultBackgammon
		}
	}
	return ResultGammon
}

func (g *Game) complete(winner Color, r Result, stake int) {
	g.State = GameCompleted
	g.Winner = &winner
	g.Result = r
	g.Points = r.Multiplier() * stake
	if g.Play != nil && g.Play.State != PlayMoved {
		g.Play.State = PlayMoved
	}
	g.log.Info().
		Str("game", g.ID).
		Stringer("winner", winner).
		Stringer("result", r).
		Int("points", g.Points).
		Msg("game completed")
}
