// bgrules - backgammon rules engine driver
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/rs/zerolog"
	"gonum.org/v1/gonum/stat"

	"github.com/yourusername/bgrules/pkg/game"
	"github.com/yourusername/bgrules/pkg/match"
)

// config is read from the environment; flags override it per command.
type config struct {
	Seed     uint64 `env:"BGRULES_SEED"`
	Games    int    `env:"BGRULES_GAMES" envDefault:"100"`
	LogLevel string `env:"BGRULES_LOG_LEVEL" envDefault:"info"`
	MaxTurns int    `env:"BGRULES_MAX_TURNS" envDefault:"1000"`
}

func loadConfig() (config, error) {
	var cfg config
	if err := env.Parse(&cfg); err != nil {
		return cfg, fmt.Errorf("parse env: %w", err)
	}
	return cfg, nil
}

func newLogger(level string) (zerolog.Logger, error) {
	lvl, err := zerolog.ParseLevel(level)
	if err != nil {
		return zerolog.Nop(), fmt.Errorf("log level: %w", err)
	}
	return zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen}).
		Level(lvl).
		With().Timestamp().Logger(), nil
}

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	cfg, err := loadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	command := os.Args[1]
	args := os.Args[2:]

	switch command {
	case "moves":
		cmdMoves(args)
	case "play":
		cmdPlay(cfg, args)
	case "sim":
		cmdSim(cfg, args)
	case "help", "-h", "--help":
		printUsage()
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n", command)
		printUsage()
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Println(`bgrules - Backgammon Rules Engine

Usage: bgrules <command> [options]

Commands:
  moves     List the legal plays for a position and roll
  play      Play one seeded self-play game and print the transcript
  sim       Play many seeded self-play games and summarize them

Use "bgrules <command> -h" for command-specific help.

Environment:
  BGRULES_SEED        Random seed (0 = random)
  BGRULES_GAMES       Games played by sim (default 100)
  BGRULES_LOG_LEVEL   trace, debug, info, warn, error (default info)
  BGRULES_MAX_TURNS   Turn limit per game (default 1000)

Position ID Format:
  The position is specified using gnubg's position ID format, seen from
  the player on roll.
  Example: "4HPwATDgc/ABMA:cIkqAAAAAAAA" (position:match)
  Only the position part (before :) is required.`)
}

func fail(err error) {
	fmt.Fprintf(os.Stderr, "Error: %v\n", err)
	os.Exit(1)
}

func parsePositionID(posStr string) string {
	// gnubg writes "positionID:matchID"; only the position is used
	if idx := strings.Index(posStr, ":"); idx >= 0 {
		posStr = posStr[:idx]
	}
	return posStr
}

// parseDice reads "3,1" or "3-1". Face values are checked by the engine.
func parseDice(diceStr string) ([2]int, error) {
	parts := strings.FieldsFunc(diceStr, func(r rune) bool { return r == ',' || r == '-' })
	if len(parts) != 2 {
		return [2]int{}, fmt.Errorf("dice %q: want two faces like 3,1 or 3-1", diceStr)
	}
	var roll [2]int
	for i, part := range parts {
		n, err := strconv.Atoi(strings.TrimSpace(part))
		if err != nil {
			return [2]int{}, fmt.Errorf("dice %q: %w", diceStr, game.ErrInvalidDie)
		}
		roll[i] = n
	}
	if _, err := game.NewDice(game.White).WithRoll(roll); err != nil {
		return [2]int{}, fmt.Errorf("dice %q: %w", diceStr, err)
	}
	return roll, nil
}

func cmdMoves(args []string) {
	fs := flag.NewFlagSet("moves", flag.ExitOnError)
	posFlag := fs.String("position", "", "Position ID (gnubg format)")
	posShort := fs.String("p", "", "Position ID (short form)")
	diceFlag := fs.String("dice", "", "Dice roll (e.g., 3,1 or 3-1)")
	diceShort := fs.String("d", "", "Dice roll (short form)")
	fs.Parse(args)

	pos := *posFlag
	if pos == "" {
		pos = *posShort
	}
	dice := *diceFlag
	if dice == "" {
		dice = *diceShort
	}
	if pos == "" || dice == "" {
		fmt.Fprintln(os.Stderr, "Error: position and dice required")
		fmt.Fprintln(os.Stderr, "Usage: bgrules moves -position <positionID> -dice <roll>")
		os.Exit(1)
	}

	roll, err := parseDice(dice)
	if err != nil {
		fail(err)
	}

	req := game.HintRequest{
		PositionID: parsePositionID(pos),
		Dice:       roll,
		Player:     game.White,
		CubeValue:  1,
	}
	hints, err := game.HintsFor(req)
	if err != nil {
		fail(err)
	}
	if len(hints) == 0 {
		fmt.Println("No legal moves (forced to pass)")
		return
	}

	fmt.Printf("Legal plays for roll %d-%d:\n", roll[0], roll[1])
	for i, h := range hints {
		fmt.Printf("  %2d. %s\n", i+1, h)
	}
}

func cmdPlay(cfg config, args []string) {
	fs := flag.NewFlagSet("play", flag.ExitOnError)
	seed := fs.Uint64("seed", cfg.Seed, "Random seed (0 = random)")
	maxTurns := fs.Int("max-turns", cfg.MaxTurns, "Give up after N turns")
	matFile := fs.String("mat", "", "Also write the game as a MAT transcript to this file")
	fs.Parse(args)

	log, err := newLogger(cfg.LogLevel)
	if err != nil {
		fail(err)
	}
	if *seed == 0 {
		if *seed, err = game.RandomSeed(); err != nil {
			fail(err)
		}
	}
	log.Info().Uint64("seed", *seed).Msg("starting game")

	rec, err := selfPlay(context.Background(), *seed, *maxTurns, log, os.Stdout)
	if err != nil {
		fail(err)
	}
	fmt.Printf("%s wins %d point(s) (%s) after %d turns\n", rec.Winner, rec.Points, rec.Result, rec.Turns)

	if *matFile != "" {
		f, err := os.Create(*matFile)
		if err != nil {
			fail(err)
		}
		defer f.Close()
		m := match.NewMatch("white", "black", 0)
		m.Date = time.Now().Format("2006-01-02")
		m.Event = fmt.Sprintf("bgrules self-play, seed %d", *seed)
		m.Games = append(m.Games, rec.Transcript)
		if err := match.ExportMAT(f, m); err != nil {
			fail(err)
		}
	}
}

func cmdSim(cfg config, args []string) {
	fs := flag.NewFlagSet("sim", flag.ExitOnError)
	games := fs.Int("games", cfg.Games, "Number of games to play")
	seed := fs.Uint64("seed", cfg.Seed, "Base random seed (0 = random)")
	maxTurns := fs.Int("max-turns", cfg.MaxTurns, "Give up on a game after N turns")
	fs.Parse(args)

	log, err := newLogger(cfg.LogLevel)
	if err != nil {
		fail(err)
	}
	if *seed == 0 {
		if *seed, err = game.RandomSeed(); err != nil {
			fail(err)
		}
	}
	log.Info().Int("games", *games).Uint64("seed", *seed).Msg("starting simulation")

	start := time.Now()
	recs := make([]record, 0, *games)
	for i := 0; i < *games; i++ {
		rec, err := selfPlay(context.Background(), *seed+uint64(i), *maxTurns, log, nil)
		if err != nil {
			log.Warn().Err(err).Int("game", i+1).Msg("game abandoned")
			continue
		}
		recs = append(recs, rec)
		log.Debug().Int("game", i+1).Stringer("winner", rec.Winner).Int("turns", rec.Turns).Msg("completed game")
	}
	elapsed := time.Since(start)

	s := summarize(recs)
	fmt.Printf("Simulation (%d games, %.1fs):\n", s.Games, elapsed.Seconds())
	fmt.Printf("  Turns:   %.1f ± %.1f\n", s.TurnsMean, s.TurnsStdDev)
	fmt.Printf("  Points:  %.2f ± %.2f\n", s.PointsMean, s.PointsStdDev)
	fmt.Printf("  Cube:    %.2f average final value\n", s.CubeMean)
	fmt.Printf("  White:   %.1f%% wins\n", s.WhiteWinRate*100)
	for _, r := range []game.Result{game.ResultSingle, game.ResultGammon, game.ResultBackgammon, game.ResultDropped} {
		fmt.Printf("  %-11s %d\n", r.String()+":", s.Results[r])
	}
}

// summary aggregates simulated games.
type summary struct {
	Games        int
	TurnsMean    float64
	TurnsStdDev  float64
	PointsMean   float64
	PointsStdDev float64
	CubeMean     float64
	WhiteWinRate float64
	Results      map[game.Result]int
}

func summarize(recs []record) summary {
	s := summary{Games: len(recs), Results: map[game.Result]int{}}
	if len(recs) == 0 {
		return s
	}
	turns := make([]float64, len(recs))
	points := make([]float64, len(recs))
	cubes := make([]float64, len(recs))
	wins := make([]float64, len(recs))
	for i, r := range recs {
		turns[i] = float64(r.Turns)
		points[i] = float64(r.Points)
		cubes[i] = float64(r.Cube)
		if r.Winner == game.White {
			wins[i] = 1
		}
		s.Results[r.Result]++
	}
	s.TurnsMean, s.TurnsStdDev = stat.MeanStdDev(turns, nil)
	s.PointsMean, s.PointsStdDev = stat.MeanStdDev(points, nil)
	s.CubeMean = stat.Mean(cubes, nil)
	s.WhiteWinRate = stat.Mean(wins, nil)
	return s
}
