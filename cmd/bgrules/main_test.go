package main

import (
	"bytes"
	"context"
	"math"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"github.com/yourusername/bgrules/pkg/game"
)

func TestParseDice(t *testing.T) {
	for in, want := range map[string][2]int{"3,1": {3, 1}, "6-6": {6, 6}, " 2 , 5 ": {2, 5}} {
		got, err := parseDice(in)
		require.NoError(t, err, in)
		require.Equal(t, want, got, in)
	}
	for _, in := range []string{"", "3", "3,1,2"} {
		_, err := parseDice(in)
		require.Error(t, err, in)
	}
	for _, in := range []string{"7,1", "a-b", "0-2"} {
		_, err := parseDice(in)
		require.ErrorIs(t, err, game.ErrInvalidDie, in)
	}
}

func TestParsePositionID(t *testing.T) {
	require.Equal(t, "4HPwATDgc/ABMA", parsePositionID("4HPwATDgc/ABMA:cIkqAAAAAAAA"))
	require.Equal(t, "4HPwATDgc/ABMA", parsePositionID("4HPwATDgc/ABMA"))
}

func TestLoadConfigDefaults(t *testing.T) {
	t.Setenv("BGRULES_SEED", "42")
	cfg, err := loadConfig()
	require.NoError(t, err)
	require.Equal(t, uint64(42), cfg.Seed)
	require.Equal(t, 1000, cfg.MaxTurns)
	require.Equal(t, "info", cfg.LogLevel)

	t.Setenv("BGRULES_MAX_TURNS", "many")
	_, err = loadConfig()
	require.Error(t, err)
}

func TestSelfPlayIsReproducible(t *testing.T) {
	var a, b bytes.Buffer
	ra, err := selfPlay(context.Background(), 99, 1000, zerolog.Nop(), &a)
	require.NoError(t, err)
	rb, err := selfPlay(context.Background(), 99, 1000, zerolog.Nop(), &b)
	require.NoError(t, err)

	require.Equal(t, a.String(), b.String())
	require.Equal(t, ra.Winner, rb.Winner)
	require.Equal(t, ra.Turns, rb.Turns)
	require.Positive(t, ra.Points)
	require.NotNil(t, ra.Transcript.Winner)
	require.Equal(t, ra.Winner, *ra.Transcript.Winner)
}

func TestSelfPlayTurnLimit(t *testing.T) {
	_, err := selfPlay(context.Background(), 5, 1, zerolog.Nop(), nil)
	require.Error(t, err)
}

func TestSummarize(t *testing.T) {
	s := summarize([]record{
		{Winner: game.White, Result: game.ResultSingle, Points: 1, Turns: 40, Cube: 1},
		{Winner: game.Black, Result: game.ResultGammon, Points: 4, Turns: 60, Cube: 2},
	})
	require.Equal(t, 2, s.Games)
	require.InDelta(t, 50, s.TurnsMean, 1e-9)
	require.InDelta(t, math.Sqrt(200), s.TurnsStdDev, 1e-9)
	require.InDelta(t, 2.5, s.PointsMean, 1e-9)
	require.InDelta(t, 1.5, s.CubeMean, 1e-9)
	require.InDelta(t, 0.5, s.WhiteWinRate, 1e-9)
	require.Equal(t, 1, s.Results[game.ResultGammon])

	require.Zero(t, summarize(nil).Games)
}
