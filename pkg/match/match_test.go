package match

import (
	"bytes"
	"strings"
	"testing"

	"github.com/yourusername/bgrules/pkg/game"
)

func TestNewMatch(t *testing.T) {
	m := NewMatch("Alice", "Bob", 7)
	if m.Player1 != "Alice" {
		t.Errorf("Player1 = %q, want %q", m.Player1, "Alice")
	}
	if m.Player2 != "Bob" {
		t.Errorf("Player2 = %q, want %q", m.Player2, "Bob")
	}
	if m.MatchLength != 7 {
		t.Errorf("MatchLength = %d, want %d", m.MatchLength, 7)
	}
}

func TestGameActions(t *testing.T) {
	g := NewGame(1, 0, 0)

	g.AddRoll(game.White, [2]int{3, 1})
	if len(g.Actions) != 1 || g.Actions[0].Type != ActionRoll {
		t.Fatal("AddRoll failed")
	}
	if g.Actions[0].Dice != [2]int{3, 1} {
		t.Errorf("Dice = %v, want [3 1]", g.Actions[0].Dice)
	}

	g.AddMove(game.White, []game.HintPlay{{Die: 3, From: 8, To: 5}, {Die: 1, From: 6, To: 5}})
	if len(g.Actions) != 2 || g.Actions[1].Type != ActionMove {
		t.Fatal("AddMove failed")
	}

	g.AddDouble(game.Black, 2)
	g.AddTake(game.White)
	g.AddPass(game.White)
	want := []ActionType{ActionRoll, ActionMove, ActionDouble, ActionTake, ActionPass}
	for i, a := range g.Actions {
		if a.Type != want[i] {
			t.Errorf("Actions[%d] = %d, want %d", i, a.Type, want[i])
		}
	}
}

func TestExportMAT(t *testing.T) {
	m := NewMatch("white", "black", 0)
	g := NewGame(1, 0, 0)
	g.AddRoll(game.White, [2]int{3, 1})
	g.AddMove(game.White, []game.HintPlay{{Die: 3, From: 8, To: 5}, {Die: 1, From: 6, To: 5}})
	g.AddRoll(game.Black, [2]int{6, 4})
	g.AddMove(game.Black, []game.HintPlay{{Die: 6, From: 25, To: 19}, {Die: 4, From: 4, To: 0}})
	g.AddDouble(game.White, 2)
	g.AddPass(game.Black)
	w := game.White
	g.Winner = &w
	g.Points = 1
	m.Games = append(m.Games, g)

	var buf bytes.Buffer
	if err := ExportMAT(&buf, m); err != nil {
		t.Fatalf("ExportMAT error: %v", err)
	}
	out := buf.String()
	for _, s := range []string{
		"Unlimited match",
		" Game 1",
		"  1) 31: 8/5 6/5",
		"64: bar/19 4/off\n",
		"  2)  Doubles => 2",
		" Drops\n",
		"Wins 1 point\n",
	} {
		if !strings.Contains(out, s) {
			t.Errorf("output missing %q:\n%s", s, out)
		}
	}
}

func TestExportMATBlackFirst(t *testing.T) {
	m := NewMatch("white", "black", 5)
	g := NewGame(1, 0, 0)
	g.AddRoll(game.Black, [2]int{5, 2})
	g.AddMove(game.Black, []game.HintPlay{{Die: 5, From: 13, To: 8}, {Die: 2, From: 13, To: 11}})
	m.Games = append(m.Games, g)

	var buf bytes.Buffer
	if err := ExportMAT(&buf, m); err != nil {
		t.Fatalf("ExportMAT error: %v", err)
	}
	want := "  1) " + strings.Repeat(" ", columnWidth) + "52: 13/8 13/11\n"
	if !strings.Contains(buf.String(), want) {
		t.Errorf("output missing %q:\n%s", want, buf.String())
	}
	if !strings.Contains(buf.String(), " 5 point match") {
		t.Error("output missing match length")
	}
}

func TestFinish(t *testing.T) {
	cfg := game.DefaultConfig()
	cfg.Seed = 1
	white := game.White
	cfg.FirstMover = &white
	gm, err := game.NewGame(cfg)
	if err != nil {
		t.Fatalf("NewGame: %v", err)
	}
	if gm, err = gm.Double(); err != nil {
		t.Fatalf("Double: %v", err)
	}
	if gm, err = gm.DeclineDouble(); err != nil {
		t.Fatalf("DeclineDouble: %v", err)
	}

	g := NewGame(1, 0, 0)
	g.Finish(gm)
	if g.Winner == nil || *g.Winner != game.White {
		t.Fatalf("Winner = %v, want white", g.Winner)
	}
	if g.Points != 1 || g.Result != game.ResultDropped {
		t.Errorf("Points = %d, Result = %s", g.Points, g.Result)
	}
}
