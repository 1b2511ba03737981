package positionid

import (
	"errors"
	"testing"
)

// Both sides: 2 on the 24-point, 5 on the 13, 3 on the 8, 5 on the 6.
func startingBoard() Board {
	var b Board
	for side := 0; side < 2; side++ {
		b[side][5] = 5
		b[side][7] = 3
		b[side][12] = 5
		b[side][23] = 2
	}
	return b
}

// Known position ID for the starting position from gnubg.
const startingID = "4HPwATDgc/ABMA"

func TestEncodeStartingPosition(t *testing.T) {
	if got := Encode(startingBoard()); got != startingID {
		t.Errorf("Encode = %s, want %s", got, startingID)
	}
}

func TestDecodeStartingPosition(t *testing.T) {
	b, err := Decode(startingID)
	if err != nil {
		t.Fatalf("Decode failed: %v", err)
	}
	if b != startingBoard() {
		t.Errorf("Decode mismatch\ngot:  %v\nwant: %v", b, startingBoard())
	}
}

func TestRoundTrip(t *testing.T) {
	var race Board
	race[Mover][0] = 4
	race[Mover][3] = 6
	race[Mover][BarIndex] = 1
	race[Opponent][21] = 2
	race[Opponent][10] = 9

	for name, b := range map[string]Board{"start": startingBoard(), "bar": race} {
		id := Encode(b)
		got, err := Decode(id)
		if err != nil {
			t.Fatalf("%s: Decode(%s) failed: %v", name, id, err)
		}
		if got != b {
			t.Errorf("%s: round trip mismatch\ngot:  %v\nwant: %v", name, got, b)
		}
		if again := Encode(got); again != id {
			t.Errorf("%s: Encode(Decode(%s)) = %s", name, id, again)
		}
	}
}

func TestDecodeRejectsMalformed(t *testing.T) {
	for _, id := range []string{"", "4HPwATDgc/AB", "4HPwATDgc/AB!A", "4HPwATDgc/ABMAxx"} {
		if _, err := Decode(id); !errors.Is(err, ErrInvalid) {
			t.Errorf("Decode(%q) error = %v, want ErrInvalid", id, err)
		}
	}
}

func TestCheck(t *testing.T) {
	if err := Check(startingBoard()); err != nil {
		t.Errorf("Check(start) = %v", err)
	}

	var tooMany Board
	for i := 0; i < 25; i++ {
		tooMany[Opponent][i] = 1
	}
	if Check(tooMany) == nil {
		t.Error("Check should reject more than 15 checkers")
	}

	var overlap Board
	overlap[Opponent][5] = 2
	overlap[Mover][18] = 2
	if Check(overlap) == nil {
		t.Error("Check should reject both sides on one point")
	}

	var closed Board
	for i := 0; i < 6; i++ {
		closed[Opponent][i] = 2
		closed[Mover][i] = 2
	}
	closed[Opponent][BarIndex] = 1
	closed[Mover][BarIndex] = 1
	if Check(closed) == nil {
		t.Error("Check should reject both sides stuck on the bar")
	}
}

func TestSwap(t *testing.T) {
	var b Board
	b[Mover][3] = 2
	b[Opponent][7] = 1
	s := Swap(b)
	if s[Opponent][3] != 2 || s[Mover][7] != 1 {
		t.Errorf("Swap = %v", s)
	}
	if Swap(s) != b {
		t.Error("Swap is not an involution")
	}
}
