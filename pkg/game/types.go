// Package game implements the rules of backgammon: board state, legal move
// generation, turn sequencing under the compulsory-play rules and the
// doubling cube.
//
// Every exported operation treats its receiver as immutable and returns a new
// value on success. A failed operation leaves all prior state untouched.
// Callers sharing a Game between goroutines must serialize mutating calls.
package game

import "fmt"

// NumCheckers is the number of checkers each color owns.
const NumCheckers = 15

// NumPoints is the number of points on the board.
const NumPoints = 24

// HomeBoardSize is the number of points in a home board.
const HomeBoardSize = 6

// Color identifies a player's checkers.
type Color int

const (
	White Color = iota
	Black
)

// Opponent returns the other color.
func (c Color) Opponent() Color {
	if c == White {
		return Black
	}
	return White
}

// Valid reports whether c is White or Black.
func (c Color) Valid() bool {
	return c == White || c == Black
}

func (c Color) String() string {
	switch c {
	case White:
		return "white"
	case Black:
		return "black"
	}
	return fmt.Sprintf("color(%d)", int(c))
}

// ParseColor parses "white" or "black".
func ParseColor(s string) (Color, error) {
	switch s {
	case "white":
		return White, nil
	case "black":
		return Black, nil
	}
	return 0, fmt.Errorf("unknown color %q", s)
}

// Direction is the way a player travels around the board. It selects which
// coordinate of a point measures that player's distance to off.
type Direction int

const (
	Clockwise Direction = iota
	Counterclockwise
)

// Opposite returns the other direction.
func (d Direction) Opposite() Direction {
	if d == Clockwise {
		return Counterclockwise
	}
	return Clockwise
}

// Valid reports whether d is Clockwise or Counterclockwise.
func (d Direction) Valid() bool {
	return d == Clockwise || d == Counterclockwise
}

func (d Direction) String() string {
	switch d {
	case Clockwise:
		return "clockwise"
	case Counterclockwise:
		return "counterclockwise"
	}
	return fmt.Sprintf("direction(%d)", int(d))
}

// ParseDirection parses "clockwise" or "counterclockwise".
func ParseDirection(s string) (Direction, error) {
	switch s {
	case "clockwise":
		return Clockwise, nil
	case "counterclockwise":
		return Counterclockwise, nil
	}
	return 0, fmt.Errorf("unknown direction %q", s)
}

// Coords locate a point from both directions. Clockwise+Counterclockwise is
// always 25.
type Coords struct {
	Clockwise        int `json:"clockwise"`
	Counterclockwise int `json:"counterclockwise"`
}

// CoordsFor returns the coordinates of the point numbered n from direction d.
func CoordsFor(d Direction, n int) Coords {
	if d == Clockwise {
		return Coords{Clockwise: n, Counterclockwise: 25 - n}
	}
	return Coords{Clockwise: 25 - n, Counterclockwise: n}
}

// For returns the point number as seen by a player moving in direction d.
func (c Coords) For(d Direction) int {
	if d == Clockwise {
		return c.Clockwise
	}
	return c.Counterclockwise
}

// Valid reports whether the coordinates name one of the 24 points.
func (c Coords) Valid() bool {
	return c.Clockwise >= 1 && c.Clockwise <= NumPoints && c.Clockwise+c.Counterclockwise == 25
}

func (c Color) MarshalText() ([]byte, error) {
	if !c.Valid() {
		return nil, fmt.Errorf("invalid color %d", int(c))
	}
	return []byte(c.String()), nil
}

func (c *Color) UnmarshalText(text []byte) error {
	v, err := ParseColor(string(text))
	if err != nil {
		return err
	}
	*c = v
	return nil
}

func (d Direction) MarshalText() ([]byte, error) {
	if !d.Valid() {
		return nil, fmt.Errorf("invalid direction %d", int(d))
	}
	return []byte(d.String()), nil
}

func (d *Direction) UnmarshalText(text []byte) error {
	v, err := ParseDirection(string(text))
	if err != nil {
		return err
	}
	*d = v
	return nil
}
