package game

import "fmt"

// MaxCubeValue is the value at which the cube stops turning.
const MaxCubeValue = 64

// CubeState is the state of the doubling cube.
type CubeState int

const (
	CubeInitialized CubeState = iota
	CubeDoubled
	CubeMaxxed
)

func (s CubeState) String() string {
	switch s {
	case CubeInitialized:
		return "initialized"
	case CubeDoubled:
		return "doubled"
	case CubeMaxxed:
		return "maxxed"
	}
	return fmt.Sprintf("cube-state(%d)", int(s))
}

// Cube is the doubling cube. Value is zero until the first double. Owner is
// the only color allowed to double next; it is nil while the cube is
// centered and after it maxes out.
type Cube struct {
	ID    string
	State CubeState
	Value int
	Owner *Color
}

// NewCube returns a centered cube.
func NewCube() Cube {
	return Cube{ID: newID(), State: CubeInitialized}
}

// Stake is the current game multiplier: 1 before the first double.
func (c Cube) Stake() int {
	if c.Value == 0 {
		return 1
	}
	return c.Value
}

// CanDouble reports whether color p may double now.
func (c Cube) CanDouble(p Color) bool {
	return c.State != CubeMaxxed && (c.Owner == nil || *c.Owner == p)
}

// Double turns the cube for doubler. Ownership passes to the opponent, who
// alone may double next. Reaching 64 maxes the cube and clears ownership.
func (c Cube) Double(doubler Color) (Cube, error) {
	if c.State == CubeMaxxed {
		return c, ErrCubeMaxxed
	}
	if c.Owner != nil && *c.Owner != doubler {
		return c, fmt.Errorf("%w: %s cannot double, %s owns the cube", ErrCubeOwnership, doubler, *c.Owner)
	}
	value := 2
	if c.Value > 0 {
		value = c.Value * 2
	}
	if value >= MaxCubeValue {
		c.Value = MaxCubeValue
		c.State = CubeMaxxed
		c.Owner = nil
		return c, nil
	}
	owner := doubler.Opponent()
	c.Value = value
	c.State = CubeDoubled
	c.Owner = &owner
	return c, nil
}
