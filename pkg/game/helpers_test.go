package game

import (
	"strconv"
	"testing"

	"github.com/stretchr/testify/require"
)

// scripted is a Source that replays die faces in order.
type scripted struct {
	vals []int
	i    int
}

func faces(fs ...int) *scripted {
	s := &scripted{}
	for _, f := range fs {
		s.vals = append(s.vals, f-1)
	}
	return s
}

func (s *scripted) Intn(n int) int {
	v := s.vals[s.i%len(s.vals)]
	s.i++
	return v % n
}

// side places one color's checkers by point number from its own direction.
// Checkers not placed on points or the bar are borne off.
type side struct {
	points map[int]int
	bar    int
}

func fixture(t *testing.T, whiteDir Direction, white, black side) *Board {
	t.Helper()
	var records []ImportRecord
	for _, c := range []Color{White, Black} {
		s, d := white, whiteDir
		if c == Black {
			s, d = black, whiteDir.Opposite()
		}
		total := s.bar
		for n, qty := range s.points {
			total += qty
			records = append(records, ImportRecord{
				Position: PointAt(CoordsFor(d, n)),
				Checkers: CheckerSpec{Qty: qty, Color: c},
			})
		}
		records = append(records,
			ImportRecord{Position: BarPosition, Direction: &d, Checkers: CheckerSpec{Qty: s.bar, Color: c}},
			ImportRecord{Position: OffPosition, Checkers: CheckerSpec{Qty: NumCheckers - total, Color: c}},
		)
	}
	b, err := NewBoard(records)
	require.NoError(t, err)
	require.NoError(t, b.Validate())
	return b
}

func rolled(t *testing.T, c Color, d Direction, roll [2]int) Player {
	t.Helper()
	p, err := NewPlayer(c, d).WithRoll(roll)
	require.NoError(t, err)
	return p
}

// counts reduces export records to a comparable multiset.
func counts(records []ImportRecord) map[string]int {
	out := map[string]int{}
	for _, r := range records {
		key := r.Checkers.Color.String()
		switch r.Position.Kind {
		case PositionBar:
			key += "/bar/" + r.Direction.String()
		case PositionOff:
			key += "/off"
		default:
			key += "/" + strconv.Itoa(r.Position.Coords.Clockwise)
		}
		out[key] += r.Checkers.Qty
	}
	return out
}
