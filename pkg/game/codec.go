package game

import (
	"fmt"

	"github.com/yourusername/bgrules/internal/positionid"
)

// perspective lays the board out from the side of mover for the codec.
func (b *Board) perspective(mover Color) positionid.Board {
	var pb positionid.Board
	sides := map[Color]int{mover: positionid.Mover, mover.Opponent(): positionid.Opponent}
	for c, side := range sides {
		d := b.directions[c]
		for _, id := range b.points {
			p := b.containers[id]
			if color, n := b.occupancy(p); n > 0 && color == c {
				pb[side][p.Position.For(d)-1] = uint8(n)
			}
		}
		pb[side][positionid.BarIndex] = uint8(b.BarCount(c))
	}
	return pb
}

// PositionID returns the gnubg position ID of b with mover on roll. The ID
// depends only on the logical position, not on which color travels which
// way.
func (b *Board) PositionID(mover Color) string {
	return positionid.Encode(b.perspective(mover))
}

// BoardFromPositionID builds a board from a position ID, placing the player
// on roll as moverColor travelling in moverDir. Checkers missing from the ID
// are borne off.
func BoardFromPositionID(id string, moverColor Color, moverDir Direction) (*Board, error) {
	pb, err := positionid.Decode(id)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrBoardImport, err)
	}
	records := make([]ImportRecord, 0, NumPoints+4)
	for _, side := range []int{positionid.Mover, positionid.Opponent} {
		c, d := moverColor, moverDir
		if side == positionid.Opponent {
			c, d = moverColor.Opponent(), moverDir.Opposite()
		}
		onBoard := 0
		for slot := 0; slot < NumPoints; slot++ {
			n := int(pb[side][slot])
			if n == 0 {
				continue
			}
			onBoard += n
			records = append(records, ImportRecord{
				Position: PointAt(CoordsFor(d, slot+1)),
				Checkers: CheckerSpec{Qty: n, Color: c},
			})
		}
		bar := int(pb[side][positionid.BarIndex])
		onBoard += bar
		records = append(records,
			ImportRecord{Position: BarPosition, Direction: &d, Checkers: CheckerSpec{Qty: bar, Color: c}},
			ImportRecord{Position: OffPosition, Checkers: CheckerSpec{Qty: NumCheckers - onBoard, Color: c}},
		)
	}
	b, err := NewBoard(records)
	if err != nil {
		return nil, err
	}
	if err := b.Validate(); err != nil {
		return nil, err
	}
	return b, nil
}
