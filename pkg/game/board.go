package game

import (
	"encoding/json"
	"fmt"
	"slices"
)

// ContainerKind distinguishes points, bars and offs.
type ContainerKind int

const (
	KindPoint ContainerKind = iota
	KindBar
	KindOff
)

func (k ContainerKind) String() string {
	switch k {
	case KindPoint:
		return "point"
	case KindBar:
		return "bar"
	case KindOff:
		return "off"
	}
	return fmt.Sprintf("kind(%d)", int(k))
}

// Container holds checkers. Position is set for points, Direction for bars
// and Color for bars and offs.
type Container struct {
	ID        string
	Kind      ContainerKind
	Position  Coords
	Direction Direction
	Color     Color
	Checkers  []string // checker IDs, authoritative membership
}

func (c *Container) clone() *Container {
	cc := *c
	cc.Checkers = slices.Clone(c.Checkers)
	return &cc
}

// Board owns the 24 points, one bar per direction and one off per color.
type Board struct {
	points     [NumPoints]string // container IDs indexed by clockwise coordinate - 1
	bars       [2]string         // by Direction
	offs       [2]string         // by Color
	directions [2]Direction      // by Color
	containers map[string]*Container
	colors     map[string]Color  // checker ID -> color
	location   map[string]string // checker ID -> container ID, derived from containers
}

// PositionKind is the kind of place an import record describes.
type PositionKind int

const (
	PositionPoint PositionKind = iota
	PositionBar
	PositionOff
)

// Position names a container in an import record. It encodes to JSON as
// "bar", "off" or {"clockwise":n,"counterclockwise":m}.
type Position struct {
	Kind   PositionKind
	Coords Coords
}

// PointAt is the import position of the point with coordinates c.
func PointAt(c Coords) Position {
	return Position{Kind: PositionPoint, Coords: c}
}

var (
	BarPosition = Position{Kind: PositionBar}
	OffPosition = Position{Kind: PositionOff}
)

func (p Position) MarshalJSON() ([]byte, error) {
	switch p.Kind {
	case PositionBar:
		return json.Marshal("bar")
	case PositionOff:
		return json.Marshal("off")
	}
	return json.Marshal(p.Coords)
}

func (p *Position) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		switch s {
		case "bar":
			*p = BarPosition
		case "off":
			*p = OffPosition
		default:
			return fmt.Errorf("%w: unknown position %q", ErrBoardImport, s)
		}
		return nil
	}
	var c Coords
	if err := json.Unmarshal(data, &c); err != nil {
		return fmt.Errorf("%w: position: %v", ErrBoardImport, err)
	}
	*p = PointAt(c)
	return nil
}

// CheckerSpec is a quantity of checkers of one color.
type CheckerSpec struct {
	Qty   int   `json:"qty"`
	Color Color `json:"color"`
}

// ImportRecord describes the checkers in one container. Bar records must
// carry a Direction, which binds the checker color to that direction.
type ImportRecord struct {
	Position  Position    `json:"position"`
	Direction *Direction  `json:"direction,omitempty"`
	Checkers  CheckerSpec `json:"checkers"`
}

// NewBoard builds a board from an ordered list of import records. Both bars
// must be described (with zero checkers if empty) so that each color is bound
// to a direction. The 15-checkers-per-color total is not checked here; see
// Validate.
func NewBoard(records []ImportRecord) (*Board, error) {
	b := emptyBoard()

	var barSeen, offSeen [2]bool
	colorBound := map[Color]bool{}
	pointSeen := map[int]bool{}

	for i, r := range records {
		if r.Checkers.Qty < 0 || r.Checkers.Qty > NumCheckers {
			return nil, fmt.Errorf("%w: record %d: quantity %d out of range", ErrBoardImport, i, r.Checkers.Qty)
		}
		if !r.Checkers.Color.Valid() {
			return nil, fmt.Errorf("%w: record %d: invalid color %d", ErrBoardImport, i, int(r.Checkers.Color))
		}
		color := r.Checkers.Color

		var target *Container
		switch r.Position.Kind {
		case PositionPoint:
			c := r.Position.Coords
			if !c.Valid() {
				return nil, fmt.Errorf("%w: record %d: invalid coordinates %+v", ErrBoardImport, i, c)
			}
			if pointSeen[c.Clockwise] {
				return nil, fmt.Errorf("%w: record %d: point %d described twice", ErrBoardImport, i, c.Clockwise)
			}
			pointSeen[c.Clockwise] = true
			target = b.containers[b.points[c.Clockwise-1]]
		case PositionBar:
			if r.Direction == nil || !r.Direction.Valid() {
				return nil, fmt.Errorf("%w: record %d: bar needs a direction", ErrBoardImport, i)
			}
			d := *r.Direction
			if barSeen[d] {
				return nil, fmt.Errorf("%w: record %d: %s bar described twice", ErrBoardImport, i, d)
			}
			if colorBound[color] {
				return nil, fmt.Errorf("%w: record %d: %s already has a bar", ErrBoardImport, i, color)
			}
			barSeen[d] = true
			colorBound[color] = true
			b.directions[color] = d
			target = b.containers[b.bars[d]]
			target.Color = color
		case PositionOff:
			if offSeen[color] {
				return nil, fmt.Errorf("%w: record %d: %s off described twice", ErrBoardImport, i, color)
			}
			offSeen[color] = true
			target = b.containers[b.offs[color]]
		default:
			return nil, fmt.Errorf("%w: record %d: unknown position kind %d", ErrBoardImport, i, int(r.Position.Kind))
		}

		for _, ch := range NewCheckersForContainer(target.ID, color, r.Checkers.Qty) {
			target.Checkers = append(target.Checkers, ch.ID)
			b.colors[ch.ID] = color
			b.location[ch.ID] = target.ID
		}
	}

	if !barSeen[Clockwise] || !barSeen[Counterclockwise] {
		return nil, fmt.Errorf("%w: both bars must be described", ErrBoardImport)
	}
	return b, nil
}

func emptyBoard() *Board {
	b := &Board{
		containers: make(map[string]*Container, NumPoints+4),
		colors:     make(map[string]Color, 2*NumCheckers),
		location:   make(map[string]string, 2*NumCheckers),
	}
	for n := 1; n <= NumPoints; n++ {
		c := CoordsFor(Clockwise, n)
		id := pointID(c)
		b.points[n-1] = id
		b.containers[id] = &Container{ID: id, Kind: KindPoint, Position: c}
	}
	for _, d := range []Direction{Clockwise, Counterclockwise} {
		id := barID(d)
		b.bars[d] = id
		b.containers[id] = &Container{ID: id, Kind: KindBar, Direction: d}
	}
	for _, c := range []Color{White, Black} {
		id := offID(c)
		b.offs[c] = id
		b.containers[id] = &Container{ID: id, Kind: KindOff, Color: c}
	}
	return b
}

// StartingRecords returns the import records of the standard starting layout
// with White moving in whiteDir and Black in the opposite direction.
func StartingRecords(whiteDir Direction) []ImportRecord {
	layout := []struct{ point, qty int }{{24, 2}, {13, 5}, {8, 3}, {6, 5}}
	records := make([]ImportRecord, 0, 12)
	for _, c := range []Color{White, Black} {
		d := whiteDir
		if c == Black {
			d = whiteDir.Opposite()
		}
		for _, l := range layout {
			records = append(records, ImportRecord{
				Position: PointAt(CoordsFor(d, l.point)),
				Checkers: CheckerSpec{Qty: l.qty, Color: c},
			})
		}
		records = append(records, ImportRecord{
			Position:  BarPosition,
			Direction: &d,
			Checkers:  CheckerSpec{Qty: 0, Color: c},
		})
	}
	return records
}

// StartingBoard returns the standard starting layout.
func StartingBoard(whiteDir Direction) *Board {
	b, err := NewBoard(StartingRecords(whiteDir))
	if err != nil {
		panic(err) // the standard layout is always well formed
	}
	return b
}

// Export returns import records that rebuild an equivalent board: occupied
// points in clockwise order, then both bars, then both offs.
func (b *Board) Export() []ImportRecord {
	records := make([]ImportRecord, 0, NumPoints+4)
	for _, id := range b.points {
		p := b.containers[id]
		color, n := b.occupancy(p)
		if n == 0 {
			continue
		}
		records = append(records, ImportRecord{Position: PointAt(p.Position), Checkers: CheckerSpec{Qty: n, Color: color}})
	}
	for _, d := range []Direction{Clockwise, Counterclockwise} {
		bar := b.containers[b.bars[d]]
		dir := d
		records = append(records, ImportRecord{
			Position:  BarPosition,
			Direction: &dir,
			Checkers:  CheckerSpec{Qty: len(bar.Checkers), Color: bar.Color},
		})
	}
	for _, c := range []Color{White, Black} {
		records = append(records, ImportRecord{
			Position: OffPosition,
			Checkers: CheckerSpec{Qty: len(b.containers[b.offs[c]].Checkers), Color: c},
		})
	}
	return records
}

// Container returns a copy of the container with the given ID.
func (b *Board) Container(id string) (Container, error) {
	c, ok := b.containers[id]
	if !ok {
		return Container{}, fmt.Errorf("%w: %s", ErrContainerNotFound, id)
	}
	return *c.clone(), nil
}

// Point returns the point numbered n (1-24) as seen from direction d.
func (b *Board) Point(d Direction, n int) Container {
	return *b.point(d, n).clone()
}

// Points returns the 24 points ordered 1..24 by direction d's coordinate.
func (b *Board) Points(d Direction) []Container {
	points := make([]Container, NumPoints)
	for n := 1; n <= NumPoints; n++ {
		points[n-1] = *b.point(d, n).clone()
	}
	return points
}

// Bar returns the bar of direction d.
func (b *Board) Bar(d Direction) Container {
	return *b.containers[b.bars[d]].clone()
}

// Off returns the off container of color c.
func (b *Board) Off(c Color) Container {
	return *b.containers[b.offs[c]].clone()
}

// DirectionOf returns the direction color c travels.
func (b *Board) DirectionOf(c Color) Direction {
	return b.directions[c]
}

// Occupancy returns the color and number of checkers in the container. The
// color is meaningless when the count is zero.
func (b *Board) Occupancy(id string) (Color, int) {
	c, ok := b.containers[id]
	if !ok {
		return 0, 0
	}
	return b.occupancy(c)
}

// CheckerCount returns how many checkers of color c are on the board,
// counting points, bar and off.
func (b *Board) CheckerCount(c Color) int {
	n := 0
	for _, color := range b.colors {
		if color == c {
			n++
		}
	}
	return n
}

// OffCount returns how many checkers color c has borne off.
func (b *Board) OffCount(c Color) int {
	return len(b.containers[b.offs[c]].Checkers)
}

// BarCount returns how many checkers of color c wait on the bar.
func (b *Board) BarCount(c Color) int {
	return len(b.bar(c).Checkers)
}

// PipCount returns the total distance color c still has to travel to bear
// off every checker. A checker on the bar is 25 pips away.
func (b *Board) PipCount(c Color) int {
	d := b.directions[c]
	pips := 25 * b.BarCount(c)
	for _, id := range b.points {
		p := b.containers[id]
		if color, n := b.occupancy(p); n > 0 && color == c {
			pips += n * p.Position.For(d)
		}
	}
	return pips
}

// Validate checks that each color has exactly 15 checkers and that no point
// holds two colors.
func (b *Board) Validate() error {
	for _, c := range []Color{White, Black} {
		if n := b.CheckerCount(c); n != NumCheckers {
			return fmt.Errorf("%w: %s has %d", ErrCheckerCount, c, n)
		}
	}
	for _, id := range b.points {
		p := b.containers[id]
		if len(p.Checkers) == 0 {
			continue
		}
		first := b.colors[p.Checkers[0]]
		for _, cid := range p.Checkers[1:] {
			if b.colors[cid] != first {
				return fmt.Errorf("%w: point %d holds both colors", ErrBoardImport, p.Position.Clockwise)
			}
		}
	}
	return nil
}

func (b *Board) point(d Direction, n int) *Container {
	return b.containers[b.points[CoordsFor(d, n).Clockwise-1]]
}

func (b *Board) bar(c Color) *Container {
	return b.containers[b.bars[b.directions[c]]]
}

func (b *Board) off(c Color) *Container {
	return b.containers[b.offs[c]]
}

func (b *Board) occupancy(c *Container) (Color, int) {
	if len(c.Checkers) == 0 {
		return c.Color, 0
	}
	return b.colors[c.Checkers[0]], len(c.Checkers)
}

// containerOrder lists container IDs: points in clockwise order, bars, offs.
func (b *Board) containerOrder() []string {
	ids := make([]string, 0, NumPoints+4)
	ids = append(ids, b.points[:]...)
	ids = append(ids, b.bars[:]...)
	ids = append(ids, b.offs[:]...)
	return ids
}

func (b *Board) clone() *Board {
	nb := &Board{
		points:     b.points,
		bars:       b.bars,
		offs:       b.offs,
		directions: b.directions,
		containers: make(map[string]*Container, len(b.containers)),
		colors:     b.colors, // never mutated after import
		location:   make(map[string]string, len(b.location)),
	}
	for id, c := range b.containers {
		nb.containers[id] = c.clone()
	}
	for cid, id := range b.location {
		nb.location[cid] = id
	}
	return nb
}

// relocate moves one checker into container to, keeping membership and the
// derived location index in step.
func (b *Board) relocate(checker, to string) {
	from := b.containers[b.location[checker]]
	if i := slices.Index(from.Checkers, checker); i >= 0 {
		from.Checkers = slices.Delete(from.Checkers, i, i+1)
	}
	dest := b.containers[to]
	dest.Checkers = append(dest.Checkers, checker)
	b.location[checker] = to
}
