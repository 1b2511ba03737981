package game

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestStartingBoard(t *testing.T) {
	for _, d := range []Direction{Clockwise, Counterclockwise} {
		t.Run(d.String(), func(t *testing.T) {
			b := StartingBoard(d)
			require.NoError(t, b.Validate())
			require.Equal(t, d, b.DirectionOf(White))
			require.Equal(t, d.Opposite(), b.DirectionOf(Black))
			for _, c := range []Color{White, Black} {
				require.Equal(t, NumCheckers, b.CheckerCount(c))
				require.Equal(t, 167, b.PipCount(c))
				require.Zero(t, b.BarCount(c))
				require.Zero(t, b.OffCount(c))
			}
			color, n := b.Occupancy(b.Point(d, 24).ID)
			require.Equal(t, White, color)
			require.Equal(t, 2, n)
			color, n = b.Occupancy(b.Point(d, 1).ID)
			require.Equal(t, Black, color)
			require.Equal(t, 2, n)
		})
	}
}

func TestPointCoordinates(t *testing.T) {
	b := StartingBoard(Clockwise)
	for _, d := range []Direction{Clockwise, Counterclockwise} {
		points := b.Points(d)
		require.Len(t, points, NumPoints)
		for i, p := range points {
			require.Equal(t, 25, p.Position.Clockwise+p.Position.Counterclockwise)
			require.Equal(t, i+1, p.Position.For(d))
		}
	}
}

func TestNewBoardRejectsMalformedRecords(t *testing.T) {
	cw, ccw := Clockwise, Counterclockwise
	bars := []ImportRecord{
		{Position: BarPosition, Direction: &cw, Checkers: CheckerSpec{Color: White}},
		{Position: BarPosition, Direction: &ccw, Checkers: CheckerSpec{Color: Black}},
	}
	with := func(rs ...ImportRecord) []ImportRecord {
		return append(append([]ImportRecord{}, rs...), bars...)
	}
	tests := map[string][]ImportRecord{
		"missing bars": {
			{Position: PointAt(CoordsFor(cw, 6)), Checkers: CheckerSpec{Qty: 5, Color: White}},
		},
		"bar without direction": with(
			ImportRecord{Position: BarPosition, Checkers: CheckerSpec{Color: White}},
		),
		"negative quantity": with(
			ImportRecord{Position: PointAt(CoordsFor(cw, 6)), Checkers: CheckerSpec{Qty: -1, Color: White}},
		),
		"oversized quantity": with(
			ImportRecord{Position: PointAt(CoordsFor(cw, 6)), Checkers: CheckerSpec{Qty: 200, Color: White}},
		),
		"invalid color": with(
			ImportRecord{Position: PointAt(CoordsFor(cw, 6)), Checkers: CheckerSpec{Qty: 1, Color: Color(7)}},
		),
		"bad coordinates": with(
			ImportRecord{Position: PointAt(Coords{Clockwise: 3, Counterclockwise: 3}), Checkers: CheckerSpec{Qty: 1, Color: White}},
		),
		"point twice": with(
			ImportRecord{Position: PointAt(CoordsFor(cw, 6)), Checkers: CheckerSpec{Qty: 1, Color: White}},
			ImportRecord{Position: PointAt(CoordsFor(ccw, 19)), Checkers: CheckerSpec{Qty: 1, Color: White}},
		),
		"off twice": with(
			ImportRecord{Position: OffPosition, Checkers: CheckerSpec{Qty: 1, Color: White}},
			ImportRecord{Position: OffPosition, Checkers: CheckerSpec{Qty: 1, Color: White}},
		),
		"color on both bars": {
			{Position: BarPosition, Direction: &cw, Checkers: CheckerSpec{Color: White}},
			{Position: BarPosition, Direction: &ccw, Checkers: CheckerSpec{Color: White}},
		},
	}
	for name, records := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := NewBoard(records)
			require.ErrorIs(t, err, ErrBoardImport)
		})
	}
}

func TestNewBoardLeavesCountToValidate(t *testing.T) {
	cw, ccw := Clockwise, Counterclockwise
	b, err := NewBoard([]ImportRecord{
		{Position: PointAt(CoordsFor(cw, 6)), Checkers: CheckerSpec{Qty: 3, Color: White}},
		{Position: BarPosition, Direction: &cw, Checkers: CheckerSpec{Color: White}},
		{Position: BarPosition, Direction: &ccw, Checkers: CheckerSpec{Color: Black}},
	})
	require.NoError(t, err)
	require.Equal(t, 3, b.CheckerCount(White))
	require.ErrorIs(t, b.Validate(), ErrCheckerCount)
}

func TestExportRoundTrip(t *testing.T) {
	boards := map[string]*Board{
		"start":          StartingBoard(Clockwise),
		"start reversed": StartingBoard(Counterclockwise),
		"bar": fixture(t, Counterclockwise,
			side{points: map[int]int{6: 4, 8: 3, 13: 5}, bar: 2},
			side{points: map[int]int{1: 1, 5: 6}, bar: 1},
		),
	}
	for name, b := range boards {
		t.Run(name, func(t *testing.T) {
			exported := b.Export()
			nb, err := NewBoard(exported)
			require.NoError(t, err)
			require.NoError(t, nb.Validate())
			require.Equal(t, counts(exported), counts(nb.Export()))
			for _, c := range []Color{White, Black} {
				require.Equal(t, b.PipCount(c), nb.PipCount(c))
				require.Equal(t, b.BarCount(c), nb.BarCount(c))
				require.Equal(t, b.OffCount(c), nb.OffCount(c))
				require.Equal(t, b.DirectionOf(c), nb.DirectionOf(c))
			}
		})
	}
}

func TestImportRecordsJSON(t *testing.T) {
	b := fixture(t, Clockwise,
		side{points: map[int]int{3: 4, 13: 5}, bar: 1},
		side{points: map[int]int{6: 5, 8: 3}},
	)
	data, err := json.Marshal(b.Export())
	require.NoError(t, err)
	require.Contains(t, string(data), `"position":"bar","direction":"clockwise"`)
	require.Contains(t, string(data), `"position":"off"`)
	require.Contains(t, string(data), `"color":"white"`)

	var records []ImportRecord
	require.NoError(t, json.Unmarshal(data, &records))
	nb, err := NewBoard(records)
	require.NoError(t, err)
	require.Equal(t, counts(b.Export()), counts(nb.Export()))

	var p Position
	require.ErrorIs(t, json.Unmarshal([]byte(`"nowhere"`), &p), ErrBoardImport)
}

func TestCheckerLookup(t *testing.T) {
	b := StartingBoard(Clockwise)
	checkers := b.Checkers()
	require.Len(t, checkers, 2*NumCheckers)

	for _, ch := range checkers {
		got, err := b.Checker(ch.ID)
		require.NoError(t, err)
		require.Equal(t, ch, got)
		cont, err := b.Container(got.ContainerID)
		require.NoError(t, err)
		require.Contains(t, cont.Checkers, ch.ID)
	}

	_, err := b.Checker("missing")
	require.ErrorIs(t, err, ErrCheckerNotFound)
	_, err = b.Container("missing")
	require.ErrorIs(t, err, ErrContainerNotFound)
}

func TestImportIsDeterministic(t *testing.T) {
	a := StartingBoard(Clockwise)
	b := StartingBoard(Clockwise)
	require.Equal(t, a.Checkers(), b.Checkers())
	require.Equal(t, a.Bar(Clockwise).ID, b.Bar(Clockwise).ID)
}

func TestNewCheckersForContainer(t *testing.T) {
	checkers := NewCheckersForContainer("point", Black, 3)
	require.Len(t, checkers, 3)
	seen := map[string]bool{}
	for _, ch := range checkers {
		require.Equal(t, Black, ch.Color)
		require.Equal(t, "point", ch.ContainerID)
		require.False(t, seen[ch.ID])
		seen[ch.ID] = true
	}
}
