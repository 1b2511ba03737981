package match

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/yourusername/bgrules/pkg/game"
)

// MAT format is the Jellyfish/gnubg match format.
// Example format:
//
//	; [Player 1 "white"]
//	; [Player 2 "black"]
//	Unlimited match
//
//	Game 1
//	white : 0                          black : 0
//	  1) 31: 8/5 6/5                    52: 24/22 13/8

const columnWidth = 34

// ExportMAT writes a match in MAT format.
func ExportMAT(w io.Writer, match *Match) error {
	var b strings.Builder
	if match.Event != "" {
		fmt.Fprintf(&b, " ; [Event \"%s\"]\n", match.Event)
	}
	if match.Date != "" {
		fmt.Fprintf(&b, " ; [Date \"%s\"]\n", match.Date)
	}
	fmt.Fprintf(&b, " ; [Player 1 \"%s\"]\n", match.Player1)
	fmt.Fprintf(&b, " ; [Player 2 \"%s\"]\n", match.Player2)
	if match.MatchLength > 0 {
		fmt.Fprintf(&b, " %d point match\n\n", match.MatchLength)
	} else {
		fmt.Fprintf(&b, " Unlimited match\n\n")
	}
	for _, g := range match.Games {
		exportGameMAT(&b, match, g)
	}
	if _, err := io.WriteString(w, b.String()); err != nil {
		return fmt.Errorf("write MAT: %w", err)
	}
	return nil
}

// matWriter lays actions out in two columns, White on the left.
type matWriter struct {
	b      *strings.Builder
	line   int
	inLine bool // a White column has been written on the current line
	cell   strings.Builder
}

func (m *matWriter) cellFor(player game.Color) *strings.Builder {
	if player == game.White || !m.inLine {
		m.flush()
		m.line++
		fmt.Fprintf(m.b, "%3d) ", m.line)
		m.inLine = true
		if player == game.Black {
			m.b.WriteString(strings.Repeat(" ", columnWidth))
		}
	}
	return &m.cell
}

func (m *matWriter) endCell(player game.Color) {
	text := m.cell.String()
	m.cell.Reset()
	if player == game.White {
		fmt.Fprintf(m.b, "%-*s", columnWidth, text)
		return
	}
	m.b.WriteString(text)
	m.b.WriteString("\n")
	m.inLine = false
}

func (m *matWriter) flush() {
	if m.inLine {
		m.b.WriteString("\n")
		m.inLine = false
	}
}

func exportGameMAT(b *strings.Builder, match *Match, g *Game) {
	fmt.Fprintf(b, " Game %d\n", g.Number)
	fmt.Fprintf(b, " %s : %d%s%s : %d\n", match.Player1, g.Score1,
		strings.Repeat(" ", max(1, columnWidth-len(match.Player1)-3)), match.Player2, g.Score2)

	m := &matWriter{b: b}
	var roll [2]int
	for _, a := range g.Actions {
		switch a.Type {
		case ActionRoll:
			roll = a.Dice
		case ActionMove:
			c := m.cellFor(a.Player)
			fmt.Fprintf(c, "%d%d: %s", roll[0], roll[1], formatPlaysMAT(a.Plays))
			m.endCell(a.Player)
		case ActionDouble:
			fmt.Fprintf(m.cellFor(a.Player), " Doubles => %d", a.Value)
			m.endCell(a.Player)
		case ActionTake:
			m.cellFor(a.Player).WriteString(" Takes")
			m.endCell(a.Player)
		case ActionPass:
			m.cellFor(a.Player).WriteString(" Drops")
			m.endCell(a.Player)
		}
	}
	m.flush()
	if g.Winner != nil {
		pad := ""
		if *g.Winner == game.Black {
			pad = strings.Repeat(" ", columnWidth)
		}
		fmt.Fprintf(b, "     %s Wins %d point%s\n", pad, g.Points, plural(g.Points))
	}
	b.WriteString("\n")
}

// formatPlaysMAT renders plays numbered from the mover's side.
func formatPlaysMAT(plays []game.HintPlay) string {
	parts := make([]string, len(plays))
	for i, p := range plays {
		parts[i] = formatPointMAT(p.From) + "/" + formatPointMAT(p.To)
	}
	return strings.Join(parts, " ")
}

func formatPointMAT(point int) string {
	switch {
	case point >= 25:
		return "bar"
	case point <= 0:
		return "off"
	}
	return strconv.Itoa(point)
}

func plural(n int) string {
	if n == 1 {
		return ""
	}
	return "s"
}
