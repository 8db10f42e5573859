package console

import (
	"fmt"
	"io"
	"strings"

	"github.com/mitchellh/go-wordwrap"

	"github.com/mrsobakin/seabattle/internal/game/field"
)

const (
	symbolEmpty = "O"
	symbolShip  = "■"
	symbolHit   = "X"
	symbolMiss  = "T"
)

const greeting = `Welcome to sea battle! ` +
	`Both fleets are placed at random: one three-decker, two two-deckers and four boats. ` +
	`Ships never touch each other, not even by corners. ` +
	`Enter a move as two numbers separated by a space: column first, then row, both starting from 1. ` +
	`A hit lets you shoot again, sinking a ship or missing passes the turn. ` +
	`Type "q" to give up.`

func Greet(w io.Writer, width uint) {
	line := strings.Repeat("-", int(width))
	fmt.Fprintln(w, line)
	fmt.Fprintln(w, wordwrap.WrapString(greeting, width))
	fmt.Fprintln(w, line)
}

func symbol(b *field.Board, d field.Dot) string {
	switch b.Cell(d) {
	case field.CellShip:
		if b.Hidden {
			return symbolEmpty
		}
		return symbolShip
	case field.CellHit:
		return symbolHit
	case field.CellMiss:
		return symbolMiss
	default:
		return symbolEmpty
	}
}

// Renders board as text lines, header first.
func Lines(b *field.Board) []string {
	lines := make([]string, 0, b.Size()+1)

	var header strings.Builder
	header.WriteString("   |")
	for x := range b.Size() {
		fmt.Fprintf(&header, "%2d |", x+1)
	}
	lines = append(lines, header.String())

	for y := range b.Size() {
		var row strings.Builder
		fmt.Fprintf(&row, "%2d |", y+1)
		for x := range b.Size() {
			fmt.Fprintf(&row, " %s |", symbol(b, field.Dot{X: x, Y: y}))
		}
		lines = append(lines, row.String())
	}

	return lines
}

// Renders two boards next to each other.
func RenderBoards(w io.Writer, leftTitle string, left *field.Board, rightTitle string, right *field.Board) {
	l, r := Lines(left), Lines(right)
	width := len([]rune(l[0]))

	pad := func(s string) string {
		return s + strings.Repeat(" ", max(0, width-len([]rune(s))))
	}

	fmt.Fprintf(w, "%s    %s\n", pad(leftTitle), rightTitle)
	for i := range max(len(l), len(r)) {
		var a, b string
		if i < len(l) {
			a = l[i]
		}
		if i < len(r) {
			b = r[i]
		}
		fmt.Fprintf(w, "%s    %s\n", pad(a), b)
	}
}
