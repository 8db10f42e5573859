package field

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"iter"
)

type Dot struct {
	X int `json:"x"`
	Y int `json:"y"`
}

func (d Dot) Add(dx, dy int) Dot {
	return Dot{d.X + dx, d.Y + dy}
}

func (d Dot) String() string {
	return fmt.Sprintf("(%d, %d)", d.X, d.Y)
}

type Orientation int

const (
	Horizontal Orientation = iota
	Vertical
)

func (o Orientation) String() string {
	switch o {
	case Horizontal:
		return "h"
	case Vertical:
		return "v"
	default:
		panic("invalid orientation")
	}
}

type ShootResult int

const (
	Miss ShootResult = iota
	Hit
	Sunk
)

func (r *ShootResult) FromString(str string) error {
	switch str {
	case "miss":
		*r = Miss
	case "hit":
		*r = Hit
	case "sunk":
		*r = Sunk
	default:
		return fmt.Errorf("invalid shoot result: %q", str)
	}
	return nil
}

func (r ShootResult) String() string {
	switch r {
	case Miss:
		return "miss"
	case Hit:
		return "hit"
	case Sunk:
		return "sunk"
	default:
		panic("invalid shoot result")
	}
}

// Again reports whether the shooter keeps the turn.
func (r ShootResult) Again() bool {
	return r == Hit
}

func (r ShootResult) MarshalJSON() ([]byte, error) {
	return json.Marshal(r.String())
}

type CellState int

const (
	CellEmpty CellState = iota
	CellShip
	CellHit
	CellMiss
)

func (c CellState) String() string {
	switch c {
	case CellEmpty:
		return "empty"
	case CellShip:
		return "ship"
	case CellHit:
		return "hit"
	case CellMiss:
		return "miss"
	default:
		panic("invalid cell state")
	}
}

const (
	DefaultSize   = 6
	MaxShipLength = 4
)

// Standard fleet: one three-decker, two two-deckers and four boats.
var DefaultFleet = []int{3, 2, 2, 1, 1, 1, 1}

type Configuration struct {
	Size  int
	Fleet []int
}

func DefaultConfiguration() Configuration {
	fleet := make([]int, len(DefaultFleet))
	copy(fleet, DefaultFleet)

	return Configuration{
		Size:  DefaultSize,
		Fleet: fleet,
	}
}

func (c *Configuration) IsValid() error {
	if c.Size <= 0 {
		return fmt.Errorf("non-positive field size: %d", c.Size)
	}

	if len(c.Fleet) == 0 {
		return fmt.Errorf("empty fleet")
	}

	for _, length := range c.Fleet {
		if length <= 0 || length > MaxShipLength {
			return fmt.Errorf("invalid ship length in fleet: %v", c.Fleet)
		}
	}

	return nil
}

// Returns the number of ships of each length, indexed by length-1.
func (c *Configuration) Counts() [MaxShipLength]int {
	var counts [MaxShipLength]int
	for _, length := range c.Fleet {
		if length > 0 && length <= MaxShipLength {
			counts[length-1]++
		}
	}
	return counts
}

type ShipSpec struct {
	Bow         Dot
	Length      int
	Orientation Orientation
}

// Parses ship layout lines of form `<length> <h|v> <x> <y>`.
// Parsing stops at the first malformed line.
func ParseShips(src io.Reader) iter.Seq[ShipSpec] {
	return func(yield func(s ShipSpec) bool) {
		lines := bufio.NewScanner(src)

		for lines.Scan() {
			var spec ShipSpec
			var direction rune

			n, err := fmt.Sscanf(lines.Text(), "%d %c %d %d", &spec.Length, &direction, &spec.Bow.X, &spec.Bow.Y)

			if err != nil || n != 4 {
				return
			}

			switch direction {
			case 'v':
				spec.Orientation = Vertical
			case 'h':
				spec.Orientation = Horizontal
			default:
				return
			}

			if !yield(spec) {
				return
			}
		}
	}
}
