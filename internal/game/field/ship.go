package field

import (
	"iter"
	"slices"
)

type Ship struct {
	bow         Dot
	length      int
	orientation Orientation
	hp          int
}

func NewShip(bow Dot, length int, orientation Orientation) *Ship {
	return &Ship{
		bow:         bow,
		length:      length,
		orientation: orientation,
		hp:          length,
	}
}

func newShipFromSpec(spec ShipSpec) *Ship {
	return NewShip(spec.Bow, spec.Length, spec.Orientation)
}

func (s *Ship) Bow() Dot                 { return s.bow }
func (s *Ship) Len() int                 { return s.length }
func (s *Ship) Orientation() Orientation { return s.orientation }
func (s *Ship) HP() int                  { return s.hp }
func (s *Ship) IsSunk() bool             { return s.hp == 0 }

// Yields occupied cells from the bow along the orientation axis.
func (s *Ship) All() iter.Seq[Dot] {
	return func(yield func(Dot) bool) {
		for i := range s.length {
			var d Dot
			if s.orientation == Vertical {
				d = s.bow.Add(0, i)
			} else {
				d = s.bow.Add(i, 0)
			}

			if !yield(d) {
				return
			}
		}
	}
}

func (s *Ship) Dots() []Dot {
	return slices.Collect(s.All())
}

func (s *Ship) IsHitBy(d Dot) bool {
	for cell := range s.All() {
		if cell == d {
			return true
		}
	}
	return false
}

// Reserves every free in-bounds cell around the ship. When markVisible
// is set, those cells are also shown as misses.
func (s *Ship) reserveContour(b *Board, markVisible bool) {
	for cell := range s.All() {
		for dx := -1; dx <= 1; dx++ {
			for dy := -1; dy <= 1; dy++ {
				cur := cell.Add(dx, dy)
				if b.IsOut(cur) || b.IsReserved(cur) {
					continue
				}

				if markVisible {
					b.setCell(cur, CellMiss)
				}
				b.reserve(cur)
			}
		}
	}
}
