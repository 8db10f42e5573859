package field

import (
	"github.com/dolthub/swiss"
)

type Board struct {
	size     int
	cells    [][]CellState
	ships    []*Ship
	reserved *swiss.Map[Dot, struct{}]
	sunk     int
	playing  bool

	// Hidden boards should not reveal ship cells when rendered.
	Hidden bool
}

func NewBoard(size int) *Board {
	cells := make([][]CellState, size)
	for y := range cells {
		cells[y] = make([]CellState, size)
	}

	return &Board{
		size:     size,
		cells:    cells,
		reserved: swiss.NewMap[Dot, struct{}](uint32(size * size)),
	}
}

func (b *Board) Size() int       { return b.size }
func (b *Board) SunkCount() int  { return b.sunk }
func (b *Board) Ships() []*Ship  { return b.ships }
func (b *Board) AllSunk() bool   { return len(b.ships) > 0 && b.sunk == len(b.ships) }
func (b *Board) IsPlaying() bool { return b.playing }

func (b *Board) Cell(d Dot) CellState {
	if b.IsOut(d) {
		return CellEmpty
	}
	return b.cells[d.Y][d.X]
}

func (b *Board) IsOut(d Dot) bool {
	return d.X < 0 || d.Y < 0 || d.X >= b.size || d.Y >= b.size
}

func (b *Board) IsReserved(d Dot) bool {
	return b.reserved.Has(d)
}

func (b *Board) reserve(d Dot) {
	b.reserved.Put(d, struct{}{})
}

func (b *Board) setCell(d Dot, state CellState) {
	b.cells[d.Y][d.X] = state
}

func (b *Board) PlaceShip(ship *Ship) error {
	if b.playing {
		return ErrPlayStarted
	}

	if ship.Len() < 1 || ship.Len() > MaxShipLength {
		return &Error{Kind: KindShipPlacement, Dot: ship.Bow()}
	}

	for d := range ship.All() {
		if b.IsOut(d) || b.IsReserved(d) {
			return &Error{Kind: KindShipPlacement, Dot: d}
		}
	}

	for d := range ship.All() {
		b.setCell(d, CellShip)
		b.reserve(d)
	}

	b.ships = append(b.ships, ship)
	ship.reserveContour(b, false)

	return nil
}

// Ends the placement phase. Placement reservations are dropped so that
// the reserved set only tracks targeted cells from now on. Calling it
// more than once has no effect.
func (b *Board) BeginPlay() {
	if b.playing {
		return
	}

	b.playing = true
	b.reserved = swiss.NewMap[Dot, struct{}](uint32(b.size * b.size))
}

func (b *Board) Shoot(d Dot) (ShootResult, error) {
	if b.IsOut(d) {
		return Miss, &Error{Kind: KindOffBoard, Dot: d}
	}

	if b.IsReserved(d) {
		return Miss, &Error{Kind: KindAlreadyHit, Dot: d}
	}

	b.reserve(d)

	for _, ship := range b.ships {
		if !ship.IsHitBy(d) {
			continue
		}

		ship.hp--
		b.setCell(d, CellHit)

		if ship.hp == 0 {
			b.sunk++
			ship.reserveContour(b, true)
			return Sunk, nil
		}

		return Hit, nil
	}

	b.setCell(d, CellMiss)
	return Miss, nil
}
