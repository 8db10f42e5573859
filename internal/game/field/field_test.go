package field_test

import (
	"bytes"
	_ "embed"
	"math/rand/v2"
	"slices"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mrsobakin/seabattle/internal/game/field"
)

//go:embed testdata/layout.txt
var txtLayout []byte

func newPlayingBoard(t *testing.T, size int, ships ...*field.Ship) *field.Board {
	t.Helper()

	b := field.NewBoard(size)
	for _, ship := range ships {
		require.NoError(t, b.PlaceShip(ship))
	}
	b.BeginPlay()

	return b
}

func TestShip(t *testing.T) {
	t.Run("Dots_Horizontal", func(t *testing.T) {
		ship := field.NewShip(field.Dot{X: 1, Y: 2}, 3, field.Horizontal)
		assert.Equal(t, []field.Dot{{X: 1, Y: 2}, {X: 2, Y: 2}, {X: 3, Y: 2}}, ship.Dots())
	})

	t.Run("Dots_Vertical", func(t *testing.T) {
		ship := field.NewShip(field.Dot{X: 4, Y: 0}, 2, field.Vertical)
		assert.Equal(t, []field.Dot{{X: 4, Y: 0}, {X: 4, Y: 1}}, ship.Dots())
	})

	t.Run("IsHitBy", func(t *testing.T) {
		ship := field.NewShip(field.Dot{X: 0, Y: 0}, 2, field.Vertical)
		assert.True(t, ship.IsHitBy(field.Dot{X: 0, Y: 1}))
		assert.False(t, ship.IsHitBy(field.Dot{X: 1, Y: 0}))
		assert.Equal(t, 2, ship.HP())
		assert.False(t, ship.IsSunk())
	})
}

func TestBoard_PlaceShip(t *testing.T) {
	// A A . . . .
	// . . . . . .
	t.Run("Valid", func(t *testing.T) {
		b := field.NewBoard(6)
		ship := field.NewShip(field.Dot{X: 0, Y: 0}, 2, field.Horizontal)

		require.NoError(t, b.PlaceShip(ship))
		assert.Equal(t, field.CellShip, b.Cell(field.Dot{X: 0, Y: 0}))
		assert.Equal(t, field.CellShip, b.Cell(field.Dot{X: 1, Y: 0}))
		assert.Equal(t, field.CellEmpty, b.Cell(field.Dot{X: 2, Y: 0}))

		// Contour is reserved but stays invisible.
		assert.True(t, b.IsReserved(field.Dot{X: 2, Y: 1}))
		assert.False(t, b.IsReserved(field.Dot{X: 3, Y: 0}))
		assert.Len(t, b.Ships(), 1)
	})

	// . . .
	// . A A x
	// . . .
	t.Run("OutOfBounds", func(t *testing.T) {
		b := field.NewBoard(3)
		err := b.PlaceShip(field.NewShip(field.Dot{X: 1, Y: 1}, 3, field.Horizontal))
		assert.ErrorIs(t, err, field.ErrShipPlacement)
		assert.Empty(t, b.Ships())
		assert.Equal(t, field.CellEmpty, b.Cell(field.Dot{X: 1, Y: 1}))
	})

	t.Run("NegativeBow", func(t *testing.T) {
		b := field.NewBoard(3)
		err := b.PlaceShip(field.NewShip(field.Dot{X: -1, Y: 0}, 1, field.Horizontal))
		assert.ErrorIs(t, err, field.ErrShipPlacement)
	})

	// . . B . .
	// A A X A .
	// . . B . .
	t.Run("Intersecting", func(t *testing.T) {
		b := field.NewBoard(5)
		require.NoError(t, b.PlaceShip(field.NewShip(field.Dot{X: 0, Y: 1}, 4, field.Horizontal)))
		err := b.PlaceShip(field.NewShip(field.Dot{X: 2, Y: 0}, 3, field.Vertical))
		assert.ErrorIs(t, err, field.ErrShipPlacement)
		assert.Len(t, b.Ships(), 1)
	})

	// A . .
	// . B .
	// . . .
	t.Run("TouchingCorners", func(t *testing.T) {
		b := field.NewBoard(3)
		require.NoError(t, b.PlaceShip(field.NewShip(field.Dot{X: 0, Y: 0}, 1, field.Horizontal)))
		err := b.PlaceShip(field.NewShip(field.Dot{X: 1, Y: 1}, 1, field.Horizontal))
		assert.ErrorIs(t, err, field.ErrShipPlacement)
	})

	// . . . . .
	// A A A . .
	// . . B B .
	t.Run("MulticellTouchingBorders", func(t *testing.T) {
		b := field.NewBoard(5)
		require.NoError(t, b.PlaceShip(field.NewShip(field.Dot{X: 0, Y: 1}, 3, field.Horizontal)))
		err := b.PlaceShip(field.NewShip(field.Dot{X: 2, Y: 2}, 2, field.Horizontal))
		assert.ErrorIs(t, err, field.ErrShipPlacement)
	})

	// A . B
	// . . B
	t.Run("OneCellGap", func(t *testing.T) {
		b := field.NewBoard(3)
		require.NoError(t, b.PlaceShip(field.NewShip(field.Dot{X: 0, Y: 0}, 1, field.Horizontal)))
		require.NoError(t, b.PlaceShip(field.NewShip(field.Dot{X: 2, Y: 0}, 2, field.Vertical)))
		assert.Len(t, b.Ships(), 2)
	})

	t.Run("InvalidLength", func(t *testing.T) {
		b := field.NewBoard(6)
		for _, length := range []int{-1, 0, field.MaxShipLength + 1} {
			err := b.PlaceShip(field.NewShip(field.Dot{X: 0, Y: 5}, length, field.Horizontal))
			assert.ErrorIs(t, err, field.ErrShipPlacement, "length %d", length)
		}
		assert.Empty(t, b.Ships())
		assert.False(t, b.IsReserved(field.Dot{X: 0, Y: 5}))
	})

	t.Run("AfterBeginPlay", func(t *testing.T) {
		b := newPlayingBoard(t, 3)
		err := b.PlaceShip(field.NewShip(field.Dot{X: 0, Y: 0}, 1, field.Horizontal))
		assert.ErrorIs(t, err, field.ErrPlayStarted)
	})
}

func TestBoard_Shoot(t *testing.T) {
	// A A A . . .
	// . . . . . .
	t.Run("SinkScenario", func(t *testing.T) {
		ship := field.NewShip(field.Dot{X: 0, Y: 0}, 3, field.Horizontal)
		b := newPlayingBoard(t, 6, ship)

		res, err := b.Shoot(field.Dot{X: 0, Y: 0})
		require.NoError(t, err)
		assert.Equal(t, field.Hit, res)
		assert.Equal(t, 2, ship.HP())

		res, err = b.Shoot(field.Dot{X: 1, Y: 0})
		require.NoError(t, err)
		assert.Equal(t, field.Hit, res)
		assert.Equal(t, 1, ship.HP())
		assert.Equal(t, 0, b.SunkCount())

		res, err = b.Shoot(field.Dot{X: 2, Y: 0})
		require.NoError(t, err)
		assert.Equal(t, field.Sunk, res)
		assert.Equal(t, 0, ship.HP())
		assert.True(t, ship.IsSunk())
		assert.Equal(t, 1, b.SunkCount())
		assert.True(t, b.AllSunk())

		for _, d := range []field.Dot{{X: 0, Y: 1}, {X: 1, Y: 1}, {X: 2, Y: 1}, {X: 3, Y: 0}, {X: 3, Y: 1}} {
			assert.Equal(t, field.CellMiss, b.Cell(d), "contour cell %s", d)
			assert.True(t, b.IsReserved(d))
		}
		assert.Equal(t, field.CellEmpty, b.Cell(field.Dot{X: 4, Y: 0}))
		for _, d := range ship.Dots() {
			assert.Equal(t, field.CellHit, b.Cell(d))
		}

		_, err = b.Shoot(field.Dot{X: 0, Y: 0})
		assert.ErrorIs(t, err, field.ErrAlreadyHit)

		_, err = b.Shoot(field.Dot{X: -1, Y: 0})
		assert.ErrorIs(t, err, field.ErrOffBoard)

		_, err = b.Shoot(field.Dot{X: 3, Y: 1})
		assert.ErrorIs(t, err, field.ErrAlreadyHit)

		assert.Equal(t, 1, b.SunkCount())
	})

	// . . .
	// . . .
	// . . .
	t.Run("EmptyCell", func(t *testing.T) {
		b := newPlayingBoard(t, 3)

		res, err := b.Shoot(field.Dot{X: 1, Y: 1})
		require.NoError(t, err)
		assert.Equal(t, field.Miss, res)
		assert.Equal(t, field.CellMiss, b.Cell(field.Dot{X: 1, Y: 1}))
	})

	t.Run("OffBoard", func(t *testing.T) {
		b := newPlayingBoard(t, 6)

		for _, d := range []field.Dot{{X: -1, Y: 0}, {X: 0, Y: -1}, {X: 6, Y: 0}, {X: 0, Y: 6}, {X: 100, Y: -100}} {
			_, err := b.Shoot(d)
			assert.ErrorIs(t, err, field.ErrOffBoard, "dot %s", d)
			assert.NotErrorIs(t, err, field.ErrAlreadyHit)
		}
	})

	t.Run("Repeatedly", func(t *testing.T) {
		b := newPlayingBoard(t, 3)

		_, err := b.Shoot(field.Dot{X: 2, Y: 2})
		require.NoError(t, err)

		for range 5 {
			_, err := b.Shoot(field.Dot{X: 2, Y: 2})
			assert.ErrorIs(t, err, field.ErrAlreadyHit)
		}
	})

	t.Run("ErrorCarriesDot", func(t *testing.T) {
		b := newPlayingBoard(t, 3)

		_, err := b.Shoot(field.Dot{X: 7, Y: 1})

		var fieldErr *field.Error
		require.ErrorAs(t, err, &fieldErr)
		assert.Equal(t, field.KindOffBoard, fieldErr.Kind)
		assert.Equal(t, field.Dot{X: 7, Y: 1}, fieldErr.Dot)
	})

	// A A A . . B
	// . . . . . B
	// C C . D . .
	// . . . . . E
	// F . . . . .
	// . . G . . .
	t.Run("RealField", func(t *testing.T) {
		conf := field.DefaultConfiguration()
		b, err := field.LoadLayout(conf, field.ParseShips(bytes.NewReader(txtLayout)))
		require.NoError(t, err)

		shoot := func(x, y int) field.ShootResult {
			res, err := b.Shoot(field.Dot{X: x, Y: y})
			require.NoError(t, err)
			return res
		}

		assert.Equal(t, field.Miss, shoot(4, 0))
		assert.Equal(t, field.Miss, shoot(1, 4))

		// B
		assert.Equal(t, field.Hit, shoot(5, 1))
		assert.Equal(t, field.Sunk, shoot(5, 0))
		assert.Equal(t, field.CellMiss, b.Cell(field.Dot{X: 4, Y: 2}))

		// D
		assert.Equal(t, field.Sunk, shoot(3, 2))

		// A
		assert.Equal(t, field.Hit, shoot(2, 0))
		assert.Equal(t, field.Hit, shoot(0, 0))
		assert.Equal(t, field.Sunk, shoot(1, 0))

		// C
		assert.Equal(t, field.Hit, shoot(1, 2))
		assert.Equal(t, field.Sunk, shoot(0, 2))

		assert.Equal(t, 4, b.SunkCount())
		assert.False(t, b.AllSunk())

		// E F G
		assert.Equal(t, field.Sunk, shoot(5, 3))
		assert.Equal(t, field.Sunk, shoot(0, 4))
		assert.Equal(t, field.Sunk, shoot(2, 5))

		assert.Equal(t, 7, b.SunkCount())
		assert.True(t, b.AllSunk())
	})

	t.Run("Fuzzy", func(t *testing.T) {
		conf := field.DefaultConfiguration()
		rng := rand.New(rand.NewPCG(1, 2))

		for range 200 {
			b, err := field.Generate(conf, rng)
			require.NoError(t, err)

			var coordinates []field.Dot
			for x := range conf.Size {
				for y := range conf.Size {
					coordinates = append(coordinates, field.Dot{X: x, Y: y})
				}
			}

			rng.Shuffle(len(coordinates), func(i, j int) {
				coordinates[i], coordinates[j] = coordinates[j], coordinates[i]
			})

			var nHits, nSunk int
			for _, d := range coordinates {
				prevSunk := b.SunkCount()

				res, err := b.Shoot(d)
				if err != nil {
					require.ErrorIs(t, err, field.ErrAlreadyHit)
					continue
				}

				switch res {
				case field.Hit:
					nHits++
					assert.Equal(t, prevSunk, b.SunkCount())
				case field.Sunk:
					nSunk++
					assert.Equal(t, prevSunk+1, b.SunkCount())
				}
			}

			assert.Equal(t, len(conf.Fleet), nSunk)
			assert.Equal(t, 4, nHits)
			assert.True(t, b.AllSunk())
		}
	})
}

func TestLoadLayout(t *testing.T) {
	t.Run("MismatchedFleet", func(t *testing.T) {
		conf := field.DefaultConfiguration()
		_, err := field.LoadLayout(conf, field.ParseShips(strings.NewReader("3 h 0 0\n")))
		assert.Error(t, err)
	})

	t.Run("Touching", func(t *testing.T) {
		conf := field.Configuration{Size: 6, Fleet: []int{1, 1}}
		_, err := field.LoadLayout(conf, field.ParseShips(strings.NewReader("1 h 0 0\n1 v 1 1\n")))
		assert.ErrorIs(t, err, field.ErrShipPlacement)
	})

	t.Run("InvalidLength", func(t *testing.T) {
		conf := field.Configuration{Size: 6, Fleet: []int{1}}
		_, err := field.LoadLayout(conf, field.ParseShips(strings.NewReader("5 h 0 0\n")))
		assert.ErrorIs(t, err, field.ErrShipPlacement)
	})

	t.Run("ParseStopsOnGarbage", func(t *testing.T) {
		specs := slices.Collect(field.ParseShips(strings.NewReader("2 v 1 1\n1 x 0 0\n1 h 4 4\n")))
		assert.Equal(t, []field.ShipSpec{{Bow: field.Dot{X: 1, Y: 1}, Length: 2, Orientation: field.Vertical}}, specs)
	})
}

func TestShootResult(t *testing.T) {
	for _, res := range []field.ShootResult{field.Miss, field.Hit, field.Sunk} {
		var parsed field.ShootResult
		require.NoError(t, parsed.FromString(res.String()))
		assert.Equal(t, res, parsed)
	}

	var r field.ShootResult
	assert.Error(t, r.FromString("kill"))

	assert.True(t, field.Hit.Again())
	assert.False(t, field.Sunk.Again())
	assert.False(t, field.Miss.Again())
}
