package field

import (
	"errors"
	"fmt"
	"iter"
)

const (
	MaxPlacementAttempts = 1000
	MaxRestarts          = 100
)

// Rand is the random source used for generation and automated targeting.
// *math/rand/v2.Rand satisfies it.
type Rand interface {
	IntN(n int) int
}

// Generates a board with randomly placed fleet, ready for shooting.
//
// Placement of a single board is capped at `MaxPlacementAttempts`
// attempts. If the cap is hit, the board is thrown away and a new one
// is started, at most `MaxRestarts` times.
func Generate(conf Configuration, rng Rand) (*Board, error) {
	if err := conf.IsValid(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	for range MaxRestarts {
		if b, ok := tryGenerate(conf, rng); ok {
			b.BeginPlay()
			return b, nil
		}
	}

	return nil, ErrGenerationExhausted
}

func tryGenerate(conf Configuration, rng Rand) (*Board, bool) {
	b := NewBoard(conf.Size)
	attempts := 0

	for _, length := range conf.Fleet {
		for {
			attempts++
			if attempts > MaxPlacementAttempts {
				return nil, false
			}

			bow := Dot{rng.IntN(conf.Size), rng.IntN(conf.Size)}
			ship := NewShip(bow, length, Orientation(rng.IntN(2)))

			err := b.PlaceShip(ship)
			if err == nil {
				break
			}
			if !errors.Is(err, ErrShipPlacement) {
				return nil, false
			}
		}
	}

	return b, true
}

// Builds a board from an explicit ship layout, ready for shooting.
//
// If ships intersect, touch, exceed the field size or do not match
// the configured fleet, returns an error.
func LoadLayout(conf Configuration, ships iter.Seq[ShipSpec]) (*Board, error) {
	if err := conf.IsValid(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	var counts [MaxShipLength]int
	b := NewBoard(conf.Size)

	for spec := range ships {
		if err := b.PlaceShip(newShipFromSpec(spec)); err != nil {
			return nil, err
		}

		counts[spec.Length-1]++
	}

	if counts != conf.Counts() {
		return nil, errors.New("ship count does not match configuration")
	}

	b.BeginPlay()
	return b, nil
}
