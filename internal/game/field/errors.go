package field

import (
	"errors"
	"fmt"
)

type ErrorKind int

const (
	KindOffBoard ErrorKind = iota
	KindAlreadyHit
	KindShipPlacement
)

func (k ErrorKind) String() string {
	switch k {
	case KindOffBoard:
		return "coordinates are off the board"
	case KindAlreadyHit:
		return "cell was already shot or lies next to a sunk ship"
	case KindShipPlacement:
		return "ship cannot be placed here"
	default:
		panic("unknown error kind")
	}
}

// Error is returned by Board operations. It matches the sentinel
// of its kind via errors.Is.
type Error struct {
	Kind ErrorKind
	Dot  Dot
}

var (
	ErrOffBoard      error = &Error{Kind: KindOffBoard}
	ErrAlreadyHit    error = &Error{Kind: KindAlreadyHit}
	ErrShipPlacement error = &Error{Kind: KindShipPlacement}

	ErrPlayStarted         = errors.New("ships cannot be placed once shooting has started")
	ErrGenerationExhausted = errors.New("failed to generate board within restart limit")
)

func (e *Error) Is(target error) bool {
	if err, ok := target.(*Error); ok {
		return e.Kind == err.Kind
	}

	return false
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s: %s", e.Kind, e.Dot)
}
