package game

import (
	"context"
	"errors"
	"time"

	"github.com/mrsobakin/seabattle/internal/clock"
	"github.com/mrsobakin/seabattle/internal/game/field"
)

var (
	ErrScriptExhausted = errors.New("scripted targeter ran out of targets")

	// Returned by a targeter whose player gives up.
	ErrForfeit = errors.New("player forfeited")
)

type Targeter interface {
	// Returns the next coordinate to shoot at.
	//
	// Returned coordinate is not guaranteed to be on board or
	// not shot yet; the board decides that.
	ChooseTarget(context.Context) (field.Dot, error)
}

// Picks uniformly random cells. It does not remember previous shots.
type Automated struct {
	rng  field.Rand
	size int
}

func NewAutomated(rng field.Rand, size int) *Automated {
	return &Automated{
		rng,
		size,
	}
}

func (a *Automated) ChooseTarget(context.Context) (field.Dot, error) {
	return field.Dot{X: a.rng.IntN(a.size), Y: a.rng.IntN(a.size)}, nil
}

// Source of human moves. Returned column and row are 1-indexed,
// already parsed into integers.
type MoveSource interface {
	ReadMove(context.Context) (col, row int, err error)
}

type Interactive struct {
	source MoveSource
}

func NewInteractive(source MoveSource) *Interactive {
	return &Interactive{source}
}

func (i *Interactive) ChooseTarget(ctx context.Context) (field.Dot, error) {
	col, row, err := i.source.ReadMove(ctx)
	if err != nil {
		return field.Dot{}, err
	}

	return field.Dot{X: col - 1, Y: row - 1}, nil
}

// Replays a fixed sequence of targets.
type Scripted struct {
	targets []field.Dot
	next    int
}

func NewScripted(targets ...field.Dot) *Scripted {
	return &Scripted{targets: targets}
}

func (s *Scripted) ChooseTarget(context.Context) (field.Dot, error) {
	if s.next >= len(s.targets) {
		return field.Dot{}, ErrScriptExhausted
	}

	d := s.targets[s.next]
	s.next++
	return d, nil
}

// Runs wrapped targeter against a cumulative move clock. Only the time
// spent inside ChooseTarget is counted.
type Clocked struct {
	targeter Targeter
	ctx      context.Context
	clock    *clock.Clock
}

// When the clock runs out, ChooseTarget fails with `cause`.
func NewClocked(parent context.Context, targeter Targeter, budget time.Duration, cause error) *Clocked {
	ctx, c := clock.NewContext(parent, budget, cause)

	return &Clocked{
		targeter,
		ctx,
		c,
	}
}

func (t *Clocked) ChooseTarget(ctx context.Context) (field.Dot, error) {
	if t.ctx.Err() != nil {
		return field.Dot{}, context.Cause(t.ctx)
	}

	ctx, cancel := context.WithCancelCause(ctx)
	defer cancel(nil)

	stop := context.AfterFunc(t.ctx, func() {
		cancel(context.Cause(t.ctx))
	})
	defer stop()

	t.clock.Resume()
	d, err := t.targeter.ChooseTarget(ctx)
	t.clock.Pause()

	if err != nil && ctx.Err() != nil {
		return d, context.Cause(ctx)
	}
	return d, err
}

func (t *Clocked) Remaining() time.Duration {
	return t.clock.Remaining()
}

func (t *Clocked) Close() {
	t.clock.Close()
}
