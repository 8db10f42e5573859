package console

import (
	"errors"
	"fmt"
	"io"

	"github.com/charmbracelet/log"

	"github.com/mrsobakin/seabattle/internal/game"
	"github.com/mrsobakin/seabattle/internal/game/field"
)

// Prints shot feedback for a human watching the game.
//
// Implements game.Reporter.
type Reporter struct {
	out    io.Writer
	logger *log.Logger
}

func NewReporter(out io.Writer, logger *log.Logger) *Reporter {
	if logger == nil {
		logger = log.Default()
	}

	return &Reporter{
		out:    out,
		logger: logger,
	}
}

func (r *Reporter) Rejected(side game.Side, target field.Dot, err error) {
	r.logger.Debug("shot rejected", "side", side, "target", target, "err", err)

	// Computer retries silently.
	if side != game.SideUser {
		return
	}

	switch {
	case errors.Is(err, field.ErrOffBoard):
		fmt.Fprintln(r.out, "These coordinates are off the board.")
	case errors.Is(err, field.ErrAlreadyHit):
		fmt.Fprintln(r.out, "You already shot there, or a sunk ship is next to it.")
	default:
		fmt.Fprintln(r.out, err)
	}
}

func (r *Reporter) Resolved(shot game.Shot) {
	r.logger.Debug("shot resolved", "side", shot.Side, "target", shot.Target, "result", shot.Result)

	if shot.Side == game.SideComputer {
		fmt.Fprintf(r.out, "Computer shoots: %d %d\n", shot.Target.X+1, shot.Target.Y+1)
	}

	switch shot.Result {
	case field.Hit:
		fmt.Fprintln(r.out, "Ship is hit!")
	case field.Sunk:
		fmt.Fprintln(r.out, "Ship is sunk!")
	case field.Miss:
		fmt.Fprintln(r.out, "Miss!")
	}
}
