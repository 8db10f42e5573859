package game

import (
	"context"
	"errors"
	"fmt"

	"github.com/mrsobakin/seabattle/internal/game/field"
)

type Side int

const (
	SideUser Side = iota
	SideComputer
)

func (s Side) Other() Side {
	if s == SideUser {
		return SideComputer
	} else {
		return SideUser
	}
}

func (s Side) String() string {
	if s == SideUser {
		return "user"
	} else {
		return "computer"
	}
}

func (s Side) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// A single resolved shot.
type Shot struct {
	Side   Side              `json:"side"`
	Target field.Dot         `json:"target"`
	Result field.ShootResult `json:"result"`
}

// Presentation collaborator notified about every shot attempt.
type Reporter interface {
	// Called when a target was refused by the enemy board.
	// The turn continues with another target.
	Rejected(side Side, target field.Dot, err error)

	// Called when a shot was resolved.
	Resolved(shot Shot)
}

type NopReporter struct{}

func (NopReporter) Rejected(Side, field.Dot, error) {}
func (NopReporter) Resolved(Shot)                   {}

type Player struct {
	Side     Side
	Targeter Targeter
	Own      *field.Board
	Enemy    *field.Board
	Reporter Reporter
}

func NewPlayer(side Side, targeter Targeter, own, enemy *field.Board, reporter Reporter) *Player {
	if reporter == nil {
		reporter = NopReporter{}
	}

	return &Player{
		Side:     side,
		Targeter: targeter,
		Own:      own,
		Enemy:    enemy,
		Reporter: reporter,
	}
}

// Keeps choosing targets until one of them is accepted by the enemy
// board. Off-board and already shot targets are reported and retried.
//
// Any other error, including the ones from the targeter, is returned.
func (p *Player) TakeTurn(ctx context.Context) (Shot, error) {
	for {
		if err := ctx.Err(); err != nil {
			return Shot{}, context.Cause(ctx)
		}

		target, err := p.Targeter.ChooseTarget(ctx)
		if err != nil {
			return Shot{}, fmt.Errorf("failed to choose target: %w", err)
		}

		result, err := p.Enemy.Shoot(target)
		if errors.Is(err, field.ErrOffBoard) || errors.Is(err, field.ErrAlreadyHit) {
			p.Reporter.Rejected(p.Side, target, err)
			continue
		}
		if err != nil {
			return Shot{}, fmt.Errorf("failed to shoot: %w", err)
		}

		shot := Shot{
			Side:   p.Side,
			Target: target,
			Result: result,
		}
		p.Reporter.Resolved(shot)

		return shot, nil
	}
}
