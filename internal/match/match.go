package match

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/google/uuid"

	"github.com/mrsobakin/seabattle/internal/game"
	"github.com/mrsobakin/seabattle/internal/game/field"
)

var (
	// Cancellation cause for a side whose move clock ran out.
	ErrClockExpired = errors.New("move clock expired")

	ErrGameOver = errors.New("game is over")
)

type State int

const (
	AwaitingPlayerShot State = iota
	AwaitingOpponentShot
	GameOver
)

func (s State) String() string {
	switch s {
	case AwaitingPlayerShot:
		return "awaiting player shot"
	case AwaitingOpponentShot:
		return "awaiting opponent shot"
	case GameOver:
		return "game over"
	default:
		panic("invalid state")
	}
}

func awaiting(side game.Side) State {
	if side == game.SideUser {
		return AwaitingPlayerShot
	}
	return AwaitingOpponentShot
}

type Game struct {
	ID string

	conf    field.Configuration
	players [2]*game.Player
	state   State
	verdict Verdict
	history []game.Shot
}

// Creates a game over already prepared boards. User shoots first.
func New(conf field.Configuration, userBoard, computerBoard *field.Board, user, computer game.Targeter, reporter game.Reporter) *Game {
	id := uuid.NewString()

	return &Game{
		ID:   id,
		conf: conf,
		players: [2]*game.Player{
			game.SideUser:     game.NewPlayer(game.SideUser, user, userBoard, computerBoard, reporter),
			game.SideComputer: game.NewPlayer(game.SideComputer, computer, computerBoard, userBoard, reporter),
		},
		state: AwaitingPlayerShot,
	}
}

// Creates a game with both boards randomly generated. Computer board
// is hidden.
func NewRandom(conf field.Configuration, rng field.Rand, user, computer game.Targeter, reporter game.Reporter) (*Game, error) {
	userBoard, err := field.Generate(conf, rng)
	if err != nil {
		return nil, fmt.Errorf("failed to generate user board: %w", err)
	}

	computerBoard, err := field.Generate(conf, rng)
	if err != nil {
		return nil, fmt.Errorf("failed to generate computer board: %w", err)
	}
	computerBoard.Hidden = true

	return New(conf, userBoard, computerBoard, user, computer, reporter), nil
}

func (g *Game) State() State         { return g.state }
func (g *Game) History() []game.Shot { return g.history }

func (g *Game) Board(side game.Side) *field.Board {
	return g.players[side].Own
}

// Returns the verdict. Valid only after the game is over.
func (g *Game) Verdict() (Verdict, bool) {
	return g.verdict, g.state == GameOver
}

// Side whose turn it is. Meaningless once the game is over.
func (g *Game) Turn() game.Side {
	if g.state == AwaitingOpponentShot {
		return game.SideComputer
	}
	return game.SideUser
}

func (g *Game) finish(winner game.Side, reason Reason) {
	g.state = GameOver
	g.verdict = Verdict{
		GameID: g.ID,
		Winner: winner,
		Reason: reason,
		Shots:  len(g.history),
	}
}

func (g *Game) isDefeated(side game.Side) bool {
	return g.players[side].Own.SunkCount() >= len(g.conf.Fleet)
}

// Performs a single shot of the side whose turn it is.
//
// Hit keeps the turn, sunk and miss pass it over. If a targeter
// gives up or runs out of clock, the other side wins. Any other
// failure is returned as is and leaves the state untouched.
func (g *Game) Step(ctx context.Context) error {
	if g.state == GameOver {
		return ErrGameOver
	}

	side := g.Turn()

	shot, err := g.players[side].TakeTurn(ctx)
	if err != nil {
		switch {
		case errors.Is(err, ErrClockExpired):
			g.finish(side.Other(), ReasonClockExpired)
			return nil
		case errors.Is(err, game.ErrForfeit), errors.Is(err, io.EOF):
			g.finish(side.Other(), ReasonForfeit)
			return nil
		}
		return fmt.Errorf("%s failed to take turn: %w", side, err)
	}

	g.history = append(g.history, shot)

	if g.isDefeated(game.SideComputer) {
		g.finish(game.SideUser, ReasonNormal)
		return nil
	}

	if g.isDefeated(game.SideUser) {
		g.finish(game.SideComputer, ReasonNormal)
		return nil
	}

	if !shot.Result.Again() {
		g.state = awaiting(side.Other())
	}

	return nil
}

// Plays the game to completion.
func (g *Game) Run(ctx context.Context) (Verdict, error) {
	for g.state != GameOver {
		if err := g.Step(ctx); err != nil {
			return Verdict{}, err
		}
	}

	return g.verdict, nil
}
