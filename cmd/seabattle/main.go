package main

import (
	"context"
	"fmt"
	"math/rand/v2"
	"os"
	"os/signal"

	"github.com/charmbracelet/log"

	"github.com/mrsobakin/seabattle/internal/config"
	"github.com/mrsobakin/seabattle/internal/console"
	"github.com/mrsobakin/seabattle/internal/game"
	"github.com/mrsobakin/seabattle/internal/game/field"
	"github.com/mrsobakin/seabattle/internal/match"
)

const screenWidth = 60

func newRand(seed uint64) *rand.Rand {
	if seed == 0 {
		seed = rand.Uint64()
	}
	return rand.New(rand.NewPCG(seed, seed))
}

func announce(verdict match.Verdict) string {
	switch {
	case verdict.Reason == match.ReasonClockExpired:
		return fmt.Sprintf("Time is up! %s won.", verdict.Winner)
	case verdict.Reason == match.ReasonForfeit:
		return fmt.Sprintf("Game abandoned, %s won.", verdict.Winner)
	case verdict.Winner == game.SideUser:
		return "You won!"
	default:
		return "Computer won!"
	}
}

func play(ctx context.Context, conf config.Config, logger *log.Logger) error {
	rng := newRand(conf.Seed)
	fieldConf := field.DefaultConfiguration()

	prompt := console.NewPrompt(os.Stdin, os.Stdout)
	defer prompt.Close()

	var user game.Targeter = game.NewInteractive(prompt)
	if conf.MoveClock > 0 {
		clocked := game.NewClocked(ctx, user, conf.MoveClock, match.ErrClockExpired)
		defer clocked.Close()
		user = clocked
	}

	g, err := match.NewRandom(fieldConf, rng,
		user,
		game.NewAutomated(rng, fieldConf.Size),
		console.NewReporter(os.Stdout, logger),
	)
	if err != nil {
		return err
	}

	logger.Info("game started", "game", g.ID, "clock", conf.MoveClock)

	console.Greet(os.Stdout, screenWidth)

	for g.State() != match.GameOver {
		console.RenderBoards(os.Stdout,
			"Your board:", g.Board(game.SideUser),
			"Computer board:", g.Board(game.SideComputer),
		)

		if g.State() == match.AwaitingPlayerShot {
			fmt.Println("Your turn!")
		} else {
			fmt.Println("Computer's turn!")
		}

		if err := g.Step(ctx); err != nil {
			if ctx.Err() != nil {
				logger.Info("game interrupted", "game", g.ID)
				return nil
			}
			return err
		}
	}

	verdict, _ := g.Verdict()

	console.RenderBoards(os.Stdout,
		"Your board:", g.Board(game.SideUser),
		"Computer board:", g.Board(game.SideComputer),
	)
	fmt.Println(announce(verdict))

	logger.Info("game finished", "game", verdict.GameID, "winner", verdict.Winner, "reason", verdict.Reason, "shots", verdict.Shots)
	return nil
}

func main() {
	logger := log.NewWithOptions(os.Stderr, log.Options{
		Prefix:          "seabattle",
		ReportTimestamp: true,
	})

	conf, err := config.Load()
	if err != nil {
		logger.Fatal("failed to load configuration", "err", err)
	}
	logger.SetLevel(conf.LogLevel)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := play(ctx, conf, logger); err != nil {
		logger.Fatal("game failed", "err", err)
	}
}
