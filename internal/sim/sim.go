package sim

import (
	"context"
	"fmt"
	"math/rand/v2"
	"runtime"

	"github.com/charmbracelet/log"
	"golang.org/x/sync/errgroup"

	"github.com/mrsobakin/seabattle/internal/game"
	"github.com/mrsobakin/seabattle/internal/game/field"
	"github.com/mrsobakin/seabattle/internal/match"
)

const MaxGames = 10000

var (
	ErrBadGameCount = fmt.Errorf("game count must be within 1..%d", MaxGames)
)

type Stats struct {
	Games        int     `json:"games"`
	UserWins     int     `json:"user_wins"`
	ComputerWins int     `json:"computer_wins"`
	AvgShots     float64 `json:"avg_shots"`
	MinShots     int     `json:"min_shots"`
	MaxShots     int     `json:"max_shots"`
}

// Plays automated games against each other.
type Simulator struct {
	conf     field.Configuration
	parallel int
	logger   *log.Logger
}

func New(conf field.Configuration, parallel int, logger *log.Logger) *Simulator {
	if parallel <= 0 {
		parallel = runtime.NumCPU()
	}
	if logger == nil {
		logger = log.Default()
	}

	return &Simulator{
		conf:     conf,
		parallel: parallel,
		logger:   logger,
	}
}

// Plays a single game where both sides shoot at random.
// Same seed and index always produce the same game.
func (s *Simulator) Play(ctx context.Context, seed, index uint64) (match.Verdict, error) {
	rng := rand.New(rand.NewPCG(seed, index))

	g, err := match.NewRandom(s.conf, rng,
		game.NewAutomated(rng, s.conf.Size),
		game.NewAutomated(rng, s.conf.Size),
		nil,
	)
	if err != nil {
		return match.Verdict{}, err
	}

	return g.Run(ctx)
}

// Plays `games` independent games, at most `parallel` at once.
func (s *Simulator) Run(ctx context.Context, games int, seed uint64) (Stats, error) {
	if games <= 0 || games > MaxGames {
		return Stats{}, ErrBadGameCount
	}

	verdicts := make([]match.Verdict, games)

	eg, egCtx := errgroup.WithContext(ctx)
	eg.SetLimit(s.parallel)

	for i := range games {
		eg.Go(func() error {
			v, err := s.Play(egCtx, seed, uint64(i))
			if err != nil {
				return fmt.Errorf("game %d failed: %w", i, err)
			}

			s.logger.Debug("game finished", "game", v.GameID, "winner", v.Winner, "shots", v.Shots)
			verdicts[i] = v
			return nil
		})
	}

	if err := eg.Wait(); err != nil {
		return Stats{}, err
	}

	return summarize(verdicts), nil
}

func summarize(verdicts []match.Verdict) Stats {
	stats := Stats{
		Games:    len(verdicts),
		MinShots: verdicts[0].Shots,
	}

	total := 0
	for _, v := range verdicts {
		if v.Winner == game.SideUser {
			stats.UserWins++
		} else {
			stats.ComputerWins++
		}

		total += v.Shots
		stats.MinShots = min(stats.MinShots, v.Shots)
		stats.MaxShots = max(stats.MaxShots, v.Shots)
	}
	stats.AvgShots = float64(total) / float64(len(verdicts))

	return stats
}
