package main

import (
	"context"
	"errors"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gin-gonic/gin"
	"golang.org/x/sync/semaphore"

	"github.com/mrsobakin/seabattle/internal/sim"
)

const (
	SimulationTimeout time.Duration = 2 * time.Minute
)

const (
	ErrBadFormat string = "bad_format"
	ErrBusy      string = "busy"
	ErrTimeout   string = "timeout"
	ErrUnknown   string = "unknown"
)

var (
	errSimulationTimeout error = errors.New("simulation timeout")
)

type server struct {
	sim    *sim.Simulator
	jobs   *semaphore.Weighted
	logger *log.Logger
}

func (s *server) handleSimulate(c *gin.Context) {
	var params struct {
		Games int    `json:"games" binding:"required"`
		Seed  uint64 `json:"seed"`
	}

	if !tryBindParams(c, &params) {
		return
	}

	if params.Games <= 0 || params.Games > sim.MaxGames {
		c.JSON(422, map[string]any{
			"error":   ErrBadFormat,
			"details": sim.ErrBadGameCount.Error(),
		})
		return
	}

	if err := s.jobs.Acquire(c.Request.Context(), 1); err != nil {
		c.JSON(503, map[string]any{
			"error":   ErrBusy,
			"details": err.Error(),
		})
		return
	}
	defer s.jobs.Release(1)

	timeoutCtx, cancel := context.WithTimeoutCause(c.Request.Context(), SimulationTimeout, errSimulationTimeout)
	defer cancel()

	stats, err := s.sim.Run(timeoutCtx, params.Games, params.Seed)
	if err == nil {
		s.logger.Info("simulation finished", "games", stats.Games, "user_wins", stats.UserWins, "avg_shots", stats.AvgShots)
		c.JSON(200, stats)
		return
	}

	s.logger.Error("simulation failed", "err", err)

	if errors.Is(context.Cause(timeoutCtx), errSimulationTimeout) {
		c.JSON(408, map[string]any{
			"error":   ErrTimeout,
			"details": err.Error(),
		})
		return
	}

	c.JSON(500, map[string]any{
		"error":   ErrUnknown,
		"details": err.Error(),
	})
}

func (s *server) handleHealth(c *gin.Context) {
	c.JSON(200, map[string]any{
		"status": "ok",
	})
}

func (s *server) RegisterEndpoints(e *gin.Engine) {
	e.POST("/simulate", s.handleSimulate)
	e.GET("/health", s.handleHealth)
}
