package main

import (
	"os"

	"github.com/charmbracelet/log"
	"github.com/gin-gonic/gin"
	"golang.org/x/sync/semaphore"

	"github.com/mrsobakin/seabattle/internal/config"
	"github.com/mrsobakin/seabattle/internal/game/field"
	"github.com/mrsobakin/seabattle/internal/sim"
)

func NewServer(conf config.Config, logger *log.Logger) *server {
	return &server{
		sim:    sim.New(field.DefaultConfiguration(), conf.SimParallel, logger),
		jobs:   semaphore.NewWeighted(int64(conf.MaxJobs)),
		logger: logger,
	}
}

func main() {
	logger := log.NewWithOptions(os.Stderr, log.Options{
		Prefix:          "seabattle-server",
		ReportTimestamp: true,
	})

	conf, err := config.Load()
	if err != nil {
		logger.Fatal("failed to load configuration", "err", err)
	}
	logger.SetLevel(conf.LogLevel)

	router := gin.Default()

	s := NewServer(conf, logger)

	s.RegisterEndpoints(router)

	addr := conf.ServerAddr
	if len(os.Args) >= 2 {
		addr = os.Args[1]
	}

	logger.Info("listening", "addr", addr)
	logger.Fatal("server stopped", "err", router.Run(addr))
}
