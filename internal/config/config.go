package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"runtime"
	"strconv"
	"time"

	"github.com/charmbracelet/log"
	"github.com/joho/godotenv"
)

const (
	EnvLogLevel    = "SEABATTLE_LOG_LEVEL"
	EnvMoveClock   = "SEABATTLE_MOVE_CLOCK"
	EnvServerAddr  = "SEABATTLE_SERVER_ADDR"
	EnvMaxJobs     = "SEABATTLE_MAX_JOBS"
	EnvSimParallel = "SEABATTLE_SIM_PARALLEL"
	EnvSeed        = "SEABATTLE_SEED"
)

const DefaultServerAddr = "127.0.0.1:4239"

type Config struct {
	LogLevel log.Level

	// Cumulative thinking time of the interactive player.
	// Zero disables the clock.
	MoveClock time.Duration

	ServerAddr  string
	MaxJobs     int
	SimParallel int

	// Zero means a random seed.
	Seed uint64
}

func Default() Config {
	return Config{
		LogLevel:    log.InfoLevel,
		ServerAddr:  DefaultServerAddr,
		MaxJobs:     runtime.NumCPU() * 2,
		SimParallel: runtime.NumCPU(),
	}
}

// Loads configuration from the environment. Variables from `.env`
// files are applied first if such files exist; variables already set
// in the environment take precedence.
func Load(envFiles ...string) (Config, error) {
	if len(envFiles) == 0 {
		envFiles = []string{".env"}
	}

	for _, file := range envFiles {
		if err := godotenv.Load(file); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return Config{}, fmt.Errorf("failed to load %s: %w", file, err)
		}
	}

	return FromEnv()
}

func FromEnv() (Config, error) {
	conf := Default()

	if v, ok := os.LookupEnv(EnvLogLevel); ok {
		level, err := log.ParseLevel(v)
		if err != nil {
			return Config{}, fmt.Errorf("invalid %s: %w", EnvLogLevel, err)
		}
		conf.LogLevel = level
	}

	if v, ok := os.LookupEnv(EnvMoveClock); ok {
		d, err := time.ParseDuration(v)
		if err != nil || d < 0 {
			return Config{}, fmt.Errorf("invalid %s: %q", EnvMoveClock, v)
		}
		conf.MoveClock = d
	}

	if v, ok := os.LookupEnv(EnvServerAddr); ok && v != "" {
		conf.ServerAddr = v
	}

	var err error
	if conf.MaxJobs, err = positiveInt(EnvMaxJobs, conf.MaxJobs); err != nil {
		return Config{}, err
	}
	if conf.SimParallel, err = positiveInt(EnvSimParallel, conf.SimParallel); err != nil {
		return Config{}, err
	}

	if v, ok := os.LookupEnv(EnvSeed); ok {
		seed, err := strconv.ParseUint(v, 10, 64)
		if err != nil {
			return Config{}, fmt.Errorf("invalid %s: %w", EnvSeed, err)
		}
		conf.Seed = seed
	}

	return conf, nil
}

func positiveInt(key string, def int) (int, error) {
	v, ok := os.LookupEnv(key)
	if !ok {
		return def, nil
	}

	n, err := strconv.Atoi(v)
	if err != nil || n <= 0 {
		return 0, fmt.Errorf("invalid %s: %q", key, v)
	}
	return n, nil
}
