// Package config collects the settings of the blockfall commands from
// defaults, an optional .env file, BLOCKFALL_* environment variables and
// command-line flags, in increasing order of precedence.
package config

import (
	"errors"
	"flag"
	"fmt"
	"io/fs"
	"math/rand/v2"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"github.com/plus3/blockfall/scorestore"
	"github.com/plus3/blockfall/tetris"
)

// Environment variable names.
const (
	EnvScoreFile = "BLOCKFALL_SCORE_FILE"
	EnvMinDelay  = "BLOCKFALL_MIN_DELAY"
	EnvMaxDelay  = "BLOCKFALL_MAX_DELAY"
	EnvDelayStep = "BLOCKFALL_DELAY_STEP"
	EnvCellSize  = "BLOCKFALL_CELL_SIZE"
	EnvSeed      = "BLOCKFALL_SEED"
	EnvDebug     = "BLOCKFALL_DEBUG"
	EnvHTTPAddr  = "BLOCKFALL_HTTP_ADDR"
)

type Config struct {
	// ScoreFile is where the best score is kept. Empty keeps it in memory.
	ScoreFile string
	MinDelay  time.Duration
	MaxDelay  time.Duration
	DelayStep time.Duration
	CellSize  int

	// Seed fixes the piece order when non-zero.
	Seed     uint64
	Debug    bool
	HTTPAddr string
}

func Default() Config {
	return Config{
		ScoreFile: scorestore.DefaultPath,
		MinDelay:  tetris.DefaultSpeed.Min,
		MaxDelay:  tetris.DefaultSpeed.Max,
		DelayStep: tetris.DefaultSpeed.Step,
		CellSize:  25,
	}
}

// Load returns the defaults overridden by the given .env files (".env" when
// none are named; missing files are skipped) and then by the process
// environment. Variables already set in the environment win over .env values.
func Load(envFiles ...string) (Config, error) {
	if len(envFiles) == 0 {
		envFiles = []string{".env"}
	}
	for _, file := range envFiles {
		if err := godotenv.Load(file); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return Config{}, fmt.Errorf("load %s: %w", file, err)
		}
	}

	cfg := Default()
	if err := cfg.applyEnv(os.LookupEnv); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c *Config) applyEnv(lookup func(string) (string, bool)) error {
	if v, ok := lookup(EnvScoreFile); ok {
		c.ScoreFile = v
	}
	if v, ok := lookup(EnvHTTPAddr); ok {
		c.HTTPAddr = v
	}

	durations := []struct {
		name string
		dst  *time.Duration
	}{
		{EnvMinDelay, &c.MinDelay},
		{EnvMaxDelay, &c.MaxDelay},
		{EnvDelayStep, &c.DelayStep},
	}
	for _, d := range durations {
		v, ok := lookup(d.name)
		if !ok {
			continue
		}
		parsed, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("%s: %w", d.name, err)
		}
		*d.dst = parsed
	}

	if v, ok := lookup(EnvCellSize); ok {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("%s: %w", EnvCellSize, err)
		}
		c.CellSize = n
	}
	if v, ok := lookup(EnvSeed); ok {
		n, err := strconv.ParseUint(v, 10, 64)
		if err != nil {
			return fmt.Errorf("%s: %w", EnvSeed, err)
		}
		c.Seed = n
	}
	if v, ok := lookup(EnvDebug); ok {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("%s: %w", EnvDebug, err)
		}
		c.Debug = b
	}
	return nil
}

// BindFlags registers one flag per setting on flags, using the current values
// as defaults.
func (c *Config) BindFlags(flags *flag.FlagSet) {
	flags.StringVar(&c.ScoreFile, "scores", c.ScoreFile, "File the best score is kept in. Empty keeps it in memory.")
	flags.DurationVar(&c.MinDelay, "min-delay", c.MinDelay, "Shortest gravity delay.")
	flags.DurationVar(&c.MaxDelay, "max-delay", c.MaxDelay, "Gravity delay at score 0.")
	flags.DurationVar(&c.DelayStep, "delay-step", c.DelayStep, "Gravity delay decrease per point scored.")
	flags.IntVar(&c.CellSize, "cell", c.CellSize, "Cell size in pixels.")
	flags.Uint64Var(&c.Seed, "seed", c.Seed, "Piece order seed. 0 picks a random order.")
	flags.BoolVar(&c.Debug, "debug", c.Debug, "Show the ImGui debug overlay.")
	flags.StringVar(&c.HTTPAddr, "http", c.HTTPAddr, "Address of the read-only status server. Empty disables it.")
}

func (c Config) Validate() error {
	switch {
	case c.MinDelay <= 0:
		return errors.New("min delay must be positive")
	case c.MaxDelay < c.MinDelay:
		return fmt.Errorf("max delay %s is below min delay %s", c.MaxDelay, c.MinDelay)
	case c.DelayStep < 0:
		return errors.New("delay step must not be negative")
	case c.CellSize <= 0:
		return errors.New("cell size must be positive")
	}
	return nil
}

func (c Config) Speed() tetris.Speed {
	return tetris.Speed{Min: c.MinDelay, Max: c.MaxDelay, Step: c.DelayStep}
}

// Store returns the best-score store the configuration names.
func (c Config) Store() tetris.ScoreStore {
	if c.ScoreFile == "" {
		return &scorestore.MemoryStore{}
	}
	return scorestore.NewFileStore(c.ScoreFile)
}

// Shuffle returns a seeded shuffle when Seed is set, or nil for the default
// random source.
func (c Config) Shuffle() tetris.ShuffleFunc {
	if c.Seed == 0 {
		return nil
	}
	return rand.New(rand.NewPCG(c.Seed, c.Seed)).Shuffle
}
