package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/dshills/scamcheck/internal/config"
	"github.com/dshills/scamcheck/internal/logger"
	"github.com/dshills/scamcheck/internal/risk"
	"github.com/dshills/scamcheck/internal/session"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

// sharedFlags are accepted by every analyzing command.
type sharedFlags struct {
	configPath  string
	format      string
	out         string
	seed        uint64
	delay       time.Duration
	profileName string
	profileFile string
	historySize int
	verbose     bool

	// changed records which flags were set explicitly on the command line.
	changed map[string]bool
}

func (f *sharedFlags) register(cmd *cobra.Command) {
	flags := cmd.Flags()
	flags.StringVar(&f.configPath, "config", "", "YAML config file")
	flags.StringVar(&f.format, "format", "text", "Output format: text, md or json")
	flags.StringVar(&f.out, "out", "", "Output file path (default: stdout)")
	flags.Uint64Var(&f.seed, "seed", 0, "Random seed for reproducible filler factors")
	flags.DurationVar(&f.delay, "delay", session.DefaultDelay, "Simulated lookup latency")
	flags.StringVar(&f.profileName, "profile", "crypto", "Built-in indicator profile")
	flags.StringVar(&f.profileFile, "profile-file", "", "Indicator profile YAML file (overrides --profile)")
	flags.IntVar(&f.historySize, "history-size", 5, "Number of recent scans to keep")
	flags.BoolVar(&f.verbose, "verbose", false, "Log processing steps to stderr")
}

// markChanged snapshots which flags the user set.
func (f *sharedFlags) markChanged(cmd *cobra.Command) {
	f.changed = make(map[string]bool)
	for _, name := range []string{"format", "seed", "delay", "profile", "profile-file", "history-size"} {
		if cmd.Flags().Changed(name) {
			f.changed[name] = true
		}
	}
}

// resolveConfig layers defaults, the config file, .env, the environment and
// explicit flags, in that order.
func (f *sharedFlags) resolveConfig() (*config.Config, error) {
	if err := config.LoadDotEnv(".env"); err != nil {
		return nil, err
	}
	cfg, err := config.Load(f.configPath)
	if err != nil {
		return nil, err
	}
	if err := cfg.ApplyEnv(os.LookupEnv); err != nil {
		return nil, err
	}

	if f.changed["format"] {
		cfg.Format = f.format
	}
	if f.changed["seed"] {
		seed := f.seed
		cfg.Seed = &seed
	}
	if f.changed["delay"] {
		cfg.Delay = f.delay
	}
	if f.changed["profile"] {
		cfg.Profile = f.profileName
		cfg.ProfileFile = ""
	}
	if f.changed["profile-file"] {
		cfg.ProfileFile = f.profileFile
	}
	if f.changed["history-size"] {
		cfg.HistorySize = f.historySize
	}
	if f.verbose {
		cfg.Log.Level = "debug"
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// runtimeEnv is everything a command needs once configuration is resolved.
type runtimeEnv struct {
	cfg      *config.Config
	log      *logrus.Logger
	closeLog func() error
	ctrl     *session.Controller
}

func setup(f *sharedFlags, stderr io.Writer) (*runtimeEnv, error) {
	cfg, err := f.resolveConfig()
	if err != nil {
		return nil, exitError(3, "configuration error: %v", err)
	}

	log, closeLog, err := logger.New(cfg.Log.Level, cfg.Log.File, stderr)
	if err != nil {
		return nil, exitError(3, "failed to open log file: %v", err)
	}

	prof, err := cfg.LoadProfile()
	if err != nil {
		closeLog()
		return nil, exitError(3, "failed to load profile: %v", err)
	}
	log.WithField("profile", prof.Name).Debug("profile loaded")

	var opts []risk.Option
	if cfg.Seed != nil {
		log.WithField("seed", *cfg.Seed).Debug("using seeded random source")
		opts = append(opts, risk.WithRand(risk.SeededRand(*cfg.Seed)))
	}
	analyzer := risk.NewAnalyzer(prof, opts...)

	ctrl := session.New(analyzer, session.Config{
		Delay:       cfg.Delay,
		HistorySize: cfg.HistorySize,
		Logger:      log,
	})

	return &runtimeEnv{cfg: cfg, log: log, closeLog: closeLog, ctrl: ctrl}, nil
}

// openOutput returns the destination writer and a func that finalizes it.
func openOutput(path string, stdout io.Writer) (io.Writer, func() error, error) {
	if path == "" {
		return stdout, func() error { return nil }, nil
	}
	file, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0644)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open output: %w", err)
	}
	return file, file.Close, nil
}

func writeJSON(w io.Writer, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal output: %w", err)
	}
	_, err = fmt.Fprintln(w, string(data))
	return err
}
