package main

import (
	"bufio"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/kittclouds/morfo/internal/config"
	"github.com/kittclouds/morfo/internal/store"
	"github.com/kittclouds/morfo/pkg/dependency"
	"github.com/kittclouds/morfo/pkg/pipeline"
	"github.com/kittclouds/morfo/pkg/resources"
	"github.com/kittclouds/morfo/pkg/tagger"
)

// app carries state shared by every subcommand.
type app struct {
	configPath string
	cfg        *config.Config
	logger     *slog.Logger

	// flag values, applied over cfg only when set
	db           string
	seed         string
	logLevel     string
	contextRules bool
	workers      int
}

func newRootCmd() *cobra.Command {
	a := &app{}

	root := &cobra.Command{
		Use:           "morfo",
		Short:         "Indonesian POS tagging, chunking and dependency heuristics",
		Version:       Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.setup(cmd)
		},
	}

	f := root.PersistentFlags()
	f.StringVarP(&a.configPath, "config", "c", "", "YAML config file")
	f.StringVar(&a.db, "db", "", "SQLite resource database (env "+config.EnvDB+")")
	f.StringVar(&a.seed, "seed", "", "YAML resource file (env "+config.EnvSeed+")")
	f.StringVar(&a.logLevel, "log-level", "", "debug, info, warn or error (env "+config.EnvLogLevel+")")
	f.BoolVar(&a.contextRules, "context-rules", false, "apply contextual disambiguation (env "+config.EnvContextRules+")")
	f.IntVarP(&a.workers, "workers", "w", 0, "concurrent documents (env "+config.EnvWorkers+")")

	root.AddCommand(
		a.tagCmd(),
		a.chunkCmd(),
		a.parseCmd(),
		a.seedCmd(),
		a.exportCmd(),
		a.statsCmd(),
	)
	return root
}

// setup loads the config and lets explicit flags win over it.
func (a *app) setup(cmd *cobra.Command) error {
	cfg, err := config.Load(a.configPath)
	if err != nil {
		return err
	}

	flags := cmd.Flags()
	if flags.Changed("db") {
		cfg.DB = a.db
	}
	if flags.Changed("seed") {
		cfg.Seed = a.seed
	}
	if flags.Changed("log-level") {
		cfg.LogLevel = a.logLevel
	}
	if flags.Changed("context-rules") {
		cfg.ContextRules = a.contextRules
	}
	if flags.Changed("workers") {
		cfg.Workers = a.workers
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	level, _ := cfg.Level()
	a.cfg = cfg
	a.logger = slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: level}))
	return nil
}

// bundle picks the resource source: a seed file, then a non-empty
// database, then the embedded defaults.
func (a *app) bundle() (*resources.Bundle, error) {
	if a.cfg.Seed != "" {
		raw, err := os.ReadFile(a.cfg.Seed)
		if err != nil {
			return nil, fmt.Errorf("read seed: %w", err)
		}
		seed, err := resources.Parse(raw)
		if err != nil {
			return nil, err
		}
		a.logger.Debug("resources from seed file", "path", a.cfg.Seed)
		return seed.Compile()
	}

	if a.cfg.DB != "" {
		s, err := store.NewSQLiteStoreWithDSN(a.cfg.DB)
		if err != nil {
			return nil, err
		}
		defer s.Close()

		st, err := s.Stats()
		if err != nil {
			return nil, err
		}
		if st.Entries+st.Patterns+st.Idioms+st.Bigrams > 0 {
			a.logger.Debug("resources from database", "path", a.cfg.DB,
				"entries", st.Entries, "patterns", st.Patterns, "idioms", st.Idioms, "bigrams", st.Bigrams)
			return s.Resources()
		}
		a.logger.Warn("database is empty, using embedded resources", "path", a.cfg.DB)
	}

	return resources.Default()
}

func (a *app) pipeline() (*pipeline.Pipeline, error) {
	b, err := a.bundle()
	if err != nil {
		return nil, err
	}

	opts := []tagger.Option{tagger.WithLogger(a.logger)}
	if a.cfg.ContextRules {
		opts = append(opts, tagger.WithResolver(tagger.Chain(
			tagger.LexiconResolver{Lexicon: b.Lexicon},
			tagger.ContextResolver{},
		)))
	}

	return pipeline.New(tagger.NewFromBundle(b, opts...), dependency.NewHeuristicFinder()), nil
}

func (a *app) openStore() (*store.SQLiteStore, error) {
	if a.cfg.DB == "" {
		return nil, errors.New("no database configured (use --db or " + config.EnvDB + ")")
	}
	return store.NewSQLiteStoreWithDSN(a.cfg.DB)
}

// documents returns the token sequences to process. Arguments form a single
// document; otherwise every non-blank stdin line is one.
func documents(args []string, in io.Reader) ([][]string, error) {
	if len(args) > 0 {
		return [][]string{strings.Fields(strings.Join(args, " "))}, nil
	}

	var docs [][]string
	sc := bufio.NewScanner(in)
	sc.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for sc.Scan() {
		if tokens := strings.Fields(sc.Text()); len(tokens) > 0 {
			docs = append(docs, tokens)
		}
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("read input: %w", err)
	}
	return docs, nil
}

func writeJSON(w io.Writer, values ...any) error {
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	for _, v := range values {
		if err := enc.Encode(v); err != nil {
			return err
		}
	}
	return nil
}
