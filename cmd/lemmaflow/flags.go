package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/cognicore/lemmaflow/internal/logger"
	"github.com/cognicore/lemmaflow/pkg/lemmaflow"
	"github.com/cognicore/lemmaflow/pkg/lemmaflow/config"
	"github.com/cognicore/lemmaflow/pkg/lemmaflow/ingest"
	"github.com/cognicore/lemmaflow/pkg/lemmaflow/store"
	"github.com/cognicore/lemmaflow/pkg/lemmaflow/store/sqlite"
)

// bindConfigFlags registers the shared pipeline flags, writing into cfg.
func bindConfigFlags(fs *pflag.FlagSet, cfg *config.Config) {
	fs.String("config", "", "YAML config file; explicit flags override its values")
	fs.StringVar(&cfg.Input, "input", cfg.Input, "Input TSV file: date, headline, content (required)")
	fs.StringVar(&cfg.Stopwords, "stopwords", cfg.Stopwords, "Stopword file, one word per line or YAML terms list")
	fs.StringVar(&cfg.Lexicon, "lexicon", cfg.Lexicon, "Optional YAML file of lemma overrides")
	fs.IntVar(&cfg.Limit, "limit", cfg.Limit, "Maximum rows to read (0 = unlimited)")
	fs.IntVar(&cfg.ChunkSize, "chunk-size", cfg.ChunkSize, "Documents per chunk sent to a worker")
	fs.IntVar(&cfg.BatchSize, "batch-size", cfg.BatchSize, "Documents per micro-batch inside a worker")
	fs.IntVar(&cfg.Workers, "workers", cfg.Workers, "Number of parallel workers")
	fs.BoolVar(&cfg.StripHTML, "strip-html", cfg.StripHTML, "Strip HTML markup from content before cleaning")
	fs.BoolVar(&cfg.NoLemmatizer, "no-lemmatizer", cfg.NoLemmatizer, "Skip dictionary lemmatization (lowercase and filter only)")
	fs.StringVar(&cfg.Log.Level, "log-level", cfg.Log.Level, "Log level: debug, info, warn, error")
	fs.BoolVar(&cfg.Log.JSON, "log-json", cfg.Log.JSON, "Emit JSON logs")
}

// resolveConfig merges the optional config file with the flags the user
// set explicitly, then validates the result.
func resolveConfig(fs *pflag.FlagSet, flagCfg config.Config) (config.Config, error) {
	path, _ := fs.GetString("config")
	if path == "" {
		return flagCfg, flagCfg.Validate()
	}

	cfg, err := config.Load(path)
	if err != nil {
		return cfg, fmt.Errorf("load config: %w", err)
	}

	fs.Visit(func(f *pflag.Flag) {
		switch f.Name {
		case "input":
			cfg.Input = flagCfg.Input
		case "stopwords":
			cfg.Stopwords = flagCfg.Stopwords
		case "lexicon":
			cfg.Lexicon = flagCfg.Lexicon
		case "limit":
			cfg.Limit = flagCfg.Limit
		case "chunk-size":
			cfg.ChunkSize = flagCfg.ChunkSize
		case "batch-size":
			cfg.BatchSize = flagCfg.BatchSize
		case "workers":
			cfg.Workers = flagCfg.Workers
		case "strip-html":
			cfg.StripHTML = flagCfg.StripHTML
		case "no-lemmatizer":
			cfg.NoLemmatizer = flagCfg.NoLemmatizer
		case "log-level":
			cfg.Log.Level = flagCfg.Log.Level
		case "log-json":
			cfg.Log.JSON = flagCfg.Log.JSON
		case "output":
			cfg.Output = flagCfg.Output
		case "db":
			cfg.DB = flagCfg.DB
		}
	})

	return cfg, cfg.Validate()
}

func newLogger(cfg config.Config) logger.Logger {
	lcfg := logger.DefaultConfig()
	lcfg.Level = logger.ParseLevel(cfg.Log.Level)
	lcfg.JSON = cfg.Log.JSON
	return logger.NewLogger(lcfg)
}

// setup is what every pipeline command needs before processing.
type setup struct {
	cfg        config.Config
	log        logger.Logger
	components *config.Components
	docs       []ingest.Document
}

// prepare resolves configuration, loads components and reads the input.
// The command's context carries the configured logger afterwards.
func prepare(cmd *cobra.Command, flagCfg config.Config) (*setup, error) {
	cfg, err := resolveConfig(cmd.Flags(), flagCfg)
	if err != nil {
		return nil, err
	}
	if cfg.Input == "" {
		return nil, fmt.Errorf("--input is required")
	}

	log := newLogger(cfg)
	cmd.SetContext(logger.ContextWithLogger(cmd.Context(), log))

	components, err := config.NewLoader(cfg).Load()
	if err != nil {
		return nil, err
	}
	log.Info("loaded components", "stopwords", components.Stopwords.Len(), "lemmatizer", !cfg.NoLemmatizer)

	docs, err := ingest.LoadTSV(cfg.Input, cfg.Limit)
	if err != nil {
		return nil, err
	}
	log.Info("loaded documents", "docs", len(docs), "input", cfg.Input)

	return &setup{cfg: cfg, log: log, components: components, docs: docs}, nil
}

// newFlow builds a pipeline from s, opening the result store when a db
// path is configured.
func (s *setup) newFlow(ctx context.Context, chunkSize, workers int) (*lemmaflow.Lemmaflow, error) {
	var st store.Store
	if s.cfg.DB != "" {
		var err error
		st, err = sqlite.OpenSQLite(ctx, s.cfg.DB)
		if err != nil {
			return nil, fmt.Errorf("open database: %w", err)
		}
	}

	lf, err := lemmaflow.New(lemmaflow.Options{
		Annotator: s.components.Annotator,
		Cleaner:   s.components.Cleaner,
		Store:     st,
		Logger:    logger.FromContext(ctx),
		ChunkSize: chunkSize,
		BatchSize: s.cfg.BatchSize,
		Workers:   workers,
	})
	if err != nil {
		if st != nil {
			st.Close()
		}
		return nil, err
	}
	return lf, nil
}
