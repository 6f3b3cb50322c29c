package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strconv"
	"time"

	"github.com/sirupsen/logrus"
	flag "github.com/spf13/pflag"

	text2img "github.com/alnah/go-text2img"
	"github.com/alnah/go-text2img/internal/config"
	"github.com/alnah/go-text2img/internal/corpus"
	"github.com/alnah/go-text2img/internal/fileutil"
	"github.com/alnah/go-text2img/internal/fonts"
	"github.com/alnah/go-text2img/internal/hints"
)

// Sentinel errors for CLI operations.
var (
	ErrUsage           = errors.New("invalid usage")
	ErrNoCorpus        = errors.New("no corpus specified")
	ErrMissingShardEnv = errors.New("sharded mode requires world size and rank")
	ErrInvalidShardEnv = errors.New("invalid shard environment variable")
	ErrOutputDir       = errors.New("failed to create output directory")
	ErrRunIncomplete   = errors.New("run did not complete")
)

// runRenderCmd parses flags and runs the render command.
func runRenderCmd(ctx context.Context, args []string, env *Environment) error {
	flags, positional, err := parseRenderFlags(args)
	if errors.Is(err, flag.ErrHelp) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("%w: %v", ErrUsage, err)
	}
	return runRender(ctx, positional, flags, env)
}

// runRender renders one shard of a corpus to page images and metadata.
func runRender(ctx context.Context, positional []string, flags *renderFlags, env *Environment) error {
	if len(positional) > 1 {
		return fmt.Errorf("%w: expected one corpus, got %d arguments", ErrUsage, len(positional))
	}

	cfg, err := loadLayeredConfig(flags.common.config, env)
	if err != nil {
		return err
	}
	mergeFlags(flags, cfg)
	if len(positional) == 1 {
		cfg.Corpus.Path = positional[0]
	}
	if cfg.Corpus.Path == "" {
		return fmt.Errorf("%w: pass a corpus path or set corpus.path in the config", ErrNoCorpus)
	}
	if err := cfg.Validate(); err != nil {
		return withCanvasHint(err)
	}

	log := newLogger(env.Stderr, flags.common.quiet, flags.common.verbose)

	src, err := resolveFont(cfg.Render)
	if err != nil {
		return err
	}
	if src.IsBitmap() && cfg.Render.FontSize != text2img.DefaultFontSize {
		log.WithFields(logrus.Fields{
			"font": src.Name(),
			"size": cfg.Render.FontSize,
		}).Warn("bitmap font has a fixed size, font size ignored")
	}

	docs, err := corpus.Open(cfg.Corpus.Path, cfg.Corpus.Format, cfg.Corpus.TextField)
	if err != nil {
		if errors.Is(err, corpus.ErrUnknownFormat) {
			return fmt.Errorf("%w%s", err, hints.ForCorpusFormat())
		}
		return err
	}
	defer func() { _ = docs.Close() }()

	shard, err := resolveShard(cfg.Shard, docs.Len())
	if err != nil {
		return err
	}

	if err := fileutil.EnsureDir(cfg.Output.ImageDir); err != nil {
		return fmt.Errorf("%w: %v%s", ErrOutputDir, err, hints.ForOutputDirectory())
	}
	sink, err := text2img.OpenSink(resolveMetadataPath(cfg, shard))
	if err != nil {
		return fmt.Errorf("%w%s", err, hints.ForOutputDirectory())
	}
	defer func() { _ = sink.Close() }()

	layout := cfg.Render.Layout()
	pool := text2img.NewRendererPool(
		text2img.ResolvePoolSize(cfg.Workers),
		text2img.NewRendererFactory(src, layout),
	)
	defer func() { _ = pool.Close() }()

	coord, err := text2img.NewCoordinator(text2img.Options{
		Corpus:    docs,
		Sink:      sink,
		Renderers: pool,
		Layout:    layout,
		OutputDir: cfg.Output.ImageDir,
		Logger:    log,
	})
	if err != nil {
		return withCanvasHint(err)
	}

	log.WithFields(logrus.Fields{
		"corpus":   cfg.Corpus.Path,
		"font":     src.Name(),
		"metadata": sink.Path(),
		"images":   cfg.Output.ImageDir,
	}).Debug("configuration resolved")

	start := env.Now()
	summary, runErr := coord.Run(ctx, shard)
	elapsed := env.Now().Sub(start)

	if err := sink.Close(); err != nil && runErr == nil {
		runErr = fmt.Errorf("%w: %v", text2img.ErrSinkWrite, err)
	}
	if runErr == nil && cfg.Output.IndexPath != "" {
		if err := sink.WriteIndex(cfg.Output.IndexPath); err != nil {
			runErr = fmt.Errorf("writing index: %w", err)
		}
	}

	if !flags.common.quiet {
		printSummary(env.Stdout, shard, summary, sink.Path(), elapsed)
	}
	if runErr != nil {
		return fmt.Errorf("%w: %s: %w", ErrRunIncomplete, shard, runErr)
	}
	return nil
}

// loadLayeredConfig builds the config from file and environment.
// The config file comes from --config, else TEXT2IMG_CONFIG, else defaults.
func loadLayeredConfig(flagConfig string, env *Environment) (*config.Config, error) {
	warnUnknownEnvVars(env.Stderr, env.Environ())

	envCfg, err := loadEnvConfig(env.Getenv)
	if err != nil {
		return nil, err
	}

	cfg := config.DefaultConfig()
	name := flagConfig
	if name == "" {
		name = envCfg.ConfigPath
	}
	if name != "" {
		cfg, err = config.LoadConfig(name)
		if err != nil {
			if errors.Is(err, config.ErrConfigNotFound) && !fileutil.IsFilePath(name) {
				return nil, fmt.Errorf("loading config: %w%s", err, hints.ForConfigNotFound(config.SearchPaths(name)))
			}
			return nil, fmt.Errorf("loading config: %w", err)
		}
	}

	applyEnvConfig(envCfg, cfg)
	return cfg, nil
}

// resolveFont loads the configured font.
func resolveFont(r config.RenderConfig) (*fonts.Source, error) {
	resolver, err := fonts.NewResolver(r.FontDir)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", text2img.ErrFontLoad, err)
	}
	src, err := resolver.Resolve(r.Font)
	if err != nil {
		if errors.Is(err, fonts.ErrFontNotFound) {
			return nil, fmt.Errorf("%w: %w%s", text2img.ErrFontLoad, err, hints.ForFontNotFound(fonts.Names()))
		}
		return nil, fmt.Errorf("%w: %w", text2img.ErrFontLoad, err)
	}
	return src, nil
}

// resolveShard returns the index range this process owns.
// Unsharded runs own [0, total). Total defaults to the corpus length.
func resolveShard(s config.ShardConfig, corpusLen int) (text2img.Shard, error) {
	total := s.Total
	if total == 0 {
		total = corpusLen
	}

	if !s.Enabled {
		return text2img.ComputeShard(total, 1, 0)
	}
	if s.WorldSize == 0 || s.Rank == config.RankUnset {
		return text2img.Shard{}, fmt.Errorf("%w%s", ErrMissingShardEnv, hints.ForShardEnv())
	}
	return text2img.ComputeShard(total, s.WorldSize, s.Rank)
}

// resolveMetadataPath returns the metadata file for a run.
// An explicit path wins; sharded runs default to <rank>.json so that ranks
// never share a file.
func resolveMetadataPath(cfg *config.Config, shard text2img.Shard) string {
	if cfg.Output.MetadataPath != "" {
		return cfg.Output.MetadataPath
	}
	if cfg.Shard.Enabled {
		return strconv.Itoa(shard.Rank) + ".json"
	}
	return config.DefaultMetadataPath
}

// newLogger returns the run logger writing to w.
func newLogger(w io.Writer, quiet, verbose bool) *logrus.Logger {
	log := logrus.New()
	log.SetOutput(w)
	log.SetFormatter(&logrus.TextFormatter{DisableColors: true, FullTimestamp: true})

	switch {
	case quiet:
		log.SetLevel(logrus.ErrorLevel)
	case verbose:
		log.SetLevel(logrus.DebugLevel)
	default:
		log.SetLevel(logrus.InfoLevel)
	}
	return log
}

// printSummary writes the end-of-run report.
func printSummary(w io.Writer, shard text2img.Shard, s text2img.Summary, metadata string, elapsed time.Duration) {
	fmt.Fprintf(w, "%s: %s (%v)\n", shard, s, elapsed.Round(time.Millisecond))
	fmt.Fprintf(w, "metadata: %s\n", filepath.Clean(metadata))
}

// withCanvasHint appends a hint when a layout cannot fit one line.
func withCanvasHint(err error) error {
	if errors.Is(err, text2img.ErrCanvasTooSmall) {
		return fmt.Errorf("%w%s", err, hints.ForCanvasTooSmall())
	}
	return err
}
