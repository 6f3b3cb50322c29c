package main

import (
	"errors"
	"fmt"
	"io"

	flag "github.com/spf13/pflag"

	text2img "github.com/alnah/go-text2img"
	"github.com/alnah/go-text2img/internal/config"
	"github.com/alnah/go-text2img/internal/corpus"
	"github.com/alnah/go-text2img/internal/hints"
)

// runShardCmd prints the document ranges ranks would own.
// With a rank (flag or RANK) only that rank is printed.
func runShardCmd(args []string, env *Environment) error {
	flags, positional, err := parseShardFlags(args)
	if errors.Is(err, flag.ErrHelp) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("%w: %v", ErrUsage, err)
	}
	if len(positional) > 1 {
		return fmt.Errorf("%w: expected at most one corpus, got %d arguments", ErrUsage, len(positional))
	}

	cfg, err := loadLayeredConfig(flags.common.config, env)
	if err != nil {
		return err
	}
	mergeCorpusFlags(flags.corpus, cfg)
	mergeShardFlags(flags.shard, cfg)
	if len(positional) == 1 {
		cfg.Corpus.Path = positional[0]
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	if cfg.Shard.WorldSize == 0 {
		return fmt.Errorf("%w%s", ErrMissingShardEnv, hints.ForShardEnv())
	}

	total, err := resolveTotal(cfg)
	if err != nil {
		return err
	}

	if cfg.Shard.Rank != config.RankUnset {
		s, err := text2img.ComputeShard(total, cfg.Shard.WorldSize, cfg.Shard.Rank)
		if err != nil {
			return err
		}
		printShard(env.Stdout, s)
		return nil
	}

	shards, err := text2img.ComputeShards(total, cfg.Shard.WorldSize)
	if err != nil {
		return err
	}
	for _, s := range shards {
		printShard(env.Stdout, s)
	}
	return nil
}

// resolveTotal returns the configured total, or the corpus length.
func resolveTotal(cfg *config.Config) (int, error) {
	if cfg.Shard.Total > 0 {
		return cfg.Shard.Total, nil
	}
	if cfg.Corpus.Path == "" {
		return 0, fmt.Errorf("%w: pass --total or a corpus path", ErrNoCorpus)
	}

	docs, err := corpus.Open(cfg.Corpus.Path, cfg.Corpus.Format, cfg.Corpus.TextField)
	if err != nil {
		return 0, err
	}
	defer func() { _ = docs.Close() }()
	return docs.Len(), nil
}

// printShard writes one shard line.
func printShard(w io.Writer, s text2img.Shard) {
	fmt.Fprintf(w, "%s\t%d documents\n", s, s.Len())
}
