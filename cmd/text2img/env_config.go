package main

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/alnah/go-text2img/internal/config"
)

// Launcher variables set by distributed runners such as torchrun or mpirun.
const (
	envWorldSize = "WORLD_SIZE"
	envRank      = "RANK"
)

// envConfig holds configuration from environment variables.
// Provides cluster-friendly overrides without requiring YAML files.
type envConfig struct {
	// Sharding, set by the launcher
	WorldSize int // WORLD_SIZE: number of ranks (0 = unset)
	Rank      int // RANK: this process (config.RankUnset = unset)

	// Tool settings
	ConfigPath string // TEXT2IMG_CONFIG: config file name or path
	Font       string // TEXT2IMG_FONT: font name or path
	OutputDir  string // TEXT2IMG_OUTPUT_DIR: page image directory
	Workers    int    // TEXT2IMG_WORKERS: parallel workers
	Total      int    // TEXT2IMG_TOTAL: documents to partition
}

// knownEnvVars lists valid TEXT2IMG_* environment variables.
// Used to detect typos and warn users about unknown variables.
var knownEnvVars = map[string]bool{
	"TEXT2IMG_CONFIG":     true,
	"TEXT2IMG_FONT":       true,
	"TEXT2IMG_OUTPUT_DIR": true,
	"TEXT2IMG_WORKERS":    true,
	"TEXT2IMG_TOTAL":      true,
}

// loadEnvConfig reads configuration from environment variables.
// Malformed tool settings are ignored; a malformed WORLD_SIZE or RANK is an
// error because silently ignoring it would render the wrong shard.
func loadEnvConfig(getenv func(string) string) (*envConfig, error) {
	cfg := &envConfig{
		Rank:       config.RankUnset,
		ConfigPath: getenv("TEXT2IMG_CONFIG"),
		Font:       getenv("TEXT2IMG_FONT"),
		OutputDir:  getenv("TEXT2IMG_OUTPUT_DIR"),
	}

	if v := getenv(envWorldSize); v != "" {
		n, err := strconv.Atoi(strings.TrimSpace(v))
		if err != nil || n < 1 {
			return nil, fmt.Errorf("%w: %s=%q", ErrInvalidShardEnv, envWorldSize, v)
		}
		cfg.WorldSize = n
	}
	if v := getenv(envRank); v != "" {
		n, err := strconv.Atoi(strings.TrimSpace(v))
		if err != nil || n < 0 {
			return nil, fmt.Errorf("%w: %s=%q", ErrInvalidShardEnv, envRank, v)
		}
		cfg.Rank = n
	}

	if workers := getenv("TEXT2IMG_WORKERS"); workers != "" {
		if w, err := strconv.Atoi(workers); err == nil && w > 0 {
			cfg.Workers = w
		}
	}
	if total := getenv("TEXT2IMG_TOTAL"); total != "" {
		if n, err := strconv.Atoi(total); err == nil && n > 0 {
			cfg.Total = n
		}
	}

	return cfg, nil
}

// warnUnknownEnvVars logs warnings for unrecognized TEXT2IMG_* variables.
// Helps catch typos like TEXT2IMG_WORKER instead of TEXT2IMG_WORKERS.
func warnUnknownEnvVars(w io.Writer, environ []string) {
	for _, env := range environ {
		if strings.HasPrefix(env, "TEXT2IMG_") {
			name := strings.SplitN(env, "=", 2)[0]
			if !knownEnvVars[name] {
				fmt.Fprintf(w, "warning: unknown environment variable %s (typo?)\n", name)
			}
		}
	}
}

// applyEnvConfig applies environment variable values to config.
// Only set variables are applied, over whatever the config file holds.
// This ensures: CLI flags > env vars > config file > defaults
// (CLI flags are applied later via mergeFlags)
func applyEnvConfig(env *envConfig, cfg *config.Config) {
	if env.WorldSize > 0 {
		cfg.Shard.WorldSize = env.WorldSize
	}
	if env.Rank != config.RankUnset {
		cfg.Shard.Rank = env.Rank
	}
	if env.Total > 0 {
		cfg.Shard.Total = env.Total
	}
	if env.Font != "" {
		cfg.Render.Font = env.Font
	}
	if env.OutputDir != "" {
		cfg.Output.ImageDir = env.OutputDir
	}
	if env.Workers > 0 {
		cfg.Workers = env.Workers
	}
}
