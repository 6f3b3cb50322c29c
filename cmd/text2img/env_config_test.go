package main

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/alnah/go-text2img/internal/config"
)

func getenvFrom(vars map[string]string) func(string) string {
	return func(k string) string { return vars[k] }
}

// ---------------------------------------------------------------------------
// TestLoadEnvConfig - parsing of recognized variables
// ---------------------------------------------------------------------------

func TestLoadEnvConfig(t *testing.T) {
	t.Parallel()

	t.Run("empty environment", func(t *testing.T) {
		t.Parallel()

		env, err := loadEnvConfig(getenvFrom(nil))
		if err != nil {
			t.Fatalf("loadEnvConfig() error = %v", err)
		}
		if env.WorldSize != 0 || env.Rank != config.RankUnset {
			t.Errorf("shard = %d/%d, want unset", env.WorldSize, env.Rank)
		}
	})

	t.Run("all variables", func(t *testing.T) {
		t.Parallel()

		env, err := loadEnvConfig(getenvFrom(map[string]string{
			"WORLD_SIZE":          "8",
			"RANK":                "0",
			"TEXT2IMG_CONFIG":     "wiki",
			"TEXT2IMG_FONT":       "gomono",
			"TEXT2IMG_OUTPUT_DIR": "/data/img",
			"TEXT2IMG_WORKERS":    "4",
			"TEXT2IMG_TOTAL":      "5000000",
		}))
		if err != nil {
			t.Fatalf("loadEnvConfig() error = %v", err)
		}
		want := envConfig{
			WorldSize:  8,
			Rank:       0,
			ConfigPath: "wiki",
			Font:       "gomono",
			OutputDir:  "/data/img",
			Workers:    4,
			Total:      5000000,
		}
		if *env != want {
			t.Errorf("loadEnvConfig() = %+v, want %+v", *env, want)
		}
	})

	t.Run("malformed tool settings ignored", func(t *testing.T) {
		t.Parallel()

		env, err := loadEnvConfig(getenvFrom(map[string]string{
			"TEXT2IMG_WORKERS": "many",
			"TEXT2IMG_TOTAL":   "-1",
		}))
		if err != nil {
			t.Fatalf("loadEnvConfig() error = %v", err)
		}
		if env.Workers != 0 || env.Total != 0 {
			t.Errorf("workers/total = %d/%d, want 0/0", env.Workers, env.Total)
		}
	})

	errTests := []struct {
		name string
		vars map[string]string
	}{
		{"world size not a number", map[string]string{"WORLD_SIZE": "x"}},
		{"world size zero", map[string]string{"WORLD_SIZE": "0"}},
		{"negative rank", map[string]string{"RANK": "-1"}},
	}
	for _, tt := range errTests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			_, err := loadEnvConfig(getenvFrom(tt.vars))
			if !errors.Is(err, ErrInvalidShardEnv) {
				t.Errorf("loadEnvConfig() error = %v, want %v", err, ErrInvalidShardEnv)
			}
		})
	}
}

// ---------------------------------------------------------------------------
// TestApplyEnvConfig - environment over config file
// ---------------------------------------------------------------------------

func TestApplyEnvConfig(t *testing.T) {
	t.Parallel()

	t.Run("set values override", func(t *testing.T) {
		t.Parallel()

		cfg := config.DefaultConfig()
		cfg.Shard.WorldSize = 2
		applyEnvConfig(&envConfig{
			WorldSize: 16,
			Rank:      3,
			Total:     100,
			Font:      "gobold",
			OutputDir: "out",
			Workers:   6,
		}, cfg)

		if cfg.Shard.WorldSize != 16 || cfg.Shard.Rank != 3 || cfg.Shard.Total != 100 {
			t.Errorf("Shard = %+v", cfg.Shard)
		}
		if cfg.Render.Font != "gobold" || cfg.Output.ImageDir != "out" || cfg.Workers != 6 {
			t.Errorf("font/imageDir/workers = %q/%q/%d", cfg.Render.Font, cfg.Output.ImageDir, cfg.Workers)
		}
	})

	t.Run("unset values keep config", func(t *testing.T) {
		t.Parallel()

		cfg := config.DefaultConfig()
		cfg.Shard.Rank = 1
		cfg.Render.Font = "gomono"
		applyEnvConfig(&envConfig{Rank: config.RankUnset}, cfg)

		if cfg.Shard.Rank != 1 {
			t.Errorf("Shard.Rank = %d, want 1", cfg.Shard.Rank)
		}
		if cfg.Render.Font != "gomono" {
			t.Errorf("Render.Font = %q, want gomono", cfg.Render.Font)
		}
		if cfg.Output.ImageDir != config.DefaultImageDir {
			t.Errorf("Output.ImageDir = %q", cfg.Output.ImageDir)
		}
	})
}

// ---------------------------------------------------------------------------
// TestWarnUnknownEnvVars - typo detection
// ---------------------------------------------------------------------------

func TestWarnUnknownEnvVars(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	warnUnknownEnvVars(&buf, []string{
		"TEXT2IMG_WORKERS=2",
		"TEXT2IMG_WORKER=2",
		"WORLD_SIZE=4",
		"HOME=/root",
	})

	out := buf.String()
	if !strings.Contains(out, "TEXT2IMG_WORKER ") {
		t.Errorf("expected warning for TEXT2IMG_WORKER, got %q", out)
	}
	if strings.Count(out, "warning:") != 1 {
		t.Errorf("expected exactly one warning, got %q", out)
	}
}
