package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	text2img "github.com/alnah/go-text2img"
	"github.com/alnah/go-text2img/internal/corpus"
	"github.com/alnah/go-text2img/internal/fileutil"
	"github.com/alnah/go-text2img/internal/fonts"
	"github.com/alnah/go-text2img/internal/yamlutil"
)

// Sentinel errors for config operations.
var (
	ErrConfigNotFound  = errors.New("config file not found")
	ErrEmptyConfigName = errors.New("config name cannot be empty")
	ErrConfigParse     = errors.New("failed to parse config")
	ErrFieldTooLong    = errors.New("field exceeds maximum length")
	ErrInvalidValue    = errors.New("invalid config value")
)

// Field length limits.
const (
	MaxPathLength      = 4096 // PATH_MAX on Linux
	MaxFontNameLength  = 100
	MaxFieldNameLength = 100 // JSON field path in corpus lines
	MaxFormatLength    = 10  // "auto", "jsonl", "dir"
)

// RankUnset marks shard.rank as not configured. Rank 0 is a valid rank,
// so zero cannot be used to detect absence.
const RankUnset = -1

// Default output locations.
const (
	DefaultImageDir     = "outputimg"
	DefaultMetadataPath = "index_to_text.json"
)

// Config holds all configuration for a rendering run.
type Config struct {
	Corpus  CorpusConfig `yaml:"corpus"`
	Output  OutputConfig `yaml:"output"`
	Render  RenderConfig `yaml:"render"`
	Shard   ShardConfig  `yaml:"shard"`
	Workers int          `yaml:"workers"` // 0 = auto (GOMAXPROCS)
}

// CorpusConfig defines the document source.
type CorpusConfig struct {
	Path      string `yaml:"path"`      // JSONL file or directory of .txt files
	Format    string `yaml:"format"`    // "auto", "jsonl", "dir" (default: "auto")
	TextField string `yaml:"textField"` // JSON path of the text in each line (default: "text")
}

// OutputConfig defines output destinations.
type OutputConfig struct {
	ImageDir     string `yaml:"imageDir"`     // page images (default: "outputimg")
	MetadataPath string `yaml:"metadataPath"` // NDJSON records (default: index_to_text.json, or <rank>.json when sharded)
	IndexPath    string `yaml:"indexPath"`    // optional end-of-run JSON object
}

// RenderConfig defines the page canvas and typography.
type RenderConfig struct {
	Width         int     `yaml:"width"`
	Height        int     `yaml:"height"`
	Font          string  `yaml:"font"`    // built-in name or .ttf/.otf path
	FontDir       string  `yaml:"fontDir"` // directory searched for font names first
	FontSize      float64 `yaml:"fontSize"`
	MarginLeft    int     `yaml:"marginLeft"`
	MarginRight   int     `yaml:"marginRight"`
	LineSpacing   int     `yaml:"lineSpacing"`
	WordsPerGroup int     `yaml:"wordsPerGroup"` // 0 = whole document per iteration
}

// ShardConfig defines range partitioning across independent ranks.
type ShardConfig struct {
	Enabled   bool `yaml:"enabled"`
	Total     int  `yaml:"total"`     // documents to partition (0 = corpus length)
	WorldSize int  `yaml:"worldSize"` // 0 = unset
	Rank      int  `yaml:"rank"`      // RankUnset = unset
}

// Layout converts the render section to a text2img.Layout.
func (r RenderConfig) Layout() text2img.Layout {
	return text2img.Layout{
		Width:         r.Width,
		Height:        r.Height,
		FontSize:      r.FontSize,
		MarginLeft:    r.MarginLeft,
		MarginRight:   r.MarginRight,
		LineSpacing:   r.LineSpacing,
		WordsPerGroup: r.WordsPerGroup,
	}
}

// Validate checks field values and lengths.
// Called automatically by LoadConfig, but available for callers that
// construct Config manually or merge other sources into it.
// Shard completeness (world size and rank both known) is checked by the
// caller once environment variables have been applied.
func (c *Config) Validate() error {
	// Validate corpus fields
	if err := validateFieldLength("corpus.path", c.Corpus.Path, MaxPathLength); err != nil {
		return err
	}
	if err := validateFieldLength("corpus.format", c.Corpus.Format, MaxFormatLength); err != nil {
		return err
	}
	if !corpus.IsValidFormat(c.Corpus.Format) {
		return fmt.Errorf("%w: corpus.format %q (must be auto, jsonl or dir)", ErrInvalidValue, c.Corpus.Format)
	}
	if err := validateFieldLength("corpus.textField", c.Corpus.TextField, MaxFieldNameLength); err != nil {
		return err
	}

	// Validate output fields
	if err := validateFieldLength("output.imageDir", c.Output.ImageDir, MaxPathLength); err != nil {
		return err
	}
	if err := validateFieldLength("output.metadataPath", c.Output.MetadataPath, MaxPathLength); err != nil {
		return err
	}
	if err := validateFieldLength("output.indexPath", c.Output.IndexPath, MaxPathLength); err != nil {
		return err
	}

	// Validate render fields
	if err := validateFieldLength("render.font", c.Render.Font, MaxPathLength); err != nil {
		return err
	}
	if !fileutil.IsFilePath(c.Render.Font) {
		if err := validateFieldLength("render.font", c.Render.Font, MaxFontNameLength); err != nil {
			return err
		}
	}
	if err := validateFieldLength("render.fontDir", c.Render.FontDir, MaxPathLength); err != nil {
		return err
	}
	if err := c.Render.Layout().Validate(); err != nil {
		return fmt.Errorf("render: %w", err)
	}

	// Validate shard fields
	if c.Shard.Total < 0 {
		return fmt.Errorf("%w: shard.total must be >= 0, got %d", ErrInvalidValue, c.Shard.Total)
	}
	if c.Shard.WorldSize < 0 {
		return fmt.Errorf("%w: shard.worldSize must be >= 1, got %d", ErrInvalidValue, c.Shard.WorldSize)
	}
	if c.Shard.Rank < RankUnset {
		return fmt.Errorf("%w: shard.rank must be >= 0, got %d", ErrInvalidValue, c.Shard.Rank)
	}
	if c.Shard.WorldSize > 0 && c.Shard.Rank >= c.Shard.WorldSize {
		return fmt.Errorf("%w: shard.rank %d out of range for worldSize %d", ErrInvalidValue, c.Shard.Rank, c.Shard.WorldSize)
	}

	if c.Workers < 0 {
		return fmt.Errorf("%w: workers must be >= 0, got %d", ErrInvalidValue, c.Workers)
	}

	return nil
}

// validateFieldLength checks if a field exceeds its maximum allowed length.
func validateFieldLength(fieldName, value string, maxLength int) error {
	if len(value) > maxLength {
		return fmt.Errorf("%w: %s (%d chars, max %d)", ErrFieldTooLong, fieldName, len(value), maxLength)
	}
	return nil
}

// DefaultConfig returns the settings of the original dataset build:
// 512x512 canvas, 32pt text, 20px margins, 100 words per group, 1 worker.
func DefaultConfig() *Config {
	layout := text2img.DefaultLayout()
	return &Config{
		Corpus: CorpusConfig{
			Format:    corpus.FormatAuto,
			TextField: corpus.DefaultTextField,
		},
		Output: OutputConfig{
			ImageDir: DefaultImageDir,
		},
		Render: RenderConfig{
			Width:         layout.Width,
			Height:        layout.Height,
			Font:          fonts.DefaultFont,
			FontSize:      layout.FontSize,
			MarginLeft:    layout.MarginLeft,
			MarginRight:   layout.MarginRight,
			LineSpacing:   layout.LineSpacing,
			WordsPerGroup: layout.WordsPerGroup,
		},
		Shard: ShardConfig{
			Rank: RankUnset,
		},
		Workers: 1,
	}
}

// LoadConfig loads configuration from a file path or config name.
// If nameOrPath contains a path separator, it's treated as a file path.
// Otherwise, it's treated as a config name and searched in standard locations.
// Fields absent from the file keep their DefaultConfig values.
// Returns error if the file is not found (no silent fallback).
func LoadConfig(nameOrPath string) (*Config, error) {
	if nameOrPath == "" {
		return nil, ErrEmptyConfigName
	}

	var configPath string
	var err error

	if fileutil.IsFilePath(nameOrPath) {
		configPath = nameOrPath
	} else {
		configPath, err = resolveConfigPath(nameOrPath)
		if err != nil {
			return nil, err
		}
	}

	cfg := DefaultConfig()
	if err := yamlutil.DecodeFile(configPath, cfg); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrConfigNotFound, configPath)
		}
		return nil, fmt.Errorf("%w: %v", ErrConfigParse, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// SearchPaths returns the candidate files for a config name, in lookup order.
// Tries extensions .yaml then .yml, in the current directory first, then
// in ~/.config/go-text2img/.
func SearchPaths(name string) []string {
	extensions := []string{".yaml", ".yml"}
	paths := make([]string, 0, len(extensions)*2) // 2 locations

	for _, ext := range extensions {
		paths = append(paths, name+ext)
	}
	if userConfigDir, err := os.UserConfigDir(); err == nil {
		for _, ext := range extensions {
			paths = append(paths, filepath.Join(userConfigDir, "go-text2img", name+ext))
		}
	}
	return paths
}

// resolveConfigPath searches for a config file by name in standard locations.
func resolveConfigPath(name string) (string, error) {
	triedPaths := SearchPaths(name)
	for _, p := range triedPaths {
		if fileutil.FileExists(p) {
			return p, nil
		}
	}
	return "", fmt.Errorf("%w: tried %s", ErrConfigNotFound, strings.Join(triedPaths, ", "))
}
