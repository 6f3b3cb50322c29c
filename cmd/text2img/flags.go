package main

import (
	"os"

	flag "github.com/spf13/pflag"

	"github.com/alnah/go-text2img/internal/config"
)

// unsetInt marks integer flags whose zero value is meaningful.
// Margins, line spacing and words per group all accept 0.
const unsetInt = -1

// commonFlags holds flags shared across commands.
type commonFlags struct {
	config  string
	quiet   bool
	verbose bool
}

// outputFlags holds output destination flags.
type outputFlags struct {
	imageDir string
	metadata string
	index    string
}

// layoutFlags holds canvas and typography flags.
type layoutFlags struct {
	width         int
	height        int
	font          string
	fontDir       string
	fontSize      float64
	marginLeft    int
	marginRight   int
	lineSpacing   int
	wordsPerGroup int
}

// corpusFlags holds document source flags.
type corpusFlags struct {
	format    string
	textField string
}

// shardFlags holds range partitioning flags.
type shardFlags struct {
	enabled   bool
	worldSize int
	rank      int
	total     int
}

// renderFlags holds all flags for the render command.
type renderFlags struct {
	common  commonFlags
	workers int
	output  outputFlags
	layout  layoutFlags
	corpus  corpusFlags
	shard   shardFlags
}

// shardCmdFlags holds flags for the shard command.
type shardCmdFlags struct {
	common commonFlags
	corpus corpusFlags
	shard  shardFlags
}

// addCommonFlags adds common flags to a FlagSet.
func addCommonFlags(fs *flag.FlagSet, f *commonFlags) {
	fs.StringVarP(&f.config, "config", "c", "", "config file name or path")
	fs.BoolVarP(&f.quiet, "quiet", "q", false, "only show errors")
	fs.BoolVarP(&f.verbose, "verbose", "v", false, "log every document")
}

// addOutputFlags adds output destination flags to a FlagSet.
func addOutputFlags(fs *flag.FlagSet, f *outputFlags) {
	fs.StringVarP(&f.imageDir, "output", "o", "", "page image directory (default: outputimg)")
	fs.StringVar(&f.metadata, "metadata", "", "metadata file (default: index_to_text.json or <rank>.json)")
	fs.StringVar(&f.index, "index", "", "write an indented JSON index of all records at the end")
}

// addLayoutFlags adds canvas and typography flags to a FlagSet.
func addLayoutFlags(fs *flag.FlagSet, f *layoutFlags) {
	fs.IntVar(&f.width, "width", 0, "canvas width in pixels (default: 512)")
	fs.IntVar(&f.height, "height", 0, "canvas height in pixels (default: 512)")
	fs.StringVar(&f.font, "font", "", "font name or .ttf/.otf path (default: goregular)")
	fs.StringVar(&f.fontDir, "font-dir", "", "directory searched for font names")
	fs.Float64Var(&f.fontSize, "font-size", 0, "font size in points (default: 32)")
	fs.IntVar(&f.marginLeft, "margin-left", unsetInt, "left margin in pixels (default: 20)")
	fs.IntVar(&f.marginRight, "margin-right", unsetInt, "right margin in pixels (default: 20)")
	fs.IntVar(&f.lineSpacing, "line-spacing", unsetInt, "extra pixels between lines (default: 5)")
	fs.IntVar(&f.wordsPerGroup, "words-per-group", unsetInt, "words added per iteration, 0 = whole document (default: 100)")
}

// addCorpusFlags adds document source flags to a FlagSet.
func addCorpusFlags(fs *flag.FlagSet, f *corpusFlags) {
	fs.StringVar(&f.format, "format", "", "corpus format: auto, jsonl, dir")
	fs.StringVar(&f.textField, "text-field", "", "JSON path of the text in each line (default: text)")
}

// addShardFlags adds range partitioning flags to a FlagSet.
func addShardFlags(fs *flag.FlagSet, f *shardFlags) {
	fs.BoolVar(&f.enabled, "sharded", false, "process only this rank's share of the corpus")
	fs.IntVar(&f.worldSize, "world-size", 0, "number of ranks (default: $WORLD_SIZE)")
	fs.IntVar(&f.rank, "rank", config.RankUnset, "this rank, 0-based (default: $RANK)")
	fs.IntVar(&f.total, "total", 0, "documents to partition (default: corpus length)")
}

// parseRenderFlags parses render command flags and returns positional args.
func parseRenderFlags(args []string) (*renderFlags, []string, error) {
	fs := flag.NewFlagSet("render", flag.ContinueOnError)
	f := &renderFlags{}

	fs.IntVarP(&f.workers, "workers", "w", unsetInt, "parallel workers, 0 = auto (default: 1)")

	addCommonFlags(fs, &f.common)
	addOutputFlags(fs, &f.output)
	addLayoutFlags(fs, &f.layout)
	addCorpusFlags(fs, &f.corpus)
	addShardFlags(fs, &f.shard)

	fs.Usage = func() { printRenderUsage(os.Stderr) }

	if err := fs.Parse(args); err != nil {
		return nil, nil, err
	}

	return f, fs.Args(), nil
}

// parseShardFlags parses shard command flags and returns positional args.
func parseShardFlags(args []string) (*shardCmdFlags, []string, error) {
	fs := flag.NewFlagSet("shard", flag.ContinueOnError)
	f := &shardCmdFlags{}

	addCommonFlags(fs, &f.common)
	addCorpusFlags(fs, &f.corpus)
	addShardFlags(fs, &f.shard)

	fs.Usage = func() { printShardUsage(os.Stderr) }

	if err := fs.Parse(args); err != nil {
		return nil, nil, err
	}

	return f, fs.Args(), nil
}

// mergeFlags merges CLI flags into config. CLI values override config values.
func mergeFlags(flags *renderFlags, cfg *config.Config) {
	mergeCorpusFlags(flags.corpus, cfg)
	mergeShardFlags(flags.shard, cfg)

	if flags.workers != unsetInt {
		cfg.Workers = flags.workers
	}

	// Output flags
	if flags.output.imageDir != "" {
		cfg.Output.ImageDir = flags.output.imageDir
	}
	if flags.output.metadata != "" {
		cfg.Output.MetadataPath = flags.output.metadata
	}
	if flags.output.index != "" {
		cfg.Output.IndexPath = flags.output.index
	}

	// Layout flags
	l := flags.layout
	if l.width != 0 {
		cfg.Render.Width = l.width
	}
	if l.height != 0 {
		cfg.Render.Height = l.height
	}
	if l.font != "" {
		cfg.Render.Font = l.font
	}
	if l.fontDir != "" {
		cfg.Render.FontDir = l.fontDir
	}
	if l.fontSize != 0 {
		cfg.Render.FontSize = l.fontSize
	}
	if l.marginLeft != unsetInt {
		cfg.Render.MarginLeft = l.marginLeft
	}
	if l.marginRight != unsetInt {
		cfg.Render.MarginRight = l.marginRight
	}
	if l.lineSpacing != unsetInt {
		cfg.Render.LineSpacing = l.lineSpacing
	}
	if l.wordsPerGroup != unsetInt {
		cfg.Render.WordsPerGroup = l.wordsPerGroup
	}
}

// mergeCorpusFlags merges corpus flags into config.
func mergeCorpusFlags(f corpusFlags, cfg *config.Config) {
	if f.format != "" {
		cfg.Corpus.Format = f.format
	}
	if f.textField != "" {
		cfg.Corpus.TextField = f.textField
	}
}

// mergeShardFlags merges shard flags into config.
func mergeShardFlags(f shardFlags, cfg *config.Config) {
	if f.enabled {
		cfg.Shard.Enabled = true
	}
	if f.worldSize != 0 {
		cfg.Shard.WorldSize = f.worldSize
	}
	if f.rank != config.RankUnset {
		cfg.Shard.Rank = f.rank
	}
	if f.total != 0 {
		cfg.Shard.Total = f.total
	}
}
