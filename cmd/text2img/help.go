package main

import (
	"fmt"
	"io"
)

// printUsage prints the main usage message.
func printUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: text2img <command> [flags] [args]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Commands:")
	fmt.Fprintln(w, "  render     Render a text corpus to page images (default)")
	fmt.Fprintln(w, "  shard      Show the document range each rank owns")
	fmt.Fprintln(w, "  version    Show version information")
	fmt.Fprintln(w, "  help       Show help for a command")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Run 'text2img help <command>' for details on a specific command.")
}

// printRenderUsage prints usage for the render command.
func printRenderUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: text2img render <corpus> [flags]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Render every document of a corpus into fixed-size page images and")
	fmt.Fprintln(w, "record the text drawn on each page.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Arguments:")
	fmt.Fprintln(w, "  corpus    JSONL file or directory of .txt files (optional if config has corpus.path)")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Input/Output:")
	fmt.Fprintln(w, "  -o, --output <dir>        Page image directory (default: outputimg)")
	fmt.Fprintln(w, "      --metadata <path>     Metadata file (default: index_to_text.json, <rank>.json when sharded)")
	fmt.Fprintln(w, "      --index <path>        Also write an indented JSON index at the end")
	fmt.Fprintln(w, "  -c, --config <name>       Config file name or path")
	fmt.Fprintln(w, "  -w, --workers <n>         Parallel workers (0 = auto, default: 1)")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Corpus:")
	fmt.Fprintln(w, "      --format <s>          auto, jsonl, dir")
	fmt.Fprintln(w, "      --text-field <s>      JSON path of the text in each line (default: text)")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Layout:")
	fmt.Fprintln(w, "      --width <n>           Canvas width in pixels (default: 512)")
	fmt.Fprintln(w, "      --height <n>          Canvas height in pixels (default: 512)")
	fmt.Fprintln(w, "      --font <s>            goregular, gomono, gobold, goitalic, basic, or a .ttf/.otf path")
	fmt.Fprintln(w, "      --font-dir <dir>      Directory searched for font names first")
	fmt.Fprintln(w, "      --font-size <f>       Font size in points (default: 32)")
	fmt.Fprintln(w, "      --margin-left <n>     Left margin in pixels (default: 20)")
	fmt.Fprintln(w, "      --margin-right <n>    Right margin in pixels (default: 20)")
	fmt.Fprintln(w, "      --line-spacing <n>    Extra pixels between lines (default: 5)")
	fmt.Fprintln(w, "      --words-per-group <n> Words added per iteration, 0 = whole document (default: 100)")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Sharding:")
	fmt.Fprintln(w, "      --sharded             Process only this rank's share")
	fmt.Fprintln(w, "      --world-size <n>      Number of ranks (default: $WORLD_SIZE)")
	fmt.Fprintln(w, "      --rank <n>            This rank, 0-based (default: $RANK)")
	fmt.Fprintln(w, "      --total <n>           Documents to partition (default: corpus length)")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Output Control:")
	fmt.Fprintln(w, "  -q, --quiet               Only show errors")
	fmt.Fprintln(w, "  -v, --verbose             Log every document")
}

// printShardUsage prints usage for the shard command.
func printShardUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: text2img shard [corpus] [flags]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Show the document range owned by each rank, or by --rank only.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Flags:")
	fmt.Fprintln(w, "      --world-size <n>      Number of ranks (default: $WORLD_SIZE)")
	fmt.Fprintln(w, "      --rank <n>            Show one rank (default: $RANK)")
	fmt.Fprintln(w, "      --total <n>           Documents to partition (default: corpus length)")
	fmt.Fprintln(w, "      --format <s>          auto, jsonl, dir")
	fmt.Fprintln(w, "  -c, --config <name>       Config file name or path")
}

// runHelp prints help for a specific command.
func runHelp(args []string, env *Environment) int {
	if len(args) == 0 {
		printUsage(env.Stdout)
		return ExitSuccess
	}

	switch args[0] {
	case "render":
		printRenderUsage(env.Stdout)
	case "shard":
		printShardUsage(env.Stdout)
	case "version":
		fmt.Fprintln(env.Stdout, "Usage: text2img version")
		fmt.Fprintln(env.Stdout)
		fmt.Fprintln(env.Stdout, "Show version information.")
	case "help":
		fmt.Fprintln(env.Stdout, "Usage: text2img help [command]")
		fmt.Fprintln(env.Stdout)
		fmt.Fprintln(env.Stdout, "Show help for a command.")
	default:
		fmt.Fprintf(env.Stderr, "Unknown command: %s\n", args[0])
		printUsage(env.Stderr)
		return ExitUsage
	}
	return ExitSuccess
}
