// Package hints provides actionable error hints for common failure scenarios.
// Hints are formatted consistently as "\n  hint: <text>" for appending to error messages.
package hints

import (
	"os"
	"strings"
)

// ForShardEnv returns hints for a sharded run that cannot resolve its rank.
// Only variables that are actually missing are suggested.
func ForShardEnv() string {
	var hints []string

	if os.Getenv("WORLD_SIZE") == "" {
		hints = append(hints, "set WORLD_SIZE to the number of ranks")
	}
	if os.Getenv("RANK") == "" {
		hints = append(hints, "set RANK to this process index (0-based)")
	}
	if len(hints) > 0 {
		hints = append(hints, "or pass --world-size and --rank")
	}

	return formatHints(hints)
}

// ForCanvasTooSmall returns a hint for a layout that cannot fit one line.
func ForCanvasTooSmall() string {
	return format("reduce --font-size or --line-spacing, or increase --height")
}

// ForConfigNotFound returns hints for config file not found errors.
// Suggests --config flag and creating a config in ~/.config/go-text2img/.
func ForConfigNotFound(searchedPaths []string) string {
	hint := "use --config /path/to/file.yaml"

	for _, p := range searchedPaths {
		if strings.Contains(p, ".config/go-text2img") {
			hint += " or create " + p
			break
		}
	}

	return format(hint)
}

// ForOutputDirectory returns hints for output directory creation errors.
func ForOutputDirectory() string {
	return format("check parent directory exists and is writable")
}

// ForFontNotFound returns hints for font not found errors.
func ForFontNotFound(available []string) string {
	if len(available) == 0 {
		return ""
	}
	return format("available: " + strings.Join(available, ", ") + "; or pass a .ttf/.otf path")
}

// ForCorpusFormat returns a hint for a corpus whose format cannot be detected.
func ForCorpusFormat() string {
	return format("use --format jsonl for line-delimited JSON or --format dir for a directory of .txt files")
}

// format creates a single hint string with consistent formatting.
func format(hint string) string {
	if hint == "" {
		return ""
	}
	return "\n  hint: " + hint
}

// formatHints joins multiple hints with consistent formatting.
func formatHints(hints []string) string {
	if len(hints) == 0 {
		return ""
	}
	return format(strings.Join(hints, "; "))
}
