package main

import (
	"fmt"
	"io"
)

// printUsage prints the main usage message.
func printUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: slate <command> [flags] [args]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Commands:")
	fmt.Fprintln(w, "  build       Compile markdown documents into HTML pages")
	fmt.Fprintln(w, "  css         Print the syntax highlighting stylesheet")
	fmt.Fprintln(w, "  layouts     List built-in page layouts")
	fmt.Fprintln(w, "  completion  Generate shell completion script")
	fmt.Fprintln(w, "  version     Show version information")
	fmt.Fprintln(w, "  help        Show help for a command")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Run 'slate help <command>' for details on a specific command.")
}

// printBuildUsage prints usage for the build command.
func printBuildUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: slate build <input> [flags]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Compile markdown documents into HTML pages.")
	fmt.Fprintln(w, "A document named index.html.md becomes index.html. Files under")
	fmt.Fprintln(w, "includes/ named _<name>.md are include fragments, not documents.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Arguments:")
	fmt.Fprintln(w, "  input    Document or directory (optional if config has input.defaultDir)")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Input/Output:")
	fmt.Fprintln(w, "  -o, --output <dir>          Output directory (default: next to the document)")
	fmt.Fprintln(w, "  -f, --filename <name>       Output file name (single document only)")
	fmt.Fprintln(w, "  -c, --config <name>         Config file name or path")
	fmt.Fprintln(w, "  -w, --workers <n>           Parallel builds (0 = auto)")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Layout:")
	fmt.Fprintln(w, "  -t, --template <s>          Layout name or path to an .html layout")
	fmt.Fprintln(w, "      --asset-path <dir>      Directory with layouts/ overriding the built-in ones")
	fmt.Fprintln(w, "  -s, --style <s>             Highlight style (see 'slate css --list')")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Includes:")
	fmt.Fprintln(w, "      --includes-dir <dir>    Include directory next to each document")
	fmt.Fprintln(w, "      --strict-includes       Fail when an include cannot be loaded")
	fmt.Fprintln(w, "      --include-timeout <d>   Time limit for all includes of a document")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Watch:")
	fmt.Fprintln(w, "      --watch                 Rebuild when documents or the layout change")
	fmt.Fprintln(w, "      --debounce <d>          Delay before a rebuild (default: 200ms)")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Output Control:")
	fmt.Fprintln(w, "  -q, --quiet                 Only show errors")
	fmt.Fprintln(w, "  -v, --verbose               Show debug output and timings")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Environment:")
	fmt.Fprintln(w, "  SLATE_CONFIG, SLATE_INPUT_DIR, SLATE_OUTPUT_DIR, SLATE_TEMPLATE,")
	fmt.Fprintln(w, "  SLATE_ASSET_PATH, SLATE_STYLE, SLATE_INCLUDES_POLICY,")
	fmt.Fprintln(w, "  SLATE_INCLUDE_TIMEOUT, SLATE_WORKERS")
}

// printCSSUsage prints usage for the css command.
func printCSSUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: slate css [flags]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Print the stylesheet for the highlight classes in built pages.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "  -s, --style <s>     Highlight style (default: monokai)")
	fmt.Fprintln(w, "  -o, --output <path> Write to a file instead of stdout")
	fmt.Fprintln(w, "      --list          List available styles")
}

// runHelp prints help for a specific command.
func runHelp(args []string, env *Environment) {
	if len(args) == 0 {
		printUsage(env.Stdout)
		return
	}

	switch args[0] {
	case "build":
		printBuildUsage(env.Stdout)
	case "css":
		printCSSUsage(env.Stdout)
	case "layouts":
		fmt.Fprintln(env.Stdout, "Usage: slate layouts")
		fmt.Fprintln(env.Stdout)
		fmt.Fprintln(env.Stdout, "List built-in page layouts.")
	case "completion":
		printCompletionUsage(env.Stdout)
	case "version":
		fmt.Fprintln(env.Stdout, "Usage: slate version")
		fmt.Fprintln(env.Stdout)
		fmt.Fprintln(env.Stdout, "Show version information.")
	case "help":
		fmt.Fprintln(env.Stdout, "Usage: slate help [command]")
		fmt.Fprintln(env.Stdout)
		fmt.Fprintln(env.Stdout, "Show help for a command.")
	default:
		fmt.Fprintf(env.Stderr, "Unknown command: %s\n", args[0])
		printUsage(env.Stderr)
	}
}
