package main

import (
	"io"

	flag "github.com/spf13/pflag"
)

// commonFlags holds flags shared across commands.
type commonFlags struct {
	config  string
	quiet   bool
	verbose bool
}

// templateFlags holds page layout flags.
type templateFlags struct {
	name      string // Layout name or path to an .html file
	assetPath string // Directory with layouts/ overriding the embedded ones
}

// includeFlags holds include loading flags.
type includeFlags struct {
	dir     string
	strict  bool
	timeout string
}

// watchFlags holds watch mode flags.
type watchFlags struct {
	enabled  bool
	debounce string
}

// buildFlags holds all flags for the build command.
type buildFlags struct {
	common   commonFlags
	output   string
	filename string
	workers  int
	style    string
	template templateFlags
	includes includeFlags
	watch    watchFlags
}

// cssFlags holds flags for the css command.
type cssFlags struct {
	style  string
	output string
	list   bool
}

// addCommonFlags adds common flags to a FlagSet.
func addCommonFlags(fs *flag.FlagSet, f *commonFlags) {
	fs.StringVarP(&f.config, "config", "c", "", "config file name or path")
	fs.BoolVarP(&f.quiet, "quiet", "q", false, "only show errors")
	fs.BoolVarP(&f.verbose, "verbose", "v", false, "show debug output and timings")
}

// addTemplateFlags adds layout flags to a FlagSet.
func addTemplateFlags(fs *flag.FlagSet, f *templateFlags) {
	fs.StringVarP(&f.name, "template", "t", "", "layout name or path to an .html layout")
	fs.StringVar(&f.assetPath, "asset-path", "", "directory with layouts/ overriding the built-in ones")
}

// addIncludeFlags adds include flags to a FlagSet.
func addIncludeFlags(fs *flag.FlagSet, f *includeFlags) {
	fs.StringVar(&f.dir, "includes-dir", "", "include directory next to each document (default: includes)")
	fs.BoolVar(&f.strict, "strict-includes", false, "fail the build when an include cannot be loaded")
	fs.StringVar(&f.timeout, "include-timeout", "", "time limit for loading all includes of a document (e.g., 5s)")
}

// addWatchFlags adds watch mode flags to a FlagSet.
func addWatchFlags(fs *flag.FlagSet, f *watchFlags) {
	fs.BoolVar(&f.enabled, "watch", false, "rebuild when documents, includes or the layout change")
	fs.StringVar(&f.debounce, "debounce", "", "delay between a change and the rebuild (default: 200ms)")
}

// registerBuildFlags registers every build flag on fs.
// Shared by parseBuildFlags and shell completion.
func registerBuildFlags(fs *flag.FlagSet, f *buildFlags) {
	fs.StringVarP(&f.output, "output", "o", "", "output directory")
	fs.StringVarP(&f.filename, "filename", "f", "", "output file name (single document only)")
	fs.IntVarP(&f.workers, "workers", "w", 0, "parallel builds (0 = auto)")
	fs.StringVarP(&f.style, "style", "s", "", "highlight style for the build (default: monokai)")

	addCommonFlags(fs, &f.common)
	addTemplateFlags(fs, &f.template)
	addIncludeFlags(fs, &f.includes)
	addWatchFlags(fs, &f.watch)
}

// parseBuildFlags parses build command flags and returns positional args.
func parseBuildFlags(args []string, usage io.Writer) (*buildFlags, []string, error) {
	fs := flag.NewFlagSet("build", flag.ContinueOnError)
	f := &buildFlags{}
	registerBuildFlags(fs, f)

	fs.SetOutput(usage)
	fs.Usage = func() { printBuildUsage(usage) }

	if err := fs.Parse(args); err != nil {
		return nil, nil, err
	}

	return f, fs.Args(), nil
}

// registerCSSFlags registers every css flag on fs.
func registerCSSFlags(fs *flag.FlagSet, f *cssFlags) {
	fs.StringVarP(&f.style, "style", "s", "", "highlight style (default: monokai)")
	fs.StringVarP(&f.output, "output", "o", "", "write the stylesheet to a file instead of stdout")
	fs.BoolVar(&f.list, "list", false, "list available styles")
}

// parseCSSFlags parses css command flags.
func parseCSSFlags(args []string, usage io.Writer) (*cssFlags, error) {
	fs := flag.NewFlagSet("css", flag.ContinueOnError)
	f := &cssFlags{}
	registerCSSFlags(fs, f)

	fs.SetOutput(usage)
	fs.Usage = func() { printCSSUsage(usage) }

	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	return f, nil
}
