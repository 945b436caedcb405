package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"time"

	flag "github.com/spf13/pflag"

	slate "github.com/alnah/go-slate"
	"github.com/alnah/go-slate/internal/config"
	"github.com/alnah/go-slate/internal/fileutil"
	"github.com/alnah/go-slate/internal/hints"
	"github.com/alnah/go-slate/internal/pipeline"
)

// Sentinel errors for build operations.
var (
	ErrUsage        = errors.New("invalid usage")
	ErrNoInput      = errors.New("no input specified")
	ErrReadMarkdown = errors.New("failed to read markdown file")
	ErrWritePage    = errors.New("failed to write page")
)

// File permission constants.
const (
	dirPermissions  = 0o750 // rwxr-x---: owner full, group read+execute
	filePermissions = 0o644 // rw-r--r--: owner read+write, others read
)

// BuildResult holds the outcome of a single document build.
type BuildResult struct {
	InputPath  string
	OutputPath string
	Err        error
	Duration   time.Duration
}

// builder compiles documents with one shared compiler.
// The layout is reloaded on every run so watch mode picks up edits.
type builder struct {
	cfg      *config.Config
	compiler *slate.Compiler
	logger   *slog.Logger
	workers  int
}

// runBuildCmd handles the build command.
func runBuildCmd(ctx context.Context, args []string, env *Environment) error {
	flags, positional, err := parseBuildFlags(args, env.Stderr)
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return nil
		}
		return fmt.Errorf("%w: %v", ErrUsage, err)
	}
	if len(positional) > 1 {
		return fmt.Errorf("%w: expected one input, got %d", ErrUsage, len(positional))
	}
	if err := validateWorkers(flags.workers); err != nil {
		return err
	}

	logger := newLogger(env.Stderr, flags.common)
	warnUnknownEnvVars(env.Stderr, env.Environ())

	envCfg := loadEnvConfig(env.Getenv)
	cfg, err := loadBuildConfig(flags, envCfg)
	if err != nil {
		return err
	}

	inputPath, err := resolveInputPath(positional, cfg)
	if err != nil {
		return err
	}
	outputDir := resolveOutputDir(flags.output, cfg)

	workers := flags.workers
	if workers == 0 {
		workers = envCfg.Workers
	}

	compiler, err := newCompiler(cfg, logger)
	if err != nil {
		return err
	}
	b := &builder{cfg: cfg, compiler: compiler, logger: logger, workers: workers}

	build := func(ctx context.Context) error {
		files, err := discoverFiles(inputPath, outputDir, cfg.Output.Filename, cfg.Includes.Dir)
		if err != nil {
			return err
		}
		results, err := b.run(ctx, files)
		if err != nil {
			return err
		}
		printResults(results, flags.common, env)
		return batchError(results)
	}

	err = build(ctx)
	if !flags.watch.enabled {
		return err
	}
	if err != nil {
		logger.Error("initial build failed", slog.Any("error", err))
	}

	return runWatch(ctx, watchOptions{
		paths:    watchPaths(inputPath, cfg),
		debounce: cfg.WatchDebounce(),
		relevant: relevantChange(cfg),
		logger:   logger,
		rebuild: func(ctx context.Context) {
			if err := build(ctx); err != nil {
				logger.Error("rebuild failed", slog.Any("error", err))
			}
		},
	})
}

// loadBuildConfig layers defaults, the config file, environment and flags.
func loadBuildConfig(flags *buildFlags, envCfg *envConfig) (*config.Config, error) {
	cfg := config.DefaultConfig()

	name := flags.common.config
	if name == "" {
		name = envCfg.ConfigPath
	}
	if name != "" {
		loaded, err := config.LoadConfig(name)
		if err != nil {
			if errors.Is(err, config.ErrConfigNotFound) && !fileutil.IsFilePath(name) {
				return nil, fmt.Errorf("loading config: %w%s", err, hints.ForConfigNotFound(config.SearchPaths(name)))
			}
			return nil, fmt.Errorf("loading config: %w", err)
		}
		cfg = loaded
	}

	applyEnvConfig(envCfg, cfg)
	mergeFlags(flags, cfg)

	// Flags and environment bypass LoadConfig's validation
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// mergeFlags merges CLI flags into config. CLI values override config values.
func mergeFlags(flags *buildFlags, cfg *config.Config) {
	if flags.filename != "" {
		cfg.Output.Filename = flags.filename
	}
	if flags.style != "" {
		cfg.Highlight.Style = flags.style
	}
	if flags.template.name != "" {
		cfg.Template.Name = flags.template.name
	}
	if flags.template.assetPath != "" {
		cfg.Template.AssetPath = flags.template.assetPath
	}
	if flags.includes.dir != "" {
		cfg.Includes.Dir = flags.includes.dir
	}
	if flags.includes.strict {
		cfg.Includes.Policy = slate.IncludesStrict.String()
	}
	if flags.includes.timeout != "" {
		cfg.Includes.Timeout = flags.includes.timeout
	}
	if flags.watch.debounce != "" {
		cfg.Watch.Debounce = flags.watch.debounce
	}
}

// resolveInputPath returns the positional input, or the config default.
func resolveInputPath(args []string, cfg *config.Config) (string, error) {
	if len(args) > 0 {
		return args[0], nil
	}
	if cfg.Input.DefaultDir != "" {
		return cfg.Input.DefaultDir, nil
	}
	return "", ErrNoInput
}

// resolveOutputDir returns the output directory: flag, then config, then "" (next to the source).
func resolveOutputDir(flagOutput string, cfg *config.Config) string {
	if flagOutput != "" {
		return flagOutput
	}
	return cfg.Output.DefaultDir
}

// newCompiler builds the shared compiler from the merged config.
func newCompiler(cfg *config.Config, logger *slog.Logger) (*slate.Compiler, error) {
	policy, err := slate.ParseIncludePolicy(cfg.Includes.Policy)
	if err != nil {
		return nil, err
	}

	opts := []slate.Option{
		slate.WithIncludeLoader(includeLoader{dir: cfg.Includes.Dir}),
		slate.WithIncludePolicy(policy),
		slate.WithLogger(logger),
	}
	if cfg.Highlight.Style != "" {
		opts = append(opts, slate.WithHighlightStyle(cfg.Highlight.Style))
	}
	if d := cfg.IncludeTimeout(); d > 0 {
		opts = append(opts, slate.WithIncludeTimeout(d))
	}

	c, err := slate.NewCompiler(opts...)
	if errors.Is(err, slate.ErrUnknownHighlightStyle) {
		return nil, fmt.Errorf("%w%s", err, hints.ForStyleNotFound(slate.HighlightStyles()))
	}
	return c, err
}

// loadLayout resolves the configured layout name or path.
func loadLayout(cfg *config.Config) (string, error) {
	loader, err := slate.NewLayoutLoader(cfg.Template.AssetPath)
	if err != nil {
		return "", err
	}

	layout, err := slate.LoadLayout(loader, cfg.Template.Name)
	if errors.Is(err, slate.ErrLayoutNotFound) {
		return "", fmt.Errorf("%w%s", err, hints.ForLayoutNotFound(slate.LayoutNames()))
	}
	return layout, err
}

// run loads the layout and compiles files concurrently.
func (b *builder) run(ctx context.Context, files []FileToBuild) ([]BuildResult, error) {
	layout, err := loadLayout(b.cfg)
	if err != nil {
		return nil, err
	}

	start := time.Now()
	results := buildBatch(ctx, b.compiler, layout, files, resolveWorkers(b.workers, len(files)))
	b.logger.Debug("build finished",
		slog.Int("documents", len(files)),
		slog.Duration("elapsed", time.Since(start).Round(time.Millisecond)),
	)
	return results, nil
}

// buildBatch processes files with a fixed number of workers.
// Results keep the order of files.
func buildBatch(ctx context.Context, compiler *slate.Compiler, layout string, files []FileToBuild, workers int) []BuildResult {
	if len(files) == 0 {
		return nil
	}

	results := make([]BuildResult, len(files))
	var wg sync.WaitGroup
	jobs := make(chan int, len(files))

	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()

			for idx := range jobs {
				if ctx.Err() != nil {
					results[idx] = BuildResult{
						InputPath: files[idx].InputPath,
						Err:       ctx.Err(),
					}
					continue
				}
				results[idx] = buildFile(ctx, compiler, layout, files[idx])
			}
		}()
	}

	for i := range files {
		jobs <- i
	}
	close(jobs)

	wg.Wait()
	return results
}

// buildFile compiles a single document and writes its page.
func buildFile(ctx context.Context, compiler *slate.Compiler, layout string, f FileToBuild) (result BuildResult) {
	start := time.Now()
	result = BuildResult{
		InputPath:  f.InputPath,
		OutputPath: f.OutputPath,
	}
	defer func() { result.Duration = time.Since(start) }()

	content, err := os.ReadFile(f.InputPath) // #nosec G304 -- discovered path
	if err != nil {
		result.Err = fmt.Errorf("%w: %v", ErrReadMarkdown, err)
		return result
	}

	sourceDir, outDir := filepath.Dir(f.InputPath), filepath.Dir(f.OutputPath)
	res, err := compiler.Compile(ctx, slate.Input{
		Markdown:   string(content),
		Template:   layout,
		DocumentID: f.InputPath,
		ContentFilter: func(html string) (string, error) {
			return pipeline.RewriteRelativePaths(html, sourceDir, outDir)
		},
	})
	if err != nil {
		result.Err = err
		return result
	}

	if err := os.MkdirAll(outDir, dirPermissions); err != nil {
		result.Err = fmt.Errorf("creating output directory: %w%s", err, hints.ForOutputDirectory())
		return result
	}

	if err := fileutil.WriteFileAtomic(f.OutputPath, res.Page, filePermissions); err != nil {
		result.Err = fmt.Errorf("%w: %v", ErrWritePage, err)
		return result
	}

	return result
}

// buildFailedError reports failed builds; it unwraps to the first failure
// so the exit code reflects its cause.
type buildFailedError struct {
	failed int
	first  error
}

func (e *buildFailedError) Error() string {
	return fmt.Sprintf("%d build(s) failed", e.failed)
}

func (e *buildFailedError) Unwrap() error {
	return e.first
}

// batchError returns nil when every build succeeded.
func batchError(results []BuildResult) error {
	var failed *buildFailedError
	for _, r := range results {
		if r.Err == nil {
			continue
		}
		if failed == nil {
			failed = &buildFailedError{first: r.Err}
		}
		failed.failed++
	}
	if failed == nil {
		return nil
	}
	return failed
}

// printResults outputs build results and returns the failure count.
func printResults(results []BuildResult, flags commonFlags, env *Environment) int {
	failed := 0

	for _, r := range results {
		if r.Err != nil {
			failed++
			fmt.Fprintf(env.Stderr, "FAILED %s: %v%s\n", r.InputPath, r.Err, hintFor(r.Err))
			continue
		}

		if flags.quiet {
			continue
		}

		if flags.verbose {
			fmt.Fprintf(env.Stdout, "%s -> %s (%v)\n", r.InputPath, r.OutputPath, r.Duration.Round(time.Millisecond))
		} else {
			fmt.Fprintf(env.Stdout, "Created %s\n", r.OutputPath)
		}
	}

	if !flags.quiet && len(results) > 1 {
		fmt.Fprintf(env.Stdout, "\n%d succeeded, %d failed\n", len(results)-failed, failed)
	}

	return failed
}

// hintFor returns an actionable hint for a compile failure, or "".
func hintFor(err error) string {
	switch {
	case errors.Is(err, slate.ErrMissingPageSettings):
		return hints.ForMissingPageSettings()
	case errors.Is(err, slate.ErrUnrecoverable), errors.Is(err, context.DeadlineExceeded):
		return ""
	case slate.KindOf(err) == slate.KindInclude:
		return hints.ForStrictIncludes()
	default:
		return ""
	}
}
