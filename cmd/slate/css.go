package main

import (
	"bytes"
	"errors"
	"fmt"
	"path/filepath"

	flag "github.com/spf13/pflag"

	slate "github.com/alnah/go-slate"
	"github.com/alnah/go-slate/internal/fileutil"
	"github.com/alnah/go-slate/internal/hints"
	"github.com/alnah/go-slate/internal/pipeline"
)

// runCSSCmd handles the css command: it prints the stylesheet for the
// highlight classes emitted by build, or lists the available styles.
func runCSSCmd(args []string, env *Environment) error {
	flags, err := parseCSSFlags(args, env.Stderr)
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return nil
		}
		return fmt.Errorf("%w: %v", ErrUsage, err)
	}

	if flags.list {
		for _, name := range slate.HighlightStyles() {
			fmt.Fprintln(env.Stdout, name)
		}
		return nil
	}

	style := flags.style
	if style == "" {
		style = pipeline.DefaultStyle
	}

	var buf bytes.Buffer
	if err := slate.WriteHighlightCSS(&buf, style); err != nil {
		if errors.Is(err, slate.ErrUnknownHighlightStyle) {
			return fmt.Errorf("%w%s", err, hints.ForStyleNotFound(slate.HighlightStyles()))
		}
		return err
	}

	if flags.output == "" {
		_, err := env.Stdout.Write(buf.Bytes())
		return err
	}

	if err := fileutil.WriteFileAtomic(flags.output, buf.String(), filePermissions); err != nil {
		return fmt.Errorf("%w: %v%s", ErrWritePage, err, hints.ForOutputDirectory())
	}
	fmt.Fprintf(env.Stdout, "Created %s\n", filepath.Clean(flags.output))
	return nil
}

// runLayoutsCmd lists the built-in layouts.
func runLayoutsCmd(env *Environment) error {
	for _, name := range slate.LayoutNames() {
		fmt.Fprintln(env.Stdout, name)
	}
	return nil
}
