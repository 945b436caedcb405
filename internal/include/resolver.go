// Package include loads the fragments named by a document's includes list.
//
// All loads start at once and each one writes its own slot, so the result keeps
// declaration order no matter which load finishes first.
package include

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"golang.org/x/sync/errgroup"
)

// ErrUnrecoverable marks a loader error that aborts resolution under any policy.
var ErrUnrecoverable = errors.New("unrecoverable include failure")

// Loader fetches the body of one include for the document identified by documentID.
type Loader interface {
	Load(ctx context.Context, name, documentID string) (string, error)
}

// LoaderFunc adapts a function to the Loader interface.
type LoaderFunc func(ctx context.Context, name, documentID string) (string, error)

// Load calls f.
func (f LoaderFunc) Load(ctx context.Context, name, documentID string) (string, error) {
	return f(ctx, name, documentID)
}

// Policy decides what a failed load does to the whole resolution.
type Policy int

const (
	// PolicyDegrade replaces a failed fragment with "" and logs it.
	// Errors wrapping ErrUnrecoverable and loader panics still abort.
	PolicyDegrade Policy = iota
	// PolicyStrict aborts on the first failed load.
	PolicyStrict
)

func (p Policy) String() string {
	switch p {
	case PolicyDegrade:
		return "degrade"
	case PolicyStrict:
		return "strict"
	default:
		return fmt.Sprintf("Policy(%d)", int(p))
	}
}

// Unrecoverable wraps err so that it aborts resolution even under PolicyDegrade.
func Unrecoverable(err error) error {
	if err == nil {
		return nil
	}
	return &unrecoverableError{err: err}
}

type unrecoverableError struct{ err error }

func (e *unrecoverableError) Error() string { return e.err.Error() }
func (e *unrecoverableError) Unwrap() []error {
	return []error{ErrUnrecoverable, e.err}
}

// LoadError reports the include that aborted resolution.
type LoadError struct {
	Name  string
	Index int
	Err   error
}

func (e *LoadError) Error() string {
	return fmt.Sprintf("include %q (#%d): %v", e.Name, e.Index+1, e.Err)
}

func (e *LoadError) Unwrap() error { return e.Err }

// Resolver loads includes concurrently. The zero value resolves every include to "".
type Resolver struct {
	Loader  Loader
	Policy  Policy
	Logger  *slog.Logger
	Timeout time.Duration // 0 means no deadline on the join
}

// Resolve returns one body per name, in the order of names.
// When ctx ends or Timeout expires first, Resolve returns the context error
// without waiting for loaders that ignore their context.
func (r *Resolver) Resolve(ctx context.Context, names []string, documentID string) ([]string, error) {
	bodies := make([]string, len(names))
	if len(names) == 0 || r.Loader == nil {
		return bodies, nil
	}

	if r.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, r.Timeout)
		defer cancel()
	}

	group, groupctx := errgroup.WithContext(ctx)
	for i, name := range names {
		group.Go(func() (err error) {
			// A panicking loader would otherwise take the process down.
			defer func() {
				if p := recover(); p != nil {
					err = &LoadError{Name: name, Index: i, Err: fmt.Errorf("loader panic: %v", p)}
				}
			}()

			body, err := r.Loader.Load(groupctx, name, documentID)
			if err == nil {
				bodies[i] = body
				return nil
			}
			if r.fatal(err) {
				return &LoadError{Name: name, Index: i, Err: err}
			}
			// The resolution is already failing; a warning per include adds nothing.
			if groupctx.Err() != nil {
				return nil
			}
			r.logger().Warn("could not load include",
				slog.String("include", name),
				slog.String("document", documentID),
				slog.Any("error", err),
			)
			return nil
		})
	}

	done := make(chan error, 1)
	go func() {
		done <- group.Wait()
	}()

	select {
	case err := <-done:
		if err != nil {
			return nil, err
		}
		if err := ctx.Err(); err != nil {
			return nil, fmt.Errorf("resolving includes: %w", err)
		}
		return bodies, nil
	case <-ctx.Done():
		return nil, fmt.Errorf("resolving includes: %w", ctx.Err())
	}
}

func (r *Resolver) fatal(err error) bool {
	if r.Policy == PolicyStrict {
		return true
	}
	return errors.Is(err, ErrUnrecoverable)
}

func (r *Resolver) logger() *slog.Logger {
	if r.Logger == nil {
		return slog.New(slog.DiscardHandler)
	}
	return r.Logger
}
