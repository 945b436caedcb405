package slate

import (
	"errors"

	"github.com/alnah/go-slate/internal/document"
	"github.com/alnah/go-slate/internal/include"
	"github.com/alnah/go-slate/internal/pipeline"
)

// Sentinel errors for library operations.
var (
	ErrMissingPageSettings = document.ErrMissingPageSettings
	ErrHTMLConversion      = pipeline.ErrHTMLConversion
	ErrIncludeLoad         = errors.New("include could not be loaded")
	ErrTemplate            = errors.New("page template failed")
	ErrEmptyTemplate       = errors.New("page template cannot be empty")

	// ErrUnrecoverable marks an include failure that aborts the compile
	// even when the include policy degrades.
	ErrUnrecoverable = include.ErrUnrecoverable

	// Option validation errors.
	ErrUnknownHighlightStyle = errors.New("unknown highlight style")
	ErrInvalidIncludePolicy  = errors.New("invalid include policy")

	// Asset loading errors.
	ErrLayoutNotFound   = errors.New("layout not found")
	ErrInvalidAssetPath = errors.New("invalid asset path")
)

// Kind classifies a compile failure.
type Kind int

// Compile failure kinds.
const (
	KindInternal Kind = iota
	KindMalformedDocument
	KindInclude
	KindTemplate
	KindConversion
)

func (k Kind) String() string {
	switch k {
	case KindMalformedDocument:
		return "malformed document"
	case KindInclude:
		return "include"
	case KindTemplate:
		return "template"
	case KindConversion:
		return "conversion"
	default:
		return "internal"
	}
}

// Error is the single error type returned by Compile for fatal conditions.
// Use errors.As to read the Kind, errors.Is to match the sentinels above.
type Error struct {
	Kind    Kind
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err == nil {
		return e.Message
	}
	return e.Message + ": " + e.Err.Error()
}

func (e *Error) Unwrap() error {
	return e.Err
}

// KindOf returns the Kind of err, or KindInternal if err is not an *Error.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindInternal
}

// Unrecoverable wraps err so that the include resolver aborts the compile on it.
// Loaders use it for failures that must never degrade to an empty fragment.
func Unrecoverable(err error) error {
	return include.Unrecoverable(err)
}
