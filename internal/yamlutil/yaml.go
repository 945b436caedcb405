// Package yamlutil decodes YAML configuration with goccy/go-yaml.
package yamlutil

import (
	"bytes"
	"errors"
	"fmt"
	"io"

	"github.com/goccy/go-yaml"
)

// MaxInputSize limits YAML input to prevent memory exhaustion (default 1MB).
var MaxInputSize = 1 << 20

var (
	ErrNilDestination = errors.New("yamlutil: nil destination pointer")
	ErrInputTooLarge  = errors.New("yamlutil: input exceeds maximum size")
)

// DecodeError is a syntax, type or unknown-field error. Its message
// quotes the offending source lines.
type DecodeError struct {
	Err error
}

func (e *DecodeError) Error() string {
	return "yamlutil: " + yaml.FormatError(e.Err, false, true)
}

func (e *DecodeError) Unwrap() error {
	return e.Err
}

// DecodeStrict decodes data into v. Fields v does not declare and duplicate
// keys are errors. Empty or comment-only input leaves v untouched.
func DecodeStrict(data []byte, v any) error {
	if v == nil {
		return ErrNilDestination
	}
	if len(data) > MaxInputSize {
		return fmt.Errorf("%w: %d bytes (max %d)", ErrInputTooLarge, len(data), MaxInputSize)
	}

	dec := yaml.NewDecoder(bytes.NewReader(data), yaml.Strict(), yaml.DisallowDuplicateKey())
	if err := dec.Decode(v); err != nil {
		if errors.Is(err, io.EOF) {
			return nil
		}
		return &DecodeError{Err: err}
	}
	return nil
}
