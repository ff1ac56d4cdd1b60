package domain

import (
	"errors"
	"fmt"
)

var (
	ErrInputNotFound   = errors.New("input not found")
	ErrFormat          = errors.New("format error")
	ErrExternalService = errors.New("external service failure")
	ErrPartialEmbed    = errors.New("embedding step failed")
)

// OpError carries the operation and path that failed along with its class.
type OpError struct {
	Op   string
	Path string
	Kind error
	Err  error
}

func (e *OpError) Error() string {
	if e.Path != "" {
		return fmt.Sprintf("%s %s: %v: %v", e.Op, e.Path, e.Kind, e.Err)
	}
	return fmt.Sprintf("%s: %v: %v", e.Op, e.Kind, e.Err)
}

func (e *OpError) Unwrap() []error {
	return []error{e.Kind, e.Err}
}

// NewOpError builds an OpError of the given kind.
func NewOpError(kind error, op, path string, err error) error {
	return &OpError{Op: op, Path: path, Kind: kind, Err: err}
}
