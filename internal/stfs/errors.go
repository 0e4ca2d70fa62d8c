// Package stfs reads STFS (Secure Transacted File System) packages, the
// container format used for Xbox 360 content (CON/LIVE/PIRS files). It maps
// logical block indices to physical offsets, follows block chains through the
// interspersed hash-table regions, parses the packed file table and extracts
// file contents. It never performs I/O of its own: callers load the package
// into memory and persist any mutations themselves.
package stfs

import (
	"errors"
	"fmt"
)

// Common errors
var (
	ErrUnrecognizedFormat = errors.New("unrecognized package format")
	ErrMalformedContainer = errors.New("malformed package")
	ErrNotAFile           = errors.New("entry is not a file")
	ErrTruncatedData      = errors.New("file data truncated")
	ErrOutOfBounds        = errors.New("access outside package bounds")
)

// BoundsError reports an access outside the loaded buffer.
type BoundsError struct {
	Offset int64
	Length int64
	Size   int64
}

func (e *BoundsError) Error() string {
	return fmt.Sprintf("access of %d bytes at offset 0x%X outside package of %d bytes", e.Length, e.Offset, e.Size)
}

func (e *BoundsError) Unwrap() error {
	return ErrOutOfBounds
}

// FieldError reports a header or record field that failed validation,
// carrying the offending offset and the expected/actual values.
type FieldError struct {
	Err    error
	Field  string
	Offset int64
	Want   uint64
	Got    uint64
}

func (e *FieldError) Error() string {
	if e.Want != 0 {
		return fmt.Sprintf("%s at offset 0x%X: got 0x%X, want 0x%X", e.Field, e.Offset, e.Got, e.Want)
	}
	return fmt.Sprintf("%s at offset 0x%X: got 0x%X", e.Field, e.Offset, e.Got)
}

func (e *FieldError) Unwrap() error {
	return e.Err
}
