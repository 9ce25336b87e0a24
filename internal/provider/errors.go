package provider

import (
	"errors"
	"fmt"

	"github.com/backmassage/ebookmeta/internal/metadata"
)

// Sentinel errors wrapped inside *Error.
var (
	ErrUnsupportedFormat   = errors.New("unsupported file format")
	ErrMalformed           = errors.New("malformed document")
	ErrExiftoolUnavailable = errors.New("exiftool could not be started")
)

// Error is a provider failure: the file could not be opened or parsed.
type Error struct {
	Format metadata.Format
	Path   string
	Err    error
}

func (e *Error) Error() string {
	format := string(e.Format)
	if format == "" {
		format = "unknown"
	}
	return fmt.Sprintf("read %s metadata from %s: %v", format, e.Path, e.Err)
}

func (e *Error) Unwrap() error { return e.Err }

func fail(format metadata.Format, path string, err error) error {
	return &Error{Format: format, Path: path, Err: err}
}
