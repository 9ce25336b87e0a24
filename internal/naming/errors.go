package naming

import (
	"errors"
	"fmt"
)

// Sentinel errors returned by Render and Rename.
var (
	ErrEmptyPattern = errors.New("no rename pattern provided")
	ErrEmptyName    = errors.New("no new filename generated")
	ErrCollision    = errors.New("destination still taken after disambiguation")
)

// RenameError reports a failed move with both paths. The source file is
// left where it was.
type RenameError struct {
	Source string
	Dest   string
	Err    error
}

func (e *RenameError) Error() string {
	return fmt.Sprintf("unable to rename %s to %s: %v", e.Source, e.Dest, e.Err)
}

func (e *RenameError) Unwrap() error { return e.Err }
