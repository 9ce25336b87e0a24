// Package config holds runtime configuration: defaults, CLI flag parsing, and
// validation. Defaults reproduce the behavior of the original ebookmeta
// command line, plus the collision retry bound and provider backend.
package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

// --- Enum types for validated string fields ---

// Backend selects which metadata provider family reads the files.
type Backend string

const (
	BackendNative   Backend = "native"   // Pure-Go PDF/EPUB readers, exiftool for MOBI (default).
	BackendExiftool Backend = "exiftool" // exiftool for every format.
)

// ColorMode controls ANSI color output.
type ColorMode string

const (
	ColorAuto   ColorMode = "auto"   // Enable colors when stdout is a TTY (default).
	ColorAlways ColorMode = "always" // Force colors on.
	ColorNever  ColorMode = "never"  // Disable colors entirely.
)

// Debug levels selected by repeating -d.
const (
	DebugOff   = 0
	DebugOn    = 1
	DebugTrace = 2
)

// Config holds all runtime settings. It is populated by [DefaultConfig] and
// then mutated by [ParseFlags] before being passed (by pointer) to packages
// that need it.
type Config struct {
	// Inputs (positional args): files or directories.
	Files []string

	// Renaming.
	RenamePattern  string // -n/--rename-file.
	RenameSet      bool   // True when -n was given on the command line; renaming happens only then.
	DryRun         bool
	RenameAttempts int `validate:"min=1,max=100"` // Default: 5.

	// Extraction.
	Backend  Backend `validate:"oneof=native exiftool"` // Default: "native".
	FailFast bool    // Stop at the first failing file.

	// Display and logging.
	Quiet      bool      // Errors only.
	DetailOff  bool      // Hide per-file metadata listing.
	DebugLevel int       `validate:"min=0,max=2"`
	Progress   bool      // Progress bar on stderr.
	ColorMode  ColorMode `validate:"oneof=auto always never"` // Default: "auto".
	LogFile    string    // Optional JSON log file path.
	CheckOnly  bool      // Run --check diagnostics and exit.
}

// DefaultConfig returns a Config with all defaults. Used as the base before
// [ParseFlags] applies CLI overrides.
func DefaultConfig() Config {
	return Config{
		RenameAttempts: 5,
		Backend:        BackendNative,
		ColorMode:      ColorAuto,
		DebugLevel:     DebugOff,
	}
}

var validate = validator.New()

// Validate checks enum and range fields, then the cross-field rules the
// tags cannot express: a rename pattern given on the command line must not
// be blank, and at least one input is required unless in CheckOnly mode.
func (c *Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		return friendlyError(err)
	}

	if c.RenameSet && strings.TrimSpace(c.RenamePattern) == "" {
		return errors.New("rename pattern must not be empty")
	}

	if c.CheckOnly {
		return nil
	}
	if len(c.Files) == 0 {
		return errors.New("need at least one file or directory")
	}
	return nil
}

// friendlyError turns the first validator field error into a message that
// names the CLI flag instead of the struct field.
func friendlyError(err error) error {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return err
	}
	e := verrs[0]
	name := flagNames[e.Field()]
	if name == "" {
		name = e.Field()
	}
	switch e.Tag() {
	case "oneof":
		return fmt.Errorf("invalid %s %q (use one of: %s)", name, fmt.Sprint(e.Value()), e.Param())
	case "min":
		return fmt.Errorf("%s must be at least %s", name, e.Param())
	case "max":
		return fmt.Errorf("%s must not exceed %s", name, e.Param())
	}
	return fmt.Errorf("invalid %s: %s", name, e.Tag())
}

var flagNames = map[string]string{
	"RenameAttempts": "--rename-attempts",
	"Backend":        "--backend",
	"DebugLevel":     "debug level",
	"ColorMode":      "color mode",
}
