// Package term holds the console color palette used by logging and display.
// [Configure] fills it in once at startup; with colors off every entry is
// empty and [Paint] returns its input untouched.
package term

import (
	"os"
	"strings"

	"github.com/backmassage/ebookmeta/internal/config"
)

// Palette. Red is errors, Yellow warnings and dry-run marks, Green rename
// targets, Gray trace output.
var (
	Red    = ""
	Green  = ""
	Yellow = ""
	Blue   = ""
	Cyan   = ""
	Gray   = ""
	Bold   = ""
	NC     = "" // Reset sequence.
)

// Configure picks colors on or off for out and fills the palette.
func Configure(mode config.ColorMode, out *os.File) {
	if resolve(mode, out) {
		Red = "\033[1;91m"
		Green = "\033[1;92m"
		Yellow = "\033[1;93m"
		Blue = "\033[1;94m"
		Cyan = "\033[1;96m"
		Gray = "\033[90m"
		Bold = "\033[1m"
		NC = "\033[0m"
	} else {
		Red, Green, Yellow, Blue, Cyan, Gray, Bold, NC = "", "", "", "", "", "", "", ""
	}
}

// Enabled reports whether the palette is populated.
func Enabled() bool { return NC != "" }

// Paint wraps s in color and a reset, or returns s unchanged when colors
// are off.
func Paint(color, s string) string {
	if color == "" || NC == "" {
		return s
	}
	return color + s + NC
}

// resolve applies --color/--no-color. Auto mode colors a terminal unless
// NO_COLOR is set or TERM is "dumb".
func resolve(mode config.ColorMode, out *os.File) bool {
	if mode != config.ColorAuto {
		return mode == config.ColorAlways
	}
	if os.Getenv("NO_COLOR") != "" || strings.EqualFold(os.Getenv("TERM"), "dumb") {
		return false
	}
	return IsTerminal(out)
}

// IsTerminal reports whether f is a character device.
func IsTerminal(f *os.File) bool {
	if f == nil {
		return false
	}
	fi, err := f.Stat()
	return err == nil && fi.Mode()&os.ModeCharDevice != 0
}
