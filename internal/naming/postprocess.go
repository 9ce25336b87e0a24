package naming

import (
	"strings"

	"golang.org/x/text/unicode/norm"
)

// unsafeReplacer rewrites characters that are path separators or otherwise
// trouble on common filesystems. Dots are dropped so the stem can never
// grow a second extension.
var unsafeReplacer = strings.NewReplacer(
	"/", "-",
	":", " -",
	".", "",
)

// Sanitize makes a rendered stem filesystem-safe. It is idempotent:
// Sanitize(Sanitize(s)) == Sanitize(s).
func Sanitize(s string) string {
	s = unsafeReplacer.Replace(s)
	s = strings.TrimSpace(s)
	return norm.NFC.String(s)
}
