package display

import (
	"fmt"
	"io"

	"github.com/backmassage/ebookmeta/internal/metadata"
	"github.com/backmassage/ebookmeta/internal/term"
)

// Placeholder is shown for empty metadata values.
const Placeholder = "N/A"

// FormatRecord returns one "Key: value" line per canonical key, in display
// order. Empty values show as N/A. Keys absent from rec are skipped.
func FormatRecord(rec metadata.Record) []string {
	lines := make([]string, 0, len(metadata.Keys))
	for _, k := range metadata.Keys {
		v, ok := rec[k]
		if !ok {
			continue
		}
		if v == "" {
			v = Placeholder
		}
		lines = append(lines, fmt.Sprintf("%s: %s", term.Paint(term.Bold, string(k)), v))
	}
	return lines
}

// PrintRecord writes FormatRecord's lines to w.
func PrintRecord(w io.Writer, rec metadata.Record) {
	for _, line := range FormatRecord(rec) {
		fmt.Fprintln(w, line)
	}
}

// FormatRename renders "src --> dest", marking dry runs.
func FormatRename(src, dest string, dryRun bool) string {
	s := src + " --> " + term.Paint(term.Green, dest)
	if dryRun {
		s += " " + term.Paint(term.Yellow, "(dry run)")
	}
	return s
}

// FormatBytes returns a human-readable size using binary units.
func FormatBytes(n int64) string {
	const unit = 1024
	if n < unit {
		return fmt.Sprintf("%d B", n)
	}
	v := float64(n)
	for _, suffix := range []string{"KiB", "MiB", "GiB", "TiB", "PiB"} {
		v /= unit
		if v < unit || suffix == "PiB" {
			return fmt.Sprintf("%.1f %s", v, suffix)
		}
	}
	return ""
}
