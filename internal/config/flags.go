package config

// This file implements CLI flag parsing and help text.
// Flags may appear before, between, or after the positional file arguments;
// everything after a bare "--" is treated as a file.

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
)

// ErrVersion is returned by ParseFlags after printing the version. Callers
// treat it like flag.ErrHelp: exit successfully.
var ErrVersion = errors.New("version requested")

// ParseFlags parses args (without the program name) into cfg. On --help it
// prints usage and returns flag.ErrHelp; on --version it prints the version
// and returns ErrVersion. Other errors are unknown flags or bad values.
func ParseFlags(cfg *Config, version string, args []string) error {
	return parseFlags(cfg, version, args, os.Stdout, os.Stderr)
}

func parseFlags(cfg *Config, version string, args []string, stdout, stderr io.Writer) error {
	fs := flag.NewFlagSet("ebookmeta", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.Usage = func() { printUsage(stderr, version) }

	// Toggle flags are captured here and applied after Parse so
	// DefaultConfig values hold unless the user passes the flag.
	var toggles toggleFlags

	defineRenameFlags(fs, cfg)
	defineExtractionFlags(fs, cfg)
	defineDisplayFlags(fs, cfg, &toggles)
	defineUtilityFlags(fs, cfg, &toggles)

	flagArgs, trailing := splitTerminator(args)
	files, err := parseInterleaved(fs, flagArgs)
	if err != nil {
		return err
	}

	applyToggles(cfg, &toggles)

	if toggles.showHelp {
		printUsage(stdout, version)
		return flag.ErrHelp
	}
	if toggles.showVersion {
		fmt.Fprintln(stdout, "ebookmeta v"+version)
		return ErrVersion
	}

	fs.Visit(func(f *flag.Flag) {
		if f.Name == "rename-file" || f.Name == "n" {
			cfg.RenameSet = true
		}
	})
	if cfg.DebugLevel > DebugTrace {
		cfg.DebugLevel = DebugTrace
	}

	cfg.Files = append(files, trailing...)
	return nil
}

// toggleFlags holds boolean flags that are applied after Parse.
// These either pick an enum value (forceColor, noColor) or trigger an
// early return (showHelp, showVersion).
type toggleFlags struct {
	forceColor  bool
	noColor     bool
	showVersion bool
	showHelp    bool
}

// defineRenameFlags registers -n/--rename-file, -r/--dry-run, --rename-attempts.
func defineRenameFlags(fs *flag.FlagSet, cfg *Config) {
	fs.StringVar(&cfg.RenamePattern, "rename-file", "", "Rename files using this token pattern")
	fs.StringVar(&cfg.RenamePattern, "n", "", "Same as --rename-file")
	fs.BoolVar(&cfg.DryRun, "dry-run", false, "Show what would be renamed without changing anything")
	fs.BoolVar(&cfg.DryRun, "r", false, "Same as --dry-run")
	fs.IntVar(&cfg.RenameAttempts, "rename-attempts", cfg.RenameAttempts, "Destinations to try when the name is taken")
}

// defineExtractionFlags registers --backend and --fail-fast.
func defineExtractionFlags(fs *flag.FlagSet, cfg *Config) {
	fs.Var(&backendValue{&cfg.Backend}, "backend", "Metadata backend: native | exiftool")
	fs.BoolVar(&cfg.FailFast, "fail-fast", false, "Stop at the first file that fails")
}

// defineDisplayFlags registers quiet, detail-off, debug, progress, color flags, and --log.
func defineDisplayFlags(fs *flag.FlagSet, cfg *Config, t *toggleFlags) {
	fs.BoolVar(&cfg.Quiet, "quiet", false, "Only print errors")
	fs.BoolVar(&cfg.Quiet, "q", false, "Same as --quiet")
	fs.BoolVar(&cfg.DetailOff, "detail-off", false, "Do not print per-file metadata")
	fs.BoolVar(&cfg.DetailOff, "o", false, "Same as --detail-off")
	fs.Var(&countValue{p: &cfg.DebugLevel, step: 1}, "debug", "Debug output; twice for trace")
	fs.Var(&countValue{p: &cfg.DebugLevel, step: 1}, "d", "Same as --debug")
	fs.Var(&countValue{p: &cfg.DebugLevel, step: 2}, "dd", "Same as -d -d")
	fs.BoolVar(&cfg.Progress, "progress", false, "Show a progress bar on stderr")
	fs.BoolVar(&t.forceColor, "color", false, "Force colored logs")
	fs.BoolVar(&t.noColor, "no-color", false, "Disable colored logs")
	fs.StringVar(&cfg.LogFile, "log", "", "Append JSON logs to file")
	fs.StringVar(&cfg.LogFile, "l", "", "Same as --log")
}

// defineUtilityFlags registers --check, --version and --help.
func defineUtilityFlags(fs *flag.FlagSet, cfg *Config, t *toggleFlags) {
	fs.BoolVar(&cfg.CheckOnly, "check", false, "Run system diagnostics and exit")
	fs.BoolVar(&cfg.CheckOnly, "c", false, "Same as --check")
	fs.BoolVar(&t.showVersion, "version", false, "Print version and exit")
	fs.BoolVar(&t.showVersion, "V", false, "Same as --version")
	fs.BoolVar(&t.showHelp, "help", false, "Show this help and exit")
	fs.BoolVar(&t.showHelp, "h", false, "Same as --help")
}

// applyToggles copies toggle flag values into cfg. --no-color wins over --color.
func applyToggles(cfg *Config, t *toggleFlags) {
	if t.noColor {
		cfg.ColorMode = ColorNever
	} else if t.forceColor {
		cfg.ColorMode = ColorAlways
	}
}

// splitTerminator separates args at the first bare "--".
func splitTerminator(args []string) (flagArgs, trailing []string) {
	for i, a := range args {
		if a == "--" {
			return args[:i], args[i+1:]
		}
	}
	return args, nil
}

// parseInterleaved runs fs.Parse repeatedly, peeling off one positional
// argument each time flag parsing stops, so "a.pdf -r b.pdf" works.
func parseInterleaved(fs *flag.FlagSet, args []string) ([]string, error) {
	var positional []string
	for {
		if err := fs.Parse(args); err != nil {
			return nil, err
		}
		args = fs.Args()
		if len(args) == 0 {
			return positional, nil
		}
		positional = append(positional, args[0])
		args = args[1:]
	}
}

// printUsage writes the help text to w. Column-aligned for readability.
func printUsage(w io.Writer, version string) {
	const col1 = 30 // width of "  -x, --long-name <arg>  "
	lines := []struct {
		flags string
		desc  string
	}{
		{"", "ebookmeta v" + version + ": show e-book metadata and rename files from it"},
		{"", ""},
		{"  ebookmeta [OPTIONS] <file|dir>...", ""},
		{"", ""},
		{"Renaming", ""},
		{"  -n, --rename-file <pattern>", "Rename using tokens %t %a %p %i %y"},
		{"  -r, --dry-run", "Show the new names without renaming"},
		{"  --rename-attempts <n>", "Names to try when taken (default: 5)"},
		{"", ""},
		{"Extraction", ""},
		{"  --backend <native|exiftool>", "Metadata backend (default: native)"},
		{"  --fail-fast", "Stop at the first file that fails"},
		{"", ""},
		{"Display", ""},
		{"  -q, --quiet", "Only print errors"},
		{"  -o, --detail-off", "Do not print per-file metadata"},
		{"  -d, --debug", "Debug output; -dd for trace"},
		{"  --progress", "Progress bar on stderr"},
		{"  --color", "Force colored logs"},
		{"  --no-color", "Disable colored logs"},
		{"", ""},
		{"Utility", ""},
		{"  -l, --log <path>", "Append JSON logs to file"},
		{"  -c, --check", "System diagnostics (readers, exiftool)"},
		{"  -V, --version", "Print version and exit"},
		{"  -h, --help", "Show this help and exit"},
	}

	for _, l := range lines {
		if l.flags == "" && l.desc == "" {
			fmt.Fprintln(w)
			continue
		}
		if l.desc == "" {
			fmt.Fprintln(w, l.flags)
			continue
		}
		if l.flags == "" {
			fmt.Fprintln(w, l.desc)
			continue
		}
		padding := col1 - len(l.flags)
		if padding < 1 {
			padding = 1
		}
		fmt.Fprintf(w, "%s%*s%s\n", l.flags, padding, "", l.desc)
	}
}

// flag.Value adapters.

type backendValue struct{ p *Backend }

func (b *backendValue) String() string {
	if b.p == nil {
		return ""
	}
	return string(*b.p)
}

func (b *backendValue) Set(s string) error {
	switch strings.ToLower(s) {
	case "native":
		*b.p = BackendNative
	case "exiftool":
		*b.p = BackendExiftool
	default:
		return fmt.Errorf("invalid backend %q (use 'native' or 'exiftool')", s)
	}
	return nil
}

// countValue is a boolean-style flag that adds step each time it appears.
type countValue struct {
	p    *int
	step int
}

func (c *countValue) String() string {
	if c.p == nil {
		return "0"
	}
	return strconv.Itoa(*c.p)
}

func (c *countValue) Set(s string) error {
	on, err := strconv.ParseBool(s)
	if err != nil {
		return fmt.Errorf("invalid debug value %q", s)
	}
	if on {
		*c.p += c.step
	}
	return nil
}

func (c *countValue) IsBoolFlag() bool { return true }
