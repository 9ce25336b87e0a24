// Package check provides system diagnostics (--check mode) and pre-pipeline
// dependency validation (CheckDeps) for the exiftool binary that backs MOBI
// extraction and the exiftool backend.
package check

import (
	"errors"
	"os/exec"
	"strings"

	"github.com/barasher/go-exiftool"

	"github.com/backmassage/ebookmeta/internal/config"
)

// Sentinel errors returned by CheckDeps.
var (
	ErrExiftoolNotFound = errors.New("exiftool not found on PATH")
	ErrExiftoolBroken   = errors.New("exiftool found but could not be started")
)

// Logger is the minimal logging interface needed by RunCheck.
// Defined here (rather than importing the logging package) so that check
// remains dependency-light and testable with a mock logger.
type Logger interface {
	Info(string, ...interface{})
	Success(string, ...interface{})
	Warn(string, ...interface{})
	Error(string, ...interface{})
	Debug(string, ...interface{})
}

// Swappable for tests.
var (
	lookPath      = exec.LookPath
	versionOf     = exiftoolVersion
	startStayOpen = func() error {
		et, err := exiftool.NewExiftool()
		if err != nil {
			return err
		}
		return et.Close()
	}
)

// RunCheck runs the --check flow: reports the built-in readers and whether
// exiftool is usable. Returns false when the configured backend cannot work.
func RunCheck(cfg *config.Config, log Logger) bool {
	log.Info("=== System Check ===")
	log.Success("PDF reader: built in")
	log.Success("EPUB reader: built in")

	ok := checkExiftool(log)
	if !ok {
		if cfg.Backend == config.BackendExiftool {
			log.Error("Backend %q needs exiftool", cfg.Backend)
			return false
		}
		log.Warn("MOBI files will fail until exiftool is installed")
	}
	return true
}

// checkExiftool verifies exiftool is on PATH and that the stay-open
// process used for extraction starts.
func checkExiftool(log Logger) bool {
	path, err := lookPath("exiftool")
	if err != nil {
		log.Error("exiftool not found")
		return false
	}
	log.Debug("exiftool at %s", path)

	if v, err := versionOf(path); err != nil {
		log.Warn("exiftool found but -ver failed: %v", err)
	} else {
		log.Success("exiftool: %s", v)
	}

	if err := startStayOpen(); err != nil {
		log.Error("exiftool stay-open mode failed: %v", err)
		return false
	}
	return true
}

// CheckDeps is the pre-pipeline validation. exiftool is required only by
// the exiftool backend; on the native backend its absence only affects
// MOBI files and is reported per file.
func CheckDeps(cfg *config.Config) error {
	if cfg.Backend != config.BackendExiftool {
		return nil
	}
	if _, err := lookPath("exiftool"); err != nil {
		return ErrExiftoolNotFound
	}
	if err := startStayOpen(); err != nil {
		return ErrExiftoolBroken
	}
	return nil
}

func exiftoolVersion(path string) (string, error) {
	out, err := exec.Command(path, "-ver").Output()
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(string(out)), nil
}
