package pipeline

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/schollz/progressbar/v3"

	"github.com/backmassage/ebookmeta/internal/config"
	"github.com/backmassage/ebookmeta/internal/display"
	"github.com/backmassage/ebookmeta/internal/event"
	"github.com/backmassage/ebookmeta/internal/logging"
	"github.com/backmassage/ebookmeta/internal/metadata"
	"github.com/backmassage/ebookmeta/internal/naming"
)

// Extractor returns the raw metadata bag for one file. *provider.Registry
// implements it.
type Extractor interface {
	Extract(ctx context.Context, format metadata.Format, path string) (metadata.RawFields, error)
}

// errSkipped marks an unsupported file; it is counted, not failed.
var errSkipped = errors.New("unsupported file type")

// runner carries the per-run collaborators. None of them hold per-file
// state, so files stay independent.
type runner struct {
	cfg        *config.Config
	log        *logging.Logger
	extractor  Extractor
	normalizer *metadata.Normalizer
	renamer    *naming.Renamer
	out        io.Writer // Metadata listing and rename lines.
	barOut     io.Writer // Progress bar.
}

func newRunner(cfg *config.Config, log *logging.Logger, ex Extractor, out, barOut io.Writer) *runner {
	return &runner{
		cfg:        cfg,
		log:        log,
		extractor:  ex,
		normalizer: metadata.NewNormalizer(metadata.DefaultUnknown(), log),
		renamer:    naming.NewRenamer(log, naming.WithMaxAttempts(cfg.RenameAttempts)),
		out:        out,
		barOut:     barOut,
	}
}

// Run is the top-level batch entry point. It discovers files, processes
// each sequentially, and returns aggregate stats. Cancelling ctx stops the
// run after the current file.
func Run(ctx context.Context, cfg *config.Config, log *logging.Logger, ex Extractor) RunStats {
	return newRunner(cfg, log, ex, os.Stdout, os.Stderr).run(ctx)
}

func (r *runner) run(ctx context.Context) RunStats {
	var stats RunStats

	files, err := Discover(r.cfg.Files)
	if err != nil {
		r.log.Error("File discovery failed: %v", err)
		stats.Failed++
		return stats
	}
	stats.Total = len(files)
	r.log.Debug("Found %d files", stats.Total)
	if r.cfg.DryRun && r.cfg.RenameSet {
		r.log.Warn("DRY RUN: no files will be renamed")
	}

	var bar *progressbar.ProgressBar
	if r.cfg.Progress && stats.Total > 0 {
		bar = progressbar.NewOptions(stats.Total,
			progressbar.OptionSetWriter(r.barOut),
			progressbar.OptionSetDescription("Reading"),
			progressbar.OptionShowCount(),
			progressbar.OptionClearOnFinish(),
		)
	}

	for i, path := range files {
		if ctx.Err() != nil {
			r.log.Warn("Interrupted")
			break
		}
		stats.Current = i + 1

		err := r.processFile(ctx, path, &stats)
		if bar != nil {
			_ = bar.Add(1)
		}
		if err != nil && !errors.Is(err, errSkipped) && r.cfg.FailFast {
			r.log.Error("Stopping after first failure (--fail-fast)")
			break
		}
	}
	if bar != nil {
		_ = bar.Finish()
	}

	r.logSummary(&stats)
	return stats
}

// processFile handles one file: validate → extract → normalize → print →
// render → rename. Every failure is logged and counted here.
func (r *runner) processFile(ctx context.Context, path string, stats *RunStats) error {
	format := metadata.FormatFromPath(path)
	if format == metadata.FormatUnknown {
		r.log.Warn("Unknown file type: %s", path)
		stats.Skipped++
		return errSkipped
	}
	r.log.Info("Processing %s: %s", strings.ToUpper(string(format)), path)

	// --- Validate ---
	fi, err := os.Stat(path)
	if err != nil {
		r.log.Error("File not found: %s", path)
		stats.Failed++
		return err
	}
	if fi.IsDir() {
		r.log.Error("Not a file: %s", path)
		stats.Failed++
		return fmt.Errorf("%s is a directory", path)
	}

	// --- Extract ---
	r.log.Emit(event.New(event.ExtractStart, path, "format", string(format)))
	raw, err := r.extractor.Extract(ctx, format, path)
	if err != nil {
		r.log.Error("Error processing %s: %s. Error: %v", strings.ToUpper(string(format)), path, err)
		stats.Failed++
		return err
	}
	r.log.Emit(event.New(event.ExtractEnd, path, "fields", strconv.Itoa(len(raw))))
	stats.TotalBytes += fi.Size()

	// --- Normalize ---
	rec := r.normalizer.NormalizeFile(path, format, raw)
	stats.Read++

	if !r.cfg.DetailOff && !r.cfg.Quiet {
		display.PrintRecord(r.out, rec)
	}

	if !r.cfg.RenameSet {
		return nil
	}

	// --- Render and rename ---
	stem, err := naming.Render(r.cfg.RenamePattern, rec)
	if err != nil {
		r.log.Error("%s: %v", path, err)
		stats.Failed++
		return err
	}

	outcome, err := r.renamer.Rename(path, stem, naming.Extension(path), r.cfg.DryRun)
	if err != nil {
		r.log.Error("%v", err)
		stats.Failed++
		return err
	}

	if outcome.Changed {
		stats.Renamed++
	} else {
		stats.Unchanged++
	}
	if outcome.Disambiguated {
		stats.Disambiguated++
	}
	if !r.cfg.Quiet {
		fmt.Fprintln(r.out, display.FormatRename(path, outcome.Path, outcome.DryRun))
	}
	return nil
}

// logSummary reports counters. Single-file runs stay quiet unless
// something failed.
func (r *runner) logSummary(stats *RunStats) {
	if stats.Failed > 0 {
		r.log.Warn("%d of %d files failed", stats.Failed, stats.Total)
	}
	if stats.Total <= 1 && stats.Failed == 0 {
		return
	}
	summary := fmt.Sprintf("Done: %d read (%s), %d skipped, %d failed",
		stats.Read, display.FormatBytes(stats.TotalBytes), stats.Skipped, stats.Failed)
	if r.cfg.RenameSet {
		summary += fmt.Sprintf("; %d renamed, %d unchanged, %d disambiguated",
			stats.Renamed, stats.Unchanged, stats.Disambiguated)
	}
	r.log.Info("%s", summary)
}
