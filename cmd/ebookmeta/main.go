// Command ebookmeta reads PDF, EPUB and MOBI metadata, prints it, and
// optionally renames each file from a pattern such as "%a - %t (%y)".
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/backmassage/ebookmeta/internal/check"
	"github.com/backmassage/ebookmeta/internal/config"
	"github.com/backmassage/ebookmeta/internal/display"
	"github.com/backmassage/ebookmeta/internal/logging"
	"github.com/backmassage/ebookmeta/internal/pipeline"
	"github.com/backmassage/ebookmeta/internal/provider"
)

// version and commit are injected at build time via -ldflags.
var (
	version = "0.3.0"
	commit  = "unknown"
)

func main() {
	os.Exit(run())
}

func run() int {
	// Bootstrap: no logger yet, errors go straight to stderr.
	cfg := config.DefaultConfig()
	if err := config.ParseFlags(&cfg, version, os.Args[1:]); err != nil {
		if errors.Is(err, flag.ErrHelp) || errors.Is(err, config.ErrVersion) {
			return 0
		}
		fmt.Fprintf(os.Stderr, "ebookmeta: %v\n", err)
		return 1
	}

	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "ebookmeta: %v\n", err)
		return 1
	}

	log, err := logging.NewLogger(&cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "ebookmeta: %v\n", err)
		return 1
	}
	defer log.Close()

	if cfg.CheckOnly {
		display.PrintBanner(os.Stdout)
		if !check.RunCheck(&cfg, log) {
			return 1
		}
		return 0
	}

	log.Debug("ebookmeta v%s (%s), run %s", version, commit, log.RunID())

	if err := check.CheckDeps(&cfg); err != nil {
		log.Error("%v", err)
		return 1
	}

	registry, err := provider.NewRegistry(provider.Backend(cfg.Backend))
	if err != nil {
		log.Error("%v", err)
		return 1
	}
	defer registry.Close()

	// Cancel on SIGINT/SIGTERM; the pipeline stops between files so no
	// rename is left half done.
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigCh
		log.Warn("Received interrupt, finishing current file")
		cancel()
	}()

	stats := pipeline.Run(ctx, &cfg, log, registry)
	if !stats.OK() {
		return 1
	}
	return 0
}
