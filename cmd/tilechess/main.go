// tilechess analyses chess positions stored as tile maps or FEN, plays
// local games and serves the rule engine over HTTP.
package main

import (
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/lgbarn/tilechess-go/internal/config"
)

const programVersion = "0.1.0"

func main() {
	flag.Usage = usage
	flag.Parse()

	if *help {
		usage()
		os.Exit(0)
	}

	if *version {
		fmt.Printf("tilechess-go version %s\n", programVersion)
		os.Exit(0)
	}

	if !validToMove() {
		fmt.Fprintf(os.Stderr, "Invalid -tomove %q: want w or b\n", *toMove)
		os.Exit(1)
	}

	cfg := config.NewConfig()
	applyFlags(cfg)
	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	if err := setupFiles(cfg); err != nil {
		closeFiles(cfg)
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	logger := newLogger(cfg.LogFile, cfg.Verbosity)

	var err error
	switch {
	case *serveMode:
		err = runServer(cfg, logger)
	case *playMode:
		err = runPlay(cfg, flag.Args(), os.Stdin, cfg.OutputFile, logger)
	default:
		var stats Stats
		stats, err = runBatch(cfg, flag.Args(), os.Stdin, logger)
		reportStatistics(logger, stats, cfg.Duplicate.Suppress)
	}

	closeFiles(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// newLogger returns a text logger whose level follows the verbosity:
// 0 errors only, 1 info, 2 debug.
func newLogger(w io.Writer, verbosity int) *slog.Logger {
	level := slog.LevelInfo
	switch {
	case verbosity <= 0:
		level = slog.LevelError
	case verbosity >= 2:
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}

// openSink opens a file for writing, truncating it unless appendMode is
// set.
func openSink(path string, appendMode bool) (*os.File, error) {
	mode := os.O_CREATE | os.O_WRONLY | os.O_TRUNC
	if appendMode {
		mode = os.O_CREATE | os.O_WRONLY | os.O_APPEND
	}
	return os.OpenFile(path, mode, 0644) //nolint:gosec // G302: user-requested output files
}

// setupFiles opens the log, output and duplicate files named on the
// command line. -L wins over -l.
func setupFiles(cfg *config.Config) error {
	logPath, appendLogFile := *logFile, false
	if *appendLog != "" {
		logPath, appendLogFile = *appendLog, true
	}

	sinks := []struct {
		path       string
		appendMode bool
		set        func(*os.File)
	}{
		{logPath, appendLogFile, func(f *os.File) { cfg.LogFile = f }},
		{*outputFile, *appendOutput, func(f *os.File) { cfg.OutputFilename, cfg.OutputFile = f.Name(), f }},
		{*duplicateFile, false, func(f *os.File) { cfg.Duplicate.DuplicateFile = f }},
	}
	for _, sink := range sinks {
		if sink.path == "" {
			continue
		}
		f, err := openSink(sink.path, sink.appendMode)
		if err != nil {
			return fmt.Errorf("opening %s: %w", sink.path, err)
		}
		sink.set(f)
	}
	return nil
}

// closeFiles closes any files opened by the setup functions.
func closeFiles(cfg *config.Config) {
	for _, w := range []io.Writer{cfg.OutputFile, cfg.Duplicate.DuplicateFile, cfg.LogFile} {
		if f, ok := w.(*os.File); ok && f != os.Stdout && f != os.Stderr {
			f.Close() //nolint:errcheck,gosec // G104: cleanup on exit
		}
	}
}

func usage() {
	fmt.Fprintf(os.Stderr, "Usage: tilechess [options] [tilemap-files...]\n\n")
	fmt.Fprintf(os.Stderr, "Analyse chess positions stored as tile maps or FEN.\n")
	fmt.Fprintf(os.Stderr, "With no files, one or more tile maps are read from stdin.\n\n")
	fmt.Fprintf(os.Stderr, "Options:\n")
	flag.PrintDefaults()
	fmt.Fprintf(os.Stderr, "\nTile maps:\n")
	fmt.Fprintf(os.Stderr, "  One row per line, highest rank first: |w_ro|w_kn|...|none|\n")
	fmt.Fprintf(os.Stderr, "  Tokens are w_ or b_ followed by pa bi kn ro qu ki, or none.\n")
	fmt.Fprintf(os.Stderr, "  Separate positions in one file with a blank line.\n")
	fmt.Fprintf(os.Stderr, "\nEnvironment:\n")
	fmt.Fprintf(os.Stderr, "  TILECHESS_ADDR     default for -addr\n")
	fmt.Fprintf(os.Stderr, "  TILECHESS_WORKERS  default for -workers\n")
}
