// processor.go - Position reading, analysis and output
package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/lgbarn/tilechess-go/internal/analysis"
	"github.com/lgbarn/tilechess-go/internal/config"
	"github.com/lgbarn/tilechess-go/internal/hashing"
	"github.com/lgbarn/tilechess-go/internal/output"
	"github.com/lgbarn/tilechess-go/internal/worker"
)

// ProcessingContext holds all processing state
type ProcessingContext struct {
	cfg      *config.Config
	logger   *slog.Logger
	detector *hashing.ThreadSafeDuplicateDetector
	writer   output.ReportWriter
	opts     analysis.ParseOptions
	filter   analysis.Filter
}

// Stats counts what happened to the positions of a run.
type Stats struct {
	Total      int
	Output     int
	Filtered   int
	Duplicates int
	Errors     int
}

// newProcessingContext builds the context for a batch run.
func newProcessingContext(cfg *config.Config, logger *slog.Logger, fenMode bool) (*ProcessingContext, error) {
	board, err := cfg.Board()
	if err != nil {
		return nil, err
	}

	ctx := &ProcessingContext{
		cfg:    cfg,
		logger: logger,
		writer: newReportWriter(cfg),
		opts: analysis.ParseOptions{
			Board:  board,
			ToMove: cfg.ToMove,
			Strict: cfg.Strict,
			FEN:    fenMode,
		},
		filter: cfg.Filter.Filter(),
	}
	if cfg.Duplicate.Suppress {
		ctx.detector = hashing.NewThreadSafeDuplicateDetector(cfg.Duplicate.ExactMatch, cfg.Duplicate.MaxCapacity)
	}
	return ctx, nil
}

func newReportWriter(cfg *config.Config) output.ReportWriter {
	if cfg.Output.Format == config.JSON && *jsonSingle {
		return output.NewJSONWriterSingle(cfg.OutputFile, cfg)
	}
	return output.NewWriter(cfg.OutputFile, cfg)
}

// splitPositions splits tile map text into blocks separated by blank lines.
func splitPositions(text string) []string {
	var blocks []string
	var current []string
	flush := func() {
		if len(current) > 0 {
			blocks = append(blocks, strings.Join(current, "\n")+"\n")
			current = nil
		}
	}
	for _, line := range strings.Split(text, "\n") {
		if strings.TrimSpace(line) == "" {
			flush()
			continue
		}
		current = append(current, line)
	}
	flush()
	return blocks
}

// splitFENLines returns the non-empty lines of text. Lines starting with
// '#' are comments.
func splitFENLines(text string) []string {
	var lines []string
	sc := bufio.NewScanner(strings.NewReader(text))
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		lines = append(lines, line)
	}
	return lines
}

// readItems reads the positions of one input. When the input holds more
// than one position each is named name:N.
func readItems(r io.Reader, name string, fenMode bool, firstIndex int) ([]worker.WorkItem, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", name, err)
	}

	var texts []string
	if fenMode {
		texts = splitFENLines(string(data))
	} else {
		texts = splitPositions(string(data))
	}

	items := make([]worker.WorkItem, len(texts))
	for i, text := range texts {
		itemName := name
		if len(texts) > 1 {
			itemName = fmt.Sprintf("%s:%d", name, i+1)
		}
		items[i] = worker.WorkItem{Name: itemName, Text: text, Index: firstIndex + i}
	}
	return items, nil
}

// collectItems gathers positions from -fen, the named files, or stdin.
// Unreadable files are logged and skipped.
func collectItems(cfg *config.Config, args []string, stdin io.Reader, logger *slog.Logger) []worker.WorkItem {
	if cfg.FEN != "" {
		return []worker.WorkItem{{Name: "fen", Text: cfg.FEN}}
	}

	if len(args) == 0 {
		items, err := readItems(stdin, "stdin", *fenLines, 0)
		if err != nil {
			logger.Error("cannot read input", "error", err)
		}
		return items
	}

	var items []worker.WorkItem
	for _, filename := range args {
		file, err := os.Open(filename) //nolint:gosec // G304: CLI tool opens user-specified files
		if err != nil {
			logger.Error("cannot open input", "file", filename, "error", err)
			continue
		}
		more, err := readItems(file, filename, *fenLines, len(items))
		file.Close() //nolint:errcheck,gosec // G104: read-only file
		if err != nil {
			logger.Error("cannot read input", "file", filename, "error", err)
			continue
		}
		items = append(items, more...)
	}
	return items
}

// processItems analyses the items and writes matching reports in input
// order.
func processItems(items []worker.WorkItem, ctx *ProcessingContext) Stats {
	process := worker.AnalyzeFunc(ctx.opts, ctx.filter, ctx.detector)
	results := worker.Run(context.Background(), items, ctx.cfg.NumWorkers(), process)

	stats := Stats{Total: len(items)}
	for _, result := range results {
		handleResult(result, ctx, &stats)
	}
	return stats
}

// handleResult writes or counts one result.
func handleResult(result worker.ProcessResult, ctx *ProcessingContext, stats *Stats) {
	switch {
	case result.Error != nil:
		stats.Errors++
		ctx.logger.Error("skipping position", "name", result.Name, "error", result.Error)
	case !result.Matched:
		stats.Filtered++
		ctx.logger.Debug("filtered", "name", result.Name, "status", result.Report.Status)
	case result.Duplicate:
		stats.Duplicates++
		ctx.logger.Debug("duplicate", "name", result.Name, "first", result.DuplicateOf, "hash", result.Report.Hash)
		if w := ctx.cfg.Duplicate.DuplicateFile; w != nil {
			fmt.Fprintf(w, "%s\t%s\n", result.Name, result.DuplicateOf)
		}
	case result.ShouldOutput:
		for _, warning := range result.Report.Warnings {
			ctx.logger.Warn("suspicious position", "name", result.Name, "warning", warning)
		}
		if err := ctx.writer.WriteReport(result.Report); err != nil {
			stats.Errors++
			ctx.logger.Error("cannot write report", "name", result.Name, "error", err)
			return
		}
		stats.Output++
	}
}

// runBatch analyses every input and closes the writer.
func runBatch(cfg *config.Config, args []string, stdin io.Reader, logger *slog.Logger) (Stats, error) {
	fenMode := cfg.FEN != "" || *fenLines
	ctx, err := newProcessingContext(cfg, logger, fenMode)
	if err != nil {
		return Stats{}, err
	}

	items := collectItems(cfg, args, stdin, logger)
	stats := processItems(items, ctx)
	if err := ctx.writer.Close(); err != nil {
		return stats, fmt.Errorf("writing output: %w", err)
	}
	return stats, nil
}

// reportStatistics prints the final statistics to the log.
func reportStatistics(logger *slog.Logger, stats Stats, suppressing bool) {
	if suppressing {
		logger.Info(fmt.Sprintf("%d position(s) output, %d duplicate(s) out of %d.", stats.Output, stats.Duplicates, stats.Total),
			"filtered", stats.Filtered, "errors", stats.Errors)
		return
	}
	logger.Info(fmt.Sprintf("%d position(s) matched out of %d.", stats.Output, stats.Total),
		"filtered", stats.Filtered, "errors", stats.Errors)
}
