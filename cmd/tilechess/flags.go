// flags.go - Command-line flag definitions and configuration
package main

import (
	"flag"
	"os"
	"strconv"
	"strings"

	"github.com/lgbarn/tilechess-go/internal/chess"
	"github.com/lgbarn/tilechess-go/internal/config"
)

var (
	// Output options
	outputFile   = flag.String("o", "", "Output file (default: stdout)")
	appendOutput = flag.Bool("a", false, "Append to output file instead of overwrite")
	jsonOutput   = flag.Bool("J", false, "Output in JSON format")
	jsonSingle   = flag.Bool("jsonl", false, "Output one JSON object per line instead of one array")
	prettyJSON   = flag.Bool("pretty", false, "Indent JSON output")

	// Report sections
	noGrid     = flag.Bool("nogrid", false, "Don't output the tile map grid")
	noMoves    = flag.Bool("nomoves", false, "Don't output per-piece destinations")
	noFEN      = flag.Bool("nofen", false, "Don't output FEN")
	noWarnings = flag.Bool("nowarn", false, "Don't output position warnings")
	addHash    = flag.Bool("hash", false, "Add the Zobrist hash to text output")

	// Input options
	fenInput  = flag.String("fen", "", "Analyse this FEN position instead of reading inputs")
	fenLines  = flag.Bool("F", false, "Inputs hold one FEN per line instead of tile maps")
	toMove    = flag.String("tomove", "w", "Side to move for tile map inputs: w or b")
	firstCell = flag.Int("first", 0, "Lowest board coordinate for tile map inputs")
	lastCell  = flag.Int("last", 7, "Highest board coordinate for tile map inputs")
	strictMap = flag.Bool("strict", false, "Reject malformed tile maps instead of skipping bad tokens")

	// Duplicate detection
	suppressDuplicates = flag.Bool("D", false, "Suppress duplicate positions")
	duplicateFile      = flag.String("d", "", "Write \"duplicate<TAB>original\" name pairs to this file")
	anyToMove          = flag.Bool("anytomove", false, "Positions with either side to move are duplicates")
	duplicateCapacity  = flag.Int("duplicate-capacity", 0, "Maximum stored positions (0 = unlimited)")

	// Filtering options
	checkFilter     = flag.Bool("check", false, "Only output positions where the side to move is in check (or mated)")
	checkmateFilter = flag.Bool("checkmate", false, "Only output checkmate positions")
	stalemateFilter = flag.Bool("stalemate", false, "Only output stalemate positions")
	minPieces       = flag.Int("minpieces", 0, "Minimum number of pieces on the board")
	maxPieces       = flag.Int("maxpieces", 0, "Maximum number of pieces on the board (0 = no limit)")

	// Modes
	playMode  = flag.Bool("play", false, "Play an interactive game on stdin")
	serveMode = flag.Bool("serve", false, "Run the HTTP analysis API")
	serveAddr = flag.String("addr", getenv("TILECHESS_ADDR", ":8080"), "Listen address for -serve")

	// Logging
	logFile   = flag.String("l", "", "Write diagnostics to log file")
	appendLog = flag.String("L", "", "Append diagnostics to log file")

	// Other options
	quiet   = flag.Bool("s", false, "Silent mode (errors only)")
	verbose = flag.Bool("v", false, "Verbose mode (debug logging)")
	help    = flag.Bool("h", false, "Show help")
	version = flag.Bool("version", false, "Show version")

	// Performance options
	workers = flag.Int("workers", getenvInt("TILECHESS_WORKERS", 0), "Number of worker threads (0 = auto-detect based on CPU cores)")
)

// applyFlags applies command-line flags to the configuration.
func applyFlags(cfg *config.Config) {
	applyInputFlags(cfg)
	applyOutputFlags(cfg)
	applyAnnotationFlags(cfg)
	applyFilterFlags(cfg)
	applyDuplicateFlags(cfg)

	cfg.Workers = *workers
	if *serveMode {
		cfg.Server.Addr = *serveAddr
	}

	switch {
	case *quiet:
		cfg.Verbosity = 0
	case *verbose:
		cfg.Verbosity = 2
	}
}

// applyInputFlags configures board geometry and how positions are read.
func applyInputFlags(cfg *config.Config) {
	cfg.First = clampInt8(*firstCell)
	cfg.Last = clampInt8(*lastCell)
	cfg.FEN = strings.TrimSpace(*fenInput)
	cfg.Strict = *strictMap
	if c, ok := chess.ParseColour(strings.TrimSpace(*toMove)); ok {
		cfg.ToMove = c
	}
}

// applyOutputFlags configures the output format.
func applyOutputFlags(cfg *config.Config) {
	if *jsonOutput || *jsonSingle {
		cfg.Output.Format = config.JSON
	} else {
		cfg.Output.Format = config.Text
	}
	cfg.Output.Indent = *prettyJSON
}

// applyAnnotationFlags configures which report sections are written.
func applyAnnotationFlags(cfg *config.Config) {
	cfg.Annotation.ShowGrid = !*noGrid
	cfg.Annotation.ShowMoves = !*noMoves
	cfg.Annotation.ShowFEN = !*noFEN
	cfg.Annotation.ShowWarnings = !*noWarnings
	cfg.Annotation.ShowHash = *addHash
}

// applyFilterFlags configures position filter settings.
func applyFilterFlags(cfg *config.Config) {
	cfg.Filter.MatchCheck = *checkFilter
	cfg.Filter.MatchCheckmate = *checkmateFilter
	cfg.Filter.MatchStalemate = *stalemateFilter

	if *minPieces > 0 || *maxPieces > 0 {
		cfg.Filter.CheckPieceBounds = true
		cfg.Filter.MinPieces = *minPieces
		cfg.Filter.MaxPieces = *maxPieces
	}
}

// applyDuplicateFlags configures duplicate detection settings.
func applyDuplicateFlags(cfg *config.Config) {
	cfg.Duplicate.Suppress = *suppressDuplicates || *duplicateFile != ""
	cfg.Duplicate.ExactMatch = !*anyToMove
	cfg.Duplicate.MaxCapacity = *duplicateCapacity
}

// validToMove reports whether the -tomove value names a colour.
func validToMove() bool {
	_, ok := chess.ParseColour(strings.TrimSpace(*toMove))
	return ok
}

func clampInt8(v int) int8 {
	switch {
	case v < -128:
		return -128
	case v > 127:
		return 127
	}
	return int8(v)
}

func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getenvInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(strings.TrimSpace(v)); err == nil {
			return n
		}
	}
	return def
}
