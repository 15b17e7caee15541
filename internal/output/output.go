// Package output formats analysis reports as text or JSON.
package output

import (
	"fmt"
	"io"
	"strings"

	"github.com/lgbarn/tilechess-go/internal/analysis"
	"github.com/lgbarn/tilechess-go/internal/config"
)

// OutputWriter handles formatted output with line length control.
type OutputWriter struct {
	w             io.Writer
	lineLength    int
	maxLineLength int
	needsSpace    bool
	indent        string
}

// NewOutputWriter creates a new output writer.
func NewOutputWriter(w io.Writer, maxLineLength int) *OutputWriter {
	if maxLineLength <= 0 {
		maxLineLength = 80
	}
	return &OutputWriter{
		w:             w,
		maxLineLength: maxLineLength,
	}
}

// SetIndent sets the prefix written at the start of continuation lines.
func (o *OutputWriter) SetIndent(indent string) {
	o.indent = indent
}

// Write writes a string, adding a space separator if needed.
func (o *OutputWriter) Write(s string) {
	if o.needsSpace && len(s) > 0 {
		// Check if we need a new line
		if o.lineLength+1+len(s) > o.maxLineLength {
			fmt.Fprintln(o.w)
			fmt.Fprint(o.w, o.indent)
			o.lineLength = len(o.indent)
			o.needsSpace = false
		} else {
			fmt.Fprint(o.w, " ")
			o.lineLength++
		}
	}

	fmt.Fprint(o.w, s)
	o.lineLength += len(s)
	o.needsSpace = true
}

// NewLine starts a new line.
func (o *OutputWriter) NewLine() {
	fmt.Fprintln(o.w)
	o.lineLength = 0
	o.needsSpace = false
}

// OutputReport writes a report in text form: header tags, the grid, one
// status line per side, the moves of the side to move and any warnings.
func OutputReport(r *analysis.Report, cfg *config.Config, w io.Writer) {
	outputTags(r, cfg, w)
	fmt.Fprintln(w)

	if cfg.Annotation.ShowGrid && r.TileMap != "" {
		fmt.Fprint(w, r.TileMap)
		fmt.Fprintln(w)
	}

	outputSide(r.White, w)
	outputSide(r.Black, w)

	if cfg.Annotation.ShowMoves {
		outputMoves(r, w)
	}

	if cfg.Annotation.ShowWarnings {
		for _, warning := range r.Warnings {
			fmt.Fprintf(w, "warning: %s\n", warning)
		}
	}

	// Blank line between reports
	fmt.Fprintln(w)
}

// outputTags writes the header lines.
func outputTags(r *analysis.Report, cfg *config.Config, w io.Writer) {
	writeTag(w, "Position", r.Name)
	writeTag(w, "ToMove", r.ToMove)
	writeTag(w, "Status", r.Status)
	if cfg.Annotation.ShowFEN && r.FEN != "" {
		writeTag(w, "FEN", r.FEN)
	}
	if cfg.Annotation.ShowHash {
		writeTag(w, "Hash", r.Hash)
	}
}

func writeTag(w io.Writer, tag, value string) {
	if value == "" {
		value = "?"
	}
	fmt.Fprintf(w, "[%s \"%s\"]\n", tag, escapeTagValue(value))
}

// escapeTagValue escapes special characters in tag values.
func escapeTagValue(s string) string {
	// Fast path: if no escaping needed, return original string
	if !strings.ContainsAny(s, "\\\"") {
		return s
	}
	s = strings.ReplaceAll(s, "\\", "\\\\")
	s = strings.ReplaceAll(s, "\"", "\\\"")
	return s
}

// outputSide writes one status line, e.g. "White: check, 12 pieces, 3/20 moves".
func outputSide(s analysis.SideReport, w io.Writer) {
	fmt.Fprintf(w, "%s: %s, %d pieces, %d/%d moves\n", s.Colour, s.Status, s.Pieces, s.SafeMoves, s.Moves)
}

// outputMoves writes one wrapped line per piece. Destinations that would
// leave the king in check are marked with a trailing '?'.
func outputMoves(r *analysis.Report, w io.Writer) {
	for _, pm := range r.Moves {
		ow := NewOutputWriter(w, 80)
		ow.SetIndent("         ")
		ow.Write(fmt.Sprintf("%s %s:", pm.Piece, pm.Cell))
		if len(pm.Destinations) == 0 {
			ow.Write("-")
		}
		for _, dest := range pm.Destinations {
			ow.Write(markUnsafe(dest, pm.Safe))
		}
		ow.NewLine()
	}
}

func markUnsafe(dest string, safe []string) string {
	for _, s := range safe {
		if s == dest {
			return dest
		}
	}
	return dest + "?"
}
