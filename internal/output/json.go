package output

import (
	"encoding/json"
	"io"

	"github.com/lgbarn/tilechess-go/internal/analysis"
	"github.com/lgbarn/tilechess-go/internal/config"
)

// JSONOutput holds multiple reports for array output.
type JSONOutput struct {
	Positions []*analysis.Report `json:"positions"`
}

// ReportToJSON returns a copy of the report with the sections disabled in
// cfg.Annotation removed. The hash is always kept.
func ReportToJSON(r *analysis.Report, cfg *config.Config) *analysis.Report {
	out := *r
	if !cfg.Annotation.ShowGrid {
		out.TileMap = ""
	}
	if !cfg.Annotation.ShowMoves {
		out.Moves = nil
	}
	if !cfg.Annotation.ShowFEN {
		out.FEN = ""
	}
	if !cfg.Annotation.ShowWarnings {
		out.Warnings = nil
	}
	return &out
}

// OutputReportJSON outputs a single report in JSON format.
func OutputReportJSON(r *analysis.Report, cfg *config.Config, w io.Writer) error {
	return newEncoder(w, cfg).Encode(ReportToJSON(r, cfg))
}

// OutputReportsJSON outputs multiple reports as a JSON object with a
// positions array.
func OutputReportsJSON(reports []*analysis.Report, cfg *config.Config, w io.Writer) error {
	out := &JSONOutput{Positions: make([]*analysis.Report, len(reports))}
	for i, r := range reports {
		out.Positions[i] = ReportToJSON(r, cfg)
	}
	return newEncoder(w, cfg).Encode(out)
}

func newEncoder(w io.Writer, cfg *config.Config) *json.Encoder {
	enc := json.NewEncoder(w)
	if cfg.Output.Indent {
		enc.SetIndent("", "  ")
	}
	return enc
}
