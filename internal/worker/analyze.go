package worker

import (
	"github.com/lgbarn/tilechess-go/internal/analysis"
	"github.com/lgbarn/tilechess-go/internal/hashing"
)

// AnalyzeFunc returns a ProcessFunc that parses each item, analyses it and
// applies the status filter. When detector is non-nil, repeated positions
// are flagged as duplicates of the first input holding them and not
// output.
func AnalyzeFunc(opts analysis.ParseOptions, filter analysis.Filter, detector *hashing.ThreadSafeDuplicateDetector) ProcessFunc {
	return func(item WorkItem) ProcessResult {
		result := ProcessResult{Name: item.Name, Index: item.Index}

		pos, err := analysis.ParsePosition(item.Name, item.Text, opts)
		if err != nil {
			result.Error = err
			return result
		}

		result.Report = analysis.AnalyzePosition(pos)
		result.Matched = filter.Matches(result.Report)
		if detector != nil {
			result.DuplicateOf, result.Duplicate = detector.Record(item.Name, pos.Pieces, pos.ToMove)
		}
		result.ShouldOutput = result.Matched && !result.Duplicate
		return result
	}
}
