package config

// OutputFormat selects how reports are written.
type OutputFormat int

const (
	Text OutputFormat = iota // human readable grid and move lists
	JSON                     // array of report objects
)

// String returns the flag spelling of the format.
func (f OutputFormat) String() string {
	if f == JSON {
		return "json"
	}
	return "text"
}

// OutputConfig holds settings related to output formatting.
type OutputConfig struct {
	// Format specifies the report format.
	Format OutputFormat

	// Indent pretty-prints JSON output.
	Indent bool
}

// NewOutputConfig creates an OutputConfig with default values.
func NewOutputConfig() *OutputConfig {
	return &OutputConfig{Format: Text}
}
