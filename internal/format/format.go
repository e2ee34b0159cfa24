package format

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
)

// OutputFormat represents the output format type for non-interactive mode
type OutputFormat string

const (
	// Text format prints one path per line.
	Text OutputFormat = "text"

	// JSON format prints the page as a JSON object.
	JSON OutputFormat = "json"
)

// String returns the string representation of the OutputFormat
func (f OutputFormat) String() string {
	return string(f)
}

// SupportedFormats is a list of all supported output formats as strings
var SupportedFormats = []string{
	string(Text),
	string(JSON),
}

// Parse converts a string to an OutputFormat
func Parse(s string) (OutputFormat, error) {
	s = strings.ToLower(strings.TrimSpace(s))

	switch s {
	case string(Text):
		return Text, nil
	case string(JSON):
		return JSON, nil
	default:
		return "", fmt.Errorf("invalid format: %s", s)
	}
}

// GetHelpText returns a formatted string describing all supported formats
func GetHelpText() string {
	return fmt.Sprintf(`Output format, one of:
- %s: one path per line (default)
- %s: the page as a JSON object`,
		Text, JSON)
}

// Listing is one page of a directory listing. Files are relative to Root.
type Listing struct {
	Root  string   `json:"root"`
	Page  int      `json:"page"`
	Last  bool     `json:"last"`
	Files []string `json:"files"`
}

// Write prints l to w in the given format.
func Write(w io.Writer, format OutputFormat, l Listing) error {
	switch format {
	case JSON:
		if l.Files == nil {
			l.Files = []string{}
		}
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		if err := enc.Encode(l); err != nil {
			return fmt.Errorf("failed to marshal output into JSON: %w", err)
		}
		return nil
	default:
		for _, f := range l.Files {
			if _, err := fmt.Fprintln(w, f); err != nil {
				return err
			}
		}
		return nil
	}
}
