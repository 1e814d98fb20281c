// Package report renders a pipeline result as CSV tables, a JSON document
// or a plain-text summary.
package report

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"news-textmining/internal/pipeline"
)

// Output formats.
const (
	FormatText = "text"
	FormatCSV  = "csv"
	FormatJSON = "json"
)

// WriteJSON encodes res as one indented document. Missing positivity
// scores encode as null.
func WriteJSON(w io.Writer, res *pipeline.Result) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(res)
}

// Write renders res in every requested format. Text goes to stdout; CSV and
// JSON go to files under dir. It returns the files written.
func Write(res *pipeline.Result, dir string, formats []string, stdout io.Writer) ([]string, error) {
	var written []string

	for _, f := range formats {
		switch f {
		case FormatText:
			if err := WriteText(stdout, res); err != nil {
				return written, fmt.Errorf("write text report: %w", err)
			}

		case FormatCSV:
			paths, err := WriteCSV(dir, res)
			written = append(written, paths...)
			if err != nil {
				return written, err
			}

		case FormatJSON:
			p, err := writeJSONFile(filepath.Join(dir, "result.json"), res)
			if err != nil {
				return written, err
			}
			written = append(written, p)

		default:
			return written, fmt.Errorf("unknown output format %q", f)
		}
	}
	return written, nil
}

func writeJSONFile(path string, res *pipeline.Result) (string, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return "", fmt.Errorf("create output dir: %w", err)
	}
	out, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("create %s: %w", path, err)
	}
	defer out.Close()

	if err := WriteJSON(out, res); err != nil {
		return "", fmt.Errorf("write %s: %w", path, err)
	}
	return path, out.Close()
}
