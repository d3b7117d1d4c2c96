package ghoutput

import (
	"fmt"
	"io"
	"os"
	"sort"
	"strings"
)

// EnvVar names the file GitHub Actions collects step outputs from.
const EnvVar = "GITHUB_OUTPUT"

// Writer implements domain.OutputWriter. Outputs are appended to the file at
// Path as key=value lines, or written to Fallback when Path is empty.
type Writer struct {
	Path     string
	Fallback io.Writer
}

// New returns a Writer targeting $GITHUB_OUTPUT, falling back to w.
func New(w io.Writer) *Writer {
	return &Writer{Path: os.Getenv(EnvVar), Fallback: w}
}

// Write emits outputs in key order so the result is deterministic.
func (w *Writer) Write(outputs map[string]string) error {
	keys := make([]string, 0, len(outputs))
	for k := range outputs {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var b strings.Builder
	for _, k := range keys {
		v := outputs[k]
		if strings.Contains(v, "\n") {
			return fmt.Errorf("output %q: multi-line values are not supported", k)
		}
		fmt.Fprintf(&b, "%s=%s\n", k, v)
	}

	if w.Path == "" {
		if w.Fallback == nil {
			return nil
		}
		_, err := io.WriteString(w.Fallback, b.String())
		return err
	}

	f, err := os.OpenFile(w.Path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return fmt.Errorf("opening %s: %w", EnvVar, err)
	}
	defer f.Close()

	if _, err := f.WriteString(b.String()); err != nil {
		return fmt.Errorf("writing %s: %w", EnvVar, err)
	}
	return nil
}
