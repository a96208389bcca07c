// Package export serializes binder layouts into downloadable documents.
package export

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/pokebinder/pokebinder/internal/binder"
)

// Options holds configuration for file export operations.
type Options struct {
	FilePath  string
	Overwrite bool
}

// WriteLayout writes a binder layout as a pretty-printed JSON document. The
// document schema is the layout itself, so an exported file can be re-imported
// verbatim.
func WriteLayout(w io.Writer, layout binder.Layout) error {
	output, err := json.MarshalIndent(layout, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal binder layout: %w", err)
	}
	output = append(output, '\n')

	if _, err := w.Write(output); err != nil {
		return fmt.Errorf("failed to write export: %w", err)
	}
	return nil
}

// ExportLayout writes a binder layout to the file named in opts.
func ExportLayout(layout binder.Layout, opts Options) error {
	if opts.FilePath == "" {
		return fmt.Errorf("export file path required")
	}

	if !opts.Overwrite {
		if _, err := os.Stat(opts.FilePath); err == nil {
			return fmt.Errorf("export file already exists: %s", opts.FilePath)
		}
	}

	if err := os.MkdirAll(filepath.Dir(opts.FilePath), 0o755); err != nil {
		return fmt.Errorf("failed to create export directory: %w", err)
	}

	file, err := os.Create(opts.FilePath)
	if err != nil {
		return fmt.Errorf("failed to create export file: %w", err)
	}
	defer func() { _ = file.Close() }()

	return WriteLayout(file, layout)
}

// ReadLayout parses a previously exported binder document.
func ReadLayout(r io.Reader) (binder.Layout, error) {
	var layout binder.Layout
	if err := json.NewDecoder(r).Decode(&layout); err != nil {
		return binder.Layout{}, fmt.Errorf("failed to parse binder document: %w", err)
	}
	if layout.Rows <= 0 || layout.Cols <= 0 {
		return binder.Layout{}, fmt.Errorf("binder document has invalid grid dimensions %dx%d", layout.Rows, layout.Cols)
	}
	if size := layout.Rows * layout.Cols; len(layout.Positions)%size != 0 {
		return binder.Layout{}, fmt.Errorf("binder document has %d positions, not a multiple of page size %d",
			len(layout.Positions), size)
	}
	for i, pos := range layout.Positions {
		if pos.Empty != (pos.CardID == "") {
			return binder.Layout{}, fmt.Errorf("binder document slot %d is inconsistent: isEmpty=%v with cardId %q",
				i, pos.Empty, pos.CardID)
		}
	}
	return layout, nil
}
