package output

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
)

// Writer delivers the rendered result to a file or io.Writer. The primary
// output goes here; warnings and progress belong on the diagnostic stream.
type Writer struct {
	output    io.Writer
	closeFunc func() error
}

// NewWriter creates a writer that writes to the specified output.
func NewWriter(w io.Writer) *Writer {
	return &Writer{output: w}
}

// NewFileWriter creates a writer that writes to a file. The caller must call
// Close() when done to ensure the file is properly closed.
func NewFileWriter(filename string) (*Writer, error) {
	file, err := os.Create(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to create output file: %w", err)
	}

	return &Writer{
		output:    file,
		closeFunc: file.Close,
	}, nil
}

// WriteDocument writes a rendered text document, ensuring it ends with a
// newline.
func (w *Writer) WriteDocument(doc string) error {
	if _, err := io.WriteString(w.output, doc); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	if len(doc) > 0 && doc[len(doc)-1] != '\n' {
		if _, err := io.WriteString(w.output, "\n"); err != nil {
			return fmt.Errorf("failed to write output: %w", err)
		}
	}
	return nil
}

// WriteJSON writes a record as indented JSON.
func (w *Writer) WriteJSON(record interface{}) error {
	enc := json.NewEncoder(w.output)
	enc.SetIndent("", "  ")
	if err := enc.Encode(record); err != nil {
		return fmt.Errorf("failed to write record: %w", err)
	}
	return nil
}

// Close closes the underlying writer if it's a file.
func (w *Writer) Close() error {
	if w.closeFunc != nil {
		return w.closeFunc()
	}
	return nil
}
