//nolint:revive,nolintlint // Package name "common" is intentional for shared helpers.
package common

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
)

// StdinPath selects standard input in ReadInput.
const StdinPath = "-"

// ReadInput reads the whole file at path, or stdin when path is StdinPath.
func ReadInput(path string, stdin io.Reader) ([]byte, error) {
	if path == StdinPath {
		data, err := io.ReadAll(stdin)
		if err != nil {
			return nil, fmt.Errorf("read stdin: %w", err)
		}

		return data, nil
	}

	data, err := os.ReadFile(filepath.Clean(path))
	if err != nil {
		return nil, fmt.Errorf("read input: %w", err)
	}

	return data, nil
}

// WriteJSON writes v to w as indented JSON followed by a newline.
func WriteJSON(w io.Writer, v any) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")

	if err := encoder.Encode(v); err != nil {
		return fmt.Errorf("write output: %w", err)
	}

	return nil
}
